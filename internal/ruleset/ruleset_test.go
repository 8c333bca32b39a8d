package ruleset

import "testing"

func TestStandardRulesetBansOneHitKOMoves(t *testing.T) {
	h := NewHandler()
	cases := []struct {
		moveID string
		reason string
	}{
		{"sheer_cold", "Sheer Cold is banned under the OHKO clause!"},
		{"fissure", "Fissure is banned under the OHKO clause!"},
		{"guillotine", "Guillotine is banned under the OHKO clause!"},
		{"horn_drill", "Horn Drill is banned under the OHKO clause!"},
	}
	for _, tc := range cases {
		ok, reason := h.IsMoveAllowed(tc.moveID, "standardnatdex")
		if ok || reason != tc.reason {
			t.Fatalf("%s: IsMoveAllowed = (%v, %q)", tc.moveID, ok, reason)
		}
	}
}

func TestStandardRulesetBansEvasionMoves(t *testing.T) {
	h := NewHandler()
	for _, moveID := range []string{"double_team", "minimize"} {
		ok, reason := h.IsMoveAllowed(moveID, "standardnatdex")
		if ok {
			t.Fatalf("%s allowed under a standard ruleset", moveID)
		}
		if want := label(moveID) + " is banned under the evasion clause!"; reason != want {
			t.Fatalf("%s: reason = %q, want %q", moveID, reason, want)
		}
	}
}

func TestOrdinaryMovesAllowed(t *testing.T) {
	h := NewHandler()
	for _, moveID := range []string{"tackle", "earthquake", "protect"} {
		if ok, reason := h.IsMoveAllowed(moveID, "standardnatdex"); !ok {
			t.Fatalf("%s rejected: %q", moveID, reason)
		}
	}
}

func TestCasualRulesetAllowsEverything(t *testing.T) {
	h := NewHandler()
	if ok, _ := h.IsMoveAllowed("sheer_cold", "anything_goes"); !ok {
		t.Fatal("sheer_cold rejected outside standard rulesets")
	}
	if ok, _ := h.IsMoveAllowed("double_team", ""); !ok {
		t.Fatal("double_team rejected with no ruleset")
	}
}

func TestResolveDefault(t *testing.T) {
	h := NewHandler()
	if got := h.ResolveDefault(""); got != "standardnatdex" {
		t.Fatalf("ResolveDefault(\"\") = %q", got)
	}
	if got := h.ResolveDefault("Standard NatDex"); got != "standardnatdex" {
		t.Fatalf("ResolveDefault(preference) = %q", got)
	}
	if got := h.ResolveDefault("anything_goes"); got != "anythinggoes" {
		t.Fatalf("ResolveDefault(casual) = %q", got)
	}
}
