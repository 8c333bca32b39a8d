package engine

import (
	"errors"
	"testing"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

func TestVoluntarySwitchResolvesBeforeMoves(t *testing.T) {
	m := newTestManager(flatDamage(40), nil)
	eevee := newCombatant("Eevee", 100, 10, "tackle")
	rattata := newCombatant("Rattata", 100, 20, "tackle")
	s := startPvP(t, m, game.FormatSingles,
		[]*game.Combatant{eevee, rattata},
		[]*game.Combatant{newCombatant("Ditto", 100, 200, "tackle")},
	)

	register(t, m, s, 1, NewSwitchAction(1, 0))
	register(t, m, s, 2, NewMoveAction("tackle", 0, 0))
	turn := processTurn(t, m, s)

	if !hasLine(turn.Messages, "Eevee, come back!") || !hasLine(turn.Messages, "Go! Rattata!") {
		t.Fatalf("missing switch narration in %q", turn.Messages)
	}
	// The switch resolved first even against a much faster opponent, so the
	// incoming combatant took the hit.
	if eevee.CurrentHP != 100 || rattata.CurrentHP != 60 {
		t.Fatalf("HP after switch = %d/%d, want 100/60", eevee.CurrentHP, rattata.CurrentHP)
	}
}

func TestSwitchInPaysStealthRockToll(t *testing.T) {
	m := newTestManager(flatDamage(5), nil)
	rattata := newCombatant("Rattata", 100, 20, "tackle")
	s := startPvP(t, m, game.FormatSingles,
		[]*game.Combatant{newCombatant("Eevee", 100, 10, "tackle"), rattata},
		[]*game.Combatant{newCombatant("Ditto", 100, 200, "growl")},
	)
	s.Hazards[TeamTrainer].StealthRock = true

	register(t, m, s, 1, NewSwitchAction(1, 0))
	register(t, m, s, 2, NewMoveAction("growl", 0, 0))
	turn := processTurn(t, m, s)

	if !hasLine(turn.Messages, "Pointed stones dug into Rattata!") {
		t.Fatalf("missing hazard line in %q", turn.Messages)
	}
	// An eighth of max HP at neutral effectiveness.
	if rattata.CurrentHP != 88 {
		t.Fatalf("HP after stealth rock = %d, want 88", rattata.CurrentHP)
	}
}

func TestPivotMovePromptsReplacementChoice(t *testing.T) {
	m := newTestManager(flatDamage(40), nil)
	ditto := newCombatant("Ditto", 200, 10, "growl")
	s := startPvP(t, m, game.FormatSingles,
		[]*game.Combatant{newCombatant("Eevee", 100, 100, "u_turn"), newCombatant("Rattata", 100, 20, "tackle")},
		[]*game.Combatant{ditto},
	)

	register(t, m, s, 1, NewMoveAction("u_turn", 0, 0))
	register(t, m, s, 2, NewMoveAction("growl", 0, 0))
	turn := processTurn(t, m, s)

	if ditto.CurrentHP != 160 {
		t.Fatalf("pivot move should still deal damage, HP %d", ditto.CurrentHP)
	}
	if s.Phase != game.PhaseVoltSwitch {
		t.Fatalf("phase = %q, want %q", s.Phase, game.PhaseVoltSwitch)
	}
	if !hasLine(turn.SwitchMessages, "Red is choosing a replacement.") {
		t.Fatalf("missing pivot prompt in %q", turn.SwitchMessages)
	}
	participant, slot, selfSwitch, pending := s.ForcedSwitchInfo()
	if !pending || participant != 1 || slot != 0 || !selfSwitch {
		t.Fatalf("forced info = (%d, %d, %v, %v), want (1, 0, true, true)", participant, slot, selfSwitch, pending)
	}

	if _, err := m.ForceSwitch(s.ID, 2, 0); !errors.Is(err, ErrNotPending) {
		t.Fatalf("wrong participant error = %v, want ErrNotPending", err)
	}

	res, err := m.ForceSwitch(s.ID, 1, 1)
	if err != nil {
		t.Fatalf("force switch: %v", err)
	}
	if !hasLine(res.Messages, "Eevee, come back!") || !hasLine(res.Messages, "Go! Rattata!") {
		t.Fatalf("missing switch narration in %q", res.Messages)
	}
	if s.Phase != game.PhaseWaitingActions {
		t.Fatalf("phase after pivot = %q, want %q", s.Phase, game.PhaseWaitingActions)
	}
	if got := s.Sides[0].ActiveCombatant(0); got == nil || got.SpeciesName != "Rattata" {
		t.Fatalf("active combatant after pivot = %+v, want Rattata", got)
	}
}

func TestAIPivotSwitchesImmediately(t *testing.T) {
	m := newTestManager(flatDamage(5), nil)
	eevee := newCombatant("Eevee", 100, 10, "growl")
	s := startTrainer(t, m,
		[]*game.Combatant{eevee},
		[]*game.Combatant{newCombatant("Geodude", 100, 100, "u_turn"), newCombatant("Onix", 100, 30, "tackle")},
	)

	register(t, m, s, 1, NewMoveAction("growl", 0, 0))
	turn := processTurn(t, m, s)

	if eevee.CurrentHP != 95 {
		t.Fatalf("pivot damage = %d HP left, want 95", eevee.CurrentHP)
	}
	if !hasLine(turn.Messages, "Geodude, come back!") || !hasLine(turn.Messages, "Brock sent out Onix!") {
		t.Fatalf("missing pivot narration in %q", turn.Messages)
	}
	if got := s.Sides[1].ActiveCombatant(0); got == nil || got.SpeciesName != "Onix" {
		t.Fatalf("active opponent = %+v, want Onix", got)
	}
	if s.Phase != game.PhaseWaitingActions {
		t.Fatalf("phase = %q, want %q", s.Phase, game.PhaseWaitingActions)
	}
}

func TestFaintAndPivotReplacementsChain(t *testing.T) {
	m := newTestManager(flatDamage(5), nil)
	caterpie := newCombatant("Caterpie", 100, 60, "growl")
	caterpie.CurrentHP = 1
	s := startPvP(t, m, game.FormatDoubles,
		[]*game.Combatant{
			newCombatant("Pidgeotto", 100, 100, "u_turn"),
			caterpie,
			newCombatant("Eevee", 100, 40, "tackle"),
			newCombatant("Rattata", 100, 30, "tackle"),
		},
		[]*game.Combatant{newCombatant("Ditto", 100, 80, "tackle"), newCombatant("Snorlax", 100, 20, "growl")},
	)

	register(t, m, s, 1, NewMoveAction("u_turn", 0, 0))
	register(t, m, s, 1, NewMoveAction("growl", 0, 1))
	register(t, m, s, 2, NewMoveAction("tackle", 1, 0))
	register(t, m, s, 2, NewMoveAction("growl", 0, 1))
	turn := processTurn(t, m, s)

	// The fainted slot outranks the pivot choice.
	if s.Phase != game.PhaseForcedSwitch {
		t.Fatalf("phase = %q, want %q", s.Phase, game.PhaseForcedSwitch)
	}
	if !hasLine(turn.Messages, "Caterpie fainted!") {
		t.Fatalf("missing faint line in %q", turn.Messages)
	}
	if !hasLine(turn.SwitchMessages, "Red has to send in a replacement!") {
		t.Fatalf("missing replacement prompt in %q", turn.SwitchMessages)
	}
	participant, slot, selfSwitch, pending := s.ForcedSwitchInfo()
	if !pending || participant != 1 || slot != 1 || selfSwitch {
		t.Fatalf("forced info = (%d, %d, %v, %v), want (1, 1, false, true)", participant, slot, selfSwitch, pending)
	}

	if _, err := m.ForceSwitch(s.ID, 1, 2); err != nil {
		t.Fatalf("faint replacement: %v", err)
	}
	// The pivot from the first slot is still owed.
	if s.Phase != game.PhaseVoltSwitch {
		t.Fatalf("phase after faint replacement = %q, want %q", s.Phase, game.PhaseVoltSwitch)
	}
	participant, slot, selfSwitch, pending = s.ForcedSwitchInfo()
	if !pending || participant != 1 || slot != 0 || !selfSwitch {
		t.Fatalf("forced info = (%d, %d, %v, %v), want (1, 0, true, true)", participant, slot, selfSwitch, pending)
	}

	if _, err := m.ForceSwitch(s.ID, 1, 3); err != nil {
		t.Fatalf("pivot replacement: %v", err)
	}
	if s.Phase != game.PhaseWaitingActions {
		t.Fatalf("phase after both replacements = %q, want %q", s.Phase, game.PhaseWaitingActions)
	}
	front := s.Sides[0]
	if a, b := front.ActiveCombatant(0), front.ActiveCombatant(1); a.SpeciesName != "Rattata" || b.SpeciesName != "Eevee" {
		t.Fatalf("final actives = %s/%s, want Rattata/Eevee", a.SpeciesName, b.SpeciesName)
	}
}

func TestAISendsReplacementAfterFaint(t *testing.T) {
	m := newTestManager(flatDamage(40), nil)
	geodude := newCombatant("Geodude", 100, 10, "growl")
	geodude.CurrentHP = 1
	s := startTrainer(t, m,
		[]*game.Combatant{newCombatant("Eevee", 100, 100, "tackle")},
		[]*game.Combatant{geodude, newCombatant("Onix", 100, 30, "tackle")},
	)

	register(t, m, s, 1, NewMoveAction("tackle", 0, 0))
	turn := processTurn(t, m, s)

	if !hasLine(turn.Messages, "Geodude fainted!") {
		t.Fatalf("missing faint line in %q", turn.Messages)
	}
	if !hasLine(turn.SwitchMessages, "Brock sent out Onix!") {
		t.Fatalf("missing replacement send-out in %q", turn.SwitchMessages)
	}
	if turn.IsOver {
		t.Fatalf("battle should continue while the AI has a bench")
	}
	if s.Phase != game.PhaseWaitingActions {
		t.Fatalf("phase = %q, want %q", s.Phase, game.PhaseWaitingActions)
	}
}

func TestLastFaintEndsTheBattle(t *testing.T) {
	m := newTestManager(flatDamage(40), nil)
	geodude := newCombatant("Geodude", 100, 10, "growl")
	geodude.CurrentHP = 1
	s := startTrainer(t, m,
		[]*game.Combatant{newCombatant("Eevee", 100, 100, "tackle")},
		[]*game.Combatant{geodude},
	)

	register(t, m, s, 1, NewMoveAction("tackle", 0, 0))
	turn := processTurn(t, m, s)

	if !turn.IsOver || turn.Winner != game.WinnerTrainer {
		t.Fatalf("result = over=%v winner=%q, want a trainer win", turn.IsOver, turn.Winner)
	}
	if !hasLine(turn.Messages, "Red won the battle!") {
		t.Fatalf("missing victory line in %q", turn.Messages)
	}
	if s.Phase != game.PhaseEnd {
		t.Fatalf("phase = %q, want %q", s.Phase, game.PhaseEnd)
	}
}
