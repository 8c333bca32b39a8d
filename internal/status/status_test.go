package status

import (
	"testing"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

type scriptedRNG struct {
	floats []float64
	ints   []int
}

func (r *scriptedRNG) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.999
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRNG) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func combatant(species, type1 string) *game.Combatant {
	return &game.Combatant{
		SpeciesName: species,
		Level:       50,
		MaxHP:       96,
		CurrentHP:   96,
		Attack:      60,
		Defense:     50,
		Type1:       type1,
	}
}

func TestSleepRunsItsCourse(t *testing.T) {
	m := NewManager(&scriptedRNG{ints: []int{2}})
	c := combatant("Snorlax", "Normal")

	ok, line := m.ApplyStatus(c, Sleep)
	if !ok || line != "Snorlax fell asleep!" {
		t.Fatalf("ApplyStatus = (%v, %q)", ok, line)
	}

	for i := 0; i < 2; i++ {
		ok, line = m.CanAct(c)
		if ok || line != "Snorlax is fast asleep." {
			t.Fatalf("turn %d: CanAct = (%v, %q)", i+1, ok, line)
		}
	}
	ok, line = m.CanAct(c)
	if !ok || line != "Snorlax woke up!" {
		t.Fatalf("wake turn: CanAct = (%v, %q)", ok, line)
	}
	if c.Status != "" {
		t.Fatalf("status after waking = %q", c.Status)
	}
}

func TestPersistedSleeperGetsACounter(t *testing.T) {
	m := NewManager(&scriptedRNG{ints: []int{1}})
	c := combatant("Jigglypuff", "Normal")
	c.Status = Sleep

	if ok, line := m.CanAct(c); ok || line != "Jigglypuff is fast asleep." {
		t.Fatalf("first CanAct = (%v, %q)", ok, line)
	}
	if ok, line := m.CanAct(c); !ok || line != "Jigglypuff woke up!" {
		t.Fatalf("second CanAct = (%v, %q)", ok, line)
	}
}

func TestFreezeThawsAtTwentyPercent(t *testing.T) {
	m := NewManager(&scriptedRNG{floats: []float64{0.5, 0.1}})
	c := combatant("Squirtle", "Water")

	if ok, line := m.ApplyStatus(c, Freeze); !ok || line != "Squirtle was frozen solid!" {
		t.Fatalf("ApplyStatus = (%v, %q)", ok, line)
	}
	if ok, line := m.CanAct(c); ok || line != "Squirtle is frozen solid!" {
		t.Fatalf("blocked turn: CanAct = (%v, %q)", ok, line)
	}
	if ok, line := m.CanAct(c); !ok || line != "Squirtle thawed out!" {
		t.Fatalf("thaw turn: CanAct = (%v, %q)", ok, line)
	}
	if c.Status != "" {
		t.Fatalf("status after thawing = %q", c.Status)
	}
}

func TestParalysisFullStop(t *testing.T) {
	m := NewManager(&scriptedRNG{floats: []float64{0.1, 0.9}})
	c := combatant("Raticate", "Normal")

	if ok, line := m.ApplyStatus(c, Paralysis); !ok || line != "Raticate is paralyzed! It may be unable to move!" {
		t.Fatalf("ApplyStatus = (%v, %q)", ok, line)
	}
	if ok, line := m.CanAct(c); ok || line != "Raticate is paralyzed! It can't move!" {
		t.Fatalf("full paralysis: CanAct = (%v, %q)", ok, line)
	}
	if ok, line := m.CanAct(c); !ok || line != "" {
		t.Fatalf("acting turn: CanAct = (%v, %q)", ok, line)
	}
	if c.Status != Paralysis {
		t.Fatalf("paralysis should persist, status = %q", c.Status)
	}
}

func TestConfusionSelfHit(t *testing.T) {
	m := NewManager(&scriptedRNG{floats: []float64{0.1, 0.9}, ints: []int{1}})
	c := combatant("Psyduck", "Water")

	m.SetVolatile(c, "confusion")
	if !m.HasVolatile(c, "confusion") {
		t.Fatal("confusion volatile not set")
	}

	// First turn rolls under 1/3 and the duck clobbers itself:
	// (2*50/5+2)*40*60/50/50+2 = 23 off 96 HP.
	ok, line := m.CanAct(c)
	if ok || line != "Psyduck hurt itself in its confusion!" {
		t.Fatalf("self-hit turn: CanAct = (%v, %q)", ok, line)
	}
	if c.CurrentHP != 73 {
		t.Fatalf("HP after self-hit = %d, want 73", c.CurrentHP)
	}

	ok, line = m.CanAct(c)
	if !ok || line != "Psyduck is confused!" {
		t.Fatalf("acting while confused: CanAct = (%v, %q)", ok, line)
	}

	ok, line = m.CanAct(c)
	if !ok || line != "Psyduck snapped out of its confusion!" {
		t.Fatalf("snap-out turn: CanAct = (%v, %q)", ok, line)
	}
	if m.HasVolatile(c, "confusion") {
		t.Fatal("confusion volatile survived snapping out")
	}
}

func TestFlinchLastsOneAction(t *testing.T) {
	m := NewManager(&scriptedRNG{})
	c := combatant("Pidgey", "Normal")

	m.SetVolatile(c, "flinch")
	if ok, line := m.CanAct(c); ok || line != "Pidgey flinched and couldn't move!" {
		t.Fatalf("flinched turn: CanAct = (%v, %q)", ok, line)
	}
	if m.HasVolatile(c, "flinch") {
		t.Fatal("flinch should be consumed by the blocked action")
	}
	if ok, line := m.CanAct(c); !ok || line != "" {
		t.Fatalf("next turn: CanAct = (%v, %q)", ok, line)
	}
}

func TestInflictionNarration(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{Paralysis, "Rattata is paralyzed! It may be unable to move!"},
		{Burn, "Rattata was burned!"},
		{Poison, "Rattata was poisoned!"},
		{Toxic, "Rattata was badly poisoned!"},
		{Sleep, "Rattata fell asleep!"},
		{Freeze, "Rattata was frozen solid!"},
	}
	for _, tc := range cases {
		m := NewManager(&scriptedRNG{})
		c := combatant("Rattata", "Normal")
		ok, line := m.ApplyStatus(c, tc.status)
		if !ok || line != tc.want {
			t.Fatalf("%s: ApplyStatus = (%v, %q), want %q", tc.status, ok, line, tc.want)
		}
		if c.Status != tc.status {
			t.Fatalf("%s: status field = %q", tc.status, c.Status)
		}
	}
}

func TestTypeImmunities(t *testing.T) {
	cases := []struct {
		species string
		type1   string
		status  string
	}{
		{"Vulpix", "Fire", Burn},
		{"Pikachu", "Electric", Paralysis},
		{"Glalie", "Ice", Freeze},
		{"Grimer", "Poison", Poison},
		{"Registeel", "Steel", Toxic},
	}
	for _, tc := range cases {
		m := NewManager(&scriptedRNG{})
		c := combatant(tc.species, tc.type1)
		ok, line := m.ApplyStatus(c, tc.status)
		if ok {
			t.Fatalf("%s vs %s: status stuck", tc.status, tc.type1)
		}
		if want := "It doesn't affect " + tc.species + "..."; line != want {
			t.Fatalf("%s vs %s: line = %q, want %q", tc.status, tc.type1, line, want)
		}
		if c.Status != "" {
			t.Fatalf("%s vs %s: status field = %q", tc.status, tc.type1, c.Status)
		}
	}
}

func TestSecondStatusFails(t *testing.T) {
	m := NewManager(&scriptedRNG{})
	c := combatant("Rattata", "Normal")

	if ok, _ := m.ApplyStatus(c, Paralysis); !ok {
		t.Fatal("first status rejected")
	}
	ok, line := m.ApplyStatus(c, Burn)
	if ok || line != "But it failed!" {
		t.Fatalf("second status: ApplyStatus = (%v, %q)", ok, line)
	}
	if c.Status != Paralysis {
		t.Fatalf("status = %q, want %q", c.Status, Paralysis)
	}
}

func TestBurnResidual(t *testing.T) {
	m := NewManager(&scriptedRNG{})
	c := combatant("Machop", "Fighting")
	c.Status = Burn

	lines := m.ApplyEndOfTurn(c)
	if len(lines) != 1 || lines[0] != "Machop is hurt by its burn!" {
		t.Fatalf("lines = %v", lines)
	}
	if c.CurrentHP != 90 {
		t.Fatalf("HP = %d, want 90 (96 - 96/16)", c.CurrentHP)
	}

	// Tiny creatures still lose at least one point.
	small := combatant("Caterpie", "Bug")
	small.MaxHP, small.CurrentHP = 10, 10
	small.Status = Burn
	m.ApplyEndOfTurn(small)
	if small.CurrentHP != 9 {
		t.Fatalf("small HP = %d, want 9", small.CurrentHP)
	}
}

func TestPoisonResidual(t *testing.T) {
	m := NewManager(&scriptedRNG{})
	c := combatant("Machop", "Fighting")
	c.Status = Poison

	lines := m.ApplyEndOfTurn(c)
	if len(lines) != 1 || lines[0] != "Machop is hurt by poison!" {
		t.Fatalf("lines = %v", lines)
	}
	if c.CurrentHP != 84 {
		t.Fatalf("HP = %d, want 84 (96 - 96/8)", c.CurrentHP)
	}
}

func TestToxicDamageRamps(t *testing.T) {
	m := NewManager(&scriptedRNG{})
	c := combatant("Snorlax", "Normal")

	if ok, _ := m.ApplyStatus(c, Toxic); !ok {
		t.Fatal("toxic rejected")
	}
	for i, want := range []int{90, 78, 60} {
		m.ApplyEndOfTurn(c)
		if c.CurrentHP != want {
			t.Fatalf("tick %d: HP = %d, want %d", i+1, c.CurrentHP, want)
		}
	}

	// Leaving the field resets the ramp to 1/16.
	m.ClearAllVolatile(c)
	m.ApplyEndOfTurn(c)
	if c.CurrentHP != 54 {
		t.Fatalf("HP after re-entry tick = %d, want 54", c.CurrentHP)
	}

	healthy := combatant("Eevee", "Normal")
	if lines := m.ApplyEndOfTurn(healthy); lines != nil {
		t.Fatalf("healthy combatant took residual damage: %v", lines)
	}
}

func TestCureStatus(t *testing.T) {
	m := NewManager(&scriptedRNG{ints: []int{0}})
	c := combatant("Snorlax", "Normal")

	m.ApplyStatus(c, Sleep)
	ok, line := m.CureStatus(c)
	if !ok || line != "Snorlax was cured of its status condition!" {
		t.Fatalf("CureStatus = (%v, %q)", ok, line)
	}
	if c.Status != "" {
		t.Fatalf("status = %q", c.Status)
	}
	if ok, line := m.CureStatus(c); ok || line != "" {
		t.Fatalf("curing a healthy combatant = (%v, %q)", ok, line)
	}
}

func TestClearAllVolatile(t *testing.T) {
	m := NewManager(&scriptedRNG{})
	c := combatant("Psyduck", "Water")

	m.SetVolatile(c, "protected")
	m.SetVolatile(c, "confusion")
	m.ClearAllVolatile(c)
	if m.HasVolatile(c, "protected") || m.HasVolatile(c, "confusion") {
		t.Fatal("volatiles survived ClearAllVolatile")
	}
}

func TestParalysisSpeedPenalty(t *testing.T) {
	m := NewManager(&scriptedRNG{})
	c := combatant("Raticate", "Normal")

	if got := m.ModifySpeed(c, 100); got != 100 {
		t.Fatalf("healthy speed = %d", got)
	}
	c.Status = Paralysis
	if got := m.ModifySpeed(c, 100); got != 50 {
		t.Fatalf("paralyzed speed = %d", got)
	}
}
