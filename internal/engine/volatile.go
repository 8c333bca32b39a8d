package engine

// VolatileState is the engine-owned battle-only state of one combatant. It
// lives on the Side keyed by roster index, never on the combatant record
// itself, so nothing can leak into later, unrelated encounters.
type VolatileState struct {
	// ProtectStreak counts successive successful Protect/Detect uses; the
	// next use succeeds with probability (1/3)^ProtectStreak.
	ProtectStreak int
	// ChoiceLock holds the move id a choice item has locked in, empty when
	// unlocked.
	ChoiceLock string
	// Consumed marks one-time held items that already triggered.
	Consumed map[string]bool
	// Stages are stat stages (-6..+6) keyed by stat name.
	Stages map[string]int
}

func newVolatileState() *VolatileState {
	return &VolatileState{Consumed: make(map[string]bool), Stages: make(map[string]int)}
}

// ApplyStage shifts a stat stage, clamped to ±6. It returns the applied
// delta, which is zero when the stage was already at its limit.
func (v *VolatileState) ApplyStage(stat string, delta int) int {
	cur := v.Stages[stat]
	next := cur + delta
	if next > 6 {
		next = 6
	}
	if next < -6 {
		next = -6
	}
	v.Stages[stat] = next
	return next - cur
}

// StageMultiplier converts a stage into the standard stat multiplier:
// +n -> (2+n)/2, -n -> 2/(2+n).
func (v *VolatileState) StageMultiplier(stat string) float64 {
	n := v.Stages[stat]
	if n >= 0 {
		return float64(2+n) / 2.0
	}
	return 2.0 / float64(2-n)
}

// reset clears the state for a fresh entry into the field.
func (v *VolatileState) reset() {
	v.ProtectStreak = 0
	v.ChoiceLock = ""
	v.Consumed = make(map[string]bool)
	v.Stages = make(map[string]int)
}
