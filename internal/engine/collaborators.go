package engine

import (
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// The engine consumes its collaborators through these interfaces. Every one
// of them has a null-object default, so a Manager constructed with partial
// Collaborators still works and no call site checks for nil.

// DamageInput carries everything the damage calculator may read. The engine
// fills it from session state so the calculator stays a pure function.
type DamageInput struct {
	Attacker *game.Combatant
	Defender *game.Combatant
	MoveID   string
	Weather  string
	Terrain  string

	// Stat stages of the two combatants for the move's category.
	AttackStage  int
	DefenseStage int

	// Defender-side screens and spread context.
	DefenderReflect     bool
	DefenderLightScreen bool
	DefenderHasAlly     bool
	Doubles             bool
}

// DamageOutput is the calculator's verdict for one hit.
type DamageOutput struct {
	Damage        int
	Critical      bool
	Effectiveness float64
	// Extra carries calculator-owned narration (crit and effectiveness
	// callouts) appended after the hit line.
	Extra []string
}

// DamageCalculator computes one move hit. Implementations must not mutate
// the combatants.
type DamageCalculator interface {
	Compute(in DamageInput) DamageOutput
}

// StatusManager owns major status conditions and the volatile-status set.
// The engine inspects volatiles for "protect" and "endure", sets them when
// the corresponding moves succeed, and clears them as turns end.
type StatusManager interface {
	// CanAct reports whether c may execute its move this turn. The narration
	// accompanies either verdict: why the combatant is stopped (asleep,
	// fully paralyzed, ...) or that it just recovered (woke up, thawed).
	CanAct(c *game.Combatant) (bool, string)
	// ApplyEndOfTurn applies residual status damage and returns narration.
	ApplyEndOfTurn(c *game.Combatant) []string
	// ApplyStatus tries to inflict a major status condition.
	ApplyStatus(c *game.Combatant, status string) (bool, string)
	// CureStatus removes the major status condition and its counters.
	CureStatus(c *game.Combatant) (bool, string)

	HasVolatile(c *game.Combatant, name string) bool
	SetVolatile(c *game.Combatant, name string)
	ClearVolatile(c *game.Combatant, name string)
	// ClearAllVolatile resets every volatile status and counter, called on
	// switch-out and battle end so nothing leaks across encounters.
	ClearAllVolatile(c *game.Combatant)

	// ModifySpeed folds major-status speed penalties into a speed value.
	ModifySpeed(c *game.Combatant, speed int) int
}

// AbilityHandler reacts to field entry and weather ticks.
type AbilityHandler interface {
	TriggerOnEntry(c *game.Combatant, s *Session) []string
	ApplyWeatherDamage(c *game.Combatant, weather string) []string
	ApplyWeatherHealing(c *game.Combatant, weather string) []string
}

// RulesetHandler validates move legality under the session's ruleset.
type RulesetHandler interface {
	IsMoveAllowed(moveID, rulesetID string) (bool, string)
	ResolveDefault(preference string) string
}

// ContentSource provides the read-only static data lookups.
type ContentSource interface {
	MoveByID(id string) (content.Move, bool)
	ItemByID(id string) (content.Item, bool)
	SpeciesByName(name string) (content.Species, bool)
	Effectiveness(moveType string, defenderTypes ...string) float64
}

// Collaborators bundles the engine's dependencies for Manager construction.
// Nil members fall back to the null objects below.
type Collaborators struct {
	Damage  DamageCalculator
	Status  StatusManager
	Ability AbilityHandler
	Ruleset RulesetHandler
	Content ContentSource
}

func (c Collaborators) withDefaults() Collaborators {
	if c.Damage == nil {
		c.Damage = nopDamage{}
	}
	if c.Status == nil {
		c.Status = nopStatus{}
	}
	if c.Ability == nil {
		c.Ability = nopAbility{}
	}
	if c.Ruleset == nil {
		c.Ruleset = nopRuleset{}
	}
	if c.Content == nil {
		c.Content = nopContent{}
	}
	return c
}

// --- Null objects ------------------------------------------------------

type nopDamage struct{}

func (nopDamage) Compute(in DamageInput) DamageOutput {
	return DamageOutput{Damage: 0, Effectiveness: 1.0}
}

type nopStatus struct{}

func (nopStatus) CanAct(*game.Combatant) (bool, string)               { return true, "" }
func (nopStatus) ApplyEndOfTurn(*game.Combatant) []string             { return nil }
func (nopStatus) ApplyStatus(*game.Combatant, string) (bool, string)  { return false, "" }
func (nopStatus) CureStatus(*game.Combatant) (bool, string)           { return false, "" }
func (nopStatus) HasVolatile(*game.Combatant, string) bool            { return false }
func (nopStatus) SetVolatile(*game.Combatant, string)                 {}
func (nopStatus) ClearVolatile(*game.Combatant, string)               {}
func (nopStatus) ClearAllVolatile(*game.Combatant)                    {}
func (nopStatus) ModifySpeed(_ *game.Combatant, speed int) int        { return speed }

type nopAbility struct{}

func (nopAbility) TriggerOnEntry(*game.Combatant, *Session) []string       { return nil }
func (nopAbility) ApplyWeatherDamage(*game.Combatant, string) []string     { return nil }
func (nopAbility) ApplyWeatherHealing(*game.Combatant, string) []string    { return nil }

type nopRuleset struct{}

func (nopRuleset) IsMoveAllowed(string, string) (bool, string) { return true, "" }
func (nopRuleset) ResolveDefault(string) string                { return "standardnatdex" }

type nopContent struct{}

func (nopContent) MoveByID(string) (content.Move, bool)        { return content.Move{}, false }
func (nopContent) ItemByID(string) (content.Item, bool)        { return content.Item{}, false }
func (nopContent) SpeciesByName(string) (content.Species, bool) { return content.Species{}, false }
func (nopContent) Effectiveness(string, ...string) float64     { return 1.0 }
