// Package damage is the production damage-calculator collaborator: a
// Gen-3-style formula over the static move data. The calculator is a pure
// function of its input plus the injected random source; applying the damage
// is the engine's job.
package damage

import (
	"fmt"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
)

// ContentLookup is the slice of the content database the calculator reads.
type ContentLookup interface {
	MoveByID(id string) (content.Move, bool)
	Effectiveness(moveType string, defenderTypes ...string) float64
}

const (
	critChance     = 1.0 / 16.0
	critMultiplier = 1.5
	stabMultiplier = 1.5
)

// Calculator computes one move hit.
type Calculator struct {
	db  ContentLookup
	rng engine.RandomSource
}

func NewCalculator(db ContentLookup, rng engine.RandomSource) *Calculator {
	return &Calculator{db: db, rng: rng}
}

// Compute runs the classic formula: a level- and power-scaled attack/defense
// ratio, then the modifier chain (weather, screens or critical hit, STAB,
// type chart, random 0.85-1.0). A damaging hit never rounds below 1; a
// type-immune hit is 0 with its own callout.
func (c *Calculator) Compute(in engine.DamageInput) engine.DamageOutput {
	mv, ok := c.db.MoveByID(in.MoveID)
	if !ok || !mv.Damaging() || mv.Power <= 0 {
		return engine.DamageOutput{Effectiveness: 1.0}
	}

	eff := 1.0
	if mv.Type != "" {
		eff = c.db.Effectiveness(mv.Type, in.Defender.Types()...)
	}
	if eff == 0 {
		return engine.DamageOutput{
			Effectiveness: 0,
			Extra:         []string{fmt.Sprintf("It doesn't affect %s...", in.Defender.DisplayName())},
		}
	}

	crit := c.rng.Float64() < critChance

	atk, def := in.Attacker.Attack, in.Defender.Defense
	if mv.Category == content.CategorySpecial {
		atk, def = in.Attacker.SpAttack, in.Defender.SpDefense
	}

	// A critical hit ignores the attacker's stat drops and the defender's
	// boosts, as well as the defender's screens.
	atkStage, defStage := in.AttackStage, in.DefenseStage
	if crit {
		if atkStage < 0 {
			atkStage = 0
		}
		if defStage > 0 {
			defStage = 0
		}
	}
	atk = maxInt(int(float64(atk)*stageMultiplier(atkStage)), 1)
	def = maxInt(int(float64(def)*stageMultiplier(defStage)), 1)

	if mv.Category == content.CategoryPhysical && in.Attacker.Status == "brn" {
		atk = maxInt(atk/2, 1)
	}

	level := in.Attacker.Level
	if level < 1 {
		level = 1
	}
	base := (2*level/5+2)*mv.Power*atk/def/50 + 2

	modifier := weatherMultiplier(mv.Type, in.Weather)
	if crit {
		modifier *= critMultiplier
	} else {
		modifier *= screenMultiplier(mv.Category, in)
	}
	if mv.Type != "" && in.Attacker.HasType(mv.Type) {
		modifier *= stabMultiplier
	}
	modifier *= eff

	roll := 0.85 + 0.15*c.rng.Float64()
	dmg := maxInt(int(float64(base)*modifier*roll), 1)

	out := engine.DamageOutput{Damage: dmg, Critical: crit, Effectiveness: eff}
	if crit {
		out.Extra = append(out.Extra, "A critical hit!")
	}
	switch {
	case eff > 1:
		out.Extra = append(out.Extra, "It's super effective!")
	case eff < 1:
		out.Extra = append(out.Extra, "It's not very effective...")
	}
	return out
}

// weatherMultiplier boosts water moves in rain and fire moves in sun, and
// dampens the opposite pairing.
func weatherMultiplier(moveType, weather string) float64 {
	t := content.Normalize(moveType)
	switch weather {
	case content.WeatherRain:
		switch t {
		case "water":
			return 1.5
		case "fire":
			return 0.5
		}
	case content.WeatherSun:
		switch t {
		case "fire":
			return 1.5
		case "water":
			return 0.5
		}
	}
	return 1.0
}

// screenMultiplier halves damage through the matching screen; with a live
// partner on a doubles field the screen only cuts a quarter.
func screenMultiplier(category string, in engine.DamageInput) float64 {
	up := (category == content.CategoryPhysical && in.DefenderReflect) ||
		(category == content.CategorySpecial && in.DefenderLightScreen)
	if !up {
		return 1.0
	}
	if in.Doubles && in.DefenderHasAlly {
		return 0.75
	}
	return 0.5
}

// stageMultiplier is the standard stage table: +n -> (2+n)/2, -n -> 2/(2+|n|).
func stageMultiplier(n int) float64 {
	if n > 6 {
		n = 6
	}
	if n < -6 {
		n = -6
	}
	if n >= 0 {
		return float64(2+n) / 2.0
	}
	return 2.0 / float64(2-n)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
