package engine

import (
	"fmt"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// Held item ids the engine reacts to. Anything else a combatant holds is
// inert during battle.
const (
	heldChoiceScarf = "choice_scarf"
	heldChoiceBand  = "choice_band"
	heldChoiceSpecs = "choice_specs"
	heldIronBall    = "iron_ball"
	heldQuickPowder = "quick_powder"
	heldLifeOrb     = "life_orb"
	heldExpertBelt  = "expert_belt"
	heldFocusSash   = "focus_sash"
	heldFocusBand   = "focus_band"
	heldLeftovers   = "leftovers"
	heldBlackSludge = "black_sludge"
)

func holdsChoiceItem(c *game.Combatant) bool {
	switch c.HeldItem {
	case heldChoiceScarf, heldChoiceBand, heldChoiceSpecs:
		return true
	}
	return false
}

// --- Damage modifiers ---------------------------------------------------

// attackerItemMultiplier scales outgoing damage for the attacker's held
// item. Choice items boost only their matching category; the expert belt
// needs a super-effective hit.
func attackerItemMultiplier(attacker *game.Combatant, mv content.Move, effectiveness float64) float64 {
	switch attacker.HeldItem {
	case heldChoiceBand:
		if mv.Category == content.CategoryPhysical {
			return 1.5
		}
	case heldChoiceSpecs:
		if mv.Category == content.CategorySpecial {
			return 1.5
		}
	case heldLifeOrb:
		return 1.3
	case heldExpertBelt:
		if effectiveness > 1.0 {
			return 1.2
		}
	}
	return 1.0
}

// lifeOrbRecoil returns the self-damage a life orb user takes after a
// damaging hit lands, and its narration.
func (m *Manager) lifeOrbRecoil(actor *game.Combatant) (int, string) {
	if actor.HeldItem != heldLifeOrb || actor.Fainted() {
		return 0, ""
	}
	recoil := maxInt(actor.MaxHP/10, 1)
	return recoil, fmt.Sprintf("%s lost some of its HP!", actor.DisplayName())
}

// --- Hang-on items ------------------------------------------------------

// applyHangOn lets a focus sash or focus band keep the defender at 1 HP
// instead of fainting. The sash works once and only from full HP, and is
// removed from the holder when it triggers; the band gambles at ten percent
// every time and stays.
func (m *Manager) applyHangOn(sd *Side, defender *game.Combatant, damage int) (int, string) {
	if damage < defender.CurrentHP {
		return damage, ""
	}
	vol := sd.VolatileOf(defender)
	switch defender.HeldItem {
	case heldFocusSash:
		if defender.CurrentHP == defender.MaxHP && !vol.Consumed[heldFocusSash] {
			vol.Consumed[heldFocusSash] = true
			defender.HeldItem = ""
			return defender.CurrentHP - 1, fmt.Sprintf("%s hung on using its Focus Sash!", defender.DisplayName())
		}
	case heldFocusBand:
		if m.rng.Float64() < 0.10 {
			return defender.CurrentHP - 1, fmt.Sprintf("%s hung on using its Focus Band!", defender.DisplayName())
		}
	}
	return damage, ""
}

// --- End-of-turn held items --------------------------------------------

// heldEndOfTurn applies leftovers and black sludge. Black sludge heals
// Poison types and hurts everyone else holding it.
func heldEndOfTurn(c *game.Combatant) string {
	if c.Fainted() {
		return ""
	}
	switch c.HeldItem {
	case heldLeftovers:
		if c.CurrentHP < c.MaxHP {
			heal := maxInt(c.MaxHP/16, 1)
			c.CurrentHP = minInt(c.CurrentHP+heal, c.MaxHP)
			return fmt.Sprintf("%s restored a little HP using its Leftovers!", c.DisplayName())
		}
	case heldBlackSludge:
		if c.HasType("Poison") {
			if c.CurrentHP < c.MaxHP {
				heal := maxInt(c.MaxHP/16, 1)
				c.CurrentHP = minInt(c.CurrentHP+heal, c.MaxHP)
				return fmt.Sprintf("%s restored a little HP using its Black Sludge!", c.DisplayName())
			}
		} else {
			hurt := maxInt(c.MaxHP/8, 1)
			c.CurrentHP = maxInt(c.CurrentHP-hurt, 0)
			return fmt.Sprintf("%s is hurt by its Black Sludge!", c.DisplayName())
		}
	}
	return ""
}
