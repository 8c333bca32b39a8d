package engine

import (
	"fmt"
	"math"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// Volatile flag ids shared with the status manager.
const (
	volProtected = "protected"
	volEndure    = "endure"
)

// --- Pre-move gates ----------------------------------------------------

// canActGate asks the status manager whether the combatant moves at all
// this turn (sleep, freeze, full paralysis, confusion hit). The narration is
// surfaced either way, so wake-up and thaw lines come through on the turn
// the combatant recovers. A stopped combatant loses its protect streak.
func (m *Manager) canActGate(tc *turnContext, sd *Side, actor *game.Combatant) bool {
	ok, reason := m.collab.Status.CanAct(actor)
	if reason != "" {
		tc.add(reason)
	}
	if ok {
		return true
	}
	sd.VolatileOf(actor).ProtectStreak = 0
	return false
}

// choiceLockGate stops a combatant locked in by a choice item from using a
// different move. The lock lapses as soon as the item is gone.
func (m *Manager) choiceLockGate(tc *turnContext, sd *Side, actor *game.Combatant, mv content.Move) bool {
	vol := sd.VolatileOf(actor)
	if vol.ChoiceLock == "" || vol.ChoiceLock == mv.ID {
		return true
	}
	if !holdsChoiceItem(actor) {
		vol.ChoiceLock = ""
		return true
	}
	lockedName := vol.ChoiceLock
	if locked, found := m.collab.Content.MoveByID(vol.ChoiceLock); found {
		lockedName = locked.Name
	}
	tc.add(fmt.Sprintf("%s is locked into %s!", actor.DisplayName(), lockedName))
	return false
}

// rulesetGate rejects moves the active ruleset bans.
func (m *Manager) rulesetGate(tc *turnContext, s *Session, actor *game.Combatant, mv content.Move) bool {
	allowed, reason := m.collab.Ruleset.IsMoveAllowed(mv.ID, s.RulesetID)
	if allowed {
		return true
	}
	if reason == "" {
		reason = fmt.Sprintf("%s can't use %s!", actor.DisplayName(), mv.Name)
	}
	tc.add(reason)
	return false
}

// spendPP deducts one PP from the actor's copy of the move. Struggle is
// not tracked, so it never matches a slot here.
func spendPP(actor *game.Combatant, moveID string) {
	for i := range actor.Moves {
		if actor.Moves[i].MoveID == moveID && actor.Moves[i].PP > 0 {
			actor.Moves[i].PP--
			return
		}
	}
}

// --- Protection --------------------------------------------------------

// rollProtection resolves a protecting or enduring move. Consecutive uses
// succeed with probability (1/3)^streak, so the first always works and the
// odds collapse quickly after that.
func (m *Manager) rollProtection(tc *turnContext, sd *Side, actor *game.Combatant, mv content.Move) {
	vol := sd.VolatileOf(actor)
	if vol.ProtectStreak > 0 {
		odds := math.Pow(1.0/3.0, float64(vol.ProtectStreak))
		if m.rng.Float64() >= odds {
			vol.ProtectStreak = 0
			tc.add(msgFailed)
			return
		}
	}
	vol.ProtectStreak++
	if mv.Enduring {
		m.collab.Status.SetVolatile(actor, volEndure)
		tc.add(fmt.Sprintf("%s braced itself!", actor.DisplayName()))
		return
	}
	m.collab.Status.SetVolatile(actor, volProtected)
	tc.add(fmt.Sprintf("%s protected itself!", actor.DisplayName()))
}

// defenderProtected narrates and reports a hit blocked by protection.
func (m *Manager) defenderProtected(tc *turnContext, defender *game.Combatant) bool {
	if m.collab.Status.HasVolatile(defender, volProtected) {
		tc.add(fmt.Sprintf("%s protected itself!", defender.DisplayName()))
		return true
	}
	return false
}
