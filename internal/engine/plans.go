package engine

import (
	"sort"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// --- Scheduled action model -------------------------------------------

// scheduledAction binds one pending Action to the combatant that will carry
// it out. The actor pointer is captured when the turn is scheduled; by the
// time the action runs the combatant may already have fainted or switched
// out, which the executor checks before acting.
type scheduledAction struct {
	side    *Side
	sideIdx int
	slot    int
	actor   *game.Combatant
	action  *Action
}

// Priority tiers. Moves use their intrinsic priority, landing between item
// use and fleeing.
const (
	tierSwitch = 100
	tierItem   = 90
	tierFlee   = 0
)

// scheduleActions stamps every action with its priority tier and effective
// speed, then orders the turn. The sort key is fully deterministic: tier
// desc, speed desc, then team, side index and slot ascending, so replays
// with the same seed resolve identically.
func (m *Manager) scheduleActions(s *Session, plans []scheduledAction) []scheduledAction {
	for i := range plans {
		p := &plans[i]
		p.action.tier = m.priorityTier(p.action)
		p.action.speed = m.effectiveSpeed(p.side, p.actor)
	}

	sort.Slice(plans, func(i, j int) bool {
		a, b := plans[i], plans[j]
		if a.action.tier != b.action.tier {
			return a.action.tier > b.action.tier
		}
		if a.action.speed != b.action.speed {
			return a.action.speed > b.action.speed
		}
		if a.side.Team != b.side.Team {
			return a.side.Team < b.side.Team
		}
		if a.sideIdx != b.sideIdx {
			return a.sideIdx < b.sideIdx
		}
		return a.slot < b.slot
	})
	return plans
}

func (m *Manager) priorityTier(a *Action) int {
	switch a.Kind {
	case ActionSwitch:
		return tierSwitch
	case ActionItem:
		return tierItem
	case ActionMove:
		if mv, ok := m.collab.Content.MoveByID(a.MoveID); ok {
			return mv.Priority
		}
		return 0
	default:
		return tierFlee
	}
}

// effectiveSpeed applies stat stages, the held item and then any status
// penalty to the combatant's base speed.
func (m *Manager) effectiveSpeed(sd *Side, c *game.Combatant) int {
	speed := float64(c.Speed)
	speed *= sd.VolatileOf(c).StageMultiplier("speed")
	switch c.HeldItem {
	case heldChoiceScarf:
		speed *= 1.5
	case heldIronBall:
		speed *= 0.5
	case heldQuickPowder:
		// Only works for an untransformed Ditto.
		if content.Normalize(c.SpeciesName) == "ditto" {
			speed *= 2.0
		}
	}
	return m.collab.Status.ModifySpeed(c, int(speed))
}
