package engine

import (
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// --- AI action selection ------------------------------------------------

// chooseAIAction picks what an AI-controlled slot does this turn. Damaging
// moves carry triple weight; ally support is only considered early and with
// a partner on the field, and setup moves only on the opening turn. With no
// usable move left the combatant struggles.
func (m *Manager) chooseAIAction(s *Session, sd *Side, slot int) *Action {
	actor := sd.ActiveCombatant(slot)
	if actor == nil || actor.Fainted() {
		return nil
	}

	usable := usableMoves(m.collab.Content, actor)
	if len(usable) == 0 {
		if mv, ok := m.collab.Content.MoveByID(moveStruggle); ok {
			return m.aiTargeted(s, sd, slot, mv)
		}
		return nil
	}

	vol := sd.VolatileOf(actor)
	if vol.ChoiceLock != "" && holdsChoiceItem(actor) {
		for _, mv := range usable {
			if mv.ID == vol.ChoiceLock {
				return m.aiTargeted(s, sd, slot, mv)
			}
		}
	}

	var offensive, support, setup []content.Move
	for _, mv := range usable {
		switch {
		case mv.Damaging():
			offensive = append(offensive, mv)
		case mv.Target == content.TargetAlly || mv.Target == content.TargetAllAllies:
			support = append(support, mv)
		default:
			setup = append(setup, mv)
		}
	}

	pool := make([]content.Move, 0, len(usable)*3)
	for _, mv := range offensive {
		pool = append(pool, mv, mv, mv)
	}
	if len(support) > 0 && s.Turn <= 3 && len(allyTargetSlots(s, sd, slot)) > 0 {
		pool = append(pool, support...)
	}
	if len(setup) > 0 && s.Turn == 1 {
		pool = append(pool, setup...)
	}
	if len(pool) == 0 {
		pool = usable
	}
	return m.aiTargeted(s, sd, slot, pool[m.rng.Intn(len(pool))])
}

// aiTargeted attaches a target slot to the chosen move: a random live
// opponent for single-target moves, a random partner for ally moves, and
// slot zero for everything that does not aim at one combatant.
func (m *Manager) aiTargeted(s *Session, sd *Side, slot int, mv content.Move) *Action {
	act := NewMoveAction(mv.ID, 0, slot)
	switch mv.Target {
	case content.TargetAlly:
		if allies := allyTargetSlots(s, sd, slot); len(allies) > 0 {
			act.TargetSlot = allies[m.rng.Intn(len(allies))]
		}
	case content.TargetSingle:
		oppTeam := opposingTeam(sd.Team)
		live := s.livePositions(oppTeam)
		if len(live) > 0 {
			choice := live[m.rng.Intn(len(live))]
			for i, p := range s.teamPositions(oppTeam) {
				if p == choice {
					act.TargetSlot = i
					break
				}
			}
		}
	}
	return act
}

// allyTargetSlots lists the team-relative slots of live partners, excluding
// the acting combatant itself.
func allyTargetSlots(s *Session, sd *Side, slot int) []int {
	var out []int
	for i, p := range s.teamPositions(sd.Team) {
		if p.side == sd && p.slot == slot {
			continue
		}
		if c := p.combatant(); c != nil && !c.Fainted() {
			out = append(out, i)
		}
	}
	return out
}

func usableMoves(db ContentSource, c *game.Combatant) []content.Move {
	out := make([]content.Move, 0, len(c.Moves))
	for i := range c.Moves {
		if c.Moves[i].PP <= 0 {
			continue
		}
		if mv, ok := db.MoveByID(c.Moves[i].MoveID); ok {
			out = append(out, mv)
		}
	}
	return out
}

// aiPickReplacement returns the first healthy benched roster index, or -1
// when the side has nothing left to send.
func (m *Manager) aiPickReplacement(sd *Side) int {
	for i, c := range sd.Roster {
		if !c.Fainted() && !sd.isActiveIndex(i) {
			return i
		}
	}
	return -1
}
