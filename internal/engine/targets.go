package engine

import "github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"

// --- Target resolution ------------------------------------------------

const (
	msgNoTarget = "But there was no target..."
	msgFailed   = "But it failed!"
)

func opposingTeam(team int) int { return 1 - team }

// resolveTargets turns a move's target kind and the submitted team-relative
// slot into concrete field positions. Spread moves return every live
// position they reach; field-scoped moves return only the user, and the
// executor applies the field effect from there. A non-empty second return
// is the failure line and means the move does nothing.
func (m *Manager) resolveTargets(s *Session, actorSide *Side, actorSlot int, mv *content.Move, targetSlot int) ([]fieldPos, string) {
	self := fieldPos{side: actorSide, slot: actorSlot}
	oppTeam := opposingTeam(actorSide.Team)

	switch mv.Target {
	case content.TargetSelf, content.TargetUserField, content.TargetEnemyField, content.TargetEntireField:
		return []fieldPos{self}, ""

	case content.TargetAlly:
		positions := s.teamPositions(actorSide.Team)
		if targetSlot < 0 || targetSlot >= len(positions) {
			return nil, msgFailed
		}
		pos := positions[targetSlot]
		if pos.side == actorSide && pos.slot == actorSlot {
			return nil, msgFailed
		}
		if c := pos.combatant(); c == nil || c.Fainted() {
			return nil, msgFailed
		}
		return []fieldPos{pos}, ""

	case content.TargetAllAllies:
		live := s.livePositions(actorSide.Team)
		if len(live) == 0 {
			return nil, msgFailed
		}
		return live, ""

	case content.TargetAllOpponents, content.TargetAllAdjacent:
		live := s.livePositions(oppTeam)
		if len(live) == 0 {
			return nil, msgNoTarget
		}
		return live, ""

	case content.TargetAll:
		// Opponents resolve before allies.
		targets := make([]fieldPos, 0, 4)
		targets = append(targets, s.livePositions(oppTeam)...)
		targets = append(targets, s.livePositions(actorSide.Team)...)
		return targets, ""

	default: // single target on the opposing team
		positions := s.teamPositions(oppTeam)
		if targetSlot >= 0 && targetSlot < len(positions) {
			pos := positions[targetSlot]
			if c := pos.combatant(); c != nil && !c.Fainted() {
				return []fieldPos{pos}, ""
			}
		}
		// Original target is gone; redirect to the first live opponent.
		live := s.livePositions(oppTeam)
		if len(live) == 0 {
			return nil, msgNoTarget
		}
		return []fieldPos{live[0]}, ""
	}
}
