package engine

import (
	"fmt"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// --- Entry hazards ------------------------------------------------------

const (
	maxSpikesLayers      = 3
	maxToxicSpikesLayers = 2
)

// isGrounded reports whether floor-bound hazards reach the combatant.
func isGrounded(c *game.Combatant) bool {
	return !c.HasType("Flying") && c.Ability != "levitate"
}

// placeHazard lays one hazard layer on the given team's side of the field
// and returns the narration line.
func (s *Session) placeHazard(team int, hazard string) string {
	hz := &s.Hazards[team]
	label := s.teamLabel(team)
	switch hazard {
	case content.HazardStealthRock:
		if hz.StealthRock {
			return msgFailed
		}
		hz.StealthRock = true
		return fmt.Sprintf("Pointed stones float in the air around %s's team!", label)
	case content.HazardSpikes:
		if hz.Spikes >= maxSpikesLayers {
			return msgFailed
		}
		hz.Spikes++
		return fmt.Sprintf("Spikes were scattered on the ground around %s's team!", label)
	case content.HazardToxicSpikes:
		if hz.ToxicSpikes >= maxToxicSpikesLayers {
			return msgFailed
		}
		hz.ToxicSpikes++
		return fmt.Sprintf("Poison spikes were scattered on the ground around %s's team!", label)
	case content.HazardStickyWeb:
		if hz.StickyWeb {
			return msgFailed
		}
		hz.StickyWeb = true
		return fmt.Sprintf("A sticky web has been laid out beneath %s's team!", label)
	}
	return msgFailed
}

// applyEntryHazards damages and debuffs a combatant that just switched in.
// It returns the narration and whether the entrant fainted on the way in.
func (m *Manager) applyEntryHazards(s *Session, sd *Side, c *game.Combatant) ([]string, bool) {
	hz := &s.Hazards[sd.Team]
	msgs := make([]string, 0, 4)

	if hz.StealthRock {
		eff := m.collab.Content.Effectiveness("Rock", c.Types()...)
		if eff > 0 {
			dmg := maxInt(int(float64(c.MaxHP)*eff/8.0), 1)
			c.CurrentHP = maxInt(c.CurrentHP-dmg, 0)
			msgs = append(msgs, fmt.Sprintf("Pointed stones dug into %s!", c.DisplayName()))
			if c.Fainted() {
				msgs = append(msgs, faintLine(c))
				return msgs, true
			}
		}
	}

	if grounded := isGrounded(c); grounded {
		if hz.Spikes > 0 {
			divisors := [...]int{8, 6, 4}
			dmg := maxInt(c.MaxHP/divisors[hz.Spikes-1], 1)
			c.CurrentHP = maxInt(c.CurrentHP-dmg, 0)
			msgs = append(msgs, fmt.Sprintf("%s was hurt by the spikes!", c.DisplayName()))
			if c.Fainted() {
				msgs = append(msgs, faintLine(c))
				return msgs, true
			}
		}

		if hz.ToxicSpikes > 0 {
			switch {
			case c.HasType("Poison"):
				hz.ToxicSpikes = 0
				msgs = append(msgs, fmt.Sprintf("%s absorbed the poison spikes!", c.DisplayName()))
			case c.HasType("Steel"):
				// unaffected
			default:
				status := "psn"
				if hz.ToxicSpikes >= maxToxicSpikesLayers {
					status = "tox"
				}
				if ok, line := m.collab.Status.ApplyStatus(c, status); ok && line != "" {
					msgs = append(msgs, line)
				}
			}
		}

		if hz.StickyWeb {
			msgs = append(msgs, fmt.Sprintf("%s was caught in a sticky web!", c.DisplayName()))
			if line := s.ApplyStatStage(c, "speed", -1); line != "" {
				msgs = append(msgs, line)
			}
		}
	}

	return msgs, false
}

func faintLine(c *game.Combatant) string {
	return fmt.Sprintf("%s fainted!", c.DisplayName())
}
