package engine

import (
	"fmt"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
)

// --- End of turn --------------------------------------------------------

// applyEndOfTurn ticks everything that happens after the last action:
// residual status damage and held-item healing per combatant, weather
// damage and healing through the ability handler, grassy terrain recovery,
// and finally the field-effect counters.
func (m *Manager) applyEndOfTurn(tc *turnContext) {
	s := tc.s

	for _, pos := range s.fieldOrder() {
		c := pos.combatant()
		if c == nil || c.Fainted() {
			continue
		}

		for _, line := range m.collab.Status.ApplyEndOfTurn(c) {
			tc.add(line)
		}
		if c.Fainted() {
			m.endOfTurnFaint(tc, pos)
			continue
		}

		if line := heldEndOfTurn(c); line != "" {
			tc.add(line)
			if c.Fainted() {
				m.endOfTurnFaint(tc, pos)
				continue
			}
		}

		if s.Weather != "" {
			for _, line := range m.collab.Ability.ApplyWeatherDamage(c, s.Weather) {
				tc.add(line)
			}
			if c.Fainted() {
				m.endOfTurnFaint(tc, pos)
				continue
			}
			for _, line := range m.collab.Ability.ApplyWeatherHealing(c, s.Weather) {
				tc.add(line)
			}
		}

		if s.Terrain == content.TerrainGrassy && isGrounded(c) && c.CurrentHP < c.MaxHP {
			heal := maxInt(c.MaxHP/16, 1)
			c.CurrentHP = minInt(c.CurrentHP+heal, c.MaxHP)
			tc.add(fmt.Sprintf("%s is healed by the grassy terrain!", c.DisplayName()))
		}

		m.collab.Status.ClearVolatile(c, volProtected)
		m.collab.Status.ClearVolatile(c, volEndure)
		m.collab.Status.ClearVolatile(c, volHelpingHand)
	}

	m.tickFieldCounters(tc)
}

// endOfTurnFaint handles a combatant dropped by residual damage. The wild
// daze window does not apply here: end-of-turn only runs when the wild
// creature is out of that window.
func (m *Manager) endOfTurnFaint(tc *turnContext, pos fieldPos) {
	c := pos.combatant()
	tc.add(faintLine(c))
	m.collab.Status.ClearAllVolatile(c)
	if v := pos.side.VolatileOf(c); v != nil {
		v.reset()
	}
	m.checkBattleOver(tc, tc.s)
}

// fieldOrder walks every active slot in deterministic order.
func (s *Session) fieldOrder() []fieldPos {
	out := make([]fieldPos, 0, 4)
	out = append(out, s.teamPositions(TeamTrainer)...)
	out = append(out, s.teamPositions(TeamOpponent)...)
	return out
}

// tickFieldCounters decrements weather, terrain and screen turns, clearing
// whatever expired.
func (m *Manager) tickFieldCounters(tc *turnContext) {
	s := tc.s

	if s.Weather != "" && s.WeatherTurns > 0 {
		s.WeatherTurns--
		if s.WeatherTurns == 0 {
			tc.add(weatherEndLine(s.Weather))
			s.Weather = ""
		}
	}
	if s.Terrain != "" && s.TerrainTurns > 0 {
		s.TerrainTurns--
		if s.TerrainTurns == 0 {
			tc.add(terrainEndLine(s.Terrain))
			s.Terrain = ""
		}
	}

	for team := range s.Screens {
		scr := &s.Screens[team]
		if scr.ReflectTurns > 0 {
			scr.ReflectTurns--
			if scr.ReflectTurns == 0 {
				tc.add(fmt.Sprintf("%s's team's Reflect wore off!", s.teamLabel(team)))
			}
		}
		if scr.LightScreenTurns > 0 {
			scr.LightScreenTurns--
			if scr.LightScreenTurns == 0 {
				tc.add(fmt.Sprintf("%s's team's Light Screen wore off!", s.teamLabel(team)))
			}
		}
	}
}

func weatherEndLine(weather string) string {
	switch weather {
	case content.WeatherRain:
		return "The rain stopped."
	case content.WeatherSun:
		return "The sunlight faded."
	case content.WeatherSandstorm:
		return "The sandstorm subsided."
	case content.WeatherHail:
		return "The hail stopped."
	}
	return "The weather returned to normal."
}

func terrainEndLine(terrain string) string {
	switch terrain {
	case content.TerrainElectric:
		return "The electricity disappeared from the battlefield."
	case content.TerrainGrassy:
		return "The grass disappeared from the battlefield."
	case content.TerrainPsychic:
		return "The weirdness disappeared from the battlefield."
	case content.TerrainMisty:
		return "The mist disappeared from the battlefield."
	}
	return "The terrain returned to normal."
}
