// Package ability is the production ability collaborator. It covers the
// field-shaping entry abilities (weather and terrain summons, Intimidate)
// and the weather residuals (sandstorm and hail chip, Rain Dish and Ice
// Body recovery). Abilities that modulate damage or grounding are resolved
// where those mechanics live, not here.
package ability

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// summonTurns is how long an ability-summoned field effect lasts.
const summonTurns = 5

// Handler implements engine.AbilityHandler. It keeps no state of its own;
// everything it touches lives on the session or the combatant.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// TriggerOnEntry fires when a combatant takes the field.
func (h *Handler) TriggerOnEntry(c *game.Combatant, s *engine.Session) []string {
	switch c.Ability {
	case "drizzle":
		return h.summonWeather(c, s, content.WeatherRain)
	case "drought":
		return h.summonWeather(c, s, content.WeatherSun)
	case "sand_stream":
		return h.summonWeather(c, s, content.WeatherSandstorm)
	case "snow_warning":
		return h.summonWeather(c, s, content.WeatherHail)
	case "electric_surge":
		return h.summonTerrain(c, s, content.TerrainElectric)
	case "grassy_surge":
		return h.summonTerrain(c, s, content.TerrainGrassy)
	case "psychic_surge":
		return h.summonTerrain(c, s, content.TerrainPsychic)
	case "misty_surge":
		return h.summonTerrain(c, s, content.TerrainMisty)
	case "intimidate":
		return h.intimidate(c, s)
	}
	return nil
}

func (h *Handler) summonWeather(c *game.Combatant, s *engine.Session, id string) []string {
	if s.Weather == id {
		return nil
	}
	return []string{banner(c), s.SetWeather(id, summonTurns)}
}

func (h *Handler) summonTerrain(c *game.Combatant, s *engine.Session, id string) []string {
	if s.Terrain == id {
		return nil
	}
	return []string{banner(c), s.SetTerrain(id, summonTurns)}
}

func (h *Handler) intimidate(c *game.Combatant, s *engine.Session) []string {
	targets := s.OpposingActive(c)
	if len(targets) == 0 {
		return nil
	}
	lines := make([]string, 0, 1+len(targets))
	lines = append(lines, banner(c))
	for _, t := range targets {
		if line := s.ApplyStatStage(t, "attack", -1); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ApplyWeatherDamage chips combatants caught out in sandstorm or hail.
func (h *Handler) ApplyWeatherDamage(c *game.Combatant, weather string) []string {
	var line string
	switch weather {
	case content.WeatherSandstorm:
		if sandImmune(c) {
			return nil
		}
		line = fmt.Sprintf("%s is buffeted by the sandstorm!", c.DisplayName())
	case content.WeatherHail:
		if hailImmune(c) {
			return nil
		}
		line = fmt.Sprintf("%s is buffeted by the hail!", c.DisplayName())
	default:
		return nil
	}
	dmg := maxInt(c.MaxHP/16, 1)
	c.CurrentHP = maxInt(c.CurrentHP-dmg, 0)
	return []string{line}
}

// ApplyWeatherHealing recovers HP for abilities fed by the weather.
func (h *Handler) ApplyWeatherHealing(c *game.Combatant, weather string) []string {
	heals := (weather == content.WeatherRain && c.Ability == "rain_dish") ||
		(weather == content.WeatherHail && c.Ability == "ice_body")
	if !heals || c.CurrentHP >= c.MaxHP {
		return nil
	}
	heal := maxInt(c.MaxHP/16, 1)
	c.CurrentHP = minInt(c.CurrentHP+heal, c.MaxHP)
	return []string{fmt.Sprintf("%s's %s restored a little HP!", c.DisplayName(), label(c.Ability))}
}

func sandImmune(c *game.Combatant) bool {
	if c.HasType("Rock") || c.HasType("Ground") || c.HasType("Steel") {
		return true
	}
	switch c.Ability {
	case "sand_veil", "sand_rush", "sand_force", "overcoat", "magic_guard":
		return true
	}
	return false
}

func hailImmune(c *game.Combatant) bool {
	if c.HasType("Ice") {
		return true
	}
	switch c.Ability {
	case "ice_body", "snow_cloak", "overcoat", "magic_guard":
		return true
	}
	return false
}

// banner is the "[name]'s [Ability]!" callout that precedes an ability's
// visible effect.
func banner(c *game.Combatant) string {
	return fmt.Sprintf("%s's %s!", c.DisplayName(), label(c.Ability))
}

// label renders a snake_case ability id as a display name. Casers are
// stateful, so one is built per call.
func label(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
