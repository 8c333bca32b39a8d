package engine

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// Team indices. The trainer team always sorts first for deterministic
// ordering; the wild or opposing side is team 1.
const (
	TeamTrainer  = 0
	TeamOpponent = 1
)

// HazardState tracks entry hazards laid on one team's side of the field.
type HazardState struct {
	StealthRock bool `json:"stealth_rock"`
	Spikes      int  `json:"spikes"`       // 0..3 layers
	ToxicSpikes int  `json:"toxic_spikes"` // 0..2 layers
	StickyWeb   bool `json:"sticky_web"`
}

// ScreenState tracks remaining screen turns on one team's side.
type ScreenState struct {
	ReflectTurns     int `json:"reflect_turns"`
	LightScreenTurns int `json:"light_screen_turns"`
}

// Side is one participant in the battle: a human trainer (positive id) or an
// AI/wild controller (negative id). A team is one or two Sides.
type Side struct {
	Participant int64  `json:"participant"`
	Name        string `json:"name"`
	Team        int    `json:"team"`
	AI          bool   `json:"ai"`

	Roster []*game.Combatant `json:"roster"`
	// Active holds the roster indices currently on the field. One entry in
	// Singles/Multi, two in Doubles.
	Active []int `json:"active"`

	CanSwitch   bool `json:"can_switch"`
	CanUseItems bool `json:"can_use_items"`
	CanFlee     bool `json:"can_flee"`

	Class game.TrainerClass `json:"class,omitempty"`

	volatile map[int]*VolatileState
}

// ActiveCombatant returns the combatant in the given active slot, or nil.
func (sd *Side) ActiveCombatant(slot int) *game.Combatant {
	if slot < 0 || slot >= len(sd.Active) {
		return nil
	}
	idx := sd.Active[slot]
	if idx < 0 || idx >= len(sd.Roster) {
		return nil
	}
	return sd.Roster[idx]
}

// VolatileAt returns (allocating on first use) the battle-only state of the
// roster member at idx.
func (sd *Side) VolatileAt(idx int) *VolatileState {
	if sd.volatile == nil {
		sd.volatile = make(map[int]*VolatileState)
	}
	v, ok := sd.volatile[idx]
	if !ok {
		v = newVolatileState()
		sd.volatile[idx] = v
	}
	return v
}

// VolatileOf locates c in the roster and returns its battle-only state, or
// nil when c does not belong to this side.
func (sd *Side) VolatileOf(c *game.Combatant) *VolatileState {
	for i := range sd.Roster {
		if sd.Roster[i] == c {
			return sd.VolatileAt(i)
		}
	}
	return nil
}

// Defeated reports whether every roster member is out of HP.
func (sd *Side) Defeated() bool {
	for _, c := range sd.Roster {
		if !c.Fainted() {
			return false
		}
	}
	return true
}

// HasReplacement reports whether a healthy roster member is sitting out.
func (sd *Side) HasReplacement() bool {
	for i, c := range sd.Roster {
		if c.Fainted() {
			continue
		}
		if !sd.isActiveIndex(i) {
			return true
		}
	}
	return false
}

func (sd *Side) isActiveIndex(idx int) bool {
	for _, a := range sd.Active {
		if a == idx {
			return true
		}
	}
	return false
}

// ActionKey identifies one pending action: who acts, and from which of their
// active slots.
type ActionKey struct {
	Participant int64
	Slot        int
}

// forcedSwitch marks a human participant who must supply a replacement
// before the next turn may run. selfSwitch distinguishes the VoltSwitch
// phase (a surviving user switching itself out) from a faint replacement.
type forcedSwitch struct {
	participant int64
	slot        int
	selfSwitch  bool
}

// Session is the aggregate root for one live battle. It is mutated only
// through Manager operations; the embedded mutex serializes them so at most
// one turn resolution is ever in flight.
type Session struct {
	ID       uint64            `json:"id"`
	PublicID string            `json:"public_id"`
	Kind     game.BattleKind   `json:"kind"`
	Format   game.BattleFormat `json:"format"`
	Ranked   bool              `json:"ranked"`

	Turn  int        `json:"turn"`
	Phase game.Phase `json:"phase"`

	Sides []*Side `json:"sides"`

	Weather      string `json:"weather"`
	WeatherTurns int    `json:"weather_turns"`
	Terrain      string `json:"terrain"`
	TerrainTurns int    `json:"terrain_turns"`

	// Hazards and Screens are indexed by team.
	Hazards [2]HazardState `json:"hazards"`
	Screens [2]ScreenState `json:"screens"`

	RulesetID string `json:"ruleset_id"`

	WildDazed bool        `json:"wild_dazed"`
	Over      bool        `json:"over"`
	Winner    game.Winner `json:"winner"`

	Log []string `json:"log"`

	// LastActivity is maintained for the calling layer's idle expiry; the
	// engine itself has no timeout behavior.
	LastActivity time.Time `json:"last_activity"`

	pending map[ActionKey]*Action
	// forced is the replacement currently blocking the battle; voltPending
	// remembers a self-switch pivot until faint replacements are settled.
	forced      *forcedSwitch
	voltPending *forcedSwitch

	mu sync.Mutex
}

func (s *Session) touch() { s.LastActivity = time.Now() }

// participantSide returns the Side owned by the given participant id.
func (s *Session) participantSide(id int64) *Side {
	for _, sd := range s.Sides {
		if sd.Participant == id {
			return sd
		}
	}
	return nil
}

func (s *Session) sideIndex(sd *Side) int {
	for i := range s.Sides {
		if s.Sides[i] == sd {
			return i
		}
	}
	return -1
}

// fieldPos addresses one active slot on the field.
type fieldPos struct {
	side *Side
	slot int
}

func (p fieldPos) combatant() *game.Combatant { return p.side.ActiveCombatant(p.slot) }

// teamPositions flattens a team's active slots in deterministic order: side
// creation order, then slot. Doubles yields two positions on one side; Multi
// yields one position on each partner.
func (s *Session) teamPositions(team int) []fieldPos {
	var out []fieldPos
	for _, sd := range s.Sides {
		if sd.Team != team {
			continue
		}
		for slot := range sd.Active {
			out = append(out, fieldPos{side: sd, slot: slot})
		}
	}
	return out
}

// livePositions filters teamPositions down to conscious combatants.
func (s *Session) livePositions(team int) []fieldPos {
	var out []fieldPos
	for _, p := range s.teamPositions(team) {
		if c := p.combatant(); c != nil && !c.Fainted() {
			out = append(out, p)
		}
	}
	return out
}

// teamLabel names a team for shared narration lines.
func (s *Session) teamLabel(team int) string {
	names := make([]string, 0, 2)
	for _, sd := range s.Sides {
		if sd.Team == team {
			names = append(names, sd.Name)
		}
	}
	return strings.Join(names, " and ")
}

// wildSide returns the wild combatant's side in a Wild battle.
func (s *Session) wildSide() *Side {
	if s.Kind != game.BattleWild {
		return nil
	}
	for _, sd := range s.Sides {
		if sd.Team == TeamOpponent {
			return sd
		}
	}
	return nil
}

// SetWeather replaces the current weather and returns a narration line.
// Collaborators (entry abilities) and field moves share this path.
func (s *Session) SetWeather(id string, turns int) string {
	s.Weather = id
	s.WeatherTurns = turns
	switch id {
	case content.WeatherRain:
		return "It started to rain!"
	case content.WeatherSun:
		return "The sunlight turned harsh!"
	case content.WeatherSandstorm:
		return "A sandstorm kicked up!"
	case content.WeatherHail:
		return "It started to hail!"
	}
	return fmt.Sprintf("The weather became %s!", id)
}

// SetTerrain replaces the current terrain and returns a narration line.
func (s *Session) SetTerrain(id string, turns int) string {
	s.Terrain = id
	s.TerrainTurns = turns
	switch id {
	case content.TerrainElectric:
		return "An electric current ran across the battlefield!"
	case content.TerrainGrassy:
		return "Grass grew to cover the battlefield!"
	case content.TerrainPsychic:
		return "The battlefield got weird!"
	case content.TerrainMisty:
		return "Mist swirled around the battlefield!"
	}
	return fmt.Sprintf("The terrain became %s!", id)
}

// ApplyStatStage shifts a stat stage on c and returns a narration line.
// Exposed so the ability handler can implement entry effects like
// Intimidate without reaching into engine internals.
func (s *Session) ApplyStatStage(c *game.Combatant, stat string, delta int) string {
	for _, sd := range s.Sides {
		v := sd.VolatileOf(c)
		if v == nil {
			continue
		}
		applied := v.ApplyStage(stat, delta)
		label := statLabel(stat)
		switch {
		case applied == 0 && delta > 0:
			return fmt.Sprintf("%s's %s won't go any higher!", c.DisplayName(), label)
		case applied == 0 && delta < 0:
			return fmt.Sprintf("%s's %s won't go any lower!", c.DisplayName(), label)
		case applied >= 2:
			return fmt.Sprintf("%s's %s rose sharply!", c.DisplayName(), label)
		case applied == 1:
			return fmt.Sprintf("%s's %s rose!", c.DisplayName(), label)
		case applied == -1:
			return fmt.Sprintf("%s's %s fell!", c.DisplayName(), label)
		default:
			return fmt.Sprintf("%s's %s fell harshly!", c.DisplayName(), label)
		}
	}
	return ""
}

func statLabel(stat string) string {
	switch stat {
	case "attack":
		return "Attack"
	case "defense":
		return "Defense"
	case "sp_attack":
		return "Sp. Atk"
	case "sp_defense":
		return "Sp. Def"
	case "speed":
		return "Speed"
	case "accuracy":
		return "accuracy"
	case "evasion":
		return "evasiveness"
	}
	return stat
}

// ForcedSwitchInfo reports the participant and slot blocked on a mandatory
// replacement, when one is pending.
func (s *Session) ForcedSwitchInfo() (participant int64, slot int, selfSwitch bool, pending bool) {
	if s.forced == nil {
		return 0, 0, false, false
	}
	return s.forced.participant, s.forced.slot, s.forced.selfSwitch, true
}

// OpposingActive lists the live active combatants on the other team from c.
// Entry abilities like Intimidate use it to find their targets.
func (s *Session) OpposingActive(c *game.Combatant) []*game.Combatant {
	team := -1
	for _, sd := range s.Sides {
		for _, member := range sd.Roster {
			if member == c {
				team = sd.Team
				break
			}
		}
	}
	if team < 0 {
		return nil
	}
	out := make([]*game.Combatant, 0, 2)
	for _, pos := range s.livePositions(opposingTeam(team)) {
		out = append(out, pos.combatant())
	}
	return out
}
