package engine

import "github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"

// MoveView is one learned move with its remaining PP.
type MoveView struct {
	MoveID string `json:"move_id"`
	PP     int    `json:"pp"`
	MaxPP  int    `json:"max_pp"`
}

// CombatantView is one creature as a battle participant may see it. Ability,
// held item and moves are owner-only detail and stay empty in opposing views.
type CombatantView struct {
	Name      string   `json:"name"`
	Species   string   `json:"species"`
	Level     int      `json:"level"`
	CurrentHP int      `json:"current_hp"`
	MaxHP     int      `json:"max_hp"`
	Status    string   `json:"status,omitempty"`
	Types     []string `json:"types"`
	Fainted   bool     `json:"fainted"`

	Ability  string     `json:"ability,omitempty"`
	HeldItem string     `json:"held_item,omitempty"`
	Moves    []MoveView `json:"moves,omitempty"`
}

// SideView is one side of the field. The viewer's own side carries the full
// roster, indexed the way switch orders expect; everyone else reveals only
// the combatants on the field plus a remaining count.
type SideView struct {
	Name  string            `json:"name"`
	Team  int               `json:"team"`
	AI    bool              `json:"ai"`
	Class game.TrainerClass `json:"class,omitempty"`
	Yours bool              `json:"yours"`

	// Active holds one entry per field slot; an unfillable slot is null.
	Active    []*CombatantView `json:"active"`
	Roster    []CombatantView  `json:"roster,omitempty"`
	Remaining int              `json:"remaining"`
}

// ForcedSwitchView reports the replacement currently blocking the battle.
type ForcedSwitchView struct {
	Participant int64 `json:"participant"`
	Slot        int   `json:"slot"`
	SelfSwitch  bool  `json:"self_switch"`
}

// SessionView is the sanitized snapshot the calling layer hands out for a
// live battle.
type SessionView struct {
	PublicID string            `json:"public_id"`
	Kind     game.BattleKind   `json:"kind"`
	Format   game.BattleFormat `json:"format"`
	Ranked   bool              `json:"ranked"`

	Turn  int        `json:"turn"`
	Phase game.Phase `json:"phase"`

	Weather      string `json:"weather,omitempty"`
	WeatherTurns int    `json:"weather_turns,omitempty"`
	Terrain      string `json:"terrain,omitempty"`
	TerrainTurns int    `json:"terrain_turns,omitempty"`

	Hazards [2]HazardState `json:"hazards"`
	Screens [2]ScreenState `json:"screens"`

	RulesetID string `json:"ruleset_id"`

	Sides []SideView `json:"sides"`

	WaitingFor   []string          `json:"waiting_for,omitempty"`
	ForcedSwitch *ForcedSwitchView `json:"forced_switch,omitempty"`

	WildDazed bool        `json:"wild_dazed"`
	Over      bool        `json:"over"`
	Winner    game.Winner `json:"winner,omitempty"`

	Log []string `json:"log"`
}

// View builds a sanitized snapshot of a session for one viewer. It takes the
// session lock, so the copy is consistent even while a turn resolves on
// another goroutine.
func (m *Manager) View(sessionID uint64, viewer int64) (*SessionView, error) {
	s, ok := m.store.Get(sessionID)
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v := &SessionView{
		PublicID:     s.PublicID,
		Kind:         s.Kind,
		Format:       s.Format,
		Ranked:       s.Ranked,
		Turn:         s.Turn,
		Phase:        s.Phase,
		Weather:      s.Weather,
		WeatherTurns: s.WeatherTurns,
		Terrain:      s.Terrain,
		TerrainTurns: s.TerrainTurns,
		Hazards:      s.Hazards,
		Screens:      s.Screens,
		RulesetID:    s.RulesetID,
		WildDazed:    s.WildDazed,
		Over:         s.Over,
		Winner:       s.Winner,
		Log:          append([]string(nil), s.Log...),
	}

	for _, sd := range s.Sides {
		yours := sd.Participant == viewer
		sv := SideView{
			Name:  sd.Name,
			Team:  sd.Team,
			AI:    sd.AI,
			Class: sd.Class,
			Yours: yours,
		}
		for slot := range sd.Active {
			if c := sd.ActiveCombatant(slot); c != nil {
				cv := combatantView(c, yours)
				sv.Active = append(sv.Active, &cv)
			} else {
				sv.Active = append(sv.Active, nil)
			}
		}
		for _, c := range sd.Roster {
			if !c.Fainted() {
				sv.Remaining++
			}
			if yours {
				sv.Roster = append(sv.Roster, combatantView(c, true))
			}
		}
		v.Sides = append(v.Sides, sv)
	}

	if s.Phase == game.PhaseWaitingActions {
		v.WaitingFor = s.waitingOn()
	}
	if s.forced != nil {
		v.ForcedSwitch = &ForcedSwitchView{
			Participant: s.forced.participant,
			Slot:        s.forced.slot,
			SelfSwitch:  s.forced.selfSwitch,
		}
	}
	return v, nil
}

func combatantView(c *game.Combatant, owned bool) CombatantView {
	cv := CombatantView{
		Name:      c.DisplayName(),
		Species:   c.SpeciesName,
		Level:     c.Level,
		CurrentHP: c.CurrentHP,
		MaxHP:     c.MaxHP,
		Status:    c.Status,
		Types:     c.Types(),
		Fainted:   c.Fainted(),
	}
	if owned {
		cv.Ability = c.Ability
		cv.HeldItem = c.HeldItem
		for i := range c.Moves {
			ms := &c.Moves[i]
			cv.Moves = append(cv.Moves, MoveView{MoveID: ms.MoveID, PP: ms.PP, MaxPP: ms.MaxPP})
		}
	}
	return cv
}
