package game

import (
	"strings"

	"gorm.io/gorm"
)

// BattleKind distinguishes the three encounter types the engine resolves.
// Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type BattleKind string

const (
	BattleWild    BattleKind = "wild"
	BattleTrainer BattleKind = "trainer"
	BattlePvP     BattleKind = "pvp"
)

// BattleFormat selects how many active slots each side fields.
type BattleFormat string

const (
	FormatSingles BattleFormat = "singles"
	FormatDoubles BattleFormat = "doubles"
	FormatMulti   BattleFormat = "multi"
)

// ActiveSlots returns how many combatants a side fields at once.
func (f BattleFormat) ActiveSlots() int {
	if f == FormatDoubles {
		return 2
	}
	return 1
}

// Phase is the battle session lifecycle state.
type Phase string

const (
	PhaseStart          Phase = "start"
	PhaseWaitingActions Phase = "waiting_actions"
	PhaseResolving      Phase = "resolving"
	PhaseForcedSwitch   Phase = "forced_switch"
	PhaseVoltSwitch     Phase = "volt_switch"
	PhaseDazed          Phase = "dazed"
	PhaseEnd            Phase = "end"
)

// Winner identifies how a finished battle ended.
type Winner string

const (
	WinnerNone     Winner = ""
	WinnerTrainer  Winner = "trainer"
	WinnerOpponent Winner = "opponent"
	WinnerDraw     Winner = "draw"
	WinnerFled     Winner = "none_fled"
)

// Trainer stores a player (or NPC) identity and aggregate ranked stats.
type Trainer struct {
	gorm.Model
	Name         string       `json:"name"`
	Class        TrainerClass `json:"class"`
	Money        int          `json:"money"`
	RankedWins   int          `json:"ranked_wins"`
	RankedLosses int          `json:"ranked_losses"`
	// Party is ordered by PartySlot; the first non-fainted member leads.
	Party []Combatant `json:"party" gorm:"foreignKey:OwnerID"`
}

// Combatant is one creature record. It is owned by the game-state layer;
// during a battle the engine mutates only CurrentHP, move PP, HeldItem
// consumption and Status. Everything else is read-only to the engine.
type Combatant struct {
	gorm.Model
	// OwnerID is nil for wild spawns that have not been caught yet.
	OwnerID     *uint  `json:"owner_id"`
	PartySlot   int    `json:"party_slot"`
	SpeciesName string `json:"species_name"`
	Nickname    string `json:"nickname"`
	Level       int    `json:"level"`
	MaxHP       int    `json:"max_hp"`
	CurrentHP   int    `json:"current_hp"`
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
	SpAttack    int    `json:"sp_attack"`
	SpDefense   int    `json:"sp_defense"`
	Speed       int    `json:"speed"`
	Type1       string `json:"type1"`
	Type2       string `json:"type2"`
	Ability     string `json:"ability"`
	HeldItem    string `json:"held_item"`
	// Status holds the major status condition id (brn, psn, tox, par,
	// slp, frz) or empty when healthy. Volatile statuses never live here.
	Status string     `json:"status"`
	Moves  []MoveSlot `json:"moves" gorm:"foreignKey:CombatantID"`
}

// DisplayName prefers the nickname when one was given.
func (c *Combatant) DisplayName() string {
	if c.Nickname != "" {
		return c.Nickname
	}
	return c.SpeciesName
}

// Fainted reports whether the combatant is out of the battle.
func (c *Combatant) Fainted() bool { return c.CurrentHP <= 0 }

// Types returns the non-empty type names.
func (c *Combatant) Types() []string {
	types := []string{c.Type1}
	if c.Type2 != "" {
		types = append(types, c.Type2)
	}
	return types
}

// HasType reports whether the combatant carries the given type name. The
// comparison ignores case so chart names and dataset names interchange.
func (c *Combatant) HasType(name string) bool {
	return strings.EqualFold(c.Type1, name) || (c.Type2 != "" && strings.EqualFold(c.Type2, name))
}

// MoveSlot is one learned move with its remaining PP.
type MoveSlot struct {
	gorm.Model
	CombatantID uint   `json:"-"`
	Ordinal     int    `json:"ordinal"`
	MoveID      string `json:"move_id"`
	PP          int    `json:"pp"`
	MaxPP       int    `json:"max_pp"`
}

// Store move rows in a dedicated table for clarity.
func (MoveSlot) TableName() string { return "combatant_moves" }

// BattleRecord is the persisted outcome of a finished battle. Live sessions
// stay in memory; only terminal results reach the database.
type BattleRecord struct {
	gorm.Model
	PublicID string       `json:"public_id" gorm:"uniqueIndex"`
	Kind     BattleKind   `json:"kind"`
	Format   BattleFormat `json:"format"`
	Ranked   bool         `json:"ranked"`
	Winner   Winner       `json:"winner"`
	// Participant ids as the engine saw them: positive trainer ids for
	// humans, negative ids for AI-controlled sides.
	TrainerSideID  int64 `json:"trainer_side_id"`
	OpponentSideID int64 `json:"opponent_side_id"`
	TurnCount      int   `json:"turn_count"`
	PrizeMoney     int   `json:"prize_money"`
}

func (BattleRecord) TableName() string { return "battle_records" }
