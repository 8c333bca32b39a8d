package service

import (
	"errors"
	"fmt"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

var (
	ErrUnknownSpecies = errors.New("unknown species")
	ErrUnknownMove    = errors.New("unknown move")
)

// WildSpec describes one wild encounter to spawn. MoveIDs may be empty, in
// which case the spawn falls back to a basic moveset.
type WildSpec struct {
	Species  string   `json:"species"`
	Level    int      `json:"level"`
	MoveIDs  []string `json:"move_ids"`
	HeldItem string   `json:"held_item"`
}

// Stat formulas without individual values, effort or natures: every
// combatant of a species at a level has the same spread.
func hpForLevel(base, level int) int   { return (2*base*level)/100 + level + 10 }
func statForLevel(base, level int) int { return (2*base*level)/100 + 5 }

func clampLevel(level int) int {
	if level < constants.MinLevel {
		return constants.MinLevel
	}
	if level > constants.MaxLevel {
		return constants.MaxLevel
	}
	return level
}

// NewCombatant derives a full creature record from its species definition.
// Move ids are canonicalized to the dataset's ids; an empty list yields
// Tackle and Growl so the result is always battle-capable.
func NewCombatant(db *content.DB, species string, level int, moveIDs []string) (*game.Combatant, error) {
	sp, ok := db.SpeciesByName(species)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, species)
	}
	level = clampLevel(level)

	c := &game.Combatant{
		SpeciesName: sp.Name,
		Level:       level,
		MaxHP:       hpForLevel(sp.BaseStats.HP, level),
		Attack:      statForLevel(sp.BaseStats.Attack, level),
		Defense:     statForLevel(sp.BaseStats.Defense, level),
		SpAttack:    statForLevel(sp.BaseStats.SpAttack, level),
		SpDefense:   statForLevel(sp.BaseStats.SpDefense, level),
		Speed:       statForLevel(sp.BaseStats.Speed, level),
	}
	c.CurrentHP = c.MaxHP
	if len(sp.Types) > 0 {
		c.Type1 = sp.Types[0]
	}
	if len(sp.Types) > 1 {
		c.Type2 = sp.Types[1]
	}
	if len(sp.Abilities) > 0 {
		c.Ability = sp.Abilities[0]
	}

	if len(moveIDs) == 0 {
		moveIDs = []string{"tackle", "growl"}
	}
	for i, id := range moveIDs {
		mv, found := db.MoveByID(id)
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMove, id)
		}
		c.Moves = append(c.Moves, game.MoveSlot{Ordinal: i, MoveID: mv.ID, PP: mv.PP, MaxPP: mv.PP})
	}
	return c, nil
}

// NewWildCombatant spawns the creature a wild encounter fields. The record
// stays in memory until a successful catch persists it.
func NewWildCombatant(db *content.DB, spec WildSpec) (*game.Combatant, error) {
	c, err := NewCombatant(db, spec.Species, spec.Level, spec.MoveIDs)
	if err != nil {
		return nil, err
	}
	if spec.HeldItem != "" {
		it, ok := db.ItemByID(spec.HeldItem)
		if !ok {
			return nil, fmt.Errorf("%w: unknown item %q", ErrUnknownMove, spec.HeldItem)
		}
		c.HeldItem = it.ID
	}
	return c, nil
}

// starterMovesets gives the classic pick-your-first-partner species a real
// opening kit; everything else starts with the NewCombatant fallback.
var starterMovesets = map[string][]string{
	"bulbasaur":  {"tackle", "growl", "vine_whip"},
	"charmander": {"scratch", "growl", "ember"},
	"squirtle":   {"tackle", "tail_whip", "water_gun"},
	"pikachu":    {"quick_attack", "growl", "thunder_shock"},
}

const starterLevel = 5

// NewStarterCombatant builds the first party member of a freshly registered
// trainer.
func NewStarterCombatant(db *content.DB, species string) (*game.Combatant, error) {
	if species == "" {
		species = "charmander"
	}
	moves := starterMovesets[content.Normalize(species)]
	return NewCombatant(db, species, starterLevel, moves)
}

// seedParty builds an ordered party for the starter trainer seed. Species
// and movesets reference the built-in dataset, so failures here mean the
// embedded defaults are broken.
func seedParty(db *content.DB, members ...WildSpec) ([]game.Combatant, error) {
	party := make([]game.Combatant, 0, len(members))
	for slot, m := range members {
		c, err := NewCombatant(db, m.Species, m.Level, m.MoveIDs)
		if err != nil {
			return nil, err
		}
		c.PartySlot = slot
		party = append(party, *c)
	}
	return party, nil
}

// StarterTrainers is the seed roster for a fresh database: a default player
// plus the NPC opponents trainer battles go up against.
func StarterTrainers(db *content.DB) ([]game.Trainer, error) {
	type seed struct {
		name    string
		class   game.TrainerClass
		money   int
		members []WildSpec
	}
	seeds := []seed{
		{name: "Red", class: game.ClassNone, money: 3000, members: []WildSpec{
			{Species: "Pikachu", Level: 12, MoveIDs: []string{"thunder_shock", "quick_attack", "tail_whip", "thunder_wave"}},
			{Species: "Charmander", Level: 10, MoveIDs: []string{"scratch", "ember", "growl"}},
		}},
		{name: "Joey", class: game.ClassYoungster, money: 200, members: []WildSpec{
			{Species: "Rattata", Level: 8, MoveIDs: []string{"tackle", "quick_attack", "tail_whip"}},
			{Species: "Pidgey", Level: 9, MoveIDs: []string{"tackle", "wing_attack"}},
		}},
		{name: "Dana", class: game.ClassLass, money: 300, members: []WildSpec{
			{Species: "Flabébé", Level: 10, MoveIDs: []string{"tackle", "growl", "double_team"}},
			{Species: "Zubat", Level: 10, MoveIDs: []string{"wing_attack", "toxic"}},
		}},
		{name: "Flint", class: game.ClassHiker, money: 500, members: []WildSpec{
			{Species: "Geodude", Level: 12, MoveIDs: []string{"tackle", "rock_slide", "tail_whip"}},
			{Species: "Geodude", Level: 14, MoveIDs: []string{"tackle", "rock_slide", "double_team"}},
		}},
		{name: "Lance", class: game.ClassVeteran, money: 5000, members: []WildSpec{
			{Species: "Gyarados", Level: 50, MoveIDs: []string{"surf", "ice_beam", "protect"}},
			{Species: "Garchomp", Level: 50, MoveIDs: []string{"earthquake", "dragon_claw", "swords_dance", "rock_slide"}},
			{Species: "Tyranitar", Level: 50, MoveIDs: []string{"rock_slide", "earthquake", "protect"}},
		}},
	}

	trainers := make([]game.Trainer, 0, len(seeds))
	for _, sd := range seeds {
		party, err := seedParty(db, sd.members...)
		if err != nil {
			return nil, fmt.Errorf("starter trainer %s: %w", sd.name, err)
		}
		trainers = append(trainers, game.Trainer{Name: sd.name, Class: sd.class, Money: sd.money, Party: party})
	}
	return trainers, nil
}
