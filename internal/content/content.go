// Package content holds the read-only battle data: species, moves, items
// and the type-effectiveness chart. The battle engine and its collaborators
// consume it through lookups by normalized id; nothing here is mutated after
// loading.
package content

// Move categories.
const (
	CategoryPhysical = "physical"
	CategorySpecial  = "special"
	CategoryStatus   = "status"
)

// Move target categories, matching the resolution table in the engine.
const (
	TargetSingle       = "single"
	TargetAllOpponents = "all_opponents"
	TargetAllAdjacent  = "all_adjacent"
	TargetAll          = "all"
	TargetAllAllies    = "all_allies"
	TargetAlly         = "ally"
	TargetSelf         = "self"
	TargetUserField    = "user_field"
	TargetEntireField  = "entire_field"
	TargetEnemyField   = "enemy_field"
)

// Field effect ids.
const (
	WeatherRain      = "rain"
	WeatherSun       = "sun"
	WeatherSandstorm = "sandstorm"
	WeatherHail      = "hail"

	TerrainElectric = "electric"
	TerrainGrassy   = "grassy"
	TerrainPsychic  = "psychic"
	TerrainMisty    = "misty"

	ScreenReflect     = "reflect"
	ScreenLightScreen = "light_screen"

	HazardStealthRock = "stealth_rock"
	HazardSpikes      = "spikes"
	HazardToxicSpikes = "toxic_spikes"
	HazardStickyWeb   = "sticky_web"
)

// BaseStats are the species-level stat bases used when spawning wild
// combatants.
type BaseStats struct {
	HP        int `yaml:"hp" json:"hp"`
	Attack    int `yaml:"attack" json:"attack"`
	Defense   int `yaml:"defense" json:"defense"`
	SpAttack  int `yaml:"sp_attack" json:"sp_attack"`
	SpDefense int `yaml:"sp_defense" json:"sp_defense"`
	Speed     int `yaml:"speed" json:"speed"`
}

// Species is one creature definition.
type Species struct {
	Name      string    `yaml:"name" json:"name"`
	Types     []string  `yaml:"types" json:"types"`
	CatchRate int       `yaml:"catch_rate" json:"catch_rate"`
	Abilities []string  `yaml:"abilities" json:"abilities"`
	BaseStats BaseStats `yaml:"base_stats" json:"base_stats"`
}

// StatChange describes a stat-stage modification a status move applies.
type StatChange struct {
	Stat   string `yaml:"stat" json:"stat"`
	Stages int    `yaml:"stages" json:"stages"`
	// Target is "self" or "target"; empty means "target".
	Target string `yaml:"target" json:"target"`
}

// Move is one move definition.
type Move struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Category string `yaml:"category" json:"category"`
	Power    int    `yaml:"power" json:"power"`
	Accuracy int    `yaml:"accuracy" json:"accuracy"`
	PP       int    `yaml:"pp" json:"pp"`
	Priority int    `yaml:"priority" json:"priority"`
	Target   string `yaml:"target" json:"target"`

	// Effect flags. A move carries at most a few of these.
	SelfSwitch   bool         `yaml:"self_switch" json:"self_switch"`
	Protecting   bool         `yaml:"protecting" json:"protecting"`
	Enduring     bool         `yaml:"enduring" json:"enduring"`
	Hazard       string       `yaml:"hazard" json:"hazard"`
	Weather      string       `yaml:"weather" json:"weather"`
	Terrain      string       `yaml:"terrain" json:"terrain"`
	Screen       string       `yaml:"screen" json:"screen"`
	StatusEffect string       `yaml:"status_effect" json:"status_effect"`
	StatusChance int          `yaml:"status_chance" json:"status_chance"`
	StatChanges  []StatChange `yaml:"stat_changes" json:"stat_changes"`
	HealPercent  int          `yaml:"heal_percent" json:"heal_percent"`
}

// Damaging reports whether the move deals direct damage.
func (m Move) Damaging() bool {
	return m.Category == CategoryPhysical || m.Category == CategorySpecial
}

// Item kinds.
const (
	ItemBall     = "ball"
	ItemHeld     = "held"
	ItemMedicine = "medicine"
)

// Item is one item definition. Held-item behavior is keyed off the item id
// itself (leftovers, choice_band, ...) rather than a separate effect tag.
type Item struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Kind string `yaml:"kind" json:"kind"`

	// Ball items.
	BallMultiplier float64 `yaml:"ball_multiplier" json:"ball_multiplier"`
	Guaranteed     bool    `yaml:"guaranteed" json:"guaranteed"`

	// Medicine items.
	HealAmount  int  `yaml:"heal_amount" json:"heal_amount"`
	HealsFully  bool `yaml:"heals_fully" json:"heals_fully"`
	CuresStatus bool `yaml:"cures_status" json:"cures_status"`
	Revives     bool `yaml:"revives" json:"revives"`
}

// DB is the loaded dataset. Lookup keys are normalized (see Normalize), so
// "Stealth Rock", "stealth_rock" and "stealthrock" all resolve to the same
// entry.
type DB struct {
	species map[string]Species
	moves   map[string]Move
	items   map[string]Item
}

// SpeciesByName looks up a species definition.
func (db *DB) SpeciesByName(name string) (Species, bool) {
	s, ok := db.species[Normalize(name)]
	return s, ok
}

// MoveByID looks up a move definition. Struggle always resolves, even when
// absent from the dataset, because the engine substitutes it when a
// combatant has no usable moves left.
func (db *DB) MoveByID(id string) (Move, bool) {
	if m, ok := db.moves[Normalize(id)]; ok {
		return m, true
	}
	if Normalize(id) == "struggle" {
		return struggleMove, true
	}
	return Move{}, false
}

// ItemByID looks up an item definition.
func (db *DB) ItemByID(id string) (Item, bool) {
	i, ok := db.items[Normalize(id)]
	return i, ok
}

// Effectiveness returns the type-chart multiplier of a move type against the
// given defender types.
func (db *DB) Effectiveness(moveType string, defenderTypes ...string) float64 {
	return Effectiveness(moveType, defenderTypes...)
}

// struggleMove is the built-in fallback move: typeless 40-power physical hit
// whose recoil the engine applies as a fraction of the user's max HP.
var struggleMove = Move{
	ID:       "struggle",
	Name:     "Struggle",
	Type:     "",
	Category: CategoryPhysical,
	Power:    40,
	Accuracy: 100,
	PP:       1,
	Target:   TargetSingle,
}
