package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// Shared fixtures for the engine tests: a small move and item table, an
// in-memory status manager, a scriptable random source and battle builders.
// Damage comes from stub calculators so assertions stay exact.

// --- content stub -------------------------------------------------------

type stubContent struct {
	moves   map[string]content.Move
	items   map[string]content.Item
	species map[string]content.Species
}

func newStubContent() *stubContent {
	sc := &stubContent{
		moves:   make(map[string]content.Move),
		items:   make(map[string]content.Item),
		species: make(map[string]content.Species),
	}
	for _, mv := range []content.Move{
		{ID: "tackle", Name: "Tackle", Type: "Normal", Category: content.CategoryPhysical, Power: 40, Accuracy: 100, PP: 35, Target: content.TargetSingle},
		{ID: "thunderbolt", Name: "Thunderbolt", Type: "Electric", Category: content.CategorySpecial, Power: 90, Accuracy: 100, PP: 15, Target: content.TargetSingle},
		{ID: "aqua_jet", Name: "Aqua Jet", Type: "Water", Category: content.CategoryPhysical, Power: 40, Accuracy: 100, PP: 20, Priority: 1, Target: content.TargetSingle},
		{ID: "surf", Name: "Surf", Type: "Water", Category: content.CategorySpecial, Power: 90, Accuracy: 100, PP: 15, Target: content.TargetAllOpponents},
		{ID: "earthquake", Name: "Earthquake", Type: "Ground", Category: content.CategoryPhysical, Power: 100, Accuracy: 100, PP: 10, Target: content.TargetAllAdjacent},
		{ID: "u_turn", Name: "U-turn", Type: "Bug", Category: content.CategoryPhysical, Power: 70, Accuracy: 100, PP: 20, Target: content.TargetSingle, SelfSwitch: true},
		{ID: "protect", Name: "Protect", Type: "Normal", Category: content.CategoryStatus, PP: 10, Priority: 4, Target: content.TargetSelf, Protecting: true},
		{ID: "endure", Name: "Endure", Type: "Normal", Category: content.CategoryStatus, PP: 10, Priority: 4, Target: content.TargetSelf, Enduring: true},
		{ID: "helping_hand", Name: "Helping Hand", Type: "Normal", Category: content.CategoryStatus, PP: 20, Priority: 5, Target: content.TargetAlly},
		{ID: "heal_pulse", Name: "Heal Pulse", Type: "Psychic", Category: content.CategoryStatus, PP: 10, Target: content.TargetAlly, HealPercent: 50},
		{ID: "recover", Name: "Recover", Type: "Normal", Category: content.CategoryStatus, PP: 10, Target: content.TargetSelf, HealPercent: 50},
		{ID: "swords_dance", Name: "Swords Dance", Type: "Normal", Category: content.CategoryStatus, PP: 20, Target: content.TargetSelf, StatChanges: []content.StatChange{{Stat: "attack", Stages: 2, Target: "self"}}},
		{ID: "growl", Name: "Growl", Type: "Normal", Category: content.CategoryStatus, PP: 40, Target: content.TargetAllOpponents, StatChanges: []content.StatChange{{Stat: "attack", Stages: -1}}},
		{ID: "thunder_wave", Name: "Thunder Wave", Type: "Electric", Category: content.CategoryStatus, PP: 20, Target: content.TargetSingle, StatusEffect: "par"},
		{ID: "rain_dance", Name: "Rain Dance", Type: "Water", Category: content.CategoryStatus, PP: 5, Target: content.TargetEntireField, Weather: content.WeatherRain},
		{ID: "reflect", Name: "Reflect", Type: "Psychic", Category: content.CategoryStatus, PP: 20, Target: content.TargetUserField, Screen: content.ScreenReflect},
		{ID: "stealth_rock", Name: "Stealth Rock", Type: "Rock", Category: content.CategoryStatus, PP: 20, Target: content.TargetEnemyField, Hazard: content.HazardStealthRock},
		{ID: "spikes", Name: "Spikes", Type: "Ground", Category: content.CategoryStatus, PP: 20, Target: content.TargetEnemyField, Hazard: content.HazardSpikes},
	} {
		sc.moves[content.Normalize(mv.ID)] = mv
	}
	for _, it := range []content.Item{
		{ID: "potion", Name: "Potion", Kind: content.ItemMedicine, HealAmount: 20},
		{ID: "full_restore", Name: "Full Restore", Kind: content.ItemMedicine, HealsFully: true, CuresStatus: true},
		{ID: "antidote", Name: "Antidote", Kind: content.ItemMedicine, CuresStatus: true},
		{ID: "revive", Name: "Revive", Kind: content.ItemMedicine, Revives: true},
		{ID: "poke_ball", Name: "Poke Ball", Kind: content.ItemBall, BallMultiplier: 1.0},
		{ID: "master_ball", Name: "Master Ball", Kind: content.ItemBall, BallMultiplier: 255, Guaranteed: true},
		{ID: "choice_band", Name: "Choice Band", Kind: content.ItemHeld},
	} {
		sc.items[content.Normalize(it.ID)] = it
	}
	sc.species["pidgey"] = content.Species{Name: "Pidgey", Types: []string{"Normal", "Flying"}, CatchRate: 255}
	sc.species["snorlax"] = content.Species{Name: "Snorlax", Types: []string{"Normal"}, CatchRate: 25}
	return sc
}

func (sc *stubContent) MoveByID(id string) (content.Move, bool) {
	if mv, ok := sc.moves[content.Normalize(id)]; ok {
		return mv, true
	}
	if content.Normalize(id) == "struggle" {
		return content.Move{ID: "struggle", Name: "Struggle", Category: content.CategoryPhysical, Power: 40, Accuracy: 100, PP: 1, Target: content.TargetSingle}, true
	}
	return content.Move{}, false
}

func (sc *stubContent) ItemByID(id string) (content.Item, bool) {
	it, ok := sc.items[content.Normalize(id)]
	return it, ok
}

func (sc *stubContent) SpeciesByName(name string) (content.Species, bool) {
	sp, ok := sc.species[content.Normalize(name)]
	return sp, ok
}

func (sc *stubContent) Effectiveness(moveType string, defenderTypes ...string) float64 {
	return content.Effectiveness(moveType, defenderTypes...)
}

// --- status stub --------------------------------------------------------

// memStatus tracks volatiles in a map and writes major statuses straight to
// the combatant, which is all the engine needs from the status manager.
type memStatus struct {
	vol map[*game.Combatant]map[string]bool
}

func newMemStatus() *memStatus {
	return &memStatus{vol: make(map[*game.Combatant]map[string]bool)}
}

func (st *memStatus) CanAct(*game.Combatant) (bool, string)   { return true, "" }
func (st *memStatus) ApplyEndOfTurn(*game.Combatant) []string { return nil }

func (st *memStatus) ApplyStatus(c *game.Combatant, status string) (bool, string) {
	if c.Status != "" {
		return false, ""
	}
	c.Status = status
	return true, fmt.Sprintf("%s was afflicted with %s!", c.DisplayName(), status)
}

func (st *memStatus) CureStatus(c *game.Combatant) (bool, string) {
	if c.Status == "" {
		return false, ""
	}
	c.Status = ""
	return true, fmt.Sprintf("%s was cured of its status condition!", c.DisplayName())
}

func (st *memStatus) HasVolatile(c *game.Combatant, name string) bool { return st.vol[c][name] }

func (st *memStatus) SetVolatile(c *game.Combatant, name string) {
	if st.vol[c] == nil {
		st.vol[c] = make(map[string]bool)
	}
	st.vol[c][name] = true
}

func (st *memStatus) ClearVolatile(c *game.Combatant, name string) { delete(st.vol[c], name) }
func (st *memStatus) ClearAllVolatile(c *game.Combatant)           { delete(st.vol, c) }

func (st *memStatus) ModifySpeed(c *game.Combatant, speed int) int {
	if c.Status == "par" {
		return speed / 2
	}
	return speed
}

// --- damage and rng stubs ----------------------------------------------

type damageFunc func(DamageInput) DamageOutput

func (f damageFunc) Compute(in DamageInput) DamageOutput { return f(in) }

// flatDamage ignores stats entirely and returns the same base damage for
// every hit; item, helping-hand and spread multipliers still apply on top.
func flatDamage(n int) damageFunc {
	return func(DamageInput) DamageOutput {
		return DamageOutput{Damage: n, Effectiveness: 1.0}
	}
}

// scriptedRNG pops queued values; exhausted queues fall back to 0.999 for
// floats (protection re-rolls fail, full-chance effects still land) and 0
// for ints (first pool entry, first shake passing).
type scriptedRNG struct {
	floats []float64
	ints   []int
}

func (r *scriptedRNG) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.999
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRNG) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// --- builders -----------------------------------------------------------

func newCombatant(species string, hp, speed int, moveIDs ...string) *game.Combatant {
	c := &game.Combatant{
		SpeciesName: species,
		Level:       50,
		MaxHP:       hp,
		CurrentHP:   hp,
		Attack:      60,
		Defense:     50,
		SpAttack:    60,
		SpDefense:   50,
		Speed:       speed,
		Type1:       "Normal",
	}
	for i, id := range moveIDs {
		c.Moves = append(c.Moves, game.MoveSlot{Ordinal: i, MoveID: id, PP: 10, MaxPP: 10})
	}
	return c
}

func newTestManager(dmg DamageCalculator, rng RandomSource) *Manager {
	if rng == nil {
		rng = NewSeededRNG(1)
	}
	return New(Collaborators{Damage: dmg, Status: newMemStatus(), Content: newStubContent()}, rng)
}

// The builders pin PublicID so Start never draws from the random source and
// scripted sequences line up with in-battle rolls only.

func startWild(t *testing.T, m *Manager, roster []*game.Combatant, wildMon *game.Combatant) *Session {
	t.Helper()
	s, _, err := m.Start(StartConfig{
		Kind:     game.BattleWild,
		Format:   game.FormatSingles,
		PublicID: "WILD0001",
		Sides: []StartSide{
			{Participant: 1, Name: "Red", Team: TeamTrainer, Roster: roster},
			{Participant: -1, Name: "Wild", Team: TeamOpponent, AI: true, Roster: []*game.Combatant{wildMon}},
		},
	})
	if err != nil {
		t.Fatalf("start wild battle: %v", err)
	}
	return s
}

func startTrainer(t *testing.T, m *Manager, mine, theirs []*game.Combatant) *Session {
	t.Helper()
	s, _, err := m.Start(StartConfig{
		Kind:     game.BattleTrainer,
		Format:   game.FormatSingles,
		PublicID: "TRNR0001",
		Sides: []StartSide{
			{Participant: 1, Name: "Red", Team: TeamTrainer, Roster: mine},
			{Participant: -2, Name: "Brock", Team: TeamOpponent, AI: true, Roster: theirs},
		},
	})
	if err != nil {
		t.Fatalf("start trainer battle: %v", err)
	}
	return s
}

func startPvP(t *testing.T, m *Manager, format game.BattleFormat, mine, theirs []*game.Combatant) *Session {
	t.Helper()
	s, _, err := m.Start(StartConfig{
		Kind:     game.BattlePvP,
		Format:   format,
		PublicID: "PVPB0001",
		Sides: []StartSide{
			{Participant: 1, Name: "Red", Team: TeamTrainer, Roster: mine},
			{Participant: 2, Name: "Blue", Team: TeamOpponent, Roster: theirs},
		},
	})
	if err != nil {
		t.Fatalf("start pvp battle: %v", err)
	}
	return s
}

func startMulti(t *testing.T, m *Manager, rosters [4][]*game.Combatant) *Session {
	t.Helper()
	s, _, err := m.Start(StartConfig{
		Kind:     game.BattlePvP,
		Format:   game.FormatMulti,
		PublicID: "MLTI0001",
		Sides: []StartSide{
			{Participant: 1, Name: "Red", Team: TeamTrainer, Roster: rosters[0]},
			{Participant: 2, Name: "Leaf", Team: TeamTrainer, Roster: rosters[1]},
			{Participant: 3, Name: "Blue", Team: TeamOpponent, Roster: rosters[2]},
			{Participant: 4, Name: "Silver", Team: TeamOpponent, Roster: rosters[3]},
		},
	})
	if err != nil {
		t.Fatalf("start multi battle: %v", err)
	}
	return s
}

func register(t *testing.T, m *Manager, s *Session, participant int64, act *Action) {
	t.Helper()
	if _, err := m.RegisterAction(s.ID, participant, act); err != nil {
		t.Fatalf("register action for %d: %v", participant, err)
	}
}

func processTurn(t *testing.T, m *Manager, s *Session) *TurnResult {
	t.Helper()
	res, err := m.ProcessTurn(s.ID)
	if err != nil {
		t.Fatalf("process turn: %v", err)
	}
	return res
}

func hasLine(msgs []string, want string) bool {
	for _, msg := range msgs {
		if msg == want {
			return true
		}
	}
	return false
}

func hasSubstring(msgs []string, sub string) bool {
	for _, msg := range msgs {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}
