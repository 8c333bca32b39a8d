package service

import (
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/ability"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/damage"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/ruleset"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/status"
)

// maxRoll always produces the highest value a roll can land on. Accuracy
// checks still pass with it, while capture shake checks always fail.
type maxRoll struct{}

func (maxRoll) Float64() float64 { return 0.99 }
func (maxRoll) Intn(n int) int   { return n - 1 }

// newTestEngine builds a Manager over the embedded dataset with the full
// collaborator stack. A nil rng falls back to a fixed seed.
func newTestEngine(t *testing.T, rng engine.RandomSource) (*engine.Manager, *content.DB) {
	t.Helper()
	db, err := content.Load("")
	if err != nil {
		t.Fatalf("content.Load: %v", err)
	}
	if rng == nil {
		rng = engine.NewSeededRNG(1)
	}
	mgr := engine.New(engine.Collaborators{
		Damage:  damage.NewCalculator(db, rng),
		Status:  status.NewManager(rng),
		Ability: ability.NewHandler(),
		Ruleset: ruleset.NewHandler(),
		Content: db,
	}, rng)
	return mgr, db
}

// memRepo is an in-memory BattleRepo. Reads hand out deep copies the same
// way the real repository hands out freshly loaded rows.
type memRepo struct {
	trainers map[uint]*game.Trainer
	records  []game.BattleRecord
	saved    []uint
	caught   []*game.Combatant
}

func newMemRepo(trainers ...*game.Trainer) *memRepo {
	m := &memRepo{trainers: make(map[uint]*game.Trainer)}
	for _, t := range trainers {
		m.trainers[t.ID] = t
	}
	return m
}

func cloneTrainer(t *game.Trainer) *game.Trainer {
	cp := *t
	cp.Party = make([]game.Combatant, len(t.Party))
	for i := range t.Party {
		cp.Party[i] = t.Party[i]
		cp.Party[i].Moves = append([]game.MoveSlot(nil), t.Party[i].Moves...)
	}
	return &cp
}

func (m *memRepo) CreateTrainer(t *game.Trainer) error {
	if t.ID == 0 {
		next := uint(1)
		for id := range m.trainers {
			if id >= next {
				next = id + 1
			}
		}
		t.ID = next
	}
	m.trainers[t.ID] = cloneTrainer(t)
	return nil
}

func (m *memRepo) GetTrainerByID(id uint) (*game.Trainer, error) {
	t, ok := m.trainers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneTrainer(t), nil
}

func (m *memRepo) GetTrainerByName(name string) (*game.Trainer, error) {
	for _, t := range m.trainers {
		if strings.EqualFold(t.Name, name) {
			return cloneTrainer(t), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) SaveTrainer(t *game.Trainer) error {
	m.trainers[t.ID] = cloneTrainer(t)
	m.saved = append(m.saved, t.ID)
	return nil
}

func (m *memRepo) AddToParty(trainerID uint, c *game.Combatant) error {
	t, ok := m.trainers[trainerID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	owner := trainerID
	c.OwnerID = &owner
	c.PartySlot = len(t.Party)
	t.Party = append(t.Party, *c)
	m.caught = append(m.caught, c)
	return nil
}

func (m *memRepo) CreateBattleRecord(rec *game.BattleRecord) error {
	for i := range m.records {
		if m.records[i].PublicID == rec.PublicID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.records = append(m.records, *rec)
	return nil
}

// testTrainer builds a trainer whose party rows carry stable record ids, so
// the post-battle write-back has something to match on.
func testTrainer(t *testing.T, db *content.DB, id uint, name string, specs ...WildSpec) *game.Trainer {
	t.Helper()
	party, err := seedParty(db, specs...)
	if err != nil {
		t.Fatalf("seedParty: %v", err)
	}
	tr := &game.Trainer{Name: name, Class: game.ClassNone, Money: 1000, Party: party}
	tr.ID = id
	for i := range tr.Party {
		owner := id
		tr.Party[i].ID = id*100 + uint(i) + 1
		tr.Party[i].OwnerID = &owner
		for j := range tr.Party[i].Moves {
			tr.Party[i].Moves[j].ID = id*1000 + uint(i)*10 + uint(j) + 1
		}
	}
	return tr
}
