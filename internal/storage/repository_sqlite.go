package storage

import (
	"strings"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

// partyScoped preloads the full party tree in stable order: party by slot,
// moves by ordinal. Every trainer read goes through it so callers always see
// rosters the way battles expect them.
func (r *sqliteRepository) partyScoped() *gorm.DB {
	return r.db.
		Preload("Party", func(db *gorm.DB) *gorm.DB { return db.Order("party_slot ASC") }).
		Preload("Party.Moves", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal ASC") })
}

func (r *sqliteRepository) CreateTrainer(t *game.Trainer) error {
	return r.db.Create(t).Error
}

func (r *sqliteRepository) GetTrainerByID(id uint) (*game.Trainer, error) {
	var t game.Trainer
	if err := r.partyScoped().First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *sqliteRepository) GetTrainerByName(name string) (*game.Trainer, error) {
	var t game.Trainer
	if err := r.partyScoped().Where("lower(name) = ?", strings.ToLower(name)).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *sqliteRepository) SaveTrainer(t *game.Trainer) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(t).Error
}

func (r *sqliteRepository) SaveCombatant(c *game.Combatant) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(c).Error
}

func (r *sqliteRepository) AddToParty(trainerID uint, c *game.Combatant) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	// The slot count and the insert must land together or two concurrent
	// catches could claim the same slot.
	var count int64
	if err := tx.Model(&game.Combatant{}).Where("owner_id = ?", trainerID).Count(&count).Error; err != nil {
		tx.Rollback()
		return err
	}
	owner := trainerID
	c.OwnerID = &owner
	c.PartySlot = int(count)
	if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(c).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *sqliteRepository) CreateBattleRecord(rec *game.BattleRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetRecentBattles(limit int) ([]game.BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []game.BattleRecord
	if err := r.db.Model(&game.BattleRecord{}).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetTopTrainers returns the ranked ladder ordered by wins desc, then losses asc.
func (r *sqliteRepository) GetTopTrainers(limit int) ([]game.Trainer, error) {
	if limit <= 0 {
		limit = 10
	}
	var trainers []game.Trainer
	if err := r.db.Model(&game.Trainer{}).
		Order("ranked_wins DESC").
		Order("ranked_losses ASC").
		Limit(limit).
		Find(&trainers).Error; err != nil {
		return nil, err
	}
	return trainers, nil
}
