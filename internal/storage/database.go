package storage

import (
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database, keeps the schema current via
// AutoMigrate and seeds the starter trainers on a fresh database. The seed
// list comes from the caller so the stat math stays out of this package.
func OpenAndMigrate(dataSourceName string, starters []game.Trainer) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&game.Trainer{}, &game.Combatant{}, &game.MoveSlot{}, &game.BattleRecord{})
	if err != nil {
		return nil, err
	}

	// Party slots must be unique per owner. An explicit UNIQUE index keeps
	// SQLite's NULL semantics for uncaught wild rows: owner_id NULL rows are
	// all distinct, so spawns never collide with anyone's party.
	if execErr := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_combatants_owner_slot ON combatants(owner_id, party_slot);").Error; execErr != nil {
		return nil, execErr
	}

	seedStarterTrainers(db, starters)
	return db, nil
}

// seedStarterTrainers inserts the provided trainers when the table is empty.
// An existing install keeps whatever it has; reseeding would duplicate NPCs
// and reset player progress.
func seedStarterTrainers(db *gorm.DB, starters []game.Trainer) {
	var count int64
	db.Model(&game.Trainer{}).Count(&count)
	if count > 0 {
		return
	}
	if len(starters) == 0 {
		return
	}
	db.Create(&starters)
}
