package storage

import (
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// Repository is the persistence boundary for trainers, their parties and
// finished battle records. Live sessions never touch it; rosters are loaded
// when a battle starts and outcomes are written back when it ends.
type Repository interface {
	CreateTrainer(t *game.Trainer) error
	// GetTrainerByID loads a trainer with the party and its move slots
	// preloaded, ordered by party slot.
	GetTrainerByID(id uint) (*game.Trainer, error)
	// GetTrainerByName returns a trainer by display name (case-insensitive).
	GetTrainerByName(name string) (*game.Trainer, error)
	// SaveTrainer writes the trainer row and every loaded association. This
	// is how post-battle HP, PP and status write-back happens.
	SaveTrainer(t *game.Trainer) error

	SaveCombatant(c *game.Combatant) error
	// AddToParty attaches a newly caught combatant to the trainer's party in
	// the next free slot. The party size cap is the caller's concern.
	AddToParty(trainerID uint, c *game.Combatant) error

	CreateBattleRecord(rec *game.BattleRecord) error
	// GetRecentBattles returns finished battles, newest first.
	GetRecentBattles(limit int) ([]game.BattleRecord, error)
	// Leaderboard
	GetTopTrainers(limit int) ([]game.Trainer, error)
}
