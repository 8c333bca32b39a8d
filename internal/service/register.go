package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

var ErrEmptyTrainerName = errors.New("trainer name is required")

// startingMoney funds a new trainer's first shopping trip.
const startingMoney = 500

// GetOrRegisterTrainer looks a trainer up by name, creating the account with
// a starter combatant on first sight. Lookup is case-insensitive, so "red"
// and "Red" are the same trainer.
func GetOrRegisterTrainer(repo BattleRepo, db *content.DB, name, starter string) (*game.Trainer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTrainerName
	}

	t, err := repo.GetTrainerByName(name)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c, err := NewStarterCombatant(db, starter)
	if err != nil {
		return nil, err
	}
	c.PartySlot = 0
	nt := &game.Trainer{
		Name:  name,
		Class: game.ClassNone,
		Money: startingMoney,
		Party: []game.Combatant{*c},
	}
	if err := repo.CreateTrainer(nt); err != nil {
		// Two first-time requests for one name can race; the loser retries
		// the lookup instead of failing the login.
		if existing, lookupErr := repo.GetTrainerByName(name); lookupErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to register trainer %q: %w", name, err)
	}
	return nt, nil
}
