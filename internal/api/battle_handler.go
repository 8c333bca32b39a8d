package api

import (
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/service"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo    storage.Repository
	mgr     *engine.Manager
	content *content.DB
	book    *service.ChallengeBook

	// rankedDefault applies when a PvP challenge omits the ranked flag.
	rankedDefault bool
}

// NewBattleHandler creates a BattleHandler over the shared repository, the
// live session manager, the content dataset and the open challenge book.
func NewBattleHandler(repo storage.Repository, mgr *engine.Manager, db *content.DB, book *service.ChallengeBook, rankedDefault bool) *BattleHandler {
	return &BattleHandler{repo: repo, mgr: mgr, content: db, book: book, rankedDefault: rankedDefault}
}
