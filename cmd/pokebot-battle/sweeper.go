package main

import (
	"context"
	"time"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/logging"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/service"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/storage"
)

// startIdleSweeper periodically expires battles with no recent activity and
// stale PvP challenges. Expired battles are recorded as draws so neither
// side gains ranked points from walking away.
func startIdleSweeper(ctx context.Context, repo storage.Repository, mgr *engine.Manager, book *service.ChallengeBook, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := service.ExpireIdleBattles(repo, mgr, book, maxIdle); n > 0 {
					logging.Info("Expired idle battles", logging.Fields{"count": n})
				}
			}
		}
	}()
}
