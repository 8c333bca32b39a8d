package service

import (
	"time"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/logging"
)

// ExpireIdleBattles ends every battle whose last activity is older than
// maxIdle and prunes PvP challenges nobody accepted. Battles that never
// reached a natural end are recorded as draws; parties still get their
// write-back so nobody loses battle progress to a disconnect. Returns how
// many battles were expired.
func ExpireIdleBattles(repo BattleRepo, mgr *engine.Manager, book *ChallengeBook, maxIdle time.Duration) int {
	expired := mgr.ExpireIdle(maxIdle)
	for _, s := range expired {
		winner := s.Winner
		if winner == game.WinnerNone {
			winner = game.WinnerDraw
		}
		persistOutcome(repo, s, winner)
		logging.Info("expired idle battle", logging.Fields{
			constants.LogFieldPublicID: s.PublicID,
			constants.LogFieldKind:     string(s.Kind),
			constants.LogFieldTurn:     s.Turn,
			constants.LogFieldWinner:   string(winner),
		})
	}
	if book != nil {
		if n := book.Expire(maxIdle); n > 0 {
			logging.Info("expired idle challenges", logging.Fields{constants.LogFieldCount: n})
		}
	}
	return len(expired)
}
