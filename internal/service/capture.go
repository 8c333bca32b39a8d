package service

import (
	"errors"
	"fmt"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/logging"
)

var ErrPartyFull = errors.New("party is full")

// ThrowBall spends one ball item on the wild combatant. A catch ends the
// battle and adds the wild combatant to the thrower's party; a miss lets the
// wild side lash back, which can end the battle the hard way.
func ThrowBall(repo BattleRepo, mgr *engine.Manager, db *content.DB, publicID string, trainerID uint, ballID string) (*engine.CaptureResult, error) {
	it, ok := db.ItemByID(ballID)
	if !ok {
		return nil, fmt.Errorf("%w: item %q", engine.ErrNotFound, ballID)
	}
	if it.Kind != content.ItemBall {
		return nil, fmt.Errorf("%w: %s is not a ball", engine.ErrIllegalMove, it.Name)
	}

	// There is no storage box, so a full party means the catch would have
	// nowhere to go. Refuse before the ball leaves the hand.
	t, err := repo.GetTrainerByID(trainerID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrTrainerNotFound, trainerID)
	}
	if len(t.Party) >= constants.MaxPartySize {
		return nil, fmt.Errorf("%w: release someone first", ErrPartyFull)
	}

	s, err := mgr.SessionByPublicID(publicID)
	if err != nil {
		return nil, err
	}
	res, err := mgr.ThrowBall(s.ID, int64(trainerID), it.BallMultiplier, it.Guaranteed)
	if err != nil {
		return nil, err
	}

	if res.Caught {
		wild := wildCombatant(s)
		if err := mgr.EndBattle(s.ID); err != nil {
			logging.Error("failed to end battle after capture", err, logging.Fields{constants.LogFieldPublicID: s.PublicID})
		}
		if wild == nil {
			logging.Error("caught battle has no wild combatant", nil, logging.Fields{constants.LogFieldPublicID: s.PublicID})
		} else if err := repo.AddToParty(trainerID, wild); err != nil {
			logging.Error("failed to add caught combatant to party", err, logging.Fields{
				constants.LogFieldPublicID:  s.PublicID,
				constants.LogFieldTrainerID: trainerID,
			})
		}
		persistOutcome(repo, s, game.WinnerTrainer)
		return res, nil
	}
	if res.IsOver {
		finishBattle(repo, mgr, s, res.Winner)
	}
	return res, nil
}

// wildCombatant reads the wild side's front combatant. Only called once the
// session is over, when no turn can be mutating it.
func wildCombatant(s *engine.Session) *game.Combatant {
	for _, sd := range s.Sides {
		if sd.AI && sd.Team == engine.TeamOpponent {
			return sd.ActiveCombatant(0)
		}
	}
	return nil
}
