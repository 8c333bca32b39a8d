package service

import (
	"errors"
	"fmt"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/logging"
)

// finishBattle tears the session down first, so no late submission can race
// the write-back, then persists the outcome.
func finishBattle(repo BattleRepo, mgr *engine.Manager, s *engine.Session, winner game.Winner) {
	if err := mgr.EndBattle(s.ID); err != nil {
		logging.Error("failed to end battle", err, logging.Fields{constants.LogFieldPublicID: s.PublicID})
	}
	persistOutcome(repo, s, winner)
}

func winnerForTeam(team int) game.Winner {
	if team == engine.TeamTrainer {
		return game.WinnerTrainer
	}
	return game.WinnerOpponent
}

// trainerPrize sums what the beaten NPC sides pay out, scaled by each class's
// strongest roster member.
func trainerPrize(s *engine.Session) int {
	total := 0
	for _, sd := range s.Sides {
		if !sd.AI || sd.Team != engine.TeamOpponent {
			continue
		}
		highest := 0
		for _, c := range sd.Roster {
			if c.Level > highest {
				highest = c.Level
			}
		}
		total += sd.Class.PrizeMoney(highest)
	}
	return total
}

// persistOutcome writes battle results back to every human trainer's stored
// party, pays prize money, bumps ranked standings and records the battle.
// Players already saw the outcome in the narration, so persistence failures
// are logged and swallowed rather than surfaced as request errors.
func persistOutcome(repo BattleRepo, s *engine.Session, winner game.Winner) {
	prize := 0
	if s.Kind == game.BattleTrainer && winner == game.WinnerTrainer {
		prize = trainerPrize(s)
	}

	for _, sd := range s.Sides {
		if sd.AI || sd.Participant <= 0 {
			continue
		}
		writeBackSide(repo, s, sd, winner, prize)
	}

	rec := &game.BattleRecord{
		PublicID:       s.PublicID,
		Kind:           s.Kind,
		Format:         s.Format,
		Ranked:         s.Ranked,
		Winner:         winner,
		TrainerSideID:  firstParticipant(s, engine.TeamTrainer),
		OpponentSideID: firstParticipant(s, engine.TeamOpponent),
		TurnCount:      s.Turn,
		PrizeMoney:     prize,
	}
	if err := repo.CreateBattleRecord(rec); err != nil {
		// The unique index on public_id turns a doubly-finished battle into
		// an insert error here, which is the harmless flavor of that race.
		logging.Error("failed to record battle", err, logging.Fields{constants.LogFieldPublicID: s.PublicID})
	}
}

func firstParticipant(s *engine.Session, team int) int64 {
	for _, sd := range s.Sides {
		if sd.Team == team {
			return sd.Participant
		}
	}
	return 0
}

// writeBackSide copies one side's battle snapshots onto the trainer's stored
// party and saves the trainer with any winnings.
func writeBackSide(repo BattleRepo, s *engine.Session, sd *engine.Side, winner game.Winner, prize int) {
	t, err := repo.GetTrainerByID(uint(sd.Participant))
	if err != nil {
		logging.Error("failed to load trainer for write-back", err, logging.Fields{
			constants.LogFieldPublicID:  s.PublicID,
			constants.LogFieldTrainerID: sd.Participant,
		})
		return
	}

	applyRoster(t, sd.Roster)
	won := winner == winnerForTeam(sd.Team)
	if won && prize > 0 {
		t.Money += prize
	}
	if s.Ranked && s.Kind == game.BattlePvP && winner != game.WinnerDraw {
		if won {
			t.RankedWins++
		} else {
			t.RankedLosses++
		}
	}

	if err := repo.SaveTrainer(t); err != nil {
		logging.Error("failed to save trainer after battle", err, logging.Fields{
			constants.LogFieldPublicID:  s.PublicID,
			constants.LogFieldTrainerID: sd.Participant,
		})
	}
}

// applyRoster copies the fields the engine is allowed to change (HP, status,
// held item consumption, move PP) from battle snapshots back onto the stored
// party, matched by record id.
func applyRoster(t *game.Trainer, roster []*game.Combatant) {
	for _, rc := range roster {
		if rc.ID == 0 {
			continue
		}
		for i := range t.Party {
			if t.Party[i].ID != rc.ID {
				continue
			}
			pc := &t.Party[i]
			pc.CurrentHP = rc.CurrentHP
			pc.Status = rc.Status
			pc.HeldItem = rc.HeldItem
			for j := range pc.Moves {
				for k := range rc.Moves {
					if rc.Moves[k].ID != 0 && pc.Moves[j].ID == rc.Moves[k].ID {
						pc.Moves[j].PP = rc.Moves[k].PP
						break
					}
				}
			}
			break
		}
	}
}

// EndBattle forfeits a running battle on behalf of trainerID. Forfeiting a
// wild encounter counts as fleeing; anything else hands the win to the other
// team. Ending a battle that already finished is a no-op.
func EndBattle(repo BattleRepo, mgr *engine.Manager, publicID string, trainerID uint) error {
	s, err := mgr.SessionByPublicID(publicID)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			// Finished naturally or expired; the outcome is already recorded.
			return nil
		}
		return err
	}

	var side *engine.Side
	for _, sd := range s.Sides {
		if sd.Participant == int64(trainerID) {
			side = sd
			break
		}
	}
	if side == nil {
		return fmt.Errorf("%w: trainer %d is not in this battle", engine.ErrNotFound, trainerID)
	}

	winner := game.WinnerFled
	if s.Kind != game.BattleWild {
		winner = winnerForTeam(1 - side.Team)
	}
	finishBattle(repo, mgr, s, winner)
	return nil
}
