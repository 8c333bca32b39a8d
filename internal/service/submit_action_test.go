package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

func TestSubmitActionResolvesWildTurn(t *testing.T) {
	mgr, db := newTestEngine(t, nil)
	ash := testTrainer(t, db, 1, "Ash", WildSpec{Species: "Pikachu", Level: 12, MoveIDs: []string{"thunder_shock", "growl"}})
	repo := newMemRepo(ash)

	s, _, err := StartWildBattle(repo, mgr, db, WildBattleRequest{TrainerID: 1, Wild: []WildSpec{{Species: "Rattata", Level: 10}}})
	if err != nil {
		t.Fatalf("StartWildBattle: %v", err)
	}

	reg, res, err := SubmitAction(repo, mgr, s.PublicID, 1, engine.NewMoveAction("growl", 0, 0))
	if err != nil {
		t.Fatalf("SubmitAction: %v", err)
	}
	if !reg.Accepted || !reg.ReadyToResolve {
		t.Fatalf("registration = %+v, want accepted and ready", reg)
	}
	if res == nil {
		t.Fatal("wild battle should resolve on the lone human submission")
	}
	if res.TurnNumber != 1 {
		t.Fatalf("turn number = %d, want 1", res.TurnNumber)
	}
	if res.IsOver {
		t.Fatal("a growl exchange should not end the battle")
	}
	if len(res.Messages) == 0 {
		t.Fatal("expected turn narration")
	}
	if s.Turn != 2 || s.Phase != game.PhaseWaitingActions {
		t.Fatalf("session after turn = turn %d phase %s", s.Turn, s.Phase)
	}
}

func TestSubmitActionUnknownBattle(t *testing.T) {
	mgr, db := newTestEngine(t, nil)
	ash := testTrainer(t, db, 1, "Ash", WildSpec{Species: "Pikachu", Level: 12})
	repo := newMemRepo(ash)

	_, _, err := SubmitAction(repo, mgr, "XXXXXXXX", 1, engine.NewMoveAction("tackle", 0, 0))
	if !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSubmitActionRejectsUnknownMove(t *testing.T) {
	mgr, db := newTestEngine(t, nil)
	ash := testTrainer(t, db, 1, "Ash", WildSpec{Species: "Pikachu", Level: 12, MoveIDs: []string{"thunder_shock"}})
	repo := newMemRepo(ash)

	s, _, err := StartWildBattle(repo, mgr, db, WildBattleRequest{TrainerID: 1, Wild: []WildSpec{{Species: "Rattata", Level: 10}}})
	if err != nil {
		t.Fatalf("StartWildBattle: %v", err)
	}

	_, _, err = SubmitAction(repo, mgr, s.PublicID, 1, engine.NewMoveAction("surf", 0, 0))
	if !errors.Is(err, engine.ErrIllegalMove) {
		t.Fatalf("err = %v, want ErrIllegalMove", err)
	}
}

func TestSubmitActionPvPWaitsForBoth(t *testing.T) {
	mgr, db := newTestEngine(t, nil)
	host := testTrainer(t, db, 1, "Ash", WildSpec{Species: "Pikachu", Level: 12, MoveIDs: []string{"growl"}})
	joiner := testTrainer(t, db, 2, "Misty", WildSpec{Species: "Squirtle", Level: 12, MoveIDs: []string{"tail_whip"}})
	repo := newMemRepo(host, joiner)
	book := NewChallengeBook()

	ch, err := CreatePvPChallenge(book, repo, PvPChallengeRequest{TrainerID: 1})
	if err != nil {
		t.Fatalf("CreatePvPChallenge: %v", err)
	}
	s, _, err := JoinPvPBattle(book, repo, mgr, ch.Code, 2)
	if err != nil {
		t.Fatalf("JoinPvPBattle: %v", err)
	}

	reg, res, err := SubmitAction(repo, mgr, s.PublicID, 1, engine.NewMoveAction("growl", 0, 0))
	if err != nil {
		t.Fatalf("host submit: %v", err)
	}
	if reg.ReadyToResolve || res != nil {
		t.Fatal("turn should wait for the opponent")
	}
	if len(reg.WaitingFor) != 1 || !strings.Contains(reg.WaitingFor[0], "Misty") {
		t.Fatalf("waiting for = %v, want Misty", reg.WaitingFor)
	}

	reg, res, err = SubmitAction(repo, mgr, s.PublicID, 2, engine.NewMoveAction("tail_whip", 0, 0))
	if err != nil {
		t.Fatalf("joiner submit: %v", err)
	}
	if !reg.ReadyToResolve || res == nil {
		t.Fatal("second submission should resolve the turn")
	}
	if res.TurnNumber != 1 || res.IsOver {
		t.Fatalf("result = %+v", res)
	}
}

func TestSubmitActionFinishesRankedPvP(t *testing.T) {
	mgr, db := newTestEngine(t, nil)
	host := testTrainer(t, db, 1, "Ash", WildSpec{Species: "Garchomp", Level: 50, MoveIDs: []string{"earthquake"}})
	joiner := testTrainer(t, db, 2, "Misty", WildSpec{Species: "Rattata", Level: 1, MoveIDs: []string{"tackle"}})
	repo := newMemRepo(host, joiner)
	book := NewChallengeBook()

	ch, err := CreatePvPChallenge(book, repo, PvPChallengeRequest{TrainerID: 1, Ranked: true})
	if err != nil {
		t.Fatalf("CreatePvPChallenge: %v", err)
	}
	s, _, err := JoinPvPBattle(book, repo, mgr, ch.Code, 2)
	if err != nil {
		t.Fatalf("JoinPvPBattle: %v", err)
	}
	publicID := s.PublicID

	if _, _, err := SubmitAction(repo, mgr, publicID, 1, engine.NewMoveAction("earthquake", 0, 0)); err != nil {
		t.Fatalf("host submit: %v", err)
	}
	_, res, err := SubmitAction(repo, mgr, publicID, 2, engine.NewMoveAction("tackle", 0, 0))
	if err != nil {
		t.Fatalf("joiner submit: %v", err)
	}
	if res == nil || !res.IsOver || res.Winner != game.WinnerTrainer {
		t.Fatalf("result = %+v, want host win", res)
	}

	// The session is torn down and the outcome persisted.
	if _, err := mgr.SessionByPublicID(publicID); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("session lookup after finish = %v, want ErrNotFound", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("got %d battle records, want 1", len(repo.records))
	}
	rec := repo.records[0]
	if rec.PublicID != publicID || rec.Kind != game.BattlePvP || !rec.Ranked || rec.Winner != game.WinnerTrainer {
		t.Fatalf("record = %+v", rec)
	}
	if rec.TrainerSideID != 1 || rec.OpponentSideID != 2 {
		t.Fatalf("record sides = %d vs %d", rec.TrainerSideID, rec.OpponentSideID)
	}
	if rec.PrizeMoney != 0 {
		t.Fatalf("pvp should pay no prize money, got %d", rec.PrizeMoney)
	}

	winner, _ := repo.GetTrainerByID(1)
	loser, _ := repo.GetTrainerByID(2)
	if winner.RankedWins != 1 || winner.RankedLosses != 0 {
		t.Fatalf("winner standings = %d-%d", winner.RankedWins, winner.RankedLosses)
	}
	if loser.RankedWins != 0 || loser.RankedLosses != 1 {
		t.Fatalf("loser standings = %d-%d", loser.RankedWins, loser.RankedLosses)
	}
	if loser.Party[0].CurrentHP != 0 {
		t.Fatalf("loser write-back HP = %d, want 0", loser.Party[0].CurrentHP)
	}
	if winner.Money != 1000 || loser.Money != 1000 {
		t.Fatalf("money = %d/%d, want untouched", winner.Money, loser.Money)
	}
}

func TestReplaceFaintedContinuesBattle(t *testing.T) {
	mgr, db := newTestEngine(t, nil)
	host := testTrainer(t, db, 1, "Ash", WildSpec{Species: "Garchomp", Level: 50, MoveIDs: []string{"earthquake"}})
	joiner := testTrainer(t, db, 2, "Misty",
		WildSpec{Species: "Rattata", Level: 1, MoveIDs: []string{"tackle"}},
		WildSpec{Species: "Pidgey", Level: 1, MoveIDs: []string{"tackle"}})
	repo := newMemRepo(host, joiner)
	book := NewChallengeBook()

	ch, err := CreatePvPChallenge(book, repo, PvPChallengeRequest{TrainerID: 1})
	if err != nil {
		t.Fatalf("CreatePvPChallenge: %v", err)
	}
	s, _, err := JoinPvPBattle(book, repo, mgr, ch.Code, 2)
	if err != nil {
		t.Fatalf("JoinPvPBattle: %v", err)
	}

	if _, _, err := SubmitAction(repo, mgr, s.PublicID, 1, engine.NewMoveAction("earthquake", 0, 0)); err != nil {
		t.Fatalf("host submit: %v", err)
	}
	_, res, err := SubmitAction(repo, mgr, s.PublicID, 2, engine.NewMoveAction("tackle", 0, 0))
	if err != nil {
		t.Fatalf("joiner submit: %v", err)
	}
	if res.IsOver {
		t.Fatal("battle should wait for the replacement, not end")
	}
	if s.Phase != game.PhaseForcedSwitch {
		t.Fatalf("phase = %s, want forced_switch", s.Phase)
	}

	fres, err := ReplaceFainted(repo, mgr, s.PublicID, 2, 1)
	if err != nil {
		t.Fatalf("ReplaceFainted: %v", err)
	}
	if fres.IsOver {
		t.Fatal("replacement should keep the battle alive")
	}
	sentOut := false
	for _, m := range fres.Messages {
		if strings.Contains(m, "Pidgey") {
			sentOut = true
		}
	}
	if !sentOut {
		t.Fatalf("replacement narration missing, got %v", fres.Messages)
	}
	if s.Phase != game.PhaseWaitingActions || s.Turn != 2 {
		t.Fatalf("session after replacement = turn %d phase %s", s.Turn, s.Phase)
	}
	if got := s.Sides[1].ActiveCombatant(0); got == nil || got.SpeciesName != "Pidgey" {
		t.Fatalf("active after replacement = %+v, want Pidgey", got)
	}
}
