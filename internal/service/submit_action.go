package service

import (
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/dedupe"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
)

// SubmitAction records one trainer's choice for the current turn. When that
// submission is the last one the turn was waiting on, the same call resolves
// the whole turn and its result comes back alongside the registration.
func SubmitAction(repo BattleRepo, mgr *engine.Manager, publicID string, trainerID uint, act *engine.Action) (*engine.RegisterActionResult, *engine.TurnResult, error) {
	s, err := mgr.SessionByPublicID(publicID)
	if err != nil {
		return nil, nil, err
	}
	reg, err := mgr.RegisterAction(s.ID, int64(trainerID), act)
	if err != nil {
		return nil, nil, err
	}
	if !reg.ReadyToResolve {
		return reg, nil, nil
	}
	res, err := resolveTurn(repo, mgr, s)
	if err != nil {
		return nil, nil, err
	}
	return reg, res, nil
}

// resolveTurn runs ProcessTurn for the session. Duplicate submissions racing
// past ReadyToResolve collapse into one resolution through the shared
// singleflight group, so the turn is only ever processed once.
func resolveTurn(repo BattleRepo, mgr *engine.Manager, s *engine.Session) (*engine.TurnResult, error) {
	v, err, _ := dedupe.TurnGroup.Do(s.PublicID, func() (interface{}, error) {
		return mgr.ProcessTurn(s.ID)
	})
	if err != nil {
		return nil, err
	}
	res := v.(*engine.TurnResult)
	if res.IsOver {
		finishBattle(repo, mgr, s, res.Winner)
	}
	return res, nil
}

// ReplaceFainted sends in the roster member at rosterIdx after a knockout,
// settling the pending forced switch for that trainer. Entry hazards can
// finish the battle here too, so the result is checked the same way a turn
// result is.
func ReplaceFainted(repo BattleRepo, mgr *engine.Manager, publicID string, trainerID uint, rosterIdx int) (*engine.ForceSwitchResult, error) {
	s, err := mgr.SessionByPublicID(publicID)
	if err != nil {
		return nil, err
	}
	res, err := mgr.ForceSwitch(s.ID, int64(trainerID), rosterIdx)
	if err != nil {
		return nil, err
	}
	if res.IsOver {
		finishBattle(repo, mgr, s, res.Winner)
	}
	return res, nil
}
