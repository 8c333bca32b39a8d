package engine

import (
	"fmt"
	"math"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// --- Capture math -------------------------------------------------------

// ComputeCatchValue derives the per-shake threshold for one ball throw.
// Lower HP, higher catch rates, better balls and status conditions all
// raise it; 65535 means every shake check passes.
func ComputeCatchValue(maxHP, currentHP, catchRate int, ballMul, statusMul float64) int {
	if maxHP <= 0 {
		return 65535
	}
	a := math.Floor(float64(3*maxHP-2*currentHP) * float64(catchRate) * ballMul * statusMul / float64(3*maxHP))
	if a < 1 {
		a = 1
	}
	if a >= 255 {
		return 65535
	}
	return int(math.Floor(65536.0 / math.Pow(255.0/a, 0.25)))
}

// SimulateThrow rolls the four shake checks against the threshold. A full
// set of passes is a catch; otherwise the number of shakes the ball managed
// comes back, three at most.
func SimulateThrow(rng RandomSource, catchValue int) (caught bool, shakes int) {
	for i := 0; i < 4; i++ {
		if rng.Intn(65536) >= catchValue {
			return false, i
		}
	}
	return true, 3
}

// statusMultiplier is the capture bonus for an impaired target.
func statusMultiplier(status string) float64 {
	switch status {
	case "slp", "frz":
		return 2.0
	case "par", "psn", "tox", "brn":
		return 1.5
	}
	return 1.0
}

func missLine(shakes int) string {
	switch shakes {
	case 0:
		return "Oh no! The ball broke free!"
	case 1:
		return "Aww! It appeared to be caught!"
	case 2:
		return "Aargh! It almost had it!"
	}
	return "Gah! It was so close, too!"
}

// --- ThrowBall operation ------------------------------------------------

// ThrowBall resolves one capture attempt in a Wild battle. During the dazed
// window the catch is guaranteed; otherwise the shake checks run, and a
// broken-out wild creature immediately lashes back at the thrower's team
// before the session returns to waiting for actions.
func (m *Manager) ThrowBall(sessionID uint64, participant int64, ballMultiplier float64, guaranteed bool) (*CaptureResult, error) {
	s, ok := m.store.Get(sessionID)
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Over {
		return nil, fmt.Errorf("%w: battle is over", ErrInvalidState)
	}
	if s.Kind != game.BattleWild {
		return nil, fmt.Errorf("%w: you can't catch another trainer's combatant", ErrInvalidState)
	}
	sd := s.participantSide(participant)
	if sd == nil {
		return nil, fmt.Errorf("%w: participant %d is not in this battle", ErrNotFound, participant)
	}
	if sd.AI {
		return nil, fmt.Errorf("%w: that side acts on its own", ErrInvalidState)
	}
	if s.Phase != game.PhaseWaitingActions && s.Phase != game.PhaseDazed {
		return nil, fmt.Errorf("%w: a ball can't be thrown right now (phase %s)", ErrInvalidState, s.Phase)
	}

	wild := s.wildSide()
	if wild == nil {
		return nil, internalErr("wild battle %s has no wild side", s.PublicID)
	}
	target := wild.ActiveCombatant(0)
	if target == nil || target.Fainted() {
		return nil, fmt.Errorf("%w: there is nothing left to catch", ErrInvalidState)
	}

	msgs := []string{fmt.Sprintf("%s threw a ball at the wild %s!", sd.Name, target.DisplayName())}

	var caught bool
	var shakes int
	if guaranteed || ballMultiplier >= 255 || s.Phase == game.PhaseDazed {
		caught, shakes = true, 1
	} else {
		cv := ComputeCatchValue(target.MaxHP, target.CurrentHP, m.catchRateOf(target), ballMultiplier, statusMultiplier(target.Status))
		caught, shakes = SimulateThrow(m.rng, cv)
	}

	if caught {
		msgs = append(msgs, fmt.Sprintf("Gotcha! %s was caught!", target.DisplayName()))
		s.Over = true
		s.Winner = game.WinnerTrainer
		s.Phase = game.PhaseEnd
	} else {
		msgs = append(msgs, missLine(shakes))
		// The throw replaces whatever orders were queued for this turn.
		s.pending = make(map[ActionKey]*Action)
		tc := newTurnContext(s)
		if act := m.chooseAIAction(s, wild, 0); act != nil {
			plan := scheduledAction{side: wild, sideIdx: s.sideIndex(wild), slot: 0, actor: target, action: act}
			m.executeScheduled(tc, []scheduledAction{plan})
		}
		if !s.Over && s.Phase != game.PhaseDazed {
			m.settleReplacements(tc)
			m.checkBattleOver(tc, s)
			finalizePhase(s)
		}
		msgs = append(msgs, tc.summary...)
		msgs = append(msgs, tc.switchMessages...)
	}

	s.Log = append(s.Log, msgs...)
	s.touch()
	return &CaptureResult{Caught: caught, Shakes: shakes, Messages: msgs, IsOver: s.Over, Winner: s.Winner}, nil
}

func (m *Manager) catchRateOf(c *game.Combatant) int {
	if sp, ok := m.collab.Content.SpeciesByName(c.SpeciesName); ok && sp.CatchRate > 0 {
		return sp.CatchRate
	}
	return 45
}
