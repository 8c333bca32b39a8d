package engine

import (
	"fmt"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// ProcessTurn resolves one full turn: AI slots pick their actions, the lot
// is scheduled by priority and speed, executed in order, end-of-turn
// effects tick, and replacements are settled. It is the only multi-step
// mutator; the session mutex keeps at most one execution in flight.
//
// Calling it while the session sits in the Dazed capture window resumes
// the battle instead: the wild creature steadies itself and the session
// goes back to waiting for actions.
func (m *Manager) ProcessTurn(sessionID uint64) (*TurnResult, error) {
	s, ok := m.store.Get(sessionID)
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Over {
		return nil, fmt.Errorf("%w: battle is over", ErrInvalidState)
	}
	switch s.Phase {
	case game.PhaseDazed:
		return m.resumeFromDaze(s), nil
	case game.PhaseWaitingActions:
		if waiting := s.waitingOn(); len(waiting) > 0 {
			return nil, fmt.Errorf("%w: still waiting on %d action(s)", ErrInvalidState, len(waiting))
		}
	default:
		return nil, fmt.Errorf("%w: battle is not ready to resolve (phase %s)", ErrInvalidState, s.Phase)
	}

	s.Phase = game.PhaseResolving
	resolvedTurn := s.Turn
	tc := newTurnContext(s)

	plans := m.collectPlans(s)
	plans = m.scheduleActions(s, plans)
	m.executeScheduled(tc, plans)

	if !s.Over && s.Phase != game.PhaseDazed {
		m.applyEndOfTurn(tc)
	}
	if !s.Over && s.Phase != game.PhaseDazed {
		m.settleReplacements(tc)
		m.checkBattleOver(tc, s)
	}

	s.pending = make(map[ActionKey]*Action)
	s.Turn++
	finalizePhase(s)

	s.Log = append(s.Log, tc.summary...)
	s.Log = append(s.Log, tc.switchMessages...)
	s.touch()

	return &TurnResult{
		TurnNumber:     resolvedTurn,
		Messages:       tc.summary,
		SwitchMessages: tc.switchMessages,
		IsOver:         s.Over,
		Winner:         s.Winner,
	}, nil
}

// resumeFromDaze closes the capture window without a catch. The wild
// creature stays at 1 HP and will go down for real next time.
func (m *Manager) resumeFromDaze(s *Session) *TurnResult {
	s.Phase = game.PhaseWaitingActions
	msg := "The wild creature steadied itself!"
	if wild := s.wildSide(); wild != nil {
		if c := wild.ActiveCombatant(0); c != nil {
			msg = fmt.Sprintf("The wild %s steadied itself!", c.DisplayName())
		}
	}
	s.Log = append(s.Log, msg)
	s.touch()
	return &TurnResult{
		TurnNumber: s.Turn,
		Messages:   []string{msg},
		Winner:     s.Winner,
	}
}

// collectPlans pairs every conscious active slot with its action: humans
// from the pending map, AI slots from the generator.
func (m *Manager) collectPlans(s *Session) []scheduledAction {
	plans := make([]scheduledAction, 0, 4)
	for i, sd := range s.Sides {
		for slot := range sd.Active {
			actor := sd.ActiveCombatant(slot)
			if actor == nil || actor.Fainted() {
				continue
			}
			var act *Action
			if sd.AI {
				act = m.chooseAIAction(s, sd, slot)
			} else {
				act = s.pending[ActionKey{Participant: sd.Participant, Slot: slot}]
			}
			if act == nil {
				continue
			}
			plans = append(plans, scheduledAction{side: sd, sideIdx: i, slot: slot, actor: actor, action: act})
		}
	}
	return plans
}

// --- Battle end ---------------------------------------------------------

// checkBattleOver updates the session when a whole team is out of
// combatants. Both teams dropping on the same turn is a draw.
func (m *Manager) checkBattleOver(tc *turnContext, s *Session) bool {
	if s.Over {
		return true
	}
	trainerOut := s.teamDefeated(TeamTrainer)
	oppOut := s.teamDefeated(TeamOpponent)
	switch {
	case trainerOut && oppOut:
		m.finish(tc, game.WinnerDraw)
	case oppOut:
		m.finish(tc, game.WinnerTrainer)
	case trainerOut:
		m.finish(tc, game.WinnerOpponent)
	default:
		return false
	}
	return true
}

func (s *Session) teamDefeated(team int) bool {
	for _, sd := range s.Sides {
		if sd.Team == team && !sd.Defeated() {
			return false
		}
	}
	return true
}

func (m *Manager) finish(tc *turnContext, winner game.Winner) {
	s := tc.s
	if s.Over {
		return
	}
	s.Over = true
	s.Winner = winner
	s.Phase = game.PhaseEnd
	s.forced = nil
	s.voltPending = nil
	switch winner {
	case game.WinnerTrainer:
		tc.add(fmt.Sprintf("%s won the battle!", s.teamLabel(TeamTrainer)))
	case game.WinnerOpponent:
		tc.add(fmt.Sprintf("%s won the battle!", s.teamLabel(TeamOpponent)))
	case game.WinnerDraw:
		tc.add("The battle ended in a draw!")
	}
}

func finalizePhase(s *Session) {
	switch {
	case s.Over:
		s.Phase = game.PhaseEnd
	case s.Phase == game.PhaseDazed:
		// capture window stays open
	case s.forced != nil && s.forced.selfSwitch:
		s.Phase = game.PhaseVoltSwitch
	case s.forced != nil:
		s.Phase = game.PhaseForcedSwitch
	default:
		s.Phase = game.PhaseWaitingActions
	}
}
