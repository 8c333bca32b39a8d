package engine

import (
	"fmt"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// --- Switching ----------------------------------------------------------

// executeSwitch performs a voluntary switch action chosen at the start of
// the turn. The target is revalidated because the bench may have changed
// since registration.
func (m *Manager) executeSwitch(tc *turnContext, p *scheduledAction) {
	if err := validateSwitchTarget(p.side, p.action.SwitchTo); err != nil {
		return
	}
	m.switchIn(tc, p.side, p.slot, p.action.SwitchTo, false)
}

// switchIn swaps the combatant in slot for the roster member at rosterIdx:
// recall narration, state cleanup for the one leaving, send-out, entry
// hazards, then entry abilities. Replacement switches write to the switch
// message stream instead of the main turn summary.
func (m *Manager) switchIn(tc *turnContext, sd *Side, slot, rosterIdx int, asReplacement bool) {
	s := tc.s
	emit := tc.add
	if asReplacement {
		emit = tc.addSwitch
	}

	if out := sd.ActiveCombatant(slot); out != nil {
		if !out.Fainted() {
			emit(fmt.Sprintf("%s, come back!", out.DisplayName()))
		}
		m.collab.Status.ClearAllVolatile(out)
		if v := sd.VolatileOf(out); v != nil {
			v.reset()
		}
	}

	sd.Active[slot] = rosterIdx
	in := sd.Roster[rosterIdx]
	sd.VolatileAt(rosterIdx).reset()
	emit(sendOutLine(s.Kind, sd, in))

	hazardMsgs, fainted := m.applyEntryHazards(s, sd, in)
	for _, line := range hazardMsgs {
		emit(line)
	}
	if fainted {
		m.collab.Status.ClearAllVolatile(in)
		m.checkBattleOver(tc, s)
		return
	}
	for _, line := range m.collab.Ability.TriggerOnEntry(in, s) {
		emit(line)
	}
}

// queueSelfSwitch handles the pivot half of moves like U-turn. AI sides
// pick a replacement on the spot; a human side is remembered and prompted
// once the turn has finished resolving.
func (m *Manager) queueSelfSwitch(tc *turnContext, sd *Side, slot int) {
	s := tc.s
	if !sd.HasReplacement() {
		return
	}
	if sd.AI {
		if idx := m.aiPickReplacement(sd); idx >= 0 {
			m.switchIn(tc, sd, slot, idx, false)
		}
		return
	}
	if s.voltPending == nil {
		s.voltPending = &forcedSwitch{participant: sd.Participant, slot: slot, selfSwitch: true}
		tc.addSwitch(fmt.Sprintf("%s is choosing a replacement.", sd.Name))
	}
}

// rescanForced derives the next blocking human replacement from field
// state: faint replacements first, then a still-valid self-switch pivot.
func (s *Session) rescanForced() *forcedSwitch {
	for _, sd := range s.Sides {
		if sd.AI || !sd.HasReplacement() {
			continue
		}
		for slot := range sd.Active {
			c := sd.ActiveCombatant(slot)
			if c == nil || c.Fainted() {
				return &forcedSwitch{participant: sd.Participant, slot: slot}
			}
		}
	}
	if v := s.voltPending; v != nil {
		sd := s.participantSide(v.participant)
		if sd != nil && sd.HasReplacement() {
			if c := sd.ActiveCombatant(v.slot); c != nil && !c.Fainted() {
				return v
			}
		}
		s.voltPending = nil
	}
	return nil
}

// settleReplacements runs after end-of-turn effects: AI sides refill their
// empty slots immediately (retrying past entry-hazard knock-outs), then the
// first owed human replacement blocks the battle.
func (m *Manager) settleReplacements(tc *turnContext) {
	s := tc.s
	for _, sd := range s.Sides {
		if !sd.AI || s.Over {
			continue
		}
		for slot := range sd.Active {
			for !s.Over {
				c := sd.ActiveCombatant(slot)
				if c != nil && !c.Fainted() {
					break
				}
				idx := m.aiPickReplacement(sd)
				if idx < 0 {
					break
				}
				m.switchIn(tc, sd, slot, idx, true)
			}
		}
	}
	if !s.Over {
		s.forced = s.rescanForced()
		if s.forced != nil && !s.forced.selfSwitch {
			sd := s.participantSide(s.forced.participant)
			tc.addSwitch(fmt.Sprintf("%s has to send in a replacement!", sd.Name))
		}
	}
}

// --- ForceSwitch operation ----------------------------------------------

// ForceSwitch resolves the mandatory replacement currently blocking the
// battle. Only the participant the battle is waiting on may call it; the
// switch-in goes through the usual hazard and entry-ability path, and any
// further owed replacement is surfaced right after.
func (m *Manager) ForceSwitch(sessionID uint64, participant int64, rosterIdx int) (*ForceSwitchResult, error) {
	s, ok := m.store.Get(sessionID)
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Over {
		return nil, fmt.Errorf("%w: battle is over", ErrInvalidState)
	}
	if s.forced == nil {
		return nil, fmt.Errorf("%w: no replacement is pending", ErrNotPending)
	}
	if s.forced.participant != participant {
		return nil, fmt.Errorf("%w: the battle is not waiting on participant %d", ErrNotPending, participant)
	}
	sd := s.participantSide(participant)
	if sd == nil {
		return nil, fmt.Errorf("%w: participant %d is not in this battle", ErrNotFound, participant)
	}
	if err := validateSwitchTarget(sd, rosterIdx); err != nil {
		return nil, err
	}

	slot := s.forced.slot
	if s.forced.selfSwitch && s.voltPending != nil && s.voltPending.participant == participant {
		s.voltPending = nil
	}
	s.forced = nil

	tc := newTurnContext(s)
	m.switchIn(tc, sd, slot, rosterIdx, false)
	m.checkBattleOver(tc, s)

	if !s.Over {
		s.forced = s.rescanForced()
		switch {
		case s.forced == nil:
			s.Phase = game.PhaseWaitingActions
		case s.forced.selfSwitch:
			s.Phase = game.PhaseVoltSwitch
		default:
			s.Phase = game.PhaseForcedSwitch
		}
	}

	s.Log = append(s.Log, tc.summary...)
	s.touch()
	return &ForceSwitchResult{Messages: tc.summary, IsOver: s.Over, Winner: s.Winner}, nil
}
