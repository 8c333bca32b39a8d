package engine

import (
	"fmt"
	"time"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// Manager owns every live battle session and is the single entry point for
// battle operations. Methods are safe for concurrent use: the session index
// has its own lock and each session is guarded by a per-session mutex.
type Manager struct {
	store  *Store
	collab Collaborators
	rng    RandomSource
}

// New builds a Manager. Nil collaborator fields fall back to no-op
// implementations so the engine stays usable on its own.
func New(collab Collaborators, rng RandomSource) *Manager {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Manager{store: NewStore(), collab: collab.withDefaults(), rng: rng}
}

// Sessions returns the number of live battles.
func (m *Manager) Sessions() int { return m.store.Len() }

// Session fetches a live battle by internal id.
func (m *Manager) Session(id uint64) (*Session, error) {
	s, ok := m.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// SessionByPublicID fetches a live battle by its public routing key.
func (m *Manager) SessionByPublicID(publicID string) (*Session, error) {
	s, ok := m.store.GetByPublicID(publicID)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// --- Battle creation ---------------------------------------------------

// StartSide describes one participant entering a new battle.
type StartSide struct {
	Participant int64
	Name        string
	Team        int
	AI          bool
	Class       game.TrainerClass
	Roster      []*game.Combatant
}

// StartConfig carries everything Start needs to open a session.
type StartConfig struct {
	Kind      game.BattleKind
	Format    game.BattleFormat
	Ranked    bool
	RulesetID string
	PublicID  string
	Sides     []StartSide
}

const maxRosterSize = 6

const publicIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const publicIDLength = 8

// Start validates the rosters, sends out the leading combatants and leaves
// the session waiting for the first turn's actions. The returned messages
// are the send-out narration including entry ability triggers.
func (m *Manager) Start(cfg StartConfig) (*Session, []string, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, nil, err
	}

	s := &Session{
		PublicID:     cfg.PublicID,
		Kind:         cfg.Kind,
		Format:       cfg.Format,
		Ranked:       cfg.Ranked,
		RulesetID:    cfg.RulesetID,
		Turn:         1,
		Phase:        game.PhaseStart,
		pending:      make(map[ActionKey]*Action),
		LastActivity: time.Now(),
	}
	if s.RulesetID == "" {
		s.RulesetID = m.collab.Ruleset.ResolveDefault("")
	}
	if s.PublicID == "" {
		s.PublicID = m.newPublicID()
	}

	slots := cfg.Format.ActiveSlots()
	for _, sc := range cfg.Sides {
		sd := &Side{
			Participant: sc.Participant,
			Name:        sc.Name,
			Team:        sc.Team,
			AI:          sc.AI,
			Class:       sc.Class,
			Roster:      sc.Roster,
			Active:      make([]int, slots),
			volatile:    make(map[int]*VolatileState),
		}
		applyCapabilities(cfg.Kind, sd)
		fillLeadingActives(sd)
		s.Sides = append(s.Sides, sd)
	}

	// Everyone is revealed first, then entry abilities fire in field order.
	msgs := make([]string, 0, 8)
	for _, sd := range s.Sides {
		for slot := range sd.Active {
			if c := sd.ActiveCombatant(slot); c != nil {
				msgs = append(msgs, sendOutLine(s.Kind, sd, c))
			}
		}
	}
	for _, sd := range s.Sides {
		for slot := range sd.Active {
			if c := sd.ActiveCombatant(slot); c != nil {
				msgs = append(msgs, m.collab.Ability.TriggerOnEntry(c, s)...)
			}
		}
	}

	s.Phase = game.PhaseWaitingActions
	s.Log = append(s.Log, msgs...)
	m.store.add(s)
	return s, msgs, nil
}

func validateConfig(cfg StartConfig) error {
	wantSides := 2
	if cfg.Format == game.FormatMulti {
		wantSides = 4
	}
	if len(cfg.Sides) != wantSides {
		return fmt.Errorf("%w: %s format needs %d sides, got %d", ErrInvalidRoster, cfg.Format, wantSides, len(cfg.Sides))
	}
	var perTeam [2]int
	seen := make(map[int64]bool, len(cfg.Sides))
	for _, sc := range cfg.Sides {
		if sc.Team != TeamTrainer && sc.Team != TeamOpponent {
			return fmt.Errorf("%w: side %q has invalid team %d", ErrInvalidRoster, sc.Name, sc.Team)
		}
		perTeam[sc.Team]++
		if seen[sc.Participant] {
			return fmt.Errorf("%w: duplicate participant id %d", ErrInvalidRoster, sc.Participant)
		}
		seen[sc.Participant] = true
		if len(sc.Roster) == 0 || len(sc.Roster) > maxRosterSize {
			return fmt.Errorf("%w: side %q must bring 1 to %d combatants", ErrInvalidRoster, sc.Name, maxRosterSize)
		}
	}
	if perTeam[TeamTrainer] == 0 || perTeam[TeamOpponent] == 0 {
		return fmt.Errorf("%w: both teams need at least one side", ErrInvalidRoster)
	}
	if cfg.Format == game.FormatMulti && (perTeam[TeamTrainer] != 2 || perTeam[TeamOpponent] != 2) {
		return fmt.Errorf("%w: multi battles need two sides per team", ErrInvalidRoster)
	}
	return nil
}

// applyCapabilities sets what a side may do based on the encounter type.
// Wild creatures cannot act outside their moves; nobody flees a trainer,
// and competitive battles ban bag items.
func applyCapabilities(kind game.BattleKind, sd *Side) {
	switch kind {
	case game.BattleWild:
		if sd.AI {
			sd.CanSwitch, sd.CanUseItems, sd.CanFlee = false, false, false
		} else {
			sd.CanSwitch, sd.CanUseItems, sd.CanFlee = true, true, true
		}
	case game.BattleTrainer:
		sd.CanSwitch = true
		sd.CanUseItems = !sd.AI
		sd.CanFlee = false
	default: // pvp
		sd.CanSwitch = true
		sd.CanUseItems = false
		sd.CanFlee = false
	}
}

// fillLeadingActives places the first conscious roster members into the
// side's active slots. A slot that cannot be filled holds -1, except that a
// fully fainted roster still leads with slot 0 so the battle can start and
// settle on its own.
func fillLeadingActives(sd *Side) {
	next := 0
	filled := false
	for slot := range sd.Active {
		sd.Active[slot] = -1
		for ; next < len(sd.Roster); next++ {
			if !sd.Roster[next].Fainted() {
				sd.Active[slot] = next
				sd.volatile[next] = newVolatileState()
				next++
				filled = true
				break
			}
		}
	}
	if !filled {
		sd.Active[0] = 0
		sd.volatile[0] = newVolatileState()
	}
}

func sendOutLine(kind game.BattleKind, sd *Side, c *game.Combatant) string {
	switch {
	case kind == game.BattleWild && sd.AI:
		return fmt.Sprintf("A wild %s appeared!", c.DisplayName())
	case sd.AI:
		return fmt.Sprintf("%s sent out %s!", sd.Name, c.DisplayName())
	default:
		return fmt.Sprintf("Go! %s!", c.DisplayName())
	}
}

func (m *Manager) newPublicID() string {
	for {
		b := make([]byte, publicIDLength)
		for i := range b {
			b[i] = publicIDCharset[m.rng.Intn(len(publicIDCharset))]
		}
		if _, taken := m.store.GetByPublicID(string(b)); !taken {
			return string(b)
		}
	}
}

// --- Action registration ----------------------------------------------

// RegisterAction stores one participant's order for the current turn. The
// result reports which slots the turn is still waiting on; once nothing is
// missing the caller should run ProcessTurn.
func (m *Manager) RegisterAction(sessionID uint64, participant int64, act *Action) (*RegisterActionResult, error) {
	s, ok := m.store.Get(sessionID)
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Over {
		return nil, fmt.Errorf("%w: battle is over", ErrInvalidState)
	}
	if s.Phase != game.PhaseWaitingActions {
		return nil, fmt.Errorf("%w: battle is not accepting actions (phase %s)", ErrInvalidState, s.Phase)
	}
	sd := s.participantSide(participant)
	if sd == nil {
		return nil, fmt.Errorf("%w: participant %d is not in this battle", ErrNotFound, participant)
	}
	if sd.AI {
		return nil, fmt.Errorf("%w: that side acts on its own", ErrInvalidState)
	}

	slot := act.ActingSlot
	if slot < 0 || slot >= len(sd.Active) {
		return nil, fmt.Errorf("%w: acting slot %d", ErrInvalidTarget, slot)
	}
	actor := sd.ActiveCombatant(slot)
	if actor == nil || actor.Fainted() {
		return nil, fmt.Errorf("%w: no conscious combatant in slot %d", ErrInvalidState, slot)
	}

	switch act.Kind {
	case ActionMove:
		if err := m.validateMove(actor, act); err != nil {
			return nil, err
		}
	case ActionSwitch:
		if !sd.CanSwitch {
			return nil, fmt.Errorf("%w: switching is not allowed here", ErrInvalidState)
		}
		if err := validateSwitchTarget(sd, act.SwitchTo); err != nil {
			return nil, err
		}
	case ActionItem:
		if !sd.CanUseItems {
			return nil, fmt.Errorf("%w: items are not allowed here", ErrInvalidState)
		}
		it, found := m.collab.Content.ItemByID(act.ItemID)
		if !found {
			return nil, fmt.Errorf("%w: unknown item %q", ErrNotFound, act.ItemID)
		}
		if it.Kind != content.ItemMedicine {
			return nil, fmt.Errorf("%w: %s cannot be used as a turn action", ErrIllegalMove, it.Name)
		}
		if act.ItemTarget < 0 || act.ItemTarget >= len(sd.Roster) {
			return nil, fmt.Errorf("%w: item target %d", ErrInvalidTarget, act.ItemTarget)
		}
	case ActionFlee:
		if !sd.CanFlee {
			return nil, fmt.Errorf("%w: you can't run from this battle", ErrInvalidState)
		}
	default:
		return nil, fmt.Errorf("%w: unknown action kind %q", ErrInvalidState, act.Kind)
	}

	s.pending[ActionKey{Participant: participant, Slot: slot}] = act
	s.touch()

	waiting := s.waitingOn()
	return &RegisterActionResult{
		Accepted:       true,
		WaitingFor:     waiting,
		ReadyToResolve: len(waiting) == 0,
	}, nil
}

func (m *Manager) validateMove(actor *game.Combatant, act *Action) error {
	if act.MoveID == "" {
		return fmt.Errorf("%w: move id is required", ErrIllegalMove)
	}
	if _, found := m.collab.Content.MoveByID(act.MoveID); !found {
		return fmt.Errorf("%w: unknown move %q", ErrNotFound, act.MoveID)
	}
	if content.Normalize(act.MoveID) == "struggle" {
		return nil
	}
	for i := range actor.Moves {
		ms := &actor.Moves[i]
		if ms.MoveID == act.MoveID {
			if ms.PP <= 0 {
				return fmt.Errorf("%w: no PP left for that move", ErrIllegalMove)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s does not know that move", ErrIllegalMove, actor.DisplayName())
}

func validateSwitchTarget(sd *Side, rosterIdx int) error {
	if rosterIdx < 0 || rosterIdx >= len(sd.Roster) {
		return fmt.Errorf("%w: roster slot %d", ErrInvalidTarget, rosterIdx)
	}
	if sd.Roster[rosterIdx].Fainted() {
		return fmt.Errorf("%w: %s has fainted", ErrInvalidTarget, sd.Roster[rosterIdx].DisplayName())
	}
	if sd.isActiveIndex(rosterIdx) {
		return fmt.Errorf("%w: %s is already in battle", ErrInvalidTarget, sd.Roster[rosterIdx].DisplayName())
	}
	return nil
}

// waitingOn lists the human slots that still owe an action this turn.
func (s *Session) waitingOn() []string {
	waiting := make([]string, 0, 2)
	for _, sd := range s.Sides {
		if sd.AI {
			continue
		}
		for slot := range sd.Active {
			c := sd.ActiveCombatant(slot)
			if c == nil || c.Fainted() {
				continue
			}
			if _, ok := s.pending[ActionKey{Participant: sd.Participant, Slot: slot}]; !ok {
				waiting = append(waiting, fmt.Sprintf("%s (%s)", sd.Name, c.DisplayName()))
			}
		}
	}
	return waiting
}

// --- Teardown ----------------------------------------------------------

// EndBattle tears a session down and releases per-combatant tracking state
// held by the status manager. Ending an already-removed battle is a no-op.
func (m *Manager) EndBattle(sessionID uint64) error {
	s, ok := m.store.Get(sessionID)
	if !ok {
		return nil
	}
	s.mu.Lock()
	if !s.Over {
		s.Over = true
		s.Phase = game.PhaseEnd
	}
	for _, sd := range s.Sides {
		for _, c := range sd.Roster {
			m.collab.Status.ClearAllVolatile(c)
		}
		sd.volatile = make(map[int]*VolatileState)
	}
	s.mu.Unlock()
	m.store.Delete(s.ID)
	return nil
}

// ExpireIdle ends every battle whose last activity is older than maxIdle
// and returns the sessions it removed.
func (m *Manager) ExpireIdle(maxIdle time.Duration) []*Session {
	cutoff := time.Now().Add(-maxIdle)
	expired := make([]*Session, 0)
	for _, s := range m.store.Snapshot() {
		s.mu.Lock()
		idle := s.LastActivity.Before(cutoff)
		s.mu.Unlock()
		if !idle {
			continue
		}
		if err := m.EndBattle(s.ID); err == nil {
			expired = append(expired, s)
		}
	}
	return expired
}
