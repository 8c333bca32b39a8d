// Package status is the production status-condition collaborator. It owns
// the major conditions (sleep, freeze, paralysis, burn, poison, toxic) with
// their per-battle counters, the volatile-status set the engine reads and
// writes, and the residual end-of-turn damage. State is keyed by combatant
// identity and never outlives the battle.
package status

import (
	"fmt"
	"sync"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

// Major status condition ids as stored on game.Combatant.Status.
const (
	Paralysis = "par"
	Burn      = "brn"
	Poison    = "psn"
	Toxic     = "tox"
	Sleep     = "slp"
	Freeze    = "frz"
)

const (
	volConfusion = "confusion"
	volFlinch    = "flinch"

	thawChance     = 0.20
	fullParaChance = 0.25
	confuseChance  = 1.0 / 3.0
	confusePower   = 40
)

type state struct {
	sleepTurns   int
	toxicCounter int
	confusion    int
	volatiles    map[string]bool
}

// Manager implements engine.StatusManager.
type Manager struct {
	mu     sync.Mutex
	rng    engine.RandomSource
	states map[*game.Combatant]*state
}

func NewManager(rng engine.RandomSource) *Manager {
	return &Manager{rng: rng, states: make(map[*game.Combatant]*state)}
}

func (m *Manager) stateOf(c *game.Combatant) *state {
	st, ok := m.states[c]
	if !ok {
		st = &state{}
		m.states[c] = st
	}
	return st
}

// ApplyStatus inflicts a major condition. It fails against a combatant that
// already carries one and against type immunities (Fire can't burn, Electric
// can't be paralyzed, Ice can't freeze, Poison and Steel can't be poisoned).
func (m *Manager) ApplyStatus(c *game.Combatant, status string) (bool, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c.Status != "" {
		return false, "But it failed!"
	}
	if statusImmune(c, status) {
		return false, fmt.Sprintf("It doesn't affect %s...", c.DisplayName())
	}

	switch status {
	case Paralysis:
		c.Status = status
		return true, fmt.Sprintf("%s is paralyzed! It may be unable to move!", c.DisplayName())
	case Burn:
		c.Status = status
		return true, fmt.Sprintf("%s was burned!", c.DisplayName())
	case Poison:
		c.Status = status
		return true, fmt.Sprintf("%s was poisoned!", c.DisplayName())
	case Toxic:
		c.Status = status
		m.stateOf(c).toxicCounter = 0
		return true, fmt.Sprintf("%s was badly poisoned!", c.DisplayName())
	case Sleep:
		c.Status = status
		m.stateOf(c).sleepTurns = 1 + m.rng.Intn(3)
		return true, fmt.Sprintf("%s fell asleep!", c.DisplayName())
	case Freeze:
		c.Status = status
		return true, fmt.Sprintf("%s was frozen solid!", c.DisplayName())
	}
	return false, ""
}

func statusImmune(c *game.Combatant, status string) bool {
	switch status {
	case Burn:
		return c.HasType("Fire")
	case Paralysis:
		return c.HasType("Electric")
	case Freeze:
		return c.HasType("Ice")
	case Poison, Toxic:
		return c.HasType("Poison") || c.HasType("Steel")
	}
	return false
}

// CanAct walks the turn-blocking checks in order: sleep, freeze, flinch,
// confusion, full paralysis. Recovery lines (woke up, thawed, snapped out)
// come back with a true verdict.
func (m *Manager) CanAct(c *game.Combatant) (bool, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.stateOf(c)

	switch c.Status {
	case Sleep:
		if st.sleepTurns <= 0 {
			// Status restored from storage without a counter.
			st.sleepTurns = 1 + m.rng.Intn(3)
		}
		st.sleepTurns--
		if st.sleepTurns > 0 {
			return false, fmt.Sprintf("%s is fast asleep.", c.DisplayName())
		}
		c.Status = ""
		return true, fmt.Sprintf("%s woke up!", c.DisplayName())
	case Freeze:
		if m.rng.Float64() >= thawChance {
			return false, fmt.Sprintf("%s is frozen solid!", c.DisplayName())
		}
		c.Status = ""
		return true, fmt.Sprintf("%s thawed out!", c.DisplayName())
	}

	if st.volatiles[volFlinch] {
		delete(st.volatiles, volFlinch)
		return false, fmt.Sprintf("%s flinched and couldn't move!", c.DisplayName())
	}

	var line string
	if st.confusion > 0 {
		st.confusion--
		if st.confusion == 0 {
			line = fmt.Sprintf("%s snapped out of its confusion!", c.DisplayName())
		} else {
			line = fmt.Sprintf("%s is confused!", c.DisplayName())
			if m.rng.Float64() < confuseChance {
				c.CurrentHP = maxInt(c.CurrentHP-confusionHit(c), 0)
				return false, fmt.Sprintf("%s hurt itself in its confusion!", c.DisplayName())
			}
		}
	}

	if c.Status == Paralysis && m.rng.Float64() < fullParaChance {
		return false, fmt.Sprintf("%s is paralyzed! It can't move!", c.DisplayName())
	}
	return true, line
}

// confusionHit is the typeless 40-power self-hit, the combatant's own attack
// into its own defense with no other modifiers.
func confusionHit(c *game.Combatant) int {
	level := c.Level
	if level < 1 {
		level = 1
	}
	atk := maxInt(c.Attack, 1)
	def := maxInt(c.Defense, 1)
	return maxInt((2*level/5+2)*confusePower*atk/def/50+2, 1)
}

// ApplyEndOfTurn deals the residual damage of burn and the poisons. Toxic
// ramps: the counter climbs one per turn and the bite is counter/16.
func (m *Manager) ApplyEndOfTurn(c *game.Combatant) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var dmg int
	var line string
	switch c.Status {
	case Burn:
		dmg = maxInt(c.MaxHP/16, 1)
		line = fmt.Sprintf("%s is hurt by its burn!", c.DisplayName())
	case Poison:
		dmg = maxInt(c.MaxHP/8, 1)
		line = fmt.Sprintf("%s is hurt by poison!", c.DisplayName())
	case Toxic:
		st := m.stateOf(c)
		st.toxicCounter++
		dmg = maxInt(c.MaxHP*st.toxicCounter/16, 1)
		line = fmt.Sprintf("%s is hurt by poison!", c.DisplayName())
	default:
		return nil
	}
	c.CurrentHP = maxInt(c.CurrentHP-dmg, 0)
	return []string{line}
}

// CureStatus clears the major condition and its counters.
func (m *Manager) CureStatus(c *game.Combatant) (bool, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c.Status == "" {
		return false, ""
	}
	c.Status = ""
	st := m.stateOf(c)
	st.sleepTurns = 0
	st.toxicCounter = 0
	return true, fmt.Sprintf("%s was cured of its status condition!", c.DisplayName())
}

func (m *Manager) HasVolatile(c *game.Combatant, name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.stateOf(c)
	if name == volConfusion {
		return st.confusion > 0
	}
	return st.volatiles[name]
}

// SetVolatile flags a volatile status. Confusion is special-cased: setting
// it rolls the 2-4 turn duration on the injected source.
func (m *Manager) SetVolatile(c *game.Combatant, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.stateOf(c)
	if name == volConfusion {
		if st.confusion == 0 {
			st.confusion = 2 + m.rng.Intn(3)
		}
		return
	}
	if st.volatiles == nil {
		st.volatiles = make(map[string]bool)
	}
	st.volatiles[name] = true
}

func (m *Manager) ClearVolatile(c *game.Combatant, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.stateOf(c)
	if name == volConfusion {
		st.confusion = 0
		return
	}
	delete(st.volatiles, name)
}

// ClearAllVolatile forgets everything tracked for the combatant: the
// volatile set, confusion, the toxic ramp. A badly poisoned combatant
// restarts at 1/16 when it comes back, and a still-asleep returner gets a
// fresh countdown from the CanAct guard. Dropping the whole entry also
// releases the tracking slot, so per-battle roster snapshots do not
// accumulate here after teardown.
func (m *Manager) ClearAllVolatile(c *game.Combatant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, c)
}

// ModifySpeed folds the paralysis penalty into a speed value.
func (m *Manager) ModifySpeed(c *game.Combatant, speed int) int {
	if c.Status == Paralysis {
		return speed / 2
	}
	return speed
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
