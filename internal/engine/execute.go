package engine

import (
	"fmt"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
)

const (
	fieldEffectTurns = 5
	screenTurns      = 5

	// spreadMultiplier damps multi-target damage in the Doubles format only.
	spreadMultiplier = 0.75

	moveStruggle    = "struggle"
	moveHelpingHand = "helping_hand"
	volHelpingHand  = "helping_hand"
)

// executeScheduled runs the turn's actions in order. A battle that ends or
// a wild creature dropping into the dazed window stops the turn on the
// spot; the remaining actions are discarded.
func (m *Manager) executeScheduled(tc *turnContext, plans []scheduledAction) {
	s := tc.s
	for i := range plans {
		if s.Over || s.Phase == game.PhaseDazed {
			return
		}
		p := &plans[i]
		current := p.side.ActiveCombatant(p.slot)
		if current == nil || current != p.actor || current.Fainted() {
			continue
		}
		switch p.action.Kind {
		case ActionMove:
			m.executeMove(tc, p)
		case ActionSwitch:
			m.executeSwitch(tc, p)
		case ActionItem:
			m.executeItem(tc, p)
		case ActionFlee:
			m.executeFlee(tc, p)
		}
	}
}

// --- Move execution -----------------------------------------------------

func (m *Manager) executeMove(tc *turnContext, p *scheduledAction) {
	s := tc.s
	actor := p.actor
	sd := p.side
	vol := sd.VolatileOf(actor)

	mv, found := m.collab.Content.MoveByID(p.action.MoveID)
	if !found {
		return
	}

	if !m.canActGate(tc, sd, actor) {
		// A confusion self-hit can take the actor down right here.
		if actor.Fainted() {
			m.resolveKnockout(tc, fieldPos{side: sd, slot: p.slot})
		}
		return
	}
	if !m.choiceLockGate(tc, sd, actor, mv) {
		return
	}
	if !m.rulesetGate(tc, s, actor, mv) {
		return
	}

	spendPP(actor, mv.ID)
	if holdsChoiceItem(actor) && vol.ChoiceLock == "" && mv.ID != moveStruggle {
		vol.ChoiceLock = mv.ID
	}

	tc.add(fmt.Sprintf("%s used %s!", actor.DisplayName(), mv.Name))

	// The protect streak roll happens after the choice-lock, ruleset and PP
	// gates rather than before them, so a failed roll still spends PP and can
	// still lock a choice item onto the move.
	if mv.Protecting || mv.Enduring {
		m.rollProtection(tc, sd, actor, mv)
		return
	}
	// Any other move breaks the user's own protection streak.
	vol.ProtectStreak = 0

	targets, failLine := m.resolveTargets(s, sd, p.slot, &mv, p.action.TargetSlot)
	if failLine != "" {
		tc.add(failLine)
		return
	}

	if mv.Damaging() {
		m.executeDamagingMove(tc, p, mv, targets)
	} else {
		m.executeStatusMove(tc, p, mv, targets)
	}

	if mv.SelfSwitch && !actor.Fainted() && !s.Over && s.Phase != game.PhaseDazed {
		m.queueSelfSwitch(tc, sd, p.slot)
	}
}

func (m *Manager) executeDamagingMove(tc *turnContext, p *scheduledAction, mv content.Move, targets []fieldPos) {
	s := tc.s
	actor := p.actor
	sd := p.side

	helping := m.collab.Status.HasVolatile(actor, volHelpingHand)
	if helping {
		m.collab.Status.ClearVolatile(actor, volHelpingHand)
	}

	spread := len(targets) > 1
	if spread {
		names := make([]string, 0, len(targets))
		for _, pos := range targets {
			if c := pos.combatant(); c != nil && !c.Fainted() && c != actor {
				names = append(names, c.DisplayName())
			}
		}
		if len(names) > 1 {
			tc.add(fmt.Sprintf("It hit %s!", joinWithAnd(names)))
		}
	}

	struck := 0
	for _, pos := range targets {
		if s.Over || s.Phase == game.PhaseDazed {
			break
		}
		defender := pos.combatant()
		if defender == nil || defender.Fainted() || defender == actor {
			continue
		}
		if m.defenderProtected(tc, defender) {
			continue
		}

		out := m.collab.Damage.Compute(m.damageInput(s, sd, actor, pos, mv))
		tc.addAll(out.Extra)
		if out.Effectiveness == 0 {
			continue
		}

		dmg := float64(out.Damage)
		dmg *= attackerItemMultiplier(actor, mv, out.Effectiveness)
		if helping {
			dmg *= 1.5
		}
		if spread && s.Format == game.FormatDoubles {
			dmg *= spreadMultiplier
		}
		struck++
		m.applyDamageTo(tc, pos, maxInt(int(dmg), 1))

		if !defender.Fainted() && !s.Over {
			if mv.StatusEffect != "" && mv.StatusChance > 0 &&
				m.rng.Float64()*100 < float64(mv.StatusChance) {
				if _, line := m.collab.Status.ApplyStatus(defender, mv.StatusEffect); line != "" {
					tc.add(line)
				}
			}
			for _, sc := range mv.StatChanges {
				tgt := defender
				if sc.Target == "self" {
					tgt = actor
				}
				if tgt.Fainted() {
					continue
				}
				if line := s.ApplyStatStage(tgt, sc.Stat, sc.Stages); line != "" {
					tc.add(line)
				}
			}
		}
	}

	if struck == 0 || actor.Fainted() || s.Over {
		return
	}
	if mv.ID == moveStruggle {
		tc.add(fmt.Sprintf("%s is damaged by recoil!", actor.DisplayName()))
		m.applyDamageTo(tc, fieldPos{side: sd, slot: p.slot}, maxInt(actor.MaxHP/4, 1))
		return
	}
	if recoil, line := m.lifeOrbRecoil(actor); recoil > 0 {
		tc.add(line)
		m.applyDamageTo(tc, fieldPos{side: sd, slot: p.slot}, recoil)
	}
}

func (m *Manager) executeStatusMove(tc *turnContext, p *scheduledAction, mv content.Move, targets []fieldPos) {
	s := tc.s
	actor := p.actor
	sd := p.side

	// Field-scoped effects resolve once, not per target.
	switch {
	case mv.Weather != "":
		if s.Weather == mv.Weather {
			tc.add(msgFailed)
			return
		}
		tc.add(s.SetWeather(mv.Weather, fieldEffectTurns))
		return
	case mv.Terrain != "":
		if s.Terrain == mv.Terrain {
			tc.add(msgFailed)
			return
		}
		tc.add(s.SetTerrain(mv.Terrain, fieldEffectTurns))
		return
	case mv.Screen != "":
		scr := &s.Screens[sd.Team]
		label := s.teamLabel(sd.Team)
		switch mv.Screen {
		case content.ScreenReflect:
			if scr.ReflectTurns > 0 {
				tc.add(msgFailed)
				return
			}
			scr.ReflectTurns = screenTurns
			tc.add(fmt.Sprintf("Reflect raised %s's team's Defense!", label))
		case content.ScreenLightScreen:
			if scr.LightScreenTurns > 0 {
				tc.add(msgFailed)
				return
			}
			scr.LightScreenTurns = screenTurns
			tc.add(fmt.Sprintf("Light Screen raised %s's team's Sp. Def!", label))
		}
		return
	case mv.Hazard != "":
		tc.add(s.placeHazard(opposingTeam(sd.Team), mv.Hazard))
		return
	}

	for _, pos := range targets {
		defender := pos.combatant()
		if defender == nil || defender.Fainted() {
			continue
		}
		if defender != actor && pos.side.Team != sd.Team && m.defenderProtected(tc, defender) {
			continue
		}

		if mv.ID == moveHelpingHand {
			m.collab.Status.SetVolatile(defender, volHelpingHand)
			tc.add(fmt.Sprintf("%s is ready to help %s!", actor.DisplayName(), defender.DisplayName()))
			continue
		}

		applied := false
		if mv.HealPercent > 0 {
			if defender.CurrentHP >= defender.MaxHP {
				tc.add(fmt.Sprintf("%s's HP is full!", defender.DisplayName()))
			} else {
				heal := maxInt(defender.MaxHP*mv.HealPercent/100, 1)
				defender.CurrentHP = minInt(defender.CurrentHP+heal, defender.MaxHP)
				tc.add(fmt.Sprintf("%s regained health!", defender.DisplayName()))
			}
			applied = true
		}
		for _, sc := range mv.StatChanges {
			tgt := defender
			if sc.Target == "self" {
				tgt = actor
			}
			if line := s.ApplyStatStage(tgt, sc.Stat, sc.Stages); line != "" {
				tc.add(line)
			}
			applied = true
		}
		if mv.StatusEffect != "" {
			chance := mv.StatusChance
			if chance <= 0 {
				chance = 100
			}
			if m.rng.Float64()*100 < float64(chance) {
				if _, line := m.collab.Status.ApplyStatus(defender, mv.StatusEffect); line != "" {
					tc.add(line)
				}
			}
			applied = true
		}
		if !applied {
			tc.add(msgFailed)
		}
	}
}

// damageInput assembles the calculator's view of one hit.
func (m *Manager) damageInput(s *Session, actorSide *Side, actor *game.Combatant, pos fieldPos, mv content.Move) DamageInput {
	defender := pos.combatant()
	atkStat, defStat := "attack", "defense"
	if mv.Category == content.CategorySpecial {
		atkStat, defStat = "sp_attack", "sp_defense"
	}
	scr := s.Screens[pos.side.Team]
	return DamageInput{
		Attacker:            actor,
		Defender:            defender,
		MoveID:              mv.ID,
		Weather:             s.Weather,
		Terrain:             s.Terrain,
		AttackStage:         actorSide.VolatileOf(actor).Stages[atkStat],
		DefenseStage:        pos.side.VolatileOf(defender).Stages[defStat],
		DefenderReflect:     scr.ReflectTurns > 0,
		DefenderLightScreen: scr.LightScreenTurns > 0,
		DefenderHasAlly:     len(s.livePositions(pos.side.Team)) > 1,
		Doubles:             s.Format == game.FormatDoubles,
	}
}

// applyDamageTo lands damage on a field position, routing through endure,
// hang-on items, the wild daze window and finally the faint handling.
func (m *Manager) applyDamageTo(tc *turnContext, pos fieldPos, damage int) {
	defender := pos.combatant()
	if defender == nil || damage <= 0 {
		return
	}
	if damage < defender.CurrentHP {
		defender.CurrentHP -= damage
		return
	}

	if m.collab.Status.HasVolatile(defender, volEndure) {
		defender.CurrentHP = 1
		tc.add(fmt.Sprintf("%s endured the hit!", defender.DisplayName()))
		return
	}
	var hangLine string
	damage, hangLine = m.applyHangOn(pos.side, defender, damage)
	defender.CurrentHP = maxInt(defender.CurrentHP-damage, 0)
	if hangLine != "" {
		tc.add(hangLine)
		return
	}
	if !defender.Fainted() {
		return
	}
	m.resolveKnockout(tc, pos)
}

// resolveKnockout decides what a combatant at zero HP becomes. A wild
// creature is not knocked out the first time it would drop: it hangs on at
// 1 HP, dazed, opening the capture window. Everyone else faints.
func (m *Manager) resolveKnockout(tc *turnContext, pos fieldPos) {
	s := tc.s
	c := pos.combatant()
	if s.Kind == game.BattleWild && pos.side.AI && !s.WildDazed {
		c.CurrentHP = 1
		s.WildDazed = true
		s.Phase = game.PhaseDazed
		tc.add(fmt.Sprintf("The wild %s is dazed and can barely stand!", c.DisplayName()))
		return
	}
	m.handleFaint(tc, pos)
}

// handleFaint narrates a knock-out and drops battle-only state. Replacement
// scheduling waits until the turn wraps up.
func (m *Manager) handleFaint(tc *turnContext, pos fieldPos) {
	c := pos.combatant()
	tc.add(faintLine(c))
	m.collab.Status.ClearAllVolatile(c)
	if v := pos.side.VolatileOf(c); v != nil {
		v.reset()
	}
	m.checkBattleOver(tc, tc.s)
}

// --- Item and flee execution -------------------------------------------

func (m *Manager) executeItem(tc *turnContext, p *scheduledAction) {
	sd := p.side
	it, found := m.collab.Content.ItemByID(p.action.ItemID)
	if !found || p.action.ItemTarget < 0 || p.action.ItemTarget >= len(sd.Roster) {
		return
	}
	target := sd.Roster[p.action.ItemTarget]
	tc.add(fmt.Sprintf("%s used the %s!", sd.Name, it.Name))
	m.applyMedicine(tc, target, it)
}

func (m *Manager) applyMedicine(tc *turnContext, target *game.Combatant, it content.Item) {
	if it.Revives {
		if !target.Fainted() {
			tc.add("It won't have any effect.")
			return
		}
		target.CurrentHP = maxInt(target.MaxHP/2, 1)
		if it.HealsFully {
			target.CurrentHP = target.MaxHP
		}
		tc.add(fmt.Sprintf("%s came back to its senses!", target.DisplayName()))
		return
	}
	if target.Fainted() {
		tc.add("It won't have any effect.")
		return
	}

	applied := false
	if it.HealsFully || it.HealAmount > 0 {
		if target.CurrentHP < target.MaxHP {
			heal := it.HealAmount
			if it.HealsFully {
				heal = target.MaxHP
			}
			target.CurrentHP = minInt(target.CurrentHP+heal, target.MaxHP)
			tc.add(fmt.Sprintf("%s's HP was restored!", target.DisplayName()))
			applied = true
		}
	}
	if it.CuresStatus && target.Status != "" {
		if ok, line := m.collab.Status.CureStatus(target); ok {
			if line != "" {
				tc.add(line)
			}
			applied = true
		}
	}
	if !applied {
		tc.add("It won't have any effect.")
	}
}

func (m *Manager) executeFlee(tc *turnContext, p *scheduledAction) {
	if m.rng.Float64() < 0.5 {
		tc.add("Got away safely!")
		m.finish(tc, game.WinnerFled)
		return
	}
	tc.add("Can't escape!")
}
