package engine

import "github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"

// ActionKind tags the Action variant.
type ActionKind string

const (
	ActionMove   ActionKind = "move"
	ActionSwitch ActionKind = "switch"
	ActionItem   ActionKind = "item"
	ActionFlee   ActionKind = "flee"
)

// Action is one participant's order for one active slot. Exactly one variant
// is meaningful depending on Kind; the ordering key is computed when the
// turn is scheduled and discarded with the action once the turn resolves.
type Action struct {
	Kind ActionKind

	// ActingSlot is the side-relative active slot performing the action.
	ActingSlot int

	// Move variant. Mega is accepted for forward compatibility with mega
	// evolution and currently has no effect on resolution.
	MoveID     string
	TargetSlot int
	Mega       bool

	// Switch variant: the roster index to bring in.
	SwitchTo int

	// Item variant.
	ItemID     string
	ItemTarget int

	// Scheduling key, filled by the scheduler.
	tier  int
	speed int
}

// NewMoveAction orders the combatant in actingSlot to use a move against the
// team-relative targetSlot.
func NewMoveAction(moveID string, targetSlot, actingSlot int) *Action {
	return &Action{Kind: ActionMove, MoveID: moveID, TargetSlot: targetSlot, ActingSlot: actingSlot}
}

// NewSwitchAction replaces the combatant in actingSlot with the roster
// member at rosterIdx.
func NewSwitchAction(rosterIdx, actingSlot int) *Action {
	return &Action{Kind: ActionSwitch, SwitchTo: rosterIdx, ActingSlot: actingSlot}
}

// NewItemAction uses an item on the roster member at rosterIdx.
func NewItemAction(itemID string, rosterIdx, actingSlot int) *Action {
	return &Action{Kind: ActionItem, ItemID: itemID, ItemTarget: rosterIdx, ActingSlot: actingSlot}
}

// NewFleeAction attempts to run from a wild battle.
func NewFleeAction(actingSlot int) *Action {
	return &Action{Kind: ActionFlee, ActingSlot: actingSlot}
}

// TurnResult is what one ProcessTurn hands back to the caller.
type TurnResult struct {
	TurnNumber     int         `json:"turn_number"`
	Messages       []string    `json:"messages"`
	SwitchMessages []string    `json:"switch_messages"`
	IsOver         bool        `json:"is_over"`
	Winner         game.Winner `json:"winner"`
}

// RegisterActionResult reports whether an action was stored and what the
// turn is still waiting on.
type RegisterActionResult struct {
	Accepted       bool     `json:"accepted"`
	WaitingFor     []string `json:"waiting_for"`
	ReadyToResolve bool     `json:"ready_to_resolve"`
}

// ForceSwitchResult carries the narration of a resolved mandatory switch.
// Entry hazards can knock out the replacement, so even this path can finish
// the battle.
type ForceSwitchResult struct {
	Messages []string    `json:"messages"`
	IsOver   bool        `json:"is_over"`
	Winner   game.Winner `json:"winner,omitempty"`
}

// CaptureResult reports one ball throw. IsOver covers both outcomes that
// finish the battle: a successful catch, and a missed throw whose lash-back
// knocked out the thrower's last combatant.
type CaptureResult struct {
	Caught   bool        `json:"caught"`
	Shakes   int         `json:"shakes"`
	Messages []string    `json:"messages"`
	IsOver   bool        `json:"is_over"`
	Winner   game.Winner `json:"winner"`
}
