package api

import (
	"net/http"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// ActionPayload is the wire form of one battle order. Kind selects the
// variant; the other fields mirror engine.Action.
type ActionPayload struct {
	Kind       string `json:"kind"`
	ActingSlot int    `json:"acting_slot"`
	MoveID     string `json:"move_id"`
	TargetSlot int    `json:"target_slot"`
	Mega       bool   `json:"mega"`
	SwitchTo   int    `json:"switch_to"`
	ItemID     string `json:"item_id"`
	ItemTarget int    `json:"item_target"`
}

func buildAction(req *ActionPayload) (*engine.Action, bool) {
	switch engine.ActionKind(req.Kind) {
	case engine.ActionMove:
		act := engine.NewMoveAction(req.MoveID, req.TargetSlot, req.ActingSlot)
		act.Mega = req.Mega
		return act, true
	case engine.ActionSwitch:
		return engine.NewSwitchAction(req.SwitchTo, req.ActingSlot), true
	case engine.ActionItem:
		return engine.NewItemAction(req.ItemID, req.ItemTarget, req.ActingSlot), true
	case engine.ActionFlee:
		return engine.NewFleeAction(req.ActingSlot), true
	}
	return nil, false
}

// SubmitAction stores the caller's order for the current turn and, when that
// completes the turn, resolves it and returns the outcome.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	trainerID, ok := sessionTrainerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	code, ok := battleIDParam(c)
	if !ok {
		return
	}
	var req ActionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	act, ok := buildAction(&req)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	reg, res, err := service.SubmitAction(h.repo, h.mgr, code, trainerID, act)
	if err != nil {
		respondError(c, err, constants.ErrFailedStoreAction)
		return
	}

	if res != nil {
		c.JSON(http.StatusOK, gin.H{
			constants.JSONKeyMessage: "Turn resolved",
			"result":                 res,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyMessage: "Action stored. Waiting for the other side.",
		"waiting_for":            reg.WaitingFor,
	})
}

type SwitchPayload struct {
	RosterIndex int `json:"roster_index"`
}

// SwitchCombatant answers a pending forced or self switch by sending in the
// given roster member.
func (h *BattleHandler) SwitchCombatant(c *gin.Context) {
	trainerID, ok := sessionTrainerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	code, ok := battleIDParam(c)
	if !ok {
		return
	}
	var req SwitchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	res, err := service.ReplaceFainted(h.repo, h.mgr, code, trainerID, req.RosterIndex)
	if err != nil {
		respondError(c, err, constants.ErrFailedSwitch)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

type CapturePayload struct {
	BallID string `json:"ball_id"`
}

// ThrowBall attempts to capture the wild combatant with the given ball.
func (h *BattleHandler) ThrowBall(c *gin.Context) {
	trainerID, ok := sessionTrainerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	code, ok := battleIDParam(c)
	if !ok {
		return
	}
	var req CapturePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	res, err := service.ThrowBall(h.repo, h.mgr, h.content, code, trainerID, req.BallID)
	if err != nil {
		respondError(c, err, constants.ErrFailedCapture)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}
