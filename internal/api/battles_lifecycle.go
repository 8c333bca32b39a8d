package api

import (
	"net/http"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type WildBattlePayload struct {
	Format    game.BattleFormat  `json:"format"`
	Wild      []service.WildSpec `json:"wild"`
	RulesetID string             `json:"ruleset_id"`
}

// StartWildBattle spawns the requested wild encounter and opens a battle
// against the caller's party.
func (h *BattleHandler) StartWildBattle(c *gin.Context) {
	trainerID, ok := sessionTrainerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req WildBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	s, msgs, err := service.StartWildBattle(h.repo, h.mgr, h.content, service.WildBattleRequest{
		TrainerID: trainerID,
		Wild:      req.Wild,
		Format:    req.Format,
		RulesetID: req.RulesetID,
	})
	if err != nil {
		respondError(c, err, constants.ErrFailedStartBattle)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"public_id": s.PublicID,
		"messages":  msgs,
	})
}

type TrainerBattlePayload struct {
	Format    game.BattleFormat `json:"format"`
	Opponents []string          `json:"opponents"`
	Partner   string            `json:"partner"`
	RulesetID string            `json:"ruleset_id"`
}

// StartTrainerBattle opens a battle against named NPC trainers.
func (h *BattleHandler) StartTrainerBattle(c *gin.Context) {
	trainerID, ok := sessionTrainerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req TrainerBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	s, msgs, err := service.StartTrainerBattle(h.repo, h.mgr, service.TrainerBattleRequest{
		TrainerID:     trainerID,
		OpponentNames: req.Opponents,
		PartnerName:   req.Partner,
		Format:        req.Format,
		RulesetID:     req.RulesetID,
	})
	if err != nil {
		respondError(c, err, constants.ErrFailedStartBattle)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"public_id": s.PublicID,
		"messages":  msgs,
	})
}

type PvPChallengePayload struct {
	Format    game.BattleFormat `json:"format"`
	Ranked    *bool             `json:"ranked"`
	RulesetID string            `json:"ruleset_id"`
}

// CreatePvPChallenge opens a challenge and returns the code to share with an
// opponent. No battle exists until someone joins.
func (h *BattleHandler) CreatePvPChallenge(c *gin.Context) {
	trainerID, ok := sessionTrainerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req PvPChallengePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	ranked := h.rankedDefault
	if req.Ranked != nil {
		ranked = *req.Ranked
	}

	ch, err := service.CreatePvPChallenge(h.book, h.repo, service.PvPChallengeRequest{
		TrainerID: trainerID,
		Format:    req.Format,
		Ranked:    ranked,
		RulesetID: req.RulesetID,
	})
	if err != nil {
		respondError(c, err, constants.ErrFailedCreateChallenge)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"challenge_code": ch.Code,
		"format":         ch.Format,
		"ranked":         ch.Ranked,
	})
}

type JoinBattlePayload struct {
	ChallengeCode string `json:"challenge_code"`
}

// JoinPvPBattle consumes a challenge code and starts the battle between the
// challenge host and the caller.
func (h *BattleHandler) JoinPvPBattle(c *gin.Context) {
	trainerID, ok := sessionTrainerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req JoinBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	s, msgs, err := service.JoinPvPBattle(h.book, h.repo, h.mgr, req.ChallengeCode, trainerID)
	if err != nil {
		respondError(c, err, constants.ErrFailedJoinBattle)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"public_id": s.PublicID,
		"messages":  msgs,
	})
}

// EndBattle forfeits the battle on the caller's behalf. Fleeing a wild
// encounter and conceding a trainer or PvP match both land here.
func (h *BattleHandler) EndBattle(c *gin.Context) {
	trainerID, ok := sessionTrainerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	code, ok := battleIDParam(c)
	if !ok {
		return
	}

	if err := service.EndBattle(h.repo, h.mgr, code, trainerID); err != nil {
		respondError(c, err, constants.ErrFailedEndBattle)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Battle ended"})
}
