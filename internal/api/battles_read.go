package api

import (
	"net/http"
	"strconv"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"

	"github.com/gin-gonic/gin"
)

// GetBattle returns the caller's sanitized view of a live battle. Opposing
// rosters, abilities and held items stay hidden.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	trainerID, ok := sessionTrainerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	code, ok := battleIDParam(c)
	if !ok {
		return
	}

	s, err := h.mgr.SessionByPublicID(code)
	if err != nil {
		respondError(c, err, constants.ErrBattleNotFound)
		return
	}
	view, err := h.mgr.View(s.ID, int64(trainerID))
	if err != nil {
		// The battle can finish between the two lookups.
		respondError(c, err, constants.ErrBattleNotFound)
		return
	}
	c.JSON(http.StatusOK, view)
}

func limitQuery(c *gin.Context, def, max int) int {
	limit := def
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= max {
			limit = n
		}
	}
	return limit
}

// ListRecentBattles returns finished battles, newest first.
func (h *BattleHandler) ListRecentBattles(c *gin.Context) {
	records, err := h.repo.GetRecentBattles(limitQuery(c, 20, 100))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, records)
}

type leaderboardRow struct {
	Name         string            `json:"name"`
	Class        game.TrainerClass `json:"class,omitempty"`
	RankedWins   int               `json:"ranked_wins"`
	RankedLosses int               `json:"ranked_losses"`
}

// ListLeaderboard returns the ranked ladder, best first. Rows are projected
// down to public fields; parties and money stay private.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	trainers, err := h.repo.GetTopTrainers(limitQuery(c, 10, 100))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	rows := make([]leaderboardRow, 0, len(trainers))
	for _, t := range trainers {
		rows = append(rows, leaderboardRow{
			Name:         t.Name,
			Class:        t.Class,
			RankedWins:   t.RankedWins,
			RankedLosses: t.RankedLosses,
		})
	}
	c.JSON(http.StatusOK, rows)
}
