package api

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/logging"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthRequired.
const (
	ctxTrainerID   = "trainerID"
	ctxTrainerName = "trainerName"
)

var battleIDRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

func normalizeBattleID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// sessionTrainerID pulls the trainer id the auth middleware stored.
func sessionTrainerID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxTrainerID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// battleIDParam validates the :battleID path parameter. A false return means
// the response has already been written.
func battleIDParam(c *gin.Context) (string, bool) {
	code := normalizeBattleID(c.Param("battleID"))
	if !battleIDRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return "", false
	}
	return code, true
}

// respondError maps service and engine sentinels onto HTTP statuses. The
// sentinel message is safe to show; anything unrecognized collapses to a 500
// with fallback as the client-facing text so internals never leak.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, engine.ErrNotFound),
		errors.Is(err, service.ErrTrainerNotFound),
		errors.Is(err, service.ErrOpponentNotFound),
		errors.Is(err, service.ErrChallengeNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: err.Error()})
	case errors.Is(err, engine.ErrInvalidState),
		errors.Is(err, engine.ErrNotPending),
		errors.Is(err, engine.ErrInvalidTarget),
		errors.Is(err, service.ErrPartyFull):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
	case errors.Is(err, engine.ErrInvalidRoster),
		errors.Is(err, engine.ErrIllegalMove),
		errors.Is(err, service.ErrUnsupportedFormat),
		errors.Is(err, service.ErrPartnerRequired),
		errors.Is(err, service.ErrOwnChallenge),
		errors.Is(err, service.ErrUnknownSpecies),
		errors.Is(err, service.ErrUnknownMove),
		errors.Is(err, service.ErrEmptyTrainerName):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
	default:
		logging.Error("request failed", err, logging.Fields{"path": c.FullPath()})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}
