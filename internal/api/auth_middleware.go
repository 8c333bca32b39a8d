package api

import (
	"net/http"
	"strings"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"
	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and injects the trainer identity
// into the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.HeaderAuthorization)
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseAndValidateToken(strings.TrimPrefix(header, constants.BearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		id, err := claims.trainerID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(ctxTrainerID, id)
		c.Set(ctxTrainerName, claims.Name)
		c.Next()
	}
}
