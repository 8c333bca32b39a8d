package api

import (
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches every API route to the router. Server wiring and
// tests share this, so route coverage cannot drift between them.
func RegisterRoutes(router *gin.Engine, h *BattleHandler, auth *AuthHandler) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.POST(constants.RouteAuthToken, auth.IssueToken)
		apiRoutes.GET(constants.RouteContentSpecies, h.GetSpecies)
		apiRoutes.GET(constants.RouteContentMoves, h.GetMove)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.GET(constants.RouteBattlesRecent, h.ListRecentBattles)
		apiRoutes.GET(constants.RouteVersion, Version)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(AuthRequired())

		protected.POST(constants.RouteBattlesWild, h.StartWildBattle)
		protected.POST(constants.RouteBattlesTrainer, h.StartTrainerBattle)
		protected.POST(constants.RouteBattlesPvP, h.CreatePvPChallenge)
		protected.POST(constants.RouteBattlesPvPJoin, h.JoinPvPBattle)
		protected.GET(constants.RouteBattleByID, h.GetBattle)
		protected.DELETE(constants.RouteBattleByID, h.EndBattle)
		protected.POST(constants.RouteBattleActions, h.SubmitAction)
		protected.POST(constants.RouteBattleSwitch, h.SwitchCombatant)
		protected.POST(constants.RouteBattleCapture, h.ThrowBall)
	}

	router.GET(constants.RouteHealthz, Healthz)
}
