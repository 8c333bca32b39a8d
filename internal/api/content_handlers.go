package api

import (
	"net/http"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"

	"github.com/gin-gonic/gin"
)

// GetSpecies returns one species definition. The lookup accepts any spelling
// Normalize folds together ("Mr. Mime", "mr_mime", "MRMIME").
func (h *BattleHandler) GetSpecies(c *gin.Context) {
	sp, ok := h.content.SpeciesByName(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSpeciesNotFound})
		return
	}
	c.JSON(http.StatusOK, sp)
}

// GetMove returns one move definition by id or display name.
func (h *BattleHandler) GetMove(c *gin.Context) {
	mv, ok := h.content.MoveByID(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMoveNotFound})
		return
	}
	c.JSON(http.StatusOK, mv)
}
