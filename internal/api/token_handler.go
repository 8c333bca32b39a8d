package api

import (
	"crypto/hmac"
	"net/http"
	"os"
	"time"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/service"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/storage"

	"github.com/gin-gonic/gin"
)

const tokenTTL = 24 * time.Hour

// AuthHandler issues trainer session tokens to trusted frontend processes.
type AuthHandler struct {
	repo    storage.Repository
	content *content.DB
}

func NewAuthHandler(repo storage.Repository, db *content.DB) *AuthHandler {
	return &AuthHandler{repo: repo, content: db}
}

type TokenRequest struct {
	ServiceSecret string `json:"service_secret"`
	TrainerName   string `json:"trainer_name"`
	// Starter picks the first party member when the name is new. Empty
	// falls back to the default starter species.
	Starter string `json:"starter"`
}

// IssueToken authenticates the calling frontend by shared secret and returns
// a session token for the named trainer, registering the account on first
// sight. Player identity on the chat platform is the frontend's concern;
// this service only trusts the secret.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	secret := os.Getenv(constants.EnvServiceSecret)
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrMissingSecretEnv})
		return
	}
	if !hmac.Equal([]byte(req.ServiceSecret), []byte(secret)) {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	tr, err := service.GetOrRegisterTrainer(h.repo, h.content, req.TrainerName, req.Starter)
	if err != nil {
		respondError(c, err, constants.ErrFailedIssueToken)
		return
	}

	token, err := createTrainerToken(tr.ID, tr.Name, tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedIssueToken})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"trainer_id": tr.ID,
		"name":       tr.Name,
		"money":      tr.Money,
	})
}
