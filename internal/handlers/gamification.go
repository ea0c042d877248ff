package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/services"
)

type GamificationHandler struct {
	log                 *logger.Logger
	gamificationService services.GamificationService
}

func NewGamificationHandler(baseLog *logger.Logger, gamificationService services.GamificationService) *GamificationHandler {
	return &GamificationHandler{
		log:                 baseLog.With("handler", "GamificationHandler"),
		gamificationService: gamificationService,
	}
}

func (h *GamificationHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, err := h.gamificationService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, profile)
}

func (h *GamificationHandler) ClaimDaily(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	result, err := h.gamificationService.ClaimDailyReward(c.Request.Context(), userID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *GamificationHandler) CreateChallenge(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input services.CreateChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid request body"))
		return
	}
	def, err := h.gamificationService.CreateChallenge(c.Request.Context(), userID, input)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, def)
}

func (h *GamificationHandler) ListChallenges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	challenges, err := h.gamificationService.ListChallenges(c.Request.Context(), userID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, challenges)
}

func (h *GamificationHandler) DeleteChallenge(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	challengeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.gamificationService.DeleteChallenge(c.Request.Context(), userID, challengeID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}

func (h *GamificationHandler) ListBadges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	badges, err := h.gamificationService.ListBadges(c.Request.Context(), userID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, badges)
}

func (h *GamificationHandler) ListBadgeDefinitions(c *gin.Context) {
	defs, err := h.gamificationService.ListBadgeDefinitions(c.Request.Context())
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, defs)
}

func (h *GamificationHandler) ListHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	history, err := h.gamificationService.ListHistory(c.Request.Context(), userID, limit)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, history)
}
