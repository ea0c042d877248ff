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

type PomodoroHandler struct {
	log             *logger.Logger
	pomodoroService services.PomodoroService
}

func NewPomodoroHandler(baseLog *logger.Logger, pomodoroService services.PomodoroService) *PomodoroHandler {
	return &PomodoroHandler{
		log:             baseLog.With("handler", "PomodoroHandler"),
		pomodoroService: pomodoroService,
	}
}

func (h *PomodoroHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input services.StartPhaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid request body"))
		return
	}
	session, err := h.pomodoroService.StartPhase(c.Request.Context(), userID, input)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, session)
}

func (h *PomodoroHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var input services.CompletePhaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid request body"))
		return
	}
	session, err := h.pomodoroService.CompletePhase(c.Request.Context(), userID, sessionID, input)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, session)
}

func (h *PomodoroHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	sessions, err := h.pomodoroService.ListSessions(c.Request.Context(), userID, limit)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, sessions)
}
