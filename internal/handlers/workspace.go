package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/services"
)

type WorkspaceHandler struct {
	log              *logger.Logger
	workspaceService services.WorkspaceService
}

func NewWorkspaceHandler(baseLog *logger.Logger, workspaceService services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		log:              baseLog.With("handler", "WorkspaceHandler"),
		workspaceService: workspaceService,
	}
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid request body"))
		return
	}
	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), userID, req.Name)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, workspace)
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	workspace, err := h.workspaceService.GetWorkspace(c.Request.Context(), userID, workspaceID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, workspace)
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workspaces, err := h.workspaceService.ListWorkspaces(c.Request.Context(), userID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, workspaces)
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.workspaceService.DeleteWorkspace(c.Request.Context(), userID, workspaceID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}
