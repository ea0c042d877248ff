package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/requestdata"
	"github.com/focusgrove/focusgrove-backend/internal/services"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type TaskHandler struct {
	log         *logger.Logger
	taskService services.TaskService
}

func NewTaskHandler(baseLog *logger.Logger, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		log:         baseLog.With("handler", "TaskHandler"),
		taskService: taskService,
	}
}

// currentUserID pulls the authenticated user out of the request context.
// RequireAuth guarantees it is set on protected routes.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input services.CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid request body"))
		return
	}
	task, err := h.taskService.CreateTask(c.Request.Context(), userID, input)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, task)
}

func (h *TaskHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	task, err := h.taskService.GetTask(c.Request.Context(), userID, taskID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workspaceID, err := uuid.Parse(c.Query("workspace_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid workspace_id"))
		return
	}
	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID, workspaceID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, tasks)
}

func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status types.TaskStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid request body"))
		return
	}
	task, err := h.taskService.UpdateTaskStatus(c.Request.Context(), userID, taskID, req.Status)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.taskService.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}
