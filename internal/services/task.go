package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/bus"
	"github.com/focusgrove/focusgrove-backend/internal/events"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type CreateTaskInput struct {
	WorkspaceID uuid.UUID  `json:"workspace_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*types.Task, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*types.Task, error)
	ListTasks(ctx context.Context, userID, workspaceID uuid.UUID) ([]*types.Task, error)
	UpdateTaskStatus(ctx context.Context, userID, taskID uuid.UUID, status types.TaskStatus) (*types.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

type taskService struct {
	db            *gorm.DB
	log           *logger.Logger
	taskRepo      repos.TaskRepo
	workspaceRepo repos.WorkspaceRepo
	factBus       bus.Bus
}

func NewTaskService(db *gorm.DB, baseLog *logger.Logger, taskRepo repos.TaskRepo, workspaceRepo repos.WorkspaceRepo, factBus bus.Bus) TaskService {
	return &taskService{
		db:            db,
		log:           baseLog.With("service", "TaskService"),
		taskRepo:      taskRepo,
		workspaceRepo: workspaceRepo,
		factBus:       factBus,
	}
}

func (ts *taskService) CreateTask(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*types.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apierr.InvalidArgument(fmt.Errorf("task title is required"))
	}
	if _, err := ts.ownedWorkspace(ctx, userID, input.WorkspaceID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return ts.taskRepo.Create(ctx, nil, &types.Task{
		ID:          uuid.New(),
		WorkspaceID: input.WorkspaceID,
		CreatorUID:  userID,
		Title:       title,
		Description: input.Description,
		Status:      types.TaskStatusTodo,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (ts *taskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*types.Task, error) {
	task, err := ts.taskRepo.GetByID(ctx, nil, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apierr.NotFound(fmt.Errorf("task %s not found", taskID))
	}
	if _, err := ts.ownedWorkspace(ctx, userID, task.WorkspaceID); err != nil {
		return nil, err
	}
	return task, nil
}

func (ts *taskService) ListTasks(ctx context.Context, userID, workspaceID uuid.UUID) ([]*types.Task, error) {
	if _, err := ts.ownedWorkspace(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	return ts.taskRepo.ListByWorkspace(ctx, nil, workspaceID)
}

// UpdateTaskStatus persists the transition and publishes the status fact.
// Reward semantics live entirely behind the bus: this service does not know
// whether the transition earns anything.
func (ts *taskService) UpdateTaskStatus(ctx context.Context, userID, taskID uuid.UUID, status types.TaskStatus) (*types.Task, error) {
	if !status.Valid() {
		return nil, apierr.InvalidArgument(fmt.Errorf("invalid task status %q", status))
	}
	task, err := ts.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	oldStatus := task.Status
	if oldStatus == status {
		return task, nil
	}

	now := time.Now().UTC()
	task.Status = status
	task.UpdatedAt = now
	if status == types.TaskStatusDone {
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	if err := ts.taskRepo.Save(ctx, nil, task); err != nil {
		return nil, err
	}

	env, err := events.NewEnvelope(events.TypeTaskStatusUpdated, events.TaskStatusUpdatedData{
		TaskID:      task.ID,
		WorkspaceID: task.WorkspaceID,
		UserID:      userID,
		NewStatus:   status,
		OldStatus:   oldStatus,
		CompletedAt: task.CompletedAt,
		TaskTitle:   task.Title,
	}, now)
	if err == nil {
		err = ts.factBus.Publish(ctx, events.TopicTaskEvents, env)
	}
	if err != nil {
		ts.log.Error("failed to publish task status fact", "task_id", task.ID, "error", err)
	}
	return task, nil
}

func (ts *taskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := ts.GetTask(ctx, userID, taskID); err != nil {
		return err
	}
	return ts.taskRepo.Delete(ctx, nil, taskID)
}

func (ts *taskService) ownedWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (*types.Workspace, error) {
	workspace, err := ts.workspaceRepo.GetByID(ctx, nil, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, apierr.NotFound(fmt.Errorf("workspace %s not found", workspaceID))
	}
	if workspace.OwnerUID != userID {
		return nil, apierr.PermissionDenied(fmt.Errorf("workspace belongs to another user"))
	}
	return workspace, nil
}
