package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type WorkspaceService interface {
	CreateWorkspace(ctx context.Context, ownerUID uuid.UUID, name string) (*types.Workspace, error)
	GetWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (*types.Workspace, error)
	ListWorkspaces(ctx context.Context, ownerUID uuid.UUID) ([]*types.Workspace, error)
	DeleteWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) error
}

type workspaceService struct {
	db            *gorm.DB
	log           *logger.Logger
	workspaceRepo repos.WorkspaceRepo
	taskRepo      repos.TaskRepo
}

func NewWorkspaceService(db *gorm.DB, baseLog *logger.Logger, workspaceRepo repos.WorkspaceRepo, taskRepo repos.TaskRepo) WorkspaceService {
	return &workspaceService{
		db:            db,
		log:           baseLog.With("service", "WorkspaceService"),
		workspaceRepo: workspaceRepo,
		taskRepo:      taskRepo,
	}
}

func (ws *workspaceService) CreateWorkspace(ctx context.Context, ownerUID uuid.UUID, name string) (*types.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.InvalidArgument(fmt.Errorf("workspace name is required"))
	}
	now := time.Now().UTC()
	return ws.workspaceRepo.Create(ctx, nil, &types.Workspace{
		ID:        uuid.New(),
		Name:      name,
		OwnerUID:  ownerUID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (ws *workspaceService) GetWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (*types.Workspace, error) {
	workspace, err := ws.workspaceRepo.GetByID(ctx, nil, workspaceID)
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

func (ws *workspaceService) ListWorkspaces(ctx context.Context, ownerUID uuid.UUID) ([]*types.Workspace, error) {
	return ws.workspaceRepo.ListByOwner(ctx, nil, ownerUID)
}

// DeleteWorkspace removes the workspace and its tasks. The personal
// workspace created at registration cannot be deleted.
func (ws *workspaceService) DeleteWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) error {
	workspace, err := ws.GetWorkspace(ctx, userID, workspaceID)
	if err != nil {
		return err
	}
	if workspace.IsPersonal {
		return apierr.PreconditionFailed(fmt.Errorf("personal workspace cannot be deleted"))
	}
	return ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks, err := ws.taskRepo.ListByWorkspace(ctx, tx, workspaceID)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			if err := ws.taskRepo.Delete(ctx, tx, task.ID); err != nil {
				return err
			}
		}
		return ws.workspaceRepo.Delete(ctx, tx, workspaceID)
	})
}
