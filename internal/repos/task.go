package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type TaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, task *types.Task) (*types.Task, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Task, error)
	ListByWorkspace(ctx context.Context, tx *gorm.DB, workspaceID uuid.UUID) ([]*types.Task, error)
	Save(ctx context.Context, tx *gorm.DB, task *types.Task) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (r *taskRepo) Create(ctx context.Context, tx *gorm.DB, task *types.Task) (*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Task
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *taskRepo) ListByWorkspace(ctx context.Context, tx *gorm.DB, workspaceID uuid.UUID) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Task
	if err := transaction.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taskRepo) Save(ctx context.Context, tx *gorm.DB, task *types.Task) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(task).Error
}

func (r *taskRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Task{}).Error
}
