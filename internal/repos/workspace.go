package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type WorkspaceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, workspace *types.Workspace) (*types.Workspace, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Workspace, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerUID uuid.UUID) ([]*types.Workspace, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type workspaceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkspaceRepo(db *gorm.DB, baseLog *logger.Logger) WorkspaceRepo {
	return &workspaceRepo{db: db, log: baseLog.With("repo", "WorkspaceRepo")}
}

func (r *workspaceRepo) Create(ctx context.Context, tx *gorm.DB, workspace *types.Workspace) (*types.Workspace, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(workspace).Error; err != nil {
		return nil, err
	}
	return workspace, nil
}

func (r *workspaceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Workspace, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Workspace
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

func (r *workspaceRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerUID uuid.UUID) ([]*types.Workspace, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Workspace
	if err := transaction.WithContext(ctx).
		Where("owner_uid = ?", ownerUID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *workspaceRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Workspace{}).Error
}
