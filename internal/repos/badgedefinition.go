package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type BadgeDefinitionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, def *types.BadgeDefinition) (*types.BadgeDefinition, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.BadgeDefinition, error)
}

type badgeDefinitionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBadgeDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) BadgeDefinitionRepo {
	return &badgeDefinitionRepo{db: db, log: baseLog.With("repo", "BadgeDefinitionRepo")}
}

func (r *badgeDefinitionRepo) Create(ctx context.Context, tx *gorm.DB, def *types.BadgeDefinition) (*types.BadgeDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(def).Error; err != nil {
		return nil, err
	}
	return def, nil
}

func (r *badgeDefinitionRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.BadgeDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.BadgeDefinition
	if err := transaction.WithContext(ctx).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
