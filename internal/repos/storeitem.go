package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type StoreItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.StoreItem) (*types.StoreItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.StoreItem, error)
	ListAvailable(ctx context.Context, tx *gorm.DB) ([]*types.StoreItem, error)
}

type storeItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoreItemRepo(db *gorm.DB, baseLog *logger.Logger) StoreItemRepo {
	return &storeItemRepo{db: db, log: baseLog.With("repo", "StoreItemRepo")}
}

func (r *storeItemRepo) Create(ctx context.Context, tx *gorm.DB, item *types.StoreItem) (*types.StoreItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *storeItemRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.StoreItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.StoreItem
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

func (r *storeItemRepo) ListAvailable(ctx context.Context, tx *gorm.DB) ([]*types.StoreItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.StoreItem
	if err := transaction.WithContext(ctx).
		Where("is_available = ?", true).
		Order("category").
		Order("cost_in_coins").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
