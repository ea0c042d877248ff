package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type PlantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, plant *types.VirtualPlant) (*types.VirtualPlant, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.VirtualPlant, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.VirtualPlant, error)
	Save(ctx context.Context, tx *gorm.DB, plant *types.VirtualPlant) error
}

type plantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlantRepo(db *gorm.DB, baseLog *logger.Logger) PlantRepo {
	return &plantRepo{db: db, log: baseLog.With("repo", "PlantRepo")}
}

func (r *plantRepo) Create(ctx context.Context, tx *gorm.DB, plant *types.VirtualPlant) (*types.VirtualPlant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(plant).Error; err != nil {
		return nil, err
	}
	return plant, nil
}

func (r *plantRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.VirtualPlant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.VirtualPlant
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

func (r *plantRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.VirtualPlant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VirtualPlant
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *plantRepo) Save(ctx context.Context, tx *gorm.DB, plant *types.VirtualPlant) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(plant).Error
}
