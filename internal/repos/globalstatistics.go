package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type GlobalStatisticsRepo interface {
	Create(ctx context.Context, tx *gorm.DB, stats *types.GlobalStatistics) (*types.GlobalStatistics, error)
	Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.GlobalStatistics, error)
	Save(ctx context.Context, tx *gorm.DB, stats *types.GlobalStatistics) error
}

type globalStatisticsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGlobalStatisticsRepo(db *gorm.DB, baseLog *logger.Logger) GlobalStatisticsRepo {
	return &globalStatisticsRepo{db: db, log: baseLog.With("repo", "GlobalStatisticsRepo")}
}

func (r *globalStatisticsRepo) Create(ctx context.Context, tx *gorm.DB, stats *types.GlobalStatistics) (*types.GlobalStatistics, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *globalStatisticsRepo) Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.GlobalStatistics, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.GlobalStatistics
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *globalStatisticsRepo) Save(ctx context.Context, tx *gorm.DB, stats *types.GlobalStatistics) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(stats).Error
}
