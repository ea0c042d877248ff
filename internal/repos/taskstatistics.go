package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type TaskStatisticsRepo interface {
	Get(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.TaskStatistics, error)
	Save(ctx context.Context, tx *gorm.DB, stats *types.TaskStatistics) error
}

type taskStatisticsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskStatisticsRepo(db *gorm.DB, baseLog *logger.Logger) TaskStatisticsRepo {
	return &taskStatisticsRepo{db: db, log: baseLog.With("repo", "TaskStatisticsRepo")}
}

func (r *taskStatisticsRepo) Get(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.TaskStatistics, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.TaskStatistics
	if err := transaction.WithContext(ctx).
		Where("task_id = ?", taskID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *taskStatisticsRepo) Save(ctx context.Context, tx *gorm.DB, stats *types.TaskStatistics) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(stats).Error
}
