package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type PomodoroRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *types.PomodoroSession) (*types.PomodoroSession, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PomodoroSession, error)
	Save(ctx context.Context, tx *gorm.DB, session *types.PomodoroSession) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.PomodoroSession, error)
}

type pomodoroRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPomodoroRepo(db *gorm.DB, baseLog *logger.Logger) PomodoroRepo {
	return &pomodoroRepo{db: db, log: baseLog.With("repo", "PomodoroRepo")}
}

func (r *pomodoroRepo) Create(ctx context.Context, tx *gorm.DB, session *types.PomodoroSession) (*types.PomodoroSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (r *pomodoroRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PomodoroSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.PomodoroSession
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

func (r *pomodoroRepo) Save(ctx context.Context, tx *gorm.DB, session *types.PomodoroSession) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(session).Error
}

func (r *pomodoroRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.PomodoroSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var results []*types.PomodoroSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
