package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type ChallengeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, def *types.ChallengeDefinition) (*types.ChallengeDefinition, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ChallengeDefinition, error)
	// MatchForUser returns the union of the user's personal challenges and
	// globally active system challenges tracking the given event type.
	MatchForUser(ctx context.Context, tx *gorm.DB, creatorUID string, eventType types.ChallengeEventType) ([]*types.ChallengeDefinition, error)
	ListVisibleToUser(ctx context.Context, tx *gorm.DB, creatorUID string) ([]*types.ChallengeDefinition, error)
	ListRecurring(ctx context.Context, tx *gorm.DB) ([]*types.ChallengeDefinition, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type challengeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeRepo {
	return &challengeRepo{db: db, log: baseLog.With("repo", "ChallengeRepo")}
}

func (r *challengeRepo) Create(ctx context.Context, tx *gorm.DB, def *types.ChallengeDefinition) (*types.ChallengeDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(def).Error; err != nil {
		return nil, err
	}
	return def, nil
}

func (r *challengeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ChallengeDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.ChallengeDefinition
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

func (r *challengeRepo) MatchForUser(ctx context.Context, tx *gorm.DB, creatorUID string, eventType types.ChallengeEventType) ([]*types.ChallengeDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ChallengeDefinition
	if err := transaction.WithContext(ctx).
		Where("type = ? AND (creator_uid = ? OR is_active_system_challenge = ?)", eventType, creatorUID, true).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *challengeRepo) ListVisibleToUser(ctx context.Context, tx *gorm.DB, creatorUID string) ([]*types.ChallengeDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ChallengeDefinition
	if err := transaction.WithContext(ctx).
		Where("creator_uid = ? OR is_active_system_challenge = ?", creatorUID, true).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *challengeRepo) ListRecurring(ctx context.Context, tx *gorm.DB) ([]*types.ChallengeDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ChallengeDefinition
	if err := transaction.WithContext(ctx).
		Where("period IN ?", []types.ChallengePeriod{
			types.ChallengePeriodDaily,
			types.ChallengePeriodWeekly,
			types.ChallengePeriodMonthly,
		}).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *challengeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.ChallengeDefinition{}).Error
}
