package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type ChallengeProgressRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (*types.ChallengeProgress, error)
	// Upsert merges the progress row on the (user, challenge) key, never
	// replacing columns the caller did not set.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.ChallengeProgress) error
	DeleteByUserAndChallenge(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) error
	// ResetForChallenge clears progress rows of a recurring challenge that
	// were last touched before the current period started. The filter makes
	// the reset idempotent: rows already reset (or advanced) after the
	// boundary are left alone.
	ResetForChallenge(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID, periodStart time.Time) error
}

type challengeProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeProgressRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeProgressRepo {
	return &challengeProgressRepo{db: db, log: baseLog.With("repo", "ChallengeProgressRepo")}
}

func (r *challengeProgressRepo) Get(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (*types.ChallengeProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.ChallengeProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND challenge_definition_id = ?", userID, challengeID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *challengeProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.ChallengeProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "challenge_definition_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"progress", "is_completed", "completed_at", "last_updated",
			}),
		}).
		Create(row).Error
}

func (r *challengeProgressRepo) DeleteByUserAndChallenge(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ? AND challenge_definition_id = ?", userID, challengeID).
		Delete(&types.ChallengeProgress{}).Error
}

func (r *challengeProgressRepo) ResetForChallenge(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID, periodStart time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	zero := types.ScalarProgress(0)
	return transaction.WithContext(ctx).
		Model(&types.ChallengeProgress{}).
		Where("challenge_definition_id = ? AND last_updated < ?", challengeID, periodStart).
		Updates(map[string]interface{}{
			"progress":     datatypes.NewJSONType(zero),
			"is_completed": false,
			"completed_at": nil,
			"last_updated": periodStart,
		}).Error
}
