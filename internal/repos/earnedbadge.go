package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type EarnedBadgeRepo interface {
	// Grant writes the earned-badge row keyed by (user, badge). Re-granting
	// is a no-op on conflict: the first earnedAt wins.
	Grant(ctx context.Context, tx *gorm.DB, badge *types.EarnedBadge) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.EarnedBadge, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type earnedBadgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEarnedBadgeRepo(db *gorm.DB, baseLog *logger.Logger) EarnedBadgeRepo {
	return &earnedBadgeRepo{db: db, log: baseLog.With("repo", "EarnedBadgeRepo")}
}

func (r *earnedBadgeRepo) Grant(ctx context.Context, tx *gorm.DB, badge *types.EarnedBadge) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(badge).Error
}

func (r *earnedBadgeRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.EarnedBadge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.EarnedBadge
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *earnedBadgeRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.EarnedBadge{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
