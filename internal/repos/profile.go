package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *types.GamificationProfile) (*types.GamificationProfile, error)
	Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.GamificationProfile, error)
	Save(ctx context.Context, tx *gorm.DB, profile *types.GamificationProfile) error
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (r *profileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.GamificationProfile) (*types.GamificationProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepo) Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.GamificationProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.GamificationProfile
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

func (r *profileRepo) Save(ctx context.Context, tx *gorm.DB, profile *types.GamificationProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(profile).Error
}

func (r *profileRepo) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.GamificationProfile{}).Error
}
