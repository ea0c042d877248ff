package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/gamification"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type CreateChallengeInput struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Period      types.ChallengePeriod    `json:"period"`
	Type        types.ChallengeEventType `json:"type"`
	TargetValue int64                    `json:"target_value"`
	Reward      types.Reward             `json:"reward"`
}

// ChallengeWithProgress pairs a definition with the caller's progress row,
// which may be nil when no matching fact has arrived yet.
type ChallengeWithProgress struct {
	Definition *types.ChallengeDefinition `json:"definition"`
	Progress   *types.ChallengeProgress   `json:"progress,omitempty"`
}

type GamificationService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.GamificationProfile, error)
	ClaimDailyReward(ctx context.Context, userID uuid.UUID) (*gamification.DailyClaimResult, error)
	CreateChallenge(ctx context.Context, userID uuid.UUID, input CreateChallengeInput) (*types.ChallengeDefinition, error)
	ListChallenges(ctx context.Context, userID uuid.UUID) ([]*ChallengeWithProgress, error)
	DeleteChallenge(ctx context.Context, userID, challengeID uuid.UUID) error
	ListBadges(ctx context.Context, userID uuid.UUID) ([]*types.EarnedBadge, error)
	ListBadgeDefinitions(ctx context.Context) ([]*types.BadgeDefinition, error)
	ListHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*types.GamificationHistoryEntry, error)
}

type gamificationService struct {
	db            *gorm.DB
	log           *logger.Logger
	engine        *gamification.Engine
	profileRepo   repos.ProfileRepo
	challengeRepo repos.ChallengeRepo
	progressRepo  repos.ChallengeProgressRepo
	badgeRepo     repos.EarnedBadgeRepo
	badgeDefRepo  repos.BadgeDefinitionRepo
	historyRepo   repos.HistoryRepo
}

func NewGamificationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	engine *gamification.Engine,
	profileRepo repos.ProfileRepo,
	challengeRepo repos.ChallengeRepo,
	progressRepo repos.ChallengeProgressRepo,
	badgeRepo repos.EarnedBadgeRepo,
	badgeDefRepo repos.BadgeDefinitionRepo,
	historyRepo repos.HistoryRepo,
) GamificationService {
	return &gamificationService{
		db:            db,
		log:           baseLog.With("service", "GamificationService"),
		engine:        engine,
		profileRepo:   profileRepo,
		challengeRepo: challengeRepo,
		progressRepo:  progressRepo,
		badgeRepo:     badgeRepo,
		badgeDefRepo:  badgeDefRepo,
		historyRepo:   historyRepo,
	}
}

func (gs *gamificationService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.GamificationProfile, error) {
	profile, err := gs.profileRepo.Get(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apierr.NotFound(fmt.Errorf("gamification profile for user %s not found", userID))
	}
	return profile, nil
}

func (gs *gamificationService) ClaimDailyReward(ctx context.Context, userID uuid.UUID) (*gamification.DailyClaimResult, error) {
	return gs.engine.ClaimDaily(ctx, userID, time.Now().UTC())
}

func (gs *gamificationService) CreateChallenge(ctx context.Context, userID uuid.UUID, input CreateChallengeInput) (*types.ChallengeDefinition, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apierr.InvalidArgument(fmt.Errorf("challenge name is required"))
	}
	if !input.Period.Valid() {
		return nil, apierr.InvalidArgument(fmt.Errorf("invalid period %q", input.Period))
	}
	if !input.Type.Valid() {
		return nil, apierr.InvalidArgument(fmt.Errorf("invalid challenge type %q", input.Type))
	}
	if input.TargetValue <= 0 {
		return nil, apierr.InvalidArgument(fmt.Errorf("target value must be positive"))
	}
	if err := input.Reward.Validate(); err != nil {
		return nil, apierr.InvalidArgument(err)
	}
	// User-authored challenges cannot mint badges.
	if input.Reward.Kind == types.RewardBadge {
		return nil, apierr.InvalidArgument(fmt.Errorf("badge rewards are reserved for system challenges"))
	}

	now := time.Now().UTC()
	return gs.challengeRepo.Create(ctx, nil, &types.ChallengeDefinition{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
		CreatorUID:  userID.String(),
		Scope:       types.ChallengeScopePersonal,
		Reward:      input.Reward,
		Period:      input.Period,
		Type:        input.Type,
		TargetValue: input.TargetValue,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (gs *gamificationService) ListChallenges(ctx context.Context, userID uuid.UUID) ([]*ChallengeWithProgress, error) {
	defs, err := gs.challengeRepo.ListVisibleToUser(ctx, nil, userID.String())
	if err != nil {
		return nil, err
	}
	out := make([]*ChallengeWithProgress, 0, len(defs))
	for _, def := range defs {
		progress, err := gs.progressRepo.Get(ctx, nil, userID, def.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &ChallengeWithProgress{Definition: def, Progress: progress})
	}
	return out, nil
}

// DeleteChallenge removes a user-authored challenge and the caller's
// progress for it. System challenges are never deletable through here.
func (gs *gamificationService) DeleteChallenge(ctx context.Context, userID, challengeID uuid.UUID) error {
	def, err := gs.challengeRepo.GetByID(ctx, nil, challengeID)
	if err != nil {
		return err
	}
	if def == nil {
		return apierr.NotFound(fmt.Errorf("challenge %s not found", challengeID))
	}
	if def.CreatorUID == types.SystemCreatorUID {
		return apierr.PermissionDenied(fmt.Errorf("system challenges cannot be deleted"))
	}
	if def.CreatorUID != userID.String() {
		return apierr.PermissionDenied(fmt.Errorf("challenge belongs to another user"))
	}
	return gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := gs.progressRepo.DeleteByUserAndChallenge(ctx, tx, userID, challengeID); err != nil {
			return err
		}
		return gs.challengeRepo.Delete(ctx, tx, challengeID)
	})
}

func (gs *gamificationService) ListBadges(ctx context.Context, userID uuid.UUID) ([]*types.EarnedBadge, error) {
	return gs.badgeRepo.ListByUser(ctx, nil, userID)
}

func (gs *gamificationService) ListBadgeDefinitions(ctx context.Context) ([]*types.BadgeDefinition, error) {
	return gs.badgeDefRepo.ListAll(ctx, nil)
}

func (gs *gamificationService) ListHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*types.GamificationHistoryEntry, error) {
	return gs.historyRepo.ListByUser(ctx, nil, userID, limit)
}
