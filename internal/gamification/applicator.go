package gamification

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

// RewardApplicator turns a challenge's reward into profile mutations and
// side rows, inside the caller's transaction. It returns the XP and coin
// deltas so the caller can fold them into the audit entry.
type RewardApplicator struct {
	log     *logger.Logger
	badges  repos.EarnedBadgeRepo
	history repos.HistoryRepo
}

func NewRewardApplicator(baseLog *logger.Logger, badges repos.EarnedBadgeRepo, history repos.HistoryRepo) *RewardApplicator {
	return &RewardApplicator{
		log:     baseLog.With("service", "RewardApplicator"),
		badges:  badges,
		history: history,
	}
}

func (a *RewardApplicator) Apply(ctx context.Context, tx *gorm.DB, profile *types.GamificationProfile, def *types.ChallengeDefinition, now time.Time) (xp, coins int64, err error) {
	reward := def.Reward
	switch reward.Kind {
	case types.RewardXP:
		profile.Experience += reward.Amount
		return reward.Amount, 0, nil

	case types.RewardCoins:
		profile.Coins += reward.Amount
		return 0, reward.Amount, nil

	case types.RewardBadge:
		if reward.BadgeID == nil || reward.BadgeName == "" {
			// The denormalized badge fields were dropped somewhere upstream.
			// Completing the challenge still counts; only the badge is lost.
			a.log.Warn("badge reward missing denormalized fields, skipping grant",
				"challenge_id", def.ID,
				"user_id", profile.UserID)
			return 0, 0, nil
		}
		grant := &types.EarnedBadge{
			UserID:            profile.UserID,
			BadgeDefinitionID: *reward.BadgeID,
			EarnedAt:          now,
			Name:              reward.BadgeName,
			ImageURL:          reward.BadgeImageURL,
			Criteria:          def.Description,
		}
		if err := a.badges.Grant(ctx, tx, grant); err != nil {
			return 0, 0, err
		}
		badgeID := *reward.BadgeID
		entry := &types.GamificationHistoryEntry{
			UserID:            profile.UserID,
			Timestamp:         now,
			EventType:         types.HistoryBadgeEarned,
			RelatedEntityID:   &badgeID,
			RelatedEntityType: types.RelatedEntityBadge,
			Description:       reward.BadgeName,
		}
		return 0, 0, a.history.Append(ctx, tx, entry)

	case types.RewardText:
		// Purely cosmetic; the completion history entry carries the text.
		return 0, 0, nil

	default:
		a.log.Warn("unknown reward kind, ignoring",
			"kind", reward.Kind,
			"challenge_id", def.ID)
		return 0, 0, nil
	}
}
