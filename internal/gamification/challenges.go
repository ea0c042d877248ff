package gamification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

// ChallengeTracker advances every challenge of a user that tracks a given
// event type. It runs inside the engine's transaction so progress, rewards
// and the profile commit atomically with the triggering fact.
type ChallengeTracker struct {
	log        *logger.Logger
	challenges repos.ChallengeRepo
	progress   repos.ChallengeProgressRepo
	history    repos.HistoryRepo
	applicator *RewardApplicator
}

func NewChallengeTracker(
	baseLog *logger.Logger,
	challenges repos.ChallengeRepo,
	progress repos.ChallengeProgressRepo,
	history repos.HistoryRepo,
	applicator *RewardApplicator,
) *ChallengeTracker {
	return &ChallengeTracker{
		log:        baseLog.With("service", "ChallengeTracker"),
		challenges: challenges,
		progress:   progress,
		history:    history,
		applicator: applicator,
	}
}

// Advance accumulates eventValue onto all matching challenges. counterKey
// selects the bucket for compound progress; scalar progress ignores it.
// Streak-style event types carry an absolute value and overwrite instead of
// accumulating, so replays can never inflate them.
func (t *ChallengeTracker) Advance(
	ctx context.Context,
	tx *gorm.DB,
	profile *types.GamificationProfile,
	eventType types.ChallengeEventType,
	eventValue int64,
	counterKey string,
	now time.Time,
) error {
	if eventValue <= 0 {
		return nil
	}
	defs, err := t.challenges.MatchForUser(ctx, tx, profile.UserID.String(), eventType)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := t.advanceOne(ctx, tx, profile, def, eventType, eventValue, counterKey, now); err != nil {
			return err
		}
	}
	return nil
}

func (t *ChallengeTracker) advanceOne(
	ctx context.Context,
	tx *gorm.DB,
	profile *types.GamificationProfile,
	def *types.ChallengeDefinition,
	eventType types.ChallengeEventType,
	eventValue int64,
	counterKey string,
	now time.Time,
) error {
	row, err := t.progress.Get(ctx, tx, profile.UserID, def.ID)
	if err != nil {
		return err
	}
	if row == nil {
		row = &types.ChallengeProgress{
			UserID:                profile.UserID,
			ChallengeDefinitionID: def.ID,
			Progress:              datatypes.NewJSONType(types.ScalarProgress(0)),
			CreatedAt:             now,
		}
	}

	// Only ONCE challenges freeze at completion. Recurring ones keep
	// counting until the period rollover clears them; the IsCompleted check
	// on the transition below keeps the reward first-time-only.
	if row.IsCompleted && def.Period == types.ChallengePeriodOnce {
		return nil
	}

	current := row.Progress.Data()
	var next types.Progress
	if isAbsoluteEventType(eventType) {
		next = current
		if eventValue > current.Total() {
			next = types.ScalarProgress(eventValue)
		}
	} else {
		next = current.Add(counterKey, eventValue)
	}
	row.Progress = datatypes.NewJSONType(next)
	row.LastUpdated = now

	if !row.IsCompleted && next.IsMet(def.TargetValue) {
		row.IsCompleted = true
		completedAt := now
		row.CompletedAt = &completedAt

		xp, coins, err := t.applicator.Apply(ctx, tx, profile, def, now)
		if err != nil {
			return err
		}
		if err := t.appendCompletion(ctx, tx, profile.UserID, def, xp, coins, now); err != nil {
			return err
		}
		t.log.Info("challenge completed",
			"user_id", profile.UserID,
			"challenge_id", def.ID,
			"challenge", def.Name)
	}

	return t.progress.Upsert(ctx, tx, row)
}

func (t *ChallengeTracker) appendCompletion(ctx context.Context, tx *gorm.DB, userID uuid.UUID, def *types.ChallengeDefinition, xp, coins int64, now time.Time) error {
	eventType := types.HistoryChallengeCompleted
	if def.CreatorUID != types.SystemCreatorUID {
		eventType = types.HistoryCustomChallengeCompleted
	}
	description := def.Name
	if def.Reward.Kind == types.RewardText && def.Reward.Text != "" {
		description = def.Reward.Text
	}
	challengeID := def.ID
	return t.history.Append(ctx, tx, &types.GamificationHistoryEntry{
		UserID:            userID,
		Timestamp:         now,
		EventType:         eventType,
		XPChange:          xp,
		CoinsChange:       coins,
		RelatedEntityID:   &challengeID,
		RelatedEntityType: types.RelatedEntityChallenge,
		Description:       description,
	})
}

// isAbsoluteEventType marks event types whose value is a level, not an
// increment.
func isAbsoluteEventType(eventType types.ChallengeEventType) bool {
	switch eventType {
	case types.EventLoginStreak, types.EventLevelReached, types.EventPlantMaxStage,
		types.EventResourceAccumulated, types.EventBadgeCount:
		return true
	}
	return false
}
