package gamification

import (
	"context"
	"fmt"

	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

// DailyClaimResult reports what a successful claim granted.
type DailyClaimResult struct {
	Streak       int64                      `json:"streak"`
	CoinsGranted int64                      `json:"coins_granted"`
	XPGranted    int64                      `json:"xp_granted"`
	Profile      *types.GamificationProfile `json:"profile"`
}

// ClaimDaily grants the once-per-day login bonus. Claiming twice in the same
// UTC day fails the precondition, as does a last-claimed date in the future
// (clock skew must never mint extra claims); a claim on the day after the
// previous one extends the streak, any longer gap resets it to one.
func (e *Engine) ClaimDaily(ctx context.Context, userID uuid.UUID, now time.Time) (*DailyClaimResult, error) {
	now = now.UTC()
	var result *DailyClaimResult
	err := e.runTx(ctx, func(tx *gorm.DB) error {
		profile, err := e.profiles.Get(ctx, tx, userID)
		if err != nil {
			return err
		}
		if profile == nil {
			return apierr.NotFound(fmt.Errorf("gamification profile for user %s not found", userID))
		}

		switch delta := dayDelta(profile.LastClaimedDate, now); {
		case delta <= 0:
			return apierr.PreconditionFailed(fmt.Errorf("daily reward already claimed today"))
		case delta == 1:
			profile.CurrentStreak++
		default:
			profile.CurrentStreak = 1
		}
		if profile.CurrentStreak > profile.MaxStreak {
			profile.MaxStreak = profile.CurrentStreak
		}
		profile.LastClaimedDate = now

		coins := e.rules.DailyCoins(profile.CurrentStreak)
		profile.Coins += coins

		if err := e.history.Append(ctx, tx, &types.GamificationHistoryEntry{
			UserID:      userID,
			Timestamp:   now,
			EventType:   types.HistoryDailyRewardClaimed,
			CoinsChange: coins,
			Description: fmt.Sprintf("Daily reward, streak day %d", profile.CurrentStreak),
		}); err != nil {
			return err
		}

		if err := e.tracker.Advance(ctx, tx, profile, types.EventLoginStreak, profile.CurrentStreak, "", now); err != nil {
			return err
		}
		if err := e.applyLevelUps(ctx, tx, profile, now); err != nil {
			return err
		}
		profile.UpdatedAt = now
		if err := e.profiles.Save(ctx, tx, profile); err != nil {
			return err
		}
		result = &DailyClaimResult{
			Streak:       profile.CurrentStreak,
			CoinsGranted: coins,
			Profile:      profile,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// dayDelta counts UTC calendar days between last and now. A zero last time
// means "never claimed" and reads as a large gap.
func dayDelta(last, now time.Time) int {
	if last.IsZero() {
		return 1 << 20
	}
	lastDay := last.UTC().Truncate(24 * time.Hour)
	nowDay := now.UTC().Truncate(24 * time.Hour)
	return int(nowDay.Sub(lastDay) / (24 * time.Hour))
}
