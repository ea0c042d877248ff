package gamification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/db"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

// Rollover clears progress of recurring challenges when their period turns
// over. The reset filters on last_updated, so running it twice (or from two
// replicas) after the same boundary is harmless.
type Rollover struct {
	log        *logger.Logger
	challenges repos.ChallengeRepo
	progress   repos.ChallengeProgressRepo
	interval   time.Duration

	lastReset map[uuid.UUID]time.Time

	runTx func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func NewRollover(baseLog *logger.Logger, gdb *gorm.DB, challenges repos.ChallengeRepo, progress repos.ChallengeProgressRepo, interval time.Duration) *Rollover {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Rollover{
		log:        baseLog.With("service", "ChallengeRollover"),
		challenges: challenges,
		progress:   progress,
		interval:   interval,
		lastReset:  make(map[uuid.UUID]time.Time),
		runTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return db.RunSerializable(ctx, gdb, fn)
		},
	}
}

// Run ticks until ctx is cancelled. It is meant to be started once at boot.
func (r *Rollover) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	r.log.Info("challenge rollover started", "interval", r.interval.String())
	for {
		select {
		case <-ctx.Done():
			r.log.Info("challenge rollover stopped")
			return
		case now := <-ticker.C:
			if err := r.ResetDue(ctx, now.UTC()); err != nil {
				r.log.Error("challenge rollover pass failed", "error", err)
			}
		}
	}
}

// ResetDue resets every recurring challenge whose period boundary has passed
// since the previous reset.
func (r *Rollover) ResetDue(ctx context.Context, now time.Time) error {
	defs, err := r.challenges.ListRecurring(ctx, nil)
	if err != nil {
		return err
	}
	for _, def := range defs {
		start := PeriodStart(def.Period, now)
		if !r.lastReset[def.ID].Before(start) {
			continue
		}
		defID := def.ID
		err := r.runTx(ctx, func(tx *gorm.DB) error {
			return r.progress.ResetForChallenge(ctx, tx, defID, start)
		})
		if err != nil {
			return err
		}
		r.lastReset[def.ID] = start
		r.log.Info("challenge progress reset",
			"challenge_id", def.ID,
			"period", def.Period,
			"period_start", start)
	}
	return nil
}

// PeriodStart is the UTC opening instant of the period containing now.
// Weeks start on Monday, months on the first.
func PeriodStart(period types.ChallengePeriod, now time.Time) time.Time {
	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch period {
	case types.ChallengePeriodWeekly:
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return day.AddDate(0, 0, -(weekday - 1))
	case types.ChallengePeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}
