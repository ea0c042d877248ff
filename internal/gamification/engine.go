package gamification

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/db"
	"github.com/focusgrove/focusgrove-backend/internal/events"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

// Engine applies reward semantics for incoming facts. Every handler runs as
// one serializable transaction: guards, counters, history and challenge
// progress commit together or not at all, which is what makes at-least-once
// fact delivery safe.
type Engine struct {
	log         *logger.Logger
	rules       Rules
	profiles    repos.ProfileRepo
	taskStats   repos.TaskStatisticsRepo
	globalStats repos.GlobalStatisticsRepo
	history     repos.HistoryRepo
	tracker     *ChallengeTracker

	// runTx wraps the serializable-with-retry transaction runner; tests
	// replace it to execute handlers against fakes without a database.
	runTx func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func NewEngine(
	baseLog *logger.Logger,
	gdb *gorm.DB,
	rules Rules,
	profiles repos.ProfileRepo,
	taskStats repos.TaskStatisticsRepo,
	globalStats repos.GlobalStatisticsRepo,
	history repos.HistoryRepo,
	tracker *ChallengeTracker,
) *Engine {
	return &Engine{
		log:         baseLog.With("service", "RewardEngine"),
		rules:       rules,
		profiles:    profiles,
		taskStats:   taskStats,
		globalStats: globalStats,
		history:     history,
		tracker:     tracker,
		runTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return db.RunSerializable(ctx, gdb, fn)
		},
	}
}

// HandleTaskStatusUpdated rewards the first transition of a task to done.
// Later transitions only refresh the completion timestamp: the
// was-completed-once latch makes flapping and replays reward-neutral.
func (e *Engine) HandleTaskStatusUpdated(ctx context.Context, data events.TaskStatusUpdatedData) error {
	if err := data.Validate(); err != nil {
		return apierr.InvalidArgument(err)
	}
	if data.NewStatus != types.TaskStatusDone {
		return nil
	}
	now := data.CompletedAt
	if now == nil {
		t := time.Now().UTC()
		now = &t
	}

	return e.runTx(ctx, func(tx *gorm.DB) error {
		stats, err := e.taskStats.Get(ctx, tx, data.TaskID)
		if err != nil {
			return err
		}
		if stats == nil {
			stats = &types.TaskStatistics{TaskID: data.TaskID}
		}
		alreadyRewarded := stats.WasCompletedOnce
		stats.CompletionTime = now
		if !alreadyRewarded {
			stats.WasCompletedOnce = true
			stats.FirstCompletionTime = now
		}
		stats.UpdatedAt = *now
		if err := e.taskStats.Save(ctx, tx, stats); err != nil {
			return err
		}
		if alreadyRewarded {
			e.log.Debug("task already rewarded, refreshing completion time only",
				"task_id", data.TaskID,
				"user_id", data.UserID)
			return nil
		}

		profile, err := e.profiles.Get(ctx, tx, data.UserID)
		if err != nil {
			return err
		}
		if profile == nil {
			return apierr.NotFound(fmt.Errorf("gamification profile for user %s not found", data.UserID))
		}

		xp, coins := e.rules.TaskReward()
		profile.Experience += xp
		profile.Coins += coins
		profile.LastTaskCompletionTime = now

		if err := e.bumpGlobalStats(ctx, tx, profile, *now, func(g *types.GlobalStatistics) {
			g.TotalTasksCompleted++
		}); err != nil {
			return err
		}

		taskID := data.TaskID
		description := data.TaskTitle
		if description == "" {
			description = "Task completed"
		}
		if err := e.history.Append(ctx, tx, &types.GamificationHistoryEntry{
			UserID:            data.UserID,
			Timestamp:         *now,
			EventType:         types.HistoryTaskCompleted,
			XPChange:          xp,
			CoinsChange:       coins,
			RelatedEntityID:   &taskID,
			RelatedEntityType: types.RelatedEntityTask,
			Description:       description,
		}); err != nil {
			return err
		}

		if err := e.tracker.Advance(ctx, tx, profile, types.EventTaskCompletionCount, 1, dayKey(*now), *now); err != nil {
			return err
		}
		if err := e.applyLevelUps(ctx, tx, profile, *now); err != nil {
			return err
		}
		profile.UpdatedAt = *now
		return e.profiles.Save(ctx, tx, profile)
	})
}

// HandleUserCreated backfills the gamification rows a fresh account needs.
// Registration already provisions them in its own transaction, so this is a
// no-op on the common path; it covers a lost provisioning write or accounts
// predating the reward layer, and replays safely.
func (e *Engine) HandleUserCreated(ctx context.Context, data events.UserCreatedData) error {
	if err := data.Validate(); err != nil {
		return apierr.InvalidArgument(err)
	}
	now := time.Now().UTC()
	return e.runTx(ctx, func(tx *gorm.DB) error {
		profile, err := e.profiles.Get(ctx, tx, data.UserID)
		if err != nil {
			return err
		}
		if profile == nil {
			if _, err := e.profiles.Create(ctx, tx, types.NewGamificationProfile(data.UserID, now)); err != nil {
				return err
			}
			e.log.Info("provisioned missing gamification profile", "user_id", data.UserID)
		}
		global, err := e.globalStats.Get(ctx, tx, data.UserID)
		if err != nil {
			return err
		}
		if global == nil {
			if _, err := e.globalStats.Create(ctx, tx, &types.GlobalStatistics{
				UserID:     data.UserID,
				LastActive: now,
				CreatedAt:  now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// HandlePomodoroPhaseCompleted rewards completed focus phases. Break phases
// and phases under the minimum duration qualify for nothing and leave all
// state untouched.
func (e *Engine) HandlePomodoroPhaseCompleted(ctx context.Context, data events.PomodoroPhaseCompletedData) error {
	if err := data.Validate(); err != nil {
		return apierr.InvalidArgument(err)
	}
	if data.PhaseType != types.PomodoroPhaseFocus || !data.Completed {
		return nil
	}
	xp, coins := e.rules.FocusReward(data.ActualDurationSeconds)
	if xp == 0 && coins == 0 {
		e.log.Debug("focus phase below reward minimum, ignoring",
			"session_id", data.SessionID,
			"seconds", data.ActualDurationSeconds)
		return nil
	}
	now := data.CompletionTime
	if now.IsZero() {
		now = time.Now().UTC()
	}

	return e.runTx(ctx, func(tx *gorm.DB) error {
		profile, err := e.profiles.Get(ctx, tx, data.UserID)
		if err != nil {
			return err
		}
		if profile == nil {
			return apierr.NotFound(fmt.Errorf("gamification profile for user %s not found", data.UserID))
		}

		// The completion time only moves forward; a replayed envelope
		// carries a time we have already processed and is dropped here.
		if profile.LastPomodoroCompletionTime != nil && !now.After(*profile.LastPomodoroCompletionTime) {
			e.log.Debug("pomodoro phase already processed",
				"user_id", data.UserID,
				"session_id", data.SessionID)
			return nil
		}
		profile.LastPomodoroCompletionTime = &now

		stats, err := e.taskStats.Get(ctx, tx, data.TaskID)
		if err != nil {
			return err
		}
		if stats == nil {
			stats = &types.TaskStatistics{TaskID: data.TaskID}
		}
		stats.TotalPomodoroFocusSeconds += data.ActualDurationSeconds
		stats.CompletedPomodoroFocusSessions++
		stats.TotalPomodoroInterrupts += data.Interruptions
		stats.UpdatedAt = now
		if err := e.taskStats.Save(ctx, tx, stats); err != nil {
			return err
		}

		profile.Experience += xp
		profile.Coins += coins

		minutes := data.ActualDurationSeconds / 60
		if err := e.bumpGlobalStats(ctx, tx, profile, now, func(g *types.GlobalStatistics) {
			g.TotalPomodoroFocusMinutes += minutes
		}); err != nil {
			return err
		}

		taskID := data.TaskID
		if err := e.history.Append(ctx, tx, &types.GamificationHistoryEntry{
			UserID:            data.UserID,
			Timestamp:         now,
			EventType:         types.HistoryPomodoroFocusPhase,
			XPChange:          xp,
			CoinsChange:       coins,
			RelatedEntityID:   &taskID,
			RelatedEntityType: types.RelatedEntityTask,
			Description:       fmt.Sprintf("Focused for %d minutes", minutes),
		}); err != nil {
			return err
		}

		if err := e.tracker.Advance(ctx, tx, profile, types.EventPomodoroFocusMinutes, minutes, dayKey(now), now); err != nil {
			return err
		}
		if err := e.tracker.Advance(ctx, tx, profile, types.EventPomodoroSessionCount, 1, dayKey(now), now); err != nil {
			return err
		}
		if err := e.applyLevelUps(ctx, tx, profile, now); err != nil {
			return err
		}
		profile.UpdatedAt = now
		return e.profiles.Save(ctx, tx, profile)
	})
}

// applyLevelUps promotes the profile while cumulative experience clears the
// next-level threshold, recording one history entry per level gained.
// Experience itself never decreases; each level raises the threshold by the
// next level's cost. Challenges tracking reached levels advance with the
// final level.
func (e *Engine) applyLevelUps(ctx context.Context, tx *gorm.DB, profile *types.GamificationProfile, now time.Time) error {
	leveled := false
	for profile.Experience >= profile.MaxExperienceForLevel {
		profile.Level++
		profile.MaxExperienceForLevel += e.rules.MaxExperienceForLevel(profile.Level)
		leveled = true
		if err := e.history.Append(ctx, tx, &types.GamificationHistoryEntry{
			UserID:      profile.UserID,
			Timestamp:   now,
			EventType:   types.HistoryLevelUp,
			Description: fmt.Sprintf("Reached level %d", profile.Level),
		}); err != nil {
			return err
		}
	}
	if !leveled {
		return nil
	}
	return e.tracker.Advance(ctx, tx, profile, types.EventLevelReached, profile.Level, "", now)
}

func (e *Engine) bumpGlobalStats(ctx context.Context, tx *gorm.DB, profile *types.GamificationProfile, now time.Time, mutate func(*types.GlobalStatistics)) error {
	global, err := e.globalStats.Get(ctx, tx, profile.UserID)
	if err != nil {
		return err
	}
	if global == nil {
		global = &types.GlobalStatistics{UserID: profile.UserID, CreatedAt: now}
	}
	mutate(global)
	global.LastActive = now
	return e.globalStats.Save(ctx, tx, global)
}

// dayKey buckets compound challenge progress by UTC calendar day.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
