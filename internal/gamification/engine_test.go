package gamification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/events"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func doneEvent(userID, taskID uuid.UUID, at time.Time) events.TaskStatusUpdatedData {
	return events.TaskStatusUpdatedData{
		TaskID:      taskID,
		WorkspaceID: uuid.New(),
		UserID:      userID,
		NewStatus:   types.TaskStatusDone,
		OldStatus:   types.TaskStatusInProgress,
		CompletedAt: &at,
		TaskTitle:   "Write report",
	}
}

func TestTaskCompletionRewardsOnce(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	taskID := uuid.New()
	te.addProfile(userID, testNow)

	if err := te.engine.HandleTaskStatusUpdated(context.Background(), doneEvent(userID, taskID, testNow)); err != nil {
		t.Fatalf("first completion: %v", err)
	}

	profile := te.profiles.profiles[userID]
	if profile.Experience != 50 {
		t.Errorf("experience = %d, want 50", profile.Experience)
	}
	if profile.Coins != 60 {
		t.Errorf("coins = %d, want 60 (50 starting + 10)", profile.Coins)
	}
}

func TestTaskCompletionReplayIsNeutral(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	taskID := uuid.New()
	te.addProfile(userID, testNow)

	event := doneEvent(userID, taskID, testNow)
	for i := 0; i < 3; i++ {
		if err := te.engine.HandleTaskStatusUpdated(context.Background(), event); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}

	profile := te.profiles.profiles[userID]
	if profile.Experience != 50 {
		t.Errorf("experience after replays = %d, want 50", profile.Experience)
	}
	if got := te.history.countByType(types.HistoryTaskCompleted); got != 1 {
		t.Errorf("task-completed history entries = %d, want 1", got)
	}
	if got := te.globalStats.stats[userID].TotalTasksCompleted; got != 1 {
		t.Errorf("total tasks completed = %d, want 1", got)
	}
}

func TestTaskFlappingKeepsLatch(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	taskID := uuid.New()
	te.addProfile(userID, testNow)

	if err := te.engine.HandleTaskStatusUpdated(context.Background(), doneEvent(userID, taskID, testNow)); err != nil {
		t.Fatalf("first done: %v", err)
	}
	// Reopened tasks produce non-done transitions which the engine ignores.
	reopened := doneEvent(userID, taskID, testNow)
	reopened.NewStatus = types.TaskStatusTodo
	if err := te.engine.HandleTaskStatusUpdated(context.Background(), reopened); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	later := testNow.Add(time.Hour)
	if err := te.engine.HandleTaskStatusUpdated(context.Background(), doneEvent(userID, taskID, later)); err != nil {
		t.Fatalf("second done: %v", err)
	}

	stats := te.taskStats.stats[taskID]
	if !stats.WasCompletedOnce {
		t.Fatal("was-completed-once latch dropped")
	}
	if !stats.FirstCompletionTime.Equal(testNow) {
		t.Errorf("first completion time moved to %v", stats.FirstCompletionTime)
	}
	if !stats.CompletionTime.Equal(later) {
		t.Errorf("completion time = %v, want refreshed to %v", stats.CompletionTime, later)
	}
	if te.profiles.profiles[userID].Experience != 50 {
		t.Errorf("experience = %d, want 50 after flapping", te.profiles.profiles[userID].Experience)
	}
}

func TestTaskCompletionMissingProfile(t *testing.T) {
	te := newTestEngine(t)
	err := te.engine.HandleTaskStatusUpdated(context.Background(), doneEvent(uuid.New(), uuid.New(), testNow))
	if err == nil {
		t.Fatal("expected error for missing profile")
	}
	if apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Errorf("code = %s, want not_found", apierr.CodeOf(err))
	}
	if apierr.IsRetryable(err) {
		t.Error("missing profile should not be retryable")
	}
}

func TestTaskCompletionInvalidPayload(t *testing.T) {
	te := newTestEngine(t)
	event := doneEvent(uuid.New(), uuid.New(), testNow)
	event.TaskID = uuid.Nil
	err := te.engine.HandleTaskStatusUpdated(context.Background(), event)
	if apierr.CodeOf(err) != apierr.CodeInvalidArgument {
		t.Errorf("code = %s, want invalid_argument", apierr.CodeOf(err))
	}
}

func focusEvent(userID, taskID uuid.UUID, seconds int64, at time.Time) events.PomodoroPhaseCompletedData {
	return events.PomodoroPhaseCompletedData{
		SessionID:              uuid.New(),
		UserID:                 userID,
		TaskID:                 taskID,
		WorkspaceID:            uuid.New(),
		PhaseType:              types.PomodoroPhaseFocus,
		PlannedDurationSeconds: 1500,
		ActualDurationSeconds:  seconds,
		Completed:              true,
		CompletionTime:         at,
	}
}

func TestPomodoroFocusRewards(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	taskID := uuid.New()
	te.addProfile(userID, testNow)

	// 600s -> 10 minutes -> 10 XP, one full batch of 10 XP -> 5 coins.
	if err := te.engine.HandlePomodoroPhaseCompleted(context.Background(), focusEvent(userID, taskID, 600, testNow)); err != nil {
		t.Fatalf("focus phase: %v", err)
	}
	profile := te.profiles.profiles[userID]
	if profile.Experience != 10 {
		t.Errorf("experience = %d, want 10", profile.Experience)
	}
	if profile.Coins != 55 {
		t.Errorf("coins = %d, want 55 (50 starting + 5)", profile.Coins)
	}
	if got := te.globalStats.stats[userID].TotalPomodoroFocusMinutes; got != 10 {
		t.Errorf("global focus minutes = %d, want 10", got)
	}
}

func TestPomodoroBelowMinimumLeavesStateUntouched(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	taskID := uuid.New()
	te.addProfile(userID, testNow)

	for _, seconds := range []int64{30, 59} {
		if err := te.engine.HandlePomodoroPhaseCompleted(context.Background(), focusEvent(userID, taskID, seconds, testNow)); err != nil {
			t.Fatalf("short phase (%ds): %v", seconds, err)
		}
	}
	profile := te.profiles.profiles[userID]
	if profile.Experience != 0 || profile.Coins != 50 {
		t.Errorf("short phase rewarded: xp=%d coins=%d", profile.Experience, profile.Coins)
	}
	// Non-qualifying phases touch nothing: no statistics row, no replay
	// watermark, no history.
	if _, ok := te.taskStats.stats[taskID]; ok {
		t.Error("short phase wrote task statistics")
	}
	if profile.LastPomodoroCompletionTime != nil {
		t.Error("short phase advanced the completion watermark")
	}
	if len(te.history.entries) != 0 {
		t.Errorf("short phase appended %d history entries", len(te.history.entries))
	}
}

func TestPomodoroPartialMinutesFloored(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	te.addProfile(userID, testNow)

	// 1499s -> 24 minutes -> 24 XP -> 2 batches -> 10 coins.
	if err := te.engine.HandlePomodoroPhaseCompleted(context.Background(), focusEvent(userID, uuid.New(), 1499, testNow)); err != nil {
		t.Fatalf("focus phase: %v", err)
	}
	profile := te.profiles.profiles[userID]
	if profile.Experience != 24 {
		t.Errorf("experience = %d, want 24", profile.Experience)
	}
	if profile.Coins != 60 {
		t.Errorf("coins = %d, want 60", profile.Coins)
	}
}

func TestPomodoroReplayDropped(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	te.addProfile(userID, testNow)

	event := focusEvent(userID, uuid.New(), 600, testNow)
	for i := 0; i < 3; i++ {
		if err := te.engine.HandlePomodoroPhaseCompleted(context.Background(), event); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}
	if got := te.profiles.profiles[userID].Experience; got != 10 {
		t.Errorf("experience after replays = %d, want 10", got)
	}
	if got := te.history.countByType(types.HistoryPomodoroFocusPhase); got != 1 {
		t.Errorf("focus history entries = %d, want 1", got)
	}
}

func TestBreakPhasesIgnored(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	te.addProfile(userID, testNow)

	event := focusEvent(userID, uuid.New(), 600, testNow)
	event.PhaseType = types.PomodoroPhaseShortBreak
	if err := te.engine.HandlePomodoroPhaseCompleted(context.Background(), event); err != nil {
		t.Fatalf("break phase: %v", err)
	}
	if got := te.profiles.profiles[userID].Experience; got != 0 {
		t.Errorf("break phase earned %d XP", got)
	}
}

func TestLevelUpKeepsExperienceCumulative(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	profile := te.addProfile(userID, testNow)
	profile.Experience = 80

	// +50 XP crosses the level-1 threshold of 100. Experience never drains;
	// the threshold rises by the next level's cost instead.
	if err := te.engine.HandleTaskStatusUpdated(context.Background(), doneEvent(userID, uuid.New(), testNow)); err != nil {
		t.Fatalf("completion: %v", err)
	}
	got := te.profiles.profiles[userID]
	if got.Level != 2 {
		t.Errorf("level = %d, want 2", got.Level)
	}
	if got.Experience != 130 {
		t.Errorf("experience = %d, want cumulative 130", got.Experience)
	}
	if got.MaxExperienceForLevel != 300 {
		t.Errorf("max experience = %d, want 300", got.MaxExperienceForLevel)
	}
	if te.history.countByType(types.HistoryLevelUp) != 1 {
		t.Error("missing level-up history entry")
	}
}

func TestMultiLevelJump(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	profile := te.addProfile(userID, testNow)
	profile.Experience = 90
	te.challenges.defs = append(te.challenges.defs, &types.ChallengeDefinition{
		ID:                      uuid.New(),
		Name:                    "Reach level 2",
		CreatorUID:              types.SystemCreatorUID,
		Period:                  types.ChallengePeriodOnce,
		Type:                    types.EventLevelReached,
		TargetValue:             2,
		Reward:                  types.CoinsReward(25),
		IsActiveSystemChallenge: true,
	})

	// 260 minutes of focus: 350 XP total clears the level-2 threshold (100)
	// and the level-3 threshold (300), landing on level 3 with the next
	// threshold at 600.
	if err := te.engine.HandlePomodoroPhaseCompleted(context.Background(), focusEvent(userID, uuid.New(), 260*60, testNow)); err != nil {
		t.Fatalf("focus phase: %v", err)
	}
	got := te.profiles.profiles[userID]
	if got.Level != 3 {
		t.Errorf("level = %d, want 3", got.Level)
	}
	if got.Experience != 350 {
		t.Errorf("experience = %d, want cumulative 350", got.Experience)
	}
	if got.MaxExperienceForLevel != 600 {
		t.Errorf("max experience = %d, want 600", got.MaxExperienceForLevel)
	}
	if te.history.countByType(types.HistoryLevelUp) != 2 {
		t.Errorf("level-up entries = %d, want 2", te.history.countByType(types.HistoryLevelUp))
	}
	if te.history.countByType(types.HistoryChallengeCompleted) != 1 {
		t.Error("level challenge should have completed")
	}
}

func TestExperienceConservedAcrossFacts(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	te.addProfile(userID, testNow)

	// N distinct qualifying facts sum exactly, level-ups included.
	for i := 0; i < 3; i++ {
		if err := te.engine.HandleTaskStatusUpdated(context.Background(), doneEvent(userID, uuid.New(), testNow)); err != nil {
			t.Fatalf("completion %d: %v", i+1, err)
		}
	}
	got := te.profiles.profiles[userID]
	if got.Experience != 150 {
		t.Errorf("experience = %d, want 3*50 = 150", got.Experience)
	}
	if got.Level != 2 {
		t.Errorf("level = %d, want 2", got.Level)
	}
}

func TestUserCreatedProvisionsMissingRows(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()

	event := events.UserCreatedData{UserID: userID, Email: "new@focusgrove.dev"}
	for i := 0; i < 2; i++ {
		if err := te.engine.HandleUserCreated(context.Background(), event); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}
	profile := te.profiles.profiles[userID]
	if profile == nil {
		t.Fatal("profile not provisioned")
	}
	if profile.Level != 1 || profile.Coins != 50 {
		t.Errorf("fresh profile = level %d, %d coins; want level 1, 50 coins", profile.Level, profile.Coins)
	}
	if te.globalStats.stats[userID] == nil {
		t.Fatal("global statistics not provisioned")
	}
}

func TestUserCreatedLeavesExistingProfileAlone(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	profile := te.addProfile(userID, testNow)
	profile.Coins = 400
	profile.Level = 5

	if err := te.engine.HandleUserCreated(context.Background(), events.UserCreatedData{UserID: userID}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	got := te.profiles.profiles[userID]
	if got.Coins != 400 || got.Level != 5 {
		t.Errorf("existing profile reset: level %d, %d coins", got.Level, got.Coins)
	}
}

func TestUserCreatedMissingIDRejected(t *testing.T) {
	te := newTestEngine(t)
	err := te.engine.HandleUserCreated(context.Background(), events.UserCreatedData{})
	if apierr.CodeOf(err) != apierr.CodeInvalidArgument {
		t.Errorf("code = %s, want invalid_argument", apierr.CodeOf(err))
	}
}
