package gamification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

func TestPeriodStart(t *testing.T) {
	// 2026-03-14 is a Saturday.
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		period types.ChallengePeriod
		want   time.Time
	}{
		{types.ChallengePeriodDaily, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)},
		{types.ChallengePeriodWeekly, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{types.ChallengePeriodMonthly, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			if got := PeriodStart(tt.period, now); !got.Equal(tt.want) {
				t.Errorf("PeriodStart(%s) = %v, want %v", tt.period, got, tt.want)
			}
		})
	}
}

func TestPeriodStartSundayBelongsToPriorWeek(t *testing.T) {
	// 2026-03-15 is a Sunday; the week still opens on Monday the 9th.
	sunday := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := PeriodStart(types.ChallengePeriodWeekly, sunday); !got.Equal(want) {
		t.Errorf("sunday week start = %v, want %v", got, want)
	}
}

func newTestRollover(t *testing.T, challenges *fakeChallengeRepo, progress *fakeProgressRepo) *Rollover {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	r := NewRollover(log, nil, challenges, progress, time.Minute)
	r.runTx = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return fn(nil)
	}
	return r
}

func TestResetDueClearsRecurringProgress(t *testing.T) {
	challenges := &fakeChallengeRepo{}
	progress := newFakeProgressRepo()
	daily := systemChallenge(types.EventTaskCompletionCount, types.ChallengePeriodDaily, 3, types.XPReward(10))
	once := systemChallenge(types.EventTaskCompletionCount, types.ChallengePeriodOnce, 3, types.XPReward(10))
	challenges.defs = append(challenges.defs, daily, once)

	userID := uuid.New()
	yesterday := time.Date(2026, 3, 13, 20, 0, 0, 0, time.UTC)
	completedAt := yesterday
	progress.rows[progressKey{userID, daily.ID}] = &types.ChallengeProgress{
		UserID:                userID,
		ChallengeDefinitionID: daily.ID,
		Progress:              newScalarJSON(3),
		IsCompleted:           true,
		CompletedAt:           &completedAt,
		LastUpdated:           yesterday,
	}

	r := newTestRollover(t, challenges, progress)
	now := time.Date(2026, 3, 14, 0, 5, 0, 0, time.UTC)
	if err := r.ResetDue(context.Background(), now); err != nil {
		t.Fatalf("reset: %v", err)
	}

	row := progress.rows[progressKey{userID, daily.ID}]
	if row.IsCompleted {
		t.Error("daily progress still completed after rollover")
	}
	if got := row.Progress.Data().Total(); got != 0 {
		t.Errorf("daily progress = %d, want 0", got)
	}
	// ONCE challenges are never part of the rollover.
	for _, id := range progress.resets {
		if id == once.ID {
			t.Error("once-period challenge was reset")
		}
	}
}

func TestResetDueRunsOncePerBoundary(t *testing.T) {
	challenges := &fakeChallengeRepo{}
	progress := newFakeProgressRepo()
	daily := systemChallenge(types.EventTaskCompletionCount, types.ChallengePeriodDaily, 3, types.XPReward(10))
	challenges.defs = append(challenges.defs, daily)

	r := newTestRollover(t, challenges, progress)
	now := time.Date(2026, 3, 14, 0, 5, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := r.ResetDue(context.Background(), now.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("pass %d: %v", i+1, err)
		}
	}
	if len(progress.resets) != 1 {
		t.Errorf("resets issued = %d, want 1 per boundary", len(progress.resets))
	}
}
