package gamification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

func TestFirstClaimStartsStreak(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	te.addProfile(userID, testNow)

	result, err := te.engine.ClaimDaily(context.Background(), userID, testNow)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if result.Streak != 1 {
		t.Errorf("streak = %d, want 1", result.Streak)
	}
	// 10 base + 2 per streak day.
	if result.CoinsGranted != 12 {
		t.Errorf("coins granted = %d, want 12", result.CoinsGranted)
	}
	if result.XPGranted != 0 {
		t.Errorf("xp granted = %d, want 0", result.XPGranted)
	}
	if result.Profile.Coins != 50+12 {
		t.Errorf("coins = %d, want 62", result.Profile.Coins)
	}
	if te.history.countByType(types.HistoryDailyRewardClaimed) != 1 {
		t.Error("missing daily-reward history entry")
	}
}

func TestSecondClaimSameDayRejected(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	te.addProfile(userID, testNow)

	if _, err := te.engine.ClaimDaily(context.Background(), userID, testNow); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	_, err := te.engine.ClaimDaily(context.Background(), userID, testNow.Add(2*time.Hour))
	if err == nil {
		t.Fatal("same-day claim should fail")
	}
	if apierr.CodeOf(err) != apierr.CodePreconditionFailed {
		t.Errorf("code = %s, want precondition_failed", apierr.CodeOf(err))
	}
	// The failed claim must not change state.
	if got := te.profiles.profiles[userID].Coins; got != 62 {
		t.Errorf("coins after rejected claim = %d, want 62", got)
	}
}

func TestFutureClaimDateRejected(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	profile := te.addProfile(userID, testNow)
	// A last-claimed date ahead of the clock (skewed replica) must not mint
	// an extra claim.
	profile.LastClaimedDate = testNow.AddDate(0, 0, 2)

	_, err := te.engine.ClaimDaily(context.Background(), userID, testNow)
	if err == nil {
		t.Fatal("claim against a future last-claimed date should fail")
	}
	if apierr.CodeOf(err) != apierr.CodePreconditionFailed {
		t.Errorf("code = %s, want precondition_failed", apierr.CodeOf(err))
	}
	if got := te.profiles.profiles[userID].Coins; got != 50 {
		t.Errorf("coins = %d, want untouched 50", got)
	}
}

func TestConsecutiveClaimExtendsStreak(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	te.addProfile(userID, testNow)

	if _, err := te.engine.ClaimDaily(context.Background(), userID, testNow); err != nil {
		t.Fatalf("day 1: %v", err)
	}
	result, err := te.engine.ClaimDaily(context.Background(), userID, testNow.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("day 2: %v", err)
	}
	if result.Streak != 2 {
		t.Errorf("streak = %d, want 2", result.Streak)
	}
	// Day 2: 10 + 2*2 = 14.
	if result.CoinsGranted != 14 {
		t.Errorf("coins granted = %d, want 14", result.CoinsGranted)
	}
	if result.Profile.Coins != 50+12+14 {
		t.Errorf("coins = %d, want 76", result.Profile.Coins)
	}
}

func TestGapResetsStreak(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	te.addProfile(userID, testNow)

	if _, err := te.engine.ClaimDaily(context.Background(), userID, testNow); err != nil {
		t.Fatalf("day 1: %v", err)
	}
	if _, err := te.engine.ClaimDaily(context.Background(), userID, testNow.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("day 2: %v", err)
	}
	result, err := te.engine.ClaimDaily(context.Background(), userID, testNow.AddDate(0, 0, 4))
	if err != nil {
		t.Fatalf("after gap: %v", err)
	}
	if result.Streak != 1 {
		t.Errorf("streak after gap = %d, want 1", result.Streak)
	}
	if result.Profile.MaxStreak != 2 {
		t.Errorf("max streak = %d, want 2 preserved", result.Profile.MaxStreak)
	}
}

func TestClaimJustBeforeAndAfterMidnight(t *testing.T) {
	te := newTestEngine(t)
	userID := uuid.New()
	te.addProfile(userID, testNow)

	evening := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	pastMidnight := time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC)

	if _, err := te.engine.ClaimDaily(context.Background(), userID, evening); err != nil {
		t.Fatalf("evening claim: %v", err)
	}
	result, err := te.engine.ClaimDaily(context.Background(), userID, pastMidnight)
	if err != nil {
		t.Fatalf("past-midnight claim: %v", err)
	}
	if result.Streak != 2 {
		t.Errorf("streak = %d, want 2 across midnight", result.Streak)
	}
}

func TestDayDelta(t *testing.T) {
	base := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		last time.Time
		now  time.Time
		want int
	}{
		{"same day", base, base.Add(3 * time.Hour), 0},
		{"next day early", base, time.Date(2026, 3, 15, 0, 30, 0, 0, time.UTC), 1},
		{"two days", base, base.AddDate(0, 0, 2), 2},
		{"month boundary", time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC), time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC), 1},
		{"future last claim", base.AddDate(0, 0, 3), base, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dayDelta(tt.last, tt.now); got != tt.want {
				t.Errorf("dayDelta(%v, %v) = %d, want %d", tt.last, tt.now, got, tt.want)
			}
		})
	}
	if got := dayDelta(time.Time{}, base); got < 2 {
		t.Errorf("zero last time should read as a large gap, got %d", got)
	}
}
