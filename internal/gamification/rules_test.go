package gamification

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFocusRewardTable(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name      string
		seconds   int64
		wantXP    int64
		wantCoins int64
	}{
		{"below minimum", 59, 0, 0},
		{"exactly minimum", 60, 1, 0},
		{"ten minutes", 600, 10, 5},
		{"partial minute floored", 1499, 24, 10},
		{"twenty five minutes", 1500, 25, 10},
		{"zero", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xp, coins := rules.FocusReward(tt.seconds)
			if xp != tt.wantXP || coins != tt.wantCoins {
				t.Errorf("FocusReward(%d) = (%d, %d), want (%d, %d)", tt.seconds, xp, coins, tt.wantXP, tt.wantCoins)
			}
		})
	}
}

func TestDailyCoinsCurve(t *testing.T) {
	rules := DefaultRules()
	for streak, want := range map[int64]int64{1: 12, 2: 14, 5: 20, 30: 70} {
		if got := rules.DailyCoins(streak); got != want {
			t.Errorf("DailyCoins(%d) = %d, want %d", streak, got, want)
		}
	}
}

func TestMaxExperienceForLevel(t *testing.T) {
	rules := DefaultRules()
	if got := rules.MaxExperienceForLevel(1); got != 100 {
		t.Errorf("level 1 requirement = %d, want 100", got)
	}
	if got := rules.MaxExperienceForLevel(5); got != 500 {
		t.Errorf("level 5 requirement = %d, want 500", got)
	}
	if got := rules.MaxExperienceForLevel(0); got != 100 {
		t.Errorf("clamped level requirement = %d, want 100", got)
	}
}

func TestLoadRulesOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := "xp_for_task_completion: 75\ndaily_base_coins: 20\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	if rules.XPForTaskCompletion != 75 {
		t.Errorf("overridden xp = %d, want 75", rules.XPForTaskCompletion)
	}
	if rules.DailyBaseCoins != 20 {
		t.Errorf("overridden base coins = %d, want 20", rules.DailyBaseCoins)
	}
	// Untouched fields keep defaults.
	if rules.CoinsForTaskCompletion != 10 {
		t.Errorf("default coins = %d, want 10", rules.CoinsForTaskCompletion)
	}
}

func TestLoadRulesEmptyPathUsesDefaults(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if rules != DefaultRules() {
		t.Errorf("rules = %+v, want defaults", rules)
	}
}

func TestLoadRulesRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte("xp_batch_for_coins: 0\n"), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Fatal("expected validation error for zero batch size")
	}
}
