package gamification

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the tunable reward parameters. Compiled defaults carry the
// production values; RULES_PATH can point at a YAML override so staging can
// rebalance the economy without a rebuild.
type Rules struct {
	XPForTaskCompletion     int64 `yaml:"xp_for_task_completion"`
	CoinsForTaskCompletion  int64 `yaml:"coins_for_task_completion"`
	XPPerFocusMinute        int64 `yaml:"xp_per_focus_minute"`
	XPBatchForCoins         int64 `yaml:"xp_batch_for_coins"`
	CoinsPerXPBatch         int64 `yaml:"coins_per_xp_batch"`
	MinFocusDurationSeconds int64 `yaml:"min_focus_duration_seconds"`
	DailyBaseCoins          int64 `yaml:"daily_base_coins"`
	DailyCoinsPerStreakDay  int64 `yaml:"daily_coins_per_streak_day"`
	BaseLevelExperience     int64 `yaml:"base_level_experience"`
}

func DefaultRules() Rules {
	return Rules{
		XPForTaskCompletion:     50,
		CoinsForTaskCompletion:  10,
		XPPerFocusMinute:        1,
		XPBatchForCoins:         10,
		CoinsPerXPBatch:         5,
		MinFocusDurationSeconds: 60,
		DailyBaseCoins:          10,
		DailyCoinsPerStreakDay:  2,
		BaseLevelExperience:     100,
	}
}

// LoadRules reads a YAML override on top of the defaults. Fields absent from
// the file keep their default values.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return rules, fmt.Errorf("parse rules file: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return rules, err
	}
	return rules, nil
}

func (r Rules) Validate() error {
	if r.XPBatchForCoins <= 0 {
		return fmt.Errorf("xp_batch_for_coins must be positive")
	}
	if r.BaseLevelExperience <= 0 {
		return fmt.Errorf("base_level_experience must be positive")
	}
	if r.MinFocusDurationSeconds < 0 {
		return fmt.Errorf("min_focus_duration_seconds must be non-negative")
	}
	return nil
}

// TaskReward is the flat grant for a task's first transition to done.
func (r Rules) TaskReward() (xp, coins int64) {
	return r.XPForTaskCompletion, r.CoinsForTaskCompletion
}

// FocusReward converts a completed focus phase into XP and coins. Phases
// shorter than the minimum earn nothing; partial minutes are floored, and
// coins are granted per full XP batch.
func (r Rules) FocusReward(actualSeconds int64) (xp, coins int64) {
	if actualSeconds < r.MinFocusDurationSeconds {
		return 0, 0
	}
	minutes := actualSeconds / 60
	xp = minutes * r.XPPerFocusMinute
	coins = xp / r.XPBatchForCoins * r.CoinsPerXPBatch
	return xp, coins
}

// DailyCoins scales the login bonus with the streak already updated for
// today's claim.
func (r Rules) DailyCoins(streak int64) int64 {
	return r.DailyBaseCoins + r.DailyCoinsPerStreakDay*streak
}

// MaxExperienceForLevel is the XP required to leave the given level.
func (r Rules) MaxExperienceForLevel(level int64) int64 {
	if level < 1 {
		level = 1
	}
	return r.BaseLevelExperience * level
}
