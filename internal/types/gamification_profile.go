package types

import (
	"time"

	"github.com/google/uuid"
)

// GamificationProfile holds the per-user counters mutated by the reward
// engine. One row per user, created at registration.
type GamificationProfile struct {
	UserID                     uuid.UUID  `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	Level                      int64      `gorm:"not null;default:1;column:level" json:"level"`
	Experience                 int64      `gorm:"not null;default:0;column:experience" json:"experience"`
	Coins                      int64      `gorm:"not null;default:50;column:coins" json:"coins"`
	MaxExperienceForLevel      int64      `gorm:"not null;default:100;column:max_experience_for_level" json:"max_experience_for_level"`
	CurrentStreak              int64      `gorm:"not null;default:0;column:current_streak" json:"current_streak"`
	MaxStreak                  int64      `gorm:"not null;default:0;column:max_streak" json:"max_streak"`
	LastClaimedDate            time.Time  `gorm:"not null;column:last_claimed_date" json:"last_claimed_date"`
	SelectedPlantInstanceID    *uuid.UUID `gorm:"type:uuid;column:selected_plant_instance_id" json:"selected_plant_instance_id"`
	LastPomodoroCompletionTime *time.Time `gorm:"column:last_pomodoro_completion_time" json:"last_pomodoro_completion_time"`
	LastTaskCompletionTime     *time.Time `gorm:"column:last_task_completion_time" json:"last_task_completion_time"`
	CreatedAt                  time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt                  time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (GamificationProfile) TableName() string {
	return "gamification_profile"
}

// NewGamificationProfile returns the starting profile for a fresh account.
func NewGamificationProfile(userID uuid.UUID, now time.Time) *GamificationProfile {
	return &GamificationProfile{
		UserID:                userID,
		Level:                 1,
		Experience:            0,
		Coins:                 50,
		MaxExperienceForLevel: 100,
		CurrentStreak:         0,
		MaxStreak:             0,
		// Zero time means "never claimed"; day comparison treats it as far past.
		LastClaimedDate: time.Time{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
