package types

import (
	"time"

	"github.com/google/uuid"
)

type HistoryEventType string

const (
	HistoryTaskCompleted            HistoryEventType = "TASK_COMPLETED"
	HistoryPomodoroFocusPhase       HistoryEventType = "POMODORO_FOCUS_PHASE"
	HistoryDailyRewardClaimed       HistoryEventType = "DAILY_REWARD_CLAIMED"
	HistoryChallengeCompleted       HistoryEventType = "CHALLENGE_COMPLETED"
	HistoryBadgeEarned              HistoryEventType = "BADGE_EARNED"
	HistoryPlantWatered             HistoryEventType = "PLANT_WATERED"
	HistoryStorePurchase            HistoryEventType = "STORE_PURCHASE"
	HistoryLevelUp                  HistoryEventType = "LEVEL_UP"
	HistoryCustomChallengeCompleted HistoryEventType = "CUSTOM_CHALLENGE_COMPLETED"
)

type RelatedEntityType string

const (
	RelatedEntityTask      RelatedEntityType = "task"
	RelatedEntityChallenge RelatedEntityType = "challenge"
	RelatedEntityBadge     RelatedEntityType = "badge"
	RelatedEntityPlant     RelatedEntityType = "plant"
)

// GamificationHistoryEntry is append-only: written once per reward-affecting
// event, never mutated. It is the audit trail for every counter change.
type GamificationHistoryEntry struct {
	ID                uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID            uuid.UUID         `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Timestamp         time.Time         `gorm:"not null;index;column:timestamp" json:"timestamp"`
	EventType         HistoryEventType  `gorm:"not null;column:event_type" json:"event_type"`
	XPChange          int64             `gorm:"not null;default:0;column:xp_change" json:"xp_change"`
	CoinsChange       int64             `gorm:"not null;default:0;column:coins_change" json:"coins_change"`
	RelatedEntityID   *uuid.UUID        `gorm:"type:uuid;column:related_entity_id" json:"related_entity_id"`
	RelatedEntityType RelatedEntityType `gorm:"column:related_entity_type" json:"related_entity_type"`
	Description       string            `gorm:"column:description" json:"description"`
}

func (GamificationHistoryEntry) TableName() string {
	return "gamification_history"
}
