package types

import (
	"time"

	"github.com/google/uuid"
)

type BadgeDefinition struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `gorm:"not null;column:name" json:"name"`
	Description  string    `gorm:"column:description" json:"description"`
	ImageURL     string    `gorm:"column:image_url" json:"image_url"`
	CriteriaText string    `gorm:"column:criteria_text" json:"criteria"`
	RewardXP     int64     `gorm:"not null;default:0;column:reward_xp" json:"reward_xp"`
	RewardCoins  int64     `gorm:"not null;default:0;column:reward_coins" json:"reward_coins"`
	IsHidden     bool      `gorm:"not null;default:false;column:is_hidden" json:"is_hidden"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (BadgeDefinition) TableName() string {
	return "badge_definition"
}

// EarnedBadge existence is the grant-once dedup key: the (user, badge)
// unique index makes re-granting an idempotent overwrite, never a double
// grant. Name/image/criteria are copied at grant time so later edits to the
// definition do not rewrite history.
type EarnedBadge struct {
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	BadgeDefinitionID uuid.UUID `gorm:"type:uuid;primaryKey;column:badge_definition_id" json:"badge_definition_id"`
	EarnedAt          time.Time `gorm:"not null;column:earned_at" json:"earned_at"`
	Name              string    `gorm:"not null;column:name" json:"name"`
	ImageURL          string    `gorm:"column:image_url" json:"image_url"`
	Criteria          string    `gorm:"column:criteria" json:"criteria"`
}

func (EarnedBadge) TableName() string {
	return "earned_badge"
}
