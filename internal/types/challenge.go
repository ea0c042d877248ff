package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SystemCreatorUID marks challenge definitions authored by the platform
// rather than a user.
const SystemCreatorUID = "system"

type ChallengeScope string

const (
	ChallengeScopePersonal  ChallengeScope = "personal"
	ChallengeScopeTeam      ChallengeScope = "team"
	ChallengeScopeWorkspace ChallengeScope = "workspace"
)

type ChallengePeriod string

const (
	ChallengePeriodOnce    ChallengePeriod = "ONCE"
	ChallengePeriodDaily   ChallengePeriod = "DAILY"
	ChallengePeriodWeekly  ChallengePeriod = "WEEKLY"
	ChallengePeriodMonthly ChallengePeriod = "MONTHLY"
)

func (p ChallengePeriod) Valid() bool {
	switch p {
	case ChallengePeriodOnce, ChallengePeriodDaily, ChallengePeriodWeekly, ChallengePeriodMonthly:
		return true
	}
	return false
}

// ChallengeEventType is the tracked event category a challenge accumulates.
type ChallengeEventType string

const (
	EventTaskCompletionCount  ChallengeEventType = "TASK_COMPLETION_COUNT"
	EventPomodoroFocusMinutes ChallengeEventType = "POMODORO_FOCUS_MINUTES"
	EventPomodoroSessionCount ChallengeEventType = "POMODORO_SESSION_COUNT"
	EventLoginStreak          ChallengeEventType = "LOGIN_STREAK"
	EventBadgeCount           ChallengeEventType = "BADGE_COUNT"
	EventPlantMaxStage        ChallengeEventType = "PLANT_MAX_STAGE"
	EventLevelReached         ChallengeEventType = "LEVEL_REACHED"
	EventResourceAccumulated  ChallengeEventType = "RESOURCE_ACCUMULATED"
	EventCustom               ChallengeEventType = "CUSTOM_EVENT"
)

func (t ChallengeEventType) Valid() bool {
	switch t {
	case EventTaskCompletionCount, EventPomodoroFocusMinutes, EventPomodoroSessionCount,
		EventLoginStreak, EventBadgeCount, EventPlantMaxStage, EventLevelReached,
		EventResourceAccumulated, EventCustom:
		return true
	}
	return false
}

type RewardKind string

const (
	RewardXP    RewardKind = "XP"
	RewardCoins RewardKind = "COINS"
	RewardBadge RewardKind = "BADGE_ID"
	RewardText  RewardKind = "TEXT"
)

// Reward is the tagged union of challenge rewards. Exactly the fields for
// the active kind are meaningful; constructors below keep rows well-formed.
type Reward struct {
	Kind          RewardKind `gorm:"not null;column:kind" json:"type"`
	Amount        int64      `gorm:"not null;default:0;column:amount" json:"amount,omitempty"`
	BadgeID       *uuid.UUID `gorm:"type:uuid;column:badge_id" json:"badge_id,omitempty"`
	BadgeName     string     `gorm:"column:badge_name" json:"badge_name,omitempty"`
	BadgeImageURL string     `gorm:"column:badge_image_url" json:"badge_image_url,omitempty"`
	Text          string     `gorm:"column:text" json:"text,omitempty"`
}

func XPReward(amount int64) Reward {
	return Reward{Kind: RewardXP, Amount: amount}
}

func CoinsReward(amount int64) Reward {
	return Reward{Kind: RewardCoins, Amount: amount}
}

func BadgeReward(badgeID uuid.UUID, name, imageURL string) Reward {
	return Reward{Kind: RewardBadge, BadgeID: &badgeID, BadgeName: name, BadgeImageURL: imageURL}
}

func TextReward(text string) Reward {
	return Reward{Kind: RewardText, Text: text}
}

func (r Reward) Validate() error {
	switch r.Kind {
	case RewardXP, RewardCoins:
		if r.Amount <= 0 {
			return fmt.Errorf("%s reward requires a positive amount", r.Kind)
		}
	case RewardBadge:
		if r.BadgeID == nil {
			return fmt.Errorf("badge reward requires a badge id")
		}
	case RewardText:
		if r.Text == "" {
			return fmt.Errorf("text reward requires text")
		}
	default:
		return fmt.Errorf("unknown reward kind %q", r.Kind)
	}
	return nil
}

// ChallengeDefinition is immutable once created, except for deletion by its
// creator. System challenges are visible to everyone and never user-deletable.
type ChallengeDefinition struct {
	ID                      uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name                    string             `gorm:"not null;column:name" json:"name"`
	Description             string             `gorm:"column:description" json:"description"`
	CreatorUID              string             `gorm:"not null;index;column:creator_uid" json:"creator_uid"`
	Scope                   ChallengeScope     `gorm:"not null;default:'personal';column:scope" json:"scope"`
	TargetEntityID          *uuid.UUID         `gorm:"type:uuid;column:target_entity_id" json:"target_entity_id"`
	Reward                  Reward             `gorm:"embedded;embeddedPrefix:reward_" json:"reward"`
	Period                  ChallengePeriod    `gorm:"not null;column:period" json:"period"`
	Type                    ChallengeEventType `gorm:"not null;index;column:type" json:"type"`
	TargetValue             int64              `gorm:"not null;column:target_value" json:"target_value"`
	ConditionJSON           string             `gorm:"column:condition_json" json:"condition_json,omitempty"`
	IsActiveSystemChallenge bool               `gorm:"not null;default:false;index;column:is_active_system_challenge" json:"is_active_system_challenge"`
	CreatedAt               time.Time          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt               time.Time          `gorm:"not null;default:now()" json:"updated_at"`
}

func (ChallengeDefinition) TableName() string {
	return "challenge_definition"
}
