package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChallengeProgress is the per (user, challenge) accumulation row, created
// lazily on the first matching fact. IsCompleted is a one-way latch; for
// ONCE-period challenges a completed row is permanently frozen.
type ChallengeProgress struct {
	ID                    uuid.UUID                        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID                uuid.UUID                        `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_challenge;column:user_id" json:"user_id"`
	ChallengeDefinitionID uuid.UUID                        `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_challenge;column:challenge_definition_id" json:"challenge_definition_id"`
	Progress              datatypes.JSONType[Progress]     `gorm:"column:progress" json:"progress"`
	IsCompleted           bool                             `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	CompletedAt           *time.Time                       `gorm:"column:completed_at" json:"completed_at"`
	LastUpdated           time.Time                        `gorm:"not null;column:last_updated" json:"last_updated"`
	CreatedAt             time.Time                        `gorm:"not null;default:now()" json:"created_at"`
}

func (ChallengeProgress) TableName() string {
	return "challenge_progress"
}
