package types

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name       string     `gorm:"not null;column:name" json:"name"`
	OwnerUID   uuid.UUID  `gorm:"type:uuid;not null;index;column:owner_uid" json:"owner_uid"`
	TeamID     *uuid.UUID `gorm:"type:uuid;index;column:team_id" json:"team_id"`
	IsPersonal bool       `gorm:"not null;default:false;column:is_personal" json:"is_personal"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Workspace) TableName() string {
	return "workspace"
}
