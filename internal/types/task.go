package types

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index;column:workspace_id" json:"workspace_id"`
	CreatorUID  uuid.UUID  `gorm:"type:uuid;not null;index;column:creator_uid" json:"creator_uid"`
	AssigneeUID *uuid.UUID `gorm:"type:uuid;index;column:assignee_uid" json:"assignee_uid"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	Status      TaskStatus `gorm:"not null;default:'TODO';column:status" json:"status"`
	DueDate     *time.Time `gorm:"column:due_date" json:"due_date"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Task) TableName() string {
	return "task"
}
