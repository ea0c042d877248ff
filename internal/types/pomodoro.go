package types

import (
	"time"

	"github.com/google/uuid"
)

type PomodoroPhaseType string

const (
	PomodoroPhaseFocus      PomodoroPhaseType = "FOCUS"
	PomodoroPhaseShortBreak PomodoroPhaseType = "SHORT_BREAK"
	PomodoroPhaseLongBreak  PomodoroPhaseType = "LONG_BREAK"
)

// PomodoroSession is one timer phase (focus or break) run against a task.
type PomodoroSession struct {
	ID                     uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID                 uuid.UUID         `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	TaskID                 uuid.UUID         `gorm:"type:uuid;not null;index;column:task_id" json:"task_id"`
	WorkspaceID            uuid.UUID         `gorm:"type:uuid;not null;column:workspace_id" json:"workspace_id"`
	PhaseType              PomodoroPhaseType `gorm:"not null;column:phase_type" json:"phase_type"`
	PlannedDurationSeconds int64             `gorm:"not null;column:planned_duration_seconds" json:"planned_duration_seconds"`
	ActualDurationSeconds  int64             `gorm:"not null;default:0;column:actual_duration_seconds" json:"actual_duration_seconds"`
	Interruptions          int64             `gorm:"not null;default:0;column:interruptions" json:"interruptions"`
	Completed              bool              `gorm:"not null;default:false;column:completed" json:"completed"`
	StartedAt              time.Time         `gorm:"not null;column:started_at" json:"started_at"`
	CompletedAt            *time.Time        `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt              time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt              time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (PomodoroSession) TableName() string {
	return "pomodoro_session"
}
