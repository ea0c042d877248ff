package types

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatistics aggregates per-task completion and focus-timer facts.
// WasCompletedOnce is the monotonic guard against double-counting status
// flapping; FirstCompletionTime is immutable once set.
type TaskStatistics struct {
	TaskID                         uuid.UUID  `gorm:"type:uuid;primaryKey;column:task_id" json:"task_id"`
	CompletionTime                 *time.Time `gorm:"column:completion_time" json:"completion_time"`
	WasCompletedOnce               bool       `gorm:"not null;default:false;column:was_completed_once" json:"was_completed_once"`
	FirstCompletionTime            *time.Time `gorm:"column:first_completion_time" json:"first_completion_time"`
	TotalPomodoroFocusSeconds      int64      `gorm:"not null;default:0;column:total_pomodoro_focus_seconds" json:"total_pomodoro_focus_seconds"`
	CompletedPomodoroFocusSessions int64      `gorm:"not null;default:0;column:completed_pomodoro_focus_sessions" json:"completed_pomodoro_focus_sessions"`
	TotalPomodoroInterrupts        int64      `gorm:"not null;default:0;column:total_pomodoro_interrupts" json:"total_pomodoro_interrupts"`
	UpdatedAt                      time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (TaskStatistics) TableName() string {
	return "task_statistics"
}

type GlobalStatistics struct {
	UserID                    uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	TotalTasksCompleted       int64     `gorm:"not null;default:0;column:total_tasks_completed" json:"total_tasks_completed"`
	TotalPomodoroFocusMinutes int64     `gorm:"not null;default:0;column:total_pomodoro_focus_minutes" json:"total_pomodoro_focus_minutes"`
	LastActive                time.Time `gorm:"not null;column:last_active" json:"last_active"`
	CreatedAt                 time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (GlobalStatistics) TableName() string {
	return "global_statistics"
}
