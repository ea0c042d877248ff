package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/focusgrove/focusgrove-backend/internal/types"
)

// Topics, one per domain area.
const (
	TopicUserEvents     = "user-events"
	TopicTaskEvents     = "task-events"
	TopicPomodoroEvents = "pomodoro-events"
)

// Event type discriminators carried in the envelope.
const (
	TypeUserCreated            = "USER_CREATED"
	TypeTaskStatusUpdated      = "TASK_STATUS_UPDATED"
	TypePomodoroPhaseCompleted = "POMODORO_PHASE_COMPLETED"
)

// Envelope is the wire shape every published fact travels in.
type Envelope struct {
	EventType      string          `json:"eventType"`
	Data           json.RawMessage `json:"data"`
	EventTimestamp time.Time       `json:"eventTimestamp"`
	// Attempt counts deliveries of this envelope; the consumer bumps it on
	// requeue so redelivery is bounded.
	Attempt int `json:"attempt,omitempty"`
}

func NewEnvelope(eventType string, data interface{}, at time.Time) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Envelope{EventType: eventType, Data: raw, EventTimestamp: at}, nil
}

type UserCreatedData struct {
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
}

func (d UserCreatedData) Validate() error {
	if d.UserID == uuid.Nil {
		return fmt.Errorf("userId is required")
	}
	return nil
}

type TaskStatusUpdatedData struct {
	TaskID      uuid.UUID        `json:"taskId"`
	WorkspaceID uuid.UUID        `json:"workspaceId"`
	UserID      uuid.UUID        `json:"userId"`
	NewStatus   types.TaskStatus `json:"newStatus"`
	OldStatus   types.TaskStatus `json:"oldStatus,omitempty"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	TaskTitle   string           `json:"taskTitle,omitempty"`
}

func (d TaskStatusUpdatedData) Validate() error {
	if d.TaskID == uuid.Nil {
		return fmt.Errorf("taskId is required")
	}
	if d.UserID == uuid.Nil {
		return fmt.Errorf("userId is required")
	}
	if !d.NewStatus.Valid() {
		return fmt.Errorf("newStatus %q is not a task status", d.NewStatus)
	}
	return nil
}

type PomodoroPhaseCompletedData struct {
	SessionID              uuid.UUID               `json:"sessionId"`
	UserID                 uuid.UUID               `json:"userId"`
	TaskID                 uuid.UUID               `json:"taskId"`
	WorkspaceID            uuid.UUID               `json:"workspaceId"`
	PhaseType              types.PomodoroPhaseType `json:"phaseType"`
	PlannedDurationSeconds int64                   `json:"plannedDurationSeconds"`
	ActualDurationSeconds  int64                   `json:"actualDurationSeconds"`
	Interruptions          int64                   `json:"interruptions"`
	Completed              bool                    `json:"completed"`
	CompletionTime         time.Time               `json:"completionTime"`
}

func (d PomodoroPhaseCompletedData) Validate() error {
	if d.SessionID == uuid.Nil {
		return fmt.Errorf("sessionId is required")
	}
	if d.UserID == uuid.Nil {
		return fmt.Errorf("userId is required")
	}
	if d.TaskID == uuid.Nil {
		return fmt.Errorf("taskId is required")
	}
	if d.ActualDurationSeconds < 0 {
		return fmt.Errorf("actualDurationSeconds must be non-negative")
	}
	return nil
}
