package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/focusgrove/focusgrove-backend/internal/types"
)

func TestNewEnvelopeRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	data := TaskStatusUpdatedData{
		TaskID:      uuid.New(),
		WorkspaceID: uuid.New(),
		UserID:      uuid.New(),
		NewStatus:   types.TaskStatusDone,
	}

	env, err := NewEnvelope(TypeTaskStatusUpdated, data, at)
	if err != nil {
		t.Fatalf("new envelope: %v", err)
	}
	if env.EventType != TypeTaskStatusUpdated {
		t.Errorf("event type = %s", env.EventType)
	}
	if !env.EventTimestamp.Equal(at) {
		t.Errorf("timestamp = %v, want %v", env.EventTimestamp, at)
	}
	if env.Attempt != 0 {
		t.Errorf("fresh envelope attempt = %d, want 0", env.Attempt)
	}

	var decoded TaskStatusUpdatedData
	if err := json.Unmarshal(env.Data, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.TaskID != data.TaskID || decoded.NewStatus != types.TaskStatusDone {
		t.Errorf("payload round trip mismatch: %+v", decoded)
	}
}

func TestTaskStatusUpdatedValidate(t *testing.T) {
	valid := TaskStatusUpdatedData{
		TaskID:    uuid.New(),
		UserID:    uuid.New(),
		NewStatus: types.TaskStatusDone,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*TaskStatusUpdatedData)
	}{
		{"missing task id", func(d *TaskStatusUpdatedData) { d.TaskID = uuid.Nil }},
		{"missing user id", func(d *TaskStatusUpdatedData) { d.UserID = uuid.Nil }},
		{"bogus status", func(d *TaskStatusUpdatedData) { d.NewStatus = "SHIPPED" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := valid
			tt.mutate(&data)
			if err := data.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPomodoroPhaseCompletedValidate(t *testing.T) {
	valid := PomodoroPhaseCompletedData{
		SessionID:             uuid.New(),
		UserID:                uuid.New(),
		TaskID:                uuid.New(),
		PhaseType:             types.PomodoroPhaseFocus,
		ActualDurationSeconds: 600,
		Completed:             true,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*PomodoroPhaseCompletedData)
	}{
		{"missing session id", func(d *PomodoroPhaseCompletedData) { d.SessionID = uuid.Nil }},
		{"missing user id", func(d *PomodoroPhaseCompletedData) { d.UserID = uuid.Nil }},
		{"missing task id", func(d *PomodoroPhaseCompletedData) { d.TaskID = uuid.Nil }},
		{"negative duration", func(d *PomodoroPhaseCompletedData) { d.ActualDurationSeconds = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := valid
			tt.mutate(&data)
			if err := data.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
