package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/bus"
	"github.com/focusgrove/focusgrove-backend/internal/events"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type StartPhaseInput struct {
	TaskID                 uuid.UUID               `json:"task_id"`
	WorkspaceID            uuid.UUID               `json:"workspace_id"`
	PhaseType              types.PomodoroPhaseType `json:"phase_type"`
	PlannedDurationSeconds int64                   `json:"planned_duration_seconds"`
}

type CompletePhaseInput struct {
	ActualDurationSeconds int64 `json:"actual_duration_seconds"`
	Interruptions         int64 `json:"interruptions"`
	Completed             bool  `json:"completed"`
}

type PomodoroService interface {
	StartPhase(ctx context.Context, userID uuid.UUID, input StartPhaseInput) (*types.PomodoroSession, error)
	CompletePhase(ctx context.Context, userID, sessionID uuid.UUID, input CompletePhaseInput) (*types.PomodoroSession, error)
	ListSessions(ctx context.Context, userID uuid.UUID, limit int) ([]*types.PomodoroSession, error)
}

type pomodoroService struct {
	db           *gorm.DB
	log          *logger.Logger
	pomodoroRepo repos.PomodoroRepo
	taskRepo     repos.TaskRepo
	factBus      bus.Bus
}

func NewPomodoroService(db *gorm.DB, baseLog *logger.Logger, pomodoroRepo repos.PomodoroRepo, taskRepo repos.TaskRepo, factBus bus.Bus) PomodoroService {
	return &pomodoroService{
		db:           db,
		log:          baseLog.With("service", "PomodoroService"),
		pomodoroRepo: pomodoroRepo,
		taskRepo:     taskRepo,
		factBus:      factBus,
	}
}

func (ps *pomodoroService) StartPhase(ctx context.Context, userID uuid.UUID, input StartPhaseInput) (*types.PomodoroSession, error) {
	switch input.PhaseType {
	case types.PomodoroPhaseFocus, types.PomodoroPhaseShortBreak, types.PomodoroPhaseLongBreak:
	default:
		return nil, apierr.InvalidArgument(fmt.Errorf("invalid phase type %q", input.PhaseType))
	}
	if input.PlannedDurationSeconds <= 0 {
		return nil, apierr.InvalidArgument(fmt.Errorf("planned duration must be positive"))
	}
	task, err := ps.taskRepo.GetByID(ctx, nil, input.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apierr.NotFound(fmt.Errorf("task %s not found", input.TaskID))
	}

	now := time.Now().UTC()
	return ps.pomodoroRepo.Create(ctx, nil, &types.PomodoroSession{
		ID:                     uuid.New(),
		UserID:                 userID,
		TaskID:                 input.TaskID,
		WorkspaceID:            task.WorkspaceID,
		PhaseType:              input.PhaseType,
		PlannedDurationSeconds: input.PlannedDurationSeconds,
		StartedAt:              now,
		CreatedAt:              now,
		UpdatedAt:              now,
	})
}

// CompletePhase finalizes the session row and publishes the phase fact. A
// session can only be completed once.
func (ps *pomodoroService) CompletePhase(ctx context.Context, userID, sessionID uuid.UUID, input CompletePhaseInput) (*types.PomodoroSession, error) {
	if input.ActualDurationSeconds < 0 || input.Interruptions < 0 {
		return nil, apierr.InvalidArgument(fmt.Errorf("durations and interruptions must be non-negative"))
	}
	session, err := ps.pomodoroRepo.GetByID(ctx, nil, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apierr.NotFound(fmt.Errorf("pomodoro session %s not found", sessionID))
	}
	if session.UserID != userID {
		return nil, apierr.PermissionDenied(fmt.Errorf("session belongs to another user"))
	}
	if session.CompletedAt != nil {
		return nil, apierr.PreconditionFailed(fmt.Errorf("session already completed"))
	}

	now := time.Now().UTC()
	session.ActualDurationSeconds = input.ActualDurationSeconds
	session.Interruptions = input.Interruptions
	session.Completed = input.Completed
	session.CompletedAt = &now
	session.UpdatedAt = now
	if err := ps.pomodoroRepo.Save(ctx, nil, session); err != nil {
		return nil, err
	}

	env, err := events.NewEnvelope(events.TypePomodoroPhaseCompleted, events.PomodoroPhaseCompletedData{
		SessionID:              session.ID,
		UserID:                 session.UserID,
		TaskID:                 session.TaskID,
		WorkspaceID:            session.WorkspaceID,
		PhaseType:              session.PhaseType,
		PlannedDurationSeconds: session.PlannedDurationSeconds,
		ActualDurationSeconds:  session.ActualDurationSeconds,
		Interruptions:          session.Interruptions,
		Completed:              session.Completed,
		CompletionTime:         now,
	}, now)
	if err == nil {
		err = ps.factBus.Publish(ctx, events.TopicPomodoroEvents, env)
	}
	if err != nil {
		ps.log.Error("failed to publish pomodoro phase fact", "session_id", session.ID, "error", err)
	}
	return session, nil
}

func (ps *pomodoroService) ListSessions(ctx context.Context, userID uuid.UUID, limit int) ([]*types.PomodoroSession, error) {
	return ps.pomodoroRepo.ListByUser(ctx, nil, userID, limit)
}
