package facts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/bus"
	"github.com/focusgrove/focusgrove-backend/internal/events"
	"github.com/focusgrove/focusgrove-backend/internal/gamification"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/utils"
)

const defaultQueueSize = 256

// Consumer bridges the fact bus and the reward engine. Envelopes arriving on
// the subscribed topics are queued and dispatched by a small worker pool;
// retryable failures are requeued with a bounded attempt count, poison
// envelopes are logged and dropped.
type Consumer struct {
	log         *logger.Logger
	bus         bus.Bus
	engine      *gamification.Engine
	queue       chan events.Envelope
	maxAttempts int
	retryDelay  time.Duration
}

func NewConsumer(baseLog *logger.Logger, factBus bus.Bus, engine *gamification.Engine) *Consumer {
	log := baseLog.With("component", "FactConsumer")
	return &Consumer{
		log:         log,
		bus:         factBus,
		engine:      engine,
		queue:       make(chan events.Envelope, defaultQueueSize),
		maxAttempts: utils.GetEnvAsInt("FACTS_MAX_ATTEMPTS", 5, log),
		retryDelay:  time.Second,
	}
}

// Start subscribes to the fact topics and launches the worker pool. It
// returns once subscriptions are established; workers run until ctx ends.
func (c *Consumer) Start(ctx context.Context) error {
	// The forwarders outlive the startup errgroup, so they take the caller's
	// ctx rather than the group's.
	var g errgroup.Group
	for _, topic := range []string{events.TopicUserEvents, events.TopicTaskEvents, events.TopicPomodoroEvents} {
		topic := topic
		g.Go(func() error {
			if err := c.bus.StartForwarder(ctx, topic, c.enqueue); err != nil {
				return fmt.Errorf("subscribe %s: %w", topic, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	concurrency := utils.GetEnvAsInt("FACTS_CONCURRENCY", 4, c.log)
	if concurrency < 1 {
		concurrency = 1
	}
	c.log.Info("Starting fact consumer pool", "concurrency", concurrency)
	for i := 0; i < concurrency; i++ {
		workerID := i + 1
		go c.runLoop(ctx, workerID)
	}
	return nil
}

func (c *Consumer) enqueue(env events.Envelope) {
	select {
	case c.queue <- env:
	default:
		// Dropping under sustained backpressure beats blocking the bus
		// forwarder; at-least-once upstream delivery will resend.
		c.log.Warn("fact queue full, dropping envelope", "event_type", env.EventType)
	}
}

func (c *Consumer) runLoop(ctx context.Context, workerID int) {
	for {
		select {
		case <-ctx.Done():
			c.log.Info("Fact worker stopped", "worker_id", workerID)
			return
		case env := <-c.queue:
			c.handle(ctx, workerID, env)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, workerID int, env events.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("Fact handler panic",
				"worker_id", workerID,
				"event_type", env.EventType,
				"panic", r)
		}
	}()

	err := c.Dispatch(ctx, env)
	if err == nil {
		return
	}

	if !apierr.IsRetryable(err) {
		c.log.Warn("dropping poison fact",
			"worker_id", workerID,
			"event_type", env.EventType,
			"error", err)
		return
	}

	if env.Attempt+1 >= c.maxAttempts {
		c.log.Error("fact exhausted retries",
			"worker_id", workerID,
			"event_type", env.EventType,
			"attempts", env.Attempt+1,
			"error", err)
		return
	}

	env.Attempt++
	c.log.Warn("fact handling failed, requeueing",
		"worker_id", workerID,
		"event_type", env.EventType,
		"attempt", env.Attempt,
		"error", err)
	go func(env events.Envelope) {
		select {
		case <-ctx.Done():
		case <-time.After(c.retryDelay * time.Duration(env.Attempt)):
			c.enqueue(env)
		}
	}(env)
}

// Dispatch decodes the envelope payload and routes it to the engine handler
// for its event type. Unknown types and malformed payloads are
// invalid-argument errors, which the retry policy treats as poison.
func (c *Consumer) Dispatch(ctx context.Context, env events.Envelope) error {
	switch env.EventType {
	case events.TypeUserCreated:
		var data events.UserCreatedData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return apierr.InvalidArgument(fmt.Errorf("decode %s: %w", env.EventType, err))
		}
		return c.engine.HandleUserCreated(ctx, data)

	case events.TypeTaskStatusUpdated:
		var data events.TaskStatusUpdatedData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return apierr.InvalidArgument(fmt.Errorf("decode %s: %w", env.EventType, err))
		}
		return c.engine.HandleTaskStatusUpdated(ctx, data)

	case events.TypePomodoroPhaseCompleted:
		var data events.PomodoroPhaseCompletedData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return apierr.InvalidArgument(fmt.Errorf("decode %s: %w", env.EventType, err))
		}
		return c.engine.HandlePomodoroPhaseCompleted(ctx, data)

	default:
		return apierr.InvalidArgument(fmt.Errorf("unknown event type %q", env.EventType))
	}
}
