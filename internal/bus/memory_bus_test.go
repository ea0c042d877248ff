package bus

import (
	"context"
	"testing"
	"time"

	"github.com/focusgrove/focusgrove-backend/internal/events"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
)

func newTestBus(t *testing.T) Bus {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewMemoryBus(log)
}

func TestMemoryBusDeliversToSubscribers(t *testing.T) {
	b := newTestBus(t)
	ctx := context.Background()

	var got []events.Envelope
	if err := b.StartForwarder(ctx, "task-events", func(env events.Envelope) {
		got = append(got, env)
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	env := events.Envelope{EventType: "TASK_STATUS_UPDATED", EventTimestamp: time.Now().UTC()}
	if err := b.Publish(ctx, "task-events", env); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 1 || got[0].EventType != "TASK_STATUS_UPDATED" {
		t.Fatalf("delivered = %+v, want one envelope", got)
	}
}

func TestMemoryBusTopicIsolation(t *testing.T) {
	b := newTestBus(t)
	ctx := context.Background()

	delivered := 0
	if err := b.StartForwarder(ctx, "task-events", func(events.Envelope) { delivered++ }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := b.Publish(ctx, "pomodoro-events", events.Envelope{EventType: "POMODORO_PHASE_COMPLETED"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if delivered != 0 {
		t.Errorf("handler saw %d envelopes from another topic", delivered)
	}
}

func TestMemoryBusFanOut(t *testing.T) {
	b := newTestBus(t)
	ctx := context.Background()

	first, second := 0, 0
	_ = b.StartForwarder(ctx, "user-events", func(events.Envelope) { first++ })
	_ = b.StartForwarder(ctx, "user-events", func(events.Envelope) { second++ })

	if err := b.Publish(ctx, "user-events", events.Envelope{EventType: "USER_CREATED"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if first != 1 || second != 1 {
		t.Errorf("fan-out = (%d, %d), want (1, 1)", first, second)
	}
}

func TestMemoryBusCloseStopsDelivery(t *testing.T) {
	b := newTestBus(t)
	ctx := context.Background()

	delivered := 0
	_ = b.StartForwarder(ctx, "task-events", func(events.Envelope) { delivered++ })
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := b.Publish(ctx, "task-events", events.Envelope{EventType: "TASK_STATUS_UPDATED"}); err != nil {
		t.Fatalf("publish after close: %v", err)
	}
	if delivered != 0 {
		t.Errorf("closed bus delivered %d envelopes", delivered)
	}
}
