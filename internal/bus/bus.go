package bus

import (
	"context"

	"github.com/focusgrove/focusgrove-backend/internal/events"
)

// Bus carries fact envelopes between publishers and the gamification
// consumer. Delivery is at-least-once; handlers must tolerate replays.
type Bus interface {
	Publish(ctx context.Context, topic string, env events.Envelope) error
	StartForwarder(ctx context.Context, topic string, onMsg func(env events.Envelope)) error
	Close() error
}
