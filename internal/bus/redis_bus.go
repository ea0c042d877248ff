package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/focusgrove/focusgrove-backend/internal/events"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
)

type redisBus struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func NewRedisBus(log *logger.Logger) (Bus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_CHANNEL_PREFIX"))
	if prefix == "" {
		prefix = "facts"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisBus{
		log:    log.With("service", "RedisFactBus"),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

func (b *redisBus) channel(topic string) string {
	return b.prefix + ":" + topic
}

func (b *redisBus) Publish(ctx context.Context, topic string, env events.Envelope) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis fact bus not initialized")
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel(topic), raw).Err()
}

func (b *redisBus) StartForwarder(ctx context.Context, topic string, onMsg func(env events.Envelope)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis fact bus not initialized")
	}
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel(topic))

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var env events.Envelope
				if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
					b.log.Warn("bad redis fact payload", "topic", topic, "error", err)
					continue
				}
				onMsg(env)
			}
		}
	}()

	return nil
}

func (b *redisBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
