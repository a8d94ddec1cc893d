// Package redisx fans realtime deliveries out across server instances over
// Redis pub/sub.
package redisx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"Murmur/internal/core/messages"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel carries every delivery published by any instance
const DefaultChannel = "murmur:deliveries"

// Open connects to addr and checks the server answers
func Open(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Broker implements messages.Dispatcher by publishing deliveries to Redis.
// Run relays every published delivery, including this instance's own, to the
// local dispatcher, so each instance reaches only the sessions it holds.
type Broker struct {
	rdb     *redis.Client
	local   messages.Dispatcher
	channel string
}

// NewBroker creates a broker relaying to local
func NewBroker(rdb *redis.Client, local messages.Dispatcher, channel string) *Broker {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Broker{rdb: rdb, local: local, channel: channel}
}

// Dispatch publishes d to every instance
func (b *Broker) Dispatch(ctx context.Context, d messages.Delivery) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode delivery: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish delivery: %w", err)
	}
	return nil
}

// Run subscribes to the channel and relays deliveries until ctx is cancelled
func (b *Broker) Run(ctx context.Context) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.relay(ctx, msg.Payload)
		}
	}
}

func (b *Broker) relay(ctx context.Context, payload string) {
	var d messages.Delivery
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		slog.Warn("dropping malformed delivery", "channel", b.channel, "error", err)
		return
	}
	if err := b.local.Dispatch(ctx, d); err != nil {
		slog.Warn("failed to relay delivery", "account_id", d.AccountID, "error", err)
	}
}
