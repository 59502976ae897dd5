package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const eventChannel = "questionbank:events"

// RedisEventBus shares question bank events between server instances. Each
// instance publishes its own changes and relays everything it hears on the
// channel to its local Hub.
type RedisEventBus struct {
	redis   *redis.Client
	channel string
}

func NewRedisEventBus(redis *redis.Client) *RedisEventBus {
	return &RedisEventBus{
		redis:   redis,
		channel: eventChannel,
	}
}

func (b *RedisEventBus) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(Message{Type: event.Type, Payload: event})
	if err != nil {
		return err
	}
	if err := b.redis.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", b.channel, err)
	}
	return nil
}

// Listen relays channel messages to hub until ctx is done.
func (b *RedisEventBus) Listen(ctx context.Context, hub *Hub) error {
	sub := b.redis.Subscribe(ctx, b.channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed before relaying.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}
	logrus.WithField("channel", b.channel).Info("listening for question bank events")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := hub.Broadcast(ctx, []byte(msg.Payload)); err != nil {
				return nil
			}
		}
	}
}
