// Package redis implementa notifications.Broker sobre Redis pub/sub.
// Un canal por usuario: las instancias del API comparten el bus sin
// coordinación extra.
package redis

import (
	"context"
	"encoding/json"
	"sync"

	"asthmacare/internal/domain/notifications"
	"asthmacare/internal/platform/logger"

	goredis "github.com/redis/go-redis/v9"
)

const channelPrefix = "notifications:user:"

type Broker struct {
	rdb *goredis.Client
	log logger.Logger
}

func NewBroker(rdb *goredis.Client, log logger.Logger) *Broker {
	return &Broker{rdb: rdb, log: log}
}

func (b *Broker) Publish(ctx context.Context, n notifications.Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, channelPrefix+n.OwnerUserID, raw).Err()
}

type subscription struct {
	pubsub *goredis.PubSub
	done   chan struct{}
	once   sync.Once
}

func (s *subscription) Cancel() {
	s.once.Do(func() {
		close(s.done)
		_ = s.pubsub.Close()
	})
}

func (b *Broker) Subscribe(ctx context.Context, ownerUserID string, fn func(notifications.Notification)) (notifications.Subscription, error) {
	pubsub := b.rdb.Subscribe(ctx, channelPrefix+ownerUserID)

	// confirma la suscripción antes de devolver el handle
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	sub := &subscription{pubsub: pubsub, done: make(chan struct{})}

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-sub.done:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var n notifications.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
					b.log.Warn("notifications broker: bad payload", map[string]any{
						"channel": msg.Channel,
						"err":     err.Error(),
					})
					continue
				}
				fn(n)
			}
		}
	}()

	return sub, nil
}
