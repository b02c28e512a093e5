// Package memory implementa notifications.Broker dentro del proceso.
// Entrega sincrónica, para desarrollo y tests.
package memory

import (
	"context"
	"sync"

	"asthmacare/internal/domain/notifications"
)

type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func(notifications.Notification) // ownerUserID -> id -> fn
}

func NewBroker() *Broker {
	return &Broker{subs: map[string]map[int]func(notifications.Notification){}}
}

func (b *Broker) Publish(_ context.Context, n notifications.Notification) error {
	b.mu.RLock()
	fns := make([]func(notifications.Notification), 0, len(b.subs[n.OwnerUserID]))
	for _, fn := range b.subs[n.OwnerUserID] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(n)
	}
	return nil
}

type subscription struct {
	cancel func()
	once   sync.Once
}

func (s *subscription) Cancel() {
	s.once.Do(s.cancel)
}

func (b *Broker) Subscribe(_ context.Context, ownerUserID string, fn func(notifications.Notification)) (notifications.Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.subs[ownerUserID] == nil {
		b.subs[ownerUserID] = map[int]func(notifications.Notification){}
	}
	b.subs[ownerUserID][id] = fn

	return &subscription{cancel: func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[ownerUserID], id)
	}}, nil
}
