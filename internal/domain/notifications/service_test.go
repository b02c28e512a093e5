package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"asthmacare/internal/platform/logger"
)

type fakeRepo struct {
	items     []Notification
	createErr error
}

func (f *fakeRepo) Create(_ context.Context, n Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.items = append(f.items, n)
	return nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerUserID string, onlyUnread bool, limit int) ([]Notification, error) {
	var out []Notification
	for _, n := range f.items {
		if n.OwnerUserID != ownerUserID {
			continue
		}
		if onlyUnread && n.Read {
			continue
		}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkRead(_ context.Context, ownerUserID, id string) error {
	for i, n := range f.items {
		if n.ID == id && n.OwnerUserID == ownerUserID {
			f.items[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

type fakeBroker struct {
	published []Notification
	err       error
}

func (f *fakeBroker) Publish(_ context.Context, n Notification) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, n)
	return nil
}

func (f *fakeBroker) Subscribe(_ context.Context, _ string, _ func(Notification)) (Subscription, error) {
	return nil, errors.New("not implemented")
}

func newTestService(repo Repository, broker Broker) *Service {
	svc := NewService(repo, broker, logger.Nop())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestNotifyPersisteYPublica(t *testing.T) {
	repo := &fakeRepo{}
	broker := &fakeBroker{}
	svc := newTestService(repo, broker)

	err := svc.Notify(context.Background(), "user-1", "appointment_cancelled", "Appointment cancelled", "details")
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if len(repo.items) != 1 {
		t.Fatalf("items = %d", len(repo.items))
	}
	if len(broker.published) != 1 || broker.published[0].ID != repo.items[0].ID {
		t.Fatalf("published = %+v", broker.published)
	}
}

func TestNotifyFalloDePublishNoFatal(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeBroker{err: errors.New("redis down")})

	if err := svc.Notify(context.Background(), "user-1", "k", "Title", ""); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatal("la fila debía persistirse igual")
	}
}

func TestNotifyFalloDePersistenciaSiEsFatal(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("db down")}
	broker := &fakeBroker{}
	svc := newTestService(repo, broker)

	if err := svc.Notify(context.Background(), "user-1", "k", "Title", ""); err == nil {
		t.Fatal("esperaba error")
	}
	if len(broker.published) != 0 {
		t.Fatal("no debía publicarse sin persistir")
	}
}

func TestListSoloNoLeidas(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, nil)

	svc.Notify(context.Background(), "user-1", "k", "uno", "")
	svc.Notify(context.Background(), "user-1", "k", "dos", "")

	all, _ := svc.ListByOwner(context.Background(), "user-1", false, 10)
	if err := svc.MarkRead(context.Background(), "user-1", all[0].ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	unread, _ := svc.ListByOwner(context.Background(), "user-1", true, 10)
	if len(unread) != 1 || unread[0].ID == all[0].ID {
		t.Fatalf("unread = %+v", unread)
	}
}

func TestMarkReadScopedPorOwner(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, nil)

	svc.Notify(context.Background(), "user-1", "k", "uno", "")
	all, _ := svc.ListByOwner(context.Background(), "user-1", false, 10)

	if err := svc.MarkRead(context.Background(), "otro", all[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, esperaba ErrNotFound", err)
	}
}
