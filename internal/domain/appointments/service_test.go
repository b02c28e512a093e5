package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"asthmacare/internal/platform/logger"
)

type fakeRepo struct {
	items map[string]Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]Appointment{}}
}

func (f *fakeRepo) Create(_ context.Context, a Appointment) error {
	f.items[a.ID] = a
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, ownerUserID, id string) (Appointment, error) {
	a, ok := f.items[id]
	if !ok || a.OwnerUserID != ownerUserID {
		return Appointment{}, errors.New("not found")
	}
	return a, nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerUserID string, _ ListFilter) ([]Appointment, error) {
	var out []Appointment
	for _, a := range f.items {
		if a.OwnerUserID == ownerUserID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, a Appointment) error {
	if _, ok := f.items[a.ID]; !ok {
		return errors.New("not found")
	}
	f.items[a.ID] = a
	return nil
}

type fakeNotifier struct {
	calls []string
	err   error
}

func (f *fakeNotifier) Notify(_ context.Context, ownerUserID, kind, _, _ string) error {
	f.calls = append(f.calls, ownerUserID+"/"+kind)
	return f.err
}

func newTestService(repo Repository, n Notifier) *Service {
	svc := NewService(repo, n, logger.Nop())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func mustCreate(t *testing.T, svc *Service, owner string) Appointment {
	t.Helper()
	a, err := svc.Create(context.Background(), owner, CreateInput{
		DoctorName:  "Dra. Rivas",
		ScheduledAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		Reason:      "checkup",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return a
}

func TestCreateStartsPending(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	a := mustCreate(t, svc, "user-1")

	if a.Status != StatusPending {
		t.Fatalf("status = %s, esperaba %s", a.Status, StatusPending)
	}
	if a.ID == "" {
		t.Fatal("esperaba ID generado")
	}
}

func TestConfirmThenComplete(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)
	a := mustCreate(t, svc, "user-1")

	a2, err := svc.Confirm(context.Background(), "user-1", a.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if a2.Status != StatusConfirmed {
		t.Fatalf("status = %s", a2.Status)
	}

	a3, err := svc.Complete(context.Background(), "user-1", a.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if a3.Status != StatusCompleted {
		t.Fatalf("status = %s", a3.Status)
	}
}

func TestCompleteFromPendingRechazado(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)
	a := mustCreate(t, svc, "user-1")

	if _, err := svc.Complete(context.Background(), "user-1", a.ID); !errors.Is(err, ErrBadState) {
		t.Fatalf("err = %v, esperaba ErrBadState", err)
	}
}

func TestCancelledEsFinal(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeNotifier{})
	a := mustCreate(t, svc, "user-1")

	if _, err := svc.Cancel(context.Background(), "user-1", a.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := svc.Confirm(context.Background(), "user-1", a.ID); !errors.Is(err, ErrBadState) {
		t.Fatalf("err = %v, esperaba ErrBadState", err)
	}
}

func TestCancelDespachaNotificacion(t *testing.T) {
	n := &fakeNotifier{}
	svc := newTestService(newFakeRepo(), n)
	a := mustCreate(t, svc, "user-1")

	if _, err := svc.Cancel(context.Background(), "user-1", a.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	if len(n.calls) != 1 || n.calls[0] != "user-1/appointment_cancelled" {
		t.Fatalf("calls = %v", n.calls)
	}
}

func TestCancelNotificacionFallidaNoFatal(t *testing.T) {
	n := &fakeNotifier{err: errors.New("broker down")}
	svc := newTestService(newFakeRepo(), n)
	a := mustCreate(t, svc, "user-1")

	a2, err := svc.Cancel(context.Background(), "user-1", a.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if a2.Status != StatusCancelled {
		t.Fatalf("status = %s", a2.Status)
	}
}

func TestTransitionScopedPorOwner(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)
	a := mustCreate(t, svc, "user-1")

	if _, err := svc.Confirm(context.Background(), "otro", a.ID); err == nil {
		t.Fatal("esperaba error de owner ajeno")
	}
}
