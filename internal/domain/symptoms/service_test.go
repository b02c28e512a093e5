package symptoms

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	items map[string]Entry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]Entry{}}
}

func (f *fakeRepo) Create(_ context.Context, e Entry) error {
	f.items[e.ID] = e
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, ownerUserID, id string) (Entry, error) {
	e, ok := f.items[id]
	if !ok || e.OwnerUserID != ownerUserID {
		return Entry{}, errors.New("not found")
	}
	return e, nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerUserID string, filter ListFilter) ([]Entry, error) {
	var out []Entry
	for _, e := range f.items {
		if e.OwnerUserID != ownerUserID {
			continue
		}
		if filter.From != nil && e.RecordedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.RecordedAt.After(*filter.To) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeRepo) UpdateNotes(_ context.Context, ownerUserID, id, notes string, updatedAt time.Time) error {
	e, ok := f.items[id]
	if !ok || e.OwnerUserID != ownerUserID {
		return errors.New("not found")
	}
	e.Notes = notes
	e.UpdatedAt = updatedAt
	f.items[id] = e
	return nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestCreateValidaSeveridad(t *testing.T) {
	svc := newTestService(newFakeRepo())

	for _, sev := range []int{0, 6, -1} {
		if _, err := svc.Create(context.Background(), "user-1", CreateInput{Severity: sev}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("severity=%d: err = %v, esperaba ErrInvalidInput", sev, err)
		}
	}

	e, err := svc.Create(context.Background(), "user-1", CreateInput{Severity: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Severity != 5 {
		t.Fatalf("severity = %d", e.Severity)
	}
}

func TestCreateDefaultRecordedAtEsAhora(t *testing.T) {
	svc := newTestService(newFakeRepo())

	e, err := svc.Create(context.Background(), "user-1", CreateInput{Severity: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	want := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if !e.RecordedAt.Equal(want) {
		t.Fatalf("RecordedAt = %v", e.RecordedAt)
	}
}

func TestCreateLimpiaListas(t *testing.T) {
	svc := newTestService(newFakeRepo())

	e, err := svc.Create(context.Background(), "user-1", CreateInput{
		Severity: 3,
		Triggers: []string{" dust ", "dust", "DUST", "", "pollen"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(e.Triggers) != 2 || e.Triggers[0] != "dust" || e.Triggers[1] != "pollen" {
		t.Fatalf("Triggers = %v", e.Triggers)
	}
}

func TestUpdateNotesEsLaUnicaMutacion(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	e, _ := svc.Create(context.Background(), "user-1", CreateInput{
		Severity: 3,
		Notes:    "original",
	})

	updated, err := svc.UpdateNotes(context.Background(), "user-1", e.ID, "  revisado  ")
	if err != nil {
		t.Fatalf("UpdateNotes: %v", err)
	}
	if updated.Notes != "revisado" {
		t.Fatalf("Notes = %q", updated.Notes)
	}
	if updated.Severity != 3 || !updated.RecordedAt.Equal(e.RecordedAt) {
		t.Fatal("los demás campos no debían cambiar")
	}
}

func TestUpdateNotesScopedPorOwner(t *testing.T) {
	svc := newTestService(newFakeRepo())

	e, _ := svc.Create(context.Background(), "user-1", CreateInput{Severity: 3})

	if _, err := svc.UpdateNotes(context.Background(), "otro", e.ID, "x"); err == nil {
		t.Fatal("esperaba error de owner ajeno")
	}
}
