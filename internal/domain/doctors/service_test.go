package doctors

import (
	"context"
	"testing"
	"time"
)

type fakeRepo struct {
	byOwner map[string]DoctorProfile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byOwner: map[string]DoctorProfile{}}
}

func (f *fakeRepo) Upsert(_ context.Context, d DoctorProfile) error {
	f.byOwner[d.OwnerUserID] = d
	return nil
}

func (f *fakeRepo) GetByOwner(_ context.Context, ownerUserID string) (DoctorProfile, error) {
	d, ok := f.byOwner[ownerUserID]
	if !ok {
		return DoctorProfile{}, ErrNotFound
	}
	return d, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (DoctorProfile, error) {
	for _, d := range f.byOwner {
		if d.ID == id {
			return d, nil
		}
	}
	return DoctorProfile{}, ErrNotFound
}

func (f *fakeRepo) List(_ context.Context, filter ListFilter) ([]DoctorProfile, error) {
	var out []DoctorProfile
	for _, d := range f.byOwner {
		if filter.Specialty != "" && d.Specialty != filter.Specialty {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeRepo) DeleteByOwner(_ context.Context, ownerUserID string) error {
	if _, ok := f.byOwner[ownerUserID]; !ok {
		return ErrNotFound
	}
	delete(f.byOwner, ownerUserID)
	return nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestUpsertConservaIDYCreatedAt(t *testing.T) {
	svc := newTestService(newFakeRepo())

	first, err := svc.Upsert(context.Background(), "doc-1", UpsertInput{
		FullName: "Dra. Rivas", Specialty: "pulmonology",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	second, err := svc.Upsert(context.Background(), "doc-1", UpsertInput{
		FullName: "Dra. Rivas López", Specialty: "pulmonology",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("ID cambió: %s vs %s", second.ID, first.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("CreatedAt debía conservarse")
	}
	if second.FullName != "Dra. Rivas López" {
		t.Fatalf("FullName = %q", second.FullName)
	}
}

func TestUpsertRequiereNombreYEspecialidad(t *testing.T) {
	svc := newTestService(newFakeRepo())

	if _, err := svc.Upsert(context.Background(), "doc-1", UpsertInput{FullName: "X"}); err == nil {
		t.Fatal("esperaba error por especialidad vacía")
	}
	if _, err := svc.Upsert(context.Background(), "doc-1", UpsertInput{Specialty: "X"}); err == nil {
		t.Fatal("esperaba error por nombre vacío")
	}
}

func TestListFiltraPorEspecialidad(t *testing.T) {
	svc := newTestService(newFakeRepo())

	svc.Upsert(context.Background(), "doc-1", UpsertInput{FullName: "A", Specialty: "pulmonology"})
	svc.Upsert(context.Background(), "doc-2", UpsertInput{FullName: "B", Specialty: "allergy"})

	items, err := svc.List(context.Background(), ListFilter{Specialty: "allergy"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].FullName != "B" {
		t.Fatalf("items = %+v", items)
	}
}
