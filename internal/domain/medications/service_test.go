package medications

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	meds   map[string]Medication
	events map[string]Event
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		meds:   map[string]Medication{},
		events: map[string]Event{},
	}
}

func (f *fakeRepo) Create(_ context.Context, m Medication) error {
	f.meds[m.ID] = m
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, ownerUserID, id string) (Medication, error) {
	m, ok := f.meds[id]
	if !ok || m.OwnerUserID != ownerUserID {
		return Medication{}, errors.New("not found")
	}
	return m, nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerUserID string) ([]Medication, error) {
	var out []Medication
	for _, m := range f.meds {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, m Medication) error {
	if _, ok := f.meds[m.ID]; !ok {
		return errors.New("not found")
	}
	f.meds[m.ID] = m
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, ownerUserID, id string) error {
	m, ok := f.meds[id]
	if !ok || m.OwnerUserID != ownerUserID {
		return errors.New("not found")
	}
	delete(f.meds, id)
	return nil
}

func (f *fakeRepo) CreateEvent(_ context.Context, e Event) error {
	f.events[e.ID] = e
	return nil
}

func (f *fakeRepo) ListEventsByOwner(_ context.Context, ownerUserID string, _ EventFilter) ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		if e.OwnerUserID == ownerUserID {
			out = append(out, e)
		}
	}
	return out, nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestCreateValidaKind(t *testing.T) {
	svc := newTestService(newFakeRepo())

	if _, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name: "Salbutamol", Kind: Kind("inventado"),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, esperaba ErrInvalidInput", err)
	}

	m, err := svc.Create(context.Background(), "user-1", CreateInput{Name: "Salbutamol"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Kind != KindOther {
		t.Fatalf("kind = %s, esperaba default other", m.Kind)
	}
}

func TestUpdateParcial(t *testing.T) {
	svc := newTestService(newFakeRepo())

	m, _ := svc.Create(context.Background(), "user-1", CreateInput{
		Name: "Budesonide", Dosage: "200mcg", Frequency: "2x daily", Kind: KindController,
	})

	dosage := "400mcg"
	updated, err := svc.Update(context.Background(), "user-1", m.ID, UpdateInput{Dosage: &dosage})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Dosage != "400mcg" {
		t.Fatalf("Dosage = %q", updated.Dosage)
	}
	if updated.Name != "Budesonide" || updated.Frequency != "2x daily" {
		t.Fatal("los campos no enviados no debían cambiar")
	}
}

func TestLogEventResuelveDesdeMedicamento(t *testing.T) {
	svc := newTestService(newFakeRepo())

	m, _ := svc.Create(context.Background(), "user-1", CreateInput{
		Name: "Salbutamol", Dosage: "100mcg", Kind: KindReliever,
	})

	e, err := svc.LogEvent(context.Background(), "user-1", LogEventInput{MedicationID: m.ID})
	if err != nil {
		t.Fatalf("LogEvent: %v", err)
	}
	if e.Name != "Salbutamol" || e.Dosage != "100mcg" {
		t.Fatalf("event = %+v", e)
	}
}

func TestLogEventAdHocRequiereNombre(t *testing.T) {
	svc := newTestService(newFakeRepo())

	if _, err := svc.LogEvent(context.Background(), "user-1", LogEventInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, esperaba ErrInvalidInput", err)
	}

	e, err := svc.LogEvent(context.Background(), "user-1", LogEventInput{Name: "Prednisone"})
	if err != nil {
		t.Fatalf("LogEvent: %v", err)
	}
	if e.MedicationID != "" || e.Name != "Prednisone" {
		t.Fatalf("event = %+v", e)
	}
}

func TestLogEventMedicamentoAjeno(t *testing.T) {
	svc := newTestService(newFakeRepo())

	m, _ := svc.Create(context.Background(), "user-1", CreateInput{Name: "Salbutamol"})

	if _, err := svc.LogEvent(context.Background(), "otro", LogEventInput{MedicationID: m.ID}); err == nil {
		t.Fatal("esperaba error por medicamento de otro owner")
	}
}
