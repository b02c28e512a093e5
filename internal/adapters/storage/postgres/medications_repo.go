package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"asthmacare/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, owner_user_id, name, dosage, frequency, kind, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		m.ID,
		m.OwnerUserID,
		m.Name,
		m.Dosage,
		m.Frequency,
		string(m.Kind),
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MedicationsRepo) GetByID(ctx context.Context, ownerUserID, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, name, dosage, frequency, kind, notes,
			created_at, updated_at
		FROM medications
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, id)

	var (
		m    medications.Medication
		kind string
	)
	err := row.Scan(
		&m.ID,
		&m.OwnerUserID,
		&m.Name,
		&m.Dosage,
		&m.Frequency,
		&kind,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return medications.Medication{}, ErrNotFound
	}
	if err != nil {
		return medications.Medication{}, err
	}
	m.Kind = medications.Kind(kind)
	return m, nil
}

func (r *MedicationsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id, name, dosage, frequency, kind, notes,
			created_at, updated_at
		FROM medications
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []medications.Medication
	for rows.Next() {
		var (
			m    medications.Medication
			kind string
		)
		if err := rows.Scan(
			&m.ID,
			&m.OwnerUserID,
			&m.Name,
			&m.Dosage,
			&m.Frequency,
			&kind,
			&m.Notes,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		m.Kind = medications.Kind(kind)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET name = $3, dosage = $4, frequency = $5, kind = $6, notes = $7, updated_at = $8
		WHERE owner_user_id = $1 AND id = $2
	`,
		m.OwnerUserID,
		m.ID,
		m.Name,
		m.Dosage,
		m.Frequency,
		string(m.Kind),
		m.Notes,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) Delete(ctx context.Context, ownerUserID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM medications
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) CreateEvent(ctx context.Context, e medications.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medication_events (
			id, owner_user_id, medication_id, name, dosage, taken_at, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		e.ID,
		e.OwnerUserID,
		nullString(e.MedicationID),
		e.Name,
		e.Dosage,
		e.TakenAt,
		e.CreatedAt,
	)
	return err
}

func (r *MedicationsRepo) ListEventsByOwner(ctx context.Context, ownerUserID string, filter medications.EventFilter) ([]medications.Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id, medication_id, name, dosage, taken_at, created_at
		FROM medication_events
		WHERE owner_user_id = $1
		  AND ($2::timestamptz IS NULL OR taken_at >= $2)
		  AND ($3::timestamptz IS NULL OR taken_at <= $3)
		ORDER BY taken_at DESC
		LIMIT $4
	`, ownerUserID, toNullTime(filter.From), toNullTime(filter.To), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []medications.Event
	for rows.Next() {
		var (
			e     medications.Event
			medID sql.NullString
		)
		if err := rows.Scan(
			&e.ID,
			&e.OwnerUserID,
			&medID,
			&e.Name,
			&e.Dosage,
			&e.TakenAt,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.MedicationID = medID.String
		out = append(out, e)
	}
	return out, rows.Err()
}
