package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"asthmacare/internal/domain/symptoms"
)

type SymptomsRepo struct {
	db *sql.DB
}

func NewSymptomsRepo(db *sql.DB) *SymptomsRepo {
	return &SymptomsRepo{db: db}
}

func (r *SymptomsRepo) Create(ctx context.Context, e symptoms.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO symptom_entries (
			id, owner_user_id, severity, recorded_at,
			triggers, medications_used, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID,
		e.OwnerUserID,
		e.Severity,
		e.RecordedAt,
		stringsToJSON(e.Triggers),
		stringsToJSON(e.MedicationsUsed),
		e.Notes,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *SymptomsRepo) GetByID(ctx context.Context, ownerUserID, id string) (symptoms.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return symptoms.Entry{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, severity, recorded_at,
			triggers, medications_used, notes,
			created_at, updated_at
		FROM symptom_entries
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, id)

	e, err := scanSymptomEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return symptoms.Entry{}, ErrNotFound
	}
	if err != nil {
		return symptoms.Entry{}, err
	}
	return e, nil
}

func (r *SymptomsRepo) ListByOwner(ctx context.Context, ownerUserID string, filter symptoms.ListFilter) ([]symptoms.Entry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id, severity, recorded_at,
			triggers, medications_used, notes,
			created_at, updated_at
		FROM symptom_entries
		WHERE owner_user_id = $1
		  AND ($2::timestamptz IS NULL OR recorded_at >= $2)
		  AND ($3::timestamptz IS NULL OR recorded_at <= $3)
		ORDER BY recorded_at DESC
		LIMIT $4
	`, ownerUserID, toNullTime(filter.From), toNullTime(filter.To), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []symptoms.Entry
	for rows.Next() {
		e, err := scanSymptomEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SymptomsRepo) UpdateNotes(ctx context.Context, ownerUserID, id, notes string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE symptom_entries
		SET notes = $3, updated_at = $4
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, id, notes, updatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSymptomEntry(scan func(dest ...any) error) (symptoms.Entry, error) {
	var (
		e        symptoms.Entry
		triggers []byte
		meds     []byte
	)
	err := scan(
		&e.ID,
		&e.OwnerUserID,
		&e.Severity,
		&e.RecordedAt,
		&triggers,
		&meds,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return symptoms.Entry{}, err
	}
	e.Triggers = jsonToStrings(triggers)
	e.MedicationsUsed = jsonToStrings(meds)
	return e, nil
}
