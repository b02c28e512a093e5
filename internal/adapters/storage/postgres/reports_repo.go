package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"asthmacare/internal/domain/reports"
)

type ReportsRepo struct {
	db *sql.DB
}

func NewReportsRepo(db *sql.DB) *ReportsRepo {
	return &ReportsRepo{db: db}
}

func (r *ReportsRepo) Create(ctx context.Context, rep reports.HealthReport) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO health_reports (
			id, owner_user_id, score, level, recommendations,
			generated_at, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		rep.ID,
		rep.OwnerUserID,
		rep.Score,
		string(rep.Level),
		stringsToJSON(rep.Recommendations),
		rep.GeneratedAt,
		rep.CreatedAt,
	)
	return err
}

func (r *ReportsRepo) GetByID(ctx context.Context, ownerUserID, id string) (reports.HealthReport, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reports.HealthReport{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, score, level, recommendations,
			generated_at, created_at
		FROM health_reports
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, id)

	rep, err := scanHealthReport(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return reports.HealthReport{}, ErrNotFound
	}
	if err != nil {
		return reports.HealthReport{}, err
	}
	return rep, nil
}

func (r *ReportsRepo) ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]reports.HealthReport, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id, score, level, recommendations,
			generated_at, created_at
		FROM health_reports
		WHERE owner_user_id = $1
		ORDER BY generated_at DESC
		LIMIT $2
	`, ownerUserID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reports.HealthReport
	for rows.Next() {
		rep, err := scanHealthReport(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func scanHealthReport(scan func(dest ...any) error) (reports.HealthReport, error) {
	var (
		rep   reports.HealthReport
		level string
		recs  []byte
	)
	err := scan(
		&rep.ID,
		&rep.OwnerUserID,
		&rep.Score,
		&level,
		&recs,
		&rep.GeneratedAt,
		&rep.CreatedAt,
	)
	if err != nil {
		return reports.HealthReport{}, err
	}
	rep.Level = reports.ControlLevel(level)
	rep.Recommendations = jsonToStrings(recs)
	return rep, nil
}
