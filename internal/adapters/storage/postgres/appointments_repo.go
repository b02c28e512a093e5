package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"asthmacare/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, owner_user_id, doctor_id, doctor_name,
			scheduled_at, reason, notes, status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		a.ID,
		a.OwnerUserID,
		nullString(a.DoctorID),
		a.DoctorName,
		a.ScheduledAt,
		a.Reason,
		a.Notes,
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, ownerUserID, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, doctor_id, doctor_name,
			scheduled_at, reason, notes, status,
			created_at, updated_at
		FROM appointments
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, id)

	a, err := scanAppointment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return appointments.Appointment{}, ErrNotFound
	}
	if err != nil {
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) ListByOwner(ctx context.Context, ownerUserID string, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT
			id, owner_user_id, doctor_id, doctor_name,
			scheduled_at, reason, notes, status,
			created_at, updated_at
		FROM appointments
		WHERE owner_user_id = $1
		  AND ($2::timestamptz IS NULL OR scheduled_at >= $2)
		  AND ($3::timestamptz IS NULL OR scheduled_at <= $3)
	`
	args := []any{ownerUserID, toNullTime(filter.From), toNullTime(filter.To)}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			args = append(args, string(st))
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		query += " AND status IN (" + strings.Join(placeholders, ",") + ")"
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY scheduled_at ASC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []appointments.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET doctor_id = $3, doctor_name = $4, scheduled_at = $5,
		    reason = $6, notes = $7, status = $8, updated_at = $9
		WHERE owner_user_id = $1 AND id = $2
	`,
		a.OwnerUserID,
		a.ID,
		nullString(a.DoctorID),
		a.DoctorName,
		a.ScheduledAt,
		a.Reason,
		a.Notes,
		string(a.Status),
		a.UpdatedAt,
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

func scanAppointment(scan func(dest ...any) error) (appointments.Appointment, error) {
	var (
		a        appointments.Appointment
		doctorID sql.NullString
		status   string
	)
	err := scan(
		&a.ID,
		&a.OwnerUserID,
		&doctorID,
		&a.DoctorName,
		&a.ScheduledAt,
		&a.Reason,
		&a.Notes,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return appointments.Appointment{}, err
	}
	a.DoctorID = doctorID.String
	a.Status = appointments.Status(status)
	return a, nil
}
