package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"asthmacare/internal/domain/doctors"
)

type DoctorsRepo struct {
	db *sql.DB
}

func NewDoctorsRepo(db *sql.DB) *DoctorsRepo {
	return &DoctorsRepo{db: db}
}

func (r *DoctorsRepo) Upsert(ctx context.Context, d doctors.DoctorProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO doctor_profiles (
			id, owner_user_id, full_name, specialty, clinic_name,
			phone, email, bio, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (owner_user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			specialty = EXCLUDED.specialty,
			clinic_name = EXCLUDED.clinic_name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			bio = EXCLUDED.bio,
			updated_at = EXCLUDED.updated_at
	`,
		d.ID,
		d.OwnerUserID,
		d.FullName,
		d.Specialty,
		d.ClinicName,
		d.Phone,
		d.Email,
		d.Bio,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

func (r *DoctorsRepo) GetByOwner(ctx context.Context, ownerUserID string) (doctors.DoctorProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, full_name, specialty, clinic_name,
			phone, email, bio, created_at, updated_at
		FROM doctor_profiles
		WHERE owner_user_id = $1
	`, ownerUserID)
	return scanDoctor(row.Scan)
}

func (r *DoctorsRepo) GetByID(ctx context.Context, id string) (doctors.DoctorProfile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return doctors.DoctorProfile{}, doctors.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, full_name, specialty, clinic_name,
			phone, email, bio, created_at, updated_at
		FROM doctor_profiles
		WHERE id = $1
	`, id)
	return scanDoctor(row.Scan)
}

func (r *DoctorsRepo) List(ctx context.Context, filter doctors.ListFilter) ([]doctors.DoctorProfile, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id, full_name, specialty, clinic_name,
			phone, email, bio, created_at, updated_at
		FROM doctor_profiles
		WHERE ($1 = '' OR specialty = $1)
		ORDER BY full_name ASC
		LIMIT $2
	`, filter.Specialty, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []doctors.DoctorProfile
	for rows.Next() {
		d, err := scanDoctor(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DoctorsRepo) DeleteByOwner(ctx context.Context, ownerUserID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM doctor_profiles WHERE owner_user_id = $1
	`, ownerUserID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return doctors.ErrNotFound
	}
	return nil
}

func scanDoctor(scan func(dest ...any) error) (doctors.DoctorProfile, error) {
	var d doctors.DoctorProfile
	err := scan(
		&d.ID,
		&d.OwnerUserID,
		&d.FullName,
		&d.Specialty,
		&d.ClinicName,
		&d.Phone,
		&d.Email,
		&d.Bio,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return doctors.DoctorProfile{}, doctors.ErrNotFound
	}
	if err != nil {
		return doctors.DoctorProfile{}, err
	}
	return d, nil
}
