package postgres

import (
	"context"
	"database/sql"
	"errors"

	"asthmacare/internal/domain/profiles"

	"github.com/jackc/pgx/v5/pgconn"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (
			id, owner_user_id, full_name, email, date_of_birth,
			asthma_severity, avatar_path, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID,
		p.OwnerUserID,
		p.FullName,
		p.Email,
		toNullTime(p.DateOfBirth),
		p.AsthmaSeverity,
		p.AvatarPath,
		p.CreatedAt,
		p.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return profiles.ErrDuplicate
	}
	return err
}

func (r *ProfilesRepo) GetByOwner(ctx context.Context, ownerUserID string) (profiles.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, full_name, email, date_of_birth,
			asthma_severity, avatar_path, created_at, updated_at
		FROM profiles
		WHERE owner_user_id = $1
	`, ownerUserID)

	var (
		p   profiles.Profile
		dob sql.NullTime
	)
	err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.FullName,
		&p.Email,
		&dob,
		&p.AsthmaSeverity,
		&p.AvatarPath,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	if err != nil {
		return profiles.Profile{}, err
	}
	p.DateOfBirth = fromNullTime(dob)
	return p, nil
}

func (r *ProfilesRepo) Update(ctx context.Context, p profiles.Profile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET full_name = $2, email = $3, date_of_birth = $4,
		    asthma_severity = $5, avatar_path = $6, updated_at = $7
		WHERE owner_user_id = $1
	`,
		p.OwnerUserID,
		p.FullName,
		p.Email,
		toNullTime(p.DateOfBirth),
		p.AsthmaSeverity,
		p.AvatarPath,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return profiles.ErrNotFound
	}
	return nil
}

func (r *ProfilesRepo) Delete(ctx context.Context, ownerUserID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM profiles WHERE owner_user_id = $1
	`, ownerUserID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return profiles.ErrNotFound
	}
	return nil
}
