package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"asthmacare/internal/domain/contacts"
)

type ContactsRepo struct {
	db *sql.DB
}

func NewContactsRepo(db *sql.DB) *ContactsRepo {
	return &ContactsRepo{db: db}
}

func (r *ContactsRepo) Create(ctx context.Context, c contacts.EmergencyContact) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO emergency_contacts (
			id, owner_user_id, name, phone, relationship, is_primary,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		c.ID,
		c.OwnerUserID,
		c.Name,
		c.Phone,
		c.Relationship,
		c.IsPrimary,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *ContactsRepo) GetByID(ctx context.Context, ownerUserID, id string) (contacts.EmergencyContact, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return contacts.EmergencyContact{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, name, phone, relationship, is_primary,
			created_at, updated_at
		FROM emergency_contacts
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, id)

	var c contacts.EmergencyContact
	err := row.Scan(
		&c.ID,
		&c.OwnerUserID,
		&c.Name,
		&c.Phone,
		&c.Relationship,
		&c.IsPrimary,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return contacts.EmergencyContact{}, ErrNotFound
	}
	if err != nil {
		return contacts.EmergencyContact{}, err
	}
	return c, nil
}

func (r *ContactsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]contacts.EmergencyContact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id, name, phone, relationship, is_primary,
			created_at, updated_at
		FROM emergency_contacts
		WHERE owner_user_id = $1
		ORDER BY is_primary DESC, created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []contacts.EmergencyContact
	for rows.Next() {
		var c contacts.EmergencyContact
		if err := rows.Scan(
			&c.ID,
			&c.OwnerUserID,
			&c.Name,
			&c.Phone,
			&c.Relationship,
			&c.IsPrimary,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ContactsRepo) Update(ctx context.Context, c contacts.EmergencyContact) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE emergency_contacts
		SET name = $3, phone = $4, relationship = $5, is_primary = $6, updated_at = $7
		WHERE owner_user_id = $1 AND id = $2
	`,
		c.OwnerUserID,
		c.ID,
		c.Name,
		c.Phone,
		c.Relationship,
		c.IsPrimary,
		c.UpdatedAt,
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

func (r *ContactsRepo) Delete(ctx context.Context, ownerUserID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM emergency_contacts
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

func (r *ContactsRepo) ClearPrimary(ctx context.Context, ownerUserID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE emergency_contacts
		SET is_primary = FALSE
		WHERE owner_user_id = $1 AND is_primary = TRUE
	`, ownerUserID)
	return err
}
