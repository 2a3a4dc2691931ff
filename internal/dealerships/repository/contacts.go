package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID           uuid.UUID
	DealershipID uuid.UUID
	FirstName    string
	LastName     *string
	Email        *string
	Phone        *string
	Position     *string
	IsPrimary    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateContactParams struct {
	DealershipID uuid.UUID
	FirstName    string
	LastName     *string
	Email        *string
	Phone        *string
	Position     *string
	IsPrimary    bool
}

const contactColumns = `id, dealership_id, first_name, last_name, email, phone, position,
	is_primary, created_at, updated_at`

func (r *Repository) CreateContact(ctx context.Context, params CreateContactParams) (Contact, error) {
	return r.createContact(ctx, r.pool, params)
}

func (r *Repository) createContact(ctx context.Context, q rowQuerier, params CreateContactParams) (Contact, error) {
	var c Contact
	err := q.QueryRow(ctx, `
		INSERT INTO contacts (dealership_id, first_name, last_name, email, phone, position, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+contactColumns,
		params.DealershipID, params.FirstName, params.LastName, params.Email,
		params.Phone, params.Position, params.IsPrimary,
	).Scan(
		&c.ID, &c.DealershipID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Position, &c.IsPrimary, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (r *Repository) ListContacts(ctx context.Context, dealershipID uuid.UUID) ([]Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+contactColumns+` FROM contacts
		WHERE dealership_id = $1
		ORDER BY is_primary DESC, created_at ASC
	`, dealershipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(
			&c.ID, &c.DealershipID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
			&c.Position, &c.IsPrimary, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
