package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	ID           uuid.UUID
	DealershipID uuid.UUID
	UserID       *uuid.UUID
	Type         string
	Description  string
	CreatedAt    time.Time
}

type CreateActivityParams struct {
	DealershipID uuid.UUID
	UserID       *uuid.UUID
	Type         string
	Description  string
}

// CreateActivity appends to the dealership's activity log. Activities are
// never updated or deleted outside a dealership cascade delete.
func (r *Repository) CreateActivity(ctx context.Context, params CreateActivityParams) (Activity, error) {
	return r.createActivity(ctx, r.pool, params)
}

func (r *Repository) createActivity(ctx context.Context, q rowQuerier, params CreateActivityParams) (Activity, error) {
	var a Activity
	err := q.QueryRow(ctx, `
		INSERT INTO activities (dealership_id, user_id, type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, dealership_id, user_id, type, description, created_at
	`, params.DealershipID, params.UserID, params.Type, params.Description).Scan(
		&a.ID, &a.DealershipID, &a.UserID, &a.Type, &a.Description, &a.CreatedAt,
	)
	if err != nil {
		return Activity{}, err
	}
	return a, nil
}

func (r *Repository) ListActivities(ctx context.Context, dealershipID uuid.UUID) ([]Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, dealership_id, user_id, type, description, created_at
		FROM activities
		WHERE dealership_id = $1
		ORDER BY created_at DESC
	`, dealershipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.DealershipID, &a.UserID, &a.Type, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// ImportRowParams is the atomic unit of a CSV import row: the dealership,
// an optional primary contact, and the audit activity.
type ImportRowParams struct {
	Dealership CreateDealershipParams
	Contact    *CreateContactParams
	ImportedBy uuid.UUID
}

// CreateImportRow creates the dealership, contact and activity in one
// transaction so a failing row leaves nothing behind.
func (r *Repository) CreateImportRow(ctx context.Context, params ImportRowParams) (Dealership, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Dealership{}, err
	}
	defer tx.Rollback(ctx)

	dealership, err := r.create(ctx, tx, params.Dealership)
	if err != nil {
		return Dealership{}, err
	}

	if params.Contact != nil {
		contact := *params.Contact
		contact.DealershipID = dealership.ID
		contact.IsPrimary = true
		if _, err := r.createContact(ctx, tx, contact); err != nil {
			return Dealership{}, err
		}
	}

	importedBy := params.ImportedBy
	if _, err := r.createActivity(ctx, tx, CreateActivityParams{
		DealershipID: dealership.ID,
		UserID:       &importedBy,
		Type:         "IMPORT",
		Description:  "Imported from CSV",
	}); err != nil {
		return Dealership{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Dealership{}, err
	}
	return dealership, nil
}
