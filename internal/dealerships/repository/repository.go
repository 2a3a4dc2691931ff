// Package repository provides data access for dealerships, their contacts
// and the account activity log, using raw SQL via pgx.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("dealership not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Dealership struct {
	ID              uuid.UUID
	Name            string
	Status          string
	IsLive          bool
	LiveActivatedAt *time.Time
	MonthlyValue    float64
	AssignedUserID  *uuid.UUID
	TerritoryID     *uuid.UUID
	Address         *string
	City            *string
	State           *string
	ZipCode         *string
	Phone           *string
	Website         *string
	Source          *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const dealershipColumns = `id, name, status, is_live, live_activated_at, monthly_value,
	assigned_user_id, territory_id, address, city, state, zip_code, phone, website, source,
	created_at, updated_at`

func scanDealership(row pgx.Row) (Dealership, error) {
	var d Dealership
	err := row.Scan(
		&d.ID, &d.Name, &d.Status, &d.IsLive, &d.LiveActivatedAt, &d.MonthlyValue,
		&d.AssignedUserID, &d.TerritoryID, &d.Address, &d.City, &d.State, &d.ZipCode,
		&d.Phone, &d.Website, &d.Source, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

type CreateDealershipParams struct {
	Name           string
	Status         string
	MonthlyValue   float64
	AssignedUserID *uuid.UUID
	TerritoryID    *uuid.UUID
	Address        *string
	City           *string
	State          *string
	ZipCode        *string
	Phone          *string
	Website        *string
	Source         *string
}

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so creation can
// run standalone or inside an import row transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *Repository) Create(ctx context.Context, params CreateDealershipParams) (Dealership, error) {
	return r.create(ctx, r.pool, params)
}

func (r *Repository) create(ctx context.Context, q rowQuerier, params CreateDealershipParams) (Dealership, error) {
	row := q.QueryRow(ctx, `
		INSERT INTO dealerships (
			name, status, monthly_value, assigned_user_id, territory_id,
			address, city, state, zip_code, phone, website, source
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+dealershipColumns,
		params.Name, params.Status, params.MonthlyValue, params.AssignedUserID,
		params.TerritoryID, params.Address, params.City, params.State, params.ZipCode,
		params.Phone, params.Website, params.Source,
	)
	return scanDealership(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Dealership, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+dealershipColumns+` FROM dealerships WHERE id = $1`, id)
	dealership, err := scanDealership(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Dealership{}, ErrNotFound
	}
	if err != nil {
		return Dealership{}, err
	}
	return dealership, nil
}

// FindByName does a case-insensitive exact-name lookup, used by the CSV
// importer's dedup check.
func (r *Repository) FindByName(ctx context.Context, name string) (Dealership, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+dealershipColumns+` FROM dealerships WHERE LOWER(name) = LOWER($1)`, name)
	dealership, err := scanDealership(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Dealership{}, ErrNotFound
	}
	if err != nil {
		return Dealership{}, err
	}
	return dealership, nil
}

// Scope restricts queries to dealerships visible to the caller. Nil means
// unrestricted access.
type Scope struct {
	UserID      uuid.UUID
	TerritoryID *uuid.UUID
}

func scopeCondition(scope *Scope, args []interface{}) (string, []interface{}) {
	if scope == nil {
		return "1=1", args
	}
	args = append(args, scope.UserID)
	ownerCond := fmt.Sprintf("assigned_user_id = $%d", len(args))
	if scope.TerritoryID == nil {
		return ownerCond, args
	}
	args = append(args, *scope.TerritoryID)
	return fmt.Sprintf("(%s OR territory_id = $%d)", ownerCond, len(args)), args
}

type ListDealershipsParams struct {
	Scope  *Scope
	Status *string
	Search string
}

func (r *Repository) List(ctx context.Context, params ListDealershipsParams) ([]Dealership, error) {
	cond, args := scopeCondition(params.Scope, nil)
	query := `SELECT ` + dealershipColumns + ` FROM dealerships WHERE ` + cond

	if params.Status != nil {
		args = append(args, *params.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR city ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dealerships []Dealership
	for rows.Next() {
		dealership, err := scanDealership(rows)
		if err != nil {
			return nil, err
		}
		dealerships = append(dealerships, dealership)
	}
	return dealerships, rows.Err()
}

// ListForStatusSummary fetches only the columns the dashboard aggregation
// needs, already filtered to the caller's scope.
func (r *Repository) ListForStatusSummary(ctx context.Context, scope *Scope) ([]StatusRow, error) {
	cond, args := scopeCondition(scope, nil)
	rows, err := r.pool.Query(ctx, `SELECT status, monthly_value FROM dealerships WHERE `+cond, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatusRow
	for rows.Next() {
		var row StatusRow
		if err := rows.Scan(&row.Status, &row.MonthlyValue); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type StatusRow struct {
	Status       string
	MonthlyValue float64
}

type UpdateDealershipParams struct {
	Name           *string
	MonthlyValue   *float64
	AssignedUserID *uuid.UUID
	TerritoryID    *uuid.UUID
	Address        *string
	City           *string
	State          *string
	ZipCode        *string
	Phone          *string
	Website        *string
	Source         *string
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateDealershipParams) (Dealership, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE dealerships SET
			name = COALESCE($2, name),
			monthly_value = COALESCE($3, monthly_value),
			assigned_user_id = COALESCE($4, assigned_user_id),
			territory_id = COALESCE($5, territory_id),
			address = COALESCE($6, address),
			city = COALESCE($7, city),
			state = COALESCE($8, state),
			zip_code = COALESCE($9, zip_code),
			phone = COALESCE($10, phone),
			website = COALESCE($11, website),
			source = COALESCE($12, source),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+dealershipColumns,
		id, params.Name, params.MonthlyValue, params.AssignedUserID, params.TerritoryID,
		params.Address, params.City, params.State, params.ZipCode, params.Phone,
		params.Website, params.Source,
	)
	dealership, err := scanDealership(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Dealership{}, ErrNotFound
	}
	if err != nil {
		return Dealership{}, err
	}
	return dealership, nil
}

// UpdateStatus moves the dealership to a new status. Going live sets is_live
// and stamps live_activated_at exactly once; re-entering ACTIVE_CUSTOMER on
// an already-live record leaves the stamp untouched.
// updateStatusQuery stamps live_activated_at at most once: a re-entry into
// a live-activating status keeps the original timestamp via COALESCE.
const updateStatusQuery = `
	UPDATE dealerships SET
		status = $2,
		is_live = CASE WHEN $3 THEN TRUE ELSE is_live END,
		live_activated_at = CASE WHEN $3 THEN COALESCE(live_activated_at, NOW()) ELSE live_activated_at END,
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + dealershipColumns

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, activatesLive bool) (Dealership, error) {
	row := r.pool.QueryRow(ctx, updateStatusQuery, id, status, activatesLive)
	dealership, err := scanDealership(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Dealership{}, ErrNotFound
	}
	if err != nil {
		return Dealership{}, err
	}
	return dealership, nil
}

// Delete removes the dealership together with its activities, tasks and
// contacts in one transaction. The caller must have verified there are no
// open deals first.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM activities WHERE dealership_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE dealership_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM contacts WHERE dealership_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE dealership_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM dealerships WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}
