// Package repository provides data access for deals using raw SQL via pgx.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("deal not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Deal struct {
	ID                uuid.UUID
	DealershipID      uuid.UUID
	ContactID         *uuid.UUID
	OwnerID           uuid.UUID
	TerritoryID       *uuid.UUID
	Title             string
	Stage             string
	Value             float64
	MonthlyRecurring  float64
	Probability       int
	ExpectedCloseDate *time.Time
	ClosedAt          *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Scope restricts queries to deals visible to the caller. A nil Scope means
// unrestricted (admin) access; otherwise a deal is visible when the caller
// owns it or it belongs to the caller's territory.
type Scope struct {
	UserID      uuid.UUID
	TerritoryID *uuid.UUID
}

const dealColumns = `id, dealership_id, contact_id, owner_id, territory_id, title, stage, value,
	monthly_recurring, probability, expected_close_date, closed_at, created_at, updated_at`

func scanDeal(row pgx.Row) (Deal, error) {
	var d Deal
	err := row.Scan(
		&d.ID, &d.DealershipID, &d.ContactID, &d.OwnerID, &d.TerritoryID, &d.Title, &d.Stage,
		&d.Value, &d.MonthlyRecurring, &d.Probability, &d.ExpectedCloseDate, &d.ClosedAt,
		&d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// scopeCondition appends the visibility predicate for the scope, extending
// args with its bind values.
func scopeCondition(scope *Scope, args []interface{}) (string, []interface{}) {
	if scope == nil {
		return "1=1", args
	}
	args = append(args, scope.UserID)
	ownerCond := fmt.Sprintf("owner_id = $%d", len(args))
	if scope.TerritoryID == nil {
		return ownerCond, args
	}
	args = append(args, *scope.TerritoryID)
	return fmt.Sprintf("(%s OR territory_id = $%d)", ownerCond, len(args)), args
}

type CreateDealParams struct {
	DealershipID      uuid.UUID
	ContactID         *uuid.UUID
	OwnerID           uuid.UUID
	TerritoryID       *uuid.UUID
	Title             string
	Stage             string
	Value             float64
	MonthlyRecurring  float64
	Probability       int
	ExpectedCloseDate *time.Time
}

func (r *Repository) Create(ctx context.Context, params CreateDealParams) (Deal, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO deals (
			dealership_id, contact_id, owner_id, territory_id, title, stage, value,
			monthly_recurring, probability, expected_close_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+dealColumns,
		params.DealershipID, params.ContactID, params.OwnerID, params.TerritoryID,
		params.Title, params.Stage, params.Value, params.MonthlyRecurring,
		params.Probability, params.ExpectedCloseDate,
	)
	return scanDeal(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Deal, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+dealColumns+` FROM deals WHERE id = $1`, id)
	deal, err := scanDeal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Deal{}, ErrNotFound
	}
	if err != nil {
		return Deal{}, err
	}
	return deal, nil
}

type ListDealsParams struct {
	Scope        *Scope
	Stage        *string
	DealershipID *uuid.UUID
	OwnerID      *uuid.UUID
	Search       string
	MinValue     *float64
	MaxValue     *float64
}

func (r *Repository) List(ctx context.Context, params ListDealsParams) ([]Deal, error) {
	cond, args := scopeCondition(params.Scope, nil)
	query := `SELECT ` + dealColumns + ` FROM deals WHERE ` + cond

	if params.Stage != nil {
		args = append(args, *params.Stage)
		query += fmt.Sprintf(" AND stage = $%d", len(args))
	}
	if params.DealershipID != nil {
		args = append(args, *params.DealershipID)
		query += fmt.Sprintf(" AND dealership_id = $%d", len(args))
	}
	if params.OwnerID != nil {
		args = append(args, *params.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if params.MinValue != nil {
		args = append(args, *params.MinValue)
		query += fmt.Sprintf(" AND value >= $%d", len(args))
	}
	if params.MaxValue != nil {
		args = append(args, *params.MaxValue)
		query += fmt.Sprintf(" AND value <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	return deals, rows.Err()
}

type PipelineParams struct {
	Scope    *Scope
	OwnerID  *uuid.UUID
	Search   string
	MinValue *float64
	MaxValue *float64
}

// ListForPipeline fetches only the columns the pipeline aggregation needs,
// already filtered to the caller's scope and the optional query filters.
func (r *Repository) ListForPipeline(ctx context.Context, params PipelineParams) ([]PipelineRow, error) {
	cond, args := scopeCondition(params.Scope, nil)
	query := `SELECT id, title, stage, value, probability FROM deals WHERE ` + cond

	if params.OwnerID != nil {
		args = append(args, *params.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if params.MinValue != nil {
		args = append(args, *params.MinValue)
		query += fmt.Sprintf(" AND value >= $%d", len(args))
	}
	if params.MaxValue != nil {
		args = append(args, *params.MaxValue)
		query += fmt.Sprintf(" AND value <= $%d", len(args))
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PipelineRow
	for rows.Next() {
		var row PipelineRow
		if err := rows.Scan(&row.ID, &row.Title, &row.Stage, &row.Value, &row.Probability); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type PipelineRow struct {
	ID          uuid.UUID
	Title       string
	Stage       string
	Value       float64
	Probability int
}

type UpdateDealParams struct {
	ContactID         *uuid.UUID
	Title             *string
	Value             *float64
	MonthlyRecurring  *float64
	Probability       *int
	ExpectedCloseDate *time.Time
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateDealParams) (Deal, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE deals SET
			contact_id = COALESCE($2, contact_id),
			title = COALESCE($3, title),
			value = COALESCE($4, value),
			monthly_recurring = COALESCE($5, monthly_recurring),
			probability = COALESCE($6, probability),
			expected_close_date = COALESCE($7, expected_close_date),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+dealColumns,
		id, params.ContactID, params.Title, params.Value, params.MonthlyRecurring,
		params.Probability, params.ExpectedCloseDate,
	)
	deal, err := scanDeal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Deal{}, ErrNotFound
	}
	if err != nil {
		return Deal{}, err
	}
	return deal, nil
}

// UpdateStage moves the deal to a new stage. closed_at is stamped when the
// stage is terminal and cleared when a closed deal is reopened.
func (r *Repository) UpdateStage(ctx context.Context, id uuid.UUID, stage string, probability int) (Deal, error) {
	closed := domain.Stage(stage).IsClosed()
	row := r.pool.QueryRow(ctx, `
		UPDATE deals SET
			stage = $2,
			probability = $3,
			closed_at = CASE WHEN $4 THEN COALESCE(closed_at, NOW()) ELSE NULL END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+dealColumns,
		id, stage, probability, closed,
	)
	deal, err := scanDeal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Deal{}, ErrNotFound
	}
	if err != nil {
		return Deal{}, err
	}
	return deal, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountOpenByDealership reports how many non-closed deals a dealership has.
// Used to block dealership deletion while deals are in flight.
func (r *Repository) CountOpenByDealership(ctx context.Context, dealershipID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM deals
		WHERE dealership_id = $1 AND stage NOT IN ($2, $3)
	`, dealershipID, string(domain.StageClosedWon), string(domain.StageClosedLost)).Scan(&count)
	return count, err
}
