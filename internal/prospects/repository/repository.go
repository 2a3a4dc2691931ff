package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("prospect not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Prospect struct {
	ID                  uuid.UUID
	OwnerID             uuid.UUID
	FirstName           string
	LastName            string
	Email               *string
	Phone               *string
	Company             *string
	Position            *string
	Industry            *string
	EmployeeCount       *int
	LinkedInURL         *string
	LinkedInConnections *int
	Status              string
	LeadScore           int
	PreviousScore       int
	Enriched            bool
	EnrichedAt          *time.Time
	Notes               *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

const prospectColumns = `id, owner_id, first_name, last_name, email, phone, company, position, industry,
	employee_count, linkedin_url, linkedin_connections, status, lead_score, previous_score,
	enriched, enriched_at, notes, created_at, updated_at`

func scanProspect(row pgx.Row) (Prospect, error) {
	var p Prospect
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Company,
		&p.Position, &p.Industry, &p.EmployeeCount, &p.LinkedInURL, &p.LinkedInConnections,
		&p.Status, &p.LeadScore, &p.PreviousScore, &p.Enriched, &p.EnrichedAt, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

type CreateProspectParams struct {
	OwnerID       uuid.UUID
	FirstName     string
	LastName      string
	Email         *string
	Phone         *string
	Company       *string
	Position      *string
	Industry      *string
	EmployeeCount *int
	LinkedInURL   *string
	Notes         *string
}

func (r *Repository) Create(ctx context.Context, params CreateProspectParams) (Prospect, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO prospects (
			owner_id, first_name, last_name, email, phone, company, position, industry,
			employee_count, linkedin_url, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+prospectColumns,
		params.OwnerID, params.FirstName, params.LastName, params.Email, params.Phone,
		params.Company, params.Position, params.Industry, params.EmployeeCount,
		params.LinkedInURL, params.Notes,
	)

	prospect, err := scanProspect(row)
	if err != nil {
		return Prospect{}, err
	}
	return prospect, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Prospect, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+prospectColumns+` FROM prospects WHERE id = $1`, id)
	prospect, err := scanProspect(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Prospect{}, ErrNotFound
	}
	if err != nil {
		return Prospect{}, err
	}
	return prospect, nil
}

type ListProspectsParams struct {
	OwnerID  *uuid.UUID
	Status   *string
	Search   string
	MinScore *int
	Limit    int
	Offset   int
}

func (r *Repository) List(ctx context.Context, params ListProspectsParams) ([]Prospect, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if params.OwnerID != nil {
		args = append(args, *params.OwnerID)
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if params.Status != nil {
		args = append(args, *params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR company ILIKE $%d OR email ILIKE $%d)",
			n, n, n, n,
		))
	}
	if params.MinScore != nil {
		args = append(args, *params.MinScore)
		conditions = append(conditions, fmt.Sprintf("lead_score >= $%d", len(args)))
	}

	query := `SELECT ` + prospectColumns + ` FROM prospects WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY lead_score DESC, created_at DESC`

	if params.Limit > 0 {
		args = append(args, params.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, params.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prospects := make([]Prospect, 0)
	for rows.Next() {
		prospect, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		prospects = append(prospects, prospect)
	}

	return prospects, rows.Err()
}

type UpdateProspectParams struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Phone         *string
	Company       *string
	Position      *string
	Industry      *string
	EmployeeCount *int
	LinkedInURL   *string
	Notes         *string
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateProspectParams) (Prospect, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE prospects SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			company = COALESCE($6, company),
			position = COALESCE($7, position),
			industry = COALESCE($8, industry),
			employee_count = COALESCE($9, employee_count),
			linkedin_url = COALESCE($10, linkedin_url),
			notes = COALESCE($11, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+prospectColumns,
		id, params.FirstName, params.LastName, params.Email, params.Phone, params.Company,
		params.Position, params.Industry, params.EmployeeCount, params.LinkedInURL, params.Notes,
	)

	prospect, err := scanProspect(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Prospect{}, ErrNotFound
	}
	if err != nil {
		return Prospect{}, err
	}
	return prospect, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Prospect, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE prospects SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+prospectColumns, id, status)

	prospect, err := scanProspect(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Prospect{}, ErrNotFound
	}
	if err != nil {
		return Prospect{}, err
	}
	return prospect, nil
}

// UpdateScore persists a freshly computed score, rolling the old value into
// previous_score so the last score stays retrievable.
func (r *Repository) UpdateScore(ctx context.Context, id uuid.UUID, score int) (Prospect, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE prospects SET previous_score = lead_score, lead_score = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+prospectColumns, id, score)

	prospect, err := scanProspect(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Prospect{}, ErrNotFound
	}
	if err != nil {
		return Prospect{}, err
	}
	return prospect, nil
}

type EnrichmentParams struct {
	Company             *string
	Industry            *string
	EmployeeCount       *int
	LinkedInConnections *int
}

// ApplyEnrichment writes enrichment results and stamps enriched_at only on
// the first enrichment.
func (r *Repository) ApplyEnrichment(ctx context.Context, id uuid.UUID, params EnrichmentParams) (Prospect, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE prospects SET
			company = COALESCE($2, company),
			industry = COALESCE($3, industry),
			employee_count = COALESCE($4, employee_count),
			linkedin_connections = COALESCE($5, linkedin_connections),
			enriched = TRUE,
			enriched_at = COALESCE(enriched_at, NOW()),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+prospectColumns,
		id, params.Company, params.Industry, params.EmployeeCount, params.LinkedInConnections,
	)

	prospect, err := scanProspect(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Prospect{}, ErrNotFound
	}
	if err != nil {
		return Prospect{}, err
	}
	return prospect, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM interactions WHERE prospect_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM appointments WHERE prospect_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE tasks SET prospect_id = NULL WHERE prospect_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM prospects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}
