// Package repository provides data access for CRM tasks using raw SQL via
// pgx.
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

var ErrNotFound = errors.New("task not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Task struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	DealershipID *uuid.UUID
	ProspectID   *uuid.UUID
	Title        string
	Description  *string
	DueDate      *time.Time
	Priority     string
	Status       string
	ReminderSent bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const taskColumns = `id, owner_id, dealership_id, prospect_id, title, description, due_date,
	priority, status, reminder_sent, created_at, updated_at`

func scanTask(row pgx.Row) (Task, error) {
	var t Task
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.DealershipID, &t.ProspectID, &t.Title, &t.Description,
		&t.DueDate, &t.Priority, &t.Status, &t.ReminderSent, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

type CreateTaskParams struct {
	OwnerID      uuid.UUID
	DealershipID *uuid.UUID
	ProspectID   *uuid.UUID
	Title        string
	Description  *string
	DueDate      *time.Time
	Priority     string
}

func (r *Repository) Create(ctx context.Context, params CreateTaskParams) (Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (owner_id, dealership_id, prospect_id, title, description, due_date, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+taskColumns,
		params.OwnerID, params.DealershipID, params.ProspectID, params.Title,
		params.Description, params.DueDate, params.Priority,
	)
	return scanTask(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, err
	}
	return task, nil
}

type ListTasksParams struct {
	OwnerID *uuid.UUID
	Status  *string
	DueBy   *time.Time
}

func (r *Repository) List(ctx context.Context, params ListTasksParams) ([]Task, error) {
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
	if params.DueBy != nil {
		args = append(args, *params.DueBy)
		conditions = append(conditions, fmt.Sprintf("due_date <= $%d", len(args)))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + joinAnd(conditions) +
		` ORDER BY due_date ASC NULLS LAST, created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func joinAnd(conditions []string) string {
	out := conditions[0]
	for _, c := range conditions[1:] {
		out += " AND " + c
	}
	return out
}

type UpdateTaskParams struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *string
	Status      *string
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateTaskParams) (Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			due_date = COALESCE($4, due_date),
			priority = COALESCE($5, priority),
			status = COALESCE($6, status),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+taskColumns,
		id, params.Title, params.Description, params.DueDate, params.Priority, params.Status,
	)
	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, err
	}
	return task, nil
}

// MarkReminderSent flips reminder_sent once. Returns false when the task was
// already marked, is done, or no longer exists, so duplicate asynq
// deliveries are harmless.
func (r *Repository) MarkReminderSent(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks SET reminder_sent = TRUE, updated_at = NOW()
		WHERE id = $1 AND reminder_sent = FALSE AND status <> 'DONE'
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
