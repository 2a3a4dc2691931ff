// Package repository provides postgres persistence for social posts.
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

var ErrNotFound = errors.New("social post not found")

type Post struct {
	ID           uuid.UUID
	AuthorID     uuid.UUID
	Platform     string
	Content      string
	Status       string
	ScheduledFor *time.Time
	PostedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const postColumns = `id, author_id, platform, content, status, scheduled_for, posted_at, created_at, updated_at`

func scanPost(row pgx.Row) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.Platform, &p.Content, &p.Status,
		&p.ScheduledFor, &p.PostedAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

type CreateParams struct {
	AuthorID     uuid.UUID
	Platform     string
	Content      string
	Status       string
	ScheduledFor *time.Time
}

func (r *Repository) Create(ctx context.Context, params CreateParams) (Post, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO social_posts (author_id, platform, content, status, scheduled_for)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+postColumns,
		params.AuthorID, params.Platform, params.Content, params.Status, params.ScheduledFor)

	post, err := scanPost(row)
	if err != nil {
		return Post{}, fmt.Errorf("insert social post: %w", err)
	}
	return post, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Post, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM social_posts WHERE id = $1`, id)

	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, fmt.Errorf("get social post: %w", err)
	}
	return post, nil
}

type ListFilter struct {
	AuthorID *uuid.UUID
	Status   string
	Platform string
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Post, error) {
	var conditions []string
	var args []any

	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Platform != "" {
		args = append(args, filter.Platform)
		conditions = append(conditions, fmt.Sprintf("platform = $%d", len(args)))
	}

	query := `SELECT ` + postColumns + ` FROM social_posts`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list social posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan social post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

type UpdateParams struct {
	Content      *string
	Platform     *string
	Status       *string
	ScheduledFor *time.Time
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Post, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE social_posts SET
			content       = COALESCE($2, content),
			platform      = COALESCE($3, platform),
			status        = COALESCE($4, status),
			scheduled_for = COALESCE($5, scheduled_for),
			posted_at     = CASE WHEN $4 = 'POSTED' THEN COALESCE(posted_at, NOW()) ELSE posted_at END,
			updated_at    = NOW()
		WHERE id = $1
		RETURNING `+postColumns,
		id, params.Content, params.Platform, params.Status, params.ScheduledFor)

	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, fmt.Errorf("update social post: %w", err)
	}
	return post, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM social_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete social post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
