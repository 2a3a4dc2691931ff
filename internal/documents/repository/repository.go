// Package repository provides data access for document metadata using raw
// SQL via pgx. The bytes themselves live in object storage.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("document not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Document struct {
	ID           uuid.UUID
	DealershipID uuid.UUID
	UploadedBy   uuid.UUID
	FileName     string
	ObjectKey    string
	ContentType  string
	SizeBytes    int64
	CreatedAt    time.Time
}

const documentColumns = `id, dealership_id, uploaded_by, file_name, object_key, content_type, size_bytes, created_at`

type CreateDocumentParams struct {
	DealershipID uuid.UUID
	UploadedBy   uuid.UUID
	FileName     string
	ObjectKey    string
	ContentType  string
	SizeBytes    int64
}

func (r *Repository) Create(ctx context.Context, params CreateDocumentParams) (Document, error) {
	var d Document
	err := r.pool.QueryRow(ctx, `
		INSERT INTO documents (dealership_id, uploaded_by, file_name, object_key, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+documentColumns,
		params.DealershipID, params.UploadedBy, params.FileName, params.ObjectKey,
		params.ContentType, params.SizeBytes,
	).Scan(&d.ID, &d.DealershipID, &d.UploadedBy, &d.FileName, &d.ObjectKey, &d.ContentType, &d.SizeBytes, &d.CreatedAt)
	if err != nil {
		return Document{}, err
	}
	return d, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Document, error) {
	var d Document
	err := r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id).
		Scan(&d.ID, &d.DealershipID, &d.UploadedBy, &d.FileName, &d.ObjectKey, &d.ContentType, &d.SizeBytes, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	return d, nil
}

func (r *Repository) ListByDealership(ctx context.Context, dealershipID uuid.UUID) ([]Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+documentColumns+` FROM documents
		WHERE dealership_id = $1
		ORDER BY created_at DESC
	`, dealershipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.DealershipID, &d.UploadedBy, &d.FileName, &d.ObjectKey, &d.ContentType, &d.SizeBytes, &d.CreatedAt); err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
