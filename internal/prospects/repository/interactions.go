package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Interaction struct {
	ID         uuid.UUID
	ProspectID uuid.UUID
	UserID     uuid.UUID
	Type       string
	Subject    *string
	Body       *string
	OccurredAt time.Time
}

type CreateInteractionParams struct {
	ProspectID uuid.UUID
	UserID     uuid.UUID
	Type       string
	Subject    *string
	Body       *string
}

// CreateInteraction appends to the prospect's interaction log. Interactions
// are never updated or deleted.
func (r *Repository) CreateInteraction(ctx context.Context, params CreateInteractionParams) (Interaction, error) {
	var interaction Interaction
	err := r.pool.QueryRow(ctx, `
		INSERT INTO interactions (prospect_id, user_id, type, subject, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, prospect_id, user_id, type, subject, body, occurred_at
	`, params.ProspectID, params.UserID, params.Type, params.Subject, params.Body).Scan(
		&interaction.ID, &interaction.ProspectID, &interaction.UserID,
		&interaction.Type, &interaction.Subject, &interaction.Body, &interaction.OccurredAt,
	)
	if err != nil {
		return Interaction{}, err
	}
	return interaction, nil
}

func (r *Repository) ListInteractions(ctx context.Context, prospectID uuid.UUID) ([]Interaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, prospect_id, user_id, type, subject, body, occurred_at
		FROM interactions
		WHERE prospect_id = $1
		ORDER BY occurred_at DESC
	`, prospectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interactions := make([]Interaction, 0)
	for rows.Next() {
		var interaction Interaction
		if err := rows.Scan(
			&interaction.ID, &interaction.ProspectID, &interaction.UserID,
			&interaction.Type, &interaction.Subject, &interaction.Body, &interaction.OccurredAt,
		); err != nil {
			return nil, err
		}
		interactions = append(interactions, interaction)
	}

	return interactions, rows.Err()
}

// ListInteractionTypes returns just the type column for scoring, avoiding a
// full row fetch when only engagement counts are needed.
func (r *Repository) ListInteractionTypes(ctx context.Context, prospectID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT type FROM interactions WHERE prospect_id = $1`, prospectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]string, 0)
	for rows.Next() {
		var interactionType string
		if err := rows.Scan(&interactionType); err != nil {
			return nil, err
		}
		types = append(types, interactionType)
	}

	return types, rows.Err()
}
