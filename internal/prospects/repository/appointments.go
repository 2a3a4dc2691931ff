package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID          uuid.UUID
	ProspectID  uuid.UUID
	UserID      uuid.UUID
	ScheduledAt time.Time
	Status      string
	Notes       *string
	CreatedAt   time.Time
}

type CreateAppointmentParams struct {
	ProspectID  uuid.UUID
	UserID      uuid.UUID
	ScheduledAt time.Time
	Notes       *string
}

func (r *Repository) CreateAppointment(ctx context.Context, params CreateAppointmentParams) (Appointment, error) {
	var appointment Appointment
	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (prospect_id, user_id, scheduled_at, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, prospect_id, user_id, scheduled_at, status, notes, created_at
	`, params.ProspectID, params.UserID, params.ScheduledAt, params.Notes).Scan(
		&appointment.ID, &appointment.ProspectID, &appointment.UserID,
		&appointment.ScheduledAt, &appointment.Status, &appointment.Notes, &appointment.CreatedAt,
	)
	if err != nil {
		return Appointment{}, err
	}
	return appointment, nil
}

func (r *Repository) ListAppointments(ctx context.Context, prospectID uuid.UUID) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, prospect_id, user_id, scheduled_at, status, notes, created_at
		FROM appointments
		WHERE prospect_id = $1
		ORDER BY scheduled_at DESC
	`, prospectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]Appointment, 0)
	for rows.Next() {
		var appointment Appointment
		if err := rows.Scan(
			&appointment.ID, &appointment.ProspectID, &appointment.UserID,
			&appointment.ScheduledAt, &appointment.Status, &appointment.Notes, &appointment.CreatedAt,
		); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	return appointments, rows.Err()
}

func (r *Repository) CountAppointments(ctx context.Context, prospectID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointments WHERE prospect_id = $1`, prospectID).Scan(&count)
	return count, err
}
