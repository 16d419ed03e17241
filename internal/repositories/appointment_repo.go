package repositories

import (
	"context"
	"errors"
	"time"

	"schedulerapi/internal/common"
	"schedulerapi/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	// GetByID is unscoped on purpose; the access decision for appointments
	// happens after the fetch, since supplier owners can see bookings they
	// did not create.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Appointment, error)
	ListForSupplier(ctx context.Context, supplierID uuid.UUID) ([]*models.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type appointmentRepo struct {
	db Database
}

func NewAppointmentRepository(db Database) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	query := `
		INSERT INTO appointments (id, user_id, supplier_id, date, time, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, appointment.ID, appointment.UserID, appointment.SupplierID, appointment.Date, appointment.Time, appointment.Status, appointment.Notes)
	return err
}

func (r *appointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	appointment := &models.Appointment{}
	query := `
		SELECT id, user_id, supplier_id, date, time, status, notes, created_at
		FROM appointments
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&appointment.ID, &appointment.UserID, &appointment.SupplierID, &appointment.Date, &appointment.Time, &appointment.Status, &appointment.Notes, &appointment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return appointment, nil
}

func (r *appointmentRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Appointment, error) {
	query := `
		SELECT id, user_id, supplier_id, date, time, status, notes, created_at
		FROM appointments
		WHERE user_id = $1
		ORDER BY date, created_at
	`
	return r.list(ctx, query, userID)
}

func (r *appointmentRepo) ListForSupplier(ctx context.Context, supplierID uuid.UUID) ([]*models.Appointment, error) {
	query := `
		SELECT id, user_id, supplier_id, date, time, status, notes, created_at
		FROM appointments
		WHERE supplier_id = $1
		ORDER BY date, created_at
	`
	return r.list(ctx, query, supplierID)
}

func (r *appointmentRepo) list(ctx context.Context, query string, arg any) ([]*models.Appointment, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		appointment := &models.Appointment{}
		if err := rows.Scan(&appointment.ID, &appointment.UserID, &appointment.SupplierID, &appointment.Date, &appointment.Time, &appointment.Status, &appointment.Notes, &appointment.CreatedAt); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	return appointments, rows.Err()
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE appointments SET status = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM appointments WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteCancelledBefore removes cancelled appointments older than the cutoff.
// Used by the retention job.
func (r *appointmentRepo) DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM appointments WHERE status = $1 AND created_at < $2`
	tag, err := r.db.Exec(ctx, query, models.StatusCancelled, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
