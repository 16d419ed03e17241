package services

import (
	"context"
	"errors"
	"fmt"

	"schedulerapi/internal/common"
	"schedulerapi/internal/models"
	"schedulerapi/internal/repositories"

	"github.com/google/uuid"
)

// AppointmentService implements the appointment access policy. Two parties
// may read or delete an appointment: its creator and the owner of the
// referenced supplier. Unlike suppliers, a denied appointment request
// returns forbidden rather than not-found — the unscoped fetch has already
// revealed that the record exists.
type AppointmentService interface {
	Create(ctx context.Context, userID uuid.UUID, appointment *models.Appointment) error
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*models.Appointment, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Appointment, error)
	ListForSupplier(ctx context.Context, userID, supplierID uuid.UUID) ([]*models.Appointment, error)
}

type appointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	supplierRepo    repositories.SupplierRepository
}

func NewAppointmentService(appointmentRepo repositories.AppointmentRepository, supplierRepo repositories.SupplierRepository) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		supplierRepo:    supplierRepo,
	}
}

// Create books an appointment. Owner and status come from the server, never
// the client; the referenced supplier must exist but need not be owned by
// the caller.
func (s *appointmentService) Create(ctx context.Context, userID uuid.UUID, appointment *models.Appointment) error {
	if appointment.SupplierID == uuid.Nil {
		return fmt.Errorf("%w: supplier_id is required", common.ErrInvalidInput)
	}

	exists, err := s.supplierRepo.Exists(ctx, appointment.SupplierID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: supplier not found", common.ErrInvalidInput)
	}

	appointment.ID = uuid.New()
	appointment.UserID = userID
	appointment.Status = models.StatusPending

	return s.appointmentRepo.Create(ctx, appointment)
}

func (s *appointmentService) GetForUser(ctx context.Context, userID, id uuid.UUID) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, userID, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, userID, appointment); err != nil {
		return err
	}
	return s.appointmentRepo.Delete(ctx, id)
}

// UpdateStatus transitions an appointment's status. Only the supplier owner
// may do this, never the creator alone. Ownership is checked before the
// status value: a non-owner sending garbage gets forbidden, not bad request.
func (s *appointmentService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.supplierRepo.GetByID(ctx, userID, appointment.SupplierID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrForbidden
		}
		return err
	}

	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: invalid status %q", common.ErrInvalidInput, status)
	}

	return s.appointmentRepo.UpdateStatus(ctx, id, status)
}

func (s *appointmentService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Appointment, error) {
	return s.appointmentRepo.ListForUser(ctx, userID)
}

// ListForSupplier returns the bookings against one of the caller's own
// suppliers. The owner-scoped supplier lookup doubles as the access check:
// someone else's supplier id behaves as absent.
func (s *appointmentService) ListForSupplier(ctx context.Context, userID, supplierID uuid.UUID) ([]*models.Appointment, error) {
	if _, err := s.supplierRepo.GetByID(ctx, userID, supplierID); err != nil {
		return nil, err
	}
	return s.appointmentRepo.ListForSupplier(ctx, supplierID)
}

// authorize allows the creator, then the supplier owner, then nobody.
func (s *appointmentService) authorize(ctx context.Context, userID uuid.UUID, appointment *models.Appointment) error {
	if appointment.UserID == userID {
		return nil
	}
	_, err := s.supplierRepo.GetByID(ctx, userID, appointment.SupplierID)
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrForbidden
	}
	return err
}
