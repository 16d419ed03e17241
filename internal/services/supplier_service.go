package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"schedulerapi/internal/caching"
	"schedulerapi/internal/common"
	"schedulerapi/internal/models"
	"schedulerapi/internal/repositories"

	"github.com/google/uuid"
)

const supplierCacheTTL = 5 * time.Minute

// SupplierService enforces the supplier ownership rule: every operation is
// owner-scoped, so a caller who does not own a supplier cannot tell it apart
// from one that does not exist.
type SupplierService interface {
	Create(ctx context.Context, userID uuid.UUID, supplier *models.Supplier) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, userID uuid.UUID, supplier *models.Supplier) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]*models.Supplier, error)
	AttachImage(ctx context.Context, userID, id uuid.UUID, objectKey string) (*models.Supplier, error)
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
	cacheSvc     caching.CacheService
}

func NewSupplierService(supplierRepo repositories.SupplierRepository, cacheSvc caching.CacheService) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
		cacheSvc:     cacheSvc,
	}
}

func (s *supplierService) Create(ctx context.Context, userID uuid.UUID, supplier *models.Supplier) error {
	if supplier.Name == "" {
		return fmt.Errorf("%w: supplier name is required", common.ErrInvalidInput)
	}

	// the owner is always the caller, whatever the client sent
	supplier.UserID = userID
	supplier.ID = uuid.New()

	return s.supplierRepo.Create(ctx, supplier)
}

func (s *supplierService) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Supplier, error) {
	if s.cacheSvc != nil {
		if supplier, err := s.cacheSvc.GetSupplier(ctx, userID, id); err == nil {
			return supplier, nil
		} else if !errors.Is(err, caching.ErrCacheMiss) {
			log.Printf("WARN: supplier cache read failed: %v", err)
		}
	}

	supplier, err := s.supplierRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetSupplier(ctx, supplier, supplierCacheTTL); err != nil {
			log.Printf("WARN: supplier cache write failed: %v", err)
		}
	}
	return supplier, nil
}

func (s *supplierService) Update(ctx context.Context, userID uuid.UUID, supplier *models.Supplier) error {
	if supplier.Name == "" {
		return fmt.Errorf("%w: supplier name is required", common.ErrInvalidInput)
	}

	supplier.UserID = userID
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return err
	}
	s.invalidate(ctx, userID, supplier.ID)
	return nil
}

func (s *supplierService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.supplierRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID, id)
	return nil
}

func (s *supplierService) List(ctx context.Context, userID uuid.UUID) ([]*models.Supplier, error) {
	return s.supplierRepo.List(ctx, userID)
}

// AttachImage records the stored object key on an owned supplier.
func (s *supplierService) AttachImage(ctx context.Context, userID, id uuid.UUID, objectKey string) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	supplier.Image = objectKey
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID, id)
	return supplier, nil
}

func (s *supplierService) invalidate(ctx context.Context, userID, id uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeleteSupplier(ctx, userID, id); err != nil {
		log.Printf("WARN: supplier cache invalidation failed: %v", err)
	}
}
