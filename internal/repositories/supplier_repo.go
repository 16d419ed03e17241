package repositories

import (
	"context"
	"errors"

	"schedulerapi/internal/common"
	"schedulerapi/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	// GetByID is owner-scoped: a supplier owned by someone else looks absent.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Supplier, error)
	// Exists is deliberately unscoped; appointment creation only needs the
	// supplier to exist, not to be owned by the caller.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]*models.Supplier, error)
}

type supplierRepo struct {
	db Database
}

func NewSupplierRepository(db Database) SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (id, user_id, name, business_name, description, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, supplier.ID, supplier.UserID, supplier.Name, supplier.BusinessName, supplier.Description, supplier.Image)
	return err
}

func (r *supplierRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `
		SELECT id, user_id, name, business_name, description, image, created_at, updated_at
		FROM suppliers
		WHERE user_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&supplier.ID, &supplier.UserID, &supplier.Name, &supplier.BusinessName, &supplier.Description, &supplier.Image, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return supplier, nil
}

func (r *supplierRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM suppliers WHERE id = $1)`
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *supplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, business_name = $2, description = $3, image = $4, updated_at = NOW()
		WHERE user_id = $5 AND id = $6
	`
	tag, err := r.db.Exec(ctx, query, supplier.Name, supplier.BusinessName, supplier.Description, supplier.Image, supplier.UserID, supplier.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *supplierRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM suppliers WHERE user_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *supplierRepo) List(ctx context.Context, userID uuid.UUID) ([]*models.Supplier, error) {
	query := `
		SELECT id, user_id, name, business_name, description, image, created_at, updated_at
		FROM suppliers
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		supplier := &models.Supplier{}
		if err := rows.Scan(&supplier.ID, &supplier.UserID, &supplier.Name, &supplier.BusinessName, &supplier.Description, &supplier.Image, &supplier.CreatedAt, &supplier.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}
