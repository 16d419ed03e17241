package handlers

import (
	"fmt"
	"net/http"
	"time"

	"schedulerapi/internal/common"
	"schedulerapi/internal/models"
	"schedulerapi/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const supplierImageBucket = "supplier-images"

// SupplierHandlers handles supplier CRUD. All operations are owner-scoped:
// the service layer never sees another user's suppliers, so the handlers only
// translate between HTTP and the service.
type SupplierHandlers struct {
	supplierService services.SupplierService
	minioSvc        services.MinioService
}

func NewSupplierHandlers(supplierService services.SupplierService, minioSvc services.MinioService) *SupplierHandlers {
	return &SupplierHandlers{
		supplierService: supplierService,
		minioSvc:        minioSvc,
	}
}

func callerID(c echo.Context) (uuid.UUID, error) {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return userID, nil
}

// SupplierRequest represents the supplier create/update payload.
type SupplierRequest struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Description  string `json:"description"`
	Image        string `json:"image"`
}

// ListSuppliers returns the caller's suppliers.
func (h *SupplierHandlers) ListSuppliers(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	suppliers, err := h.supplierService.List(c.Request().Context(), userID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"suppliers": suppliers})
}

// CreateSupplier registers a supplier owned by the caller.
func (h *SupplierHandlers) CreateSupplier(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return common.SendValidationError(c, "name", "name is required")
	}

	supplier := &models.Supplier{
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Description:  req.Description,
		Image:        req.Image,
	}
	if err := h.supplierService.Create(c.Request().Context(), userID, supplier); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, supplier)
}

// GetSupplier returns one of the caller's suppliers; anyone else's id looks
// absent.
func (h *SupplierHandlers) GetSupplier(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid supplier id")
	}

	supplier, err := h.supplierService.GetByID(c.Request().Context(), userID, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier replaces an owned supplier's fields.
func (h *SupplierHandlers) UpdateSupplier(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid supplier id")
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	supplier := &models.Supplier{
		ID:           id,
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Description:  req.Description,
		Image:        req.Image,
	}
	if err := h.supplierService.Update(c.Request().Context(), userID, supplier); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteSupplier removes an owned supplier.
func (h *SupplierHandlers) DeleteSupplier(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid supplier id")
	}

	if err := h.supplierService.Delete(c.Request().Context(), userID, id); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadSupplierImage stores an image in object storage, records the object
// key on the supplier and answers with a presigned download URL.
func (h *SupplierHandlers) UploadSupplierImage(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid supplier id")
	}
	if h.minioSvc == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Image storage not configured")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read image")
	}
	defer src.Close()

	ctx := c.Request().Context()
	objectKey := fmt.Sprintf("%s/%s-%s", id.String(), uuid.NewString(), file.Filename)
	contentType := file.Header.Get("Content-Type")

	if err := h.minioSvc.UploadImage(ctx, supplierImageBucket, objectKey, contentType, src, file.Size); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	supplier, err := h.supplierService.AttachImage(ctx, userID, id, objectKey)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	url, err := h.minioSvc.GetPresignedURL(ctx, supplierImageBucket, objectKey, 24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to sign image URL")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"supplier": supplier,
		"url":      url,
	})
}
