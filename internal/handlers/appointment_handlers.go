package handlers

import (
	"net/http"
	"time"

	"schedulerapi/internal/common"
	"schedulerapi/internal/models"
	"schedulerapi/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AppointmentHandlers handles booking endpoints. The access decisions live in
// the appointment service; handlers translate its domain errors into the
// 401/403/404 taxonomy.
type AppointmentHandlers struct {
	appointmentService services.AppointmentService
}

func NewAppointmentHandlers(appointmentService services.AppointmentService) *AppointmentHandlers {
	return &AppointmentHandlers{appointmentService: appointmentService}
}

// CreateAppointmentRequest represents the booking payload. Owner and status
// fields sent by clients are ignored.
type CreateAppointmentRequest struct {
	SupplierID string    `json:"supplier_id"`
	Date       time.Time `json:"date"`
	Time       string    `json:"time"`
	Notes      string    `json:"notes"`
}

// ListAppointments returns the appointments the caller created.
func (h *AppointmentHandlers) ListAppointments(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	appointments, err := h.appointmentService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"appointments": appointments})
}

// ListSupplierAppointments returns every booking against one of the caller's
// own suppliers.
func (h *AppointmentHandlers) ListSupplierAppointments(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	supplierID, err := uuid.Parse(c.Param("supplierId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid supplier id")
	}

	appointments, err := h.appointmentService.ListForSupplier(c.Request().Context(), userID, supplierID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"appointments": appointments})
}

// GetAppointment returns a single appointment if the caller created it or
// owns its supplier.
func (h *AppointmentHandlers) GetAppointment(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid appointment id")
	}

	appointment, err := h.appointmentService.GetForUser(c.Request().Context(), userID, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, appointment)
}

// CreateAppointment books an appointment for the caller.
func (h *AppointmentHandlers) CreateAppointment(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return common.SendValidationError(c, "supplier_id", "valid supplier_id is required")
	}

	appointment := &models.Appointment{
		SupplierID: supplierID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	}
	if err := h.appointmentService.Create(c.Request().Context(), userID, appointment); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, appointment)
}

// UpdateStatusRequest represents the status transition payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateAppointmentStatus transitions a booking's status; supplier owner
// only.
func (h *AppointmentHandlers) UpdateAppointmentStatus(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid appointment id")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.appointmentService.UpdateStatus(c.Request().Context(), userID, id, req.Status); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAppointment removes a booking, under the same access rule as reads.
func (h *AppointmentHandlers) DeleteAppointment(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid appointment id")
	}

	if err := h.appointmentService.DeleteForUser(c.Request().Context(), userID, id); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
