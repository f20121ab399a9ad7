package handlers

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"amispark/internal/services"
	"amispark/internal/services/gateway"
	"amispark/models"
)

type BookingHandler struct {
	wizard  *services.WizardService
	booking *services.BookingService
}

func NewBookingHandler(wizard *services.WizardService, booking *services.BookingService) *BookingHandler {
	return &BookingHandler{
		wizard:  wizard,
		booking: booking,
	}
}

func (h *BookingHandler) RegisterRoutes(e *core.ServeEvent) {
	e.Router.POST("/api/v1/booking/session", h.StartSession)
	e.Router.GET("/api/v1/booking/{sessionId}", h.GetSession)
	e.Router.GET("/api/v1/booking/{sessionId}/summary", h.GetSummary)
	e.Router.POST("/api/v1/booking/{sessionId}/details", h.SubmitDetails)
	e.Router.POST("/api/v1/booking/{sessionId}/zone", h.SelectZone)
	e.Router.POST("/api/v1/booking/{sessionId}/back", h.Back)
	e.Router.POST("/api/v1/booking/{sessionId}/accommodation", h.SetAccommodation)
	e.Router.POST("/api/v1/booking/{sessionId}/verify", h.Verify)
	e.Router.POST("/api/v1/booking/{sessionId}/pay", h.CreateOrder)
	e.Router.POST("/api/v1/booking/{sessionId}/confirm", h.Confirm)
}

// wizardError maps service failures onto API errors with stable statuses.
func wizardError(err error) error {
	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		return apis.NewBadRequestError("Validation failed", fieldErrors)
	}

	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return apis.NewNotFoundError("Session not found or expired", nil)
	case errors.Is(err, services.ErrInvalidStep):
		return apis.NewBadRequestError("Action not allowed at this step", nil)
	case errors.Is(err, services.ErrSoldOut):
		return apis.NewBadRequestError("Zone sold out", nil)
	case errors.Is(err, services.ErrEligibility),
		errors.Is(err, services.ErrZoneUnavailable),
		errors.Is(err, services.ErrNotVerified),
		errors.Is(err, services.ErrVerificationFailed),
		errors.Is(err, services.ErrNoAccommodation),
		errors.Is(err, services.ErrOrderMismatch):
		return apis.NewBadRequestError(err.Error(), nil)
	default:
		return apis.NewInternalServerError("Something went wrong", err)
	}
}

func (h *BookingHandler) StartSession(e *core.RequestEvent) error {
	var req struct {
		IsRahasya bool `json:"is_rahasya"`
	}
	// body is optional: an empty post starts a main-event session
	_ = e.BindBody(&req)

	session, err := h.wizard.StartSession(e.Request.Context(), req.IsRahasya)
	if err != nil {
		return wizardError(err)
	}

	return e.JSON(http.StatusOK, session)
}

func (h *BookingHandler) GetSession(e *core.RequestEvent) error {
	session, err := h.wizard.GetSession(e.Request.Context(), e.Request.PathValue("sessionId"))
	if err != nil {
		return wizardError(err)
	}
	return e.JSON(http.StatusOK, session)
}

func (h *BookingHandler) GetSummary(e *core.RequestEvent) error {
	summary, err := h.wizard.Summarize(e.Request.Context(), e.Request.PathValue("sessionId"))
	if err != nil {
		return wizardError(err)
	}
	return e.JSON(http.StatusOK, summary)
}

func (h *BookingHandler) SubmitDetails(e *core.RequestEvent) error {
	var attendee models.AttendeeInfo
	if err := e.BindBody(&attendee); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	session, err := h.wizard.SubmitDetails(e.Request.Context(), e.Request.PathValue("sessionId"), attendee)
	if err != nil {
		return wizardError(err)
	}
	return e.JSON(http.StatusOK, session)
}

func (h *BookingHandler) SelectZone(e *core.RequestEvent) error {
	var req struct {
		ZoneID string `json:"zone_id"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if req.ZoneID == "" {
		return apis.NewBadRequestError("zone_id is required", nil)
	}

	session, err := h.wizard.SelectZone(e.Request.Context(), e.Request.PathValue("sessionId"), req.ZoneID)
	if err != nil {
		return wizardError(err)
	}
	return e.JSON(http.StatusOK, session)
}

func (h *BookingHandler) Back(e *core.RequestEvent) error {
	session, err := h.wizard.Back(e.Request.Context(), e.Request.PathValue("sessionId"))
	if err != nil {
		return wizardError(err)
	}
	return e.JSON(http.StatusOK, session)
}

func (h *BookingHandler) SetAccommodation(e *core.RequestEvent) error {
	var req struct {
		Accommodation bool `json:"accommodation"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	session, err := h.wizard.SetAccommodation(e.Request.Context(), e.Request.PathValue("sessionId"), req.Accommodation)
	if err != nil {
		return wizardError(err)
	}
	return e.JSON(http.StatusOK, session)
}

func (h *BookingHandler) Verify(e *core.RequestEvent) error {
	var req struct {
		Input string `json:"input"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	session, err := h.wizard.Verify(e.Request.Context(), e.Request.PathValue("sessionId"), req.Input)
	if err != nil {
		return wizardError(err)
	}
	return e.JSON(http.StatusOK, session)
}

func (h *BookingHandler) CreateOrder(e *core.RequestEvent) error {
	order, err := h.booking.CreateOrder(e.Request.Context(), e.Request.PathValue("sessionId"))
	if err != nil {
		return wizardError(err)
	}
	return e.JSON(http.StatusOK, order)
}

func (h *BookingHandler) Confirm(e *core.RequestEvent) error {
	var req struct {
		PaymentID string `json:"payment_id"`
		OrderID   string `json:"order_id"`
		Signature string `json:"signature"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if req.PaymentID == "" || req.OrderID == "" {
		return apis.NewBadRequestError("payment_id and order_id are required", nil)
	}

	ticket, link, err := h.booking.Confirm(e.Request.Context(), e.Request.PathValue("sessionId"), req.PaymentID, req.OrderID, req.Signature)
	if err != nil {
		if errors.Is(err, gateway.ErrSignatureMismatch) {
			return apis.NewForbiddenError("Payment signature mismatch", nil)
		}
		return wizardError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"ticket":      ticket,
		"ticket_link": link,
	})
}
