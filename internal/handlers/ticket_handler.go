package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"amispark/internal/services"
	"amispark/models"
	"amispark/monitoring"
)

type TicketHandler struct {
	tickets *services.TicketService
	monitor *monitoring.Monitor
}

func NewTicketHandler(tickets *services.TicketService, monitor *monitoring.Monitor) *TicketHandler {
	return &TicketHandler{
		tickets: tickets,
		monitor: monitor,
	}
}

func (h *TicketHandler) RegisterRoutes(e *core.ServeEvent) {
	e.Router.GET("/api/v1/ticket", h.ViewTicket)
}

// decodeTicketParam pulls the encoded descriptor out of the ?data= query
// parameter and rejects anything that does not decode to a ticket.
func decodeTicketParam(r *http.Request) (*models.TicketDescriptor, error) {
	encoded := r.URL.Query().Get("data")
	if encoded == "" {
		return nil, services.ErrInvalidTicket
	}
	return services.DecodeDescriptor(encoded)
}

// ViewTicket renders a ticket from its self-contained link and logs the
// scan. A failed scan write never hides a valid ticket from its holder.
func (h *TicketHandler) ViewTicket(e *core.RequestEvent) error {
	descriptor, err := decodeTicketParam(e.Request)
	if err != nil {
		h.monitor.TrackScan("invalid")
		return apis.NewBadRequestError("Invalid or corrupted ticket data", nil)
	}

	device := e.Request.UserAgent()
	report, err := h.tickets.Scan(e.Request.Context(), descriptor.TicketID, device)
	if err != nil {
		slog.Error("Failed to record ticket scan", "ticket_id", descriptor.TicketID, "error", err)
		report = &models.ScanReport{TicketID: descriptor.TicketID}
	} else if report.Reused {
		h.monitor.TrackScan("reused")
	} else {
		h.monitor.TrackScan("valid")
	}

	return e.JSON(http.StatusOK, map[string]any{
		"ticket": descriptor,
		"scan":   report,
	})
}
