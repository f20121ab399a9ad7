package mailer

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"

	"amispark/utils"
)

// Sender delivers one rendered email and returns the provider message id.
type Sender interface {
	Send(ctx context.Context, from, to, subject, html string) (string, error)
}

// SendTicketRequest is the relay's wire contract with the booking backend.
type SendTicketRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	TicketID  string `json:"ticketId"`
	Zone      string `json:"zone"`
	Amount    int    `json:"amount"`
	QRLink    string `json:"qrLink"`
	IsRahasya bool   `json:"isRahasya"`
}

// Relay is the mail relay HTTP surface. All provider traffic goes through a
// circuit breaker so a dead provider fails fast instead of piling up.
type Relay struct {
	sender  Sender
	breaker *utils.CircuitBreaker
	from    string
}

func NewRelay(sender Sender, from string) *Relay {
	return &Relay{
		sender:  sender,
		breaker: utils.NewCircuitBreaker("mail-provider"),
		from:    from,
	}
}

func (r *Relay) RegisterRoutes(e *echo.Echo) {
	e.GET("/", r.Root)
	e.GET("/health", r.Health)
	e.POST("/api/send-ticket", r.SendTicket)
}

func (r *Relay) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Amispark Mailer Service is Running",
	})
}

func (r *Relay) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"breaker": r.breaker.State().String(),
	})
}

func (r *Relay) SendTicket(c echo.Context) error {
	var req SendTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.Email == "" || req.TicketID == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "email and ticketId are required",
		})
	}

	subject, html, err := RenderTicketEmail(TicketEmailData{
		Name:      req.Name,
		Zone:      req.Zone,
		Amount:    req.Amount,
		QRLink:    req.QRLink,
		IsRahasya: req.IsRahasya,
	})
	if err != nil {
		slog.Error("Failed to render ticket email", "ticket_id", req.TicketID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Failed to render email",
		})
	}

	ctx := c.Request().Context()
	result, err := r.breaker.Execute(ctx, func() (any, error) {
		return r.sender.Send(ctx, r.from, req.Email, subject, html)
	})
	if err != nil {
		slog.Error("Failed to send ticket email", "ticket_id", req.TicketID, "to", req.Email, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Failed to send email",
		})
	}

	slog.Info("Ticket email sent", "ticket_id", req.TicketID, "message_id", result)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    result,
	})
}
