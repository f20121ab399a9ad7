package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketbase/pocketbase/core"
	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"amispark/config"
	"amispark/internal/mailer"
	"amispark/internal/services/gateway"
	"amispark/models"
	"amispark/monitoring"
)

// ErrOrderMismatch is returned when a payment callback references an order
// that was not issued for the session.
var ErrOrderMismatch = errors.New("order does not belong to this session")

const (
	bookingCollection = "bookings"
	mailDeadLetterKey = "mail:dead_letter"
)

// BookingService drives the payment leg of the wizard: it opens gateway
// orders, settles callbacks into bookings, and issues tickets.
type BookingService struct {
	app     core.App
	cfg     *config.Config
	wizard  *WizardService
	pricing *PricingService
	gateway gateway.Interface
	relay   *mailer.RelayClient
	pubnub  *pubnub.PubNub
	monitor *monitoring.Monitor
	redis   *redis.Client
}

func NewBookingService(
	app core.App,
	cfg *config.Config,
	wizard *WizardService,
	pricing *PricingService,
	gw gateway.Interface,
	relay *mailer.RelayClient,
	pn *pubnub.PubNub,
	monitor *monitoring.Monitor,
	redisClient *redis.Client,
) *BookingService {
	return &BookingService{
		app:     app,
		cfg:     cfg,
		wizard:  wizard,
		pricing: pricing,
		gateway: gw,
		relay:   relay,
		pubnub:  pn,
		monitor: monitor,
		redis:   redisClient,
	}
}

// CreateOrder opens a gateway order for the session's current selections.
// Verification must have passed; the amount is recomputed server-side.
func (s *BookingService) CreateOrder(ctx context.Context, sessionID string) (*gateway.Order, error) {
	session, err := s.wizard.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepPayment || session.Attendee == nil {
		return nil, ErrInvalidStep
	}
	if !session.Verified {
		return nil, ErrNotVerified
	}

	zone, err := s.pricing.GetZone(ctx, session.ZoneID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrZoneUnavailable, err)
	}

	total := zone.Total(session.Accommodation)
	order, err := s.gateway.CreateOrder(ctx, &gateway.OrderRequest{
		Amount:   decimal.NewFromInt(int64(total)),
		Currency: "INR",
		Receipt:  sessionID,
		Notes: map[string]string{
			"zone":  zone.Name,
			"theme": zone.Theme,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	if _, err := s.wizard.SetOrder(ctx, sessionID, order.ID); err != nil {
		return nil, err
	}

	return order, nil
}

// Confirm settles a payment callback: it verifies the signature, takes a
// seat and writes the booking in one transaction, then issues the ticket.
// Mail delivery is fire-and-forget; a failed send lands in a dead-letter
// list instead of failing the booking.
func (s *BookingService) Confirm(ctx context.Context, sessionID, paymentID, orderID, signature string) (*models.TicketDescriptor, string, error) {
	session, err := s.wizard.GetSession(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	if session.Step != models.StepPayment || session.Attendee == nil {
		return nil, "", ErrInvalidStep
	}
	if !session.Verified {
		return nil, "", ErrNotVerified
	}
	if session.OrderID == "" || session.OrderID != orderID {
		return nil, "", ErrOrderMismatch
	}

	if err := s.gateway.VerifySignature(orderID, paymentID, signature); err != nil {
		return nil, "", err
	}

	zone, err := s.pricing.GetZone(ctx, session.ZoneID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrZoneUnavailable, err)
	}

	total := zone.Total(session.Accommodation)

	// Seat decrement and booking insert commit together, so the counter
	// can never drift from the number of confirmed bookings.
	err = s.app.RunInTransaction(func(txApp core.App) error {
		if err := s.pricing.ReserveSeat(txApp, zone.ID); err != nil {
			return err
		}

		collection, err := txApp.FindCollectionByNameOrId(bookingCollection)
		if err != nil {
			return err
		}

		record := core.NewRecord(collection)
		record.Set("payment_id", paymentID)
		record.Set("order_id", orderID)
		record.Set("first_name", session.Attendee.FirstName)
		record.Set("last_name", session.Attendee.LastName)
		record.Set("email", session.Attendee.Email)
		record.Set("phone", session.Attendee.Phone)
		record.Set("gender", session.Attendee.Gender)
		record.Set("college", session.Attendee.College)
		record.Set("zone_id", zone.ID)
		record.Set("zone_name", zone.Name)
		record.Set("accommodation", session.Accommodation)
		record.Set("amount_paid", total)
		record.Set("status", models.BookingStatusConfirmed)
		record.Set("is_rahasya", session.IsRahasya)
		record.Set("verification_input", session.VerifyInput)

		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	descriptor := NewTicketDescriptor(s.cfg.EventName, session, zone, paymentID, orderID, time.Now())
	link, err := TicketLink(s.cfg.TicketBaseURL, descriptor)
	if err != nil {
		return nil, "", err
	}

	if err := s.wizard.Complete(ctx, session); err != nil {
		slog.Warn("Failed to mark session confirmed", "session_id", sessionID, "error", err)
	}

	s.monitor.TrackBooking(zone.Name, zone.Theme, total)

	go s.sendTicketMail(descriptor, link)
	s.publishConfirmation(sessionID, descriptor)

	return descriptor, link, nil
}

func (s *BookingService) sendTicketMail(descriptor *models.TicketDescriptor, link string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.MailTimeout)
	defer cancel()

	req := &mailer.SendTicketRequest{
		Email:     descriptor.AttendeeEmail,
		Name:      descriptor.AttendeeName,
		TicketID:  descriptor.TicketID,
		Zone:      descriptor.Zone,
		Amount:    descriptor.AmountPaid,
		QRLink:    link,
		IsRahasya: descriptor.IsRahasya,
	}

	if err := s.relay.SendTicket(ctx, req); err != nil {
		slog.Error("Failed to send ticket mail", "ticket_id", descriptor.TicketID, "error", err)
		s.monitor.TrackMailSend("failed")
		s.deadLetter(req)
		return
	}

	s.monitor.TrackMailSend("sent")
}

// deadLetter parks a failed mail job for later replay by an operator.
func (s *BookingService) deadLetter(req *mailer.SendTicketRequest) {
	data, err := json.Marshal(req)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.redis.RPush(ctx, mailDeadLetterKey, string(data)).Err(); err != nil {
		slog.Error("Failed to dead-letter mail job", "ticket_id", req.TicketID, "error", err)
	}
}

func (s *BookingService) publishConfirmation(sessionID string, descriptor *models.TicketDescriptor) {
	if s.pubnub == nil {
		return
	}

	channel := fmt.Sprintf("booking-%s", sessionID)
	s.pubnub.Publish().
		Channel(channel).
		Message(map[string]interface{}{
			"type":      "booking_confirmed",
			"ticket_id": descriptor.TicketID,
			"zone":      descriptor.Zone,
			"amount":    descriptor.AmountPaid,
		}).
		Execute()
}
