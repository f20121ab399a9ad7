package services

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"amispark/models"
)

// ErrInvalidTicket is the single terminal error for any malformed ticket
// link: bad base64, bad JSON, or a payload missing its ticket id. The view
// layer renders one fixed error page off it, never a partial ticket.
var ErrInvalidTicket = errors.New("invalid ticket data")

// EncodeDescriptor serializes a descriptor to the base64 JSON form carried
// in the QR link. The link is the descriptor's only persistence.
func EncodeDescriptor(descriptor *models.TicketDescriptor) (string, error) {
	data, err := json.Marshal(descriptor)
	if err != nil {
		return "", fmt.Errorf("encode descriptor: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDescriptor is the inverse of EncodeDescriptor.
func DecodeDescriptor(encoded string) (*models.TicketDescriptor, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidTicket
	}

	var descriptor models.TicketDescriptor
	if err := json.Unmarshal(raw, &descriptor); err != nil {
		return nil, ErrInvalidTicket
	}
	if descriptor.TicketID == "" {
		return nil, ErrInvalidTicket
	}

	return &descriptor, nil
}

// TicketLink builds the URL embedded in the QR code and the emailed button.
func TicketLink(baseURL string, descriptor *models.TicketDescriptor) (string, error) {
	encoded, err := EncodeDescriptor(descriptor)
	if err != nil {
		return "", err
	}
	return baseURL + "?data=" + url.QueryEscape(encoded), nil
}

// NewTicketDescriptor derives the transient ticket payload from the session
// and zone at the moment of payment success. The ticket id is the order id.
func NewTicketDescriptor(eventName string, session *models.WizardSession, zone *models.ZoneTier, paymentID, orderID string, issuedAt time.Time) *models.TicketDescriptor {
	return &models.TicketDescriptor{
		Event:          eventName,
		TicketID:       orderID,
		PaymentRef:     paymentID,
		AttendeeName:   session.Attendee.FullName(),
		AttendeeEmail:  session.Attendee.Email,
		College:        session.Attendee.College,
		VerificationID: session.VerifyInput,
		Zone:           zone.Name,
		AmountPaid:     zone.Total(session.Accommodation),
		Status:         models.BookingStatusConfirmed,
		IsRahasya:      session.IsRahasya,
		IssuedAt:       issuedAt,
	}
}
