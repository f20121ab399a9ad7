package models

import "time"

// TicketDescriptor is the self-contained payload embedded in a ticket's QR
// link. It is never stored server-side: the base64 URL fragment is its only
// persistence, so anyone holding the link can reconstruct the ticket view.
type TicketDescriptor struct {
	Event          string    `json:"event"`
	TicketID       string    `json:"ticket_id"`
	PaymentRef     string    `json:"payment_ref"`
	AttendeeName   string    `json:"attendee_name"`
	AttendeeEmail  string    `json:"attendee_email"`
	College        string    `json:"college"`
	VerificationID string    `json:"verification_id"`
	Zone           string    `json:"zone"`
	AmountPaid     int       `json:"amount_paid"`
	Status         string    `json:"status"`
	IsRahasya      bool      `json:"is_rahasya"`
	IssuedAt       time.Time `json:"issued_at"`
}
