package models

import "time"

// BookingStatusConfirmed is the only status this system ever writes: a
// record exists exactly when a payment succeeded.
const BookingStatusConfirmed = "CONFIRMED"

// BookingRecord is the row persisted to the bookings collection after a
// successful payment callback. It is insert-only.
type BookingRecord struct {
	PaymentID         string    `json:"payment_id"`
	OrderID           string    `json:"order_id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Gender            string    `json:"gender"`
	College           string    `json:"college"`
	ZoneID            string    `json:"zone_id"`
	ZoneName          string    `json:"zone_name"`
	Accommodation     bool      `json:"accommodation"`
	AmountPaid        int       `json:"amount_paid"`
	Status            string    `json:"status"`
	IsRahasya         bool      `json:"is_rahasya"`
	VerificationInput string    `json:"verification_input"`
	Created           time.Time `json:"created"`
}
