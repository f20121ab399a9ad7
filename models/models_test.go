package models

import (
	"encoding/json"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAttendee() AttendeeInfo {
	return AttendeeInfo{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha.verma@example.com",
		Phone:     "9876543210",
		Gender:    GenderFemale,
		College:   "NIT Raipur",
	}
}

func TestAttendeeInfo_Validate_Success(t *testing.T) {
	assert.NoError(t, validAttendee().Validate())
}

func TestAttendeeInfo_Validate_SingleFieldFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AttendeeInfo)
		field   string
	}{
		{"missing first name", func(a *AttendeeInfo) { a.FirstName = "" }, "first_name"},
		{"missing last name", func(a *AttendeeInfo) { a.LastName = "" }, "last_name"},
		{"malformed email", func(a *AttendeeInfo) { a.Email = "not-an-email" }, "email"},
		{"short phone", func(a *AttendeeInfo) { a.Phone = "12345" }, "phone"},
		{"non-numeric phone", func(a *AttendeeInfo) { a.Phone = "98765xyz10" }, "phone"},
		{"unknown gender", func(a *AttendeeInfo) { a.Gender = "Unknown" }, "gender"},
		{"unlisted college", func(a *AttendeeInfo) { a.College = "Hogwarts" }, "college"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attendee := validAttendee()
			tt.mutate(&attendee)

			err := attendee.Validate()
			require.Error(t, err)

			// Exactly the violated field must carry the error.
			errs, ok := err.(validation.Errors)
			require.True(t, ok, "expected field-keyed validation errors")
			assert.Len(t, errs, 1)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestAttendeeInfo_IsAmity(t *testing.T) {
	attendee := validAttendee()
	assert.False(t, attendee.IsAmity())

	attendee.College = AmityCollege
	assert.True(t, attendee.IsAmity())
}

func TestZoneTier_Total(t *testing.T) {
	zone := ZoneTier{
		ID:               "tech-fest",
		Name:             "Tech Bazaar",
		Category:         CategoryNonAmitian,
		BasePrice:        1299,
		TechFestFee:      300,
		AccommodationFee: 300,
	}

	assert.Equal(t, 1599, zone.Total(false))
	assert.Equal(t, 1899, zone.Total(true))

	// Toggling accommodation alone moves the total by exactly the fee.
	assert.Equal(t, zone.AccommodationFee, zone.Total(true)-zone.Total(false))

	// Pure: repeated calls with the same inputs agree.
	assert.Equal(t, zone.Total(false), zone.Total(false))
}

func TestZoneTier_Bookable(t *testing.T) {
	zone := ZoneTier{IsActive: true, AvailableSeats: 10}
	assert.True(t, zone.Bookable())

	soldOut := ZoneTier{IsActive: true, AvailableSeats: 0}
	assert.False(t, soldOut.Bookable())

	reserved := ZoneTier{IsActive: false, AvailableSeats: 50}
	assert.False(t, reserved.Bookable())
}

func TestTicketDescriptor_JSONRoundTrip(t *testing.T) {
	issued := time.Date(2026, 2, 14, 18, 30, 0, 0, time.UTC)

	descriptor := TicketDescriptor{
		Event:          "AMISPARK x RAHASYA 2026",
		TicketID:       "order_SIM_ABC123",
		PaymentRef:     "pay_QZ77xyz",
		AttendeeName:   "Asha Verma",
		AttendeeEmail:  "asha.verma@example.com",
		College:        "NIT Raipur",
		VerificationID: "NIT2024117",
		Zone:           "Tech Bazaar",
		AmountPaid:     1299,
		Status:         BookingStatusConfirmed,
		IsRahasya:      false,
		IssuedAt:       issued,
	}

	data, err := json.Marshal(descriptor)
	require.NoError(t, err)

	var decoded TicketDescriptor
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, descriptor, decoded)
}

func TestTicketDescriptor_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(TicketDescriptor{TicketID: "order_SIM_ABC123"})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	// The digital ticket page and the email link both read these exact keys.
	for _, key := range []string{
		"event", "ticket_id", "payment_ref", "attendee_name", "attendee_email",
		"college", "verification_id", "zone", "amount_paid", "status",
		"is_rahasya", "issued_at",
	} {
		assert.Contains(t, raw, key)
	}
}

func TestWizardSession_JSONRoundTrip(t *testing.T) {
	attendee := validAttendee()
	session := WizardSession{
		ID:            "A1B2C3D4",
		Step:          StepPayment,
		Attendee:      &attendee,
		ZoneID:        "tech-fest",
		Accommodation: true,
		Verified:      true,
		VerifyInput:   "NIT2024117",
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}

	data, err := json.Marshal(session)
	require.NoError(t, err)

	var decoded WizardSession
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, session, decoded)
}
