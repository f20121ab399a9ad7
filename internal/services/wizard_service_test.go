package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amispark/config"
	"amispark/models"
)

type stubDirectory struct {
	zones map[string]*models.ZoneTier
}

func (d *stubDirectory) ListZones(_ context.Context, theme string) ([]models.ZoneTier, error) {
	var out []models.ZoneTier
	for _, z := range d.zones {
		if z.Theme == theme {
			out = append(out, *z)
		}
	}
	return out, nil
}

func (d *stubDirectory) GetZone(_ context.Context, zoneID string) (*models.ZoneTier, error) {
	zone, ok := d.zones[zoneID]
	if !ok {
		return nil, fmt.Errorf("zone %s not found", zoneID)
	}
	copied := *zone
	return &copied, nil
}

func testZones() *stubDirectory {
	return &stubDirectory{zones: map[string]*models.ZoneTier{
		"tech-fest": {
			ID: "tech-fest", Name: "Tech Bazaar",
			Category: models.CategoryNonAmitian, Theme: models.ThemeAmispark,
			BasePrice: 1299, TechFestFee: 300, AccommodationFee: 300,
			Capacity: 500, AvailableSeats: 500, IsActive: true,
		},
		"general": {
			ID: "general", Name: "General Access",
			Category: models.CategoryAmitian, Theme: models.ThemeAmispark,
			BasePrice: 999, TechFestFee: 300,
			Capacity: 550, AvailableSeats: 550, IsActive: true,
		},
		"fanpit": {
			ID: "fanpit", Name: "Star Circle",
			Category: models.CategoryAmitian, Theme: models.ThemeAmispark,
			BasePrice: 1499, TechFestFee: 300,
			Capacity: 50, AvailableSeats: 50, IsActive: true,
		},
		"faculty": {
			ID: "faculty", Name: "Royal Box",
			Category: models.CategoryAmitian, Theme: models.ThemeAmispark,
			Capacity: 50, AvailableSeats: 50, IsActive: false,
		},
		"sold-out": {
			ID: "sold-out", Name: "Pit Lane",
			Category: models.CategoryNonAmitian, Theme: models.ThemeAmispark,
			BasePrice: 799, TechFestFee: 300,
			Capacity: 100, AvailableSeats: 0, IsActive: true,
		},
	}}
}

func setupWizard(t *testing.T) (*WizardService, redismock.ClientMock) {
	t.Helper()

	db, mock := redismock.NewClientMock()
	cfg := &config.Config{
		SessionTTL:  45 * time.Minute,
		VerifyDelay: 0,
	}

	return NewWizardService(db, testZones(), cfg), mock
}

func mustJSON(t *testing.T, session *models.WizardSession) string {
	t.Helper()
	data, err := json.Marshal(session)
	require.NoError(t, err)
	return string(data)
}

func expectLoad(t *testing.T, mock redismock.ClientMock, session *models.WizardSession) {
	t.Helper()
	mock.ExpectGet(sessionKey(session.ID)).SetVal(mustJSON(t, session))
}

func expectSave(t *testing.T, mock redismock.ClientMock, session *models.WizardSession) {
	t.Helper()
	mock.ExpectSet(sessionKey(session.ID), mustJSON(t, session), 45*time.Minute).SetVal("OK")
}

func ashaVerma() models.AttendeeInfo {
	return models.AttendeeInfo{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha.verma@example.com",
		Phone:     "9876543210",
		Gender:    models.GenderFemale,
		College:   "NIT Raipur",
	}
}

func amityAttendee() models.AttendeeInfo {
	a := ashaVerma()
	a.College = models.AmityCollege
	return a
}

func freshSession(id string) *models.WizardSession {
	return &models.WizardSession{
		ID:        id,
		Step:      models.StepDetails,
		CreatedAt: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestWizard_StartSession(t *testing.T) {
	service, mock := setupWizard(t)

	mock.Regexp().ExpectSet(`wizard:session:[A-Z2-9]{8}`, `.*`, 45*time.Minute).SetVal("OK")

	session, err := service.StartSession(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, session.ID, 8)
	assert.Equal(t, models.StepDetails, session.Step)
	assert.False(t, session.IsRahasya)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWizard_SubmitDetails_Success(t *testing.T) {
	service, mock := setupWizard(t)
	session := freshSession("SESS0001")

	attendee := ashaVerma()
	after := *session
	after.Attendee = &attendee
	after.Step = models.StepZoneSelect

	expectLoad(t, mock, session)
	expectSave(t, mock, &after)

	updated, err := service.SubmitDetails(context.Background(), session.ID, attendee)
	require.NoError(t, err)
	assert.Equal(t, models.StepZoneSelect, updated.Step)
	require.NotNil(t, updated.Attendee)
	assert.Equal(t, "NIT Raipur", updated.Attendee.College)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWizard_SubmitDetails_InvalidFieldBlocksTransition(t *testing.T) {
	service, mock := setupWizard(t)
	session := freshSession("SESS0002")

	attendee := ashaVerma()
	attendee.Email = "not-an-email"

	// Only a load is expected: invalid input must not touch the session.
	expectLoad(t, mock, session)

	_, err := service.SubmitDetails(context.Background(), session.ID, attendee)
	require.Error(t, err)

	errs, ok := err.(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, errs, "email")
	assert.Len(t, errs, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWizard_SelectZone_EligibilityPartition(t *testing.T) {
	tests := []struct {
		name     string
		attendee models.AttendeeInfo
		zoneID   string
		wantErr  error
	}{
		{"non-amity books tech-fest", ashaVerma(), "tech-fest", nil},
		{"non-amity rejected from amity-exclusive general", ashaVerma(), "general", ErrEligibility},
		{"non-amity rejected from star circle", ashaVerma(), "fanpit", ErrEligibility},
		{"amity books general", amityAttendee(), "general", nil},
		{"amity books star circle", amityAttendee(), "fanpit", nil},
		{"amity rejected from tech-fest", amityAttendee(), "tech-fest", ErrEligibility},
		{"reserved zone rejected for amity", amityAttendee(), "faculty", ErrZoneUnavailable},
		{"sold out zone rejected", ashaVerma(), "sold-out", ErrZoneUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mock := setupWizard(t)

			attendee := tt.attendee
			session := freshSession("SESS0003")
			session.Step = models.StepZoneSelect
			session.Attendee = &attendee

			expectLoad(t, mock, session)
			if tt.wantErr == nil {
				after := *session
				after.ZoneID = tt.zoneID
				after.Step = models.StepPayment
				expectSave(t, mock, &after)
			}

			updated, err := service.SelectZone(context.Background(), session.ID, tt.zoneID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.StepPayment, updated.Step)
				assert.Equal(t, tt.zoneID, updated.ZoneID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWizard_SelectZone_ResetsAccommodationAndVerification(t *testing.T) {
	service, mock := setupWizard(t)

	attendee := ashaVerma()
	session := freshSession("SESS0004")
	session.Step = models.StepPayment
	session.Attendee = &attendee
	session.ZoneID = "sold-out"
	session.Accommodation = true
	session.Verified = true
	session.VerifyInput = "NIT2024117"
	session.OrderID = "order_SIM_OLD111"

	after := *session
	after.ZoneID = "tech-fest"
	after.Accommodation = false
	after.Verified = false
	after.VerifyInput = ""
	after.OrderID = ""
	after.Step = models.StepPayment

	expectLoad(t, mock, session)
	expectSave(t, mock, &after)

	updated, err := service.SelectZone(context.Background(), session.ID, "tech-fest")
	require.NoError(t, err)
	assert.False(t, updated.Accommodation)
	assert.False(t, updated.Verified)
	assert.Empty(t, updated.OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWizard_Verify_NonAmityAcceptsAnyID(t *testing.T) {
	service, mock := setupWizard(t)

	attendee := ashaVerma()
	session := freshSession("SESS0005")
	session.Step = models.StepPayment
	session.Attendee = &attendee
	session.ZoneID = "tech-fest"

	after := *session
	after.Verified = true
	after.VerifyInput = "NIT2024117"

	expectLoad(t, mock, session)
	expectSave(t, mock, &after)

	updated, err := service.Verify(context.Background(), session.ID, "NIT2024117")
	require.NoError(t, err)
	assert.True(t, updated.Verified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWizard_Verify_EmptyInputRejected(t *testing.T) {
	service, mock := setupWizard(t)

	attendee := ashaVerma()
	session := freshSession("SESS0006")
	session.Step = models.StepPayment
	session.Attendee = &attendee

	expectLoad(t, mock, session)

	_, err := service.Verify(context.Background(), session.ID, "   ")
	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWizard_Verify_AmityPatternMatch(t *testing.T) {
	service, mock := setupWizard(t)

	attendee := amityAttendee()
	session := freshSession("SESS0007")
	session.Step = models.StepPayment
	session.Attendee = &attendee

	after := *session
	after.Verified = true
	after.VerifyInput = "rohan@AMITY.edu"

	expectLoad(t, mock, session)
	expectSave(t, mock, &after)

	updated, err := service.Verify(context.Background(), session.ID, "rohan@AMITY.edu")
	require.NoError(t, err)
	assert.True(t, updated.Verified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWizard_Verify_AmityMismatchResetsFlag(t *testing.T) {
	service, mock := setupWizard(t)

	attendee := amityAttendee()
	session := freshSession("SESS0008")
	session.Step = models.StepPayment
	session.Attendee = &attendee
	session.Verified = true
	session.VerifyInput = "old@amity.edu"

	after := *session
	after.Verified = false
	after.VerifyInput = ""

	expectLoad(t, mock, session)
	expectSave(t, mock, &after)

	_, err := service.Verify(context.Background(), session.ID, "rohan@gmail.com")
	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWizard_Back_ClearsSelection(t *testing.T) {
	service, mock := setupWizard(t)

	attendee := ashaVerma()
	session := freshSession("SESS0009")
	session.Step = models.StepPayment
	session.Attendee = &attendee
	session.ZoneID = "tech-fest"
	session.Verified = true
	session.VerifyInput = "NIT2024117"

	after := *session
	after.Step = models.StepZoneSelect
	after.ZoneID = ""
	after.Verified = false
	after.VerifyInput = ""

	expectLoad(t, mock, session)
	expectSave(t, mock, &after)

	updated, err := service.Back(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepZoneSelect, updated.Step)
	assert.Empty(t, updated.ZoneID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWizard_SetAccommodation_RequiresFee(t *testing.T) {
	service, mock := setupWizard(t)

	attendee := amityAttendee()
	session := freshSession("SESS0010")
	session.Step = models.StepPayment
	session.Attendee = &attendee
	session.ZoneID = "general" // no accommodation fee

	expectLoad(t, mock, session)

	_, err := service.SetAccommodation(context.Background(), session.ID, true)
	assert.ErrorIs(t, err, ErrNoAccommodation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWizard_Summarize_TotalComputation(t *testing.T) {
	service, mock := setupWizard(t)

	attendee := ashaVerma()
	session := freshSession("SESS0011")
	session.Step = models.StepPayment
	session.Attendee = &attendee
	session.ZoneID = "tech-fest"

	expectLoad(t, mock, session)

	summary, err := service.Summarize(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1599, summary.Total) // 1299 base + 300 tech fest fee

	// Same selections with accommodation: exactly the fee more.
	session.Accommodation = true
	expectLoad(t, mock, session)

	withAccommodation, err := service.Summarize(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1899, withAccommodation.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The end-to-end path from the acceptance scenario: a non-Amity attendee is
// bounced off the Amity-exclusive zone, books the external zone at 1599,
// declines accommodation and verifies with a college id.
func TestWizard_NonAmityEndToEnd(t *testing.T) {
	service, mock := setupWizard(t)
	ctx := context.Background()

	session := freshSession("SESSE2E1")
	attendee := ashaVerma()

	// Step 1: details.
	afterDetails := *session
	afterDetails.Attendee = &attendee
	afterDetails.Step = models.StepZoneSelect
	expectLoad(t, mock, session)
	expectSave(t, mock, &afterDetails)

	_, err := service.SubmitDetails(ctx, session.ID, attendee)
	require.NoError(t, err)

	// Step 2: the Amity-exclusive zone is rejected with no state change.
	expectLoad(t, mock, &afterDetails)
	_, err = service.SelectZone(ctx, session.ID, "general")
	assert.ErrorIs(t, err, ErrEligibility)

	// The external zone goes through.
	afterZone := afterDetails
	afterZone.ZoneID = "tech-fest"
	afterZone.Step = models.StepPayment
	expectLoad(t, mock, &afterDetails)
	expectSave(t, mock, &afterZone)

	_, err = service.SelectZone(ctx, session.ID, "tech-fest")
	require.NoError(t, err)

	// Step 3: verification with a plain college id.
	afterVerify := afterZone
	afterVerify.Verified = true
	afterVerify.VerifyInput = "NIT2024117"
	expectLoad(t, mock, &afterZone)
	expectSave(t, mock, &afterVerify)

	_, err = service.Verify(ctx, session.ID, "NIT2024117")
	require.NoError(t, err)

	// Total: 1299 + 300, accommodation declined.
	expectLoad(t, mock, &afterVerify)
	summary, err := service.Summarize(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1599, summary.Total)
	assert.True(t, summary.Verified)

	assert.NoError(t, mock.ExpectationsWereMet())
}
