package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"amispark/config"
	"amispark/models"
	"amispark/utils"
)

// Wizard errors, mapped to HTTP responses by the handlers. Eligibility and
// availability failures surface as toasts and never mutate the session.
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidStep        = errors.New("operation not allowed at this step")
	ErrZoneUnavailable    = errors.New("zone unavailable")
	ErrEligibility        = errors.New("not eligible for this zone")
	ErrNotVerified        = errors.New("verification required before payment")
	ErrVerificationFailed = errors.New("verification failed")
	ErrNoAccommodation    = errors.New("accommodation not offered for this zone")
)

// ZoneDirectory is the read-only pricing/seat directory the wizard consults.
type ZoneDirectory interface {
	ListZones(ctx context.Context, theme string) ([]models.ZoneTier, error)
	GetZone(ctx context.Context, zoneID string) (*models.ZoneTier, error)
}

// WizardService drives the four-step booking flow. All state lives in a
// Redis-held session; every operation loads, guards, mutates and saves.
type WizardService struct {
	Redis  *redis.Client
	Zones  ZoneDirectory
	Config *config.Config
}

func NewWizardService(redisClient *redis.Client, zones ZoneDirectory, cfg *config.Config) *WizardService {
	return &WizardService{
		Redis:  redisClient,
		Zones:  zones,
		Config: cfg,
	}
}

func sessionKey(sessionID string) string {
	return "wizard:session:" + sessionID
}

// StartSession opens a fresh wizard at the attendee-details step.
func (s *WizardService) StartSession(ctx context.Context, isRahasya bool) (*models.WizardSession, error) {
	id, err := utils.GenerateCode(8)
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	session := &models.WizardSession{
		ID:        id,
		IsRahasya: isRahasya,
		Step:      models.StepDetails,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession loads a session by id.
func (s *WizardService) GetSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, err := s.Redis.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session models.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *WizardService) saveSession(ctx context.Context, session *models.WizardSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.Redis.Set(ctx, sessionKey(session.ID), string(data), s.Config.SessionTTL).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SubmitDetails validates the step-1 form. Invalid input blocks the
// transition, leaves the session untouched and returns field-keyed errors.
func (s *WizardService) SubmitDetails(ctx context.Context, sessionID string, attendee models.AttendeeInfo) (*models.WizardSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step > models.StepZoneSelect {
		return nil, ErrInvalidStep
	}

	if err := attendee.Validate(); err != nil {
		return nil, err
	}

	session.Attendee = &attendee
	session.Step = models.StepZoneSelect

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectZone applies the availability and eligibility guards, then moves to
// the payment step with accommodation and verification reset.
func (s *WizardService) SelectZone(ctx context.Context, sessionID, zoneID string) (*models.WizardSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step < models.StepZoneSelect || session.Step >= models.StepConfirmed || session.Attendee == nil {
		return nil, ErrInvalidStep
	}

	zone, err := s.Zones.GetZone(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrZoneUnavailable, err)
	}

	if err := s.checkZoneSelectable(session, zone); err != nil {
		return nil, err
	}

	// Fresh per zone selection: accommodation and verification restart.
	session.ZoneID = zone.ID
	session.Accommodation = false
	session.Verified = false
	session.VerifyInput = ""
	session.OrderID = ""
	session.Step = models.StepPayment

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *WizardService) checkZoneSelectable(session *models.WizardSession, zone *models.ZoneTier) error {
	if zone.Theme != session.Theme() {
		return fmt.Errorf("%w: %s belongs to a different event", ErrEligibility, zone.Name)
	}
	if !zone.IsActive {
		return fmt.Errorf("%w: Access Denied: %s is restricted", ErrZoneUnavailable, zone.Name)
	}
	if zone.AvailableSeats <= 0 {
		return fmt.Errorf("%w: %s is sold out", ErrZoneUnavailable, zone.Name)
	}

	// The college partition only applies to the main event; Rahasya zones
	// are reachable solely through its own restricted flow.
	if session.IsRahasya {
		return nil
	}

	if session.IsAmity() {
		if zone.Category != models.CategoryAmitian {
			return fmt.Errorf("%w: %s is reserved for external participants", ErrEligibility, zone.Name)
		}
	} else {
		if zone.Category != models.CategoryNonAmitian {
			return fmt.Errorf("%w: external participants can only book %s zones", ErrEligibility, models.CategoryNonAmitian)
		}
	}
	return nil
}

// Back is the single explicit backward transition: Payment to ZoneSelect.
func (s *WizardService) Back(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepPayment {
		return nil, ErrInvalidStep
	}

	session.Step = models.StepZoneSelect
	session.ZoneID = ""
	session.Accommodation = false
	session.Verified = false
	session.VerifyInput = ""
	session.OrderID = ""

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetAccommodation toggles the accommodation add-on at the payment step.
func (s *WizardService) SetAccommodation(ctx context.Context, sessionID string, accommodation bool) (*models.WizardSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepPayment {
		return nil, ErrInvalidStep
	}

	if accommodation {
		zone, err := s.Zones.GetZone(ctx, session.ZoneID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrZoneUnavailable, err)
		}
		if zone.AccommodationFee <= 0 {
			return nil, ErrNoAccommodation
		}
	}

	session.Accommodation = accommodation

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Verify runs the identity check gating the Pay action. Amity-classified
// attendees must present an email containing "amity"; everyone else any
// non-empty identifier. A mismatch resets the verified flag and is fully
// recoverable by re-entry.
func (s *WizardService) Verify(ctx context.Context, sessionID, input string) (*models.WizardSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepPayment {
		return nil, ErrInvalidStep
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: please enter your college email or id", ErrVerificationFailed)
	}

	// The check is a mock; the delay mimics a round-trip to a verifier.
	if s.Config.VerifyDelay > 0 {
		select {
		case <-time.After(s.Config.VerifyDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if session.IsAmity() && !strings.Contains(strings.ToLower(input), "amity") {
		session.Verified = false
		session.VerifyInput = ""
		if err := s.saveSession(ctx, session); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: invalid Amity email address", ErrVerificationFailed)
	}

	session.Verified = true
	session.VerifyInput = input

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetOrder records the gateway order id issued for this session.
func (s *WizardService) SetOrder(ctx context.Context, sessionID, orderID string) (*models.WizardSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepPayment {
		return nil, ErrInvalidStep
	}

	session.OrderID = orderID

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Complete marks the session confirmed after a successful payment callback.
func (s *WizardService) Complete(ctx context.Context, session *models.WizardSession) error {
	session.Step = models.StepConfirmed
	return s.saveSession(ctx, session)
}

// Summary is the order panel shown alongside the payment step.
type Summary struct {
	Step          int              `json:"step"`
	Zone          *models.ZoneTier `json:"zone,omitempty"`
	Accommodation bool             `json:"accommodation"`
	Verified      bool             `json:"verified"`
	Total         int              `json:"total"`
}

// Summarize recomputes the running total from current selections. The total
// is a pure function of zone and accommodation, rebuilt on every call.
func (s *WizardService) Summarize(ctx context.Context, sessionID string) (*Summary, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Step:          session.Step,
		Accommodation: session.Accommodation,
		Verified:      session.Verified,
	}

	if session.ZoneID != "" {
		zone, err := s.Zones.GetZone(ctx, session.ZoneID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrZoneUnavailable, err)
		}
		summary.Zone = zone
		summary.Total = zone.Total(session.Accommodation)
	}

	return summary, nil
}
