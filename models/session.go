package models

import "time"

// Wizard steps. The flow is linear with a single explicit backward
// transition from Payment to ZoneSelect.
const (
	StepDetails    = 1
	StepZoneSelect = 2
	StepPayment    = 3
	StepConfirmed  = 4
)

// WizardSession is the server-held state of one booking flow. It lives in
// Redis under a TTL and is mutated one step endpoint at a time.
type WizardSession struct {
	ID            string        `json:"id"`
	IsRahasya     bool          `json:"is_rahasya"`
	Step          int           `json:"step"`
	Attendee      *AttendeeInfo `json:"attendee,omitempty"`
	ZoneID        string        `json:"zone_id,omitempty"`
	Accommodation bool          `json:"accommodation"`
	Verified      bool          `json:"verified"`
	VerifyInput   string        `json:"verify_input,omitempty"`
	OrderID       string        `json:"order_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// IsAmity reports whether the session's attendee is Amity-classified.
// False until details are submitted.
func (s *WizardSession) IsAmity() bool {
	return s.Attendee != nil && s.Attendee.IsAmity()
}

// Theme names the zone set this session books against.
func (s *WizardSession) Theme() string {
	if s.IsRahasya {
		return ThemeRahasya
	}
	return ThemeAmispark
}
