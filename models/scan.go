package models

import "time"

// ScanEvent is one logged visit to the ticket view page. Every successful
// decode of a ticket link appends a row; there is no deduplication, the
// attendee's own first view included.
type ScanEvent struct {
	TicketID  string    `json:"ticket_id"`
	ScannedAt time.Time `json:"scanned_at"`
	Device    string    `json:"device"`
}

// ScanReport is derived from the accumulated scan rows for one ticket id.
// The reuse warning is advisory, not access control.
type ScanReport struct {
	TicketID string      `json:"ticket_id"`
	Count    int         `json:"count"`
	Reused   bool        `json:"reused"`
	Recent   []time.Time `json:"recent"`
}
