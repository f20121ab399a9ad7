package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"amispark/models"
)

const scanCollection = "ticket_scans"

// TicketService appends to the scan log and reports replay status. Every
// scan is recorded, replays included; the gate decision comes from the count,
// never from suppressing the write.
type TicketService struct {
	app core.App
}

func NewTicketService(app core.App) *TicketService {
	return &TicketService{app: app}
}

// Scan records one presentation of a ticket and returns the report for it.
// The insert and the count run in one transaction so two simultaneous scans
// of the same ticket each see the other counted.
func (s *TicketService) Scan(ctx context.Context, ticketID, device string) (*models.ScanReport, error) {
	if ticketID == "" {
		return nil, ErrInvalidTicket
	}

	var events []models.ScanEvent

	err := s.app.RunInTransaction(func(txApp core.App) error {
		collection, err := txApp.FindCollectionByNameOrId(scanCollection)
		if err != nil {
			return err
		}

		record := core.NewRecord(collection)
		record.Set("ticket_id", ticketID)
		record.Set("device", device)
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("record scan: %w", err)
		}

		rows, err := txApp.FindRecordsByFilter(
			scanCollection,
			"ticket_id = {:ticket_id}",
			"-created",
			0,
			0,
			dbx.Params{"ticket_id": ticketID},
		)
		if err != nil {
			return fmt.Errorf("load scan history: %w", err)
		}

		events = make([]models.ScanEvent, 0, len(rows))
		for _, row := range rows {
			events = append(events, models.ScanEvent{
				TicketID:  row.GetString("ticket_id"),
				ScannedAt: row.GetDateTime("created").Time(),
				Device:    row.GetString("device"),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return BuildScanReport(ticketID, events), nil
}

// BuildScanReport derives the replay verdict from a scan history. Events are
// expected newest first; Recent keeps at most the three latest.
func BuildScanReport(ticketID string, events []models.ScanEvent) *models.ScanReport {
	report := &models.ScanReport{
		TicketID: ticketID,
		Count:    len(events),
		Reused:   len(events) > 1,
		Recent:   make([]time.Time, 0, 3),
	}

	for i, event := range events {
		if i >= 3 {
			break
		}
		report.Recent = append(report.Recent, event.ScannedAt)
	}

	return report
}
