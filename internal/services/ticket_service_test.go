package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"amispark/models"
)

func scanAt(minute int) models.ScanEvent {
	return models.ScanEvent{
		TicketID:  "order_SIM_AB12CD",
		ScannedAt: time.Date(2026, 2, 14, 18, minute, 0, 0, time.UTC),
		Device:    "gate-1",
	}
}

func TestBuildScanReport_FirstScan(t *testing.T) {
	report := BuildScanReport("order_SIM_AB12CD", []models.ScanEvent{scanAt(5)})

	assert.Equal(t, 1, report.Count)
	assert.False(t, report.Reused)
	assert.Len(t, report.Recent, 1)
}

func TestBuildScanReport_ReplayFlagged(t *testing.T) {
	events := []models.ScanEvent{scanAt(20), scanAt(5)}
	report := BuildScanReport("order_SIM_AB12CD", events)

	assert.Equal(t, 2, report.Count)
	assert.True(t, report.Reused)
}

func TestBuildScanReport_RecentKeepsThreeNewest(t *testing.T) {
	events := []models.ScanEvent{scanAt(40), scanAt(30), scanAt(20), scanAt(10), scanAt(1)}
	report := BuildScanReport("order_SIM_AB12CD", events)

	assert.Equal(t, 5, report.Count)
	assert.Len(t, report.Recent, 3)
	assert.Equal(t, scanAt(40).ScannedAt, report.Recent[0])
	assert.Equal(t, scanAt(20).ScannedAt, report.Recent[2])
}

func TestBuildScanReport_NoHistory(t *testing.T) {
	report := BuildScanReport("order_SIM_AB12CD", nil)

	assert.Equal(t, 0, report.Count)
	assert.False(t, report.Reused)
	assert.Empty(t, report.Recent)
}
