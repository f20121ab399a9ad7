package monitoring

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	bookingsConfirmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_confirmed_total",
			Help: "Total confirmed bookings",
		},
		[]string{"zone", "theme"},
	)

	bookingAmount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_amount_rupees",
			Help:    "Amount paid per confirmed booking",
			Buckets: prometheus.ExponentialBuckets(100, 2, 8),
		},
		[]string{"theme"},
	)

	ticketScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_scans_total",
			Help: "Total ticket scans by result",
		},
		[]string{"result"},
	)

	mailSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_mail_sends_total",
			Help: "Total ticket mail send attempts by status",
		},
		[]string{"status"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wizard_sessions_active_total",
			Help: "Current number of live booking wizard sessions",
		},
	)
)

type Monitor struct {
	redis *redis.Client
}

func NewMonitor(redisClient *redis.Client) *Monitor {
	monitor := &Monitor{redis: redisClient}

	// Start metrics collection
	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx := context.Background()
		m.collectSessionMetrics(ctx)
	}
}

func (m *Monitor) collectSessionMetrics(ctx context.Context) {
	keys, _ := m.redis.Keys(ctx, "wizard:session:*").Result()
	activeSessions.Set(float64(len(keys)))
}

// Track a confirmed booking and the amount paid for it
func (m *Monitor) TrackBooking(zone, theme string, amount int) {
	bookingsConfirmed.WithLabelValues(zone, theme).Inc()
	bookingAmount.WithLabelValues(theme).Observe(float64(amount))
}

// Track a ticket scan: result is "valid", "reused" or "invalid"
func (m *Monitor) TrackScan(result string) {
	ticketScans.WithLabelValues(result).Inc()
}

// Track a ticket mail send attempt: status is "sent" or "failed"
func (m *Monitor) TrackMailSend(status string) {
	mailSends.WithLabelValues(status).Inc()
}
