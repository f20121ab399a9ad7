package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"

	"amispark/models"
)

// ErrSoldOut is returned when a conditional seat decrement matches no row,
// i.e. the zone ran out between selection and payment.
var ErrSoldOut = errors.New("zone sold out")

const (
	pricingCollection = "pricing_and_seats"
	zoneCacheTTL      = 30 * time.Second
)

// PricingService reads the zone directory out of the pricing collection and
// owns the seat counters. Listings are cached briefly in Redis since the
// landing page hits them on every load.
type PricingService struct {
	app   core.App
	redis *redis.Client
}

func NewPricingService(app core.App, redisClient *redis.Client) *PricingService {
	return &PricingService{app: app, redis: redisClient}
}

func zoneCacheKey(theme string) string {
	return "zones:" + theme
}

func (s *PricingService) ListZones(ctx context.Context, theme string) ([]models.ZoneTier, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, zoneCacheKey(theme)).Result()
		if err == nil {
			var zones []models.ZoneTier
			if err := json.Unmarshal([]byte(cached), &zones); err == nil {
				return zones, nil
			}
		}
	}

	records, err := s.app.FindRecordsByFilter(
		pricingCollection,
		"theme = {:theme}",
		"base_price",
		0,
		0,
		dbx.Params{"theme": theme},
	)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}

	zones := make([]models.ZoneTier, 0, len(records))
	for _, record := range records {
		zones = append(zones, *zoneFromRecord(record))
	}

	if s.redis != nil {
		if data, err := json.Marshal(zones); err == nil {
			if err := s.redis.Set(ctx, zoneCacheKey(theme), string(data), zoneCacheTTL).Err(); err != nil {
				slog.Warn("Failed to cache zone listing", "theme", theme, "error", err)
			}
		}
	}

	return zones, nil
}

func (s *PricingService) GetZone(_ context.Context, zoneID string) (*models.ZoneTier, error) {
	record, err := s.app.FindRecordById(pricingCollection, zoneID)
	if err != nil {
		return nil, fmt.Errorf("zone %s: %w", zoneID, err)
	}
	return zoneFromRecord(record), nil
}

// ReserveSeat decrements the seat counter for a zone, guarded so that the
// decrement and the availability check are one statement. It must run inside
// the same transaction as the booking insert; callers pass the tx-bound app.
func (s *PricingService) ReserveSeat(txApp core.App, zoneID string) error {
	result, err := txApp.DB().NewQuery(
		"UPDATE " + pricingCollection + " SET available_seats = available_seats - 1" +
			" WHERE id = {:id} AND available_seats > 0",
	).Bind(dbx.Params{"id": zoneID}).Execute()
	if err != nil {
		return fmt.Errorf("reserve seat in %s: %w", zoneID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reserve seat in %s: %w", zoneID, err)
	}
	if affected == 0 {
		return ErrSoldOut
	}

	s.invalidateCache(zoneID)
	return nil
}

func (s *PricingService) invalidateCache(zoneID string) {
	if s.redis == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	record, err := s.app.FindRecordById(pricingCollection, zoneID)
	if err != nil {
		return
	}
	if err := s.redis.Del(ctx, zoneCacheKey(record.GetString("theme"))).Err(); err != nil {
		slog.Warn("Failed to invalidate zone cache", "zone_id", zoneID, "error", err)
	}
}

func zoneFromRecord(record *core.Record) *models.ZoneTier {
	return &models.ZoneTier{
		ID:               record.Id,
		Name:             record.GetString("name"),
		Category:         record.GetString("category"),
		Theme:            record.GetString("theme"),
		BasePrice:        record.GetInt("base_price"),
		TechFestFee:      record.GetInt("tech_fest_fee"),
		AccommodationFee: record.GetInt("accommodation_fee"),
		Capacity:         record.GetInt("capacity"),
		AvailableSeats:   record.GetInt("available_seats"),
		IsActive:         record.GetBool("is_active"),
	}
}
