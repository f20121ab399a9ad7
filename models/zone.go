package models

const (
	CategoryAmitian    = "AMITIAN"
	CategoryNonAmitian = "NON-AMITIAN"
)

const (
	ThemeAmispark = "amispark"
	ThemeRahasya  = "rahasya"
)

// ZoneTier is one bookable access category at the event. Rows come from the
// pricing_and_seats collection and are read-only to the wizard; the only
// write path is the conditional seat decrement at booking finalization.
type ZoneTier struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Theme            string `json:"theme"`
	BasePrice        int    `json:"base_price"`
	TechFestFee      int    `json:"tech_fest_fee"`
	AccommodationFee int    `json:"accommodation_fee"`
	Capacity         int    `json:"capacity"`
	AvailableSeats   int    `json:"available_seats"`
	IsActive         bool   `json:"is_active"`
}

// Bookable reports whether the zone can be selected at all, regardless of
// the applicant's eligibility. Reserved zones (Faculty and the like) carry
// is_active = false.
func (z ZoneTier) Bookable() bool {
	return z.IsActive && z.AvailableSeats > 0
}

// Total computes the price for this zone given the accommodation choice.
// Pure function of its inputs; amounts are integer rupees.
func (z ZoneTier) Total(accommodation bool) int {
	total := z.BasePrice + z.TechFestFee
	if accommodation {
		total += z.AccommodationFee
	}
	return total
}
