package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

// Seed the zone directory with the launch layout for both themes. Reserved
// areas (Faculty boxes, food courts) ship inactive so they render on the
// venue map but are never bookable.
func init() {
	type zoneSeed struct {
		name             string
		category         string
		theme            string
		basePrice        int
		techFestFee      int
		accommodationFee int
		capacity         int
		active           bool
	}

	seeds := []zoneSeed{
		{"Tech Bazaar", "NON-AMITIAN", "amispark", 1299, 300, 300, 500, true},
		{"Star Circle", "AMITIAN", "amispark", 1499, 300, 0, 50, true},
		{"General Access", "AMITIAN", "amispark", 999, 300, 0, 550, true},
		{"Royal Box", "AMITIAN", "amispark", 0, 0, 0, 50, false},
		{"Food Court", "NON-AMITIAN", "amispark", 0, 0, 0, 0, false},
		{"Forensics Lab", "NON-AMITIAN", "rahasya", 499, 0, 0, 500, true},
		{"The Inner Circle", "AMITIAN", "rahasya", 999, 0, 0, 50, true},
		{"General Population", "AMITIAN", "rahasya", 299, 0, 0, 550, true},
		{"High Command", "AMITIAN", "rahasya", 0, 0, 0, 50, false},
		{"Supply Depot", "NON-AMITIAN", "rahasya", 199, 0, 0, 300, true},
	}

	m.Register(func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pricing_and_seats")
		if err != nil {
			return err
		}

		for _, seed := range seeds {
			record := core.NewRecord(collection)
			record.Set("name", seed.name)
			record.Set("category", seed.category)
			record.Set("theme", seed.theme)
			record.Set("base_price", seed.basePrice)
			record.Set("tech_fest_fee", seed.techFestFee)
			record.Set("accommodation_fee", seed.accommodationFee)
			record.Set("capacity", seed.capacity)
			record.Set("available_seats", seed.capacity)
			record.Set("is_active", seed.active)

			if err := app.Save(record); err != nil {
				return err
			}
		}

		return nil
	}, func(app core.App) error {
		for _, seed := range seeds {
			record, err := app.FindFirstRecordByFilter(
				"pricing_and_seats",
				"name = {:name} && theme = {:theme}",
				map[string]any{"name": seed.name, "theme": seed.theme},
			)
			if err != nil {
				continue
			}
			if err := app.Delete(record); err != nil {
				return err
			}
		}

		return nil
	})
}
