package catalog

import (
	"fmt"
	"sort"

	"helios/internal/pricing"
)

// GPUModel represents a rentable GPU configuration
type GPUModel struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PricePerHour float64 `json:"pricePerHour"`
	Memory       string  `json:"memory"`
	Specs        string  `json:"specs"`
	VRAM         string  `json:"vram"`
}

// ReservationTier represents a commitment-length bucket with a fixed discount
type ReservationTier struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	Duration        string `json:"duration"`
	DiscountPercent int    `json:"discountPercent"`
	DisplayOrder    int    `json:"displayOrder"`
}

// ComparisonRow holds per-provider prices for one GPU. Competitor prices are
// free text and may not parse to a number.
type ComparisonRow struct {
	GPU         string `json:"gpu"`
	Helios      string `json:"helios"`
	AWS         string `json:"aws"`
	GoogleCloud string `json:"googleCloud"`
	Lambda      string `json:"lambda"`
	Modal       string `json:"modal"`
}

// SortDirection controls effective-price ordering
type SortDirection string

const (
	SortNone       SortDirection = ""
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Catalog holds the static GPU, tier and comparison reference data
type Catalog struct {
	GPUs       []GPUModel
	Tiers      []ReservationTier
	Comparison []ComparisonRow
}

// GPU looks up a GPU model by ID.
func (c *Catalog) GPU(id string) (GPUModel, bool) {
	for _, g := range c.GPUs {
		if g.ID == id {
			return g, true
		}
	}
	return GPUModel{}, false
}

// Tier looks up a reservation tier by ID.
func (c *Catalog) Tier(id string) (ReservationTier, bool) {
	for _, t := range c.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return ReservationTier{}, false
}

// DefaultTier returns the first tier, the on-demand one.
func (c *Catalog) DefaultTier() ReservationTier {
	if len(c.Tiers) == 0 {
		return ReservationTier{ID: "on-demand", Label: "On-Demand"}
	}
	return c.Tiers[0]
}

// EffectivePrice returns a model's hourly price after the tier discount.
func EffectivePrice(g GPUModel, tier ReservationTier) float64 {
	return g.PricePerHour * (1 - float64(tier.DiscountPercent)/100)
}

// SortByEffectivePrice orders models by their discounted hourly price under
// the given tier. The sort is stable: rows with equal prices keep their
// catalog order. The input slice is not modified.
func SortByEffectivePrice(models []GPUModel, tier ReservationTier, dir SortDirection) []GPUModel {
	sorted := make([]GPUModel, len(models))
	copy(sorted, models)

	if dir == SortNone {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a := EffectivePrice(sorted[i], tier)
		b := EffectivePrice(sorted[j], tier)
		if dir == SortDescending {
			return a > b
		}
		return a < b
	})

	return sorted
}

// LowestCompetitor returns the cheapest parseable competitor price in a row.
// Rows where no competitor lists a numeric price return ok=false; they are
// still displayed, just excluded from comparisons.
func LowestCompetitor(row ComparisonRow) (name string, price float64, ok bool) {
	competitors := []struct {
		name  string
		price string
	}{
		{"AWS", row.AWS},
		{"Google Cloud", row.GoogleCloud},
		{"Lambda", row.Lambda},
		{"Modal", row.Modal},
	}

	for _, c := range competitors {
		p, parsed := pricing.ParseProviderPrice(c.price)
		if !parsed {
			continue
		}
		if !ok || p < price {
			name, price, ok = c.name, p, true
		}
	}
	return name, price, ok
}

// Savings returns the absolute hourly saving of the discounted Helios price
// over the lowest listed competitor. ok=false when the row has no Helios
// price or no comparable competitor.
func Savings(row ComparisonRow, tier ReservationTier) (float64, bool) {
	base, parsed := pricing.ParseProviderPrice(row.Helios)
	if !parsed {
		return 0, false
	}
	_, lowest, ok := LowestCompetitor(row)
	if !ok {
		return 0, false
	}
	discounted := base * (1 - float64(tier.DiscountPercent)/100)
	return lowest - discounted, true
}

// ValidateTiers checks that tier discounts never decrease as commitment
// length (display order) increases.
func ValidateTiers(tiers []ReservationTier) error {
	ordered := make([]ReservationTier, len(tiers))
	copy(ordered, tiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})

	for i := 1; i < len(ordered); i++ {
		if ordered[i].DiscountPercent < ordered[i-1].DiscountPercent {
			return fmt.Errorf("tier %s discount %d%% is lower than preceding tier %s (%d%%)",
				ordered[i].ID, ordered[i].DiscountPercent, ordered[i-1].ID, ordered[i-1].DiscountPercent)
		}
		if ordered[i].DiscountPercent < 0 || ordered[i].DiscountPercent > 100 {
			return fmt.Errorf("tier %s discount %d%% out of range", ordered[i].ID, ordered[i].DiscountPercent)
		}
	}
	return nil
}
