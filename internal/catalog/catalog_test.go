package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_TiersMonotonic(t *testing.T) {
	c := Default()
	assert.NoError(t, ValidateTiers(c.Tiers))
}

func TestValidateTiers_RejectsDecreasing(t *testing.T) {
	tiers := []ReservationTier{
		{ID: "on-demand", DiscountPercent: 0, DisplayOrder: 0},
		{ID: "1-month", DiscountPercent: 10, DisplayOrder: 1},
		{ID: "3-months", DiscountPercent: 5, DisplayOrder: 2},
	}
	assert.Error(t, ValidateTiers(tiers))
}

func TestLookup(t *testing.T) {
	c := Default()

	gpu, ok := c.GPU("h100-sxm")
	require.True(t, ok)
	assert.Equal(t, 2.25, gpu.PricePerHour)

	_, ok = c.GPU("b200")
	assert.False(t, ok)

	tier, ok := c.Tier("3-months")
	require.True(t, ok)
	assert.Equal(t, 15, tier.DiscountPercent)

	assert.Equal(t, "on-demand", c.DefaultTier().ID)
}

func TestSortByEffectivePrice(t *testing.T) {
	c := Default()
	tier := c.DefaultTier()

	asc := SortByEffectivePrice(c.GPUs, tier, SortAscending)
	require.Len(t, asc, len(c.GPUs))
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, EffectivePrice(asc[i-1], tier), EffectivePrice(asc[i], tier))
	}
	assert.Equal(t, "l40s", asc[0].ID)
	assert.Equal(t, "h100-nvl", asc[len(asc)-1].ID)

	desc := SortByEffectivePrice(c.GPUs, tier, SortDescending)
	assert.Equal(t, "h100-nvl", desc[0].ID)

	// SortNone preserves catalog order
	same := SortByEffectivePrice(c.GPUs, tier, SortNone)
	assert.Equal(t, c.GPUs, same)
}

func TestSortByEffectivePrice_StableOnTies(t *testing.T) {
	models := []GPUModel{
		{ID: "first", PricePerHour: 1.00},
		{ID: "second", PricePerHour: 1.00},
		{ID: "cheap", PricePerHour: 0.50},
		{ID: "third", PricePerHour: 1.00},
	}
	tier := ReservationTier{ID: "on-demand"}

	asc := SortByEffectivePrice(models, tier, SortAscending)
	assert.Equal(t, []string{"cheap", "first", "second", "third"}, ids(asc))

	// asc -> desc -> asc keeps the relative order of equal-price rows
	desc := SortByEffectivePrice(asc, tier, SortDescending)
	assert.Equal(t, []string{"first", "second", "third", "cheap"}, ids(desc))

	again := SortByEffectivePrice(desc, tier, SortAscending)
	assert.Equal(t, []string{"cheap", "first", "second", "third"}, ids(again))
}

func ids(models []GPUModel) []string {
	out := make([]string, len(models))
	for i, m := range models {
		out[i] = m.ID
	}
	return out
}

func TestLowestCompetitor(t *testing.T) {
	row := ComparisonRow{GPU: "A100", Helios: "1.35", AWS: "3.67-4.10", GoogleCloud: "3.67", Lambda: "1.29", Modal: "2.50"}

	name, price, ok := LowestCompetitor(row)
	require.True(t, ok)
	assert.Equal(t, "Lambda", name)
	assert.Equal(t, 1.29, price)
}

func TestLowestCompetitor_AllUnlisted(t *testing.T) {
	row := ComparisonRow{GPU: "RTX Pro 6000", Helios: "1.19", AWS: "Not listed", GoogleCloud: "Not listed", Lambda: "Not listed", Modal: "Not listed"}

	_, _, ok := LowestCompetitor(row)
	assert.False(t, ok)
}

func TestSavings(t *testing.T) {
	row := ComparisonRow{GPU: "H100 SXM", Helios: "2.25", AWS: "4.40", GoogleCloud: "11.06", Lambda: "2.99", Modal: "3.95"}
	tier := ReservationTier{ID: "1-month", DiscountPercent: 10}

	saving, ok := Savings(row, tier)
	require.True(t, ok)
	// lowest competitor 2.99 (Lambda), discounted helios 2.025
	assert.InDelta(t, 2.99-2.025, saving, 1e-9)

	_, ok = Savings(ComparisonRow{Helios: "1.19", AWS: "Not listed", GoogleCloud: "Not listed", Lambda: "Not listed", Modal: "Not listed"}, tier)
	assert.False(t, ok)
}
