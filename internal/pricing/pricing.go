package pricing

// Quote represents a monthly cost breakdown for a GPU reservation
type Quote struct {
	BaseCost       float64 `json:"baseCost"`
	DiscountAmount float64 `json:"discountAmount"`
	TotalCost      float64 `json:"totalCost"`
	EffectiveRate  float64 `json:"effectiveRate"`
}

// Input bounds enforced by callers before computing a quote
const (
	MinQuantity = 1
	MaxQuantity = 20000
	MinHours    = 1
	MaxHours    = 730 // 24/7 for a month
)

// Compute calculates a cost breakdown from an hourly rate, GPU quantity,
// monthly runtime and a tier discount. No rounding is applied; display
// layers round independently.
func Compute(pricePerHour float64, quantity int, hoursPerMonth, discountPercent float64) Quote {
	baseCost := pricePerHour * float64(quantity) * hoursPerMonth
	discountAmount := baseCost * (discountPercent / 100)

	return Quote{
		BaseCost:       baseCost,
		DiscountAmount: discountAmount,
		TotalCost:      baseCost - discountAmount,
		EffectiveRate:  pricePerHour * (1 - discountPercent/100),
	}
}

// ClampQuantity clamps a GPU count to the supported range.
func ClampQuantity(quantity int) int {
	if quantity < MinQuantity {
		return MinQuantity
	}
	if quantity > MaxQuantity {
		return MaxQuantity
	}
	return quantity
}

// ClampHours clamps a monthly runtime to the supported range.
func ClampHours(hours float64) float64 {
	if hours < MinHours {
		return MinHours
	}
	if hours > MaxHours {
		return MaxHours
	}
	return hours
}

// reservationMonths maps tier IDs to the number of billed months in the
// reservation. Older tier IDs are kept as aliases.
var reservationMonths = map[string]int{
	"on-demand":     1,
	"quarterly":     1,
	"1-week":        1,
	"1-month":       1,
	"semi-annually": 3,
	"3-months":      3,
	"annually":      6,
	"6-months":      6,
	"two-years":     12,
	"12-months":     12,
}

// ReservationMonths returns the number of months billed for a reservation
// tier. Unknown tiers bill a single month.
func ReservationMonths(tierID string) int {
	if months, ok := reservationMonths[tierID]; ok {
		return months
	}
	return 1
}

// TotalReservationCost returns the cost of the full reservation period for
// a given monthly cost.
func TotalReservationCost(monthlyCost float64, tierID string) float64 {
	return monthlyCost * float64(ReservationMonths(tierID))
}
