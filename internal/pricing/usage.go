package pricing

import "fmt"

// EstimationUnit is the billing granularity for an inference model
type EstimationUnit string

const (
	UnitVoiceMinutes EstimationUnit = "voice-mins"
	UnitImages       EstimationUnit = "images"
	UnitVideoMinutes EstimationUnit = "video-mins"
	UnitTokens       EstimationUnit = "tokens"
)

// UsageCost converts a per-second model price and a user-specified quantity
// into a cost. Each unit encodes a different billing granularity: minutes
// bill 60 seconds per unit, images bake fixed compute time into the price,
// and token quantities are expressed in millions.
func UsageCost(pricePerSecond float64, unit EstimationUnit, quantity float64) float64 {
	switch unit {
	case UnitVoiceMinutes:
		return pricePerSecond * 60 * quantity
	case UnitVideoMinutes:
		return pricePerSecond * 60 * quantity
	case UnitImages:
		return pricePerSecond * quantity
	case UnitTokens:
		return pricePerSecond * 1_000_000 * quantity
	default:
		return 0
	}
}

// FormatEstimation renders a usage quantity as the human-readable string
// embedded in inference inquiry payloads.
func FormatEstimation(unit EstimationUnit, quantity float64) string {
	switch unit {
	case UnitVoiceMinutes:
		return fmt.Sprintf("%s voice minutes/month", formatQuantity(quantity))
	case UnitVideoMinutes:
		return fmt.Sprintf("%s video minutes/month", formatQuantity(quantity))
	case UnitImages:
		return fmt.Sprintf("%s images/month", formatQuantity(quantity))
	case UnitTokens:
		return fmt.Sprintf("%sM tokens/month", formatQuantity(quantity))
	default:
		return formatQuantity(quantity)
	}
}

// formatQuantity drops trailing zeros so whole quantities read naturally.
func formatQuantity(quantity float64) string {
	if quantity == float64(int64(quantity)) {
		return fmt.Sprintf("%d", int64(quantity))
	}
	return fmt.Sprintf("%g", quantity)
}
