package pricing

import (
	"strconv"
	"strings"
)

// ParseProviderPrice extracts a numeric hourly price from a competitor price
// string. Provider tables carry free text like "Not listed", "Not Available"
// or ranges like "1.86-2.24"; ranges resolve to the lower bound. The second
// return value is false when no price could be extracted.
func ParseProviderPrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(strings.ToLower(s), "not") {
		return 0, false
	}

	if strings.Contains(s, "-") {
		low := strings.TrimSpace(strings.SplitN(s, "-", 2)[0])
		price, err := strconv.ParseFloat(low, 64)
		if err != nil {
			return 0, false
		}
		return price, true
	}

	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}
