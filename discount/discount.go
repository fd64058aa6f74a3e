// Package discount computes customer prices.
//
// Regular customers pay full price up to 100 and get 10% off above it. Members get 5% off,
// or 15% above 100. VIPs get 10% off, or 20% above 100. Any other customer type pays full price.
package discount

const threshold = 100.0

// Customer types. Matching is case-sensitive.
const (
	Regular = "regular"
	Member  = "member"
	VIP     = "vip"
)

// Calculate returns price after the discount for customerType.
// A price of exactly 100 is not over the threshold.
func Calculate(price float64, customerType string) float64 {
	over := price > threshold

	switch customerType {
	case Regular:
		if over {
			return price * 0.9
		}
		return price
	case Member:
		if over {
			return price * 0.85
		}
		return price * 0.95
	case VIP:
		if over {
			return price * 0.8
		}
		return price * 0.9
	default:
		return price
	}
}

// rate holds the multipliers at or below and above the threshold.
type rate struct {
	base float64
	over float64
}

var rates = map[string]rate{
	Regular: {base: 1.0, over: 0.9},
	Member:  {base: 0.95, over: 0.85},
	VIP:     {base: 0.9, over: 0.8},
}

// CalculateV2 gives the same results as Calculate from a rate table.
func CalculateV2(price float64, customerType string) float64 {
	r, ok := rates[customerType]
	if !ok {
		return price
	}

	if price > threshold {
		return price * r.over
	}

	return price * r.base
}
