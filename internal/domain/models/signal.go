package models

// Signal is a directional call for a currency along one analytical dimension.
type Signal string

const (
	SignalBuy     Signal = "Buy"
	SignalSell    Signal = "Sell"
	SignalNeutral Signal = "Neutral"
)

// IsValidSignal returns true if s is one of the three supported calls.
func IsValidSignal(s Signal) bool {
	switch s {
	case SignalBuy, SignalSell, SignalNeutral:
		return true
	default:
		return false
	}
}

// Impact classifies how an economic indicator reading affects a currency.
// It is asserted by the catalog, independently of the sign of the change
// (falling inflation is a negative change with positive impact).
type Impact string

const (
	ImpactPositive Impact = "Positive"
	ImpactNegative Impact = "Negative"
	ImpactNeutral  Impact = "Neutral"
)

// IsValidImpact returns true if i is a supported impact class.
func IsValidImpact(i Impact) bool {
	switch i {
	case ImpactPositive, ImpactNegative, ImpactNeutral:
		return true
	default:
		return false
	}
}
