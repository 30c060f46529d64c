package money

import (
	"github.com/shopspring/decimal"
)

// FormatUSD renders an integer cent amount as a display string, e.g. 12797
// becomes "$127.97". Negative amounts keep the sign ahead of the symbol.
func FormatUSD(cents int) string {
	amount := decimal.NewFromInt(int64(cents)).Shift(-2)
	if amount.IsNegative() {
		return "-$" + amount.Abs().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// Dollars converts an integer cent amount to its decimal dollar value.
func Dollars(cents int) decimal.Decimal {
	return decimal.NewFromInt(int64(cents)).Shift(-2)
}
