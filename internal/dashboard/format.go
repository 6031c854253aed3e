package dashboard

import "github.com/shopspring/decimal"

// FormatPercent renders a ratio as a percentage rounded to two decimals,
// e.g. 0.07357 -> "7.36%".
func FormatPercent(ratio float64) string {
	return decimal.NewFromFloat(ratio).Shift(2).StringFixed(2) + "%"
}

// FormatDollars renders an amount rounded to cents, e.g. "$191.35".
func FormatDollars(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// FormatBillions renders an amount in billions with one decimal, e.g. "-4.5 bln".
func FormatBillions(v float64) string {
	return decimal.NewFromFloat(v).Shift(-9).StringFixed(1) + " bln"
}
