// Package format turns backend values into display strings and small badge nodes.
// Amounts are always integers in kobo.
package format

import (
	"strings"

	"github.com/Rhymond/go-money"
)

// Currency is the ISO code every amount is displayed in.
const Currency = "NGN"

// Money renders kobo as naira with two decimals, e.g. ₦250,000.00.
func Money(kobo int64) string {
	return money.New(kobo, Currency).Display()
}

// Naira renders kobo as naira, dropping a zero fraction: ₦250,000.
func Naira(kobo int64) string {
	return strings.TrimSuffix(Money(kobo), ".00")
}

// KoboFromNaira converts a whole-naira form value into kobo.
func KoboFromNaira(naira int64) int64 {
	return naira * 100
}

// OccupancyPercent is occupied/total as a rounded percentage, 0 when total is 0.
func OccupancyPercent(occupied, total int) int {
	if total <= 0 {
		return 0
	}
	return (occupied*100*2 + total) / (total * 2)
}

// OccupancyLabel grades an occupancy percentage.
func OccupancyLabel(pct int) string {
	switch {
	case pct >= 80:
		return "Healthy"
	case pct >= 50:
		return "Fair"
	default:
		return "Low"
	}
}
