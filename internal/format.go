package internal

import (
	"fmt"
	"math"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// display formatting for the dashboard. All funcs are pure and total: bad
// input formats as a placeholder rather than panicking mid-render.

const notAvailable = "n/a"

// FormatFixed renders v with a fixed number of decimal places.
func FormatFixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// FormatQty renders a share quantity to 4 decimals.
func FormatQty(v float64) string {
	return FormatFixed(v, 4)
}

// FormatMoney renders a USD amount with currency symbol and grouping.
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	return money.NewFromFloat(v, money.USD).Display()
}

// FormatSignedPercent renders a percent with an explicit sign, e.g. "+3.20%".
func FormatSignedPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	return fmt.Sprintf("%+.2f%%", v)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// FormatDate localizes an ISO date or datetime string for display. Unparseable
// input is shown as-is, matching the tolerant behavior of the snapshot file.
func FormatDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if layout == time.DateOnly {
				return t.Format("Jan 02, 2006")
			}
			return t.Format("Jan 02, 2006 15:04")
		}
	}
	return s
}
