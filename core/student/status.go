package student

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Status is the financial status of a student account.
// It is always derived from the tuition total and the cumulative paid amount.
type Status string

const (
	StatusNotPaid       Status = "NOT_PAID"
	StatusPartiallyPaid Status = "PARTIALLY_PAID"
	StatusFullyPaid     Status = "FULLY_PAID"
)

var Statuses = []Status{StatusNotPaid, StatusPartiallyPaid, StatusFullyPaid}

func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// CalculateStatus returns the Status of an account with the given total and paid amounts.
func CalculateStatus(total, paid decimal.Decimal) Status {
	switch {
	case !paid.IsPositive():
		return StatusNotPaid
	case paid.LessThan(total):
		return StatusPartiallyPaid
	default:
		return StatusFullyPaid
	}
}

// StatusOf is CalculateStatus on raw stored values; see ParseAmount.
func StatusOf(total, paid string) Status {
	return CalculateStatus(ParseAmount(total), ParseAmount(paid))
}

// ParseAmount parses a stored amount. Missing or non-numeric values are zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
