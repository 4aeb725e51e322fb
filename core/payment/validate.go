package payment

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/trezcool/bursary/core"
)

var ErrAmountNotPositive = errors.New("amount must be positive")

// BalanceError reports a payment amount above the remaining balance of the account.
type BalanceError struct {
	Remaining decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("payment amount exceeds remaining balance, remaining: %s", e.Remaining.StringFixed(2))
}

// ValidateAmount checks that amount can be paid on an account with the given total and already paid amounts.
// The returned error is a *core.ValidationError on the "amount" field.
func ValidateAmount(amount, total, alreadyPaid decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.NewValidationError(ErrAmountNotPositive, core.FieldError{Field: "amount", Error: ErrAmountNotPositive.Error()})
	}
	remaining := total.Sub(alreadyPaid)
	if amount.GreaterThan(remaining) {
		bErr := &BalanceError{Remaining: remaining}
		return core.NewValidationError(bErr, core.FieldError{Field: "amount", Error: bErr.Error()})
	}
	return nil
}
