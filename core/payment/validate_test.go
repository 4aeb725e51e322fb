package payment

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/bursary/core"
)

func TestValidateAmount(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name          string
		amount        string
		total         string
		paid          string
		wantErr       error
		wantRemaining string
		wantMsg       string
	}{
		{name: "zero", amount: "0", total: "500000", paid: "0", wantErr: ErrAmountNotPositive},
		{name: "negative", amount: "-10", total: "500000", paid: "0", wantErr: ErrAmountNotPositive},
		{name: "negative on settled account", amount: "-1", total: "500000", paid: "500000", wantErr: ErrAmountNotPositive},
		{name: "partial", amount: "200000", total: "500000", paid: "0"},
		{name: "exact remaining", amount: "300000", total: "500000", paid: "200000"},
		{name: "cents", amount: "0.01", total: "100.50", paid: "100.49"},
		{
			name: "exceeds on settled account", amount: "1", total: "500000", paid: "500000",
			wantRemaining: "0", wantMsg: "payment amount exceeds remaining balance, remaining: 0.00",
		},
		{
			name: "exceeds by a cent", amount: "300000.01", total: "500000", paid: "200000",
			wantRemaining: "300000", wantMsg: "payment amount exceeds remaining balance, remaining: 300000.00",
		},
		{
			name: "fractional remaining", amount: "100", total: "1000.75", paid: "999.50",
			wantRemaining: "1.25", wantMsg: "payment amount exceeds remaining balance, remaining: 1.25",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(d(tt.amount), d(tt.total), d(tt.paid))

			if tt.wantErr == nil && tt.wantRemaining == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr), "want a *core.ValidationError, got %T", err)
			require.Len(t, vErr.Fields, 1)
			assert.Equal(t, "amount", vErr.Fields[0].Field)

			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, vErr.Err)
				return
			}
			var bErr *BalanceError
			require.True(t, errors.As(err, &bErr), "want a *BalanceError, got %T", vErr.Err)
			assert.True(t, bErr.Remaining.Equal(d(tt.wantRemaining)), "remaining = %s, want %s", bErr.Remaining, tt.wantRemaining)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, tt.wantMsg, vErr.Fields[0].Error)
		})
	}
}
