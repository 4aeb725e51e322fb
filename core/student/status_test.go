package student

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStatus(t *testing.T) {
	tests := []struct {
		name  string
		total string
		paid  string
		want  Status
	}{
		{name: "nothing paid", total: "500000", paid: "0", want: StatusNotPaid},
		{name: "negative paid", total: "500000", paid: "-1", want: StatusNotPaid},
		{name: "a cent", total: "500000", paid: "0.01", want: StatusPartiallyPaid},
		{name: "partial", total: "500000", paid: "200000", want: StatusPartiallyPaid},
		{name: "a cent short", total: "500000", paid: "499999.99", want: StatusPartiallyPaid},
		{name: "exact", total: "500000", paid: "500000.00", want: StatusFullyPaid},
		{name: "over", total: "500000", paid: "500001", want: StatusFullyPaid},
		{name: "zero total, nothing paid", total: "0", paid: "0", want: StatusNotPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStatus(decimal.RequireFromString(tt.total), decimal.RequireFromString(tt.paid))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, StatusOf(tt.total, tt.paid))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "0"},
		{in: "  ", want: "0"},
		{in: "abc", want: "0"},
		{in: "12.50", want: "12.5"},
		{in: " 300000 ", want: "300000"},
		{in: "-4", want: "-4"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, ParseAmount(tt.in).Equal(decimal.RequireFromString(tt.want)))
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("PAID").Valid())
	assert.False(t, Status("").Valid())
}

func TestStudent_derivedFields(t *testing.T) {
	std := Student{
		Matricule:    "STU-1",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		TuitionTotal: decimal.RequireFromString("500000"),
		TuitionPaid:  decimal.RequireFromString("125000.5"),
		Version:      3,
	}
	assert.Equal(t, "Ada Lovelace", std.FullName())
	assert.Equal(t, StatusPartiallyPaid, std.Status())
	assert.Equal(t, "374999.50", std.Remaining().StringFixed(2))

	data, err := json.Marshal(std)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "STU-1", got["matricule"])
	assert.Equal(t, "PARTIALLY_PAID", got["financial_status"])
	assert.Equal(t, "374999.5", got["remaining"])
	assert.Equal(t, "125000.5", got["tuition_paid"])
	assert.NotContains(t, got, "version")
	assert.NotContains(t, got, "email")
}
