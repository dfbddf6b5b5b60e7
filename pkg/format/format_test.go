package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		want   string
	}{
		{"small", "5", "5.00"},
		{"hundreds", "150.2", "150.20"},
		{"thousands", "1500", "1,500.00"},
		{"millions", "1234567.89", "1,234,567.89"},
		{"negative", "-1500.5", "-1,500.50"},
		{"zero", "0", "0.00"},
		{"rounds", "1500.005", "1,500.01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			assert.Equal(t, tc.want, Money(amount, ",", "."))
		})
	}
}

func TestMoney_EuropeanSeparators(t *testing.T) {
	amount := decimal.RequireFromString("1234567.89")
	assert.Equal(t, "1.234.567,89", Money(amount, ".", ","))
}

func TestPrettyNumber(t *testing.T) {
	assert.Equal(t, "1,234,567", PrettyNumber(1234567, ",", "."))
	assert.Equal(t, "1,234.57", PrettyNumber(1234.567, ",", "."))
	assert.Equal(t, "1,500.00", PrettyNumber(decimal.RequireFromString("1500"), ",", "."))
	assert.Equal(t, "-42", PrettyNumber(int64(-42), ",", "."))
}

func TestPrettyNumber_NoSeparators(t *testing.T) {
	assert.Equal(t, "1234567", PrettyNumber(1234567, "", ""))
}
