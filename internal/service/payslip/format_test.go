package payslip

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1234.56, "1,234.56"},
		{0, "0.00"},
		{7.5, "7.50"},
		{1234567.891, "1,234,567.89"},
		{-45.6, "-45.60"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(decimal.NewFromFloat(tt.in)))
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "8", FormatQuantity(decimal.NewFromInt(8)))
	assert.Equal(t, "7.5", FormatQuantity(decimal.NewFromFloat(7.5)))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Januari", MonthName(1))
	assert.Equal(t, "Ogos", MonthName(8))
	assert.Equal(t, "Disember", MonthName(12))
	assert.Empty(t, MonthName(0))
	assert.Empty(t, MonthName(13))
}

func TestLeaveLabel(t *testing.T) {
	assert.Equal(t, "Cuti Tahunan", leaveLabel("cuti_tahunan"))
	assert.Equal(t, "Cuti Sakit", leaveLabel("cuti_sakit"))
	assert.Equal(t, "Mc", leaveLabel("mc"))
}
