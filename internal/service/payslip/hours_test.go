package payslip

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
)

func TestGroupByHours_FirstSeenOrder(t *testing.T) {
	items := []payslip.PayItem{
		baseItem("A", 8, 80),
		baseItem("B", 8, 90),
		baseItem("C", 4, 40),
	}

	groups := GroupByHours(items)

	require.Len(t, groups, 2)
	assert.True(t, groups[0].Quantity.Equal(decimal.NewFromInt(8)))
	require.Len(t, groups[0].Items, 2)
	assert.Equal(t, "A", groups[0].Items[0].Description)
	assert.Equal(t, "B", groups[0].Items[1].Description)
	assert.True(t, groups[1].Quantity.Equal(decimal.NewFromInt(4)))
	require.Len(t, groups[1].Items, 1)
}

func TestGroupByHours_Empty(t *testing.T) {
	assert.Empty(t, GroupByHours(nil))
}

func TestHourAnnotatedRows_NoteOnFirstRowOfGroupOnly(t *testing.T) {
	items := []payslip.PayItem{
		baseItem("A", 8, 80),
		baseItem("B", 8, 90),
		baseItem("C", 4, 40),
	}

	rows := hourAnnotatedRows(items)

	require.Len(t, rows, 3)
	assert.Equal(t, "8 Jam", rows[0].Note)
	assert.Equal(t, "", rows[1].Note)
	assert.Equal(t, "4 Jam", rows[2].Note)
}

func TestMaxQuantity(t *testing.T) {
	groups := GroupByHours([]payslip.PayItem{
		baseItem("A", 4, 40),
		baseItem("B", 9, 90),
		baseItem("C", 8, 80),
	})

	assert.True(t, MaxQuantity(groups).Equal(decimal.NewFromInt(9)))
	assert.True(t, MaxQuantity(nil).IsZero())
}
