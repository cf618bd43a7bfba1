package payslip

import (
	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

// HourGroup - items sharing one distinct quantity value. For base and
// overtime categories the quantity is read as hours.
type HourGroup struct {
	Quantity decimal.Decimal
	Items    []payslip.PayItem
}

// GroupByHours groups items by their quantity, preserving first-seen order
// of distinct values. The slip prints one "N Jam" annotation per group, on
// the group's first row only, instead of repeating it on every item.
func GroupByHours(items []payslip.PayItem) []HourGroup {
	var groups []HourGroup
	for _, item := range items {
		idx := -1
		for i := range groups {
			if groups[i].Quantity.Equal(item.Quantity) {
				idx = i
				break
			}
		}
		if idx == -1 {
			groups = append(groups, HourGroup{Quantity: item.Quantity})
			idx = len(groups) - 1
		}
		groups[idx].Items = append(groups[idx].Items, item)
	}
	return groups
}

// MaxQuantity returns the largest distinct quantity across groups, or zero
// when there are none. The average base rate divides by this value.
func MaxQuantity(groups []HourGroup) decimal.Decimal {
	max := decimal.Zero
	for _, g := range groups {
		if g.Quantity.GreaterThan(max) {
			max = g.Quantity
		}
	}
	return max
}
