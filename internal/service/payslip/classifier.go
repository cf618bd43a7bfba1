package payslip

import (
	"strings"

	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
)

// Buckets holds the classified pay items. Order within each bucket follows
// the relative order of the input slice.
type Buckets struct {
	Base     []payslip.PayItem
	Tambahan []payslip.PayItem
	Overtime []payslip.PayItem
}

// Classifier partitions items into the three pay categories. The contract is
// a stable partition: no item duplicated, none dropped, input order preserved
// within each bucket. The composer accepts any implementation so callers can
// plug in their own classification rules.
type Classifier func(items []payslip.PayItem) Buckets

// ClassifyByCategory is the default classifier. It buckets on the category
// the pay-code master table assigned to each item; items without a category
// fall back to pay-code inspection ("OT"-prefixed codes are overtime) and
// finally to tambahan, so nothing is ever dropped.
func ClassifyByCategory(items []payslip.PayItem) Buckets {
	var b Buckets
	for _, item := range items {
		switch categoryOf(item) {
		case payslip.CategoryBase:
			b.Base = append(b.Base, item)
		case payslip.CategoryOvertime:
			b.Overtime = append(b.Overtime, item)
		default:
			b.Tambahan = append(b.Tambahan, item)
		}
	}
	return b
}

func categoryOf(item payslip.PayItem) payslip.ItemCategory {
	if item.Category != "" {
		return item.Category
	}
	if strings.HasPrefix(strings.ToUpper(item.PayCodeID), "OT") {
		return payslip.CategoryOvertime
	}
	return payslip.CategoryTambahan
}
