package payslip

import (
	"strings"

	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

// Aggregates - the computed figures of one slip
type Aggregates struct {
	BaseTotalAmount decimal.Decimal
	BaseTotalRates  decimal.Decimal

	// AverageBaseRate divides the base total by the hour count of the
	// largest-quantity group, not by the sum of hours. Zero when there are
	// no base items.
	AverageBaseRate decimal.Decimal

	// CombinedTambahanTotal = tambahan items + leave pay + commissions.
	CombinedTambahanTotal decimal.Decimal
	OvertimeTotalAmount   decimal.Decimal

	DeductionLines []payslip.DeductionLine
	DeductionTotal decimal.Decimal

	AdvanceLines []payslip.AdvanceLine
	AdvanceTotal decimal.Decimal

	FinalPayment decimal.Decimal
}

// Malay labels as printed on the slip.
const (
	labelEPF                 = "KWSP (EPF)"
	labelSOCSO               = "PERKESO (SOCSO)"
	labelSIP                 = "SIP (EIS)"
	labelIncomeTax           = "Cukai Pendapatan (PCB)"
	labelMidMonth            = "Bayaran Pertengahan Bulan"
	labelCommissionAdvance   = "Komisen (Advance)"
	labelCommissionCutiMerge = "Komisen & Cuti Tahunan (Advance)"
	labelCutiAdvance         = "Cuti Tahunan (Advance)"
)

// ComputeAggregates derives every printed figure from the classified buckets
// plus the record's deduction, leave and commission rows. midMonth may be nil.
func ComputeAggregates(rec *payslip.PayrollRecord, b Buckets, midMonth *payslip.MidMonthRecord) Aggregates {
	var agg Aggregates

	agg.BaseTotalAmount = sumAmounts(b.Base)
	for _, item := range b.Base {
		agg.BaseTotalRates = agg.BaseTotalRates.Add(item.Rate)
	}

	// Divisor is the hour count of the maximum-quantity group. Guarded:
	// records with no base items (piece-rate workers) would divide by zero.
	maxHours := MaxQuantity(GroupByHours(b.Base))
	if maxHours.IsPositive() {
		agg.AverageBaseRate = agg.BaseTotalAmount.DivRound(maxHours, 2)
	}

	agg.OvertimeTotalAmount = sumAmounts(b.Overtime)

	leaveTotal := decimal.Zero
	for _, l := range rec.LeaveRecords {
		leaveTotal = leaveTotal.Add(l.AmountPaid)
	}
	commissionTotal := decimal.Zero
	for _, c := range rec.CommissionRecords {
		commissionTotal = commissionTotal.Add(c.Amount)
	}
	agg.CombinedTambahanTotal = sumAmounts(b.Tambahan).Add(leaveTotal).Add(commissionTotal)

	agg.DeductionLines = deductionLines(rec.Deductions)
	for _, d := range agg.DeductionLines {
		agg.DeductionTotal = agg.DeductionTotal.Add(d.Employee)
	}

	agg.AdvanceLines, agg.AdvanceTotal = advanceLines(rec, commissionTotal, midMonth)
	agg.FinalPayment = rec.NetPay.Sub(agg.AdvanceTotal).Round(2)

	return agg
}

// deductionLines keeps only the recognized statutory types, one row each.
// Unknown types are omitted from the block; they are already reflected in
// the upstream net pay.
func deductionLines(deductions []payslip.Deduction) []payslip.DeductionLine {
	var lines []payslip.DeductionLine
	for _, d := range deductions {
		label, ok := deductionLabel(d.DeductionType)
		if !ok {
			continue
		}
		lines = append(lines, payslip.DeductionLine{
			Label:    label,
			Employer: d.EmployerAmount,
			Employee: d.EmployeeAmount,
		})
	}
	return lines
}

func deductionLabel(deductionType string) (string, bool) {
	switch strings.ToUpper(deductionType) {
	case payslip.DeductionEPF:
		return labelEPF, true
	case payslip.DeductionSOCSO:
		return labelSOCSO, true
	case payslip.DeductionSIP:
		return labelSIP, true
	}
	// income_tax matches exactly, not case-insensitively.
	if deductionType == payslip.DeductionIncomeTax {
		return labelIncomeTax, true
	}
	return "", false
}

// advanceLines builds the already-paid block subtracted at print time: the
// mid-month advance, commissions paid ahead of the slip, and the MAINTEN
// cuti tahunan claw-back.
//
// Maintenance staff are paid annual leave as a recoverable advance, so their
// cuti_tahunan pay comes back off the final payment. When commissions exist
// the cuti amount is folded into the commission line instead of printed as
// its own row; it must never be deducted twice.
func advanceLines(rec *payslip.PayrollRecord, commissionTotal decimal.Decimal, midMonth *payslip.MidMonthRecord) ([]payslip.AdvanceLine, decimal.Decimal) {
	var lines []payslip.AdvanceLine
	total := decimal.Zero

	if midMonth != nil && midMonth.Amount.IsPositive() {
		lines = append(lines, payslip.AdvanceLine{Label: labelMidMonth, Amount: midMonth.Amount})
		total = total.Add(midMonth.Amount)
	}

	cuti := decimal.Zero
	if rec.IsMainten() {
		for _, l := range rec.LeaveRecords {
			if l.LeaveType == payslip.LeaveTypeCutiTahunan {
				cuti = cuti.Add(l.AmountPaid)
			}
		}
	}

	switch {
	case len(rec.CommissionRecords) > 0 && cuti.IsPositive():
		amount := commissionTotal.Add(cuti)
		lines = append(lines, payslip.AdvanceLine{Label: labelCommissionCutiMerge, Amount: amount})
		total = total.Add(amount)
	case len(rec.CommissionRecords) > 0:
		lines = append(lines, payslip.AdvanceLine{Label: labelCommissionAdvance, Amount: commissionTotal})
		total = total.Add(commissionTotal)
	case cuti.IsPositive():
		lines = append(lines, payslip.AdvanceLine{Label: labelCutiAdvance, Amount: cuti})
		total = total.Add(cuti)
	}

	return lines, total
}

func sumAmounts(items []payslip.PayItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}
