package payslip

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
)

func baseItem(desc string, qty, amount float64) payslip.PayItem {
	return payslip.PayItem{
		Description: desc,
		Quantity:    decimal.NewFromFloat(qty),
		Amount:      decimal.NewFromFloat(amount),
		Category:    payslip.CategoryBase,
	}
}

func withJob(item payslip.PayItem, job string) payslip.PayItem {
	item.JobType = &job
	return item
}

func withSource(item payslip.PayItem, staffID string) payslip.PayItem {
	item.SourceEmployeeID = &staffID
	return item
}

func TestSplitByJobType_SingleJobShortCircuit(t *testing.T) {
	rec := &payslip.PayrollRecord{
		JobType:  "CUTTER",
		GrossPay: decimal.NewFromFloat(1234.56),
		Items: []payslip.PayItem{
			baseItem("Harian", 8, 100),
			baseItem("Bonus", 0, 50),
		},
	}

	jobs := SplitByJobType(rec)

	require.Len(t, jobs, 1)
	assert.Equal(t, "CUTTER", jobs[0].JobType)
	assert.Equal(t, rec.Items, jobs[0].Items)
	assert.True(t, jobs[0].GrossPayPortion.Equal(rec.GrossPay))
}

func TestSplitByJobType_OutputFollowsJobTypeOrder(t *testing.T) {
	rec := &payslip.PayrollRecord{
		JobType: "CUTTER, PACKER",
		Items: []payslip.PayItem{
			withJob(baseItem("Harian", 8, 80), "PACKER"),
			withJob(baseItem("Harian", 8, 120), "CUTTER"),
		},
	}

	jobs := SplitByJobType(rec)

	require.Len(t, jobs, 2)
	assert.Equal(t, "CUTTER", jobs[0].JobType)
	assert.Equal(t, "PACKER", jobs[1].JobType)
	require.Len(t, jobs[0].Items, 1)
	assert.True(t, jobs[0].Items[0].Amount.Equal(decimal.NewFromInt(120)))
}

func TestSplitByJobType_SourceEmployeeMappingWinsOverJobTag(t *testing.T) {
	// The merged-staff mapping takes precedence over the explicit tag.
	item := withSource(withJob(baseItem("Harian", 8, 100), "PACKER"), "EMP-2")
	rec := &payslip.PayrollRecord{
		JobType:            "CUTTER, PACKER",
		Items:              []payslip.PayItem{item},
		EmployeeJobMapping: map[string]string{"EMP-2": "CUTTER"},
	}

	jobs := SplitByJobType(rec)

	require.Len(t, jobs[0].Items, 1)
	assert.Empty(t, jobs[1].Items)
}

func TestSplitByJobType_MappingToUnknownJobFallsThrough(t *testing.T) {
	// Mapping that points outside the record's job list is ignored; the
	// explicit tag applies instead.
	item := withSource(withJob(baseItem("Harian", 8, 100), "PACKER"), "EMP-9")
	rec := &payslip.PayrollRecord{
		JobType:            "CUTTER, PACKER",
		Items:              []payslip.PayItem{item},
		EmployeeJobMapping: map[string]string{"EMP-9": "DRIVER"},
	}

	jobs := SplitByJobType(rec)

	assert.Empty(t, jobs[0].Items)
	require.Len(t, jobs[1].Items, 1)
}

func TestSplitByJobType_SubstringMatchOnDescription(t *testing.T) {
	rec := &payslip.PayrollRecord{
		JobType: "CUTTER, PACKER",
		Items: []payslip.PayItem{
			baseItem("Elaun cutter shift malam", 0, 30),
		},
	}

	jobs := SplitByJobType(rec)

	require.Len(t, jobs[0].Items, 1)
	assert.Empty(t, jobs[1].Items)
}

func TestSplitByJobType_UnmatchedItemSharedAcrossAllJobs(t *testing.T) {
	rec := &payslip.PayrollRecord{
		JobType: "CUTTER, PACKER",
		Items: []payslip.PayItem{
			baseItem("Elaun kehadiran", 0, 30),
		},
	}

	jobs := SplitByJobType(rec)

	require.Len(t, jobs[0].Items, 1)
	require.Len(t, jobs[1].Items, 1)
}

func TestSplitByJobType_NoItemLoss(t *testing.T) {
	rec := &payslip.PayrollRecord{
		JobType: "CUTTER, PACKER, MAINTEN",
		Items: []payslip.PayItem{
			withJob(baseItem("Harian", 8, 100), "CUTTER"),
			baseItem("Elaun packer", 0, 20),
			baseItem("Elaun umum", 0, 10), // shared
		},
	}

	jobs := SplitByJobType(rec)

	seen := make(map[string]int)
	for _, j := range jobs {
		for _, item := range j.Items {
			seen[item.Description]++
		}
	}
	// Every input item lands in at least one bucket; shared items may
	// appear more than once.
	assert.Equal(t, 1, seen["Harian"])
	assert.Equal(t, 1, seen["Elaun packer"])
	assert.Equal(t, 3, seen["Elaun umum"])
}

func TestSplitByJobType_LeaveCopiedIntoEveryJob(t *testing.T) {
	rec := &payslip.PayrollRecord{
		JobType: "CUTTER, PACKER",
		LeaveRecords: []payslip.LeaveRecord{
			{LeaveType: "cuti_tahunan", DaysTaken: decimal.NewFromInt(1), AmountPaid: decimal.NewFromInt(50)},
		},
	}

	jobs := SplitByJobType(rec)

	require.Len(t, jobs[0].LeaveRecords, 1)
	require.Len(t, jobs[1].LeaveRecords, 1)
}

func TestSplitByJobType_CommissionAttributionByDescription(t *testing.T) {
	rec := &payslip.PayrollRecord{
		JobType: "CUTTER, PACKER",
		CommissionRecords: []payslip.CommissionRecord{
			{Description: "Komisen packer", Amount: decimal.NewFromInt(40)},
			{Description: "Komisen am", Amount: decimal.NewFromInt(10)},
		},
	}

	jobs := SplitByJobType(rec)

	require.Len(t, jobs[0].CommissionRecords, 1)
	assert.Equal(t, "Komisen am", jobs[0].CommissionRecords[0].Description)
	require.Len(t, jobs[1].CommissionRecords, 2)
}

func TestSplitByJobType_GrossPayPortion(t *testing.T) {
	rec := &payslip.PayrollRecord{
		JobType: "CUTTER, PACKER",
		Items: []payslip.PayItem{
			withJob(baseItem("Harian", 8, 100), "CUTTER"),
			withJob(baseItem("Harian", 8, 200), "PACKER"),
		},
		LeaveRecords: []payslip.LeaveRecord{
			{LeaveType: "cuti_sakit", AmountPaid: decimal.NewFromInt(25)},
		},
		CommissionRecords: []payslip.CommissionRecord{
			{Description: "Komisen cutter", Amount: decimal.NewFromInt(15)},
		},
	}

	jobs := SplitByJobType(rec)

	// Items + full leave copy + attributed commission.
	assert.True(t, jobs[0].GrossPayPortion.Equal(decimal.NewFromInt(140)), jobs[0].GrossPayPortion.String())
	assert.True(t, jobs[1].GrossPayPortion.Equal(decimal.NewFromInt(225)), jobs[1].GrossPayPortion.String())
}

func TestNonEmptyJobs(t *testing.T) {
	jobs := []payslip.IndividualJobPayroll{
		{JobType: "CUTTER", Items: []payslip.PayItem{baseItem("Harian", 8, 100)}},
		{JobType: "PACKER"},
	}

	filtered := NonEmptyJobs(jobs)

	require.Len(t, filtered, 1)
	assert.Equal(t, "CUTTER", filtered[0].JobType)
}
