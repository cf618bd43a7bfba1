package payslip

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
)

func composeRecord() *payslip.PayrollRecord {
	return &payslip.PayrollRecord{
		ID:           "pr-1",
		EmployeeID:   "emp-1",
		EmployeeName: "Ahmad bin Ali",
		JobType:      "CUTTER",
		Section:      "Produksi",
		Year:         2026,
		Month:        7,
		GrossPay:     decimal.NewFromInt(900),
		NetPay:       decimal.NewFromInt(850),
		Items: []payslip.PayItem{
			baseItem("Gaji Harian", 8, 800),
			{Description: "Elaun Kehadiran", Amount: decimal.NewFromInt(100), Category: payslip.CategoryTambahan},
		},
	}
}

func TestCompose_NilRecordYieldsDiagnosticPage(t *testing.T) {
	pages := Compose(nil, Options{CompanyName: "Kilang Contoh Sdn Bhd"})

	require.Len(t, pages, 1)
	assert.Equal(t, payslip.PageKindDiagnostic, pages[0].Kind)
	require.NotNil(t, pages[0].Diagnostic)
	assert.Equal(t, "Kilang Contoh Sdn Bhd", pages[0].Header.CompanyName)
	assert.NotEmpty(t, pages[0].Diagnostic.Message)
}

func TestCompose_PanickingClassifierYieldsDiagnosticPage(t *testing.T) {
	boom := func([]payslip.PayItem) Buckets { panic("bad classifier") }

	var pages []payslip.Page
	assert.NotPanics(t, func() {
		pages = Compose(composeRecord(), Options{Classifier: boom})
	})

	require.Len(t, pages, 1)
	assert.Equal(t, payslip.PageKindDiagnostic, pages[0].Kind)
	require.NotNil(t, pages[0].Diagnostic)
	assert.Contains(t, pages[0].Diagnostic.Message, "bad classifier")
	assert.Equal(t, "Ahmad bin Ali", pages[0].Diagnostic.EmployeeName)
}

func TestCompose_SingleJobIsOneSummaryPage(t *testing.T) {
	rec := composeRecord()

	pages := Compose(rec, Options{CompanyName: "Kilang Contoh Sdn Bhd"})

	require.Len(t, pages, 1)
	page := pages[0]
	assert.Equal(t, payslip.PageKindSummary, page.Kind)
	assert.Equal(t, "CUTTER", page.Header.JobName)

	require.Len(t, page.Sections, 3)
	assert.Equal(t, payslip.CategoryBase, page.Sections[0].Category)
	assert.Equal(t, payslip.CategoryTambahan, page.Sections[1].Category)
	assert.Equal(t, payslip.CategoryOvertime, page.Sections[2].Category)

	// Single-job slips do not carry job-headed blocks.
	for _, sec := range page.Sections {
		for _, blk := range sec.Blocks {
			assert.Empty(t, blk.JobName)
		}
	}

	assert.True(t, page.Totals.GrossPay.Equal(decimal.NewFromInt(900)))
	assert.True(t, page.Totals.NetPay.Equal(decimal.NewFromInt(850)))
	assert.Empty(t, page.Notice)
}

func TestCompose_GroupedRecordEmitsJobDetailPages(t *testing.T) {
	rec := &payslip.PayrollRecord{
		EmployeeName: "Siti binti Rahman",
		JobType:      "CUTTER, PACKER",
		Year:         2026,
		Month:        7,
		GrossPay:     decimal.NewFromInt(300),
		NetPay:       decimal.NewFromInt(300),
		Items: []payslip.PayItem{
			withJob(baseItem("Gaji Harian", 8, 100), "CUTTER"),
			withJob(baseItem("Gaji Harian", 8, 200), "PACKER"),
		},
		EmployeeJobMapping: map[string]string{"S001": "CUTTER", "S002": "PACKER"},
	}

	pages := Compose(rec, Options{})

	require.Len(t, pages, 3)
	assert.Equal(t, payslip.PageKindSummary, pages[0].Kind)
	assert.Equal(t, "CUTTER, PACKER", pages[0].Header.JobName)

	assert.Equal(t, payslip.PageKindJobDetail, pages[1].Kind)
	assert.Equal(t, "CUTTER", pages[1].Header.JobName)
	assert.Equal(t, payslip.PageKindJobDetail, pages[2].Kind)
	assert.Equal(t, "PACKER", pages[2].Header.JobName)

	// Breakdown pages carry the no-deduction notice and are never the place
	// statutory deductions print.
	for _, p := range pages[1:] {
		assert.Equal(t, jobPageNotice, p.Notice)
		assert.Empty(t, p.Deductions)
	}
	assert.True(t, pages[1].Totals.GrossPay.Equal(decimal.NewFromInt(100)))
	assert.True(t, pages[2].Totals.GrossPay.Equal(decimal.NewFromInt(200)))
}

func TestCompose_GroupedSummaryBlocksPerJob(t *testing.T) {
	rec := &payslip.PayrollRecord{
		JobType:  "CUTTER, PACKER",
		GrossPay: decimal.NewFromInt(300),
		Items: []payslip.PayItem{
			withJob(baseItem("Gaji Harian", 8, 100), "CUTTER"),
			withJob(baseItem("Gaji Harian", 8, 200), "PACKER"),
		},
		LeaveRecords: []payslip.LeaveRecord{
			{LeaveType: "cuti_sakit", DaysTaken: decimal.NewFromInt(1), AmountPaid: decimal.NewFromInt(40)},
		},
		EmployeeJobMapping: map[string]string{"S001": "CUTTER", "S002": "PACKER"},
	}

	pages := Compose(rec, Options{})
	base := pages[0].Sections[0]

	require.Len(t, base.Blocks, 2)
	assert.Equal(t, "CUTTER", base.Blocks[0].JobName)
	assert.Equal(t, "S001", base.Blocks[0].StaffID)
	assert.True(t, base.Blocks[0].Subtotal.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "PACKER", base.Blocks[1].JobName)
	assert.Equal(t, "S002", base.Blocks[1].StaffID)

	// Employee-level leave prints once, in a trailing unnamed tambahan block.
	tambahan := pages[0].Sections[1]
	require.Len(t, tambahan.Blocks, 1)
	assert.Empty(t, tambahan.Blocks[0].JobName)
	require.Len(t, tambahan.Blocks[0].Rows, 1)
	assert.Equal(t, "Cuti Sakit", tambahan.Blocks[0].Rows[0].Description)
}

func TestCompose_JobsWithNoContentGetNoDetailPage(t *testing.T) {
	rec := &payslip.PayrollRecord{
		JobType:  "CUTTER, PACKER",
		GrossPay: decimal.NewFromInt(100),
		Items: []payslip.PayItem{
			withJob(baseItem("Gaji Harian", 8, 100), "CUTTER"),
		},
	}

	pages := Compose(rec, Options{})

	require.Len(t, pages, 2)
	assert.Equal(t, "CUTTER", pages[1].Header.JobName)
}

func TestCompose_StaffOverridesHeaderIdentity(t *testing.T) {
	rec := composeRecord()

	pages := Compose(rec, Options{Staff: &payslip.StaffDetails{
		Name:    "Ahmad bin Ali (HR)",
		ICNo:    "900101-14-5678",
		Section: "Penyelenggaraan",
	}})

	h := pages[0].Header
	assert.Equal(t, "Ahmad bin Ali (HR)", h.EmployeeName)
	assert.Equal(t, "900101-14-5678", h.ICNo)
	assert.Equal(t, "Penyelenggaraan", h.Section)
}

func TestCompose_StaffJobNameOverridesSummaryOnly(t *testing.T) {
	rec := &payslip.PayrollRecord{
		JobType:  "CUTTER, PACKER",
		GrossPay: decimal.NewFromInt(300),
		Items: []payslip.PayItem{
			withJob(baseItem("Gaji Harian", 8, 100), "CUTTER"),
			withJob(baseItem("Gaji Harian", 8, 200), "PACKER"),
		},
	}

	pages := Compose(rec, Options{Staff: &payslip.StaffDetails{JobName: "Operator Pengeluaran"}})

	require.Len(t, pages, 3)
	assert.Equal(t, "Operator Pengeluaran", pages[0].Header.JobName)
	assert.Equal(t, "CUTTER", pages[1].Header.JobName)
	assert.Equal(t, "PACKER", pages[2].Header.JobName)
}

func TestCompose_IsPureAndRepeatable(t *testing.T) {
	rec := &payslip.PayrollRecord{
		EmployeeName: "Lim Wei",
		JobType:      "MAINTEN, PACKER",
		GrossPay:     decimal.NewFromInt(500),
		NetPay:       decimal.NewFromInt(450),
		Items: []payslip.PayItem{
			withJob(baseItem("Gaji Harian", 8, 300), "MAINTEN"),
			withJob(baseItem("Gaji Harian", 4, 200), "PACKER"),
		},
		Deductions: []payslip.Deduction{
			{DeductionType: "EPF", EmployerAmount: decimal.NewFromInt(30), EmployeeAmount: decimal.NewFromInt(25)},
		},
		LeaveRecords: []payslip.LeaveRecord{
			{LeaveType: "cuti_tahunan", DaysTaken: decimal.NewFromInt(2), AmountPaid: decimal.NewFromInt(60)},
		},
		CommissionRecords: []payslip.CommissionRecord{
			{Description: "Komisen", Amount: decimal.NewFromInt(80)},
		},
		EmployeeJobMapping: map[string]string{"S010": "MAINTEN", "S011": "PACKER"},
	}
	opts := Options{
		CompanyName: "Kilang Contoh Sdn Bhd",
		MidMonth:    &payslip.MidMonthRecord{Amount: decimal.NewFromInt(150)},
	}

	first := Compose(rec, opts)
	second := Compose(rec, opts)

	assert.Equal(t, first, second)
	// The input record is never mutated.
	assert.Equal(t, "MAINTEN, PACKER", rec.JobType)
	assert.Len(t, rec.Items, 2)
}
