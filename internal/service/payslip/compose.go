package payslip

import (
	"fmt"
	"sort"

	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

// Options configures one composition call.
type Options struct {
	CompanyName string

	// Staff overrides the header identity. When nil the record's own
	// employee fields are used.
	Staff *payslip.StaffDetails

	// MidMonth is the advance already paid this period, nil when none.
	MidMonth *payslip.MidMonthRecord

	// Classifier defaults to ClassifyByCategory.
	Classifier Classifier
}

const jobPageNotice = "No statutory deductions on this breakdown; they are applied once on the combined slip."

// Compose turns one payroll record into its printable page sequence: the
// consolidated summary page, plus one breakdown page per job when the record
// spans multiple jobs. It is a pure function of its inputs and never fails;
// a nil record or a panicking classifier yields a single diagnostic page.
func Compose(rec *payslip.PayrollRecord, opts Options) (pages []payslip.Page) {
	if rec == nil {
		return []payslip.Page{diagnosticPage(nil, opts, "payroll record is missing")}
	}

	defer func() {
		if r := recover(); r != nil {
			pages = []payslip.Page{diagnosticPage(rec, opts, fmt.Sprintf("payslip composition failed: %v", r))}
		}
	}()

	classify := opts.Classifier
	if classify == nil {
		classify = ClassifyByCategory
	}

	jobs := SplitByJobType(rec)
	agg := ComputeAggregates(rec, classify(rec.Items), opts.MidMonth)

	pages = append(pages, summaryPage(rec, jobs, agg, classify, opts))

	if rec.IsGrouped() {
		for _, job := range NonEmptyJobs(jobs) {
			pages = append(pages, jobDetailPage(rec, job, classify, opts))
		}
	}

	return pages
}

func summaryPage(rec *payslip.PayrollRecord, jobs []payslip.IndividualJobPayroll, agg Aggregates, classify Classifier, opts Options) payslip.Page {
	// The staff override may rename the job on the combined slip; per-job
	// breakdown pages keep each job's own name.
	jobName := rec.JobType
	if opts.Staff != nil && opts.Staff.JobName != "" {
		jobName = opts.Staff.JobName
	}

	page := payslip.Page{
		Kind:       payslip.PageKindSummary,
		Header:     header(rec, opts, jobName),
		Deductions: agg.DeductionLines,
		Advances:   agg.AdvanceLines,
		Totals: payslip.Totals{
			GrossPay:        rec.GrossPay,
			AverageBaseRate: agg.AverageBaseRate,
			DeductionTotal:  agg.DeductionTotal,
			NetPay:          rec.NetPay,
			AdvanceTotal:    agg.AdvanceTotal,
			FinalPayment:    agg.FinalPayment,
		},
	}

	if !rec.IsGrouped() {
		b := classify(rec.Items)
		page.Sections = []payslip.Section{
			section(payslip.CategoryBase, agg.BaseTotalAmount, []payslip.JobBlock{
				{Rows: hourAnnotatedRows(b.Base)},
			}),
			section(payslip.CategoryTambahan, agg.CombinedTambahanTotal, []payslip.JobBlock{
				{Rows: tambahanRows(b.Tambahan, rec.LeaveRecords, rec.CommissionRecords)},
			}),
			section(payslip.CategoryOvertime, agg.OvertimeTotalAmount, []payslip.JobBlock{
				{Rows: hourAnnotatedRows(b.Overtime)},
			}),
		}
		return page
	}

	// Grouped record: every section gets one block per job, headed by the
	// job name, its attributed staff id and a bracketed subtotal. Leave is
	// employee-level and prints once, in a trailing unnamed block of the
	// tambahan section.
	var base, tambahan, overtime []payslip.JobBlock
	for _, job := range jobs {
		b := classify(job.Items)
		staffID := staffIDForJob(rec.EmployeeJobMapping, job.JobType)

		if rows := hourAnnotatedRows(b.Base); len(rows) > 0 {
			base = append(base, jobBlock(job.JobType, staffID, rows))
		}
		if rows := tambahanRows(b.Tambahan, nil, job.CommissionRecords); len(rows) > 0 {
			tambahan = append(tambahan, jobBlock(job.JobType, staffID, rows))
		}
		if rows := hourAnnotatedRows(b.Overtime); len(rows) > 0 {
			overtime = append(overtime, jobBlock(job.JobType, staffID, rows))
		}
	}
	if rows := leaveRows(rec.LeaveRecords); len(rows) > 0 {
		tambahan = append(tambahan, jobBlock("", "", rows))
	}

	page.Sections = []payslip.Section{
		section(payslip.CategoryBase, agg.BaseTotalAmount, base),
		section(payslip.CategoryTambahan, agg.CombinedTambahanTotal, tambahan),
		section(payslip.CategoryOvertime, agg.OvertimeTotalAmount, overtime),
	}
	return page
}

func jobDetailPage(rec *payslip.PayrollRecord, job payslip.IndividualJobPayroll, classify Classifier, opts Options) payslip.Page {
	b := classify(job.Items)

	return payslip.Page{
		Kind:   payslip.PageKindJobDetail,
		Header: header(rec, opts, job.JobType),
		Sections: []payslip.Section{
			section(payslip.CategoryBase, sumAmounts(b.Base), []payslip.JobBlock{
				{Rows: hourAnnotatedRows(b.Base)},
			}),
			section(payslip.CategoryTambahan, sumAmounts(b.Tambahan).Add(leaveTotal(job.LeaveRecords)).Add(commissionTotal(job.CommissionRecords)), []payslip.JobBlock{
				{Rows: tambahanRows(b.Tambahan, job.LeaveRecords, job.CommissionRecords)},
			}),
			section(payslip.CategoryOvertime, sumAmounts(b.Overtime), []payslip.JobBlock{
				{Rows: hourAnnotatedRows(b.Overtime)},
			}),
		},
		Totals: payslip.Totals{GrossPay: job.GrossPayPortion},
		Notice: jobPageNotice,
	}
}

func diagnosticPage(rec *payslip.PayrollRecord, opts Options, message string) payslip.Page {
	info := &payslip.DiagnosticInfo{Message: message}
	page := payslip.Page{
		Kind:       payslip.PageKindDiagnostic,
		Header:     payslip.PageHeader{CompanyName: opts.CompanyName},
		Diagnostic: info,
	}
	if rec != nil {
		info.EmployeeName = rec.EmployeeName
		info.JobType = rec.JobType
		page.Header = header(rec, opts, rec.JobType)
	}
	return page
}

// ========== BUILDING BLOCKS ==========

func header(rec *payslip.PayrollRecord, opts Options, jobName string) payslip.PageHeader {
	h := payslip.PageHeader{
		CompanyName:  opts.CompanyName,
		EmployeeName: rec.EmployeeName,
		JobName:      jobName,
		Section:      rec.Section,
		Year:         rec.Year,
		Month:        rec.Month,
	}
	if opts.Staff != nil {
		if opts.Staff.Name != "" {
			h.EmployeeName = opts.Staff.Name
		}
		h.ICNo = opts.Staff.ICNo
		if opts.Staff.Section != "" {
			h.Section = opts.Staff.Section
		}
	}
	return h
}

var sectionTitles = map[payslip.ItemCategory]string{
	payslip.CategoryBase:     "Gaji Pokok",
	payslip.CategoryTambahan: "Tambahan",
	payslip.CategoryOvertime: "Kerja Lebih Masa (OT)",
}

func section(category payslip.ItemCategory, total decimal.Decimal, blocks []payslip.JobBlock) payslip.Section {
	for i := range blocks {
		blocks[i].Subtotal = rowTotal(blocks[i].Rows)
	}
	return payslip.Section{
		Category: category,
		Title:    sectionTitles[category],
		Blocks:   blocks,
		Total:    total,
	}
}

func jobBlock(jobName, staffID string, rows []payslip.ItemRow) payslip.JobBlock {
	return payslip.JobBlock{JobName: jobName, StaffID: staffID, Rows: rows}
}

// hourAnnotatedRows emits one row per item with the "N Jam" note on the
// first row of each distinct-quantity group only.
func hourAnnotatedRows(items []payslip.PayItem) []payslip.ItemRow {
	var rows []payslip.ItemRow
	for _, g := range GroupByHours(items) {
		for i, item := range g.Items {
			row := itemRow(item)
			if i == 0 {
				row.Note = fmt.Sprintf("%s Jam", g.Quantity.String())
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// tambahanRows lists tambahan items plainly (no hour note), then paid leave,
// then commissions.
func tambahanRows(items []payslip.PayItem, leave []payslip.LeaveRecord, commissions []payslip.CommissionRecord) []payslip.ItemRow {
	var rows []payslip.ItemRow
	for _, item := range items {
		rows = append(rows, itemRow(item))
	}
	rows = append(rows, leaveRows(leave)...)
	for _, c := range commissions {
		rows = append(rows, payslip.ItemRow{Description: c.Description, Amount: c.Amount})
	}
	return rows
}

func leaveRows(leave []payslip.LeaveRecord) []payslip.ItemRow {
	var rows []payslip.ItemRow
	for _, l := range leave {
		rows = append(rows, payslip.ItemRow{
			Description: leaveLabel(l.LeaveType),
			RateUnit:    payslip.RateUnitDay,
			Quantity:    l.DaysTaken,
			Amount:      l.AmountPaid,
		})
	}
	return rows
}

func itemRow(item payslip.PayItem) payslip.ItemRow {
	return payslip.ItemRow{
		Description: item.Description,
		Rate:        item.Rate,
		RateUnit:    item.RateUnit,
		Quantity:    item.Quantity,
		Amount:      item.Amount,
	}
}

// staffIDForJob reverses the merged-staff mapping: the lowest staff id that
// worked the job, for the block header. Sorted for deterministic output.
func staffIDForJob(mapping map[string]string, jobType string) string {
	ids := make([]string, 0, len(mapping))
	for id, job := range mapping {
		if job == jobType {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return ""
	}
	sort.Strings(ids)
	return ids[0]
}

func rowTotal(rows []payslip.ItemRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	return total
}

func leaveTotal(leave []payslip.LeaveRecord) decimal.Decimal {
	total := decimal.Zero
	for _, l := range leave {
		total = total.Add(l.AmountPaid)
	}
	return total
}

func commissionTotal(commissions []payslip.CommissionRecord) decimal.Decimal {
	total := decimal.Zero
	for _, c := range commissions {
		total = total.Add(c.Amount)
	}
	return total
}
