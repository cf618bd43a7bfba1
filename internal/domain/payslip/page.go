package payslip

import "github.com/shopspring/decimal"

// PageKind enum
type PageKind string

const (
	// PageKindSummary is the consolidated slip: all items, statutory
	// deductions, advances and the final payment.
	PageKindSummary PageKind = "summary"
	// PageKindJobDetail is the per-job breakdown emitted for grouped
	// records. Statutory deductions never appear here.
	PageKindJobDetail PageKind = "job_detail"
	// PageKindDiagnostic replaces the slip when composition fails.
	PageKindDiagnostic PageKind = "diagnostic"
)

// Page is one printable payslip page description. The PDF renderer consumes
// these; it adds physical continuation pages when rows overflow, so one Page
// may span more than one sheet.
type Page struct {
	Kind     PageKind
	Header   PageHeader
	Sections []Section

	// Summary page only.
	Deductions []DeductionLine
	Advances   []AdvanceLine
	Totals     Totals

	// Job detail pages carry the statutory-deduction notice here.
	Notice string

	Diagnostic *DiagnosticInfo
}

// PageHeader - identity block at the top of every page
type PageHeader struct {
	CompanyName  string
	EmployeeName string
	ICNo         string
	JobName      string
	Section      string
	Year         int
	Month        int
}

// Section - one pay category (base, tambahan, overtime) on a page
type Section struct {
	Category ItemCategory
	Title    string
	Blocks   []JobBlock
	Total    decimal.Decimal
}

// JobBlock - the rows of one job within a section. Single-job slips have one
// block with an empty JobName; grouped summary pages carry one block per job
// with its bracketed subtotal.
type JobBlock struct {
	JobName  string
	StaffID  string
	Subtotal decimal.Decimal
	Rows     []ItemRow
}

// ItemRow - one printable table row
type ItemRow struct {
	Description string
	Rate        decimal.Decimal
	RateUnit    RateUnit
	Quantity    decimal.Decimal
	Amount      decimal.Decimal

	// Note carries the "N Jam" hour annotation on the first row of each
	// distinct-quantity group; blank on subsequent rows of the group.
	Note string
}

// DeductionLine - one statutory deduction row. Employee is rendered
// parenthesized as a reduction.
type DeductionLine struct {
	Label    string
	Employer decimal.Decimal
	Employee decimal.Decimal
}

// AdvanceLine - an amount already paid before slip date, subtracted from net
// pay at print time (mid-month advance, commission advance, MAINTEN cuti
// tahunan claw-back).
type AdvanceLine struct {
	Label  string
	Amount decimal.Decimal
}

// Totals - the summary/footer figures of a page
type Totals struct {
	GrossPay        decimal.Decimal
	AverageBaseRate decimal.Decimal
	DeductionTotal  decimal.Decimal
	NetPay          decimal.Decimal
	AdvanceTotal    decimal.Decimal
	FinalPayment    decimal.Decimal
}

// DiagnosticInfo - rendered instead of a slip when composition fails; echoes
// enough identity to trace the record.
type DiagnosticInfo struct {
	EmployeeName string
	JobType      string
	Message      string
}
