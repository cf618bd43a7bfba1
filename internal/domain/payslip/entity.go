package payslip

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateUnit enum - unit a pay item's rate is quoted in. Legacy records may
// carry free-text units, so this is a string alias rather than a closed set.
type RateUnit string

const (
	RateUnitHour    RateUnit = "Hour"
	RateUnitDay     RateUnit = "Day"
	RateUnitBag     RateUnit = "Bag"
	RateUnitTrip    RateUnit = "Trip"
	RateUnitPercent RateUnit = "Percent"
	RateUnitFixed   RateUnit = "Fixed"
)

// ItemCategory enum
type ItemCategory string

const (
	CategoryBase     ItemCategory = "base"
	CategoryTambahan ItemCategory = "tambahan"
	CategoryOvertime ItemCategory = "overtime"
)

// PayItem - one pay line within a payroll record
type PayItem struct {
	ID          string
	PayCodeID   string
	Description string
	Rate        decimal.Decimal
	RateUnit    RateUnit
	Quantity    decimal.Decimal
	Amount      decimal.Decimal
	IsManual    bool

	// Category comes from the pay-code master table; the classifier
	// partitions on it.
	Category ItemCategory

	// Set by the payroll engine when the record merges several job
	// assignments. JobType tags the item to one sub-job directly;
	// SourceEmployeeID links it to the merged staff id it came from.
	JobType          *string
	SourceEmployeeID *string
}

// Deduction - statutory deduction row. EmployerAmount is informational,
// EmployeeAmount is always a reduction of net pay.
type Deduction struct {
	DeductionType  string
	EmployerAmount decimal.Decimal
	EmployeeAmount decimal.Decimal
}

// Recognized deduction types. EPF/SOCSO/SIP match case-insensitively,
// income_tax matches exactly.
const (
	DeductionEPF       = "EPF"
	DeductionSOCSO     = "SOCSO"
	DeductionSIP       = "SIP"
	DeductionIncomeTax = "income_tax"
)

// LeaveRecord - paid leave within the pay period. LeaveType is a snake_case
// token, e.g. "cuti_tahunan".
type LeaveRecord struct {
	LeaveType  string
	DaysTaken  decimal.Decimal
	AmountPaid decimal.Decimal
}

const LeaveTypeCutiTahunan = "cuti_tahunan"

// CommissionRecord - commission paid within the period
type CommissionRecord struct {
	Description string
	Amount      decimal.Decimal
}

// MidMonthRecord - advance already paid mid-period, subtracted from net pay
// at print time
type MidMonthRecord struct {
	Amount        decimal.Decimal
	PaymentMethod string
}

// PayrollRecord - one employee's pay period, produced by the payroll engine.
// The composer never mutates it.
type PayrollRecord struct {
	ID           string
	CompanyID    string
	EmployeeID   string
	EmployeeName string

	// JobType may be a comma-and-space-joined list of job names when the
	// record aggregates multiple job assignments, e.g. "CUTTER, PACKER".
	JobType string
	Section string
	Year    int
	Month   int

	GrossPay decimal.Decimal
	NetPay   decimal.Decimal

	Items             []PayItem
	Deductions        []Deduction
	LeaveRecords      []LeaveRecord
	CommissionRecords []CommissionRecord

	// EmployeeJobMapping maps a merged staff id to the job-type token it
	// worked under. Values are always tokens of the split JobType.
	EmployeeJobMapping map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobTypeSeparator is the delimiter grouped records are joined with. A bare
// comma is not enough; legacy job names contain commas without a space.
const JobTypeSeparator = ", "

// IsGrouped reports whether the record merges multiple job assignments.
func (r *PayrollRecord) IsGrouped() bool {
	return strings.Contains(r.JobType, JobTypeSeparator)
}

// JobTypes returns the ordered job-name tokens of JobType. Single-job records
// return a one-element slice.
func (r *PayrollRecord) JobTypes() []string {
	parts := strings.Split(r.JobType, JobTypeSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// MaintenJobCode marks maintenance staff. Their cuti_tahunan pay is a
// recoverable advance, clawed back on the slip.
const MaintenJobCode = "MAINTEN"

// IsMainten reports whether any job token of the record is the maintenance
// code.
func (r *PayrollRecord) IsMainten() bool {
	for _, j := range r.JobTypes() {
		if j == MaintenJobCode {
			return true
		}
	}
	return false
}

// IndividualJobPayroll - one job's share of a grouped record. Derived per
// composition call, never persisted. LeaveRecords is always the full copy
// because leave is employee-level, not job-level.
type IndividualJobPayroll struct {
	JobType           string
	Items             []PayItem
	LeaveRecords      []LeaveRecord
	CommissionRecords []CommissionRecord
	GrossPayPortion   decimal.Decimal
}
