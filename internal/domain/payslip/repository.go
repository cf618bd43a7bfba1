package payslip

import "context"

// PayslipRepository defines data access for payslip printing.
// All methods include companyID to prevent cross-company data access.
type PayslipRepository interface {
	// Records
	GetPayrollRecordByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, companyID string, filter PayslipFilter) ([]PayrollRecord, int64, error)
	GetPayrollRecordsByPeriod(ctx context.Context, companyID string, month, year int, employeeIDs []string) ([]PayrollRecord, error)

	// Mid-month advances. Returns ErrMidMonthNotFound when the employee had
	// no advance in the period.
	GetMidMonthRecord(ctx context.Context, employeeID string, month, year int, companyID string) (MidMonthRecord, error)

	// Company display name for the slip header
	GetCompanyName(ctx context.Context, companyID string) (string, error)
}
