package payslip

import "errors"

var (
	ErrPayrollRecordNotFound = errors.New("payroll record not found")
	ErrMidMonthNotFound      = errors.New("mid-month payroll not found")
	ErrCompanyNotFound       = errors.New("company not found")
	ErrInvalidPeriod         = errors.New("invalid payroll period")
	ErrEmptyBatch            = errors.New("no payroll records in the requested period")
)
