package payslip

import "context"

// PayslipService defines business logic for payslip listing and printing
type PayslipService interface {
	// ListPayrollRecords lists records for the print screen (companyID from JWT)
	ListPayrollRecords(ctx context.Context, filter PayslipFilter) (ListPayrollRecordResponse, error)

	// GetPayslipPDF composes and renders one employee's slip. Never fails on
	// bad record data; a diagnostic page is rendered instead.
	GetPayslipPDF(ctx context.Context, recordID string) (pdf []byte, filename string, err error)

	// GetBatchPayslipPDF renders every record of the period into one
	// document, in record order.
	GetBatchPayslipPDF(ctx context.Context, req BatchPDFRequest) (pdf []byte, filename string, err error)
}
