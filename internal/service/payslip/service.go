package payslip

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"

	"github.com/kilangpay/payslip-backend-go/internal/domain/employee"
	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
	"github.com/kilangpay/payslip-backend-go/internal/pkg/validator"
)

// batchComposeWorkers bounds the fan-out when composing a whole period.
// Composition is pure per record, so parallelism is safe; output order still
// follows record order.
const batchComposeWorkers = 4

type PayslipServiceImpl struct {
	payslipRepo  payslip.PayslipRepository
	employeeRepo employee.EmployeeRepository
}

func NewPayslipService(
	payslipRepo payslip.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
) payslip.PayslipService {
	return &PayslipServiceImpl{
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
	}
}

// Helper to get company_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

// ========== LISTING ==========

func (s *PayslipServiceImpl) ListPayrollRecords(ctx context.Context, filter payslip.PayslipFilter) (payslip.ListPayrollRecordResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payslip.ListPayrollRecordResponse{}, err
	}

	records, totalCount, err := s.payslipRepo.ListPayrollRecords(ctx, companyID, filter)
	if err != nil {
		return payslip.ListPayrollRecordResponse{}, err
	}

	result := make([]payslip.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, payslip.PayrollRecordResponse{
			ID:           r.ID,
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			JobType:      r.JobType,
			Section:      r.Section,
			PeriodMonth:  r.Month,
			PeriodYear:   r.Year,
			GrossPay:     r.GrossPay,
			NetPay:       r.NetPay,
			IsGrouped:    r.IsGrouped(),
			ItemCount:    len(r.Items),
		})
	}

	return payslip.ListPayrollRecordResponse{
		Data:       result,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ========== SINGLE PDF ==========

func (s *PayslipServiceImpl) GetPayslipPDF(ctx context.Context, recordID string) ([]byte, string, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, "", err
	}

	record, err := s.payslipRepo.GetPayrollRecordByID(ctx, recordID, companyID)
	if err != nil {
		return nil, "", err
	}

	companyName, err := s.payslipRepo.GetCompanyName(ctx, companyID)
	if err != nil {
		return nil, "", err
	}

	pages := Compose(&record, Options{
		CompanyName: companyName,
		Staff:       s.staffDetails(ctx, record.EmployeeID, companyID),
		MidMonth:    s.midMonth(ctx, &record, companyID),
	})

	var buf bytes.Buffer
	if err := RenderPDF(pages, &buf); err != nil {
		return nil, "", fmt.Errorf("failed to render payslip pdf: %w", err)
	}

	filename := fmt.Sprintf("payslip_%s_%02d_%d.pdf", record.EmployeeID, record.Month, record.Year)
	return buf.Bytes(), filename, nil
}

// ========== BATCH PDF ==========

func (s *PayslipServiceImpl) GetBatchPayslipPDF(ctx context.Context, req payslip.BatchPDFRequest) ([]byte, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, "", err
	}

	records, err := s.payslipRepo.GetPayrollRecordsByPeriod(ctx, companyID, req.PeriodMonth, req.PeriodYear, req.EmployeeIDs)
	if err != nil {
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", payslip.ErrEmptyBatch
	}

	companyName, err := s.payslipRepo.GetCompanyName(ctx, companyID)
	if err != nil {
		return nil, "", err
	}

	employeeIDs := make([]string, 0, len(records))
	for _, r := range records {
		employeeIDs = append(employeeIDs, r.EmployeeID)
	}
	staff, err := s.employeeRepo.GetByIDs(ctx, employeeIDs, companyID)
	if err != nil {
		return nil, "", err
	}

	// Compose per record concurrently; the slot per index keeps the output
	// page sequence in record order.
	composed := make([][]payslip.Page, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchComposeWorkers)
	for i := range records {
		i := i
		g.Go(func() error {
			rec := &records[i]
			composed[i] = Compose(rec, Options{
				CompanyName: companyName,
				Staff:       staffDetailsFrom(staff, rec.EmployeeID),
				MidMonth:    s.midMonth(gctx, rec, companyID),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	var pages []payslip.Page
	for _, p := range composed {
		pages = append(pages, p...)
	}

	var buf bytes.Buffer
	if err := RenderPDF(pages, &buf); err != nil {
		return nil, "", fmt.Errorf("failed to render batch payslip pdf: %w", err)
	}

	filename := fmt.Sprintf("payslips_%02d_%d.pdf", req.PeriodMonth, req.PeriodYear)
	return buf.Bytes(), filename, nil
}

// ========== HELPERS ==========

// staffDetails resolves the slip header identity; a missing employee row is
// not fatal, the record's own fields are used instead.
func (s *PayslipServiceImpl) staffDetails(ctx context.Context, employeeID, companyID string) *payslip.StaffDetails {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return nil
	}
	return newStaffDetails(emp)
}

func staffDetailsFrom(staff map[string]employee.Employee, employeeID string) *payslip.StaffDetails {
	emp, ok := staff[employeeID]
	if !ok {
		return nil
	}
	return newStaffDetails(emp)
}

// newStaffDetails builds the header override. Legacy employee rows hold
// free-text in the IC column; only a well-formed NRIC is printed.
func newStaffDetails(emp employee.Employee) *payslip.StaffDetails {
	icNo := emp.ICNo
	if !validator.IsValidICNo(icNo) {
		icNo = ""
	}
	return &payslip.StaffDetails{
		Name:    emp.FullName,
		ICNo:    icNo,
		JobName: emp.JobName,
		Section: emp.Section,
	}
}

// midMonth fetches the period's advance; absence is the normal case.
func (s *PayslipServiceImpl) midMonth(ctx context.Context, rec *payslip.PayrollRecord, companyID string) *payslip.MidMonthRecord {
	mm, err := s.payslipRepo.GetMidMonthRecord(ctx, rec.EmployeeID, rec.Month, rec.Year, companyID)
	if err != nil {
		// ErrMidMonthNotFound is the normal case; anything else degrades
		// to "no advance" rather than failing the slip.
		return nil
	}
	return &mm
}
