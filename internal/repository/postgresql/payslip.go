package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
	"github.com/kilangpay/payslip-backend-go/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

// ========== RECORDS ==========

// withReadSnapshot runs fn with every query routed through one transaction,
// so a record and its line-item children are read from the same snapshot.
func (r *payslipRepository) withReadSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(WithQuerierTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *payslipRepository) GetPayrollRecordByID(ctx context.Context, id string, companyID string) (payslip.PayrollRecord, error) {
	var rec payslip.PayrollRecord
	err := r.withReadSnapshot(ctx, func(ctx context.Context) error {
		var err error
		rec, err = r.getPayrollRecordByID(ctx, id, companyID)
		return err
	})
	return rec, err
}

func (r *payslipRepository) getPayrollRecordByID(ctx context.Context, id string, companyID string) (payslip.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, employee_name, job_type, section,
			   period_year, period_month, gross_pay, net_pay, created_at, updated_at
		FROM payroll_records
		WHERE id = $1 AND company_id = $2
	`

	var rec payslip.PayrollRecord
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.EmployeeName, &rec.JobType, &rec.Section,
		&rec.Year, &rec.Month, &rec.GrossPay, &rec.NetPay, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.PayrollRecord{}, payslip.ErrPayrollRecordNotFound
		}
		return payslip.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	if err := r.loadRecordDetails(ctx, &rec); err != nil {
		return payslip.PayrollRecord{}, err
	}

	return rec, nil
}

func (r *payslipRepository) ListPayrollRecords(ctx context.Context, companyID string, filter payslip.PayslipFilter) ([]payslip.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.PeriodMonth != nil {
		where += fmt.Sprintf(" AND period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		where += fmt.Sprintf(" AND period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Section != nil {
		where += fmt.Sprintf(" AND section = $%d", argIdx)
		args = append(args, *filter.Section)
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM payroll_records " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT id, company_id, employee_id, employee_name, job_type, section,
			   period_year, period_month, gross_pay, net_pay, created_at, updated_at
		FROM payroll_records
		%s
		ORDER BY employee_name, id
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payslip.PayrollRecord
	for rows.Next() {
		var rec payslip.PayrollRecord
		if err := rows.Scan(
			&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.EmployeeName, &rec.JobType, &rec.Section,
			&rec.Year, &rec.Month, &rec.GrossPay, &rec.NetPay, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, totalCount, nil
}

func (r *payslipRepository) GetPayrollRecordsByPeriod(ctx context.Context, companyID string, month, year int, employeeIDs []string) ([]payslip.PayrollRecord, error) {
	var records []payslip.PayrollRecord
	err := r.withReadSnapshot(ctx, func(ctx context.Context) error {
		var err error
		records, err = r.getPayrollRecordsByPeriod(ctx, companyID, month, year, employeeIDs)
		return err
	})
	return records, err
}

func (r *payslipRepository) getPayrollRecordsByPeriod(ctx context.Context, companyID string, month, year int, employeeIDs []string) ([]payslip.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, employee_name, job_type, section,
			   period_year, period_month, gross_pay, net_pay, created_at, updated_at
		FROM payroll_records
		WHERE company_id = $1 AND period_month = $2 AND period_year = $3
	`
	args := []interface{}{companyID, month, year}
	if len(employeeIDs) > 0 {
		query += " AND employee_id = ANY($4)"
		args = append(args, employeeIDs)
	}
	query += " ORDER BY employee_name, id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll records for period: %w", err)
	}
	defer rows.Close()

	var records []payslip.PayrollRecord
	for rows.Next() {
		var rec payslip.PayrollRecord
		if err := rows.Scan(
			&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.EmployeeName, &rec.JobType, &rec.Section,
			&rec.Year, &rec.Month, &rec.GrossPay, &rec.NetPay, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	for i := range records {
		if err := r.loadRecordDetails(ctx, &records[i]); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// loadRecordDetails pulls the line-item children of one record: pay items
// (with the category the pay-code master assigns), statutory deductions,
// leave, commissions and the merged-staff job mapping.
func (r *payslipRepository) loadRecordDetails(ctx context.Context, rec *payslip.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)

	itemsQuery := `
		SELECT i.id, i.pay_code_id, i.description, i.rate, i.rate_unit,
			   i.quantity, i.amount, i.is_manual, COALESCE(pc.category, ''),
			   i.job_type, i.source_employee_id
		FROM pay_items i
		LEFT JOIN pay_codes pc ON pc.id = i.pay_code_id
		WHERE i.payroll_record_id = $1
		ORDER BY i.position, i.id
	`
	rows, err := q.Query(ctx, itemsQuery, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to get pay items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item payslip.PayItem
		var category string
		if err := rows.Scan(
			&item.ID, &item.PayCodeID, &item.Description, &item.Rate, &item.RateUnit,
			&item.Quantity, &item.Amount, &item.IsManual, &category,
			&item.JobType, &item.SourceEmployeeID,
		); err != nil {
			return fmt.Errorf("failed to scan pay item: %w", err)
		}
		item.Category = payslip.ItemCategory(category)
		rec.Items = append(rec.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate pay items: %w", err)
	}

	dedQuery := `
		SELECT deduction_type, employer_amount, employee_amount
		FROM payroll_deductions
		WHERE payroll_record_id = $1
		ORDER BY id
	`
	dedRows, err := q.Query(ctx, dedQuery, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to get deductions: %w", err)
	}
	defer dedRows.Close()

	for dedRows.Next() {
		var d payslip.Deduction
		if err := dedRows.Scan(&d.DeductionType, &d.EmployerAmount, &d.EmployeeAmount); err != nil {
			return fmt.Errorf("failed to scan deduction: %w", err)
		}
		rec.Deductions = append(rec.Deductions, d)
	}
	if err := dedRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate deductions: %w", err)
	}

	leaveQuery := `
		SELECT leave_type, days_taken, amount_paid
		FROM payroll_leave_records
		WHERE payroll_record_id = $1
		ORDER BY id
	`
	leaveRows, err := q.Query(ctx, leaveQuery, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to get leave records: %w", err)
	}
	defer leaveRows.Close()

	for leaveRows.Next() {
		var l payslip.LeaveRecord
		if err := leaveRows.Scan(&l.LeaveType, &l.DaysTaken, &l.AmountPaid); err != nil {
			return fmt.Errorf("failed to scan leave record: %w", err)
		}
		rec.LeaveRecords = append(rec.LeaveRecords, l)
	}
	if err := leaveRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate leave records: %w", err)
	}

	comQuery := `
		SELECT description, amount
		FROM payroll_commissions
		WHERE payroll_record_id = $1
		ORDER BY id
	`
	comRows, err := q.Query(ctx, comQuery, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to get commissions: %w", err)
	}
	defer comRows.Close()

	for comRows.Next() {
		var c payslip.CommissionRecord
		if err := comRows.Scan(&c.Description, &c.Amount); err != nil {
			return fmt.Errorf("failed to scan commission: %w", err)
		}
		rec.CommissionRecords = append(rec.CommissionRecords, c)
	}
	if err := comRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate commissions: %w", err)
	}

	mapQuery := `
		SELECT source_employee_id, job_type
		FROM payroll_job_mappings
		WHERE payroll_record_id = $1
	`
	mapRows, err := q.Query(ctx, mapQuery, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to get job mappings: %w", err)
	}
	defer mapRows.Close()

	for mapRows.Next() {
		var staffID, jobType string
		if err := mapRows.Scan(&staffID, &jobType); err != nil {
			return fmt.Errorf("failed to scan job mapping: %w", err)
		}
		if rec.EmployeeJobMapping == nil {
			rec.EmployeeJobMapping = make(map[string]string)
		}
		rec.EmployeeJobMapping[staffID] = jobType
	}
	if err := mapRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate job mappings: %w", err)
	}

	return nil
}

// ========== MID-MONTH ==========

func (r *payslipRepository) GetMidMonthRecord(ctx context.Context, employeeID string, month, year int, companyID string) (payslip.MidMonthRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT amount, payment_method
		FROM mid_month_payrolls
		WHERE employee_id = $1 AND period_month = $2 AND period_year = $3 AND company_id = $4
	`

	var mm payslip.MidMonthRecord
	err := q.QueryRow(ctx, query, employeeID, month, year, companyID).Scan(&mm.Amount, &mm.PaymentMethod)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.MidMonthRecord{}, payslip.ErrMidMonthNotFound
		}
		return payslip.MidMonthRecord{}, fmt.Errorf("failed to get mid-month payroll: %w", err)
	}

	return mm, nil
}

// ========== COMPANY ==========

func (r *payslipRepository) GetCompanyName(ctx context.Context, companyID string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var name string
	err := q.QueryRow(ctx, "SELECT name FROM companies WHERE id = $1", companyID).Scan(&name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", payslip.ErrCompanyNotFound
		}
		return "", fmt.Errorf("failed to get company name: %w", err)
	}

	return name, nil
}
