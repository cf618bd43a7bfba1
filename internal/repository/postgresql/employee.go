package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kilangpay/payslip-backend-go/internal/domain/employee"
	"github.com/kilangpay/payslip-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	e.id, e.company_id, e.employee_code, e.full_name, e.ic_no,
	COALESCE(j.name, ''), e.section, e.is_active, e.created_at, e.updated_at
`

func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		LEFT JOIN job_types j ON j.id = e.job_type_id
		WHERE e.id = $1 AND e.company_id = $2
	`, employeeColumns)

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&emp.ID, &emp.CompanyID, &emp.EmployeeCode, &emp.FullName, &emp.ICNo,
		&emp.JobName, &emp.Section, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

func (r *employeeRepository) GetByIDs(ctx context.Context, ids []string, companyID string) (map[string]employee.Employee, error) {
	result := make(map[string]employee.Employee)
	if len(ids) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		LEFT JOIN job_types j ON j.id = e.job_type_id
		WHERE e.id = ANY($1) AND e.company_id = $2
	`, employeeColumns)

	rows, err := q.Query(ctx, query, ids, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.CompanyID, &emp.EmployeeCode, &emp.FullName, &emp.ICNo,
			&emp.JobName, &emp.Section, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		result[emp.ID] = emp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return result, nil
}
