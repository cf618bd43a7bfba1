package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByIDs(ctx context.Context, ids []string, companyID string) (map[string]Employee, error)
}
