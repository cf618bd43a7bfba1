package employee

import "time"

// Employee - reference data the payslip header needs. The full personnel
// record lives in the HR system; this service only reads display fields.
type Employee struct {
	ID           string
	CompanyID    string
	EmployeeCode string
	FullName     string
	ICNo         string
	JobName      string
	Section      string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
