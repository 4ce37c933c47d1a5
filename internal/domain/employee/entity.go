package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the registry record this engine consumes read-only. Ownership
// of the record, its lifecycle and its mutations live in the employee
// registry, not here.
type Employee struct {
	ID           string
	FullName     string
	PositionName string
	BaseSalary   *decimal.Decimal
	IsActive     bool
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPayrollReady reports whether the record has everything a payroll run
// needs. Records failing this are a data-quality problem, not a fatal one.
func (e Employee) IsPayrollReady() bool {
	return e.FullName != "" && e.PositionName != "" && e.BaseSalary != nil
}
