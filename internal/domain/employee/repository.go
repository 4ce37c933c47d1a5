package employee

import "context"

// EmployeeRepository is the read-only registry contract the engine consumes.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
