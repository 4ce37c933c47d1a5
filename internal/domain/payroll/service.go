package payroll

import "context"

// PayrollService defines payroll computation over attendance records.
type PayrollService interface {
	// ComputeMonthlyPayroll computes one employee's payroll line for the
	// given period from stored attendance.
	ComputeMonthlyPayroll(ctx context.Context, employeeID string, year, month int) (PayrollLine, error)

	// BuildMonthlyReport fans the computation out across all active
	// employees. Single-employee failures are skipped, never fatal. Lines
	// follow the insertion order of the employee listing; no other order
	// is guaranteed.
	BuildMonthlyReport(ctx context.Context, year, month int) ([]PayrollLine, error)
}
