package payroll

import (
	"github.com/shopspring/decimal"
)

// Payroll policy, fixed platform-wide.
const (
	// ExpectedMonthlyHours models 30 working days of 8 hours. It is a
	// policy constant, not derived from the calendar.
	ExpectedMonthlyHours = 240.0

	// DeductionBlockHours is the absence block size that triggers one
	// penalty; partial blocks incur nothing.
	DeductionBlockHours = 60.0
)

// DeductionPerBlock is the flat penalty per complete absence block.
var DeductionPerBlock = decimal.NewFromInt(20000)

// PayrollLine is a derived computation result for one employee for one
// (year, month). It is recomputed on demand from attendance records and is
// never stored as authoritative state.
type PayrollLine struct {
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	PositionName     string          `json:"position_name"`
	PeriodYear       int             `json:"period_year"`
	PeriodMonth      int             `json:"period_month"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	TotalHoursWorked float64         `json:"total_hours_worked"`
	ExpectedHours    float64         `json:"expected_hours"`
	AbsenceHours     float64         `json:"absence_hours"`
	DeductionAmount  decimal.Decimal `json:"deduction_amount"`
	NetSalary        decimal.Decimal `json:"net_salary"`
}
