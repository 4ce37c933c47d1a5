package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/presensia/presensia-backend-go/internal/domain/attendance"
	"github.com/presensia/presensia-backend-go/internal/domain/employee"
	"github.com/presensia/presensia-backend-go/internal/domain/payroll"
	"github.com/presensia/presensia-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	loc            *time.Location
}

func NewPayrollService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		loc:            loc,
	}
}

func validatePeriod(year, month int) error {
	if !validator.IsValidPayrollYear(year) || !validator.IsValidMonth(month) {
		return payroll.ErrInvalidPeriod
	}
	return nil
}

// monthRange returns [first of month, first of next month).
func (s *PayrollServiceImpl) monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	return start, start.AddDate(0, 1, 0)
}

// ComputeMonthlyPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputeMonthlyPayroll(ctx context.Context, employeeID string, year, month int) (payroll.PayrollLine, error) {
	if err := validatePeriod(year, month); err != nil {
		return payroll.PayrollLine{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.PayrollLine{}, err
	}
	if !emp.IsPayrollReady() {
		return payroll.PayrollLine{}, payroll.ErrEmployeeRecordIncomplete
	}

	start, end := s.monthRange(year, month)
	days, err := s.attendanceRepo.ListByEmployeeAndDateRange(ctx, employeeID, start, end)
	if err != nil {
		return payroll.PayrollLine{}, fmt.Errorf("failed to list attendance for payroll: %w", err)
	}

	return buildLine(emp, year, month, days), nil
}

// BuildMonthlyReport implements payroll.PayrollService.
func (s *PayrollServiceImpl) BuildMonthlyReport(ctx context.Context, year, month int) ([]payroll.PayrollLine, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	start, end := s.monthRange(year, month)

	// Lines follow the insertion order of the employee listing.
	lines := make([]payroll.PayrollLine, 0, len(employees))
	for _, emp := range employees {
		if !emp.IsPayrollReady() {
			slog.Warn("skipping employee with incomplete record in payroll report",
				"employee_id", emp.ID,
				"period_year", year,
				"period_month", month,
			)
			continue
		}

		days, err := s.attendanceRepo.ListByEmployeeAndDateRange(ctx, emp.ID, start, end)
		if err != nil {
			slog.Error("skipping employee after attendance lookup failure",
				"employee_id", emp.ID,
				"error", err,
			)
			continue
		}

		lines = append(lines, buildLine(emp, year, month, days))
	}

	return lines, nil
}

// buildLine aggregates one month of attendance into a payroll line. Hours
// are rounded per record before summing, and the sum is rounded once more;
// changing that accumulation order changes the payout.
func buildLine(emp employee.Employee, year, month int, days []attendance.Attendance) payroll.PayrollLine {
	total := 0.0
	for _, d := range days {
		if d.ClockIn == nil || d.ClockOut == nil {
			continue
		}
		total += attendance.RoundHours(d.ClockOut.Sub(*d.ClockIn).Hours())
	}
	total = attendance.RoundHours(total)

	absence := payroll.ExpectedMonthlyHours - total
	if absence < 0 {
		absence = 0
	}
	absence = attendance.RoundHours(absence)

	blocks := int64(math.Floor(absence / payroll.DeductionBlockHours))
	deduction := payroll.DeductionPerBlock.Mul(decimal.NewFromInt(blocks))

	net := emp.BaseSalary.Sub(deduction)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return payroll.PayrollLine{
		EmployeeID:       emp.ID,
		EmployeeName:     emp.FullName,
		PositionName:     emp.PositionName,
		PeriodYear:       year,
		PeriodMonth:      month,
		BaseSalary:       *emp.BaseSalary,
		TotalHoursWorked: total,
		ExpectedHours:    payroll.ExpectedMonthlyHours,
		AbsenceHours:     absence,
		DeductionAmount:  deduction,
		NetSalary:        net,
	}
}
