package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/presensia/presensia-backend-go/internal/domain/attendance"
	"github.com/presensia/presensia-backend-go/internal/domain/employee"
	"github.com/presensia/presensia-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	records []attendance.Attendance
	failFor map[string]bool
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	for i := range f.records {
		if f.records[i].EmployeeID == employeeID && f.records[i].Date.Equal(date) {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndDateRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	if f.failFor[employeeID] {
		return nil, errors.New("storage unavailable")
	}
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.EmployeeID == employeeID && !r.Date.Before(start) && r.Date.Before(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.records = append(f.records, att)
	return att, nil
}

func salary(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func testEmployee(id string, baseSalary int64) employee.Employee {
	return employee.Employee{
		ID:           id,
		FullName:     "Employee " + id,
		PositionName: "Staff",
		BaseSalary:   salary(baseSalary),
		IsActive:     true,
	}
}

// workedDays fills the repo with n full days of `hours` hours each in March 2025.
func workedDays(employeeID string, n int, hours float64) []attendance.Attendance {
	var out []attendance.Attendance
	for i := 0; i < n; i++ {
		day := time.Date(2025, 3, 1+i, 0, 0, 0, 0, time.UTC)
		in := day.Add(8 * time.Hour)
		outT := in.Add(time.Duration(hours * float64(time.Hour)))
		out = append(out, attendance.Attendance{
			EmployeeID: employeeID,
			Date:       day,
			ClockIn:    &in,
			ClockOut:   &outT,
		})
	}
	return out
}

func newTestService(attRepo attendance.AttendanceRepository, empRepo employee.EmployeeRepository) payroll.PayrollService {
	return NewPayrollService(attRepo, empRepo, time.UTC)
}

func TestComputeMonthlyPayroll_NoHoursWorked(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(
		&fakeAttendanceRepo{},
		&fakeEmployeeRepo{employees: []employee.Employee{testEmployee("emp-1", 125000)}},
	)

	line, err := svc.ComputeMonthlyPayroll(ctx, "emp-1", 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, line.TotalHoursWorked)
	assert.Equal(t, 240.0, line.ExpectedHours)
	assert.Equal(t, 240.0, line.AbsenceHours)
	// floor(240/60) * 20000 = 80000
	assert.True(t, line.DeductionAmount.Equal(decimal.NewFromInt(80000)), "deduction = %s", line.DeductionAmount)
	assert.True(t, line.NetSalary.Equal(decimal.NewFromInt(45000)), "net = %s", line.NetSalary)
}

func TestComputeMonthlyPayroll_FullMonth(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(
		&fakeAttendanceRepo{records: workedDays("emp-1", 24, 10)}, // 240 hours
		&fakeEmployeeRepo{employees: []employee.Employee{testEmployee("emp-1", 125000)}},
	)

	line, err := svc.ComputeMonthlyPayroll(ctx, "emp-1", 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 240.0, line.TotalHoursWorked)
	assert.Equal(t, 0.0, line.AbsenceHours)
	assert.True(t, line.DeductionAmount.IsZero())
	assert.True(t, line.NetSalary.Equal(decimal.NewFromInt(125000)))
}

func TestComputeMonthlyPayroll_DeductionBlocks(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name          string
		workedHours   float64 // per day over 10 days
		wantAbsence   float64
		wantDeduction int64
	}{
		// 181 worked -> 59 absence, below one full block
		{"fifty-nine absence hours", 18.1, 59, 0},
		// 180 worked -> exactly one 60h block
		{"sixty absence hours", 18, 60, 20000},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := newTestService(
				&fakeAttendanceRepo{records: workedDays("emp-1", 10, c.workedHours)},
				&fakeEmployeeRepo{employees: []employee.Employee{testEmployee("emp-1", 125000)}},
			)

			line, err := svc.ComputeMonthlyPayroll(ctx, "emp-1", 2025, 3)
			require.NoError(t, err)
			assert.Equal(t, c.wantAbsence, line.AbsenceHours)
			assert.True(t, line.DeductionAmount.Equal(decimal.NewFromInt(c.wantDeduction)),
				"deduction = %s, want %d", line.DeductionAmount, c.wantDeduction)
		})
	}
}

func TestComputeMonthlyPayroll_NetNeverNegative(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(
		&fakeAttendanceRepo{},
		&fakeEmployeeRepo{employees: []employee.Employee{testEmployee("emp-1", 50000)}},
	)

	line, err := svc.ComputeMonthlyPayroll(ctx, "emp-1", 2025, 3)
	require.NoError(t, err)
	// deduction 80000 > base 50000
	assert.True(t, line.NetSalary.IsZero(), "net = %s", line.NetSalary)
}

func TestComputeMonthlyPayroll_EmployeeNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{})

	_, err := svc.ComputeMonthlyPayroll(ctx, "ghost", 2025, 3)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestComputeMonthlyPayroll_IncompleteRecord(t *testing.T) {
	ctx := context.Background()
	incomplete := testEmployee("emp-1", 125000)
	incomplete.BaseSalary = nil
	svc := newTestService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{employees: []employee.Employee{incomplete}})

	_, err := svc.ComputeMonthlyPayroll(ctx, "emp-1", 2025, 3)
	assert.ErrorIs(t, err, payroll.ErrEmployeeRecordIncomplete)
}

func TestComputeMonthlyPayroll_InvalidPeriod(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{})

	for _, c := range []struct{ year, month int }{
		{1999, 1},
		{2101, 1},
		{2025, 0},
		{2025, 13},
	} {
		_, err := svc.ComputeMonthlyPayroll(ctx, "emp-1", c.year, c.month)
		assert.ErrorIs(t, err, payroll.ErrInvalidPeriod, "period %d-%d", c.year, c.month)
	}
}

func TestComputeMonthlyPayroll_IgnoresOpenDays(t *testing.T) {
	ctx := context.Background()

	day := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	in := day.Add(8 * time.Hour)
	open := attendance.Attendance{EmployeeID: "emp-1", Date: day, ClockIn: &in} // never clocked out

	records := append(workedDays("emp-1", 5, 8), open)
	svc := newTestService(
		&fakeAttendanceRepo{records: records},
		&fakeEmployeeRepo{employees: []employee.Employee{testEmployee("emp-1", 125000)}},
	)

	line, err := svc.ComputeMonthlyPayroll(ctx, "emp-1", 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 40.0, line.TotalHoursWorked)
}

func TestBuildMonthlyReport_SkipsMalformedEmployee(t *testing.T) {
	ctx := context.Background()

	malformed := employee.Employee{ID: "emp-bad", IsActive: true} // no name, role, salary
	employees := []employee.Employee{
		testEmployee("emp-1", 125000),
		malformed,
		testEmployee("emp-2", 90000),
		testEmployee("emp-3", 70000),
	}

	svc := newTestService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{employees: employees})

	lines, err := svc.BuildMonthlyReport(ctx, 2025, 3)
	require.NoError(t, err)
	require.Len(t, lines, 3, "malformed record must be skipped, not abort the batch")
	assert.Equal(t, "emp-1", lines[0].EmployeeID)
	assert.Equal(t, "emp-2", lines[1].EmployeeID)
	assert.Equal(t, "emp-3", lines[2].EmployeeID)
}

func TestBuildMonthlyReport_ContinuesPastStorageFailure(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(
		&fakeAttendanceRepo{failFor: map[string]bool{"emp-2": true}},
		&fakeEmployeeRepo{employees: []employee.Employee{
			testEmployee("emp-1", 125000),
			testEmployee("emp-2", 90000),
			testEmployee("emp-3", 70000),
		}},
	)

	lines, err := svc.BuildMonthlyReport(ctx, 2025, 3)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "emp-1", lines[0].EmployeeID)
	assert.Equal(t, "emp-3", lines[1].EmployeeID)
}

func TestBuildMonthlyReport_Idempotent(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(
		&fakeAttendanceRepo{records: workedDays("emp-1", 12, 8)},
		&fakeEmployeeRepo{employees: []employee.Employee{
			testEmployee("emp-1", 125000),
			testEmployee("emp-2", 90000),
		}},
	)

	first, err := svc.BuildMonthlyReport(ctx, 2025, 3)
	require.NoError(t, err)
	second, err := svc.BuildMonthlyReport(ctx, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildMonthlyReport_InvalidPeriod(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{})

	_, err := svc.BuildMonthlyReport(ctx, 2025, 13)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}
