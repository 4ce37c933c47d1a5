package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/presensia-backend-go/internal/domain/attendance"
	"github.com/presensia/presensia-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, date,
	clock_in, clock_in_latitude, clock_in_longitude,
	clock_out, clock_out_latitude, clock_out_longitude,
	expected_end, overtime_start, overtime_end, overtime_closed,
	work_hours, created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date,
		&att.ClockIn, &att.ClockInLatitude, &att.ClockInLongitude,
		&att.ClockOut, &att.ClockOutLatitude, &att.ClockOutLongitude,
		&att.ExpectedEnd, &att.OvertimeStart, &att.OvertimeEnd, &att.OvertimeClosed,
		&att.WorkHours, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// ListByEmployeeAndDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndDateRange(ctx context.Context, employeeID string, start, endExclusive time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, endExclusive)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date range: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		attendances = append(attendances, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}

	return attendances, nil
}

// Upsert implements attendance.AttendanceRepository. The unique index on
// (employee_id, date) makes concurrent first clock-ins for the same key
// collapse into one row; the loser of the race gets the winner's row back
// and the service layer rejects it by comparing against its own write.
func (a *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, date,
			clock_in, clock_in_latitude, clock_in_longitude,
			clock_out, clock_out_latitude, clock_out_longitude,
			expected_end, overtime_start, overtime_end, overtime_closed,
			work_hours
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			clock_out           = COALESCE(attendances.clock_out, EXCLUDED.clock_out),
			clock_out_latitude  = COALESCE(attendances.clock_out_latitude, EXCLUDED.clock_out_latitude),
			clock_out_longitude = COALESCE(attendances.clock_out_longitude, EXCLUDED.clock_out_longitude),
			expected_end        = COALESCE(attendances.expected_end, EXCLUDED.expected_end),
			overtime_start      = COALESCE(attendances.overtime_start, EXCLUDED.overtime_start),
			overtime_end        = COALESCE(attendances.overtime_end, EXCLUDED.overtime_end),
			overtime_closed     = attendances.overtime_closed OR EXCLUDED.overtime_closed,
			work_hours          = COALESCE(attendances.work_hours, EXCLUDED.work_hours),
			updated_at          = NOW()
		RETURNING ` + attendanceColumns + `
	`

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		att.ID,
		att.EmployeeID,
		att.Date,
		att.ClockIn,
		att.ClockInLatitude,
		att.ClockInLongitude,
		att.ClockOut,
		att.ClockOutLatitude,
		att.ClockOutLongitude,
		att.ExpectedEnd,
		att.OvertimeStart,
		att.OvertimeEnd,
		att.OvertimeClosed,
		att.WorkHours,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return saved, nil
}
