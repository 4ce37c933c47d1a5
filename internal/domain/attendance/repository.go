package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the storage port for attendance records. The
// engine depends on storage only through this contract; the PostgreSQL
// adapter must serialize writes per (employee_id, date) key so that two
// simultaneous clock-ins cannot both create a record.
type AttendanceRepository interface {
	// GetByEmployeeAndDate retrieves the record for one employee on one
	// calendar date, or nil when none exists yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// ListByEmployeeAndDateRange retrieves records with date in
	// [start, endExclusive), ordered by date.
	ListByEmployeeAndDateRange(ctx context.Context, employeeID string, start, endExclusive time.Time) ([]Attendance, error)

	// Upsert creates or updates the record keyed by (employee_id, date).
	Upsert(ctx context.Context, att Attendance) (Attendance, error)
}
