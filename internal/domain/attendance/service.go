package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn processes employee check-in with geofence validation
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut processes employee check-out after the daily cutoff
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (ClockOutResponse, error)

	// ToggleOvertime starts the overtime block on the first call of the day
	// and ends it on the second
	ToggleOvertime(ctx context.Context, employeeID string) (OvertimeToggleResponse, error)

	// GetMyAttendance retrieves attendance records for the authenticated employee
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]AttendanceResponse, error)
}
