package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/presensia/presensia-backend-go/internal/domain/attendance"
	"github.com/presensia/presensia-backend-go/internal/domain/employee"
	"github.com/presensia/presensia-backend-go/internal/domain/payroll"
	"github.com/presensia/presensia-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Policy errors carry diagnostic context for the UI
	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		BadRequest(w, outOfRange.Error(), map[string]string{
			"distance_meters": fmt.Sprintf("%.0f", outOfRange.DistanceMeters),
			"radius_meters":   fmt.Sprintf("%.0f", outOfRange.RadiusMeters),
		})
		return
	}

	var tooEarly *attendance.TooEarlyError
	if errors.As(err, &tooEarly) {
		BadRequest(w, tooEarly.Error(), map[string]string{
			"cutoff": tooEarly.Cutoff.Format("15:04"),
			"now":    tooEarly.Now.Format("15:04"),
		})
		return
	}

	switch {
	// Attendance state conflicts
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "You have already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "You have not clocked in today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "You have already clocked out")
	case errors.Is(err, attendance.ErrNoAttendanceToday):
		Conflict(w, "No attendance record for today")
	case errors.Is(err, attendance.ErrOvertimeCompleted):
		Conflict(w, "Overtime has already been completed for today")
	case errors.Is(err, attendance.ErrConcurrentUpdate):
		Conflict(w, "Attendance was changed by another request, please retry")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Payroll period must be a month in years 2000-2100", nil)
	case errors.Is(err, payroll.ErrEmployeeRecordIncomplete):
		ValidationError(w, map[string]string{
			"employee": "employee record is missing name, position or base salary",
		})

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
