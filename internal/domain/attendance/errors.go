package attendance

import (
	"errors"
	"fmt"
	"time"
)

// Attendance domain errors
var (
	// Clock-in / clock-out state conflicts
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrNotClockedIn      = errors.New("you have not clocked in today")
	ErrAlreadyClockedOut = errors.New("you have already clocked out")

	// Overtime state conflicts
	ErrNoAttendanceToday = errors.New("no attendance record for today")
	ErrOvertimeCompleted = errors.New("overtime has already been completed for today")

	// ErrConcurrentUpdate is returned when the stored row shows that a
	// simultaneous request won the write race for the same work day.
	ErrConcurrentUpdate = errors.New("attendance was changed by another request")
)

// OutOfRangeError rejects a clock-in outside the site geofence. It carries
// the measured distance and the allowed radius so the UI can explain the
// rejection.
type OutOfRangeError struct {
	DistanceMeters float64
	RadiusMeters   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("you are outside the allowed radius: %.0fm away, %.0fm allowed",
		e.DistanceMeters, e.RadiusMeters)
}

// TooEarlyError rejects a clock-out before the daily cutoff, regardless of
// how long the employee has worked.
type TooEarlyError struct {
	Now    time.Time
	Cutoff time.Time
}

func (e *TooEarlyError) Error() string {
	return fmt.Sprintf("clock-out is not allowed before %s (it is now %s)",
		e.Cutoff.Format("15:04"), e.Now.Format("15:04"))
}
