package attendance

import (
	"math"
	"time"

	"github.com/presensia/presensia-backend-go/internal/pkg/geo"
)

// Attendance is one employee's record for one work day.
// Date carries no time component; (EmployeeID, Date) is the natural key and
// the storage layer enforces its uniqueness.
type Attendance struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	ClockIn           *time.Time
	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOut          *time.Time
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	ExpectedEnd       *time.Time
	OvertimeStart     *time.Time
	OvertimeEnd       *time.Time
	OvertimeClosed    bool
	WorkHours         *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
}

// OvertimeSignal reports which transition ToggleOvertime performed.
type OvertimeSignal string

const (
	OvertimeStarted OvertimeSignal = "started"
	OvertimeEnded   OvertimeSignal = "ended"
)

func (a *Attendance) HasClockedIn() bool  { return a.ClockIn != nil }
func (a *Attendance) HasClockedOut() bool { return a.ClockOut != nil }

// RecordClockIn sets the clock-in timestamp and location exactly once.
func (a *Attendance) RecordClockIn(now time.Time, point geo.Coordinate) error {
	if a.ClockIn != nil {
		return ErrAlreadyClockedIn
	}
	a.ClockIn = &now
	a.ClockInLatitude = &point.Latitude
	a.ClockInLongitude = &point.Longitude
	return nil
}

// RecordClockOut closes the base cycle for the day. Clock-out is append-only:
// once set it is never cleared or overwritten. Returns the worked hours
// rounded to 2 decimal places.
func (a *Attendance) RecordClockOut(now time.Time, point *geo.Coordinate) (float64, error) {
	if a.ClockIn == nil {
		return 0, ErrNotClockedIn
	}
	if a.ClockOut != nil {
		return 0, ErrAlreadyClockedOut
	}
	a.ClockOut = &now
	if point != nil {
		a.ClockOutLatitude = &point.Latitude
		a.ClockOutLongitude = &point.Longitude
	}
	hours := RoundHours(now.Sub(*a.ClockIn).Hours())
	a.WorkHours = &hours
	return hours, nil
}

// ToggleOvertime alternates on each call: first call opens the overtime
// block, second call closes it for good, any further call is rejected.
func (a *Attendance) ToggleOvertime(now time.Time) (OvertimeSignal, error) {
	switch {
	case a.OvertimeStart == nil:
		a.OvertimeStart = &now
		return OvertimeStarted, nil
	case a.OvertimeEnd == nil:
		a.OvertimeEnd = &now
		a.OvertimeClosed = true
		return OvertimeEnded, nil
	default:
		return "", ErrOvertimeCompleted
	}
}

// RoundHours rounds to 2 decimal places, halves away from zero.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
