package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/presensia/presensia-backend-go/internal/domain/attendance"
	"github.com/presensia/presensia-backend-go/internal/pkg/geo"
	"github.com/presensia/presensia-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	site       geo.Site
	cutoffHour int // earliest clock-out, local wall-clock hour
	loc        *time.Location
	now        func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	site geo.Site,
	cutoffHour int,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		site:                 site,
		cutoffHour:           cutoffHour,
		loc:                  loc,
		now:                  time.Now,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// workDay truncates a local timestamp to its calendar date.
// PENTING: Date adalah representasi "Hari Kerja", bukan timestamp.
func (a *AttendanceServiceImpl) workDay(nowLocal time.Time) time.Time {
	return time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, a.loc)
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowUTC := a.now().UTC()
	nowLocal := nowUTC.In(a.loc)
	day := a.workDay(nowLocal)

	point := geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}

	// Hitung jarak user ke kantor (dalam Meter)
	distanceMeters := geo.DistanceMeters(point, a.site.Center)
	if !a.site.WithinRadius(distanceMeters) {
		return attendance.AttendanceResponse{}, &attendance.OutOfRangeError{
			DistanceMeters: distanceMeters,
			RadiusMeters:   a.site.RadiusMeters,
		}
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil && existing.HasClockedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}

	att := existing
	if att == nil {
		// Clock-in is the only place an attendance record is created.
		att = &attendance.Attendance{
			ID:         uuid.Must(uuid.NewV7()).String(),
			EmployeeID: employeeID,
			Date:       day,
		}
	}

	if att.ExpectedEnd == nil {
		expectedEnd := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(),
			a.cutoffHour, 0, 0, 0, a.loc).UTC()
		att.ExpectedEnd = &expectedEnd
	}

	if err := att.RecordClockIn(nowUTC, point); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	saved, err := a.AttendanceRepository.Upsert(ctx, *att)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to save attendance record: %w", err)
	}
	// The store collapses concurrent creations for one (employee, day) into
	// a single row. Getting back someone else's row means a simultaneous
	// clock-in won the race.
	if saved.ID != att.ID {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}

	return mapAttendanceToResponse(saved), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string, req attendance.ClockOutRequest) (attendance.ClockOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockOutResponse{}, err
	}

	nowUTC := a.now().UTC()
	nowLocal := nowUTC.In(a.loc)
	day := a.workDay(nowLocal)

	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.ClockOutResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att == nil || !att.HasClockedIn() {
		return attendance.ClockOutResponse{}, attendance.ErrNotClockedIn
	}
	if att.HasClockedOut() {
		return attendance.ClockOutResponse{}, attendance.ErrAlreadyClockedOut
	}

	// Clock-out opens at the cutoff hour regardless of hours worked.
	cutoff := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(),
		a.cutoffHour, 0, 0, 0, a.loc)
	if nowLocal.Before(cutoff) {
		return attendance.ClockOutResponse{}, &attendance.TooEarlyError{Now: nowLocal, Cutoff: cutoff}
	}

	var point *geo.Coordinate
	if req.Latitude != nil && req.Longitude != nil {
		point = &geo.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	hours, err := att.RecordClockOut(nowUTC, point)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	saved, err := a.AttendanceRepository.Upsert(ctx, *att)
	if err != nil {
		return attendance.ClockOutResponse{}, fmt.Errorf("failed to save attendance record: %w", err)
	}
	// Clock-out is append-only in the store; a saved timestamp other than
	// ours means a simultaneous clock-out got there first.
	if saved.ClockOut == nil || !saved.ClockOut.Equal(*att.ClockOut) {
		return attendance.ClockOutResponse{}, attendance.ErrAlreadyClockedOut
	}

	return attendance.ClockOutResponse{
		Attendance:  mapAttendanceToResponse(saved),
		HoursWorked: hours,
	}, nil
}

// ToggleOvertime implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ToggleOvertime(ctx context.Context, employeeID string) (attendance.OvertimeToggleResponse, error) {
	nowUTC := a.now().UTC()
	day := a.workDay(nowUTC.In(a.loc))

	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.OvertimeToggleResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att == nil {
		return attendance.OvertimeToggleResponse{}, attendance.ErrNoAttendanceToday
	}

	signal, err := att.ToggleOvertime(nowUTC)
	if err != nil {
		return attendance.OvertimeToggleResponse{}, err
	}

	saved, err := a.AttendanceRepository.Upsert(ctx, *att)
	if err != nil {
		return attendance.OvertimeToggleResponse{}, fmt.Errorf("failed to save attendance record: %w", err)
	}
	if !overtimeWriteApplied(signal, att, &saved) {
		return attendance.OvertimeToggleResponse{}, attendance.ErrConcurrentUpdate
	}

	return attendance.OvertimeToggleResponse{
		Signal:     signal,
		Attendance: mapAttendanceToResponse(saved),
	}, nil
}

// overtimeWriteApplied reports whether the overtime timestamp this toggle
// wrote survived the upsert. Overtime fields are append-only in the store,
// so a differing saved value means a simultaneous toggle won the race.
func overtimeWriteApplied(signal attendance.OvertimeSignal, submitted, saved *attendance.Attendance) bool {
	switch signal {
	case attendance.OvertimeStarted:
		return saved.OvertimeStart != nil && saved.OvertimeStart.Equal(*submitted.OvertimeStart)
	default:
		return saved.OvertimeEnd != nil && saved.OvertimeEnd.Equal(*submitted.OvertimeEnd)
	}
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	nowLocal := a.now().UTC().In(a.loc)

	// Default window is the current calendar month.
	start := time.Date(nowLocal.Year(), nowLocal.Month(), 1, 0, 0, 0, 0, a.loc)
	end := start.AddDate(0, 1, 0)

	if filter.StartDate != "" {
		d, _ := validator.IsValidDate(filter.StartDate)
		start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, a.loc)
	}
	if filter.EndDate != "" {
		d, _ := validator.IsValidDate(filter.EndDate)
		end = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, a.loc).AddDate(0, 0, 1)
	}

	attendances, err := a.AttendanceRepository.ListByEmployeeAndDateRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	return responses, nil
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		EmployeeName:      att.EmployeeName,
		Date:              att.Date.Format("2006-01-02"),
		ClockInTime:       timePtrToString(att.ClockIn),
		ClockOutTime:      timePtrToString(att.ClockOut),
		ClockInLatitude:   att.ClockInLatitude,
		ClockInLongitude:  att.ClockInLongitude,
		ClockOutLatitude:  att.ClockOutLatitude,
		ClockOutLongitude: att.ClockOutLongitude,
		ExpectedEnd:       timePtrToString(att.ExpectedEnd),
		OvertimeStart:     timePtrToString(att.OvertimeStart),
		OvertimeEnd:       timePtrToString(att.OvertimeEnd),
		OvertimeClosed:    att.OvertimeClosed,
		WorkHours:         att.WorkHours,
	}
}
