package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/presensia-backend-go/internal/domain/attendance"
	"github.com/presensia/presensia-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

// stubAttendanceService returns canned results so handler tests exercise
// decoding, claims extraction and the error mapper without real storage.
type stubAttendanceService struct {
	resp          attendance.AttendanceResponse
	err           error
	gotEmployeeID string
}

func (s *stubAttendanceService) ClockIn(_ context.Context, employeeID string, _ attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	s.gotEmployeeID = employeeID
	return s.resp, s.err
}

func (s *stubAttendanceService) ClockOut(_ context.Context, employeeID string, _ attendance.ClockOutRequest) (attendance.ClockOutResponse, error) {
	s.gotEmployeeID = employeeID
	return attendance.ClockOutResponse{Attendance: s.resp}, s.err
}

func (s *stubAttendanceService) ToggleOvertime(_ context.Context, employeeID string) (attendance.OvertimeToggleResponse, error) {
	s.gotEmployeeID = employeeID
	return attendance.OvertimeToggleResponse{Signal: attendance.OvertimeStarted, Attendance: s.resp}, s.err
}

func (s *stubAttendanceService) GetMyAttendance(_ context.Context, employeeID string, _ attendance.MyAttendanceFilter) ([]attendance.AttendanceResponse, error) {
	s.gotEmployeeID = employeeID
	if s.err != nil {
		return nil, s.err
	}
	return []attendance.AttendanceResponse{s.resp}, nil
}

// authedRequest builds a request carrying verified claims, the way the
// Verifier middleware hands them to the handlers.
func authedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	ja := jwtauth.New("HS256", []byte(handlerTestSecret), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"employee_id": "emp-1",
		"type":        "access",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

// ===== HANDLER TESTS =====

func TestAttendanceHandler_ClockIn_Success(t *testing.T) {
	stub := &stubAttendanceService{
		resp: attendance.AttendanceResponse{ID: "att-1", EmployeeID: "emp-1", Date: "2025-03-10"},
	}
	handler := NewAttendanceHandler(stub)

	body, _ := json.Marshal(attendance.ClockInRequest{Latitude: -6.2088, Longitude: 106.8456})
	req := authedRequest(t, http.MethodPost, "/api/v1/attendances/clock-in", body)
	w := httptest.NewRecorder()

	handler.ClockIn(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp["success"].(bool))
	assert.Equal(t, "Clock in successful", resp["message"])
	assert.Equal(t, "emp-1", stub.gotEmployeeID, "employee must come from the token claims")

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "att-1", data["id"])
}

func TestAttendanceHandler_ClockIn_MissingClaims(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{})

	body, _ := json.Marshal(attendance.ClockInRequest{Latitude: -6.2088, Longitude: 106.8456})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendances/clock-in", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.ClockIn(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp["success"].(bool))
}

func TestAttendanceHandler_ClockIn_InvalidJSON(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{})

	req := authedRequest(t, http.MethodPost, "/api/v1/attendances/clock-in", []byte("invalid json"))
	w := httptest.NewRecorder()

	handler.ClockIn(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandler_ClockIn_Conflict(t *testing.T) {
	stub := &stubAttendanceService{err: attendance.ErrAlreadyClockedIn}
	handler := NewAttendanceHandler(stub)

	body, _ := json.Marshal(attendance.ClockInRequest{Latitude: -6.2088, Longitude: 106.8456})
	req := authedRequest(t, http.MethodPost, "/api/v1/attendances/clock-in", body)
	w := httptest.NewRecorder()

	handler.ClockIn(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp["success"].(bool))
	errBody := resp["error"].(map[string]interface{})
	assert.Equal(t, "CONFLICT", errBody["code"])
}

func TestAttendanceHandler_ClockIn_OutOfRange(t *testing.T) {
	stub := &stubAttendanceService{
		err: &attendance.OutOfRangeError{DistanceMeters: 250, RadiusMeters: 100},
	}
	handler := NewAttendanceHandler(stub)

	body, _ := json.Marshal(attendance.ClockInRequest{Latitude: -6.1, Longitude: 106.8})
	req := authedRequest(t, http.MethodPost, "/api/v1/attendances/clock-in", body)
	w := httptest.NewRecorder()

	handler.ClockIn(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	errBody := resp["error"].(map[string]interface{})
	details := errBody["details"].(map[string]interface{})
	assert.Equal(t, "250", details["distance_meters"])
	assert.Equal(t, "100", details["radius_meters"])
}

func TestAttendanceHandler_ClockIn_ValidationError(t *testing.T) {
	stub := &stubAttendanceService{
		err: validator.ValidationErrors{
			{Field: "latitude", Message: "latitude must be between -90 and 90"},
		},
	}
	handler := NewAttendanceHandler(stub)

	body, _ := json.Marshal(attendance.ClockInRequest{Latitude: 91, Longitude: 0})
	req := authedRequest(t, http.MethodPost, "/api/v1/attendances/clock-in", body)
	w := httptest.NewRecorder()

	handler.ClockIn(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeEnvelope(t, w)
	errBody := resp["error"].(map[string]interface{})
	details := errBody["details"].(map[string]interface{})
	assert.Contains(t, details, "latitude")
}

func TestAttendanceHandler_ClockOut_TooEarly(t *testing.T) {
	cutoff := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	stub := &stubAttendanceService{
		err: &attendance.TooEarlyError{Now: cutoff.Add(-30 * time.Minute), Cutoff: cutoff},
	}
	handler := NewAttendanceHandler(stub)

	// Empty body: clock-out without a location is allowed.
	req := authedRequest(t, http.MethodPost, "/api/v1/attendances/clock-out", nil)
	w := httptest.NewRecorder()

	handler.ClockOut(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	errBody := resp["error"].(map[string]interface{})
	details := errBody["details"].(map[string]interface{})
	assert.Equal(t, "18:00", details["cutoff"])
	assert.Equal(t, "17:30", details["now"])
}

func TestAttendanceHandler_ToggleOvertime_Success(t *testing.T) {
	stub := &stubAttendanceService{
		resp: attendance.AttendanceResponse{ID: "att-1", EmployeeID: "emp-1"},
	}
	handler := NewAttendanceHandler(stub)

	req := authedRequest(t, http.MethodPost, "/api/v1/attendances/overtime/toggle", nil)
	w := httptest.NewRecorder()

	handler.ToggleOvertime(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp["success"].(bool))
	assert.Equal(t, "Overtime started", resp["message"])
}
