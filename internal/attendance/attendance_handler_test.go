package attendance_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrms/internal/attendance"
	attendanceerrors "hrms/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	checkInResp  attendance.AttendanceResponse
	checkInErr   error
	checkOutResp attendance.AttendanceResponse
	checkOutErr  error
	markResp     attendance.AttendanceResponse
	markErr      error
	markReq      attendance.MarkStatusRequest
}

func (f *fakeService) CheckIn(ctx context.Context, userID, sourceIP string) (attendance.AttendanceResponse, error) {
	return f.checkInResp, f.checkInErr
}

func (f *fakeService) CheckOut(ctx context.Context, userID, sourceIP string) (attendance.AttendanceResponse, error) {
	return f.checkOutResp, f.checkOutErr
}

func (f *fakeService) MarkStatus(ctx context.Context, actorID, actorRole string, req attendance.MarkStatusRequest) (attendance.AttendanceResponse, error) {
	f.markReq = req
	return f.markResp, f.markErr
}

func (f *fakeService) Sweep(ctx context.Context, now time.Time) (attendance.SweepResult, error) {
	return attendance.SweepResult{}, nil
}

func (f *fakeService) GetMonth(ctx context.Context, userID string, month, year int) ([]attendance.AttendanceResponse, error) {
	return nil, nil
}

func (f *fakeService) GetByDate(ctx context.Context, date string) (attendance.DayAttendanceResponse, error) {
	return attendance.DayAttendanceResponse{Date: date}, nil
}

func performRequest(h gin.HandlerFunc, method, path string, body []byte) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", "7b7f4f0e-5f0a-4a8e-9a43-0a4f8f2b9f10")
	c.Set("role", "MANAGER")
	h(c)
	return w
}

func TestHandler_CheckIn_Success(t *testing.T) {
	svc := &fakeService{
		checkInResp: attendance.AttendanceResponse{Status: attendance.StatusPresent},
	}
	h := attendance.NewHandler(svc)

	w := performRequest(h.CheckIn, http.MethodPost, "/api/v1/attendance/check-in", nil)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
}

func TestHandler_CheckIn_Duplicate(t *testing.T) {
	svc := &fakeService{checkInErr: attendanceerrors.ErrAlreadyCheckedIn}
	h := attendance.NewHandler(svc)

	w := performRequest(h.CheckIn, http.MethodPost, "/api/v1/attendance/check-in", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestHandler_CheckOut_NoCheckIn(t *testing.T) {
	svc := &fakeService{checkOutErr: attendanceerrors.ErrNoCheckInFound}
	h := attendance.NewHandler(svc)

	w := performRequest(h.CheckOut, http.MethodPost, "/api/v1/attendance/check-out", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_MarkStatus_BindsRequest(t *testing.T) {
	svc := &fakeService{
		markResp: attendance.AttendanceResponse{Status: attendance.StatusHalfDay},
	}
	h := attendance.NewHandler(svc)

	payload, _ := json.Marshal(attendance.MarkStatusRequest{
		UserID: "7b7f4f0e-5f0a-4a8e-9a43-0a4f8f2b9f10",
		Status: attendance.StatusHalfDay,
	})
	w := performRequest(h.MarkStatus, http.MethodPost, "/api/v1/attendance/mark-status", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, attendance.StatusHalfDay, svc.markReq.Status)
}

func TestHandler_MarkStatus_RejectsUnknownStatus(t *testing.T) {
	svc := &fakeService{}
	h := attendance.NewHandler(svc)

	payload := []byte(`{"user_id":"7b7f4f0e-5f0a-4a8e-9a43-0a4f8f2b9f10","status":"ON_LEAVE"}`)
	w := performRequest(h.MarkStatus, http.MethodPost, "/api/v1/attendance/mark-status", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
