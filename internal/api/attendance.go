package api

import (
	"context"
	"net/http"
	"net/url"
)

// GenerateQR asks the backend for a fresh attendance code for a course.
func (c *Client) GenerateQR(ctx context.Context, courseID ID) (GeneratedQR, error) {
	var out GeneratedQR
	err := c.Do(ctx, http.MethodPost, "/attendance/generate-qr", map[string]ID{"course_id": courseID}, &out)
	return out, err
}

// MarkAttendance records the caller as present using scanned QR data.
func (c *Client) MarkAttendance(ctx context.Context, qrData string) (MarkResult, error) {
	var out MarkResult
	err := c.Do(ctx, http.MethodPost, "/attendance/mark", map[string]string{"qr_data": qrData}, &out)
	return out, err
}

// AttendanceRecords lists records, optionally for one course.
func (c *Client) AttendanceRecords(ctx context.Context, courseID ID) ([]AttendanceRecord, error) {
	var out struct {
		Attendance []AttendanceRecord `json:"attendance"`
	}
	ep := withQuery("/attendance/", url.Values{"course_id": {string(courseID)}})
	err := c.Do(ctx, http.MethodGet, ep, nil, &out)
	return out.Attendance, err
}

func (c *Client) AttendanceSummary(ctx context.Context) (AttendanceSummary, error) {
	var out struct {
		Summary AttendanceSummary `json:"summary"`
	}
	err := c.Do(ctx, http.MethodGet, "/attendance/summary", nil, &out)
	return out.Summary, err
}
