package api_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusintelli/internal/api"
)

func TestLoginEnvelope(t *testing.T) {
	b, c := setup(t)
	b.On(http.MethodPost, "/auth/login", http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    map[string]any{"id": "u1", "name": "F", "email": "f@x.io", "role": "faculty", "token": "jwt"},
	})

	u, err := c.Login(context.Background(), "f@x.io", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", u.Token)
	assert.Equal(t, "faculty", u.Role)

	call := b.CallsTo(http.MethodPost, "/auth/login")[0]
	assert.Equal(t, map[string]any{"email": "f@x.io", "password": "secret"}, call.Body)
}

func TestEventsQuery(t *testing.T) {
	b, c := setup(t)
	b.On(http.MethodGet, "/calendar/events", http.StatusOK, map[string]any{"events": []any{map[string]any{"id": 1, "title": "Founders Day"}}})

	past := true
	events, err := c.Events(context.Background(), api.EventQuery{IncludePast: &past, Type: "holiday"})
	require.NoError(t, err)
	require.Len(t, events, 1)

	q, err := url.ParseQuery(b.Calls()[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "true", q.Get("include_past"))
	assert.Equal(t, "holiday", q.Get("type"))
	assert.False(t, q.Has("start_date"))

	_, err = c.Events(context.Background(), api.EventQuery{})
	require.NoError(t, err)
	assert.Empty(t, b.Calls()[1].Query)
}

func TestTimetableDayFilter(t *testing.T) {
	b, c := setup(t)
	b.On(http.MethodGet, "/calendar/timetable", http.StatusOK, map[string]any{"timetable": []any{}})

	monday := 0
	_, err := c.Timetable(context.Background(), api.TimetableQuery{Day: &monday, Section: "A"})
	require.NoError(t, err)
	q, _ := url.ParseQuery(b.Calls()[0].Query)
	assert.Equal(t, "0", q.Get("day"))
	assert.Equal(t, "A", q.Get("section"))
}

func TestCRUDPaths(t *testing.T) {
	b, c := setup(t)
	ctx := context.Background()
	b.On(http.MethodPut, "/calendar/timetable/s1", http.StatusOK, map[string]any{"slot": map[string]any{"id": "s1", "room": "B2"}})
	b.On(http.MethodDelete, "/announcements/a 1", http.StatusOK, map[string]any{"message": "Deleted"})
	b.On(http.MethodPost, "/bookings/", http.StatusCreated, map[string]any{"booking": map[string]any{"id": 3, "status": "confirmed"}})

	slot, err := c.UpdateTimetableSlot(ctx, "s1", api.Payload{"room": "B2"})
	require.NoError(t, err)
	assert.Equal(t, "B2", slot.Room)

	require.NoError(t, c.DeleteAnnouncement(ctx, "a 1"))

	bk, err := c.CreateBooking(ctx, api.BookingRequest{RoomID: "r1", Date: "2026-05-01", StartTime: "10:00", EndTime: "11:00"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", bk.Status)
	assert.Equal(t, "r1", b.CallsTo(http.MethodPost, "/bookings/")[0].Body["room_id"])
}

func TestAttendance(t *testing.T) {
	b, c := setup(t)
	ctx := context.Background()
	b.On(http.MethodGet, "/attendance/summary", http.StatusOK, map[string]any{
		"summary": map[string]any{"c1": map[string]int{"present": 3, "total": 4}},
	})
	b.On(http.MethodPost, "/attendance/generate-qr", http.StatusCreated, map[string]any{
		"qr_code":            map[string]any{"code_data": "abc", "course_id": "c1", "lecture_id": "L1"},
		"qr_image":           "data:image/png;base64,xyz",
		"expires_in_seconds": 300,
	})

	sum, err := c.AttendanceSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, api.AttendanceStat{Present: 3, Total: 4}, sum["c1"])

	qr, err := c.GenerateQR(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 300, qr.ExpiresInSeconds)
	assert.Equal(t, "abc", qr.QRCode.CodeData)
	assert.Equal(t, "c1", b.CallsTo(http.MethodPost, "/attendance/generate-qr")[0].Body["course_id"])

	_, _ = c.AttendanceRecords(ctx, "")
	_, _ = c.AttendanceRecords(ctx, "c1")
	recs := b.CallsTo(http.MethodGet, "/attendance/")
	require.Len(t, recs, 2)
	assert.Empty(t, recs[0].Query)
	assert.Equal(t, "course_id=c1", recs[1].Query)
}

func TestAdminUsersDefaults(t *testing.T) {
	b, c := setup(t)
	b.On(http.MethodGet, "/admin/users", http.StatusOK, map[string]any{"users": []any{}, "total": 0, "page": 1, "per_page": 20})

	page, err := c.AdminUsers(context.Background(), api.UserQuery{Search: "ada lovelace"})
	require.NoError(t, err)
	assert.Equal(t, 20, page.PerPage)

	q, _ := url.ParseQuery(b.Calls()[0].Query)
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "20", q.Get("per_page"))
	assert.Equal(t, "ada lovelace", q.Get("search"))
	assert.False(t, q.Has("role"))
}

func TestUploadMultipart(t *testing.T) {
	b, c := setup(t)
	b.On(http.MethodPost, "/materials/", http.StatusCreated, map[string]any{"material": map[string]any{"id": 5, "title": "Notes"}})

	m, err := c.WithTokens(api.StaticToken("tok")).UploadMaterial(context.Background(), api.Upload{
		Filename: "notes.pdf",
		Content:  strings.NewReader("%PDF-1.4"),
		Fields:   map[string]string{"course_id": "c1", "title": "Notes"},
	})
	require.NoError(t, err)
	assert.Equal(t, api.ID("5"), m.ID)

	call := b.Calls()[0]
	assert.Equal(t, "Bearer tok", call.Header.Get("Authorization"))
	assert.True(t, strings.HasPrefix(call.Header.Get("Content-Type"), "multipart/form-data; boundary="))
	assert.Contains(t, string(call.Raw), `filename="notes.pdf"`)
	assert.Contains(t, string(call.Raw), "%PDF-1.4")
}

func TestUploadFallbackMessages(t *testing.T) {
	b, c := setup(t)
	b.On(http.MethodPost, "/materials/", http.StatusBadRequest, map[string]any{})
	b.On(http.MethodPost, "/assignments/a1/submit", http.StatusBadRequest, map[string]any{})

	_, err := c.UploadMaterial(context.Background(), api.Upload{})
	assert.EqualError(t, err, "Upload failed")
	_, err = c.SubmitAssignment(context.Background(), "a1", api.Upload{Filename: "x.txt", Content: strings.NewReader("x")})
	assert.EqualError(t, err, "Submission failed")
}

func TestDownloadURLs(t *testing.T) {
	c := api.New("http://backend:5000/api/", api.WithPublicURL("https://campus.example/api"))
	ctx := context.Background()

	assert.Equal(t, "https://campus.example/api/materials/m1/download", c.MaterialDownloadURL(ctx, "m1"))

	authed := c.WithTokens(api.StaticToken("a b"))
	assert.Equal(t, "https://campus.example/api/materials/m1/download?token=a+b", authed.MaterialDownloadURL(ctx, "m1"))
	assert.Equal(t, "https://campus.example/api/assignments/submissions/s9/download?token=a+b", authed.SubmissionDownloadURL(ctx, "s9"))

	plain := api.New("http://backend:5000/api")
	assert.Equal(t, "http://backend:5000/api/materials/1/download", plain.MaterialDownloadURL(ctx, "1"))
}
