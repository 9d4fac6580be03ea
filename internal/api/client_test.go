package api_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusintelli/internal/api"
	"campusintelli/internal/api/apitest"
)

func setup(t *testing.T, opts ...api.Option) (*apitest.Backend, *api.Client) {
	t.Helper()
	b := apitest.New(t)
	return b, b.Client(opts...)
}

func TestDoHeaders(t *testing.T) {
	b, c := setup(t)
	b.On(http.MethodGet, "/auth/me", http.StatusOK, map[string]any{"user": map[string]any{"id": 7, "name": "Ada"}})

	u, err := c.WithTokens(api.StaticToken("tok-1")).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, api.ID("7"), u.ID)
	assert.Equal(t, "Ada", u.Name)

	calls := b.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer tok-1", calls[0].Header.Get("Authorization"))
	assert.Equal(t, "application/json", calls[0].Header.Get("Content-Type"))
	assert.NotEmpty(t, calls[0].Header.Get("X-Request-ID"))
}

func TestDoWithoutToken(t *testing.T) {
	b, c := setup(t)
	b.On(http.MethodGet, "/courses/", http.StatusOK, map[string]any{"courses": []any{}})

	_, err := c.WithTokens(api.StaticToken("")).Courses(context.Background())
	require.NoError(t, err)
	_, err = c.Courses(context.Background())
	require.NoError(t, err)

	for _, call := range b.Calls() {
		assert.Empty(t, call.Header.Get("Authorization"))
	}
}

func TestDoCustomHeader(t *testing.T) {
	b, c := setup(t)
	b.On(http.MethodGet, "/ping", http.StatusOK, map[string]any{})

	err := c.Do(context.Background(), http.MethodGet, "/ping", nil, nil,
		api.WithHeader("X-Request-ID", "fixed"), api.WithHeader("X-Extra", "1"))
	require.NoError(t, err)
	call := b.Calls()[0]
	assert.Equal(t, "fixed", call.Header.Get("X-Request-ID"))
	assert.Equal(t, "1", call.Header.Get("X-Extra"))
}

func TestRequestErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       any
		wantStatus int
		wantMsg    string
	}{
		{name: "server message", status: 401, body: map[string]string{"error": "Invalid credentials"}, wantStatus: 401, wantMsg: "Invalid credentials"},
		{name: "no error field", status: 500, body: map[string]string{"detail": "boom"}, wantStatus: 500, wantMsg: api.DefaultErrorMessage},
		{name: "non json body", status: 502, body: "<html>bad gateway</html>", wantStatus: 502, wantMsg: "Request failed"},
		{name: "empty error", status: 400, body: map[string]string{"error": ""}, wantStatus: 400, wantMsg: "Request failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, c := setup(t)
			b.On(http.MethodPost, "/auth/login", tt.status, tt.body)

			_, err := c.Login(context.Background(), "a@b.c", "pw")
			var reqErr *api.RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.wantStatus, reqErr.Status)
			assert.Equal(t, tt.wantMsg, reqErr.Error())
		})
	}
}

func TestTransportErrorPropagates(t *testing.T) {
	b, c := setup(t)
	b.Close()

	_, err := c.Courses(context.Background())
	require.Error(t, err)
	var reqErr *api.RequestError
	assert.False(t, errors.As(err, &reqErr))
}

func TestMalformedSuccessBody(t *testing.T) {
	b, c := setup(t)
	b.On(http.MethodGet, "/courses/", http.StatusOK, "{not json")

	_, err := c.Courses(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestEmptySuccessBody(t *testing.T) {
	b, c := setup(t)
	b.On(http.MethodDelete, "/bookings/9", http.StatusOK, "")

	require.NoError(t, c.CancelBooking(context.Background(), "9"))
}

func TestIDDecoding(t *testing.T) {
	b, c := setup(t)
	b.On(http.MethodGet, "/calendar/timetable", http.StatusOK, `{"timetable":[
		{"id": 12, "course_id": "c-1", "day_of_week": 0, "start_time": "09:00", "end_time": "10:30"},
		{"id": "uuid-2", "course_id": null, "day_of_week": 2, "start_time": "09:00", "end_time": "10:30"}
	]}`)

	slots, err := c.Timetable(context.Background(), api.TimetableQuery{})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, api.ID("12"), slots[0].ID)
	assert.Equal(t, api.ID("c-1"), slots[0].CourseID)
	assert.Equal(t, api.ID("uuid-2"), slots[1].ID)
	assert.Equal(t, api.ID(""), slots[1].CourseID)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	b, c := setup(t, api.WithMetrics(api.NewMetrics(reg)))
	b.On(http.MethodGet, "/courses/", http.StatusOK, map[string]any{"courses": []any{}})

	_, _ = c.Courses(context.Background())
	_, _ = c.Assignments(context.Background())

	mfs, err := reg.Gather()
	require.NoError(t, err)
	got := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "campusintelli_api_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var key []string
			for _, l := range m.GetLabel() {
				key = append(key, l.GetName()+"="+l.GetValue())
			}
			got[strings.Join(key, ",")] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{
		"code=200,method=GET,resource=courses":     1,
		"code=404,method=GET,resource=assignments": 1,
	}, got)
}

type countingTransport struct {
	calls int
}

func (t *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.calls++
	return http.DefaultTransport.RoundTrip(r)
}

func TestTimeoutKeepsTransport(t *testing.T) {
	rt := &countingTransport{}
	injected := &http.Client{Transport: rt}
	b, c := setup(t, api.WithHTTPClient(injected), api.WithTimeout(5*time.Second))
	b.On(http.MethodGet, "/auth/me", http.StatusOK, map[string]any{"user": map[string]any{"id": 1}})

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rt.calls)
	assert.Equal(t, 5*time.Second, c.HTTP.Timeout)
	assert.Zero(t, injected.Timeout)
}
