package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) DashboardStats(ctx context.Context) (Stats, error) {
	var out struct {
		Stats Stats `json:"stats"`
	}
	err := c.Do(ctx, http.MethodGet, "/analytics/dashboard", nil, &out)
	return out.Stats, err
}

func (c *Client) GradeDistribution(ctx context.Context, courseID ID) (Stats, error) {
	var out Stats
	ep := withQuery("/analytics/grades/distribution", url.Values{"course_id": {string(courseID)}})
	err := c.Do(ctx, http.MethodGet, ep, nil, &out)
	return out, err
}

// AttendanceTrends covers the last days days; zero means the backend default of 30.
func (c *Client) AttendanceTrends(ctx context.Context, courseID ID, days int) (Stats, error) {
	if days <= 0 {
		days = 30
	}
	var out Stats
	ep := withQuery("/analytics/attendance/trends", url.Values{
		"days":      {strconv.Itoa(days)},
		"course_id": {string(courseID)},
	})
	err := c.Do(ctx, http.MethodGet, ep, nil, &out)
	return out, err
}

func (c *Client) ClassPerformance(ctx context.Context, courseID ID) (Stats, error) {
	var out struct {
		Performance Stats `json:"performance"`
	}
	err := c.Do(ctx, http.MethodGet, "/analytics/performance/class/"+seg(courseID), nil, &out)
	return out.Performance, err
}

// StudentPerformance reports on studentID, or the caller when empty.
func (c *Client) StudentPerformance(ctx context.Context, studentID ID) (Stats, error) {
	var out struct {
		Performance Stats `json:"performance"`
	}
	ep := withQuery("/analytics/performance/student", url.Values{"student_id": {string(studentID)}})
	err := c.Do(ctx, http.MethodGet, ep, nil, &out)
	return out.Performance, err
}

func (c *Client) InstitutionSummary(ctx context.Context) (Stats, error) {
	var out struct {
		Summary Stats `json:"summary"`
	}
	err := c.Do(ctx, http.MethodGet, "/analytics/summary", nil, &out)
	return out.Summary, err
}
