package api

import (
	"context"
	"net/http"
)

func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	var out struct {
		Courses []Course `json:"courses"`
	}
	err := c.Do(ctx, http.MethodGet, "/courses/", nil, &out)
	return out.Courses, err
}

func (c *Client) Course(ctx context.Context, id ID) (Course, error) {
	var out struct {
		Course Course `json:"course"`
	}
	err := c.Do(ctx, http.MethodGet, "/courses/"+seg(id), nil, &out)
	return out.Course, err
}

func (c *Client) CreateCourse(ctx context.Context, p Payload) (Course, error) {
	var out struct {
		Course Course `json:"course"`
	}
	err := c.Do(ctx, http.MethodPost, "/courses/", p, &out)
	return out.Course, err
}

// CourseTimetable returns the caller's per-course weekly sessions.
func (c *Client) CourseTimetable(ctx context.Context) ([]CourseSession, error) {
	var out struct {
		Timetable []CourseSession `json:"timetable"`
	}
	err := c.Do(ctx, http.MethodGet, "/courses/timetable", nil, &out)
	return out.Timetable, err
}
