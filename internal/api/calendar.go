package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// EventQuery filters the event listing. IncludePast is sent only when set.
type EventQuery struct {
	Type        string
	StartDate   string
	EndDate     string
	IncludePast *bool
}

func (c *Client) Events(ctx context.Context, q EventQuery) ([]Event, error) {
	v := url.Values{
		"type":       {q.Type},
		"start_date": {q.StartDate},
		"end_date":   {q.EndDate},
	}
	if q.IncludePast != nil {
		v.Set("include_past", strconv.FormatBool(*q.IncludePast))
	}
	var out struct {
		Events []Event `json:"events"`
	}
	err := c.Do(ctx, http.MethodGet, withQuery("/calendar/events", v), nil, &out)
	return out.Events, err
}

func (c *Client) Event(ctx context.Context, id ID) (Event, error) {
	var out struct {
		Event Event `json:"event"`
	}
	err := c.Do(ctx, http.MethodGet, "/calendar/events/"+seg(id), nil, &out)
	return out.Event, err
}

func (c *Client) CreateEvent(ctx context.Context, p Payload) (Event, error) {
	var out struct {
		Event Event `json:"event"`
	}
	err := c.Do(ctx, http.MethodPost, "/calendar/events", p, &out)
	return out.Event, err
}

func (c *Client) UpdateEvent(ctx context.Context, id ID, p Payload) (Event, error) {
	var out struct {
		Event Event `json:"event"`
	}
	err := c.Do(ctx, http.MethodPut, "/calendar/events/"+seg(id), p, &out)
	return out.Event, err
}

func (c *Client) DeleteEvent(ctx context.Context, id ID) error {
	return c.Do(ctx, http.MethodDelete, "/calendar/events/"+seg(id), nil, nil)
}

// AcademicQuery filters the academic calendar.
type AcademicQuery struct {
	AcademicYear string
	Semester     string
	Type         string
}

func (c *Client) AcademicCalendar(ctx context.Context, q AcademicQuery) ([]AcademicItem, error) {
	var out struct {
		Calendar []AcademicItem `json:"calendar"`
	}
	ep := withQuery("/calendar/academic", url.Values{
		"academic_year": {q.AcademicYear},
		"semester":      {q.Semester},
		"type":          {q.Type},
	})
	err := c.Do(ctx, http.MethodGet, ep, nil, &out)
	return out.Calendar, err
}

func (c *Client) CreateAcademicItem(ctx context.Context, p Payload) (AcademicItem, error) {
	var out struct {
		Item AcademicItem `json:"item"`
	}
	err := c.Do(ctx, http.MethodPost, "/calendar/academic", p, &out)
	return out.Item, err
}

func (c *Client) UpdateAcademicItem(ctx context.Context, id ID, p Payload) (AcademicItem, error) {
	var out struct {
		Item AcademicItem `json:"item"`
	}
	err := c.Do(ctx, http.MethodPut, "/calendar/academic/"+seg(id), p, &out)
	return out.Item, err
}

func (c *Client) DeleteAcademicItem(ctx context.Context, id ID) error {
	return c.Do(ctx, http.MethodDelete, "/calendar/academic/"+seg(id), nil, nil)
}

// TimetableQuery filters timetable slots. Day is sent only when set.
type TimetableQuery struct {
	CourseID ID
	Day      *int
	Semester string
	Section  string
}

func (c *Client) Timetable(ctx context.Context, q TimetableQuery) ([]Slot, error) {
	v := url.Values{
		"course_id": {string(q.CourseID)},
		"semester":  {q.Semester},
		"section":   {q.Section},
	}
	if q.Day != nil {
		v.Set("day", strconv.Itoa(*q.Day))
	}
	var out struct {
		Timetable []Slot `json:"timetable"`
	}
	err := c.Do(ctx, http.MethodGet, withQuery("/calendar/timetable", v), nil, &out)
	return out.Timetable, err
}

func (c *Client) CreateTimetableSlot(ctx context.Context, p Payload) (Slot, error) {
	var out struct {
		Slot Slot `json:"slot"`
	}
	err := c.Do(ctx, http.MethodPost, "/calendar/timetable", p, &out)
	return out.Slot, err
}

func (c *Client) UpdateTimetableSlot(ctx context.Context, id ID, p Payload) (Slot, error) {
	var out struct {
		Slot Slot `json:"slot"`
	}
	err := c.Do(ctx, http.MethodPut, "/calendar/timetable/"+seg(id), p, &out)
	return out.Slot, err
}

func (c *Client) DeleteTimetableSlot(ctx context.Context, id ID) error {
	return c.Do(ctx, http.MethodDelete, "/calendar/timetable/"+seg(id), nil, nil)
}

func (c *Client) SubjectsSchedule(ctx context.Context) ([]SubjectSchedule, error) {
	var out struct {
		Subjects []SubjectSchedule `json:"subjects"`
	}
	err := c.Do(ctx, http.MethodGet, "/calendar/subjects", nil, &out)
	return out.Subjects, err
}

// UpdateSubjectDates moves assignment due dates and timetable slots of a course.
func (c *Client) UpdateSubjectDates(ctx context.Context, courseID ID, p Payload) (Stats, error) {
	var out Stats
	err := c.Do(ctx, http.MethodPut, "/calendar/subjects/"+seg(courseID)+"/dates", p, &out)
	return out, err
}
