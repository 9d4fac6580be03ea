package ui

import "html/template"

// DayNames maps day_of_week (Monday = 0) to its name.
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// EmptyState is shown when a collection has no items.
type EmptyState struct {
	Message string
}

// ErrorState is shown in place of a page whose load failed.
type ErrorState struct {
	Message string
}

// Stat is a single dashboard figure.
type Stat struct {
	Value string
}

type ListItem struct {
	Title  string
	Detail string
	Pinned bool
}

// ItemList is a short preview list on the dashboard.
type ItemList struct {
	Items []ListItem
}

type CourseCard struct {
	ID          string
	Code        string
	Name        string
	Description string
	Credits     int
	Department  string
}

type CourseList struct {
	Courses []CourseCard
}

type AssignmentCard struct {
	ID          string
	Title       string
	Description string
	Due         string
	MaxMarks    float64
	Submitted   bool
}

type AssignmentList struct {
	Assignments []AssignmentCard
}

type AttendanceCourse struct {
	CourseID string
	Label    string
	Present  int
	Total    int
	Percent  string
}

type AttendanceSummary struct {
	Overall string
	Courses []AttendanceCourse
}

type BookingItem struct {
	ID        string
	Room      string
	Date      string
	StartTime string
	EndTime   string
	Status    string
}

type BookingList struct {
	Bookings []BookingItem
}

func (l BookingList) Without(id string) View {
	out := BookingList{}
	for _, b := range l.Bookings {
		if b.ID != id {
			out.Bookings = append(out.Bookings, b)
		}
	}
	return out
}

type RoomCard struct {
	ID       string
	Name     string
	Building string
	Floor    int
	Capacity int
	RoomType string
}

type RoomList struct {
	Rooms []RoomCard
}

type AnnouncementCard struct {
	ID        string
	Title     string
	Content   template.HTML
	Excerpt   string
	Priority  string
	Date      string
	Author    string
	Audience  string
	Pinned    bool
	CanEdit   bool
	CanDelete bool
}

type AnnouncementList struct {
	CanAdd        bool
	Announcements []AnnouncementCard
}

func (l AnnouncementList) Without(id string) View {
	out := AnnouncementList{CanAdd: l.CanAdd}
	for _, a := range l.Announcements {
		if a.ID != id {
			out.Announcements = append(out.Announcements, a)
		}
	}
	return out
}

type EventCard struct {
	ID          string
	Title       string
	Description string
	EventType   string
	Holiday     bool
	Past        bool
	Dates       string
	Location    string
	CanEdit     bool
	CanDelete   bool
}

type EventList struct {
	CanAdd bool
	Events []EventCard
}

func (l EventList) Without(id string) View {
	out := EventList{CanAdd: l.CanAdd}
	for _, e := range l.Events {
		if e.ID != id {
			out.Events = append(out.Events, e)
		}
	}
	return out
}

// SlotCard is one class in a timetable view.
type SlotCard struct {
	ID        string
	Time      string
	Course    string
	Room      string
	SlotType  string
	CanEdit   bool
	CanDelete bool
}

// SlotDefaults prefill the create form from an empty cell.
type SlotDefaults struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

type GridCell struct {
	Day   int
	Slots []SlotCard
	Add   *SlotDefaults
}

type GridRow struct {
	StartTime string
	EndTime   string
	Cells     []GridCell
}

// Label is the row heading, e.g. "09:00 - 10:30".
func (r GridRow) Label() string { return r.StartTime + " - " + r.EndTime }

// TimetableGrid is the weekly Monday to Friday grid.
type TimetableGrid struct {
	Days      []string
	Rows      []GridRow
	CanManage bool
	Count     int
}

func (g TimetableGrid) Without(id string) View {
	out := TimetableGrid{Days: g.Days, CanManage: g.CanManage}
	for _, r := range g.Rows {
		nr := GridRow{StartTime: r.StartTime, EndTime: r.EndTime}
		populated := false
		for _, c := range r.Cells {
			nc := GridCell{Day: c.Day, Add: c.Add}
			for _, s := range c.Slots {
				if s.ID != id {
					nc.Slots = append(nc.Slots, s)
				}
			}
			if len(c.Slots) > 0 && len(nc.Slots) == 0 && g.CanManage {
				nc.Add = &SlotDefaults{DayOfWeek: c.Day, StartTime: r.StartTime, EndTime: r.EndTime}
			}
			populated = populated || len(nc.Slots) > 0
			out.Count += len(nc.Slots)
			nr.Cells = append(nr.Cells, nc)
		}
		if populated {
			out.Rows = append(out.Rows, nr)
		}
	}
	return out
}

type DayColumn struct {
	Day    int
	Name   string
	Slots  []SlotCard
	CanAdd bool
}

// TimetableDays is the seven-column management view.
type TimetableDays struct {
	CanManage bool
	Count     int
	Days      []DayColumn
}

func (t TimetableDays) Without(id string) View {
	out := TimetableDays{CanManage: t.CanManage}
	for _, d := range t.Days {
		nd := DayColumn{Day: d.Day, Name: d.Name, CanAdd: d.CanAdd}
		for _, s := range d.Slots {
			if s.ID != id {
				nd.Slots = append(nd.Slots, s)
			}
		}
		out.Count += len(nd.Slots)
		out.Days = append(out.Days, nd)
	}
	return out
}

// BulkRow is an inline-editable slot.
type BulkRow struct {
	ID        string
	Day       string
	Course    string
	StartTime string
	EndTime   string
	Room      string
	SlotType  string
	SlotTypes []Option
}

type BulkTimetable struct {
	Rows []BulkRow
}

func (b BulkTimetable) Without(id string) View {
	out := BulkTimetable{}
	for _, r := range b.Rows {
		if r.ID != id {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

type Profile struct {
	Name       string
	Email      string
	Department string
}

type PlaceholderItem struct {
	Title  string
	Detail string
}

// Placeholder is static content for pages without backend support.
type Placeholder struct {
	Title string
	Intro string
	Items []PlaceholderItem
}
