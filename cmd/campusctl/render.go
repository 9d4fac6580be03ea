package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"campusintelli/internal/ui"
)

// dashboardParts are printed in this order on the dashboard.
var dashboardParts = []struct{ label, container string }{
	{"Courses", ui.StatCourses},
	{"Pending assignments", ui.StatAssignments},
	{"Attendance", ui.StatAttendance},
	{"Bookings", ui.StatBookings},
	{"Upcoming assignments", ui.UpcomingAssignments},
	{"Recent announcements", ui.RecentAnnouncements},
}

func printSurface(w io.Writer, s *ui.Surface) {
	for _, t := range s.DrainToasts() {
		marker := "*"
		if t.Kind == ui.Failure {
			marker = "!"
		}
		fmt.Fprintf(w, "%s %s\n", marker, t.Message)
	}

	if s.Screen() != ui.ScreenMain {
		if v, ok := s.View(ui.AuthContainer); ok {
			if f, ok := v.(ui.AuthForm); ok && f.Tab == "login" && f.Email != "" {
				fmt.Fprintf(w, "Sign in with: campusctl login --email %s\n", f.Email)
				return
			}
		}
		fmt.Fprintln(w, "Not signed in. Run: campusctl login --email <email> --password <password>")
		return
	}

	chrome := s.Chrome()
	page := s.Page()
	fmt.Fprintf(w, "== %s (%s, %s) ==\n", page.Title(), chrome.UserName, chrome.Role)
	switch page {
	case ui.PageDashboard:
		for _, part := range dashboardParts {
			v, _ := s.View(part.container)
			if stat, ok := v.(ui.Stat); ok {
				fmt.Fprintf(w, "%s: %s\n", part.label, stat.Value)
				continue
			}
			fmt.Fprintf(w, "-- %s --\n", part.label)
			printView(w, v)
		}
	case ui.PageBookings:
		fmt.Fprintln(w, "-- My bookings --")
		v, _ := s.View(ui.MyBookings)
		printView(w, v)
		fmt.Fprintln(w, "-- Available rooms --")
		v, _ = s.View(ui.AvailableRooms)
		printView(w, v)
	default:
		v, _ := s.View(page.Container())
		printView(w, v)
	}

	for _, m := range s.ActiveModals() {
		fmt.Fprintln(w)
		printView(w, m.View)
	}
}

func printView(w io.Writer, v ui.View) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	switch v := v.(type) {
	case nil:
	case ui.EmptyState:
		fmt.Fprintln(tw, v.Message)
	case ui.ErrorState:
		fmt.Fprintln(tw, "! "+v.Message)
	case ui.Stat:
		fmt.Fprintln(tw, v.Value)
	case ui.ItemList:
		for _, it := range v.Items {
			pin := ""
			if it.Pinned {
				pin = " [pinned]"
			}
			fmt.Fprintf(tw, "%s%s\t%s\n", it.Title, pin, it.Detail)
		}
	case ui.CourseList:
		for _, c := range v.Courses {
			fmt.Fprintf(tw, "%s\t%s\t%d credits\t%s\n", c.Code, c.Name, c.Credits, c.Department)
		}
	case ui.AssignmentList:
		for _, a := range v.Assignments {
			state := "pending"
			if a.Submitted {
				state = "submitted"
			}
			fmt.Fprintf(tw, "%s\t%s\tdue %s\t%s\n", a.ID, a.Title, a.Due, state)
		}
	case ui.AttendanceSummary:
		fmt.Fprintf(tw, "Overall\t%s\n", v.Overall)
		for _, c := range v.Courses {
			fmt.Fprintf(tw, "%s\t%d/%d\t%s\n", c.Label, c.Present, c.Total, c.Percent)
		}
	case ui.BookingList:
		for _, b := range v.Bookings {
			fmt.Fprintf(tw, "%s\t%s\t%s %s-%s\t%s\n", b.ID, b.Room, b.Date, b.StartTime, b.EndTime, b.Status)
		}
	case ui.RoomList:
		printRooms(tw, v.Rooms)
	case ui.AnnouncementList:
		for _, a := range v.Announcements {
			pin := ""
			if a.Pinned {
				pin = " [pinned]"
			}
			fmt.Fprintf(tw, "%s\t%s%s\t%s\t%s\n", a.ID, a.Title, pin, a.Priority, a.Date)
			if a.Excerpt != "" {
				fmt.Fprintf(tw, "\t%s\n", a.Excerpt)
			}
		}
	case ui.EventList:
		for _, e := range v.Events {
			flags := []string{e.EventType}
			if e.Holiday {
				flags = append(flags, "holiday")
			}
			if e.Past {
				flags = append(flags, "past")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Title, e.Dates, e.Location, strings.Join(flags, ","))
		}
	case ui.TimetableGrid:
		fmt.Fprintf(tw, "Time\t%s\n", strings.Join(v.Days, "\t"))
		for _, r := range v.Rows {
			cells := make([]string, len(r.Cells))
			for i, c := range r.Cells {
				cells[i] = slotNames(c.Slots)
			}
			fmt.Fprintf(tw, "%s\t%s\n", r.Label(), strings.Join(cells, "\t"))
		}
	case ui.TimetableDays:
		fmt.Fprintf(tw, "%d class slots\n", v.Count)
		for _, d := range v.Days {
			for _, s := range d.Slots {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Name, s.ID, s.Time, s.Course, s.Room)
			}
		}
	case ui.BulkTimetable:
		for _, r := range v.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s-%s\t%s\t%s\n", r.ID, r.Day, r.Course, r.StartTime, r.EndTime, r.Room, r.SlotType)
		}
	case ui.Profile:
		fmt.Fprintf(tw, "Name\t%s\nEmail\t%s\nDepartment\t%s\n", v.Name, v.Email, v.Department)
	case ui.Placeholder:
		fmt.Fprintln(tw, v.Intro)
		for _, it := range v.Items {
			fmt.Fprintf(tw, "%s\t%s\n", it.Title, it.Detail)
		}
	case ui.QRGenerator:
		if v.Payload == "" {
			fmt.Fprintln(tw, "Courses:")
			for _, o := range v.Courses {
				if o.Value != "" {
					fmt.Fprintf(tw, "%s\t%s\n", o.Value, o.Label)
				}
			}
			return
		}
		fmt.Fprintf(tw, "QR data\t%s\n%s\n", v.Payload, v.ExpiresIn)
	case ui.BookingForm:
		if v.Checked {
			fmt.Fprintf(tw, "Rooms free on %s %s-%s:\n", v.Date, v.StartTime, v.EndTime)
			printRooms(tw, v.Rooms)
		}
	case ui.EventForm, ui.AnnouncementForm, ui.TimetableForm, ui.QRScanner, ui.QuickAnnouncementForm:
		// Forms are filled through command flags.
	default:
		fmt.Fprintf(tw, "%v\n", v)
	}
}

func printRooms(w io.Writer, rooms []ui.RoomCard) {
	if len(rooms) == 0 {
		fmt.Fprintln(w, "No rooms available")
		return
	}
	for _, r := range rooms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d seats\t%s\n", r.ID, r.Name, r.Building, r.Capacity, r.RoomType)
	}
}

func slotNames(slots []ui.SlotCard) string {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.Course
		if s.Room != "" {
			names[i] += " @" + s.Room
		}
	}
	return strings.Join(names, ", ")
}
