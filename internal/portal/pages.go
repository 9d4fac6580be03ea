package portal

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"campusintelli/internal/api"
	"campusintelli/internal/attendance"
	"campusintelli/internal/timetable"
	"campusintelli/internal/ui"
)

const previewSize = 3

// LoadDashboard fills the statistics and previews. Each part loads on its
// own so one failure leaves the others in place; the attendance figure
// falls back to N/A instead of failing.
func (a *App) LoadDashboard(ctx context.Context) error {
	var errs []error

	courses, err := a.api.Courses(ctx)
	if err != nil {
		a.surface.Write(ui.StatCourses, ui.ErrorState{Message: "Failed to load courses"})
		errs = append(errs, err)
	} else {
		a.surface.Write(ui.StatCourses, ui.Stat{Value: strconv.Itoa(len(courses))})
	}

	assignments, err := a.api.Assignments(ctx)
	if err != nil {
		a.surface.Write(ui.StatAssignments, ui.ErrorState{Message: "Failed to load assignments"})
		a.surface.Write(ui.UpcomingAssignments, ui.ErrorState{Message: "Failed to load assignments"})
		errs = append(errs, err)
	} else {
		pending := 0
		for _, as := range assignments {
			if !as.Submitted {
				pending++
			}
		}
		a.surface.Write(ui.StatAssignments, ui.Stat{Value: strconv.Itoa(pending)})

		var upcoming ui.ItemList
		for _, as := range assignments[:min(previewSize, len(assignments))] {
			upcoming.Items = append(upcoming.Items, ui.ListItem{Title: as.Title, Detail: "Due: " + ui.Date(as.DueDate)})
		}
		a.writeList(ui.UpcomingAssignments, upcoming, "No upcoming assignments")
	}

	summary, err := a.api.AttendanceSummary(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("attendance summary unavailable")
	}
	a.surface.Write(ui.StatAttendance, ui.Stat{Value: attendance.Display(summary, err)})

	bookings, err := a.api.MyBookings(ctx)
	if err != nil {
		a.surface.Write(ui.StatBookings, ui.ErrorState{Message: "Failed to load bookings"})
		errs = append(errs, err)
	} else {
		confirmed := 0
		for _, b := range bookings {
			if b.Status == "confirmed" {
				confirmed++
			}
		}
		a.surface.Write(ui.StatBookings, ui.Stat{Value: strconv.Itoa(confirmed)})
	}

	anns, err := a.api.Announcements(ctx)
	if err != nil {
		a.surface.Write(ui.RecentAnnouncements, ui.ErrorState{Message: "Failed to load announcements"})
		errs = append(errs, err)
	} else {
		var recent ui.ItemList
		for _, an := range anns[:min(previewSize, len(anns))] {
			recent.Items = append(recent.Items, ui.ListItem{
				Title:  an.Title,
				Detail: ui.Excerpt(an.Content, 100),
				Pinned: an.IsPinned,
			})
		}
		a.writeList(ui.RecentAnnouncements, recent, "No announcements")
	}

	return errors.Join(errs...)
}

func (a *App) writeList(container string, l ui.ItemList, empty string) {
	if len(l.Items) == 0 {
		a.surface.Write(container, ui.EmptyState{Message: empty})
		return
	}
	a.surface.Write(container, l)
}

func (a *App) LoadCourses(ctx context.Context) error {
	courses, err := a.api.Courses(ctx)
	if err != nil {
		a.surface.Write(ui.CoursesList, ui.ErrorState{Message: "Failed to load courses"})
		return err
	}
	if len(courses) == 0 {
		a.surface.Write(ui.CoursesList, ui.EmptyState{Message: "No courses available"})
		return nil
	}
	var list ui.CourseList
	for _, c := range courses {
		list.Courses = append(list.Courses, ui.CourseCard{
			ID:          string(c.ID),
			Code:        c.Code,
			Name:        c.Name,
			Description: c.Description,
			Credits:     c.Credits,
			Department:  c.Department,
		})
	}
	a.surface.Write(ui.CoursesList, list)
	return nil
}

func (a *App) LoadAssignments(ctx context.Context) error {
	assignments, err := a.api.Assignments(ctx)
	if err != nil {
		a.surface.Write(ui.AssignmentsList, ui.ErrorState{Message: "Failed to load assignments"})
		return err
	}
	if len(assignments) == 0 {
		a.surface.Write(ui.AssignmentsList, ui.EmptyState{Message: "No assignments yet"})
		return nil
	}
	var list ui.AssignmentList
	for _, as := range assignments {
		list.Assignments = append(list.Assignments, ui.AssignmentCard{
			ID:          string(as.ID),
			Title:       as.Title,
			Description: as.Description,
			Due:         ui.DateTime(as.DueDate),
			MaxMarks:    as.MaxMarks,
			Submitted:   as.Submitted,
		})
	}
	a.surface.Write(ui.AssignmentsList, list)
	return nil
}

// LoadAttendance shows per-course counts. Course codes label the rows when
// the course list is available.
func (a *App) LoadAttendance(ctx context.Context) error {
	summary, err := a.api.AttendanceSummary(ctx)
	if err != nil {
		a.surface.Write(ui.AttendanceContainer, ui.ErrorState{Message: "Failed to load attendance"})
		return err
	}
	if len(summary) == 0 {
		a.surface.Write(ui.AttendanceContainer, ui.EmptyState{Message: "No attendance records"})
		return nil
	}
	names := map[string]string{}
	if courses, err := a.api.Courses(ctx); err == nil {
		for _, c := range courses {
			names[string(c.ID)] = c.Code
		}
	}
	a.surface.Write(ui.AttendanceContainer, ui.AttendanceSummary{
		Overall: attendance.Format(attendance.Totals(summary)),
		Courses: attendance.Courses(summary, names),
	})
	return nil
}

// LoadTimetable renders the Monday to Friday grid.
func (a *App) LoadTimetable(ctx context.Context) error {
	slots, err := a.api.Timetable(ctx, api.TimetableQuery{})
	if err != nil {
		a.surface.Write(ui.TimetableContainer, ui.ErrorState{Message: "Failed to load timetable: " + err.Error()})
		return err
	}
	a.surface.Write(ui.TimetableContainer, timetable.BuildGrid(slots, a.session.Permissions()))
	return nil
}

// LoadBookings shows the user's bookings and the room catalogue.
func (a *App) LoadBookings(ctx context.Context) error {
	var errs []error
	bookings, err := a.api.MyBookings(ctx)
	switch {
	case err != nil:
		a.surface.Write(ui.MyBookings, ui.ErrorState{Message: "Failed to load bookings"})
		errs = append(errs, err)
	case len(bookings) == 0:
		a.surface.Write(ui.MyBookings, ui.EmptyState{Message: "No bookings"})
	default:
		var list ui.BookingList
		for _, b := range bookings {
			room := b.RoomName
			if room == "" {
				room = "Room"
			}
			list.Bookings = append(list.Bookings, ui.BookingItem{
				ID:        string(b.ID),
				Room:      room,
				Date:      b.Date,
				StartTime: b.StartTime,
				EndTime:   b.EndTime,
				Status:    b.Status,
			})
		}
		a.surface.Write(ui.MyBookings, list)
	}

	rooms, err := a.api.Rooms(ctx)
	switch {
	case err != nil:
		a.surface.Write(ui.AvailableRooms, ui.ErrorState{Message: "Failed to load rooms"})
		errs = append(errs, err)
	case len(rooms) == 0:
		a.surface.Write(ui.AvailableRooms, ui.EmptyState{Message: "No rooms available"})
	default:
		a.surface.Write(ui.AvailableRooms, roomList(rooms))
	}
	return errors.Join(errs...)
}

// LoadProfile shows the signed-in user's editable fields.
func (a *App) LoadProfile(context.Context) error {
	u, _ := a.session.User()
	a.surface.Write(ui.ProfileContainer, ui.Profile{Name: u.Name, Email: u.Email, Department: u.Department})
	return nil
}
