package portal

import (
	"context"
	"fmt"

	"campusintelli/internal/admin"
	"campusintelli/internal/api"
	"campusintelli/internal/attendance"
	"campusintelli/internal/changefeed"
	"campusintelli/internal/session"
	"campusintelli/internal/ui"
)

// UpdateProfile saves name and department, then merges them into the session.
func (a *App) UpdateProfile(ctx context.Context, name, department string) error {
	u, ok := a.session.User()
	if !ok {
		return session.ErrNoSession
	}
	p := api.Payload{"name": name, "department": department}
	if _, err := a.api.UpdateUser(ctx, api.ID(u.ID), p); err != nil {
		a.fail(err)
		return err
	}
	if _, err := a.session.Merge(ctx, session.Patch{Name: &name, Department: &department}); err != nil {
		a.fail(err)
		return err
	}
	a.surface.Notify("Profile updated!", ui.Success)
	a.feed.Publish(ctx, changefeed.Change{Resource: changefeed.Profile, Action: changefeed.Updated, ID: u.ID})
	return nil
}

func (a *App) qrCourses(ctx context.Context, selected string) ([]ui.Option, error) {
	courses, err := a.api.Courses(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]ui.Option, 0, len(courses))
	for _, c := range courses {
		opts = append(opts, ui.Option{Value: string(c.ID), Label: c.Code, Selected: string(c.ID) == selected})
	}
	return opts, nil
}

// ShowQRGenerator opens the course picker for attendance codes.
func (a *App) ShowQRGenerator(ctx context.Context) error {
	opts, err := a.qrCourses(ctx, "")
	if err != nil {
		a.fail(err)
		return err
	}
	if len(opts) == 0 {
		a.surface.Notify("No courses assigned", ui.Failure)
		return nil
	}
	a.surface.Open(ui.AppModal, ui.QRGenerator{Courses: opts})
	return nil
}

// GenerateQR creates a code for courseID and shows it in the generator.
func (a *App) GenerateQR(ctx context.Context, courseID string) error {
	opts, err := a.qrCourses(ctx, courseID)
	if err != nil {
		a.fail(err)
		return err
	}
	view := ui.QRGenerator{Courses: opts}
	defer func() { a.surface.Open(ui.AppModal, view) }()

	g, err := a.api.GenerateQR(ctx, api.ID(courseID))
	if err != nil {
		a.fail(err)
		return err
	}
	img, err := attendance.Image(g)
	if err != nil {
		a.fail(err)
		return err
	}
	view.Image = img
	view.Payload = attendance.Payload(g.QRCode)
	view.ExpiresIn = fmt.Sprintf("Expires in %d minutes", attendance.ExpiresInMinutes(g.ExpiresInSeconds))
	return nil
}

// ShowQRScanner opens the attendance code input.
func (a *App) ShowQRScanner() {
	a.surface.Open(ui.AppModal, ui.QRScanner{})
}

// MarkAttendance submits scanned QR data.
func (a *App) MarkAttendance(ctx context.Context, data string) error {
	res, err := a.api.MarkAttendance(ctx, data)
	if err != nil {
		a.surface.Open(ui.AppModal, ui.QRScanner{Data: data})
		a.fail(err)
		return err
	}
	msg := res.Message
	if msg == "" {
		msg = "Attendance marked"
	}
	a.surface.Notify(msg, ui.Success)
	a.surface.CloseAll()
	a.feed.Publish(ctx, changefeed.Change{Resource: changefeed.Attendance, Action: changefeed.Created, ID: string(res.Attendance.ID)})
	return nil
}

// ShowBookingForm opens an empty booking form.
func (a *App) ShowBookingForm() {
	a.surface.Open(ui.AppModal, ui.BookingForm{})
}

// CheckAvailability lists the rooms free for the requested slot.
func (a *App) CheckAvailability(ctx context.Context, f ui.BookingForm) error {
	rooms, err := a.api.AvailableRooms(ctx, f.Date, f.StartTime, f.EndTime)
	if err != nil {
		f.Checked, f.Rooms = false, nil
		a.surface.Open(ui.AppModal, f)
		a.fail(err)
		return err
	}
	f.Checked, f.Rooms = true, roomCards(rooms)
	a.surface.Open(ui.AppModal, f)
	return nil
}

// BookRoom books roomID for the slot in f.
func (a *App) BookRoom(ctx context.Context, roomID string, f ui.BookingForm) error {
	b, err := a.api.CreateBooking(ctx, api.BookingRequest{
		RoomID:    api.ID(roomID),
		Date:      f.Date,
		StartTime: f.StartTime,
		EndTime:   f.EndTime,
		Purpose:   f.Purpose,
	})
	if err != nil {
		a.surface.Open(ui.AppModal, f)
		a.fail(err)
		return err
	}
	a.surface.Notify("Room booked!", ui.Success)
	a.surface.CloseAll()
	a.feed.Publish(ctx, changefeed.Change{Resource: changefeed.Bookings, Action: changefeed.Created, ID: string(b.ID)})
	return nil
}

// CancelBooking cancels one of the user's bookings once confirmed.
func (a *App) CancelBooking(ctx context.Context, id string, c admin.Confirmer) error {
	if !c.Confirm(ctx, "Cancel this booking?") {
		return nil
	}
	if err := a.api.CancelBooking(ctx, api.ID(id)); err != nil {
		a.fail(err)
		return err
	}
	a.surface.Notify("Booking cancelled", ui.Success)
	a.surface.Remove(ui.MyBookings, id)
	a.feed.Publish(ctx, changefeed.Change{Resource: changefeed.Bookings, Action: changefeed.Deleted, ID: id})
	return nil
}

// ShowQuickAnnouncement opens the short announcement form.
func (a *App) ShowQuickAnnouncement() {
	a.surface.Open(ui.AppModal, ui.QuickAnnouncementForm{Category: "general", Categories: ui.Categories("general")})
}

// PublishAnnouncement posts a quick announcement.
func (a *App) PublishAnnouncement(ctx context.Context, f ui.QuickAnnouncementForm) error {
	saved, err := a.api.CreateAnnouncement(ctx, api.Payload{
		"title":    f.Title,
		"content":  f.Content,
		"category": f.Category,
	})
	if err != nil {
		f.Categories = ui.Categories(f.Category)
		a.surface.Open(ui.AppModal, f)
		a.fail(err)
		return err
	}
	a.surface.Notify("Announcement published!", ui.Success)
	a.surface.CloseAll()
	a.feed.Publish(ctx, changefeed.Change{Resource: changefeed.Announcements, Action: changefeed.Created, ID: string(saved.ID)})
	return nil
}

func roomCards(rooms []api.Room) []ui.RoomCard {
	out := make([]ui.RoomCard, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, ui.RoomCard{
			ID:       string(r.ID),
			Name:     r.Name,
			Building: r.Building,
			Floor:    r.Floor,
			Capacity: r.Capacity,
			RoomType: r.RoomType,
		})
	}
	return out
}

func roomList(rooms []api.Room) ui.RoomList {
	return ui.RoomList{Rooms: roomCards(rooms)}
}
