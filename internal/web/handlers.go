package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"campusintelli/internal/api"
	"campusintelli/internal/portal"
	"campusintelli/internal/ui"
)

// formConfirmer treats a posted confirm=yes as the user's answer. Without it
// the prompt is shown and nothing is sent.
type formConfirmer struct {
	c       *gin.Context
	surface *ui.Surface
}

func (f formConfirmer) Confirm(_ context.Context, prompt string) bool {
	if f.c.PostForm("confirm") == "yes" {
		return true
	}
	f.surface.Open(ui.ConfirmModal, ui.ConfirmPrompt{Message: prompt, Action: f.c.Request.URL.Path})
	return false
}

func confirmer(c *gin.Context, app *portal.App) formConfirmer {
	return formConfirmer{c: c, surface: app.Surface()}
}

// action selects the page named by the "page" field, or def, runs fn and
// renders the result. The page is loaded if the action did not render it,
// unless a confirmation is pending.
func confirming(s *ui.Surface) bool {
	for _, m := range s.ActiveModals() {
		if m.ID == ui.ConfirmModal {
			return true
		}
	}
	return false
}

func (s *Server) action(c *gin.Context, def ui.Page, fn func(ctx context.Context, app *portal.App) error) {
	app := appFrom(c)
	ctx := c.Request.Context()

	p := def
	if named, ok := ui.ParsePage(c.Request.FormValue("page")); ok && app.Surface().Chrome().Visible(named.Class()) {
		p = named
	}
	app.Surface().SetPage(p)

	if err := fn(ctx, app); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Str("path", c.FullPath()).Msg("action failed")
	}
	if confirming(app.Surface()) {
		s.render(c, app)
		return
	}
	if err := app.Refresh(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("page", string(app.Surface().Page())).Msg("page load failed")
	}
	s.render(c, app)
}

func (s *Server) home(c *gin.Context) {
	app := appFrom(c)
	if app.Surface().Screen() == ui.ScreenMain {
		if err := app.Navigate(c.Request.Context(), ui.PageDashboard); err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("dashboard load failed")
		}
	}
	s.render(c, app)
}

func (s *Server) login(c *gin.Context) {
	app := appFrom(c)
	if err := app.Login(c.Request.Context(), c.PostForm("email"), c.PostForm("password")); err != nil {
		zerolog.Ctx(c.Request.Context()).Info().Err(err).Msg("login failed")
	}
	s.render(c, app)
}

func (s *Server) register(c *gin.Context) {
	app := appFrom(c)
	err := app.Register(c.Request.Context(), api.Registration{
		Name:       c.PostForm("name"),
		Email:      c.PostForm("email"),
		Password:   c.PostForm("password"),
		Role:       c.PostForm("role"),
		Department: c.PostForm("department"),
	})
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Info().Err(err).Msg("registration failed")
	}
	s.render(c, app)
}

func (s *Server) logout(c *gin.Context) {
	app := appFrom(c)
	if err := app.Logout(c.Request.Context()); err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("logout failed")
	}
	s.render(c, app)
}

func (s *Server) page(c *gin.Context) {
	p, ok := ui.ParsePage(c.Param("page"))
	if !ok {
		c.String(http.StatusNotFound, "Page not found")
		return
	}
	app := appFrom(c)
	if err := app.Navigate(c.Request.Context(), p); err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("page", string(p)).Msg("page load failed")
	}
	s.render(c, app)
}

func (s *Server) updateProfile(c *gin.Context) {
	s.action(c, ui.PageProfile, func(ctx context.Context, app *portal.App) error {
		return app.UpdateProfile(ctx, c.PostForm("name"), c.PostForm("department"))
	})
}

func (s *Server) showQRGenerator(c *gin.Context) {
	s.action(c, ui.PageAttendance, func(ctx context.Context, app *portal.App) error {
		return app.ShowQRGenerator(ctx)
	})
}

func (s *Server) generateQR(c *gin.Context) {
	s.action(c, ui.PageAttendance, func(ctx context.Context, app *portal.App) error {
		return app.GenerateQR(ctx, c.PostForm("course_id"))
	})
}

func (s *Server) showQRScanner(c *gin.Context) {
	s.action(c, ui.PageAttendance, func(_ context.Context, app *portal.App) error {
		app.ShowQRScanner()
		return nil
	})
}

func (s *Server) markAttendance(c *gin.Context) {
	s.action(c, ui.PageAttendance, func(ctx context.Context, app *portal.App) error {
		return app.MarkAttendance(ctx, c.PostForm("qr_data"))
	})
}

func bookingForm(c *gin.Context) ui.BookingForm {
	return ui.BookingForm{
		Date:      c.PostForm("date"),
		StartTime: c.PostForm("start_time"),
		EndTime:   c.PostForm("end_time"),
		Purpose:   c.PostForm("purpose"),
	}
}

func (s *Server) showBookingForm(c *gin.Context) {
	s.action(c, ui.PageBookings, func(_ context.Context, app *portal.App) error {
		app.ShowBookingForm()
		return nil
	})
}

func (s *Server) checkAvailability(c *gin.Context) {
	s.action(c, ui.PageBookings, func(ctx context.Context, app *portal.App) error {
		return app.CheckAvailability(ctx, bookingForm(c))
	})
}

func (s *Server) bookRoom(c *gin.Context) {
	s.action(c, ui.PageBookings, func(ctx context.Context, app *portal.App) error {
		return app.BookRoom(ctx, c.PostForm("room_id"), bookingForm(c))
	})
}

func (s *Server) cancelBooking(c *gin.Context) {
	s.action(c, ui.PageBookings, func(ctx context.Context, app *portal.App) error {
		return app.CancelBooking(ctx, c.Param("id"), confirmer(c, app))
	})
}

func (s *Server) downloadMaterial(c *gin.Context) {
	c.Redirect(http.StatusFound, s.api.WithTokens(appSession(c)).MaterialDownloadURL(c.Request.Context(), api.ID(c.Param("id"))))
}

func (s *Server) downloadSubmission(c *gin.Context) {
	c.Redirect(http.StatusFound, s.api.WithTokens(appSession(c)).SubmissionDownloadURL(c.Request.Context(), api.ID(c.Param("id"))))
}

func (s *Server) showQuickAnnouncement(c *gin.Context) {
	s.action(c, ui.PageDashboard, func(_ context.Context, app *portal.App) error {
		app.ShowQuickAnnouncement()
		return nil
	})
}

func (s *Server) publishAnnouncement(c *gin.Context) {
	s.action(c, ui.PageDashboard, func(ctx context.Context, app *portal.App) error {
		return app.PublishAnnouncement(ctx, ui.QuickAnnouncementForm{
			Title:    c.PostForm("title"),
			Content:  c.PostForm("content"),
			Category: c.PostForm("category"),
		})
	})
}

func (s *Server) newEvent(c *gin.Context) {
	s.action(c, ui.PageEvents, func(_ context.Context, app *portal.App) error {
		app.Manager().ShowEventForm(nil)
		return nil
	})
}

func (s *Server) editEvent(c *gin.Context) {
	s.action(c, ui.PageEvents, func(ctx context.Context, app *portal.App) error {
		return app.Manager().EditEvent(ctx, c.Param("id"))
	})
}

func (s *Server) saveEvent(c *gin.Context) {
	s.action(c, ui.PageEvents, func(ctx context.Context, app *portal.App) error {
		return app.Manager().SubmitEvent(ctx, postForm(c))
	})
}

func (s *Server) deleteEvent(c *gin.Context) {
	s.action(c, ui.PageEvents, func(ctx context.Context, app *portal.App) error {
		return app.Manager().DeleteEvent(ctx, c.Param("id"), confirmer(c, app))
	})
}

func (s *Server) newAnnouncement(c *gin.Context) {
	s.action(c, ui.PageAnnouncements, func(_ context.Context, app *portal.App) error {
		app.Manager().ShowAnnouncementForm(nil)
		return nil
	})
}

func (s *Server) editAnnouncement(c *gin.Context) {
	s.action(c, ui.PageAnnouncements, func(ctx context.Context, app *portal.App) error {
		return app.Manager().EditAnnouncement(ctx, c.Param("id"))
	})
}

func (s *Server) saveAnnouncement(c *gin.Context) {
	s.action(c, ui.PageAnnouncements, func(ctx context.Context, app *portal.App) error {
		return app.Manager().SubmitAnnouncement(ctx, postForm(c))
	})
}

func (s *Server) deleteAnnouncement(c *gin.Context) {
	s.action(c, ui.PageAnnouncements, func(ctx context.Context, app *portal.App) error {
		return app.Manager().DeleteAnnouncement(ctx, c.Param("id"), confirmer(c, app))
	})
}

// slotDefaults reads the prefill of an "add" link: day, start and end.
func slotDefaults(c *gin.Context) *ui.SlotDefaults {
	day, err := strconv.Atoi(c.Query("day"))
	if err != nil {
		return nil
	}
	return &ui.SlotDefaults{DayOfWeek: day, StartTime: c.Query("start"), EndTime: c.Query("end")}
}

func (s *Server) newSlot(c *gin.Context) {
	s.action(c, ui.PageSchedule, func(ctx context.Context, app *portal.App) error {
		return app.Manager().ShowTimetableForm(ctx, nil, slotDefaults(c))
	})
}

func (s *Server) editSlot(c *gin.Context) {
	s.action(c, ui.PageSchedule, func(ctx context.Context, app *portal.App) error {
		return app.Manager().EditTimetableSlot(ctx, c.Param("id"))
	})
}

func (s *Server) saveSlot(c *gin.Context) {
	s.action(c, ui.PageSchedule, func(ctx context.Context, app *portal.App) error {
		return app.Manager().SubmitTimetableSlot(ctx, postForm(c))
	})
}

func (s *Server) deleteSlot(c *gin.Context) {
	s.action(c, ui.PageSchedule, func(ctx context.Context, app *portal.App) error {
		return app.Manager().DeleteTimetableSlot(ctx, c.Param("id"), confirmer(c, app))
	})
}

func (s *Server) bulkSlots(c *gin.Context) {
	s.action(c, ui.PageSchedule, func(ctx context.Context, app *portal.App) error {
		return app.Manager().ShowBulkTimetable(ctx)
	})
}

func (s *Server) saveBulkRow(c *gin.Context) {
	s.action(c, ui.PageSchedule, func(ctx context.Context, app *portal.App) error {
		m := app.Manager()
		err := m.SaveBulkRow(ctx, c.Param("id"), postForm(c))
		if showErr := m.ShowBulkTimetable(ctx); err == nil {
			err = showErr
		}
		return err
	})
}

func (s *Server) deleteBulkRow(c *gin.Context) {
	s.action(c, ui.PageSchedule, func(ctx context.Context, app *portal.App) error {
		m := app.Manager()
		err := m.DeleteBulkRow(ctx, c.Param("id"), confirmer(c, app))
		if confirming(app.Surface()) {
			return err
		}
		if showErr := m.ShowBulkTimetable(ctx); err == nil {
			err = showErr
		}
		return err
	})
}

func postForm(c *gin.Context) map[string][]string {
	_ = c.Request.ParseForm()
	return c.Request.PostForm
}
