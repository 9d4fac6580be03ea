// Package portal is the application controller: it owns the auth and main
// screens, routes between pages and loads each page's data into the surface.
package portal

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"campusintelli/internal/admin"
	"campusintelli/internal/api"
	"campusintelli/internal/auth"
	"campusintelli/internal/changefeed"
	"campusintelli/internal/session"
	"campusintelli/internal/ui"
)

// App drives one client of the portal.
type App struct {
	api     *api.Client
	session *session.Context
	surface *ui.Surface
	feed    *changefeed.Feed
	manager *admin.Manager
}

// New wires a controller around sess. API calls authenticate with whatever
// token the session store holds at call time.
func New(client *api.Client, sess *session.Context, surface *ui.Surface, feed *changefeed.Feed) *App {
	client = client.WithTokens(sess)
	a := &App{
		api:     client,
		session: sess,
		surface: surface,
		feed:    feed,
		manager: admin.New(client, sess, surface, feed),
	}
	sess.OnChange(func(session.User, bool) { a.refreshChrome() })

	feed.Subscribe(changefeed.Timetable, a.reloadOn(a.LoadTimetable, ui.PageTimetable))
	feed.Subscribe(changefeed.Bookings, a.reloadOn(a.LoadBookings, ui.PageBookings))
	feed.Subscribe(changefeed.Bookings, a.reloadOn(a.LoadDashboard, ui.PageDashboard))
	feed.Subscribe(changefeed.Attendance, a.reloadOn(a.LoadAttendance, ui.PageAttendance))
	feed.Subscribe(changefeed.Attendance, a.reloadOn(a.LoadDashboard, ui.PageDashboard))
	feed.Subscribe(changefeed.Announcements, a.reloadOn(a.LoadDashboard, ui.PageDashboard))
	feed.Subscribe(changefeed.Profile, a.reloadOn(a.LoadProfile, ui.PageProfile))
	return a
}

// Manager returns the admin manager sharing this controller's session.
func (a *App) Manager() *admin.Manager { return a.manager }

// Surface returns the surface the controller writes to.
func (a *App) Surface() *ui.Surface { return a.surface }

// Resume restores the stored session and selects the screen without loading
// any page. A missing or unreadable entry shows the auth screen.
func (a *App) Resume(ctx context.Context) (bool, error) {
	ok, err := a.session.Init(ctx)
	if err != nil {
		a.showAuth("")
		return false, err
	}
	if !ok {
		a.showAuth("")
		return false, nil
	}
	a.showMain()
	return true, nil
}

// Start resumes the session and, when signed in, loads the dashboard.
func (a *App) Start(ctx context.Context) error {
	ok, err := a.Resume(ctx)
	if err != nil || !ok {
		return err
	}
	return a.Navigate(ctx, ui.PageDashboard)
}

// Login exchanges credentials for a session. A rejected login leaves the
// store untouched and the auth screen in place.
func (a *App) Login(ctx context.Context, email, password string) error {
	u, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.showAuth(email)
		a.fail(err)
		return err
	}
	if err := a.session.Activate(ctx, sessionUser(u)); err != nil {
		a.showAuth(email)
		a.fail(err)
		return err
	}
	a.showMain()
	err = a.Navigate(ctx, ui.PageDashboard)
	a.surface.Notify("Welcome back!", ui.Success)
	return err
}

// Register creates an account and sends the user back to the login tab.
// It does not sign in.
func (a *App) Register(ctx context.Context, r api.Registration) error {
	if _, err := a.api.Register(ctx, r); err != nil {
		a.surface.Write(ui.AuthContainer, ui.AuthForm{Tab: "register", Email: r.Email})
		a.fail(err)
		return err
	}
	a.surface.Notify("Account created! Please login.", ui.Success)
	a.surface.Write(ui.AuthContainer, ui.AuthForm{Tab: "login", Email: r.Email})
	return nil
}

// Logout clears the stored session and returns to the auth screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.TearDown(ctx); err != nil {
		a.fail(err)
		return err
	}
	a.surface.CloseAll()
	a.showAuth("")
	a.surface.Notify("Logged out", ui.Success)
	return nil
}

// Navigate shows page p and runs its loader once. Pages hidden from the
// current role fall back to the dashboard.
func (a *App) Navigate(ctx context.Context, p ui.Page) error {
	if !a.session.Authenticated() {
		a.showAuth("")
		return session.ErrNoSession
	}
	if !a.surface.Chrome().Visible(p.Class()) {
		p = ui.PageDashboard
	}
	a.surface.SetPage(p)
	return a.loader(p)(ctx)
}

// Refresh loads the active page unless something already rendered it.
func (a *App) Refresh(ctx context.Context) error {
	p := a.surface.Page()
	if p == "" || !a.session.Authenticated() {
		return nil
	}
	if _, ok := a.surface.View(p.Container()); ok {
		return nil
	}
	return a.loader(p)(ctx)
}

func (a *App) loader(p ui.Page) func(context.Context) error {
	switch p {
	case ui.PageDashboard:
		return a.LoadDashboard
	case ui.PageCourses:
		return a.LoadCourses
	case ui.PageAssignments:
		return a.LoadAssignments
	case ui.PageAttendance:
		return a.LoadAttendance
	case ui.PageTimetable:
		return a.LoadTimetable
	case ui.PageBookings:
		return a.LoadBookings
	case ui.PageAnnouncements:
		return a.manager.LoadAnnouncements
	case ui.PageEvents:
		return a.manager.LoadEvents
	case ui.PageSchedule:
		return a.manager.LoadSchedule
	case ui.PageProfile:
		return a.LoadProfile
	}
	return func(context.Context) error {
		a.LoadPlaceholder(p)
		return nil
	}
}

func (a *App) showAuth(email string) {
	a.surface.SetScreen(ui.ScreenAuth)
	a.surface.SetPage("")
	a.refreshChrome()
	if _, ok := a.surface.View(ui.AuthContainer); !ok || email != "" {
		a.surface.Write(ui.AuthContainer, ui.AuthForm{Tab: "login", Email: email})
	}
}

func (a *App) showMain() {
	a.surface.SetScreen(ui.ScreenMain)
	a.refreshChrome()
}

// refreshChrome recomputes the header and role visibility from the session.
func (a *App) refreshChrome() {
	u, ok := a.session.User()
	if !ok {
		a.surface.SetChrome(ui.Chrome{})
		return
	}
	name := u.Name
	if name == "" {
		name = "User"
	}
	a.surface.SetChrome(ui.Chrome{
		UserName:   name,
		Role:       u.Role,
		Visibility: auth.VisibilityFor(u.Role),
	})
}

// reloadOn reloads a page after a create or update while one of pages is shown.
func (a *App) reloadOn(load func(context.Context) error, pages ...ui.Page) changefeed.Handler {
	return func(ctx context.Context, c changefeed.Change) {
		if c.Action == changefeed.Deleted || !slices.Contains(pages, a.surface.Page()) {
			return
		}
		if err := load(ctx); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("resource", string(c.Resource)).Msg("reload failed")
		}
	}
}

func (a *App) fail(err error) {
	a.surface.Notify(err.Error(), ui.Failure)
}

func sessionUser(u api.User) session.User {
	return session.User{
		ID:         string(u.ID),
		Name:       u.Name,
		Email:      u.Email,
		Role:       auth.ParseRole(u.Role),
		Department: u.Department,
		Token:      u.Token,
	}
}
