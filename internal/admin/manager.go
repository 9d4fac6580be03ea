// Package admin implements the role-gated create/edit/delete flows for
// events, announcements and timetable slots.
package admin

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"campusintelli/internal/api"
	"campusintelli/internal/auth"
	"campusintelli/internal/changefeed"
	"campusintelli/internal/ui"
)

// Gate supplies the capabilities of the signed-in user.
type Gate interface {
	Permissions() auth.Permissions
}

// Confirmer asks the user before a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Always confirms every prompt.
var Always = ConfirmFunc(func(context.Context, string) bool { return true })

// Manager drives the management views. It writes to a surface and announces
// changes on a feed; list views reload when their resource changes.
type Manager struct {
	api     *api.Client
	gate    Gate
	surface *ui.Surface
	feed    *changefeed.Feed
	now     func() time.Time

	courses []api.Course
}

// New creates a manager and subscribes it to its own resources.
func New(client *api.Client, gate Gate, surface *ui.Surface, feed *changefeed.Feed) *Manager {
	m := &Manager{
		api:     client,
		gate:    gate,
		surface: surface,
		feed:    feed,
		now:     time.Now,
	}
	feed.Subscribe(changefeed.Events, m.reloadOn(ui.PageEvents, m.LoadEvents))
	feed.Subscribe(changefeed.Announcements, m.reloadOn(ui.PageAnnouncements, m.LoadAnnouncements))
	feed.Subscribe(changefeed.Timetable, m.reloadOn(ui.PageSchedule, m.LoadSchedule))
	return m
}

// WithClock overrides the clock used to classify past events.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Permissions returns the current capabilities.
func (m *Manager) Permissions() auth.Permissions { return m.gate.Permissions() }

// reloadOn reloads a list after a create or update while its page is shown.
// Deletes prune the rendered view in place instead.
func (m *Manager) reloadOn(page ui.Page, load func(context.Context) error) changefeed.Handler {
	return func(ctx context.Context, c changefeed.Change) {
		if c.Action == changefeed.Deleted || m.surface.Page() != page {
			return
		}
		if err := load(ctx); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("resource", string(c.Resource)).Msg("reload failed")
		}
	}
}

func (m *Manager) fail(err error) {
	m.surface.Notify(err.Error(), ui.Failure)
}

func (m *Manager) ok(msg string) {
	m.surface.Notify(msg, ui.Success)
}

func (m *Manager) publish(ctx context.Context, r changefeed.Resource, a changefeed.Action, id string) {
	m.feed.Publish(ctx, changefeed.Change{Resource: r, Action: a, ID: id})
}

// courseList loads courses once per manager for the slot form.
func (m *Manager) courseList(ctx context.Context) ([]api.Course, error) {
	if m.courses != nil {
		return m.courses, nil
	}
	cs, err := m.api.Courses(ctx)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		cs = []api.Course{}
	}
	m.courses = cs
	return cs, nil
}
