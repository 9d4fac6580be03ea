package admin

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusintelli/internal/api"
	"campusintelli/internal/api/apitest"
	"campusintelli/internal/auth"
	"campusintelli/internal/changefeed"
	"campusintelli/internal/ui"
)

type gate auth.Role

func (g gate) Permissions() auth.Permissions { return auth.PermissionsFor(auth.Role(g)) }

var (
	decline = ConfirmFunc(func(context.Context, string) bool { return false })
	ctx     = context.Background()
)

type fixture struct {
	backend *apitest.Backend
	surface *ui.Surface
	feed    *changefeed.Feed
	m       *Manager
}

func setup(t *testing.T, role auth.Role) *fixture {
	t.Helper()
	b := apitest.New(t)
	s := ui.NewSurface()
	f := changefeed.New()
	m := New(b.Client().WithTokens(api.StaticToken("tok")), gate(role), s, f)
	m.WithClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) })
	return &fixture{backend: b, surface: s, feed: f, m: m}
}

func eventsBody() map[string]any {
	return map[string]any{"events": []any{
		map[string]any{"id": 1, "title": "Orientation", "event_type": "academic", "start_date": "2026-01-10"},
		map[string]any{"id": 2, "title": "Founders Day", "event_type": "general", "start_date": "2026-05-01", "end_date": "2026-05-02", "is_holiday": true},
	}}
}

func TestSubmitEventRoundTrip(t *testing.T) {
	f := setup(t, auth.RoleAdmin)
	f.surface.SetPage(ui.PageEvents)
	f.backend.On(http.MethodPost, "/calendar/events", http.StatusCreated, map[string]any{"event": map[string]any{"id": 3, "title": "Founders Day"}})
	f.backend.On(http.MethodGet, "/calendar/events", http.StatusOK, eventsBody())
	f.m.ShowEventForm(nil)

	err := f.m.SubmitEvent(ctx, url.Values{"title": {"Founders Day"}, "start_date": {"2026-05-01"}})
	require.NoError(t, err)

	calls := f.backend.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, map[string]any{"title": "Founders Day", "start_date": "2026-05-01", "is_holiday": false}, calls[0].Body)
	assert.Equal(t, http.MethodGet, calls[1].Method)
	assert.Equal(t, "/calendar/events", calls[1].Path)

	assert.Empty(t, f.surface.ActiveModals())
	assert.Equal(t, []ui.Toast{{Message: "Event created successfully", Kind: ui.Success}}, f.surface.Toasts())
	v, ok := f.surface.View(ui.EventsContainer)
	require.True(t, ok)
	assert.Len(t, v.(ui.EventList).Events, 2)
}

func TestSubmitEventUpdate(t *testing.T) {
	f := setup(t, auth.RoleFaculty)
	f.backend.On(http.MethodPut, "/calendar/events/2", http.StatusOK, map[string]any{"event": map[string]any{"id": 2}})

	var got []changefeed.Change
	f.feed.Subscribe(changefeed.Events, func(_ context.Context, c changefeed.Change) { got = append(got, c) })

	err := f.m.SubmitEvent(ctx, url.Values{"id": {"2"}, "title": {"X"}, "is_holiday": {"on"}})
	require.NoError(t, err)
	call := f.backend.CallsTo(http.MethodPut, "/calendar/events/2")[0]
	assert.Equal(t, true, call.Body["is_holiday"])
	assert.Equal(t, "2", call.Body["id"])
	assert.Equal(t, []changefeed.Change{{Resource: changefeed.Events, Action: changefeed.Updated, ID: "2"}}, got)
	assert.Equal(t, "Event updated successfully", f.surface.Toasts()[0].Message)
	assert.Len(t, f.backend.Calls(), 1, "no reload while another page is shown")
}

func TestSubmitFailureKeepsModalOpen(t *testing.T) {
	f := setup(t, auth.RoleAdmin)
	f.surface.SetPage(ui.PageAnnouncements)
	f.backend.On(http.MethodPost, "/announcements/", http.StatusBadRequest, map[string]any{"error": "Title required"})
	f.m.ShowAnnouncementForm(nil)

	err := f.m.SubmitAnnouncement(ctx, url.Values{"title": {""}, "content": {"Body"}, "priority": {"high"}, "is_pinned": {"on"}})
	require.Error(t, err)

	modals := f.surface.ActiveModals()
	require.Len(t, modals, 1)
	form := modals[0].View.(ui.AnnouncementForm)
	assert.Equal(t, "Body", form.Content)
	assert.True(t, form.IsPinned)
	assert.Equal(t, "high", form.Priority)
	assert.Equal(t, []ui.Toast{{Message: "Title required", Kind: ui.Failure}}, f.surface.Toasts())
	assert.Len(t, f.backend.Calls(), 1)
}

func TestDeclinedDeleteSendsNothing(t *testing.T) {
	f := setup(t, auth.RoleAdmin)
	list := ui.EventList{Events: []ui.EventCard{{ID: "1"}}}
	f.surface.Write(ui.EventsContainer, list)
	f.surface.Open(ui.BulkModal, ui.BulkTimetable{Rows: []ui.BulkRow{{ID: "s1"}}})

	var prompts []string
	record := ConfirmFunc(func(_ context.Context, p string) bool {
		prompts = append(prompts, p)
		return false
	})
	require.NoError(t, f.m.DeleteEvent(ctx, "1", record))
	require.NoError(t, f.m.DeleteAnnouncement(ctx, "1", record))
	require.NoError(t, f.m.DeleteTimetableSlot(ctx, "s1", record))
	require.NoError(t, f.m.DeleteBulkRow(ctx, "s1", decline))

	assert.Empty(t, f.backend.Calls())
	v, _ := f.surface.View(ui.EventsContainer)
	assert.Equal(t, list, v)
	assert.Len(t, f.surface.ActiveModals()[0].View.(ui.BulkTimetable).Rows, 1)
	assert.Equal(t, []string{
		"Are you sure you want to delete this event?",
		"Are you sure you want to delete this announcement?",
		"Are you sure you want to delete this class slot?",
	}, prompts)
}

func TestDeleteRemovesItem(t *testing.T) {
	f := setup(t, auth.RoleAdmin)
	f.surface.SetPage(ui.PageEvents)
	f.backend.On(http.MethodGet, "/calendar/events", http.StatusOK, eventsBody())
	f.backend.On(http.MethodDelete, "/calendar/events/1", http.StatusOK, map[string]any{"message": "Event deleted successfully"})
	require.NoError(t, f.m.LoadEvents(ctx))
	f.backend.Reset()

	require.NoError(t, f.m.DeleteEvent(ctx, "1", Always))

	assert.Len(t, f.backend.Calls(), 1)
	v, _ := f.surface.View(ui.EventsContainer)
	events := v.(ui.EventList).Events
	require.Len(t, events, 1)
	assert.Equal(t, "2", events[0].ID)
	assert.Equal(t, "Event deleted successfully", f.surface.Toasts()[0].Message)
}

func TestDeleteFailureLeavesView(t *testing.T) {
	f := setup(t, auth.RoleAdmin)
	list := ui.AnnouncementList{Announcements: []ui.AnnouncementCard{{ID: "9"}}}
	f.surface.Write(ui.AnnouncementsList, list)
	f.backend.On(http.MethodDelete, "/announcements/9", http.StatusForbidden, map[string]any{"error": "Forbidden"})

	require.Error(t, f.m.DeleteAnnouncement(ctx, "9", Always))
	v, _ := f.surface.View(ui.AnnouncementsList)
	assert.Equal(t, list, v)
	assert.Equal(t, []ui.Toast{{Message: "Forbidden", Kind: ui.Failure}}, f.surface.Toasts())
}

func TestLoadEventsByRole(t *testing.T) {
	tests := []struct {
		role                       auth.Role
		includePast                string
		canAdd, canEdit, canDelete bool
	}{
		{auth.RoleStudent, "false", false, false, false},
		{auth.RoleFaculty, "false", true, true, false},
		{auth.RoleAdmin, "true", true, true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			f := setup(t, tt.role)
			f.backend.On(http.MethodGet, "/calendar/events", http.StatusOK, eventsBody())
			require.NoError(t, f.m.LoadEvents(ctx))

			q, _ := url.ParseQuery(f.backend.Calls()[0].Query)
			assert.Equal(t, tt.includePast, q.Get("include_past"))

			v, _ := f.surface.View(ui.EventsContainer)
			list := v.(ui.EventList)
			assert.Equal(t, tt.canAdd, list.CanAdd)
			require.Len(t, list.Events, 2)
			for _, e := range list.Events {
				assert.Equal(t, tt.canEdit, e.CanEdit)
				assert.Equal(t, tt.canDelete, e.CanDelete)
			}
			assert.True(t, list.Events[0].Past)
			assert.False(t, list.Events[1].Past)
			assert.Equal(t, "2026-05-01 - 2026-05-02", list.Events[1].Dates)
			assert.True(t, list.Events[1].Holiday)
		})
	}
}

func TestLoadFailureRendersError(t *testing.T) {
	f := setup(t, auth.RoleAdmin)
	f.backend.On(http.MethodGet, "/calendar/events", http.StatusInternalServerError, map[string]any{"error": "db down"})
	f.backend.On(http.MethodGet, "/announcements/", http.StatusInternalServerError, map[string]any{})

	assert.Error(t, f.m.LoadEvents(ctx))
	assert.Error(t, f.m.LoadAnnouncements(ctx))

	v, _ := f.surface.View(ui.EventsContainer)
	assert.Equal(t, ui.ErrorState{Message: "Failed to load events: db down"}, v)
	v, _ = f.surface.View(ui.AnnouncementsList)
	assert.Equal(t, ui.ErrorState{Message: "Failed to load announcements: Request failed"}, v)
}

func TestLoadAnnouncements(t *testing.T) {
	f := setup(t, auth.RoleFaculty)
	f.backend.On(http.MethodGet, "/announcements/", http.StatusOK, map[string]any{"announcements": []any{
		map[string]any{"id": 1, "title": "Exams", "content": "**Bring** ID", "is_pinned": false, "published_at": "2026-02-01T09:00:00"},
		map[string]any{"id": 2, "title": "Pinned", "content": "x", "is_pinned": true, "priority": "urgent", "created_by_name": "Dean"},
	}})
	require.NoError(t, f.m.LoadAnnouncements(ctx))

	v, _ := f.surface.View(ui.AnnouncementsList)
	list := v.(ui.AnnouncementList)
	require.Len(t, list.Announcements, 2)
	first, second := list.Announcements[0], list.Announcements[1]
	assert.Equal(t, "Exams", first.Title, "server order is kept")
	assert.Equal(t, "normal", first.Priority)
	assert.Equal(t, "Admin", first.Author)
	assert.Equal(t, "Feb 1, 2026", first.Date)
	assert.Contains(t, string(first.Content), "<strong>Bring</strong>")
	assert.True(t, first.CanEdit)
	assert.False(t, first.CanDelete)
	assert.True(t, second.Pinned)
	assert.Equal(t, "Dean", second.Author)
}

func TestEditFailures(t *testing.T) {
	f := setup(t, auth.RoleAdmin)
	f.backend.On(http.MethodGet, "/calendar/timetable", http.StatusInternalServerError, map[string]any{})

	assert.Error(t, f.m.EditEvent(ctx, "1"))
	assert.Error(t, f.m.EditAnnouncement(ctx, "1"))
	assert.Error(t, f.m.EditTimetableSlot(ctx, "1"))

	var msgs []string
	for _, toast := range f.surface.Toasts() {
		msgs = append(msgs, toast.Message)
	}
	assert.Equal(t, []string{"Failed to load event", "Failed to load announcement", "Failed to load slot"}, msgs)
	assert.Empty(t, f.surface.ActiveModals())
}

func TestEditEventOpensForm(t *testing.T) {
	f := setup(t, auth.RoleFaculty)
	f.backend.On(http.MethodGet, "/calendar/events/2", http.StatusOK, map[string]any{"event": map[string]any{
		"id": 2, "title": "Founders Day", "event_type": "cultural", "is_holiday": true, "start_date": "2026-05-01",
	}})
	require.NoError(t, f.m.EditEvent(ctx, "2"))

	form := f.surface.ActiveModals()[0].View.(ui.EventForm)
	assert.Equal(t, "2", form.ID)
	assert.Equal(t, "Edit Event", form.Heading())
	assert.True(t, form.IsHoliday)
	for _, o := range form.EventTypes {
		assert.Equal(t, o.Value == "cultural", o.Selected)
	}
}

func slotsBody() map[string]any {
	return map[string]any{"timetable": []any{
		map[string]any{"id": "s1", "course_id": "c1", "course_code": "CS101", "course_name": "Intro", "day_of_week": 0, "start_time": "09:00", "end_time": "10:30", "slot_type": "lab"},
		map[string]any{"id": "s2", "course_id": "c2", "course_code": "MA201", "course_name": "Calculus", "day_of_week": 2, "start_time": "11:00", "end_time": "12:00", "slot_type": "lecture"},
	}}
}

func TestTimetableSlotForm(t *testing.T) {
	f := setup(t, auth.RoleFaculty)
	f.backend.On(http.MethodGet, "/calendar/timetable", http.StatusOK, slotsBody())
	f.backend.On(http.MethodGet, "/courses/", http.StatusOK, map[string]any{"courses": []any{
		map[string]any{"id": "c1", "code": "CS101", "name": "Intro"},
		map[string]any{"id": "c2", "code": "MA201", "name": "Calculus"},
	}})

	require.NoError(t, f.m.EditTimetableSlot(ctx, "s1"))
	form := f.surface.ActiveModals()[0].View.(ui.TimetableForm)
	assert.Equal(t, "s1", form.ID)
	assert.Equal(t, "Edit Class Slot", form.Heading())
	assert.Equal(t, "lab", form.SlotType)
	require.Len(t, form.Courses, 3)
	assert.True(t, form.Courses[1].Selected)
	assert.Equal(t, "CS101 - Intro", form.Courses[1].Label)

	f.surface.CloseAll()
	require.NoError(t, f.m.ShowTimetableForm(ctx, nil, &ui.SlotDefaults{DayOfWeek: 3}))
	form = f.surface.ActiveModals()[0].View.(ui.TimetableForm)
	assert.Equal(t, "Create New Class Slot", form.Heading())
	assert.Equal(t, 3, form.DayOfWeek)
	assert.Equal(t, "09:00", form.StartTime)
	assert.Equal(t, "10:00", form.EndTime)
	assert.True(t, form.Days[3].Selected)
	assert.True(t, form.Courses[0].Selected)

	assert.Len(t, f.backend.CallsTo(http.MethodGet, "/courses/"), 1, "courses are loaded once")
}

func TestSubmitTimetableSlot(t *testing.T) {
	f := setup(t, auth.RoleAdmin)
	f.surface.SetPage(ui.PageSchedule)
	f.backend.On(http.MethodPost, "/calendar/timetable", http.StatusCreated, map[string]any{"slot": map[string]any{"id": "s9"}})
	f.backend.On(http.MethodGet, "/calendar/timetable", http.StatusOK, slotsBody())

	var got []changefeed.Change
	f.feed.Subscribe(changefeed.Timetable, func(_ context.Context, c changefeed.Change) { got = append(got, c) })

	err := f.m.SubmitTimetableSlot(ctx, url.Values{
		"course_id": {"c1"}, "day_of_week": {"2"}, "start_time": {"09:00"}, "end_time": {"10:00"}, "slot_type": {"lecture"},
	})
	require.NoError(t, err)

	call := f.backend.CallsTo(http.MethodPost, "/calendar/timetable")[0]
	assert.Equal(t, float64(2), call.Body["day_of_week"])
	assert.Equal(t, []changefeed.Change{{Resource: changefeed.Timetable, Action: changefeed.Created, ID: "s9"}}, got)
	assert.Equal(t, "Timetable slot created", f.surface.Toasts()[0].Message)

	v, _ := f.surface.View(ui.ScheduleContainer)
	days := v.(ui.TimetableDays)
	assert.Equal(t, 2, days.Count)
	assert.Len(t, days.Days[0].Slots, 1)
}

func TestBulkEditor(t *testing.T) {
	f := setup(t, auth.RoleAdmin)
	f.backend.On(http.MethodGet, "/calendar/timetable", http.StatusOK, slotsBody())
	f.backend.On(http.MethodPut, "/calendar/timetable/s1", http.StatusOK, map[string]any{"slot": map[string]any{"id": "s1"}})
	f.backend.On(http.MethodDelete, "/calendar/timetable/s2", http.StatusOK, map[string]any{})

	require.NoError(t, f.m.ShowBulkTimetable(ctx))
	bulk := f.surface.ActiveModals()[0].View.(ui.BulkTimetable)
	require.Len(t, bulk.Rows, 2)
	assert.Equal(t, "Monday", bulk.Rows[0].Day)

	require.NoError(t, f.m.SaveBulkRow(ctx, "s1", url.Values{
		"start_time": {"08:00"}, "end_time": {"09:30"}, "room": {"B2"}, "slot_type": {"lab"}, "course_id": {"ignored"},
	}))
	put := f.backend.CallsTo(http.MethodPut, "/calendar/timetable/s1")[0]
	assert.Equal(t, map[string]any{"start_time": "08:00", "end_time": "09:30", "room": "B2", "slot_type": "lab"}, put.Body)

	require.NoError(t, f.m.DeleteBulkRow(ctx, "s2", Always))
	bulk = f.surface.ActiveModals()[0].View.(ui.BulkTimetable)
	require.Len(t, bulk.Rows, 1)
	assert.Equal(t, "s1", bulk.Rows[0].ID)

	var msgs []string
	for _, toast := range f.surface.Toasts() {
		msgs = append(msgs, toast.Message)
	}
	assert.Equal(t, []string{"Slot updated", "Slot deleted"}, msgs)
}

func TestBulkDeleteFailureKeepsRow(t *testing.T) {
	f := setup(t, auth.RoleAdmin)
	f.surface.Open(ui.BulkModal, ui.BulkTimetable{Rows: []ui.BulkRow{{ID: "s1"}}})
	f.backend.On(http.MethodDelete, "/calendar/timetable/s1", http.StatusConflict, map[string]any{"error": "in use"})

	require.Error(t, f.m.DeleteBulkRow(ctx, "s1", Always))
	assert.Len(t, f.surface.ActiveModals()[0].View.(ui.BulkTimetable).Rows, 1)
	assert.Equal(t, "in use", f.surface.Toasts()[0].Message)
}
