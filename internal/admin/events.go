package admin

import (
	"context"
	"net/url"
	"time"

	"campusintelli/internal/api"
	"campusintelli/internal/changefeed"
	"campusintelli/internal/ui"
)

// LoadEvents renders the event list. Admins also see past events.
func (m *Manager) LoadEvents(ctx context.Context) error {
	perms := m.Permissions()
	includePast := perms.IsAdmin
	events, err := m.api.Events(ctx, api.EventQuery{IncludePast: &includePast})
	if err != nil {
		m.surface.Write(ui.EventsContainer, ui.ErrorState{Message: "Failed to load events: " + err.Error()})
		return err
	}

	now := m.now()
	list := ui.EventList{CanAdd: perms.CanManage}
	for _, e := range events {
		list.Events = append(list.Events, ui.EventCard{
			ID:          string(e.ID),
			Title:       e.Title,
			Description: e.Description,
			EventType:   e.EventType,
			Holiday:     e.IsHoliday,
			Past:        isPast(e, now),
			Dates:       eventDates(e),
			Location:    e.Location,
			CanEdit:     perms.CanManage,
			CanDelete:   perms.IsAdmin,
		})
	}
	m.surface.Write(ui.EventsContainer, list)
	return nil
}

func isPast(e api.Event, now time.Time) bool {
	ref := e.EndDate
	if ref == "" {
		ref = e.StartDate
	}
	t, ok := ui.ParseDate(ref)
	return ok && t.Before(now)
}

func eventDates(e api.Event) string {
	if e.EndDate != "" && e.EndDate != e.StartDate {
		return e.StartDate + " - " + e.EndDate
	}
	return e.StartDate
}

// ShowEventForm opens the event modal, prefilled when e is set.
func (m *Manager) ShowEventForm(e *api.Event) {
	f := ui.EventForm{EventType: "general"}
	if e != nil {
		f = ui.EventForm{
			ID:          string(e.ID),
			Title:       e.Title,
			Description: e.Description,
			EventType:   e.EventType,
			IsHoliday:   e.IsHoliday,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			Location:    e.Location,
		}
	}
	f.EventTypes = ui.EventTypes(f.EventType)
	m.surface.Open(ui.EventModal, f)
}

func eventFormFrom(v url.Values) ui.EventForm {
	_, holiday := v["is_holiday"]
	return ui.EventForm{
		ID:          v.Get("id"),
		Title:       v.Get("title"),
		Description: v.Get("description"),
		EventType:   v.Get("event_type"),
		EventTypes:  ui.EventTypes(v.Get("event_type")),
		IsHoliday:   holiday,
		StartDate:   v.Get("start_date"),
		EndDate:     v.Get("end_date"),
		StartTime:   v.Get("start_time"),
		EndTime:     v.Get("end_time"),
		Location:    v.Get("location"),
	}
}

// SubmitEvent creates or updates an event from form values. On failure the
// form stays open with what was submitted.
func (m *Manager) SubmitEvent(ctx context.Context, values url.Values) error {
	return m.saveEvent(ctx, values, FormPayload(values, eventFields))
}

// PatchEvent updates only the fields present in values.
func (m *Manager) PatchEvent(ctx context.Context, id string, values url.Values) error {
	values.Set("id", id)
	return m.saveEvent(ctx, values, PatchPayload(values, eventFields))
}

func (m *Manager) saveEvent(ctx context.Context, values url.Values, p api.Payload) error {
	id := values.Get("id")

	var (
		saved api.Event
		err   error
	)
	if id != "" {
		saved, err = m.api.UpdateEvent(ctx, api.ID(id), p)
	} else {
		saved, err = m.api.CreateEvent(ctx, p)
	}
	if err != nil {
		m.surface.Open(ui.EventModal, eventFormFrom(values))
		m.fail(err)
		return err
	}

	action := changefeed.Created
	if id != "" {
		action = changefeed.Updated
		m.ok("Event updated successfully")
	} else {
		m.ok("Event created successfully")
	}
	m.surface.CloseAll()
	if saved.ID != "" {
		id = string(saved.ID)
	}
	m.publish(ctx, changefeed.Events, action, id)
	return nil
}

// EditEvent loads an event and opens it in the form.
func (m *Manager) EditEvent(ctx context.Context, id string) error {
	e, err := m.api.Event(ctx, api.ID(id))
	if err != nil {
		m.surface.Notify("Failed to load event", ui.Failure)
		return err
	}
	m.ShowEventForm(&e)
	return nil
}

// DeleteEvent removes an event once confirmed. A declined prompt sends nothing.
func (m *Manager) DeleteEvent(ctx context.Context, id string, c Confirmer) error {
	if !c.Confirm(ctx, "Are you sure you want to delete this event?") {
		return nil
	}
	if err := m.api.DeleteEvent(ctx, api.ID(id)); err != nil {
		m.fail(err)
		return err
	}
	m.ok("Event deleted successfully")
	m.surface.Remove(ui.EventsContainer, id)
	m.publish(ctx, changefeed.Events, changefeed.Deleted, id)
	return nil
}
