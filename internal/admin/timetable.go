package admin

import (
	"context"
	"net/url"
	"strconv"

	"campusintelli/internal/api"
	"campusintelli/internal/changefeed"
	"campusintelli/internal/timetable"
	"campusintelli/internal/ui"
)

// LoadSchedule renders the seven-day management view of the timetable.
func (m *Manager) LoadSchedule(ctx context.Context) error {
	slots, err := m.api.Timetable(ctx, api.TimetableQuery{})
	if err != nil {
		m.surface.Write(ui.ScheduleContainer, ui.ErrorState{Message: "Failed to load timetable: " + err.Error()})
		return err
	}
	m.surface.Write(ui.ScheduleContainer, timetable.GroupByDay(slots, m.Permissions()))
	return nil
}

// ShowTimetableForm opens the slot modal. slot prefills an edit; defaults
// prefill a create from an empty grid cell or day column.
func (m *Manager) ShowTimetableForm(ctx context.Context, slot *api.Slot, defaults *ui.SlotDefaults) error {
	courses, err := m.courseList(ctx)
	if err != nil {
		m.fail(err)
		return err
	}

	f := ui.TimetableForm{SlotType: "lecture", StartTime: "09:00", EndTime: "10:00"}
	switch {
	case slot != nil:
		f = ui.TimetableForm{
			ID:        string(slot.ID),
			CourseID:  string(slot.CourseID),
			DayOfWeek: slot.DayOfWeek,
			SlotType:  slot.SlotType,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Room:      slot.Room,
			Section:   slot.Section,
		}
	case defaults != nil:
		f.DayOfWeek = defaults.DayOfWeek
		if defaults.StartTime != "" {
			f.StartTime = defaults.StartTime
		}
		if defaults.EndTime != "" {
			f.EndTime = defaults.EndTime
		}
	}
	m.fillSlotOptions(&f, courses)
	m.surface.Open(ui.TimetableModal, f)
	return nil
}

func (m *Manager) fillSlotOptions(f *ui.TimetableForm, courses []api.Course) {
	f.Courses = []ui.Option{{Value: "", Label: "Select Course", Selected: f.CourseID == ""}}
	for _, c := range courses {
		f.Courses = append(f.Courses, ui.Option{
			Value:    string(c.ID),
			Label:    c.Code + " - " + c.Name,
			Selected: string(c.ID) == f.CourseID,
		})
	}
	f.Days = ui.Days(f.DayOfWeek)
	f.SlotTypes = ui.SlotTypes(f.SlotType)
}

func (m *Manager) slotFormFrom(v url.Values) ui.TimetableForm {
	day, _ := strconv.Atoi(v.Get("day_of_week"))
	f := ui.TimetableForm{
		ID:        v.Get("id"),
		CourseID:  v.Get("course_id"),
		DayOfWeek: day,
		SlotType:  v.Get("slot_type"),
		StartTime: v.Get("start_time"),
		EndTime:   v.Get("end_time"),
		Room:      v.Get("room"),
		Section:   v.Get("section"),
	}
	m.fillSlotOptions(&f, m.courses)
	return f
}

// SubmitTimetableSlot creates or updates a slot from form values.
func (m *Manager) SubmitTimetableSlot(ctx context.Context, values url.Values) error {
	return m.saveTimetableSlot(ctx, values, FormPayload(values, slotFields))
}

// PatchTimetableSlot updates only the fields present in values.
func (m *Manager) PatchTimetableSlot(ctx context.Context, id string, values url.Values) error {
	values.Set("id", id)
	return m.saveTimetableSlot(ctx, values, PatchPayload(values, slotFields))
}

func (m *Manager) saveTimetableSlot(ctx context.Context, values url.Values, p api.Payload) error {
	id := values.Get("id")

	var (
		saved api.Slot
		err   error
	)
	if id != "" {
		saved, err = m.api.UpdateTimetableSlot(ctx, api.ID(id), p)
	} else {
		saved, err = m.api.CreateTimetableSlot(ctx, p)
	}
	if err != nil {
		m.surface.Open(ui.TimetableModal, m.slotFormFrom(values))
		m.fail(err)
		return err
	}

	action := changefeed.Created
	if id != "" {
		action = changefeed.Updated
		m.ok("Timetable slot updated")
	} else {
		m.ok("Timetable slot created")
	}
	m.surface.CloseAll()
	if saved.ID != "" {
		id = string(saved.ID)
	}
	m.publish(ctx, changefeed.Timetable, action, id)
	return nil
}

// EditTimetableSlot finds a slot in the full listing and opens it in the form.
func (m *Manager) EditTimetableSlot(ctx context.Context, id string) error {
	slots, err := m.api.Timetable(ctx, api.TimetableQuery{})
	if err != nil {
		m.surface.Notify("Failed to load slot", ui.Failure)
		return err
	}
	s, ok := timetable.Find(slots, id)
	if !ok {
		return nil
	}
	return m.ShowTimetableForm(ctx, &s, nil)
}

// DeleteTimetableSlot removes a slot once confirmed.
func (m *Manager) DeleteTimetableSlot(ctx context.Context, id string, c Confirmer) error {
	if !c.Confirm(ctx, "Are you sure you want to delete this class slot?") {
		return nil
	}
	if err := m.api.DeleteTimetableSlot(ctx, api.ID(id)); err != nil {
		m.fail(err)
		return err
	}
	m.ok("Class slot deleted")
	m.pruneSlot(ctx, id)
	return nil
}

// ShowBulkTimetable opens the inline editor with every slot.
func (m *Manager) ShowBulkTimetable(ctx context.Context) error {
	slots, err := m.api.Timetable(ctx, api.TimetableQuery{})
	if err != nil {
		m.fail(err)
		return err
	}
	m.surface.Open(ui.BulkModal, timetable.BulkRows(slots))
	return nil
}

// SaveBulkRow updates only the times, room and type of one slot.
func (m *Manager) SaveBulkRow(ctx context.Context, id string, values url.Values) error {
	p := api.Payload{
		"start_time": values.Get("start_time"),
		"end_time":   values.Get("end_time"),
		"room":       values.Get("room"),
		"slot_type":  values.Get("slot_type"),
	}
	if _, err := m.api.UpdateTimetableSlot(ctx, api.ID(id), p); err != nil {
		m.fail(err)
		return err
	}
	m.ok("Slot updated")
	m.publish(ctx, changefeed.Timetable, changefeed.Updated, id)
	return nil
}

// DeleteBulkRow deletes one slot and drops its row once the backend agrees.
func (m *Manager) DeleteBulkRow(ctx context.Context, id string, c Confirmer) error {
	if !c.Confirm(ctx, "Delete this slot?") {
		return nil
	}
	if err := m.api.DeleteTimetableSlot(ctx, api.ID(id)); err != nil {
		m.fail(err)
		return err
	}
	m.surface.RemoveFromModal(ui.BulkModal, id)
	m.ok("Slot deleted")
	m.pruneSlot(ctx, id)
	return nil
}

func (m *Manager) pruneSlot(ctx context.Context, id string) {
	m.surface.Remove(ui.TimetableContainer, id)
	m.surface.Remove(ui.ScheduleContainer, id)
	m.publish(ctx, changefeed.Timetable, changefeed.Deleted, id)
}
