package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusintelli/internal/auth"
)

func TestWriteOverwrites(t *testing.T) {
	s := NewSurface()
	assert.Equal(t, ScreenAuth, s.Screen())

	s.Write(CoursesList, EmptyState{Message: "No courses available"})
	s.Write(CoursesList, ErrorState{Message: "Failed to load courses"})

	v, ok := s.View(CoursesList)
	require.True(t, ok)
	assert.Equal(t, ErrorState{Message: "Failed to load courses"}, v)

	_, ok = s.View("missing")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	s := NewSurface()
	s.Write(EventsContainer, EventList{CanAdd: true, Events: []EventCard{{ID: "1"}, {ID: "2"}}})
	s.Write(CoursesList, CourseList{})

	assert.True(t, s.Remove(EventsContainer, "1"))
	v, _ := s.View(EventsContainer)
	assert.Equal(t, EventList{CanAdd: true, Events: []EventCard{{ID: "2"}}}, v)

	assert.False(t, s.Remove(CoursesList, "1"))
	assert.False(t, s.Remove("missing", "1"))
}

func TestModals(t *testing.T) {
	s := NewSurface()
	s.Open(EventModal, EventForm{})
	s.Open(ConfirmModal, ConfirmPrompt{Message: "sure?"})
	s.Open(EventModal, EventForm{ID: "9"})

	m := s.ActiveModals()
	require.Len(t, m, 2)
	assert.Equal(t, EventModal, m[0].ID)
	assert.Equal(t, EventForm{ID: "9"}, m[0].View)

	s.Open(BulkModal, BulkTimetable{Rows: []BulkRow{{ID: "a"}, {ID: "b"}}})
	assert.True(t, s.RemoveFromModal(BulkModal, "a"))
	assert.False(t, s.RemoveFromModal(EventModal, "9"))
	assert.False(t, s.RemoveFromModal("nope", "9"))
	assert.Equal(t, BulkTimetable{Rows: []BulkRow{{ID: "b"}}}, s.ActiveModals()[2].View)

	s.CloseAll()
	assert.Empty(t, s.ActiveModals())
}

func TestToasts(t *testing.T) {
	s := NewSurface()
	s.Notify("Welcome back!", Success)
	s.Notify("Invalid credentials", Failure)

	assert.Len(t, s.Toasts(), 2)
	got := s.DrainToasts()
	assert.Equal(t, []Toast{{"Welcome back!", Success}, {"Invalid credentials", Failure}}, got)
	assert.Empty(t, s.Toasts())
}

func TestChromeVisible(t *testing.T) {
	tests := []struct {
		role                   auth.Role
		faculty, student, admin bool
	}{
		{auth.RoleStudent, false, true, false},
		{auth.RoleFaculty, true, false, false},
		{auth.RoleAdmin, true, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			withMap := Chrome{Role: tt.role, Visibility: auth.VisibilityFor(tt.role)}
			bare := Chrome{Role: tt.role}
			for _, c := range []Chrome{withMap, bare} {
				assert.Equal(t, tt.faculty, c.Visible("faculty-only"))
				assert.Equal(t, tt.student, c.Visible("student-only"))
				assert.Equal(t, tt.admin, c.Visible("admin-only"))
				assert.True(t, c.Visible(""))
				assert.True(t, c.Visible("card"))
			}
		})
	}
}

func TestGridWithout(t *testing.T) {
	g := TimetableGrid{
		Days:      DayNames[:5],
		CanManage: true,
		Count:     3,
		Rows: []GridRow{
			{StartTime: "09:00", EndTime: "10:30", Cells: []GridCell{
				{Day: 0, Slots: []SlotCard{{ID: "a"}}},
				{Day: 1, Add: &SlotDefaults{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30"}},
				{Day: 2, Slots: []SlotCard{{ID: "b"}}},
			}},
			{StartTime: "11:00", EndTime: "12:00", Cells: []GridCell{
				{Day: 0, Slots: []SlotCard{{ID: "c"}}},
			}},
		},
	}

	out := g.Without("c").(TimetableGrid)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, 2, out.Count)

	out = out.Without("a").(TimetableGrid)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, &SlotDefaults{DayOfWeek: 0, StartTime: "09:00", EndTime: "10:30"}, out.Rows[0].Cells[0].Add)
	assert.Equal(t, "09:00 - 10:30", out.Rows[0].Label())
}

func TestParsePage(t *testing.T) {
	p, ok := ParsePage("timetable")
	assert.True(t, ok)
	assert.Equal(t, PageTimetable, p)
	assert.Equal(t, "Timetable", p.Title())

	_, ok = ParsePage("admin-panel")
	assert.False(t, ok)
}
