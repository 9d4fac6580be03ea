// Package timetable shapes timetable slots into the weekly views.
package timetable

import (
	"sort"
	"strings"

	"campusintelli/internal/api"
	"campusintelli/internal/auth"
	"campusintelli/internal/ui"
)

// Weekdays is the number of grid columns (Monday to Friday).
const Weekdays = 5

type timeRange struct {
	start, end string
}

// BuildGrid buckets slots into rows keyed by (start, end) across Monday to
// Friday. Rows are ordered by start then end time; HH:MM compares correctly
// as text. Weekend slots are left out. A cell holds every slot for its
// (range, day), in input order.
func BuildGrid(slots []api.Slot, perms auth.Permissions) ui.TimetableGrid {
	cells := make(map[timeRange]*[Weekdays][]ui.SlotCard)
	var ranges []timeRange
	count := 0
	for _, s := range slots {
		if s.DayOfWeek < 0 || s.DayOfWeek >= Weekdays {
			continue
		}
		k := timeRange{s.StartTime, s.EndTime}
		row, ok := cells[k]
		if !ok {
			row = new([Weekdays][]ui.SlotCard)
			cells[k] = row
			ranges = append(ranges, k)
		}
		row[s.DayOfWeek] = append(row[s.DayOfWeek], card(s, perms))
		count++
	}

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].start != ranges[j].start {
			return ranges[i].start < ranges[j].start
		}
		return ranges[i].end < ranges[j].end
	})

	g := ui.TimetableGrid{
		Days:      ui.DayNames[:Weekdays],
		CanManage: perms.CanManage,
		Count:     count,
	}
	for _, k := range ranges {
		row := ui.GridRow{StartTime: k.start, EndTime: k.end}
		for day, cs := range cells[k] {
			c := ui.GridCell{Day: day, Slots: cs}
			if len(cs) == 0 && perms.CanManage {
				c.Add = &ui.SlotDefaults{DayOfWeek: day, StartTime: k.start, EndTime: k.end}
			}
			row.Cells = append(row.Cells, c)
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// GroupByDay lays slots out in seven day columns, each sorted by start time.
func GroupByDay(slots []api.Slot, perms auth.Permissions) ui.TimetableDays {
	out := ui.TimetableDays{CanManage: perms.CanManage}
	byDay := make([][]api.Slot, len(ui.DayNames))
	for _, s := range slots {
		if s.DayOfWeek < 0 || s.DayOfWeek >= len(ui.DayNames) {
			continue
		}
		byDay[s.DayOfWeek] = append(byDay[s.DayOfWeek], s)
		out.Count++
	}
	for day, ds := range byDay {
		sort.SliceStable(ds, func(i, j int) bool { return ds[i].StartTime < ds[j].StartTime })
		col := ui.DayColumn{Day: day, Name: ui.DayNames[day], CanAdd: perms.CanManage}
		for _, s := range ds {
			col.Slots = append(col.Slots, card(s, perms))
		}
		out.Days = append(out.Days, col)
	}
	return out
}

// BulkRows renders every slot as an inline-editable row, in backend order.
func BulkRows(slots []api.Slot) ui.BulkTimetable {
	var out ui.BulkTimetable
	for _, s := range slots {
		out.Rows = append(out.Rows, ui.BulkRow{
			ID:        string(s.ID),
			Day:       dayName(s.DayOfWeek),
			Course:    courseLabel(s),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Room:      s.Room,
			SlotType:  s.SlotType,
			SlotTypes: ui.SlotTypes(s.SlotType),
		})
	}
	return out
}

// Find returns the slot with id.
func Find(slots []api.Slot, id string) (api.Slot, bool) {
	for _, s := range slots {
		if string(s.ID) == id {
			return s, true
		}
	}
	return api.Slot{}, false
}

func card(s api.Slot, perms auth.Permissions) ui.SlotCard {
	room := s.Room
	if room == "" {
		room = "TBA"
	}
	return ui.SlotCard{
		ID:        string(s.ID),
		Time:      s.StartTime + " - " + s.EndTime,
		Course:    courseLabel(s),
		Room:      room,
		SlotType:  s.SlotType,
		CanEdit:   perms.CanManage,
		CanDelete: perms.IsAdmin,
	}
}

func courseLabel(s api.Slot) string {
	return strings.TrimSpace(s.CourseCode + " " + s.CourseName)
}

func dayName(d int) string {
	if d < 0 || d >= len(ui.DayNames) {
		return "Unknown"
	}
	return ui.DayNames[d]
}
