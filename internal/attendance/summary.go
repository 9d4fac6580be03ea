// Package attendance turns backend attendance data into display values.
package attendance

import (
	"math"
	"sort"
	"strconv"

	"campusintelli/internal/api"
	"campusintelli/internal/ui"
)

// Unavailable is shown when the summary could not be loaded.
const Unavailable = "N/A"

// Totals sums present and total records across all courses.
func Totals(s api.AttendanceSummary) (present, total int) {
	for _, st := range s {
		present += st.Present
		total += st.Total
	}
	return present, total
}

// Percentage is round(100*present/total). ok is false when total is zero.
func Percentage(present, total int) (pct int, ok bool) {
	if total <= 0 {
		return 0, false
	}
	return int(math.Round(100 * float64(present) / float64(total))), true
}

// Format renders a percentage, showing "0%" when there are no records.
func Format(present, total int) string {
	pct, _ := Percentage(present, total)
	return strconv.Itoa(pct) + "%"
}

// Display is the dashboard figure for a summary request: the overall
// percentage, or Unavailable when err is set.
func Display(s api.AttendanceSummary, err error) string {
	if err != nil {
		return Unavailable
	}
	return Format(Totals(s))
}

// Courses builds per-course rows ordered by label. names maps course id to
// a display name; unknown ids are shortened.
func Courses(s api.AttendanceSummary, names map[string]string) []ui.AttendanceCourse {
	out := make([]ui.AttendanceCourse, 0, len(s))
	for id, st := range s {
		label, ok := names[id]
		if !ok {
			label = ui.Excerpt(id, 8)
		}
		out = append(out, ui.AttendanceCourse{
			CourseID: id,
			Label:    label,
			Present:  st.Present,
			Total:    st.Total,
			Percent:  Format(st.Present, st.Total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].CourseID < out[j].CourseID
	})
	return out
}
