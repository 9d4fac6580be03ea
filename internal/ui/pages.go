package ui

// Page names a page of the main screen.
type Page string

const (
	PageDashboard     Page = "dashboard"
	PageCourses       Page = "courses"
	PageAssignments   Page = "assignments"
	PageAttendance    Page = "attendance"
	PageTimetable     Page = "timetable"
	PageBookings      Page = "bookings"
	PageAnnouncements Page = "announcements"
	PageEvents        Page = "events"
	PageSchedule      Page = "schedule"
	PageProfile       Page = "profile"
	PageLibrary       Page = "library"
	PageClubs         Page = "clubs"
	PageTransport     Page = "transport"
)

// Pages lists navigable pages in menu order.
var Pages = []Page{
	PageDashboard, PageCourses, PageAssignments, PageAttendance, PageTimetable,
	PageBookings, PageAnnouncements, PageEvents, PageSchedule, PageProfile,
	PageLibrary, PageClubs, PageTransport,
}

// ParsePage reports whether name is a known page.
func ParsePage(name string) (Page, bool) {
	for _, p := range Pages {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// Title is the navigation label of p.
func (p Page) Title() string {
	switch p {
	case PageDashboard:
		return "Dashboard"
	case PageCourses:
		return "Courses"
	case PageAssignments:
		return "Assignments"
	case PageAttendance:
		return "Attendance"
	case PageTimetable:
		return "Timetable"
	case PageBookings:
		return "Room Booking"
	case PageAnnouncements:
		return "Announcements"
	case PageEvents:
		return "Events"
	case PageSchedule:
		return "Schedule"
	case PageProfile:
		return "Profile"
	case PageLibrary:
		return "Library"
	case PageClubs:
		return "Clubs"
	case PageTransport:
		return "Transport"
	}
	return string(p)
}

// Class is the visibility class of the page's navigation entry, if any.
func (p Page) Class() string {
	if p == PageSchedule {
		return "faculty-only"
	}
	return ""
}

// Container is the id of the container that holds the page's main content.
func (p Page) Container() string {
	switch p {
	case PageDashboard:
		return StatCourses
	case PageCourses:
		return CoursesList
	case PageAssignments:
		return AssignmentsList
	case PageAttendance:
		return AttendanceContainer
	case PageTimetable:
		return TimetableContainer
	case PageBookings:
		return MyBookings
	case PageAnnouncements:
		return AnnouncementsList
	case PageEvents:
		return EventsContainer
	case PageSchedule:
		return ScheduleContainer
	case PageProfile:
		return ProfileContainer
	}
	return PlaceholderContainer
}

// Container ids.
const (
	StatCourses          = "stat-courses"
	StatAssignments      = "stat-assignments"
	StatAttendance       = "stat-attendance"
	StatBookings         = "stat-bookings"
	UpcomingAssignments  = "upcoming-assignments"
	RecentAnnouncements  = "recent-announcements"
	CoursesList          = "courses-list"
	AssignmentsList      = "assignments-list"
	AttendanceContainer  = "attendance-summary"
	MyBookings           = "my-bookings"
	AvailableRooms       = "available-rooms"
	AnnouncementsList    = "announcements-list"
	EventsContainer      = "events-container"
	TimetableContainer   = "timetable-container"
	ScheduleContainer    = "schedule-container"
	ProfileContainer     = "profile"
	PlaceholderContainer = "placeholder"
	AuthContainer        = "auth"
)

// Modal ids.
const (
	AppModal          = "modal"
	EventModal        = "event-modal"
	AnnouncementModal = "announcement-modal"
	TimetableModal    = "timetable-modal"
	BulkModal         = "bulk-timetable-modal"
	ConfirmModal      = "confirm-modal"
)
