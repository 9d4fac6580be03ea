package ui

import "strconv"

// Option is a select entry.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Choices builds options from value/label pairs, marking selected.
func Choices(selected string, pairs ...string) []Option {
	out := make([]Option, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Option{Value: pairs[i], Label: pairs[i+1], Selected: pairs[i] == selected})
	}
	return out
}

func EventTypes(selected string) []Option {
	return Choices(selected,
		"general", "General", "academic", "Academic", "cultural", "Cultural",
		"sports", "Sports", "holiday", "Holiday")
}

func Priorities(selected string) []Option {
	if selected == "" {
		selected = "normal"
	}
	return Choices(selected, "low", "Low", "normal", "Normal", "high", "High", "urgent", "Urgent")
}

func Audiences(selected string) []Option {
	if selected == "" {
		selected = "all"
	}
	return Choices(selected, "all", "All", "students", "Students Only", "faculty", "Faculty Only")
}

func SlotTypes(selected string) []Option {
	return Choices(selected, "lecture", "Lecture", "lab", "Lab", "tutorial", "Tutorial")
}

func Categories(selected string) []Option {
	return Choices(selected, "general", "General", "academic", "Academic", "event", "Event", "urgent", "Urgent")
}

func Days(selected int) []Option {
	out := make([]Option, len(DayNames))
	for i, name := range DayNames {
		out[i] = Option{Value: strconv.Itoa(i), Label: name, Selected: i == selected}
	}
	return out
}

type EventForm struct {
	ID          string
	Title       string
	Description string
	EventType   string
	EventTypes  []Option
	IsHoliday   bool
	StartDate   string
	EndDate     string
	StartTime   string
	EndTime     string
	Location    string
}

func (f EventForm) Heading() string {
	if f.ID != "" {
		return "Edit Event"
	}
	return "Create New Event"
}

func (f EventForm) SubmitLabel() string {
	if f.ID != "" {
		return "Update Event"
	}
	return "Create Event"
}

type AnnouncementForm struct {
	ID             string
	Title          string
	Content        string
	Priority       string
	Priorities     []Option
	TargetAudience string
	Audiences      []Option
	IsPinned       bool
}

func (f AnnouncementForm) Heading() string {
	if f.ID != "" {
		return "Edit Announcement"
	}
	return "Create New Announcement"
}

func (f AnnouncementForm) SubmitLabel() string {
	if f.ID != "" {
		return "Update Announcement"
	}
	return "Create Announcement"
}

type TimetableForm struct {
	ID        string
	CourseID  string
	Courses   []Option
	DayOfWeek int
	Days      []Option
	SlotType  string
	SlotTypes []Option
	StartTime string
	EndTime   string
	Room      string
	Section   string
}

func (f TimetableForm) Heading() string {
	if f.ID != "" {
		return "Edit Class Slot"
	}
	return "Create New Class Slot"
}

func (f TimetableForm) SubmitLabel() string {
	if f.ID != "" {
		return "Update Slot"
	}
	return "Create Slot"
}

// QRGenerator lets faculty pick a course and shows the generated code.
type QRGenerator struct {
	Courses   []Option
	Image     string
	Payload   string
	ExpiresIn string
}

// QRScanner takes pasted QR data from a student.
type QRScanner struct {
	Data string
}

type BookingForm struct {
	Date      string
	StartTime string
	EndTime   string
	Purpose   string
	Checked   bool
	Rooms     []RoomCard
}

type QuickAnnouncementForm struct {
	Title      string
	Content    string
	Category   string
	Categories []Option
}

// AuthForm is the login/register screen. Tab is "login" or "register".
type AuthForm struct {
	Tab   string
	Email string
}

// ConfirmPrompt asks before a destructive action. Action is where the
// confirmation is posted.
type ConfirmPrompt struct {
	Message string
	Action  string
}
