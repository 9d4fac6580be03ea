package api

import (
	"encoding/json"
	"fmt"
)

// ID is a backend identifier. Some collections use integers, others UUID
// strings; both decode into the same textual form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("api: invalid id %s", b)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Payload is a flat JSON object built from a form.
type Payload map[string]any

// Stats is an open-ended analytics document.
type Stats map[string]any

type User struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Token      string `json:"token,omitempty"`
}

type Registration struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

type Course struct {
	ID          ID     `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Credits     int    `json:"credits"`
	Department  string `json:"department"`
}

// CourseSession is an entry of the per-course weekly schedule.
type CourseSession struct {
	ID        ID     `json:"id"`
	CourseID  ID     `json:"course_id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	RoomName  string `json:"room_name"`
}

type Assignment struct {
	ID          ID      `json:"id"`
	CourseID    ID      `json:"course_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"`
	MaxMarks    float64 `json:"max_marks"`
	Submitted   bool    `json:"submitted"`
}

type Submission struct {
	ID           ID       `json:"id"`
	AssignmentID ID       `json:"assignment_id"`
	StudentID    ID       `json:"student_id"`
	FileName     string   `json:"file_name"`
	SubmittedAt  string   `json:"submitted_at"`
	Marks        *float64 `json:"marks"`
	Feedback     string   `json:"feedback"`
	IsLate       bool     `json:"is_late"`
}

type Grade struct {
	ID           ID      `json:"id"`
	StudentID    ID      `json:"student_id"`
	CourseID     ID      `json:"course_id"`
	AssignmentID ID      `json:"assignment_id"`
	Marks        float64 `json:"marks"`
	MaxMarks     float64 `json:"max_marks"`
	GradeLetter  string  `json:"grade_letter"`
	GradedAt     string  `json:"graded_at"`
}

type Room struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Building    string   `json:"building"`
	Floor       int      `json:"floor"`
	Capacity    int      `json:"capacity"`
	RoomType    string   `json:"room_type"`
	Equipment   []string `json:"equipment"`
	IsAvailable bool     `json:"is_available"`
}

type Booking struct {
	ID        ID     `json:"id"`
	RoomID    ID     `json:"room_id"`
	RoomName  string `json:"room_name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Purpose   string `json:"purpose"`
	Status    string `json:"status"`
}

// BookingRequest creates a booking.
type BookingRequest struct {
	RoomID    ID     `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Purpose   string `json:"purpose"`
}

// AttendanceStat is the per-course entry of the attendance summary.
type AttendanceStat struct {
	Present int `json:"present"`
	Total   int `json:"total"`
}

// AttendanceSummary maps course id to its counts.
type AttendanceSummary map[string]AttendanceStat

type AttendanceRecord struct {
	ID        ID     `json:"id"`
	CourseID  ID     `json:"course_id"`
	StudentID ID     `json:"student_id"`
	Date      string `json:"date"`
	LectureID string `json:"lecture_id"`
	IsPresent bool   `json:"is_present"`
	MarkedAt  string `json:"marked_at"`
	MarkedVia string `json:"marked_via"`
}

// QRCode is the stored attendance code.
type QRCode struct {
	ID          ID     `json:"id"`
	CourseID    ID     `json:"course_id"`
	LectureID   string `json:"lecture_id"`
	FacultyID   ID     `json:"faculty_id"`
	CodeData    string `json:"code_data"`
	GeneratedAt string `json:"generated_at"`
	ExpiresAt   string `json:"expires_at"`
	IsValid     bool   `json:"is_valid"`
}

// GeneratedQR is the generate-qr response.
type GeneratedQR struct {
	QRCode           QRCode `json:"qr_code"`
	QRImage          string `json:"qr_image"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// MarkResult is the mark-attendance response.
type MarkResult struct {
	Attendance AttendanceRecord `json:"attendance"`
	Message    string           `json:"message"`
}

type Announcement struct {
	ID             ID     `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Priority       string `json:"priority"`
	Category       string `json:"category,omitempty"`
	TargetAudience string `json:"target_audience"`
	IsPinned       bool   `json:"is_pinned"`
	AuthorName     string `json:"author_name,omitempty"`
	CreatedByName  string `json:"created_by_name,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
	PublishedAt    string `json:"published_at,omitempty"`
}

type Material struct {
	ID          ID     `json:"id"`
	CourseID    ID     `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size"`
	Category    string `json:"category"`
	UploadedAt  string `json:"uploaded_at"`
	IsVisible   bool   `json:"is_visible"`
}

type Event struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EventType   string `json:"event_type"`
	IsHoliday   bool   `json:"is_holiday"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location"`
}

// AcademicItem is an academic-calendar entry (term dates, exams, breaks).
type AcademicItem struct {
	ID           ID     `json:"id"`
	AcademicYear string `json:"academic_year"`
	Semester     string `json:"semester"`
	ItemType     string `json:"item_type"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	IsActive     bool   `json:"is_active"`
}

// Slot is one weekly timetable entry. DayOfWeek is 0 for Monday.
type Slot struct {
	ID         ID     `json:"id"`
	CourseID   ID     `json:"course_id"`
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
	DayOfWeek  int    `json:"day_of_week"`
	SlotType   string `json:"slot_type"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Room       string `json:"room"`
	Section    string `json:"section"`
}

// SubjectSchedule is one entry of the per-course schedule overview.
type SubjectSchedule struct {
	Course      Course       `json:"course"`
	Assignments []Assignment `json:"assignments"`
	Timetable   []Slot       `json:"timetable"`
}

// UserPage is a page of the admin user listing.
type UserPage struct {
	Users      []User `json:"users"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	TotalPages int    `json:"total_pages"`
}

// BulkResult reports a bulk user import.
type BulkResult struct {
	Created int    `json:"created"`
	Failed  int    `json:"failed"`
	Users   []User `json:"users"`
	Errors  []struct {
		Index int    `json:"index"`
		Error string `json:"error"`
		Email string `json:"email,omitempty"`
	} `json:"errors"`
}

// Message is the body of endpoints that only acknowledge.
type Message struct {
	Message string `json:"message"`
}
