package domain

import "time"

// RequestStatus is the mentorship request lifecycle.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// MeetingStatus is the scheduled session lifecycle.
type MeetingStatus string

const (
	MeetingPending   MeetingStatus = "pending"
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
)

// CareerAssessment is a submitted questionnaire with its computed results.
// The backend stores questionnaire/results/recommendations as serialized
// JSON blobs, so they stay opaque strings here.
type CareerAssessment struct {
	ID              int       `json:"id"`
	StudentID       int       `json:"student_id"`
	AssessmentID    string    `json:"assessment_id"`
	Questionnaire   string    `json:"questionnaire"`
	Results         string    `json:"results"`
	Recommendations string    `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProgressTracker records a student's goals and milestones plus any mentor
// feedback attached to them.
type ProgressTracker struct {
	ID             int       `json:"id"`
	StudentID      int       `json:"student_id"`
	TrackerID      string    `json:"tracker_id"`
	Goals          string    `json:"goals"`
	Milestones     string    `json:"milestones"`
	MentorFeedback string    `json:"mentor_feedback"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MentorshipRequest links a student to a mentor with a pending/approved/
// rejected status and an optional introduction message.
type MentorshipRequest struct {
	ID        int           `json:"id"`
	StudentID int           `json:"student_id"`
	MentorID  int           `json:"mentor_id"`
	Status    RequestStatus `json:"status"`
	Message   string        `json:"message,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Resource is a shared learning material uploaded by a mentor.
type Resource struct {
	ID          int       `json:"id"`
	ResourceID  string    `json:"resource_id"`
	MentorID    int       `json:"mentor_id"`
	Title       string    `json:"title"`
	FileType    string    `json:"file_type,omitempty"`
	Description string    `json:"description,omitempty"`
	FileURL     string    `json:"file_url,omitempty"`
	UploadDate  time.Time `json:"upload_date"`
}

// Message is a direct message between a student and a mentor. The list
// endpoint enriches each entry with the participant display names.
type Message struct {
	ID           int       `json:"id"`
	MessageID    string    `json:"message_id"`
	SenderID     int       `json:"sender_id"`
	ReceiverID   int       `json:"receiver_id"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
	Read         bool      `json:"read"`
	SenderName   string    `json:"sender_name,omitempty"`
	ReceiverName string    `json:"receiver_name,omitempty"`
}

// Meeting is a scheduled mentorship session between a student and a mentor.
// List and report endpoints enrich each entry with participant names.
type Meeting struct {
	ID          int           `json:"id"`
	SessionID   string        `json:"session_id"`
	StudentID   int           `json:"student_id"`
	MentorID    int           `json:"mentor_id"`
	DateTime    time.Time     `json:"date_time"`
	Status      MeetingStatus `json:"status"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	StudentName string        `json:"student_name,omitempty"`
	MentorName  string        `json:"mentor_name,omitempty"`
}

// MentorListing is a search/discovery result: the mentor profile joined with
// its public user record.
type MentorListing struct {
	Profile
	User User `json:"user"`
}

// DashboardStats is the admin console counters block.
type DashboardStats struct {
	TotalUsers        int `json:"total_users"`
	TotalStudents     int `json:"total_students"`
	TotalMentors      int `json:"total_mentors"`
	VerifiedMentors   int `json:"verified_mentors"`
	PendingMentors    int `json:"pending_mentors"`
	TotalSessions     int `json:"total_sessions"`
	CompletedSessions int `json:"completed_sessions"`
	TotalMessages     int `json:"total_messages"`
	PendingRequests   int `json:"pending_requests"`
}
