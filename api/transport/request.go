package transport

import "encoding/json"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the account fields plus the role-specific profile
// fields consumed at registration time. The backend ignores whatever does
// not apply to the chosen role.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        string `json:"role"`

	EducationalBackground string `json:"educational_background,omitempty"`
	CareerInterests       string `json:"career_interests,omitempty"`
	Goals                 string `json:"goals,omitempty"`

	ProfessionalTitle string `json:"professional_title,omitempty"`
	Industry          string `json:"industry,omitempty"`
	Bio               string `json:"bio,omitempty"`
	Expertise         string `json:"expertise,omitempty"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type AssessmentRequest struct {
	Questionnaire   json.RawMessage `json:"questionnaire,omitempty"`
	Results         json.RawMessage `json:"results,omitempty"`
	Recommendations json.RawMessage `json:"recommendations,omitempty"`
}

type ProgressRequest struct {
	Goals      json.RawMessage `json:"goals,omitempty"`
	Milestones json.RawMessage `json:"milestones,omitempty"`
}

type ProgressUpdateRequest struct {
	Goals          json.RawMessage `json:"goals,omitempty"`
	Milestones     json.RawMessage `json:"milestones,omitempty"`
	MentorFeedback string          `json:"mentor_feedback,omitempty"`
}

type MentorshipRequestInput struct {
	MentorID int    `json:"mentor_id"`
	Message  string `json:"message,omitempty"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type ResourceRequest struct {
	Title       string `json:"title"`
	FileType    string `json:"file_type,omitempty"`
	Description string `json:"description,omitempty"`
	FileURL     string `json:"file_url,omitempty"`
}

type MessageRequest struct {
	ReceiverID int    `json:"receiver_id"`
	Content    string `json:"content"`
}

type MeetingRequest struct {
	MentorID int    `json:"mentor_id"`
	DateTime string `json:"date_time"`
	Notes    string `json:"notes,omitempty"`
}

type MeetingUpdateRequest struct {
	Status   string `json:"status,omitempty"`
	DateTime string `json:"date_time,omitempty"`
	Notes    string `json:"notes,omitempty"`
}
