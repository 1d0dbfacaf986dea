package domain

// VerificationStatus is the mentor-only review lifecycle flag set by an
// administrator. Mentors stay invisible to search until verified.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Profile is the role-specific extension record attached to a User. Which
// fields are populated depends on User.Role; admins carry no profile at all.
// Name and PhoneNumber are denormalized copies of User fields that some
// profile-update payloads carry and that the session store reconciles back
// onto the cached user.
type Profile struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`

	// student fields
	EducationalBackground string `json:"educational_background,omitempty"`
	CareerInterests       string `json:"career_interests,omitempty"`
	Goals                 string `json:"goals,omitempty"`

	// mentor fields
	ProfessionalTitle  string             `json:"professional_title,omitempty"`
	Industry           string             `json:"industry,omitempty"`
	Bio                string             `json:"bio,omitempty"`
	Expertise          string             `json:"expertise,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status,omitempty"`

	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

func (p *Profile) Verified() bool {
	return p != nil && p.VerificationStatus == VerificationVerified
}
