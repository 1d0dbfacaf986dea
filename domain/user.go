package domain

import "time"

// Role classifies a platform account. The set is closed: the backend rejects
// anything outside these three values.
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleMentor, RoleAdmin:
		return true
	}
	return false
}

// User is the identity record owned by the backend. The client only ever
// holds a cached copy, refreshed from GET /auth/me.
type User struct {
	ID          int       `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) HasRole(r Role) bool {
	return u != nil && u.Role == r
}
