package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/careerconnect/client/api/transport"
	"github.com/careerconnect/client/domain"
)

// Admin covers the /admin console group: user management, mentor
// verification, reporting, and the admin's own profile.
type Admin struct {
	t *transport.Client
}

func NewAdmin(t *transport.Client) *Admin {
	return &Admin{t: t}
}

// Users lists accounts, optionally filtered by role.
func (a *Admin) Users(ctx context.Context, role domain.Role) ([]domain.User, error) {
	query := url.Values{}
	if role != "" {
		query.Set("role", string(role))
	}
	var out struct {
		Users []domain.User `json:"users"`
	}
	if err := a.t.Get(ctx, "/admin/users", query, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (a *Admin) DeleteUser(ctx context.Context, userID int) error {
	return a.t.Delete(ctx, fmt.Sprintf("/admin/users/%d", userID), nil)
}

// VerifyMentor sets a mentor's verification status to verified or rejected.
func (a *Admin) VerifyMentor(ctx context.Context, mentorID int, status domain.VerificationStatus) (*domain.Profile, error) {
	var out struct {
		Message string          `json:"message"`
		Mentor  *domain.Profile `json:"mentor"`
	}
	path := fmt.Sprintf("/admin/mentors/verify/%d", mentorID)
	if err := a.t.Put(ctx, path, transport.StatusUpdateRequest{Status: string(status)}, &out); err != nil {
		return nil, err
	}
	return out.Mentor, nil
}

func (a *Admin) PendingMentors(ctx context.Context) ([]domain.MentorListing, error) {
	var out struct {
		Mentors []domain.MentorListing `json:"mentors"`
	}
	if err := a.t.Get(ctx, "/admin/mentors/pending", nil, &out); err != nil {
		return nil, err
	}
	return out.Mentors, nil
}

func (a *Admin) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var out struct {
		Stats *domain.DashboardStats `json:"stats"`
	}
	if err := a.t.Get(ctx, "/admin/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return out.Stats, nil
}

// SessionReport returns the most recent scheduled sessions enriched with
// participant names.
func (a *Admin) SessionReport(ctx context.Context) ([]domain.Meeting, error) {
	var out struct {
		Sessions []domain.Meeting `json:"sessions"`
	}
	if err := a.t.Get(ctx, "/admin/reports/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

// AdminProfileUpdate carries the self-service fields an admin may change.
type AdminProfileUpdate struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
}

// UpdateProfile updates the admin's own user record, bypassing the
// role-specific profile endpoints (admins carry no extension profile).
func (a *Admin) UpdateProfile(ctx context.Context, req AdminProfileUpdate) (*domain.User, error) {
	var out struct {
		Message string       `json:"message"`
		User    *domain.User `json:"user"`
	}
	if err := a.t.Put(ctx, "/admin/profile", req, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}
