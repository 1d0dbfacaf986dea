package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/careerconnect/client/api/transport"
	"github.com/careerconnect/client/domain"
)

// Mentor covers the /mentors resource group: the mentor's own profile,
// discovery, the mentorship request lifecycle, and resource sharing.
type Mentor struct {
	t *transport.Client
}

func NewMentor(t *transport.Client) *Mentor {
	return &Mentor{t: t}
}

// SearchFilter narrows mentor discovery. Zero values mean no constraint;
// only verified mentors are ever returned.
type SearchFilter struct {
	Industry  string
	Expertise string
}

func (m *Mentor) Profile(ctx context.Context) (*domain.User, *domain.Profile, error) {
	var out profileEnvelope
	if err := m.t.Get(ctx, "/mentors/profile", nil, &out); err != nil {
		return nil, nil, err
	}
	return out.User, out.Profile, nil
}

func (m *Mentor) UpdateProfile(ctx context.Context, p domain.Profile) (*domain.User, *domain.Profile, error) {
	var out profileEnvelope
	if err := m.t.Put(ctx, "/mentors/profile", p, &out); err != nil {
		return nil, nil, err
	}
	return out.User, out.Profile, nil
}

func (m *Mentor) Search(ctx context.Context, filter SearchFilter) ([]domain.MentorListing, error) {
	query := url.Values{}
	if filter.Industry != "" {
		query.Set("industry", filter.Industry)
	}
	if filter.Expertise != "" {
		query.Set("expertise", filter.Expertise)
	}
	var out struct {
		Mentors []domain.MentorListing `json:"mentors"`
	}
	if err := m.t.Get(ctx, "/mentors/search", query, &out); err != nil {
		return nil, err
	}
	return out.Mentors, nil
}

func (m *Mentor) Get(ctx context.Context, mentorID int) (*domain.MentorListing, error) {
	var out struct {
		Mentor *domain.MentorListing `json:"mentor"`
	}
	if err := m.t.Get(ctx, fmt.Sprintf("/mentors/%d", mentorID), nil, &out); err != nil {
		return nil, err
	}
	return out.Mentor, nil
}

func (m *Mentor) RequestMentorship(ctx context.Context, req transport.MentorshipRequestInput) (*domain.MentorshipRequest, error) {
	var out struct {
		Message string                    `json:"message"`
		Request *domain.MentorshipRequest `json:"request"`
	}
	if err := m.t.Post(ctx, "/mentors/request", req, &out); err != nil {
		return nil, err
	}
	return out.Request, nil
}

func (m *Mentor) Requests(ctx context.Context) ([]domain.MentorshipRequest, error) {
	var out struct {
		Requests []domain.MentorshipRequest `json:"requests"`
	}
	if err := m.t.Get(ctx, "/mentors/requests", nil, &out); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

// RespondToRequest approves or rejects a pending mentorship request.
func (m *Mentor) RespondToRequest(ctx context.Context, requestID int, status domain.RequestStatus) (*domain.MentorshipRequest, error) {
	var out struct {
		Message string                    `json:"message"`
		Request *domain.MentorshipRequest `json:"request"`
	}
	path := fmt.Sprintf("/mentors/requests/%d", requestID)
	if err := m.t.Put(ctx, path, transport.StatusUpdateRequest{Status: string(status)}, &out); err != nil {
		return nil, err
	}
	return out.Request, nil
}

func (m *Mentor) Resources(ctx context.Context) ([]domain.Resource, error) {
	var out struct {
		Resources []domain.Resource `json:"resources"`
	}
	if err := m.t.Get(ctx, "/mentors/resources", nil, &out); err != nil {
		return nil, err
	}
	return out.Resources, nil
}

func (m *Mentor) ShareResource(ctx context.Context, req transport.ResourceRequest) (*domain.Resource, error) {
	var out struct {
		Message  string           `json:"message"`
		Resource *domain.Resource `json:"resource"`
	}
	if err := m.t.Post(ctx, "/mentors/resources", req, &out); err != nil {
		return nil, err
	}
	return out.Resource, nil
}
