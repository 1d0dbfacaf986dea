package api

import (
	"context"
	"fmt"

	"github.com/careerconnect/client/api/transport"
	"github.com/careerconnect/client/domain"
)

// Student covers the /students resource group.
type Student struct {
	t *transport.Client
}

func NewStudent(t *transport.Client) *Student {
	return &Student{t: t}
}

type profileEnvelope struct {
	Message string          `json:"message,omitempty"`
	User    *domain.User    `json:"user"`
	Profile *domain.Profile `json:"profile"`
}

func (s *Student) Profile(ctx context.Context) (*domain.User, *domain.Profile, error) {
	var out profileEnvelope
	if err := s.t.Get(ctx, "/students/profile", nil, &out); err != nil {
		return nil, nil, err
	}
	return out.User, out.Profile, nil
}

// UpdateProfile sends the changed profile fields. Name and phone number ride
// along and are applied to the user record server-side; the response carries
// both updated records.
func (s *Student) UpdateProfile(ctx context.Context, p domain.Profile) (*domain.User, *domain.Profile, error) {
	var out profileEnvelope
	if err := s.t.Put(ctx, "/students/profile", p, &out); err != nil {
		return nil, nil, err
	}
	return out.User, out.Profile, nil
}

func (s *Student) CreateAssessment(ctx context.Context, req transport.AssessmentRequest) (*domain.CareerAssessment, error) {
	var out struct {
		Message    string                   `json:"message"`
		Assessment *domain.CareerAssessment `json:"assessment"`
	}
	if err := s.t.Post(ctx, "/students/assessment", req, &out); err != nil {
		return nil, err
	}
	return out.Assessment, nil
}

func (s *Student) Assessments(ctx context.Context) ([]domain.CareerAssessment, error) {
	var out struct {
		Assessments []domain.CareerAssessment `json:"assessments"`
	}
	if err := s.t.Get(ctx, "/students/assessments", nil, &out); err != nil {
		return nil, err
	}
	return out.Assessments, nil
}

func (s *Student) Progress(ctx context.Context) ([]domain.ProgressTracker, error) {
	var out struct {
		Trackers []domain.ProgressTracker `json:"trackers"`
	}
	if err := s.t.Get(ctx, "/students/progress", nil, &out); err != nil {
		return nil, err
	}
	return out.Trackers, nil
}

func (s *Student) CreateProgress(ctx context.Context, req transport.ProgressRequest) (*domain.ProgressTracker, error) {
	var out struct {
		Message string                  `json:"message"`
		Tracker *domain.ProgressTracker `json:"tracker"`
	}
	if err := s.t.Post(ctx, "/students/progress", req, &out); err != nil {
		return nil, err
	}
	return out.Tracker, nil
}

func (s *Student) UpdateProgress(ctx context.Context, trackerID int, req transport.ProgressUpdateRequest) (*domain.ProgressTracker, error) {
	var out struct {
		Message string                  `json:"message"`
		Tracker *domain.ProgressTracker `json:"tracker"`
	}
	path := fmt.Sprintf("/students/progress/%d", trackerID)
	if err := s.t.Put(ctx, path, req, &out); err != nil {
		return nil, err
	}
	return out.Tracker, nil
}
