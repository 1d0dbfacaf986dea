package api

import (
	"context"
	"fmt"

	"github.com/careerconnect/client/api/transport"
	"github.com/careerconnect/client/domain"
)

// Communication covers /communications: messaging and session scheduling.
type Communication struct {
	t *transport.Client
}

func NewCommunication(t *transport.Client) *Communication {
	return &Communication{t: t}
}

func (c *Communication) Messages(ctx context.Context) ([]domain.Message, error) {
	var out struct {
		Messages []domain.Message `json:"messages"`
	}
	if err := c.t.Get(ctx, "/communications/messages", nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *Communication) SendMessage(ctx context.Context, req transport.MessageRequest) (*domain.Message, error) {
	var out struct {
		Message string          `json:"message"`
		Data    *domain.Message `json:"data"`
	}
	if err := c.t.Post(ctx, "/communications/messages", req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Communication) MarkMessageRead(ctx context.Context, messageID int) error {
	path := fmt.Sprintf("/communications/messages/%d/read", messageID)
	return c.t.Put(ctx, path, nil, nil)
}

func (c *Communication) Meetings(ctx context.Context) ([]domain.Meeting, error) {
	var out struct {
		Sessions []domain.Meeting `json:"sessions"`
	}
	if err := c.t.Get(ctx, "/communications/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

func (c *Communication) ScheduleMeeting(ctx context.Context, req transport.MeetingRequest) (*domain.Meeting, error) {
	var out struct {
		Message string          `json:"message"`
		Session *domain.Meeting `json:"session"`
	}
	if err := c.t.Post(ctx, "/communications/sessions", req, &out); err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (c *Communication) UpdateMeeting(ctx context.Context, meetingID int, req transport.MeetingUpdateRequest) (*domain.Meeting, error) {
	var out struct {
		Message string          `json:"message"`
		Session *domain.Meeting `json:"session"`
	}
	path := fmt.Sprintf("/communications/sessions/%d", meetingID)
	if err := c.t.Put(ctx, path, req, &out); err != nil {
		return nil, err
	}
	return out.Session, nil
}
