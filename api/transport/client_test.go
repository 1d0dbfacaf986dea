package transport_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/careerconnect/client/api/transport"
	"github.com/careerconnect/client/domain"
	"github.com/careerconnect/client/internal/fakeapi"
)

type staticTokens struct {
	mu    sync.Mutex
	token string
}

func (s *staticTokens) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *staticTokens) set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func startBackend(t *testing.T) *fakeapi.Server {
	t.Helper()
	srv := fakeapi.New()
	if err := srv.Start(); err != nil {
		t.Fatalf("start backend: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func newClient(t *testing.T, srv *fakeapi.Server, tokens transport.TokenSource) *transport.Client {
	t.Helper()
	return transport.New(transport.Options{
		BaseURL: srv.BaseURL(),
		Timeout: 5 * time.Second,
	}, tokens, nil)
}

func TestBearerTokenAttached(t *testing.T) {
	srv := startBackend(t)
	srv.Seed("Ada Student", "ada@example.com", "secret", domain.RoleStudent)

	tokens := &staticTokens{}
	client := newClient(t, srv, tokens)

	var login struct {
		AccessToken string       `json:"access_token"`
		User        *domain.User `json:"user"`
	}
	err := client.Post(context.Background(), "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "secret",
	}, &login)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	tokens.set(login.AccessToken)

	var me struct {
		User *domain.User `json:"user"`
	}
	if err := client.Get(context.Background(), "/auth/me", nil, &me); err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.User == nil || me.User.Email != "ada@example.com" {
		t.Fatalf("unexpected identity: %+v", me.User)
	}
}

func TestErrorPayloadDecoded(t *testing.T) {
	srv := startBackend(t)
	client := newClient(t, srv, &staticTokens{})

	err := client.Post(context.Background(), "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "wrong",
	}, nil)
	if err == nil {
		t.Fatal("expected login failure")
	}

	var dErr *domain.Error
	if !errors.As(err, &dErr) {
		t.Fatalf("expected a domain error, got %v", err)
	}
	if dErr.Code != domain.ErrCodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %s", dErr.Code)
	}
	if dErr.Message != "Invalid email or password" {
		t.Fatalf("expected backend message preserved, got %q", dErr.Message)
	}
}

func TestUnauthorizedCallbackFires(t *testing.T) {
	srv := startBackend(t)

	tokens := &staticTokens{token: "stale-token"}
	client := newClient(t, srv, tokens)

	var calls int
	client.OnUnauthorized(func() { calls++ })

	err := client.Get(context.Background(), "/auth/me", nil, nil)
	if err == nil {
		t.Fatal("expected 401 for a stale token")
	}
	var dErr *domain.Error
	if !errors.As(err, &dErr) || dErr.Code != domain.ErrCodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one callback, got %d", calls)
	}
}

func TestForbiddenDoesNotFireCallback(t *testing.T) {
	srv := startBackend(t)
	srv.Seed("Ada Student", "ada@example.com", "secret", domain.RoleStudent)

	tokens := &staticTokens{}
	client := newClient(t, srv, tokens)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	err := client.Post(context.Background(), "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "secret",
	}, &login)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	tokens.set(login.AccessToken)

	var calls int
	client.OnUnauthorized(func() { calls++ })

	err = client.Get(context.Background(), "/admin/dashboard/stats", nil, nil)
	if err == nil {
		t.Fatal("expected 403 for a student on an admin route")
	}
	var dErr *domain.Error
	if !errors.As(err, &dErr) || dErr.Code != domain.ErrCodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("callback must not fire on 403, got %d calls", calls)
	}
}

func TestUnreachableBackend(t *testing.T) {
	client := transport.New(transport.Options{
		BaseURL: "http://127.0.0.1:1/api",
		Timeout: 500 * time.Millisecond,
	}, nil, nil)

	err := client.Get(context.Background(), "/health", nil, nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	var dErr *domain.Error
	if !errors.As(err, &dErr) || dErr.Code != domain.ErrCodeUnavailable {
		t.Fatalf("expected UNAVAILABLE, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	srv := startBackend(t)
	client := newClient(t, srv, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := client.Get(ctx, "/health", nil, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
