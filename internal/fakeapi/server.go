// Package fakeapi is an in-memory stand-in for the CareerConnect backend,
// used by integration tests. It speaks the same REST contract the real
// backend exposes: JSON bodies, bearer tokens, and {"error": "..."} error
// payloads.
package fakeapi

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/careerconnect/client/domain"
)

type account struct {
	user     domain.User
	password string
	profile  *domain.Profile
}

// Server holds all backend state in memory behind one mutex.
type Server struct {
	mu          sync.Mutex
	secret      string
	nextID      int
	accounts    map[int]*account
	requests    map[int]*domain.MentorshipRequest
	messages    map[int]*domain.Message
	meetings    map[int]*domain.Meeting
	resources   []domain.Resource
	assessments []domain.CareerAssessment
	trackers    map[int]*domain.ProgressTracker

	ln  net.Listener
	srv *fasthttp.Server
}

func New() *Server {
	return &Server{
		secret:   uuid.NewString(),
		accounts: map[int]*account{},
		requests: map[int]*domain.MentorshipRequest{},
		messages: map[int]*domain.Message{},
		meetings: map[int]*domain.Meeting{},
		trackers: map[int]*domain.ProgressTracker{},
	}
}

// Start binds a random loopback port and serves until Close.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	s.ln = ln
	s.srv = &fasthttp.Server{Handler: s.router().Handler}
	go s.srv.Serve(ln) //nolint:errcheck
	return nil
}

// BaseURL returns the /api base the client should point at.
func (s *Server) BaseURL() string {
	return "http://" + s.ln.Addr().String() + "/api"
}

func (s *Server) Close() error {
	return s.srv.Shutdown()
}

// RevokeAll invalidates every issued token by rotating the signing secret.
// Subsequent authenticated requests fail with 401.
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secret = uuid.NewString()
}

// Seed registers an account directly, bypassing the HTTP surface. Students
// and mentors get an extension profile; mentors start pending unless
// seeded through SeedMentor with a verified status.
func (s *Server) Seed(name, email, password string, role domain.Role) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.createAccount(name, email, password, role, nil)
	return &acct.user
}

// SeedMentor registers a mentor with the given discovery fields and
// verification status.
func (s *Server) SeedMentor(name, email, password, industry, expertise string, status domain.VerificationStatus) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.createAccount(name, email, password, domain.RoleMentor, nil)
	acct.profile.Industry = industry
	acct.profile.Expertise = expertise
	acct.profile.VerificationStatus = status
	return &acct.user
}

func (s *Server) createAccount(name, email, password string, role domain.Role, profile *domain.Profile) *account {
	s.nextID++
	id := s.nextID
	acct := &account{
		user: domain.User{
			ID:        id,
			UserID:    uuid.NewString(),
			Name:      name,
			Email:     email,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		},
		password: password,
	}
	switch role {
	case domain.RoleStudent, domain.RoleMentor:
		if profile == nil {
			profile = &domain.Profile{}
		}
		profile.ID = id
		profile.UserID = id
		if role == domain.RoleMentor && profile.VerificationStatus == "" {
			profile.VerificationStatus = domain.VerificationPending
		}
		acct.profile = profile
	}
	s.accounts[id] = acct
	return acct
}

func (s *Server) findByEmail(email string) *account {
	for _, acct := range s.accounts {
		if acct.user.Email == email {
			return acct
		}
	}
	return nil
}

func (s *Server) issueToken(userID int) string {
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(s.secret))
	return signed
}

// authenticate resolves the bearer token on the request to an account,
// or nil when missing/invalid.
func (s *Server) authenticate(ctx *fasthttp.RequestCtx) *account {
	header := string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization))
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	s.mu.Lock()
	secret := s.secret
	s.mu.Unlock()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	sub, _ := claims["sub"].(string)
	var id int
	if _, err := fmt.Sscanf(sub, "%d", &id); err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id]
}

// requireAuth wraps a handler with bearer authentication and stashes the
// resolved account on the request.
func (s *Server) requireAuth(next func(ctx *fasthttp.RequestCtx, acct *account)) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		acct := s.authenticate(ctx)
		if acct == nil {
			respondErr(ctx, fasthttp.StatusUnauthorized, "Missing or invalid token")
			return
		}
		next(ctx, acct)
	}
}

func (s *Server) requireRole(role domain.Role, next func(ctx *fasthttp.RequestCtx, acct *account)) fasthttp.RequestHandler {
	return s.requireAuth(func(ctx *fasthttp.RequestCtx, acct *account) {
		if acct.user.Role != role {
			respondErr(ctx, fasthttp.StatusForbidden, "Unauthorized")
			return
		}
		next(ctx, acct)
	})
}
