// Package session owns the client-side authentication state: who is logged
// in, their cached profile, and the persisted credential lifecycle. It is
// the only writer of that state; everything else reads snapshots.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/careerconnect/client/api/transport"
	"github.com/careerconnect/client/domain"
	"github.com/careerconnect/client/repository"
	"github.com/careerconnect/client/usecase/guard"
)

// AuthAPI is the slice of the auth resource group the store depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*transport.AuthResponse, error)
	Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResponse, error)
	CurrentUser(ctx context.Context) (*transport.CurrentUserResponse, error)
}

// NavigateFunc is invoked when the store forces a route change (forced
// logout on authorization failure). The view layer supplies it.
type NavigateFunc func(target string)

// Store is the process-wide session owner. All mutation goes through its
// methods; derived values (authenticated, role predicates) are computed from
// the cached user on every read.
type Store struct {
	auth   AuthAPI
	creds  repository.CredentialStore
	logger *zap.Logger

	mu       sync.RWMutex
	loading  bool
	user     *domain.User
	profile  *domain.Profile
	navigate NavigateFunc
}

// New creates a Store in the loading state; Bootstrap clears it.
func New(auth AuthAPI, creds repository.CredentialStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		auth:    auth,
		creds:   creds,
		logger:  logger,
		loading: true,
	}
}

// SetNavigator registers the navigation callback used on forced logout.
func (s *Store) SetNavigator(fn NavigateFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigate = fn
}

// Bootstrap restores a persisted session at process start. A persisted
// token+user pair is applied optimistically, then revalidated against the
// backend; any revalidation failure forces a full logout rather than
// leaving stale state. The loading flag is cleared on every path.
func (s *Store) Bootstrap(ctx context.Context) {
	defer s.setLoading(false)

	token, err := s.creds.Token()
	if err != nil || token == "" {
		return
	}
	user, err := s.creds.User()
	if err != nil {
		s.logger.Debug("no usable persisted user snapshot", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if err := s.Revalidate(ctx); err != nil {
		s.logger.Warn("session revalidation failed, logging out", zap.Error(err))
		s.Logout()
	}
}

// Revalidate refetches the authoritative current user and refreshes both
// the in-memory and persisted copies.
func (s *Store) Revalidate(ctx context.Context) error {
	resp, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if resp.User == nil {
		return domain.NewError(domain.ErrCodeInternal, "empty current-user response")
	}

	if err := s.creds.SaveUser(resp.User); err != nil {
		s.logger.Warn("failed to persist refreshed user", zap.Error(err))
	}

	s.mu.Lock()
	s.user = resp.User
	s.profile = resp.Profile
	s.mu.Unlock()
	return nil
}

// Login authenticates with the backend. On success the returned token and
// user are persisted and cached. Failures come back as a domain error
// carrying the backend's message, falling back to a generic one; Login
// never panics and leaves the session untouched on failure.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.User, error) {
	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, failure(err, "login failed")
	}
	if resp.User == nil || resp.AccessToken == "" {
		return nil, domain.NewError(domain.ErrCodeInternal, "login failed")
	}

	s.adopt(resp.AccessToken, resp.User, resp.Profile)
	return resp.User, nil
}

// Register creates an account and starts a session with the returned
// credentials. The role-specific profile is not part of the response; it is
// picked up by the next revalidation.
func (s *Store) Register(ctx context.Context, req transport.RegisterRequest) (*domain.User, error) {
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, failure(err, "registration failed")
	}
	if resp.User == nil || resp.AccessToken == "" {
		return nil, domain.NewError(domain.ErrCodeInternal, "registration failed")
	}

	s.adopt(resp.AccessToken, resp.User, nil)
	return resp.User, nil
}

// Logout clears the persisted credentials and resets in-memory state. It is
// synchronous, makes no network call, and never fails.
func (s *Store) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Debug("credential clear failed", zap.Error(err))
	}
	s.mu.Lock()
	s.user = nil
	s.profile = nil
	s.mu.Unlock()
}

// UpdateProfile replaces the cached profile and reconciles the denormalized
// name/phone fields back onto the persisted and in-memory user. The
// reconciliation is best-effort: an unreadable persisted snapshot is logged
// and ignored, never surfaced to the view layer.
func (s *Store) UpdateProfile(p *domain.Profile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()

	if p == nil || (p.Name == "" && p.PhoneNumber == "") {
		return
	}

	stored, err := s.creds.User()
	if err != nil {
		s.logger.Debug("skipping user reconciliation", zap.Error(err))
		return
	}
	if p.Name != "" {
		stored.Name = p.Name
	}
	if p.PhoneNumber != "" {
		stored.PhoneNumber = p.PhoneNumber
	}
	if err := s.creds.SaveUser(stored); err != nil {
		s.logger.Debug("failed to persist reconciled user", zap.Error(err))
	}

	s.mu.Lock()
	s.user = stored
	s.mu.Unlock()
}

// UpdateUser directly replaces the cached user and/or profile. Used by
// privileged self-update flows that bypass the role-specific profile
// endpoints.
func (s *Store) UpdateUser(user *domain.User, profile *domain.Profile) {
	if user != nil {
		if err := s.creds.SaveUser(user); err != nil {
			s.logger.Debug("failed to persist updated user", zap.Error(err))
		}
		s.mu.Lock()
		s.user = user
		s.mu.Unlock()
	}
	if profile != nil {
		s.mu.Lock()
		s.profile = profile
		s.mu.Unlock()
	}
}

// HandleUnauthorized is the transport layer's authorization-failure hook.
// The first call for an authenticated session clears persisted and cached
// state and navigates to the login entry point; later calls are no-ops, so
// concurrent failing requests clear exactly once.
func (s *Store) HandleUnauthorized() {
	s.mu.Lock()
	wasAuthenticated := s.user != nil
	s.user = nil
	s.profile = nil
	nav := s.navigate
	s.mu.Unlock()

	if !wasAuthenticated {
		return
	}

	if err := s.creds.Clear(); err != nil {
		s.logger.Debug("credential clear failed", zap.Error(err))
	}
	s.logger.Info("session invalidated by backend")
	if nav != nil {
		nav(guard.TargetLogin)
	}
}

// Snapshot returns a point-in-time view of the session.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Snapshot{
		Loading: s.loading,
		User:    s.user,
		Profile: s.profile,
	}
}

func (s *Store) IsAuthenticated() bool { return s.Snapshot().Authenticated() }

func (s *Store) IsStudent() bool { return s.Snapshot().IsStudent() }

func (s *Store) IsMentor() bool { return s.Snapshot().IsMentor() }

func (s *Store) IsAdmin() bool { return s.Snapshot().IsAdmin() }

func (s *Store) adopt(token string, user *domain.User, profile *domain.Profile) {
	if err := s.creds.SaveCredentials(token, user); err != nil {
		// the session still works for this process lifetime
		s.logger.Warn("failed to persist credentials", zap.Error(err))
	}
	s.mu.Lock()
	s.user = user
	s.profile = profile
	s.mu.Unlock()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// failure normalizes a backend error into a result the view layer can show
// inline: the backend's message when present, the fallback otherwise.
func failure(err error, fallback string) error {
	var dErr *domain.Error
	if errors.As(err, &dErr) && dErr.Message != "" {
		return dErr
	}
	return domain.WrapError(domain.ErrCodeInternal, fallback, err)
}
