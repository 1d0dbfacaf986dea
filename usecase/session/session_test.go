package session_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/careerconnect/client/api"
	"github.com/careerconnect/client/api/transport"
	"github.com/careerconnect/client/domain"
	"github.com/careerconnect/client/internal/fakeapi"
	"github.com/careerconnect/client/internal/infrastructure/boltdb"
	"github.com/careerconnect/client/repository"
	boltRepo "github.com/careerconnect/client/repository/bolt"
	"github.com/careerconnect/client/usecase/session"
)

type harness struct {
	backend *fakeapi.Server
	client  *transport.Client
	groups  api.Groups
	creds   repository.CredentialStore
	store   *session.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	backend := fakeapi.New()
	if err := backend.Start(); err != nil {
		t.Fatalf("start backend: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	db, err := boltdb.Open(filepath.Join(t.TempDir(), "keystore.db"), boltRepo.Bucket)
	if err != nil {
		t.Fatalf("open keystore: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	creds := boltRepo.NewCredentialStore(db)

	client := transport.New(transport.Options{
		BaseURL: backend.BaseURL(),
		Timeout: 5 * time.Second,
	}, creds, nil)
	groups := api.NewGroups(client)

	store := session.New(groups.Auth, creds, nil)
	client.OnUnauthorized(store.HandleUnauthorized)

	return &harness{
		backend: backend,
		client:  client,
		groups:  groups,
		creds:   creds,
		store:   store,
	}
}

func (h *harness) login(t *testing.T, email, password string) *domain.User {
	t.Helper()
	user, err := h.store.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed("Ada Student", "ada@example.com", "secret", domain.RoleStudent)

	user := h.login(t, "ada@example.com", "secret")
	if user.Name != "Ada Student" {
		t.Fatalf("unexpected user: %+v", user)
	}

	snap := h.store.Snapshot()
	if !snap.Authenticated() || !snap.IsStudent() {
		t.Fatalf("expected an authenticated student snapshot: %+v", snap)
	}
	if snap.IsMentor() || snap.IsAdmin() {
		t.Fatal("role predicates must be exclusive")
	}

	token, err := h.creds.Token()
	if err != nil || token == "" {
		t.Fatalf("expected persisted token, got %q (%v)", token, err)
	}
	stored, err := h.creds.User()
	if err != nil || stored.Email != "ada@example.com" {
		t.Fatalf("expected persisted user, got %+v (%v)", stored, err)
	}
}

func TestLoginFailureKeepsSessionUntouched(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed("Ada Student", "ada@example.com", "secret", domain.RoleStudent)

	_, err := h.store.Login(context.Background(), "ada@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login failure")
	}
	if msg := domain.ErrorMessage(err, "fallback"); msg != "Invalid email or password" {
		t.Fatalf("expected backend message, got %q", msg)
	}
	if h.store.IsAuthenticated() {
		t.Fatal("failed login must not authenticate")
	}
	if token, _ := h.creds.Token(); token != "" {
		t.Fatalf("failed login must not persist a token, got %q", token)
	}
}

func TestLoginFailureFallbackMessage(t *testing.T) {
	h := newHarness(t)
	h.backend.Close()

	_, err := h.store.Login(context.Background(), "ada@example.com", "secret")
	if err == nil {
		t.Fatal("expected failure against a closed backend")
	}
	var dErr *domain.Error
	if !errors.As(err, &dErr) {
		t.Fatalf("expected a domain error, got %v", err)
	}
	if dErr.Message == "" {
		t.Fatal("expected a presentable message")
	}
}

func TestRegisterMentorStartsSession(t *testing.T) {
	h := newHarness(t)

	user, err := h.store.Register(context.Background(), transport.RegisterRequest{
		Name:      "Mia Mentor",
		Email:     "mia@example.com",
		Password:  "secret",
		Role:      string(domain.RoleMentor),
		Industry:  "Software",
		Expertise: "Go, distributed systems",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleMentor {
		t.Fatalf("expected mentor role, got %s", user.Role)
	}

	snap := h.store.Snapshot()
	if !snap.IsMentor() {
		t.Fatal("expected mentor session")
	}
	if snap.Profile != nil {
		t.Fatal("registration response carries no profile; it arrives on revalidation")
	}

	if err := h.store.Revalidate(context.Background()); err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	snap = h.store.Snapshot()
	if snap.Profile == nil || snap.Profile.VerificationStatus != domain.VerificationPending {
		t.Fatalf("expected a pending mentor profile after revalidation: %+v", snap.Profile)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed("Ada Student", "ada@example.com", "secret", domain.RoleStudent)
	h.login(t, "ada@example.com", "secret")

	h.store.Logout()

	if h.store.IsAuthenticated() {
		t.Fatal("expected signed-out session")
	}
	if token, _ := h.creds.Token(); token != "" {
		t.Fatalf("expected cleared token, got %q", token)
	}
	if _, err := h.creds.User(); !errors.Is(err, domain.ErrCredentialsMissing) {
		t.Fatalf("expected cleared user, got %v", err)
	}
}

func TestBootstrapRestoresPersistedSession(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed("Ada Student", "ada@example.com", "secret", domain.RoleStudent)
	h.login(t, "ada@example.com", "secret")

	// A second store over the same keystore plays the next process start.
	restored := session.New(h.groups.Auth, h.creds, nil)
	if snap := restored.Snapshot(); !snap.Loading {
		t.Fatal("fresh store must start loading")
	}

	restored.Bootstrap(context.Background())

	snap := restored.Snapshot()
	if snap.Loading {
		t.Fatal("bootstrap must clear the loading flag")
	}
	if !snap.Authenticated() || snap.User.Email != "ada@example.com" {
		t.Fatalf("expected restored session, got %+v", snap.User)
	}
	if snap.Profile == nil {
		t.Fatal("revalidation should have fetched the profile")
	}
}

func TestBootstrapWithoutCredentials(t *testing.T) {
	h := newHarness(t)

	h.store.Bootstrap(context.Background())

	snap := h.store.Snapshot()
	if snap.Loading {
		t.Fatal("bootstrap must clear the loading flag")
	}
	if snap.Authenticated() {
		t.Fatal("expected anonymous session")
	}
}

func TestBootstrapRevalidationFailureLogsOut(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed("Ada Student", "ada@example.com", "secret", domain.RoleStudent)
	h.login(t, "ada@example.com", "secret")

	// Invalidate the persisted token server-side before the next start.
	h.backend.RevokeAll()

	restored := session.New(h.groups.Auth, h.creds, nil)
	restored.Bootstrap(context.Background())

	snap := restored.Snapshot()
	if snap.Loading {
		t.Fatal("bootstrap must clear the loading flag even on failure")
	}
	if snap.Authenticated() {
		t.Fatal("stale credentials must not leave an authenticated session")
	}
	if token, _ := h.creds.Token(); token != "" {
		t.Fatalf("expected revoked credentials cleared, got token %q", token)
	}
}

func TestUpdateProfileReconcilesUser(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed("Ada Student", "ada@example.com", "secret", domain.RoleStudent)
	h.login(t, "ada@example.com", "secret")

	h.store.UpdateProfile(&domain.Profile{
		Name:        "Ada Lovelace",
		PhoneNumber: "555-0100",
		Goals:       "ship compilers",
	})

	snap := h.store.Snapshot()
	if snap.User.Name != "Ada Lovelace" || snap.User.PhoneNumber != "555-0100" {
		t.Fatalf("expected reconciled user, got %+v", snap.User)
	}
	if snap.User.Email != "ada@example.com" || snap.User.Role != domain.RoleStudent {
		t.Fatalf("reconciliation must not touch email or role: %+v", snap.User)
	}
	if snap.Profile == nil || snap.Profile.Goals != "ship compilers" {
		t.Fatalf("expected replaced profile, got %+v", snap.Profile)
	}

	stored, err := h.creds.User()
	if err != nil {
		t.Fatalf("read persisted user: %v", err)
	}
	if stored.Name != "Ada Lovelace" || stored.PhoneNumber != "555-0100" {
		t.Fatalf("expected persisted reconciliation, got %+v", stored)
	}
}

func TestUpdateProfileWithoutDenormalizedFields(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed("Ada Student", "ada@example.com", "secret", domain.RoleStudent)
	h.login(t, "ada@example.com", "secret")

	h.store.UpdateProfile(&domain.Profile{Goals: "learn Go"})

	snap := h.store.Snapshot()
	if snap.User.Name != "Ada Student" {
		t.Fatalf("user must be untouched, got %+v", snap.User)
	}
	if snap.Profile == nil || snap.Profile.Goals != "learn Go" {
		t.Fatalf("expected replaced profile, got %+v", snap.Profile)
	}
}

func TestForcedLogoutOnRevokedToken(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed("Ada Student", "ada@example.com", "secret", domain.RoleStudent)
	h.login(t, "ada@example.com", "secret")

	var targets []string
	h.store.SetNavigator(func(target string) { targets = append(targets, target) })

	h.backend.RevokeAll()

	// Any authenticated call now comes back 401 and must clear the session
	// through the transport hook.
	if _, err := h.groups.Student.Assessments(context.Background()); err == nil {
		t.Fatal("expected 401 after revocation")
	}

	if h.store.IsAuthenticated() {
		t.Fatal("expected forced logout")
	}
	if token, _ := h.creds.Token(); token != "" {
		t.Fatalf("expected cleared token, got %q", token)
	}
	if len(targets) != 1 || targets[0] != "/login" {
		t.Fatalf("expected a single navigation to /login, got %v", targets)
	}

	// A second failing call must not clear or navigate again.
	if _, err := h.groups.Student.Assessments(context.Background()); err == nil {
		t.Fatal("expected 401 to keep failing")
	}
	if len(targets) != 1 {
		t.Fatalf("forced logout must run exactly once, got %v", targets)
	}
}

func TestUpdateUserPersists(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed("Root Admin", "root@example.com", "secret", domain.RoleAdmin)
	h.login(t, "root@example.com", "secret")

	updated := &domain.User{
		ID:    h.store.Snapshot().User.ID,
		Name:  "Renamed Admin",
		Email: "root@example.com",
		Role:  domain.RoleAdmin,
	}
	h.store.UpdateUser(updated, nil)

	if h.store.Snapshot().User.Name != "Renamed Admin" {
		t.Fatal("expected cached user replaced")
	}
	stored, err := h.creds.User()
	if err != nil || stored.Name != "Renamed Admin" {
		t.Fatalf("expected persisted user replaced, got %+v (%v)", stored, err)
	}
}
