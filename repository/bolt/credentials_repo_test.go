package bolt

import (
	"errors"
	"path/filepath"
	"testing"

	bbolt "go.etcd.io/bbolt"

	"github.com/careerconnect/client/domain"
	"github.com/careerconnect/client/internal/infrastructure/boltdb"
)

func openStore(t *testing.T) *bbolt.DB {
	t.Helper()
	db, err := boltdb.Open(filepath.Join(t.TempDir(), "keystore.db"), Bucket)
	if err != nil {
		t.Fatalf("open keystore: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCredentialRoundTrip(t *testing.T) {
	store := NewCredentialStore(openStore(t))

	user := &domain.User{
		ID:     7,
		UserID: "abc-123",
		Name:   "Ada Student",
		Email:  "ada@example.com",
		Role:   domain.RoleStudent,
	}
	if err := store.SaveCredentials("token-1", user); err != nil {
		t.Fatalf("save credentials: %v", err)
	}

	token, err := store.Token()
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	if token != "token-1" {
		t.Fatalf("expected token-1, got %q", token)
	}

	got, err := store.User()
	if err != nil {
		t.Fatalf("read user: %v", err)
	}
	if got.ID != user.ID || got.Email != user.Email || got.Role != user.Role {
		t.Fatalf("user mismatch: %+v", got)
	}
}

func TestMissingCredentials(t *testing.T) {
	store := NewCredentialStore(openStore(t))

	token, err := store.Token()
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}

	if _, err := store.User(); !errors.Is(err, domain.ErrCredentialsMissing) {
		t.Fatalf("expected ErrCredentialsMissing, got %v", err)
	}
}

func TestSaveUserKeepsToken(t *testing.T) {
	store := NewCredentialStore(openStore(t))

	if err := store.SaveCredentials("token-1", &domain.User{ID: 1, Name: "Before"}); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
	if err := store.SaveUser(&domain.User{ID: 1, Name: "After"}); err != nil {
		t.Fatalf("save user: %v", err)
	}

	token, err := store.Token()
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	if token != "token-1" {
		t.Fatalf("token lost on user update, got %q", token)
	}
	user, err := store.User()
	if err != nil {
		t.Fatalf("read user: %v", err)
	}
	if user.Name != "After" {
		t.Fatalf("expected updated name, got %q", user.Name)
	}
}

func TestCorruptUserSnapshot(t *testing.T) {
	db := openStore(t)
	store := NewCredentialStore(db)

	err := db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(Bucket)).Put([]byte("user"), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("write corrupt snapshot: %v", err)
	}

	_, err = store.User()
	if err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
	var dErr *domain.Error
	if !errors.As(err, &dErr) || dErr.Code != domain.ErrCodeInvalid {
		t.Fatalf("expected INVALID domain error, got %v", err)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewCredentialStore(openStore(t))

	if err := store.Clear(); err != nil {
		t.Fatalf("clear empty store: %v", err)
	}
	if err := store.SaveCredentials("token-1", &domain.User{ID: 1}); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if _, err := store.User(); !errors.Is(err, domain.ErrCredentialsMissing) {
		t.Fatalf("expected cleared store, got %v", err)
	}
}
