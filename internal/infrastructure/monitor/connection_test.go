package monitor

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/careerconnect/client/api/transport"
	"github.com/careerconnect/client/internal/fakeapi"
	"github.com/careerconnect/client/internal/infrastructure/boltdb"
	boltRepo "github.com/careerconnect/client/repository/bolt"
)

func TestRefreshReportsHealthyBackend(t *testing.T) {
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

	client := transport.New(transport.Options{
		BaseURL: backend.BaseURL(),
		Timeout: 3 * time.Second,
	}, nil, nil)

	m := New(client, boltRepo.NewCredentialStore(db), time.Minute, nil)

	status := m.Refresh()
	if !status.Backend {
		t.Fatal("expected backend reported reachable")
	}
	if !status.Keystore {
		t.Fatal("expected keystore reported usable")
	}
	if status.LastCheck.IsZero() {
		t.Fatal("expected check timestamp set")
	}
	if !m.IsOnline() {
		t.Fatal("expected IsOnline after a healthy probe")
	}
}

func TestRefreshReportsUnreachableBackend(t *testing.T) {
	client := transport.New(transport.Options{
		BaseURL: "http://127.0.0.1:1/api",
		Timeout: 500 * time.Millisecond,
	}, nil, nil)

	m := New(client, nil, time.Minute, nil)

	status := m.Refresh()
	if status.Backend {
		t.Fatal("expected backend reported unreachable")
	}
	if status.Keystore {
		t.Fatal("expected missing keystore reported unusable")
	}
	if m.IsOnline() {
		t.Fatal("expected IsOnline false")
	}
}
