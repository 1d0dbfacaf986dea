package services

import (
	"context"
	"testing"
	"time"

	"github.com/careerconnect/client/domain"
)

type fakeStore struct {
	authenticated bool
	revalidations int
	err           error
}

func (f *fakeStore) IsAuthenticated() bool { return f.authenticated }

func (f *fakeStore) Revalidate(ctx context.Context) error {
	f.revalidations++
	return f.err
}

type fakeHealth struct{ online bool }

func (f *fakeHealth) IsOnline() bool { return f.online }

func TestRefreshSkipsAnonymousSession(t *testing.T) {
	store := &fakeStore{authenticated: false}
	sr := NewSessionRefresher(store, &fakeHealth{online: true}, time.Minute, nil)

	sr.refresh()

	if store.revalidations != 0 {
		t.Fatalf("expected no revalidation for anonymous session, got %d", store.revalidations)
	}
}

func TestRefreshSkipsWhileOffline(t *testing.T) {
	store := &fakeStore{authenticated: true}
	sr := NewSessionRefresher(store, &fakeHealth{online: false}, time.Minute, nil)

	sr.refresh()

	if store.revalidations != 0 {
		t.Fatalf("expected no revalidation while offline, got %d", store.revalidations)
	}
}

func TestRefreshRevalidatesWhenOnline(t *testing.T) {
	store := &fakeStore{authenticated: true}
	sr := NewSessionRefresher(store, &fakeHealth{online: true}, time.Minute, nil)

	sr.refresh()

	if store.revalidations != 1 {
		t.Fatalf("expected one revalidation, got %d", store.revalidations)
	}
}

func TestRefreshToleratesUnauthorized(t *testing.T) {
	// The forced logout already ran through the transport hook; the
	// refresher only has to note it without escalating.
	store := &fakeStore{
		authenticated: true,
		err:           domain.NewError(domain.ErrCodeUnauthorized, "token expired"),
	}
	sr := NewSessionRefresher(store, &fakeHealth{online: true}, time.Minute, nil)

	sr.refresh()

	if store.revalidations != 1 {
		t.Fatalf("expected one revalidation attempt, got %d", store.revalidations)
	}
}

func TestStartStop(t *testing.T) {
	store := &fakeStore{}
	sr := NewSessionRefresher(store, nil, time.Minute, nil)

	sr.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sr.Stop(ctx)
}
