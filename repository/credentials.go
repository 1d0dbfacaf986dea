package repository

import "github.com/careerconnect/client/domain"

// CredentialStore persists the two pieces of client state that survive a
// process restart: the opaque bearer token and a snapshot of the cached
// user. Both are written together on login/register and removed together on
// logout or authorization failure.
type CredentialStore interface {
	// SaveCredentials stores the token and user snapshot atomically.
	SaveCredentials(token string, user *domain.User) error
	// SaveUser rewrites only the user snapshot, keeping the token.
	SaveUser(user *domain.User) error
	// Token returns the persisted bearer token, or "" when absent.
	Token() (string, error)
	// User returns the persisted user snapshot. A missing snapshot yields
	// domain.ErrCredentialsMissing; a corrupt one yields a decode error.
	User() (*domain.User, error)
	// Clear removes token and user. Clearing an empty store is a no-op.
	Clear() error
}
