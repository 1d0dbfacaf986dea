package bolt

import (
	"encoding/json"

	boltdb "go.etcd.io/bbolt"

	"github.com/careerconnect/client/domain"
	"github.com/careerconnect/client/repository"
)

// Bucket is the BoltDB bucket holding the persisted session entries.
const Bucket = "credentials"

var (
	keyToken = []byte("token")
	keyUser  = []byte("user")
)

type credentialStore struct {
	db *boltdb.DB
}

// NewCredentialStore creates a Bolt-backed credential store. The bucket must
// already exist (boltdb.Open takes care of that).
func NewCredentialStore(db *boltdb.DB) repository.CredentialStore {
	return &credentialStore{db: db}
}

func (s *credentialStore) SaveCredentials(token string, user *domain.User) error {
	if token == "" || user == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *boltdb.Tx) error {
		b := tx.Bucket([]byte(Bucket))
		if err := b.Put(keyToken, []byte(token)); err != nil {
			return err
		}
		return b.Put(keyUser, payload)
	})
}

func (s *credentialStore) SaveUser(user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *boltdb.Tx) error {
		return tx.Bucket([]byte(Bucket)).Put(keyUser, payload)
	})
}

func (s *credentialStore) Token() (string, error) {
	var token string
	err := s.db.View(func(tx *boltdb.Tx) error {
		if raw := tx.Bucket([]byte(Bucket)).Get(keyToken); raw != nil {
			token = string(raw)
		}
		return nil
	})
	return token, err
}

func (s *credentialStore) User() (*domain.User, error) {
	var raw []byte
	err := s.db.View(func(tx *boltdb.Tx) error {
		if v := tx.Bucket([]byte(Bucket)).Get(keyUser); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, domain.ErrCredentialsMissing
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "corrupt user snapshot", err)
	}
	return &user, nil
}

func (s *credentialStore) Clear() error {
	return s.db.Update(func(tx *boltdb.Tx) error {
		b := tx.Bucket([]byte(Bucket))
		if err := b.Delete(keyToken); err != nil {
			return err
		}
		return b.Delete(keyUser)
	})
}
