package badgerstore

import (
	"context"
	"encoding/json"
	"time"

	"crmdash/internal/domain/entity"
	"crmdash/internal/domain/repository"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// credentialKey is the single namespaced key the session credential lives
// under. An absent key means logged out.
const credentialKey = "crmdash/session/credential"

// credentialRepository implements the repository.CredentialRepository
// interface on top of BadgerDB.
type credentialRepository struct {
	db  *badger.DB
	now func() time.Time
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *badger.DB) repository.CredentialRepository {
	return &credentialRepository{db: db, now: time.Now}
}

// Save persists the credential, overwriting any prior value.
func (repo *credentialRepository) Save(ctx context.Context, cred *entity.Credential) error {
	if cred == nil {
		return errors.New("cannot save a nil credential")
	}

	payload, err := json.Marshal(cred)
	if err != nil {
		return errors.Wrap(err, "failed to encode credential")
	}

	err = repo.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(credentialKey), payload)
	})
	if err != nil {
		return errors.Wrap(err, "failed to persist credential")
	}

	return nil
}

// Load returns the stored credential, purging expired or corrupt entries.
// Expiry is checked lazily here on every read rather than by a timer.
func (repo *credentialRepository) Load(ctx context.Context) (*entity.Credential, error) {
	var payload []byte

	err := repo.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(credentialKey))
		if err != nil {
			return err
		}

		payload, err = item.ValueCopy(nil)

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, repository.ErrCredentialNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read credential")
	}

	var cred entity.Credential
	if err := json.Unmarshal(payload, &cred); err != nil {
		// A corrupt entry would otherwise stick forever; purge it so the
		// next read starts clean.
		if clearErr := repo.Clear(ctx); clearErr != nil {
			return nil, errors.Wrap(clearErr, "failed to purge corrupt credential")
		}

		return nil, repository.ErrCredentialNotFound
	}

	if !cred.Valid(repo.now()) {
		if clearErr := repo.Clear(ctx); clearErr != nil {
			return nil, errors.Wrap(clearErr, "failed to purge expired credential")
		}

		return nil, repository.ErrCredentialNotFound
	}

	return &cred, nil
}

// Clear removes any stored credential. Deleting an absent key succeeds, so
// the operation is idempotent.
func (repo *credentialRepository) Clear(ctx context.Context) error {
	err := repo.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(credentialKey))
	})
	if err != nil {
		return errors.Wrap(err, "failed to clear credential")
	}

	return nil
}
