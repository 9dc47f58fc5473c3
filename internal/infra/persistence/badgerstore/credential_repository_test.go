package badgerstore

import (
	"context"
	"testing"
	"time"

	"crmdash/internal/domain/entity"
	"crmdash/internal/domain/repository"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, now func() time.Time) *credentialRepository {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewCredentialRepository(db).(*credentialRepository)
	if now != nil {
		repo.now = now
	}

	return repo
}

func validCredential(expiresAt time.Time) *entity.Credential {
	return &entity.Credential{
		AccessToken: "00Dxx0000001gPL",
		InstanceURL: "https://acme.my.salesforce.com",
		IssuedAt:    expiresAt.Add(-2 * time.Hour),
		ExpiresAt:   expiresAt,
	}
}

func TestCredentialRepository_SaveThenLoad(t *testing.T) {
	repo := newTestRepo(t, nil)
	ctx := context.Background()

	cred := validCredential(time.Now().Add(time.Hour))
	require.NoError(t, repo.Save(ctx, cred))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cred.AccessToken, loaded.AccessToken)
	assert.Equal(t, cred.InstanceURL, loaded.InstanceURL)
	assert.WithinDuration(t, cred.ExpiresAt, loaded.ExpiresAt, time.Second)
}

func TestCredentialRepository_SaveOverwritesPriorValue(t *testing.T) {
	repo := newTestRepo(t, nil)
	ctx := context.Background()

	first := validCredential(time.Now().Add(time.Hour))
	require.NoError(t, repo.Save(ctx, first))

	second := validCredential(time.Now().Add(time.Hour))
	second.AccessToken = "00Dxx0000002replacement"
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.AccessToken, loaded.AccessToken)
}

func TestCredentialRepository_ExpiredCredentialPurgedIdempotently(t *testing.T) {
	now := time.Now()
	repo := newTestRepo(t, func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, validCredential(now.Add(-time.Minute))))

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, repository.ErrCredentialNotFound)

	// A second load after the purge reports absence the same way.
	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, repository.ErrCredentialNotFound)
}

func TestCredentialRepository_CorruptEntryPurged(t *testing.T) {
	repo := newTestRepo(t, nil)
	ctx := context.Background()

	err := repo.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(credentialKey), []byte("{not-json"))
	})
	require.NoError(t, err)

	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, repository.ErrCredentialNotFound)

	// The corrupt entry was removed, not left to fail every future read.
	err = repo.db.View(func(txn *badger.Txn) error {
		_, getErr := txn.Get([]byte(credentialKey))

		return getErr
	})
	require.ErrorIs(t, err, badger.ErrKeyNotFound)
}

func TestCredentialRepository_LoadWithoutSave(t *testing.T) {
	repo := newTestRepo(t, nil)

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, repository.ErrCredentialNotFound)
}

func TestCredentialRepository_ClearIsIdempotent(t *testing.T) {
	repo := newTestRepo(t, nil)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, validCredential(time.Now().Add(time.Hour))))
	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx))

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, repository.ErrCredentialNotFound)
}
