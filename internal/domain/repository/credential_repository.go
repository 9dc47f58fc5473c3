// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"crmdash/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrCredentialNotFound is returned when no usable credential is stored.
// Expired and corrupt entries are purged on read and reported the same way.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository persists the single session credential under a fixed
// namespace. It is the sole owner of that entry; callers hold at most a
// transient copy of what it returns.
type CredentialRepository interface {
	// Save persists the credential, overwriting any prior value.
	Save(ctx context.Context, cred *entity.Credential) error

	// Load returns the stored credential. Expiry is checked lazily on every
	// read: an expired entry is deleted and reported as ErrCredentialNotFound,
	// as is an entry that fails structural parsing.
	Load(ctx context.Context) (*entity.Credential, error)

	// Clear removes any stored credential. It is idempotent.
	Clear(ctx context.Context) error
}
