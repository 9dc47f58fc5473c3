// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"crmdash/internal/domain/entity"
)

// MutationKind selects which write operation a mutation performs.
type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// MutateInput describes one record mutation. Update and delete require ID;
// create and update require Data.
type MutateInput struct {
	Kind       MutationKind      `json:"kind" validate:"required,oneof=create update delete"`
	ObjectType entity.ObjectType `json:"objectType" validate:"required"`
	ID         string            `json:"id,omitempty" validate:"required_unless=Kind create"`
	Data       entity.Record     `json:"data,omitempty" validate:"required_unless=Kind delete"`
}

// MutateOutput reports the write result. Snapshot carries the refreshed
// aggregate views when the post-write reload succeeded; it is nil when the
// reload failed and the session was closed as a consequence.
type MutateOutput struct {
	Result   *entity.SaveResult        `json:"result"`
	Snapshot *entity.DashboardSnapshot `json:"snapshot,omitempty"`
}

// SessionUsecase drives the session state machine and fronts the active
// data client. Exactly one client is active at any time; switching backends
// always passes through Logout.
type SessionUsecase interface {
	// Resume performs the start transition. A non-empty fragment is the
	// OAuth callback case; an empty fragment falls back to the stored
	// credential, then to forced synthetic mode, then to unauthenticated.
	// A malformed fragment is recovered as "no credential", never an error.
	Resume(ctx context.Context, fragment string) (*entity.SessionState, error)

	// Current returns the session state as last transitioned.
	Current() *entity.SessionState

	// LoginURL returns the identity provider authorization URL, or an
	// error when no connected app is configured.
	LoginURL() (string, error)

	// Logout clears the stored credential, discards cached views and moves
	// to the unauthenticated phase regardless of prior mode. Idempotent.
	Logout(ctx context.Context) error

	// Refresh loads the four aggregate views concurrently from the active
	// client. Any single read failing fails the whole cycle and closes the
	// session, since an authenticated client that cannot read is assumed
	// to hold a revoked or expired token. Overlapping calls coalesce onto
	// one in-flight cycle.
	Refresh(ctx context.Context) (*entity.DashboardSnapshot, error)

	// MonthlyVolume loads the per-month opportunity grouping.
	MonthlyVolume(ctx context.Context) (*entity.QueryResult, error)

	// GetRecord fetches one record from the active client.
	GetRecord(ctx context.Context, objectType entity.ObjectType, id string, fields []string) (entity.Record, error)

	// Mutate dispatches a write to the active client and reloads the
	// aggregate views on success. A failed write surfaces its error with
	// session state untouched.
	Mutate(ctx context.Context, input *MutateInput) (*MutateOutput, error)
}
