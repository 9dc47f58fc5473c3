// Package service defines the interfaces for infrastructure services used
// by the application layer.
package service

import (
	"context"

	"crmdash/internal/domain/entity"
)

// CRMClient is the single data-access contract both backends implement.
// The session controller holds values of this type only and never a
// concrete implementation, so backends are structurally indistinguishable
// to calling code.
//
// Reads return the normalized QueryResult envelope; writes return a
// SaveResult (create) or plain success (update, delete). Every operation on
// a client that has not been armed via SetAuth fails with
// ErrAuthenticationRequired before any I/O is attempted. A call makes a
// single attempt; retry policy belongs to the caller.
type CRMClient interface {
	// SetAuth arms the client with the tenant instance URL and bearer token.
	// The synthetic implementation accepts and ignores it.
	SetAuth(instanceURL, accessToken string)

	ListAccounts(ctx context.Context, limit int) (*entity.QueryResult, error)
	ListOpportunities(ctx context.Context, limit int) (*entity.QueryResult, error)

	// StageDistribution groups opportunities by stage with per-stage count
	// and summed amount. Recomputed by the backend on every call.
	StageDistribution(ctx context.Context) (*entity.QueryResult, error)

	// IndustryDistribution groups accounts by industry with per-industry
	// counts, excluding records without an industry.
	IndustryDistribution(ctx context.Context) (*entity.QueryResult, error)

	// MonthlyOpportunityVolume groups this year's opportunities by the
	// calendar month they were created in.
	MonthlyOpportunityVolume(ctx context.Context) (*entity.QueryResult, error)

	GetRecord(ctx context.Context, objectType entity.ObjectType, id string, fields []string) (entity.Record, error)
	CreateRecord(ctx context.Context, objectType entity.ObjectType, data entity.Record) (*entity.SaveResult, error)
	UpdateRecord(ctx context.Context, objectType entity.ObjectType, id string, data entity.Record) error
	DeleteRecord(ctx context.Context, objectType entity.ObjectType, id string) error
}
