// Package synthetic implements the fixture-backed data client used for
// offline and demo sessions. It exposes the exact operation surface of the
// live client over an in-memory dataset, with artificial latency so calling
// code cannot distinguish backends structurally.
package synthetic

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"crmdash/config"
	"crmdash/internal/domain/entity"
	domainerrors "crmdash/internal/domain/errors"
	"crmdash/internal/domain/service"

	"github.com/google/uuid"
)

// Client implements service.CRMClient over the fixture dataset. It is
// always armed: SetAuth is accepted and ignored.
//
// Writes validate their input and report success but do not persist beyond
// the call: a created record does not appear in subsequent reads. That is a
// documented limitation of demo mode, not a defect to fix.
type Client struct {
	minDelay time.Duration
	maxDelay time.Duration
	logger   *slog.Logger
}

// NewClient is the constructor for the synthetic client.
func NewClient(cfg *config.Config, logger *slog.Logger) service.CRMClient {
	return &Client{
		minDelay: cfg.Synthetic.MinDelay,
		maxDelay: cfg.Synthetic.MaxDelay,
		logger:   logger,
	}
}

// SetAuth is a no-op; the synthetic backend needs no credential.
func (c *Client) SetAuth(instanceURL, accessToken string) {}

// delay suspends the caller for a bounded artificial latency, preserving
// the asynchronous call shape of the live client. Honors ctx cancellation.
func (c *Client) delay(ctx context.Context) error {
	span := c.maxDelay - c.minDelay
	wait := c.minDelay
	if span > 0 {
		wait += time.Duration(rand.Int64N(int64(span)))
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ListAccounts returns the fixture accounts.
func (c *Client) ListAccounts(ctx context.Context, limit int) (*entity.QueryResult, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}

	return clipped(fixtureAccounts, limit), nil
}

// ListOpportunities returns the fixture opportunities.
func (c *Client) ListOpportunities(ctx context.Context, limit int) (*entity.QueryResult, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}

	return clipped(fixtureOpportunities, limit), nil
}

// StageDistribution returns the fixed stage grouping.
func (c *Client) StageDistribution(ctx context.Context) (*entity.QueryResult, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}

	return fixtureStageDistribution.Clone(), nil
}

// IndustryDistribution returns the fixed industry grouping.
func (c *Client) IndustryDistribution(ctx context.Context) (*entity.QueryResult, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}

	return fixtureIndustryDistribution.Clone(), nil
}

// MonthlyOpportunityVolume returns the fixed monthly grouping.
func (c *Client) MonthlyOpportunityVolume(ctx context.Context) (*entity.QueryResult, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}

	return fixtureMonthlyVolume.Clone(), nil
}

// GetRecord returns the fixture record with the given identifier.
func (c *Client) GetRecord(ctx context.Context, objectType entity.ObjectType, id string, fields []string) (entity.Record, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}

	source := fixtureAccounts
	if objectType == entity.ObjectOpportunity {
		source = fixtureOpportunities
	}

	for _, rec := range source.Records {
		if rec.ID() == id {
			return project(rec.Clone(), fields), nil
		}
	}

	return nil, domainerrors.NewTransportError("get record", 404,
		domainerrors.ErrUnknownObjectType.WithDetails("no fixture record "+id))
}

// CreateRecord accepts any well-formed payload and reports success with a
// fresh identifier. The record is not added to the fixture set.
func (c *Client) CreateRecord(ctx context.Context, objectType entity.ObjectType, data entity.Record) (*entity.SaveResult, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}

	id := "demo-" + uuid.NewString()
	c.logger.Debug("synthetic create accepted, not persisted",
		slog.String("object_type", string(objectType)),
		slog.String("id", id),
	)

	return &entity.SaveResult{ID: id, Success: true}, nil
}

// UpdateRecord accepts the patch and reports success without applying it.
func (c *Client) UpdateRecord(ctx context.Context, objectType entity.ObjectType, id string, data entity.Record) error {
	return c.delay(ctx)
}

// DeleteRecord reports success without removing anything.
func (c *Client) DeleteRecord(ctx context.Context, objectType entity.ObjectType, id string) error {
	return c.delay(ctx)
}

// clipped clones the result, keeping at most limit records. A non-positive
// limit keeps everything, matching the live client's default behaviour.
func clipped(src *entity.QueryResult, limit int) *entity.QueryResult {
	out := src.Clone()
	if limit > 0 && limit < len(out.Records) {
		out.Records = out.Records[:limit]
	}

	return out
}

// project keeps only the requested fields, plus the identifier.
func project(rec entity.Record, fields []string) entity.Record {
	if len(fields) == 0 {
		return rec
	}

	out := entity.Record{"Id": rec.ID()}
	for _, f := range fields {
		if v, ok := rec[f]; ok {
			out[f] = v
		}
	}

	return out
}
