// Package salesforce implements the live data client against the Salesforce
// REST API: SOQL reads through the generic query endpoint and record writes
// through the per-object sobjects resources.
package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"crmdash/config"
	"crmdash/internal/domain/entity"
	domainerrors "crmdash/internal/domain/errors"
	"crmdash/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultListLimit = 100
	requestTimeout   = 30 * time.Second
)

// Client implements service.CRMClient against a Salesforce tenant. It is
// unarmed until SetAuth provides an instance URL and access token; every
// operation on an unarmed client fails before any network I/O.
type Client struct {
	apiVersion string
	httpClient *http.Client
	logger     *slog.Logger

	mu          sync.RWMutex
	instanceURL string
	accessToken string
}

// NewClient is the constructor for the live client.
func NewClient(cfg *config.Config, logger *slog.Logger) service.CRMClient {
	apiVersion := "v59.0"
	if cfg.Salesforce != nil && cfg.Salesforce.APIVersion != "" {
		apiVersion = cfg.Salesforce.APIVersion
	}

	return &Client{
		apiVersion: apiVersion,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// SetAuth arms the client with the tenant instance URL and bearer token.
func (c *Client) SetAuth(instanceURL, accessToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.instanceURL = strings.TrimSuffix(instanceURL, "/")
	c.accessToken = accessToken
}

func (c *Client) auth() (instanceURL, accessToken string, armed bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.instanceURL, c.accessToken, c.instanceURL != "" && c.accessToken != ""
}

// request performs a single authenticated call. No retries: a failed call is
// reported once with its operation intent and the caller decides what to do.
func (c *Client) request(ctx context.Context, op, method, endpoint string, body any) ([]byte, error) {
	instanceURL, accessToken, armed := c.auth()
	if !armed {
		return nil, domainerrors.ErrAuthenticationRequired
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: failed to encode request body", op)
		}
		reader = bytes.NewReader(payload)
	}

	requestURL := instanceURL + "/services/data/" + c.apiVersion + endpoint

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: failed to create request", op)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.NewTransportError(op, 0, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.NewTransportError(op, resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.logger.Warn("credential rejected by remote service",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
		)

		return nil, domainerrors.ErrAuthenticationRejected.WithDetails(op)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, domainerrors.NewTransportError(op, resp.StatusCode,
			errors.Errorf("response body: %s", truncate(payload, 512)))
	}

	return payload, nil
}

// query submits a SOQL string to the generic query endpoint.
func (c *Client) query(ctx context.Context, op, soql string) (*entity.QueryResult, error) {
	endpoint := "/query/?q=" + url.QueryEscape(soql)

	payload, err := c.request(ctx, op, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var result entity.QueryResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, errors.Wrapf(err, "%s: failed to decode query result", op)
	}

	return &result, nil
}

// ListAccounts returns the most recently created accounts.
func (c *Client) ListAccounts(ctx context.Context, limit int) (*entity.QueryResult, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	return c.query(ctx, "list accounts", accountListQuery(limit))
}

// ListOpportunities returns the most recently created opportunities.
func (c *Client) ListOpportunities(ctx context.Context, limit int) (*entity.QueryResult, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	return c.query(ctx, "list opportunities", opportunityListQuery(limit))
}

// StageDistribution groups opportunities by stage, counting records and
// summing amounts server-side.
func (c *Client) StageDistribution(ctx context.Context) (*entity.QueryResult, error) {
	return c.query(ctx, "stage distribution", stageDistributionQuery())
}

// IndustryDistribution groups accounts by industry, excluding records
// without one.
func (c *Client) IndustryDistribution(ctx context.Context) (*entity.QueryResult, error) {
	return c.query(ctx, "industry distribution", industryDistributionQuery())
}

// MonthlyOpportunityVolume groups this year's opportunities by creation month.
func (c *Client) MonthlyOpportunityVolume(ctx context.Context) (*entity.QueryResult, error) {
	return c.query(ctx, "monthly opportunity volume", monthlyOpportunityQuery())
}

// GetRecord fetches a single record, optionally projecting specific fields.
func (c *Client) GetRecord(ctx context.Context, objectType entity.ObjectType, id string, fields []string) (entity.Record, error) {
	endpoint := "/sobjects/" + string(objectType) + "/" + url.PathEscape(id)
	if len(fields) > 0 {
		endpoint += "?fields=" + url.QueryEscape(strings.Join(fields, ","))
	}

	payload, err := c.request(ctx, "get record", http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var record entity.Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, errors.Wrap(err, "get record: failed to decode record")
	}

	return record, nil
}

// CreateRecord creates a record and returns the backend-assigned identifier.
func (c *Client) CreateRecord(ctx context.Context, objectType entity.ObjectType, data entity.Record) (*entity.SaveResult, error) {
	endpoint := "/sobjects/" + string(objectType)

	payload, err := c.request(ctx, "create record", http.MethodPost, endpoint, data)
	if err != nil {
		return nil, err
	}

	var result entity.SaveResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, errors.Wrap(err, "create record: failed to decode save result")
	}

	return &result, nil
}

// UpdateRecord applies a partial patch of field values to an existing record.
func (c *Client) UpdateRecord(ctx context.Context, objectType entity.ObjectType, id string, data entity.Record) error {
	endpoint := "/sobjects/" + string(objectType) + "/" + url.PathEscape(id)

	_, err := c.request(ctx, "update record", http.MethodPatch, endpoint, data)

	return err
}

// DeleteRecord removes a record by identifier.
func (c *Client) DeleteRecord(ctx context.Context, objectType entity.ObjectType, id string) error {
	endpoint := "/sobjects/" + string(objectType) + "/" + url.PathEscape(id)

	_, err := c.request(ctx, "delete record", http.MethodDelete, endpoint, nil)

	return err
}

func truncate(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}

	return string(b[:max]) + "..."
}
