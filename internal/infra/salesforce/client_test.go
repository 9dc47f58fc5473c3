package salesforce

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"crmdash/config"
	"crmdash/internal/domain/entity"
	domainerrors "crmdash/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(&config.Config{
		Salesforce: &config.SalesforceConfig{APIVersion: "v59.0"},
	}, slog.New(slog.NewTextHandler(io.Discard, nil))).(*Client)
	client.SetAuth(server.URL, "00Dxx-test-token")

	return client
}

func TestClient_UnarmedFailsBeforeIO(t *testing.T) {
	client := NewClient(&config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	// No server exists; an attempted request would fail differently.
	_, err := client.ListAccounts(ctx, 10)
	require.ErrorIs(t, err, domainerrors.ErrAuthenticationRequired)

	_, err = client.StageDistribution(ctx)
	require.ErrorIs(t, err, domainerrors.ErrAuthenticationRequired)

	err = client.DeleteRecord(ctx, entity.ObjectAccount, "001xx")
	require.ErrorIs(t, err, domainerrors.ErrAuthenticationRequired)
}

func TestClient_ListAccounts_ComposesQueryAndDecodesEnvelope(t *testing.T) {
	var gotPath, gotQuery, gotAuth string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")

		json.NewEncoder(w).Encode(entity.QueryResult{
			TotalSize: 1,
			Done:      true,
			Records:   []entity.Record{{"Id": "001xx000003DGb2AAG", "Name": "Helio Systems"}},
		})
	}))

	result, err := client.ListAccounts(context.Background(), 25)

	require.NoError(t, err)
	assert.Equal(t, "/services/data/v59.0/query/", gotPath)
	assert.Equal(t, accountListQuery(25), gotQuery)
	assert.Equal(t, "Bearer 00Dxx-test-token", gotAuth)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "001xx000003DGb2AAG", result.Records[0].ID())
}

func TestClient_WriteVerbMapping(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var calls []call

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{method: r.Method, path: r.URL.Path})

		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(entity.SaveResult{ID: "001xx000003DGb9AAG", Success: true})
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	ctx := context.Background()

	created, err := client.CreateRecord(ctx, entity.ObjectAccount, entity.Record{"Name": "Helio Systems"})
	require.NoError(t, err)
	assert.True(t, created.Success)
	assert.Equal(t, "001xx000003DGb9AAG", created.ID)

	require.NoError(t, client.UpdateRecord(ctx, entity.ObjectAccount, "001xx000003DGb9AAG", entity.Record{"Phone": "555-0100"}))
	require.NoError(t, client.DeleteRecord(ctx, entity.ObjectAccount, "001xx000003DGb9AAG"))

	require.Len(t, calls, 3)
	assert.Equal(t, call{http.MethodPost, "/services/data/v59.0/sobjects/Account"}, calls[0])
	assert.Equal(t, call{http.MethodPatch, "/services/data/v59.0/sobjects/Account/001xx000003DGb9AAG"}, calls[1])
	assert.Equal(t, call{http.MethodDelete, "/services/data/v59.0/sobjects/Account/001xx000003DGb9AAG"}, calls[2])
}

func TestClient_GetRecord_ProjectsFields(t *testing.T) {
	var gotFields string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFields = r.URL.Query().Get("fields")
		json.NewEncoder(w).Encode(entity.Record{"Id": "006xx000001X8Z1AAK", "StageName": "Prospecting"})
	}))

	record, err := client.GetRecord(context.Background(), entity.ObjectOpportunity, "006xx000001X8Z1AAK", []string{"Id", "StageName"})

	require.NoError(t, err)
	assert.Equal(t, "Id,StageName", gotFields)
	assert.Equal(t, "Prospecting", record["StageName"])
}

func TestClient_AuthRejection(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.ListOpportunities(context.Background(), 10)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTHENTICATION_REJECTED", appErr.ErrorCode())
}

func TestClient_TransportFailureCarriesIntent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.IndustryDistribution(context.Background())

	var transportErr *domainerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "industry distribution", transportErr.Op())
	assert.Equal(t, http.StatusInternalServerError, transportErr.Status())
}

func TestClient_NetworkFailureIsTransportError(t *testing.T) {
	client := NewClient(&config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil))).(*Client)
	// Armed, but nothing listens on this address.
	client.SetAuth("http://127.0.0.1:1", "token")

	_, err := client.ListAccounts(context.Background(), 10)

	var transportErr *domainerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Zero(t, transportErr.Status())
}
