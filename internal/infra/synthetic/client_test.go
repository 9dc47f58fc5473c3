package synthetic

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"crmdash/config"
	"crmdash/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFastClient(t *testing.T) *Client {
	t.Helper()

	return NewClient(&config.Config{
		Synthetic: &config.SyntheticConfig{MinDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
	}, slog.New(slog.NewTextHandler(io.Discard, nil))).(*Client)
}

func TestClient_FixtureBaseline(t *testing.T) {
	client := newFastClient(t)
	ctx := context.Background()

	accounts, err := client.ListAccounts(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, accounts.Records, 5)

	opportunities, err := client.ListOpportunities(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, opportunities.Records, 7)

	stages, err := client.StageDistribution(ctx)
	require.NoError(t, err)
	assert.Len(t, stages.Records, 7)

	industries, err := client.IndustryDistribution(ctx)
	require.NoError(t, err)
	assert.Len(t, industries.Records, 5)
}

func TestClient_ReadsReturnCopies(t *testing.T) {
	client := newFastClient(t)
	ctx := context.Background()

	first, err := client.ListAccounts(ctx, 100)
	require.NoError(t, err)

	first.Records[0]["Name"] = "mutated by caller"
	first.Records[0]["Industry"] = nil

	second, err := client.ListAccounts(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "Helio Systems", second.Records[0]["Name"])
	assert.Equal(t, "Technology", second.Records[0]["Industry"])
}

func TestClient_ListLimitClipsRecords(t *testing.T) {
	client := newFastClient(t)

	result, err := client.ListOpportunities(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, result.Records, 3)
}

func TestClient_GetRecordProjection(t *testing.T) {
	client := newFastClient(t)

	record, err := client.GetRecord(context.Background(), entity.ObjectOpportunity,
		"006SY000001p8a1YAA", []string{"StageName"})

	require.NoError(t, err)
	assert.Equal(t, "006SY000001p8a1YAA", record.ID())
	assert.Equal(t, "Prospecting", record["StageName"])
	assert.NotContains(t, record, "Amount")
}

// Demo-mode writes report success but do not round-trip into reads: a
// created record stays invisible to subsequent list calls. That behaviour
// is part of the contract, so this test documents it rather than asserting
// read-after-write consistency.
func TestClient_WritesSucceedWithoutPersisting(t *testing.T) {
	client := newFastClient(t)
	ctx := context.Background()

	created, err := client.CreateRecord(ctx, entity.ObjectAccount, entity.Record{"Name": "Ephemeral Inc."})
	require.NoError(t, err)
	assert.True(t, created.Success)
	assert.NotEmpty(t, created.ID)

	accounts, err := client.ListAccounts(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, accounts.Records, 5, "fixture set stays fixed after a create")

	require.NoError(t, client.UpdateRecord(ctx, entity.ObjectAccount, created.ID, entity.Record{"Phone": "555-0100"}))
	require.NoError(t, client.DeleteRecord(ctx, entity.ObjectAccount, created.ID))
}

func TestClient_DelayHonorsCancellation(t *testing.T) {
	client := NewClient(&config.Config{
		Synthetic: &config.SyntheticConfig{MinDelay: time.Minute, MaxDelay: time.Minute},
	}, slog.New(slog.NewTextHandler(io.Discard, nil))).(*Client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListAccounts(ctx, 10)
	require.ErrorIs(t, err, context.Canceled)
}
