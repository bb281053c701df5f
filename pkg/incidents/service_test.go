package incidents

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/db"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
)

func newTestService(t *testing.T) (*Service, *db.Queries) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "incidents_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	queries := db.New(database)
	return NewService(queries, logger.NewDefault()), queries
}

func createTestPage(t *testing.T, queries *db.Queries, slug string) int64 {
	t.Helper()
	page, err := queries.CreatePage(context.Background(), &db.CreatePageParams{
		Slug:   slug,
		Name:   "Page " + slug,
		Client: "acme",
		Url:    fmt.Sprintf("https://example.com/%s", slug),
	})
	require.NoError(t, err)
	return page.ID
}

func TestOpenAndListOpen(t *testing.T) {
	svc, queries := newTestService(t)
	ctx := context.Background()
	pageA := createTestPage(t, queries, "a")
	pageB := createTestPage(t, queries, "b")

	idA, err := svc.Open(ctx, monitor.OpenIncidentParams{
		PageID:              pageA,
		Type:                monitor.ErrorTypeTimeout,
		Message:             "request timed out after 10s",
		ProbableCause:       "server too slow or unreachable",
		Origin:              monitor.OriginCron,
		ConsecutiveFailures: 2,
	})
	require.NoError(t, err)

	open, err := svc.ListOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{pageA: idA}, open)

	idB, err := svc.Open(ctx, monitor.OpenIncidentParams{
		PageID:              pageB,
		Type:                monitor.ErrorTypeWAFBlock,
		Message:             "blocked by WAF",
		Origin:              monitor.OriginManual,
		ConsecutiveFailures: 3,
	})
	require.NoError(t, err)

	open, err = svc.ListOpen(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 2)
	assert.Equal(t, idB, open[pageB])
}

func TestOpenDefaultsToUnknownType(t *testing.T) {
	svc, queries := newTestService(t)
	ctx := context.Background()
	pageID := createTestPage(t, queries, "unknown")

	id, err := svc.Open(ctx, monitor.OpenIncidentParams{
		PageID:              pageID,
		Message:             "something went wrong",
		Origin:              monitor.OriginCron,
		ConsecutiveFailures: 2,
	})
	require.NoError(t, err)

	incident, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(monitor.ErrorTypeUnknown), incident.Type)
}

func TestOnlyOneOpenIncidentPerPage(t *testing.T) {
	svc, queries := newTestService(t)
	ctx := context.Background()
	pageID := createTestPage(t, queries, "dup")

	params := monitor.OpenIncidentParams{
		PageID:              pageID,
		Type:                monitor.ErrorTypeHTTP500,
		Message:             "HTTP 500",
		Origin:              monitor.OriginCron,
		ConsecutiveFailures: 2,
	}
	id, err := svc.Open(ctx, params)
	require.NoError(t, err)

	_, err = svc.Open(ctx, params)
	require.Error(t, err)

	// Resolving the first frees the slot for a new incident.
	require.NoError(t, svc.Resolve(ctx, id, monitor.StatusOnline))
	_, err = svc.Open(ctx, params)
	require.NoError(t, err)
}

func TestResolveSetsFinalStatusAndDuration(t *testing.T) {
	svc, queries := newTestService(t)
	ctx := context.Background()
	pageID := createTestPage(t, queries, "resolve")

	id, err := svc.Open(ctx, monitor.OpenIncidentParams{
		PageID:              pageID,
		Type:                monitor.ErrorTypeConnection,
		Message:             "connection refused",
		Origin:              monitor.OriginCron,
		ConsecutiveFailures: 2,
	})
	require.NoError(t, err)

	before, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, before.ResolvedAt)
	assert.Nil(t, before.DurationSeconds)
	assert.Empty(t, before.FinalStatus)

	require.NoError(t, svc.Resolve(ctx, id, monitor.StatusOnline))

	after, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, after.ResolvedAt)
	require.NotNil(t, after.DurationSeconds)
	assert.Equal(t, string(monitor.StatusOnline), after.FinalStatus)
	assert.GreaterOrEqual(t, *after.DurationSeconds, int64(0))

	open, err := svc.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(context.Background(), 9999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListByPage(t *testing.T) {
	svc, queries := newTestService(t)
	ctx := context.Background()
	pageA := createTestPage(t, queries, "list-a")
	pageB := createTestPage(t, queries, "list-b")

	idA, err := svc.Open(ctx, monitor.OpenIncidentParams{
		PageID:              pageA,
		Type:                monitor.ErrorTypeHTTP404,
		Message:             "HTTP 404",
		Origin:              monitor.OriginCron,
		ConsecutiveFailures: 2,
	})
	require.NoError(t, err)
	_, err = svc.Open(ctx, monitor.OpenIncidentParams{
		PageID:              pageB,
		Type:                monitor.ErrorTypeSoft404,
		Message:             "page not found pattern matched",
		Origin:              monitor.OriginCron,
		ConsecutiveFailures: 2,
	})
	require.NoError(t, err)

	resp, err := svc.ListByPage(ctx, pageA, 1, 20)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, idA, resp.Items[0].ID)
	assert.Equal(t, string(monitor.ErrorTypeHTTP404), resp.Items[0].Type)
}
