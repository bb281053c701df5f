package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/db"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
)

func newTestService(t *testing.T) (*Service, *db.Queries) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "history_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	queries := db.New(database)
	return NewService(queries, logger.NewDefault()), queries
}

func createTestPage(t *testing.T, queries *db.Queries) int64 {
	t.Helper()
	page, err := queries.CreatePage(context.Background(), &db.CreatePageParams{
		Slug:   "checkout",
		Name:   "Checkout",
		Client: "acme",
		Url:    "https://example.com/checkout",
	})
	require.NoError(t, err)
	return page.ID
}

func TestRecordAndListByPage(t *testing.T) {
	svc, queries := newTestService(t)
	ctx := context.Background()
	pageID := createTestPage(t, queries)

	status := 200
	err := svc.Record(ctx, monitor.RecordParams{
		PageID:       pageID,
		HTTPStatus:   &status,
		ResponseTime: 350 * time.Millisecond,
		CheckedAt:    time.Now().UTC(),
		Origin:       monitor.OriginCron,
		Label:        monitor.LabelOnline,
	})
	require.NoError(t, err)

	err = svc.Record(ctx, monitor.RecordParams{
		PageID:       pageID,
		ResponseTime: 10 * time.Second,
		ErrorMessage: "context deadline exceeded",
		CheckedAt:    time.Now().UTC().Add(time.Minute),
		Origin:       monitor.OriginManual,
		Label:        monitor.LabelOffline,
	})
	require.NoError(t, err)

	resp, err := svc.ListByPage(ctx, pageID, 1, 50)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, int64(2), resp.TotalCount)

	// Newest first.
	newest := resp.Items[0]
	assert.Nil(t, newest.HTTPStatus)
	assert.Equal(t, int64(10000), newest.ResponseTimeMs)
	assert.Equal(t, "context deadline exceeded", newest.ErrorMessage)
	assert.Equal(t, string(monitor.LabelOffline), newest.StatusLabel)
	assert.Equal(t, string(monitor.OriginManual), newest.Origin)

	oldest := resp.Items[1]
	require.NotNil(t, oldest.HTTPStatus)
	assert.Equal(t, 200, *oldest.HTTPStatus)
	assert.Equal(t, string(monitor.LabelOnline), oldest.StatusLabel)
}

func TestListByPagePagination(t *testing.T) {
	svc, queries := newTestService(t)
	ctx := context.Background()
	pageID := createTestPage(t, queries)

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		status := 200
		err := svc.Record(ctx, monitor.RecordParams{
			PageID:       pageID,
			HTTPStatus:   &status,
			ResponseTime: time.Duration(i) * time.Millisecond,
			CheckedAt:    base.Add(time.Duration(i) * time.Minute),
			Origin:       monitor.OriginCron,
			Label:        monitor.LabelOnline,
		})
		require.NoError(t, err)
	}

	first, err := svc.ListByPage(ctx, pageID, 1, 2)
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, int64(5), first.TotalCount)

	third, err := svc.ListByPage(ctx, pageID, 3, 2)
	require.NoError(t, err)
	require.Len(t, third.Items, 1)
	assert.Equal(t, int64(0), third.Items[0].ResponseTimeMs)
}

func TestListByPageClampsArguments(t *testing.T) {
	svc, queries := newTestService(t)
	pageID := createTestPage(t, queries)

	resp, err := svc.ListByPage(context.Background(), pageID, -3, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 50, resp.PageSize)
	assert.Empty(t, resp.Items)
}

func TestLatest(t *testing.T) {
	svc, queries := newTestService(t)
	ctx := context.Background()
	pageID := createTestPage(t, queries)

	base := time.Now().UTC()
	labels := []monitor.StatusLabel{monitor.LabelOnline, monitor.LabelSlow, monitor.LabelOffline}
	for i, label := range labels {
		err := svc.Record(ctx, monitor.RecordParams{
			PageID:       pageID,
			ResponseTime: time.Second,
			CheckedAt:    base.Add(time.Duration(i) * time.Minute),
			Origin:       monitor.OriginCron,
			Label:        label,
		})
		require.NoError(t, err)
	}

	items, err := svc.Latest(ctx, pageID, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, string(monitor.LabelOffline), items[0].StatusLabel)
	assert.Equal(t, string(monitor.LabelSlow), items[1].StatusLabel)
}
