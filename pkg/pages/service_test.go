package pages

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/db"
	apperrors "github.com/omarcoswillian/monitora-prymo-sub000/pkg/errors"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "pages_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewService(db.New(database), logger.NewDefault())
}

func createPage(t *testing.T, svc *Service) *Page {
	t.Helper()
	page, err := svc.CreatePage(context.Background(), CreatePageParams{
		Name:   "Landing",
		Client: "acme",
		URL:    "https://example.com/landing",
	})
	require.NoError(t, err)
	return page
}

func TestCreatePage(t *testing.T) {
	svc := newTestService(t)
	page := createPage(t, svc)

	assert.NotZero(t, page.ID)
	assert.NotEmpty(t, page.Slug)
	assert.Equal(t, "Landing", page.Name)
	assert.Equal(t, string(monitor.StatusOnline), page.Status)
	assert.Zero(t, page.ConsecutiveFailures)
}

func TestCreatePageValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreatePage(context.Background(), CreatePageParams{
		Name:   "No URL",
		Client: "acme",
		URL:    "not-a-url",
	})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
}

func TestGetPageNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetPage(context.Background(), 999)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
}

func TestUpdateAndDeletePage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	page := createPage(t, svc)

	timeout := int64(20000)
	updated, err := svc.UpdatePage(ctx, page.ID, UpdatePageParams{
		Name:            "Landing v2",
		Client:          "acme",
		URL:             "https://example.com/landing-v2",
		TimeoutMs:       &timeout,
		Soft404Patterns: []string{"conteúdo indisponível"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Landing v2", updated.Name)
	require.NotNil(t, updated.TimeoutMs)
	assert.Equal(t, int64(20000), *updated.TimeoutMs)
	assert.Equal(t, []string{"conteúdo indisponível"}, updated.Soft404Patterns)

	require.NoError(t, svc.DeletePage(ctx, page.ID))
	_, err = svc.GetPage(ctx, page.ID)
	require.Error(t, err)
}

func TestListPagesByClient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, client := range []string{"acme", "acme", "umbrella"} {
		_, err := svc.CreatePage(ctx, CreatePageParams{
			Name:   "Page",
			Client: client,
			URL:    "https://example.com",
		})
		require.NoError(t, err)
	}

	all, err := svc.ListPages(ctx, "", 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.TotalCount)

	acme, err := svc.ListPages(ctx, "acme", 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), acme.TotalCount)
}

func TestDescriptorCarriesOverrides(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	timeout := int64(15000)
	page, err := svc.CreatePage(ctx, CreatePageParams{
		Name:            "Custom",
		Client:          "acme",
		URL:             "https://example.com/custom",
		TimeoutMs:       &timeout,
		Soft404Patterns: []string{"sumiu"},
	})
	require.NoError(t, err)

	descriptor, err := svc.Descriptor(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, descriptor.Timeout)
	assert.Equal(t, []string{"sumiu"}, descriptor.Soft404Patterns)
	assert.Equal(t, page.Slug, descriptor.Slug)
}

func TestStatusStoreRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	page := createPage(t, svc)

	now := time.Now().UTC()
	require.NoError(t, svc.UpdateStatus(ctx, monitor.StatusUpdate{
		PageID:              page.ID,
		Status:              monitor.StatusOffline,
		ErrorType:           monitor.ErrorTypeHTTP500,
		ErrorMessage:        "HTTP 500",
		ConsecutiveFailures: 2,
		CheckedAt:           now,
	}))

	failures, err := svc.ConsecutiveFailures(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, failures)

	reloaded, err := svc.GetPage(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, string(monitor.StatusOffline), reloaded.Status)
	assert.Equal(t, "HTTP 500", reloaded.ErrorMessage)
	require.NotNil(t, reloaded.LastCheckedAt)
}

func TestStatusSummary(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	healthy := createPage(t, svc)
	_ = healthy
	failing := createPage(t, svc)
	require.NoError(t, svc.UpdateStatus(ctx, monitor.StatusUpdate{
		PageID:              failing.ID,
		Status:              monitor.StatusBlocked,
		ErrorType:           monitor.ErrorTypeWAFBlock,
		ConsecutiveFailures: 1,
		CheckedAt:           time.Now().UTC(),
	}))

	summary, err := svc.StatusSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalPages)
	assert.Equal(t, 1, summary.ByStatus[string(monitor.StatusOnline)])
	assert.Equal(t, 1, summary.ByStatus[string(monitor.StatusBlocked)])
	require.Len(t, summary.Failing, 1)
	assert.Equal(t, failing.ID, summary.Failing[0].ID)
}
