//go:build e2e
// +build e2e

package e2e

import (
	"fmt"
	"testing"

	"github.com/lithammer/shortuuid/v4"
	"github.com/stretchr/testify/require"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/pages"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/settings"
)

// TestPageLifecycle registers a page, checks it and removes it again
func TestPageLifecycle(t *testing.T) {
	client := NewTestClient()

	pageName := fmt.Sprintf("page-%s", shortuuid.New())
	page, err := client.CreatePage(&pages.CreatePageParams{
		Name:   pageName,
		Client: "e2e",
		URL:    "https://example.com",
	})
	require.NoError(t, err)
	require.NotZero(t, page.ID)
	require.NotEmpty(t, page.Slug)

	fetched, err := client.GetPage(page.ID)
	require.NoError(t, err)
	require.Equal(t, pageName, fetched.Name)

	result, err := client.CheckPage(page.ID)
	require.NoError(t, err)
	require.NotEmpty(t, result.Status)
	require.NotEmpty(t, result.Label)

	require.NoError(t, client.DeletePage(page.ID))

	_, err = client.GetPage(page.ID)
	require.Error(t, err)
}

// TestAdHocURLCheck probes a URL that is not registered
func TestAdHocURLCheck(t *testing.T) {
	client := NewTestClient()

	result, err := client.CheckURL("https://example.com")
	require.NoError(t, err)
	require.NotEmpty(t, result.Status)
	require.Zero(t, result.PageID)
}

// TestSettingsRoundTrip updates the policy and reads it back
func TestSettingsRoundTrip(t *testing.T) {
	client := NewTestClient()

	current, err := client.GetSettings()
	require.NoError(t, err)

	config := current.Config
	config.FailureThreshold = 3
	updated, err := client.UpdateSettings(&settings.UpdateSettingParams{Config: config})
	require.NoError(t, err)
	require.Equal(t, 3, updated.Config.FailureThreshold)

	// Restore the previous threshold
	_, err = client.UpdateSettings(&settings.UpdateSettingParams{Config: current.Config})
	require.NoError(t, err)
}

// TestStatusSnapshot exercises the aggregate endpoint
func TestStatusSnapshot(t *testing.T) {
	client := NewTestClient()

	summary, err := client.StatusSnapshot()
	require.NoError(t, err)
	require.GreaterOrEqual(t, summary.TotalPages, 0)
}
