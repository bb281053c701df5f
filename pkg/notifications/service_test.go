package notifications

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

func newTestService(t *testing.T) *Service {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "notifications_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewService(db.New(database), logger.NewDefault())
}

func smtpConfig() SMTPConfig {
	return SMTPConfig{
		Host:       "smtp.example.com",
		Port:       587,
		Username:   "monitor",
		Password:   "secret",
		From:       "monitor@example.com",
		Recipients: []string{"ops@example.com"},
	}
}

func TestCreateProviderHidesPassword(t *testing.T) {
	svc := newTestService(t)

	provider, err := svc.CreateProvider(context.Background(), CreateProviderParams{
		Type:                 ProviderTypeSMTP,
		Name:                 "Primary SMTP",
		Config:               smtpConfig(),
		IsDefault:            true,
		NotifyIncidentOpened: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Primary SMTP", provider.Name)
	assert.True(t, provider.IsDefault)
	assert.Empty(t, provider.Config.Password)
	assert.Equal(t, "smtp.example.com", provider.Config.Host)
}

func TestCreateProviderValidation(t *testing.T) {
	svc := newTestService(t)

	config := smtpConfig()
	config.From = "not-an-email"
	_, err := svc.CreateProvider(context.Background(), CreateProviderParams{
		Type:   ProviderTypeSMTP,
		Name:   "Broken",
		Config: config,
	})
	require.Error(t, err)

	config = smtpConfig()
	config.Recipients = nil
	_, err = svc.CreateProvider(context.Background(), CreateProviderParams{
		Type:   ProviderTypeSMTP,
		Name:   "No recipients",
		Config: config,
	})
	require.Error(t, err)
}

func TestSecondDefaultUnsetsFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateProvider(ctx, CreateProviderParams{
		Type:      ProviderTypeSMTP,
		Name:      "First",
		Config:    smtpConfig(),
		IsDefault: true,
	})
	require.NoError(t, err)

	second, err := svc.CreateProvider(ctx, CreateProviderParams{
		Type:      ProviderTypeSMTP,
		Name:      "Second",
		Config:    smtpConfig(),
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	reloaded, err := svc.GetProvider(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)
}

func TestUpdateAndDeleteProvider(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	provider, err := svc.CreateProvider(ctx, CreateProviderParams{
		Type:   ProviderTypeSMTP,
		Name:   "To update",
		Config: smtpConfig(),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProvider(ctx, UpdateProviderParams{
		ID:                     provider.ID,
		Type:                   ProviderTypeSMTP,
		Name:                   "Updated",
		Config:                 smtpConfig(),
		NotifyIncidentResolved: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.Name)
	assert.True(t, updated.NotifyIncidentResolved)

	require.NoError(t, svc.DeleteProvider(ctx, provider.ID))

	providers, err := svc.ListProviders(ctx)
	require.NoError(t, err)
	assert.Empty(t, providers)
}

func TestNotifyWithoutProviderIsNoop(t *testing.T) {
	svc := newTestService(t)

	// No default provider configured: must not panic or error
	svc.NotifyIncidentOpened(context.Background(), monitor.IncidentNotification{
		IncidentID: 1,
		PageName:   "Example",
	})
}

func TestIncidentOpenedContent(t *testing.T) {
	content, err := incidentOpenedContent(monitor.IncidentNotification{
		IncidentID:          7,
		PageID:              3,
		PageName:            "Landing Page",
		PageURL:             "https://example.com/landing",
		Client:              "acme",
		Type:                monitor.ErrorTypeHTTP500,
		Message:             "page is offline after 2 consecutive failures",
		ProbableCause:       "server-side error (status 500)",
		FinalStatus:         monitor.StatusOffline,
		ConsecutiveFailures: 2,
		OccurredAt:          time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Contains(t, content.Subject, "Landing Page")
	assert.Contains(t, content.PlainText, "https://example.com/landing")
	assert.Contains(t, content.PlainText, "server-side error (status 500)")
	assert.Contains(t, content.PlainText, "OFFLINE")
	assert.Contains(t, content.HTML, "Incident opened: Landing Page")
	assert.Contains(t, content.HTML, "acme")
}

func TestIncidentResolvedContent(t *testing.T) {
	content, err := incidentResolvedContent(monitor.IncidentNotification{
		IncidentID:  7,
		PageName:    "Landing Page",
		PageURL:     "https://example.com/landing",
		FinalStatus: monitor.StatusOnline,
		Message:     "page recovered",
		OccurredAt:  time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Contains(t, content.Subject, "back online")
	assert.Contains(t, content.PlainText, "ONLINE")
	assert.Contains(t, content.HTML, "Incident resolved: Landing Page")
}
