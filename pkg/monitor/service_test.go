package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
)

type serviceFixture struct {
	service   *Service
	history   *fakeHistory
	status    *fakeStatusStore
	incidents *fakeIncidentStore
	events    *fakeEvents
}

func newServiceFixture(policy MonitoringPolicy) *serviceFixture {
	f := &serviceFixture{
		history:   &fakeHistory{},
		status:    newFakeStatusStore(),
		incidents: newFakeIncidentStore(),
		events:    &fakeEvents{},
	}
	f.service = NewService(ServiceDeps{
		History:  f.history,
		Status:   f.status,
		Incident: f.incidents,
		Events:   f.events,
		Policies: &fakePolicies{policy: policy},
		Logger:   logger.NewDefault(),
	})
	return f
}

// The [500, 500, 200] scenario with threshold 2: no incident after the first
// failure, incident after the second, resolution on recovery.
func TestRunCheckIncidentLifecycle(t *testing.T) {
	var responseStatus atomic.Int32
	responseStatus.Store(http.StatusInternalServerError)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(responseStatus.Load()))
		w.Write([]byte("content"))
	}))
	defer server.Close()

	policy := DefaultPolicy()
	policy.MaxRetries = 0
	policy.FailureThreshold = 2

	f := newServiceFixture(policy)
	page := testPage(server.URL)
	ctx := context.Background()

	// Check 1: 500, counter 1, no incident yet
	result, err := f.service.RunCheck(ctx, page, OriginCron)
	require.NoError(t, err)
	assert.Equal(t, StatusOffline, result.Status)
	assert.Equal(t, 1, f.status.failures[page.ID])
	assert.Empty(t, f.incidents.opened)

	// Check 2: 500 again, counter 2, incident opens
	result, err = f.service.RunCheck(ctx, page, OriginCron)
	require.NoError(t, err)
	assert.Equal(t, StatusOffline, result.Status)
	assert.Equal(t, 2, f.status.failures[page.ID])
	require.Len(t, f.incidents.opened, 1)
	assert.Equal(t, "server-side error (status 500)", f.incidents.opened[0].ProbableCause)
	assert.Equal(t, ErrorTypeHTTP500, f.incidents.opened[0].Type)

	// Check 3: recovery resolves the incident and resets the counter
	responseStatus.Store(http.StatusOK)
	result, err = f.service.RunCheck(ctx, page, OriginCron)
	require.NoError(t, err)
	assert.Equal(t, StatusOnline, result.Status)
	assert.Equal(t, 0, f.status.failures[page.ID])
	assert.Empty(t, f.incidents.openByPg)
	assert.Equal(t, StatusOnline, f.incidents.resolved[1])

	// History recorded all three checks with the canonical labels
	require.Len(t, f.history.records, 3)
	assert.Equal(t, LabelOffline, f.history.records[0].Label)
	assert.Equal(t, LabelOffline, f.history.records[1].Label)
	assert.Equal(t, LabelOnline, f.history.records[2].Label)
}

func TestRunCheckSoft404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><h1>Página não encontrada</h1></html>"))
	}))
	defer server.Close()

	policy := DefaultPolicy()
	policy.MaxRetries = 0

	f := newServiceFixture(policy)
	result, err := f.service.RunCheck(context.Background(), testPage(server.URL), OriginManual)
	require.NoError(t, err)

	assert.True(t, result.Soft404)
	assert.Equal(t, StatusOffline, result.Status)
	assert.Equal(t, ErrorTypeSoft404, result.ErrorType)
	assert.Equal(t, LabelSoft404, result.Label)
}

func TestRunCheckBlocked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	policy := DefaultPolicy()
	policy.MaxRetries = 0
	policy.FailureThreshold = 1

	f := newServiceFixture(policy)
	result, err := f.service.RunCheck(context.Background(), testPage(server.URL), OriginCron)
	require.NoError(t, err)

	assert.Equal(t, StatusBlocked, result.Status)
	assert.Equal(t, "HTTP 403 - possible WAF/firewall", result.BlockReason)
	require.Len(t, f.incidents.opened, 1)
	assert.Len(t, f.events.ofType(EventPageBlocked), 1)
}

func TestRunCheckOnlineKeepsCounterAtZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fine"))
	}))
	defer server.Close()

	f := newServiceFixture(DefaultPolicy())
	page := testPage(server.URL)

	for i := 0; i < 3; i++ {
		result, err := f.service.RunCheck(context.Background(), page, OriginCron)
		require.NoError(t, err)
		assert.Equal(t, StatusOnline, result.Status)
	}
	assert.Equal(t, 0, f.status.failures[page.ID])
	assert.Empty(t, f.incidents.opened)
}

func TestRunCheckEventOrdering(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	policy := DefaultPolicy()
	policy.MaxRetries = 1
	policy.RetryDelay = 10 * time.Millisecond
	policy.FailureThreshold = 1

	f := newServiceFixture(policy)
	_, err := f.service.RunCheck(context.Background(), testPage(server.URL), OriginCron)
	require.NoError(t, err)

	// Retry events precede the incident events within one invocation
	var order []string
	for _, e := range f.events.entries {
		order = append(order, e.eventType)
	}
	require.Equal(t, []string{EventRetryStarted, EventRetryCompleted, EventIncidentCreated, EventPageOffline}, order)
}
