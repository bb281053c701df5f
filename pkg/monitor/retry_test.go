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

func fastRetryPolicy() MonitoringPolicy {
	policy := DefaultPolicy()
	policy.MaxRetries = 2
	policy.RetryDelay = 10 * time.Millisecond
	return policy
}

func newTestCoordinator(events EventSink) *RetryCoordinator {
	log := logger.NewDefault()
	return NewRetryCoordinator(NewProber(NewClassifier(nil), log), events, log)
}

func TestCheckWithRetryNoRetryWhenOnline(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	events := &fakeEvents{}
	result := newTestCoordinator(events).CheckWithRetry(context.Background(), testPage(server.URL), fastRetryPolicy(), OriginManual)

	assert.Equal(t, StatusOnline, result.Status)
	assert.Equal(t, 0, result.Retries)
	assert.Equal(t, int32(1), requests.Load())
	assert.Empty(t, events.entries, "healthy first attempt must emit no retry events")
}

func TestCheckWithRetrySlowIsNotAFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(30 * time.Millisecond)
		w.Write([]byte("slow"))
	}))
	defer server.Close()

	policy := fastRetryPolicy()
	policy.SlowThreshold = time.Millisecond

	events := &fakeEvents{}
	result := newTestCoordinator(events).CheckWithRetry(context.Background(), testPage(server.URL), policy, OriginCron)

	assert.Equal(t, StatusSlow, result.Status)
	assert.Equal(t, 0, result.Retries)
	assert.Empty(t, events.entries)
}

func TestCheckWithRetryExhaustsBudget(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	events := &fakeEvents{}
	result := newTestCoordinator(events).CheckWithRetry(context.Background(), testPage(server.URL), fastRetryPolicy(), OriginCron)

	assert.Equal(t, StatusOffline, result.Status)
	assert.Equal(t, 2, result.Retries)
	assert.Equal(t, int32(3), requests.Load(), "initial attempt plus two retries")
	assert.Len(t, events.ofType(EventRetryStarted), 2)
	assert.Len(t, events.ofType(EventRetryCompleted), 2)
}

func TestCheckWithRetryStopsEarlyOnRecovery(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	events := &fakeEvents{}
	result := newTestCoordinator(events).CheckWithRetry(context.Background(), testPage(server.URL), fastRetryPolicy(), OriginCron)

	assert.Equal(t, StatusOnline, result.Status)
	assert.Equal(t, 1, result.Retries)
	assert.Equal(t, int32(2), requests.Load())
	assert.Len(t, events.ofType(EventRetryStarted), 1)
}

func TestCheckWithRetryTimeoutScenario(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	policy := fastRetryPolicy()
	policy.HTTPTimeout = 50 * time.Millisecond

	events := &fakeEvents{}
	result := newTestCoordinator(events).CheckWithRetry(context.Background(), testPage(server.URL), policy, OriginCron)

	require.Equal(t, StatusTimeout, result.Status)
	assert.Equal(t, ErrorTypeTimeout, result.ErrorType)
	assert.Equal(t, 2, result.Retries)
	assert.Len(t, events.ofType(EventRetryStarted), 2)
}
