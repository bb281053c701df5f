package monitor

import (
	"context"
	"sync"
)

type recordedEvent struct {
	pageID    int64
	eventType string
	message   string
	metadata  map[string]interface{}
	origin    CheckOrigin
}

type fakeEvents struct {
	mu      sync.Mutex
	entries []recordedEvent
}

func (f *fakeEvents) Append(pageID int64, eventType, message string, metadata map[string]interface{}, origin CheckOrigin) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, recordedEvent{pageID, eventType, message, metadata, origin})
}

func (f *fakeEvents) ofType(eventType string) []recordedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedEvent
	for _, e := range f.entries {
		if e.eventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fakeStatusStore struct {
	failures map[int64]int
	updates  []StatusUpdate
}

func newFakeStatusStore() *fakeStatusStore {
	return &fakeStatusStore{failures: make(map[int64]int)}
}

func (f *fakeStatusStore) ConsecutiveFailures(_ context.Context, pageID int64) (int, error) {
	return f.failures[pageID], nil
}

func (f *fakeStatusStore) UpdateStatus(_ context.Context, update StatusUpdate) error {
	f.failures[update.PageID] = update.ConsecutiveFailures
	f.updates = append(f.updates, update)
	return nil
}

type fakeIncidentStore struct {
	nextID   int64
	openByPg map[int64]int64
	opened   []OpenIncidentParams
	resolved map[int64]PageStatus
}

func newFakeIncidentStore() *fakeIncidentStore {
	return &fakeIncidentStore{
		openByPg: make(map[int64]int64),
		resolved: make(map[int64]PageStatus),
	}
}

func (f *fakeIncidentStore) ListOpen(_ context.Context) (map[int64]int64, error) {
	out := make(map[int64]int64, len(f.openByPg))
	for k, v := range f.openByPg {
		out[k] = v
	}
	return out, nil
}

func (f *fakeIncidentStore) Open(_ context.Context, params OpenIncidentParams) (int64, error) {
	f.nextID++
	f.openByPg[params.PageID] = f.nextID
	f.opened = append(f.opened, params)
	return f.nextID, nil
}

func (f *fakeIncidentStore) Resolve(_ context.Context, incidentID int64, finalStatus PageStatus) error {
	f.resolved[incidentID] = finalStatus
	for pageID, id := range f.openByPg {
		if id == incidentID {
			delete(f.openByPg, pageID)
		}
	}
	return nil
}

type fakeHistory struct {
	records []RecordParams
}

func (f *fakeHistory) Record(_ context.Context, params RecordParams) error {
	f.records = append(f.records, params)
	return nil
}

type fakePolicies struct {
	policy MonitoringPolicy
}

func (f *fakePolicies) Policy(_ context.Context) (MonitoringPolicy, error) {
	return f.policy, nil
}
