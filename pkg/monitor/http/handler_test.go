package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/omarcoswillian/monitora-prymo-sub000/pkg/errors"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/pages"
)

type fakeChecker struct {
	lastPage monitor.PageDescriptor
	lastURL  string
}

func (c *fakeChecker) RunCheck(ctx context.Context, page monitor.PageDescriptor, origin monitor.CheckOrigin) (monitor.CheckResult, error) {
	c.lastPage = page
	return monitor.CheckResult{PageID: page.ID, Status: monitor.StatusOnline, Label: monitor.LabelOnline, Origin: origin}, nil
}

func (c *fakeChecker) CheckURL(ctx context.Context, rawURL string, origin monitor.CheckOrigin) (monitor.CheckResult, error) {
	c.lastURL = rawURL
	return monitor.CheckResult{Status: monitor.StatusOffline, Label: monitor.LabelOffline, Origin: origin}, nil
}

type fakePageSource struct {
	descriptors map[int64]monitor.PageDescriptor
}

func (s *fakePageSource) Descriptor(ctx context.Context, id int64) (monitor.PageDescriptor, error) {
	descriptor, ok := s.descriptors[id]
	if !ok {
		return monitor.PageDescriptor{}, apperrors.NewNotFoundError("page not found", nil)
	}
	return descriptor, nil
}

type fakeStatusSource struct{}

func (s *fakeStatusSource) StatusSummary(ctx context.Context) (*pages.StatusSummary, error) {
	return &pages.StatusSummary{
		TotalPages: 3,
		ByStatus:   map[string]int{"ONLINE": 2, "OFFLINE": 1},
	}, nil
}

func newTestRouter(checker *fakeChecker) chi.Router {
	source := &fakePageSource{descriptors: map[int64]monitor.PageDescriptor{
		42: {ID: 42, Slug: "home", URL: "https://example.com"},
	}}
	handler := NewHandler(checker, source, &fakeStatusSource{}, logger.NewDefault())
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestStatusSnapshot(t *testing.T) {
	router := newTestRouter(&fakeChecker{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checks/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var summary pages.StatusSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.TotalPages)
	assert.Equal(t, 2, summary.ByStatus["ONLINE"])
}

func TestCheckPage(t *testing.T) {
	checker := &fakeChecker{}
	router := newTestRouter(checker)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checks/pages/42", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), checker.lastPage.ID)

	var result monitor.CheckResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, monitor.StatusOnline, result.Status)
	assert.Equal(t, monitor.OriginManual, result.Origin)
}

func TestCheckPageNotFound(t *testing.T) {
	router := newTestRouter(&fakeChecker{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checks/pages/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckURL(t *testing.T) {
	checker := &fakeChecker{}
	router := newTestRouter(checker)

	body := strings.NewReader(`{"url": "https://example.org/missing"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checks/url", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.org/missing", checker.lastURL)
}

func TestCheckURLBadBody(t *testing.T) {
	router := newTestRouter(&fakeChecker{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checks/url", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
