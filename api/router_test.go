package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dredding8/malibu-ui-private/config"
	"github.com/dredding8/malibu-ui-private/models"
)

const dashboardFixture = `<!DOCTYPE html>
<html><body>
<header>
  <a data-testid="logoButton" class="MuiButtonBase-root MuiButton-root" href="/">VUE</a>
  <a role="tab" class="MuiButtonBase-root MuiTab-root" href="/">Dashboard</a>
  <a role="tab" class="MuiButtonBase-root MuiTab-root" href="/history">History</a>
  <button class="MuiButtonBase-root MuiButton-root">Logout</button>
</header>
<div class="MuiGrid2-root MuiGrid2-grid-xs-12">
  <input id="sccSearchBar" class="MuiInputBase-input" placeholder="Search SCCs..." />
  <button data-testid="updateMasterList" class="MuiButtonBase-root MuiButton-root">Update Master List</button>
  <table data-testid="masterListTable" class="MuiTable-root">
    <thead><tr><th>Deck Name</th><th>Progress</th></tr></thead>
    <tbody><tr><td>Q3 Review</td><td>80%</td></tr></tbody>
  </table>
</div>
</body></html>`

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Mode = "test"
	cfg.Inspect.CacheEntries = 0
	return cfg
}

func postMap(t *testing.T, router http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/map", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthNoAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Enabled = true
	cfg.Auth.APIKeys = []string{"secret"}
	router := NewRouter(cfg, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var health models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Zero(t, health.ActiveRuns)
}

func TestRouter_AuthRequired(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Enabled = true
	cfg.Auth.APIKeys = []string{"secret"}
	router := NewRouter(cfg, time.Now())

	w := postMap(t, router, `{"url":"http://localhost/"}`, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp models.MapResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, models.ErrCodeUnauthorized, resp.Error.Code)
}

func TestRouter_AuthRejectsInvalidKey(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Enabled = true
	cfg.Auth.APIKeys = []string{"secret"}
	router := NewRouter(cfg, time.Now())

	w := postMap(t, router, `{"url":"http://localhost/"}`, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AuthAcceptsBothHeaderStyles(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Enabled = true
	cfg.Auth.APIKeys = []string{"secret"}
	router := NewRouter(cfg, time.Now())

	for name, headers := range map[string]map[string]string{
		"x-api-key": {"X-API-Key": "secret"},
		"bearer":    {"Authorization": "Bearer secret"},
	} {
		// Malformed body: a 400 (not 401) proves the request cleared auth.
		w := postMap(t, router, `{}`, headers)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestRouter_MapRejectsInvalidInput(t *testing.T) {
	router := NewRouter(testConfig(), time.Now())

	for _, body := range []string{`{}`, `{"url":"not a url"}`, `{"url":"http://x/","page":"settings"}`} {
		w := postMap(t, router, body, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, body)

		var resp models.MapResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, models.ErrCodeInvalidInput, resp.Error.Code)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.RequestsPerSecond = 0.001
	cfg.RateLimit.Burst = 1
	router := NewRouter(cfg, time.Now())

	first := postMap(t, router, `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, first.Code)

	second := postMap(t, router, `{}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRouter_MapEndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, dashboardFixture)
	}))
	defer upstream.Close()

	router := NewRouter(testConfig(), time.Now())

	w := postMap(t, router, fmt.Sprintf(`{"url":%q,"page":"dashboard"}`, upstream.URL), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.MapResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Findings)
	assert.Contains(t, resp.Markdown, "MuiButton")
	assert.GreaterOrEqual(t, resp.Timing.TotalMs, resp.Timing.NavigationMs)
}

func TestRouter_MapServedFromCache(t *testing.T) {
	var fetches atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		fmt.Fprint(w, dashboardFixture)
	}))
	defer upstream.Close()

	cfg := testConfig()
	cfg.Inspect.CacheEntries = 16
	router := NewRouter(cfg, time.Now())

	body := fmt.Sprintf(`{"url":%q}`, upstream.URL)
	for i := 0; i < 3; i++ {
		w := postMap(t, router, body, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, int64(1), fetches.Load(), "repeat requests must be served from cache")
}

func TestRouter_MapUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	router := NewRouter(testConfig(), time.Now())

	w := postMap(t, router, fmt.Sprintf(`{"url":%q}`, upstream.URL), nil)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp models.MapResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, models.ErrCodeSnapshot, resp.Error.Code)
}
