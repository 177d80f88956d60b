package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkward/linkward/internal/models"
	"github.com/linkward/linkward/internal/service"
	"github.com/linkward/linkward/internal/storage"
)

type harness struct {
	manager  *httptest.Server
	redirect *httptest.Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	log := zap.NewNop()
	store := storage.NewMemoryStore()
	alloc := service.NewIDAllocator(store, 5, false, 10)
	lifecycle := service.NewLifecycle(store, alloc, log)
	resolver := service.NewResolver(store, nil, log)

	manager := httptest.NewServer(NewManagerRouter(NewManager(lifecycle, store, log), log))
	redirect := httptest.NewServer(NewRedirectRouter(NewRedirect(resolver, log), log))
	t.Cleanup(manager.Close)
	t.Cleanup(redirect.Close)

	return &harness{manager: manager, redirect: redirect}
}

func (h *harness) lifecycle(t *testing.T, method, body string) models.LifecycleResponse {
	t.Helper()

	req, err := http.NewRequest(method, h.manager.URL+"/shortlink", strings.NewReader(body))
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out models.LifecycleResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func (h *harness) resolve(t *testing.T, path string, headers map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, h.redirect.URL+path, nil)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	res, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestShortlink_FullLifecycle(t *testing.T) {
	h := newHarness(t)

	created := h.lifecycle(t, http.MethodPut, `{
		"environmentid": "prod",
		"tenantid": "team-a",
		"action": "create",
		"destination": "https://example.com/docs"
	}`)
	require.Empty(t, created.Error)
	require.NotEmpty(t, created.ID)
	assert.Greater(t, created.ConsumedCapacityUnits, 0.0)

	res := h.resolve(t, "/"+created.ID, nil)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "https://example.com/docs", res.Header.Get("Location"))

	updated := h.lifecycle(t, http.MethodPost, fmt.Sprintf(`{
		"environmentid": "prod",
		"tenantid": "team-a",
		"action": "update",
		"id": %q,
		"destination": "https://example.com/guides"
	}`, created.ID))
	require.Empty(t, updated.Error)
	assert.Equal(t, created.ID, updated.ID)

	res = h.resolve(t, "/"+created.ID, nil)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "https://example.com/guides", res.Header.Get("Location"))

	deleted := h.lifecycle(t, http.MethodDelete, fmt.Sprintf(`{
		"environmentid": "prod",
		"tenantid": "team-a",
		"action": "delete",
		"id": %q
	}`, created.ID))
	require.Empty(t, deleted.Error)
	assert.Equal(t, created.ID, deleted.ID)

	res = h.resolve(t, "/"+created.ID, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	conflicted := h.lifecycle(t, http.MethodPost, fmt.Sprintf(`{
		"environmentid": "prod",
		"tenantid": "team-a",
		"action": "update",
		"id": %q,
		"destination": "https://example.com/again"
	}`, created.ID))
	assert.Equal(t, "Deleted link cannot be updated", conflicted.Error)
	assert.Empty(t, conflicted.ID)
}

func TestShortlink_DateWindowOverHTTP(t *testing.T) {
	h := newHarness(t)

	future := h.lifecycle(t, http.MethodPut, `{
		"environmentid": "prod",
		"tenantid": "team-a",
		"action": "create",
		"destination": "https://example.com",
		"startdate": "2099-01-01"
	}`)
	require.Empty(t, future.Error)

	res := h.resolve(t, "/"+future.ID, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	open := h.lifecycle(t, http.MethodPut, `{
		"environmentid": "prod",
		"tenantid": "team-a",
		"action": "create",
		"destination": "https://example.com",
		"startdate": "2020-01-01"
	}`)
	require.Empty(t, open.Error)

	res = h.resolve(t, "/"+open.ID, nil)
	assert.Equal(t, http.StatusFound, res.StatusCode)
}

func TestShortlink_AliasHostHeader(t *testing.T) {
	h := newHarness(t)

	created := h.lifecycle(t, http.MethodPut, `{
		"environmentid": "prod",
		"tenantid": "team-a",
		"action": "create",
		"destination": "https://example.com",
		"aliases": {"a.example": {"startdate": "2099-01-01"}}
	}`)
	require.Empty(t, created.Error)

	res := h.resolve(t, "/"+created.ID, map[string]string{aliasHostHeader: "a.example"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// Header values are matched case-insensitively against alias domains.
	res = h.resolve(t, "/"+created.ID, map[string]string{aliasHostHeader: "A.Example:443"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = h.resolve(t, "/"+created.ID, map[string]string{aliasHostHeader: "b.example"})
	assert.Equal(t, http.StatusFound, res.StatusCode)
}

func TestShortlink_BadJSON(t *testing.T) {
	h := newHarness(t)

	res, err := http.Post(h.manager.URL+"/shortlink", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var out models.LifecycleResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	assert.Equal(t, "Invalid request body", out.Error)
}

func TestShortlink_ValidationErrorOverHTTP(t *testing.T) {
	h := newHarness(t)

	resp := h.lifecycle(t, http.MethodPut, `{
		"environmentid": "prod",
		"tenantid": "team-a",
		"action": "create"
	}`)
	assert.Equal(t, "Missing destination", resp.Error)
	assert.Empty(t, resp.ID)
}

func TestManagerRouter_MethodAndRoute(t *testing.T) {
	h := newHarness(t)

	res, err := http.Get(h.manager.URL + "/shortlink")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	res, err = http.Get(h.manager.URL + "/nowhere")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestPing(t *testing.T) {
	h := newHarness(t)

	res, err := http.Get(h.manager.URL + "/ping")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRedirect_MissingID(t *testing.T) {
	h := newHarness(t)

	res := h.resolve(t, "/", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
