package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"taskdesk/internal/api"
	"taskdesk/internal/busy"
	"taskdesk/internal/notify"
	"taskdesk/internal/server"
	"taskdesk/internal/session"
	"taskdesk/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// externalSystem fakes the task API the client talks to.
func externalSystem(t *testing.T, reject *atomic.Bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"_id": "u1", "name": "Ada", "email": "ada@example.com", "role": "admin", "token": "opaque-token",
		})
	})
	mux.HandleFunc("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
		if reject.Load() || r.Header.Get("Authorization") != "Bearer opaque-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Not authorized, token failed"}`))
			return
		}
		_, _ = w.Write([]byte(`{"tasks":[{"_id":"t1","title":"a","todoChecklist":[{"text":"x","completed":true}]}],"statusSummary":{"all":1,"pendingTask":0,"inProgressTask":0,"completedTask":1}}`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestEngine_SessionLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var reject atomic.Bool
	ts := externalSystem(t, &reject)

	tokens := testutil.NewMemoryTokens("")
	client, err := api.NewClient(ts.URL, tokens, 0)
	require.NoError(t, err)
	store := session.NewStore(tokens, client)
	client.OnUnauthorized(func() { _ = store.Clear(context.Background()) })
	app := &server.App{Client: client, Session: store, Busy: busy.New()}
	router := server.NewEngine(app, notify.NewInbox(0))

	// still resolving
	resp := get(router, "/admin/tasks")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)

	require.NoError(t, store.Initialize(context.Background()))
	resp = get(router, "/admin/tasks")
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/login", resp.Header().Get("Location"))

	body, _ := json.Marshal(map[string]string{"email": "ada@example.com", "password": "pw"})
	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"redirect":"/admin/dashboard"`)
	assert.Equal(t, "opaque-token", tokens.Token())

	resp = get(router, "/admin/tasks?status=Completed")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"Completed"`)

	resp = get(router, "/user/tasks")
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/unauthorized", resp.Header().Get("Location"))

	// the external system stops accepting the token
	reject.Store(true)
	resp = get(router, "/admin/tasks")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Failed to fetch tasks")
	assert.Empty(t, tokens.Token())

	resp = get(router, "/admin/tasks")
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/login", resp.Header().Get("Location"))
}

func TestEngine_RootAndStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var reject atomic.Bool
	ts := externalSystem(t, &reject)

	tokens := testutil.NewMemoryTokens("")
	client, err := api.NewClient(ts.URL, tokens, 0)
	require.NoError(t, err)
	store := session.NewStore(tokens, client)
	require.NoError(t, store.Initialize(context.Background()))
	router := server.NewEngine(&server.App{Client: client, Session: store, Busy: busy.New()}, notify.NewInbox(0))

	resp := get(router, "/")
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/login", resp.Header().Get("Location"))

	resp = get(router, "/status")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"state":"anonymous"`)
}
