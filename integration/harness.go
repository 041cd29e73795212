package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	apirest "github.com/skillmastery/server/api/rest"
	"github.com/skillmastery/server/audit"
	"github.com/skillmastery/server/cache"
	"github.com/skillmastery/server/config"
	mw "github.com/skillmastery/server/middleware"
	"github.com/skillmastery/server/scheduler"
	"github.com/skillmastery/server/service"
	"github.com/skillmastery/server/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	testJWTSecret = "integration-test-secret"
	testAdminKey  = "integration-admin-key"
)

// TestServer wraps a real HTTP server with every subsystem wired together.
type TestServer struct {
	DB     *gorm.DB
	Cache  cache.Cache
	Audit  *audit.Service
	Sched  *scheduler.Scheduler
	Server *httptest.Server
	URL    string // http://127.0.0.1:<port>
	Token  string
	cancel context.CancelFunc
}

// NewTestServer creates a fully wired server for integration testing.
// It mirrors the dependency wiring in main.go.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// ---- Infrastructure ----
	db := testutil.SetupTestDB(t)
	c := testutil.SetupTestCache(t)
	logger := zap.NewNop()
	ctx, cancel := context.WithCancel(context.Background())

	srvCfg := config.ServerConfig{AdminKey: testAdminKey, APIVersions: []string{"1"}}
	sec := config.SecurityConfig{
		JWTSecret:      testJWTSecret,
		RateLimitRPS:   1000,
		RateLimitBurst: 2000,
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	auditSvc := audit.New(db, logger)
	sched := scheduler.New(logger)
	require.NoError(t, sched.AddJob("audit_retention", "@every 1h", func(ctx context.Context) error {
		_, err := auditSvc.Purge(ctx, 720*time.Hour)
		return err
	}))

	services := service.New(db, service.WithListCache(c, time.Minute), service.WithLogger(logger))

	r := apirest.NewRouter(ctx, apirest.RouterDeps{
		DB:        db,
		Services:  services,
		Audit:     auditSvc,
		Scheduler: sched,
		Server:    srvCfg,
		Security:  sec,
		Logger:    logger,
	})
	srv := httptest.NewServer(apirest.CaseInsensitive(r))

	token, err := mw.GenerateToken("integration", testJWTSecret, time.Hour)
	require.NoError(t, err)

	ts := &TestServer{
		DB:     db,
		Cache:  c,
		Audit:  auditSvc,
		Sched:  sched,
		Server: srv,
		URL:    srv.URL,
		Token:  token,
		cancel: cancel,
	}
	t.Cleanup(ts.Close)
	return ts
}

// Close stops the server and background workers. Safe to call twice.
func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.Sched.Stop()
	ts.Audit.Stop(context.Background())
	ts.cancel()
}

// --- HTTP helpers ---

// Do sends a request with a JSON body and the server's Bearer token.
func (ts *TestServer) Do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ts.Token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// Admin sends an admin request carrying the admin key.
func (ts *TestServer) Admin(t *testing.T, method, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("X-Admin-Key", testAdminKey)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// Create POSTs body to /api/v1/<entity> and returns the new id.
func (ts *TestServer) Create(t *testing.T, entity string, body interface{}) int64 {
	t.Helper()
	resp := ts.Do(t, http.MethodPost, "/api/v1/"+entity, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create %s", entity)
	var out struct {
		ID int64 `json:"id"`
	}
	ReadJSON(t, resp, &out)
	require.NotZero(t, out.ID)
	return out.ID
}

// ReadJSON decodes and closes the response body.
func ReadJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v), "body: %s", string(data))
}

var seq atomic.Int64

// UniqueEmail returns a fresh address per call.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, seq.Add(1))
}
