package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/2beens/repvision/internal/analysis"
	"github.com/2beens/repvision/internal/config"
	"github.com/2beens/repvision/internal/exercise"
	"github.com/2beens/repvision/internal/telemetry/metrics"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	rdb, _ := redismock.NewClientMock()
	t.Cleanup(func() {
		_ = rdb.Close()
	})

	registry, err := exercise.NewDefaultRegistry(nil)
	require.NoError(t, err)
	metricsManager := metrics.NewTestManager()

	return &Server{
		config: &config.Config{
			CorsAllowedOrigins: []string{"http://localhost:3000"},
		},
		redisClient:     rdb,
		versionInfo:     "test-version",
		analysisService: analysis.NewService(analysis.NewAnalyzer(registry, metricsManager), nil, 0),
		metricsManager:  metricsManager,
	}
}

func TestServer_routerSetup(t *testing.T) {
	server := newTestServer(t)
	router, err := server.routerSetup()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var health healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, healthResponse{Status: "ok", Version: "test-version", Jobs: false}, health)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "repvision", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/exercises", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/nothing-here", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Equal(t, float64(3), testutil.ToFloat64(server.metricsManager.CounterRequests.WithLabelValues("GET", "200")))
}

func TestServer_routerSetup_AuthRequired(t *testing.T) {
	server := newTestServer(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("api-token"), bcrypt.MinCost)
	require.NoError(t, err)
	server.apiTokenHash = string(hash)
	router, err := server.routerSetup()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/analysis/video/v1", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_GracefulShutdown_NotServing(t *testing.T) {
	server := newTestServer(t)
	server.consumerDone = make(chan struct{})
	close(server.consumerDone)
	server.otelShutdown = func() {}

	assert.NotPanics(t, server.GracefulShutdown)
	assert.Equal(t, float64(0), testutil.ToFloat64(server.metricsManager.GaugeLifeSignal))
}
