package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/pkg/config"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"
	"marketplace/pkg/metrics"
	"marketplace/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type pingHandler struct{}

func (pingHandler) RegisterRoutes(router *httprouter.Router, gate *middleware.Gate) {
	router.GET("/api/v1/ping", gate.Require(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		_ = httputil.WriteMessage(w, http.StatusOK, "pong")
	}, "READ"))
}

func newTestApplication(t *testing.T, store Pinger) *Application {
	t.Helper()
	cfg := &config.Config{
		Port:           "0",
		JWTSecret:      testSecret,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		RequestTimeout: time.Second,
		IdempotencyTTL: time.Minute,
		MaxRequestSize: 1 << 20,
		Log:            logger.NewNop(),
	}
	a := NewApplication(cfg, metrics.New(), nil)
	a.SetApp(store, pingHandler{})
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateLimiter.Stop()
	})
	return a
}

func serve(a *Application, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestApplication_HealthAndReady(t *testing.T) {
	a := newTestApplication(t, fakePinger{})
	assert.Equal(t, http.StatusOK, serve(a, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(a, httptest.NewRequest(http.MethodGet, "/ready", nil)).Code)

	down := newTestApplication(t, fakePinger{err: errors.New("down")})
	rec := serve(down, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}

func TestApplication_GatedRoute(t *testing.T) {
	a := newTestApplication(t, fakePinger{})

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := middleware.IssueToken(testSecret, "tester", []string{"READ"}, time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = serve(a, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestApplication_UnknownRoute(t *testing.T) {
	a := newTestApplication(t, fakePinger{})
	rec := serve(a, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplication_Metrics(t *testing.T) {
	a := newTestApplication(t, fakePinger{})
	serve(a, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
