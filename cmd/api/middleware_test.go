// File: cmd/api/middleware_test.go
// Description: Tests for middleware functionality

package main

import (
	"flag"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverPanicMiddleware(t *testing.T) {
	app, _ := newTestApp(t)

	handler := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/records", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "close", rr.Header().Get("Connection"))
	assert.Contains(t, rr.Body.String(), "the server encountered a problem")
}

func TestLogRequestMiddleware(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("Generates an id", func(t *testing.T) {
		rr := makeRequest(t, app, http.MethodGet, "/healthcheck", nil)
		_, err := uuid.Parse(rr.Header().Get("X-Request-Id"))
		assert.NoError(t, err)
	})

	t.Run("Keeps a valid client id", func(t *testing.T) {
		id := uuid.NewString()
		rr := makeRequest(t, app, http.MethodGet, "/healthcheck", map[string]string{"X-Request-Id": id})
		assert.Equal(t, id, rr.Header().Get("X-Request-Id"))
	})

	t.Run("Replaces a malformed client id", func(t *testing.T) {
		rr := makeRequest(t, app, http.MethodGet, "/healthcheck", map[string]string{"X-Request-Id": "not-a-uuid"})
		assert.NotEqual(t, "not-a-uuid", rr.Header().Get("X-Request-Id"))
	})

	t.Run("Id reaches the handler", func(t *testing.T) {
		var seen string
		handler := app.logRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = contextGetRequestID(r)
			w.WriteHeader(http.StatusTeapot)
		}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Equal(t, rr.Header().Get("X-Request-Id"), seen)
	})
}

func TestEnableCORSMiddleware(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name           string
		method         string
		headers        map[string]string
		expectedStatus int
		expectedOrigin string
		expectedAllow  string
	}{
		{
			name:           "Trusted origin",
			method:         http.MethodGet,
			headers:        map[string]string{"Origin": "http://localhost:5173"},
			expectedStatus: http.StatusOK,
			expectedOrigin: "http://localhost:5173",
		},
		{
			name:           "Untrusted origin",
			method:         http.MethodGet,
			headers:        map[string]string{"Origin": "http://evil.example"},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Preflight",
			method: http.MethodOptions,
			headers: map[string]string{
				"Origin":                        "http://localhost:5173",
				"Access-Control-Request-Method": http.MethodGet,
			},
			expectedStatus: http.StatusOK,
			expectedOrigin: "http://localhost:5173",
			expectedAllow:  "OPTIONS, GET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := makeRequest(t, app, tt.method, "/records", tt.headers)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.expectedAllow, rr.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	app, _ := newTestApp(t)
	app.config.rateLimit.enabled = true

	handler := app.routes()
	codes := make([]int, 0, 3)
	for range 3 {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
		codes = append(codes, rr.Code)
	}

	require.Len(t, codes, 3)
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouterErrors(t *testing.T) {
	app, _ := newTestApp(t)

	rr := makeRequest(t, app, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"the requested resource could not be found"}`, rr.Body.String())

	rr = makeRequest(t, app, http.MethodPost, "/records", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"error":"the POST method is not supported for this resource"}`, rr.Body.String())
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("CORS_TRUSTED_ORIGINS", "http://a.example http://b.example")

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "Memory store", args: []string{"-store", "memory", "-port", "8080"}},
		{name: "Bad port", args: []string{"-store", "memory", "-port", "0"}, wantErr: true},
		{name: "Bad env", args: []string{"-store", "memory", "-env", "qa"}, wantErr: true},
		{name: "Postgres needs dsn", args: []string{"-store", "postgres", "-db-dsn", ""}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("api", flag.ContinueOnError)
			cfg, err := loadConfig(fs, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 8080, cfg.port)
			assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.cors.trustedOrigins)
		})
	}
}
