package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	apimiddleware "github.com/VernoB/TodoTask/internal/api/middleware"
	"github.com/VernoB/TodoTask/internal/config"
	"github.com/VernoB/TodoTask/internal/mocks"
	"github.com/VernoB/TodoTask/internal/platform/filestore"
	"github.com/VernoB/TodoTask/internal/service/auth"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	log := slog.New(slog.NewJSONHandler(io.Discard, nil))

	imageStore, err := filestore.NewDiskStore(t.TempDir(), log)
	require.NoError(t, err)

	jwtService, err := auth.NewTestJWTService()
	require.NoError(t, err)

	return &application{
		config: &config.Config{
			Upload: config.UploadConfig{Dir: imageStore.Dir(), MaxSizeMiB: 8},
		},
		logger:           log,
		userStore:        mocks.NewMockUserStore(),
		taskStore:        mocks.NewMockTaskStore(),
		jwtService:       jwtService,
		passwordHasher:   &mocks.MockPasswordHasher{},
		passwordVerifier: &mocks.MockPasswordVerifier{},
		imageStore:       imageStore,
		rateLimiter:      apimiddleware.NewRateLimiter(rate.Limit(1000), 1000),
		stopCleanup:      make(chan struct{}),
	}
}

func TestRouter_UnknownRouteEnvelope(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t).setupRouter()

	req := httptest.NewRequest("GET", "/no/such/route", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var errResp struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errResp))
	assert.Equal(t, http.StatusNotFound, errResp.Status)
	assert.Equal(t, "Not found!", errResp.Message)
}

func TestRouter_MethodNotAllowedEnvelope(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t).setupRouter()

	req := httptest.NewRequest("DELETE", "/auth/register", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var errResp struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errResp))
	assert.Equal(t, http.StatusMethodNotAllowed, errResp.Status)
}

func TestRouter_CORSHeaders(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t).setupRouter()

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/task/add", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("regular request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	})
}
