package web_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/veles-works/ems-console/internal/session"
	"github.com/veles-works/ems-console/internal/web"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestHealthChecker(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	t.Run("all checks pass", func(t *testing.T) {
		checker := web.NewHealthChecker(session.NewMemoryStore(time.Hour), upstream.URL, log)

		recorder := httptest.NewRecorder()
		checker.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"session_store": "ok", "ems_api": "ok"}`, recorder.Body.String())
	})

	t.Run("session store down", func(t *testing.T) {
		checker := web.NewHealthChecker(failingPinger{}, upstream.URL, log)

		recorder := httptest.NewRecorder()
		checker.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"session_store":"unavailable"`)
	})

	t.Run("ems api unreachable", func(t *testing.T) {
		checker := web.NewHealthChecker(session.NewMemoryStore(time.Hour), "http://127.0.0.1:1", log)

		recorder := httptest.NewRecorder()
		checker.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"ems_api":"unreachable"`)
	})
}
