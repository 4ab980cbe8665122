package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"franchise-ops/internal/common/logger"
)

func TestHealthServer_Health(t *testing.T) {
	server := newHealthServer(0, readinessChecks{}, logger.NewTestLogger(t))

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestHealthServer_Ready(t *testing.T) {
	tests := []struct {
		name         string
		checks       readinessChecks
		expectStatus int
		expectState  string
	}{
		{
			name: "all dependencies up",
			checks: readinessChecks{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return nil },
			},
			expectStatus: http.StatusOK,
			expectState:  "ready",
		},
		{
			name: "one dependency down",
			checks: readinessChecks{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("dial tcp: connection refused") },
			},
			expectStatus: http.StatusServiceUnavailable,
			expectState:  "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newHealthServer(0, tt.checks, logger.NewTestLogger(t))

			rec := httptest.NewRecorder()
			server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.expectStatus, rec.Code)

			var body struct {
				Status       string            `json:"status"`
				Dependencies map[string]string `json:"dependencies"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectState, body.Status)
			assert.Equal(t, "ok", body.Dependencies["postgres"])
		})
	}
}

func TestHealthServer_Metrics(t *testing.T) {
	server := newHealthServer(0, readinessChecks{}, logger.NewTestLogger(t))

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
