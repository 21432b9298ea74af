package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/synctest"
	"time"
)

func Test_application_timeout(t *testing.T) {
	tests := []struct {
		name     string
		sleepMS  int
		timesOut bool
	}{
		{
			name:     "completes within timeout",
			sleepMS:  500,
			timesOut: false,
		},
		{
			name:     "times out",
			sleepMS:  3000,
			timesOut: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				// Create a minimal application for testing
				app := &application{ //nolint:exhaustruct // this is a test
					logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
				}
				handler := app.routes()

				url := fmt.Sprintf("/api/test/timeout?sleep_ms=%d", tt.sleepMS)
				req := httptest.NewRequest(http.MethodGet, url, nil)
				w := httptest.NewRecorder()

				handler.ServeHTTP(w, req)

				time.Sleep(time.Duration(tt.sleepMS) * time.Millisecond)

				if tt.timesOut {
					// TimeoutHandler returns 503 Service Unavailable with "timed out" message
					if w.Code != http.StatusServiceUnavailable {
						t.Errorf("Expected status 503 on timeout, got %d", w.Code)
					}

					if !strings.Contains(w.Body.String(), "timed out") {
						t.Errorf("Expected timeout message in response body, got: %s", w.Body.String())
					}
				} else if w.Code != http.StatusOK {
					t.Errorf("Expected status 200, got %d", w.Code)
				}
			})
		})
	}
}

func Test_secureHeaders(t *testing.T) {
	handler := secureHeaders(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	for header, want := range map[string]string{
		"X-Content-Type-Options":     "nosniff",
		"X-Frame-Options":            "deny",
		"Cross-Origin-Opener-Policy": "same-origin",
	} {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}
