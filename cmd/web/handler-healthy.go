package main

import (
	"net/http"
	"strconv"
	"time"
)

// healthy reports liveness. It runs outside the session middleware so load
// balancer probes never allocate sessions.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, envelope{"status": "ok"})
}

// testTimeout sleeps for the sleep_ms query parameter before responding. It
// exists to exercise the timeout middleware in tests.
func (app *application) testTimeout(w http.ResponseWriter, r *http.Request) {
	sleepMs := 0
	if raw := r.URL.Query().Get("sleep_ms"); raw != "" {
		var err error
		if sleepMs, err = strconv.Atoi(raw); err != nil {
			app.clientError(w, r, http.StatusBadRequest, "sleep_ms must be an integer")
			return
		}
	}

	if sleepMs > 0 {
		time.Sleep(time.Duration(sleepMs) * time.Millisecond)
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"status": "completed", "sleptMs": sleepMs})
}
