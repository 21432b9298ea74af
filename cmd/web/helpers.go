package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ojalehto/fitplan/internal/errors"

	"github.com/google/uuid"
)

// sessionUserIDKey is the session key holding the anonymous user id.
const sessionUserIDKey = "userID"

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.writeJSON(w, r, http.StatusInternalServerError, envelope{"error": "internal server error"})
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, r, status, envelope{"error": message})
}

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response", errors.SlogError(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// readJSON decodes the request body into dst, rejecting unknown fields. It
// writes the error response itself and reports success to the caller.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// currentUserID returns the anonymous user id for the session, minting one
// on first contact. The session cookie is what ties a browser to a profile.
func (app *application) currentUserID(r *http.Request) string {
	ctx := r.Context()
	if id := app.sessionManager.GetString(ctx, sessionUserIDKey); id != "" {
		return id
	}
	id := uuid.NewString()
	app.sessionManager.Put(ctx, sessionUserIDKey, id)
	return id
}
