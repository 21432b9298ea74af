package main

import (
	"net/http"

	"github.com/ojalehto/fitplan/internal/difficulty"
)

// difficultyGET returns the difficulty suggestion derived from the session
// user's workout history and feedback.
func (app *application) difficultyGET(w http.ResponseWriter, r *http.Request) {
	user, err := app.profileService.Get(r.Context(), app.currentUserID(r))
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, difficulty.Analyze(user))
}
