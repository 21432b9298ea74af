package main

import (
	"net/http"

	"github.com/ojalehto/fitplan/internal/errors"
	"github.com/ojalehto/fitplan/internal/profile"
	"github.com/ojalehto/fitplan/internal/tracking"
)

// exerciseCompletePOST records a completion event for one exercise of a
// plan. Completing the last remaining exercise also appends the whole
// workout to the user's history.
func (app *application) exerciseCompletePOST(w http.ResponseWriter, r *http.Request) {
	userID := app.currentUserID(r)
	planID := r.PathValue("id")
	exerciseName := r.PathValue("exercise")

	event, err := app.trackingService.CompleteExercise(r.Context(), userID, planID, exerciseName)
	if errors.Is(err, profile.ErrPlanNotFound) {
		app.clientError(w, r, http.StatusNotFound, "plan not found")
		return
	}
	if errors.Is(err, tracking.ErrExerciseNotInPlan) {
		app.clientError(w, r, http.StatusNotFound, "exercise not in plan")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	completion, err := app.trackingService.PlanCompletion(r.Context(), userID, planID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if completion.CompletedExercises == completion.TotalExercises {
		if _, err = app.profileService.CompleteWorkout(r.Context(), userID, planID); err != nil {
			app.serverError(w, r, err)
			return
		}
	}

	app.writeJSON(w, r, http.StatusOK, envelope{
		"event":      event,
		"completion": completion,
	})
}

// statsGET returns the dashboard statistics for the session user.
func (app *application) statsGET(w http.ResponseWriter, r *http.Request) {
	stats, err := app.trackingService.Stats(r.Context(), app.currentUserID(r))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, stats)
}
