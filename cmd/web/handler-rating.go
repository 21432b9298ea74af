package main

import (
	"net/http"

	"github.com/ojalehto/fitplan/internal/errors"
	"github.com/ojalehto/fitplan/internal/profile"
)

type ratingRequest struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

// planRatingPOST stores the user's 1 to 5 rating of a plan. Rating the same
// plan again replaces the earlier rating.
func (app *application) planRatingPOST(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	userID := app.currentUserID(r)
	planID := r.PathValue("id")

	err := app.profileService.RatePlan(r.Context(), userID, planID, req.Rating, req.Feedback)
	if errors.Is(err, profile.ErrInvalidRating) {
		app.clientError(w, r, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	if errors.Is(err, profile.ErrPlanNotFound) {
		app.clientError(w, r, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"rating": req.Rating})
}
