package main

import (
	"net/http"
	"strconv"

	"github.com/ojalehto/fitplan/internal/errors"
	"github.com/ojalehto/fitplan/internal/profile"
	"github.com/ojalehto/fitplan/internal/recommend"
)

const defaultRecommendationCount = 5

// recommendationsGET returns workout recommendations for the session user.
// An optional planID query parameter supplies the "current workout" for
// content-based similarity.
func (app *application) recommendationsGET(w http.ResponseWriter, r *http.Request) {
	userID := app.currentUserID(r)

	topN := defaultRecommendationCount
	if raw := r.URL.Query().Get("topN"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			app.clientError(w, r, http.StatusBadRequest, "topN must be a positive integer")
			return
		}
		topN = n
	}

	user, err := app.profileService.Get(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var current *recommend.Workout
	if planID := r.URL.Query().Get("planID"); planID != "" {
		plan, err := app.profileService.GetPlan(r.Context(), userID, planID)
		if errors.Is(err, profile.ErrPlanNotFound) {
			app.clientError(w, r, http.StatusNotFound, "plan not found")
			return
		}
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		equipment := equipmentOf(plan)
		current = &recommend.Workout{
			ID:           plan.ID,
			Name:         plan.Name,
			Difficulty:   plan.Difficulty,
			Duration:     plan.Duration,
			MuscleGroups: plan.MuscleGroups,
			Equipment:    equipment,
		}
	}

	recommendations := app.engine.Recommend(user, current, topN)
	app.writeJSON(w, r, http.StatusOK, envelope{"recommendations": recommendations})
}

// equipmentOf collects the distinct equipment tags across a plan's
// exercises, in first-seen order.
func equipmentOf(plan profile.Plan) []string {
	seen := make(map[string]bool)
	var equipment []string
	for _, e := range plan.Exercises {
		for _, tag := range e.Equipment {
			if !seen[tag] {
				seen[tag] = true
				equipment = append(equipment, tag)
			}
		}
	}
	return equipment
}
