package main

import (
	"net/http"

	"github.com/ojalehto/fitplan/internal/catalog"
	"github.com/ojalehto/fitplan/internal/errors"
	"github.com/ojalehto/fitplan/internal/planner"
	"github.com/ojalehto/fitplan/internal/profile"
)

// planGenerateRequest is the questionnaire payload.
type planGenerateRequest struct {
	Goal         string   `json:"goal"`
	Equipment    []string `json:"equipment"`
	MuscleGroups []string `json:"muscleGroups"`
	Gender       string   `json:"gender"`
	Duration     int      `json:"duration"`
	Difficulty   string   `json:"difficulty"`
}

// planGeneratePOST assembles a plan from the questionnaire answers and
// persists it for the session user.
func (app *application) planGeneratePOST(w http.ResponseWriter, r *http.Request) {
	var req planGenerateRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Duration <= 0 {
		app.clientError(w, r, http.StatusBadRequest, "duration must be positive")
		return
	}

	difficultyTier := catalog.Difficulty(req.Difficulty)
	switch difficultyTier {
	case catalog.DifficultyBeginner, catalog.DifficultyIntermediate, catalog.DifficultyAdvanced:
	case "":
		difficultyTier = catalog.DifficultyIntermediate
	default:
		app.clientError(w, r, http.StatusBadRequest, "unknown difficulty: "+req.Difficulty)
		return
	}

	groups := catalog.MuscleGroupsFromStrings(req.MuscleGroups)
	if len(groups) == 0 {
		groups = []catalog.MuscleGroup{catalog.GroupAll}
	}

	generated := app.assembler.Generate(planner.Request{
		Equipment:    req.Equipment,
		MuscleGroups: groups,
		Gender:       req.Gender,
		Duration:     req.Duration,
		Difficulty:   difficultyTier,
		Goal:         req.Goal,
	})

	userID := app.currentUserID(r)
	plan, err := app.profileService.SavePlan(r.Context(), userID, profile.Plan{
		Name:         generated.Name,
		Difficulty:   generated.Difficulty,
		Duration:     generated.Duration,
		Gender:       generated.Gender,
		MuscleGroups: generated.MuscleGroups,
		Exercises:    generated.Exercises,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, plan)
}

// planGET returns a stored plan together with its completion state.
func (app *application) planGET(w http.ResponseWriter, r *http.Request) {
	userID := app.currentUserID(r)
	planID := r.PathValue("id")

	plan, err := app.profileService.GetPlan(r.Context(), userID, planID)
	if errors.Is(err, profile.ErrPlanNotFound) {
		app.clientError(w, r, http.StatusNotFound, "plan not found")
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

	app.writeJSON(w, r, http.StatusOK, envelope{
		"plan":       plan,
		"completion": completion,
	})
}

// planFavoritesGET lists the session user's favorited plans.
func (app *application) planFavoritesGET(w http.ResponseWriter, r *http.Request) {
	userID := app.currentUserID(r)

	plans, err := app.profileService.ListPlans(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	favorites := make([]profile.Plan, 0, len(plans))
	for _, plan := range plans {
		if plan.Favorite {
			favorites = append(favorites, plan)
		}
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"favorites": favorites})
}

func (app *application) planFavoritePOST(w http.ResponseWriter, r *http.Request) {
	app.setFavorite(w, r, true)
}

func (app *application) planFavoriteDELETE(w http.ResponseWriter, r *http.Request) {
	app.setFavorite(w, r, false)
}

func (app *application) setFavorite(w http.ResponseWriter, r *http.Request, favorite bool) {
	userID := app.currentUserID(r)
	planID := r.PathValue("id")

	err := app.profileService.SetFavorite(r.Context(), userID, planID, favorite)
	if errors.Is(err, profile.ErrPlanNotFound) {
		app.clientError(w, r, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"favorite": favorite})
}
