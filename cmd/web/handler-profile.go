package main

import (
	"net/http"

	"github.com/ojalehto/fitplan/internal/catalog"
	"github.com/ojalehto/fitplan/internal/profile"
)

type profileUpdateRequest struct {
	Name               string   `json:"name"`
	Gender             string   `json:"gender"`
	Age                int      `json:"age"`
	Weight             float64  `json:"weight"`
	PreferredEquipment []string `json:"preferredEquipment"`
	MuscleGroups       []string `json:"muscleGroups"`
}

// profileGET returns the session user's profile with history and ratings.
func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	user, err := app.profileService.Get(r.Context(), app.currentUserID(r))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, user)
}

// profilePUT replaces the demographic and preference fields of the profile.
func (app *application) profilePUT(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Age < 0 || req.Age > 120 {
		app.clientError(w, r, http.StatusBadRequest, "age out of range")
		return
	}
	if req.Weight < 0 {
		app.clientError(w, r, http.StatusBadRequest, "weight must not be negative")
		return
	}

	saved, err := app.profileService.Save(r.Context(), profile.UserProfile{
		ID:                 app.currentUserID(r),
		Name:               req.Name,
		Gender:             req.Gender,
		Age:                req.Age,
		Weight:             req.Weight,
		PreferredEquipment: req.PreferredEquipment,
		MuscleGroups:       catalog.MuscleGroupsFromStrings(req.MuscleGroups),
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, saved)
}
