package main

import (
	"bytes"
	"net/http"

	"github.com/yuin/goldmark"
)

// exerciseInstructionsGET renders an exercise's instructions from markdown
// to HTML.
func (app *application) exerciseInstructionsGET(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	exercise, ok := app.catalog.Find(name)
	if !ok {
		app.clientError(w, r, http.StatusNotFound, "exercise not found")
		return
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(exercise.Instructions), &html); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{
		"name":         exercise.Name,
		"muscleGroup":  exercise.MuscleGroup,
		"equipment":    exercise.Equipment,
		"instructions": html.String(),
	})
}
