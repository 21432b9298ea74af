package planner

import (
	"github.com/ojalehto/fitplan/internal/catalog"
)

// Plan is a generated workout plan. It is immutable once generated; callers
// that need to tweak a plan work on a copy.
type Plan struct {
	Name         string                `json:"name,omitempty"`
	Exercises    []catalog.Exercise    `json:"exercises"`
	Duration     int                   `json:"duration"`
	Difficulty   catalog.Difficulty    `json:"difficulty"`
	Gender       string                `json:"gender,omitempty"`
	MuscleGroups []catalog.MuscleGroup `json:"muscleGroups"`
}

// Request carries the questionnaire answers that drive plan assembly.
//
// Equipment and muscle-group values are not validated here: unknown values
// silently fail every filter test and yield fewer or zero exercises.
type Request struct {
	Equipment    []string              `json:"equipment"`
	MuscleGroups []catalog.MuscleGroup `json:"muscleGroups"`
	Gender       string                `json:"gender"`
	Duration     int                   `json:"duration"`
	Difficulty   catalog.Difficulty    `json:"difficulty"`
	Goal         string                `json:"goal,omitempty"`
}
