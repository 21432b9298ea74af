// Package profile defines the user profile domain model and its SQLite
// backed repository.
package profile

import (
	"time"

	"github.com/ojalehto/fitplan/internal/catalog"
)

// UserProfile is everything the planner and the recommendation engine know
// about a user: demographics, equipment and muscle group preferences, and
// the accumulated workout history with ratings.
type UserProfile struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	Gender             string                `json:"gender"`
	Age                int                   `json:"age"`
	Weight             float64               `json:"weight"`
	PreferredEquipment []string              `json:"preferredEquipment"`
	MuscleGroups       []catalog.MuscleGroup `json:"muscleGroups"`
	CompletedWorkouts  []CompletedWorkout    `json:"completedWorkouts"`
	Ratings            []WorkoutRating       `json:"ratings"`
	LastUpdated        time.Time             `json:"lastUpdated"`
}

// CompletedWorkout is one append-only history entry recorded when the user
// finishes a workout plan.
type CompletedWorkout struct {
	ID          string             `json:"id"`
	PlanID      string             `json:"planId"`
	PlanName    string             `json:"planName"`
	Difficulty  catalog.Difficulty `json:"difficulty"`
	Duration    int                `json:"duration"`
	CompletedAt time.Time          `json:"completedAt"`
}

// WorkoutRating is the user's 1 to 5 star rating of a plan with optional
// free-text feedback. One rating per user and plan; re-rating overwrites.
type WorkoutRating struct {
	PlanID   string    `json:"planId"`
	Rating   int       `json:"rating"`
	Feedback string    `json:"feedback"`
	RatedAt  time.Time `json:"ratedAt"`
}
