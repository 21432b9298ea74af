// Package tracking records per-exercise completion events and derives
// workout statistics from them and from the completed workout history.
package tracking

import "time"

// CompletedExercise is one completion event. At most one per exercise id
// per user; completing again overwrites the earlier event.
type CompletedExercise struct {
	ExerciseID     string    `json:"exerciseId"`
	PlanID         string    `json:"planId"`
	CompletedAt    time.Time `json:"completedAt"`
	CaloriesBurned float64   `json:"caloriesBurned"`
}

// PlanCompletion summarizes how far a user has gotten through a plan.
type PlanCompletion struct {
	PlanID             string  `json:"planId"`
	CompletedExercises int     `json:"completedExercises"`
	TotalExercises     int     `json:"totalExercises"`
	Percentage         float64 `json:"percentage"`
	CaloriesBurned     float64 `json:"caloriesBurned"`
}

// WeeklyCount is one bar of the weekly workout chart. Week is the Monday
// the ISO week starts on, formatted as 2006-01-02.
type WeeklyCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// Stats is the aggregate dashboard payload.
type Stats struct {
	TotalWorkouts       int           `json:"totalWorkouts"`
	TotalMinutes        int           `json:"totalMinutes"`
	TotalCaloriesBurned float64       `json:"totalCaloriesBurned"`
	CurrentStreak       int           `json:"currentStreak"`
	LongestStreak       int           `json:"longestStreak"`
	WeeklyCounts        []WeeklyCount `json:"weeklyCounts"`
}
