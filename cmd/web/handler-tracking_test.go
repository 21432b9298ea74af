package main

import (
	"net/http"
	"testing"

	"github.com/ojalehto/fitplan/internal/e2etest"
	"github.com/ojalehto/fitplan/internal/testhelpers"
)

type completionResponse struct {
	Event struct {
		ExerciseID     string  `json:"exerciseId"`
		CaloriesBurned float64 `json:"caloriesBurned"`
	} `json:"event"`
	Completion struct {
		CompletedExercises int     `json:"completedExercises"`
		TotalExercises     int     `json:"totalExercises"`
		Percentage         float64 `json:"percentage"`
	} `json:"completion"`
}

func completeExercise(t *testing.T, client *e2etest.Client, planID, exercise string) completionResponse {
	t.Helper()

	resp, err := client.PostJSON(t.Context(), "/api/plans/"+planID+"/exercises/"+exercise+"/complete", nil)
	if err != nil {
		t.Fatalf("Failed to complete exercise: %v", err)
	}
	var completion completionResponse
	if err = e2etest.DecodeJSON(resp, http.StatusOK, &completion); err != nil {
		t.Fatalf("Failed to decode completion: %v", err)
	}
	return completion
}

func Test_application_completeWorkoutFlow(t *testing.T) {
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()
	ctx := t.Context()

	plan := generatePlan(t, client)

	for i, exercise := range plan.Exercises {
		completion := completeExercise(t, client, plan.ID, exercise.Name)
		if completion.Completion.CompletedExercises != i+1 {
			t.Errorf("after exercise %d: got %d completed", i, completion.Completion.CompletedExercises)
		}
		if completion.Event.CaloriesBurned <= 0 {
			t.Errorf("exercise %q burned no calories", exercise.Name)
		}
	}

	// Re-completing overwrites the event instead of adding another one.
	completion := completeExercise(t, client, plan.ID, plan.Exercises[0].Name)
	if completion.Completion.CompletedExercises != len(plan.Exercises) {
		t.Errorf("re-completion changed the count to %d", completion.Completion.CompletedExercises)
	}
	if completion.Completion.Percentage != 100 {
		t.Errorf("got %.1f%% completion, want 100", completion.Completion.Percentage)
	}

	var stats struct {
		TotalWorkouts       int     `json:"totalWorkouts"`
		TotalMinutes        int     `json:"totalMinutes"`
		TotalCaloriesBurned float64 `json:"totalCaloriesBurned"`
		CurrentStreak       int     `json:"currentStreak"`
	}
	if err = client.GetJSON(ctx, "/api/stats", &stats); err != nil {
		t.Fatalf("Failed to fetch stats: %v", err)
	}
	if stats.TotalWorkouts < 1 {
		t.Errorf("got %d total workouts, want at least 1", stats.TotalWorkouts)
	}
	if stats.TotalCaloriesBurned <= 0 {
		t.Error("no calories recorded in stats")
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("got streak %d, want 1", stats.CurrentStreak)
	}
}

func Test_application_completeUnknownExercise(t *testing.T) {
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()

	plan := generatePlan(t, client)

	resp, err := client.PostJSON(t.Context(), "/api/plans/"+plan.ID+"/exercises/Nonexistent/complete", nil)
	if err != nil {
		t.Fatalf("Failed to post: %v", err)
	}
	if err = e2etest.DecodeJSON(resp, http.StatusNotFound, nil); err != nil {
		t.Errorf("unexpected response: %v", err)
	}
}

func Test_application_ratingAndDifficulty(t *testing.T) {
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()
	ctx := t.Context()

	// Without history the adjuster recommends intermediate.
	var suggestion struct {
		Difficulty string `json:"difficulty"`
		Reason     string `json:"reason"`
	}
	if err = client.GetJSON(ctx, "/api/difficulty", &suggestion); err != nil {
		t.Fatalf("Failed to fetch difficulty: %v", err)
	}
	if suggestion.Difficulty != "intermediate" {
		t.Errorf("got %q, want intermediate for empty history", suggestion.Difficulty)
	}
	if suggestion.Reason != "No workout history available" {
		t.Errorf("got reason %q", suggestion.Reason)
	}

	plan := generatePlan(t, client)
	for _, exercise := range plan.Exercises {
		completeExercise(t, client, plan.ID, exercise.Name)
	}

	resp, err := client.PostJSON(ctx, "/api/plans/"+plan.ID+"/rating", map[string]any{
		"rating":   2,
		"feedback": "way too hard for me",
	})
	if err != nil {
		t.Fatalf("Failed to rate plan: %v", err)
	}
	if err = e2etest.DecodeJSON(resp, http.StatusOK, nil); err != nil {
		t.Fatalf("Rate plan: %v", err)
	}

	// The negative feedback should pull the suggestion down to beginner.
	if err = client.GetJSON(ctx, "/api/difficulty", &suggestion); err != nil {
		t.Fatalf("Failed to fetch difficulty: %v", err)
	}
	if suggestion.Difficulty != "beginner" {
		t.Errorf("got %q after negative feedback, want beginner", suggestion.Difficulty)
	}

	// Out-of-range ratings are rejected.
	if resp, err = client.PostJSON(ctx, "/api/plans/"+plan.ID+"/rating", map[string]any{"rating": 6}); err != nil {
		t.Fatalf("Failed to post rating: %v", err)
	}
	if err = e2etest.DecodeJSON(resp, http.StatusBadRequest, nil); err != nil {
		t.Errorf("unexpected response for invalid rating: %v", err)
	}
}

func Test_application_recommendations(t *testing.T) {
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()
	ctx := t.Context()

	plan := generatePlan(t, client)

	var recommendations struct {
		Recommendations []struct {
			Workout struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"workout"`
			Score  float64 `json:"score"`
			Reason string  `json:"reason"`
			Source string  `json:"source"`
		} `json:"recommendations"`
	}
	if err = client.GetJSON(ctx, "/api/recommendations?planID="+plan.ID+"&topN=3", &recommendations); err != nil {
		t.Fatalf("Failed to fetch recommendations: %v", err)
	}
	if len(recommendations.Recommendations) == 0 {
		t.Fatal("got no recommendations")
	}
	if len(recommendations.Recommendations) > 3 {
		t.Errorf("got %d recommendations, want at most 3", len(recommendations.Recommendations))
	}
	for _, rec := range recommendations.Recommendations {
		if rec.Reason == "" {
			t.Errorf("recommendation %s has no reason", rec.Workout.ID)
		}
	}

	resp, err := client.Get(ctx, "/api/recommendations?topN=zero")
	if err != nil {
		t.Fatalf("Failed to fetch: %v", err)
	}
	if err = e2etest.DecodeJSON(resp, http.StatusBadRequest, nil); err != nil {
		t.Errorf("unexpected response for bad topN: %v", err)
	}
}

func Test_application_profileRoundTrip(t *testing.T) {
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()
	ctx := t.Context()

	resp, err := client.PutJSON(ctx, "/api/profile", map[string]any{
		"name":               "Kim",
		"gender":             "female",
		"age":                28,
		"weight":             61.0,
		"preferredEquipment": []string{"dumbbells"},
		"muscleGroups":       []string{"Core", "Arms"},
	})
	if err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	if err = e2etest.DecodeJSON(resp, http.StatusOK, nil); err != nil {
		t.Fatalf("Save profile: %v", err)
	}

	var fetched struct {
		Name         string   `json:"name"`
		Age          int      `json:"age"`
		MuscleGroups []string `json:"muscleGroups"`
	}
	if err = client.GetJSON(ctx, "/api/profile", &fetched); err != nil {
		t.Fatalf("Failed to fetch profile: %v", err)
	}
	if fetched.Name != "Kim" || fetched.Age != 28 {
		t.Errorf("profile lost fields: %+v", fetched)
	}
	if len(fetched.MuscleGroups) != 2 {
		t.Errorf("got %d muscle groups, want 2", len(fetched.MuscleGroups))
	}

	// Invalid age is rejected.
	if resp, err = client.PutJSON(ctx, "/api/profile", map[string]any{"age": 300}); err != nil {
		t.Fatalf("Failed to put profile: %v", err)
	}
	if err = e2etest.DecodeJSON(resp, http.StatusBadRequest, nil); err != nil {
		t.Errorf("unexpected response for invalid age: %v", err)
	}
}
