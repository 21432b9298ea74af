package profile_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/ojalehto/fitplan/internal/catalog"
	"github.com/ojalehto/fitplan/internal/errors"
	"github.com/ojalehto/fitplan/internal/profile"
	"github.com/ojalehto/fitplan/internal/sqlite"
)

func newTestService(t *testing.T) (*profile.Service, context.Context) {
	t.Helper()
	ctx := t.Context()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return profile.NewService(db, logger), ctx
}

func testPlan() profile.Plan {
	return profile.Plan{
		Name:         "Strength Workout",
		Difficulty:   catalog.DifficultyIntermediate,
		Duration:     45,
		Gender:       "female",
		MuscleGroups: []catalog.MuscleGroup{catalog.Core, catalog.Arms},
		Exercises: []catalog.Exercise{
			{Name: "Plank", Sets: 3, Reps: "30 seconds", MuscleGroup: catalog.Core, Instructions: "Hold a straight line from head to heels."},
			{Name: "Dumbbell Bicep Curl", Sets: 3, Reps: "10-14", MuscleGroup: catalog.Arms, Equipment: []string{"dumbbells"}},
		},
	}
}

func TestService_profileRoundTrip(t *testing.T) {
	svc, ctx := newTestService(t)

	saved, err := svc.Save(ctx, profile.UserProfile{
		ID:                 "user-1",
		Name:               "Taylor",
		Gender:             "female",
		Age:                31,
		Weight:             64.5,
		PreferredEquipment: []string{"dumbbells", "yoga mat"},
		MuscleGroups:       []catalog.MuscleGroup{catalog.Core},
	})
	if err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	if saved.LastUpdated.IsZero() {
		t.Error("LastUpdated not set on save")
	}

	got, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if got.Name != "Taylor" || got.Age != 31 || got.Weight != 64.5 {
		t.Errorf("profile fields lost in round trip: %+v", got)
	}
	if len(got.PreferredEquipment) != 2 {
		t.Errorf("got %d equipment entries, want 2", len(got.PreferredEquipment))
	}
}

func TestService_getUnknownUserReturnsEmptyProfile(t *testing.T) {
	svc, ctx := newTestService(t)

	got, err := svc.Get(ctx, "fresh-user")
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if got.ID != "fresh-user" {
		t.Errorf("got id %q, want fresh-user", got.ID)
	}
	if len(got.CompletedWorkouts) != 0 || len(got.Ratings) != 0 {
		t.Error("fresh profile has history")
	}
}

func TestService_planLifecycle(t *testing.T) {
	svc, ctx := newTestService(t)

	plan, err := svc.SavePlan(ctx, "user-1", testPlan())
	if err != nil {
		t.Fatalf("Failed to save plan: %v", err)
	}
	if plan.ID == "" {
		t.Fatal("saved plan has no id")
	}

	got, err := svc.GetPlan(ctx, "user-1", plan.ID)
	if err != nil {
		t.Fatalf("Failed to get plan: %v", err)
	}
	if len(got.Exercises) != 2 {
		t.Errorf("got %d exercises, want 2", len(got.Exercises))
	}
	if got.Exercises[0].Name != "Plank" {
		t.Errorf("exercise order lost: got %q first", got.Exercises[0].Name)
	}

	// The plan is scoped to its owner.
	if _, err = svc.GetPlan(ctx, "someone-else", plan.ID); !errors.Is(err, profile.ErrPlanNotFound) {
		t.Errorf("got %v, want ErrPlanNotFound for foreign user", err)
	}

	if err = svc.SetFavorite(ctx, "user-1", plan.ID, true); err != nil {
		t.Fatalf("Failed to set favorite: %v", err)
	}
	got, err = svc.GetPlan(ctx, "user-1", plan.ID)
	if err != nil {
		t.Fatalf("Failed to get plan: %v", err)
	}
	if !got.Favorite {
		t.Error("favorite flag not persisted")
	}
}

func TestService_completeWorkoutAppendsHistory(t *testing.T) {
	svc, ctx := newTestService(t)

	plan, err := svc.SavePlan(ctx, "user-1", testPlan())
	if err != nil {
		t.Fatalf("Failed to save plan: %v", err)
	}

	// Completing twice must produce two history rows.
	for i := 0; i < 2; i++ {
		if _, err = svc.CompleteWorkout(ctx, "user-1", plan.ID); err != nil {
			t.Fatalf("Failed to complete workout: %v", err)
		}
	}

	got, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if len(got.CompletedWorkouts) != 2 {
		t.Fatalf("got %d completed workouts, want 2", len(got.CompletedWorkouts))
	}
	if got.CompletedWorkouts[0].PlanName != "Strength Workout" {
		t.Errorf("got plan name %q", got.CompletedWorkouts[0].PlanName)
	}
}

func TestService_ratingUpsert(t *testing.T) {
	svc, ctx := newTestService(t)

	plan, err := svc.SavePlan(ctx, "user-1", testPlan())
	if err != nil {
		t.Fatalf("Failed to save plan: %v", err)
	}

	if err = svc.RatePlan(ctx, "user-1", plan.ID, 2, "too hard"); err != nil {
		t.Fatalf("Failed to rate plan: %v", err)
	}
	if err = svc.RatePlan(ctx, "user-1", plan.ID, 4, "better after adjusting"); err != nil {
		t.Fatalf("Failed to re-rate plan: %v", err)
	}

	got, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if len(got.Ratings) != 1 {
		t.Fatalf("got %d ratings, want 1 after upsert", len(got.Ratings))
	}
	if got.Ratings[0].Rating != 4 {
		t.Errorf("got rating %d, want 4", got.Ratings[0].Rating)
	}
}

func TestService_ratingValidation(t *testing.T) {
	svc, ctx := newTestService(t)

	for _, rating := range []int{0, 6, -1} {
		if err := svc.RatePlan(ctx, "user-1", "any", rating, ""); !errors.Is(err, profile.ErrInvalidRating) {
			t.Errorf("rating %d: got %v, want ErrInvalidRating", rating, err)
		}
	}
}
