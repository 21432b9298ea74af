// Smoke test verifies that a running fitplan instance serves its main
// endpoints. It drives the full workout loop with independent sessions in
// parallel: generate a plan, complete its exercises, rate it, and read back
// difficulty, recommendations, and stats.
//
// Usage: smoketest hostname (e.g. smoketest localhost:8080)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ojalehto/fitplan/internal/e2etest"
	"github.com/ojalehto/fitplan/internal/logging"
	"github.com/ojalehto/fitplan/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	smokeTimeout      = 30 * time.Second
	expectedArgsCount = 2
)

type plan struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Exercises []struct {
		Name string `json:"name"`
	} `json:"exercises"`
}

type completion struct {
	Completion struct {
		CompletedExercises int `json:"completedExercises"`
		TotalExercises     int `json:"totalExercises"`
	} `json:"completion"`
}

// newClient creates a client with a fresh cookie jar so that each scenario
// runs as its own anonymous user.
func newClient(serverURL string) (*e2etest.Client, error) {
	client, err := e2etest.NewClient(serverURL)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func generatePlan(ctx context.Context, client *e2etest.Client) (plan, error) {
	var p plan
	resp, err := client.PostJSON(ctx, "/api/plans/generate", map[string]any{
		"goal":         "strength",
		"equipment":    []string{"dumbbells", "resistance bands"},
		"muscleGroups": []string{"All"},
		"gender":       "female",
		"duration":     45,
		"difficulty":   "intermediate",
	})
	if err != nil {
		return p, fmt.Errorf("generate plan: %w", err)
	}
	if err = e2etest.DecodeJSON(resp, http.StatusCreated, &p); err != nil {
		return p, fmt.Errorf("decode plan: %w", err)
	}
	if len(p.Exercises) == 0 {
		return p, fmt.Errorf("plan %s has no exercises", p.ID)
	}
	return p, nil
}

// testWorkoutLoop exercises the main user journey from plan generation to
// a rated, fully completed workout.
func testWorkoutLoop(ctx context.Context, serverURL string) error {
	client, err := newClient(serverURL)
	if err != nil {
		return err
	}

	p, err := generatePlan(ctx, client)
	if err != nil {
		return err
	}

	var fetched struct {
		Plan plan `json:"plan"`
	}
	if err = client.GetJSON(ctx, "/api/plans/"+p.ID, &fetched); err != nil {
		return fmt.Errorf("fetch plan: %w", err)
	}
	if fetched.Plan.ID != p.ID {
		return fmt.Errorf("fetched plan %s, want %s", fetched.Plan.ID, p.ID)
	}

	var last completion
	for _, exercise := range p.Exercises {
		urlPath := "/api/plans/" + p.ID + "/exercises/" + url.PathEscape(exercise.Name) + "/complete"
		resp, err := client.PostJSON(ctx, urlPath, nil)
		if err != nil {
			return fmt.Errorf("complete exercise %q: %w", exercise.Name, err)
		}
		if err = e2etest.DecodeJSON(resp, http.StatusOK, &last); err != nil {
			return fmt.Errorf("decode completion for %q: %w", exercise.Name, err)
		}
	}
	if last.Completion.CompletedExercises != last.Completion.TotalExercises {
		return fmt.Errorf("completed %d of %d exercises",
			last.Completion.CompletedExercises, last.Completion.TotalExercises)
	}

	resp, err := client.PostJSON(ctx, "/api/plans/"+p.ID+"/rating", map[string]any{
		"rating":   5,
		"feedback": "great session",
	})
	if err != nil {
		return fmt.Errorf("rate plan: %w", err)
	}
	if err = e2etest.DecodeJSON(resp, http.StatusOK, nil); err != nil {
		return fmt.Errorf("decode rating response: %w", err)
	}

	var suggestion struct {
		Difficulty string `json:"difficulty"`
		Reason     string `json:"reason"`
	}
	if err = client.GetJSON(ctx, "/api/difficulty", &suggestion); err != nil {
		return fmt.Errorf("fetch difficulty suggestion: %w", err)
	}
	if suggestion.Difficulty == "" {
		return fmt.Errorf("empty difficulty suggestion")
	}

	var stats struct {
		TotalWorkouts int `json:"totalWorkouts"`
	}
	if err = client.GetJSON(ctx, "/api/stats", &stats); err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}
	if stats.TotalWorkouts < 1 {
		return fmt.Errorf("stats report %d workouts after completing one", stats.TotalWorkouts)
	}
	return nil
}

// testProfile round-trips a profile update.
func testProfile(ctx context.Context, serverURL string) error {
	client, err := newClient(serverURL)
	if err != nil {
		return err
	}
	resp, err := client.PutJSON(ctx, "/api/profile", map[string]any{
		"name":               "Smoke Tester",
		"gender":             "male",
		"age":                34,
		"weight":             82.5,
		"preferredEquipment": []string{"kettlebell"},
		"muscleGroups":       []string{"Legs"},
	})
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if err = e2etest.DecodeJSON(resp, http.StatusOK, nil); err != nil {
		return fmt.Errorf("decode profile update: %w", err)
	}

	var profile struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	if err = client.GetJSON(ctx, "/api/profile", &profile); err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}
	if profile.Name != "Smoke Tester" {
		return fmt.Errorf("profile name %q after update", profile.Name)
	}
	return nil
}

// testRecommendations checks that the engine returns scored suggestions.
func testRecommendations(ctx context.Context, serverURL string) error {
	client, err := newClient(serverURL)
	if err != nil {
		return err
	}
	var payload struct {
		Recommendations []struct {
			Score  float64 `json:"score"`
			Reason string  `json:"reason"`
			Source string  `json:"source"`
		} `json:"recommendations"`
	}
	if err = client.GetJSON(ctx, "/api/recommendations?topN=3", &payload); err != nil {
		return fmt.Errorf("fetch recommendations: %w", err)
	}
	if len(payload.Recommendations) == 0 {
		return fmt.Errorf("no recommendations returned")
	}
	for _, rec := range payload.Recommendations {
		if rec.Reason == "" || rec.Source == "" {
			return fmt.Errorf("recommendation missing reason or source")
		}
	}
	return nil
}

// testFavorites marks a generated plan as favorite and reads it back.
func testFavorites(ctx context.Context, serverURL string) error {
	client, err := newClient(serverURL)
	if err != nil {
		return err
	}
	p, err := generatePlan(ctx, client)
	if err != nil {
		return err
	}
	resp, err := client.PostJSON(ctx, "/api/plans/"+p.ID+"/favorite", nil)
	if err != nil {
		return fmt.Errorf("favorite plan: %w", err)
	}
	if err = e2etest.DecodeJSON(resp, http.StatusOK, nil); err != nil {
		return fmt.Errorf("decode favorite response: %w", err)
	}
	var favorites struct {
		Favorites []plan `json:"favorites"`
	}
	if err = client.GetJSON(ctx, "/api/plans/favorites", &favorites); err != nil {
		return fmt.Errorf("fetch favorites: %w", err)
	}
	if len(favorites.Favorites) != 1 {
		return fmt.Errorf("got %d favorite plans, want 1", len(favorites.Favorites))
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, smokeTimeout)
	defer cancel()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest hostname")
		os.Exit(1)
	}
	hostname := os.Args[1]
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	start := time.Now()

	serverURL := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		serverURL = "http://" + hostname
	}

	readyClient, err := newClient(serverURL)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failed to create client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = readyClient.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready", slog.Any("error", err))
		os.Exit(1)
	}

	scenarios := []struct {
		name string
		run  func(context.Context, string) error
	}{
		{"workout loop", testWorkoutLoop},
		{"profile", testProfile},
		{"recommendations", testRecommendations},
		{"favorites", testFavorites},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, scenario := range scenarios {
		g.Go(func() error {
			if err := scenario.run(gctx, serverURL); err != nil {
				return fmt.Errorf("%s: %w", scenario.name, err)
			}
			logger.LogAttrs(gctx, slog.LevelInfo, "scenario passed", slog.String("scenario", scenario.name))
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "smoke test failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
}
