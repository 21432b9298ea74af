package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ojalehto/fitplan/internal/catalog"
	"github.com/ojalehto/fitplan/internal/errors"
	"github.com/ojalehto/fitplan/internal/profile"
	"github.com/ojalehto/fitplan/internal/sqlite"
)

// ErrExerciseNotInPlan is returned when completing an exercise the plan
// does not contain.
var ErrExerciseNotInPlan = errors.NewSentinel("exercise not in plan")

// defaultWeightKg stands in for users who have not filled in their weight.
const defaultWeightKg = 70.0

// Service handles completion events and derived statistics.
type Service struct {
	repo     *sqliteRepository
	profiles *profile.Service
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new tracking service.
func NewService(db *sqlite.Database, profiles *profile.Service, logger *slog.Logger) *Service {
	return &Service{
		repo:     &sqliteRepository{db: db, logger: logger},
		profiles: profiles,
		logger:   logger,
		now:      time.Now,
	}
}

// CompleteExercise records that the user finished one exercise of a plan.
// Completing the same exercise again overwrites the earlier event, so the
// operation is idempotent from the caller's point of view.
func (s *Service) CompleteExercise(ctx context.Context, userID, planID, exerciseName string) (CompletedExercise, error) {
	plan, err := s.profiles.GetPlan(ctx, userID, planID)
	if err != nil {
		return CompletedExercise{}, fmt.Errorf("get plan: %w", err)
	}

	found := false
	for _, e := range plan.Exercises {
		if e.Name == exerciseName {
			found = true
			break
		}
	}
	if !found {
		return CompletedExercise{}, ErrExerciseNotInPlan
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return CompletedExercise{}, fmt.Errorf("get profile: %w", err)
	}

	// Each exercise accounts for an equal share of the plan's duration.
	minutes := float64(plan.Duration) / float64(len(plan.Exercises))

	event := CompletedExercise{
		ExerciseID:     exerciseName,
		PlanID:         planID,
		CompletedAt:    s.now().UTC(),
		CaloriesBurned: EstimateCalories(p.Weight, plan.Difficulty, minutes),
	}
	if err = s.repo.UpsertCompletion(ctx, userID, event); err != nil {
		return CompletedExercise{}, fmt.Errorf("record completion: %w", err)
	}
	return event, nil
}

// PlanCompletion reports how much of a plan the user has completed.
func (s *Service) PlanCompletion(ctx context.Context, userID, planID string) (PlanCompletion, error) {
	plan, err := s.profiles.GetPlan(ctx, userID, planID)
	if err != nil {
		return PlanCompletion{}, fmt.Errorf("get plan: %w", err)
	}

	events, err := s.repo.ListCompletions(ctx, userID, planID)
	if err != nil {
		return PlanCompletion{}, fmt.Errorf("list completions: %w", err)
	}

	var calories float64
	for _, e := range events {
		calories += e.CaloriesBurned
	}

	completion := PlanCompletion{
		PlanID:             planID,
		CompletedExercises: len(events),
		TotalExercises:     len(plan.Exercises),
		CaloriesBurned:     calories,
	}
	if completion.TotalExercises > 0 {
		completion.Percentage = 100 * float64(completion.CompletedExercises) / float64(completion.TotalExercises)
	}
	return completion, nil
}

// Stats derives the dashboard statistics from the user's workout history
// and completion events.
func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	history, err := s.repo.listWorkoutHistory(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("list workout history: %w", err)
	}

	calories, err := s.repo.SumCalories(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("sum calories: %w", err)
	}

	stats := Stats{
		TotalWorkouts:       len(history),
		TotalCaloriesBurned: calories,
		WeeklyCounts:        weeklyCounts(history),
	}
	for _, row := range history {
		stats.TotalMinutes += row.duration
	}

	days := workoutDays(history)
	stats.CurrentStreak = currentStreak(days, s.now().UTC())
	stats.LongestStreak = longestStreak(days)

	return stats, nil
}

// EstimateCalories uses the standard MET formula, kcal per minute =
// MET x 3.5 x weightKg / 200, with the MET picked by difficulty tier.
func EstimateCalories(weightKg float64, difficulty catalog.Difficulty, minutes float64) float64 {
	if weightKg <= 0 {
		weightKg = defaultWeightKg
	}

	var met float64
	switch difficulty {
	case catalog.DifficultyBeginner:
		met = 3.5
	case catalog.DifficultyAdvanced:
		met = 7.0
	default:
		met = 5.0
	}

	return met * 3.5 * weightKg / 200 * minutes
}

// workoutDays collapses the history to distinct UTC calendar days, sorted
// ascending.
func workoutDays(history []workoutHistoryRow) []time.Time {
	seen := make(map[time.Time]bool, len(history))
	for _, row := range history {
		day := row.completedAt.UTC().Truncate(24 * time.Hour)
		seen[day] = true
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// currentStreak counts consecutive workout days ending today or yesterday.
// A streak broken before yesterday counts as zero.
func currentStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today := now.Truncate(24 * time.Hour)
	last := days[len(days)-1]
	if today.Sub(last) > 24*time.Hour {
		return 0
	}

	streak := 1
	for i := len(days) - 1; i > 0; i-- {
		if days[i].Sub(days[i-1]) != 24*time.Hour {
			break
		}
		streak++
	}
	return streak
}

// longestStreak finds the longest run of consecutive workout days.
func longestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// weeklyCounts groups workouts by the Monday their week starts on.
func weeklyCounts(history []workoutHistoryRow) []WeeklyCount {
	counts := make(map[string]int)
	for _, row := range history {
		counts[weekStart(row.completedAt.UTC()).Format(time.DateOnly)]++
	}

	weeks := make([]string, 0, len(counts))
	for week := range counts {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)

	result := make([]WeeklyCount, 0, len(weeks))
	for _, week := range weeks {
		result = append(result, WeeklyCount{Week: week, Count: counts[week]})
	}
	return result
}

func weekStart(t time.Time) time.Time {
	day := t.Truncate(24 * time.Hour)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
