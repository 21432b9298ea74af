package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ojalehto/fitplan/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// sqliteRepository handles the completed_exercises table and read-only
// queries over the workout history.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// UpsertCompletion records a completion event, overwriting any earlier
// event for the same exercise.
func (r *sqliteRepository) UpsertCompletion(ctx context.Context, userID string, e CompletedExercise) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO completed_exercises (user_id, exercise_id, plan_id, completed_at, calories_burned)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, exercise_id) DO UPDATE SET
			plan_id = excluded.plan_id,
			completed_at = excluded.completed_at,
			calories_burned = excluded.calories_burned`,
		userID,
		e.ExerciseID,
		e.PlanID,
		e.CompletedAt.UTC().Format(timestampFormat),
		e.CaloriesBurned,
	)
	if err != nil {
		return fmt.Errorf("save completion event: %w", err)
	}
	return nil
}

// ListCompletions returns the user's completion events for one plan.
func (r *sqliteRepository) ListCompletions(ctx context.Context, userID, planID string) ([]CompletedExercise, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, plan_id, completed_at, calories_burned
		FROM completed_exercises
		WHERE user_id = ? AND plan_id = ?
		ORDER BY completed_at ASC`, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	defer rows.Close()

	var events []CompletedExercise
	for rows.Next() {
		var (
			e              CompletedExercise
			completedAtStr string
		)
		if err = rows.Scan(&e.ExerciseID, &e.PlanID, &completedAtStr, &e.CaloriesBurned); err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		if e.CompletedAt, err = time.Parse(timestampFormat, completedAtStr); err != nil {
			return nil, fmt.Errorf("parse completed at: %w", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completion events: %w", err)
	}
	return events, nil
}

// SumCalories totals the calories over every completion event of the user.
func (r *sqliteRepository) SumCalories(ctx context.Context, userID string) (float64, error) {
	var total float64
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(calories_burned), 0)
		FROM completed_exercises
		WHERE user_id = ?`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum calories: %w", err)
	}
	return total, nil
}

// workoutHistoryRow is the slice of the completed_workouts table the stats
// derivations need.
type workoutHistoryRow struct {
	completedAt time.Time
	duration    int
}

// listWorkoutHistory returns the user's workout history, oldest first.
func (r *sqliteRepository) listWorkoutHistory(ctx context.Context, userID string) ([]workoutHistoryRow, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT completed_at, duration_minutes
		FROM completed_workouts
		WHERE user_id = ?
		ORDER BY completed_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query workout history: %w", err)
	}
	defer rows.Close()

	var history []workoutHistoryRow
	for rows.Next() {
		var (
			row            workoutHistoryRow
			completedAtStr string
		)
		if err = rows.Scan(&completedAtStr, &row.duration); err != nil {
			return nil, fmt.Errorf("scan workout history: %w", err)
		}
		if row.completedAt, err = time.Parse(timestampFormat, completedAtStr); err != nil {
			return nil, fmt.Errorf("parse completed at: %w", err)
		}
		history = append(history, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout history: %w", err)
	}
	return history, nil
}
