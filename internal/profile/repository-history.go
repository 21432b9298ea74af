package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ojalehto/fitplan/internal/catalog"
	"github.com/ojalehto/fitplan/internal/sqlite"
)

// historyRepository handles the completed_workouts and workout_ratings
// tables.
type historyRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// AppendWorkout records a finished workout. History is append-only, so
// completing the same plan again adds a new row.
func (r *historyRepository) AppendWorkout(ctx context.Context, userID string, w CompletedWorkout, groups []catalog.MuscleGroup, difficulty catalog.Difficulty) error {
	groupsJSON, err := json.Marshal(muscleGroupStrings(groups))
	if err != nil {
		return fmt.Errorf("encode muscle groups: %w", err)
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO completed_workouts (id, user_id, plan_id, plan_name, completed_at, duration_minutes, muscle_groups, difficulty)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID,
		userID,
		w.PlanID,
		w.PlanName,
		w.CompletedAt.UTC().Format(timestampFormat),
		w.Duration,
		string(groupsJSON),
		string(difficulty),
	)
	if err != nil {
		return fmt.Errorf("insert completed workout: %w", err)
	}
	return nil
}

// ListWorkouts returns the user's full history, oldest first.
func (r *historyRepository) ListWorkouts(ctx context.Context, userID string) ([]CompletedWorkout, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, plan_id, plan_name, completed_at, duration_minutes, difficulty
		FROM completed_workouts
		WHERE user_id = ?
		ORDER BY completed_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query completed workouts: %w", err)
	}
	defer rows.Close()

	var workouts []CompletedWorkout
	for rows.Next() {
		var (
			w              CompletedWorkout
			completedAtStr string
			difficulty     string
		)
		if err = rows.Scan(&w.ID, &w.PlanID, &w.PlanName, &completedAtStr, &w.Duration, &difficulty); err != nil {
			return nil, fmt.Errorf("scan completed workout: %w", err)
		}
		if w.CompletedAt, err = time.Parse(timestampFormat, completedAtStr); err != nil {
			return nil, fmt.Errorf("parse completed at: %w", err)
		}
		w.Difficulty = catalog.Difficulty(difficulty)
		workouts = append(workouts, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed workouts: %w", err)
	}
	return workouts, nil
}

// UpsertRating stores a rating, replacing any earlier rating of the same
// plan by the same user.
func (r *historyRepository) UpsertRating(ctx context.Context, userID string, rating WorkoutRating) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_ratings (user_id, plan_id, rating, feedback, rated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, plan_id) DO UPDATE SET
			rating = excluded.rating,
			feedback = excluded.feedback,
			rated_at = excluded.rated_at`,
		userID,
		rating.PlanID,
		rating.Rating,
		rating.Feedback,
		rating.RatedAt.UTC().Format(timestampFormat),
	)
	if err != nil {
		return fmt.Errorf("save workout rating: %w", err)
	}
	return nil
}

// ListRatings returns the user's ratings ordered by when they were given.
func (r *historyRepository) ListRatings(ctx context.Context, userID string) ([]WorkoutRating, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT plan_id, rating, feedback, rated_at
		FROM workout_ratings
		WHERE user_id = ?
		ORDER BY rated_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query workout ratings: %w", err)
	}
	defer rows.Close()

	var ratings []WorkoutRating
	for rows.Next() {
		var (
			rating     WorkoutRating
			ratedAtStr string
		)
		if err = rows.Scan(&rating.PlanID, &rating.Rating, &rating.Feedback, &ratedAtStr); err != nil {
			return nil, fmt.Errorf("scan workout rating: %w", err)
		}
		if rating.RatedAt, err = time.Parse(timestampFormat, ratedAtStr); err != nil {
			return nil, fmt.Errorf("parse rated at: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout ratings: %w", err)
	}
	return ratings, nil
}
