package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ojalehto/fitplan/internal/catalog"
	"github.com/ojalehto/fitplan/internal/errors"
	"github.com/ojalehto/fitplan/internal/sqlite"
)

// ErrPlanNotFound is returned when a plan id does not exist for the user.
var ErrPlanNotFound = errors.NewSentinel("plan not found")

// Plan is a generated workout plan persisted for a user.
type Plan struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Difficulty   catalog.Difficulty    `json:"difficulty"`
	Duration     int                   `json:"duration"`
	Gender       string                `json:"gender"`
	MuscleGroups []catalog.MuscleGroup `json:"muscleGroups"`
	Exercises    []catalog.Exercise    `json:"exercises"`
	Favorite     bool                  `json:"favorite"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// planRepository handles the plans table.
type planRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// Insert stores a freshly generated plan.
func (r *planRepository) Insert(ctx context.Context, userID string, p Plan) error {
	exercisesJSON, err := json.Marshal(p.Exercises)
	if err != nil {
		return fmt.Errorf("encode exercises: %w", err)
	}
	groupsJSON, err := json.Marshal(muscleGroupStrings(p.MuscleGroups))
	if err != nil {
		return fmt.Errorf("encode muscle groups: %w", err)
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO plans (id, user_id, name, difficulty, duration_minutes, gender, muscle_groups, exercises, favorite, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		userID,
		p.Name,
		string(p.Difficulty),
		p.Duration,
		p.Gender,
		string(groupsJSON),
		string(exercisesJSON),
		boolToInt(p.Favorite),
		p.CreatedAt.UTC().Format(timestampFormat),
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// Get loads one plan owned by userID.
func (r *planRepository) Get(ctx context.Context, userID, planID string) (Plan, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, difficulty, duration_minutes, gender, muscle_groups, exercises, favorite, created_at
		FROM plans
		WHERE id = ? AND user_id = ?`, planID, userID)

	plan, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, ErrPlanNotFound
	}
	if err != nil {
		return Plan{}, fmt.Errorf("query plan: %w", err)
	}
	return plan, nil
}

// List returns the user's plans, newest first.
func (r *planRepository) List(ctx context.Context, userID string) ([]Plan, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, difficulty, duration_minutes, gender, muscle_groups, exercises, favorite, created_at
		FROM plans
		WHERE user_id = ?
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}
	return plans, nil
}

// SetFavorite flips the favorite flag on a plan owned by userID.
func (r *planRepository) SetFavorite(ctx context.Context, userID, planID string, favorite bool) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE plans SET favorite = ? WHERE id = ? AND user_id = ?`,
		boolToInt(favorite), planID, userID)
	if err != nil {
		return fmt.Errorf("update favorite: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (Plan, error) {
	var (
		p             Plan
		difficulty    string
		groupsJSON    string
		exercisesJSON string
		favorite      int
		createdAtStr  string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&difficulty,
		&p.Duration,
		&p.Gender,
		&groupsJSON,
		&exercisesJSON,
		&favorite,
		&createdAtStr,
	)
	if err != nil {
		return Plan{}, err
	}

	p.Difficulty = catalog.Difficulty(difficulty)
	p.Favorite = favorite != 0

	var groupNames []string
	if err = json.Unmarshal([]byte(groupsJSON), &groupNames); err != nil {
		return Plan{}, fmt.Errorf("decode muscle groups: %w", err)
	}
	p.MuscleGroups = catalog.MuscleGroupsFromStrings(groupNames)

	if err = json.Unmarshal([]byte(exercisesJSON), &p.Exercises); err != nil {
		return Plan{}, fmt.Errorf("decode exercises: %w", err)
	}
	if p.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
		return Plan{}, fmt.Errorf("parse created at: %w", err)
	}

	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
