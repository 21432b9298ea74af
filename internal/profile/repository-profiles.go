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

// ErrNotFound is returned when no profile exists for the requested user.
var ErrNotFound = errors.NewSentinel("profile not found")

// profileRepository handles the user_profiles table.
type profileRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// Get loads the profile row for userID without history or ratings.
func (r *profileRepository) Get(ctx context.Context, userID string) (UserProfile, error) {
	var (
		p              UserProfile
		equipmentJSON  string
		groupsJSON     string
		lastUpdatedStr string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, gender, age, weight, preferred_equipment, preferred_muscle_groups, last_updated
		FROM user_profiles
		WHERE id = ?`, userID).Scan(
		&p.ID,
		&p.Name,
		&p.Gender,
		&p.Age,
		&p.Weight,
		&equipmentJSON,
		&groupsJSON,
		&lastUpdatedStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return UserProfile{}, ErrNotFound
	}
	if err != nil {
		return UserProfile{}, fmt.Errorf("query user profile: %w", err)
	}

	if err = json.Unmarshal([]byte(equipmentJSON), &p.PreferredEquipment); err != nil {
		return UserProfile{}, fmt.Errorf("decode preferred equipment: %w", err)
	}
	var groupNames []string
	if err = json.Unmarshal([]byte(groupsJSON), &groupNames); err != nil {
		return UserProfile{}, fmt.Errorf("decode muscle groups: %w", err)
	}
	p.MuscleGroups = catalog.MuscleGroupsFromStrings(groupNames)

	if p.LastUpdated, err = time.Parse(timestampFormat, lastUpdatedStr); err != nil {
		return UserProfile{}, fmt.Errorf("parse last updated: %w", err)
	}

	return p, nil
}

// Upsert writes the profile row, creating it on first contact. LastUpdated
// is always bumped to the caller-provided timestamp.
func (r *profileRepository) Upsert(ctx context.Context, p UserProfile) error {
	equipmentJSON, err := json.Marshal(emptyIfNil(p.PreferredEquipment))
	if err != nil {
		return fmt.Errorf("encode preferred equipment: %w", err)
	}
	groupsJSON, err := json.Marshal(muscleGroupStrings(p.MuscleGroups))
	if err != nil {
		return fmt.Errorf("encode muscle groups: %w", err)
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO user_profiles (id, name, gender, age, weight, preferred_equipment, preferred_muscle_groups, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			gender = excluded.gender,
			age = excluded.age,
			weight = excluded.weight,
			preferred_equipment = excluded.preferred_equipment,
			preferred_muscle_groups = excluded.preferred_muscle_groups,
			last_updated = excluded.last_updated`,
		p.ID,
		p.Name,
		p.Gender,
		p.Age,
		p.Weight,
		string(equipmentJSON),
		string(groupsJSON),
		p.LastUpdated.UTC().Format(timestampFormat),
	)
	if err != nil {
		return fmt.Errorf("save user profile: %w", err)
	}
	return nil
}

func muscleGroupStrings(groups []catalog.MuscleGroup) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = string(g)
	}
	return names
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
