package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ojalehto/fitplan/internal/errors"
	"github.com/ojalehto/fitplan/internal/sqlite"
)

// ErrInvalidRating is returned when a rating falls outside 1 to 5.
var ErrInvalidRating = errors.NewSentinel("rating must be between 1 and 5")

// Service handles the business logic for profiles, plans and workout
// history.
type Service struct {
	repo   *repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new profile service.
func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newRepository(db, logger),
		logger: logger,
		now:    time.Now,
	}
}

// Get loads the user's profile hydrated with workout history and ratings.
// A user that has never saved a profile gets an empty one with their id
// filled in, so the caller never needs to special-case first contact.
func (s *Service) Get(ctx context.Context, userID string) (UserProfile, error) {
	p, err := s.repo.profiles.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		p = UserProfile{ID: userID}
	} else if err != nil {
		return UserProfile{}, fmt.Errorf("get profile: %w", err)
	}

	if p.CompletedWorkouts, err = s.repo.history.ListWorkouts(ctx, userID); err != nil {
		return UserProfile{}, fmt.Errorf("list workout history: %w", err)
	}
	if p.Ratings, err = s.repo.history.ListRatings(ctx, userID); err != nil {
		return UserProfile{}, fmt.Errorf("list ratings: %w", err)
	}

	return p, nil
}

// Save persists the profile's demographic and preference fields, bumping
// LastUpdated. History and ratings on the value are ignored; they have
// their own write paths.
func (s *Service) Save(ctx context.Context, p UserProfile) (UserProfile, error) {
	p.LastUpdated = s.now().UTC()
	if err := s.repo.profiles.Upsert(ctx, p); err != nil {
		return UserProfile{}, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

// SavePlan stores a generated plan under a fresh id and makes sure the
// owning profile row exists so foreign keys hold.
func (s *Service) SavePlan(ctx context.Context, userID string, plan Plan) (Plan, error) {
	if _, err := s.repo.profiles.Get(ctx, userID); errors.Is(err, ErrNotFound) {
		stub := UserProfile{ID: userID, LastUpdated: s.now().UTC()}
		if err = s.repo.profiles.Upsert(ctx, stub); err != nil {
			return Plan{}, fmt.Errorf("create profile stub: %w", err)
		}
	} else if err != nil {
		return Plan{}, fmt.Errorf("get profile: %w", err)
	}

	plan.ID = uuid.NewString()
	plan.CreatedAt = s.now().UTC()
	if err := s.repo.plans.Insert(ctx, userID, plan); err != nil {
		return Plan{}, fmt.Errorf("save plan: %w", err)
	}
	return plan, nil
}

// GetPlan loads one of the user's plans.
func (s *Service) GetPlan(ctx context.Context, userID, planID string) (Plan, error) {
	plan, err := s.repo.plans.Get(ctx, userID, planID)
	if err != nil {
		return Plan{}, fmt.Errorf("get plan: %w", err)
	}
	return plan, nil
}

// ListPlans returns the user's saved plans, newest first.
func (s *Service) ListPlans(ctx context.Context, userID string) ([]Plan, error) {
	plans, err := s.repo.plans.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// SetFavorite marks or unmarks a plan as favorite.
func (s *Service) SetFavorite(ctx context.Context, userID, planID string, favorite bool) error {
	if err := s.repo.plans.SetFavorite(ctx, userID, planID, favorite); err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	return nil
}

// CompleteWorkout appends the plan to the user's workout history.
func (s *Service) CompleteWorkout(ctx context.Context, userID, planID string) (CompletedWorkout, error) {
	plan, err := s.repo.plans.Get(ctx, userID, planID)
	if err != nil {
		return CompletedWorkout{}, fmt.Errorf("get plan: %w", err)
	}

	completed := CompletedWorkout{
		ID:          uuid.NewString(),
		PlanID:      plan.ID,
		PlanName:    plan.Name,
		Difficulty:  plan.Difficulty,
		Duration:    plan.Duration,
		CompletedAt: s.now().UTC(),
	}
	if err = s.repo.history.AppendWorkout(ctx, userID, completed, plan.MuscleGroups, plan.Difficulty); err != nil {
		return CompletedWorkout{}, fmt.Errorf("append workout: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "workout completed",
		slog.String("plan_id", plan.ID),
		slog.String("plan_name", plan.Name))

	return completed, nil
}

// RatePlan stores the user's rating of a plan, replacing any earlier one.
func (s *Service) RatePlan(ctx context.Context, userID, planID string, rating int, feedback string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if _, err := s.repo.plans.Get(ctx, userID, planID); err != nil {
		return fmt.Errorf("get plan: %w", err)
	}

	err := s.repo.history.UpsertRating(ctx, userID, WorkoutRating{
		PlanID:   planID,
		Rating:   rating,
		Feedback: feedback,
		RatedAt:  s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("save rating: %w", err)
	}
	return nil
}
