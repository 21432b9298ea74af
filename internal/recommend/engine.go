package recommend

import (
	"fmt"
	"sort"

	"github.com/ojalehto/fitplan/internal/catalog"
	"github.com/ojalehto/fitplan/internal/profile"
)

// Collaborative filtering constants.
const (
	// similarUserCount caps how many panel users contribute to the
	// collaborative score.
	similarUserCount = 3
	// minContributingRating is the lowest panel rating that counts as an
	// endorsement.
	minContributingRating = 4
)

// Workout is a plan from the shared workout library that panel users have
// rated and that recommendations are drawn from.
type Workout struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Difficulty   catalog.Difficulty    `json:"difficulty"`
	Duration     int                   `json:"duration"`
	MuscleGroups []catalog.MuscleGroup `json:"muscleGroups"`
	Equipment    []string              `json:"equipment"`
}

// Recommendation is one ranked workout with the score and a human-readable
// reason naming where it came from.
type Recommendation struct {
	Workout Workout `json:"workout"`
	Score   float64 `json:"score"`
	Reason  string  `json:"reason"`
	Source  string  `json:"source"`
}

// Engine holds the panel and the workout library. It is read-only after
// construction and safe for concurrent use.
type Engine struct {
	panel    []profile.UserProfile
	workouts []Workout
}

// NewEngine constructs an Engine over the given panel and workout library.
func NewEngine(panel []profile.UserProfile, workouts []Workout) *Engine {
	return &Engine{panel: panel, workouts: workouts}
}

// Recommend ranks workouts for the user. Collaborative results come first;
// content-based results for the current workout, when one is supplied, fill
// the remaining slots without duplicating ids. Missing data only shortens
// the list, it never fails.
func (e *Engine) Recommend(user profile.UserProfile, current *Workout, topN int) []Recommendation {
	recommendations := e.collaborative(user, topN)

	if current != nil && len(recommendations) < topN {
		seen := make(map[string]bool, len(recommendations))
		for _, r := range recommendations {
			seen[r.Workout.ID] = true
		}
		for _, r := range e.contentBased(*current, topN) {
			if len(recommendations) >= topN {
				break
			}
			if !seen[r.Workout.ID] {
				recommendations = append(recommendations, r)
				seen[r.Workout.ID] = true
			}
		}
	}

	return recommendations
}

type scoredNeighbor struct {
	user       profile.UserProfile
	similarity float64
}

// collaborative scores workouts that similar panel users rated highly and
// the current user has not rated yet.
func (e *Engine) collaborative(user profile.UserProfile, topN int) []Recommendation {
	neighbors := e.similarUsers(user)
	if len(neighbors) == 0 {
		return nil
	}

	rated := make(map[string]bool, len(user.Ratings))
	for _, r := range user.Ratings {
		rated[r.PlanID] = true
	}

	scores := make(map[string]float64)
	contributors := make(map[string][]string)
	for _, n := range neighbors {
		for _, r := range n.user.Ratings {
			if r.Rating < minContributingRating || rated[r.PlanID] {
				continue
			}
			scores[r.PlanID] += float64(r.Rating) * n.similarity
			contributors[r.PlanID] = append(contributors[r.PlanID], n.user.Name)
		}
	}

	byID := e.workoutsByID()
	recommendations := make([]Recommendation, 0, len(scores))
	for planID, score := range scores {
		workout, ok := byID[planID]
		if !ok {
			continue
		}
		recommendations = append(recommendations, Recommendation{
			Workout: workout,
			Score:   score,
			Reason:  collaborativeReason(contributors[planID]),
			Source:  "collaborative",
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].Workout.ID < recommendations[j].Workout.ID
	})

	if len(recommendations) > topN {
		recommendations = recommendations[:topN]
	}
	return recommendations
}

// similarUsers returns the top panel users by similarity, excluding the
// user themselves.
func (e *Engine) similarUsers(user profile.UserProfile) []scoredNeighbor {
	neighbors := make([]scoredNeighbor, 0, len(e.panel))
	for _, p := range e.panel {
		if p.ID == user.ID {
			continue
		}
		neighbors = append(neighbors, scoredNeighbor{user: p, similarity: Similarity(user, p)})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].similarity != neighbors[j].similarity {
			return neighbors[i].similarity > neighbors[j].similarity
		}
		return neighbors[i].user.ID < neighbors[j].user.ID
	})

	if len(neighbors) > similarUserCount {
		neighbors = neighbors[:similarUserCount]
	}
	return neighbors
}

// contentBased ranks the rest of the library by closeness to the current
// workout: muscle groups dominate, then equipment, then an exact difficulty
// match.
func (e *Engine) contentBased(current Workout, topN int) []Recommendation {
	recommendations := make([]Recommendation, 0, len(e.workouts))
	for _, w := range e.workouts {
		if w.ID == current.ID {
			continue
		}

		score := 0.6*overlap(muscleGroupNames(w.MuscleGroups), muscleGroupNames(current.MuscleGroups)) +
			0.3*overlap(w.Equipment, current.Equipment)
		if w.Difficulty == current.Difficulty {
			score += 0.1
		}

		recommendations = append(recommendations, Recommendation{
			Workout: w,
			Score:   score,
			Reason:  fmt.Sprintf("Similar to %s", current.Name),
			Source:  "content-based",
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].Workout.ID < recommendations[j].Workout.ID
	})

	if len(recommendations) > topN {
		recommendations = recommendations[:topN]
	}
	return recommendations
}

func (e *Engine) workoutsByID() map[string]Workout {
	byID := make(map[string]Workout, len(e.workouts))
	for _, w := range e.workouts {
		byID[w.ID] = w
	}
	return byID
}

// collaborativeReason names up to two contributing users, with a suffix when
// more chimed in.
func collaborativeReason(names []string) string {
	switch len(names) {
	case 0:
		return "Popular with similar users"
	case 1:
		return fmt.Sprintf("Rated highly by %s", names[0])
	case 2:
		return fmt.Sprintf("Rated highly by %s and %s", names[0], names[1])
	default:
		return fmt.Sprintf("Rated highly by %s and %s + others", names[0], names[1])
	}
}
