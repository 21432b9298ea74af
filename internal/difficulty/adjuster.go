// Package difficulty recommends a difficulty tier from the user's workout
// history, frequency, consistency and rating feedback.
package difficulty

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/ojalehto/fitplan/internal/catalog"
	"github.com/ojalehto/fitplan/internal/profile"
)

// recentWindow is how many of the most recent workouts the tier tally
// considers.
const recentWindow = 5

// Suggestion is the adjuster's output: a tier and a human-readable reason
// naming the rule that produced it.
type Suggestion struct {
	Difficulty catalog.Difficulty `json:"difficulty"`
	Reason     string             `json:"reason"`
}

// Analyze is pure: the same profile always yields the same suggestion. The
// current time never enters the scoring, only the relative ordering and
// spacing of the history entries.
func Analyze(p profile.UserProfile) Suggestion {
	if len(p.CompletedWorkouts) == 0 {
		return Suggestion{
			Difficulty: catalog.DifficultyIntermediate,
			Reason:     "No workout history available",
		}
	}

	recent := recentWorkouts(p.CompletedWorkouts)
	tally := tallyDifficulties(recent)
	mostCommon := mostCommonDifficulty(tally)

	perWeek := workoutsPerWeek(p.CompletedWorkouts)
	consistency := consistencyScore(p.CompletedWorkouts)
	feedback := feedbackSuggestion(p.Ratings)

	switch {
	case feedback == "easier":
		return Suggestion{
			Difficulty: catalog.DifficultyBeginner,
			Reason:     "Recent feedback indicates workouts have been too difficult",
		}
	case feedback == "harder":
		return Suggestion{
			Difficulty: catalog.DifficultyAdvanced,
			Reason:     "Recent feedback indicates workouts have been too easy",
		}
	case consistency > 7 && perWeek > 3 && mostCommon == catalog.DifficultyIntermediate:
		return Suggestion{
			Difficulty: catalog.DifficultyAdvanced,
			Reason: fmt.Sprintf(
				"Strong consistency (score %.1f) at %.1f workouts per week, ready to progress",
				consistency, perWeek),
		}
	case len(recent) >= recentWindow && tally[catalog.DifficultyBeginner] >= 4:
		return Suggestion{
			Difficulty: catalog.DifficultyIntermediate,
			Reason:     "Consistently completing beginner workouts, ready for intermediate",
		}
	case len(recent) >= recentWindow && tally[catalog.DifficultyIntermediate] >= 4:
		return Suggestion{
			Difficulty: catalog.DifficultyAdvanced,
			Reason:     "Consistently completing intermediate workouts, ready for advanced",
		}
	}

	return Suggestion{
		Difficulty: mostCommon,
		Reason:     fmt.Sprintf("Maintaining current %s level based on recent workouts", mostCommon),
	}
}

// recentWorkouts returns up to recentWindow workouts, most recent first.
func recentWorkouts(workouts []profile.CompletedWorkout) []profile.CompletedWorkout {
	sorted := slices.Clone(workouts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompletedAt.After(sorted[j].CompletedAt)
	})
	if len(sorted) > recentWindow {
		sorted = sorted[:recentWindow]
	}
	return sorted
}

func tallyDifficulties(workouts []profile.CompletedWorkout) map[catalog.Difficulty]int {
	tally := make(map[catalog.Difficulty]int)
	for _, w := range workouts {
		tally[w.Difficulty]++
	}
	return tally
}

// mostCommonDifficulty breaks ties in the fixed beginner, intermediate,
// advanced order and defaults to intermediate when nothing has been tallied.
func mostCommonDifficulty(tally map[catalog.Difficulty]int) catalog.Difficulty {
	best := catalog.DifficultyIntermediate
	bestCount := 0
	for _, tier := range []catalog.Difficulty{
		catalog.DifficultyBeginner,
		catalog.DifficultyIntermediate,
		catalog.DifficultyAdvanced,
	} {
		if tally[tier] > bestCount {
			best = tier
			bestCount = tally[tier]
		}
	}
	return best
}

// workoutsPerWeek averages over the full history span, not just the recent
// window.
func workoutsPerWeek(workouts []profile.CompletedWorkout) float64 {
	if len(workouts) == 0 {
		return 0
	}

	earliest := workouts[0].CompletedAt
	latest := workouts[0].CompletedAt
	for _, w := range workouts[1:] {
		if w.CompletedAt.Before(earliest) {
			earliest = w.CompletedAt
		}
		if w.CompletedAt.After(latest) {
			latest = w.CompletedAt
		}
	}

	spanDays := latest.Sub(earliest).Hours() / 24
	weeks := math.Max(1, math.Ceil(spanDays/7))
	return float64(len(workouts)) / weeks
}

// consistencyScore maps the standard deviation of inter-workout day gaps to
// a 0 to 10 score where regular spacing scores high. Fewer than two workouts
// cannot have a gap, so those profiles score a neutral 5.
func consistencyScore(workouts []profile.CompletedWorkout) float64 {
	if len(workouts) < 2 {
		return 5
	}

	sorted := slices.Clone(workouts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CompletedAt.Before(sorted[j].CompletedAt)
	})

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].CompletedAt.Sub(sorted[i-1].CompletedAt).Hours()/24)
	}

	var sum float64
	for _, g := range gaps {
		sum += g
	}
	mean := sum / float64(len(gaps))

	var variance float64
	for _, g := range gaps {
		variance += (g - mean) * (g - mean)
	}
	stddev := math.Sqrt(variance / float64(len(gaps)))

	return math.Max(0, math.Min(10, 10-stddev))
}

// feedbackSuggestion scans all ratings in order. Each matching rating
// overwrites the suggestion, so when conflicting signals exist the last one
// in iteration order wins.
func feedbackSuggestion(ratings []profile.WorkoutRating) string {
	suggestion := ""
	for _, r := range ratings {
		text := strings.ToLower(r.Feedback)
		if strings.Contains(text, "too difficult") || strings.Contains(text, "too hard") || r.Rating <= 2 {
			suggestion = "easier"
		}
		if strings.Contains(text, "too easy") {
			suggestion = "harder"
		}
	}
	return suggestion
}
