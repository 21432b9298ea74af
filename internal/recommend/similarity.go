// Package recommend scores workout recommendations by combining
// collaborative filtering over a panel of users with content-based
// similarity over the workout library.
package recommend

import (
	"math"

	"github.com/ojalehto/fitplan/internal/catalog"
	"github.com/ojalehto/fitplan/internal/profile"
)

// Similarity term weights.
const (
	ageWeight       = 0.10
	genderWeight    = 0.10
	equipmentWeight = 0.25
	muscleWeight    = 0.25
	ratingWeight    = 0.30
)

// Similarity scores how alike two users are on a 0 to 1 scale. The score is
// a weighted sum over demographics, preference overlap and rating agreement,
// normalized by the weight mass actually computed. The rating term and its
// weight drop out entirely when the users share no rated plans, so the
// remaining terms carry proportionally more.
//
// Rating overlap probes b's ratings against a lookup built from a's, which
// makes the score not strictly symmetric when the two rating sets differ.
func Similarity(a, b profile.UserProfile) float64 {
	var score, maxPossible float64

	ageCloseness := math.Max(0, 1-math.Abs(float64(a.Age-b.Age))/20)
	score += ageCloseness * ageWeight
	maxPossible += ageWeight

	if a.Gender == b.Gender {
		score += genderWeight
	}
	maxPossible += genderWeight

	score += overlap(a.PreferredEquipment, b.PreferredEquipment) * equipmentWeight
	maxPossible += equipmentWeight

	score += overlap(muscleGroupNames(a.MuscleGroups), muscleGroupNames(b.MuscleGroups)) * muscleWeight
	maxPossible += muscleWeight

	if agreement, ok := ratingAgreement(a.Ratings, b.Ratings); ok {
		score += agreement * ratingWeight
		maxPossible += ratingWeight
	}

	if maxPossible == 0 {
		return 0
	}
	return score / maxPossible
}

// overlap is |A∩B| / max(|A|,|B|), defined as 1 when both sets are empty.
func overlap(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}

	shared := 0
	for _, v := range b {
		if set[v] {
			shared++
		}
	}

	return float64(shared) / float64(max(len(a), len(b)))
}

// ratingAgreement averages 1 - |Δrating|/4 over the plans both users rated.
// The second return value reports whether any shared rating exists.
func ratingAgreement(a, b []profile.WorkoutRating) (float64, bool) {
	byPlan := make(map[string]int, len(a))
	for _, r := range a {
		byPlan[r.PlanID] = r.Rating
	}

	var sum float64
	shared := 0
	for _, r := range b {
		ratingA, ok := byPlan[r.PlanID]
		if !ok {
			continue
		}
		sum += 1 - math.Abs(float64(ratingA-r.Rating))/4
		shared++
	}

	if shared == 0 {
		return 0, false
	}
	return sum / float64(shared), true
}

func muscleGroupNames(groups []catalog.MuscleGroup) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = string(g)
	}
	return names
}
