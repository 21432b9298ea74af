// Package planner assembles workout plans from the exercise catalog and the
// user's questionnaire answers.
package planner

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"github.com/ojalehto/fitplan/internal/catalog"
)

// Exercise selection constants.
const (
	// exercisesPerMuscleGroup caps how many exercises each requested muscle
	// group contributes before shuffling.
	exercisesPerMuscleGroup = 2
	// minBucketSize is the threshold below which a muscle group bucket is
	// backfilled from wider catalog matches and the fallback tables.
	minBucketSize = 2
)

// Rep range floors for the beginner difficulty adjustment.
const (
	beginnerMinRepsFloor = 6
	beginnerMaxRepsFloor = 8
	beginnerSetsFloor    = 2
)

// Assembler generates workout plans. The catalog and the random source are
// injected so that tests can use fixture data and a fixed seed. One
// Assembler serves all request handlers concurrently; rand.Rand is not safe
// for concurrent use, so the mutex serializes access to it.
type Assembler struct {
	catalog *catalog.Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// New constructs an Assembler.
func New(cat *catalog.Catalog, rng *rand.Rand) *Assembler {
	return &Assembler{catalog: cat, rng: rng}
}

// Generate assembles a plan from the request. It is total: every input maps
// to a plan, possibly with fewer exercises than the duration target when the
// catalog and fallback tables cannot cover the requested combination.
func (a *Assembler) Generate(req Request) Plan {
	groups := catalog.ExpandMuscleGroups(req.MuscleGroups)

	pool := a.catalog.ForGoal(req.Goal)
	pool = filterByMuscleGroups(pool, groups)
	pool = filterByEquipment(pool, req.Equipment)

	buckets := bucketByMuscleGroup(pool, groups)
	a.backfillSparseBuckets(buckets, groups, req.Equipment)

	exercises := concatBuckets(buckets, groups)
	exercises = applyGenderAdjustment(exercises, req.Gender)

	a.shuffle(exercises)

	exercises = applyDifficultyAdjustment(exercises, req.Difficulty)
	exercises = backfillInstructions(exercises)

	target := targetExerciseCount(req.Duration, len(exercises))
	if len(exercises) > target {
		exercises = trimPreservingCoverage(exercises, groups, target)
	}

	return Plan{
		Name:         planName(req),
		Exercises:    exercises,
		Duration:     req.Duration,
		Difficulty:   req.Difficulty,
		Gender:       req.Gender,
		MuscleGroups: groups,
	}
}

// targetExerciseCount maps the workout duration to the number of exercises.
func targetExerciseCount(durationMinutes, available int) int {
	switch {
	case durationMinutes <= 20:
		return min(4, available)
	case durationMinutes <= 40:
		return min(6, available)
	case durationMinutes <= 60:
		return min(8, available)
	default:
		return available
	}
}

func filterByMuscleGroups(pool []catalog.Exercise, groups []catalog.MuscleGroup) []catalog.Exercise {
	var filtered []catalog.Exercise
	for _, e := range pool {
		for _, g := range groups {
			if e.MuscleGroup == g {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered
}

func filterByEquipment(pool []catalog.Exercise, equipment []string) []catalog.Exercise {
	var filtered []catalog.Exercise
	for _, e := range pool {
		if e.UsesEquipment(equipment) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func bucketByMuscleGroup(
	pool []catalog.Exercise,
	groups []catalog.MuscleGroup,
) map[catalog.MuscleGroup][]catalog.Exercise {
	buckets := make(map[catalog.MuscleGroup][]catalog.Exercise, len(groups))
	for _, e := range pool {
		buckets[e.MuscleGroup] = append(buckets[e.MuscleGroup], e)
	}
	return buckets
}

// backfillSparseBuckets tops up muscle groups with fewer than minBucketSize
// candidates. Sources are consulted in fixed priority order: wider catalog
// matches first, then the per-equipment fallback tables. The first source
// that brings the bucket to minBucketSize stops the search.
func (a *Assembler) backfillSparseBuckets(
	buckets map[catalog.MuscleGroup][]catalog.Exercise,
	groups []catalog.MuscleGroup,
	equipment []string,
) {
	requested := make(map[string]bool, len(equipment))
	for _, tag := range equipment {
		requested[tag] = true
	}

	for _, group := range groups {
		if len(buckets[group]) >= minBucketSize {
			continue
		}

		// Any catalog exercise of this group matching the equipment that is
		// not already in the bucket, regardless of goal.
		for _, e := range a.catalog.ByMuscleGroup(group) {
			if len(buckets[group]) >= minBucketSize {
				break
			}
			if e.UsesEquipment(equipment) && !containsExercise(buckets[group], e.Name) {
				buckets[group] = append(buckets[group], e)
			}
		}
		if len(buckets[group]) >= minBucketSize {
			continue
		}

		for _, tag := range catalog.FallbackEquipmentOrder() {
			if len(buckets[group]) >= minBucketSize {
				break
			}
			if !requested[tag] {
				continue
			}
			for _, e := range catalog.FallbackExercises(tag, group) {
				if len(buckets[group]) >= minBucketSize {
					break
				}
				if !containsExercise(buckets[group], e.Name) {
					buckets[group] = append(buckets[group], e)
				}
			}
		}
	}
}

// concatBuckets caps each bucket and concatenates them in the order the
// muscle groups were requested. A group left with zero exercises simply
// contributes nothing; that is not an error.
func concatBuckets(
	buckets map[catalog.MuscleGroup][]catalog.Exercise,
	groups []catalog.MuscleGroup,
) []catalog.Exercise {
	var exercises []catalog.Exercise
	for _, group := range groups {
		bucket := buckets[group]
		if len(bucket) > exercisesPerMuscleGroup {
			bucket = bucket[:exercisesPerMuscleGroup]
		}
		exercises = append(exercises, bucket...)
	}
	return exercises
}

// shuffle permutes the exercises uniformly. This intentionally discards the
// muscle-group ordering established by concatBuckets so rendered plans do
// not always lead with the same group.
func (a *Assembler) shuffle(exercises []catalog.Exercise) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rng.Shuffle(len(exercises), func(i, j int) {
		exercises[i], exercises[j] = exercises[j], exercises[i]
	})
}

// applyGenderAdjustment widens rep ranges by two reps on both bounds for
// female users. For male users it only appends an informational weight note.
func applyGenderAdjustment(exercises []catalog.Exercise, gender string) []catalog.Exercise {
	adjusted := make([]catalog.Exercise, len(exercises))
	for i, e := range exercises {
		switch gender {
		case "female":
			if e.Reps != "" {
				e.Reps = shiftRepRange(e.Reps, 2, 0, 0)
			}
		case "male":
			note := "Pick a weight that leaves one or two reps in reserve on the last set."
			if e.WeightNote == "" {
				e.WeightNote = note
			} else {
				e.WeightNote += " " + note
			}
		}
		adjusted[i] = e
	}
	return adjusted
}

// applyDifficultyAdjustment scales sets and rep ranges per difficulty tier.
func applyDifficultyAdjustment(exercises []catalog.Exercise, difficulty catalog.Difficulty) []catalog.Exercise {
	adjusted := make([]catalog.Exercise, len(exercises))
	for i, e := range exercises {
		switch difficulty {
		case catalog.DifficultyBeginner:
			if e.Sets > 0 {
				e.Sets = max(beginnerSetsFloor, e.Sets-1)
			}
			if e.Reps != "" {
				e.Reps = shiftRepRange(e.Reps, -2, beginnerMinRepsFloor, beginnerMaxRepsFloor)
			}
		case catalog.DifficultyAdvanced:
			if e.Sets > 0 {
				e.Sets++
			}
			if e.Reps != "" {
				e.Reps = shiftRepRange(e.Reps, 2, 0, 0)
			}
		case catalog.DifficultyIntermediate:
			// No change.
		}
		adjusted[i] = e
	}
	return adjusted
}

// shiftRepRange shifts both bounds of a "min-max" rep range (or a fixed rep
// count) by delta, clamping to the given floors when they are positive.
// Unparseable values are returned untouched.
func shiftRepRange(reps string, delta, minFloor, maxFloor int) string {
	lowStr, highStr, isRange := strings.Cut(reps, "-")

	low, err := strconv.Atoi(strings.TrimSpace(lowStr))
	if err != nil {
		return reps
	}
	low += delta
	if minFloor > 0 {
		low = max(minFloor, low)
	}

	if !isRange {
		return strconv.Itoa(low)
	}

	high, err := strconv.Atoi(strings.TrimSpace(highStr))
	if err != nil {
		return reps
	}
	high += delta
	if maxFloor > 0 {
		high = max(maxFloor, high)
	}

	return fmt.Sprintf("%d-%d", low, high)
}

// backfillInstructions fills missing instructions with a generic sentence
// referencing the exercise name.
func backfillInstructions(exercises []catalog.Exercise) []catalog.Exercise {
	filled := make([]catalog.Exercise, len(exercises))
	for i, e := range exercises {
		if e.Instructions == "" {
			e.Instructions = fmt.Sprintf(
				"Perform %s with controlled form, focusing on the full range of motion.", e.Name)
		}
		filled[i] = e
	}
	return filled
}

// trimPreservingCoverage shrinks the list to the target count. It first keeps
// one exercise per requested muscle group (first match in list order), then
// fills the remaining slots from the leftover pool in existing order.
func trimPreservingCoverage(
	exercises []catalog.Exercise,
	groups []catalog.MuscleGroup,
	target int,
) []catalog.Exercise {
	selected := make([]catalog.Exercise, 0, target)
	used := make(map[int]bool, len(exercises))

	for _, group := range groups {
		if len(selected) >= target {
			break
		}
		for i, e := range exercises {
			if !used[i] && e.MuscleGroup == group {
				selected = append(selected, e)
				used[i] = true
				break
			}
		}
	}

	for i, e := range exercises {
		if len(selected) >= target {
			break
		}
		if !used[i] {
			selected = append(selected, e)
			used[i] = true
		}
	}

	return selected
}

func containsExercise(exercises []catalog.Exercise, name string) bool {
	for _, e := range exercises {
		if e.Name == name {
			return true
		}
	}
	return false
}

func planName(req Request) string {
	goal := req.Goal
	if goal == "" {
		return "Custom Workout"
	}
	words := strings.Split(goal, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ") + " Workout"
}
