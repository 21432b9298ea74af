package planner

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/ojalehto/fitplan/internal/catalog"
)

func newTestAssembler(t *testing.T) *Assembler {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	return New(cat, rand.New(rand.NewPCG(1, 2)))
}

func TestGenerate_targetExerciseCount(t *testing.T) {
	tests := []struct {
		duration int
		want     int
	}{
		{duration: 15, want: 4},
		{duration: 20, want: 4},
		{duration: 30, want: 6},
		{duration: 45, want: 8},
		{duration: 60, want: 8},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dmin", tt.duration), func(t *testing.T) {
			a := newTestAssembler(t)
			plan := a.Generate(Request{
				Equipment:    []string{"dumbbells", "resistance bands"},
				MuscleGroups: []catalog.MuscleGroup{catalog.GroupAll},
				Gender:       "female",
				Duration:     tt.duration,
				Difficulty:   catalog.DifficultyIntermediate,
				Goal:         "strength",
			})
			if len(plan.Exercises) != tt.want {
				t.Errorf("got %d exercises, want %d", len(plan.Exercises), tt.want)
			}
		})
	}
}

func TestGenerate_singleGroupShortSession(t *testing.T) {
	a := newTestAssembler(t)
	plan := a.Generate(Request{
		Equipment:    []string{"dumbbells"},
		MuscleGroups: []catalog.MuscleGroup{catalog.Arms},
		Gender:       "male",
		Duration:     15,
		Difficulty:   catalog.DifficultyIntermediate,
		Goal:         "strength",
	})

	// A single muscle group contributes at most two exercises, so the
	// 15 minute target of four cannot be exceeded.
	if got := len(plan.Exercises); got == 0 || got > 4 {
		t.Fatalf("got %d exercises, want between 1 and 4", got)
	}
	for _, e := range plan.Exercises {
		if e.MuscleGroup != catalog.Arms {
			t.Errorf("exercise %q targets %s, want %s", e.Name, e.MuscleGroup, catalog.Arms)
		}
	}
}

func TestGenerate_equipmentFilter(t *testing.T) {
	a := newTestAssembler(t)
	equipment := []string{"dumbbells"}
	plan := a.Generate(Request{
		Equipment:    equipment,
		MuscleGroups: []catalog.MuscleGroup{catalog.GroupAll},
		Gender:       "female",
		Duration:     45,
		Difficulty:   catalog.DifficultyIntermediate,
		Goal:         "strength",
	})

	for _, e := range plan.Exercises {
		if !e.UsesEquipment(equipment) {
			t.Errorf("exercise %q requires %v, not satisfiable with %v", e.Name, e.Equipment, equipment)
		}
	}
}

func TestGenerate_deterministicWithFixedSeed(t *testing.T) {
	req := Request{
		Equipment:    []string{"dumbbells", "resistance bands"},
		MuscleGroups: []catalog.MuscleGroup{catalog.GroupAll},
		Gender:       "female",
		Duration:     45,
		Difficulty:   catalog.DifficultyBeginner,
		Goal:         "weight_loss",
	}

	first := newTestAssembler(t).Generate(req)
	second := newTestAssembler(t).Generate(req)

	if len(first.Exercises) != len(second.Exercises) {
		t.Fatalf("plan lengths differ: %d vs %d", len(first.Exercises), len(second.Exercises))
	}
	for i := range first.Exercises {
		if first.Exercises[i].Name != second.Exercises[i].Name {
			t.Errorf("exercise %d differs: %q vs %q", i, first.Exercises[i].Name, second.Exercises[i].Name)
		}
	}
}

func TestGenerate_instructionsAlwaysPresent(t *testing.T) {
	a := newTestAssembler(t)
	plan := a.Generate(Request{
		Equipment:    []string{"resistance bands", "yoga mat"},
		MuscleGroups: []catalog.MuscleGroup{catalog.GroupAll},
		Gender:       "female",
		Duration:     60,
		Difficulty:   catalog.DifficultyIntermediate,
		Goal:         "flexibility",
	})

	if len(plan.Exercises) == 0 {
		t.Fatal("got empty plan")
	}
	for _, e := range plan.Exercises {
		if e.Instructions == "" {
			t.Errorf("exercise %q has no instructions", e.Name)
		}
	}
}

func TestGenerate_planName(t *testing.T) {
	tests := []struct {
		goal string
		want string
	}{
		{goal: "strength", want: "Strength Workout"},
		{goal: "weight_loss", want: "Weight Loss Workout"},
		{goal: "", want: "Custom Workout"},
	}

	for _, tt := range tests {
		t.Run(tt.goal, func(t *testing.T) {
			a := newTestAssembler(t)
			plan := a.Generate(Request{
				Equipment:    []string{"dumbbells"},
				MuscleGroups: []catalog.MuscleGroup{catalog.GroupAll},
				Gender:       "female",
				Duration:     30,
				Difficulty:   catalog.DifficultyIntermediate,
				Goal:         tt.goal,
			})
			if plan.Name != tt.want {
				t.Errorf("got plan name %q, want %q", plan.Name, tt.want)
			}
		})
	}
}

func TestShiftRepRange(t *testing.T) {
	tests := []struct {
		name     string
		reps     string
		delta    int
		minFloor int
		maxFloor int
		want     string
	}{
		{name: "widen range", reps: "8-12", delta: 2, want: "10-14"},
		{name: "narrow with floors", reps: "8-12", delta: -2, minFloor: 6, maxFloor: 8, want: "6-10"},
		{name: "floor clamps low bound", reps: "6-8", delta: -2, minFloor: 6, maxFloor: 8, want: "6-8"},
		{name: "fixed reps", reps: "10", delta: 2, want: "12"},
		{name: "fixed reps with floor", reps: "7", delta: -2, minFloor: 6, maxFloor: 8, want: "6"},
		{name: "unparseable untouched", reps: "30 seconds", delta: 2, want: "30 seconds"},
		{name: "per-side suffix untouched", reps: "10 per side", delta: 2, want: "10 per side"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shiftRepRange(tt.reps, tt.delta, tt.minFloor, tt.maxFloor)
			if got != tt.want {
				t.Errorf("shiftRepRange(%q, %d) = %q, want %q", tt.reps, tt.delta, got, tt.want)
			}
		})
	}
}

func TestApplyDifficultyAdjustment(t *testing.T) {
	base := []catalog.Exercise{{Name: "Goblet Squat", Sets: 3, Reps: "8-12"}}

	tests := []struct {
		name       string
		difficulty catalog.Difficulty
		wantSets   int
		wantReps   string
	}{
		{name: "beginner", difficulty: catalog.DifficultyBeginner, wantSets: 2, wantReps: "6-10"},
		{name: "intermediate", difficulty: catalog.DifficultyIntermediate, wantSets: 3, wantReps: "8-12"},
		{name: "advanced", difficulty: catalog.DifficultyAdvanced, wantSets: 4, wantReps: "10-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyDifficultyAdjustment(base, tt.difficulty)
			if got[0].Sets != tt.wantSets {
				t.Errorf("got %d sets, want %d", got[0].Sets, tt.wantSets)
			}
			if got[0].Reps != tt.wantReps {
				t.Errorf("got reps %q, want %q", got[0].Reps, tt.wantReps)
			}
		})
	}
}

func TestApplyGenderAdjustment(t *testing.T) {
	base := []catalog.Exercise{{Name: "Dumbbell Row", Sets: 3, Reps: "8-12"}}

	female := applyGenderAdjustment(base, "female")
	if female[0].Reps != "10-14" {
		t.Errorf("female reps = %q, want 10-14", female[0].Reps)
	}
	if female[0].WeightNote != "" {
		t.Errorf("female weight note = %q, want empty", female[0].WeightNote)
	}

	male := applyGenderAdjustment(base, "male")
	if male[0].Reps != "8-12" {
		t.Errorf("male reps = %q, want unchanged 8-12", male[0].Reps)
	}
	if male[0].WeightNote == "" {
		t.Error("male weight note is empty, want guidance appended")
	}
}

func TestTrimPreservingCoverage(t *testing.T) {
	exercises := []catalog.Exercise{
		{Name: "A", MuscleGroup: catalog.Core},
		{Name: "B", MuscleGroup: catalog.Core},
		{Name: "C", MuscleGroup: catalog.Arms},
		{Name: "D", MuscleGroup: catalog.Shoulders},
	}
	groups := []catalog.MuscleGroup{catalog.Core, catalog.Arms, catalog.Shoulders}

	got := trimPreservingCoverage(exercises, groups, 3)
	if len(got) != 3 {
		t.Fatalf("got %d exercises, want 3", len(got))
	}

	covered := make(map[catalog.MuscleGroup]bool)
	for _, e := range got {
		covered[e.MuscleGroup] = true
	}
	for _, g := range groups {
		if !covered[g] {
			t.Errorf("group %s lost during trim", g)
		}
	}
}

func TestGenerate_concurrentRequests(t *testing.T) {
	a := newTestAssembler(t)
	req := Request{
		Equipment:    []string{"dumbbells", "resistance bands"},
		MuscleGroups: []catalog.MuscleGroup{catalog.GroupAll},
		Gender:       "female",
		Duration:     45,
		Difficulty:   catalog.DifficultyIntermediate,
		Goal:         "strength",
	}

	// One Assembler serves all request handlers, so Generate must tolerate
	// parallel callers sharing the random source.
	const callers = 8
	var wg sync.WaitGroup
	plans := make([]Plan, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			plans[i] = a.Generate(req)
		}()
	}
	wg.Wait()

	for i, plan := range plans {
		if len(plan.Exercises) == 0 {
			t.Errorf("caller %d got an empty plan", i)
		}
	}
}

// sparseCatalog has a single Core exercise and nothing else, so Core
// requests exercise the backfill path and other groups stay uncoverable.
const sparseCatalogYAML = `
strength:
  core:
    - name: Suspension Crunch
      sets: 3
      reps: "10-15"
      muscleGroup: Core
      equipment: [trx]
`

func newSparseAssembler(t *testing.T) *Assembler {
	t.Helper()
	cat, err := catalog.Parse([]byte(sparseCatalogYAML))
	if err != nil {
		t.Fatalf("parse fixture catalog: %v", err)
	}
	return New(cat, rand.New(rand.NewPCG(1, 2)))
}

func TestGenerate_backfillUsesOnlyRequestedEquipment(t *testing.T) {
	a := newSparseAssembler(t)
	plan := a.Generate(Request{
		Equipment:    []string{"trx"},
		MuscleGroups: []catalog.MuscleGroup{catalog.Core},
		Duration:     30,
		Difficulty:   catalog.DifficultyIntermediate,
		Goal:         "strength",
	})

	// The single catalog match is topped up from the trx fallback table.
	// The dumbbell tables come first in priority but were not requested.
	wantNames := map[string]bool{"Suspension Crunch": true, "TRX Plank Saw": true}
	if len(plan.Exercises) != len(wantNames) {
		t.Fatalf("got %d exercises, want %d", len(plan.Exercises), len(wantNames))
	}
	for _, e := range plan.Exercises {
		if !wantNames[e.Name] {
			t.Errorf("unexpected exercise %q", e.Name)
		}
		for _, tag := range e.Equipment {
			if tag != "trx" {
				t.Errorf("exercise %q uses equipment %q outside the request", e.Name, tag)
			}
		}
	}
}

func TestGenerate_backfillFollowsEquipmentPriority(t *testing.T) {
	a := newSparseAssembler(t)
	plan := a.Generate(Request{
		Equipment:    []string{"trx", "dumbbells", "resistance bands"},
		MuscleGroups: []catalog.MuscleGroup{catalog.Shoulders},
		Duration:     30,
		Difficulty:   catalog.DifficultyIntermediate,
		Goal:         "strength",
	})

	// The catalog has no Shoulders exercises at all, so the bucket fills
	// entirely from the fallback tables. Dumbbells outrank trx and
	// resistance bands in the priority order and already cover the
	// two-exercise minimum, so the later tables are never reached.
	wantNames := map[string]bool{"Dumbbell Shoulder Press": true, "Dumbbell Lateral Raise": true}
	if len(plan.Exercises) != len(wantNames) {
		t.Fatalf("got %d exercises, want %d", len(plan.Exercises), len(wantNames))
	}
	for _, e := range plan.Exercises {
		if !wantNames[e.Name] {
			t.Errorf("unexpected exercise %q, want only the dumbbell fallbacks", e.Name)
		}
	}
}

func TestGenerate_uncoverableGroupYieldsEmptyPlan(t *testing.T) {
	a := newSparseAssembler(t)

	// The medicine ball fallback table has no Arms entries and the catalog
	// has no Arms exercises either.
	plan := a.Generate(Request{
		Equipment:    []string{"medicine ball"},
		MuscleGroups: []catalog.MuscleGroup{catalog.Arms},
		Duration:     30,
		Difficulty:   catalog.DifficultyIntermediate,
		Goal:         "strength",
	})

	if len(plan.Exercises) != 0 {
		t.Errorf("got %d exercises, want none", len(plan.Exercises))
	}
	if plan.Name != "Strength Workout" {
		t.Errorf("got plan name %q, want Strength Workout", plan.Name)
	}
}
