// Package catalog holds the static exercise reference data the planner
// selects from. The catalog is loaded once at startup and never mutated.
package catalog

// MuscleGroup is one of seven fixed body-region categories used to tag
// exercises and drive plan composition.
type MuscleGroup string

// The closed set of muscle groups.
const (
	UpperBodyPush MuscleGroup = "UpperBodyPush"
	UpperBodyPull MuscleGroup = "UpperBodyPull"
	LowerBodyPush MuscleGroup = "LowerBodyPush"
	LowerBodyPull MuscleGroup = "LowerBodyPull"
	Core          MuscleGroup = "Core"
	Arms          MuscleGroup = "Arms"
	Shoulders     MuscleGroup = "Shoulders"
)

// GroupAll is a meta-selector that expands to all seven groups at selection
// time. It is never stored on an exercise or a plan.
const GroupAll MuscleGroup = "All"

// AllMuscleGroups returns the seven concrete muscle groups in canonical order.
func AllMuscleGroups() []MuscleGroup {
	return []MuscleGroup{
		UpperBodyPush,
		UpperBodyPull,
		LowerBodyPush,
		LowerBodyPull,
		Core,
		Arms,
		Shoulders,
	}
}

// ExpandMuscleGroups resolves the GroupAll meta-selector. Other values pass
// through untouched: unknown group names are not validated here, they simply
// match nothing downstream.
func ExpandMuscleGroups(groups []MuscleGroup) []MuscleGroup {
	for _, g := range groups {
		if g == GroupAll {
			return AllMuscleGroups()
		}
	}
	return groups
}

// MuscleGroupsFromStrings converts raw user input into muscle groups without
// validation. Invalid names silently filter everything out downstream.
func MuscleGroupsFromStrings(names []string) []MuscleGroup {
	groups := make([]MuscleGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, MuscleGroup(name))
	}
	return groups
}

// Difficulty is a workout difficulty tier.
type Difficulty string

// Difficulty tiers.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Exercise is a single catalog entry. Strength exercises carry Sets/Reps,
// timed ones carry Duration/Intensity; the fields are optional in the same
// permissive way for both.
type Exercise struct {
	Name         string      `yaml:"name"         json:"name"`
	Sets         int         `yaml:"sets"         json:"sets,omitempty"`
	Reps         string      `yaml:"reps"         json:"reps,omitempty"`
	Rest         string      `yaml:"rest"         json:"rest,omitempty"`
	Duration     string      `yaml:"duration"     json:"duration,omitempty"`
	Intensity    string      `yaml:"intensity"    json:"intensity,omitempty"`
	MuscleGroup  MuscleGroup `yaml:"muscleGroup"  json:"muscleGroup"`
	Equipment    []string    `yaml:"equipment"    json:"equipment"`
	Instructions string      `yaml:"instructions" json:"instructions,omitempty"`
	WeightNote   string      `yaml:"weightNote"   json:"weightNote,omitempty"`
}

// UsesEquipment reports whether the exercise's equipment tags intersect the
// requested set. Exercises with no tags match nothing: they are not
// equipment-free by default.
func (e Exercise) UsesEquipment(requested []string) bool {
	for _, tag := range e.Equipment {
		for _, want := range requested {
			if tag == want {
				return true
			}
		}
	}
	return false
}
