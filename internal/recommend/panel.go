package recommend

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/ojalehto/fitplan/internal/catalog"
	"github.com/ojalehto/fitplan/internal/profile"
)

// Panel generation sizes.
const (
	panelUserCount    = 20
	panelMinRatings   = 3
	panelMaxRatings   = 8
	libraryPlanLength = 30
)

var panelEquipment = []string{
	"dumbbells", "resistance bands", "kettlebells", "yoga mat",
	"medicine ball", "trx", "cables", "foam roller",
}

var libraryTemplates = []struct {
	name         string
	difficulty   catalog.Difficulty
	muscleGroups []catalog.MuscleGroup
	equipment    []string
}{
	{"Full Body Strength", catalog.DifficultyIntermediate, catalog.AllMuscleGroups(), []string{"dumbbells"}},
	{"Upper Body Blast", catalog.DifficultyIntermediate, []catalog.MuscleGroup{catalog.UpperBodyPush, catalog.UpperBodyPull, catalog.Shoulders}, []string{"dumbbells", "resistance bands"}},
	{"Leg Day Foundations", catalog.DifficultyBeginner, []catalog.MuscleGroup{catalog.LowerBodyPush, catalog.LowerBodyPull}, []string{"dumbbells"}},
	{"Core Stability", catalog.DifficultyBeginner, []catalog.MuscleGroup{catalog.Core}, []string{"yoga mat"}},
	{"Kettlebell Circuit", catalog.DifficultyAdvanced, []catalog.MuscleGroup{catalog.LowerBodyPush, catalog.Core, catalog.Shoulders}, []string{"kettlebells"}},
	{"Band Burner", catalog.DifficultyBeginner, []catalog.MuscleGroup{catalog.UpperBodyPull, catalog.Arms}, []string{"resistance bands"}},
	{"Push Pull Power", catalog.DifficultyAdvanced, []catalog.MuscleGroup{catalog.UpperBodyPush, catalog.UpperBodyPull}, []string{"dumbbells", "cables"}},
	{"Mobility Reset", catalog.DifficultyBeginner, []catalog.MuscleGroup{catalog.Core, catalog.LowerBodyPull}, []string{"foam roller", "yoga mat"}},
	{"Arms and Shoulders", catalog.DifficultyIntermediate, []catalog.MuscleGroup{catalog.Arms, catalog.Shoulders}, []string{"dumbbells"}},
	{"TRX Total Body", catalog.DifficultyIntermediate, catalog.AllMuscleGroups(), []string{"trx"}},
	{"Medicine Ball Conditioning", catalog.DifficultyAdvanced, []catalog.MuscleGroup{catalog.Core, catalog.UpperBodyPush}, []string{"medicine ball"}},
	{"Lower Body Strength", catalog.DifficultyIntermediate, []catalog.MuscleGroup{catalog.LowerBodyPush, catalog.LowerBodyPull, catalog.Core}, []string{"dumbbells", "kettlebells"}},
}

// DefaultPanel generates the workout library and a panel of rated-up mock
// users. The same seed always produces the same panel, so recommendation
// output is stable across restarts for a fixed configuration.
func DefaultPanel(seed uint64) ([]profile.UserProfile, []Workout) {
	faker := gofakeit.New(seed)

	workouts := make([]Workout, 0, len(libraryTemplates))
	for i, tpl := range libraryTemplates {
		workouts = append(workouts, Workout{
			ID:           fmt.Sprintf("lib-%02d", i+1),
			Name:         tpl.name,
			Difficulty:   tpl.difficulty,
			Duration:     libraryPlanLength,
			MuscleGroups: tpl.muscleGroups,
			Equipment:    tpl.equipment,
		})
	}

	genders := []string{"female", "male"}
	allGroups := catalog.AllMuscleGroups()

	users := make([]profile.UserProfile, 0, panelUserCount)
	for i := 0; i < panelUserCount; i++ {
		gender := genders[i%2]
		name := faker.FirstName()

		equipment := pickStrings(faker, panelEquipment, 1, 4)
		groups := make([]catalog.MuscleGroup, 0, 3)
		for _, g := range pickStrings(faker, muscleGroupNames(allGroups), 1, 3) {
			groups = append(groups, catalog.MuscleGroup(g))
		}

		ratingCount := faker.Number(panelMinRatings, panelMaxRatings)
		ratedIdx := indexes(len(workouts))
		faker.ShuffleInts(ratedIdx)
		ratings := make([]profile.WorkoutRating, 0, ratingCount)
		for _, wi := range ratedIdx[:min(ratingCount, len(ratedIdx))] {
			ratings = append(ratings, profile.WorkoutRating{
				PlanID:  workouts[wi].ID,
				Rating:  faker.Number(2, 5),
				RatedAt: time.Date(2026, time.Month(faker.Number(1, 6)), faker.Number(1, 28), 12, 0, 0, 0, time.UTC),
			})
		}

		users = append(users, profile.UserProfile{
			ID:                 fmt.Sprintf("panel-%02d", i+1),
			Name:               name,
			Gender:             gender,
			Age:                faker.Number(18, 65),
			Weight:             float64(faker.Number(50, 110)),
			PreferredEquipment: equipment,
			MuscleGroups:       groups,
			Ratings:            ratings,
		})
	}

	return users, workouts
}

func pickStrings(faker *gofakeit.Faker, pool []string, atLeast, atMost int) []string {
	count := faker.Number(atLeast, atMost)
	shuffled := append([]string(nil), pool...)
	faker.ShuffleStrings(shuffled)
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

func indexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
