package catalog

// FallbackEquipmentOrder is the fixed priority order in which fallback tables
// are consulted when a muscle group is under-populated after filtering. Later
// entries are only reached when the earlier equipment was not requested or
// its table had nothing for the group.
func FallbackEquipmentOrder() []string {
	return []string{
		"dumbbells",
		"resistance bands",
		"trx",
		"medicine ball",
		"kettlebells",
		"cables",
		"foam roller",
		"yoga mat",
		"bands",
	}
}

// FallbackExercises returns the hard-coded fallback entries for an equipment
// tag and muscle group. The result is empty when the table has no entry.
func FallbackExercises(equipment string, group MuscleGroup) []Exercise {
	byGroup, ok := fallbackTables[equipment]
	if !ok {
		return nil
	}
	return byGroup[group]
}

func strengthFallback(name string, group MuscleGroup, equipment string) Exercise {
	return Exercise{
		Name:        name,
		Sets:        3,
		Reps:        "8-12",
		Rest:        "60s",
		MuscleGroup: group,
		Equipment:   []string{equipment},
	}
}

//nolint:gochecknoglobals // static reference data.
var fallbackTables = map[string]map[MuscleGroup][]Exercise{
	"dumbbells": {
		UpperBodyPush: {
			strengthFallback("Dumbbell Bench Press", UpperBodyPush, "dumbbells"),
			strengthFallback("Dumbbell Floor Press", UpperBodyPush, "dumbbells"),
		},
		UpperBodyPull: {
			strengthFallback("Dumbbell Row", UpperBodyPull, "dumbbells"),
			strengthFallback("Dumbbell Pullover", UpperBodyPull, "dumbbells"),
		},
		LowerBodyPush: {
			strengthFallback("Dumbbell Goblet Squat", LowerBodyPush, "dumbbells"),
			strengthFallback("Dumbbell Step-Up", LowerBodyPush, "dumbbells"),
		},
		LowerBodyPull: {
			strengthFallback("Dumbbell Romanian Deadlift", LowerBodyPull, "dumbbells"),
			strengthFallback("Dumbbell Hip Hinge", LowerBodyPull, "dumbbells"),
		},
		Core: {
			strengthFallback("Dumbbell Russian Twist", Core, "dumbbells"),
			strengthFallback("Dumbbell Side Bend", Core, "dumbbells"),
		},
		Arms: {
			strengthFallback("Dumbbell Bicep Curl", Arms, "dumbbells"),
			strengthFallback("Dumbbell Tricep Extension", Arms, "dumbbells"),
		},
		Shoulders: {
			strengthFallback("Dumbbell Shoulder Press", Shoulders, "dumbbells"),
			strengthFallback("Dumbbell Lateral Raise", Shoulders, "dumbbells"),
		},
	},
	"resistance bands": {
		UpperBodyPush: {
			strengthFallback("Band Chest Press", UpperBodyPush, "resistance bands"),
			strengthFallback("Band Push-Up", UpperBodyPush, "resistance bands"),
		},
		UpperBodyPull: {
			strengthFallback("Band Row", UpperBodyPull, "resistance bands"),
			strengthFallback("Band Pull-Apart", UpperBodyPull, "resistance bands"),
		},
		LowerBodyPush: {
			strengthFallback("Band Squat", LowerBodyPush, "resistance bands"),
			strengthFallback("Band Split Squat", LowerBodyPush, "resistance bands"),
		},
		LowerBodyPull: {
			strengthFallback("Band Good Morning", LowerBodyPull, "resistance bands"),
			strengthFallback("Band Leg Curl", LowerBodyPull, "resistance bands"),
		},
		Core: {
			strengthFallback("Band Pallof Press", Core, "resistance bands"),
			strengthFallback("Band Woodchopper", Core, "resistance bands"),
		},
		Arms: {
			strengthFallback("Band Bicep Curl", Arms, "resistance bands"),
			strengthFallback("Band Tricep Pushdown", Arms, "resistance bands"),
		},
		Shoulders: {
			strengthFallback("Band Overhead Press", Shoulders, "resistance bands"),
			strengthFallback("Band Front Raise", Shoulders, "resistance bands"),
		},
	},
	"trx": {
		UpperBodyPush: {
			strengthFallback("TRX Chest Press", UpperBodyPush, "trx"),
		},
		UpperBodyPull: {
			strengthFallback("TRX Row", UpperBodyPull, "trx"),
			strengthFallback("TRX Face Pull", UpperBodyPull, "trx"),
		},
		LowerBodyPush: {
			strengthFallback("TRX Pistol Squat", LowerBodyPush, "trx"),
		},
		LowerBodyPull: {
			strengthFallback("TRX Hamstring Curl", LowerBodyPull, "trx"),
		},
		Core: {
			strengthFallback("TRX Plank Saw", Core, "trx"),
			strengthFallback("TRX Pike", Core, "trx"),
		},
		Arms: {
			strengthFallback("TRX Bicep Curl", Arms, "trx"),
			strengthFallback("TRX Tricep Press", Arms, "trx"),
		},
		Shoulders: {
			strengthFallback("TRX Y-Raise", Shoulders, "trx"),
		},
	},
	"medicine ball": {
		UpperBodyPush: {
			strengthFallback("Medicine Ball Chest Pass", UpperBodyPush, "medicine ball"),
		},
		LowerBodyPush: {
			strengthFallback("Medicine Ball Squat Throw", LowerBodyPush, "medicine ball"),
		},
		Core: {
			strengthFallback("Medicine Ball Slam", Core, "medicine ball"),
			strengthFallback("Medicine Ball Twist", Core, "medicine ball"),
		},
		Shoulders: {
			strengthFallback("Medicine Ball Overhead Throw", Shoulders, "medicine ball"),
		},
	},
	"kettlebells": {
		UpperBodyPull: {
			strengthFallback("Kettlebell High Pull", UpperBodyPull, "kettlebells"),
		},
		LowerBodyPush: {
			strengthFallback("Kettlebell Goblet Squat", LowerBodyPush, "kettlebells"),
		},
		LowerBodyPull: {
			strengthFallback("Kettlebell Swing", LowerBodyPull, "kettlebells"),
			strengthFallback("Kettlebell Single-Leg Deadlift", LowerBodyPull, "kettlebells"),
		},
		Core: {
			strengthFallback("Kettlebell Windmill", Core, "kettlebells"),
		},
		Shoulders: {
			strengthFallback("Kettlebell Press", Shoulders, "kettlebells"),
		},
	},
	"cables": {
		UpperBodyPush: {
			strengthFallback("Cable Chest Fly", UpperBodyPush, "cables"),
		},
		UpperBodyPull: {
			strengthFallback("Cable Lat Pulldown", UpperBodyPull, "cables"),
			strengthFallback("Cable Seated Row", UpperBodyPull, "cables"),
		},
		Core: {
			strengthFallback("Cable Crunch", Core, "cables"),
		},
		Arms: {
			strengthFallback("Cable Curl", Arms, "cables"),
			strengthFallback("Cable Tricep Pushdown", Arms, "cables"),
		},
		Shoulders: {
			strengthFallback("Cable Lateral Raise", Shoulders, "cables"),
		},
	},
	"foam roller": {
		Core: {
			strengthFallback("Foam Roller Plank Rollout", Core, "foam roller"),
		},
		LowerBodyPull: {
			strengthFallback("Foam Roller Hamstring Release", LowerBodyPull, "foam roller"),
		},
	},
	"yoga mat": {
		Core: {
			strengthFallback("Mat Plank", Core, "yoga mat"),
			strengthFallback("Mat Bicycle Crunch", Core, "yoga mat"),
		},
		LowerBodyPush: {
			strengthFallback("Mat Glute Bridge", LowerBodyPush, "yoga mat"),
		},
	},
	"bands": {
		UpperBodyPull: {
			strengthFallback("Mini Band Pull-Apart", UpperBodyPull, "bands"),
		},
		LowerBodyPush: {
			strengthFallback("Mini Band Lateral Walk", LowerBodyPush, "bands"),
			strengthFallback("Mini Band Squat", LowerBodyPush, "bands"),
		},
		Shoulders: {
			strengthFallback("Mini Band External Rotation", Shoulders, "bands"),
		},
	},
}
