package health

// Gender selects the sex-specific constants of the body-fat, BMR and
// waist-to-hip formulas.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Subject is the normalized input to the metrics engine. Height and weight are
// always metric regardless of the units the person entered them in.
type Subject struct {
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	HeightCm      float64       `json:"height_cm"`
	WeightKg      float64       `json:"weight_kg"`
	WaistCm       *float64      `json:"waist_cm,omitempty"`
	HipCm         *float64      `json:"hip_cm,omitempty"`
	Units         Units         `json:"units"`
	ActivityLevel ActivityLevel `json:"activity_level,omitempty"`
}

// ActivityLevel scales BMR into total daily energy expenditure.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
	ExtraActive      ActivityLevel = "extra_active"
)

type activityInfo struct {
	multiplier  float64
	label       string
	description string
}

// activityLevels is the single source of truth for valid activity levels.
var activityLevels = map[ActivityLevel]activityInfo{
	Sedentary:        {1.2, "Sedentary", "Little or no exercise. Typical for desk jobs and minimal movement."},
	LightlyActive:    {1.375, "Lightly Active", "Light exercise 1–3 days/week. E.g., casual walking or light sports."},
	ModeratelyActive: {1.55, "Moderately Active", "Moderate exercise 3–5 days/week. E.g., gym sessions or active jobs."},
	VeryActive:       {1.725, "Very Active", "Hard exercise 6–7 days/week or physically demanding job."},
	ExtraActive:      {1.9, "Extra Active", "Very hard exercise & physical job. E.g., athletes or manual laborers."},
}

// ActivityLevels lists the valid levels from least to most active.
func ActivityLevels() []ActivityLevel {
	return []ActivityLevel{Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtraActive}
}

// Valid reports whether l is a known activity level.
func (l ActivityLevel) Valid() bool {
	_, ok := activityLevels[l]
	return ok
}

// Multiplier returns the TDEE multiplier, or 0 for an unknown level.
func (l ActivityLevel) Multiplier() float64 { return activityLevels[l].multiplier }

// Label returns the human-readable name of the level.
func (l ActivityLevel) Label() string { return activityLevels[l].label }

// Description explains what the level means in practice.
func (l ActivityLevel) Description() string { return activityLevels[l].description }
