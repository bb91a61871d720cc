package health

import "fmt"

// BMICategory is one of eight ordered BMI bands. Higher values always mean a
// higher BMI, so comparing categories compares BMI.
type BMICategory int

const (
	SevereThinness BMICategory = iota
	ModerateThinness
	MildThinness
	Normal
	Overweight
	ObeseClassI
	ObeseClassII
	ObeseClassIII
)

var bmiCategoryNames = [...]string{
	SevereThinness:   "Severe Thinness",
	ModerateThinness: "Moderate Thinness",
	MildThinness:     "Mild Thinness",
	Normal:           "Normal",
	Overweight:       "Overweight",
	ObeseClassI:      "Obese Class I",
	ObeseClassII:     "Obese Class II",
	ObeseClassIII:    "Obese Class III",
}

// bmiUpperBounds holds the exclusive upper bound of every band but the last.
var bmiUpperBounds = [...]float64{16, 17, 18.5, 25, 30, 35, 40}

func (c BMICategory) String() string {
	if c < SevereThinness || c > ObeseClassIII {
		return fmt.Sprintf("BMICategory(%d)", int(c))
	}
	return bmiCategoryNames[c]
}

func (c BMICategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *BMICategory) UnmarshalText(b []byte) error {
	for i, name := range bmiCategoryNames {
		if name == string(b) {
			*c = BMICategory(i)
			return nil
		}
	}
	return fmt.Errorf("unknown BMI category %q", b)
}

// Severity is the distance of the band from Normal: 0 for Normal, rising on
// both the underweight and the overweight side.
func (c BMICategory) Severity() int {
	if c <= Normal {
		return int(Normal - c)
	}
	return int(c - Normal)
}

// BodyFatCategory is a gender-specific body-fat band.
type BodyFatCategory string

const (
	EssentialFat BodyFatCategory = "Essential fat"
	Athletic     BodyFatCategory = "Athletic"
	Fitness      BodyFatCategory = "Fitness"
	Average      BodyFatCategory = "Average"
	Obese        BodyFatCategory = "Obese"
)

var (
	maleFatBounds   = [4]float64{6, 14, 18, 25}
	femaleFatBounds = [4]float64{14, 21, 25, 32}
	fatCategories   = [5]BodyFatCategory{EssentialFat, Athletic, Fitness, Average, Obese}
)

// WaistHipRisk classifies a waist-to-hip ratio.
type WaistHipRisk string

const (
	LowRisk  WaistHipRisk = "Low risk"
	HighRisk WaistHipRisk = "High risk"
)

// WeightRange is a closed range of body weights in kilograms.
type WeightRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// HealthMetrics is derived from a Subject on every calculation and replaced,
// never updated, by the next one.
type HealthMetrics struct {
	BMI                float64         `json:"bmi"`
	BMICategory        BMICategory     `json:"bmi_category"`
	BodyFatPercent     float64         `json:"body_fat_percent"`
	BodyFatCategory    BodyFatCategory `json:"body_fat_category"`
	BMR                float64         `json:"bmr"`
	LeanBodyMassKg     float64         `json:"lean_body_mass_kg"`
	IdealWeightRangeKg WeightRange     `json:"ideal_weight_range_kg"`
	WaistToHeightRatio *float64        `json:"waist_to_height_ratio,omitempty"`
	WaistToHipRatio    *float64        `json:"waist_to_hip_ratio,omitempty"`
	WaistToHipRisk     *WaistHipRisk   `json:"waist_to_hip_risk,omitempty"`
	ActivityLevel      ActivityLevel   `json:"activity_level,omitempty"`
	TDEE               *float64        `json:"tdee,omitempty"`
}

// BMI computes weight / height² with height in meters. A non-finite result
// (zero height) returns ErrDegenerate.
func BMI(weightKg, heightCm float64) (float64, error) {
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)
	if !finite(bmi) {
		return 0, ErrDegenerate
	}
	return bmi, nil
}

// CategorizeBMI buckets bmi into a band. For people over 65 the BMI is scaled
// by 0.95 first. Each bound is exclusive, so a value equal to a bound lands in
// the higher band.
func CategorizeBMI(bmi float64, age int) BMICategory {
	adjusted := bmi
	if age > 65 {
		adjusted *= 0.95
	}
	for i, upper := range bmiUpperBounds {
		if adjusted < upper {
			return BMICategory(i)
		}
	}
	return ObeseClassIII
}

// BodyFatPercent estimates body fat from BMI and age. The estimate is not
// clamped and can be slightly negative for very low BMI and age.
func BodyFatPercent(bmi float64, age int, g Gender) float64 {
	base := 1.20*bmi + 0.23*float64(age)
	if g == Male {
		return base - 16.2
	}
	return base - 5.4
}

// CategorizeBodyFat buckets a body-fat percentage. Anything below the first
// bound, negative estimates included, is Essential fat.
func CategorizeBodyFat(pct float64, g Gender) BodyFatCategory {
	bounds := femaleFatBounds
	if g == Male {
		bounds = maleFatBounds
	}
	for i, upper := range bounds {
		if pct < upper {
			return fatCategories[i]
		}
	}
	return Obese
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(weightKg, heightCm float64, age int, g Gender) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if g == Male {
		return bmr + 5
	}
	return bmr - 161
}

// LeanBodyMass is total weight minus estimated fat mass.
func LeanBodyMass(weightKg, bodyFatPct float64) float64 {
	return weightKg * (1 - bodyFatPct/100)
}

// IdealWeightRange is the weight range that gives a Normal BMI at heightCm.
func IdealWeightRange(heightCm float64) WeightRange {
	heightM := heightCm / 100
	return WeightRange{
		Min: 18.5 * heightM * heightM,
		Max: 25 * heightM * heightM,
	}
}

// WaistToHeight returns waist / height.
func WaistToHeight(waistCm, heightCm float64) (float64, error) {
	return ratio(waistCm, heightCm)
}

// WaistToHip returns waist / hip.
func WaistToHip(waistCm, hipCm float64) (float64, error) {
	return ratio(waistCm, hipCm)
}

// ClassifyWaistHip applies the gender-specific high-risk cut-off
// (above 0.9 for men, above 0.85 for women).
func ClassifyWaistHip(r float64, g Gender) WaistHipRisk {
	limit := 0.85
	if g == Male {
		limit = 0.9
	}
	if r > limit {
		return HighRisk
	}
	return LowRisk
}

// TDEE scales BMR by the activity multiplier. ok is false for an unknown level.
func TDEE(bmr float64, level ActivityLevel) (tdee float64, ok bool) {
	if !level.Valid() {
		return 0, false
	}
	return bmr * level.Multiplier(), true
}

func ratio(a, b float64) (float64, error) {
	r := a / b
	if !finite(r) {
		return 0, ErrDegenerate
	}
	return r, nil
}

// Compute derives every metric for a validated Subject. It never mutates s and
// returns a fresh value each call. The only error is ErrDegenerate.
func Compute(s Subject) (HealthMetrics, error) {
	bmi, err := BMI(s.WeightKg, s.HeightCm)
	if err != nil {
		return HealthMetrics{}, err
	}

	fat := BodyFatPercent(bmi, s.Age, s.Gender)
	m := HealthMetrics{
		BMI:                bmi,
		BMICategory:        CategorizeBMI(bmi, s.Age),
		BodyFatPercent:     fat,
		BodyFatCategory:    CategorizeBodyFat(fat, s.Gender),
		BMR:                BMR(s.WeightKg, s.HeightCm, s.Age, s.Gender),
		LeanBodyMassKg:     LeanBodyMass(s.WeightKg, fat),
		IdealWeightRangeKg: IdealWeightRange(s.HeightCm),
	}

	if s.WaistCm != nil {
		whtr, err := WaistToHeight(*s.WaistCm, s.HeightCm)
		if err != nil {
			return HealthMetrics{}, err
		}
		m.WaistToHeightRatio = &whtr

		if s.HipCm != nil {
			whr, err := WaistToHip(*s.WaistCm, *s.HipCm)
			if err != nil {
				return HealthMetrics{}, err
			}
			risk := ClassifyWaistHip(whr, s.Gender)
			m.WaistToHipRatio = &whr
			m.WaistToHipRisk = &risk
		}
	}

	if tdee, ok := TDEE(m.BMR, s.ActivityLevel); ok {
		m.ActivityLevel = s.ActivityLevel
		m.TDEE = &tdee
	}

	return m, nil
}
