package health

// SnapshotKey is the fixed key the latest snapshot is stored under in
// client-local storage.
const SnapshotKey = "bmiData"

// Snapshot is the flat record of the last calculation that the chat assistant
// reads as context.
type Snapshot struct {
	BMI         float64     `json:"bmi"`
	BMICategory BMICategory `json:"bmi_category"`
	HeightCm    float64     `json:"height_cm"`
	WeightKg    float64     `json:"weight_kg"`
	Age         int         `json:"age"`
	Gender      Gender      `json:"gender"`
	Units       Units       `json:"units"`
	WaistCm     *float64    `json:"waist_cm,omitempty"`
	HipCm       *float64    `json:"hip_cm,omitempty"`
}

// NewSnapshot flattens a subject and its metrics.
func NewSnapshot(s Subject, m HealthMetrics) Snapshot {
	return Snapshot{
		BMI:         m.BMI,
		BMICategory: m.BMICategory,
		HeightCm:    s.HeightCm,
		WeightKg:    s.WeightKg,
		Age:         s.Age,
		Gender:      s.Gender,
		Units:       s.Units,
		WaistCm:     s.WaistCm,
		HipCm:       s.HipCm,
	}
}

// Result is everything one calculation produces.
type Result struct {
	Subject         Subject         `json:"subject"`
	Metrics         HealthMetrics   `json:"metrics"`
	Recommendations Recommendations `json:"recommendations"`
	Snapshot        Snapshot        `json:"snapshot"`
}

// Evaluate runs validation, the metrics engine and the recommendation
// selector. It returns a *ValidationError or ErrDegenerate on failure.
func Evaluate(in Input) (Result, error) {
	s, err := Validate(in)
	if err != nil {
		return Result{}, err
	}
	m, err := Compute(s)
	if err != nil {
		return Result{}, err
	}
	fat := m.BodyFatCategory
	return Result{
		Subject:         s,
		Metrics:         m,
		Recommendations: Recommend(m.BMICategory, &fat, s.Age, s.Gender),
		Snapshot:        NewSnapshot(s, m),
	}, nil
}
