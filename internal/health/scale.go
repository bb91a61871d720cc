package health

// ScaleBand is one BMI band together with the body weights that produce it at
// a given height. The last band has no upper bound; MaxBMI and MaxWeightKg are
// left nil.
type ScaleBand struct {
	Category    BMICategory `json:"category"`
	MinBMI      float64     `json:"min_bmi"`
	MaxBMI      *float64    `json:"max_bmi,omitempty"`
	MinWeightKg float64     `json:"min_weight_kg"`
	MaxWeightKg *float64    `json:"max_weight_kg,omitempty"`
}

// Scale returns all eight BMI bands for heightCm, lowest first. It ignores the
// age adjustment; the bands describe raw BMI. Heights so large that a band
// weight overflows return ErrDegenerate.
func Scale(heightCm float64) ([]ScaleBand, error) {
	heightM := heightCm / 100
	sq := heightM * heightM
	if !finite(sq) || !finite(bmiUpperBounds[len(bmiUpperBounds)-1]*sq) {
		return nil, ErrDegenerate
	}

	bands := make([]ScaleBand, 0, len(bmiUpperBounds)+1)
	lower := 0.0
	for i, upper := range bmiUpperBounds {
		maxKg := upper * sq
		bands = append(bands, ScaleBand{
			Category:    BMICategory(i),
			MinBMI:      lower,
			MaxBMI:      &upper,
			MinWeightKg: lower * sq,
			MaxWeightKg: &maxKg,
		})
		lower = upper
	}
	bands = append(bands, ScaleBand{
		Category:    ObeseClassIII,
		MinBMI:      lower,
		MinWeightKg: lower * sq,
	})
	return bands, nil
}
