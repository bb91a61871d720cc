package health

import (
	"errors"
	"fmt"
)

// Input is the raw calculator form. Height and Weight are required; Waist and
// Hip are optional and only used for the waist ratios.
type Input struct {
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	Height        *Length       `json:"height"`
	Weight        *Mass         `json:"weight"`
	Waist         *Length       `json:"waist,omitempty"`
	Hip           *Length       `json:"hip,omitempty"`
	ActivityLevel ActivityLevel `json:"activity_level,omitempty"`
	Units         Units         `json:"units,omitempty"`
}

// Physiological bounds, checked in the unit system the value was entered in.
const (
	minAge = 2
	maxAge = 120

	minHeightCm = 100
	maxHeightCm = 250
	minWeightKg = 20
	maxWeightKg = 500

	minHeightIn  = 36
	maxHeightIn  = 96
	minWeightLbs = 44
	maxWeightLbs = 1100
)

const msgPositive = "Please enter valid positive numbers for all fields"

// Validate range-checks the raw input and returns the normalized Subject. All
// failures are *ValidationError; nothing downstream runs on a rejected input.
func Validate(in Input) (Subject, error) {
	if in.Height == nil {
		return Subject{}, invalid("height", "height is required")
	}
	if in.Weight == nil {
		return Subject{}, invalid("weight", "weight is required")
	}
	if in.Gender != Male && in.Gender != Female {
		return Subject{}, invalid("gender", "gender must be male or female")
	}

	heightSys, err := in.Height.Unit.System()
	if err != nil {
		return Subject{}, invalid("height", fmt.Sprintf("unsupported height unit %q", in.Height.Unit))
	}
	weightSys, err := in.Weight.Unit.System()
	if err != nil {
		return Subject{}, invalid("weight", fmt.Sprintf("unsupported weight unit %q", in.Weight.Unit))
	}

	height, err := in.Height.native()
	if err != nil {
		return Subject{}, invalid("height", "height must be a number")
	}
	weight, err := in.Weight.native()
	if err != nil {
		return Subject{}, invalid("weight", "weight must be a number")
	}

	switch {
	case height <= 0:
		return Subject{}, invalid("height", msgPositive)
	case weight <= 0:
		return Subject{}, invalid("weight", msgPositive)
	case in.Age <= 0:
		return Subject{}, invalid("age", msgPositive)
	}

	if in.Age < minAge || in.Age > maxAge {
		return Subject{}, invalid("age", "Age must be between 2 and 120 years")
	}

	if heightSys == Metric {
		if height < minHeightCm || height > maxHeightCm {
			return Subject{}, invalid("height", "Height must be between 100cm and 250cm")
		}
	} else if height < minHeightIn || height > maxHeightIn {
		return Subject{}, invalid("height", "Height must be between 3ft and 8ft")
	}

	if weightSys == Metric {
		if weight < minWeightKg || weight > maxWeightKg {
			return Subject{}, invalid("weight", "Weight must be between 20kg and 500kg")
		}
	} else if weight < minWeightLbs || weight > maxWeightLbs {
		return Subject{}, invalid("weight", "Weight must be between 44lbs and 1100lbs")
	}

	heightCm, _ := in.Height.Centimeters()
	weightKg, _ := in.Weight.Kilograms()

	s := Subject{
		Age:      in.Age,
		Gender:   in.Gender,
		HeightCm: heightCm,
		WeightKg: weightKg,
		Units:    heightSys,
	}

	if in.Waist != nil {
		if s.WaistCm, err = optionalLength("waist", *in.Waist); err != nil {
			return Subject{}, err
		}
	}
	if in.Hip != nil {
		if s.HipCm, err = optionalLength("hip", *in.Hip); err != nil {
			return Subject{}, err
		}
	}

	if in.ActivityLevel != "" {
		if !in.ActivityLevel.Valid() {
			return Subject{}, invalid("activity_level", "activity_level must be one of: sedentary, lightly_active, moderately_active, very_active, extra_active")
		}
		s.ActivityLevel = in.ActivityLevel
	}

	switch in.Units {
	case "":
	case Metric, Imperial:
		s.Units = in.Units
	default:
		return Subject{}, invalid("units", "units must be metric or imperial")
	}

	return s, nil
}

func optionalLength(field string, l Length) (*float64, error) {
	cm, err := l.Centimeters()
	if errors.Is(err, errUnknownUnit) {
		return nil, invalid(field, fmt.Sprintf("unsupported %s unit %q", field, l.Unit))
	}
	if err != nil || cm <= 0 {
		return nil, invalid(field, field+" must be a positive number")
	}
	return &cm, nil
}
