package health

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricInput(age int, heightCm, weightKg float64) Input {
	return Input{
		Age:    age,
		Gender: Male,
		Height: &Length{Value: heightCm, Unit: Centimeters},
		Weight: &Mass{Value: weightKg, Unit: Kilograms},
	}
}

func imperialInput(age int, heightIn, weightLbs float64) Input {
	return Input{
		Age:    age,
		Gender: Female,
		Height: &Length{Value: heightIn, Unit: Inches},
		Weight: &Mass{Value: weightLbs, Unit: Pounds},
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		in     Input
		field  string
		reason string
	}{
		{"metric zero age", metricInput(0, 180, 75), "age", msgPositive},
		{"metric zero height", metricInput(30, 0, 75), "height", msgPositive},
		{"metric zero weight", metricInput(30, 180, 0), "weight", msgPositive},
		{"imperial zero age", imperialInput(0, 70, 154), "age", msgPositive},
		{"imperial zero height", imperialInput(30, 0, 154), "height", msgPositive},
		{"imperial zero weight", imperialInput(30, 70, 0), "weight", msgPositive},
		{"age too low", metricInput(1, 180, 75), "age", "Age must be between 2 and 120 years"},
		{"age too high", metricInput(121, 180, 75), "age", "Age must be between 2 and 120 years"},
		{"metric height too low", metricInput(30, 99.9, 75), "height", "Height must be between 100cm and 250cm"},
		{"metric height too high", metricInput(30, 250.1, 75), "height", "Height must be between 100cm and 250cm"},
		{"metric weight too low", metricInput(30, 180, 19.9), "weight", "Weight must be between 20kg and 500kg"},
		{"metric weight too high", metricInput(30, 180, 500.1), "weight", "Weight must be between 20kg and 500kg"},
		{"swapped height and weight", metricInput(30, 75, 180), "height", "Height must be between 100cm and 250cm"},
		{"imperial height too low", imperialInput(30, 35.9, 154), "height", "Height must be between 3ft and 8ft"},
		{"imperial height too high", imperialInput(30, 96.1, 154), "height", "Height must be between 3ft and 8ft"},
		{"imperial weight too low", imperialInput(30, 70, 43.9), "weight", "Weight must be between 44lbs and 1100lbs"},
		{"imperial weight too high", imperialInput(30, 70, 1100.1), "weight", "Weight must be between 44lbs and 1100lbs"},
		{"NaN height", metricInput(30, math.NaN(), 75), "height", "height must be a number"},
		{"infinite weight", metricInput(30, 180, math.Inf(1)), "weight", "weight must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.in)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestValidate_MissingAndMalformed(t *testing.T) {
	in := metricInput(30, 180, 75)
	in.Height = nil
	_, err := Validate(in)
	assert.EqualError(t, err, "height: height is required")

	in = metricInput(30, 180, 75)
	in.Weight = nil
	_, err = Validate(in)
	assert.EqualError(t, err, "weight: weight is required")

	in = metricInput(30, 180, 75)
	in.Gender = "other"
	_, err = Validate(in)
	assert.EqualError(t, err, "gender: gender must be male or female")

	in = metricInput(30, 180, 75)
	in.Height.Unit = "yd"
	_, err = Validate(in)
	assert.EqualError(t, err, `height: unsupported height unit "yd"`)

	in = metricInput(30, 180, 75)
	in.ActivityLevel = "couch"
	_, err = Validate(in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "activity_level", verr.Field)

	in = metricInput(30, 180, 75)
	in.Units = "nautical"
	_, err = Validate(in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "units", verr.Field)

	in = metricInput(30, 180, 75)
	in.Waist = &Length{Value: -4, Unit: Centimeters}
	_, err = Validate(in)
	assert.EqualError(t, err, "waist: waist must be a positive number")

	in = metricInput(30, 180, 75)
	in.Hip = &Length{Value: 90, Unit: "span"}
	_, err = Validate(in)
	assert.EqualError(t, err, `hip: unsupported hip unit "span"`)
}

func TestValidate_Boundaries(t *testing.T) {
	for _, in := range []Input{
		metricInput(2, 100, 20),
		metricInput(120, 250, 500),
		imperialInput(2, 36, 44),
		imperialInput(120, 96, 1100),
	} {
		_, err := Validate(in)
		assert.NoError(t, err)
	}
}

func TestValidate_Normalizes(t *testing.T) {
	in := Input{
		Age:           40,
		Gender:        Female,
		Height:        &Length{Unit: FeetInches, Feet: 5, Inches: 6},
		Weight:        &Mass{Unit: StonePounds, Stone: 10},
		Waist:         &Length{Value: 30, Unit: Inches},
		Hip:           &Length{Value: 38, Unit: Inches},
		ActivityLevel: ModeratelyActive,
	}

	s, err := Validate(in)
	require.NoError(t, err)
	assert.Equal(t, 40, s.Age)
	assert.Equal(t, Female, s.Gender)
	assert.Equal(t, Imperial, s.Units)
	assert.InDelta(t, 66*CmPerInch, s.HeightCm, 1e-9)
	assert.InDelta(t, 140*KgPerPound, s.WeightKg, 1e-9)
	require.NotNil(t, s.WaistCm)
	require.NotNil(t, s.HipCm)
	assert.InDelta(t, 76.2, *s.WaistCm, 1e-9)
	assert.InDelta(t, 96.52, *s.HipCm, 1e-9)
	assert.Equal(t, ModeratelyActive, s.ActivityLevel)
}

func TestValidate_MixedUnitsCheckedPerMeasurement(t *testing.T) {
	in := Input{
		Age:    30,
		Gender: Male,
		Height: &Length{Value: 180, Unit: Centimeters},
		Weight: &Mass{Value: 165, Unit: Pounds},
	}
	s, err := Validate(in)
	require.NoError(t, err)
	assert.Equal(t, Metric, s.Units)
	assert.InDelta(t, 165*KgPerPound, s.WeightKg, 1e-9)

	in.Units = Imperial
	s, err = Validate(in)
	require.NoError(t, err)
	assert.Equal(t, Imperial, s.Units)
}
