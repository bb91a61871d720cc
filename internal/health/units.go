package health

import (
	"fmt"
	"math"
)

// Conversion constants.
const (
	CmPerInch      = 2.54
	KgPerPound     = 0.453592
	PoundsPerStone = 14
	InchesPerFoot  = 12
)

// Units is the display unit system a subject entered values in.
type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

// LengthUnit tags a height, waist or hip measurement.
type LengthUnit string

const (
	Centimeters LengthUnit = "cm"
	Meters      LengthUnit = "m"
	Inches      LengthUnit = "in"
	FeetInches  LengthUnit = "ft_in"
)

// MassUnit tags a weight measurement.
type MassUnit string

const (
	Kilograms   MassUnit = "kg"
	Pounds      MassUnit = "lbs"
	StonePounds MassUnit = "st_lbs"
)

// System reports which unit system the length unit belongs to.
func (u LengthUnit) System() (Units, error) {
	switch u {
	case Centimeters, Meters:
		return Metric, nil
	case Inches, FeetInches:
		return Imperial, nil
	}
	return "", fmt.Errorf("%w %q", errUnknownUnit, u)
}

// System reports which unit system the mass unit belongs to.
func (u MassUnit) System() (Units, error) {
	switch u {
	case Kilograms:
		return Metric, nil
	case Pounds, StonePounds:
		return Imperial, nil
	}
	return "", fmt.Errorf("%w %q", errUnknownUnit, u)
}

// Length is a raw length measurement as captured from a form. Value is used
// for cm, m and in; Feet and Inches only for ft_in.
type Length struct {
	Value  float64    `json:"value"`
	Unit   LengthUnit `json:"unit"`
	Feet   float64    `json:"feet,omitempty"`
	Inches float64    `json:"inches,omitempty"`
}

// Mass is a raw weight measurement. Value is used for kg and lbs; Stone and
// Pounds only for st_lbs.
type Mass struct {
	Value  float64  `json:"value"`
	Unit   MassUnit `json:"unit"`
	Stone  float64  `json:"stone,omitempty"`
	Pounds float64  `json:"pounds,omitempty"`
}

// native returns the measurement in the base unit of its own system
// (cm for metric, inches for imperial) without a round trip through the other.
func (l Length) native() (float64, error) {
	var v float64
	switch l.Unit {
	case Centimeters, Inches:
		v = l.Value
	case Meters:
		v = l.Value * 100
	case FeetInches:
		v = l.Feet*InchesPerFoot + l.Inches
	default:
		return 0, fmt.Errorf("%w %q", errUnknownUnit, l.Unit)
	}
	if !finite(v) {
		return 0, errNotFinite
	}
	return v, nil
}

// Centimeters converts the measurement to centimeters.
func (l Length) Centimeters() (float64, error) {
	v, err := l.native()
	if err != nil {
		return 0, err
	}
	if sys, _ := l.Unit.System(); sys == Imperial {
		return v * CmPerInch, nil
	}
	return v, nil
}

// native returns kilograms for metric units and pounds for imperial units.
func (m Mass) native() (float64, error) {
	var v float64
	switch m.Unit {
	case Kilograms, Pounds:
		v = m.Value
	case StonePounds:
		v = m.Stone*PoundsPerStone + m.Pounds
	default:
		return 0, fmt.Errorf("%w %q", errUnknownUnit, m.Unit)
	}
	if !finite(v) {
		return 0, errNotFinite
	}
	return v, nil
}

// Kilograms converts the measurement to kilograms.
func (m Mass) Kilograms() (float64, error) {
	v, err := m.native()
	if err != nil {
		return 0, err
	}
	if sys, _ := m.Unit.System(); sys == Imperial {
		return v * KgPerPound, nil
	}
	return v, nil
}

// CentimetersToInches is the display-side inverse used by the CLI.
func CentimetersToInches(cm float64) float64 { return cm / CmPerInch }

// KilogramsToPounds is the display-side inverse used by the CLI.
func KilogramsToPounds(kg float64) float64 { return kg / KgPerPound }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
