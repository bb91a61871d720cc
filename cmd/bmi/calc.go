package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Akachukwu893331/BMI-Calculator/internal/health"
)

// calcOptions mirrors the calc flags.
type calcOptions struct {
	age        int
	gender     string
	height     float64
	heightUnit string
	weight     float64
	weightUnit string
	feet       float64
	inches     float64
	stone      float64
	pounds     float64
	waist      float64
	hip        float64
	activity   string
	units      string
	save       bool
}

var calcOpts calcOptions

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate BMI and related health metrics",
	Long: `Calculate BMI, body fat, BMR, ideal weight and waist ratios, and print
the matching health tips.

Height and weight accept metric or imperial units:
  --height 180 --height-unit cm        --weight 75 --weight-unit kg
  --feet 5 --inches 11                 --stone 11 --pounds 4
  --height 71 --height-unit in         --weight 165 --weight-unit lbs

Waist and hip are read in centimeters, or inches when height is imperial.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := calcOpts
		if cmd.Flags().Changed("feet") || cmd.Flags().Changed("inches") {
			if !cmd.Flags().Changed("height-unit") {
				opts.heightUnit = string(health.FeetInches)
			}
		}
		if cmd.Flags().Changed("stone") || cmd.Flags().Changed("pounds") {
			if !cmd.Flags().Changed("weight-unit") {
				opts.weightUnit = string(health.StonePounds)
			}
		}

		res, err := health.Evaluate(buildInput(opts))
		if err != nil {
			var verr *health.ValidationError
			if errors.As(err, &verr) {
				return errors.New(verr.Reason)
			}
			if errors.Is(err, health.ErrDegenerate) {
				return errors.New("no result")
			}
			return err
		}

		printResult(os.Stdout, res)

		if opts.save {
			path, err := statePath()
			if err != nil {
				return err
			}
			if err := saveSnapshot(path, res.Snapshot); err != nil {
				return fmt.Errorf("saving result: %w", err)
			}
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Printf("\n%s\n", gray("Saved to "+path+" for bmi chat"))
		}
		return nil
	},
}

func init() {
	f := calcCmd.Flags()
	f.IntVar(&calcOpts.age, "age", 0, "age in years (2-120)")
	f.StringVar(&calcOpts.gender, "gender", "", "male or female")
	f.Float64Var(&calcOpts.height, "height", 0, "height value")
	f.StringVar(&calcOpts.heightUnit, "height-unit", "cm", "cm, m, in or ft_in")
	f.Float64Var(&calcOpts.weight, "weight", 0, "weight value")
	f.StringVar(&calcOpts.weightUnit, "weight-unit", "kg", "kg, lbs or st_lbs")
	f.Float64Var(&calcOpts.feet, "feet", 0, "feet part of a ft_in height")
	f.Float64Var(&calcOpts.inches, "inches", 0, "inches part of a ft_in height")
	f.Float64Var(&calcOpts.stone, "stone", 0, "stone part of a st_lbs weight")
	f.Float64Var(&calcOpts.pounds, "pounds", 0, "pounds part of a st_lbs weight")
	f.Float64Var(&calcOpts.waist, "waist", 0, "waist circumference (optional)")
	f.Float64Var(&calcOpts.hip, "hip", 0, "hip circumference (optional)")
	f.StringVar(&calcOpts.activity, "activity", "", "sedentary, lightly_active, moderately_active, very_active or extra_active")
	f.StringVar(&calcOpts.units, "units", "", "display units: metric or imperial (default from height unit)")
	f.BoolVar(&calcOpts.save, "save", false, "keep the result as context for bmi chat")
	rootCmd.AddCommand(calcCmd)
}

// buildInput turns flag values into a calculator form.
func buildInput(o calcOptions) health.Input {
	in := health.Input{
		Age:           o.age,
		Gender:        health.Gender(strings.ToLower(o.gender)),
		Height:        &health.Length{Value: o.height, Unit: health.LengthUnit(o.heightUnit), Feet: o.feet, Inches: o.inches},
		Weight:        &health.Mass{Value: o.weight, Unit: health.MassUnit(o.weightUnit), Stone: o.stone, Pounds: o.pounds},
		ActivityLevel: health.ActivityLevel(o.activity),
		Units:         health.Units(o.units),
	}

	circumference := health.Centimeters
	if sys, err := in.Height.Unit.System(); err == nil && sys == health.Imperial {
		circumference = health.Inches
	}
	if o.waist != 0 {
		in.Waist = &health.Length{Value: o.waist, Unit: circumference}
	}
	if o.hip != 0 {
		in.Hip = &health.Length{Value: o.hip, Unit: circumference}
	}
	return in
}

// urgencyColor picks the colour a recommendation urgency is shown in.
func urgencyColor(u health.Urgency) *color.Color {
	switch u {
	case health.UrgencyNone:
		return color.New(color.FgGreen)
	case health.UrgencyLow:
		return color.New(color.FgYellow)
	case health.UrgencyCritical:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgRed)
	}
}

// printResult renders metrics and recommendations in the subject's units.
func printResult(w io.Writer, res health.Result) {
	m := res.Metrics
	imperial := res.Subject.Units == health.Imperial
	weight := func(kg float64) string {
		if imperial {
			return fmt.Sprintf("%.1f lbs", health.KilogramsToPounds(kg))
		}
		return fmt.Sprintf("%.1f kg", kg)
	}

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	urgency := urgencyColor(res.Recommendations.Urgency).SprintFunc()

	fmt.Fprintf(w, "\n%s %s\n\n", cyan(fmt.Sprintf("BMI %.1f", m.BMI)), urgency(m.BMICategory.String()))
	fmt.Fprintf(w, "  Body fat      %.1f%% (%s)\n", m.BodyFatPercent, m.BodyFatCategory)
	fmt.Fprintf(w, "  BMR           %.0f kcal/day\n", m.BMR)
	if m.TDEE != nil {
		fmt.Fprintf(w, "  TDEE          %.0f kcal/day (%s)\n", *m.TDEE, m.ActivityLevel.Label())
	}
	fmt.Fprintf(w, "  Lean mass     %s\n", weight(m.LeanBodyMassKg))
	fmt.Fprintf(w, "  Ideal weight  %s - %s\n", weight(m.IdealWeightRangeKg.Min), weight(m.IdealWeightRangeKg.Max))
	if m.WaistToHeightRatio != nil {
		fmt.Fprintf(w, "  Waist/height  %.2f\n", *m.WaistToHeightRatio)
	}
	if m.WaistToHipRatio != nil {
		fmt.Fprintf(w, "  Waist/hip     %.2f (%s)\n", *m.WaistToHipRatio, *m.WaistToHipRisk)
	}

	rec := res.Recommendations
	fmt.Fprintf(w, "\n%s %s\n", yellow(rec.Title), urgency("["+string(rec.Urgency)+"]"))
	for _, tip := range rec.Tips {
		fmt.Fprintf(w, "  • %s\n", tip)
	}
}
