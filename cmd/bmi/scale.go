package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Akachukwu893331/BMI-Calculator/internal/health"
)

var scaleHeightCm float64

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Show the weight range of every BMI band for a height",
	RunE: func(cmd *cobra.Command, args []string) error {
		if scaleHeightCm <= 0 {
			return errors.New("--height-cm must be a positive number")
		}
		bands, err := health.Scale(scaleHeightCm)
		if err != nil {
			return errors.New("no result")
		}
		printScale(os.Stdout, scaleHeightCm, bands)
		return nil
	},
}

func init() {
	scaleCmd.Flags().Float64Var(&scaleHeightCm, "height-cm", 0, "height in centimeters")
	rootCmd.AddCommand(scaleCmd)
}

func printScale(w io.Writer, heightCm float64, bands []health.ScaleBand) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(w, "\n%s\n\n", cyan(fmt.Sprintf("BMI scale at %.0f cm", heightCm)))

	for _, b := range bands {
		paint := urgencyColor(health.UrgencyFor(b.Category)).SprintFunc()
		label := paint(fmt.Sprintf("%-18s", b.Category.String()))
		if b.MaxBMI == nil {
			fmt.Fprintf(w, "  %s %5.1f+        %6.1f kg+\n", label, b.MinBMI, b.MinWeightKg)
			continue
		}
		fmt.Fprintf(w, "  %s %5.1f - %-5.1f  %6.1f - %.1f kg\n", label, b.MinBMI, *b.MaxBMI, b.MinWeightKg, *b.MaxWeightKg)
	}
}
