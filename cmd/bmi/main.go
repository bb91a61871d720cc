// Command bmi is a terminal front end for the health metrics engine and the
// chat assistant.
//
//	bmi calc --age 30 --gender male --height 180 --weight 75 --save
//	bmi scale --height-cm 180
//	bmi chat --server http://localhost:8080
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var statePathFlag string

var rootCmd = &cobra.Command{
	Use:   "bmi",
	Short: "BMI and health metrics calculator",
	Long: `Calculate BMI, body fat, BMR and related metrics, browse the BMI scale
for a height, and chat with the health assistant about your results.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&statePathFlag, "state", "", "state file (default $XDG_CONFIG_HOME/bmi/state.json)")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
