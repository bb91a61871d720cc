package gateway

import (
	"fmt"
	"strings"

	"github.com/Akachukwu893331/BMI-Calculator/internal/health"
)

const assistantPrompt = `You are a friendly health assistant inside a BMI calculator app.
Answer questions about weight, nutrition, exercise and general wellbeing in plain language.
Keep answers short and practical. You are not a doctor: recommend seeing a healthcare professional for anything that sounds like a medical concern.`

// Preamble builds the system text sent ahead of the history. The user's last
// calculation is included when snap is non-nil.
func Preamble(snap *health.Snapshot) string {
	if snap == nil {
		return assistantPrompt
	}

	heightUnit, weightUnit := "cm", "kg"
	height, weight := snap.HeightCm, snap.WeightKg
	if snap.Units == health.Imperial {
		heightUnit, weightUnit = "in", "lbs"
		height, weight = health.CentimetersToInches(height), health.KilogramsToPounds(weight)
	}

	var sb strings.Builder
	sb.WriteString(assistantPrompt)
	sb.WriteString("\n\nThe user's latest calculation:\n")
	fmt.Fprintf(&sb, "- BMI: %.1f (%s)\n", snap.BMI, health.CategorizeBMI(snap.BMI, snap.Age))
	fmt.Fprintf(&sb, "- Age: %d\n", snap.Age)
	fmt.Fprintf(&sb, "- Gender: %s\n", snap.Gender)
	fmt.Fprintf(&sb, "- Height: %.1f %s\n", height, heightUnit)
	fmt.Fprintf(&sb, "- Weight: %.1f %s\n", weight, weightUnit)
	if snap.WaistCm != nil {
		fmt.Fprintf(&sb, "- Waist: %.1f cm\n", *snap.WaistCm)
	}
	if snap.HipCm != nil {
		fmt.Fprintf(&sb, "- Hip: %.1f cm\n", *snap.HipCm)
	}
	return sb.String()
}

// Welcome is the assistant's opening turn.
func Welcome(snap *health.Snapshot) string {
	if snap == nil {
		return "Hello! I'm your Health Assistant. How can I help you today?"
	}
	return fmt.Sprintf("Hello! I'm your Health Assistant. I see your BMI is %.1f (%s). How can I help you today?",
		snap.BMI, health.CategorizeBMI(snap.BMI, snap.Age))
}
