package utils

import (
	"fmt"
	"math"
)

// Treatments are planned on a 15-minute calendar grid.
const MinTreatmentDuration = 15

// RoundToNearest15 clamps values below the minimum up to the minimum and
// rounds everything else to the nearest multiple of 15.
func RoundToNearest15(minutes int) int {
	if minutes < MinTreatmentDuration {
		return MinTreatmentDuration
	}
	return int(math.Round(float64(minutes)/15)) * 15
}

// ValidateDuration reports whether a duration fits the 15-minute grid.
func ValidateDuration(minutes int) bool {
	return minutes >= MinTreatmentDuration && minutes%15 == 0
}

// DurationValidationMessage returns a human-readable message when the
// duration is invalid, including the nearest valid suggestion. Returns the
// empty string for valid durations.
func DurationValidationMessage(minutes int) string {
	if ValidateDuration(minutes) {
		return ""
	}
	return fmt.Sprintf("Duur moet minimaal 15 minuten zijn en een veelvoud van 15. Bedoelde je %d minuten?", RoundToNearest15(minutes))
}

// FormatDuration renders minutes the way the calendar displays them:
// "45 min" under an hour, "1u" on whole hours, "1u 30min" otherwise.
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%du", hours)
	}
	return fmt.Sprintf("%du %dmin", hours, rest)
}

type DurationOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// GenerateDurationOptions lists every valid duration from 15 up to
// maxMinutes in 15-minute steps. The slice is rebuilt on every call.
func GenerateDurationOptions(maxMinutes int) []DurationOption {
	var options []DurationOption
	for v := MinTreatmentDuration; v <= maxMinutes; v += 15 {
		options = append(options, DurationOption{Value: v, Label: FormatDuration(v)})
	}
	return options
}
