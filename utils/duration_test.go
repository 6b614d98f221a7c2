package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundToNearest15(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"below minimum clamps up", 5, 15},
		{"zero clamps up", 0, 15},
		{"negative clamps up", -30, 15},
		{"exact grid value unchanged", 45, 45},
		{"rounds down", 50, 45},
		{"rounds up", 55, 60},
		{"midpoint rounds up", 22, 15},
		{"midpoint rounds up above", 23, 30},
		{"large value", 127, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundToNearest15(tt.input))
		})
	}
}

func TestRoundToNearest15_Distance(t *testing.T) {
	// Above the minimum, the rounded value never moves more than half a step.
	for v := 15; v <= 480; v++ {
		rounded := RoundToNearest15(v)
		diff := v - rounded
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, 8, "input %d rounded to %d", v, rounded)
		assert.True(t, ValidateDuration(rounded), "input %d rounded to invalid %d", v, rounded)
	}
}

func TestValidateDuration(t *testing.T) {
	tests := []struct {
		input int
		valid bool
	}{
		{15, true},
		{30, true},
		{90, true},
		{480, true},
		{0, false},
		{-15, false},
		{10, false},
		{20, false},
		{44, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidateDuration(tt.input), "input %d", tt.input)
	}
}

func TestDurationValidationMessage(t *testing.T) {
	assert.Empty(t, DurationValidationMessage(45))
	assert.Equal(t,
		"Duur moet minimaal 15 minuten zijn en een veelvoud van 15. Bedoelde je 45 minuten?",
		DurationValidationMessage(50))
	assert.Equal(t,
		"Duur moet minimaal 15 minuten zijn en een veelvoud van 15. Bedoelde je 15 minuten?",
		DurationValidationMessage(5))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{15, "15 min"},
		{45, "45 min"},
		{60, "1u"},
		{90, "1u 30min"},
		{120, "2u"},
		{135, "2u 15min"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDuration(tt.input), "input %d", tt.input)
	}
}

func TestGenerateDurationOptions(t *testing.T) {
	options := GenerateDurationOptions(60)
	values := make([]int, 0, len(options))
	for _, o := range options {
		values = append(values, o.Value)
	}
	assert.Equal(t, []int{15, 30, 45, 60}, values)
	assert.Equal(t, "1u", options[3].Label)

	assert.Empty(t, GenerateDurationOptions(10))
}
