package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntilAnniversary(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		birthday time.Time
		expected int
	}{
		{"today", time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC), 0},
		{"tomorrow", time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC), 1},
		{"in a week", time.Date(2000, 3, 21, 0, 0, 0, 0, time.UTC), 7},
		{"yesterday rolls to next year", time.Date(1990, 3, 13, 0, 0, 0, 0, time.UTC), 364},
		{"stored year is ignored", time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, daysUntilAnniversary(tt.birthday, now))
		})
	}
}
