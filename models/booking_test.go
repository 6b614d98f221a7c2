package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	future := time.Now().Add(2 * time.Hour)

	tests := []struct {
		name     string
		booking  Booking
		expected string
	}{
		{"stored status wins over past time", Booking{Status: BookingStatusCancelled, ScheduledAt: past}, BookingStatusCancelled},
		{"stored status wins over future time", Booking{Status: BookingStatusConfirmed, ScheduledAt: future}, BookingStatusConfirmed},
		{"no status, past time", Booking{ScheduledAt: past}, BookingStatusCompleted},
		{"no status, future time", Booking{ScheduledAt: future}, BookingStatusScheduled},
		{"no show preserved", Booking{Status: BookingStatusNoShow, ScheduledAt: past}, BookingStatusNoShow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.booking.EffectiveStatus())
		})
	}
}

func TestEndsAt(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	b := Booking{ScheduledAt: start, Duration: 90}
	assert.Equal(t, start.Add(90*time.Minute), b.EndsAt())
}

func TestOverlapsWith(t *testing.T) {
	at := func(hour, min int) time.Time {
		return time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		a, b     Booking
		overlaps bool
	}{
		{
			"back to back does not overlap",
			Booking{ScheduledAt: at(10, 0), Duration: 60},
			Booking{ScheduledAt: at(11, 0), Duration: 60},
			false,
		},
		{
			"partial overlap",
			Booking{ScheduledAt: at(10, 0), Duration: 60},
			Booking{ScheduledAt: at(10, 30), Duration: 60},
			true,
		},
		{
			"contained",
			Booking{ScheduledAt: at(10, 0), Duration: 120},
			Booking{ScheduledAt: at(10, 30), Duration: 30},
			true,
		},
		{
			"disjoint",
			Booking{ScheduledAt: at(9, 0), Duration: 30},
			Booking{ScheduledAt: at(14, 0), Duration: 30},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.OverlapsWith(&tt.b))
			assert.Equal(t, tt.overlaps, tt.b.OverlapsWith(&tt.a))
		})
	}
}
