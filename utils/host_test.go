package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"mysalon.salonsphere.nl", "mysalon.salonsphere.nl"},
		{"MySalon.SalonSphere.NL", "mysalon.salonsphere.nl"},
		{"mysalon.salonsphere.nl:8080", "mysalon.salonsphere.nl"},
		{"  mysalon.salonsphere.nl  ", "mysalon.salonsphere.nl"},
		{"mysalon.salonsphere.nl.", "mysalon.salonsphere.nl"},
		{"localhost:3000", "localhost"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeHost(tt.input), "input %q", tt.input)
	}
}

func TestSubdomainOf(t *testing.T) {
	tests := []struct {
		name string
		host string
		base string
		sub  string
		ok   bool
	}{
		{"direct child", "mysalon.salonsphere.nl", "salonsphere.nl", "mysalon", true},
		{"with port", "mysalon.salonsphere.nl:443", "salonsphere.nl", "mysalon", true},
		{"uppercase", "MySalon.SalonSphere.nl", "salonsphere.nl", "mysalon", true},
		{"base domain itself", "salonsphere.nl", "salonsphere.nl", "", false},
		{"nested subdomain", "a.b.salonsphere.nl", "salonsphere.nl", "", false},
		{"different domain", "mysalon.example.com", "salonsphere.nl", "", false},
		{"empty base", "mysalon.salonsphere.nl", "", "", false},
		{"suffix but not child", "evilsalonsphere.nl", "salonsphere.nl", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, ok := SubdomainOf(tt.host, tt.base)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.sub, sub)
		})
	}
}
