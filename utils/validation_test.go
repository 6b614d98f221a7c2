package utils

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"+31612345678", true},
		{"0612345678", false}, // leading zero
		{"+31 6 1234 5678", true},
		{"(06) 123-45678", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidatePhone(tt.input), "input %q", tt.input)
	}
}

func TestDuration15BindingValidation(t *testing.T) {
	RegisterCustomValidations()

	type form struct {
		Duration int `binding:"omitempty,duration15"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(form{Duration: 45}))
	assert.NoError(t, binding.Validator.ValidateStruct(form{})) // omitempty
	assert.Error(t, binding.Validator.ValidateStruct(form{Duration: 20}))
	assert.Error(t, binding.Validator.ValidateStruct(form{Duration: 10}))
}
