package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidMobile(t *testing.T) {
	valid := []string{
		"0912345678",
		"0312345678",
		"+84912345678",
		"091 234 5678",
		"091.234.5678",
		"091-234-5678",
		" 0912345678 ",
	}
	for _, s := range valid {
		assert.True(t, ValidMobile(s), "expected valid: %q", s)
	}

	invalid := []string{
		"",
		"12345",
		"091234567",    // too short
		"09123456789",  // too long
		"0112345678",   // bad carrier prefix
		"84912345678",  // missing plus
		"+85912345678", // wrong country code
		"09123a5678",
	}
	for _, s := range invalid {
		assert.False(t, ValidMobile(s), "expected invalid: %q", s)
	}
}
