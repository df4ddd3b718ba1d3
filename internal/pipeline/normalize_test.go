package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "LeBron James", "lebron james"},
		{"strips periods", "J.J. Watt", "jj watt"},
		{"trims whitespace", "  Luka Doncic  ", "luka doncic"},
		{"city with period", "St. Louis Cardinals", "st louis cardinals"},
		{"already normalized", "jj watt", "jj watt"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{"J.J. Watt", "  St. Louis  ", "JIMMY BUTLER III", "d'angelo russell"}
	for _, input := range inputs {
		once := NormalizeName(input)
		assert.Equal(t, once, NormalizeName(once))
	}
}

func TestNormalizeNameCaseAndPeriodInsensitive(t *testing.T) {
	assert.Equal(t, NormalizeName("jj watt"), NormalizeName("J.J. Watt"))
	assert.Equal(t, NormalizeName("St Louis"), NormalizeName("St. Louis"))
}
