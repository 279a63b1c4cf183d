package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStateTokens(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		normalized string
		dropped    []string
	}{
		{"abbreviation passes through", "IA", "IA", nil},
		{"lowercase abbreviation upcased", "ia", "IA", nil},
		{"full name", "Iowa", "IA", nil},
		{"full name case-insensitive", "iOwA", "IA", nil},
		{"multi-word full name", "New York", "NY", nil},
		{"district of columbia", "District of Columbia", "DC", nil},
		{"mixed list", "Iowa, TX, New Mexico", "IA, TX, NM", nil},
		{"unmatched token dropped", "Iowa, Atlantis", "IA", []string{"Atlantis"}},
		{"all tokens unmatched", "Atlantis, Elbonia", "", []string{"Atlantis", "Elbonia"}},
		{"empty value", "", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, dropped := NormalizeStateTokens(tt.raw)
			assert.Equal(t, tt.normalized, normalized)
			assert.Equal(t, tt.dropped, dropped)
		})
	}
}

// Full name and abbreviation must encode to the identical clause.
func TestNormalizeStateTokens_RoundTrip(t *testing.T) {
	fromName, dropped := NormalizeStateTokens("Iowa")
	assert.Empty(t, dropped)
	fromCode, dropped := NormalizeStateTokens("IA")
	assert.Empty(t, dropped)

	nameClause, ok := EncodeParameter("state", fromName)
	assert.True(t, ok)
	codeClause, ok := EncodeParameter("state", fromCode)
	assert.True(t, ok)
	assert.Equal(t, nameClause, codeClause)
	assert.Equal(t, `state:("IA")`, nameClause.Render())
}
