package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCitationPrefix(t *testing.T) {
	tests := []struct {
		name       string
		citationID string
		wantPrefix string
		wantOK     bool
	}{
		{"reddit", "R_abc123:def456", "R", true},
		{"youtube", "YT_UgxK9.zAb-c", "YT", true},
		{"app store", "AS_12345678", "AS", true},
		{"google play", "GP_gp:AOqpTOE", "GP", true},
		{"unknown prefix still cut", "X_1", "X", true},
		{"no underscore", "nonsense", "", false},
		{"empty string", "", "", false},
		{"leading underscore", "_123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, ok := CitationPrefix(tt.citationID)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPrefix, prefix)
		})
	}
}
