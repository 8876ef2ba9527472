package wu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"internal space", "New York", "NewYork"},
		{"runs and edges", " New  York ", "NewYork"},
		{"tabs and newlines", "San\tFrancisco\n CA", "SanFranciscoCA"},
		{"state/city path", "CA/San Francisco", "CA/SanFrancisco"},
		{"coordinates", "37.8, -122.4", "37.8,-122.4"},
		{"only whitespace", " \t\r\n ", ""},
		{"empty", "", ""},
		{"nil", nil, ""},
		{"zip code int", 94107, "94107"},
		{"unicode space", "São Paulo", "SãoPaulo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeQuery(tt.input))
		})
	}
}
