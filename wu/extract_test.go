package wu

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const conditionsJSON = `{
  "response": {"version": "0.1"},
  "current_observation": {
    "display_location": {"full": "San Francisco, CA", "zip": "94101"},
    "temp_f": 66.3,
    "weather": "Partly Cloudy",
    "estimated": {}
  },
  "RESULTS": [{"name": "San Francisco, California", "zmw": "94101.1.99999"}],
  "nothing": null
}`

func decode(t *testing.T, s string) any {
	t.Helper()
	var tree any
	require.NoError(t, json.Unmarshal([]byte(s), &tree))
	return tree
}

func TestExtract(t *testing.T) {
	tree := decode(t, conditionsJSON)

	tests := []struct {
		path string
		want any
	}{
		{"current_observation.display_location.full", "San Francisco, CA"},
		{"current_observation.temp_f", 66.3},
		{"current_observation.estimated", map[string]any{}},
		{"RESULTS.0.zmw", "94101.1.99999"},
		{"response.version", "0.1"},
		{"nothing", nil},
		{"current_observation.missing", nil},
		{"current_observation.weather.deeper", nil},
		{"missing.anything.at.all", nil},
		{"RESULTS.1.name", nil},
		{"RESULTS.-1.name", nil},
		{"RESULTS.name", nil},
		{"nothing.below", nil},
		{"", nil},
		{".", nil},
		{"current_observation..temp_f", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tree, tt.path))
		})
	}
}

func TestExtract_NilAndEmptyTrees(t *testing.T) {
	for _, tree := range []any{nil, map[string]any{}, []any{}, "", 0} {
		assert.Nil(t, Extract(tree, "a.b"))
	}
}

func TestExtract_Idempotent(t *testing.T) {
	tree := decode(t, conditionsJSON)
	sub := Extract(tree, "current_observation")

	assert.Equal(t, Extract(tree, "current_observation.display_location.zip"), Extract(sub, "display_location.zip"))
	assert.Nil(t, Extract(Extract(tree, "missing"), "display_location.zip"))
}
