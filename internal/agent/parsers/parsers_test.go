package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"brand": "MRF"}`, `{"brand": "MRF"}`},
		{"plain fence", "```\n{\"brand\": \"MRF\"}\n```", `{"brand": "MRF"}`},
		{"json fence", "```json\n{\"brand\": \"MRF\"}\n```", `{"brand": "MRF"}`},
		{"prose before fence", "Here you go:\n```json\n[1, 2]\n```", `[1, 2]`},
		{"unterminated fence", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"surrounding whitespace", "  \n {\"a\": 1} \n", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFence(tt.in))
		})
	}
}

func TestNormalizeConstructors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"ISODate wrapper",
			`{"createdAt": {"$gte": ISODate("2023-01-01T00:00:00Z")}}`,
			`{"createdAt": {"$gte": "2023-01-01T00:00:00Z"}}`,
		},
		{
			"ObjectId wrapper",
			`{"_id": ObjectId("6513f0a2e4b0a1b2c3d4e5f6")}`,
			`{"_id": "6513f0a2e4b0a1b2c3d4e5f6"}`,
		},
		{
			"nested parens untouched",
			`{"brand": {"$regex": "MRF (India)"}}`,
			`{"brand": {"$regex": "MRF (India)"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeConstructors(tt.in))
		})
	}
}

func TestParseQuery(t *testing.T) {
	t.Run("filter object", func(t *testing.T) {
		q, err := ParseQuery(`{"deleted": false, "brand": "MRF"}`)
		require.NoError(t, err)
		m, ok := q.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, false, m["deleted"])
	})

	t.Run("pipeline array", func(t *testing.T) {
		q, err := ParseQuery("```json\n[{\"$match\": {\"deleted\": false}}]\n```")
		require.NoError(t, err)
		stages, ok := q.([]any)
		require.True(t, ok)
		assert.Len(t, stages, 1)
	})

	t.Run("constructor wrappers are normalized before parsing", func(t *testing.T) {
		q, err := ParseQuery(`{"createdAt": {"$gte": ISODate("2023-01-01T00:00:00Z")}}`)
		require.NoError(t, err)
		m := q.(map[string]any)
		created := m["createdAt"].(map[string]any)
		assert.Equal(t, "2023-01-01T00:00:00Z", created["$gte"])
	})

	t.Run("prose is an explicit error", func(t *testing.T) {
		_, err := ParseQuery("I am sorry, I cannot answer that.")
		require.Error(t, err)
	})

	t.Run("empty payload is an explicit error", func(t *testing.T) {
		_, err := ParseQuery("``````")
		require.Error(t, err)
	})
}
