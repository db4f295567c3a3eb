package ai

import (
	"testing"

	"github.com/rahmasleam/NexusMenaV2/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"upper fence", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}

func TestUnmarshalLoose(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "strict json", in: `{"title":"x"}`},
		{name: "fenced json", in: "```json\n{\"title\":\"x\"}\n```"},
		{name: "prose around object", in: "Sure! Here is the result:\n{\"title\":\"x\"}\nHope this helps."},
		{name: "trailing comma", in: `{"title":"x",}`},
		{name: "line comments", in: "{\n// the title\n\"title\":\"x\"\n}"},
		{name: "no json at all", in: "I could not analyze the podcast, sorry.", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{
			// The brace slice is greedy; a stray closing brace after
			// the object makes the candidate unparseable.
			name:    "stray trailing brace",
			in:      `{"title":"x"} }`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			err := unmarshalLoose(tt.in, &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "x", got["title"])
		})
	}
}

func TestUnmarshalLooseIdempotentShape(t *testing.T) {
	// A value already satisfying the contract survives re-validation
	// unchanged.
	in := `{"podcastName":"Show","episodeTitle":"Ep 1","score":8,"summary":"good","metrics":[],"recommendation":"listen"}`

	var first models.PodcastAnalysis
	require.NoError(t, unmarshalLoose(in, &first))
	require.NoError(t, validatePodcastAnalysis(&first, false))
	require.NoError(t, validatePodcastAnalysis(&first, false))
	assert.Equal(t, "Show", first.PodcastName)
	assert.Equal(t, float64(8), first.Score)
}
