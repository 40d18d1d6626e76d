package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWikitextDetokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "hyphen separator",
			input: "a state @-@ of @-@ the @-@ art model",
			want:  "a state-of-the-art model",
		},
		{
			name:  "number separators",
			input: "sold 1 @,@ 250 @.@ 5 units",
			want:  "sold 1,250.5 units",
		},
		{
			name:  "punctuation spacing",
			input: "First , second ; third : done . Really ? Yes !",
			want:  "First, second; third: done. Really? Yes !",
		},
		{
			name:  "parentheses tighten",
			input: "the result ( shown above ) holds",
			want:  "the result (shown above) holds",
		},
		{
			name:  "square brackets tighten",
			input: "see [ 12 ] for details",
			want:  "see [12] for details",
		},
		{
			name:  "double quotes tighten",
			input: `he said " hello there " twice`,
			want:  `he said "hello there" twice`,
		},
		{
			name:  "single quotes tighten",
			input: "the ' special ' case",
			want:  "the 'special' case",
		},
		{
			name:  "heading markers",
			input: "= = = Early life = = =",
			want:  "=== Early life ===",
		},
		{
			name:  "possessive apostrophe",
			input: "the model 's weights",
			want:  "the model's weights",
		},
		{
			name:  "plural possessive",
			input: "the workers ' union",
			want:  "the workers' union",
		},
		{
			name:  "masked number token",
			input: "chapter N begins",
			want:  "chapter 1 begins",
		},
		{
			name:  "degree sign",
			input: "heated to 40 ° C",
			want:  "heated to 40°C",
		},
		{
			name:  "whitespace around newlines",
			input: "line one \n line two",
			want:  "line one\nline two",
		},
		{
			name:  "plain text unchanged",
			input: "nothing to undo here",
			want:  "nothing to undo here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WikitextDetokenize(tt.input))
		})
	}
}
