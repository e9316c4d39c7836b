package ai

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"highlights": ["good"]}`,
			want:  `{"highlights": ["good"]}`,
		},
		{
			name:  "code fence",
			input: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "surrounding prose",
			input: `Here is the summary you asked for: {"a": {"b": 2}} hope that helps`,
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:  "braces inside strings",
			input: `{"reason": "serves {very} good food"}`,
			want:  `{"reason": "serves {very} good food"}`,
		},
		{
			name:  "escaped quote inside string",
			input: `{"name": "the \"best\" cafe"}`,
			want:  `{"name": "the \"best\" cafe"}`,
		},
		{
			name:  "no object",
			input: "I don't know this restaurant.",
			want:  "",
		},
		{
			name:  "unbalanced",
			input: `{"truncated": [`,
			want:  "",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSON(tt.input)
			if got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
