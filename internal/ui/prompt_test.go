package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPromptLines(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		input  string
		want   []string
		prompt string
	}{
		{
			name:   "uses input",
			fields: []Field{{Label: "Client ID"}, {Label: "Client secret", Secret: true}},
			input:  "id\nsecret\n",
			want:   []string{"id", "secret"},
			prompt: "Client ID: Client secret: ",
		},
		{
			name: "empty lines keep defaults",
			fields: []Field{
				{Label: "Client ID", Default: "old"},
				{Label: "Redirect URI", Default: "http://127.0.0.1:8888/callback"},
			},
			input:  "\n  \n",
			want:   []string{"old", "http://127.0.0.1:8888/callback"},
			prompt: "Client ID [old]: Redirect URI [http://127.0.0.1:8888/callback]: ",
		},
		{
			name:   "secret defaults are masked",
			fields: []Field{{Label: "Client secret", Default: "hunter2", Secret: true}},
			input:  "\n",
			want:   []string{"hunter2"},
			prompt: "Client secret [(unchanged)]: ",
		},
		{
			name:   "eof without newline",
			fields: []Field{{Label: "A"}, {Label: "B", Default: "b"}},
			input:  "last",
			want:   []string{"last", "b"},
			prompt: "A: B [b]: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			values, err := PromptLines(strings.NewReader(tt.input), &out, tt.fields)
			if err != nil {
				t.Fatalf("PromptLines() error = %v", err)
			}

			for i := range tt.want {
				if values[i] != tt.want[i] {
					t.Errorf("value %d: expected %q, got %q", i, tt.want[i], values[i])
				}
			}
			if out.String() != tt.prompt {
				t.Errorf("unexpected prompts %q, want %q", out.String(), tt.prompt)
			}
		})
	}
}
