package helpers

import "testing"

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world", 8, "hello..."},
		{"tiny limit", "hello", 2, "he"},
		{"multibyte", "héllo wörld", 7, "héll..."},
		{"empty", "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestSingleLine(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain note", "plain note"},
		{"  spaced\n\tout  note ", "spaced out note"},
		{"\"quoted note\"", "quoted note"},
		{"`code` note", "code` note"},
		{"\n\n", ""},
	}

	for _, tt := range tests {
		if got := SingleLine(tt.input); got != tt.want {
			t.Errorf("SingleLine(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
