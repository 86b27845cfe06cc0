package pipeline

import "testing"

func TestBoldifyLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain link",
			input:    "[a](b)",
			expected: "[**a**](b)",
		},
		{
			name:     "already bold",
			input:    "[**a**](b)",
			expected: "[**a**](b)",
		},
		{
			name:     "escaped bracket",
			input:    `\[a](b)`,
			expected: `\[a](b)`,
		},
		{
			name:     "image untouched",
			input:    "![alt](img.png)",
			expected: "![alt](img.png)",
		},
		{
			name:     "several links on one line",
			input:    "[a](b) and [c](d)",
			expected: "[**a**](b) and [**c**](d)",
		},
		{
			name:     "trailing bold collapses",
			input:    "[x **y**](z)",
			expected: "[**x **y**](z)",
		},
		{
			name:     "not a link",
			input:    "[a] (b)\n[c]\n(d)",
			expected: "[a] (b)\n[c]\n(d)",
		},
		{
			name:     "escaped brackets inside label",
			input:    `- [A \[b\]](#A_b)`,
			expected: `- [**A \[b\]**](#A_b)`,
		},
		{
			name:     "note reference",
			input:    "<sup>[(1)](#Note1)</sup>",
			expected: "<sup>[**(1)**](#Note1)</sup>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := BoldifyLinks(tt.input); got != tt.expected {
				t.Errorf("BoldifyLinks(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
