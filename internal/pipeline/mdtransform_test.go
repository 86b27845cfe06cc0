package pipeline

import "testing"

func TestPreprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "CRLF normalized",
			input:    "a\r\nb\rc",
			expected: "a\nb\nc",
		},
		{
			name:     "anchor line removed with its newline",
			input:    "<a id=Foo></a>\n## Foo\n",
			expected: "## Foo\n",
		},
		{
			name:     "name anchor with spacing",
			input:    "  <a name=\"x\"> </a>  \ntext",
			expected: "text",
		},
		{
			name:     "inline anchor removed",
			input:    "## Foo <a id=old></a>\n",
			expected: "## Foo \n",
		},
		{
			name:     "links are kept",
			input:    `<a href="x">link</a>`,
			expected: `<a href="x">link</a>`,
		},
		{
			name:     "tabs expanded",
			input:    "\tcode",
			expected: "        code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Preprocess(tt.input); got != tt.expected {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
