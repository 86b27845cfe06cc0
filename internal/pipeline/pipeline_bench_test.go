//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkTransform measures the full pass pipeline on generated documents.
func BenchmarkTransform(b *testing.B) {
	for _, sections := range []int{10, 50, 200} {
		doc := generateDocument(sections)
		b.Run(fmt.Sprintf("sections_%d", sections), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := Transform(doc, DefaultOptions()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkGoldmarkToHTML measures rendering of a prepared document.
func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()

	for _, sections := range []int{10, 50, 200} {
		res, err := Transform(generateDocument(sections), DefaultOptions())
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("sections_%d", sections), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := converter.ToHTML(ctx, res.Markdown, ""); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func generateDocument(sections int) string {
	var sb strings.Builder
	sb.WriteString("## Contents\n\n")
	for i := 1; i <= sections; i++ {
		fmt.Fprintf(&sb, "## Section %d\n\n", i)
		fmt.Fprintf(&sb, "Paragraph with a [link](https://example.com/%d)", i)
		fmt.Fprintf(&sb, " and a note<sup>[(%d)](#n%d)</sup>.", i, i)
		fmt.Fprintf(&sb, " Also <<see|inline note %d>>.<<Index: term%d|shared>>\n\n", i, i)
		sb.WriteString("### Details\n\nMore text.\n\n")
	}
	sb.WriteString("## Notes\n\n")
	for i := 1; i <= sections; i++ {
		fmt.Fprintf(&sb, "<sup id=n%d>(%d)</sup> Note body %d.\n\n", i, i, i%7)
	}
	sb.WriteString("## Index\n")
	return sb.String()
}
