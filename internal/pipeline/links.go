package pipeline

import (
	"regexp"

	"github.com/dlclark/regexp2"
)

var (
	// Inline link label not already bold. Skips escaped brackets and images.
	// The label may contain escaped brackets, as table of contents labels do.
	linkLabel = mustCompile2(`(?<![\\!])\[(?!\*\*)((?:\\.|[^\]\\\n])+)\]\(`)

	// Four or more '*' closing a label collapse to two.
	excessBold = regexp.MustCompile(`\*{4,}\]\(`)
)

// BoldifyLinks wraps every inline link label in ** emphasis.
func BoldifyLinks(content string) string {
	content = replaceAll2(linkLabel, content, func(m regexp2.Match) string {
		return "[**" + group(m, 1) + "**]("
	})
	return excessBold.ReplaceAllString(content, "**](")
}
