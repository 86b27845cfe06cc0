package pipeline

import (
	"regexp"
	"strings"
)

// tabWidth is the number of spaces a tab expands to.
const tabWidth = 8

// Precompiled regex patterns for preprocessing.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Anchor alone on its line, removed together with its newline
	anchorLine = regexp.MustCompile(`(?m)^[ \t]*<a\s+(?:id|name)[^>]*>\s*</a>[ \t]*\n`)

	// Any remaining empty anchor element
	anchorTag = regexp.MustCompile(`<a\s+(?:id|name)[^>]*>\s*</a>`)
)

// Preprocess prepares raw text for the note and heading passes.
// Previously generated anchors are dropped so they can be regenerated.
func Preprocess(content string) string {
	content = normalizeLineEndings(content)
	content = stripAnchors(content)
	content = expandTabs(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// stripAnchors removes <a id=...></a> and <a name=...></a> elements.
func stripAnchors(content string) string {
	content = anchorLine.ReplaceAllString(content, "")
	return anchorTag.ReplaceAllString(content, "")
}

// expandTabs replaces each tab with tabWidth spaces.
func expandTabs(content string) string {
	return strings.ReplaceAll(content, "\t", strings.Repeat(" ", tabWidth))
}
