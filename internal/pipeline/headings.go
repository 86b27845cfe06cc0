package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// ErrHeadingMismatch indicates that anchor rewriting saw a different number of
// headings than indexing did, so slugs cannot be paired with headings.
var ErrHeadingMismatch = errors.New("heading count mismatch between indexing and anchor rewriting")

// fallbackSlug is used when a heading has no ASCII word characters.
const fallbackSlug = "section"

var (
	// ATX heading of level 2 or deeper. Captures: 1=hashes, 2=text
	headingLine = regexp.MustCompile(`(?m)^(#{2,})[ \t]+(\S.*)$`)

	htmlTag      = regexp.MustCompile(`<[^>]*>`)
	nonWordRun   = regexp.MustCompile(`\W+`)
	bracketChars = regexp.MustCompile(`([\[\]])`)

	// A section whose heading text begins with "Contents", body up to the next heading.
	contentsSection = mustCompile2(`^(##+)[ \t]+(Contents\b.*)(?:\n[\s\S]*?)?(?=^##|\z)`)
)

// Heading is one ATX heading of level 2 or deeper.
type Heading struct {
	Level int    // number of leading '#'
	Text  string // heading text without anchors or trailing whitespace
	Slug  string // unique anchor id
}

// TOCEntry is one line of the generated table of contents.
type TOCEntry struct {
	Indent string
	Label  string // heading text with [ and ] escaped
	Target string // slug
}

// String renders the entry as a markdown list item.
func (e TOCEntry) String() string {
	return e.Indent + "- [" + e.Label + "](#" + e.Target + ")"
}

// Outline is the result of indexing the headings of a document.
type Outline struct {
	Headings []Heading
	TOC      []TOCEntry
}

// TOCText renders the table of contents, one line per heading.
func (o Outline) TOCText() string {
	var buf strings.Builder
	for _, e := range o.TOC {
		buf.WriteString(e.String())
		buf.WriteByte('\n')
	}
	return buf.String()
}

// IndexHeadings scans content for headings in document order and assigns each a
// slug that is unique within the document.
func IndexHeadings(content string) Outline {
	var out Outline
	used := make(map[string]bool)

	for _, m := range headingLine.FindAllStringSubmatch(content, -1) {
		level := len(m[1])
		text := strings.TrimRightFunc(anchorTag.ReplaceAllString(m[2], ""), isSpace)
		slug := uniqueSlug(slugify(text), used)

		out.Headings = append(out.Headings, Heading{Level: level, Text: text, Slug: slug})
		out.TOC = append(out.TOC, TOCEntry{
			Indent: strings.Repeat(" ", 4*(level-2)),
			Label:  bracketChars.ReplaceAllString(text, `\$1`),
			Target: slug,
		})
	}
	return out
}

// slugify strips tags, collapses non-word runs to '_' and trims underscores.
func slugify(text string) string {
	s := htmlTag.ReplaceAllString(text, "")
	s = nonWordRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return fallbackSlug
	}
	return s
}

// uniqueSlug appends _2, _3, ... to base until it is unused, then marks it used.
func uniqueSlug(base string, used map[string]bool) string {
	slug := base
	for n := 2; used[slug]; n++ {
		slug = base + "_" + strconv.Itoa(n)
	}
	used[slug] = true
	return slug
}

// RenderContents replaces the body of every "Contents" section with toc
// followed by a blank line.
func RenderContents(content, toc string) string {
	return replaceAll2(contentsSection, content, func(m regexp2.Match) string {
		return group(m, 1) + " " + group(m, 2) + "\n\n" + toc + "\n"
	})
}

// RewriteHeadingAnchors puts an anchor carrying the slug before each heading and
// re-emits the heading with its clean text. headings must come from
// IndexHeadings over a document with the same heading lines.
func RewriteHeadingAnchors(content string, headings []Heading) (string, error) {
	locs := headingLine.FindAllStringSubmatchIndex(content, -1)
	if len(locs) != len(headings) {
		return "", fmt.Errorf("%w: indexed %d, found %d", ErrHeadingMismatch, len(headings), len(locs))
	}

	var buf strings.Builder
	buf.Grow(len(content) + len(headings)*24)
	last := 0
	for i, loc := range locs {
		h := headings[i]
		buf.WriteString(content[last:loc[0]])
		buf.WriteString(anchorElement(h.Slug))
		buf.WriteByte('\n')
		buf.WriteString(content[loc[2]:loc[3]])
		buf.WriteByte(' ')
		buf.WriteString(h.Text)
		last = loc[1]
	}
	buf.WriteString(content[last:])
	return buf.String(), nil
}

func anchorElement(slug string) string {
	return "<a id=" + slug + "></a>"
}
