package pipeline

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// IndexMatch selects which headings turn the index builder on.
type IndexMatch string

const (
	// IndexMatchSubstring activates on any heading containing "Index".
	IndexMatchSubstring IndexMatch = "substring"
	// IndexMatchExact activates only on a heading that is exactly "Index".
	IndexMatchExact IndexMatch = "exact"
)

// SortOrder selects how index entries are ordered.
type SortOrder string

const (
	// SortBytes compares terms byte by byte.
	SortBytes SortOrder = "bytes"
	// SortFold compares case-folded terms, bytes breaking ties.
	SortFold SortOrder = "fold"
	// SortLocale compares terms with Unicode collation for a language.
	SortLocale SortOrder = "locale"
)

// indexHeadingText is the heading text of the section that receives the index.
const indexHeadingText = "Index"

var (
	// Inline index marker: <<Index: term1|term2>>
	indexMarker = regexp.MustCompile(`<<\s*Index:\s*([^>]+)>>`)
	termSep     = regexp.MustCompile(`\s*\|\s*`)

	// Anchor plus heading as written by RewriteHeadingAnchors.
	// Captures: 1=slug, 2=heading text
	anchoredHeading = regexp.MustCompile(`(?m)^<a\s+(?:id|name)\s*=\s*([^>\s]+)>\s*</a>[ \t]*\n#{2,}[ \t]+(.*)(?:\n|$)`)
)

// IndexEntry is one term pointing at the section that mentioned it.
type IndexEntry struct {
	Term        string
	HeadingText string
	Slug        string
}

// String renders the entry as an index line.
func (e IndexEntry) String() string {
	return fmt.Sprintf("- **%s**: See [**%s**](#%s).", e.Term, e.HeadingText, e.Slug)
}

// IndexOptions configures BuildIndex.
type IndexOptions struct {
	Match    IndexMatch
	Sort     SortOrder
	Language language.Tag // used by SortLocale
}

// BuildIndex gathers <<Index: ...>> markers per section, removes them and
// writes the sorted entries at the top of every section titled "Index".
// content must already carry heading anchors. Markers before the first
// heading are left alone. Markers holding no terms are removed all the same.
func BuildIndex(content string, opts IndexOptions) (string, []IndexEntry) {
	if !indexMarker.MatchString(content) {
		return content, nil
	}

	locs := anchoredHeading.FindAllStringSubmatchIndex(content, -1)
	if !hasIndexHeading(content, locs, opts.Match) {
		return content, nil
	}

	segments := make([]string, len(locs))
	var entries []IndexEntry
	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		slug := content[loc[2]:loc[3]]
		text := strings.TrimRightFunc(content[loc[4]:loc[5]], isSpace)

		segments[i] = indexMarker.ReplaceAllStringFunc(content[loc[1]:end], func(match string) string {
			terms := indexMarker.FindStringSubmatch(match)[1]
			for _, term := range termSep.Split(terms, -1) {
				term = strings.TrimSpace(term)
				if term == "" {
					continue
				}
				entries = append(entries, IndexEntry{Term: term, HeadingText: text, Slug: slug})
			}
			return ""
		})
	}

	sortEntries(entries, opts)
	var listing string
	if len(entries) > 0 {
		lines := make([]string, len(entries))
		for i, e := range entries {
			lines[i] = e.String()
		}
		listing = strings.Join(lines, "\n") + "\n"
	}

	var buf strings.Builder
	buf.WriteString(content[:locs[0][0]])
	for i, loc := range locs {
		buf.WriteString(content[loc[0]:loc[1]])
		if strings.TrimRightFunc(content[loc[4]:loc[5]], isSpace) == indexHeadingText {
			buf.WriteString(listing)
		}
		buf.WriteString(segments[i])
	}
	return buf.String(), entries
}

// hasIndexHeading reports whether any anchored heading qualifies as an index heading.
func hasIndexHeading(content string, locs [][]int, match IndexMatch) bool {
	for _, loc := range locs {
		text := strings.TrimRightFunc(content[loc[4]:loc[5]], isSpace)
		switch match {
		case IndexMatchExact:
			if text == indexHeadingText {
				return true
			}
		default:
			if strings.Contains(text, indexHeadingText) {
				return true
			}
		}
	}
	return false
}

// sortEntries orders entries by term, then heading text, then slug.
// Terms are compared on their own, so "a" sorts before "a b".
func sortEntries(entries []IndexEntry, opts IndexOptions) {
	compareTerms := strings.Compare
	switch opts.Sort {
	case SortFold:
		compareTerms = func(a, b string) int {
			if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		}
	case SortLocale:
		col := collate.New(opts.Language)
		compareTerms = func(a, b string) int {
			if c := col.CompareString(a, b); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		}
	}

	slices.SortStableFunc(entries, func(a, b IndexEntry) int {
		if c := compareTerms(a.Term, b.Term); c != 0 {
			return c
		}
		return cmp.Or(
			strings.Compare(a.HeadingText, b.HeadingText),
			strings.Compare(a.Slug, b.Slug),
		)
	})
}
