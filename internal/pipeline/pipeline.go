package pipeline

import "fmt"

// Options configures Transform.
type Options struct {
	Index IndexOptions
}

// DefaultOptions returns the options matching the historical behavior:
// substring index detection and byte-order sorting.
func DefaultOptions() Options {
	return Options{Index: IndexOptions{Match: IndexMatchSubstring, Sort: SortBytes}}
}

// Result is the prepared document together with what the passes produced.
type Result struct {
	Markdown string
	Notes    []RenderedNote
	Headings []Heading
	Index    []IndexEntry
}

// Transform runs every pass over content in a fixed order. Each pass takes the
// previous document and returns the next one; nothing is shared between calls.
// The only error is ErrHeadingMismatch.
func Transform(content string, opts Options) (*Result, error) {
	doc := Preprocess(content)

	defs := ExtractNotes(doc)
	state := NewNoteState()
	doc, state = RewriteLegacyRefs(doc, defs, state)
	doc, state = RewriteInlineNotes(doc, state)
	doc = RenderNotesSection(doc, state.Notes)

	outline := IndexHeadings(doc)
	doc = RenderContents(doc, outline.TOCText())
	doc = NormalizeNotesSection(doc)

	doc, err := RewriteHeadingAnchors(doc, outline.Headings)
	if err != nil {
		return nil, fmt.Errorf("rewriting heading anchors: %w", err)
	}

	doc = BoldifyLinks(doc)
	doc, entries := BuildIndex(doc, opts.Index)

	return &Result{
		Markdown: doc,
		Notes:    state.Notes,
		Headings: outline.Headings,
		Index:    entries,
	}, nil
}
