package pipeline

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// PlaceholderNote stands in for a reference whose definition was never written.
const PlaceholderNote = "No note text yet."

var (
	// Original definition: <sup id=ref>(n)</sup> body, running to the next
	// definition, the next ## heading, or the end of the document.
	noteDefinition = mustCompile2(`<sup\s+id\s*=\s*([^>]+)>\s*\((\d+)\)\s*</sup>\s*([\s\S]+?)(?=<sup\s+id|^##|\z)`)

	// Legacy reference: <sup>[(n)](#ref)</sup>, label optionally bold.
	legacyNoteRef = regexp.MustCompile(`<sup>\s*\[(?:\*\*)?\(\d+\)(?:\*\*)?\]\s*\(#([^>]+)\)\s*</sup>`)

	// Inline definition: <<label|body>>
	inlineNote = regexp.MustCompile(`<<([^|>\n]*)\|([^|>]+)>>`)

	// The whole definitions block, including a <small> wrapper left by an earlier run.
	notesBlock = mustCompile2(`(?:<small>\s*)*<sup\s+id[\s\S]+?(?=^##|\z)`)

	// A section headed "Notes".
	notesSection = mustCompile2(`^(##+)[ \t]+(Notes\b.*)\n+([\s\S]*?)(?=^##|\z)`)
	notesHeading = regexp.MustCompile(`(?m)^##+[ \t]+Notes\b.*\n`)

	smallTag     = regexp.MustCompile(`</?small>`)
	smallOpeners = regexp.MustCompile(`(?:<small>\s*)+`)
)

// NoteDefs holds the note definitions harvested from a document.
type NoteDefs struct {
	texts     *orderedMap[string, string] // ref id -> body, last definition wins
	canonical *orderedMap[string, string] // body -> first ref id defining it

	// numbered is set when the definitions read Note1 (1), Note2 (2), ...
	// in document order, as written by an earlier run.
	numbered bool
}

// Text returns the body defined for ref.
func (d NoteDefs) Text(ref string) (string, bool) {
	return d.texts.Get(ref)
}

// Canonical returns the first ref id whose body equals text.
func (d NoteDefs) Canonical(text string) (string, bool) {
	return d.canonical.Get(text)
}

// Refs returns the defined ref ids in first-definition order.
func (d NoteDefs) Refs() []string {
	return d.texts.Keys()
}

// Numbered reports whether the definitions are an already numbered notes list.
// References to such a list keep their ordinals and are not merged by body.
func (d NoteDefs) Numbered() bool {
	return d.numbered
}

// resolve returns the body for ref, or the placeholder.
func (d NoteDefs) resolve(ref string) string {
	if text, ok := d.texts.Get(ref); ok {
		return text
	}
	return PlaceholderNote
}

// RenderedNote is one entry of the numbered notes list.
type RenderedNote struct {
	Ordinal  int
	AnchorID string
	Body     string // starts with the note's own anchor and (n) marker
}

// Ref returns the inline superscript link pointing at the note.
func (n RenderedNote) Ref() string {
	return "<sup>[(" + strconv.Itoa(n.Ordinal) + ")](#" + n.AnchorID + ")</sup>"
}

// NoteState carries the ordinal counter and the rendered notes
// from one rewrite batch to the next. Notes stay sorted by ordinal.
type NoteState struct {
	Notes    []RenderedNote
	assigned map[string]int // canonical ref id -> ordinal
	next     int
}

// NewNoteState returns an empty state; the first note gets ordinal 1.
func NewNoteState() NoteState {
	return NoteState{assigned: make(map[string]int), next: 1}
}

// add appends a note with the next ordinal.
func (s NoteState) add(text string) (NoteState, RenderedNote) {
	return s.addAt(max(s.next, 1), text)
}

// addAt records a note with a fixed ordinal.
func (s NoteState) addAt(ordinal int, text string) (NoteState, RenderedNote) {
	s.next = max(s.next, ordinal+1)
	anchor := "Note" + strconv.Itoa(ordinal)
	note := RenderedNote{
		Ordinal:  ordinal,
		AnchorID: anchor,
		Body:     "<sup id=" + anchor + ">(" + strconv.Itoa(ordinal) + ")</sup> " + text,
	}
	i, _ := slices.BinarySearchFunc(s.Notes, ordinal, func(n RenderedNote, o int) int {
		return n.Ordinal - o
	})
	s.Notes = slices.Insert(s.Notes, i, note)
	return s, note
}

// lookup returns the note already assigned to ref.
func (s NoteState) lookup(ref string) (RenderedNote, bool) {
	ordinal, ok := s.assigned[ref]
	if !ok {
		return RenderedNote{}, false
	}
	i, found := slices.BinarySearchFunc(s.Notes, ordinal, func(n RenderedNote, o int) int {
		return n.Ordinal - o
	})
	if !found {
		return RenderedNote{}, false
	}
	return s.Notes[i], true
}

// ExtractNotes collects every original note definition in content.
func ExtractNotes(content string) NoteDefs {
	defs := NoteDefs{
		texts:     newOrderedMap[string, string](),
		canonical: newOrderedMap[string, string](),
	}
	matches := findAll2(noteDefinition, content)
	defs.numbered = len(matches) > 0
	for i, m := range matches {
		ref := strings.Trim(strings.TrimSpace(m[1]), `"'`)
		text := strings.TrimRightFunc(m[3], isSpace)
		text = strings.TrimRightFunc(smallTag.ReplaceAllString(text, ""), isSpace)
		defs.canonical.SetIfAbsent(text, ref)
		defs.texts.Set(ref, text)

		n := strconv.Itoa(i + 1)
		if ref != "Note"+n || strings.TrimLeft(m[2], "0") != n {
			defs.numbered = false
		}
	}
	return defs
}

// ordinalOf returns k for a ref id of the form Note<k>.
func ordinalOf(ref string) (int, bool) {
	digits, ok := strings.CutPrefix(ref, "Note")
	if !ok {
		return 0, false
	}
	k, err := strconv.Atoi(digits)
	return k, err == nil && k > 0
}

// RewriteLegacyRefs numbers every <sup>[(n)](#ref)</sup> reference in document
// order. References whose bodies are identical share one note.
// When defs is already numbered, each defined Note<k> keeps ordinal k and
// nothing is merged, so a prepared document comes out unchanged.
func RewriteLegacyRefs(content string, defs NoteDefs, state NoteState) (string, NoteState) {
	if defs.numbered {
		state.next = max(state.next, len(defs.Refs())+1)
	}

	out := legacyNoteRef.ReplaceAllStringFunc(content, func(match string) string {
		ref := legacyNoteRef.FindStringSubmatch(match)[1]
		text := defs.resolve(ref)
		if canonical, ok := defs.Canonical(text); ok && !defs.numbered {
			ref = canonical
		}

		if note, ok := state.lookup(ref); ok {
			return note.Ref()
		}

		var note RenderedNote
		if k, ok := ordinalOf(ref); ok && defs.numbered && defined(defs, ref) {
			state, note = state.addAt(k, text)
		} else {
			state, note = state.add(defs.resolve(ref))
		}
		state.assigned[ref] = note.Ordinal
		return note.Ref()
	})
	return out, state
}

func defined(defs NoteDefs, ref string) bool {
	_, ok := defs.Text(ref)
	return ok
}

// RewriteInlineNotes turns each <<label|body>> marker into a new note.
// Inline notes are never merged with other notes, even when bodies match.
// A label starting with whitespace, or an index marker, is left untouched.
func RewriteInlineNotes(content string, state NoteState) (string, NoteState) {
	out := inlineNote.ReplaceAllStringFunc(content, func(match string) string {
		sub := inlineNote.FindStringSubmatch(match)
		label, body := sub[1], sub[2]
		if strings.TrimLeftFunc(label, isSpace) != label || strings.HasPrefix(label, "Index:") {
			return match
		}

		var note RenderedNote
		state, note = state.add(body)
		if label == "" {
			return note.Ref()
		}
		return "(" + label + ")" + note.Ref()
	})
	return out, state
}

// RenderNotesSection replaces the original definitions block with the
// numbered notes, each wrapped in <small> and separated by blank lines.
// Without a definitions block the list opens the Notes section, or is
// appended to the document when there is no such section.
func RenderNotesSection(content string, notes []RenderedNote) string {
	list := renderNoteList(notes)

	if match2(notesBlock, content) {
		return replaceN2(notesBlock, content, 1, func(regexp2.Match) string {
			return list + "\n\n"
		})
	}
	if len(notes) == 0 {
		return content
	}

	if loc := notesHeading.FindStringIndex(content); loc != nil {
		return content[:loc[1]] + "\n" + list + "\n\n" + content[loc[1]:]
	}
	return strings.TrimRight(content, "\n") + "\n\n" + list + "\n\n"
}

func renderNoteList(notes []RenderedNote) string {
	parts := make([]string, len(notes))
	for i, n := range notes {
		parts[i] = "<small>" + n.Body + "</small>"
	}
	return strings.Join(parts, "\n\n")
}

// NormalizeNotesSection tidies a section headed "Notes": one blank line after
// the heading, a trimmed body, and no repeated <small> openers.
func NormalizeNotesSection(content string) string {
	return replaceAll2(notesSection, content, func(m regexp2.Match) string {
		head := group(m, 1) + " " + group(m, 2) + "\n\n"
		body := strings.TrimSpace(group(m, 3))
		if body == "" {
			return head
		}
		return head + smallOpeners.ReplaceAllString(body, "<small>") + "\n\n"
	})
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
