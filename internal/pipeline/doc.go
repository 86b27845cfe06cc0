// Package pipeline implements the Markdown preparation passes.
//
// Transform runs the passes in a fixed order over one document value:
//   - Preprocess: line endings, stale anchors, tabs
//   - note extraction, reference numbering and the rendered notes list
//   - heading slugs and the Contents section
//   - heading anchors and bold link labels
//   - the Index section built from inline index markers
//
// The passes perform no I/O and keep no state between calls. HTML rendering of
// a prepared document is provided by GoldmarkConverter; PDF rendering is handled
// by the root mdprep package using headless Chrome (go-rod).
package pipeline
