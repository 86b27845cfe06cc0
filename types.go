package mdprep

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/alnah/go-mdprep/internal/pipeline"
)

// Format selects what Prepare produces besides the prepared Markdown.
type Format string

// Output formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// Formats lists the valid output formats.
var Formats = []Format{FormatMarkdown, FormatHTML, FormatPDF}

// ParseFormat converts a case-insensitive name to a Format.
// "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatMarkdown, FormatHTML, FormatPDF:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// Ext returns the file extension, with dot, used for the format.
func (f Format) Ext() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatPDF:
		return ".pdf"
	}
	return ".prepared.md"
}

// IndexMatch selects which headings activate the Index builder.
type IndexMatch = pipeline.IndexMatch

// Index match modes.
const (
	IndexMatchSubstring = pipeline.IndexMatchSubstring
	IndexMatchExact     = pipeline.IndexMatchExact
)

// SortOrder selects how Index entries are ordered.
type SortOrder = pipeline.SortOrder

// Index sort orders.
const (
	SortBytes  = pipeline.SortBytes
	SortFold   = pipeline.SortFold
	SortLocale = pipeline.SortLocale
)

// Input is one document to prepare.
type Input struct {
	Markdown string
	Title    string // HTML <title>; defaults to "Document"
	Format   Format // defaults to FormatMarkdown
}

// Result holds the prepared document and, depending on the format, its renderings.
type Result struct {
	Markdown string
	HTML     []byte // set for FormatHTML and FormatPDF
	PDF      []byte // set for FormatPDF

	Notes        int // rendered notes
	Headings     int // anchored headings
	IndexEntries int // entries written to Index sections
}

// Option configures a Preparer.
type Option func(*preparerConfig)

// preparerConfig holds internal configuration for Preparer.
type preparerConfig struct {
	timeout  time.Duration
	logger   zerolog.Logger
	match    IndexMatch
	sort     SortOrder
	language string
}

// defaultTimeout bounds page loading when PDF output is requested.
const defaultTimeout = 30 * time.Second

func defaultConfig() preparerConfig {
	return preparerConfig{
		timeout: defaultTimeout,
		logger:  zerolog.Nop(),
		match:   IndexMatchSubstring,
		sort:    SortBytes,
	}
}

// WithTimeout sets the page load timeout for PDF rendering.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdprep: WithTimeout duration must be positive")
	}
	return func(c *preparerConfig) {
		c.timeout = d
	}
}

// WithLogger sets the logger receiving pass statistics at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(c *preparerConfig) {
		c.logger = l
	}
}

// WithIndexMatch sets how "Index" headings are detected.
func WithIndexMatch(m IndexMatch) Option {
	return func(c *preparerConfig) {
		c.match = m
	}
}

// WithIndexSort sets the Index entry order.
func WithIndexSort(s SortOrder) Option {
	return func(c *preparerConfig) {
		c.sort = s
	}
}

// WithCollationLanguage sets the BCP 47 language used by SortLocale.
// An empty tag collates with the root locale.
func WithCollationLanguage(tag string) Option {
	return func(c *preparerConfig) {
		c.language = tag
	}
}

// buildConfig applies opts over the defaults and returns the pipeline options.
func buildConfig(opts []Option) (preparerConfig, pipeline.Options, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	popts := pipeline.DefaultOptions()
	switch cfg.match {
	case IndexMatchSubstring, IndexMatchExact:
		popts.Index.Match = cfg.match
	default:
		return cfg, popts, fmt.Errorf("%w: %q", ErrInvalidIndexMatch, cfg.match)
	}
	switch cfg.sort {
	case SortBytes, SortFold, SortLocale:
		popts.Index.Sort = cfg.sort
	default:
		return cfg, popts, fmt.Errorf("%w: %q", ErrInvalidIndexSort, cfg.sort)
	}

	popts.Index.Language = language.Und
	if cfg.language != "" {
		tag, err := language.Parse(cfg.language)
		if err != nil {
			return cfg, popts, fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, cfg.language, err)
		}
		popts.Index.Language = tag
	}
	return cfg, popts, nil
}
