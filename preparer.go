package mdprep

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-mdprep/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pdfConverter           = (*rodConverter)(nil)
	_ pdfRenderer            = (*rodRenderer)(nil)
)

// Preparer runs the Markdown passes and the optional HTML and PDF renderers.
// A Preparer is not safe for concurrent use; use PreparerPool for parallel work.
// Create with NewPreparer, use Prepare, and Close when done.
type Preparer struct {
	cfg           preparerConfig
	opts          pipeline.Options
	logger        zerolog.Logger
	htmlConverter pipeline.HTMLConverter
	pdfConverter  pdfConverter
}

// NewPreparer creates a Preparer. The browser used for PDF output is started
// on first use, not here.
func NewPreparer(opts ...Option) (*Preparer, error) {
	cfg, popts, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	return newPreparer(cfg, popts), nil
}

func newPreparer(cfg preparerConfig, popts pipeline.Options) *Preparer {
	return &Preparer{
		cfg:           cfg,
		opts:          popts,
		logger:        cfg.logger,
		htmlConverter: pipeline.NewGoldmarkConverter(),
		pdfConverter:  newRodConverter(cfg.timeout, cfg.logger),
	}
}

// Prepare rewrites input.Markdown and renders it to the requested format.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Preparer) Prepare(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	format, err := p.validateInput(input)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	prepared, err := pipeline.Transform(input.Markdown, p.opts)
	if err != nil {
		return nil, err
	}
	p.logger.Debug().
		Int("notes", len(prepared.Notes)).
		Int("headings", len(prepared.Headings)).
		Int("index_entries", len(prepared.Index)).
		Dur("elapsed", time.Since(start)).
		Msg("markdown prepared")

	res := &Result{
		Markdown:     prepared.Markdown,
		Notes:        len(prepared.Notes),
		Headings:     len(prepared.Headings),
		IndexEntries: len(prepared.Index),
	}
	if format == FormatMarkdown {
		return res, nil
	}

	htmlContent, err := p.htmlConverter.ToHTML(ctx, prepared.Markdown, input.Title)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}
	res.HTML = []byte(htmlContent)
	if format == FormatHTML {
		return res, nil
	}

	start = time.Now()
	pdfBytes, err := p.pdfConverter.ToPDF(ctx, htmlContent)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	p.logger.Debug().
		Int("bytes", len(pdfBytes)).
		Dur("elapsed", time.Since(start)).
		Msg("pdf rendered")

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (p *Preparer) Close() error {
	if p.pdfConverter != nil {
		return p.pdfConverter.Close()
	}
	return nil
}

// validateInput resolves the output format; an empty format means Markdown.
func (p *Preparer) validateInput(input Input) (Format, error) {
	if input.Format == "" {
		return FormatMarkdown, nil
	}
	if !slices.Contains(Formats, input.Format) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, input.Format)
	}
	return input.Format, nil
}
