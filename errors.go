package mdprep

import (
	"errors"

	"github.com/alnah/go-mdprep/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidFormat     = errors.New("invalid output format")
	ErrInvalidIndexMatch = errors.New("invalid index match mode")
	ErrInvalidIndexSort  = errors.New("invalid index sort order")
	ErrInvalidLanguage   = errors.New("invalid collation language")

	ErrHeadingMismatch = pipeline.ErrHeadingMismatch
	ErrHTMLConversion  = pipeline.ErrHTMLConversion

	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
