package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mdprep"
	"github.com/alnah/go-mdprep/internal/config"
)

// Exit codes for the mdprep CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful preparation
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the exit code for an error.
// It uses errors.Is, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, mdprep.ErrBrowserConnect) ||
		errors.Is(err, mdprep.ErrPageCreate) ||
		errors.Is(err, mdprep.ErrPageLoad) ||
		errors.Is(err, mdprep.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrOutputDir) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrStdinPDF) ||
		errors.Is(err, ErrOutputIsInput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdprep.ErrInvalidFormat) ||
		errors.Is(err, mdprep.ErrInvalidIndexMatch) ||
		errors.Is(err, mdprep.ErrInvalidIndexSort) ||
		errors.Is(err, mdprep.ErrInvalidLanguage) {
		return ExitUsage
	}

	return ExitGeneral
}
