package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-mdprep"
	"github.com/alnah/go-mdprep/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
	ErrOutputDir    = errors.New("failed to create output directory")
	ErrServiceInit  = errors.New("failed to initialize preparation service")
	ErrBatchFailed  = errors.New("some files failed")
)

// prepareParams holds the per-run settings shared by every file.
type prepareParams struct {
	format mdprep.Format
	title  string // empty derives the title from the file name
}

// ConversionResult holds the outcome of a single preparation.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// prepareBatch processes files concurrently using the preparer pool.
func prepareBatch(ctx context.Context, pool Pool, files []FileToPrepare, params prepareParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			prep := pool.Acquire()
			if prep == nil {
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ErrServiceInit,
					}
				}
				return
			}
			defer pool.Release(prep)

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       err,
					}
					continue
				}
				results[idx] = prepareFile(ctx, prep, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// prepareFile processes a single file and returns the result.
func prepareFile(ctx context.Context, prep CLIPreparer, f FileToPrepare, params prepareParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrReadMarkdown, err))
	}

	title := params.title
	if title == "" {
		title = fileutil.TrimMarkdownExt(filepath.Base(f.InputPath))
	}

	res, err := prep.Prepare(ctx, mdprep.Input{
		Markdown: string(content),
		Title:    title,
		Format:   params.format,
	})
	if err != nil {
		return fail(err)
	}

	if err := writeOutput(f.OutputPath, outputBytes(res, params.format)); err != nil {
		return fail(err)
	}

	result.Duration = time.Since(start)
	return result
}

// outputBytes selects the rendering matching format.
func outputBytes(res *mdprep.Result, format mdprep.Format) []byte {
	switch format {
	case mdprep.FormatHTML:
		return res.HTML
	case mdprep.FormatPDF:
		return res.PDF
	}
	return []byte(res.Markdown)
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputDir, err)
	}
	// #nosec G306 -- prepared documents are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed preparations.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed preparations.
func countResults(results []ConversionResult) ResultSummary {
	var s ResultSummary
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}

// logResults reports each result and a summary line for batches.
func logResults(logger zerolog.Logger, results []ConversionResult) ResultSummary {
	for _, r := range results {
		if r.Err != nil {
			logger.Error().Str("input", r.InputPath).Err(r.Err).Msg("failed")
			continue
		}
		logger.Info().
			Str("output", r.OutputPath).
			Dur("elapsed", r.Duration).
			Msg("created")
	}

	summary := countResults(results)
	if len(results) > 1 {
		logger.Info().
			Int("succeeded", summary.Succeeded).
			Int("failed", summary.Failed).
			Msg("done")
	}
	return summary
}
