package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdprep"
	"github.com/alnah/go-mdprep/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrNoMarkdownFiles  = errors.New("no markdown files found")
	ErrOutputIsInput    = errors.New("output path is the input file")
)

// preparedSuffix marks files written by a previous markdown run.
var preparedSuffix = mdprep.FormatMarkdown.Ext()

// FileToPrepare represents a single file to process.
type FileToPrepare struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all markdown files under inputPath.
// A directory input is walked recursively and mirrored under output.
func discoverFiles(inputPath, output string, format mdprep.Format) ([]FileToPrepare, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsMarkdown(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		outPath := output
		if !isOutputFile(output, format) {
			outPath = resolveOutputPath(inputPath, output, "", format)
		}
		if filepath.Clean(outPath) == filepath.Clean(inputPath) {
			return nil, fmt.Errorf("%w: %s", ErrOutputIsInput, inputPath)
		}
		return []FileToPrepare{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToPrepare
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(path), preparedSuffix) {
			return nil
		}
		outPath := resolveOutputPath(path, output, inputPath, format)
		files = append(files, FileToPrepare{InputPath: path, OutputPath: outPath})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}
	return files, nil
}

// resolveOutputPath determines the output path for a markdown file.
// Without an output directory the result sits next to the source.
func resolveOutputPath(inputPath, outputDir, baseInputDir string, format mdprep.Format) string {
	name := fileutil.TrimMarkdownExt(filepath.Base(inputPath)) + format.Ext()

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}

// isOutputFile reports whether output names a file of the given format
// rather than a directory.
func isOutputFile(output string, format mdprep.Format) bool {
	if output == "" {
		return false
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".md", ".markdown":
		return format == mdprep.FormatMarkdown
	case ".html", ".htm":
		return format == mdprep.FormatHTML
	case ".pdf":
		return format == mdprep.FormatPDF
	}
	return false
}
