package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// cliFlags holds all command-line flags.
type cliFlags struct {
	config      string
	output      string
	format      string
	indexMatch  string
	indexSort   string
	lang        string
	title       string
	workers     int
	timeout     string
	quiet       bool
	verbose     bool
	version     bool
	help        bool
	printConfig bool
}

// parseFlags parses args (without the program name) and returns positional args.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("mdprep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cliFlags{}

	// Input/output
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.format, "format", "f", "", "output format: markdown, html, pdf")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF page load timeout (e.g. 30s, 2m)")
	fs.StringVar(&f.title, "title", "", "HTML title (default: file name)")

	// Index
	fs.StringVar(&f.indexMatch, "index-match", "", "index heading detection: substring, exact")
	fs.StringVar(&f.indexSort, "index-sort", "", "index order: bytes, fold, locale")
	fs.StringVar(&f.lang, "lang", "", "collation language for --index-sort locale")

	// Output control
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pass statistics and timing")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config and exit")
	fs.BoolVar(&f.version, "version", false, "show version")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if f.quiet && f.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, fs.Args(), nil
}
