package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-mdprep"
	"github.com/alnah/go-mdprep/internal/config"
	"github.com/alnah/go-mdprep/internal/fileutil"
	"github.com/alnah/go-mdprep/internal/hints"
	"github.com/alnah/go-mdprep/internal/yamlutil"
)

// Sentinel errors for stdin mode.
var ErrStdinPDF = errors.New("PDF output from stdin requires --output")

// stdinArg selects stdin as input and stdout as output.
const stdinArg = "-"

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseFlags(args, env.Stderr)
	if err == nil {
		err = execute(ctx, flags, positional, env)
	}
	if err != nil {
		configName := ""
		if flags != nil {
			configName = flags.config
		}
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, configName))
	}
	return exitCodeFor(err)
}

// execute runs a parsed command line.
func execute(ctx context.Context, flags *cliFlags, args []string, env *Environment) error {
	if flags.help {
		printUsage(env.Stdout)
		return nil
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "mdprep %s\n", Version)
		return nil
	}

	cfg, err := loadConfig(flags.config)
	if err != nil {
		return err
	}
	if err := mergeFlags(cfg, flags); err != nil {
		return err
	}

	if flags.printConfig {
		data, err := yamlutil.Encode(cfg)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(data)
		return err
	}

	logger := newLogger(env.Stderr, flags.quiet, flags.verbose, env.NoColor)
	if env.SetMaxProcs != nil {
		env.SetMaxProcs(func(format string, a ...any) {
			logger.Debug().Msgf(format, a...)
		})
	}

	input, err := resolveInput(args, cfg)
	if err != nil {
		return err
	}

	opts, err := preparerOptions(cfg, logger)
	if err != nil {
		return err
	}
	params := prepareParams{
		format: mdprep.Format(cfg.Output.Format),
		title:  cfg.Render.Title,
	}

	output := flags.output
	if output == "" && input != stdinArg {
		output = cfg.Output.DefaultDir
	}

	if input == stdinArg {
		return prepareStdin(ctx, env, opts, params, output)
	}

	files, err := discoverFiles(input, output, params.format)
	if err != nil {
		return err
	}

	pool, err := env.NewPool(mdprep.ResolvePoolSize(cfg.Batch.Workers), opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("closing preparers")
		}
	}()

	logger.Debug().
		Int("files", len(files)).
		Int("workers", pool.Size()).
		Str("format", string(params.format)).
		Msg("preparing")

	results := prepareBatch(ctx, pool, files, params)
	summary := logResults(logger, results)
	if summary.Failed == 0 {
		return nil
	}
	if len(results) == 1 {
		return results[0].Err
	}
	return fmt.Errorf("%w: %d of %d", ErrBatchFailed, summary.Failed, len(results))
}

// loadConfig loads the named config, or the defaults when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(name)
}

// mergeFlags applies flags over cfg. CLI flags take priority over config values.
func mergeFlags(cfg *config.Config, f *cliFlags) error {
	if f.format != "" {
		format, err := mdprep.ParseFormat(f.format)
		if err != nil {
			return err
		}
		cfg.Output.Format = string(format)
	}
	if f.indexMatch != "" {
		cfg.Index.Match = f.indexMatch
	}
	if f.indexSort != "" {
		cfg.Index.Sort = f.indexSort
	}
	if f.lang != "" {
		cfg.Index.Language = f.lang
	}
	if f.title != "" {
		cfg.Render.Title = f.title
	}
	if f.timeout != "" {
		cfg.Render.Timeout = f.timeout
	}
	if f.workers != 0 {
		cfg.Batch.Workers = f.workers
	}
	return cfg.Validate()
}

// resolveInput picks the positional input or the configured default directory.
func resolveInput(args []string, cfg *config.Config) (string, error) {
	switch len(args) {
	case 0:
		if cfg.Input.DefaultDir == "" {
			return "", ErrNoInput
		}
		return cfg.Input.DefaultDir, nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
}

// preparerOptions converts cfg into library options.
func preparerOptions(cfg *config.Config, logger zerolog.Logger) ([]mdprep.Option, error) {
	opts := []mdprep.Option{
		mdprep.WithLogger(logger),
		mdprep.WithIndexMatch(mdprep.IndexMatch(cfg.Index.Match)),
		mdprep.WithIndexSort(mdprep.SortOrder(cfg.Index.Sort)),
		mdprep.WithCollationLanguage(cfg.Index.Language),
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, mdprep.WithTimeout(timeout))
	}
	return opts, nil
}

// prepareStdin prepares stdin and writes to output, or stdout when output is empty.
func prepareStdin(ctx context.Context, env *Environment, opts []mdprep.Option, params prepareParams, output string) error {
	if params.format == mdprep.FormatPDF && output == "" {
		return ErrStdinPDF
	}

	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	pool, err := env.NewPool(1, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = pool.Close() }()

	prep := pool.Acquire()
	if prep == nil {
		return ErrServiceInit
	}
	defer pool.Release(prep)

	res, err := prep.Prepare(ctx, mdprep.Input{
		Markdown: string(content),
		Title:    params.title,
		Format:   params.format,
	})
	if err != nil {
		return err
	}

	data := outputBytes(res, params.format)
	if output != "" {
		return writeOutput(output, data)
	}
	if _, err := env.Stdout.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, mdprep.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, mdprep.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		if configName != "" && !fileutil.IsFilePath(configName) {
			return hints.ForConfigNotFound(config.SearchPaths(configName))
		}
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, ErrOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, ErrStdinPDF):
		return hints.ForStdinPDF()
	case errors.Is(err, mdprep.ErrInvalidFormat):
		return hints.ForChoice(config.Formats)
	case errors.Is(err, mdprep.ErrInvalidLanguage):
		return hints.ForLanguage()
	case errors.Is(err, config.ErrInvalidValue):
		return hintForField(err.Error())
	}
	return ""
}

// hintForField maps a config validation message to a hint by field name.
func hintForField(msg string) string {
	switch {
	case strings.Contains(msg, "index.language"):
		return hints.ForLanguage()
	case strings.Contains(msg, "render.timeout"):
		return hints.ForTimeout()
	}
	return ""
}
