// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdprep/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors during PDF output.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "or use --format html")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the timeout for slow renders.
func ForTimeout() string {
	return format("for large documents, use --timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config path that was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(slashed(p), ".config/go-mdprep") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForChoice lists the accepted values of a flag or config field.
func ForChoice(valid []string) string {
	if len(valid) == 0 {
		return ""
	}
	return format("valid values: " + strings.Join(valid, ", "))
}

// ForLanguage returns a hint for unparseable collation languages.
func ForLanguage() string {
	return format("use a BCP 47 tag such as en, de, fr-CA")
}

// ForStdinPDF explains that PDF output cannot go to stdout.
func ForStdinPDF() string {
	return format("use --output file.pdf when reading from stdin")
}

// slashed normalizes Windows separators for matching.
func slashed(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
