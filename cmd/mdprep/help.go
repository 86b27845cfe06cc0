package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdprep [flags] <input>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Prepare annotated Markdown: numbered notes, Contents, heading anchors,")
	fmt.Fprintln(w, "bold link labels and an Index built from <<Index: term>> markers.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or - for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: markdown, html, pdf")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF page load timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w, "      --title <s>           HTML title (default: file name)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Index:")
	fmt.Fprintln(w, "      --index-match <s>     Heading detection: substring, exact")
	fmt.Fprintln(w, "      --index-sort <s>      Entry order: bytes, fold, locale")
	fmt.Fprintln(w, "      --lang <tag>          Collation language for locale order (e.g. de)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show pass statistics and timing")
	fmt.Fprintln(w, "      --print-config        Print the effective config and exit")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Default outputs: <name>.prepared.md, <name>.html, <name>.pdf")
}
