package mdprep

import "github.com/alnah/go-mdprep/internal/pipeline"

// Transform prepares markdown with the default options: substring Index
// detection and byte-order Index sorting. It performs no I/O.
// The only error is ErrHeadingMismatch.
func Transform(markdown string) (string, error) {
	res, err := pipeline.Transform(markdown, pipeline.DefaultOptions())
	if err != nil {
		return "", err
	}
	return res.Markdown, nil
}
