package main

import (
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mdprep"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	NoColor bool

	// NewPool creates the preparer pool used for the run.
	NewPool func(size int, opts ...mdprep.Option) (Pool, error)

	// SetMaxProcs adjusts GOMAXPROCS to the container CPU quota.
	SetMaxProcs func(printf func(format string, args ...any))
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NoColor: os.Getenv("NO_COLOR") != "",
		NewPool: newPreparerPool,
		SetMaxProcs: func(printf func(string, ...any)) {
			// maxprocs.Set only fails on an invalid GOMAXPROCS value, in which
			// case the runtime default stays in effect.
			_, _ = maxprocs.Set(maxprocs.Logger(printf))
		},
	}
}
