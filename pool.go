package mdprep

import (
	"errors"
	"runtime"
	"sync"

	"github.com/alnah/go-mdprep/internal/pipeline"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// PreparerPool manages Preparers for parallel processing.
// Each Preparer owns its browser, so PDF rendering runs truly in parallel.
// Preparers are created lazily on first acquire.
type PreparerPool struct {
	size      int
	cfg       preparerConfig
	opts      pipeline.Options
	preparers []*Preparer
	sem       chan *Preparer
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewPreparerPool creates a pool with capacity for n Preparers sharing opts.
// Options are validated once here.
func NewPreparerPool(n int, opts ...Option) (*PreparerPool, error) {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	cfg, popts, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	return &PreparerPool{
		size:      n,
		cfg:       cfg,
		opts:      popts,
		preparers: make([]*Preparer, 0, n),
		sem:       make(chan *Preparer, n),
	}, nil
}

// Acquire gets a Preparer from the pool, creating one if needed.
// Blocks if all Preparers are in use.
func (p *PreparerPool) Acquire() *Preparer {
	select {
	case prep := <-p.sem:
		return prep
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		prep := newPreparer(p.cfg, p.opts)
		p.preparers = append(p.preparers, prep)
		p.mu.Unlock()
		return prep
	}
	p.mu.Unlock()

	return <-p.sem
}

// Release returns a Preparer to the pool.
func (p *PreparerPool) Release(prep *Preparer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- prep
}

// Close releases all browser resources.
// Returns an aggregated error if several Preparers fail to close.
func (p *PreparerPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	preparers := p.preparers
	p.mu.Unlock()

	var errs []error
	for _, prep := range preparers {
		if err := prep.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *PreparerPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// An explicit worker count wins; otherwise half of GOMAXPROCS, clamped
// to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
