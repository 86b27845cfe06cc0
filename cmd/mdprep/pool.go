package main

import (
	"context"

	"github.com/alnah/go-mdprep"
)

// CLIPreparer is the interface for the preparation service.
type CLIPreparer interface {
	Prepare(ctx context.Context, input mdprep.Input) (*mdprep.Result, error)
}

// Compile-time interface implementation check.
var _ CLIPreparer = (*mdprep.Preparer)(nil)

// Pool abstracts preparer pool operations for testability.
type Pool interface {
	Acquire() CLIPreparer
	Release(CLIPreparer)
	Size() int
	Close() error
}

// preparerPool adapts mdprep.PreparerPool to Pool.
type preparerPool struct {
	pool *mdprep.PreparerPool
}

func newPreparerPool(size int, opts ...mdprep.Option) (Pool, error) {
	p, err := mdprep.NewPreparerPool(size, opts...)
	if err != nil {
		return nil, err
	}
	return &preparerPool{pool: p}, nil
}

func (p *preparerPool) Acquire() CLIPreparer {
	prep := p.pool.Acquire()
	if prep == nil {
		return nil
	}
	return prep
}

func (p *preparerPool) Release(c CLIPreparer) {
	if prep, ok := c.(*mdprep.Preparer); ok {
		p.pool.Release(prep)
	}
}

func (p *preparerPool) Size() int    { return p.pool.Size() }
func (p *preparerPool) Close() error { return p.pool.Close() }
