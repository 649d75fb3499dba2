package ogimage

import (
	"context"
	"errors"
	"runtime"
	"sync"
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

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("generator pool is closed")

// GeneratorPool manages Generator instances for parallel rendering.
// Each generator has its own browser. Generators are created lazily on
// first acquire to avoid startup delay; fonts are loaded once up front and
// shared by all of them.
type GeneratorPool struct {
	size       int
	opts       []Option
	generators []*Generator
	sem        chan *Generator
	mu         sync.Mutex
	created    int
	closed     bool

	// newGenerator is swapped by tests.
	newGenerator func(opts ...Option) (*Generator, error)
}

// NewGeneratorPool creates a pool with capacity for n generators sharing opts.
// A font directory given through WithFontDir is read here, once.
func NewGeneratorPool(n int, opts ...Option) (*GeneratorPool, error) {
	if n < 1 {
		n = 1
	}

	// Resolve fonts once so every generator embeds the same payloads.
	resolved := &Generator{}
	for _, opt := range opts {
		opt(resolved)
	}
	if resolved.fonts == nil && resolved.cfg.fontDir != "" {
		fonts, err := LoadFonts(resolved.cfg.fontDir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithFonts(fonts))
	}

	return &GeneratorPool{
		size:         n,
		opts:         opts,
		generators:   make([]*Generator, 0, n),
		sem:          make(chan *Generator, n),
		newGenerator: NewGenerator,
	}, nil
}

// Acquire gets a generator from the pool, creating one if needed.
// Blocks until a generator is released or ctx is done.
func (p *GeneratorPool) Acquire(ctx context.Context) (*Generator, error) {
	p.mu.Lock()
	if p.closed {
		// Buffered generators stay readable after close; they are already shut down.
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}

	// Try to get an existing generator (non-blocking)
	select {
	case g := <-p.sem:
		p.mu.Unlock()
		return g, nil
	default:
	}

	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create outside the lock
		g, err := p.newGenerator(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.generators = append(p.generators, g)
		p.mu.Unlock()

		return g, nil
	}
	p.mu.Unlock()

	// All generators created, wait for one to be released
	select {
	case g, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return g, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a generator to the pool.
// The lock is held while sending so Close cannot close the channel
// underneath; the channel has room for every generator, so the send never blocks.
func (p *GeneratorPool) Release(g *Generator) {
	if g == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- g
}

// Close releases all browser resources.
// Returns an aggregated error if multiple generators fail to close.
func (p *GeneratorPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	generators := p.generators
	p.mu.Unlock()

	var errs []error
	for _, g := range generators {
		if err := g.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *GeneratorPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware once automaxprocs has run.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
