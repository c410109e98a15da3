package detailpage

import (
	"runtime"
	"sync"

	"go.uber.org/multierr"
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

// ExporterPool manages a pool of Exporter instances for parallel export.
// Each exporter has its own browser instance, enabling true parallelism.
// Exporters are created lazily on first acquire to avoid startup delay.
type ExporterPool struct {
	size      int
	newFn     func() Exporter
	exporters []Exporter
	sem       chan Exporter
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewExporterPool creates a pool with capacity for n RodExporter instances
// sharing opts. Exporters are created lazily when acquired.
// Returns ErrInvalidWidth if opts carry an invalid viewport width.
func NewExporterPool(n int, opts ...ExportOption) (*ExporterPool, error) {
	cfg, err := newExportConfig(opts)
	if err != nil {
		return nil, err
	}
	return newExporterPool(n, func() Exporter { return newRodExporter(cfg) }), nil
}

func newExporterPool(n int, newFn func() Exporter) *ExporterPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	return &ExporterPool{
		size:      n,
		newFn:     newFn,
		exporters: make([]Exporter, 0, n),
		sem:       make(chan Exporter, n),
	}
}

// Acquire gets an exporter from the pool, creating one if needed.
// Blocks if all exporters are in use.
func (p *ExporterPool) Acquire() Exporter {
	// Try to get an existing exporter (non-blocking)
	select {
	case e := <-p.sem:
		return e
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create outside the lock
		e := p.newFn()

		p.mu.Lock()
		p.exporters = append(p.exporters, e)
		p.mu.Unlock()

		return e
	}
	p.mu.Unlock()

	// All exporters created, wait for one to be released
	return <-p.sem
}

// Release returns an exporter to the pool.
// The lock is released before sending to avoid deadlock when channel is full.
func (p *ExporterPool) Release(e Exporter) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- e
}

// Close releases all browser resources.
// Returns an aggregated error if exporters fail to close.
func (p *ExporterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	exporters := p.exporters
	p.mu.Unlock()

	var err error
	for _, e := range exporters {
		err = multierr.Append(err, e.Close())
	}
	return err
}

// Size returns the pool capacity.
func (p *ExporterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the optimal pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
