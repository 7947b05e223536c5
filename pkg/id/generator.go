package id

import (
	"sync"

	logpkg "github.com/rzbill/flake/pkg/log"
)

// Generator issues IDs for one (datacenter, worker) pair. It is safe for
// concurrent use; NextID calls are serialized.
type Generator struct {
	mu       sync.Mutex
	lastMs   int64
	sequence uint16

	epochMs      int64
	workerID     int64
	datacenterID int64
	clock        Clock
	logger       logpkg.Logger
}

type options struct {
	epochMs int64
	clock   Clock
	logger  logpkg.Logger
}

// Option configures a Generator.
type Option func(*options)

// WithEpoch sets the reference instant subtracted from the clock, in ms.
func WithEpoch(ms int64) Option { return func(o *options) { o.epochMs = ms } }

// WithClock replaces the system clock.
func WithClock(c Clock) Option { return func(o *options) { o.clock = c } }

// WithLogger sets the logger used for construction and resolver messages.
func WithLogger(l logpkg.Logger) Option { return func(o *options) { o.logger = l } }

func buildOptions(opts []Option) options {
	o := options{epochMs: DefaultEpochMs, clock: SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))
	}
	return o
}

// NewGenerator returns a Generator for explicit node coordinates.
// Out-of-range coordinates or an epoch ahead of the clock yield a
// *ConfigurationError.
func NewGenerator(workerID, datacenterID int64, opts ...Option) (*Generator, error) {
	return newGenerator(workerID, datacenterID, buildOptions(opts))
}

// NewAutoGenerator derives node coordinates from r. A nil r uses a
// HostResolver logging to the generator's logger.
func NewAutoGenerator(r Resolver, opts ...Option) (*Generator, error) {
	o := buildOptions(opts)
	if r == nil {
		r = NewHostResolver(WithResolverLogger(o.logger))
	}
	datacenterID := r.DatacenterID(MaxDatacenterID)
	workerID := r.WorkerID(datacenterID, MaxWorkerID)
	return newGenerator(workerID, datacenterID, o)
}

func newGenerator(workerID, datacenterID int64, o options) (*Generator, error) {
	if workerID < 0 || workerID > MaxWorkerID {
		return nil, &ConfigurationError{Field: "worker id", Value: workerID, Max: MaxWorkerID}
	}
	if datacenterID < 0 || datacenterID > MaxDatacenterID {
		return nil, &ConfigurationError{Field: "datacenter id", Value: datacenterID, Max: MaxDatacenterID}
	}
	if now := o.clock.NowMs(); o.epochMs < 0 || o.epochMs > now {
		return nil, &ConfigurationError{Field: "epoch", Value: o.epochMs, Max: now}
	}

	g := &Generator{
		lastMs:       -1,
		epochMs:      o.epochMs,
		workerID:     workerID,
		datacenterID: datacenterID,
		clock:        o.clock,
		logger:       o.logger,
	}
	g.logger.Info("id generator ready",
		logpkg.Int64("worker_id", workerID),
		logpkg.Int64("datacenter_id", datacenterID),
		logpkg.Int64("epoch_ms", o.epochMs),
	)
	return g, nil
}

// NextID returns the next ID. It fails with a *ClockRegressionError when the
// clock reads earlier than the previous call, and with ErrTimestampOverflow
// once the layout is exhausted. State is left untouched on failure.
func (g *Generator) NextID() (ID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.clock.NowMs()
	if t < g.lastMs {
		return 0, &ClockRegressionError{LastMs: g.lastMs, NowMs: t, DriftMs: g.lastMs - t}
	}

	var seq uint16
	if t == g.lastMs {
		seq = (g.sequence + 1) & MaxSequence
		if seq == 0 {
			// saturated: spin until the clock ticks past lastMs
			for t <= g.lastMs {
				t = g.clock.NowMs()
			}
		}
	}

	offset := t - g.epochMs
	if offset < 0 {
		return 0, &ClockRegressionError{LastMs: g.epochMs, NowMs: t, DriftMs: -offset}
	}
	if offset > MaxTimestampOffset {
		return 0, ErrTimestampOverflow
	}

	g.lastMs = t
	g.sequence = seq
	return compose(offset, g.datacenterID, g.workerID, seq), nil
}

// Decode splits an ID using this generator's epoch.
func (g *Generator) Decode(id ID) Parts { return Decode(id, g.epochMs) }

func (g *Generator) WorkerID() int64     { return g.workerID }
func (g *Generator) DatacenterID() int64 { return g.datacenterID }
func (g *Generator) Epoch() int64        { return g.epochMs }
