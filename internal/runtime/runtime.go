package runtime

import (
	"context"
	"errors"
	"fmt"

	cfgpkg "github.com/rzbill/flake/internal/config"
	"github.com/rzbill/flake/pkg/id"
	logpkg "github.com/rzbill/flake/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger logpkg.Logger
	// Resolver derives coordinates missing from Config.Node. Nil uses the
	// host resolver.
	Resolver id.Resolver
	// Clock overrides the system clock (tests).
	Clock id.Clock
}

// Runtime owns the process-wide generator. It is built once at start and
// passed to every transport.
type Runtime struct {
	gen    *id.Generator
	config cfgpkg.Config
	logger logpkg.Logger
}

// Open validates configuration and constructs the generator.
func Open(opts Options) (*Runtime, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))
	}

	genOpts := []id.Option{
		id.WithEpoch(opts.Config.EpochMs),
		id.WithLogger(logger.WithComponent("generator")),
	}
	if opts.Clock != nil {
		genOpts = append(genOpts, id.WithClock(opts.Clock))
	}

	var (
		gen *id.Generator
		err error
	)
	node := opts.Config.Node
	if node.WorkerID != nil && node.DatacenterID != nil {
		gen, err = id.NewGenerator(*node.WorkerID, *node.DatacenterID, genOpts...)
	} else {
		fallback := opts.Resolver
		if fallback == nil {
			fallback = id.NewHostResolver(id.WithResolverLogger(logger))
		}
		logger.Warn("deriving node coordinates from host; pin node.workerId and node.datacenterId when running more than one instance")
		gen, err = id.NewAutoGenerator(pinnedResolver{node: node, fallback: fallback}, genOpts...)
	}
	if err != nil {
		return nil, err
	}
	return &Runtime{gen: gen, config: opts.Config, logger: logger}, nil
}

// pinnedResolver returns configured coordinates and defers the rest.
type pinnedResolver struct {
	node     cfgpkg.NodeConfig
	fallback id.Resolver
}

func (r pinnedResolver) DatacenterID(max int64) int64 {
	if r.node.DatacenterID != nil {
		return *r.node.DatacenterID
	}
	return r.fallback.DatacenterID(max)
}

func (r pinnedResolver) WorkerID(datacenterID, max int64) int64 {
	if r.node.WorkerID != nil {
		return *r.node.WorkerID
	}
	return r.fallback.WorkerID(datacenterID, max)
}

// Close releases resources. The generator holds none; Close exists so
// callers treat the runtime uniformly.
func (r *Runtime) Close() error { return nil }

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.gen == nil {
		return errors.New("generator not initialized")
	}
	return nil
}

// Generator returns the process-wide generator.
func (r *Runtime) Generator() *id.Generator { return r.gen }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Logger returns the process logger.
func (r *Runtime) Logger() logpkg.Logger { return r.logger }
