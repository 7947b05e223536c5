package ids

import (
	"context"
	"errors"
	"fmt"

	"github.com/rzbill/flake/internal/runtime"
	"github.com/rzbill/flake/pkg/id"
	logpkg "github.com/rzbill/flake/pkg/log"
)

// ErrInvalidCount is returned for batch sizes outside [1, MaxBatch].
var ErrInvalidCount = errors.New("invalid id count")

// Node describes the coordinates and epoch of the running generator.
type Node struct {
	WorkerID     int64 `json:"workerId"`
	DatacenterID int64 `json:"datacenterId"`
	EpochMs      int64 `json:"epochMs"`
}

// Service issues and decodes ids.
type Service struct {
	rt     *runtime.Runtime
	gen    *id.Generator
	logger logpkg.Logger
}

// New constructs a Service with a discarding logger.
func New(rt *runtime.Runtime) *Service {
	return NewWithLogger(rt, logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{})))
}

// NewWithLogger constructs a Service with the provided logger.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger) *Service {
	return &Service{rt: rt, gen: rt.Generator(), logger: logger}
}

// Next issues one id.
func (s *Service) Next(ctx context.Context) (id.ID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	v, err := s.gen.NextID()
	if err != nil {
		s.logFailure(err)
		return 0, fmt.Errorf("next id: %w", err)
	}
	return v, nil
}

// NextBatch issues n ids in ascending order. A failure part way through
// discards the partial batch.
func (s *Service) NextBatch(ctx context.Context, n int) ([]id.ID, error) {
	if max := s.rt.Config().MaxBatch; n < 1 || n > max {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidCount, n, max)
	}
	out := make([]id.ID, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := s.gen.NextID()
		if err != nil {
			s.logFailure(err)
			return nil, fmt.Errorf("next id %d of %d: %w", i+1, n, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Decode splits v using this node's epoch.
func (s *Service) Decode(v id.ID) id.Parts { return s.gen.Decode(v) }

// Node returns the coordinates of the running generator.
func (s *Service) Node() Node {
	return Node{
		WorkerID:     s.gen.WorkerID(),
		DatacenterID: s.gen.DatacenterID(),
		EpochMs:      s.gen.Epoch(),
	}
}

func (s *Service) logFailure(err error) {
	var regErr *id.ClockRegressionError
	if errors.As(err, &regErr) {
		s.logger.Error("clock moved backwards; refusing to issue ids",
			logpkg.Int64("drift_ms", regErr.DriftMs),
			logpkg.Int64("last_ms", regErr.LastMs),
		)
		return
	}
	s.logger.Error("id generation failed", logpkg.Err(err))
}
