package id

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, worker, dc int64, clock Clock) *Generator {
	t.Helper()
	g, err := NewGenerator(worker, dc, WithClock(clock))
	require.NoError(t, err)
	return g
}

func TestNextIDStrictlyIncreasing(t *testing.T) {
	clock := NewManualClock(DefaultEpochMs + 10)
	g := newTestGenerator(t, 3, 7, clock)

	var prev ID
	for i := 0; i < 10000; i++ {
		if i%7 == 0 {
			clock.Advance(1)
		}
		next, err := g.NextID()
		require.NoError(t, err)
		if i > 0 && next <= prev {
			t.Fatalf("id %d not greater than %d at call %d", next, prev, i)
		}
		prev = next
	}
}

func TestDecodeMatchesCoordinates(t *testing.T) {
	clock := NewManualClock(DefaultEpochMs + 5000)
	g := newTestGenerator(t, 17, 29, clock)

	v, err := g.NextID()
	require.NoError(t, err)
	p := g.Decode(v)
	assert.Equal(t, int64(17), p.WorkerID)
	assert.Equal(t, int64(29), p.DatacenterID)
	assert.Equal(t, int64(5000), p.TimestampOffsetMs)
	assert.Equal(t, DefaultEpochMs+5000, p.TimeMs)
	assert.Equal(t, uint64(0), v.Uint64()>>63)
}

func TestNewGeneratorRejectsOutOfRange(t *testing.T) {
	clock := NewManualClock(DefaultEpochMs)
	tests := []struct {
		name   string
		worker int64
		dc     int64
		field  string
	}{
		{"worker too large", 32, 0, "worker id"},
		{"worker negative", -1, 0, "worker id"},
		{"datacenter negative", 0, -1, "datacenter id"},
		{"datacenter too large", 0, 32, "datacenter id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator(tt.worker, tt.dc, WithClock(clock))
			require.Nil(t, g)
			require.ErrorIs(t, err, ErrInvalidConfig)
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	_, err := NewGenerator(MaxWorkerID, MaxDatacenterID, WithClock(clock))
	require.NoError(t, err)
}

func TestNewGeneratorRejectsFutureEpoch(t *testing.T) {
	clock := NewManualClock(1000)
	_, err := NewGenerator(0, 0, WithClock(clock), WithEpoch(1001))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

// countingClock reads frozen for the first n reads, then one ms later.
func countingClock(frozen int64, n int64) (Clock, *atomic.Int64) {
	var reads atomic.Int64
	return ClockFunc(func() int64 {
		if reads.Add(1) <= n {
			return frozen
		}
		return frozen + 1
	}), &reads
}

func TestSequenceSaturationWaitsForNextMillisecond(t *testing.T) {
	const start = DefaultEpochMs + 42
	// one read for construction, 4096 ids, plus the read that saturates
	clock, _ := countingClock(start, 1+MaxSequence+1+1)
	g := newTestGenerator(t, 1, 1, clock)

	sameMs := map[int64]bool{}
	var prev ID
	for i := 0; i < 5000; i++ {
		v, err := g.NextID()
		require.NoError(t, err)
		if i > 0 {
			require.Greater(t, v, prev)
		}
		prev = v

		p := g.Decode(v)
		if p.TimestampOffsetMs == 42 {
			require.False(t, sameMs[p.Sequence], "sequence %d repeated", p.Sequence)
			sameMs[p.Sequence] = true
		} else {
			require.Equal(t, int64(43), p.TimestampOffsetMs)
		}
	}
	assert.Len(t, sameMs, MaxSequence+1)

	last := g.Decode(prev)
	assert.Equal(t, int64(43), last.TimestampOffsetMs)
	assert.Equal(t, int64(5000-4096-1), last.Sequence)
}

func TestClockRegressionReportsDrift(t *testing.T) {
	clock := NewManualClock(DefaultEpochMs + 100)
	g := newTestGenerator(t, 1, 1, clock)

	first, err := g.NextID()
	require.NoError(t, err)

	clock.Set(DefaultEpochMs + 99)
	v, err := g.NextID()
	require.Zero(t, v)
	require.ErrorIs(t, err, ErrClockRegression)
	var regErr *ClockRegressionError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, int64(1), regErr.DriftMs)
	assert.Equal(t, DefaultEpochMs+100, regErr.LastMs)

	// state is untouched: the same millisecond continues its sequence
	clock.Set(DefaultEpochMs + 100)
	next, err := g.NextID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), g.Decode(next).Sequence)
	assert.Greater(t, next, first)
}

func TestTwitterEpochScenario(t *testing.T) {
	const epoch int64 = 1288834974657
	clock := NewManualClock(epoch + 1000)
	g, err := NewGenerator(1, 1, WithEpoch(epoch), WithClock(clock))
	require.NoError(t, err)

	a, err := g.NextID()
	require.NoError(t, err)
	pa := g.Decode(a)
	assert.Equal(t, int64(1000), pa.TimestampOffsetMs)
	assert.Equal(t, int64(0), pa.Sequence)
	assert.Equal(t, ID(1000<<22|1<<17|1<<12), a)

	b, err := g.NextID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), g.Decode(b).Sequence)
	assert.Greater(t, b, a)
}

func TestTimestampOverflow(t *testing.T) {
	clock := NewManualClock(MaxTimestampOffset + 1)
	g, err := NewGenerator(0, 0, WithEpoch(0), WithClock(clock))
	require.NoError(t, err)
	_, err = g.NextID()
	require.True(t, errors.Is(err, ErrTimestampOverflow))

	clock.Set(MaxTimestampOffset)
	_, err = g.NextID()
	require.NoError(t, err)
}

// Generators sharing coordinates are not coordinated; equal clocks yield
// equal ids. Assigning distinct coordinates is the deployment's job.
func TestSharedCoordinatesCollide(t *testing.T) {
	clock := NewManualClock(DefaultEpochMs + 7)
	a := newTestGenerator(t, 4, 4, clock)
	b := newTestGenerator(t, 4, 4, clock)

	x, err := a.NextID()
	require.NoError(t, err)
	y, err := b.NextID()
	require.NoError(t, err)
	assert.Equal(t, x, y)
}

func TestConcurrentNextIDUnique(t *testing.T) {
	g, err := NewGenerator(2, 3)
	require.NoError(t, err)

	const workers, perWorker = 8, 2000
	results := make([][]ID, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			out := make([]ID, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				v, err := g.NextID()
				if err != nil {
					t.Errorf("next: %v", err)
					return
				}
				out = append(out, v)
			}
			results[w] = out
		}(w)
	}
	wg.Wait()

	seen := make(map[ID]struct{}, workers*perWorker)
	for _, out := range results {
		for i, v := range out {
			if i > 0 {
				require.Greater(t, v, out[i-1], "per-goroutine order")
			}
			_, dup := seen[v]
			require.False(t, dup, "duplicate id %d", v)
			seen[v] = struct{}{}
		}
	}
	assert.Len(t, seen, workers*perWorker)
}
