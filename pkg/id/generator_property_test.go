package id

import (
	"testing"

	"pgregory.net/rapid"
)

// For any non-regressing clock and any coordinates, ids strictly increase
// and decode back to the coordinates and clock readings that produced them.
func TestPropertyMonotonicAndDecodable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		worker := rapid.Int64Range(0, MaxWorkerID).Draw(t, "worker")
		dc := rapid.Int64Range(0, MaxDatacenterID).Draw(t, "datacenter")
		epoch := rapid.Int64Range(0, DefaultEpochMs).Draw(t, "epoch")
		start := rapid.Int64Range(epoch, epoch+1<<40).Draw(t, "start")

		clock := NewManualClock(start)
		g, err := NewGenerator(worker, dc, WithEpoch(epoch), WithClock(clock))
		if err != nil {
			t.Fatalf("new: %v", err)
		}

		steps := rapid.SliceOfN(rapid.Int64Range(0, 3), 1, 200).Draw(t, "steps")
		var prev ID
		for i, step := range steps {
			now := clock.Advance(step)
			v, err := g.NextID()
			if err != nil {
				t.Fatalf("next at step %d: %v", i, err)
			}
			if i > 0 && v <= prev {
				t.Fatalf("step %d: %d <= %d", i, v, prev)
			}
			prev = v

			p := g.Decode(v)
			if p.WorkerID != worker || p.DatacenterID != dc {
				t.Fatalf("decoded (%d,%d), want (%d,%d)", p.WorkerID, p.DatacenterID, worker, dc)
			}
			if p.TimeMs != now {
				t.Fatalf("decoded time %d, clock %d", p.TimeMs, now)
			}
		}
	})
}

// Any backwards step after a successful call is refused with the exact drift.
func TestPropertyRegressionDrift(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := rapid.Int64Range(DefaultEpochMs+1000, DefaultEpochMs+1<<30).Draw(t, "start")
		back := rapid.Int64Range(1, 1000).Draw(t, "back")

		clock := NewManualClock(start)
		g, err := NewGenerator(0, 0, WithClock(clock))
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		if _, err := g.NextID(); err != nil {
			t.Fatalf("first: %v", err)
		}
		clock.Set(start - back)
		_, err = g.NextID()
		regErr, ok := err.(*ClockRegressionError)
		if !ok {
			t.Fatalf("expected *ClockRegressionError, got %v", err)
		}
		if regErr.DriftMs != back {
			t.Fatalf("drift %d, want %d", regErr.DriftMs, back)
		}
	})
}
