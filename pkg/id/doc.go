// Package id generates 64-bit, time-ordered identifiers without any
// coordination between processes.
//
// # Format
//
// An ID is a uint64 whose most significant bit is always zero. The remaining
// 63 bits are, from high to low:
//
//	[41 bits ms since epoch][5 bits datacenter][5 bits worker][12 bits sequence]
//
// Numeric order follows creation order for IDs issued by one Generator.
//
// # Monotonicity
//
// The Generator serializes NextID with a mutex:
//   - If the clock regresses relative to the last issued ID, NextID fails
//     with a *ClockRegressionError. It never pins or compensates.
//   - If 4096 IDs were already issued in the current millisecond, NextID
//     busy-spins on the clock until the next millisecond.
//
// # Node coordinates
//
// Uniqueness across processes relies on every running Generator having a
// distinct (datacenter, worker) pair. Nothing here enforces that; two
// generators sharing coordinates can and will emit the same IDs. Resolvers
// that derive coordinates from the host (HostResolver) are a convenience
// for single-host or small fleets, not an allocator.
//
// Usage
//
//	g, err := id.NewGenerator(1, 1)
//	if err != nil { ... }
//	newID, err := g.NextID()
//	parts := g.Decode(newID)
package id
