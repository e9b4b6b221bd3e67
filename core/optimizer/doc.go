// Package optimizer turns an unordered task batch and per-day capacity
// constraints into concrete daily hour allocations and planned start/end
// timestamps. Strategies share one forward allocation template parameterized
// by an ordering policy; a deadline-anchored backward allocator, a
// round-robin slicer and two ordering metaheuristics (genetic, Monte Carlo)
// complete the family. Strategies are resolved by name through New.
//
// The package is pure computation: it performs no I/O, receives tasks and
// pre-existing day commitments from the caller and returns scheduled copies
// plus a failure list. Concurrent runs against the same task store must be
// serialized by the caller.
package optimizer
