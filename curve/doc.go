// Package curve implements the numerical core of a curve-tracking
// editor: smoothing, filtering, gap filling, extrapolation, problem
// detection and batch geometric transforms over per-frame 2D tracking
// points.
//
// Every operation is a pure function: it takes a read-only view of a
// point sequence plus a selection and parameter struct, and returns a
// freshly allocated sequence with only the targeted points modified.
// Inputs are never mutated and no references are retained across
// calls, so independent calls on independent snapshots are safe to run
// concurrently without locking.
//
// Degenerate inputs (windows too small, singular fits, out-of-range
// indices) never produce errors. Operations return their input
// unchanged, or fall back to a simpler method, and report what
// happened through the optional DiagnosticSink in each config.
package curve
