package curve

import (
	"math"
	"sort"
)

// Status is informational metadata attached to a point by the tool
// that produced it. It is written by operations that synthesize points
// but never read by any of the math.
type Status int

const (
	StatusNormal Status = iota
	StatusInterpolated
	StatusKeyframe
	StatusTracked
	StatusEndframe
)

// String returns the lowercase name used in exports and messages.
func (s Status) String() string {
	switch s {
	case StatusInterpolated:
		return "interpolated"
	case StatusKeyframe:
		return "keyframe"
	case StatusTracked:
		return "tracked"
	case StatusEndframe:
		return "endframe"
	default:
		return "normal"
	}
}

// Point is a single tracked position on the timeline. Frame numbers
// are unique within a curve.
type Point struct {
	Frame  int     `json:"frame"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Status Status  `json:"status,omitempty"`
}

// DistanceTo returns the Euclidean distance to other.
func (p Point) DistanceTo(other Point) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Vec2 is a bare 2D position used for transform pivots.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve is an ordered sequence of tracked points. Frame-range
// operations (gap filling, extrapolation, problem detection) require
// the sequence sorted ascending by frame; index-based operations work
// on positions and accept any order.
type Curve []Point

// Clone returns an independent copy of the curve.
func (c Curve) Clone() Curve {
	if c == nil {
		return nil
	}
	out := make(Curve, len(c))
	copy(out, c)
	return out
}

// SortedByFrame returns a copy of the curve sorted ascending by frame.
// Callers use this to satisfy the sort contract of the frame-range
// operations without mutating their own data.
func (c Curve) SortedByFrame() Curve {
	out := c.Clone()
	sort.Slice(out, func(i, j int) bool { return out[i].Frame < out[j].Frame })
	return out
}

// IsSortedByFrame reports whether frames are in ascending order.
func (c Curve) IsSortedByFrame() bool {
	for i := 1; i < len(c); i++ {
		if c[i].Frame < c[i-1].Frame {
			return false
		}
	}
	return true
}

// FrameIndex returns the position of the point with the given frame,
// or -1 if the curve has no such point.
func (c Curve) FrameIndex(frame int) int {
	for i, p := range c {
		if p.Frame == frame {
			return i
		}
	}
	return -1
}

// IndexSet selects points by position (0-based offsets into the
// current sequence), as opposed to frame numbers.
type IndexSet map[int]struct{}

// NewIndexSet builds a set from the given positions.
func NewIndexSet(indices ...int) IndexSet {
	s := make(IndexSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// IndexRange builds a set covering [start, end] inclusive.
func IndexRange(start, end int) IndexSet {
	s := make(IndexSet)
	for i := start; i <= end; i++ {
		s[i] = struct{}{}
	}
	return s
}

// Contains reports whether position i is selected.
func (s IndexSet) Contains(i int) bool {
	_, ok := s[i]
	return ok
}

// Sorted returns the selected positions in ascending order.
func (s IndexSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// validSorted returns the selected positions that fall inside a curve
// of length n, ascending. Out-of-range positions are dropped silently.
func (s IndexSet) validSorted(n int) []int {
	out := make([]int, 0, len(s))
	for i := range s {
		if i >= 0 && i < n {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// mergePoints overlays generated points onto a curve by frame number
// and returns the result re-sorted by frame. A generated point
// replaces an existing point at the same frame unless preserveExisting
// is set, in which case the existing point wins.
func mergePoints(c Curve, generated []Point, preserveExisting bool) Curve {
	byFrame := make(map[int]Point, len(c)+len(generated))
	for _, p := range c {
		byFrame[p.Frame] = p
	}
	for _, p := range generated {
		if _, exists := byFrame[p.Frame]; exists && preserveExisting {
			continue
		}
		byFrame[p.Frame] = p
	}

	out := make(Curve, 0, len(byFrame))
	for _, p := range byFrame {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Frame < out[j].Frame })
	return out
}
