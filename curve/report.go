package curve

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// DetectionRun bundles one DetectProblems pass with enough metadata to
// store, compare or display it: a unique run ID, when it ran, what it
// saw and a per-category tally.
type DetectionRun struct {
	RunID          string         `json:"run_id"`
	CreatedAt      time.Time      `json:"created_at"`
	PointCount     int            `json:"point_count"`
	Problems       []Problem      `json:"problems"`
	CategoryCounts map[string]int `json:"category_counts"`
}

// NewDetectionRun runs problem detection over a frame-sorted curve and
// wraps the findings in a report.
func NewDetectionRun(c Curve) *DetectionRun {
	problems := DetectProblems(c)

	counts := make(map[string]int)
	for _, p := range problems {
		counts[p.Category]++
	}
	return &DetectionRun{
		RunID:          uuid.New().String(),
		CreatedAt:      time.Now().UTC(),
		PointCount:     len(c),
		Problems:       problems,
		CategoryCounts: counts,
	}
}

// WorstProblem returns the highest-severity finding, or nil when the
// run is clean.
func (r *DetectionRun) WorstProblem() *Problem {
	if len(r.Problems) == 0 {
		return nil
	}
	// findings are already sorted descending by severity
	return &r.Problems[0]
}

// CurveStatistics summarizes the motion of a curve for display next to
// detection results.
type CurveStatistics struct {
	PointCount    int     `json:"point_count"`
	FrameSpan     int     `json:"frame_span"`
	FrameCoverage float64 `json:"frame_coverage"`
	MeanVelocity  float64 `json:"mean_velocity"`
	PeakVelocity  float64 `json:"peak_velocity"`
}

// ComputeCurveStatistics computes motion statistics for a frame-sorted
// curve. Velocities are per-frame distances normalized by frame gap;
// coverage is the fraction of frames in the span that have a point.
func ComputeCurveStatistics(c Curve) CurveStatistics {
	s := CurveStatistics{PointCount: len(c)}
	if len(c) < 2 {
		s.FrameCoverage = float64(len(c))
		return s
	}

	s.FrameSpan = c[len(c)-1].Frame - c[0].Frame + 1
	if s.FrameSpan > 0 {
		s.FrameCoverage = float64(len(c)) / float64(s.FrameSpan)
	}

	velocities := make([]float64, 0, len(c)-1)
	for i := 1; i < len(c); i++ {
		df := float64(c[i].Frame - c[i-1].Frame)
		if df <= 0 {
			continue
		}
		v := c[i].DistanceTo(c[i-1]) / df
		velocities = append(velocities, v)
		s.PeakVelocity = math.Max(s.PeakVelocity, v)
	}
	if len(velocities) > 0 {
		s.MeanVelocity = stat.Mean(velocities, nil)
	}
	return s
}
