package curve

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Problem categories reported by DetectProblems.
const (
	ProblemSuddenJump         = "Sudden Jump"
	ProblemLargeMovement      = "Large Movement"
	ProblemHighAcceleration   = "High Acceleration"
	ProblemMediumAcceleration = "Medium Acceleration"
	ProblemStrongJitter       = "Strong Jitter"
	ProblemModerateJitter     = "Moderate Jitter"
	ProblemFrameGap           = "Frame Gap"
)

// Detection thresholds, in pixels per frame except gap length. Tuned
// for hand-checked tracking footage at HD resolution.
const (
	jumpHardThreshold  = 30.0
	jumpSoftThreshold  = 10.0
	accelHardThreshold = 1.5
	accelSoftThreshold = 0.5
	jitterHardLimit    = 8.0
	jitterSoftLimit    = 3.0

	jitterWindow    = 5
	minDetectPoints = 5
)

// Problem is one finding from DetectProblems. Severity is normalized
// to [0, 1] so findings from different checks rank against each other.
type Problem struct {
	Frame    int     `json:"frame"`
	Category string  `json:"category"`
	Severity float64 `json:"severity"`
	Message  string  `json:"message"`
}

// DetectProblems scans a frame-sorted curve for tracking anomalies:
// sudden jumps, acceleration spikes, jitter and frame gaps. The four
// checks run independently and may each report the same frame. Results
// come back sorted descending by severity. Curves with fewer than five
// points return no findings.
func DetectProblems(c Curve) []Problem {
	if len(c) < minDetectPoints {
		return nil
	}

	var problems []Problem
	problems = append(problems, detectJumps(c)...)
	problems = append(problems, detectAcceleration(c)...)
	problems = append(problems, detectJitter(c)...)
	problems = append(problems, detectFrameGaps(c)...)

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Severity > problems[j].Severity
	})
	return problems
}

// detectJumps flags consecutive-point movement that is implausibly
// large once normalized by the frame gap.
func detectJumps(c Curve) []Problem {
	var out []Problem
	for i := 1; i < len(c); i++ {
		df := float64(c[i].Frame - c[i-1].Frame)
		if df <= 0 {
			continue
		}
		d := c[i].DistanceTo(c[i-1]) / df

		switch {
		case d > jumpHardThreshold:
			out = append(out, Problem{
				Frame:    c[i].Frame,
				Category: ProblemSuddenJump,
				Severity: math.Min(1.0, d/(2*jumpHardThreshold)),
				Message:  fmt.Sprintf("moved %.1f px/frame between frames %d and %d", d, c[i-1].Frame, c[i].Frame),
			})
		case d > jumpSoftThreshold:
			out = append(out, Problem{
				Frame:    c[i].Frame,
				Category: ProblemLargeMovement,
				Severity: math.Min(0.7, d/(3*jumpSoftThreshold)),
				Message:  fmt.Sprintf("moved %.1f px/frame between frames %d and %d", d, c[i-1].Frame, c[i].Frame),
			})
		}
	}
	return out
}

// detectAcceleration flags velocity changes over 3-point windows.
func detectAcceleration(c Curve) []Problem {
	var out []Problem
	for i := 2; i < len(c); i++ {
		df0 := float64(c[i-1].Frame - c[i-2].Frame)
		df1 := float64(c[i].Frame - c[i-1].Frame)
		if df0 <= 0 || df1 <= 0 {
			continue
		}
		v0 := c[i-1].DistanceTo(c[i-2]) / df0
		v1 := c[i].DistanceTo(c[i-1]) / df1
		accel := math.Abs(v1-v0) / ((df0 + df1) / 2)

		switch {
		case accel > accelHardThreshold:
			out = append(out, Problem{
				Frame:    c[i].Frame,
				Category: ProblemHighAcceleration,
				Severity: math.Min(1.0, accel/(2*accelHardThreshold)),
				Message:  fmt.Sprintf("acceleration %.2f px/frame² at frame %d", accel, c[i].Frame),
			})
		case accel > accelSoftThreshold:
			out = append(out, Problem{
				Frame:    c[i].Frame,
				Category: ProblemMediumAcceleration,
				Severity: math.Min(0.7, accel/(3*accelSoftThreshold)),
				Message:  fmt.Sprintf("acceleration %.2f px/frame² at frame %d", accel, c[i].Frame),
			})
		}
	}
	return out
}

// detectJitter flags windows where points scatter around their
// centroid instead of moving through it.
func detectJitter(c Curve) []Problem {
	var out []Problem
	half := jitterWindow / 2
	for i := half; i < len(c)-half; i++ {
		window := c[i-half : i+half+1]

		xs := make([]float64, len(window))
		ys := make([]float64, len(window))
		for j, p := range window {
			xs[j] = p.X
			ys[j] = p.Y
		}
		cx := stat.Mean(xs, nil)
		cy := stat.Mean(ys, nil)

		var dev float64
		for _, p := range window {
			dev += math.Hypot(p.X-cx, p.Y-cy)
		}
		dev /= float64(len(window))

		switch {
		case dev > jitterHardLimit:
			out = append(out, Problem{
				Frame:    c[i].Frame,
				Category: ProblemStrongJitter,
				Severity: math.Min(1.0, dev/(2*jitterHardLimit)),
				Message:  fmt.Sprintf("average deviation %.1f px around frame %d", dev, c[i].Frame),
			})
		case dev > jitterSoftLimit:
			out = append(out, Problem{
				Frame:    c[i].Frame,
				Category: ProblemModerateJitter,
				Severity: math.Min(0.7, dev/(3*jitterSoftLimit)),
				Message:  fmt.Sprintf("average deviation %.1f px around frame %d", dev, c[i].Frame),
			})
		}
	}
	return out
}

// detectFrameGaps flags any break in frame continuity.
func detectFrameGaps(c Curve) []Problem {
	var out []Problem
	for i := 1; i < len(c); i++ {
		gap := c[i].Frame - c[i-1].Frame
		if gap <= 1 {
			continue
		}
		out = append(out, Problem{
			Frame:    c[i].Frame,
			Category: ProblemFrameGap,
			Severity: math.Min(1.0, float64(gap)/10.0),
			Message:  fmt.Sprintf("%d untracked frames between %d and %d", gap-1, c[i-1].Frame, c[i].Frame),
		})
	}
	return out
}
