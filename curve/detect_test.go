package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectProblemsJump(t *testing.T) {
	t.Parallel()
	in := Curve{
		{Frame: 1, X: 0, Y: 0},
		{Frame: 2, X: 0, Y: 0},
		{Frame: 3, X: 0, Y: 0},
		{Frame: 4, X: 100, Y: 100},
		{Frame: 5, X: 0, Y: 0},
	}
	problems := DetectProblems(in)
	require.NotEmpty(t, problems)

	var jumpAt4 bool
	for _, p := range problems {
		if p.Frame == 4 && (p.Category == ProblemSuddenJump || p.Category == ProblemLargeMovement) {
			jumpAt4 = true
		}
		assert.GreaterOrEqual(t, p.Severity, 0.0)
		assert.LessOrEqual(t, p.Severity, 1.0)
	}
	assert.True(t, jumpAt4, "expected a jump finding at frame 4, got %+v", problems)

	// findings come back ranked worst first
	for i := 1; i < len(problems); i++ {
		assert.GreaterOrEqual(t, problems[i-1].Severity, problems[i].Severity,
			"findings not sorted descending at %d", i)
	}
}

func TestDetectProblemsRequiresFivePoints(t *testing.T) {
	t.Parallel()
	in := Curve{
		{Frame: 1, X: 0}, {Frame: 2, X: 500}, {Frame: 3, X: 0}, {Frame: 4, X: 500},
	}
	assert.Empty(t, DetectProblems(in))
}

func TestDetectProblemsCleanCurve(t *testing.T) {
	t.Parallel()

	// slow steady drift: no jumps, no spikes, no gaps
	in := make(Curve, 10)
	for i := range in {
		in[i] = Point{Frame: i, X: 0.5 * float64(i), Y: 0.25 * float64(i)}
	}
	assert.Empty(t, DetectProblems(in))
}

func TestDetectLargeMovementBand(t *testing.T) {
	t.Parallel()

	// 15 px/frame sits between the soft and hard jump thresholds
	in := Curve{
		{Frame: 0, X: 0}, {Frame: 1, X: 15}, {Frame: 2, X: 30},
		{Frame: 3, X: 45}, {Frame: 4, X: 60},
	}
	problems := DetectProblems(in)

	var largeMovement, suddenJump int
	for _, p := range problems {
		switch p.Category {
		case ProblemLargeMovement:
			largeMovement++
			assert.InDelta(t, 0.5, p.Severity, 1e-9)
		case ProblemSuddenJump:
			suddenJump++
		}
	}
	assert.Equal(t, 4, largeMovement)
	assert.Zero(t, suddenJump)
}

func TestDetectAccelerationSpike(t *testing.T) {
	t.Parallel()

	// constant position, then sudden motion: velocity steps from 0 to
	// 5 px/frame at frame 3
	in := Curve{
		{Frame: 0, X: 0}, {Frame: 1, X: 0}, {Frame: 2, X: 0},
		{Frame: 3, X: 5}, {Frame: 4, X: 10}, {Frame: 5, X: 15},
	}
	problems := DetectProblems(in)

	var found bool
	for _, p := range problems {
		if p.Category == ProblemHighAcceleration && p.Frame == 3 {
			found = true
			assert.Equal(t, 1.0, p.Severity)
		}
	}
	assert.True(t, found, "expected high acceleration at frame 3, got %+v", problems)
}

func TestDetectJitter(t *testing.T) {
	t.Parallel()

	// points scattering around a fixed centroid instead of moving
	in := Curve{
		{Frame: 0, X: 0, Y: 0}, {Frame: 1, X: 8, Y: 8}, {Frame: 2, X: -8, Y: -8},
		{Frame: 3, X: 8, Y: -8}, {Frame: 4, X: -8, Y: 8}, {Frame: 5, X: 0, Y: 0},
	}
	problems := DetectProblems(in)

	var jitter bool
	for _, p := range problems {
		if p.Category == ProblemStrongJitter || p.Category == ProblemModerateJitter {
			jitter = true
		}
	}
	assert.True(t, jitter, "expected a jitter finding, got %+v", problems)
}

func TestDetectFrameGap(t *testing.T) {
	t.Parallel()
	in := Curve{
		{Frame: 0, X: 0}, {Frame: 1, X: 0.2}, {Frame: 2, X: 0.4},
		{Frame: 8, X: 0.6}, {Frame: 9, X: 0.8},
	}
	problems := DetectProblems(in)

	var gap *Problem
	for i := range problems {
		if problems[i].Category == ProblemFrameGap {
			gap = &problems[i]
		}
	}
	require.NotNil(t, gap, "expected a frame gap finding, got %+v", problems)
	assert.Equal(t, 8, gap.Frame)
	assert.InDelta(t, 0.6, gap.Severity, 1e-9)
}
