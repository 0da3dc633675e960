package curve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedianFilterRemovesSpike(t *testing.T) {
	t.Parallel()
	in := Curve{
		{Frame: 0, X: 1, Y: 1}, {Frame: 1, X: 2, Y: 2}, {Frame: 2, X: 500, Y: 500},
		{Frame: 3, X: 4, Y: 4}, {Frame: 4, X: 5, Y: 5},
	}
	out := Filter(in, NewIndexSet(2), FilterConfig{Method: FilterMedian, WindowSize: 3})

	// median of {2, 500, 4} is 4
	assert.Equal(t, 4.0, out[2].X)
	assert.Equal(t, 4.0, out[2].Y)
	assert.Equal(t, in[2].Frame, out[2].Frame)
}

func TestMedianFilterEvenWindowTakesMiddle(t *testing.T) {
	t.Parallel()

	// clamped at the boundary the window has 2 points; element len/2
	// is taken directly, never an average of the two middles
	in := Curve{{Frame: 0, X: 10}, {Frame: 1, X: 20}, {Frame: 2, X: 30}}
	out := Filter(in, NewIndexSet(0), FilterConfig{Method: FilterMedian, WindowSize: 3})

	// sorted window {10, 20}, middle element index 1
	assert.Equal(t, 20.0, out[0].X)
}

func TestMedianFilterIdempotentOnMonotonic(t *testing.T) {
	t.Parallel()

	// a strictly monotonic sequence is a fixed point of the 3-wide
	// median, so a second application changes nothing
	in := Curve{
		{Frame: 0, X: 1, Y: 10}, {Frame: 1, X: 2, Y: 20}, {Frame: 2, X: 3, Y: 30},
		{Frame: 3, X: 4, Y: 40}, {Frame: 4, X: 5, Y: 50},
	}
	cfg := FilterConfig{Method: FilterMedian, WindowSize: 3}
	all := IndexRange(0, 4)

	once := Filter(in, all, cfg)
	twice := Filter(once, all, cfg)
	assert.Empty(t, cmp.Diff(once, twice))
}

func TestFilterAliasesMatchSmoothing(t *testing.T) {
	t.Parallel()
	in := noisy(9, 50)
	all := IndexRange(0, 8)

	t.Run("average", func(t *testing.T) {
		filtered := Filter(in, all, FilterConfig{Method: FilterAverage, WindowSize: 5})
		smoothed := Smooth(in, all, SmoothConfig{Method: SmoothMovingAverage, WindowSize: 5})
		assert.Empty(t, cmp.Diff(smoothed, filtered))
	})

	t.Run("gaussian", func(t *testing.T) {
		filtered := Filter(in, all, FilterConfig{Method: FilterGaussian, WindowSize: 5, Sigma: 1.5})
		smoothed := Smooth(in, all, SmoothConfig{Method: SmoothGaussian, WindowSize: 5, Sigma: 1.5})
		assert.Empty(t, cmp.Diff(smoothed, filtered))
	})
}

func TestButterworthWritesOnlySelected(t *testing.T) {
	t.Parallel()
	in := Curve{
		{Frame: 0, X: 0}, {Frame: 1, X: 10}, {Frame: 2, X: 0},
		{Frame: 3, X: 10}, {Frame: 4, X: 0}, {Frame: 5, X: 10},
	}
	out := Filter(in, NewIndexSet(1, 4), FilterConfig{Method: FilterButterworth, Cutoff: 0.5, Order: 1})

	// indices 2 and 3 are inside the contiguous hull and feed the
	// passes, but only the selection is written back
	assert.Equal(t, in[2].X, out[2].X)
	assert.Equal(t, in[3].X, out[3].X)
	assert.Equal(t, in[0].X, out[0].X)
	assert.Equal(t, in[5].X, out[5].X)
	assert.NotEqual(t, in[1].X, out[1].X)
	assert.NotEqual(t, in[4].X, out[4].X)
}

func TestButterworthFlattensOscillation(t *testing.T) {
	t.Parallel()
	in := make(Curve, 20)
	for i := range in {
		x := 0.0
		if i%2 == 1 {
			x = 10.0
		}
		in[i] = Point{Frame: i, X: x}
	}

	out := Filter(in, IndexRange(0, 19), FilterConfig{Method: FilterButterworth, Cutoff: 0.5, Order: 1})

	// interior values settle near the oscillation midpoint
	for i := 5; i < 15; i++ {
		require.InDelta(t, 5.0, out[i].X, 4.0, "index %d not attenuated: %v", i, out[i].X)
	}
}

func TestButterworthInvalidCutoff(t *testing.T) {
	t.Parallel()
	in := ramp(6, 1)

	var diags []Diagnostic
	out := Filter(in, IndexRange(0, 5), FilterConfig{
		Method:       FilterButterworth,
		Cutoff:       0,
		OnDiagnostic: CollectDiagnostics(&diags),
	})

	assert.Empty(t, cmp.Diff(in, out))
	require.NotEmpty(t, diags)
	assert.Equal(t, DiagParameterOutOfRange, diags[0].Code)
}

func TestFilterUnknownMethodNoOp(t *testing.T) {
	t.Parallel()
	in := ramp(6, 1)

	var diags []Diagnostic
	out := Filter(in, IndexRange(0, 5), FilterConfig{
		Method:       FilterMethod(99),
		WindowSize:   5,
		OnDiagnostic: CollectDiagnostics(&diags),
	})

	assert.Empty(t, cmp.Diff(in, out))
	require.NotEmpty(t, diags)
	assert.Equal(t, DiagParameterOutOfRange, diags[0].Code)
}

func TestFilterPreservesFrames(t *testing.T) {
	t.Parallel()
	in := noisy(9, 50)

	for name, cfg := range map[string]FilterConfig{
		"median":      {Method: FilterMedian, WindowSize: 5},
		"butterworth": {Method: FilterButterworth, Cutoff: 0.5, Order: 2},
	} {
		t.Run(name, func(t *testing.T) {
			out := Filter(in, IndexRange(0, 8), cfg)
			for i := range in {
				assert.Equal(t, in[i].Frame, out[i].Frame)
			}
		})
	}
}
