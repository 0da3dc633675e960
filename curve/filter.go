package curve

import (
	"math"
	"sort"
)

// FilterMethod selects the filtering algorithm.
type FilterMethod int

const (
	// FilterMedian takes the per-axis median of the window.
	FilterMedian FilterMethod = iota

	// FilterAverage is the moving-average smooth applied as a filter.
	FilterAverage

	// FilterGaussian is the Gaussian smooth applied as a filter.
	FilterGaussian

	// FilterButterworth is a simplified low-pass: a one-pole IIR run
	// forward then backward over the selection's contiguous hull. It
	// approximates a zero-phase Butterworth, it is not a textbook one.
	FilterButterworth
)

// FilterConfig holds parameters for Filter.
type FilterConfig struct {
	Method FilterMethod `json:"method"`

	// WindowSize is the full window width for the windowed methods.
	WindowSize int `json:"window_size"`

	// Sigma is the Gaussian kernel width for FilterGaussian.
	Sigma float64 `json:"sigma"`

	// Cutoff is the normalized cutoff for FilterButterworth, in
	// (0, 1]. Lower values smooth harder.
	Cutoff float64 `json:"cutoff"`

	// Order steepens the Butterworth response. Typical values 1-4.
	Order int `json:"order"`

	// OnDiagnostic receives absorbed conditions; nil discards them.
	OnDiagnostic DiagnosticSink `json:"-"`
}

// DefaultFilterConfig returns a median filter sized for isolated
// tracker spikes.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Method:     FilterMedian,
		WindowSize: 5,
		Sigma:      1.0,
		Cutoff:     0.5,
		Order:      2,
	}
}

// Filter returns a copy of the curve with the selected points
// filtered. Average and Gaussian delegate to Smooth with the same
// edge policy; Butterworth needs neighboring context and therefore
// computes over the full index range spanned by the selection, writing
// back only the selected points. Frames are preserved on every point.
func Filter(c Curve, indices IndexSet, cfg FilterConfig) Curve {
	switch cfg.Method {
	case FilterAverage:
		return Smooth(c, indices, SmoothConfig{
			Method:       SmoothMovingAverage,
			WindowSize:   cfg.WindowSize,
			OnDiagnostic: cfg.OnDiagnostic,
		})
	case FilterGaussian:
		return Smooth(c, indices, SmoothConfig{
			Method:       SmoothGaussian,
			WindowSize:   cfg.WindowSize,
			Sigma:        cfg.Sigma,
			OnDiagnostic: cfg.OnDiagnostic,
		})
	case FilterButterworth:
		return butterworth(c, indices, cfg)
	case FilterMedian:
		return medianFilter(c, indices, cfg)
	default:
		emit(cfg.OnDiagnostic, DiagParameterOutOfRange, -1,
			"unknown filter method %d, nothing filtered", cfg.Method)
		return c.Clone()
	}
}

// medianFilter replaces each selected point with the independent
// median of the x and y values in its clamped window. The middle
// element is taken directly, with no interpolation for even-sized
// windows, so output values always come from real input samples.
func medianFilter(c Curve, indices IndexSet, cfg FilterConfig) Curve {
	out := c.Clone()
	if len(c) == 0 || len(indices) == 0 {
		return out
	}
	if cfg.WindowSize < 3 {
		emit(cfg.OnDiagnostic, DiagInsufficientData, -1,
			"window size %d below minimum 3, nothing filtered", cfg.WindowSize)
		return out
	}

	half := cfg.WindowSize / 2
	for _, i := range indices.Sorted() {
		if i < 0 || i >= len(c) {
			emit(cfg.OnDiagnostic, DiagInvalidSelection, -1, "index %d out of range, skipped", i)
			continue
		}
		start := i - half
		if start < 0 {
			start = 0
		}
		end := i + half
		if end > len(c)-1 {
			end = len(c) - 1
		}

		xs := make([]float64, 0, end-start+1)
		ys := make([]float64, 0, end-start+1)
		for j := start; j <= end; j++ {
			xs = append(xs, c[j].X)
			ys = append(ys, c[j].Y)
		}
		sort.Float64s(xs)
		sort.Float64s(ys)
		out[i].X = xs[len(xs)/2]
		out[i].Y = ys[len(ys)/2]
	}
	return out
}

// butterworth runs the one-pole forward/backward pass over the
// contiguous range [min(indices), max(indices)]. The extra context
// points inside the hull are computed but only the originally selected
// indices are written into the result.
func butterworth(c Curve, indices IndexSet, cfg FilterConfig) Curve {
	out := c.Clone()
	valid := indices.validSorted(len(c))
	if len(valid) == 0 {
		return out
	}
	if cfg.Cutoff <= 0 {
		emit(cfg.OnDiagnostic, DiagParameterOutOfRange, -1,
			"cutoff %v not positive, nothing filtered", cfg.Cutoff)
		return out
	}
	order := cfg.Order
	if order < 1 {
		order = 1
	}

	lo := valid[0]
	hi := valid[len(valid)-1]
	n := hi - lo + 1
	if n < 2 {
		return out
	}

	alpha := 1.0 / (1.0 + math.Pow(1.0/cfg.Cutoff, float64(2*order)))

	xs := make([]float64, n)
	ys := make([]float64, n)
	for j := 0; j < n; j++ {
		xs[j] = c[lo+j].X
		ys[j] = c[lo+j].Y
	}
	lowpassZeroPhase(xs, alpha)
	lowpassZeroPhase(ys, alpha)

	for _, i := range valid {
		out[i].X = xs[i-lo]
		out[i].Y = ys[i-lo]
	}
	return out
}

// lowpassZeroPhase applies the one-pole IIR forward over vals, then a
// second pass backward in place to cancel the phase lag.
func lowpassZeroPhase(vals []float64, alpha float64) {
	for i := 1; i < len(vals); i++ {
		vals[i] = alpha*vals[i] + (1-alpha)*vals[i-1]
	}
	for i := len(vals) - 2; i >= 0; i-- {
		vals[i] = alpha*vals[i] + (1-alpha)*vals[i+1]
	}
}
