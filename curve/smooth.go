package curve

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SmoothMethod selects the smoothing algorithm.
type SmoothMethod int

const (
	// SmoothMovingAverage replaces each selected point with the
	// arithmetic mean of its window.
	SmoothMovingAverage SmoothMethod = iota

	// SmoothGaussian weights the window with a Gaussian kernel.
	SmoothGaussian

	// SmoothSavitzkyGolay fits a quadratic to the window by least
	// squares and evaluates it at the selected point.
	SmoothSavitzkyGolay
)

// SmoothConfig holds parameters for Smooth.
type SmoothConfig struct {
	Method SmoothMethod `json:"method"`

	// WindowSize is the full window width in points. Minimum 3 for
	// moving average and Gaussian, 5 for Savitzky-Golay; smaller
	// values make the whole call a no-op.
	WindowSize int `json:"window_size"`

	// Sigma is the Gaussian kernel width in point offsets. Only used
	// by SmoothGaussian.
	Sigma float64 `json:"sigma"`

	// OnDiagnostic receives absorbed conditions; nil discards them.
	OnDiagnostic DiagnosticSink `json:"-"`
}

// DefaultSmoothConfig returns a Gaussian smooth suitable for taking
// high-frequency noise out of a hand-tracked curve.
func DefaultSmoothConfig() SmoothConfig {
	return SmoothConfig{
		Method:     SmoothGaussian,
		WindowSize: 5,
		Sigma:      1.0,
	}
}

// minWindow returns the smallest usable window for the method.
func (m SmoothMethod) minWindow() int {
	if m == SmoothSavitzkyGolay {
		return 5
	}
	return 3
}

// Smooth returns a copy of the curve with the selected points
// smoothed. Window values are always read from the input curve, so
// the order of indices does not affect the result, and frames are
// preserved on every point. Out-of-range indices are skipped; a
// window size below the method minimum returns the input unchanged.
func Smooth(c Curve, indices IndexSet, cfg SmoothConfig) Curve {
	out := c.Clone()
	if len(c) == 0 || len(indices) == 0 {
		return out
	}
	if cfg.WindowSize < cfg.Method.minWindow() {
		emit(cfg.OnDiagnostic, DiagInsufficientData, -1,
			"window size %d below minimum %d, nothing smoothed", cfg.WindowSize, cfg.Method.minWindow())
		return out
	}

	sigma := cfg.Sigma
	if cfg.Method == SmoothGaussian && sigma <= 0 {
		emit(cfg.OnDiagnostic, DiagParameterOutOfRange, -1,
			"sigma %v not positive, using 1.0", cfg.Sigma)
		sigma = 1.0
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

		switch cfg.Method {
		case SmoothMovingAverage:
			if end-start+1 < 3 {
				emit(cfg.OnDiagnostic, DiagInsufficientData, c[i].Frame,
					"clamped window has %d points, skipped", end-start+1)
				continue
			}
			xs := make([]float64, 0, end-start+1)
			ys := make([]float64, 0, end-start+1)
			for j := start; j <= end; j++ {
				xs = append(xs, c[j].X)
				ys = append(ys, c[j].Y)
			}
			out[i].X = stat.Mean(xs, nil)
			out[i].Y = stat.Mean(ys, nil)

		case SmoothGaussian:
			if end-start+1 < 3 {
				emit(cfg.OnDiagnostic, DiagInsufficientData, c[i].Frame,
					"clamped window has %d points, skipped", end-start+1)
				continue
			}
			x, y := gaussianWeighted(c, i, start, end, half, sigma)
			out[i].X = x
			out[i].Y = y

		case SmoothSavitzkyGolay:
			if end-start < 4 {
				emit(cfg.OnDiagnostic, DiagInsufficientData, c[i].Frame,
					"clamped window has %d points, skipped", end-start+1)
				continue
			}
			x, y, ok := savitzkyGolay(c, i, start, end)
			if !ok {
				emit(cfg.OnDiagnostic, DiagDegenerateFit, c[i].Frame, "singular fit, value kept")
				continue
			}
			out[i].X = x
			out[i].Y = y
		}
	}
	return out
}

// gaussianWeighted returns the Gaussian-weighted mean of the window
// [start, end] around index i. The kernel is defined over the full
// requested window [-half, half]; at sequence boundaries only the
// overlapping weights are used, renormalized by their partial sum so
// the applied weights always total 1. sigma must be positive.
func gaussianWeighted(c Curve, i, start, end, half int, sigma float64) (x, y float64) {
	weights := make([]float64, 0, end-start+1)
	for j := start; j <= end; j++ {
		k := float64(j - i)
		weights = append(weights, math.Exp(-(k*k)/(2*sigma*sigma)))
	}
	partial := floats.Sum(weights)
	for w, j := 0, start; j <= end; j++ {
		x += c[j].X * weights[w] / partial
		y += c[j].Y * weights[w] / partial
		w++
	}
	return x, y
}

// savitzkyGolay fits independent quadratics to x and y over the window
// [start, end], with t measured as the point index relative to the
// window start, and evaluates them at the target index.
func savitzkyGolay(c Curve, i, start, end int) (x, y float64, ok bool) {
	n := end - start + 1
	ts := make([]float64, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for j := 0; j < n; j++ {
		ts[j] = float64(j)
		xs[j] = c[start+j].X
		ys[j] = c[start+j].Y
	}

	fx, okX := fitQuadratic(ts, xs)
	fy, okY := fitQuadratic(ts, ys)
	if !okX || !okY {
		return 0, 0, false
	}
	t := float64(i - start)
	return fx.eval(t), fy.eval(t), true
}
