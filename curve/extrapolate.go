package curve

// ExtrapolateMethod selects how new points are projected beyond the
// tracked range.
type ExtrapolateMethod int

const (
	// ExtrapolateLinear projects at the velocity of the outermost two
	// points.
	ExtrapolateLinear ExtrapolateMethod = iota

	// ExtrapolateVelocity projects at the average velocity of the
	// outermost FitPoints points.
	ExtrapolateVelocity

	// ExtrapolateQuadratic fits quadratics x(f), y(f) to the outermost
	// FitPoints points and evaluates them past the range. Falls back
	// to ExtrapolateLinear when the fit is not possible.
	ExtrapolateQuadratic
)

// Direction selects which end of the curve to extend.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
	DirectionBoth
)

// ExtrapolateConfig holds parameters for Extrapolate.
type ExtrapolateConfig struct {
	Method    ExtrapolateMethod `json:"method"`
	Direction Direction         `json:"direction"`

	// NumFrames is how many frames to synthesize past the end of the
	// tracked range, per direction.
	NumFrames int `json:"num_frames"`

	// FitPoints is how many boundary points feed the velocity average
	// or the quadratic fit.
	FitPoints int `json:"fit_points"`

	// OnDiagnostic receives absorbed conditions; nil discards them.
	OnDiagnostic DiagnosticSink `json:"-"`
}

// DefaultExtrapolateConfig extends forward a short distance at the
// recent average velocity.
func DefaultExtrapolateConfig() ExtrapolateConfig {
	return ExtrapolateConfig{
		Method:    ExtrapolateVelocity,
		Direction: DirectionForward,
		NumFrames: 5,
		FitPoints: 4,
	}
}

// Extrapolate extends a frame-sorted curve past its tracked range with
// synthesized points carrying StatusInterpolated, merged into a copy
// of the curve by frame number. A curve with fewer than two points is
// returned unchanged.
func Extrapolate(c Curve, cfg ExtrapolateConfig) Curve {
	if len(c) < 2 || cfg.NumFrames < 1 {
		emit(cfg.OnDiagnostic, DiagInsufficientData, -1, "need at least 2 points and 1 frame to extrapolate")
		return c.Clone()
	}

	var generated []Point
	if cfg.Direction == DirectionForward || cfg.Direction == DirectionBoth {
		generated = append(generated, extrapolateEnd(c, cfg, false)...)
	}
	if cfg.Direction == DirectionBackward || cfg.Direction == DirectionBoth {
		generated = append(generated, extrapolateEnd(c, cfg, true)...)
	}
	return mergePoints(c, generated, true)
}

// extrapolateEnd synthesizes cfg.NumFrames points past one end of the
// curve. For the backward end the boundary window is reversed so the
// same projection math walks away from the curve in either direction.
func extrapolateEnd(c Curve, cfg ExtrapolateConfig, backward bool) []Point {
	fit := cfg.FitPoints
	if fit < 2 {
		fit = 2
	}
	if fit > len(c) {
		fit = len(c)
	}

	// window ordered from the interior out to the boundary point
	window := make([]Point, fit)
	if backward {
		for i := 0; i < fit; i++ {
			window[i] = c[fit-1-i]
		}
	} else {
		copy(window, c[len(c)-fit:])
	}
	origin := window[fit-1]

	step := 1
	if backward {
		step = -1
	}

	method := cfg.Method
	if method == ExtrapolateQuadratic && fit < 3 {
		emit(cfg.OnDiagnostic, DiagInsufficientData, origin.Frame,
			"quadratic extrapolation needs 3 fit points, falling back to linear")
		method = ExtrapolateLinear
	}

	switch method {
	case ExtrapolateQuadratic:
		pts, ok := projectQuadratic(window, origin, step, cfg.NumFrames)
		if ok {
			return pts
		}
		emit(cfg.OnDiagnostic, DiagDegenerateFit, origin.Frame,
			"singular quadratic fit, falling back to linear")
		fallthrough
	case ExtrapolateLinear:
		prev := window[fit-2]
		df := float64(origin.Frame - prev.Frame)
		var vx, vy float64
		if df != 0 {
			vx = (origin.X - prev.X) / df
			vy = (origin.Y - prev.Y) / df
		}
		return projectConstant(origin, vx, vy, step, cfg.NumFrames)
	default:
		vx, vy := windowVelocity(window)
		return projectConstant(origin, vx, vy, step, cfg.NumFrames)
	}
}

// projectConstant walks from origin at a fixed time-forward per-frame
// velocity. The signed frame offset makes the same math hold for both
// directions.
func projectConstant(origin Point, vx, vy float64, step, numFrames int) []Point {
	out := make([]Point, 0, numFrames)
	for i := 1; i <= numFrames; i++ {
		df := float64(i * step)
		out = append(out, Point{
			Frame:  origin.Frame + i*step,
			X:      origin.X + vx*df,
			Y:      origin.Y + vy*df,
			Status: StatusInterpolated,
		})
	}
	return out
}

// projectQuadratic fits x(f) and y(f) over the window, with frames
// normalized to the window minimum for stability, and evaluates the
// fits at the new frames.
func projectQuadratic(window []Point, origin Point, step, numFrames int) ([]Point, bool) {
	minFrame := window[0].Frame
	for _, p := range window {
		if p.Frame < minFrame {
			minFrame = p.Frame
		}
	}

	ts := make([]float64, len(window))
	xs := make([]float64, len(window))
	ys := make([]float64, len(window))
	for i, p := range window {
		ts[i] = float64(p.Frame - minFrame)
		xs[i] = p.X
		ys[i] = p.Y
	}

	fx, okX := fitQuadratic(ts, xs)
	fy, okY := fitQuadratic(ts, ys)
	if !okX || !okY {
		return nil, false
	}

	out := make([]Point, 0, numFrames)
	for i := 1; i <= numFrames; i++ {
		frame := origin.Frame + i*step
		t := float64(frame - minFrame)
		out = append(out, Point{
			Frame:  frame,
			X:      fx.eval(t),
			Y:      fy.eval(t),
			Status: StatusInterpolated,
		})
	}
	return out, true
}
