package curve

// FillMethod selects the gap interpolation algorithm.
type FillMethod int

const (
	// FillLinear interpolates on the straight line between the nearest
	// point on each side of the gap.
	FillLinear FillMethod = iota

	// FillCubicSpline interpolates with a Hermite spline whose
	// tangents come from the two nearest points on each side. Falls
	// back to FillLinear with fewer than two points on a side.
	FillCubicSpline

	// FillConstantVelocity fills at the average of the entry and exit
	// velocities around the gap. Falls back to FillLinear when either
	// side has fewer than WindowSize points.
	FillConstantVelocity
)

// FillConfig holds parameters for FillGap.
type FillConfig struct {
	Method FillMethod `json:"method"`

	// Tension controls how tightly the spline hugs its control
	// polygon, clamped to [0, 1]. Only used by FillCubicSpline.
	Tension float64 `json:"tension"`

	// WindowSize is the number of points per side used to estimate
	// velocity. Only used by FillConstantVelocity.
	WindowSize int `json:"window_size"`

	// PreserveEndpoints keeps points that already exist inside the
	// fill range instead of overwriting them.
	PreserveEndpoints bool `json:"preserve_endpoints"`

	// OnDiagnostic receives absorbed conditions; nil discards them.
	OnDiagnostic DiagnosticSink `json:"-"`
}

// DefaultFillConfig returns a spline fill with moderate tension.
func DefaultFillConfig() FillConfig {
	return FillConfig{
		Method:            FillCubicSpline,
		Tension:           0.5,
		WindowSize:        3,
		PreserveEndpoints: true,
	}
}

// FillGap fills the frame range [startFrame, endFrame] with
// synthesized points carrying StatusInterpolated, merged into a copy
// of the curve by frame number. The curve must be sorted ascending by
// frame and needs at least one point before the range and one after
// it; otherwise the input is returned unchanged.
func FillGap(c Curve, startFrame, endFrame int, cfg FillConfig) Curve {
	if len(c) == 0 || startFrame > endFrame {
		return c.Clone()
	}

	before := pointsBefore(c, startFrame)
	after := pointsAfter(c, endFrame)
	if len(before) == 0 || len(after) == 0 {
		emit(cfg.OnDiagnostic, DiagInsufficientData, -1,
			"no anchor point on both sides of frames [%d, %d], nothing filled", startFrame, endFrame)
		return c.Clone()
	}

	method := cfg.Method
	switch method {
	case FillCubicSpline:
		if len(before) < 2 || len(after) < 2 {
			emit(cfg.OnDiagnostic, DiagInsufficientData, -1,
				"fewer than 2 anchor points on a side, falling back to linear fill")
			method = FillLinear
		}
	case FillConstantVelocity:
		// velocity needs at least one frame delta per side, so a
		// window below 2 can never produce an estimate
		if cfg.WindowSize < 2 {
			emit(cfg.OnDiagnostic, DiagInsufficientData, -1,
				"window size %d too small for a velocity estimate, falling back to linear fill", cfg.WindowSize)
			method = FillLinear
		} else if len(before) < cfg.WindowSize || len(after) < cfg.WindowSize {
			emit(cfg.OnDiagnostic, DiagInsufficientData, -1,
				"fewer than %d anchor points on a side, falling back to linear fill", cfg.WindowSize)
			method = FillLinear
		}
	}

	var generated []Point
	switch method {
	case FillCubicSpline:
		generated = fillSpline(before, after, startFrame, endFrame, clamp01(cfg.Tension))
	case FillConstantVelocity:
		generated = fillConstantVelocity(before, after, startFrame, endFrame, cfg.WindowSize)
	default:
		generated = fillLinear(before, after, startFrame, endFrame)
	}
	return mergePoints(c, generated, cfg.PreserveEndpoints)
}

// pointsBefore returns the points with frame < frame, ascending.
func pointsBefore(c Curve, frame int) []Point {
	var out []Point
	for _, p := range c {
		if p.Frame < frame {
			out = append(out, p)
		}
	}
	return out
}

// pointsAfter returns the points with frame > frame, ascending.
func pointsAfter(c Curve, frame int) []Point {
	var out []Point
	for _, p := range c {
		if p.Frame > frame {
			out = append(out, p)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fillLinear interpolates between the nearest point on each side.
func fillLinear(before, after []Point, startFrame, endFrame int) []Point {
	b := before[len(before)-1]
	a := after[0]
	span := float64(a.Frame - b.Frame)

	out := make([]Point, 0, endFrame-startFrame+1)
	for f := startFrame; f <= endFrame; f++ {
		t := float64(f-b.Frame) / span
		out = append(out, Point{
			Frame:  f,
			X:      b.X + t*(a.X-b.X),
			Y:      b.Y + t*(a.Y-b.Y),
			Status: StatusInterpolated,
		})
	}
	return out
}

// fillSpline evaluates a Hermite interpolant between the boundary
// points p1 and p2, with p0 and p3 (one point further out on each
// side) shaping the tangents. The spline parameter runs over the
// requested frame range, not the span between the anchors.
func fillSpline(before, after []Point, startFrame, endFrame int, tension float64) []Point {
	p0 := before[len(before)-2]
	p1 := before[len(before)-1]
	p2 := after[0]
	p3 := after[1]

	total := float64(endFrame - startFrame + 1)
	t := 1 - tension

	out := make([]Point, 0, endFrame-startFrame+1)
	for f := startFrame; f <= endFrame; f++ {
		u := float64(f-startFrame) / total
		u2 := u * u
		u3 := u2 * u

		h1 := 2*u3 - 3*u2 + 1
		h2 := -2*u3 + 3*u2
		h3 := (u3 - 2*u2 + u) * t
		h4 := (u3 - u2) * t

		out = append(out, Point{
			Frame:  f,
			X:      h1*p1.X + h2*p2.X + h3*(p2.X-p0.X) + h4*(p3.X-p1.X),
			Y:      h1*p1.Y + h2*p2.Y + h3*(p2.Y-p0.Y) + h4*(p3.Y-p1.Y),
			Status: StatusInterpolated,
		})
	}
	return out
}

// fillConstantVelocity estimates the per-frame velocity independently
// from the windowSize points entering the gap and the windowSize
// points leaving it, averages the two, and walks forward from the
// nearest preceding point.
func fillConstantVelocity(before, after []Point, startFrame, endFrame, windowSize int) []Point {
	entry := before[len(before)-windowSize:]
	exit := after[:windowSize]

	vxIn, vyIn := windowVelocity(entry)
	vxOut, vyOut := windowVelocity(exit)
	vx := (vxIn + vxOut) / 2
	vy := (vyIn + vyOut) / 2

	b := before[len(before)-1]
	out := make([]Point, 0, endFrame-startFrame+1)
	for f := startFrame; f <= endFrame; f++ {
		df := float64(f - b.Frame)
		out = append(out, Point{
			Frame:  f,
			X:      b.X + vx*df,
			Y:      b.Y + vy*df,
			Status: StatusInterpolated,
		})
	}
	return out
}

// windowVelocity averages the frame-gap-normalized velocity over the
// consecutive pairs in pts. Zero-gap pairs contribute nothing.
func windowVelocity(pts []Point) (vx, vy float64) {
	if len(pts) < 2 {
		return 0, 0
	}
	for i := 1; i < len(pts); i++ {
		df := float64(pts[i].Frame - pts[i-1].Frame)
		if df == 0 {
			continue
		}
		vx += (pts[i].X - pts[i-1].X) / df
		vy += (pts[i].Y - pts[i-1].Y) / df
	}
	n := float64(len(pts) - 1)
	return vx / n, vy / n
}
