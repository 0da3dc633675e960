package curve

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TransformConfig holds parameters for the batch geometric operations.
// Center is optional: when nil, Scale and Rotate pivot about the
// centroid of the selected points.
type TransformConfig struct {
	ScaleX   float64 `json:"scale_x"`
	ScaleY   float64 `json:"scale_y"`
	AngleDeg float64 `json:"angle_deg"`
	OffsetX  float64 `json:"offset_x"`
	OffsetY  float64 `json:"offset_y"`
	Center   *Vec2   `json:"center,omitempty"`

	// OnDiagnostic receives absorbed conditions; nil discards them.
	OnDiagnostic DiagnosticSink `json:"-"`
}

// DefaultTransformConfig returns an identity transform about the
// selection centroid.
func DefaultTransformConfig() TransformConfig {
	return TransformConfig{ScaleX: 1, ScaleY: 1}
}

// center resolves the pivot for a selection, preferring the explicit
// center over the selection centroid.
func (cfg TransformConfig) center(c Curve, valid []int) Vec2 {
	if cfg.Center != nil {
		return *cfg.Center
	}
	return centroid(c, valid)
}

// centroid returns the mean position of the points at the given
// indices.
func centroid(c Curve, indices []int) Vec2 {
	xs := make([]float64, len(indices))
	ys := make([]float64, len(indices))
	for j, i := range indices {
		xs[j] = c[i].X
		ys[j] = c[i].Y
	}
	return Vec2{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}
}

// Scale multiplies the selected points' offsets from the pivot by the
// configured per-axis factors. Frames are preserved.
func Scale(c Curve, indices IndexSet, cfg TransformConfig) Curve {
	out := c.Clone()
	valid := indices.validSorted(len(c))
	if len(valid) == 0 {
		return out
	}
	pivot := cfg.center(c, valid)
	for _, i := range valid {
		out[i].X = pivot.X + (c[i].X-pivot.X)*cfg.ScaleX
		out[i].Y = pivot.Y + (c[i].Y-pivot.Y)*cfg.ScaleY
	}
	return out
}

// Rotate turns the selected points about the pivot by AngleDeg
// degrees, counterclockwise in screen coordinates. Frames are
// preserved.
func Rotate(c Curve, indices IndexSet, cfg TransformConfig) Curve {
	out := c.Clone()
	valid := indices.validSorted(len(c))
	if len(valid) == 0 {
		return out
	}
	pivot := cfg.center(c, valid)
	angle := cfg.AngleDeg * math.Pi / 180.0
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	for _, i := range valid {
		dx := c[i].X - pivot.X
		dy := c[i].Y - pivot.Y
		out[i].X = pivot.X + dx*cos - dy*sin
		out[i].Y = pivot.Y + dx*sin + dy*cos
	}
	return out
}

// Offset translates the selected points by the configured deltas.
// Frames are preserved.
func Offset(c Curve, indices IndexSet, cfg TransformConfig) Curve {
	out := c.Clone()
	for _, i := range indices.validSorted(len(c)) {
		out[i].X = c[i].X + cfg.OffsetX
		out[i].Y = c[i].Y + cfg.OffsetY
	}
	return out
}

// NormalizeVelocityConfig holds parameters for NormalizeVelocity.
// TargetVelocity is optional: when nil, the mean velocity of the
// selected segments is used, so the motion is re-timed without
// changing its overall pace.
type NormalizeVelocityConfig struct {
	TargetVelocity *float64 `json:"target_velocity,omitempty"`

	// OnDiagnostic receives absorbed conditions; nil discards them.
	OnDiagnostic DiagnosticSink `json:"-"`
}

// NormalizeVelocity re-places the selected points so each segment
// moves at a uniform per-frame velocity along its original direction.
// The first selected point stays fixed. The selection must be a
// contiguous run of indices; anything else returns the input
// unchanged.
func NormalizeVelocity(c Curve, indices IndexSet, cfg NormalizeVelocityConfig) Curve {
	out := c.Clone()
	valid := indices.validSorted(len(c))
	if len(valid) < 2 {
		emit(cfg.OnDiagnostic, DiagInsufficientData, -1, "need at least 2 selected points")
		return out
	}
	if valid[len(valid)-1]-valid[0]+1 != len(valid) {
		emit(cfg.OnDiagnostic, DiagInvalidSelection, -1,
			"selection is not a contiguous run of indices, nothing changed")
		return out
	}

	// per-segment velocities from the original geometry
	velocities := make([]float64, 0, len(valid)-1)
	for k := 1; k < len(valid); k++ {
		a := c[valid[k-1]]
		b := c[valid[k]]
		df := float64(b.Frame - a.Frame)
		if df == 0 {
			continue
		}
		velocities = append(velocities, a.DistanceTo(b)/math.Abs(df))
	}
	if len(velocities) == 0 {
		emit(cfg.OnDiagnostic, DiagInsufficientData, -1, "no frame gaps between selected points")
		return out
	}

	target := stat.Mean(velocities, nil)
	if cfg.TargetVelocity != nil {
		target = *cfg.TargetVelocity
	}

	// walk from the fixed first point, re-placing each subsequent
	// point along its original direction at the target velocity
	prevNew := c[valid[0]]
	for k := 1; k < len(valid); k++ {
		origPrev := c[valid[k-1]]
		orig := c[valid[k]]

		dx := orig.X - origPrev.X
		dy := orig.Y - origPrev.Y
		dist := math.Hypot(dx, dy)
		df := math.Abs(float64(orig.Frame - origPrev.Frame))

		next := out[valid[k]]
		if dist == 0 || df == 0 {
			next.X = prevNew.X
			next.Y = prevNew.Y
		} else {
			next.X = prevNew.X + dx/dist*target*df
			next.Y = prevNew.Y + dy/dist*target*df
		}
		out[valid[k]] = next
		prevNew = next
	}
	return out
}
