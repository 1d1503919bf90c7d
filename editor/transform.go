package editor

import "math"

// Transform maps model coordinates to the screen: screen = model*Scale + T.
type Transform struct {
	Scale float64
	TX    float64
	TY    float64
}

// Identity is the transform with no pan and a scale of one.
func Identity() Transform {
	return Transform{Scale: 1}
}

// ToModel converts a screen point to model coordinates.
func (t Transform) ToModel(x, y float64) (float64, float64) {
	return (x - t.TX) / t.Scale, (y - t.TY) / t.Scale
}

// ToScreen converts a model point to screen coordinates.
func (t Transform) ToScreen(x, y float64) (float64, float64) {
	return x*t.Scale + t.TX, y*t.Scale + t.TY
}

// Translated returns t panned by a screen delta.
func (t Transform) Translated(dx, dy float64) Transform {
	t.TX += dx
	t.TY += dy
	return t
}

// ScaledAbout returns t scaled by factor around the screen point (cx, cy),
// so the model point under (cx, cy) stays put. The resulting scale is
// clamped to [lo, hi].
func (t Transform) ScaledAbout(cx, cy, factor, lo, hi float64) Transform {
	scale := clampScale(t.Scale*factor, lo, hi)
	f := scale / t.Scale
	return Transform{
		Scale: scale,
		TX:    cx - (cx-t.TX)*f,
		TY:    cy - (cy-t.TY)*f,
	}
}

func clampScale(s, lo, hi float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	if lo > 0 && s < lo {
		return lo
	}
	if hi > 0 && s > hi {
		return hi
	}
	return s
}
