package systems

import "math"

// Angle helpers. All angles are in degrees.

// NormalizeDelta folds an angular difference into (-180, 180] by repeated
// +-360 steps. Non-finite input returns 0.
func NormalizeDelta(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	if d > 3600 || d < -3600 {
		// Large values: bring close first so the loops stay short
		d = math.Mod(d, 360)
	}
	for d > 180 {
		d -= 360
	}
	for d <= -180 {
		d += 360
	}
	return d
}

// ShortestDelta returns the signed shortest rotation from one angle to another.
func ShortestDelta(from, to float64) float64 {
	return NormalizeDelta(to - from)
}

// Wrap360 wraps an angle to [0, 360).
func Wrap360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// Deg converts radians to degrees.
func Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Rad converts degrees to radians.
func Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DistanceSq returns the squared distance between two points.
func DistanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// AngleTo returns the heading in degrees from (x1,y1) toward (x2,y2),
// screen coordinates (y down).
func AngleTo(x1, y1, x2, y2 float64) float64 {
	return Deg(math.Atan2(y2-y1, x2-x1))
}
