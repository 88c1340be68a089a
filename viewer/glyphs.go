package viewer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/export"
)

// glyphColor converts the export hue mapping into a raylib color.
func glyphColor(angle float64) rl.Color {
	r, g, b := export.AngleColor(angle).RGB255()
	return rl.Color{R: r, G: g, B: b, A: 255}
}

// drawGlyph renders one cell centered on its screen position.
func drawGlyph(c *components.Cell, center rl.Vector2, size, stroke float32, color rl.Color) {
	length := size * factor(c.LengthFactor)
	thick := stroke * factor(c.WidthFactor)
	rad := float32(c.CurrentAngle * math.Pi / 180)
	cos, sin := float32(math.Cos(float64(rad))), float32(math.Sin(float64(rad)))

	half := rl.Vector2{X: cos * length / 2, Y: sin * length / 2}
	perp := rl.Vector2{X: -sin, Y: cos}
	tail := rl.Vector2Subtract(center, half)
	tip := rl.Vector2Add(center, half)

	switch c.Shape {
	case components.ShapeArrow:
		head := length * 0.3
		back := rl.Vector2Subtract(tip, rl.Vector2{X: cos * head, Y: sin * head})
		rl.DrawLineEx(tail, tip, thick, color)
		rl.DrawLineEx(tip, rl.Vector2Add(back, rl.Vector2Scale(perp, head*0.5)), thick, color)
		rl.DrawLineEx(tip, rl.Vector2Subtract(back, rl.Vector2Scale(perp, head*0.5)), thick, color)
	case components.ShapeDot:
		rl.DrawCircleV(center, max(1, length*0.15*factor(c.WidthFactor)), color)
	case components.ShapeTriangle:
		w := length * 0.25
		a := tip
		b := rl.Vector2Add(tail, rl.Vector2Scale(perp, w))
		d := rl.Vector2Subtract(tail, rl.Vector2Scale(perp, w))
		// Winding depends on the heading; one of the two is culled.
		rl.DrawTriangle(a, b, d, color)
		rl.DrawTriangle(a, d, b, color)
	case components.ShapeSemicircle:
		deg := float32(c.CurrentAngle)
		rl.DrawCircleSectorLines(center, length/2, deg-90, deg+90, 12, color)
	case components.ShapeCurve:
		ctrl := rl.Vector2Add(center, rl.Vector2Scale(perp, length*0.3))
		rl.DrawSplineSegmentBezierQuadratic(tail, ctrl, tip, thick, color)
	default:
		rl.DrawLineEx(tail, tip, thick, color)
	}
}

func factor(v float64) float32 {
	if v <= 0 || math.IsNaN(v) {
		return 1
	}
	return float32(v)
}
