package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/config"
)

// AngleColor maps an orientation to a hue, so opposite headings get
// complementary colors.
func AngleColor(angle float64) colorful.Color {
	h := math.Mod(angle, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsv(h, 0.6, 0.95)
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// Frame is everything WriteSVG needs to draw one static frame.
type Frame struct {
	Cells    []components.Cell
	Width    float64
	Height   float64
	Spacing  float64 // Grid spacing; glyph size derives from it
	Settings config.AnimationConfig
}

// WriteSVG renders the frame as SVG, one glyph per cell, with the settings
// YAML embedded in the document description.
func WriteSVG(w io.Writer, f Frame, style config.ExportConfig) error {
	settings, err := MarshalSettings(f.Settings)
	if err != nil {
		return err
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width, height := int(math.Ceil(f.Width)), int(math.Ceil(f.Height))

	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("vecfield %s", f.Settings.Type))
	canvas.Desc(string(settings))
	canvas.Rect(0, 0, width, height, "fill:"+style.Background)

	canvas.Gstyle(fmt.Sprintf("stroke-width:%g;stroke-linecap:round;fill:none", style.StrokeWidth))
	size := f.Spacing * style.GlyphLength
	for i := range f.Cells {
		c := &f.Cells[i]
		color := style.Foreground
		if style.Colorize {
			color = AngleColor(c.CurrentAngle).Hex()
		}
		drawGlyph(canvas, c, size, color)
	}
	canvas.Gend()
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("writing svg: %w", ew.err)
	}
	return nil
}

// drawGlyph draws a single cell's shape centered on its anchor.
func drawGlyph(canvas *svg.SVG, c *components.Cell, size float64, color string) {
	length := size * nonZero(c.LengthFactor)
	width := nonZero(c.WidthFactor)
	rad := c.CurrentAngle * math.Pi / 180
	dx, dy := math.Cos(rad)*length/2, math.Sin(rad)*length/2
	// Perpendicular unit for heads and bulges
	px, py := -math.Sin(rad), math.Cos(rad)

	x1, y1 := c.BaseX-dx, c.BaseY-dy
	x2, y2 := c.BaseX+dx, c.BaseY+dy
	stroke := fmt.Sprintf("stroke:%s", color)
	if width != 1 {
		stroke += fmt.Sprintf(";stroke-width:%g", width*2)
	}

	switch c.Shape {
	case components.ShapeArrow:
		head := length * 0.3
		hx, hy := math.Cos(rad)*head, math.Sin(rad)*head
		canvas.Line(ix(x1), ix(y1), ix(x2), ix(y2), stroke)
		canvas.Polyline(
			[]int{ix(x2 - hx + px*head*0.5), ix(x2), ix(x2 - hx - px*head*0.5)},
			[]int{ix(y2 - hy + py*head*0.5), ix(y2), ix(y2 - hy - py*head*0.5)},
			stroke)
	case components.ShapeDot:
		r := max(1, ix(length*0.15*width))
		canvas.Circle(ix(c.BaseX), ix(c.BaseY), r, "stroke:none;fill:"+color)
	case components.ShapeTriangle:
		half := length * 0.25
		canvas.Polygon(
			[]int{ix(x2), ix(x1 + px*half), ix(x1 - px*half)},
			[]int{ix(y2), ix(y1 + py*half), ix(y1 - py*half)},
			stroke+";fill:"+color)
	case components.ShapeSemicircle:
		r := ix(length / 2)
		canvas.Arc(ix(x1), ix(y1), r, r, 0, false, true, ix(x2), ix(y2), stroke)
	case components.ShapeCurve:
		bulge := length * 0.3
		canvas.Qbez(ix(x1), ix(y1), ix(c.BaseX+px*bulge), ix(c.BaseY+py*bulge), ix(x2), ix(y2), stroke)
	default:
		canvas.Line(ix(x1), ix(y1), ix(x2), ix(y2), stroke)
	}
}

func ix(v float64) int {
	return int(math.Round(v))
}

func nonZero(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 1
	}
	return v
}
