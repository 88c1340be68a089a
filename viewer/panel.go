package viewer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// Overlay styling.
var (
	panelBg    = rl.Color{R: 14, G: 18, B: 24, A: 220}
	panelEdge  = rl.Color{R: 52, G: 64, B: 78, A: 255}
	labelColor = rl.Color{R: 150, G: 160, B: 170, A: 255}
	valueColor = rl.RayWhite
	titleColor = rl.Gold

	// Meter fill runs from incoherent to aligned.
	meterLow  = colorful.Color{R: 0.85, G: 0.25, B: 0.2}
	meterHigh = colorful.Color{R: 0.3, G: 0.85, B: 0.45}
)

const (
	fontSize   = 12
	lineHeight = 16
	padding    = 10
	labelWidth = 90
)

// panel is a framed overlay box filled row by row from the top.
type panel struct {
	x, w   int32
	cursor int32
}

// openPanel draws the frame and returns a panel whose first row starts
// inside the padding.
func openPanel(x, y, w, h int32) *panel {
	rl.DrawRectangle(x, y, w, h, panelBg)
	rl.DrawRectangleLines(x, y, w, h, panelEdge)
	return &panel{x: x + padding, w: w - 2*padding, cursor: y + padding}
}

func (p *panel) title(s string, size int32) {
	rl.DrawText(s, p.x, p.cursor, size, titleColor)
	p.cursor += size + 4
}

func (p *panel) row(label, value string) {
	rl.DrawText(label, p.x, p.cursor, fontSize, labelColor)
	rl.DrawText(value, p.x+labelWidth, p.cursor, fontSize, valueColor)
	p.cursor += lineHeight
}

func (p *panel) rowf(label, format string, args ...any) {
	p.row(label, fmt.Sprintf(format, args...))
}

// dial shows an angle as a needle in its glyph color next to the value.
func (p *panel) dial(label string, deg float64) {
	const r = 6
	cx := float32(p.x + labelWidth + r)
	cy := float32(p.cursor + fontSize/2)
	rad := deg * math.Pi / 180
	tip := rl.Vector2{X: cx + r*float32(math.Cos(rad)), Y: cy + r*float32(math.Sin(rad))}

	rl.DrawText(label, p.x, p.cursor, fontSize, labelColor)
	rl.DrawCircleLinesV(rl.Vector2{X: cx, Y: cy}, r, panelEdge)
	rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, tip, 2, glyphColor(deg))
	rl.DrawText(fmt.Sprintf("%.1f", deg), p.x+labelWidth+2*r+6, p.cursor, fontSize, valueColor)
	p.cursor += lineHeight
}

// meter draws a [0, 1] value as a bar whose color follows the value.
func (p *panel) meter(label string, v float64) {
	v = min(max(v, 0), 1)
	barX := p.x + labelWidth
	barW := p.w - labelWidth - 40
	r, g, b := meterLow.BlendHcl(meterHigh, v).Clamped().RGB255()

	rl.DrawText(label, p.x, p.cursor, fontSize, labelColor)
	rl.DrawRectangle(barX, p.cursor+2, barW, fontSize-2, panelEdge)
	rl.DrawRectangle(barX, p.cursor+2, int32(float64(barW)*v), fontSize-2, rl.Color{R: r, G: g, B: b, A: 255})
	rl.DrawText(fmt.Sprintf("%.2f", v), barX+barW+5, p.cursor, fontSize, valueColor)
	p.cursor += lineHeight + 2
}
