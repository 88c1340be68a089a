// Package components defines the per-cell state and the ECS components for the animator.
package components

import (
	"fmt"
	"strings"
)

// Shape selects the glyph geometry a renderer draws for a cell.
type Shape uint8

const (
	ShapeLine Shape = iota
	ShapeArrow
	ShapeDot
	ShapeTriangle
	ShapeSemicircle
	ShapeCurve
)

var shapeNames = [...]string{"line", "arrow", "dot", "triangle", "semicircle", "curve"}

// String returns the lower-case shape name.
func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// ParseShape converts a shape name into a Shape. Unknown names map to ShapeLine
// and report ok=false.
func ParseShape(name string) (Shape, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), true
		}
	}
	return ShapeLine, false
}

// MarshalText implements encoding.TextMarshaler so shapes serialize by name.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	shape, ok := ParseShape(string(text))
	if !ok {
		return fmt.Errorf("unknown shape %q", text)
	}
	*s = shape
	return nil
}

// Cell is one glyph of the grid.
// Row, Col and the base position are fixed at construction; CurrentAngle is
// written only by the integrator.
type Cell struct {
	ID             string  `json:"id" yaml:"id"`
	Row            int     `json:"row" yaml:"row"`
	Col            int     `json:"col" yaml:"col"`
	BaseX          float64 `json:"base_x" yaml:"base_x"`
	BaseY          float64 `json:"base_y" yaml:"base_y"`
	CurrentAngle   float64 `json:"current_angle" yaml:"current_angle"`
	PreviousAngle  float64 `json:"previous_angle" yaml:"previous_angle"`
	FlockID        int     `json:"flock_id" yaml:"flock_id"`
	Layer          int     `json:"layer" yaml:"layer"`
	ActivationTime float64 `json:"activation_time" yaml:"activation_time"` // ms after the wave start
	LengthFactor   float64 `json:"length_factor" yaml:"length_factor"`
	WidthFactor    float64 `json:"width_factor" yaml:"width_factor"`
	Shape          Shape   `json:"shape" yaml:"shape"`

	// Runtime-only spring state, not part of the exported description.
	SpringVelocity float64 `json:"-" yaml:"-"`
}

// CellKey formats the "row-col" key used as a cell id.
func CellKey(row, col int) string {
	return fmt.Sprintf("%d-%d", row, col)
}
