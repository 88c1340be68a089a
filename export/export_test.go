package export

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/config"
)

func init() {
	config.MustInit("")
}

func testFrame() Frame {
	settings := config.Cfg().Animation.Clone()
	settings.Type = "oceanCurrents"
	settings.Speed = 1.25
	settings.Ocean.Eddies[0].Clockwise = false

	shapes := []components.Shape{
		components.ShapeLine, components.ShapeArrow, components.ShapeDot,
		components.ShapeTriangle, components.ShapeSemicircle, components.ShapeCurve,
	}
	var cells []components.Cell
	for i, s := range shapes {
		cells = append(cells, components.Cell{
			ID:           components.CellKey(0, i),
			Col:          i,
			BaseX:        20 + float64(i)*40,
			BaseY:        20,
			CurrentAngle: float64(i) * 60,
			LengthFactor: 1,
			WidthFactor:  1 + float64(i)*0.1,
			Shape:        s,
		})
	}
	return Frame{Cells: cells, Width: 240, Height: 40, Spacing: 40, Settings: settings}
}

func TestWriteSVG_EmbedsSettings(t *testing.T) {
	f := testFrame()
	var buf bytes.Buffer
	if err := WriteSVG(&buf, f, config.Cfg().Export); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}

	got, err := ReadSVGSettings(&buf)
	if err != nil {
		t.Fatalf("ReadSVGSettings failed: %v", err)
	}
	if !reflect.DeepEqual(got, f.Settings) {
		t.Errorf("settings changed through svg:\nwant %+v\ngot  %+v", f.Settings, got)
	}
}

func TestWriteSVG_OneGlyphPerShape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, testFrame(), config.Cfg().Export); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := buf.String()

	for _, tag := range []string{"<svg", "<desc>", "<line", "<polyline", "<circle", "<polygon", "<path", "</svg>"} {
		if !strings.Contains(out, tag) {
			t.Errorf("expected %s in output", tag)
		}
	}
	if !strings.Contains(out, "<title>vecfield oceanCurrents</title>") {
		t.Error("expected title naming the type")
	}
}

func TestWriteSVG_Monochrome(t *testing.T) {
	style := config.Cfg().Export
	style.Colorize = false
	style.Foreground = "#123456"

	var buf bytes.Buffer
	if err := WriteSVG(&buf, testFrame(), style); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	if !strings.Contains(buf.String(), "stroke:#123456") {
		t.Error("expected foreground stroke color")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteSVG_ReportsWriteError(t *testing.T) {
	if err := WriteSVG(failingWriter{}, testFrame(), config.Cfg().Export); err == nil {
		t.Error("expected write error")
	}
}

func TestReadSVGSettings_Missing(t *testing.T) {
	_, err := ReadSVGSettings(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg"><rect/></svg>`))
	if !errors.Is(err, ErrNoSettings) {
		t.Errorf("expected ErrNoSettings, got %v", err)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	a := testFrame().Settings
	data, err := MarshalSettings(a)
	if err != nil {
		t.Fatalf("MarshalSettings failed: %v", err)
	}
	b, err := UnmarshalSettings(data)
	if err != nil {
		t.Fatalf("UnmarshalSettings failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("round trip changed settings:\nwant %+v\ngot  %+v", a, b)
	}
}

func TestUnmarshalSettings_PartialOverlay(t *testing.T) {
	got, err := UnmarshalSettings([]byte("type: jitter\njitter:\n  intensity: 3\n"))
	if err != nil {
		t.Fatalf("UnmarshalSettings failed: %v", err)
	}
	if got.Type != "jitter" || got.Jitter.Intensity != 3 {
		t.Errorf("overlay not applied: %q %f", got.Type, got.Jitter.Intensity)
	}
	if got.Easing != config.Cfg().Animation.Easing {
		t.Errorf("expected default easing %f, got %f", config.Cfg().Animation.Easing, got.Easing)
	}
}

func TestUnmarshalSettings_Validates(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"nan easing", "easing: .nan\n"},
		{"easing above one", "easing: 7\n"},
		{"unknown mode", "easing_mode: bouncy\n"},
		{"infinite speed", "speed: .inf\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalSettings([]byte(tt.yaml)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestReadSVGSettings_Validates(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg"><desc>easing: 7</desc></svg>`
	_, err := ReadSVGSettings(strings.NewReader(doc))
	if err == nil || errors.Is(err, ErrNoSettings) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAngleColor_Opposites(t *testing.T) {
	a := AngleColor(30)
	b := AngleColor(390)
	if a.Hex() != b.Hex() {
		t.Errorf("expected full turn to keep color: %s vs %s", a.Hex(), b.Hex())
	}
	if AngleColor(-90).Hex() != AngleColor(270).Hex() {
		t.Error("negative angles should wrap")
	}
	if AngleColor(0).Hex() == AngleColor(180).Hex() {
		t.Error("opposite headings share a color")
	}
}
