package export

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/telemetry"
)

func TestImportSettings_Sources(t *testing.T) {
	dir := t.TempDir()
	f := testFrame()

	var svg bytes.Buffer
	if err := WriteSVG(&svg, f, config.Cfg().Export); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	svgPath := filepath.Join(dir, "frame.svg")
	if err := os.WriteFile(svgPath, svg.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	yamlData, err := MarshalSettings(f.Settings)
	if err != nil {
		t.Fatalf("MarshalSettings failed: %v", err)
	}
	yamlPath := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(yamlPath, yamlData, 0644); err != nil {
		t.Fatal(err)
	}

	snapPath, err := telemetry.SaveSnapshot(&telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		Settings: f.Settings,
		Cells:    f.Cells,
	}, dir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	for _, path := range []string{svgPath, yamlPath, snapPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			got, err := ImportSettings(path)
			if err != nil {
				t.Fatalf("ImportSettings failed: %v", err)
			}
			if !reflect.DeepEqual(got, f.Settings) {
				t.Errorf("imported settings differ:\nwant %+v\ngot  %+v", f.Settings, got)
			}
		})
	}
}

func TestImportSettings_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("easing: .nan\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportSettings(path); err == nil {
		t.Error("expected validation error")
	}
}

func TestImportSettings_Missing(t *testing.T) {
	if _, err := ImportSettings(filepath.Join(t.TempDir(), "none.svg")); err == nil {
		t.Error("expected error for missing file")
	}
}
