package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/config"
)

func init() {
	config.MustInit("")
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:  SnapshotVersion,
		Seed:     42,
		Width:    1280,
		Height:   720,
		Frame:    120,
		TimeMS:   2000,
		Settings: config.Cfg().Animation.Clone(),
		Cells: []components.Cell{
			{ID: "0-0", Row: 0, Col: 0, BaseX: 16, BaseY: 16, CurrentAngle: 45, Shape: components.ShapeArrow, LengthFactor: 1, WidthFactor: 1},
			{ID: "0-1", Row: 0, Col: 1, BaseX: 48, BaseY: 16, CurrentAngle: 270, Shape: components.ShapeCurve, LengthFactor: 1.4, WidthFactor: 1},
		},
	}
	snapshot.Settings.Type = "flocking"

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if !strings.HasSuffix(path, "snapshot_120_flocking.json") {
		t.Errorf("unexpected snapshot path %q", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Seed != 42 || loaded.Frame != 120 || loaded.Width != 1280 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if loaded.Settings.Type != "flocking" {
		t.Errorf("expected type flocking, got %q", loaded.Settings.Type)
	}
	if len(loaded.Settings.Ocean.Eddies) != len(snapshot.Settings.Ocean.Eddies) {
		t.Errorf("eddies not preserved")
	}
	if len(loaded.Cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(loaded.Cells))
	}
	if loaded.Cells[1].Shape != components.ShapeCurve || loaded.Cells[1].LengthFactor != 1.4 {
		t.Errorf("cell mismatch: %+v", loaded.Cells[1])
	}
}

func TestLoadSnapshot_RejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected error for unknown version")
	}
}

func TestLoadSnapshot_RejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "easing.json")
	if err := os.WriteFile(path, []byte(`{"version": 1, "settings": {"Easing": 7}}`), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadSnapshot(path)
	if err == nil || !strings.Contains(err.Error(), "easing") {
		t.Errorf("expected easing validation error, got %v", err)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := om.WriteFieldStats(FieldStats{Frame: int64(i), Type: "vortex", Cells: 4}); err != nil {
			t.Fatalf("WriteFieldStats failed: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{PhaseShare: [numPhases]float64{PhaseTargets: 50}}, 3, "vortex"); err != nil {
		t.Fatalf("WritePerf failed: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "field_stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "frame,time_ms,type") {
		t.Errorf("unexpected header %q", lines[0])
	}

	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(perf), "targets_pct") {
		t.Errorf("perf header missing targets_pct: %q", perf)
	}
}

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}
	// Nil manager methods are no-ops
	if err := om.WriteFieldStats(FieldStats{}); err != nil {
		t.Errorf("nil WriteFieldStats: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
