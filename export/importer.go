package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/telemetry"
)

// ImportSettings reads animation settings from a file written by this
// package or by a snapshot: .svg (embedded desc), .json (snapshot) or
// YAML for anything else. Every source is validated.
func ImportSettings(path string) (config.AnimationConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		f, err := os.Open(path)
		if err != nil {
			return config.AnimationConfig{}, fmt.Errorf("opening svg: %w", err)
		}
		defer f.Close()
		return ReadSVGSettings(f)
	case ".json":
		snap, err := telemetry.LoadSnapshot(path)
		if err != nil {
			return config.AnimationConfig{}, err
		}
		return snap.Settings, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return config.AnimationConfig{}, fmt.Errorf("reading settings: %w", err)
		}
		return UnmarshalSettings(data)
	}
}
