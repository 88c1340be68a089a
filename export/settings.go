// Package export writes static descriptions of the animation: an SVG frame
// with the settings embedded, and the settings alone as YAML.
package export

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/vecfield/config"
)

// MarshalSettings encodes animation settings as YAML.
func MarshalSettings(a config.AnimationConfig) ([]byte, error) {
	data, err := yaml.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshaling settings: %w", err)
	}
	return data, nil
}

// UnmarshalSettings decodes YAML settings over the embedded defaults, so a
// partial document only overrides the fields it names. The result is
// validated like a loaded config file.
func UnmarshalSettings(data []byte) (config.AnimationConfig, error) {
	cfg, err := config.Load("")
	if err != nil {
		return config.AnimationConfig{}, err
	}
	a := cfg.Animation
	if err := yaml.Unmarshal(data, &a); err != nil {
		return config.AnimationConfig{}, fmt.Errorf("parsing settings: %w", err)
	}
	if err := a.Validate(); err != nil {
		return config.AnimationConfig{}, fmt.Errorf("invalid settings: %w", err)
	}
	return a, nil
}

// ErrNoSettings is returned when an SVG carries no embedded settings.
var ErrNoSettings = errors.New("export: no embedded settings")

// ReadSVGSettings extracts the settings embedded in an SVG written by WriteSVG.
func ReadSVGSettings(r io.Reader) (config.AnimationConfig, error) {
	dec := xml.NewDecoder(r)
	inDesc := false
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return config.AnimationConfig{}, fmt.Errorf("reading svg: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			inDesc = t.Name.Local == "desc"
		case xml.CharData:
			if inDesc {
				text.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "desc" && text.Len() > 0 {
				return UnmarshalSettings([]byte(text.String()))
			}
			inDesc = false
		}
	}
	return config.AnimationConfig{}, ErrNoSettings
}
