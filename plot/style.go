// Package plot renders merged, offset XRD tables into PNG chart images
// using go-chart. Styling is an explicit value passed to the renderer;
// there is no package-level palette state.
package plot

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/diffractio/xrdplot"
	"github.com/diffractio/xrdplot/xrd"
)

// Style configures chart rendering. Zero values for Width, Height,
// SmoothWindow, and Palette are filled from the default preset at render
// time, so a partially specified Style is usable.
type Style struct {
	Width  int
	Height int

	// Palette supplies per-sample stroke colors, cycled when there are more
	// samples than colors.
	Palette []drawing.Color

	// SmoothWindow is the centered moving-average window for the smoothed
	// chart variants.
	SmoothWindow int

	// SqrtIntensity compresses intensities by square root before plotting,
	// which keeps weak reflections visible next to dominant peaks.
	SqrtIntensity bool

	// BackgroundWc, when nonzero, runs a first-order high-pass filter over
	// each column before plotting to suppress the diffuse background. It is
	// the normalized cutoff in radians per sample and must lie in
	// (0.0001, pi).
	BackgroundWc float64
}

// Named palette presets. Hex values chosen for contrast on a white chart
// background.
var presets = map[string][]string{
	"default":   {"1f77b4", "d62728", "2ca02c", "9467bd", "ff7f0e", "8c564b", "17becf", "7f7f7f"},
	"grayscale": {"000000", "555555", "888888", "aaaaaa", "cccccc"},
	"warm":      {"7f1d1d", "b91c1c", "ea580c", "d97706", "ca8a04"},
}

// StylePreset returns the Style for a named preset. Unknown names are an
// error so a typo'd preset doesn't silently render in default colors.
func StylePreset(name string) (Style, error) {
	hexes, ok := presets[name]
	if !ok {
		return Style{}, fmt.Errorf("unknown style preset %q", name)
	}

	palette := make([]drawing.Color, len(hexes))
	for i, h := range hexes {
		palette[i] = drawing.ColorFromHex(h)
	}

	return Style{
		Width:        1024,
		Height:       512,
		Palette:      palette,
		SmoothWindow: xrd.DefaultSmoothWindow,
	}, nil
}

// DefaultStyle is the "default" preset.
func DefaultStyle() Style {
	s, err := StylePreset("default")
	if err != nil {
		// The default preset is always registered.
		panic(err)
	}

	return s
}

// color returns the stroke color for column i, cycling the palette.
func (s Style) color(i int) drawing.Color {
	palette := s.Palette
	if len(palette) == 0 {
		palette = DefaultStyle().Palette
	}

	return palette[i%len(palette)]
}

func (s Style) filled() Style {
	def := DefaultStyle()
	if s.Width <= 0 {
		s.Width = def.Width
	}
	if s.Height <= 0 {
		s.Height = def.Height
	}
	if s.SmoothWindow <= 0 {
		s.SmoothWindow = def.SmoothWindow
	}
	if len(s.Palette) == 0 {
		s.Palette = def.Palette
	}

	return s
}

// StyleConfig is the JSON shape of an on-disk styling configuration.
type StyleConfig struct {
	Preset        string   `json:"preset"`
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	Palette       []string `json:"palette"`
	SmoothWindow  int      `json:"smooth_window"`
	SqrtIntensity bool     `json:"sqrt_intensity"`
	BackgroundWc  float64  `json:"background_wc"`
}

// ParseStyleFromPath loads a Style from a JSON file: the preset (default
// "default") establishes the base, and any other set field overrides it.
func ParseStyleFromPath(path string) (Style, error) {
	path, err := xrdplot.ExpandHome(path)
	if err != nil {
		return Style{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Style{}, pfx.Err(err)
	}
	defer f.Close()

	var cfg StyleConfig
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return Style{}, pfx.Err(err)
	}

	if cfg.Preset == "" {
		cfg.Preset = "default"
	}
	out, err := StylePreset(cfg.Preset)
	if err != nil {
		return Style{}, err
	}

	if cfg.Width > 0 {
		out.Width = cfg.Width
	}
	if cfg.Height > 0 {
		out.Height = cfg.Height
	}
	if cfg.SmoothWindow > 0 {
		out.SmoothWindow = cfg.SmoothWindow
	}
	if len(cfg.Palette) > 0 {
		out.Palette = make([]drawing.Color, len(cfg.Palette))
		for i, h := range cfg.Palette {
			out.Palette[i] = drawing.ColorFromHex(h)
		}
	}
	out.SqrtIntensity = cfg.SqrtIntensity
	out.BackgroundWc = cfg.BackgroundWc

	return out, nil
}
