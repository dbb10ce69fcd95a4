package plot

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/diffractio/xrdplot/xrd"
)

func testTable(t *testing.T) *xrd.WideTable {
	t.Helper()

	angles := make([]float64, 20)
	s1 := make([]float64, 20)
	s2 := make([]float64, 20)
	for i := range angles {
		angles[i] = 5.0 + 0.05*float64(i)
		s1[i] = 100 + 10*math.Sin(float64(i))
		s2[i] = 400 + 20*math.Cos(float64(i))
	}

	return &xrd.WideTable{
		Angles: angles,
		Columns: []xrd.Column{
			{Sample: "S2", Values: s2},
			{Sample: "S1", Values: s1},
		},
	}
}

func TestRenderAll(t *testing.T) {
	dir := t.TempDir()

	r := Renderer{Style: DefaultStyle(), OutDir: dir}
	written, warnings, err := r.RenderAll(testTable(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	// Two variants per sample plus two combined charts.
	if len(written) != 6 {
		t.Fatalf("wrote %d images, want 6", len(written))
	}

	for _, path := range written {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}
}

func TestRenderAllSkipsUnplottableSample(t *testing.T) {
	table := testTable(t)
	table.Columns = append(table.Columns, xrd.Column{
		Sample: "AllMissing",
		Values: nanSlice(len(table.Angles)),
	})

	r := Renderer{Style: DefaultStyle(), OutDir: t.TempDir()}
	written, warnings, err := r.RenderAll(table)
	if err != nil {
		t.Fatal(err)
	}

	if len(warnings) != 1 {
		t.Fatalf("warnings: got %v, want one for the unplottable sample", warnings)
	}
	if len(written) != 6 {
		t.Fatalf("wrote %d images, want 6", len(written))
	}
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

func TestRenderAllEmptyTable(t *testing.T) {
	r := Renderer{Style: DefaultStyle(), OutDir: t.TempDir()}
	if _, _, err := r.RenderAll(&xrd.WideTable{}); err == nil {
		t.Fatal("expected an error for an empty table")
	}
}

func TestRenderBadBackgroundFilter(t *testing.T) {
	style := DefaultStyle()
	style.BackgroundWc = 100 // outside butterworth's valid range

	r := Renderer{Style: style, OutDir: t.TempDir()}
	if _, _, err := r.RenderAll(testTable(t)); err == nil {
		t.Fatal("expected an error for an invalid background cutoff")
	}
}

func TestStylePreset(t *testing.T) {
	for _, name := range []string{"default", "grayscale", "warm"} {
		s, err := StylePreset(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(s.Palette) == 0 {
			t.Fatalf("%s: empty palette", name)
		}
	}

	if _, err := StylePreset("neon"); err == nil {
		t.Fatal("expected an error for an unknown preset")
	}
}

func TestParseStyleFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.json")

	cfg := StyleConfig{
		Preset:       "grayscale",
		Width:        640,
		SmoothWindow: 11,
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	style, err := ParseStyleFromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	if style.Width != 640 {
		t.Fatalf("width: got %d, want 640", style.Width)
	}
	if style.Height != 512 {
		t.Fatalf("height should come from the preset: got %d", style.Height)
	}
	if style.SmoothWindow != 11 {
		t.Fatalf("smooth window: got %d, want 11", style.SmoothWindow)
	}
}

func TestSafeName(t *testing.T) {
	for _, v := range []struct {
		in, want string
	}{
		{"XRD_TiO2", "XRD_TiO2"},
		{"sample 3 (rutile)", "sample_3_rutile"},
		{"///", "sample"},
	} {
		if got := safeName(v.in); got != v.want {
			t.Fatalf("safeName(%q): got %q, want %q", v.in, got, v.want)
		}
	}
}
