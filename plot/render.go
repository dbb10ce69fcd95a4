package plot

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jfcg/butter"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/diffractio/xrdplot/xrd"
)

// Renderer writes chart images for a transformed table: per sample, a
// raw-with-smoothed-overlay PNG and a smoothed-only PNG; across samples, a
// combined overlay PNG and a combined smoothed-only PNG.
type Renderer struct {
	Style Style

	// OutDir receives the PNG files. Empty means the current directory.
	OutDir string

	// Labels optionally maps sample identifiers to display labels for
	// legends and file names.
	Labels map[string]string
}

type plotColumn struct {
	label    string
	color    drawing.Color
	angles   []float64
	raw      []float64
	smoothed []float64
}

// RenderAll renders every chart variant and returns the written paths.
// Samples with fewer than two plottable points are skipped with a warning;
// a chart cannot be drawn through fewer.
func (r Renderer) RenderAll(t *xrd.WideTable) ([]string, []xrd.Warning, error) {
	if t == nil || len(t.Columns) == 0 {
		return nil, nil, fmt.Errorf("render: empty table")
	}

	style := r.Style.filled()

	outDir := r.OutDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, nil, pfx.Err(err)
	}

	columns, warnings, err := r.prepare(t, style)
	if err != nil {
		return nil, warnings, err
	}
	if len(columns) == 0 {
		return nil, warnings, fmt.Errorf("render: no sample has enough points to plot")
	}

	var written []string

	for _, c := range columns {
		overlay := filepath.Join(outDir, safeName(c.label)+"_overlay.png")
		err := renderChart(overlay, style, false,
			rawSeries(c.label, c, 1.0),
			smoothedSeries(c.label+" (smoothed)", c, 2.25),
		)
		if err != nil {
			return written, warnings, err
		}
		written = append(written, overlay)

		smoothed := filepath.Join(outDir, safeName(c.label)+"_smoothed.png")
		if err := renderChart(smoothed, style, false, smoothedSeries(c.label, c, 1.5)); err != nil {
			return written, warnings, err
		}
		written = append(written, smoothed)
	}

	combinedRaw := make([]chart.Series, 0, len(columns))
	combinedSmooth := make([]chart.Series, 0, len(columns))
	for _, c := range columns {
		combinedRaw = append(combinedRaw, rawSeries(c.label, c, 1.0))
		combinedSmooth = append(combinedSmooth, smoothedSeries(c.label, c, 1.5))
	}

	combinedOverlay := filepath.Join(outDir, "combined_overlay.png")
	if err := renderChart(combinedOverlay, style, true, combinedRaw...); err != nil {
		return written, warnings, err
	}
	written = append(written, combinedOverlay)

	combinedSmoothed := filepath.Join(outDir, "combined_smoothed.png")
	if err := renderChart(combinedSmoothed, style, true, combinedSmooth...); err != nil {
		return written, warnings, err
	}
	written = append(written, combinedSmoothed)

	return written, warnings, nil
}

func (r Renderer) prepare(t *xrd.WideTable, style Style) ([]plotColumn, []xrd.Warning, error) {
	var warnings []xrd.Warning

	columns := make([]plotColumn, 0, len(t.Columns))
	for i, c := range t.Columns {
		angles, values := dropMissing(t.Angles, c.Values)
		if len(values) < 2 {
			warnings = append(warnings, xrd.Warning(fmt.Sprintf("sample %q has %d plottable point(s) and was not rendered", c.Sample, len(values))))
			continue
		}

		if style.BackgroundWc != 0 {
			filtered, err := highPass(values, style.BackgroundWc)
			if err != nil {
				return nil, warnings, err
			}
			values = filtered
		}

		if style.SqrtIntensity {
			compressed := make([]float64, len(values))
			for j, v := range values {
				compressed[j] = math.Sqrt(math.Max(v, 0))
			}
			values = compressed
		}

		label := c.Sample
		if l, ok := r.Labels[c.Sample]; ok && l != "" {
			label = l
		}

		columns = append(columns, plotColumn{
			label:    label,
			color:    style.color(i),
			angles:   angles,
			raw:      values,
			smoothed: xrd.Smooth(values, style.SmoothWindow),
		})
	}

	return columns, warnings, nil
}

func rawSeries(name string, c plotColumn, strokeWidth float64) chart.Series {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: c.angles,
		YValues: c.raw,
		Style: chart.Style{
			StrokeColor: c.color,
			StrokeWidth: strokeWidth,
		},
	}
}

func smoothedSeries(name string, c plotColumn, strokeWidth float64) chart.Series {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: c.angles,
		YValues: c.smoothed,
		Style: chart.Style{
			StrokeColor: c.color,
			StrokeWidth: strokeWidth,
		},
	}
}

func renderChart(path string, style Style, legend bool, series ...chart.Series) error {
	graph := chart.Chart{
		Width:  style.Width,
		Height: style.Height,
		XAxis: chart.XAxis{
			Name: "2θ (°)",
		},
		YAxis: chart.YAxis{
			Name: "intensity",
		},
		Series: series,
	}
	if legend {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	// Render to a byte buffer
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	outFile, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer outFile.Close()

	if _, err := buffer.WriteTo(outFile); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// highPass suppresses the slowly varying diffuse background with a
// first-order butterworth filter.
func highPass(values []float64, wc float64) ([]float64, error) {
	filt := butter.NewHighPass1(wc)
	if filt == nil {
		return nil, fmt.Errorf("invalid background filter (attempted wc=%f, but expect .0001 < wc && wc < 3.1415)", wc)
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = filt.Next(v)
	}

	return out, nil
}

func dropMissing(angles, values []float64) ([]float64, []float64) {
	outA := make([]float64, 0, len(values))
	outV := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		outA = append(outA, angles[i])
		outV = append(outV, v)
	}

	return outA, outV
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// safeName converts a display label to a file-name-safe token.
func safeName(label string) string {
	name := unsafeNameChars.ReplaceAllString(label, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "sample"
	}

	return name
}
