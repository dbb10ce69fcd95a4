// xrdplot runs the whole comparison workflow: it finds instrument export
// files, merges them into one angle-aligned table, applies vertical offsets
// for visual separation, renders per-sample and combined chart images, and
// optionally bundles the images into a timestamped zip.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/diffractio/xrdplot"
	"github.com/diffractio/xrdplot/bundle"
	"github.com/diffractio/xrdplot/plot"
	"github.com/diffractio/xrdplot/xrd"
)

type config struct {
	dir            string
	match          string
	prefix         string
	offsetsPath    string
	step           float64
	adjustPercent  float64
	orderName      string
	keepUnderscore bool
	longFormat     bool
	csvPath        string
	outDir         string
	stylePreset    string
	configPath     string
	width          int
	height         int
	window         int
	sqrtIntensity  bool
	backgroundWc   float64
	doZip          bool
	zipPrefix      string
}

func main() {
	var cfg config

	flag.StringVar(&cfg.dir, "dir", "./", "Directory holding the instrument export files.")
	flag.StringVar(&cfg.match, "match", "*.xy", "Glob pattern (within -dir) selecting export files.")
	flag.StringVar(&cfg.prefix, "prefix", xrd.DefaultSamplePrefix, "Sample token prefix in file names. Empty names samples after the file stem.")
	flag.StringVar(&cfg.offsetsPath, "offsets", "", "(Optional) CSV file with 'sample' and 'offset' columns of explicit vertical offsets.")
	flag.Float64Var(&cfg.step, "step", xrd.DefaultAutoStep, "Vertical spacing between auto-assigned offsets. 0 derives the step from the data.")
	flag.Float64Var(&cfg.adjustPercent, "adjust", 0, "Percent adjustment applied to the auto-offset step.")
	flag.StringVar(&cfg.orderName, "order", "reverse", "Column order: as_is, alphabetical, or reverse.")
	flag.BoolVar(&cfg.keepUnderscore, "keepunderscore", false, "Keep the trailing underscore on sample display names?")
	flag.BoolVar(&cfg.longFormat, "long", false, "Also write the transformed table in long (tidy) format?")
	flag.StringVar(&cfg.csvPath, "csv", "xrd_merged.csv", "Path for the transformed table CSV. Empty skips the export.")
	flag.StringVar(&cfg.outDir, "outdir", "./", "Directory for rendered PNG files.")
	flag.StringVar(&cfg.stylePreset, "style", "default", "Palette preset: default, grayscale, or warm.")
	flag.StringVar(&cfg.configPath, "config", "", "(Optional) JSON style config file; takes precedence over -style.")
	flag.IntVar(&cfg.width, "width", 0, "(Optional) chart pixel width override.")
	flag.IntVar(&cfg.height, "height", 0, "(Optional) chart pixel height override.")
	flag.IntVar(&cfg.window, "window", xrd.DefaultSmoothWindow, "Centered moving-average window for the smoothed charts.")
	flag.BoolVar(&cfg.sqrtIntensity, "sqrt", false, "Square-root compress intensities before plotting?")
	flag.Float64Var(&cfg.backgroundWc, "background", 0, "(Optional) high-pass cutoff wc for background suppression; 0 disables.")
	flag.BoolVar(&cfg.doZip, "zip", false, "Bundle the rendered images into a timestamped zip?")
	flag.StringVar(&cfg.zipPrefix, "zipprefix", "xrd_plots", "Archive name prefix when -zip is set.")
	flag.Parse()

	if cfg.dir == "" || cfg.match == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg config) error {
	series, err := readAll(cfg.dir, cfg.match, cfg.prefix)
	if err != nil {
		return err
	}

	merged, warnings, err := xrd.Merge(series)
	if err != nil {
		return err
	}
	logWarnings(warnings)
	log.Printf("Merged %d samples across %d distinct angles", len(merged.Samples), merged.NumRows())

	opts := xrd.DefaultTransformOptions()
	opts.AutoStep = cfg.step
	opts.AutoAdjustPercent = cfg.adjustPercent
	opts.StripTrailingSeparator = !cfg.keepUnderscore
	opts.Order = xrd.ParseOrderPolicy(cfg.orderName)

	if cfg.offsetsPath != "" {
		custom, err := loadOffsets(cfg.offsetsPath)
		if err != nil {
			return err
		}
		opts.CustomOffsets = custom
	}

	if cfg.step == 0 {
		opts.AutoStep = xrd.SuggestStep(merged, 0.5)
		log.Printf("Derived offset step %.1f from the data", opts.AutoStep)
	}

	wide, warnings, err := xrd.Transform(merged, opts)
	if err != nil {
		return err
	}
	logWarnings(warnings)

	if cfg.csvPath != "" {
		if err := writeTableCSV(cfg.csvPath, wide.WriteCSV); err != nil {
			return err
		}
		log.Printf("Wrote %s", cfg.csvPath)

		if cfg.longFormat {
			longPath := strings.TrimSuffix(cfg.csvPath, ".csv") + "_long.csv"
			if err := writeTableCSV(longPath, wide.ToLong().WriteCSV); err != nil {
				return err
			}
			log.Printf("Wrote %s", longPath)
		}
	}

	style, err := resolveStyle(cfg)
	if err != nil {
		return err
	}

	renderer := plot.Renderer{Style: style, OutDir: cfg.outDir}
	images, warnings, err := renderer.RenderAll(wide)
	if err != nil {
		return err
	}
	logWarnings(warnings)
	log.Printf("Rendered %d images to %s", len(images), cfg.outDir)

	if cfg.doZip {
		archive, err := bundle.WriteZip(cfg.outDir, cfg.zipPrefix, images)
		if err != nil {
			return err
		}
		log.Printf("Archived images to %s", archive)
	}

	return nil
}

func readAll(dir, match, prefix string) ([]xrd.Series, error) {
	dir, err := xrdplot.ExpandHome(dir)
	if err != nil {
		return nil, err
	}

	paths, err := filepath.Glob(filepath.Join(dir, match))
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files in %s match %q", dir, match)
	}
	sort.Strings(paths)

	namer := xrd.StemNamer()
	if prefix != "" {
		namer = xrd.PrefixNamer(prefix)
	}

	out := make([]xrd.Series, 0, len(paths))
	for _, path := range paths {
		s, err := xrd.ReadSeriesFile(path, namer)
		if err != nil {
			return nil, err
		}
		log.Printf("Read %d points from %s (sample %s)", s.Len(), path, s.Sample)
		out = append(out, s)
	}

	return out, nil
}

func resolveStyle(cfg config) (plot.Style, error) {
	var style plot.Style
	var err error

	if cfg.configPath != "" {
		style, err = plot.ParseStyleFromPath(cfg.configPath)
	} else {
		style, err = plot.StylePreset(cfg.stylePreset)
	}
	if err != nil {
		return plot.Style{}, err
	}

	if cfg.width > 0 {
		style.Width = cfg.width
	}
	if cfg.height > 0 {
		style.Height = cfg.height
	}
	if cfg.window > 0 {
		style.SmoothWindow = cfg.window
	}
	if cfg.sqrtIntensity {
		style.SqrtIntensity = true
	}
	if cfg.backgroundWc != 0 {
		style.BackgroundWc = cfg.backgroundWc
	}

	return style, nil
}

func writeTableCSV(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return write(f)
}

func logWarnings(warnings []xrd.Warning) {
	for _, w := range warnings {
		log.Println("Warning:", w)
	}
}
