// xrd2csv merges instrument export files into one angle-aligned table and
// writes it as delimited text, with no offsets or plotting. Useful for
// pulling merged scan data into other analysis tools.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/carbocation/pfx"

	"github.com/diffractio/xrdplot"
	"github.com/diffractio/xrdplot/xrd"
)

func main() {
	var dir, match, prefix, out string

	flag.StringVar(&dir, "dir", "./", "Directory holding the instrument export files.")
	flag.StringVar(&match, "match", "*.xy", "Glob pattern (within -dir) selecting export files.")
	flag.StringVar(&prefix, "prefix", xrd.DefaultSamplePrefix, "Sample token prefix in file names. Empty names samples after the file stem.")
	flag.StringVar(&out, "out", "", "Output CSV path. Empty writes to stdout.")
	flag.Parse()

	if dir == "" || match == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(dir, match, prefix, out); err != nil {
		log.Fatalln(err)
	}
}

func run(dir, match, prefix, out string) error {
	dir, err := xrdplot.ExpandHome(dir)
	if err != nil {
		return err
	}

	paths, err := filepath.Glob(filepath.Join(dir, match))
	if err != nil {
		return pfx.Err(err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files in %s match %q", dir, match)
	}
	sort.Strings(paths)

	namer := xrd.StemNamer()
	if prefix != "" {
		namer = xrd.PrefixNamer(prefix)
	}

	series := make([]xrd.Series, 0, len(paths))
	for _, path := range paths {
		s, err := xrd.ReadSeriesFile(path, namer)
		if err != nil {
			return err
		}
		series = append(series, s)
	}

	merged, warnings, err := xrd.Merge(series)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Println("Warning:", w)
	}
	log.Printf("Merged %d samples across %d distinct angles", len(merged.Samples), merged.NumRows())

	if out == "" {
		return merged.WriteCSV(os.Stdout)
	}

	f, err := os.Create(out)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := merged.WriteCSV(f); err != nil {
		return err
	}
	log.Printf("Wrote %s", out)

	return nil
}
