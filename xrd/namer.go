package xrd

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// SampleNamer derives a sample identifier from an instrument file name.
// Naming is injectable because every lab encodes sample IDs differently;
// the merge and transform stages only ever see the resulting identifier.
type SampleNamer func(filename string) (string, error)

// DefaultSamplePrefix is the literal token prefix the default namer looks
// for in file names.
const DefaultSamplePrefix = "XRD"

// PrefixNamer extracts the sample token from the file's base name: the
// token starts with prefix, continues with alphanumerics and underscores,
// and ends immediately before the extension dot. The trailing underscore
// our instruments append stays part of the identifier; display-name cleanup
// happens in Transform. For example, "run3_XRD_TiO2_anatase_.xy" names the
// sample "XRD_TiO2_anatase_".
func PrefixNamer(prefix string) SampleNamer {
	re := regexp.MustCompile("(" + regexp.QuoteMeta(prefix) + `[A-Za-z0-9_]*_)\.`)

	return func(filename string) (string, error) {
		base := filepath.Base(filename)
		m := re.FindStringSubmatch(base)
		if m == nil {
			return "", fmt.Errorf("filename %q does not contain a %q-prefixed sample token", base, prefix)
		}

		return m[1], nil
	}
}

// StemNamer names the sample after the file's base name with the extension
// removed. Useful when files are already named one-per-sample.
func StemNamer() SampleNamer {
	return func(filename string) (string, error) {
		base := filepath.Base(filename)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if stem == "" {
			return "", fmt.Errorf("filename %q has no stem to name a sample by", base)
		}

		return stem, nil
	}
}

// DefaultSampleNamer is the namer used when callers don't supply one.
var DefaultSampleNamer = PrefixNamer(DefaultSamplePrefix)
