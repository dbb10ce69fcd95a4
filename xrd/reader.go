package xrd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/diffractio/xrdplot"
)

// ReadError reports a file that could not be read or parsed as a scan. It
// always names the offending path.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ReadSeriesFile reads one instrument export into a Series. The file may be
// gzip/zip/xz/zlib/bzip2 compressed; the delimiter is sniffed, a single
// leading header line is tolerated, `#`-prefixed comment lines are skipped,
// and the first two columns are taken as 2θ angle and intensity. Files with
// fewer than two columns or no data rows produce a ReadError naming the
// path. A nil namer uses DefaultSampleNamer.
func ReadSeriesFile(path string, namer SampleNamer) (Series, error) {
	if namer == nil {
		namer = DefaultSampleNamer
	}

	sample, err := namer(path)
	if err != nil {
		return Series{}, &ReadError{Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return Series{}, &ReadError{Path: path, Err: pfx.Err(err)}
	}
	defer f.Close()

	rc, err := xrdplot.MaybeDecompress(f)
	if err != nil {
		return Series{}, &ReadError{Path: path, Err: pfx.Err(err)}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return Series{}, &ReadError{Path: path, Err: pfx.Err(err)}
	}

	// The sniffer nominates whichever byte recurs consistently, which in a
	// purely numeric export can be the decimal point; only accept separators
	// a diffractometer actually emits.
	delim := xrdplot.DetermineDelimiter(bytes.NewReader(data))
	if !strings.ContainsRune(",;\t| ", delim) {
		delim = ','
	}

	series, err := parseSeries(sample, data, delim)
	if err != nil {
		return Series{}, &ReadError{Path: path, Err: err}
	}

	return series, nil
}

func parseSeries(sample string, data []byte, delim rune) (Series, error) {
	out := Series{Sample: sample}

	headerSkipped := false
	lineNo := 0

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := splitFields(line, delim)
		if len(fields) < 2 {
			return Series{}, fmt.Errorf("line %d has %d column(s), need at least 2", lineNo, len(fields))
		}

		angle, errA := strconv.ParseFloat(fields[0], 64)
		intensity, errI := strconv.ParseFloat(fields[1], 64)
		if errA != nil || errI != nil {
			// Tolerate one column-header line before any data.
			if !headerSkipped && out.Len() == 0 {
				headerSkipped = true
				continue
			}
			return Series{}, fmt.Errorf("line %d is not numeric: %q", lineNo, line)
		}

		out.Angles = append(out.Angles, angle)
		out.Intensities = append(out.Intensities, intensity)
	}
	if err := sc.Err(); err != nil {
		return Series{}, pfx.Err(err)
	}

	if out.Len() == 0 {
		return Series{}, fmt.Errorf("no data rows")
	}

	return out, nil
}

// splitFields splits one scan line on the sniffed delimiter. When that
// yields a single column, the other separators the instruments use are
// tried, ending with whitespace for the space-padded .xy exports.
func splitFields(line string, delim rune) []string {
	for _, d := range []rune{delim, ';', ',', '\t', '|'} {
		if d == ' ' {
			continue
		}
		fields := strings.Split(line, string(d))
		if len(fields) < 2 {
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		return fields
	}

	return strings.Fields(line)
}
