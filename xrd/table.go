package xrd

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// AngleColumn is the canonical name of the 2θ column in exported tables.
const AngleColumn = "angle"

// MergedTable is the angle-aligned union of all merged scans: one sorted
// angle column plus one intensity column per sample, each of length
// len(Angles). Missing measurements are NaN. Samples preserves the column
// order the scans were merged in.
type MergedTable struct {
	Angles  []float64
	Samples []string
	Columns map[string][]float64
}

// NumRows reports the number of distinct angles in the table.
func (t *MergedTable) NumRows() int {
	return len(t.Angles)
}

// WriteCSV writes the table as comma-delimited text with an "angle" header
// column followed by one column per sample. Missing values serialize as
// empty fields so they survive a round trip through spreadsheet tools.
func (t *MergedTable) WriteCSV(w io.Writer) error {
	return writeDelimited(w, t.Angles, t.Samples, func(sample string) []float64 {
		return t.Columns[sample]
	})
}

func writeDelimited(w io.Writer, angles []float64, samples []string, column func(string) []float64) error {
	out := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(out, strings.Join(append([]string{AngleColumn}, samples...), ",")); err != nil {
		return pfx.Err(err)
	}

	fields := make([]string, 0, len(samples)+1)
	for i, angle := range angles {
		fields = fields[:0]
		fields = append(fields, formatCell(angle))
		for _, sample := range samples {
			fields = append(fields, formatCell(column(sample)[i]))
		}
		if _, err := fmt.Fprintln(out, strings.Join(fields, ",")); err != nil {
			return pfx.Err(err)
		}
	}

	if err := out.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
