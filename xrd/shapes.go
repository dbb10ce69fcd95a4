package xrd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

// Column is one sample's offset-applied intensity column in a WideTable.
type Column struct {
	Sample string
	Values []float64
}

// WideTable is the transformed table in wide orientation: the canonical
// angle column plus one column per sample, in resolved display order.
type WideTable struct {
	Angles  []float64
	Columns []Column
}

// SampleOrder returns the column order as sample names.
func (t *WideTable) SampleOrder() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Sample
	}

	return out
}

// WriteCSV writes the wide table as comma-delimited text. Missing values
// serialize as empty fields.
func (t *WideTable) WriteCSV(w io.Writer) error {
	columns := make(map[string][]float64, len(t.Columns))
	for _, c := range t.Columns {
		columns[c.Sample] = c.Values
	}

	return writeDelimited(w, t.Angles, t.SampleOrder(), func(sample string) []float64 {
		return columns[sample]
	})
}

// LongRow is one (angle, sample, intensity) observation in a LongTable.
type LongRow struct {
	Angle     float64
	Sample    string
	Intensity float64
}

// LongTable is the transformed table in tidy orientation. SampleOrder
// carries the categorical ordering of the sample field — the resolved column
// order of the wide table it came from — which downstream grouping and
// plotting must preserve.
type LongTable struct {
	SampleOrder []string
	Rows        []LongRow
}

// ToLong reshapes the wide table into tidy rows, sample-major so all of one
// sample's points are contiguous in SampleOrder. Missing values are kept so
// the conversion is lossless.
func (t *WideTable) ToLong() *LongTable {
	out := &LongTable{
		SampleOrder: t.SampleOrder(),
		Rows:        make([]LongRow, 0, len(t.Columns)*len(t.Angles)),
	}
	for _, c := range t.Columns {
		for i, angle := range t.Angles {
			out.Rows = append(out.Rows, LongRow{Angle: angle, Sample: c.Sample, Intensity: c.Values[i]})
		}
	}

	return out
}

// ToWide regroups tidy rows back into a wide table, preserving SampleOrder
// as the column order. It errors if the rows are not a complete sample-major
// grid over a single angle sequence, since such input cannot have come from
// ToLong.
func (t *LongTable) ToWide() (*WideTable, error) {
	if len(t.SampleOrder) == 0 {
		return nil, fmt.Errorf("towide: no sample order")
	}
	if len(t.Rows)%len(t.SampleOrder) != 0 {
		return nil, fmt.Errorf("towide: %d rows cannot group evenly into %d samples", len(t.Rows), len(t.SampleOrder))
	}

	perSample := len(t.Rows) / len(t.SampleOrder)
	out := &WideTable{
		Angles:  make([]float64, 0, perSample),
		Columns: make([]Column, 0, len(t.SampleOrder)),
	}

	for si, sample := range t.SampleOrder {
		values := make([]float64, 0, perSample)
		for i := 0; i < perSample; i++ {
			row := t.Rows[si*perSample+i]
			if row.Sample != sample {
				return nil, fmt.Errorf("towide: row %d belongs to sample %q, expected %q", si*perSample+i, row.Sample, sample)
			}
			if si == 0 {
				out.Angles = append(out.Angles, row.Angle)
			} else if row.Angle != out.Angles[i] {
				return nil, fmt.Errorf("towide: sample %q angle %v does not match grid angle %v", sample, row.Angle, out.Angles[i])
			}
			values = append(values, row.Intensity)
		}
		out.Columns = append(out.Columns, Column{Sample: sample, Values: values})
	}

	return out, nil
}

// WriteCSV writes the tidy table as comma-delimited text with angle, sample,
// and intensity columns.
func (t *LongTable) WriteCSV(w io.Writer) error {
	out := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(out, strings.Join([]string{AngleColumn, "sample", "intensity"}, ",")); err != nil {
		return pfx.Err(err)
	}
	for _, row := range t.Rows {
		line := strings.Join([]string{formatCell(row.Angle), row.Sample, formatCell(row.Intensity)}, ",")
		if _, err := fmt.Fprintln(out, line); err != nil {
			return pfx.Err(err)
		}
	}

	if err := out.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
