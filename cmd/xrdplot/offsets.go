package main

import (
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

type offsetRow struct {
	Sample string  `csv:"sample"`
	Offset float64 `csv:"offset"`
}

// loadOffsets reads explicit per-sample vertical offsets from a CSV file
// with sample and offset columns.
func loadOffsets(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	var rows []offsetRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, pfx.Err(err)
	}

	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.Sample] = row.Offset
	}

	return out, nil
}
