package xrd

import (
	"bytes"
	"strings"
	"testing"
)

func TestMergedTableWriteCSV(t *testing.T) {
	merged, _, err := Merge([]Series{
		{Sample: "A", Angles: []float64{5.0, 5.1}, Intensities: []float64{10, 20}},
		{Sample: "B", Angles: []float64{5.1}, Intensities: []float64{2}},
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := merged.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"angle,A,B",
		"5,10,", // missing values serialize as empty fields, not sentinels
		"5.1,20,2",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWideTableWriteCSV(t *testing.T) {
	merged, _, err := Merge([]Series{
		{Sample: "S1", Angles: []float64{1, 2}, Intensities: []float64{10, 20}},
		{Sample: "S2", Angles: []float64{1, 2}, Intensities: []float64{1, 2}},
	})
	if err != nil {
		t.Fatal(err)
	}

	opts := DefaultTransformOptions()
	opts.AutoStep = 100

	wide, _, err := Transform(merged, opts)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := wide.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"angle,S2,S1",
		"1,101,10",
		"2,102,20",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLongTableWriteCSV(t *testing.T) {
	merged, _, err := Merge([]Series{
		{Sample: "A", Angles: []float64{1}, Intensities: []float64{10}},
		{Sample: "B", Angles: []float64{1}, Intensities: []float64{20}},
	})
	if err != nil {
		t.Fatal(err)
	}

	opts := DefaultTransformOptions()
	opts.AutoStep = 0
	opts.Order = OrderAsIs

	wide, _, err := Transform(merged, opts)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := wide.ToLong().WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"angle,sample,intensity",
		"1,A,10",
		"1,B,20",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}
