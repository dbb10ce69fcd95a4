package xrd

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestPrefixNamer(t *testing.T) {
	namer := PrefixNamer("XRD")

	for _, v := range []struct {
		filename string
		want     string
		wantErr  bool
	}{
		{"run3_XRD_TiO2_anatase_.xy", "XRD_TiO2_anatase_", false},
		{"/data/scans/XRD_S1_.csv", "XRD_S1_", false},
		{"nothing_here.xy", "", true},
	} {
		got, err := namer(v.filename)
		if v.wantErr {
			if err == nil {
				t.Fatalf("%s: expected an error", v.filename)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", v.filename, err)
		}
		if got != v.want {
			t.Fatalf("%s: got %q, want %q", v.filename, got, v.want)
		}
	}
}

func TestStemNamer(t *testing.T) {
	got, err := StemNamer()("/data/scans/sample_a.xy")
	if err != nil {
		t.Fatal(err)
	}
	if got != "sample_a" {
		t.Fatalf("got %q, want %q", got, "sample_a")
	}
}

func TestReadSeriesFileCSV(t *testing.T) {
	path := writeTempFile(t, "XRD_S1_.csv", "angle,intensity\n5.0,10\n5.1,20\n5.2,30\n")

	s, err := ReadSeriesFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	if s.Sample != "XRD_S1_" {
		t.Fatalf("sample: got %q, want XRD_S1_", s.Sample)
	}
	if !floatsEqual(s.Angles, []float64{5.0, 5.1, 5.2}) {
		t.Fatalf("angles: got %v", s.Angles)
	}
	if !floatsEqual(s.Intensities, []float64{10, 20, 30}) {
		t.Fatalf("intensities: got %v", s.Intensities)
	}
}

func TestReadSeriesFileWhitespaceXY(t *testing.T) {
	path := writeTempFile(t, "XRD_S2_.xy", "# comment line\n5.00  101\n5.05  99\n5.10  340\n")

	s, err := ReadSeriesFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Fatalf("points: got %d, want 3", s.Len())
	}
}

func TestReadSeriesFileGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "XRD_S3_.csv.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte("5.0,10\n5.1,20\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	s, err := ReadSeriesFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 {
		t.Fatalf("points: got %d, want 2", s.Len())
	}
}

func TestReadSeriesFileErrors(t *testing.T) {
	for _, v := range []struct {
		name    string
		content string
	}{
		{"XRD_one_column_.csv", "5.0\n5.1\n"},
		{"XRD_no_data_.csv", "angle,intensity\n"},
		{"XRD_garbage_.csv", "angle,intensity\n5.0,10\nnot,numeric\n"},
	} {
		path := writeTempFile(t, v.name, v.content)

		_, err := ReadSeriesFile(path, nil)
		if err == nil {
			t.Fatalf("%s: expected an error", v.name)
		}

		var readErr *ReadError
		if !errors.As(err, &readErr) {
			t.Fatalf("%s: error is %T, want *ReadError", v.name, err)
		}
		if !strings.Contains(readErr.Error(), v.name) {
			t.Fatalf("%s: error %q does not name the file", v.name, readErr)
		}
	}
}

func TestReadSeriesFileMissing(t *testing.T) {
	_, err := ReadSeriesFile(filepath.Join(t.TempDir(), "XRD_absent_.csv"), nil)

	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("error is %T, want *ReadError", err)
	}
}
