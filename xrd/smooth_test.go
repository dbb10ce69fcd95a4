package xrd

import (
	"math"
	"testing"
)

func TestSmoothEdgeFallback(t *testing.T) {
	raw := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	got := Smooth(raw, 7)

	// The first and last window/2 positions keep the raw value.
	for _, i := range []int{0, 1, 2, 7, 8, 9} {
		if got[i] != raw[i] {
			t.Fatalf("edge position %d: got %v, want raw value %v", i, got[i], raw[i])
		}
	}

	// Interior positions are the centered window mean. For this linear ramp
	// the mean equals the center value.
	for i := 3; i <= 6; i++ {
		if got[i] != raw[i] {
			t.Fatalf("interior position %d: got %v, want %v", i, got[i], raw[i])
		}
	}
}

func TestSmoothInteriorMean(t *testing.T) {
	raw := []float64{0, 0, 9, 0, 0}
	got := Smooth(raw, 3)

	want := []float64{0, 3, 3, 3, 0}
	if !floatsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSmoothSkipsMissing(t *testing.T) {
	raw := []float64{1, math.NaN(), 3, 4, 5}
	got := Smooth(raw, 3)

	// A missing center stays missing.
	if !math.IsNaN(got[1]) {
		t.Fatalf("missing center became %v", got[1])
	}

	// A window containing a missing value averages the rest.
	if want := (3.0 + 4.0) / 2; got[2] != want {
		t.Fatalf("window with missing neighbor: got %v, want %v", got[2], want)
	}
	if want := (3.0 + 4.0 + 5.0) / 3; got[3] != want {
		t.Fatalf("clean window: got %v, want %v", got[3], want)
	}
}

func TestSmoothSmallWindowIsIdentity(t *testing.T) {
	raw := []float64{5, 1, 9}
	for _, window := range []int{0, 1} {
		got := Smooth(raw, window)
		if !floatsEqual(got, raw) {
			t.Fatalf("window %d: got %v, want unchanged input", window, got)
		}
	}
}

func TestSmoothDoesNotMutateInput(t *testing.T) {
	raw := []float64{0, 0, 9, 0, 0}
	Smooth(raw, 3)

	if raw[2] != 9 {
		t.Fatalf("input was mutated: %v", raw)
	}
}
