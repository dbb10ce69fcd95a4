// Package xrd merges X-ray diffraction scans into a single angle-aligned
// table and prepares that table for comparative plotting: per-sample
// vertical offsets, column ordering, wide/long reshaping, and smoothing.
package xrd

import "fmt"

// Series holds one sample's diffraction pattern as parallel slices of 2θ
// angles (degrees) and measured intensities (counts). Angles are not
// guaranteed unique within a scan, nor aligned across scans from different
// instruments. A Series is read once and never modified afterward.
type Series struct {
	Sample      string
	Angles      []float64
	Intensities []float64
}

// Len reports the number of measured points.
func (s Series) Len() int {
	return len(s.Angles)
}

func (s Series) validate() error {
	if s.Sample == "" {
		return fmt.Errorf("series has no sample identifier")
	}
	if len(s.Angles) != len(s.Intensities) {
		return fmt.Errorf("series %q has %d angles but %d intensities", s.Sample, len(s.Angles), len(s.Intensities))
	}

	return nil
}
