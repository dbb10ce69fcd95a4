package xrd

import (
	"fmt"
	"math"
	"sort"
)

// JoinTolerance is the angular distance below which two measured 2θ values
// are treated as the same join key. Instruments report angles at slightly
// different float precision, so joining on raw equality would fragment rows;
// angles are instead bucketed to the nearest multiple of this tolerance.
const JoinTolerance = 1e-6

// Merge full-outer-joins the given scans on their 2θ angle and returns one
// table with a column per sample. Rows are sorted by ascending angle, and a
// sample without a measurement at some angle holds NaN there — never zero,
// since a true zero count is meaningful downstream.
//
// Empty scans are excluded and reported through the returned warnings.
// Duplicate sample identifiers are an error: the resulting column naming
// would be ambiguous. The result is independent of the order in which the
// scans are supplied.
func Merge(series []Series) (*MergedTable, []Warning, error) {
	if len(series) == 0 {
		return nil, nil, fmt.Errorf("merge: no input series")
	}

	var warnings []Warning

	seen := make(map[string]struct{}, len(series))
	kept := make([]Series, 0, len(series))
	for _, s := range series {
		if err := s.validate(); err != nil {
			return nil, nil, fmt.Errorf("merge: %w", err)
		}
		if _, dup := seen[s.Sample]; dup {
			return nil, nil, fmt.Errorf("merge: duplicate sample identifier %q", s.Sample)
		}
		seen[s.Sample] = struct{}{}

		if s.Len() == 0 {
			warnings = append(warnings, warningf("series %q is empty and was excluded from the merge", s.Sample))
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return nil, warnings, fmt.Errorf("merge: all %d input series were empty", len(series))
	}

	// Accumulate one bucket per join key. The canonical angle of a bucket is
	// the smallest raw angle observed in it, which does not depend on input
	// order. Within one scan, a repeated angle keeps the later measurement.
	type bucket struct {
		angle  float64
		values map[string]float64
	}
	buckets := make(map[int64]*bucket)
	for _, s := range kept {
		for i, angle := range s.Angles {
			key := int64(math.Round(angle / JoinTolerance))
			b := buckets[key]
			if b == nil {
				b = &bucket{angle: angle, values: make(map[string]float64, len(kept))}
				buckets[key] = b
			}
			if angle < b.angle {
				b.angle = angle
			}
			b.values[s.Sample] = s.Intensities[i]
		}
	}

	keys := make([]int64, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := &MergedTable{
		Angles:  make([]float64, 0, len(keys)),
		Samples: make([]string, 0, len(kept)),
		Columns: make(map[string][]float64, len(kept)),
	}
	for _, s := range kept {
		out.Samples = append(out.Samples, s.Sample)
		out.Columns[s.Sample] = make([]float64, 0, len(keys))
	}

	for _, key := range keys {
		b := buckets[key]
		out.Angles = append(out.Angles, b.angle)
		for _, sample := range out.Samples {
			v, ok := b.values[sample]
			if !ok {
				v = math.NaN()
			}
			out.Columns[sample] = append(out.Columns[sample], v)
		}
	}

	return out, warnings, nil
}
