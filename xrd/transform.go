package xrd

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultAutoStep is the vertical separation applied between consecutive
// samples when no explicit offsets are supplied. 300 counts keeps typical
// powder patterns visually distinct without dwarfing weak reflections.
const DefaultAutoStep = 300

// OrderPolicy selects how sample columns are ordered in the transformed
// table. It is a closed enumeration so an invalid policy cannot be
// constructed at runtime from arbitrary strings.
type OrderPolicy int

const (
	// OrderAsIs keeps the merged table's column order.
	OrderAsIs OrderPolicy = iota
	// OrderAlphabetical sorts sample names ascending.
	OrderAlphabetical
	// OrderReverse sorts sample names descending.
	OrderReverse
)

// ParseOrderPolicy maps a policy name to its OrderPolicy. Unrecognized names
// fall back to OrderAsIs rather than failing.
func ParseOrderPolicy(name string) OrderPolicy {
	switch name {
	case "alphabetical":
		return OrderAlphabetical
	case "reverse":
		return OrderReverse
	}

	return OrderAsIs
}

func (p OrderPolicy) String() string {
	switch p {
	case OrderAlphabetical:
		return "alphabetical"
	case OrderReverse:
		return "reverse"
	}

	return "as_is"
}

// TransformOptions configures Transform. The zero value is not useful;
// start from DefaultTransformOptions.
type TransformOptions struct {
	// CustomOffsets maps sample identifiers to explicit vertical offsets.
	// Samples not named here are auto-assigned above the largest custom
	// value. When empty, every sample is auto-assigned.
	CustomOffsets map[string]float64

	// AutoStep is the spacing between auto-assigned offsets.
	AutoStep float64

	// AutoAdjustPercent scales AutoStep by (1 + pct/100).
	AutoAdjustPercent float64

	// StripTrailingSeparator removes exactly one trailing underscore from
	// each sample's display name.
	StripTrailingSeparator bool

	// Order is the column ordering policy, applied to renamed samples.
	Order OrderPolicy
}

// DefaultTransformOptions returns the options used by the command-line
// tools when nothing is overridden.
func DefaultTransformOptions() TransformOptions {
	return TransformOptions{
		AutoStep:               DefaultAutoStep,
		StripTrailingSeparator: true,
		Order:                  OrderReverse,
	}
}

// ResolveOffsets determines one vertical offset per sample, in the given
// sample order. Samples named in custom keep their value verbatim; the rest
// are assigned sequentially, starting at zero when custom is empty or at
// max(custom)+step otherwise. Custom keys naming absent samples produce a
// warning, not an error.
func ResolveOffsets(samples []string, custom map[string]float64, step, adjustPercent float64) (map[string]float64, []Warning, error) {
	adjusted := step * (1 + adjustPercent/100)

	offsets := make(map[string]float64, len(samples))

	if len(custom) == 0 {
		for i, sample := range samples {
			offsets[sample] = float64(i) * adjusted
		}
		return offsets, nil, nil
	}

	present := make(map[string]struct{}, len(samples))
	for _, sample := range samples {
		present[sample] = struct{}{}
	}

	var warnings []Warning
	maxCustom := math.Inf(-1)
	for _, name := range sortedKeys(custom) {
		if custom[name] > maxCustom {
			maxCustom = custom[name]
		}
		if _, ok := present[name]; !ok {
			warnings = append(warnings, warningf("custom offset names sample %q, which is not in the table", name))
			continue
		}
		offsets[name] = custom[name]
	}

	next := maxCustom + adjusted
	for _, sample := range samples {
		if _, ok := offsets[sample]; ok {
			continue
		}
		offsets[sample] = next
		next += adjusted
	}

	for _, sample := range samples {
		if _, ok := offsets[sample]; !ok {
			return nil, warnings, fmt.Errorf("no offset resolved for sample %q", sample)
		}
	}

	return offsets, warnings, nil
}

// Transform applies resolved offsets to a merged table and returns the
// wide-format result: the angle column renamed to its canonical name, sample
// names cleaned up, each intensity column shifted by its offset, and columns
// reordered per the ordering policy. Use ToLong on the result for the tidy
// shape. Transform does not modify its input and is deterministic.
func Transform(t *MergedTable, opts TransformOptions) (*WideTable, []Warning, error) {
	if t == nil || len(t.Samples) == 0 {
		return nil, nil, fmt.Errorf("transform: empty table")
	}

	offsets, warnings, err := ResolveOffsets(t.Samples, opts.CustomOffsets, opts.AutoStep, opts.AutoAdjustPercent)
	if err != nil {
		return nil, warnings, fmt.Errorf("transform: %w", err)
	}

	columns := make([]Column, 0, len(t.Samples))
	names := make(map[string]string, len(t.Samples))
	for _, sample := range t.Samples {
		name := sample
		if opts.StripTrailingSeparator {
			name = strings.TrimSuffix(name, "_")
		}
		if prior, clash := names[name]; clash {
			return nil, warnings, fmt.Errorf("transform: samples %q and %q both display as %q", prior, sample, name)
		}
		names[name] = sample

		src := t.Columns[sample]
		values := make([]float64, len(src))
		for i, v := range src {
			values[i] = v + offsets[sample]
		}
		columns = append(columns, Column{Sample: name, Values: values})
	}

	switch opts.Order {
	case OrderAlphabetical:
		sort.Slice(columns, func(i, j int) bool { return columns[i].Sample < columns[j].Sample })
	case OrderReverse:
		sort.Slice(columns, func(i, j int) bool { return columns[i].Sample > columns[j].Sample })
	}

	angles := make([]float64, len(t.Angles))
	copy(angles, t.Angles)

	return &WideTable{Angles: angles, Columns: columns}, warnings, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
