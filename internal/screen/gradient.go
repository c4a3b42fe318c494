package screen

import "sort"

// NormalizeGradient maps a numeric column onto [0,1] for color
// grading: values are clipped to the 5th..95th percentile of the
// non-null inputs and rescaled linearly. reverse flips the scale.
// Nil inputs map to nil outputs. When the clipping bounds coincide
// every non-null value maps to a neutral 0.5. Display-only; the
// underlying records are never altered.
func NormalizeGradient(values []*float64, reverse bool) []*float64 {
	out := make([]*float64, len(values))

	present := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			present = append(present, *v)
		}
	}
	if len(present) == 0 {
		return out
	}
	sort.Float64s(present)
	lower := quantile(present, 0.05)
	upper := quantile(present, 0.95)

	for i, v := range values {
		if v == nil {
			continue
		}
		x := *v
		if x < lower {
			x = lower
		}
		if x > upper {
			x = upper
		}
		var scaled float64
		if upper == lower {
			scaled = 0.5
		} else {
			scaled = (x - lower) / (upper - lower)
		}
		if reverse {
			scaled = 1 - scaled
		}
		out[i] = &scaled
	}
	return out
}

// quantile interpolates linearly over a sorted sample.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
