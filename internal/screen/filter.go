package screen

import "sort"

// Filter holds the user-supplied row constraints. Zero values disable
// the corresponding filter.
type Filter struct {
	CapMin  *float64 `json:"cap_min"` // millions, reference currency, inclusive
	CapMax  *float64 `json:"cap_max"`
	TopN    int      `json:"top_n"`
	Ratings []string `json:"ratings"`
}

func (f Filter) capRangeActive() bool { return f.CapMin != nil || f.CapMax != nil }

// Apply returns a new table with the filters applied: market-cap range
// first, then top-N by market cap, then the rating filter. The result
// does not carry the canonical order; callers sort afterwards.
func (f Filter) Apply(t Table) Table {
	out := make(Table, 0, len(t))
	out = append(out, t...)

	if f.capRangeActive() {
		kept := out[:0]
		for _, r := range out {
			// a null market cap cannot satisfy an active range filter
			if r.MarketCap == nil {
				continue
			}
			if f.CapMin != nil && *r.MarketCap < *f.CapMin {
				continue
			}
			if f.CapMax != nil && *r.MarketCap > *f.CapMax {
				continue
			}
			kept = append(kept, r)
		}
		out = kept
	}

	if f.TopN > 0 {
		out = topByMarketCap(out, f.TopN)
	}

	if len(f.Ratings) > 0 {
		want := make(map[string]struct{}, len(f.Ratings))
		for _, r := range f.Ratings {
			want[r] = struct{}{}
		}
		kept := out[:0]
		for _, r := range out {
			if _, ok := want[r.Rating]; ok {
				kept = append(kept, r)
			}
		}
		out = kept
	}

	return out
}

// topByMarketCap keeps the n rows with the largest market cap,
// preserving their original relative order. Ties break in favor of the
// earlier row; null-cap rows never rank.
func topByMarketCap(t Table, n int) Table {
	idx := make([]int, 0, len(t))
	for i, r := range t {
		if r.MarketCap != nil {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return *t[idx[a]].MarketCap > *t[idx[b]].MarketCap
	})
	if n < len(idx) {
		idx = idx[:n]
	}
	sort.Ints(idx)
	out := make(Table, 0, len(idx))
	for _, i := range idx {
		out = append(out, t[i])
	}
	return out
}

// SortByMarketCap returns the table in canonical order: stable
// descending by market cap, null caps last. This is the final step
// before display or export and must be reapplied after any filter or
// merge.
func SortByMarketCap(t Table) Table {
	out := make(Table, 0, len(t))
	out = append(out, t...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].MarketCap, out[j].MarketCap
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
	return out
}
