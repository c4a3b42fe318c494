package screen

import (
	"math"
	"testing"
)

func TestNormalizeGradient_RangeAndClipping(t *testing.T) {
	values := make([]*float64, 0, 11)
	for i := 0; i <= 10; i++ {
		values = append(values, fptr(float64(i)))
	}

	out := NormalizeGradient(values, false)
	for i, v := range out {
		if v == nil {
			t.Fatalf("index %d: nil output for non-nil input", i)
		}
		if *v < 0 || *v > 1 {
			t.Fatalf("index %d: %v out of [0,1]", i, *v)
		}
	}
	// Percentile clipping pins the extremes and the midpoint.
	if *out[0] != 0 || *out[10] != 1 {
		t.Fatalf("extremes = %v, %v, want 0 and 1", *out[0], *out[10])
	}
	if math.Abs(*out[5]-0.5) > 1e-9 {
		t.Fatalf("midpoint = %v, want 0.5", *out[5])
	}
}

func TestNormalizeGradient_ReverseIsComplement(t *testing.T) {
	values := []*float64{fptr(2), fptr(8), nil, fptr(5)}
	direct := NormalizeGradient(values, false)
	reversed := NormalizeGradient(values, true)

	for i := range values {
		if values[i] == nil {
			if direct[i] != nil || reversed[i] != nil {
				t.Fatalf("index %d: nil input must stay nil", i)
			}
			continue
		}
		if math.Abs(*reversed[i]-(1-*direct[i])) > 1e-9 {
			t.Fatalf("index %d: reverse=%v direct=%v", i, *reversed[i], *direct[i])
		}
	}
}

func TestNormalizeGradient_AllNil(t *testing.T) {
	out := NormalizeGradient([]*float64{nil, nil, nil}, false)
	if len(out) != 3 {
		t.Fatalf("want 3 outputs, got %d", len(out))
	}
	for i, v := range out {
		if v != nil {
			t.Fatalf("index %d: want nil, got %v", i, *v)
		}
	}
}

func TestNormalizeGradient_IdenticalValuesAreNeutral(t *testing.T) {
	out := NormalizeGradient([]*float64{fptr(7), fptr(7), fptr(7)}, false)
	for i, v := range out {
		if v == nil || *v != 0.5 {
			t.Fatalf("index %d: want neutral 0.5, got %v", i, v)
		}
	}
	// A degenerate scale reversed is still neutral.
	out = NormalizeGradient([]*float64{fptr(7), fptr(7)}, true)
	for i, v := range out {
		if v == nil || *v != 0.5 {
			t.Fatalf("reversed index %d: want 0.5, got %v", i, v)
		}
	}
}

func TestNormalizeGradient_SingleValue(t *testing.T) {
	out := NormalizeGradient([]*float64{nil, fptr(42)}, false)
	if out[0] != nil {
		t.Fatalf("nil input must stay nil")
	}
	if out[1] == nil || *out[1] != 0.5 {
		t.Fatalf("single value = %v, want 0.5", out[1])
	}
}
