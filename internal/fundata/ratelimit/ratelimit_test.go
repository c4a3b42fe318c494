package ratelimit

import (
	"context"
	"testing"
	"time"

	"sectorscreen/internal/fundata"
)

type stubSource struct {
	calls int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) ListIndustries(context.Context, string) (map[string]string, error) {
	s.calls++
	return map[string]string{"gold": "Gold"}, nil
}

func (s *stubSource) ListCompanies(context.Context, string, fundata.Mode) ([]fundata.SymbolRequest, error) {
	s.calls++
	return []fundata.SymbolRequest{{Symbol: "NEM"}}, nil
}

func (s *stubSource) FetchFundamentals(_ context.Context, symbols []string) (map[string]fundata.RawFundamentals, error) {
	s.calls++
	return map[string]fundata.RawFundamentals{}, nil
}

func TestTokenBucket_BurstThenRefill(t *testing.T) {
	tb := NewTokenBucket(1000, 2)

	// two immediate tokens from the initial burst
	for i := 0; i < 2; i++ {
		if err := tb.wait(context.Background()); err != nil {
			t.Fatalf("burst token %d: %v", i, err)
		}
	}
	// the third token needs a refill but arrives quickly at 1000/s
	start := time.Now()
	if err := tb.wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("refill took %v", time.Since(start))
	}
}

func TestTokenBucket_CanceledContext(t *testing.T) {
	tb := NewTokenBucket(0.001, 1)
	if err := tb.wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := tb.wait(ctx); err == nil {
		t.Fatal("want context error while starved")
	}
}

func TestTokenBucketSource_PassesThrough(t *testing.T) {
	inner := &stubSource{}
	src := &TokenBucketSource{S: inner, TB: NewTokenBucket(1000, 10)}

	if src.Name() != "stub" {
		t.Fatalf("name = %q", src.Name())
	}
	if _, err := src.ListIndustries(context.Background(), "basic-materials"); err != nil {
		t.Fatal(err)
	}
	if _, err := src.ListCompanies(context.Background(), "gold", fundata.ModeTopCompanies); err != nil {
		t.Fatal(err)
	}
	if _, err := src.FetchFundamentals(context.Background(), []string{"NEM"}); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 3 {
		t.Fatalf("inner calls = %d, want 3", inner.calls)
	}
}

func TestTokenBucketSource_NilBucketIsUngated(t *testing.T) {
	inner := &stubSource{}
	src := &TokenBucketSource{S: inner}
	if _, err := src.FetchFundamentals(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d", inner.calls)
	}
}

func TestMinIntervalSource_SpacesCalls(t *testing.T) {
	inner := &stubSource{}
	src := &MinIntervalSource{S: inner, Interval: 20 * time.Millisecond}

	start := time.Now()
	if _, err := src.FetchFundamentals(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := src.FetchFundamentals(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("second call ran after %v, want >= 20ms spacing", elapsed)
	}
	if inner.calls != 2 {
		t.Fatalf("inner calls = %d", inner.calls)
	}
}

func TestMinIntervalSource_CanceledWhileWaiting(t *testing.T) {
	inner := &stubSource{}
	src := &MinIntervalSource{S: inner, Interval: time.Hour}

	if _, err := src.ListIndustries(context.Background(), "energy"); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := src.ListIndustries(ctx, "energy"); err == nil {
		t.Fatal("want context error while gated")
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.calls)
	}
}

func TestMinIntervalSource_ZeroIntervalIsUngated(t *testing.T) {
	inner := &stubSource{}
	src := &MinIntervalSource{S: inner}
	for i := 0; i < 3; i++ {
		if _, err := src.ListCompanies(context.Background(), "gold", fundata.ModeTopCompanies); err != nil {
			t.Fatal(err)
		}
	}
	if inner.calls != 3 {
		t.Fatalf("inner calls = %d", inner.calls)
	}
}
