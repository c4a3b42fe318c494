package ratelimit

import (
	"context"
	"sync"
	"time"

	"sectorscreen/internal/fundata"
)

// TokenBucketSource wraps a Source and gates every provider call using
// a shared token bucket. Listings and quote batches draw from the same
// bucket since the upstream rate limit covers both.
type TokenBucketSource struct {
	S  fundata.Source
	TB *TokenBucket
}

func (t *TokenBucketSource) Name() string { return t.S.Name() }

func (t *TokenBucketSource) ListIndustries(ctx context.Context, sectorKey string) (map[string]string, error) {
	if err := t.acquire(ctx); err != nil {
		return nil, err
	}
	return t.S.ListIndustries(ctx, sectorKey)
}

func (t *TokenBucketSource) ListCompanies(ctx context.Context, industryKey string, mode fundata.Mode) ([]fundata.SymbolRequest, error) {
	if err := t.acquire(ctx); err != nil {
		return nil, err
	}
	return t.S.ListCompanies(ctx, industryKey, mode)
}

func (t *TokenBucketSource) FetchFundamentals(ctx context.Context, symbols []string) (map[string]fundata.RawFundamentals, error) {
	if err := t.acquire(ctx); err != nil {
		return nil, err
	}
	return t.S.FetchFundamentals(ctx, symbols)
}

func (t *TokenBucketSource) acquire(ctx context.Context) error {
	if t.TB == nil {
		return nil
	}
	return t.TB.wait(ctx)
}

// MinIntervalSource wraps a Source and enforces a minimum time between
// provider calls. Concurrent calls wait until the interval has elapsed
// since the last call, or return early if the context is canceled.
type MinIntervalSource struct {
	S        fundata.Source
	Interval time.Duration
	mu       sync.Mutex
	last     time.Time
}

func (m *MinIntervalSource) Name() string { return m.S.Name() }

func (m *MinIntervalSource) ListIndustries(ctx context.Context, sectorKey string) (map[string]string, error) {
	if err := m.gate(ctx); err != nil {
		return nil, err
	}
	defer m.mark()
	return m.S.ListIndustries(ctx, sectorKey)
}

func (m *MinIntervalSource) ListCompanies(ctx context.Context, industryKey string, mode fundata.Mode) ([]fundata.SymbolRequest, error) {
	if err := m.gate(ctx); err != nil {
		return nil, err
	}
	defer m.mark()
	return m.S.ListCompanies(ctx, industryKey, mode)
}

func (m *MinIntervalSource) FetchFundamentals(ctx context.Context, symbols []string) (map[string]fundata.RawFundamentals, error) {
	if err := m.gate(ctx); err != nil {
		return nil, err
	}
	defer m.mark()
	return m.S.FetchFundamentals(ctx, symbols)
}

func (m *MinIntervalSource) gate(ctx context.Context) error {
	if m.Interval <= 0 {
		return nil
	}
	m.mu.Lock()
	wait := time.Until(m.last.Add(m.Interval))
	m.mu.Unlock()
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *MinIntervalSource) mark() {
	if m.Interval <= 0 {
		return
	}
	m.mu.Lock()
	m.last = time.Now()
	m.mu.Unlock()
}
