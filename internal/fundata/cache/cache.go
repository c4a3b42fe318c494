package cache

import (
	"context"
	"sync"
	"time"

	"sectorscreen/internal/fundata"
)

// entry stores one symbol's cached fundamentals with expiry.
type entry struct {
	expiresAt time.Time
	fund      fundata.RawFundamentals
}

// Source caches fundamentals per symbol for a TTL and requests only
// missing symbols from the underlying source. Listing calls pass
// through untouched; they are cheap relative to the quote batches.
type Source struct {
	S        fundata.Source
	TTL      time.Duration
	MaxItems int

	mu    sync.RWMutex
	items map[string]entry // key: symbol
}

func (c *Source) Name() string { return c.S.Name() }

func (c *Source) ListIndustries(ctx context.Context, sectorKey string) (map[string]string, error) {
	return c.S.ListIndustries(ctx, sectorKey)
}

func (c *Source) ListCompanies(ctx context.Context, industryKey string, mode fundata.Mode) ([]fundata.SymbolRequest, error) {
	return c.S.ListCompanies(ctx, industryKey, mode)
}

// FetchFundamentals returns fundamentals for the requested symbols
// using cached entries when still valid.
func (c *Source) FetchFundamentals(ctx context.Context, symbols []string) (map[string]fundata.RawFundamentals, error) {
	if c.S == nil || c.TTL <= 0 {
		return c.S.FetchFundamentals(ctx, symbols)
	}

	now := time.Now()
	out := make(map[string]fundata.RawFundamentals, len(symbols))
	missing := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))

	c.mu.RLock()
	for _, s := range symbols {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if e, ok := c.items[s]; ok && now.Before(e.expiresAt) {
			out[s] = e.fund
			continue
		}
		missing = append(missing, s)
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return out, nil
	}

	fresh, err := c.S.FetchFundamentals(ctx, missing)
	if err != nil {
		// Partial cached data beats failing the whole pass.
		if len(out) > 0 {
			return out, nil
		}
		return nil, err
	}

	expiry := now.Add(c.TTL)
	c.mu.Lock()
	if c.items == nil {
		c.items = make(map[string]entry, len(fresh))
	}
	for sym, f := range fresh {
		c.items[sym] = entry{expiresAt: expiry, fund: f}
		out[sym] = f
	}
	// best-effort cap cache size: expired first, then arbitrary
	if c.MaxItems > 0 && len(c.items) > c.MaxItems {
		for k, v := range c.items {
			if len(c.items) <= c.MaxItems {
				break
			}
			if now.After(v.expiresAt) {
				delete(c.items, k)
			}
		}
		for k := range c.items {
			if len(c.items) <= c.MaxItems {
				break
			}
			delete(c.items, k)
		}
	}
	c.mu.Unlock()

	return out, nil
}
