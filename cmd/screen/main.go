package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sectorscreen/internal/config"
	"sectorscreen/internal/export"
	"sectorscreen/internal/fundata"
	"sectorscreen/internal/fundata/cache"
	"sectorscreen/internal/fundata/ratelimit"
	"sectorscreen/internal/fundata/yahooadapter"
	"sectorscreen/internal/fundata/yahooapi"
	"sectorscreen/internal/httpx"
	"sectorscreen/internal/screen"
)

func main() {
	var (
		sectorName    string
		industriesCSV string
		modeStr       string
		symbolsCSV    string
		capMin        float64
		capMax        float64
		topN          int
		ratingsCSV    string
		outPrefix     string
		sheetName     string
		timeout       int
		configPath    string
	)

	flag.StringVar(&sectorName, "sector", "", "sector display name; with no -industries, lists its industries and exits")
	flag.StringVar(&industriesCSV, "industries", "", "comma-separated industry key=name pairs (name optional)")
	flag.StringVar(&modeStr, "mode", string(fundata.ModeTopCompanies), "listing mode: top_companies | top_growth_companies | top_performing_companies")
	flag.StringVar(&symbolsCSV, "symbols", "", "comma-separated ticker symbols for an ad-hoc screen (skips industry listings)")
	flag.Float64Var(&capMin, "cap-min", 0, "minimum market cap in millions (0 disables)")
	flag.Float64Var(&capMax, "cap-max", 0, "maximum market cap in millions (0 disables)")
	flag.IntVar(&topN, "top", 0, "keep only the N largest companies by market cap (0 disables)")
	flag.StringVar(&ratingsCSV, "ratings", "", "comma-separated ratings to keep")
	flag.StringVar(&outPrefix, "out", "", "write <out>_styled.xlsx and <out>_plain.xlsx instead of printing JSON")
	flag.StringVar(&sheetName, "sheet", export.DefaultSheet, "sheet name for workbook output")
	flag.IntVar(&timeout, "timeout", 0, "request timeout seconds (overrides config)")
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if timeout > 0 {
		cfg.Server.RequestTimeoutSec = timeout
	}

	src := buildSource(cfg, time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
	enricher := &screen.Enricher{Source: src, Log: log}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// no screen target: list sector industries as a convenience
	if symbolsCSV == "" && industriesCSV == "" {
		if sectorName == "" {
			log.Fatal("nothing to do: pass -symbols, -industries, or -sector")
		}
		key, ok := screen.SectorKey(sectorName)
		if !ok {
			log.Fatalf("unknown sector %q", sectorName)
		}
		industries, err := src.ListIndustries(ctx, key)
		if err != nil {
			log.Fatalf("list industries: %v", err)
		}
		printJSON(struct {
			Industries map[string]string `json:"industries"`
		}{industries})
		return
	}

	filter := screen.Filter{TopN: topN, Ratings: splitCSV(ratingsCSV)}
	if capMin > 0 {
		filter.CapMin = &capMin
	}
	if capMax > 0 {
		filter.CapMax = &capMax
	}

	var table screen.Table
	if symbolsCSV != "" {
		symbols := splitCSV(symbolsCSV)
		if len(symbols) == 0 {
			log.Fatal("no symbols provided")
		}
		table = enricher.ScreenSymbols(ctx, symbols)
		table = screen.SortByMarketCap(filter.Apply(table))
	} else {
		mode, err := fundata.ParseMode(modeStr)
		if err != nil {
			log.Fatalf("mode: %v", err)
		}
		industries, err := parseIndustries(industriesCSV)
		if err != nil {
			log.Fatalf("industries: %v", err)
		}
		table = enricher.Screen(ctx, industries, mode, filter)
	}

	if len(table) == 0 {
		log.Warn("no data for this selection")
	}

	if outPrefix == "" {
		printJSON(struct {
			Rows  screen.Table `json:"rows"`
			Count int          `json:"count"`
		}{table, len(table)})
		return
	}

	styled, err := export.Styled(table, sheetName)
	if err != nil {
		log.Fatalf("styled export: %v", err)
	}
	plain, err := export.Plain(table, sheetName)
	if err != nil {
		log.Fatalf("plain export: %v", err)
	}
	for _, f := range []struct {
		path string
		data []byte
	}{
		{outPrefix + "_styled.xlsx", styled.Bytes()},
		{outPrefix + "_plain.xlsx", plain.Bytes()},
	} {
		if err := os.WriteFile(f.path, f.data, 0o644); err != nil {
			log.Fatalf("write %s: %v", f.path, err)
		}
		log.Infof("wrote %s (%d rows)", f.path, len(table))
	}
}

// buildSource mirrors the server's provider stack assembly.
func buildSource(cfg config.Config, timeout time.Duration) fundata.Source {
	httpClient := httpx.New(timeout)

	opts := []yahooapi.ClientOption{
		yahooapi.WithHTTPClient(httpClient),
		yahooapi.WithBatchSize(cfg.Provider.MaxSymbolsPerRequest),
		yahooapi.WithMaxConcurrency(cfg.Provider.MaxConcurrency),
	}
	if cfg.Provider.BaseURL != "" {
		opts = append(opts, yahooapi.WithBaseURL(cfg.Provider.BaseURL))
	}
	client := yahooapi.NewClient(opts...)

	var src fundata.Source = yahooadapter.New(yahooadapter.Config{}, client)
	if cfg.Provider.MaxRequestsPerMinute > 0 {
		rate := float64(cfg.Provider.MaxRequestsPerMinute) / 60.0
		burst := cfg.Provider.Burst
		if burst <= 0 {
			burst = 1
		}
		src = &ratelimit.TokenBucketSource{S: src, TB: ratelimit.NewTokenBucket(rate, burst)}
	} else if cfg.Provider.MinRequestIntervalSec > 0 {
		interval := time.Duration(cfg.Provider.MinRequestIntervalSec) * time.Second
		src = &ratelimit.MinIntervalSource{S: src, Interval: interval}
	}
	if cfg.Provider.CacheTTLSeconds > 0 {
		src = &cache.Source{S: src, TTL: time.Duration(cfg.Provider.CacheTTLSeconds) * time.Second, MaxItems: cfg.Provider.CacheMaxItems}
	}
	return src
}

// parseIndustries parses "key=Display Name,key2=Other" pairs; a bare
// key uses itself as the label.
func parseIndustries(csv string) ([]screen.Industry, error) {
	parts := splitCSV(csv)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no industries provided")
	}
	out := make([]screen.Industry, 0, len(parts))
	for _, p := range parts {
		key, name, found := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("empty industry key in %q", p)
		}
		if !found || strings.TrimSpace(name) == "" {
			name = key
		}
		out = append(out, screen.Industry{Name: strings.TrimSpace(name), Key: key})
	}
	return out, nil
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
