package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pevans/tickernews/article"
	"github.com/pevans/tickernews/config"
	"github.com/pevans/tickernews/fetch"
	"github.com/pevans/tickernews/overview"
	"github.com/pevans/tickernews/search"
)

// loadConfig reads the config file and applies environment and flag
// overrides, in that order.
func loadConfig(globals *GlobalFlags) (*config.FileConfig, error) {
	var (
		cfg *config.FileConfig
		err error
	)
	if globals.Config != "" {
		cfg, err = config.Load(globals.Config)
	} else {
		cfg, err = config.LoadConfigFile()
	}
	if err != nil {
		return nil, err
	}

	cfg.Fetch.Renderer = getEnv("TICKERNEWS_RENDERER", cfg.Fetch.Renderer)
	cfg.Fetch.UserAgent = getEnv("TICKERNEWS_USER_AGENT", cfg.Fetch.UserAgent)
	cfg.Search.Engine = getEnv("TICKERNEWS_ENGINE", cfg.Search.Engine)

	if globals.Renderer != "" {
		cfg.Fetch.Renderer = globals.Renderer
	}
	if globals.Engine != "" {
		cfg.Search.Engine = globals.Engine
	}
	if globals.UserAgent != "" {
		cfg.Fetch.UserAgent = globals.UserAgent
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newFetcher creates the page fetcher named by the config.
func newFetcher(cfg *config.FileConfig) (fetch.Fetcher, error) {
	return fetch.New(cfg.Fetch.Renderer, cfg.FetchOptions())
}

// newCollector creates the discovery mechanism named by the config.
func newCollector(cfg *config.FileConfig, fetcher fetch.Fetcher) search.Collector {
	if cfg.Search.Engine == "feed" {
		opts := cfg.FetchOptions()
		client := &http.Client{Timeout: opts.Timeout}
		if opts.Timeout == 0 {
			client.Timeout = fetch.DefaultTimeout
		}
		return search.NewFeedCollector(client, cfg.Fetch.UserAgent)
	}

	collector := search.NewGoogleCollector(fetcher, cfg.SearchSelectors())
	if cfg.Search.BaseURL != "" {
		collector.BaseURL = cfg.Search.BaseURL
	}
	return collector
}

func maxPages(flag int, cfg *config.FileConfig) int {
	if flag != 0 {
		return flag
	}
	if cfg.Search.MaxPages != 0 {
		return cfg.Search.MaxPages
	}
	return search.DefaultMaxPages
}

// Execute implements the go-flags Commander interface for OverviewCommand.
func (c *OverviewCommand) Execute(_ []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	start, end, err := resolveDates(c.Start, c.End, cfg.Lookback(), time.Now())
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	builder := overview.NewBuilder(
		newCollector(cfg, fetcher),
		article.NewExtractor(fetcher, cfg.ArticleSelectors()),
	)
	if cfg.Search.Domain != "" {
		builder.Domain = cfg.Search.Domain
	}

	opts := overview.Options{
		Start:    start,
		End:      end,
		MaxPages: maxPages(c.MaxPages, cfg),
		Mode:     overview.Strict,
	}
	if c.BestEffort {
		opts.Mode = overview.BestEffort
	}

	ov, err := builder.Build(context.Background(), c.Args.Tickers, opts)
	if err != nil {
		return fmt.Errorf("overview failed: %w", err)
	}

	switch c.Format {
	case "json":
		if err := printJSON(c.out, ov); err != nil {
			return err
		}
	case "csv":
		if err := printRowsCSV(c.out, ov.Rows); err != nil {
			return err
		}
	default:
		printRowsTable(c.out, ov.Rows)
		printFailures(c.out, ov.Failures)
	}

	if len(ov.Failures) > 0 {
		return fmt.Errorf("%d of %d articles or searches failed", len(ov.Failures), len(ov.Failures)+len(ov.Rows))
	}

	return nil
}

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(_ []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	start, end, err := resolveDates(c.Start, c.End, cfg.Lookback(), time.Now())
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	domain := c.Domain
	if domain == "" {
		domain = cfg.Search.Domain
	}

	items, err := newCollector(cfg, fetcher).Collect(
		context.Background(), c.Args.Term, domain, start, end, maxPages(c.MaxPages, cfg))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if c.JSON {
		return printJSON(c.out, items)
	}

	printItems(c.out, items)
	return nil
}

// Execute implements the go-flags Commander interface for ArticleCommand.
func (c *ArticleCommand) Execute(_ []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	detail, err := article.NewExtractor(fetcher, cfg.ArticleSelectors()).Fetch(context.Background(), c.Args.URL)
	if err != nil {
		return fmt.Errorf("article failed: %w", err)
	}

	if c.JSON {
		return printJSON(c.out, detail)
	}

	printDetail(c.out, detail)
	return nil
}
