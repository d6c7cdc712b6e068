package main

import "io"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config    string `long:"config" description:"Path to config file (default: $TICKERNEWS_CONFIG or ~/.tickernews/config.yaml)"`
	Renderer  string `long:"renderer" description:"Page renderer: http | chrome"`
	Engine    string `long:"engine" description:"Article discovery: google | feed"`
	UserAgent string `long:"user-agent" description:"User-Agent header for page fetches"`
}

// OverviewCommand builds the news table for one or more tickers.
type OverviewCommand struct {
	Start      string `long:"start" description:"First day to search (YYYY-MM-DD, default: a week ago)"`
	End        string `long:"end" description:"Day to search before (YYYY-MM-DD, default: today)"`
	MaxPages   int    `long:"max-pages" description:"Result pages per ticker (default: from config, 3)"`
	BestEffort bool   `long:"best-effort" description:"Skip failed articles instead of aborting"`
	Format     string `long:"format" description:"Output format" choice:"table" choice:"json" choice:"csv" default:"table"`

	Args struct {
		Tickers []string `positional-arg-name:"TICKER" required:"1"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	out     io.Writer
}

// SearchCommand lists the articles a search finds without fetching them.
type SearchCommand struct {
	Domain   string `long:"domain" description:"Restrict results to this URL prefix (default: from config)"`
	Start    string `long:"start" description:"First day to search (YYYY-MM-DD)"`
	End      string `long:"end" description:"Day to search before (YYYY-MM-DD)"`
	MaxPages int    `long:"max-pages" description:"Result pages to request (default: from config, 3)"`
	JSON     bool   `long:"json" description:"Output in JSON format"`

	Args struct {
		Term string `positional-arg-name:"TERM" required:"yes"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	out     io.Writer
}

// ArticleCommand fetches one article and prints its details.
type ArticleCommand struct {
	JSON bool `long:"json" description:"Output in JSON format"`

	Args struct {
		URL string `positional-arg-name:"URL" required:"yes"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	out     io.Writer
}
