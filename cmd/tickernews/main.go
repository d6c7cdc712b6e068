package main

import (
	"io"
	"log"
	"os"

	goflags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// buildParser constructs the go-flags parser with all subcommands registered.
// Command output goes to out.
func buildParser(out io.Writer) *goflags.Parser {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "tickernews"
	parser.LongDescription = "Collect recent news articles about stock tickers."

	parser.AddCommand("overview",
		"Build the news table for tickers",
		"Search each ticker, fetch every matched article and print the merged table sorted by ticker and date.",
		&OverviewCommand{globals: &globals, out: out})
	parser.AddCommand("search",
		"List search results for a term",
		"Page through search results for a term without fetching the articles.",
		&SearchCommand{globals: &globals, out: out})
	parser.AddCommand("article",
		"Fetch one article",
		"Fetch one article page and print its date, title and body.",
		&ArticleCommand{globals: &globals, out: out})

	return parser
}

// run parses args and executes the matched subcommand.
func run(args []string, out io.Writer) error {
	_, err := buildParser(out).ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok && flagsErr.Type == goflags.ErrHelp {
			return nil
		}
		return err
	}
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN: Failed to load .env: %v", err)
	}

	// go-flags prints parse and command errors itself
	if err := run(os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}
