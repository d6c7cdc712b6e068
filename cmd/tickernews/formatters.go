package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pevans/tickernews/article"
	"github.com/pevans/tickernews/overview"
	"github.com/pevans/tickernews/search"
)

// printRowsTable prints overview rows in human-readable table format
func printRowsTable(w io.Writer, rows []overview.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return
	}

	fmt.Fprintf(w, "%-6s %-16s %-60s %s\n", "TICKER", "DATE", "TITLE", "URL")
	fmt.Fprintln(w, "----------------------------------------------------------------------------------------------------")

	for _, row := range rows {
		fmt.Fprintf(w, "%-6s %-16s %-60s %s\n",
			row.Ticker,
			row.Date.Format("2006-01-02 15:04"),
			truncate(row.Title, 60),
			row.URL,
		)
		if row.Summary != "" {
			fmt.Fprintf(w, "       %s\n", truncate(row.Summary, 150))
		}
	}
}

// printFailures prints the failures of a best-effort overview
func printFailures(w io.Writer, failures []overview.Failure) {
	if len(failures) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d failures:\n", len(failures))
	for _, f := range failures {
		fmt.Fprintf(w, "  - %v\n", f)
	}
}

// printRowsCSV prints overview rows as CSV with a header line
func printRowsCSV(w io.Writer, rows []overview.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ticker", "date", "title", "summary", "url"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.Ticker, row.Date.Format(time.RFC3339), row.Title, row.Summary, row.URL}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// printItems prints search results
func printItems(w io.Writer, items []search.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	for i, item := range items {
		fmt.Fprintf(w, "%d. %s\n", i+1, item.URL)
		if item.Summary != "" {
			fmt.Fprintf(w, "   %s\n", truncate(item.Summary, 150))
		}
	}
}

// printDetail prints one article with its body wrapped
func printDetail(w io.Writer, detail *article.Detail) {
	fmt.Fprintln(w, detail.Title)
	fmt.Fprintf(w, "Published: %s\n\n", detail.Date.Format("2006-01-02 15:04"))
	fmt.Fprintln(w, wrapText(detail.Body, 80))
}

// printJSON prints v as indented JSON
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(w, string(data))
	return nil
}
