package scraper

// PageSize is the number of results the search engine returns per page. The
// result offset of page p is always PageSize*p.
const PageSize = 10

// SearchConfig defines how to extract result cards from a search results
// page.
type SearchConfig struct {
	ResultSelector  string `json:"result_selector"`
	LinkSelector    string `json:"link_selector"`
	SummarySelector string `json:"summary_selector"`
}

// ArticleConfig defines how to extract metadata from individual article
// pages.
type ArticleConfig struct {
	DateSelector  string `json:"date_selector"`
	TitleSelector string `json:"title_selector"`
	BodySelector  string `json:"body_selector"`
	DateFormat    string `json:"date_format"` // Go time format string
}

// DefaultSearchConfig returns the selectors for Google's news vertical.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		ResultSelector:  ".dbsr",
		LinkSelector:    ".dbsr a",
		SummarySelector: ".Y3v8qd",
	}
}

// DefaultArticleConfig returns the selectors for Yahoo Finance article pages.
// Timestamps there read like "March 1, 2024, 9:05 AM".
func DefaultArticleConfig() ArticleConfig {
	return ArticleConfig{
		DateSelector:  "time",
		TitleSelector: "h1",
		BodySelector:  ".caas-body",
		DateFormat:    "January 2, 2006, 3:04 PM",
	}
}

// WithDefaults fills any empty selector from DefaultSearchConfig.
func (c SearchConfig) WithDefaults() SearchConfig {
	d := DefaultSearchConfig()
	if c.ResultSelector == "" {
		c.ResultSelector = d.ResultSelector
	}
	if c.LinkSelector == "" {
		c.LinkSelector = d.LinkSelector
	}
	if c.SummarySelector == "" {
		c.SummarySelector = d.SummarySelector
	}
	return c
}

// WithDefaults fills any empty field from DefaultArticleConfig.
func (c ArticleConfig) WithDefaults() ArticleConfig {
	d := DefaultArticleConfig()
	if c.DateSelector == "" {
		c.DateSelector = d.DateSelector
	}
	if c.TitleSelector == "" {
		c.TitleSelector = d.TitleSelector
	}
	if c.BodySelector == "" {
		c.BodySelector = d.BodySelector
	}
	if c.DateFormat == "" {
		c.DateFormat = d.DateFormat
	}
	return c
}
