package article

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/tickernews/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher serves canned HTML per URL and fails for anything else
type stubFetcher struct {
	pages     map[string]string
	requested []string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (*goquery.Document, error) {
	s.requested = append(s.requested, url)
	html, ok := s.pages[url]
	if !ok {
		return nil, &scraper.FetchError{URL: url, Err: errors.New("connection refused")}
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

const articleHTML = `
<html>
	<body>
		<header><h1>  Tesla   beats estimates </h1></header>
		<time datetime="2024-03-01T09:05:00Z">March 1, 2024, 9:05 AM</time>
		<div class="caas-body">
			<p>First paragraph.</p>
			<p>Second   paragraph.</p>
		</div>
		<h1>Related stories</h1>
	</body>
</html>
`

func parse(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// TestParseDate verifies the article timestamp layout
func TestParseDate(t *testing.T) {
	got, err := ParseDate("March 1, 2024, 9:05 AM", scraper.DefaultArticleConfig().DateFormat)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC), got)
}

// TestParseDate_PM verifies afternoon times and two-digit days
func TestParseDate_PM(t *testing.T) {
	got, err := ParseDate("  December 24, 2023, 11:30 PM\n", scraper.DefaultArticleConfig().DateFormat)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 24, 23, 30, 0, 0, time.UTC), got)
}

// TestParseDate_Mismatch verifies a parse failure is reported
func TestParseDate_Mismatch(t *testing.T) {
	_, err := ParseDate("2024-03-01 09:05", scraper.DefaultArticleConfig().DateFormat)
	require.Error(t, err)
	assert.ErrorIs(t, err, scraper.ErrParseFailure)
}

// TestExtract_Complete verifies all three fields are extracted
func TestExtract_Complete(t *testing.T) {
	detail, err := Extract(parse(t, articleHTML), scraper.DefaultArticleConfig(), "https://x/a")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC), detail.Date)
	assert.Equal(t, "Tesla beats estimates", detail.Title, "should use first heading")
	assert.Equal(t, "First paragraph. Second paragraph.", detail.Body)
}

// TestExtract_MissingElements verifies each absent marker fails extraction
func TestExtract_MissingElements(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		selector string
	}{
		{
			name:     "no timestamp",
			html:     `<h1>T</h1><div class="caas-body">B</div>`,
			selector: "time",
		},
		{
			name:     "no heading",
			html:     `<time>March 1, 2024, 9:05 AM</time><div class="caas-body">B</div>`,
			selector: "h1",
		},
		{
			name:     "no body",
			html:     `<time>March 1, 2024, 9:05 AM</time><h1>T</h1>`,
			selector: ".caas-body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(parse(t, tt.html), scraper.DefaultArticleConfig(), "https://x/a")
			require.Error(t, err)
			assert.ErrorIs(t, err, scraper.ErrMissingElement)

			var missing *scraper.MissingElementError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.selector, missing.Selector)
			assert.Equal(t, "https://x/a", missing.URL)
		})
	}
}

// TestExtract_BadTimestamp verifies a malformed timestamp aborts extraction
func TestExtract_BadTimestamp(t *testing.T) {
	html := `<time>yesterday</time><h1>T</h1><div class="caas-body">B</div>`

	_, err := Extract(parse(t, html), scraper.DefaultArticleConfig(), "https://x/a")
	require.Error(t, err)
	assert.ErrorIs(t, err, scraper.ErrParseFailure)
	assert.Contains(t, err.Error(), "https://x/a")
}

// TestExtract_CustomSelectors verifies configured selectors are honored
func TestExtract_CustomSelectors(t *testing.T) {
	html := `<span class="ts">2024-01-02</span><h2>Custom</h2><article>Text</article>`
	config := scraper.ArticleConfig{
		DateSelector:  ".ts",
		TitleSelector: "h2",
		BodySelector:  "article",
		DateFormat:    "2006-01-02",
	}

	detail, err := Extract(parse(t, html), config, "https://x/b")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), detail.Date)
	assert.Equal(t, "Custom", detail.Title)
	assert.Equal(t, "Text", detail.Body)
}

// TestExtractor_Fetch verifies fetch and extraction in one call
func TestExtractor_Fetch(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{"https://x/a": articleHTML}}
	extractor := NewExtractor(fetcher, scraper.ArticleConfig{})

	detail, err := extractor.Fetch(context.Background(), "https://x/a")
	require.NoError(t, err)
	assert.Equal(t, "Tesla beats estimates", detail.Title)
	assert.Equal(t, []string{"https://x/a"}, fetcher.requested)
}

// TestExtractor_FetchFailure verifies an unusable document surfaces as a
// missing element
func TestExtractor_FetchFailure(t *testing.T) {
	extractor := NewExtractor(&stubFetcher{}, scraper.ArticleConfig{})

	detail, err := extractor.Fetch(context.Background(), "https://x/gone")
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, scraper.ErrMissingElement)
	assert.ErrorIs(t, err, scraper.ErrNetworkFailure)
}
