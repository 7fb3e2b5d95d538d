package feeds

import (
	"context"
	"net/url"
	"time"

	"chainboard/internal/domain/market"
	"chainboard/pkg/errors"
)

// NewsFeed fetches Bitcoin headlines from a CryptoPanic-shaped aggregator
type NewsFeed struct {
	fetcher *Fetcher
	url     string
	apiKey  string
}

// NewNewsFeed creates a new news feed
func NewNewsFeed(fetcher *Fetcher, feedURL, apiKey string) *NewsFeed {
	return &NewsFeed{fetcher: fetcher, url: feedURL, apiKey: apiKey}
}

// CryptoPanic API response structures
type cryptoPanicResponse struct {
	Count   int                  `json:"count"`
	Results []cryptoPanicArticle `json:"results"`
}

type cryptoPanicArticle struct {
	Title       string            `json:"title"`
	URL         string            `json:"url"`
	PublishedAt string            `json:"published_at"`
	Source      cryptoPanicSource `json:"source"`
}

type cryptoPanicSource struct {
	Title  string `json:"title"`
	Domain string `json:"domain"`
}

// Fetch returns recent Bitcoin headlines, newest first
func (n *NewsFeed) Fetch(ctx context.Context, limit int) ([]market.NewsArticle, error) {
	params := url.Values{}
	params.Set("currencies", "BTC")
	params.Set("public", "true")
	if n.apiKey != "" {
		params.Set("auth_token", n.apiKey)
	}

	var resp cryptoPanicResponse
	if err := n.fetcher.GetJSON(ctx, "feed:news", n.url+"?"+params.Encode(), &resp); err != nil {
		return nil, errors.Wrap(err, "fetch news")
	}

	articles := make([]market.NewsArticle, 0, len(resp.Results))
	for _, item := range resp.Results {
		if limit > 0 && len(articles) >= limit {
			break
		}

		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		source := item.Source.Title
		if source == "" {
			source = item.Source.Domain
		}

		articles = append(articles, market.NewsArticle{
			Title:       item.Title,
			URL:         item.URL,
			Source:      source,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

// Sample is the documented fallback payload served when the feed is unreachable
func (n *NewsFeed) Sample() []market.NewsArticle {
	now := time.Now().UTC()
	return []market.NewsArticle{
		{
			Title:       "Bitcoin holds above key support as ETF inflows continue",
			URL:         "https://example.com/btc-etf-inflows",
			Source:      "Sample Wire",
			PublishedAt: now.Add(-2 * time.Hour),
		},
		{
			Title:       "Hashrate reaches new all-time high ahead of difficulty adjustment",
			URL:         "https://example.com/hashrate-ath",
			Source:      "Sample Wire",
			PublishedAt: now.Add(-6 * time.Hour),
		},
		{
			Title:       "Long-term holder supply keeps climbing, on-chain data shows",
			URL:         "https://example.com/lth-supply",
			Source:      "Sample Wire",
			PublishedAt: now.Add(-11 * time.Hour),
		},
	}
}
