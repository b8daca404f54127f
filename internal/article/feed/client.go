// Package feed fetches articles from the Spaceflight News API.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tair/spaceflight-news/internal/article/domain"
	"github.com/tair/spaceflight-news/pkg/logger"
)

const (
	DefaultBaseURL = "https://api.spaceflightnewsapi.net/v4/articles/"
	DefaultSearch  = "NASA"
	DefaultTimeout = 30 * time.Second
)

// RawArticle is one feed record as received; fields are validated by the caller.
// Err is set when the record itself could not be decoded.
type RawArticle struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	NewsSite    string `json:"news_site"`
	PublishedAt string `json:"published_at"`
	Err         error  `json:"-"`
}

type page struct {
	Count   int               `json:"count"`
	Results []json.RawMessage `json:"results"`
}

// Fetcher returns up to limit raw articles from the feed
type Fetcher interface {
	FetchArticles(ctx context.Context, limit int) ([]RawArticle, error)
}

// Config configures the feed client
type Config struct {
	BaseURL string
	Search  string
	Timeout time.Duration
}

// Client is a resty-backed Fetcher
type Client struct {
	http *resty.Client
	cfg  Config
}

// NewClient creates a feed client; zero config values use the public API defaults
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Search == "" {
		cfg.Search = DefaultSearch
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		http: resty.New().
			SetTimeout(cfg.Timeout).
			SetHeader("Accept", "application/json"),
		cfg: cfg,
	}
}

// FetchArticles performs a single GET newest-first; any transport failure, non-2xx status or
// undecodable page is an error. A record that fails to decode is returned with Err set.
func (c *Client) FetchArticles(ctx context.Context, limit int) ([]RawArticle, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"search":   c.cfg.Search,
			"limit":    strconv.Itoa(limit),
			"ordering": "-published_at",
		}).
		Get(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrFeedUnavailable, resp.StatusCode())
	}

	var p page
	if err := json.Unmarshal(resp.Body(), &p); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrFeedUnavailable, err)
	}

	articles := make([]RawArticle, len(p.Results))
	for i, record := range p.Results {
		if err := json.Unmarshal(record, &articles[i]); err != nil {
			articles[i] = RawArticle{Err: fmt.Errorf("record %d: %w", i, err)}
		}
	}

	logger.Debug(ctx).
		Int("requested", limit).
		Int("received", len(articles)).
		Dur("elapsed", resp.Time()).
		Msg("Fetched feed page")

	return articles, nil
}
