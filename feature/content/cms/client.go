// Package cms reads published news items from the CMS listing API.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MaxWindowDays is the widest date window the listing API accepts. Wider
// requests are clamped, not rejected.
const MaxWindowDays = 60

const newsPath = "/fan-app-news/published"

// Tag is a content tag on a news item.
type Tag struct {
	Slug string `json:"slug"`
}

// Thumb is the landscape thumbnail reference of a news item.
type Thumb struct {
	Landscape struct {
		ID  string `json:"id"`
		Alt string `json:"alt"`
	} `json:"landscape"`
}

// Body is the nested content block of a news item.
type Body struct {
	InternalTitle string `json:"internalTitle"`
	Channel       string `json:"channel"`
	Place         string `json:"place"`
	Thumb         Thumb  `json:"thumb"`
}

// NewsItem is one published item as returned by the listing API.
type NewsItem struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	Tags        []Tag  `json:"tags"`
	Content     Body   `json:"content"`
}

type listResponse struct {
	Total int        `json:"total"`
	Items []NewsItem `json:"items"`
}

// Query controls a FetchAll invocation.
type Query struct {
	// MaxItems caps the number of returned items; 0 means no cap.
	MaxItems int
	// DaysAgo restricts the listing to items published in the window; 0
	// means the full catalogue.
	DaysAgo int
}

// Client pages through the CMS news listing. Requests are rate limited; a
// non-2xx response is fatal for the run, there is no retry at this layer.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger

	now func() time.Time
}

// NewClient creates a CMS client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		logger:  logger,
		now:     time.Now,
	}
}

// FetchAll materializes the complete listing for a query.
//
// Page 0 is fetched at skip=0 to learn the reported total; the effective
// total is capped by MaxItems when set. Subsequent pages advance skip by the
// page size until the effective total is covered, and the final page is
// truncated to the cap. The listing is advisory: if the upstream catalogue
// mutates between pages the duplicates or gaps are absorbed downstream.
func (c *Client) FetchAll(ctx context.Context, q Query) ([]NewsItem, error) {
	pageSize := c.cfg.PageSize
	if q.MaxItems > 0 && q.MaxItems < pageSize {
		pageSize = q.MaxItems
	}

	sinceDate := c.sinceDate(q.DaysAgo)

	page, err := c.fetchPage(ctx, 0, pageSize, sinceDate)
	if err != nil {
		return nil, err
	}

	total := page.Total
	if q.MaxItems > 0 && q.MaxItems < total {
		total = q.MaxItems
	}
	if total == 0 {
		c.logger.Warn("no items found in CMS listing")
		return nil, nil
	}

	items := page.Items
	if len(items) > total {
		items = items[:total]
	}

	for skip := pageSize; skip < total; skip += pageSize {
		page, err = c.fetchPage(ctx, skip, pageSize, sinceDate)
		if err != nil {
			return nil, err
		}
		next := page.Items
		if remaining := total - len(items); len(next) > remaining {
			next = next[:remaining]
		}
		items = append(items, next...)
		c.logger.Info("listing page read",
			zap.Int("skip", skip),
			zap.Int("page_items", len(next)),
			zap.Int("collected", len(items)),
			zap.Int("total", total))
	}
	return items, nil
}

func (c *Client) sinceDate(daysAgo int) string {
	if daysAgo <= 0 {
		return ""
	}
	if daysAgo > MaxWindowDays {
		c.logger.Warn("requested window exceeds the listing ceiling, clamping",
			zap.Int("days_ago", daysAgo),
			zap.Int("ceiling", MaxWindowDays))
		daysAgo = MaxWindowDays
	}
	return c.now().UTC().
		Add(-time.Duration(daysAgo) * 24 * time.Hour).
		Truncate(time.Second).
		Format("2006-01-02T15:04:05")
}

func (c *Client) fetchPage(ctx context.Context, skip, limit int, sinceDate string) (*listResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("locale", "en")
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("scuderia", "true")
	query.Set("categories", "scuderia")
	if sinceDate != "" {
		query.Set("sinceDate", sinceDate)
	}

	endpoint := c.cfg.Endpoint + c.cfg.BasePath + newsPath + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listing request: %w", err)
	}
	req.Header.Set("x-api-key", c.cfg.ApiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing page at skip %d: %w", skip, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("listing page at skip %d returned %d: %s", skip, resp.StatusCode, body)
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode listing page at skip %d: %w", skip, err)
	}
	return &page, nil
}
