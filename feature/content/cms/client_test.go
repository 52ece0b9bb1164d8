package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func listingServer(t *testing.T, total int, requests *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("x-api-key"))
		*requests = append(*requests, r.URL.RawQuery)

		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		count := total - skip
		if count > limit {
			count = limit
		}
		if count < 0 {
			count = 0
		}
		items := make([]NewsItem, count)
		for i := range items {
			items[i].Slug = fmt.Sprintf("item-%d", skip+i)
		}
		_ = json.NewEncoder(w).Encode(listResponse{Total: total, Items: items})
	}))
}

func testClient(cfg Config) *Client {
	c := NewClient(cfg, zap.NewNop())
	c.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func TestFetchAll_PagesToCompletion(t *testing.T) {
	var requests []string
	srv := listingServer(t, 1234, &requests)
	defer srv.Close()

	c := testClient(Config{
		Endpoint: srv.URL, ApiKey: "test-key", BasePath: "/api/v1",
		PageSize: 500, RatePerSecond: 1000, RateBurst: 1000,
	})

	items, err := c.FetchAll(context.Background(), Query{})
	require.NoError(t, err)

	assert.Len(t, items, 1234)
	assert.Equal(t, "item-0", items[0].Slug)
	assert.Equal(t, "item-1233", items[1233].Slug)
	// Pages issued at skip 0, 500 and 1000, nothing beyond.
	require.Len(t, requests, 3)
}

func TestFetchAll_MaxItemsCapsResult(t *testing.T) {
	var requests []string
	srv := listingServer(t, 1234, &requests)
	defer srv.Close()

	c := testClient(Config{
		Endpoint: srv.URL, ApiKey: "test-key", BasePath: "/api/v1",
		PageSize: 500, RatePerSecond: 1000, RateBurst: 1000,
	})

	items, err := c.FetchAll(context.Background(), Query{MaxItems: 7})
	require.NoError(t, err)

	assert.Len(t, items, 7)
	require.Len(t, requests, 1)
}

func TestFetchAll_EmptyListing(t *testing.T) {
	var requests []string
	srv := listingServer(t, 0, &requests)
	defer srv.Close()

	c := testClient(Config{
		Endpoint: srv.URL, ApiKey: "test-key", BasePath: "/api/v1",
		PageSize: 500, RatePerSecond: 1000, RateBurst: 1000,
	})

	items, err := c.FetchAll(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSinceDate_ClampsToCeiling(t *testing.T) {
	c := testClient(Config{PageSize: 500, RatePerSecond: 1, RateBurst: 1})

	clamped := c.sinceDate(90)
	ceiling := c.sinceDate(MaxWindowDays)

	assert.Equal(t, ceiling, clamped)
	assert.Equal(t, "2026-07-01T12:00:00", clamped)
}

func TestSinceDate_ZeroMeansNoWindow(t *testing.T) {
	c := testClient(Config{PageSize: 500, RatePerSecond: 1, RateBurst: 1})
	assert.Empty(t, c.sinceDate(0))
}
