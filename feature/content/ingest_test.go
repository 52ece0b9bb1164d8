package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"p13n-sync/feature/content/cms"
	"p13n-sync/feature/content/models"
	"p13n-sync/feature/content/thron"
)

type fakeWriter struct {
	records []models.ContentRecord
}

func (f *fakeWriter) UpsertBatch(ctx context.Context, records []models.ContentRecord) error {
	f.records = append(f.records, records...)
	return nil
}

type fakeNews struct {
	items []cms.NewsItem
}

func (f *fakeNews) FetchAll(ctx context.Context, q cms.Query) ([]cms.NewsItem, error) {
	return f.items, nil
}

type fakeVideos struct {
	items   []thron.ExportItem
	details map[string]*thron.Detail
}

func (f *fakeVideos) Login(ctx context.Context) (string, error) { return "tok", nil }

func (f *fakeVideos) Export(ctx context.Context, token string, maxItems int) ([]thron.ExportItem, error) {
	return f.items, nil
}

func (f *fakeVideos) UpdatedContent(ctx context.Context, token string, daysAgo, maxItems int) ([]thron.ExportItem, error) {
	return f.items, nil
}

func (f *fakeVideos) ContentDetail(ctx context.Context, contentID string) (*thron.Detail, error) {
	return f.details[contentID], nil
}

func newsItem(slug, channel string) cms.NewsItem {
	var item cms.NewsItem
	item.Slug = slug
	item.Content.Channel = channel
	return item
}

func TestIngestNews_SkipsBlanksAndDuplicates(t *testing.T) {
	repo := &fakeWriter{}
	news := &fakeNews{items: []cms.NewsItem{
		newsItem("gp-report", "fan-app-news"),
		newsItem("", "fan-app-news"),
		newsItem("gp-report", "fan-app-news"),
		newsItem("quali", "other"),
	}}

	ig := NewIngestor(repo, news, &fakeVideos{}, "https://cdn.example.com", zap.NewNop())
	require.NoError(t, ig.IngestNews(context.Background(), cms.Query{}))

	require.Len(t, repo.records, 2)
	assert.Equal(t, "fan-app-news/published/gp-report", repo.records[0].ContentID)
	assert.Equal(t, "news/published/quali", repo.records[1].ContentID)
	assert.Equal(t, models.TypeNews, repo.records[0].ContentType)
}

func exportItem(id, contentType, channel string) thron.ExportItem {
	return thron.ExportItem{
		Content:      thron.ExportContent{ID: id, ContentType: contentType},
		DeliveryInfo: []thron.DeliveryChannel{{ChannelType: channel}},
	}
}

func TestIngestVideos_SkipsUnmatchedAndRefused(t *testing.T) {
	repo := &fakeWriter{}
	videos := &fakeVideos{
		items: []thron.ExportItem{
			exportItem("vid-1", "VIDEO", "WEBHD"),
			exportItem("vid-2", "VIDEO", "WEB"),
			exportItem("vid-3", "VIDEO", "WEBHD"),
		},
		details: map[string]*thron.Detail{
			"vid-1": {ContentType: "video", NameTitle: "One", DurationMs: "1000"},
			// vid-3 detail lookup is refused upstream (nil detail).
		},
	}

	ig := NewIngestor(repo, &fakeNews{}, videos, "", zap.NewNop())
	require.NoError(t, ig.IngestVideos(context.Background(), 0, 0))

	require.Len(t, repo.records, 1)
	assert.Equal(t, "vid-1", repo.records[0].ContentID)
	assert.Equal(t, "One", repo.records[0].NameTitle)
}
