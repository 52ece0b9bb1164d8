package content

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"p13n-sync/core/ingest"
	"p13n-sync/feature/content/cms"
	"p13n-sync/feature/content/models"
	"p13n-sync/feature/content/thron"
)

// NewsSource lists published news items.
type NewsSource interface {
	FetchAll(ctx context.Context, q cms.Query) ([]cms.NewsItem, error)
}

// VideoSource lists and describes video platform content.
type VideoSource interface {
	Login(ctx context.Context) (string, error)
	Export(ctx context.Context, token string, maxItems int) ([]thron.ExportItem, error)
	UpdatedContent(ctx context.Context, token string, daysAgo, maxItems int) ([]thron.ExportItem, error)
	ContentDetail(ctx context.Context, contentID string) (*thron.Detail, error)
}

// RecordWriter persists content records.
type RecordWriter interface {
	UpsertBatch(ctx context.Context, records []models.ContentRecord) error
}

// Ingestor pulls the upstream sources into the content cache table.
type Ingestor struct {
	repo    RecordWriter
	news    NewsSource
	videos  VideoSource
	cdnHost string
	logger  *zap.Logger

	now func() time.Time
}

// NewIngestor creates an ingestor over the two content sources.
func NewIngestor(repo RecordWriter, news NewsSource, videos VideoSource, cdnHost string, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		repo:    repo,
		news:    news,
		videos:  videos,
		cdnHost: cdnHost,
		logger:  logger,
		now:     time.Now,
	}
}

// IngestNews pulls the news listing into the cache. Items without a slug are
// skipped; duplicates within the listing are written once.
func (ig *Ingestor) IngestNews(ctx context.Context, q cms.Query) error {
	items, err := ig.news.FetchAll(ctx, q)
	if err != nil {
		return fmt.Errorf("news listing failed: %w", err)
	}

	dedup := ingest.NewDedup(ig.logger)
	ingestDate := ig.now()
	skipped := 0
	records := make([]models.ContentRecord, 0, len(items))
	for _, item := range items {
		if item.Slug == "" {
			skipped++
			continue
		}
		record := cms.ToRecord(item, ig.cdnHost, ingestDate)
		if !dedup.Admit(record.ContentID) {
			continue
		}
		records = append(records, record)
	}

	if err := ig.repo.UpsertBatch(ctx, records); err != nil {
		return err
	}
	ig.logger.Info("news ingested",
		zap.Int("listed", len(items)),
		zap.Int("written", len(records)),
		zap.Int("skipped", skipped),
		zap.Int("duplicates", dedup.Dropped()))
	return nil
}

// IngestVideos pulls the platform catalogue into the cache. daysAgo zero
// means the full export; anything else uses the windowed update listing. A
// failed or refused detail lookup skips that item and continues.
func (ig *Ingestor) IngestVideos(ctx context.Context, daysAgo, maxItems int) error {
	token, err := ig.videos.Login(ctx)
	if err != nil {
		return fmt.Errorf("platform login failed: %w", err)
	}

	var items []thron.ExportItem
	if daysAgo == 0 {
		items, err = ig.videos.Export(ctx, token, maxItems)
	} else {
		items, err = ig.videos.UpdatedContent(ctx, token, daysAgo, maxItems)
	}
	if err != nil {
		return fmt.Errorf("platform listing failed: %w", err)
	}

	dedup := ingest.NewDedup(ig.logger)
	ingestDate := ig.now()
	skipped := 0
	records := make([]models.ContentRecord, 0, len(items))
	for _, item := range items {
		if !thron.MatchesDeliveryChannel(item) || item.Content.ID == "" {
			skipped++
			continue
		}
		if !dedup.Admit(item.Content.ID) {
			continue
		}
		detail, err := ig.videos.ContentDetail(ctx, item.Content.ID)
		if err != nil {
			ig.logger.Error("detail lookup failed, skipping item",
				zap.String("content_id", item.Content.ID),
				zap.Error(err))
			skipped++
			continue
		}
		if detail == nil {
			skipped++
			continue
		}
		records = append(records, thron.ToRecord(item, *detail, ingestDate))
	}

	if err := ig.repo.UpsertBatch(ctx, records); err != nil {
		return err
	}
	ig.logger.Info("videos ingested",
		zap.Int("listed", len(items)),
		zap.Int("written", len(records)),
		zap.Int("skipped", skipped),
		zap.Int("duplicates", dedup.Dropped()))
	return nil
}
