package content

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"p13n-sync/core/recommend"
	"p13n-sync/core/storage"
	"p13n-sync/feature/content/models"
)

// RecordLister reads cached content records by type.
type RecordLister interface {
	ListByType(ctx context.Context, contentType string) ([]models.ContentRecord, error)
}

// Service runs the bulk import path: cache table to staging CSV to a dataset
// import job, per domain.
type Service struct {
	repo     RecordLister
	store    storage.Client
	registry *recommend.Registry
	waiter   *recommend.Waiter
	pointers *recommend.Pointers
	cfg      recommend.Config
	bucket   string
	logger   *zap.Logger

	now func() time.Time
}

// NewService wires the bulk import service.
func NewService(repo RecordLister, store storage.Client, api recommend.PersonalizeAPI,
	params recommend.ParameterAPI, cfg recommend.Config, bucket string, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		store:    store,
		registry: recommend.NewRegistry(api, logger),
		waiter:   recommend.NewWaiter(api, logger),
		pointers: recommend.NewPointers(params, cfg.App, cfg.Stage, logger),
		cfg:      cfg,
		bucket:   bucket,
		logger:   logger,
		now:      time.Now,
	}
}

// Run synchronizes both domains. The domains are independent: a failure in
// one is logged and reported but does not stop the other.
func (s *Service) Run(ctx context.Context) error {
	var errs []error
	for _, domain := range []string{DomainVideo, DomainNews} {
		if err := s.SyncDomain(ctx, domain); err != nil {
			s.logger.Error("domain sync failed", zap.String("domain", domain), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", domain, err))
		}
	}
	return errors.Join(errs...)
}

// SyncDomain stages the domain's items and submits an import job for them.
func (s *Service) SyncDomain(ctx context.Context, domain string) error {
	records, err := s.repo.ListByType(ctx, domain)
	if err != nil {
		return err
	}

	artifact, count, skipped, err := s.buildArtifact(domain, records)
	if err != nil {
		return err
	}
	s.logger.Info("staging artifact built",
		zap.String("domain", domain),
		zap.Int("items", count),
		zap.Int("skipped", skipped))

	object := fmt.Sprintf("%s-content-meta.csv", domain)
	_, err = s.store.PutObject(ctx, s.bucket, object,
		bytes.NewReader(artifact), int64(len(artifact)),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", object, err)
	}

	schemaName := fmt.Sprintf("%s%s-dataset-content-schema-%s", s.cfg.App, domain, s.cfg.Stage)
	schemaArn, err := s.registry.EnsureSchema(ctx, schemaName, SchemaJSON(domain))
	if err != nil {
		return err
	}

	groupArn := s.cfg.GroupArn(domain)
	datasetName := fmt.Sprintf("%s%s-content-dataset-%s", s.cfg.App, domain, s.cfg.Stage)
	datasetArn, err := s.registry.EnsureDataset(ctx, groupArn, datasetName, recommend.DatasetTypeItems, schemaArn)
	if err != nil {
		return err
	}

	interval, deadline := s.cfg.ItemPoll()
	if err := s.waiter.WaitDatasetActive(ctx, datasetArn, interval, deadline); err != nil {
		return err
	}

	jobName := fmt.Sprintf("%s%s-content-import-bulk-%s-%s",
		s.cfg.App, domain, s.cfg.Stage, s.now().Format("200601021504"))
	location := fmt.Sprintf("s3://%s/%s", s.bucket, object)
	if _, err := s.registry.EnsureImportJob(ctx, datasetArn, jobName, location, s.cfg.ImportRoleArn); err != nil {
		return err
	}

	return s.pointers.Publish(ctx, s.pointers.DatasetPath(domain), datasetArn,
		"content dataset for "+domain)
}

// buildArtifact normalizes the records into the staging CSV. Records without
// a primary key are skipped, never fatal.
func (s *Service) buildArtifact(domain string, records []models.ContentRecord) (artifact []byte, count, skipped int, err error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header(domain)); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to write artifact header: %w", err)
	}

	for _, rec := range records {
		item, err := Normalize(rec)
		if err != nil {
			if errors.Is(err, ErrSkipRecord) {
				s.logger.Warn("record skipped", zap.String("domain", domain), zap.Error(err))
				skipped++
				continue
			}
			return nil, 0, 0, err
		}
		if err := w.Write(item.Row()); err != nil {
			return nil, 0, 0, fmt.Errorf("failed to write artifact row: %w", err)
		}
		count++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to flush artifact: %w", err)
	}
	return buf.Bytes(), count, skipped, nil
}
