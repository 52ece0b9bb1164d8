package interactions

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"p13n-sync/core/recommend"
	"p13n-sync/core/storage"
)

// importTimestampLayout stamps interaction import job names so re-runs submit
// distinct jobs.
const importTimestampLayout = "200601021504"

// partitionLayout is the date layout of the behaviour-log partitions and the
// staged artifacts.
const partitionLayout = "2006-01-02"

// Service turns behaviour-log objects into interaction imports, one dataset
// per domain.
type Service struct {
	store    storage.Client
	registry *recommend.Registry
	waiter   *recommend.Waiter
	cfg      recommend.Config

	behaviourBucket string
	stagingBucket   string
	logger          *zap.Logger
	now             func() time.Time
}

// NewService wires the behaviour-log import.
func NewService(store storage.Client, api recommend.PersonalizeAPI, cfg recommend.Config,
	behaviourBucket, stagingBucket string, logger *zap.Logger) *Service {
	return &Service{
		store:           store,
		registry:        recommend.NewRegistry(api, logger),
		waiter:          recommend.NewWaiter(api, logger),
		cfg:             cfg,
		behaviourBucket: behaviourBucket,
		stagingBucket:   stagingBucket,
		logger:          logger,
		now:             time.Now,
	}
}

// Run reads the behaviour logs once and imports the derived view events into
// both domains. With incremental set, only yesterday's log partition is read;
// otherwise the whole bucket is scanned. Domains fail independently.
func (s *Service) Run(ctx context.Context, incremental bool) error {
	prefix := ""
	if incremental {
		prefix = s.now().AddDate(0, 0, -1).Format(partitionLayout)
	}

	events, err := s.readEvents(ctx, prefix)
	if err != nil {
		return err
	}

	var errs []error
	for domain, views := range map[string][]ViewEvent{
		"video": TransformVideo(events),
		"news":  TransformNews(events),
	} {
		if err := s.importDomain(ctx, domain, views); err != nil {
			s.logger.Error("interaction import failed", zap.String("domain", domain), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", domain, err))
		}
	}
	return errors.Join(errs...)
}

// readEvents scans the behaviour bucket under prefix and decodes every
// object as newline-delimited JSON.
func (s *Service) readEvents(ctx context.Context, prefix string) ([]RawEvent, error) {
	var events []RawEvent
	objects, malformed := 0, 0
	for object := range s.store.ListObjects(ctx, s.behaviourBucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list behaviour logs: %w", object.Err)
		}
		body, err := s.store.GetObject(ctx, s.behaviourBucket, object.Key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", object.Key, err)
		}
		data, err := io.ReadAll(body)
		_ = body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", object.Key, err)
		}
		parsed, bad := ParseEvents(data)
		events = append(events, parsed...)
		malformed += bad
		objects++
	}

	s.logger.Info("behaviour logs read",
		zap.String("prefix", prefix),
		zap.Int("objects", objects),
		zap.Int("events", len(events)),
		zap.Int("malformed", malformed))
	return events, nil
}

func (s *Service) importDomain(ctx context.Context, domain string, views []ViewEvent) error {
	if len(views) == 0 {
		s.logger.Warn("no view events, skipping import", zap.String("domain", domain))
		return nil
	}

	object := fmt.Sprintf("%s/interactions/%s.csv", domain, s.now().Format(partitionLayout))
	if err := s.stage(ctx, object, views); err != nil {
		return err
	}

	schemaName := fmt.Sprintf("%s-%s-interactions-schema", s.cfg.App, domain)
	schemaArn, err := s.registry.EnsureSchema(ctx, schemaName, InteractionSchemaJSON)
	if err != nil {
		return err
	}

	groupArn := s.cfg.GroupArn(domain)
	datasetName := fmt.Sprintf("%s-%s-interactions-dataset-%s", s.cfg.App, domain, s.cfg.Stage)
	datasetArn, err := s.registry.EnsureDataset(ctx, groupArn, datasetName, recommend.DatasetTypeInteractions, schemaArn)
	if err != nil {
		return err
	}

	interval, deadline := s.cfg.ItemPoll()
	if err := s.waiter.WaitDatasetActive(ctx, datasetArn, interval, deadline); err != nil {
		return err
	}

	jobName := fmt.Sprintf("%s-%s-interactions-import-bulk-%s-%s",
		s.cfg.App, domain, s.cfg.Stage, s.now().Format(importTimestampLayout))
	location := fmt.Sprintf("s3://%s/%s", s.stagingBucket, object)
	_, err = s.registry.EnsureImportJob(ctx, datasetArn, jobName, location, s.cfg.ImportRoleArn)
	return err
}

func (s *Service) stage(ctx context.Context, object string, views []ViewEvent) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write artifact header: %w", err)
	}
	for _, view := range views {
		if err := w.Write(view.Row()); err != nil {
			return fmt.Errorf("failed to write artifact row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush artifact: %w", err)
	}

	_, err := s.store.PutObject(ctx, s.stagingBucket, object,
		bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", object, err)
	}
	s.logger.Info("interactions staged", zap.String("object", object), zap.Int("events", len(views)))
	return nil
}
