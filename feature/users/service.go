package users

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"p13n-sync/core/ingest"
	"p13n-sync/core/recommend"
	"p13n-sync/core/storage"
	"p13n-sync/feature/users/models"
)

// StagingObject is the fixed key of the user staging artifact. One artifact
// feeds the user datasets of both groups.
const StagingObject = "user-meta.csv"

// ProfileLister reads onboarded profile rows.
type ProfileLister interface {
	ListOnboarded(ctx context.Context) ([]models.UserProfile, error)
}

// Service runs the bulk user preference import: profile table to one staging
// CSV, imported into the user dataset of each group.
type Service struct {
	repo     ProfileLister
	store    storage.Client
	registry *recommend.Registry
	waiter   *recommend.Waiter
	cfg      recommend.Config
	bucket   string
	logger   *zap.Logger
}

// NewService wires the bulk user import.
func NewService(repo ProfileLister, store storage.Client, api recommend.PersonalizeAPI,
	cfg recommend.Config, bucket string, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		store:    store,
		registry: recommend.NewRegistry(api, logger),
		waiter:   recommend.NewWaiter(api, logger),
		cfg:      cfg,
		bucket:   bucket,
		logger:   logger,
	}
}

// Run stages the preferences once, then imports them into both groups. The
// groups are independent: one failing does not stop the other.
func (s *Service) Run(ctx context.Context) error {
	if err := s.stagePreferences(ctx); err != nil {
		return err
	}

	var errs []error
	for _, domain := range []string{"video", "news"} {
		if err := s.importGroup(ctx, domain); err != nil {
			s.logger.Error("user import failed", zap.String("domain", domain), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", domain, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Service) stagePreferences(ctx context.Context) error {
	profiles, err := s.repo.ListOnboarded(ctx)
	if err != nil {
		return err
	}

	dedup := ingest.NewDedup(s.logger)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write artifact header: %w", err)
	}

	count, skipped := 0, 0
	for _, profile := range profiles {
		pref, err := Normalize(profile.PersonalizationID, profile.Answers)
		if err != nil {
			if errors.Is(err, ErrSkipRecord) {
				s.logger.Warn("profile skipped", zap.Error(err))
				skipped++
				continue
			}
			return err
		}
		if !dedup.Admit(pref.UserID) {
			continue
		}
		if err := w.Write(pref.Row()); err != nil {
			return fmt.Errorf("failed to write artifact row: %w", err)
		}
		count++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush artifact: %w", err)
	}

	_, err = s.store.PutObject(ctx, s.bucket, StagingObject,
		bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", StagingObject, err)
	}

	s.logger.Info("user preferences staged",
		zap.Int("users", count),
		zap.Int("skipped", skipped),
		zap.Int("duplicates", dedup.Dropped()))
	return nil
}

func (s *Service) importGroup(ctx context.Context, domain string) error {
	schemaName := fmt.Sprintf("%s-%s-users-schema", s.cfg.App, domain)
	schemaArn, err := s.registry.EnsureSchema(ctx, schemaName, UserSchemaJSON)
	if err != nil {
		return err
	}

	groupArn := s.cfg.GroupArn(domain)
	datasetName := fmt.Sprintf("%s-%s-users-dataset-%s", s.cfg.App, domain, s.cfg.Stage)
	datasetArn, err := s.registry.EnsureDataset(ctx, groupArn, datasetName, recommend.DatasetTypeUsers, schemaArn)
	if err != nil {
		return err
	}

	interval, deadline := s.cfg.UserPoll()
	if err := s.waiter.WaitDatasetActive(ctx, datasetArn, interval, deadline); err != nil {
		return err
	}

	// The job name carries no timestamp: re-running the bulk import is a
	// no-op once the initial job exists.
	jobName := fmt.Sprintf("%s-%s-user-import-bulk-%s", s.cfg.App, domain, s.cfg.Stage)
	location := fmt.Sprintf("s3://%s/%s", s.bucket, StagingObject)
	_, err = s.registry.EnsureImportJob(ctx, datasetArn, jobName, location, s.cfg.ImportRoleArn)
	return err
}
