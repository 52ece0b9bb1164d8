package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"p13n-sync/core/ingest"
	"p13n-sync/core/recommend"
)

// ChangeEvent is one profile change delivered by the change stream.
type ChangeEvent struct {
	EventName         string `json:"eventName"`
	PersonalizationID string `json:"personalizationId"`
	Answers           string `json:"answers"`
}

// ParseChangeBatch decodes the JSON change batch accepted by the stream
// trigger.
func ParseChangeBatch(data []byte) ([]ChangeEvent, error) {
	var batch struct {
		Events []ChangeEvent `json:"events"`
	}
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("unreadable change batch: %w", err)
	}
	return batch.Events, nil
}

// Change stream event names.
const (
	EventInsert = "INSERT"
	EventModify = "MODIFY"
	EventRemove = "REMOVE"
)

// Stream applies profile change batches to the user datasets of both groups.
type Stream struct {
	events   recommend.EventsAPI
	registry *recommend.Registry
	cfg      recommend.Config
	logger   *zap.Logger
}

// NewStream wires the incremental user writer.
func NewStream(events recommend.EventsAPI, api recommend.PersonalizeAPI,
	cfg recommend.Config, logger *zap.Logger) *Stream {
	return &Stream{
		events:   events,
		registry: recommend.NewRegistry(api, logger),
		cfg:      cfg,
		logger:   logger,
	}
}

// Run pushes one change batch. Every changed profile is written to the user
// dataset of each group, in chunks with a pause between puts.
func (s *Stream) Run(ctx context.Context, events []ChangeEvent) error {
	datasets := make(map[string]string, 2)
	for _, domain := range []string{"video", "news"} {
		arn, err := s.userDataset(ctx, domain)
		if err != nil {
			return err
		}
		datasets[domain] = arn
	}

	dedup := ingest.NewDedup(s.logger)
	dispatchers := make(map[string]*ingest.Dispatcher, len(datasets))
	for domain, arn := range datasets {
		dispatchers[domain] = ingest.NewDispatcher(s.cfg.BatchSize, s.cfg.Pause(),
			recommend.UserSink(s.events, arn, s.logger))
	}

	for _, event := range events {
		if event.EventName == EventRemove {
			s.logger.Info("profile removal ignored",
				zap.String("personalization_id", event.PersonalizationID))
			continue
		}
		pref, err := Normalize(event.PersonalizationID, event.Answers)
		if err != nil {
			if errors.Is(err, ErrSkipRecord) {
				s.logger.Warn("profile change skipped", zap.Error(err))
				continue
			}
			return err
		}
		if !dedup.Admit(pref.UserID) {
			continue
		}
		properties, err := pref.Properties()
		if err != nil {
			return err
		}
		record := ingest.Record{ID: pref.UserID, Properties: properties}
		for _, domain := range []string{"video", "news"} {
			if err := dispatchers[domain].Offer(ctx, record); err != nil {
				return err
			}
		}
	}

	for _, domain := range []string{"video", "news"} {
		if err := dispatchers[domain].Flush(ctx); err != nil {
			return err
		}
	}
	s.logger.Info("user changes applied",
		zap.Int("users", dedup.Admitted()),
		zap.Int("duplicates", dedup.Dropped()))
	return nil
}

func (s *Stream) userDataset(ctx context.Context, domain string) (string, error) {
	groupArn := s.cfg.GroupArn(domain)
	arn, found, err := s.registry.ResolveDataset(ctx, groupArn, recommend.DatasetTypeUsers)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.New("no user dataset in group " + groupArn + ", run the bulk import first")
	}
	return arn, nil
}
