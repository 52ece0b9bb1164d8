package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"p13n-sync/core/ingest"
	"p13n-sync/core/recommend"
	"p13n-sync/feature/content/models"
)

// Change event names on the incremental path.
const (
	EventInsert = "INSERT"
	EventModify = "MODIFY"
	EventRemove = "REMOVE"
)

// ChangeEvent is one captured mutation of the content cache. Record is the
// new image; it is empty for removals.
type ChangeEvent struct {
	EventName string               `json:"eventName"`
	Record    models.ContentRecord `json:"record"`
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

// Stream delivers content changes to the item datasets through the streaming
// write API. Removals are ignored: deletion propagation is out of scope for
// this pipeline.
type Stream struct {
	events   recommend.EventsAPI
	pointers *recommend.Pointers
	cfg      recommend.Config
	logger   *zap.Logger
}

// NewStream wires the incremental content path.
func NewStream(events recommend.EventsAPI, params recommend.ParameterAPI,
	cfg recommend.Config, logger *zap.Logger) *Stream {
	return &Stream{
		events:   events,
		pointers: recommend.NewPointers(params, cfg.App, cfg.Stage, logger),
		cfg:      cfg,
		logger:   logger,
	}
}

// Run normalizes, deduplicates and dispatches one batch of change events.
func (st *Stream) Run(ctx context.Context, changes []ChangeEvent) error {
	dispatchers := make(map[string]*ingest.Dispatcher, 2)
	for _, domain := range []string{DomainVideo, DomainNews} {
		arn, err := st.pointers.Read(ctx, st.pointers.DatasetPath(domain))
		if err != nil {
			return fmt.Errorf("no dataset pointer for %s, run the bulk import first: %w", domain, err)
		}
		dispatchers[domain] = ingest.NewDispatcher(st.cfg.BatchSize, st.cfg.Pause(),
			recommend.ItemSink(st.events, arn, st.logger))
	}

	dedup := ingest.NewDedup(st.logger)
	for _, change := range changes {
		if change.EventName == EventRemove {
			st.logger.Info("skip removal, nothing to do for removed items")
			continue
		}

		item, err := Normalize(change.Record)
		if err != nil {
			if errors.Is(err, ErrSkipRecord) {
				st.logger.Warn("change record skipped", zap.Error(err))
				continue
			}
			return err
		}
		if !dedup.Admit(item.ItemID()) {
			continue
		}

		props, err := item.Properties()
		if err != nil {
			return err
		}
		if err := dispatchers[item.Domain()].Offer(ctx, ingest.Record{ID: item.ItemID(), Properties: props}); err != nil {
			return err
		}
	}

	for _, domain := range []string{DomainVideo, DomainNews} {
		if err := dispatchers[domain].Flush(ctx); err != nil {
			return err
		}
	}
	return nil
}
