package ingest

import "go.uber.org/zap"

// Dedup suppresses duplicate logical keys within a single synchronization run.
//
// Paginated upstream listings occasionally return overlapping items across
// adjacent pages when the backing store mutates between page fetches, so the
// same key may legitimately show up more than once. Duplicates are dropped
// with a warning rather than absorbed silently.
type Dedup struct {
	seen    map[string]struct{}
	dropped int
	logger  *zap.Logger
}

// NewDedup creates a deduplicator scoped to one run.
func NewDedup(logger *zap.Logger) *Dedup {
	return &Dedup{
		seen:   make(map[string]struct{}),
		logger: logger,
	}
}

// Admit reports whether key is seen for the first time this run. A false
// return means the record is a duplicate and must be dropped.
func (d *Dedup) Admit(key string) bool {
	if _, dup := d.seen[key]; dup {
		d.dropped++
		if d.logger != nil {
			d.logger.Warn("duplicate key in run, dropping record", zap.String("key", key))
		}
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// Admitted returns the number of distinct keys admitted so far.
func (d *Dedup) Admitted() int {
	return len(d.seen)
}

// Dropped returns the number of duplicate records dropped so far.
func (d *Dedup) Dropped() int {
	return d.dropped
}
