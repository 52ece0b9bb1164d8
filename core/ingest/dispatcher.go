package ingest

import (
	"context"
	"time"
)

// DefaultBatchSize matches the bulk-write API contract of the downstream
// sink: at most 10 records per request.
const DefaultBatchSize = 10

// DefaultPause is the minimum wall-clock gap after each flush. The sink
// documents a 10 requests/second ceiling on its streaming write operations;
// pausing 300ms after every flush keeps a single invocation under it.
const DefaultPause = 300 * time.Millisecond

// Record is one normalized streaming record: a logical id plus a JSON-encoded
// property document, the shape shared by the sink's put-items and put-users
// operations.
type Record struct {
	ID         string
	Properties string
}

// FlushFunc delivers one full or partial batch to the downstream sink.
type FlushFunc func(ctx context.Context, batch []Record) error

// Dispatcher accumulates records into fixed-size batches for one target and
// flushes each batch through its FlushFunc, pausing after every flush.
//
// The pause is unconditional, final short flush included, and blocks the
// calling goroutine; there is no overlap of flush and pause within a run.
// Flush errors propagate to the caller; this layer performs no retries, so a
// failed run fails visibly rather than silently dropping a batch.
type Dispatcher struct {
	size    int
	pause   time.Duration
	flush   FlushFunc
	pending []Record
	flushes int

	// sleep is swappable in tests.
	sleep func(time.Duration)
}

// NewDispatcher creates a dispatcher for one target. A size or pause of zero
// falls back to the defaults.
func NewDispatcher(size int, pause time.Duration, flush FlushFunc) *Dispatcher {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if pause <= 0 {
		pause = DefaultPause
	}
	return &Dispatcher{
		size:  size,
		pause: pause,
		flush: flush,
		sleep: time.Sleep,
	}
}

// Offer appends a record to the pending batch, flushing automatically once
// the batch reaches the configured size.
func (d *Dispatcher) Offer(ctx context.Context, rec Record) error {
	d.pending = append(d.pending, rec)
	if len(d.pending) >= d.size {
		return d.flushPending(ctx)
	}
	return nil
}

// Flush drains any partial batch below the threshold. It must be called at
// the end of a run.
func (d *Dispatcher) Flush(ctx context.Context) error {
	if len(d.pending) == 0 {
		return nil
	}
	return d.flushPending(ctx)
}

// Flushes returns the number of batches delivered so far.
func (d *Dispatcher) Flushes() int {
	return d.flushes
}

func (d *Dispatcher) flushPending(ctx context.Context) error {
	batch := d.pending
	d.pending = nil
	if err := d.flush(ctx, batch); err != nil {
		return err
	}
	d.flushes++
	d.sleep(d.pause)
	return nil
}
