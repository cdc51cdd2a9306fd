package docnorm

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/docnorm/pkg/docnorm/batch"
	"github.com/cognicore/docnorm/pkg/docnorm/internalerr"
	"github.com/cognicore/docnorm/pkg/docnorm/javadoc"
	"github.com/cognicore/docnorm/pkg/docnorm/store"
)

// Normalizer is the main facade: it normalizes a record set and persists
// the flattened result as a run
type Normalizer struct {
	processor *batch.Processor
	store     store.Store
	logger    *log.Logger
	now       func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Normalizer instance
type Options struct {
	Processor *batch.Processor
	// Store is optional; without it runs are returned but not persisted.
	Store  store.Store
	Logger *log.Logger
	Now    func() time.Time
}

// New creates a Normalizer with the given dependencies
func New(opts Options) *Normalizer {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Normalizer{
		processor: opts.Processor,
		store:     opts.Store,
		logger:    logger,
		now:       now,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
}

// Close cleanly shuts down the store, if any
func (n *Normalizer) Close() error {
	if n.store == nil {
		return nil
	}
	return n.store.Close()
}

// Run normalizes records and stores the outcome under a fresh run ID.
func (n *Normalizer) Run(ctx context.Context, records []javadoc.Record) (store.Run, error) {
	if n.processor == nil {
		return store.Run{}, fmt.Errorf("docnorm: no processor: %w", internalerr.ErrInvalidConfig)
	}

	started := n.now()
	report, err := n.processor.Run(ctx, records)
	if err != nil {
		return store.Run{}, err
	}

	run := store.Run{
		ID:        n.newID(started),
		CreatedAt: started,
		Total:     report.Total,
		Dropped:   report.Dropped,
		Failed:    len(report.Failures),
		Records:   make([]store.Record, len(report.Records)),
	}
	for i, flat := range report.Records {
		run.Records[i] = store.Record{Index: flat.Index, Fields: flat.Fields}
	}

	n.logger.Printf("run %s: %d records, %d kept, %d dropped, %d failed",
		run.ID, run.Total, len(run.Records), run.Dropped, run.Failed)

	if n.store != nil {
		if err := n.store.SaveRun(ctx, run); err != nil {
			return run, fmt.Errorf("save run %s: %w", run.ID, err)
		}
	}
	return run, nil
}

func (n *Normalizer) newID(t time.Time) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), n.entropy).String()
}
