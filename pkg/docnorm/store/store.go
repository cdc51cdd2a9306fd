package store

import (
	"context"
	"time"

	"github.com/cognicore/docnorm/pkg/docnorm/javadoc"
)

// Store persists normalized runs for the downstream embedding step
type Store interface {
	Close() error

	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

// Run is one normalization pass over a record set
type Run struct {
	ID        string
	CreatedAt time.Time
	Total     int
	Dropped   int
	Failed    int
	Records   []Record
}

// Record is a retained record in flattened form
type Record struct {
	Index  int
	Fields []javadoc.Field
}

// RunSummary describes a stored run without its records
type RunSummary struct {
	ID        string
	CreatedAt time.Time
	Total     int
	Kept      int
	Dropped   int
	Failed    int
}

// Summary returns the run's counters.
func (r Run) Summary() RunSummary {
	return RunSummary{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Total:     r.Total,
		Kept:      len(r.Records),
		Dropped:   r.Dropped,
		Failed:    r.Failed,
	}
}
