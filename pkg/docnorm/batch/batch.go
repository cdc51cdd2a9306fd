// Package batch normalizes a record set on a fixed worker pool.
package batch

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/cognicore/docnorm/pkg/docnorm/internalerr"
	"github.com/cognicore/docnorm/pkg/docnorm/javadoc"
)

// Transformer rewrites one record. Implementations must be safe for
// concurrent use.
type Transformer interface {
	Transform(r javadoc.Record) javadoc.Record
}

// TransformerFunc adapts a function to Transformer.
type TransformerFunc func(r javadoc.Record) javadoc.Record

// Transform implements Transformer.
func (f TransformerFunc) Transform(r javadoc.Record) javadoc.Record { return f(r) }

// NotEmpty is the default retention predicate.
func NotEmpty(r javadoc.Record) bool { return !r.IsEmpty() }

// Options configures a Processor
type Options struct {
	Transformer Transformer
	// Workers is the pool size. <=0 uses GOMAXPROCS.
	Workers int
	// Keep decides whether a transformed record is retained. Defaults to NotEmpty.
	Keep   func(javadoc.Record) bool
	Logger *log.Logger
}

// Processor fans records out to workers and collects them in input order
type Processor struct {
	transformer Transformer
	workers     int
	keep        func(javadoc.Record) bool
	logger      *log.Logger
}

// New creates a processor from options.
func New(opts Options) *Processor {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
		if workers <= 0 {
			workers = 1
		}
	}
	keep := opts.Keep
	if keep == nil {
		keep = NotEmpty
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Processor{
		transformer: opts.Transformer,
		workers:     workers,
		keep:        keep,
		logger:      logger,
	}
}

// Workers returns the pool size.
func (p *Processor) Workers() int { return p.workers }

// Flat is a retained record in flattened form. Index is the record's
// position in the input.
type Flat struct {
	Index  int             `json:"index"`
	Fields []javadoc.Field `json:"fields"`
}

// Failure describes a record whose transformation panicked
type Failure struct {
	Index int
	Err   error
}

// Report is the outcome of a run
type Report struct {
	Records  []Flat
	Failures []Failure
	Dropped  int
	Total    int
}

// outcome is the per-task result slot.
type outcome struct {
	record javadoc.Record
	err    error
}

// Run transforms every record, drops failures and records rejected by the
// retention predicate, and flattens the rest in input order.
func (p *Processor) Run(ctx context.Context, records []javadoc.Record) (Report, error) {
	if p.transformer == nil {
		return Report{}, fmt.Errorf("batch: no transformer: %w", internalerr.ErrInvalidConfig)
	}

	results := make([]outcome, len(records))
	tasks := make(chan int, p.workers*2)

	var wg sync.WaitGroup
	wg.Add(p.workers)
	for w := 0; w < p.workers; w++ {
		go func() {
			defer wg.Done()
			for i := range tasks {
				results[i] = p.transformOne(records[i])
			}
		}()
	}

	var dispatchErr error
dispatch:
	for i := range records {
		if err := ctx.Err(); err != nil {
			dispatchErr = err
			break
		}
		select {
		case <-ctx.Done():
			dispatchErr = ctx.Err()
			break dispatch
		case tasks <- i:
		}
	}
	close(tasks)
	wg.Wait()

	if dispatchErr != nil {
		return Report{}, fmt.Errorf("batch: dispatch stopped: %w", dispatchErr)
	}

	report := Report{Total: len(records)}
	for i, res := range results {
		if res.err != nil {
			p.logger.Printf("record %d failed: %v", i, res.err)
			report.Failures = append(report.Failures, Failure{Index: i, Err: res.err})
			continue
		}
		if !p.keep(res.record) {
			report.Dropped++
			continue
		}
		report.Records = append(report.Records, Flat{Index: i, Fields: javadoc.Flatten(res.record)})
	}
	return report, nil
}

func (p *Processor) transformOne(r javadoc.Record) (res outcome) {
	defer func() {
		if v := recover(); v != nil {
			res = outcome{err: fmt.Errorf("%w: %v", internalerr.ErrTaskFailed, v)}
		}
	}()
	return outcome{record: p.transformer.Transform(r)}
}
