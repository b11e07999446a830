package narration

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"matchcast/internal/debug"
	"matchcast/internal/match"
)

// DefaultBatchSize is the number of actions submitted per generation
// request.
const DefaultBatchSize = 3

// Config tunes a Pipeline. Zero values fall back to defaults.
type Config struct {
	Language    string
	MaxAttempts int
	BatchSize   int
}

// Pipeline wires composer, retrier, binder and sequencer together: split
// the match script into batches, dispatch one generation request per batch
// concurrently, and gather the bound narration back in order.
type Pipeline struct {
	retrier   *Retrier
	binder    *Binder
	batchSize int
	log       *debug.Logger
	tracer    trace.Tracer
}

func NewPipeline(gen Generator, first, second match.Team, venue match.Venue, cfg Config, log *debug.Logger, audit AttemptLogger) *Pipeline {
	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	composer := NewComposer(cfg.Language)
	return &Pipeline{
		retrier:   NewRetrier(gen, composer, cfg.MaxAttempts, log, audit),
		binder:    NewBinder(first, second, venue),
		batchSize: batchSize,
		log:       log,
		tracer:    otel.Tracer("narration"),
	}
}

// Start validates the script, kicks off one goroutine per batch and returns
// the sequencer immediately; groups become available as batches finish.
// Cancelling ctx abandons every outstanding request and retry loop. The
// first batch failure cancels the remaining batches; groups already bound
// before the failing index are still consumable.
func (p *Pipeline) Start(ctx context.Context, actions []match.Action) (*Sequencer, error) {
	if err := match.ValidateScript(actions); err != nil {
		return nil, fmt.Errorf("invalid match script: %w", err)
	}

	batches := splitBatches(actions, p.batchSize)
	seq := newSequencer(len(batches))
	if len(batches) == 0 {
		return seq, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		go func(index int, batch []match.Action) {
			defer wg.Done()
			p.runBatch(ctx, cancel, seq, index, batch)
		}(i, batch)
	}
	go func() {
		wg.Wait()
		cancel()
	}()

	return seq, nil
}

func (p *Pipeline) runBatch(ctx context.Context, cancel context.CancelFunc, seq *Sequencer, index int, batch []match.Action) {
	batchID := fmt.Sprintf("batch-%d", index)
	ctx, span := p.tracer.Start(ctx, "narration.batch",
		trace.WithAttributes(
			attribute.Int("narration.batch_index", index),
			attribute.Int("narration.batch_actions", len(batch)),
		),
	)
	defer span.End()

	units, err := p.retrier.Generate(ctx, batchID, batch)
	if err != nil {
		span.RecordError(err)
		seq.fail(index, err)
		cancel()
		return
	}

	groups := make([]Bound, len(units))
	for j, unit := range units {
		bound, err := p.binder.Bind(batch[j], unit)
		if err != nil {
			// Unresolved placeholder: validator contract bug, fatal for
			// the whole run.
			span.RecordError(err)
			p.log.Printf("batch %s: %v", batchID, err)
			seq.fail(index, err)
			cancel()
			return
		}
		groups[j] = bound
	}
	seq.deliver(index, groups)
}

func splitBatches(actions []match.Action, size int) [][]match.Action {
	var batches [][]match.Action
	for start := 0; start < len(actions); start += size {
		end := start + size
		if end > len(actions) {
			end = len(actions)
		}
		batches = append(batches, actions[start:end])
	}
	return batches
}
