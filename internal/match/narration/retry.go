package narration

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"matchcast/internal/debug"
	"matchcast/internal/logging"
	"matchcast/internal/match"
)

// DefaultMaxAttempts is the per-batch attempt budget.
const DefaultMaxAttempts = 3

// AttemptLogger records every generation attempt for later review.
// Satisfied by *logging.GenerationLogger; nil disables auditing.
type AttemptLogger interface {
	LogAttempt(actions any, systemPrompt, userPrompt, response string, md logging.GenerationMetadata) error
}

// Retrier drives compose -> generate -> validate rounds for one batch, up
// to a bounded attempt count. Validation failures are re-issued immediately
// with corrective context; transport failures wait out a backoff first.
// The match data is never mutated between attempts.
type Retrier struct {
	gen         Generator
	composer    *Composer
	validator   *Validator
	maxAttempts int
	newBackOff  func() backoff.BackOff
	log         *debug.Logger
	audit       AttemptLogger
}

func NewRetrier(gen Generator, composer *Composer, maxAttempts int, log *debug.Logger, audit AttemptLogger) *Retrier {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Retrier{
		gen:         gen,
		composer:    composer,
		validator:   NewValidator(),
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
		log:   log,
		audit: audit,
	}
}

// Generate returns the validated units for the batch, or a terminal
// *RetryExhaustedError once the attempt budget is spent. Success on any
// attempt short-circuits immediately. batchID tags audit log rows.
func (r *Retrier) Generate(ctx context.Context, batchID string, batch []match.Action) ([]Unit, error) {
	var (
		lastErr        error
		lastViolations []Violation
		malformed      string
	)
	bo := r.newBackOff()

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			prompt Prompt
			err    error
		)
		if attempt == 1 {
			prompt, err = r.composer.Compose(batch)
		} else {
			prompt, err = r.composer.ComposeCorrective(batch, lastViolations, malformed)
		}
		if err != nil {
			// Composing only fails on invalid input actions; retrying
			// cannot fix that.
			return nil, err
		}

		start := time.Now()
		raw, err := r.gen.Generate(ctx, prompt)
		elapsed := time.Since(start)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = &ServiceUnavailableError{Err: err}
			r.log.Printf("batch %s attempt %d/%d: transport failure: %v", batchID, attempt, r.maxAttempts, err)
			r.logAttempt(batchID, batch, prompt, "", elapsed, lastErr)
			if attempt < r.maxAttempts {
				if err := sleep(ctx, bo.NextBackOff()); err != nil {
					return nil, err
				}
			}
			continue
		}

		units, verr := r.validator.Validate(batch, raw)
		r.logAttempt(batchID, batch, prompt, raw, elapsed, verr)
		if verr == nil {
			r.log.Printf("batch %s attempt %d/%d: accepted %d units", batchID, attempt, r.maxAttempts, len(units))
			return units, nil
		}

		lastErr = verr
		lastViolations, malformed = nil, ""
		switch e := verr.(type) {
		case *MalformedResponseError:
			malformed = e.Error()
		case *SemanticViolationError:
			lastViolations = e.Violations
		}
		r.log.Printf("batch %s attempt %d/%d rejected: %v", batchID, attempt, r.maxAttempts, verr)
	}

	return nil, &RetryExhaustedError{
		Attempts:   r.maxAttempts,
		Violations: lastViolations,
		LastErr:    lastErr,
	}
}

func (r *Retrier) logAttempt(batchID string, batch []match.Action, prompt Prompt, raw string, elapsed time.Duration, verdict error) {
	if r.audit == nil {
		return
	}
	md := logging.GenerationMetadata{
		Batch:        batchID,
		ResponseTime: elapsed,
	}
	if verdict != nil {
		s := verdict.Error()
		md.Error = &s
	}
	// Best effort, the pipeline must not stall on audit failures.
	if err := r.audit.LogAttempt(batch, prompt.System, prompt.User, raw, md); err != nil {
		r.log.Printf("batch %s: audit log failed: %v", batchID, err)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 || d == backoff.Stop {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
