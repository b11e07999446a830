package narration

import (
	"errors"
	"fmt"
	"strings"
)

// Rule names a validation rule an entry can violate.
type Rule string

const (
	RuleEntryCount       Rule = "entry_count"
	RulePhraseCount      Rule = "phrase_count"
	RuleScorerMissing    Rule = "scorer_missing"
	RuleScorerUnexpected Rule = "scorer_unexpected"
	RuleScorerToken      Rule = "scorer_token"
	RuleScorerMismatch   Rule = "scorer_mismatch"
	RulePlaceholder      Rule = "placeholder"
)

// Violation is one semantic rule failure, precise enough for the retry
// controller to quote back to the generation service.
type Violation struct {
	Entry    int
	Rule     Rule
	Observed string
}

func (v Violation) String() string {
	return fmt.Sprintf("entry %d: %s: %s", v.Entry, v.Rule, v.Observed)
}

// MalformedResponseError reports a reply whose shape does not match the
// required schema at all. Recoverable by re-invocation.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return "malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SemanticViolationError reports a structurally valid reply that breaks one
// or more narration rules. Recoverable by re-invocation with corrective
// context.
type SemanticViolationError struct {
	Violations []Violation
}

func (e *SemanticViolationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%d narration rule violations: %s", len(e.Violations), strings.Join(parts, "; "))
}

// UnresolvedPlaceholderError means a token that passed validation could not
// be bound to a name. That is an internal contract bug between validator
// and binder, never retried.
type UnresolvedPlaceholderError struct {
	Token string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("unresolved placeholder %q escaped validation", e.Token)
}

// ServiceUnavailableError wraps a transport-level failure from the
// generation service. Retried with backoff.
type ServiceUnavailableError struct {
	Err error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("generation service unavailable: %v", e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error { return e.Err }

// RetryExhaustedError is the terminal failure for a batch after the attempt
// budget ran out. It carries the last attempt's violation list so the
// caller can decide on a fallback.
type RetryExhaustedError struct {
	Attempts   int
	Violations []Violation
	LastErr    error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("narration generation failed after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *RetryExhaustedError) Unwrap() error { return e.LastErr }

// ErrMatchOver is returned by the sequencer once every group has been
// consumed.
var ErrMatchOver = errors.New("match narration complete")
