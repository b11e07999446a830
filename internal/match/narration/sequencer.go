package narration

import (
	"context"
	"sync"

	"matchcast/internal/match"
)

// Sequencer re-exposes concurrently generated batches strictly in original
// submission order, as a lazy, finite, non-restartable pull sequence.
// Early-arriving later batches sit in an indexed pending buffer until every
// lower index has been delivered. One writer per batch index, a single
// consumer.
type Sequencer struct {
	mu      sync.Mutex
	pending map[int]batchResult
	queue   []Bound
	cursor  int // next batch index to release
	total   int
	err     error
	wake    chan struct{}
	score   match.Score
}

type batchResult struct {
	groups []Bound
	err    error
}

func newSequencer(totalBatches int) *Sequencer {
	return &Sequencer{
		pending: make(map[int]batchResult),
		total:   totalBatches,
		wake:    make(chan struct{}),
	}
}

// deliver hands over one finished batch. Called at most once per index.
func (s *Sequencer) deliver(index int, groups []Bound) {
	s.put(index, batchResult{groups: groups})
}

// fail marks a batch as terminally failed. Groups of earlier batches are
// still released; nothing past the failed index ever is.
func (s *Sequencer) fail(index int, err error) {
	s.put(index, batchResult{err: err})
}

func (s *Sequencer) put(index int, res batchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[index] = res
	for {
		next, ok := s.pending[s.cursor]
		if !ok {
			break
		}
		delete(s.pending, s.cursor)
		if next.err != nil {
			s.err = next.err
			break
		}
		s.queue = append(s.queue, next.groups...)
		s.cursor++
	}
	close(s.wake)
	s.wake = make(chan struct{})
}

// Next blocks until the next in-order group is ready and returns it,
// updating the running score. It returns ErrMatchOver after the final
// group, the terminal batch error once the cursor reaches a failed batch,
// or ctx.Err on cancellation.
func (s *Sequencer) Next(ctx context.Context) (Bound, error) {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			group := s.queue[0]
			s.queue = s.queue[1:]
			s.score = group.Score
			s.mu.Unlock()
			return group, nil
		}
		if s.err != nil {
			err := s.err
			s.mu.Unlock()
			return Bound{}, err
		}
		if s.cursor >= s.total {
			s.mu.Unlock()
			return Bound{}, ErrMatchOver
		}
		wake := s.wake
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return Bound{}, ctx.Err()
		case <-wake:
		}
	}
}

// CurrentScore is the score after the last consumed group, derived purely
// from each action's score-after.
func (s *Sequencer) CurrentScore() match.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}
