package narration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchcast/internal/match"
)

func boundGroup(minute int, score match.Score) Bound {
	return Bound{Minute: minute, Phrases: []string{"play continues"}, Score: score}
}

func drainMinutes(t *testing.T, seq *Sequencer) []int {
	t.Helper()
	var minutes []int
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		group, err := seq.Next(ctx)
		if errors.Is(err, ErrMatchOver) {
			return minutes
		}
		require.NoError(t, err)
		minutes = append(minutes, group.Minute)
	}
}

func TestSequencerReleasesInOrder(t *testing.T) {
	seq := newSequencer(3)

	// batches land out of order; groups must come out in submission order
	seq.deliver(2, []Bound{boundGroup(70, match.Score{A: 2, B: 1})})
	seq.deliver(0, []Bound{boundGroup(10, match.Score{}), boundGroup(25, match.Score{A: 1})})
	seq.deliver(1, []Bound{boundGroup(44, match.Score{A: 1, B: 1})})

	assert.Equal(t, []int{10, 25, 44, 70}, drainMinutes(t, seq))
}

func TestSequencerMatchOverIsSticky(t *testing.T) {
	seq := newSequencer(1)
	seq.deliver(0, []Bound{boundGroup(5, match.Score{})})
	drainMinutes(t, seq)

	_, err := seq.Next(context.Background())
	assert.ErrorIs(t, err, ErrMatchOver)
	_, err = seq.Next(context.Background())
	assert.ErrorIs(t, err, ErrMatchOver)
}

func TestSequencerBlocksOnGap(t *testing.T) {
	seq := newSequencer(2)
	seq.deliver(1, []Bound{boundGroup(60, match.Score{})})

	// batch 0 is missing, so batch 1 must stay buffered
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := seq.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	seq.deliver(0, []Bound{boundGroup(12, match.Score{})})
	assert.Equal(t, []int{12, 60}, drainMinutes(t, seq))
}

func TestSequencerWakesBlockedConsumer(t *testing.T) {
	seq := newSequencer(1)
	done := make(chan Bound, 1)
	go func() {
		group, err := seq.Next(context.Background())
		if err == nil {
			done <- group
		}
	}()

	time.Sleep(10 * time.Millisecond)
	seq.deliver(0, []Bound{boundGroup(30, match.Score{})})

	select {
	case group := <-done:
		assert.Equal(t, 30, group.Minute)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer never woke up")
	}
}

func TestSequencerFailureStopsAtFailedIndex(t *testing.T) {
	seq := newSequencer(3)
	boom := &RetryExhaustedError{Attempts: 3, LastErr: errors.New("still malformed")}

	seq.deliver(2, []Bound{boundGroup(80, match.Score{})})
	seq.fail(1, boom)
	seq.deliver(0, []Bound{boundGroup(15, match.Score{})})

	ctx := context.Background()
	group, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, group.Minute)

	// batch 1 failed: its error surfaces, batch 2's groups never do
	_, err = seq.Next(ctx)
	var exhausted *RetryExhaustedError
	require.ErrorAs(t, err, &exhausted)

	_, err = seq.Next(ctx)
	assert.ErrorAs(t, err, &exhausted)
}

func TestSequencerTracksRunningScore(t *testing.T) {
	seq := newSequencer(2)
	assert.Equal(t, match.Score{}, seq.CurrentScore())

	seq.deliver(0, []Bound{boundGroup(20, match.Score{A: 1})})
	seq.deliver(1, []Bound{boundGroup(75, match.Score{A: 1, B: 2})})

	ctx := context.Background()
	_, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, match.Score{A: 1}, seq.CurrentScore())

	_, err = seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, match.Score{A: 1, B: 2}, seq.CurrentScore())
}

func TestSequencerEmptyMatch(t *testing.T) {
	seq := newSequencer(0)
	_, err := seq.Next(context.Background())
	assert.ErrorIs(t, err, ErrMatchOver)
}
