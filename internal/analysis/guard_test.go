package analysis

import (
	"context"
	"sync"
	"testing"

	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingAnalyzer struct {
	started chan struct{}
	release chan struct{}
	calls   int
	mu      sync.Mutex
}

func (b *blockingAnalyzer) Analyze(_ context.Context, _ []model.SaleRecord, _ []string) Result {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.started <- struct{}{}
	<-b.release
	return Result{Text: "done", Outcome: OutcomeGenerated}
}

func TestGuard_RefusesOverlappingRequests(t *testing.T) {
	analyzer := &blockingAnalyzer{started: make(chan struct{}), release: make(chan struct{})}
	guard := NewGuard(analyzer)

	var wg sync.WaitGroup
	var first Result
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, firstErr = guard.TryAnalyze(context.Background(), nil, nil)
	}()

	<-analyzer.started
	assert.True(t, guard.Busy())

	_, err := guard.TryAnalyze(context.Background(), nil, nil)
	require.ErrorIs(t, err, ErrAnalysisInFlight)

	close(analyzer.release)
	wg.Wait()

	require.NoError(t, firstErr)
	assert.Equal(t, "done", first.Text)
	assert.False(t, guard.Busy())
	assert.Equal(t, 1, analyzer.calls)
}

func TestGuard_ReleasesAfterCompletion(t *testing.T) {
	r, err := NewRequester(nil, quietLogger())
	require.NoError(t, err)
	guard := NewGuard(r)

	for range 2 {
		res, err := guard.TryAnalyze(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, MsgMissingAPIKey, res.Text)
	}
}
