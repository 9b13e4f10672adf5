package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slowTick = time.Hour

type scriptedReader struct {
	mu      sync.Mutex
	results []readResult
	block   chan struct{}
}

type readResult struct {
	key Key
	err error
}

func keys(names ...Key) []readResult {
	out := make([]readResult, 0, len(names))
	for _, name := range names {
		out = append(out, readResult{key: name})
	}
	return out
}

// ReadKey replays the script, then blocks until the reader is released.
func (r *scriptedReader) ReadKey() (Key, error) {
	r.mu.Lock()
	if len(r.results) > 0 {
		next := r.results[0]
		r.results = r.results[1:]
		r.mu.Unlock()
		return next.key, next.err
	}
	r.mu.Unlock()

	<-r.block
	return "", errors.New("released")
}

func newScriptedReader(t *testing.T, results []readResult) *scriptedReader {
	t.Helper()
	r := &scriptedReader{results: results, block: make(chan struct{})}
	t.Cleanup(func() { close(r.block) })
	return r
}

func nextWithin(t *testing.T, s *Source, d time.Duration) (Event, bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return s.Next(ctx)
}

func TestSourceForwardsKeysInOrder(t *testing.T) {
	reader := newScriptedReader(t, keys("j", "k", "q"))
	source := NewSource(context.Background(), reader, Options{TickInterval: slowTick})
	t.Cleanup(source.Close)

	var got []Event
	for range 3 {
		ev, ok := nextWithin(t, source, time.Second)
		require.True(t, ok)
		got = append(got, ev)
	}

	assert.Equal(t, []Event{Input("j"), Input("k"), Input("q")}, got)
}

func TestSourceSkipsUndecodableInput(t *testing.T) {
	reader := newScriptedReader(t, []readResult{
		{err: ErrUndecodable},
		{key: "j"},
		{err: fmt.Errorf("wrapped: %w", ErrUndecodable)},
		{key: "k"},
	})
	source := NewSource(context.Background(), reader, Options{TickInterval: slowTick})
	t.Cleanup(source.Close)

	first, ok := nextWithin(t, source, time.Second)
	require.True(t, ok)
	second, ok := nextWithin(t, source, time.Second)
	require.True(t, ok)

	assert.Equal(t, Input("j"), first)
	assert.Equal(t, Input("k"), second)
}

func TestSourceEmitsTicks(t *testing.T) {
	source := NewSource(context.Background(), nil, Options{TickInterval: 5 * time.Millisecond})
	t.Cleanup(source.Close)

	for range 3 {
		ev, ok := nextWithin(t, source, time.Second)
		require.True(t, ok)
		assert.Equal(t, EventTick, ev.Type)
	}
}

func TestSourceBackpressureLosesNothing(t *testing.T) {
	const total = 50
	script := make([]readResult, 0, total)
	for i := range total {
		script = append(script, readResult{key: Key(fmt.Sprintf("k%d", i))})
	}
	reader := newScriptedReader(t, script)
	source := NewSource(context.Background(), reader, Options{TickInterval: slowTick, Capacity: 1})
	t.Cleanup(source.Close)

	for i := range total {
		if i%10 == 0 {
			time.Sleep(2 * time.Millisecond)
		}
		ev, ok := nextWithin(t, source, time.Second)
		require.True(t, ok)
		assert.Equal(t, Input(Key(fmt.Sprintf("k%d", i))), ev)
	}
}

func TestSourceInputErrorStopsOnlyInputProducer(t *testing.T) {
	reader := newScriptedReader(t, []readResult{{key: "j"}, {err: errors.New("tty gone")}})
	source := NewSource(context.Background(), reader, Options{TickInterval: 5 * time.Millisecond})
	t.Cleanup(source.Close)

	ev, ok := nextWithin(t, source, time.Second)
	require.True(t, ok)
	assert.Equal(t, Input("j"), ev)

	ev, ok = nextWithin(t, source, time.Second)
	require.True(t, ok)
	assert.Equal(t, EventTick, ev.Type)
}

func TestSourceCloseIsIdempotent(t *testing.T) {
	reader := newScriptedReader(t, nil)
	source := NewSource(context.Background(), reader, Options{TickInterval: 5 * time.Millisecond})

	source.Close()
	source.Close()

	for range 3 {
		_, ok := nextWithin(t, source, 100*time.Millisecond)
		assert.False(t, ok)
	}
}

func TestSourceCloseUnblocksWaitingConsumer(t *testing.T) {
	reader := newScriptedReader(t, nil)
	source := NewSource(context.Background(), reader, Options{TickInterval: slowTick})

	result := make(chan bool, 1)
	go func() {
		_, ok := source.Next(context.Background())
		result <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	source.Close()

	select {
	case ok := <-result:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Next did not return after Close")
	}
}

func TestSourceEndsWhenParentContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := NewSource(ctx, nil, Options{TickInterval: slowTick})
	t.Cleanup(source.Close)

	cancel()

	_, ok := nextWithin(t, source, time.Second)
	assert.False(t, ok)
}

func TestNextHonorsCallerContext(t *testing.T) {
	source := NewSource(context.Background(), nil, Options{TickInterval: slowTick})
	t.Cleanup(source.Close)

	start := time.Now()
	_, ok := nextWithin(t, source, 20*time.Millisecond)

	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second)
}
