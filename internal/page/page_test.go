package page

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestOffsetPagerFullPageImpliesMore(t *testing.T) {
	pager := NewOffsetPager(20, func(_ context.Context, pageNum, limit int) ([]int, *bool, error) {
		items := make([]int, limit)
		return items, nil, nil
	})
	require.NoError(t, pager.Load(context.Background()))
	require.Equal(t, 1, pager.Page())
	require.True(t, pager.HasMore(), "20 of 20 with no flag means more")
}

func TestOffsetPagerShortPageImpliesDone(t *testing.T) {
	pager := NewOffsetPager(20, func(_ context.Context, pageNum, limit int) ([]int, *bool, error) {
		return make([]int, 7), nil, nil
	})
	require.NoError(t, pager.Load(context.Background()))
	require.False(t, pager.HasMore())
	require.False(t, pager.LoadNext(context.Background()), "no request when exhausted")
}

func TestOffsetPagerExplicitFlagWins(t *testing.T) {
	pager := NewOffsetPager(20, func(_ context.Context, pageNum, limit int) ([]int, *bool, error) {
		// Full page, but the server says there is nothing more.
		return make([]int, 20), boolPtr(false), nil
	})
	require.NoError(t, pager.Load(context.Background()))
	require.False(t, pager.HasMore())
}

func TestOffsetPagerAdvancesOnlyOnSuccess(t *testing.T) {
	var fail atomic.Bool
	pager := NewOffsetPager(2, func(_ context.Context, pageNum, limit int) ([]string, *bool, error) {
		if fail.Load() {
			return nil, nil, errors.New("backend down")
		}
		return []string{"a", "b"}, nil, nil
	})
	require.NoError(t, pager.Load(context.Background()))
	require.Equal(t, 1, pager.Page())

	fail.Store(true)
	require.False(t, pager.LoadNext(context.Background()))
	require.Equal(t, 1, pager.Page(), "counter must not advance on failure")
	require.Len(t, pager.Items(), 2)

	fail.Store(false)
	require.True(t, pager.LoadNext(context.Background()))
	require.Equal(t, 2, pager.Page())
	require.Len(t, pager.Items(), 4)
}

func TestOffsetPagerConcurrentLoadNextIssuesOneCall(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int64
	pager := NewOffsetPager(2, func(_ context.Context, pageNum, limit int) ([]int, *bool, error) {
		if pageNum > 1 {
			calls.Add(1)
			<-release
		}
		return []int{1, 2}, nil, nil
	})
	require.NoError(t, pager.Load(context.Background()))

	var wg sync.WaitGroup
	var first bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = pager.LoadNext(context.Background())
	}()

	// Wait until the first load is in flight, then issue a second one: it
	// must be rejected by the guard without a network call.
	require.Eventually(t, func() bool { return calls.Load() > 0 },
		time.Second, time.Millisecond)
	require.False(t, pager.LoadNext(context.Background()))

	close(release)
	wg.Wait()

	require.True(t, first)
	require.EqualValues(t, 1, calls.Load(), "exactly one network call")
	require.Equal(t, 2, pager.Page(), "exactly one counter advancement")
}

func TestOffsetPagerLoadBeforeNextRequired(t *testing.T) {
	pager := NewOffsetPager(5, func(_ context.Context, pageNum, limit int) ([]int, *bool, error) {
		return make([]int, 5), nil, nil
	})
	require.False(t, pager.LoadNext(context.Background()), "LoadNext before Load is a no-op")
}

type msg struct {
	id   int
	body string
}

func TestCursorPagerPrependsEarlierWindow(t *testing.T) {
	windows := map[int][]msg{
		0:  {{id: 10, body: "c"}, {id: 11, body: "d"}},
		10: {{id: 8, body: "a"}, {id: 9, body: "b"}},
	}
	var lastBefore atomic.Int64
	pager := NewCursorPager(func(m msg) int { return m.id },
		func(_ context.Context, before *int) ([]msg, bool, error) {
			key := 0
			if before != nil {
				key = *before
				lastBefore.Store(int64(*before))
			}
			items := windows[key]
			return items, key == 0, nil
		})

	require.NoError(t, pager.Load(context.Background()))
	require.True(t, pager.HasMore())

	require.True(t, pager.LoadEarlier(context.Background()))
	require.EqualValues(t, 10, lastBefore.Load(), "cursor is oldest known id")

	got := pager.Items()
	require.Equal(t, []msg{{8, "a"}, {9, "b"}, {10, "c"}, {11, "d"}}, got,
		"earlier window is prepended, chronological order preserved")
	require.False(t, pager.HasMore())
	require.False(t, pager.LoadEarlier(context.Background()))
}

func TestCursorPagerEmptyCollectionIsNoOp(t *testing.T) {
	var calls atomic.Int64
	pager := NewCursorPager(func(m msg) int { return m.id },
		func(_ context.Context, before *int) ([]msg, bool, error) {
			calls.Add(1)
			return nil, true, nil
		})
	require.False(t, pager.LoadEarlier(context.Background()))
	require.Zero(t, calls.Load())
}

func TestCursorPagerErrorLeavesStateUnchanged(t *testing.T) {
	var fail atomic.Bool
	pager := NewCursorPager(func(m msg) int { return m.id },
		func(_ context.Context, before *int) ([]msg, bool, error) {
			if fail.Load() {
				return nil, false, errors.New("boom")
			}
			return []msg{{id: 5, body: "x"}}, true, nil
		})
	require.NoError(t, pager.Load(context.Background()))

	fail.Store(true)
	require.False(t, pager.LoadEarlier(context.Background()))
	require.Equal(t, []msg{{5, "x"}}, pager.Items())
	require.True(t, pager.HasMore())
}

func TestCursorPagerAppendAndReplace(t *testing.T) {
	pager := NewCursorPager(func(m msg) int { return m.id },
		func(_ context.Context, before *int) ([]msg, bool, error) {
			return []msg{{id: 1, body: "a"}}, false, nil
		})
	require.NoError(t, pager.Load(context.Background()))

	pager.Append(msg{id: 2, body: "b"})
	require.Equal(t, []msg{{1, "a"}, {2, "b"}}, pager.Items())

	pager.Replace([]msg{{id: 3, body: "c"}})
	require.Equal(t, []msg{{3, "c"}}, pager.Items())
}
