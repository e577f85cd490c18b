package page

import (
	"context"
	"sync"
)

// CursorFetch loads messages relative to a reference point. A nil before
// requests the latest window; otherwise before is the oldest known item's
// identifier and the fetch returns the window preceding it.
type CursorFetch[T any] func(ctx context.Context, before *int) (items []T, hasMore bool, err error)

// CursorPager tracks "load earlier" pagination for chronological
// collections (message history). Items are held oldest-first; earlier
// windows are prepended so chronological order is preserved.
type CursorPager[T any] struct {
	mu       sync.Mutex
	fetch    CursorFetch[T]
	cursorOf func(T) int

	items    []T
	hasMore  bool
	inFlight bool
}

// NewCursorPager constructs a pager; cursorOf extracts an item's identifier
// used as the "before" reference.
func NewCursorPager[T any](cursorOf func(T) int, fetch CursorFetch[T]) *CursorPager[T] {
	p := new(CursorPager[T])
	p.fetch = fetch
	p.cursorOf = cursorOf
	return p
}

// Load fetches the latest window, replacing held items. Errors propagate.
func (p *CursorPager[T]) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return nil
	}
	p.inFlight = true
	p.mu.Unlock()
	defer p.clearInFlight()

	items, hasMore, err := p.fetch(ctx, nil)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.items = items
	p.hasMore = hasMore
	p.mu.Unlock()
	return nil
}

// LoadEarlier fetches the window preceding the oldest held item and
// prepends it. Calls while a load is in flight, when no earlier data
// exists, or before the first Load are no-ops returning false. Fetch
// errors are swallowed and leave state unchanged.
func (p *CursorPager[T]) LoadEarlier(ctx context.Context) bool {
	p.mu.Lock()
	if p.inFlight || !p.hasMore || len(p.items) == 0 {
		p.mu.Unlock()
		return false
	}
	p.inFlight = true
	before := p.cursorOf(p.items[0])
	p.mu.Unlock()
	defer p.clearInFlight()

	items, hasMore, err := p.fetch(ctx, &before)
	if err != nil {
		return false
	}

	p.mu.Lock()
	p.items = append(items, p.items...)
	p.hasMore = hasMore
	p.mu.Unlock()
	return true
}

// Replace swaps the held items wholesale, used when a poll detects fresh
// content. hasMore is left untouched.
func (p *CursorPager[T]) Replace(items []T) {
	p.mu.Lock()
	p.items = items
	p.mu.Unlock()
}

// Append adds one item at the newest end (a just-sent message).
func (p *CursorPager[T]) Append(item T) {
	p.mu.Lock()
	p.items = append(p.items, item)
	p.mu.Unlock()
}

// Items returns a copy of the held collection, oldest first.
func (p *CursorPager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// HasMore reports whether an earlier window is believed to exist.
func (p *CursorPager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

func (p *CursorPager[T]) clearInFlight() {
	p.mu.Lock()
	p.inFlight = false
	p.mu.Unlock()
}
