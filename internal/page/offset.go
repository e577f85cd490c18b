// Package page maintains cursor and offset state for incrementally loaded
// collections, guarding against concurrent reentry.
package page

import (
	"context"
	"sync"
)

// OffsetFetch loads one page of results. hasMore is the server's explicit
// flag when present, nil otherwise.
type OffsetFetch[T any] func(ctx context.Context, pageNum, limit int) (items []T, hasMore *bool, err error)

// OffsetPager tracks page-numbered pagination (artist lists, search
// results). Pages start at 1; the counter only advances after a successful
// response, and a load issued while another is in flight is a no-op.
type OffsetPager[T any] struct {
	mu       sync.Mutex
	fetch    OffsetFetch[T]
	pageSize int

	items    []T
	page     int
	hasMore  bool
	inFlight bool
}

// NewOffsetPager constructs a pager issuing pages of size pageSize.
func NewOffsetPager[T any](pageSize int, fetch OffsetFetch[T]) *OffsetPager[T] {
	if pageSize <= 0 {
		pageSize = 20
	}
	p := new(OffsetPager[T])
	p.fetch = fetch
	p.pageSize = pageSize
	p.hasMore = true
	return p
}

// Load fetches page 1, replacing any previously held items. Errors
// propagate to the caller; position state is reset only on success.
func (p *OffsetPager[T]) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return nil
	}
	p.inFlight = true
	p.mu.Unlock()
	defer p.clearInFlight()

	items, hasMore, err := p.fetch(ctx, 1, p.pageSize)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.items = items
	p.page = 1
	p.hasMore = p.deriveHasMore(len(items), hasMore)
	p.mu.Unlock()
	return nil
}

// LoadNext fetches the page after the current one and appends its items.
// It reports whether a page was actually loaded: a call while another load
// is in flight, or when no more data is available, is a no-op and returns
// false without issuing a request. Fetch errors are swallowed and leave
// position state unchanged.
func (p *OffsetPager[T]) LoadNext(ctx context.Context) bool {
	p.mu.Lock()
	if p.inFlight || !p.hasMore || p.page == 0 {
		p.mu.Unlock()
		return false
	}
	p.inFlight = true
	next := p.page + 1
	p.mu.Unlock()
	defer p.clearInFlight()

	items, hasMore, err := p.fetch(ctx, next, p.pageSize)
	if err != nil {
		return false
	}

	p.mu.Lock()
	p.items = append(p.items, items...)
	p.page = next
	p.hasMore = p.deriveHasMore(len(items), hasMore)
	p.mu.Unlock()
	return true
}

// Items returns a copy of the loaded collection.
func (p *OffsetPager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// Page returns the last successfully loaded page number, zero before the
// first load.
func (p *OffsetPager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// HasMore reports whether another page is believed to exist.
func (p *OffsetPager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// PageSize returns the configured page size.
func (p *OffsetPager[T]) PageSize() int { return p.pageSize }

// deriveHasMore prefers the server's explicit flag; absent one, a page is
// considered full when it returned at least pageSize items. A last page of
// exactly pageSize items therefore reads as "more available" — a known
// boundary case inherited from the backend contract.
func (p *OffsetPager[T]) deriveHasMore(count int, explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	return count >= p.pageSize
}

func (p *OffsetPager[T]) clearInFlight() {
	p.mu.Lock()
	p.inFlight = false
	p.mu.Unlock()
}
