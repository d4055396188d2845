package outreach

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 50), "an empty result still has one page")
	assert.Equal(t, 1, TotalPages(50, 50))
	assert.Equal(t, 2, TotalPages(51, 50))
	assert.Equal(t, 3, TotalPages(101, 50))
	assert.Equal(t, 1, TotalPages(10, 0))
}

type fetchCall struct {
	query    string
	page     int
	pageSize int
}

// pagerHarness wires a pager to channels so tests can observe fetches and
// page deliveries without sleeping on internals.
type pagerHarness struct {
	pager   *Pager
	fetches chan fetchCall
	pages   chan Page
	errs    chan error
	total   int64
}

func newPagerHarness(t *testing.T, debounce time.Duration) *pagerHarness {
	t.Helper()
	h := &pagerHarness{
		fetches: make(chan fetchCall, 16),
		pages:   make(chan Page, 16),
		errs:    make(chan error, 16),
	}
	fetch := func(ctx context.Context, query string, page, pageSize int) (Page, error) {
		h.fetches <- fetchCall{query: query, page: page, pageSize: pageSize}
		return Page{Total: int(atomic.LoadInt64(&h.total))}, nil
	}
	h.pager = NewPager(fetch, func(p Page) { h.pages <- p }, func(err error) { h.errs <- err }, debounce)
	t.Cleanup(h.pager.Close)
	return h
}

func (h *pagerHarness) waitFetch(t *testing.T) fetchCall {
	t.Helper()
	select {
	case call := <-h.fetches:
		return call
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a fetch")
		return fetchCall{}
	}
}

func (h *pagerHarness) waitPage(t *testing.T) Page {
	t.Helper()
	select {
	case page := <-h.pages:
		return page
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a page")
		return Page{}
	}
}

func (h *pagerHarness) expectNoFetch(t *testing.T, within time.Duration) {
	t.Helper()
	select {
	case call := <-h.fetches:
		t.Fatalf("unexpected fetch: %+v", call)
	case <-time.After(within):
	}
}

func TestSetQueryDebouncesBursts(t *testing.T) {
	h := newPagerHarness(t, 20*time.Millisecond)

	h.pager.SetQuery("a")
	h.pager.SetQuery("ab")
	h.pager.SetQuery("abc")

	call := h.waitFetch(t)
	assert.Equal(t, "abc", call.query, "only the last query of the burst is fetched")
	assert.Equal(t, 1, call.page)
	h.expectNoFetch(t, 50*time.Millisecond)
}

func TestSetQueryResetsToPageOne(t *testing.T) {
	h := newPagerHarness(t, 5*time.Millisecond)
	atomic.StoreInt64(&h.total, 500)

	h.pager.Refresh()
	h.waitFetch(t)
	h.waitPage(t)

	require.True(t, h.pager.NextPage())
	h.waitFetch(t)
	h.waitPage(t)
	require.Equal(t, 2, h.pager.CurrentPage())

	h.pager.SetQuery("alice")
	assert.Equal(t, 1, h.pager.CurrentPage())
	call := h.waitFetch(t)
	assert.Equal(t, 1, call.page)
}

func TestNavigationSkipsDebounce(t *testing.T) {
	h := newPagerHarness(t, time.Hour) // would time out if navigation debounced
	atomic.StoreInt64(&h.total, 500)

	h.pager.Refresh()
	h.waitFetch(t)
	h.waitPage(t)

	require.True(t, h.pager.NextPage())
	call := h.waitFetch(t)
	assert.Equal(t, 2, call.page)
}

func TestNavigationClamps(t *testing.T) {
	h := newPagerHarness(t, 5*time.Millisecond)

	assert.False(t, h.pager.PrevPage(), "already on page one")
	assert.False(t, h.pager.NextPage(), "no known pages beyond the first")
	h.expectNoFetch(t, 30*time.Millisecond)

	atomic.StoreInt64(&h.total, 60)
	h.pager.Refresh()
	h.waitFetch(t)
	h.waitPage(t)

	require.True(t, h.pager.NextPage())
	h.waitFetch(t)
	h.waitPage(t)
	assert.False(t, h.pager.NextPage(), "page 2 of 2 is the boundary")
}

func TestSetPageSizeResetsAndRefetches(t *testing.T) {
	h := newPagerHarness(t, time.Hour)
	atomic.StoreInt64(&h.total, 500)

	h.pager.Refresh()
	h.waitFetch(t)
	h.waitPage(t)
	require.True(t, h.pager.NextPage())
	h.waitFetch(t)
	h.waitPage(t)

	h.pager.SetPageSize(10)
	call := h.waitFetch(t)
	assert.Equal(t, 1, call.page)
	assert.Equal(t, 10, call.pageSize)

	h.pager.SetPageSize(0)
	h.expectNoFetch(t, 30*time.Millisecond)
	assert.Equal(t, 10, h.pager.PageSize())
}

func TestStaleResponsesAreDropped(t *testing.T) {
	release := make(chan struct{})
	var calls int64
	pages := make(chan Page, 16)

	fetch := func(ctx context.Context, query string, page, pageSize int) (Page, error) {
		if atomic.AddInt64(&calls, 1) == 1 {
			<-release // first fetch stalls until after it is superseded
			return Page{Total: 111}, nil
		}
		return Page{Total: 222}, nil
	}
	p := NewPager(fetch, func(pg Page) { pages <- pg }, nil, 5*time.Millisecond)
	defer p.Close()

	p.Refresh()
	p.Refresh()

	select {
	case page := <-pages:
		assert.Equal(t, 222, page.Total)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the superseding page")
	}

	close(release)
	select {
	case page := <-pages:
		t.Fatalf("stale response was delivered: %+v", page)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, 222, p.Total())
}

func TestCloseStopsCallbacks(t *testing.T) {
	h := newPagerHarness(t, 5*time.Millisecond)

	h.pager.SetQuery("pending")
	h.pager.Close()

	h.expectNoFetch(t, 50*time.Millisecond)

	h.pager.Refresh()
	h.pager.SetQuery("after close")
	assert.False(t, h.pager.NextPage())
	h.expectNoFetch(t, 30*time.Millisecond)
}

func TestFetchErrorsReachOnError(t *testing.T) {
	errs := make(chan error, 1)
	fetch := func(ctx context.Context, query string, page, pageSize int) (Page, error) {
		return Page{}, context.DeadlineExceeded
	}
	p := NewPager(fetch, nil, func(err error) { errs <- err }, 5*time.Millisecond)
	defer p.Close()

	p.Refresh()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the fetch error")
	}
	assert.Equal(t, 0, p.Total(), "a failed fetch leaves the total untouched")
}
