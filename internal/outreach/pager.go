package outreach

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultPageSize = 50

	// queryDebounce is the quiet period after a keystroke before a search
	// refetch is issued. Explicit page navigation skips it.
	queryDebounce = 300 * time.Millisecond
)

// Page is one fetched batch of contacts plus the backend's total count.
type Page struct {
	Items []Contact `json:"items"`
	Total int       `json:"total"`
}

// FetchFunc loads one page of contacts from the backend.
type FetchFunc func(ctx context.Context, query string, page, pageSize int) (Page, error)

// TotalPages computes the page count for a total; never less than one.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Pager tracks the pagination/search cursor for the contact picker and
// issues page fetches. Query changes are debounced, page navigation is
// immediate. Each fetch carries a sequence token; completions belonging to
// a superseded fetch are dropped so a slow earlier response can never
// overwrite a later one.
type Pager struct {
	mu       sync.Mutex
	fetch    FetchFunc
	onPage   func(Page)
	onError  func(error)
	debounce time.Duration

	query    string
	page     int
	pageSize int
	total    int

	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
}

// NewPager builds a pager delivering results to onPage and failures to
// onError. A non-positive debounce selects the default quiet period.
func NewPager(fetch FetchFunc, onPage func(Page), onError func(error), debounce time.Duration) *Pager {
	if debounce <= 0 {
		debounce = queryDebounce
	}
	return &Pager{
		fetch:    fetch,
		onPage:   onPage,
		onError:  onError,
		debounce: debounce,
		page:     1,
		pageSize: DefaultPageSize,
	}
}

func (p *Pager) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

func (p *Pager) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

func (p *Pager) PageSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageSize
}

func (p *Pager) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// SetQuery stores a new free-text query, resets to page one and schedules a
// debounced refetch. Each call restarts the quiet period, so only the last
// query in a burst reaches the backend.
func (p *Pager) SetQuery(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	p.query = query
	p.page = 1

	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed {
			return
		}
		p.refreshLocked()
	})
}

// SetPageSize resets to page one with the new size and refetches
// immediately. Sizes below one are ignored.
func (p *Pager) SetPageSize(size int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || size <= 0 {
		return
	}
	p.pageSize = size
	p.page = 1
	p.refreshLocked()
}

// NextPage advances one page, clamped to the last known page count.
// Returns false (and issues no fetch) at the boundary.
func (p *Pager) NextPage() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.page >= TotalPages(p.total, p.pageSize) {
		return false
	}
	p.page++
	p.refreshLocked()
	return true
}

// PrevPage moves one page back; no-op on page one.
func (p *Pager) PrevPage() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.page <= 1 {
		return false
	}
	p.page--
	p.refreshLocked()
	return true
}

// Refresh refetches the current cursor immediately, bypassing the debounce.
func (p *Pager) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.refreshLocked()
}

// Close cancels any pending debounce and in-flight fetch. No callbacks run
// after Close returns the pager to idle; late completions are dropped.
func (p *Pager) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.seq++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// refreshLocked starts a fetch for the current cursor, superseding any
// in-flight one. Assumes the lock is held.
func (p *Pager) refreshLocked() {
	p.seq++
	seq := p.seq

	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	query, page, pageSize := p.query, p.page, p.pageSize

	go func() {
		result, err := p.fetch(ctx, query, page, pageSize)

		p.mu.Lock()
		if p.closed || seq != p.seq {
			// Superseded by a later cursor change; drop the response.
			p.mu.Unlock()
			return
		}
		if err == nil {
			p.total = result.Total
		}
		onPage, onError := p.onPage, p.onError
		p.mu.Unlock()

		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		if onPage != nil {
			onPage(result)
		}
	}()
}
