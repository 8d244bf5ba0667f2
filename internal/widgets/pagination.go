package widgets

import (
	"fmt"
	"sync"

	"searchalicious/internal/domain"
	"searchalicious/internal/errors"
	"searchalicious/internal/eventbus"
)

// DefaultDisplayedPages is the width of the page window
const DefaultDisplayedPages = 5

// Window is the range of page numbers shown around the current page
type Window struct {
	Start         int
	End           int
	StartEllipsis bool
	EndEllipsis   bool
}

// Pages lists the page numbers of the window
func (w Window) Pages() []int {
	if w.End < w.Start {
		return nil
	}
	pages := make([]int, 0, w.End-w.Start+1)
	for p := w.Start; p <= w.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

// ComputeWindow returns the page window. The window starts one page before
// the current one and is shifted back when it would run past the last page.
func ComputeWindow(current, pageCount, displayed int) Window {
	if displayed < 1 {
		displayed = DefaultDisplayedPages
	}
	if pageCount < 1 {
		return Window{}
	}
	start := max(current-1, 1)
	end := min(start+displayed-1, pageCount)
	start = max(min(start, end-displayed+1), 1)
	return Window{
		Start:         start,
		End:           end,
		StartEllipsis: current > displayed,
		EndEllipsis:   current < pageCount-displayed,
	}
}

// Pagination tracks the current page and emits page changes
type Pagination struct {
	*Consumer
	displayed int

	mu          sync.RWMutex
	currentPage int
	pageCount   int
}

// NewPagination creates a pagination widget
func NewPagination(searchName string, displayedPages int, bus eventbus.EventBus) *Pagination {
	if displayedPages < 1 {
		displayedPages = DefaultDisplayedPages
	}
	return &Pagination{
		Consumer:  newConsumer(searchName, bus),
		displayed: displayedPages,
	}
}

// Attach subscribes the widget to the results of its search
func (p *Pagination) Attach() {
	p.onResult(func(ev domain.NewResultEvent) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.currentPage = ev.CurrentPage
		p.pageCount = ev.PageCount
	})
}

// CurrentPage returns the current page, 0 before the first result
func (p *Pagination) CurrentPage() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currentPage
}

// PageCount returns the number of pages of the last result
func (p *Pagination) PageCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pageCount
}

// Window returns the page window for the current state
func (p *Pagination) Window() Window {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return ComputeWindow(p.currentPage, p.pageCount, p.displayed)
}

// IsFirst reports whether the current page is the first one
func (p *Pagination) IsFirst() bool {
	return p.CurrentPage() <= 1
}

// IsLast reports whether the current page is the last one
func (p *Pagination) IsLast() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currentPage >= p.pageCount
}

// Next asks for the next page and reports whether there is one
func (p *Pagination) Next() bool {
	if p.IsLast() {
		return false
	}
	p.emit(p.CurrentPage() + 1)
	return true
}

// Prev asks for the previous page and reports whether there is one
func (p *Pagination) Prev() bool {
	if p.IsFirst() {
		return false
	}
	p.emit(p.CurrentPage() - 1)
	return true
}

// GoTo asks for the given page
func (p *Pagination) GoTo(page int) error {
	if page < 1 || page > p.PageCount() {
		return errors.NewValidation(fmt.Sprintf("page %d is out of range 1..%d", page, p.PageCount()))
	}
	p.emit(page)
	return nil
}

func (p *Pagination) emit(page int) {
	p.bus.Publish(domain.ChangePageEvent{Routed: p.routed(), Page: page})
}
