// Package pager tracks incremental page loading for scrolling lists.
package pager

// Pager allows at most one next-page fetch in flight.
type Pager struct {
	Current int
	Total   int
	busy    bool
}

// New returns a pager that has not loaded anything yet.
func New() *Pager {
	return &Pager{}
}

// HasMore reports whether a page after Current exists. Before the first
// response the total is unknown and one more page is assumed.
func (p *Pager) HasMore() bool {
	if p.Current == 0 {
		return true
	}
	return p.Current < p.Total
}

// Busy reports whether a fetch is in flight.
func (p *Pager) Busy() bool {
	return p.busy
}

// TryNext claims the next page. It returns false while a fetch is in flight
// or when no pages remain.
func (p *Pager) TryNext() (page int, ok bool) {
	if p.busy || !p.HasMore() {
		return 0, false
	}
	p.busy = true
	return p.Current + 1, true
}

// ShouldFetch reports whether the cursor reached the last loaded row and
// another page can be requested.
func (p *Pager) ShouldFetch(cursor, rows int) bool {
	return rows > 0 && cursor >= rows-1 && !p.busy && p.HasMore()
}

// Done records a successful fetch of page out of total.
func (p *Pager) Done(page, total int) {
	p.busy = false
	if page > p.Current {
		p.Current = page
	}
	p.Total = total
}

// Failed releases the in-flight claim without advancing.
func (p *Pager) Failed() {
	p.busy = false
}

// Reset forgets all loaded pages, e.g. when the filter changes.
func (p *Pager) Reset() {
	*p = Pager{}
}
