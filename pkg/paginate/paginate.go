// Package paginate computes the visible slice of a result list and the
// layout of the page controls shown beneath it.
package paginate

import "strconv"

// PageSize is the number of movies shown per page.
const PageSize = 10

// Kind identifies what a [Control] does.
type Kind int

const (
	KindPage Kind = iota
	KindPrev
	KindNext
	KindEllipsis
)

// Control is a single element of the pagination bar.
type Control struct {
	Kind Kind
	// Page is the page the control selects. Zero for an ellipsis.
	Page int
	// Active is set on the control for the current page, which is shown as
	// selected and cannot be activated.
	Active bool
}

// Selectable reports whether activating c changes the page.
func (c Control) Selectable() bool {
	return c.Kind != KindEllipsis && !c.Active
}

// Label returns the text shown for c.
func (c Control) Label() string {
	switch c.Kind {
	case KindPrev:
		return "Prev"
	case KindNext:
		return "Next"
	case KindEllipsis:
		return "..."
	}

	return strconv.Itoa(c.Page)
}

// TotalPages returns the number of pages needed for n items.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}

	return (n + size - 1) / size
}

// Slice returns the items on the given 1-based page. A page outside the
// available range yields an empty slice.
func Slice[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return items[:0:0]
	}

	start := (page - 1) * size
	if start >= len(items) {
		return items[:0:0]
	}

	end := min(start+size, len(items))

	return items[start:end:end]
}

// Layout returns the pagination bar for the current page. The first and
// last page are always shown, with a window of up to three pages around
// the current one and an ellipsis for each gap. Nothing is shown when
// there is at most one page.
func Layout(current, total int) []Control {
	if total <= 1 {
		return nil
	}

	controls := []Control{}
	page := func(n int) Control {
		return Control{Kind: KindPage, Page: n, Active: n == current}
	}

	if current > 1 {
		controls = append(controls, Control{Kind: KindPrev, Page: current - 1})
	}

	controls = append(controls, page(1))

	if current > 4 {
		controls = append(controls, Control{Kind: KindEllipsis})
	}

	for i := max(2, current-1); i <= min(total-1, current+1); i++ {
		controls = append(controls, page(i))
	}

	if current < total-3 {
		controls = append(controls, Control{Kind: KindEllipsis})
	}

	controls = append(controls, page(total))

	if current < total {
		controls = append(controls, Control{Kind: KindNext, Page: current + 1})
	}

	return controls
}
