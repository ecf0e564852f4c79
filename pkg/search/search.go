// Package search implements the catalog search view as a state machine.
//
// A [State] is a plain value. Events produced by the user or by completed
// fetches are applied with [State.Apply], which returns the next state and,
// when the event triggers a new search, a [FetchCatalog] effect for the
// caller to run. Running the effect with [Load] yields the completion event
// to apply next.
//
// Every search is tagged with a generation number. Completions carrying an
// older generation than the latest search are dropped, so an old response
// arriving late never replaces the results of a newer search.
package search

import (
	"github.com/sebastiantruijens/moviegrid/pkg/movie"
	"github.com/sebastiantruijens/moviegrid/pkg/paginate"
)

// Phase is the lifecycle position of the search view.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseRendered
	PhaseEmpty
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseRendered:
		return "rendered"
	case PhaseEmpty:
		return "empty"
	case PhaseError:
		return "error"
	}

	return "unknown"
}

// User-facing messages.
const (
	MessageLoading = "Loading movies..."
	MessageEmpty   = "No movies found matching your criteria."
	MessageError   = "Failed to load movies."
)

// Event is anything that can be applied to a [State].
type Event interface {
	event()
}

// QueryChanged records an edit of the query text. It does not start a
// search.
type QueryChanged struct {
	Query string
}

// SearchRequested starts a search with the current inputs: on initial
// load, on Enter in the query field, or on explicit activation.
type SearchRequested struct{}

// FilterChanged sets one of the filter selectors and starts a search.
type FilterChanged struct {
	Field movie.Field
	Value string
}

// PageSelected moves to another page of the current results without
// fetching or filtering again.
type PageSelected struct {
	Page int
}

// CatalogLoaded completes the search with the given generation.
type CatalogLoaded struct {
	Movies     []movie.Record
	Generation uint64
}

// CatalogFailed completes the search with the given generation in error.
type CatalogFailed struct {
	Err        error
	Generation uint64
}

func (QueryChanged) event()    {}
func (SearchRequested) event() {}
func (FilterChanged) event()   {}
func (PageSelected) event()    {}
func (CatalogLoaded) event()   {}
func (CatalogFailed) event()   {}

// FetchCatalog asks the caller to fetch the unfiltered catalog and report
// back with a completion event for Generation.
type FetchCatalog struct {
	Generation uint64
}

// State is the search view's state.
type State struct {
	// Err is the cause of the last failed fetch, for diagnostics.
	Err error
	// Inputs are the current control values.
	Inputs movie.Inputs
	// Results is the filtered catalog of the latest completed search.
	Results []movie.Record
	// Criteria are the criteria of the latest search.
	Criteria movie.Criteria
	Phase    Phase
	// Page is the current 1-based page of Results.
	Page int
	// Generation identifies the latest search.
	Generation uint64
}

// New returns the initial state, before any search.
func New(in movie.Inputs) State {
	return State{
		Phase:  PhaseIdle,
		Inputs: in,
		Page:   1,
	}
}

// Apply applies ev to s and returns the next state. The returned effect is
// non-nil when ev started a new search.
func (s State) Apply(ev Event) (State, *FetchCatalog) {
	switch ev := ev.(type) {
	case QueryChanged:
		s.Inputs.Query = ev.Query

	case SearchRequested:
		return s.startSearch()

	case FilterChanged:
		in, err := s.Inputs.With(ev.Field, ev.Value)
		if err != nil {
			return s, nil
		}

		s.Inputs = in

		return s.startSearch()

	case PageSelected:
		if s.Phase != PhaseRendered || ev.Page < 1 || ev.Page > s.TotalPages() {
			return s, nil
		}

		s.Page = ev.Page

	case CatalogLoaded:
		if ev.Generation != s.Generation || s.Phase != PhaseLoading {
			return s, nil
		}

		s.Results = movie.Filter(ev.Movies, s.Criteria)
		s.Page = 1
		s.Phase = PhaseRendered
		if len(s.Results) == 0 {
			s.Phase = PhaseEmpty
		}

	case CatalogFailed:
		if ev.Generation != s.Generation || s.Phase != PhaseLoading {
			return s, nil
		}

		s.Results = nil
		s.Err = ev.Err
		s.Phase = PhaseError
	}

	return s, nil
}

func (s State) startSearch() (State, *FetchCatalog) {
	s.Generation++
	s.Criteria = movie.ParseCriteria(s.Inputs)
	s.Phase = PhaseLoading
	s.Results = nil
	s.Err = nil

	return s, &FetchCatalog{Generation: s.Generation}
}

// TotalPages returns the number of result pages.
func (s State) TotalPages() int {
	return paginate.TotalPages(len(s.Results), paginate.PageSize)
}

// Visible returns the results on the current page.
func (s State) Visible() []movie.Record {
	if s.Phase != PhaseRendered {
		return nil
	}

	return paginate.Slice(s.Results, s.Page, paginate.PageSize)
}

// Controls returns the pagination bar for the current page. It is empty
// unless results are shown.
func (s State) Controls() []paginate.Control {
	if s.Phase != PhaseRendered {
		return nil
	}

	return paginate.Layout(s.Page, s.TotalPages())
}

// Message returns the text shown instead of results, if any.
func (s State) Message() string {
	switch s.Phase {
	case PhaseLoading:
		return MessageLoading
	case PhaseEmpty:
		return MessageEmpty
	case PhaseError:
		return MessageError
	}

	return ""
}
