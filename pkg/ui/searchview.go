package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiantruijens/moviegrid/pkg/config"
	"github.com/sebastiantruijens/moviegrid/pkg/movie"
	"github.com/sebastiantruijens/moviegrid/pkg/paginate"
	"github.com/sebastiantruijens/moviegrid/pkg/search"
)

type focus int

const (
	focusQuery focus = iota
	focusRating
	focusGenre
	focusYear
	focusVotes
	focusResults
	focusPages
	focusCount
)

// selectorField maps a selector focus to the filter it edits.
var selectorField = map[focus]movie.Field{
	focusRating: movie.FieldRating,
	focusGenre:  movie.FieldGenre,
	focusYear:   movie.FieldYear,
	focusVotes:  movie.FieldVotes,
}

var selectorLabel = map[movie.Field]string{
	movie.FieldRating: "Rating",
	movie.FieldGenre:  "Genre",
	movie.FieldYear:   "Year",
	movie.FieldVotes:  "Votes",
}

type searchView struct {
	options map[movie.Field][]config.Option
	// selected is the index into options of each selector.
	selected map[movie.Field]int
	// failed holds the poster URLs that did not load.
	failed map[string]bool

	state search.State
	query textinput.Model

	focus      focus
	cardCursor int
	pageCursor int
}

// catalogMsg carries a search completion.
type catalogMsg struct {
	event search.Event
}

// postersMsg carries the result of probing the posters of a page.
type postersMsg struct {
	failed map[string]bool
}

func newSearchView(cfg *config.Config) searchView {
	ti := textinput.New()
	ti.Placeholder = "Search by title, director, actor..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	v := searchView{
		options:  map[movie.Field][]config.Option{},
		selected: map[movie.Field]int{},
		failed:   map[string]bool{},
		query:    ti,
		focus:    focusQuery,
	}

	for _, f := range movie.AllFields {
		v.options[f] = cfg.Options(f)
	}

	v.state = search.New(movie.Inputs{})

	return v
}

// applySearch applies ev to the search state and returns the commands for
// any effect it produced.
func (m *Model) applySearch(ev search.Event) tea.Cmd {
	prev := m.search.state

	next, fetch := prev.Apply(ev)
	m.search.state = next

	if fetch != nil {
		return m.fetchCatalog(*fetch)
	}

	if next.Phase != search.PhaseRendered {
		return nil
	}

	if prev.Phase != next.Phase || prev.Page != next.Page || prev.Generation != next.Generation {
		m.search.cardCursor = 0
		m.search.pageCursor = activeControl(next.Controls())

		return m.probePosters(next.Visible())
	}

	return nil
}

func (m *Model) fetchCatalog(f search.FetchCatalog) tea.Cmd {
	ctx, src := m.ctx, m.backend

	return func() tea.Msg {
		return catalogMsg{event: search.Load(ctx, src, f)}
	}
}

func (m *Model) probePosters(records []movie.Record) tea.Cmd {
	if m.prober == nil || len(records) == 0 {
		return nil
	}

	ctx, prober := m.ctx, m.prober

	return func() tea.Msg {
		return postersMsg{failed: prober.Probe(ctx, records)}
	}
}

func (m *Model) setFocus(f focus) {
	m.search.focus = (f + focusCount) % focusCount

	if m.search.focus == focusQuery {
		m.search.query.Focus()
	} else {
		m.search.query.Blur()
	}

	if m.search.focus == focusPages {
		m.search.pageCursor = activeControl(m.search.state.Controls())
	}
}

func (m *Model) updateSearchKeys(msg tea.KeyMsg) tea.Cmd {
	v := &m.search

	switch {
	case key.Matches(msg, m.keys.NextFocus):
		m.setFocus(v.focus + 1)
		return nil

	case key.Matches(msg, m.keys.PrevFocus):
		m.setFocus(v.focus - 1)
		return nil
	}

	if v.focus == focusQuery {
		if key.Matches(msg, m.keys.Select) {
			return m.applySearch(search.SearchRequested{})
		}

		before := v.query.Value()

		var cmd tea.Cmd
		v.query, cmd = v.query.Update(msg)

		if after := v.query.Value(); after != before {
			return tea.Batch(cmd, m.applySearch(search.QueryChanged{Query: after}))
		}

		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Query), key.Matches(msg, m.keys.Back):
		m.setFocus(focusQuery)
		return nil

	case key.Matches(msg, m.keys.PrevPage):
		return m.applySearch(search.PageSelected{Page: v.state.Page - 1})

	case key.Matches(msg, m.keys.NextPage):
		return m.applySearch(search.PageSelected{Page: v.state.Page + 1})
	}

	if f, ok := selectorField[v.focus]; ok {
		return m.updateSelector(msg, f)
	}

	switch v.focus {
	case focusResults:
		return m.updateResults(msg)
	case focusPages:
		return m.updatePages(msg)
	}

	return nil
}

func (m *Model) updateSelector(msg tea.KeyMsg, f movie.Field) tea.Cmd {
	v := &m.search
	opts := v.options[f]

	step := 0

	switch {
	case key.Matches(msg, m.keys.Left):
		step = -1
	case key.Matches(msg, m.keys.Right):
		step = 1
	case key.Matches(msg, m.keys.Select):
		return m.applySearch(search.SearchRequested{})
	default:
		return nil
	}

	i := (v.selected[f] + step + len(opts)) % len(opts)
	v.selected[f] = i

	return m.applySearch(search.FilterChanged{Field: f, Value: opts[i].Value})
}

func (m *Model) updateResults(msg tea.KeyMsg) tea.Cmd {
	v := &m.search

	visible := v.state.Visible()
	if len(visible) == 0 {
		return nil
	}

	cols := gridColumns(m.width)

	switch {
	case key.Matches(msg, m.keys.Left):
		v.cardCursor--
	case key.Matches(msg, m.keys.Right):
		v.cardCursor++
	case key.Matches(msg, m.keys.Up):
		v.cardCursor -= cols
	case key.Matches(msg, m.keys.Down):
		v.cardCursor += cols

	case key.Matches(msg, m.keys.Select):
		return m.openDetail(movie.Link(visible[v.cardCursor].Title))

	case key.Matches(msg, m.keys.Open):
		return openBrowserCmd(m.backend.MovieURL(visible[v.cardCursor].Title))

	case key.Matches(msg, m.keys.Copy):
		return copyLinkCmd(m.backend.MovieURL(visible[v.cardCursor].Title))
	}

	v.cardCursor = max(0, min(v.cardCursor, len(visible)-1))

	return nil
}

func (m *Model) updatePages(msg tea.KeyMsg) tea.Cmd {
	v := &m.search

	controls := v.state.Controls()
	if len(controls) == 0 {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		v.pageCursor = nextSelectable(controls, v.pageCursor, -1)
	case key.Matches(msg, m.keys.Right):
		v.pageCursor = nextSelectable(controls, v.pageCursor, 1)

	case key.Matches(msg, m.keys.Select):
		if v.pageCursor < 0 || v.pageCursor >= len(controls) {
			return nil
		}

		if c := controls[v.pageCursor]; c.Selectable() {
			return m.applySearch(search.PageSelected{Page: c.Page})
		}
	}

	return nil
}

// activeControl returns the index of the current page's control.
func activeControl(controls []paginate.Control) int {
	for i, c := range controls {
		if c.Active {
			return i
		}
	}

	return 0
}

// nextSelectable returns the index of the next selectable control from i in
// direction dir, or i when there is none.
func nextSelectable(controls []paginate.Control, i, dir int) int {
	for j := i + dir; j >= 0 && j < len(controls); j += dir {
		if controls[j].Selectable() {
			return j
		}
	}

	return i
}

func (m Model) viewSearch() string {
	v := m.search

	var sb strings.Builder

	queryStyle := inputStyle
	if v.focus == focusQuery {
		queryStyle = focusedInputStyle
	}

	sb.WriteString(queryStyle.Render(v.query.View()))
	sb.WriteString("\n")

	selectors := make([]string, 0, len(movie.AllFields))
	for fc := focusRating; fc <= focusVotes; fc++ {
		f := selectorField[fc]
		opt := v.options[f][v.selected[f]]

		style := selectorStyle
		if v.focus == fc {
			style = focusedSelectorStyle
		}

		selectors = append(selectors, style.Render(fmt.Sprintf("%s: ‹ %s ›", selectorLabel[f], opt.Label)))
	}

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, selectors...))
	sb.WriteString("\n\n")

	st := v.state

	switch st.Phase {
	case search.PhaseIdle:

	case search.PhaseLoading:
		sb.WriteString(m.spinner.View() + " " + normalTextStyle.Render(st.Message()))

	case search.PhaseEmpty:
		sb.WriteString(normalTextStyle.Render(st.Message()))

	case search.PhaseError:
		sb.WriteString(errorStyle.Render(st.Message()))

	case search.PhaseRendered:
		first := (st.Page-1)*paginate.PageSize + 1
		last := first + len(st.Visible()) - 1
		sb.WriteString(mutedTextStyle.Render(fmt.Sprintf("Showing %d-%d of %d movies", first, last, len(st.Results))))
		sb.WriteString("\n")

		cursor := -1
		if v.focus == focusResults {
			cursor = v.cardCursor
		}

		sb.WriteString(renderGrid(st.Visible(), v.failed, cursor, m.width))

		pageCursor := -1
		if v.focus == focusPages {
			pageCursor = v.pageCursor
		}

		if bar := renderPagination(st.Controls(), pageCursor); bar != "" {
			sb.WriteString("\n")
			sb.WriteString(bar)
		}
	}

	return sb.String()
}
