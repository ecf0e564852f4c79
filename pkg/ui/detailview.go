package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/sebastiantruijens/moviegrid/pkg/movie"
	"github.com/sebastiantruijens/moviegrid/pkg/recommend"
)

// Rows taken by the title, help and status lines around the viewport.
const detailChrome = 6

type detailView struct {
	detailsErr error
	details    *movie.Details
	state      recommend.State
	viewport   viewport.Model
}

type recommendationsMsg struct {
	loaded recommend.Loaded
}

type detailsMsg struct {
	err     error
	details *movie.Details
	title   string
}

func (d *detailView) resize(width, height int) {
	d.viewport.Width = max(20, width-4)
	d.viewport.Height = max(3, height-detailChrome)
}

// openDetail switches to the recommendation view for the movie at path and
// starts loading its recommendations and details.
func (m *Model) openDetail(path string) tea.Cmd {
	st, title := recommend.Open(path)

	m.view = viewDetail
	m.detail = detailView{state: st, viewport: viewport.New(0, 0)}
	m.detail.resize(m.width, m.height)
	m.refreshDetail()

	if title == "" {
		return nil
	}

	ctx, backend := m.ctx, m.backend

	return tea.Batch(
		func() tea.Msg {
			return recommendationsMsg{loaded: recommend.Load(ctx, backend, title)}
		},
		func() tea.Msg {
			return loadDetails(ctx, backend, title)
		},
	)
}

func loadDetails(ctx context.Context, backend Backend, title string) detailsMsg {
	details, err := backend.FetchDetails(ctx, title)

	return detailsMsg{title: title, details: details, err: err}
}

func (m *Model) updateDetailKeys(msg tea.KeyMsg) tea.Cmd {
	title := m.detail.state.Title

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.view = viewSearch
		return nil

	case key.Matches(msg, m.keys.Open):
		if title != "" {
			return openBrowserCmd(m.backend.MovieURL(title))
		}

		return nil

	case key.Matches(msg, m.keys.Copy):
		if title != "" {
			return copyLinkCmd(m.backend.MovieURL(title))
		}

		return nil
	}

	var cmd tea.Cmd
	m.detail.viewport, cmd = m.detail.viewport.Update(msg)

	return cmd
}

func (m *Model) refreshDetail() {
	m.detail.viewport.SetContent(m.detailContent())
}

func (m Model) detailContent() string {
	d := m.detail
	width := d.viewport.Width

	if d.state.Title == "" {
		return errorStyle.Render(d.state.Message())
	}

	var sb strings.Builder

	title := d.state.Title
	if d.details != nil && d.details.Title != "" {
		title = d.details.Title
	}

	sb.WriteString(subtitleStyle.Render(title))
	sb.WriteString("\n")

	switch {
	case d.details != nil:
		if d.details.Plot != "" {
			sb.WriteString(normalTextStyle.Render(wordwrap.String(d.details.Plot, width)))
			sb.WriteString("\n")
		}

		for _, f := range d.details.Facts {
			sb.WriteString(highlightedTextStyle.Render(f.Label+": ") + normalTextStyle.Render(f.Value))
			sb.WriteString("\n")
		}

	case d.detailsErr != nil:
		sb.WriteString(mutedTextStyle.Render("Details unavailable."))
		sb.WriteString("\n")
	}

	if m.backend != nil {
		sb.WriteString(mutedTextStyle.Render("Link: " + m.backend.MovieURL(d.state.Title)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render("Recommendations"))
	sb.WriteString("\n")

	switch d.state.Phase {
	case recommend.PhaseLoading:
		// The spinner line above the viewport carries the message.
		return sb.String()

	case recommend.PhaseEmpty, recommend.PhaseError:
		style := normalTextStyle
		if d.state.Phase == recommend.PhaseError {
			style = errorStyle
		}

		sb.WriteString(style.Render(d.state.Message()))

		return sb.String()
	}

	for i := range d.state.Movies {
		r := &d.state.Movies[i]
		line := fmt.Sprintf("• %s (%s)  ★ %s  %s  %s",
			r.Title, orNA(r.Year), orNA(r.Rating), orNA(r.Genre), formatVotes(r.Votes))
		sb.WriteString(normalTextStyle.Render(clip(line, width)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) viewDetail() string {
	if m.detail.state.Phase == recommend.PhaseLoading {
		return m.spinner.View() + " " + normalTextStyle.Render(m.detail.state.Message()) +
			"\n" + m.detail.viewport.View()
	}

	return m.detail.viewport.View()
}
