// Package ui implements the interactive movie catalog viewer on top of
// Bubble Tea. The search and recommendation views delegate their logic to
// the [search] and [recommend] state machines and only translate key
// presses into events and states into text.
package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiantruijens/moviegrid/pkg/config"
	"github.com/sebastiantruijens/moviegrid/pkg/movie"
	"github.com/sebastiantruijens/moviegrid/pkg/poster"
	"github.com/sebastiantruijens/moviegrid/pkg/recommend"
	"github.com/sebastiantruijens/moviegrid/pkg/search"
)

// Backend is everything the viewer needs from the movie backend.
type Backend interface {
	search.CatalogSource
	recommend.Source
	FetchDetails(ctx context.Context, title string) (*movie.Details, error)
	MovieURL(title string) string
}

// Options configures a [Model].
type Options struct {
	// Context bounds every request. Defaults to [context.Background].
	Context context.Context
	Backend Backend
	Config  *config.Config
	// Prober checks poster URLs. Nil disables probing.
	Prober *poster.Prober
	// StartPath, when set, opens the recommendation view for the movie at
	// this navigation path instead of the search view.
	StartPath string
}

type viewKind int

const (
	viewSearch viewKind = iota
	viewDetail
)

// Model represents the application state
type Model struct {
	ctx     context.Context
	backend Backend
	prober  *poster.Prober
	start   tea.Cmd

	statusErr error
	status    string

	search searchView
	detail detailView

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	view   viewKind
	width  int
	height int
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	// Set up spinner for loading states
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	m := Model{
		ctx:     ctx,
		backend: opts.Backend,
		prober:  opts.Prober,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		search:  newSearchView(cfg),
		width:   80,
		height:  24,
	}

	// The search view loads as soon as the program starts.
	var cmds []tea.Cmd
	cmds = append(cmds, m.applySearch(search.SearchRequested{}))

	if opts.StartPath != "" {
		cmds = append(cmds, m.openDetail(opts.StartPath))
	}

	m.start = tea.Batch(cmds...)

	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.start)
}

// Update handles messages and user input
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}

		m.status, m.statusErr = "", nil

		var cmd tea.Cmd
		if m.view == viewDetail {
			cmd = m.updateDetailKeys(msg)
		} else {
			cmd = m.updateSearchKeys(msg)
		}

		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.detail.resize(msg.Width, msg.Height)
		m.refreshDetail()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case catalogMsg:
		cmds = append(cmds, m.applySearch(msg.event))

	case postersMsg:
		for u, failed := range msg.failed {
			m.search.failed[u] = failed
		}

	case recommendationsMsg:
		m.detail.state = m.detail.state.Apply(msg.loaded)
		m.refreshDetail()

	case detailsMsg:
		if msg.title == m.detail.state.Title {
			m.detail.details = msg.details
			m.detail.detailsErr = msg.err
			m.refreshDetail()
		}

	case statusMsg:
		m.status, m.statusErr = msg.text, msg.err

	default:
		var cmd tea.Cmd
		m.search.query, cmd = m.search.query.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the current UI
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("🎬 moviegrid"))
	sb.WriteString("\n")

	switch m.view {
	case viewSearch:
		sb.WriteString(m.viewSearch())
		sb.WriteString("\n\n")
		sb.WriteString(m.help.View(searchHelp{keys: m.keys}))

	case viewDetail:
		sb.WriteString(m.viewDetail())
		sb.WriteString("\n\n")
		sb.WriteString(m.help.View(detailHelp{keys: m.keys}))
	}

	switch {
	case m.statusErr != nil:
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render("Error: " + m.statusErr.Error()))
	case m.status != "":
		sb.WriteString("\n")
		sb.WriteString(mutedTextStyle.Render(m.status))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		AlignHorizontal(lipgloss.Center).
		MaxHeight(m.height).
		Render(sb.String())
}
