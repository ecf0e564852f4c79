package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/sebastiantruijens/moviegrid/pkg/movie"
	"github.com/sebastiantruijens/moviegrid/pkg/paginate"
	"github.com/sebastiantruijens/moviegrid/pkg/poster"
)

// renderCard renders a single movie card.
func renderCard(r *movie.Record, posterFailed, selected bool) string {
	var sb strings.Builder

	sb.WriteString(subtitleStyle.Render(clip(r.Title, cardWidth-2)))
	sb.WriteString("\n")
	sb.WriteString(highlightedTextStyle.Render("★ " + orNA(r.Rating)))
	sb.WriteString("  ")
	sb.WriteString(normalTextStyle.Render(orNA(r.Year)))
	sb.WriteString("\n")
	sb.WriteString(mutedTextStyle.Render(clip(orNA(r.Genre), cardWidth-2)))
	sb.WriteString("\n")
	sb.WriteString(mutedTextStyle.Render(formatVotes(r.Votes)))
	sb.WriteString("\n")
	sb.WriteString(mutedTextStyle.Render("▣ " + poster.Label(r, posterFailed)))

	if selected {
		return selectedCardStyle.Render(sb.String())
	}

	return cardStyle.Render(sb.String())
}

// renderGrid lays cards out in rows that fit the given width.
func renderGrid(records []movie.Record, failed map[string]bool, cursor, width int) string {
	if len(records) == 0 {
		return ""
	}

	cols := gridColumns(width)

	var rows []string
	for start := 0; start < len(records); start += cols {
		end := min(start+cols, len(records))

		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, renderCard(&records[i], failed[poster.Key(&records[i])], i == cursor))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// gridColumns returns how many cards fit side by side.
func gridColumns(width int) int {
	// Border and padding add four columns to each card.
	return max(1, width/(cardWidth+4))
}

// renderPagination renders the pagination bar. cursor is the index of the
// focused control, or -1 when the bar is not focused.
func renderPagination(controls []paginate.Control, cursor int) string {
	if len(controls) == 0 {
		return ""
	}

	parts := make([]string, 0, len(controls))
	for i, c := range controls {
		label := c.Label()

		switch {
		case i == cursor:
			parts = append(parts, pageCursorStyle.Render(label))
		case c.Active:
			parts = append(parts, activePageStyle.Render("["+label+"]"))
		case c.Kind == paginate.KindEllipsis:
			parts = append(parts, mutedTextStyle.Render(label))
		default:
			parts = append(parts, pageStyle.Render(label))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// formatVotes renders a vote count with separators, or "N/A".
func formatVotes(votes string) string {
	if votes == "" {
		return "N/A"
	}

	v := movie.ParseVotes(votes)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}

	return humanize.Comma(int64(v)) + " votes"
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}

	return s
}

func clip(s string, width int) string {
	//nolint:gosec // G115: width is a small positive constant.
	return truncate.StringWithTail(s, uint(width), "…")
}
