package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#F5C518") // Marquee yellow
	secondaryColor = lipgloss.Color("#F5F5F1") // Light cream color
	accentColor    = lipgloss.Color("#564D4D") // Dark gray
	mutedColor     = lipgloss.Color("#9CA3AF")

	// Text styles
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	normalTextStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	mutedTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	highlightedTextStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	// Component styles
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			Width(50)

	focusedInputStyle = inputStyle.
				BorderForeground(primaryColor)

	selectorStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Padding(0, 1)

	focusedSelectorStyle = selectorStyle.
				Foreground(primaryColor).
				Bold(true).
				Underline(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			Width(cardWidth)

	selectedCardStyle = cardStyle.
				BorderForeground(primaryColor)

	pageStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Padding(0, 1)

	activePageStyle = pageStyle.
			Foreground(primaryColor).
			Bold(true)

	pageCursorStyle = pageStyle.
			Reverse(true)
)

// cardWidth is the inner width of a movie card.
const cardWidth = 26
