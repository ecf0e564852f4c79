package ui

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// openBrowser opens a URL in the default browser
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default: // "linux", "freebsd", etc.
		cmd = "xdg-open"
	}
	args = append(args, url)

	return exec.Command(cmd, args...).Start()
}

type statusMsg struct {
	err  error
	text string
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := openBrowser(url); err != nil {
			return statusMsg{err: fmt.Errorf("failed to open browser: %w", err)}
		}

		return statusMsg{text: "Opened " + url}
	}
}

func copyLinkCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(url); err != nil {
			return statusMsg{err: fmt.Errorf("failed to copy link: %w", err)}
		}

		return statusMsg{text: "Copied " + url}
	}
}
