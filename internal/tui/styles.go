package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/divimap/internal/session"
)

// truncate shortens text to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

var (
	// Colors
	colorPrimary    = lipgloss.Color("#2232C5")
	colorSecondary  = lipgloss.Color("#06B6D4")
	colorSuccess    = lipgloss.Color("#22C55E")
	colorError      = lipgloss.Color("#EF4444")
	colorProcessing = lipgloss.Color("#EAB308")
	colorInfo       = lipgloss.Color("#3B82F6")
	colorMuted      = lipgloss.Color("#6B7280")
	colorWhite      = lipgloss.Color("#F9FAFB")

	// Logo style
	styleLogo = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Subtitle
	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Box
	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleHeading = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	styleField = lipgloss.NewStyle().
			Foreground(colorInfo)

	styleProcessing = lipgloss.NewStyle().
			Foreground(colorProcessing)
)

func statusColor(k session.StatusKind) lipgloss.Color {
	switch k {
	case session.StatusSuccess:
		return colorSuccess
	case session.StatusError:
		return colorError
	case session.StatusProcessing:
		return colorProcessing
	default:
		return colorInfo
	}
}

// footer renders the key hints of the current screen.
func (a *App) footer(bindings ...key.Binding) string {
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.state.help.View(footerKeys(bindings)))
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	return strings.Repeat("\n", max(0, (a.height-lines)/2)) + content
}

// field renders an aligned "Label: value" line.
func field(label, value string) string {
	return styleField.Render(fmt.Sprintf("%-9s", label+":")) + " " + value
}
