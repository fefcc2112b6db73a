package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Instructions
	examples := []string{
		"  municipios del departamento ANTIOQUIA",
		"  el municipio BELLO de antioquia",
		"  departamento con código 76",
		"  municipio 001 del departamento 05",
		"  centra el mapa en 4,65 -74,05",
		"",
		"  Filters match field values exactly (DPTO_CCDGO,",
		"  MPIO_CCDGO, DEPTO, MPIO_CNMBR). MPIO_CCDGO is the",
		"  3-digit code inside its department. Coordinates",
		"  must be EPSG:4326 longitude/latitude.",
	}

	examplesTitle := styleSubtitle.Render("Instrucciones")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, examplesTitle))
	b.WriteString("\n\n")

	examplesBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(examples, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, examplesBox))
	b.WriteString("\n\n")

	// Commands
	commands := []string{
		"  /help, /h      Show this help",
		"  /settings, /s  Open settings",
		"  /clear, /c     Clear the selection",
		"  /quit, /q      Quit divimap",
	}

	commandsBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(commands, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, commandsBox))
	b.WriteString("\n\n")

	shortcutsTitle := styleSubtitle.Render("Keyboard Shortcuts")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsTitle))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.Copy().
		Width(56).
		Render(a.state.help.FullHelpView([][]key.Binding{
			{keys.Submit, keys.Clear},
			{keys.Help, keys.Quit},
		}))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	b.WriteString(a.footer(keys.Back))

	return a.centerVertically(b.String())
}
