package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/divimap/internal/config"
)

const settingsWidth = 64

func (a *App) renderSettings() string {
	var b strings.Builder
	width := min(settingsWidth, max(40, a.width-4))

	title := styleLogo.Render("divimap")
	sub := styleSubtitle.Render("  settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title+sub))
	b.WriteString("\n\n")

	rows := styleBox.Copy().
		Width(width).
		Render(a.settingLines())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, rows))
	b.WriteString("\n")

	switch a.state.settingsMode {
	case settingsList:
		b.WriteString(a.settingsPanel(width, a.choiceLines()))
		b.WriteString("\n\n")
		b.WriteString(a.footer(keys.Up, keys.Down, keys.Select, keys.Back))
	case settingsEdit:
		b.WriteString(a.settingsPanel(width, a.editLines()))
		b.WriteString("\n\n")
		b.WriteString(a.footer(keys.Save, keys.Back))
	default:
		note := styleSubtitle.Render("Changes are saved to config.yaml and the provider reconnects.")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, note))
		b.WriteString("\n\n")
		b.WriteString(a.footer(keys.Up, keys.Down, keys.Edit, keys.Reset, keys.Back))
	}
	return a.centerVertically(b.String())
}

func (a *App) settingLines() string {
	cfg := a.state.config
	lines := []string{styleHeading.Render("Configuración"), ""}

	for i, row := range settingRows {
		cursor := "  "
		if i == a.state.settingsRow {
			cursor = lipgloss.NewStyle().Foreground(colorSecondary).Render("> ")
		}
		lines = append(lines, cursor+field(row.label, truncate(row.shown(cfg), 44)))
		if row.label == "API key" {
			lines = append(lines, "  "+strings.Repeat(" ", 10)+styleSubtitle.Render(keySource(cfg)))
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) choiceLines() string {
	row := settingRows[a.state.settingsRow]
	cfg := a.state.config
	current := row.value(cfg)

	lines := []string{styleHeading.Render("Select " + strings.ToLower(row.label))}
	if row.label == "Model" {
		if p := config.GetProvider(cfg.Provider); p != nil {
			lines = append(lines, styleSubtitle.Render("Provider: "+p.Name))
		}
	}
	lines = append(lines, "")
	for i, opt := range row.options(cfg) {
		mark := ""
		if opt == current {
			mark = styleSubtitle.Render(" (current)")
		}
		if i == a.state.settingsChoice {
			lines = append(lines, lipgloss.NewStyle().Foreground(colorSecondary).Bold(true).Render("> "+opt)+mark)
		} else {
			lines = append(lines, "  "+opt+mark)
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) editLines() string {
	row := settingRows[a.state.settingsRow]
	lines := []string{
		styleHeading.Render("Edit " + strings.ToLower(row.label)),
		"",
		a.state.editInput.View(),
	}
	if a.state.settingsErr != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(colorError).Render(a.state.settingsErr))
	}
	if hint := settingHint(row.label); hint != "" {
		lines = append(lines, "", styleSubtitle.Render(hint))
	}
	return strings.Join(lines, "\n")
}

func (a *App) settingsPanel(width int, body string) string {
	box := styleBox.Copy().
		Width(width).
		BorderForeground(colorSecondary).
		Render(body)
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box)
}

func settingHint(label string) string {
	switch label {
	case "Dataset":
		return "GeoJSON FeatureCollection path. Empty uses the bundled sample."
	case "Zoom":
		return "Zoom used when centering on a coordinate."
	case "Timeout":
		return "Per-instruction completion timeout, e.g. 15s."
	case "Base URL":
		return "Empty uses the provider default endpoint."
	}
	return ""
}
