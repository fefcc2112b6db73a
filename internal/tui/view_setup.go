package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/divimap/internal/config"
)

const setupWidth = 64

func (a *App) renderSetup() string {
	var b strings.Builder

	title := styleLogo.Render("divimap")
	sub := styleSubtitle.Render(fmt.Sprintf("  setup %d/2", a.state.setupStep+1))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title+sub))
	b.WriteString("\n\n")

	var body string
	if p := a.providerInfo(); a.state.setupStep == 1 && p != nil {
		body = a.apiKeyLines(p)
	} else {
		body = a.providerLines()
	}
	box := styleBox.Copy().
		Width(setupWidth).
		BorderForeground(colorSecondary).
		Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	if a.state.setupStep == 1 {
		b.WriteString(a.footer(keys.Save, keys.Back))
	} else {
		b.WriteString(a.footer(keys.Up, keys.Down, keys.Select, keys.Quit))
	}
	return a.centerVertically(b.String())
}

// providerLines lists the completion providers that can read instructions.
func (a *App) providerLines() string {
	lines := []string{
		styleHeading.Render("Proveedor de instrucciones"),
		styleSubtitle.Render("Interprets each instruction into a filter or a coordinate."),
		"",
	}
	for i, p := range config.Providers {
		need := ""
		if p.NeedsAPIKey {
			need = " (API key)"
		}
		line := fmt.Sprintf("  %-11s %s%s", p.Name, truncate(p.Description, 36), need)
		if i == a.state.selectedProvider {
			line = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true).
				Render(fmt.Sprintf("> %-11s %s%s", p.Name, truncate(p.Description, 36), need))
		} else {
			line = styleSubtitle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (a *App) apiKeyLines(p *config.ProviderInfo) string {
	lines := []string{
		styleHeading.Render("API key de " + p.Name),
		"",
		field("Model", p.DefaultModel),
	}
	if p.SignupURL != "" {
		lines = append(lines, field("Get one", p.SignupURL))
	}
	lines = append(lines,
		"",
		a.state.apiKeyInput.View(),
		"",
		styleSubtitle.Render("Saved to config.yaml. DIVIMAP_API_KEY or OPENROUTER_API_KEY"),
		styleSubtitle.Render("override it without being written to disk."),
	)
	return strings.Join(lines, "\n")
}

func (a *App) providerInfo() *config.ProviderInfo {
	return config.GetProvider(a.state.config.Provider)
}
