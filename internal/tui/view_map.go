package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/divimap/internal/intent"
)

// maxListed caps the matched municipalities shown in the results panel.
const maxListed = 12

func (a *App) renderMap() string {
	var b strings.Builder
	width := min(80, max(40, a.width-4))

	title := styleLogo.Render("divimap")
	sub := styleSubtitle.Render("  " + a.modelName())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title+sub))
	b.WriteString("\n\n")

	// Current view
	viewBox := styleBox.Copy().
		Width(width).
		Render(a.viewLines())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, viewBox))
	b.WriteString("\n")

	// Results
	if results := a.resultLines(); results != "" {
		resultsBox := styleBox.Copy().
			Width(width).
			BorderForeground(colorPrimary).
			Render(results)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resultsBox))
		b.WriteString("\n")
	}

	// Status banner
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.statusBanner(width)))
	b.WriteString("\n")

	// Input
	inputBox := styleBox.Copy().
		Width(width).
		BorderForeground(colorSecondary).
		Render(a.state.input.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	b.WriteString(a.footer(keys.Submit, keys.Clear, keys.Help, keys.Quit))

	return a.centerVertically(b.String())
}

func (a *App) viewLines() string {
	if a.state.sess == nil {
		return styleSubtitle.Render("No session")
	}
	st := a.state.sess.State()

	overlay := fmt.Sprintf("%d polygons", len(st.Overlay))
	if st.Selection != nil {
		overlay = fmt.Sprintf("%d selected", len(st.Selection))
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(st.OverlayStyle.Color)).Render("■")

	lines := []string{
		styleHeading.Render("Vista del mapa"),
		fmt.Sprintf("%s %s, %s", styleField.Render("Centro:"), formatNumber(st.Center.Lat), formatNumber(st.Center.Lon)),
		fmt.Sprintf("%s %d", styleField.Render("Zoom:"), st.Zoom),
		fmt.Sprintf("%s %s %s", styleField.Render("Capa:"), style, overlay),
	}
	return strings.Join(lines, "\n")
}

func (a *App) resultLines() string {
	out := a.state.last
	if out == nil {
		return ""
	}
	sum := out.Summary

	var lines []string
	switch sum.Kind {
	case intent.KindFilter:
		lines = append(lines, styleHeading.Render("Filtros aplicados:"))
		if len(sum.Filters) == 0 {
			lines = append(lines, styleSubtitle.Render("  (ninguno)"))
		}
		for _, f := range sum.Filters {
			lines = append(lines, fmt.Sprintf("  %s %s", styleField.Render(f.Field+":"), f.Value))
		}
		lines = append(lines, "", styleHeading.Render(fmt.Sprintf("Resultados (%d):", sum.Count)))
		for i, name := range sum.Results {
			if i == maxListed {
				lines = append(lines, styleSubtitle.Render(fmt.Sprintf("  ... y %d más", len(sum.Results)-maxListed)))
				break
			}
			lines = append(lines, "  "+truncate(name, 70))
		}

	case intent.KindCoordinate:
		pt := sum.Point
		if pt == nil {
			break
		}
		lines = append(lines,
			styleHeading.Render("Selección por coordenada:"),
			fmt.Sprintf("  %s %s", styleField.Render("X:"), formatNumber(pt.X)),
			fmt.Sprintf("  %s %s", styleField.Render("Y:"), formatNumber(pt.Y)),
			fmt.Sprintf("  %s %d", styleField.Render("EPSG:"), pt.EPSG),
		)
		within := "fuera de la capa"
		if len(pt.Within) > 0 {
			within = strings.Join(pt.Within, ", ")
		}
		lines = append(lines, fmt.Sprintf("  %s %s", styleField.Render("Municipio:"), truncate(within, 60)))
		if pt.H3Cell != "" {
			lines = append(lines, fmt.Sprintf("  %s %s", styleField.Render("H3:"), pt.H3Cell))
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) statusBanner(width int) string {
	st := a.state.status
	color := statusColor(st.Kind)

	dot := lipgloss.NewStyle().Foreground(color).Render("●")
	if a.state.processing {
		dot = a.state.spinner.View()
	}
	msg := st.Message
	if a.state.processing && a.state.pending != "" {
		msg += "  " + styleSubtitle.Render("> "+truncate(a.state.pending, 40))
	}
	if a.state.lastErr != nil && !a.state.processing {
		msg += "\n" + styleSubtitle.Render(truncate(a.state.lastErr.Error(), width-4))
	}

	return styleBox.Copy().
		Width(width).
		BorderForeground(color).
		Render(dot + " " + msg)
}

func (a *App) modelName() string {
	name := a.state.config.Provider
	if p := a.providerInfo(); p != nil {
		name = p.Name
	}
	if a.state.config.Model != "" {
		name += " / " + a.state.config.Model
	}
	return name
}

// formatNumber prints a coordinate the way it was given, without padding.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
