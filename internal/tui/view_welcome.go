package tui

import "github.com/charmbracelet/lipgloss"

const logo = `
 ██████╗ ██╗██╗   ██╗██╗███╗   ███╗ █████╗ ██████╗
 ██╔══██╗██║██║   ██║██║████╗ ████║██╔══██╗██╔══██╗
 ██║  ██║██║██║   ██║██║██╔████╔██║███████║██████╔╝
 ██║  ██║██║╚██╗ ██╔╝██║██║╚██╔╝██║██╔══██║██╔═══╝
 ██████╔╝██║ ╚████╔╝ ██║██║ ╚═╝ ██║██║  ██║██║
 ╚═════╝ ╚═╝  ╚═══╝  ╚═╝╚═╝     ╚═╝╚═╝  ╚═╝╚═╝
`

func (a *App) renderWelcome() string {
	// Logo
	logoRendered := styleLogo.Render(logo)

	// Subtitle
	subtitle := styleSubtitle.Render("División político-administrativa de Colombia")

	// Connection state
	provider := a.state.config.Provider
	if p := a.providerInfo(); p != nil {
		provider = p.Name
	}
	connecting := styleSubtitle.Render("\n" + a.state.spinner.View() + " Connecting to " + provider + "...")

	// Combine main content
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		logoRendered,
		subtitle,
		connecting,
	)

	// Center content on screen (leave room for status bar)
	mainArea := lipgloss.Place(
		a.width,
		a.height-2,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	return lipgloss.JoinVertical(lipgloss.Left, mainArea, a.footer(keys.Quit))
}
