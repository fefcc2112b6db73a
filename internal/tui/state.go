package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sant0-9/divimap/internal/config"
	"github.com/sant0-9/divimap/internal/session"
)

type settingsMode int

const (
	settingsBrowse settingsMode = iota
	settingsList
	settingsEdit
)

type state struct {
	config     *config.Config
	needsSetup bool

	// Setup wizard
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Settings screen
	settingsMode   settingsMode
	settingsRow    int
	settingsChoice int
	settingsErr    string
	editInput      textinput.Model

	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	// Session, built once the provider answers
	sess          *session.Session
	providerReady bool
	providerError error

	// Last instruction
	processing bool
	pending    string
	status     session.Status
	last       *session.Outcome
	lastErr    error
}

func newState() *state {
	input := textinput.New()
	input.Placeholder = "municipios de antioquia, centra el mapa en 4.65 -74.05..."
	input.CharLimit = 500
	input.Width = 60

	apiKey := textinput.New()
	apiKey.Placeholder = "sk-..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	edit := textinput.New()
	edit.CharLimit = 300
	edit.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleProcessing

	return &state{
		input:       input,
		apiKeyInput: apiKey,
		editInput:   edit,
		spinner:     sp,
		help:        help.New(),
		status:      session.StatusReady,
	}
}
