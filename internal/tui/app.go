package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sant0-9/divimap/internal/config"
	"github.com/sant0-9/divimap/internal/geo"
	"github.com/sant0-9/divimap/internal/intent"
	"github.com/sant0-9/divimap/internal/llm"
	"github.com/sant0-9/divimap/internal/mapview"
	"github.com/sant0-9/divimap/internal/session"
)

type view int

const (
	viewWelcome view = iota
	viewSetup
	viewMap
	viewSettings
	viewHelp
	viewError
)

const pingTimeout = 5 * time.Second

// Connector builds the session once a provider is configured. It is replaced
// in tests.
type Connector func(ctx context.Context, cfg *config.Config) (*session.Session, error)

type App struct {
	width    int
	height   int
	view     view
	state    *state
	connect  Connector
	quitting bool
}

// NewApp creates the terminal UI over features, the layer already loaded
// from cfg.Dataset. needsSetup starts the provider wizard.
func NewApp(cfg *config.Config, needsSetup bool, features *geo.Collection, log *zerolog.Logger) *App {
	return newApp(cfg, needsSetup, defaultConnector(newLayerCache(cfg.Dataset, features, log), log))
}

func newApp(cfg *config.Config, needsSetup bool, connect Connector) *App {
	s := newState()
	s.config = cfg
	s.needsSetup = needsSetup
	if s.config == nil {
		s.config = config.DefaultConfig()
	}
	return &App{
		view:    viewWelcome,
		state:   s,
		connect: connect,
	}
}

// defaultConnector pings the configured provider and starts a session over
// the layer cfg.Dataset names.
func defaultConnector(layers *layerCache, log *zerolog.Logger) Connector {
	return func(ctx context.Context, cfg *config.Config) (*session.Session, error) {
		features, err := layers.get(cfg.Dataset)
		if err != nil {
			return nil, err
		}
		provider, err := llm.NewProvider(cfg)
		if err != nil {
			return nil, err
		}

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := provider.Ping(pingCtx); err != nil {
			return nil, err
		}

		interp := intent.NewInterpreter(provider, cfg.Model,
			intent.WithTimeout(cfg.Timeout),
			intent.WithLogger(log),
		)
		applier := mapview.NewApplicator(features, mapview.WithZoom(cfg.Zoom))
		return session.New(interp, applier, session.WithLogger(log)), nil
	}
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	return tea.Batch(
		tea.WindowSize(),
		textinput.Blink,
		a.startSession(),
	)
}

func (a *App) startSession() tea.Cmd {
	cfg := *a.state.config
	connect := a.connect
	return func() tea.Msg {
		sess, err := connect(context.Background(), &cfg)
		if err != nil {
			return providerErrorMsg{err}
		}
		return sessionReadyMsg{sess}
	}
}

func (a *App) reconnect() tea.Cmd {
	a.state.providerReady = false
	a.state.providerError = nil
	a.state.sess = nil
	a.state.last = nil
	a.state.lastErr = nil
	a.view = viewWelcome
	return a.startSession()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if handled {
			return a, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.state.input.Width = max(20, min(80, msg.Width-8))
		a.state.help.Width = msg.Width

	case setupCompleteMsg:
		a.state.needsSetup = false
		return a, a.reconnect()

	case setupErrorMsg:
		a.state.providerError = msg.error
		a.view = viewError
		return a, nil

	case sessionReadyMsg:
		a.state.sess = msg.sess
		a.state.providerReady = true
		a.state.status = msg.sess.Status()
		a.view = viewMap
		a.state.input.Focus()
		return a, textinput.Blink

	case providerErrorMsg:
		a.state.providerError = msg.error
		a.view = viewError
		return a, nil

	case submitResultMsg:
		a.finishSubmit(msg)
		return a, nil

	case spinner.TickMsg:
		if !a.state.processing {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd
	}

	// Forward the rest to the focused text input.
	switch {
	case a.view == viewSetup && a.state.setupStep == 1:
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewSettings && a.state.settingsMode == settingsEdit:
		var cmd tea.Cmd
		a.state.editInput, cmd = a.state.editInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewMap:
		var cmd tea.Cmd
		a.state.input, cmd = a.state.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// handleKey reports whether the key was consumed and must not reach the
// focused text input.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Interrupt) {
		a.quitting = true
		return tea.Quit, true
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewHelp:
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Help) {
			a.view = a.homeView()
		}
		return nil, true
	case viewError:
		return a.handleErrorKey(msg)
	case viewMap:
		return a.handleMapKey(msg)
	}

	if key.Matches(msg, keys.Quit) {
		a.quitting = true
		return tea.Quit, true
	}
	return nil, false
}

func (a *App) homeView() view {
	if a.state.providerReady {
		return viewMap
	}
	return viewWelcome
}

func (a *App) handleMapKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit, true

	case key.Matches(msg, keys.Submit):
		return a.handleInput(), true

	case key.Matches(msg, keys.Clear):
		a.clearSelection()
		return nil, true

	case key.Matches(msg, keys.Help) && a.state.input.Value() == "":
		a.view = viewHelp
		return nil, true
	}
	return nil, false
}

func (a *App) handleInput() tea.Cmd {
	input := strings.TrimSpace(a.state.input.Value())

	// Handle slash commands
	if strings.HasPrefix(input, "/") {
		cmd := strings.ToLower(input)
		switch {
		case cmd == "/help" || cmd == "/h":
			a.view = viewHelp
			a.state.input.Reset()
			return nil
		case cmd == "/settings" || cmd == "/s":
			a.openSettings()
			a.state.input.Reset()
			return nil
		case cmd == "/clear" || cmd == "/c":
			a.clearSelection()
			a.state.input.Reset()
			return nil
		case cmd == "/quit" || cmd == "/q":
			a.quitting = true
			return tea.Quit
		}
	}

	return a.submit(input)
}

// submit hands the instruction to the session. The session drops it when
// another one is still in flight.
func (a *App) submit(instruction string) tea.Cmd {
	sess := a.state.sess
	if sess == nil {
		return nil
	}
	if instruction == "" {
		a.state.status = session.StatusNoInput
		return nil
	}

	var tick tea.Cmd
	if !a.state.processing {
		a.state.processing = true
		a.state.pending = instruction
		a.state.status = session.StatusWorking
		tick = a.state.spinner.Tick
	}
	a.state.input.Reset()

	return tea.Batch(tick, func() tea.Msg {
		out, err := sess.Submit(context.Background(), instruction)
		return submitResultMsg{out: out, err: err}
	})
}

func (a *App) finishSubmit(msg submitResultMsg) {
	if errors.Is(msg.err, session.ErrBusy) {
		a.state.status = session.StatusBusy
		return
	}
	a.state.processing = false
	a.state.pending = ""
	if msg.err != nil {
		a.state.lastErr = msg.err
		a.state.status = session.StatusFor(msg.err)
		return
	}
	a.state.last = msg.out
	a.state.lastErr = nil
	a.state.status = msg.out.Status
}

func (a *App) clearSelection() {
	if a.state.sess == nil {
		return
	}
	a.state.sess.Clear()
	a.state.last = nil
	a.state.lastErr = nil
	a.state.status = session.StatusCleared
}

func (a *App) handleErrorKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit, true
	case key.Matches(msg, keys.Retry):
		return a.reconnect(), true
	case key.Matches(msg, keys.Settings):
		a.openSettings()
	}
	return nil, true
}

func (a *App) handleSetupKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Back) {
		if a.state.setupStep == 1 {
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
			return nil, true
		}
		a.quitting = true
		return tea.Quit, true
	}

	switch a.state.setupStep {
	case 0:
		switch {
		case key.Matches(msg, keys.Up):
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if a.state.selectedProvider < len(config.Providers)-1 {
				a.state.selectedProvider++
			}
		case key.Matches(msg, keys.Select):
			provider := config.Providers[a.state.selectedProvider]
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel

			if provider.NeedsAPIKey {
				a.state.setupStep = 1
				a.state.apiKeyInput.Focus()
				return textinput.Blink, true
			}
			return a.saveConfig(), true
		}
		return nil, true

	case 1:
		if key.Matches(msg, keys.Save) {
			k := strings.TrimSpace(a.state.apiKeyInput.Value())
			if k == "" {
				return nil, true
			}
			a.state.config.SetAPIKey(k)
			a.state.apiKeyInput.Reset()
			return a.saveConfig(), true
		}
	}

	return nil, false
}

func (a *App) saveConfig() tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type sessionReadyMsg struct{ sess *session.Session }
type providerErrorMsg struct{ error }
type submitResultMsg struct {
	out *session.Outcome
	err error
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewWelcome:
		return a.renderWelcome()
	case viewSetup:
		return a.renderSetup()
	case viewMap:
		return a.renderMap()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderWelcome()
	}
}
