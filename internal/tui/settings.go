package tui

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/divimap/internal/config"
	"github.com/sant0-9/divimap/internal/mapview"
)

// setting is one row of the settings screen. Rows with options open a list;
// the others open a text field and go through parse, which must leave the
// config untouched when it fails.
type setting struct {
	label   string
	value   func(c *config.Config) string
	display func(c *config.Config) string
	options func(c *config.Config) []string
	pick    func(c *config.Config, i int)
	parse   func(c *config.Config, text string) error
	secret  bool
}

func (s setting) shown(c *config.Config) string {
	if s.display != nil {
		return s.display(c)
	}
	return s.value(c)
}

var settingRows = []setting{
	{
		label: "Provider",
		value: func(c *config.Config) string {
			if p := config.GetProvider(c.Provider); p != nil {
				return p.Name
			}
			return c.Provider
		},
		options: func(*config.Config) []string {
			names := make([]string, len(config.Providers))
			for i, p := range config.Providers {
				names[i] = p.Name
			}
			return names
		},
		pick: func(c *config.Config, i int) {
			p := config.Providers[i]
			c.Provider = p.ID
			c.Model = p.DefaultModel
		},
	},
	{
		label: "Model",
		value: func(c *config.Config) string { return c.Model },
		options: func(c *config.Config) []string {
			if p := config.GetProvider(c.Provider); p != nil {
				return p.Models
			}
			return nil
		},
		pick: func(c *config.Config, i int) {
			c.Model = config.GetProvider(c.Provider).Models[i]
		},
		parse: func(c *config.Config, text string) error {
			if text == "" {
				return errors.New("model name is required")
			}
			c.Model = text
			return nil
		},
	},
	{
		label:   "API key",
		value:   func(c *config.Config) string { return c.APIKey },
		display: func(c *config.Config) string { return maskKey(c.APIKey) },
		parse: func(c *config.Config, text string) error {
			if p := config.GetProvider(c.Provider); text == "" && p != nil && p.NeedsAPIKey {
				return fmt.Errorf("%s needs an API key", p.Name)
			}
			c.SetAPIKey(text)
			return nil
		},
		secret: true,
	},
	{
		label: "Base URL",
		value: func(c *config.Config) string { return c.BaseURL },
		display: func(c *config.Config) string {
			if c.BaseURL == "" {
				return "provider default"
			}
			return c.BaseURL
		},
		parse: func(c *config.Config, text string) error {
			if text != "" {
				u, err := url.Parse(text)
				if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
					return fmt.Errorf("%q is not an http(s) URL", text)
				}
			}
			c.BaseURL = text
			return nil
		},
	},
	{
		label: "Dataset",
		value: func(c *config.Config) string { return c.Dataset },
		display: func(c *config.Config) string {
			if c.Dataset == "" {
				return "bundled sample"
			}
			return c.Dataset
		},
		parse: func(c *config.Config, text string) error {
			if text != "" {
				info, err := os.Stat(text)
				if err != nil {
					return err
				}
				if info.IsDir() {
					return fmt.Errorf("%s is a directory", text)
				}
			}
			c.Dataset = text
			return nil
		},
	},
	{
		label: "Zoom",
		value: func(c *config.Config) string { return strconv.Itoa(c.Zoom) },
		parse: func(c *config.Config, text string) error {
			z, err := strconv.Atoi(text)
			if err != nil || z < mapview.MinZoom || z > mapview.MaxZoom {
				return fmt.Errorf("zoom must be a whole number from %d to %d", mapview.MinZoom, mapview.MaxZoom)
			}
			c.Zoom = z
			return nil
		},
	},
	{
		label: "Timeout",
		value: func(c *config.Config) string { return c.Timeout.String() },
		parse: func(c *config.Config, text string) error {
			d, err := time.ParseDuration(text)
			if err != nil || d <= 0 {
				return fmt.Errorf("timeout must be a positive duration such as 15s")
			}
			c.Timeout = d
			return nil
		},
	},
}

func (a *App) openSettings() {
	a.view = viewSettings
	a.state.settingsMode = settingsBrowse
	a.state.settingsErr = ""
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.state.settingsMode {
	case settingsList:
		return a.handleSettingsList(msg), true
	case settingsEdit:
		return a.handleSettingsEdit(msg)
	}

	switch {
	case key.Matches(msg, keys.Back):
		a.view = a.homeView()
	case key.Matches(msg, keys.Up):
		if a.state.settingsRow > 0 {
			a.state.settingsRow--
		}
	case key.Matches(msg, keys.Down):
		if a.state.settingsRow < len(settingRows)-1 {
			a.state.settingsRow++
		}
	case key.Matches(msg, keys.Edit):
		return a.openSetting(), true
	case key.Matches(msg, keys.Reset):
		a.state.setupStep = 0
		a.state.selectedProvider = 0
		a.view = viewSetup
	}
	return nil, true
}

func (a *App) openSetting() tea.Cmd {
	row := settingRows[a.state.settingsRow]
	cfg := a.state.config
	a.state.settingsErr = ""

	if row.options != nil {
		if opts := row.options(cfg); len(opts) > 0 {
			a.state.settingsMode = settingsList
			a.state.settingsChoice = 0
			current := row.value(cfg)
			for i, o := range opts {
				if o == current {
					a.state.settingsChoice = i
				}
			}
			return nil
		}
	}
	if row.parse == nil {
		return nil
	}

	in := &a.state.editInput
	in.Reset()
	in.EchoMode = textinput.EchoNormal
	if row.secret {
		in.EchoMode = textinput.EchoPassword
	} else {
		in.SetValue(row.value(cfg))
	}
	in.Focus()
	a.state.settingsMode = settingsEdit
	return textinput.Blink
}

func (a *App) handleSettingsList(msg tea.KeyMsg) tea.Cmd {
	row := settingRows[a.state.settingsRow]
	n := len(row.options(a.state.config))

	switch {
	case key.Matches(msg, keys.Back):
		a.state.settingsMode = settingsBrowse
	case key.Matches(msg, keys.Up):
		if a.state.settingsChoice > 0 {
			a.state.settingsChoice--
		}
	case key.Matches(msg, keys.Down):
		if a.state.settingsChoice < n-1 {
			a.state.settingsChoice++
		}
	case key.Matches(msg, keys.Select):
		if a.state.settingsChoice < n {
			row.pick(a.state.config, a.state.settingsChoice)
		}
		a.state.settingsMode = settingsBrowse
		return a.saveConfig()
	}
	return nil
}

// handleSettingsEdit lets unbound keys through to the text field.
func (a *App) handleSettingsEdit(msg tea.KeyMsg) (tea.Cmd, bool) {
	in := &a.state.editInput

	switch {
	case key.Matches(msg, keys.Back):
		a.closeEdit()
		return nil, true
	case key.Matches(msg, keys.Save):
		row := settingRows[a.state.settingsRow]
		if err := row.parse(a.state.config, strings.TrimSpace(in.Value())); err != nil {
			a.state.settingsErr = err.Error()
			return nil, true
		}
		a.closeEdit()
		return a.saveConfig(), true
	}
	return nil, false
}

func (a *App) closeEdit() {
	a.state.editInput.Reset()
	a.state.editInput.Blur()
	a.state.settingsMode = settingsBrowse
	a.state.settingsErr = ""
}

// keySource explains where the API key comes from and whether Save keeps it.
func keySource(c *config.Config) string {
	switch {
	case c.KeyEnv() != "":
		return "from " + c.KeyEnv() + ", not written to config.yaml"
	case c.APIKey != "":
		return "stored in config.yaml"
	default:
		return "not set"
	}
}

// maskKey shows only the ends of an API key.
func maskKey(k string) string {
	switch {
	case k == "":
		return "not set"
	case len(k) > 8:
		return k[:4] + "****" + k[len(k)-4:]
	default:
		return "****"
	}
}
