package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Layout configures the status screen
type Layout struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	PassColor string `yaml:"pass_color"`
	FailColor string `yaml:"fail_color"`
	// ShowClock controls the date/time row under the title
	ShowClock *bool `yaml:"show_clock,omitempty"`
}

// defaultLayout mirrors the screen of the production jig
var defaultLayout = Layout{
	Title:     "ODROID-H3 I2C Test App",
	Width:     64,
	PassColor: "10",
	FailColor: "9",
}

// Clock reports whether the clock row is drawn
func (l *Layout) Clock() bool {
	return l.ShowClock == nil || *l.ShowClock
}

// DefaultLayout returns a copy of the built-in screen layout
func DefaultLayout() *Layout {
	layout := defaultLayout
	return &layout
}

// LoadLayout reads the UI config. With no path the usual locations are
// tried and finding none yields the defaults. An explicit path must be
// readable.
func LoadLayout(path string) (*Layout, error) {
	if path == "" {
		candidates := []string{
			"/etc/jigcheck/ui.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/jigcheck/ui.yaml"),
			"default_ui.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	layout := DefaultLayout()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfigNotFound, path, err)
		}
		if err := yaml.Unmarshal(data, layout); err != nil {
			return nil, fmt.Errorf("parse ui config %s: %w", path, err)
		}
	}

	// Apply defaults for missing values
	if layout.Title == "" {
		layout.Title = defaultLayout.Title
	}
	if layout.Width <= 0 {
		layout.Width = defaultLayout.Width
	}
	if layout.PassColor == "" {
		layout.PassColor = defaultLayout.PassColor
	}
	if layout.FailColor == "" {
		layout.FailColor = defaultLayout.FailColor
	}

	return layout, nil
}
