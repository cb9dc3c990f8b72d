// Package logger provides structured logging for jigcheck using zerolog.
//
// Log output goes to stderr by default so that the status screen and table
// output on stdout stay clean.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger initialization
type Config struct {
	Level      string `yaml:"level"`
	Debug      bool   `yaml:"debug"`
	Output     string `yaml:"output"` // stderr, stdout, or a file path
	Pretty     bool   `yaml:"pretty"`
	TimeFormat string `yaml:"time_format"`
}

var global zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	global = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Init replaces the global logger according to cfg
func Init(cfg Config) error {
	var output io.Writer = os.Stderr

	switch cfg.Output {
	case "", "stderr":
	case "stdout":
		output = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		output = f
	}

	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.TimeOnly}
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	} else if cfg.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
	}

	if cfg.TimeFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	global = zerolog.New(output).Level(level).With().Timestamp().Logger()
	return nil
}

// Get returns the global logger
func Get() zerolog.Logger {
	return global
}

// WithComponent returns a child logger tagged with a component name
func WithComponent(component string) zerolog.Logger {
	return global.With().Str("component", component).Logger()
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() zerolog.Logger {
	return zerolog.New(io.Discard).Level(zerolog.Disabled)
}
