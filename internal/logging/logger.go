// Package logging provides structured logging for tablemerge using zerolog.
//
// Library packages accept a zerolog.Logger and default to Nop; the CLI
// builds the real logger from Config and installs it with SetDefault.
//
//	log := logging.Default()
//	log.Info().Str("file", "orders.csv").Int("rows", 120).Msg("loaded primary")
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	defaultLogger = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level to output
	Level string

	// Format is the output format (auto, console, json)
	Format string

	// Output is where to write logs (stderr, stdout, discard, or a file path)
	Output string

	// NoColor disables color output in console mode
	NoColor bool

	// Writer, when set, takes precedence over Output
	Writer io.Writer
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Level:   "warn",
		Format:  "auto",
		Output:  "stderr",
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// New creates a logger from configuration.
//
// When Output names a file, the returned closer releases it; otherwise
// closing is a no-op. A file that cannot be opened is an error.
func New(cfg *Config) (zerolog.Logger, io.Closer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level := ParseLevel(cfg.Level)

	w, closer, err := writer(cfg)
	if err != nil {
		return Nop, nopCloser{}, err
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()

	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger, closer, nil
}

// Configure builds a logger from cfg and installs it as the default.
// The default is left unchanged when cfg cannot be honoured.
func Configure(cfg *Config) (zerolog.Logger, io.Closer, error) {
	logger, closer, err := New(cfg)
	if err != nil {
		return logger, closer, err
	}
	SetDefault(logger)
	return logger, closer, nil
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// ParseLevel parses a log level string. Unknown values fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	case "":
		return zerolog.InfoLevel
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func writer(cfg *Config) (io.Writer, io.Closer, error) {
	var out io.Writer = cfg.Writer
	var closer io.Closer = nopCloser{}
	if out == nil {
		var err error
		out, closer, err = outputWriter(cfg.Output)
		if err != nil {
			return nil, nil, err
		}
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = "console"
		}
	}

	if format == "console" || format == "pretty" {
		return zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor,
		}, closer, nil
	}
	return out, closer, nil
}

func outputWriter(output string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, nopCloser{}, nil
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	case "discard", "none":
		return io.Discard, nopCloser{}, nil
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output %s: %w", output, err)
	}
	return f, f, nil
}
