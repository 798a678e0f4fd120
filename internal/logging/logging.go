// Package logging builds the process logger: the slog API on top of a
// charmbracelet/log handler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/example/datatrans-payment-demo/internal/config"
)

var levels = map[string]log.Level{
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
}

// Setup creates the logger described by cfg, installs it as the slog default
// and returns it.
func Setup(cfg config.Log) *slog.Logger {
	logger := New(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger
}

func New(w io.Writer, cfg config.Log) *slog.Logger {
	formatter := log.TextFormatter
	if strings.EqualFold(cfg.Format, "json") {
		formatter = log.JSONFormatter
	}
	level, ok := levels[strings.ToLower(cfg.Level)]
	if !ok {
		level = log.InfoLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           level,
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	handler.SetStyles(styles())

	return slog.New(handler)
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	errorColor := lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	warnColor := lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}

	s.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString("ERROR").Bold(true).Foreground(errorColor)
	s.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("WARN").Bold(true).Foreground(warnColor)
	s.Keys["error"] = lipgloss.NewStyle().Foreground(errorColor)
	s.Values["error"] = lipgloss.NewStyle().Bold(true)
	s.Keys["request_id"] = lipgloss.NewStyle().Faint(true)
	return s
}
