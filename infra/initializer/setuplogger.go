package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/unas-org/unas-backend/pkg/config"
)

var (
	infoColor  = lipgloss.AdaptiveColor{Light: "#1B7F4C", Dark: "#3DDC84"}
	warnColor  = lipgloss.AdaptiveColor{Light: "#B7791F", Dark: "#F6C343"}
	errorColor = lipgloss.AdaptiveColor{Light: "#C53030", Dark: "#FF6B6B"}
	debugColor = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#9F8CFF"}
)

func levelStyle(label string, color lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(label).
		Bold(true).
		Padding(0, 1).
		Foreground(color)
}

func loggerStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = levelStyle("DEBUG", debugColor)
	styles.Levels[log.InfoLevel] = levelStyle("INFO", infoColor)
	styles.Levels[log.WarnLevel] = levelStyle("WARN", warnColor)
	styles.Levels[log.ErrorLevel] = levelStyle("ERROR", errorColor)

	highlighted := map[string]lipgloss.AdaptiveColor{
		"error":   errorColor,
		"handler": infoColor,
		"unit_id": warnColor,
		"user_id": warnColor,
		"path":    debugColor,
	}
	for key, color := range highlighted {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(color)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}

// NewLogger builds the slog logger backed by charmbracelet/log and makes it
// the process default.
func NewLogger(cfg *config.Log) *slog.Logger {
	return setupLogger(os.Stdout, cfg)
}

func setupLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    formatter == log.TextFormatter,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(loggerStyles())

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
