package config

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Call this to configure the logrus logger.
// Set the loglevel, formatter, color options, etc.

const LogLevelEnv = "XCM_LOG_LEVEL"
const LogFormatEnv = "XCM_LOG_FORMAT"

func ConfigureLogger(levelMaybe ...string) {
	time.Local = time.FixedZone("UTC", 0)

	level := os.Getenv(LogLevelEnv)
	if len(levelMaybe) > 0 && levelMaybe[0] != "" {
		level = levelMaybe[0]
	}
	logrus.SetLevel(ParseLevel(level))

	format := os.Getenv(LogFormatEnv)
	if format == "" {
		format = "color-text"
	}
	switch strings.ToLower(format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
		})
	case "color-text":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: false,
			ForceColors:   true,
		})
	default:
		logrus.WithFields(logrus.Fields{
			"format":  format,
			"options": []string{"json", "text", "color-text"},
		}).Warn("unknown format")
	}
}

// ParseLevel defaults to info for unknown levels.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// VerbosityLevel maps the number of -v flags onto a level.
func VerbosityLevel(verbosity int) string {
	switch {
	case verbosity <= 0:
		return "warn"
	case verbosity == 1:
		return "info"
	case verbosity == 2:
		return "debug"
	default:
		return "trace"
	}
}
