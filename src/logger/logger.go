package logger

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup configures the standard logrus logger. Unknown levels fall back to info.
func Setup(level string, format string) {
	log.SetOutput(os.Stdout)

	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(parsed)
	}

	if strings.EqualFold(format, FormatJSON) {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// AddTelemetryHook forwards log records to the span on the entry's context.
func AddTelemetryHook() {
	log.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
		log.WarnLevel,
		log.InfoLevel,
	)))
}
