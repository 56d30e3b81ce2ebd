package logger

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. Production emits JSON, everything else uses
// the text formatter.
func New(env, level string) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stdout

	if env == "production" {
		log.SetReportCaller(true)
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05Z07:00",
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				return "", filepath.Base(f.File) + ":" + strconv.Itoa(f.Line)
			},
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}
