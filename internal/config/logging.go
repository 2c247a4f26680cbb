package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

const (
	logMaxSizeMB  = 50
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// NewLogger builds the server logger: colored text on stdout in
// development, JSON otherwise, plus a rotating JSON file when LOG_FILE is set.
func NewLogger() (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level := logrus.InfoLevel
	if Development() {
		level = logrus.DebugLevel
	}
	if s, ok := os.LookupEnv("LOG_LEVEL"); ok {
		parsed, err := logrus.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		level = parsed
	}
	log.SetLevel(level)

	if Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if filename, ok := os.LookupEnv("LOG_FILE"); ok && filename != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   filename,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to open log file: %w", err)
		}
		log.AddHook(hook)
	}

	return log, nil
}
