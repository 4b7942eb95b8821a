package utils

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logg     *logrus.Logger
	loggOnce sync.Once
)

// Logger returns the process-wide JSON logger.
func Logger() *logrus.Logger {
	loggOnce.Do(func() {
		logg = logrus.New()
		logg.SetFormatter(&logrus.JSONFormatter{})
		logg.SetOutput(os.Stdout)
		logg.SetLevel(logrus.InfoLevel)
	})
	return logg
}

// SetLogLevel applies LOG_LEVEL; unknown values keep the current level.
func SetLogLevel(level string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		Logger().SetLevel(lvl)
	}
}

func LogError(moduleName string, funcName string, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	Logger().WithFields(fields).Error(err.Error())
}
