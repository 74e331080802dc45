package contract

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Logger returns the process-wide structured logger.
func Logger() *logrus.Logger {
	return logger
}

// SetLogLevel changes the verbosity of the process-wide logger.
func SetLogLevel(level logrus.Level) {
	logger.SetLevel(level)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	logger.WithError(err).Fatal(msg)
}

// LogWarn logs a warning with the error attached, when there is one.
func LogWarn(msg string, err error) {
	if err == nil {
		logger.Warn(msg)
		return
	}
	logger.WithError(err).Warn(msg)
}
