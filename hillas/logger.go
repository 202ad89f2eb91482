package hillas

import "github.com/sirupsen/logrus"

var logger = logrus.StandardLogger()

// SetLogger replaces the package logger. Passing nil restores the logrus standard logger.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	logger = l
}
