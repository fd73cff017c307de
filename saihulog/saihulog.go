// Package saihulog wraps logrus the way inference-sim-inference-sim's
// cmd/root.go configures a package-level logger once from main and lets the
// rest of the program call it directly: xtfa and cmd/saihu both log
// through the same package-scoped logrus.FieldLogger rather than each
// constructing their own.
package saihulog

import "github.com/sirupsen/logrus"

// logger is the package-wide logrus.FieldLogger every saihu package logs
// through. It defaults to logrus's standard logger so packages work without
// any setup; cmd/saihu reconfigures it from a --log flag at startup.
var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLevel parses level (e.g. "debug", "info", "warn", "error") and applies
// it to the standard logrus logger, matching cmd/root.go's
// logrus.ParseLevel/logrus.SetLevel pattern.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	return nil
}

// SetLogger replaces the package-wide logger, for callers embedding saihu
// in a larger program with its own logrus.FieldLogger (e.g. one already
// carrying fields like request IDs).
func SetLogger(l logrus.FieldLogger) {
	logger = l
}

// Logger returns the package-wide logrus.FieldLogger for packages that want
// to attach additional fields before logging (logrus.WithField-style).
func Logger() logrus.FieldLogger {
	return logger
}
