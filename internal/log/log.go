// Package log provides the single shared logrus sink ithosctl, the chain
// authority, and the Bolt adapter all log through. Grounded on the
// package-level logger-with-setter idiom in core/security.go (secLogger /
// SetSecurityLogger) and cmd/cli/storage.go's logrus.New() construction,
// generalized into one constructor instead of one global per package.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

var root = logrus.New()

func init() {
	root.SetOutput(os.Stderr)
	root.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	root.SetLevel(logrus.InfoLevel)
}

// Configure sets the root logger's level and, if file is non-empty, its
// output destination. Called once during ithosctl startup from the loaded
// Config.
func Configure(level string, file string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	root.SetLevel(lvl)

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		root.SetOutput(f)
	}
	return nil
}

// Root returns the shared logger.
func Root() *logrus.Logger { return root }

// With returns a field-scoped entry off the shared logger, for components
// that want a stable "component" tag on every line.
func With(component string) *logrus.Entry {
	return root.WithField("component", component)
}
