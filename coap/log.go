package coap

import "github.com/sirupsen/logrus"

// loggerFields is a thin alias so call sites in this package read the
// same way transport_uart.go's logrus.WithField chains do, without
// importing logrus directly in every file.
type loggerFields = logrus.Fields

// defaultLogger is used by Clients created without the WithLogger option.
// It is a package-level *logrus.Logger (not the global logrus singleton)
// so tests can point it at a buffer without racing other packages.
var defaultLogger = logrus.New()

// SetLogger overrides the logger used by Clients created afterwards
// without the WithLogger option. Intended for tests that want
// to assert on log output or silence it.
func SetLogger(l *logrus.Logger) {
	defaultLogger = l
}
