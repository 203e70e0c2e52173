// Package chainlog provides the node's component loggers, built on the
// standard library's log package with each subsystem given its own
// prefixed *log.Logger instead of writing through a shared global
// logger.
package chainlog

import (
	"io"
	"log"
	"os"
)

// Logger is a component-scoped logger. It is a direct alias of the
// standard library's *log.Logger so callers can use it exactly like
// the global log package.
type Logger = log.Logger

var output io.Writer = os.Stderr

// SetOutput redirects every logger subsequently created by New.
func SetOutput(w io.Writer) { output = w }

// New builds a logger prefixed with the component name, e.g.
// chainlog.New("chainengine").Printf("applied block %d", height).
func New(component string) *Logger {
	return log.New(output, "["+component+"] ", log.LstdFlags)
}
