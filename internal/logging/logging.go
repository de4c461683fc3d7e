// Package logging threads a single structured logger through the
// pipeline's components, grounded on the teacher's constructor-injected-
// logger idiom (NewExecutionLogger(prefix, verbose), NewGraphBuilder(logger,
// extractor)) and promoted from the teacher's log.Printf calls to
// github.com/rs/zerolog, its own logging dependency, per one logger per
// component rather than a single global.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing structured events to w (os.Stderr
// when nil), tagged with the given component name.
func New(component string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).With().Timestamp().Str("component", component).Logger()
}

// Nop returns a logger that discards everything, used by callers that do
// not want pipeline diagnostics.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
