// Package reader resolves a file path to a parsed syntax tree. Grounded on
// the teacher's "log an event with context" idiom
// (internal/infrastructure/monitoring/logger.go's ExecutionLogger), adapted
// from log.Printf to the module's zerolog logger.
package reader

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/smilemakc/workflowgraphs/internal/errs"
	"github.com/smilemakc/workflowgraphs/internal/pyast"
)

// Reader wraps pyast with located error reporting. It never caches: every
// call to Read re-reads and re-parses the file from disk.
type Reader struct {
	log zerolog.Logger
}

// New returns a Reader that logs parse attempts at debug level via log.
func New(log zerolog.Logger) *Reader {
	return &Reader{log: log}
}

// Read loads path, parses it, and returns its module tree and raw source
// text. A missing file, an unreadable file, or a syntax error all produce
// a *errs.ParseError carrying the path and, when known, the offending line.
func (r *Reader) Read(path string) (*pyast.Module, string, error) {
	r.log.Debug().Str("path", path).Msg("reading workflow source")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errs.NewParseError(path, 0, "file does not exist", "check the supplied path", err)
		}
		return nil, "", errs.NewParseError(path, 0, "file could not be read", "check file permissions", err)
	}

	src := string(data)
	mod, err := pyast.Parse(path, src)
	if err != nil {
		if synErr, ok := err.(*pyast.SyntaxError); ok {
			return nil, "", errs.NewParseError(path, synErr.Line, synErr.Message, "fix the syntax error and re-run", synErr)
		}
		return nil, "", errs.NewParseError(path, 0, "source could not be parsed", "verify the file is valid workflow source", err)
	}

	r.log.Debug().Str("path", path).Int("statements", len(mod.Body)).Msg("parsed workflow source")
	return mod, src, nil
}
