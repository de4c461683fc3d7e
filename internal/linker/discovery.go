// Package linker discovers workflows reachable from a set of search
// directories and composes multi-workflow graphs across two axes:
// synchronous child-workflow spawns (childlinker) and asynchronous peer
// signalling (signallinker). Grounded on internal/domain/workflow.go's
// checkForCycles DFS (generalized from its two-set visited/recursion-stack
// form to the classical three-colour pattern) and on
// internal/engine/graph.go's Kahn-style queue, reused here for the signal
// linker's depth-bounded BFS. filepath.WalkDir is the one stdlib-only
// concern in this package: no third-party directory walker appears
// anywhere in the retrieved corpus for this shape.
package linker

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smilemakc/workflowgraphs/internal/classifier"
	"github.com/smilemakc/workflowgraphs/internal/domain"
	"github.com/smilemakc/workflowgraphs/internal/locator"
	"github.com/smilemakc/workflowgraphs/internal/reader"
)

// Index is a name-to-workflow lookup built by scanning a set of search
// directories once, on demand. ByID is keyed on each workflow's internal
// identity, letting a caller detect when two search-dir files produced
// distinct workflow records that happen to share a name.
type Index struct {
	ByName map[string]*domain.Workflow
	ByID   map[uuid.UUID]*domain.Workflow
}

// Discover walks every directory in dirs for source files, classifying
// every workflow class it finds into a by-name index. Files that do not
// declare a workflow are skipped silently; a file that declares a
// workflow but fails classification is a genuine error and aborts
// discovery, since a referenced chain must resolve to real, well-formed
// workflows.
func Discover(dirs []string, log zerolog.Logger) (*Index, error) {
	idx := &Index{ByName: map[string]*domain.Workflow{}, ByID: map[uuid.UUID]*domain.Workflow{}}
	r := reader.New(log)

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".py") {
				return nil
			}
			mod, _, err := r.Read(path)
			if err != nil {
				log.Debug().Str("path", path).Err(err).Msg("skipping unreadable file during discovery")
				return nil
			}
			found, err := locator.Locate(mod, path)
			if err != nil {
				// Not every .py file under a search directory declares a
				// workflow; absence is not a discovery failure.
				return nil
			}
			for _, loc := range found {
				wf, err := classifier.Classify(loc, path)
				if err != nil {
					return err
				}
				idx.ByName[wf.Name] = wf
				idx.ByID[wf.ID] = wf
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return idx, nil
}
