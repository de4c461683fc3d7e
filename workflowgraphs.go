// Package workflowgraphs is the library's public surface: three analysis
// entry points plus the immutable Configuration they take. It orchestrates
// reader, locator, classifier, pathengine, validator, the cross-workflow
// linkers, and render in sequence. Configuration and the error taxonomy are
// re-exported as aliases; the builder returned by NewConfigurationBuilder
// and the mode enums are internal/config types. Grounded on the teacher's
// adapter.go boundary between its internal engine and its public factory
// functions.
package workflowgraphs

import (
	"os"
	"strings"

	"github.com/smilemakc/workflowgraphs/internal/classifier"
	"github.com/smilemakc/workflowgraphs/internal/config"
	"github.com/smilemakc/workflowgraphs/internal/domain"
	"github.com/smilemakc/workflowgraphs/internal/errs"
	"github.com/smilemakc/workflowgraphs/internal/linker"
	"github.com/smilemakc/workflowgraphs/internal/linker/childlinker"
	"github.com/smilemakc/workflowgraphs/internal/linker/signallinker"
	"github.com/smilemakc/workflowgraphs/internal/locator"
	"github.com/smilemakc/workflowgraphs/internal/logging"
	"github.com/smilemakc/workflowgraphs/internal/pathengine"
	"github.com/smilemakc/workflowgraphs/internal/reader"
	"github.com/smilemakc/workflowgraphs/internal/render"
	"github.com/smilemakc/workflowgraphs/internal/validator"
)

// Configuration is the immutable set of options threaded through every
// analysis call. Build one with NewConfigurationBuilder().
type Configuration = config.Configuration

// NewConfigurationBuilder returns a chained builder seeded with every
// documented default.
func NewConfigurationBuilder() *config.Builder { return config.NewBuilder() }

// The library's error taxonomy, re-exported so callers can type-switch or
// errors.As against it without importing an internal package.
type (
	ParseError                = errs.ParseError
	UnsupportedConstructError = errs.UnsupportedConstructError
	UsageError                = errs.UsageError
	GenerationError           = errs.GenerationError
	LinkageError              = errs.LinkageError
	ConfigError               = errs.ConfigError
)

// AnalyzeWorkflow performs a single-workflow analysis of the file at path:
// locate, classify, expand paths, validate, and render, with no
// cross-workflow linking. When a file declares more than one annotated
// workflow class, the first in source order is treated as the entry point.
func AnalyzeWorkflow(path string, cfg Configuration) (string, error) {
	wf, err := locateAndClassify(path)
	if err != nil {
		return "", err
	}

	paths, err := pathengine.Expand(wf, cfg)
	if err != nil {
		return "", err
	}

	diags := validator.Validate(wf, paths, cfg, validator.SignalResolution{})
	return finish(assemble(render.Diagram(wf, cfg), render.PathList(paths, cfg), diags, cfg), cfg)
}

// AnalyzeWorkflowGraph performs a multi-workflow analysis: it locates and
// classifies the workflow at path, discovers every workflow reachable
// through searchDirs, links synchronous child-workflow spawns according to
// cfg.ChildWorkflowExpansion, and renders the composed result.
func AnalyzeWorkflowGraph(path string, searchDirs []string, cfg Configuration) (string, error) {
	wf, err := locateAndClassify(path)
	if err != nil {
		return "", err
	}

	idx, err := linker.Discover(searchDirs, logging.Nop())
	if err != nil {
		return "", err
	}
	idx.ByName[wf.Name] = wf

	g, err := childlinker.Link(wf, idx, cfg)
	if err != nil {
		return "", err
	}

	diags := validator.Validate(wf, g.RootPaths, cfg, validator.SignalResolution{})
	return finish(assemble(render.ChildDiagram(g, cfg), render.ChildPathList(g, cfg), diags, cfg), cfg)
}

// AnalyzeSignalGraph performs a multi-workflow analysis along the
// asynchronous-signal axis: it resolves every external-signal send from
// the workflow at path against the peer workflows discovered in
// searchDirs, under cfg.SignalResolutionStrategy, and renders the composed
// signal diagram.
func AnalyzeSignalGraph(path string, searchDirs []string, cfg Configuration) (string, error) {
	wf, err := locateAndClassify(path)
	if err != nil {
		return "", err
	}

	idx, err := linker.Discover(searchDirs, logging.Nop())
	if err != nil {
		return "", err
	}

	res := signallinker.Resolve(wf, idx, cfg)
	vres := validator.SignalResolution{Unresolved: res.Unresolved, Ambiguous: res.Ambiguous}

	paths, err := pathengine.Expand(wf, cfg)
	if err != nil {
		return "", err
	}
	diags := validator.Validate(wf, paths, cfg, vres)

	diagram := render.SignalDiagram(wf, resolvePeers(res, idx), res, cfg)
	return finish(assemble(diagram, render.PathList(paths, cfg), diags, cfg), cfg)
}

// resolvePeers collects, from idx, every workflow a signal send actually
// resolved to, for SignalDiagram to render alongside the sender.
func resolvePeers(res *signallinker.Result, idx *linker.Index) map[string]*domain.Workflow {
	peers := make(map[string]*domain.Workflow, len(res.Resolved))
	for _, name := range res.Resolved {
		if wf, ok := idx.ByName[name]; ok {
			peers[name] = wf
		}
	}
	return peers
}

// locateAndClassify reads path, locates its first annotated workflow
// class, and classifies it.
func locateAndClassify(path string) (*domain.Workflow, error) {
	r := reader.New(logging.Nop())
	mod, _, err := r.Read(path)
	if err != nil {
		return nil, err
	}

	found, err := locator.Locate(mod, path)
	if err != nil {
		return nil, err
	}

	return classifier.Classify(found[0], path)
}

// assemble concatenates the sections cfg.OutputFormat selects, in a fixed
// order: diagram, path list, validation report. pathList is already
// rendered by the caller, since a child-linked analysis renders a
// different path-list shape (root plus per-child sections) than a
// single-workflow one.
func assemble(diagram string, pathList string, diags []validator.Diagnostic, cfg Configuration) string {
	var sections []string

	switch cfg.OutputFormat {
	case config.OutputDiagramOnly:
		sections = append(sections, diagram)
	case config.OutputPathsOnly:
		if cfg.IncludePathList {
			sections = append(sections, pathList)
		}
	default: // config.OutputFull
		sections = append(sections, diagram)
		if cfg.IncludePathList {
			sections = append(sections, pathList)
		}
		if cfg.IncludeValidationReport {
			if report := render.ValidationReport(diags); report != "" {
				sections = append(sections, report)
			}
		}
	}

	return strings.Join(sections, "\n")
}

// finish optionally writes out to cfg.GraphOutputFile before returning it.
func finish(out string, cfg Configuration) (string, error) {
	if cfg.GraphOutputFile == "" {
		return out, nil
	}
	if err := os.WriteFile(cfg.GraphOutputFile, []byte(out), 0o644); err != nil {
		return "", errs.NewConfigError("graph_output_file", "could not write rendered output: "+err.Error(),
			"check the output path is writable")
	}
	return out, nil
}
