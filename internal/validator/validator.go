// Package validator reports structural quality problems in a classified
// workflow and its generated path set. Grounded on
// internal/domain/errors/errors.go's ValidationError shape, widened from a
// single-field validation to a diagnostic list, and on the "accumulate,
// don't abort" pattern used by retry/error-strategy handling in the
// teacher's execution engine: warnings accumulate into the returned
// report while errors still propagate immediately (spec.md §7).
package validator

import (
	"fmt"
	"sort"

	"github.com/smilemakc/workflowgraphs/internal/config"
	"github.com/smilemakc/workflowgraphs/internal/domain"
)

// Severity is a diagnostic's urgency.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is one validator finding.
type Diagnostic struct {
	Severity   Severity
	Category   string
	Message    string
	Suggestion string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s (%s)", d.Severity, d.Category, d.Message, d.Suggestion)
}

// SignalResolution carries what the cross-workflow linker discovered about
// a workflow's external-signal sends, consumed here to produce the
// "unresolved signal" and "ambiguous signal handler" diagnostics. Left at
// its zero value for a single-workflow analysis, where no linking occurs.
type SignalResolution struct {
	// Unresolved lists signal names sent by wf with no discovered handler.
	Unresolved []string
	// Ambiguous maps a signal name to every discovered workflow that
	// declares a matching handler, when more than one does.
	Ambiguous map[string][]string
}

// Validate inspects wf and its expanded path set and returns every
// diagnostic, in a stable order: unreachable activities (source order),
// branch-point pressure, unresolved signals, then ambiguous handlers.
// Validate returns nil when cfg.SuppressValidation is true.
func Validate(wf *domain.Workflow, paths []domain.Path, cfg config.Configuration, res SignalResolution) []Diagnostic {
	if cfg.SuppressValidation {
		return nil
	}

	var diags []Diagnostic

	visited := make(map[domain.GraphNode]bool)
	for _, p := range paths {
		for _, step := range p.Steps {
			visited[step.Node] = true
		}
	}
	for _, n := range wf.CallSites {
		if n.Kind() != domain.KindActivity {
			continue
		}
		if !visited[n] {
			diags = append(diags, Diagnostic{
				Severity:   SeverityWarning,
				Category:   "unreachable-activity",
				Message:    fmt.Sprintf("activity %q is not visited by any generated path", n.Label()),
				Suggestion: "remove the dead call site or verify the branch structure that should reach it",
			})
		}
	}

	b := wf.BranchCount()
	if b >= cfg.MaxDecisionPoints-1 {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Category: "branch-point-pressure",
			Message: fmt.Sprintf("workflow %q has %d branch points, close to the configured limit of %d",
				wf.Name, b, cfg.MaxDecisionPoints),
			Suggestion: "refactor the workflow to use fewer branch points, or raise max_decision_points",
		})
	}

	if cfg.WarnUnresolvedSignals {
		for _, name := range res.Unresolved {
			diags = append(diags, Diagnostic{
				Severity:   SeverityWarning,
				Category:   "unresolved-external-signal",
				Message:    fmt.Sprintf("signal %q could not be linked to any known workflow", name),
				Suggestion: "add the handler workflow to the search paths or configure an explicit signal mapping",
			})
		}
	}

	ambiguousNames := make([]string, 0, len(res.Ambiguous))
	for name := range res.Ambiguous {
		ambiguousNames = append(ambiguousNames, name)
	}
	sort.Strings(ambiguousNames)
	for _, name := range ambiguousNames {
		diags = append(diags, Diagnostic{
			Severity:   SeverityWarning,
			Category:   "ambiguous-signal-handler",
			Message:    fmt.Sprintf("signal %q matches handlers in multiple workflows: %v", name, res.Ambiguous[name]),
			Suggestion: "rename the conflicting signal handlers or switch to the explicit resolution strategy",
		})
	}

	return diags
}
