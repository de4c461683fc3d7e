// Package childlinker composes a root workflow with every workflow it
// spawns as a child, across the three expansion modes spec.md §4.8
// describes. Grounded on the teacher's now-superseded
// internal/domain/workflow.go checkForCycles DFS (a two-set
// visited/recursion-stack walk over a mutable aggregate), generalized here
// to the classical three-colour form over the immutable domain.Workflow
// records discovery produces.
package childlinker

import (
	"fmt"

	"github.com/smilemakc/workflowgraphs/internal/config"
	"github.com/smilemakc/workflowgraphs/internal/domain"
	"github.com/smilemakc/workflowgraphs/internal/errs"
	"github.com/smilemakc/workflowgraphs/internal/linker"
	"github.com/smilemakc/workflowgraphs/internal/pathengine"
)

// Graph is the result of linking a root workflow to every workflow it
// reaches through child-workflow calls.
type Graph struct {
	Root *domain.Workflow
	// Workflows indexes every workflow in the composition, root included.
	Workflows map[string]*domain.Workflow
	// Order lists every non-root workflow name in first-discovery order,
	// for stable subgraph emission.
	Order []string
	// RootPaths is the root's final path set: its own paths unchanged in
	// reference and subgraph mode, or the combined cross-workflow path set
	// in inline mode.
	RootPaths []domain.Path
	// ChildPaths holds each child's independently expanded path set,
	// populated only in subgraph mode (reference mode never expands a
	// child's paths; inline mode folds them into RootPaths instead).
	ChildPaths map[string][]domain.Path
}

// Link resolves root's child-workflow calls against idx, detects cycles,
// and expands paths according to cfg.ChildWorkflowExpansion.
func Link(root *domain.Workflow, idx *linker.Index, cfg config.Configuration) (*Graph, error) {
	g := &Graph{
		Root:      root,
		Workflows: map[string]*domain.Workflow{root.Name: root},
	}

	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := map[string]int{root.Name: grey}
	var chain []string

	var visit func(wf *domain.Workflow) error
	visit = func(wf *domain.Workflow) error {
		chain = append(chain, wf.Name)
		defer func() { chain = chain[:len(chain)-1] }()

		for _, n := range wf.CallSites {
			cw, ok := n.(*domain.ChildWorkflowCall)
			if !ok {
				continue
			}
			switch color[cw.TargetName] {
			case grey:
				return errs.NewLinkageError(cw.TargetName,
					"child-workflow spawn forms a cycle", "break the cycle by removing one of the mutual child-workflow calls",
					append(append([]string{}, chain...), cw.TargetName))
			case black:
				continue
			}

			child, found := idx.ByName[cw.TargetName]
			if !found {
				return errs.NewLinkageError(cw.TargetName,
					"target workflow cannot be located in the configured search paths", "add the workflow's source file to the search paths",
					append(append([]string{}, chain...), cw.TargetName))
			}

			color[cw.TargetName] = grey
			g.Workflows[child.Name] = child
			g.Order = append(g.Order, child.Name)
			if err := visit(child); err != nil {
				return err
			}
			color[cw.TargetName] = black
		}
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	color[root.Name] = black

	switch cfg.ChildWorkflowExpansion {
	case config.ChildInline:
		paths, err := expandInline(root, g.Workflows, cfg)
		if err != nil {
			return nil, err
		}
		g.RootPaths = paths

	case config.ChildSubgraph:
		rootPaths, err := pathengine.Expand(root, cfg)
		if err != nil {
			return nil, err
		}
		g.RootPaths = rootPaths

		g.ChildPaths = make(map[string][]domain.Path, len(g.Order))
		for _, name := range g.Order {
			child := g.Workflows[name]
			childPaths, err := pathengine.Expand(child, cfg)
			if err != nil {
				return nil, err
			}
			g.ChildPaths[name] = childPaths
		}

	default: // config.ChildReference
		rootPaths, err := pathengine.Expand(root, cfg)
		if err != nil {
			return nil, err
		}
		g.RootPaths = rootPaths
	}

	return g, nil
}

// SpliceInline returns root's call sites with each directly-called child's
// own call sites spliced in immediately after its ChildWorkflowCall marker,
// one level deep, plus the signal handlers exposed by everything spliced
// in and the list of child names actually spliced. A child's own
// child-workflow calls are not recursively inlined; they remain plain
// reference nodes in the spliced sequence, which bounds inline mode to one
// level of nesting rather than an unbounded expansion. Both expandInline
// (path enumeration) and the renderer's inline-mode diagram call this, so
// the path list and the diagram always describe the same graph.
func SpliceInline(root *domain.Workflow, workflows map[string]*domain.Workflow) (nodes []domain.GraphNode, handlers []string, chain []string) {
	nodes = make([]domain.GraphNode, 0, len(root.CallSites))
	handlers = append(handlers, root.SignalHandlers...)
	for _, n := range root.CallSites {
		nodes = append(nodes, n)
		cw, ok := n.(*domain.ChildWorkflowCall)
		if !ok {
			continue
		}
		child, found := workflows[cw.TargetName]
		if !found {
			continue
		}
		nodes = append(nodes, child.CallSites...)
		handlers = append(handlers, child.SignalHandlers...)
		chain = append(chain, child.Name)
	}
	return nodes, handlers, chain
}

// expandInline enumerates the spliced node sequence SpliceInline produces
// as a single combined path set.
func expandInline(root *domain.Workflow, workflows map[string]*domain.Workflow, cfg config.Configuration) ([]domain.Path, error) {
	nodes, _, chain := SpliceInline(root, workflows)

	paths, err := pathengine.ExpandNodes(root.Name, nodes, cfg)
	if err != nil {
		if genErr, ok := err.(*errs.GenerationError); ok && len(chain) > 0 {
			genErr.Message = fmt.Sprintf("%s (inlined chain: %s -> %v)", genErr.Message, root.Name, chain)
		}
		return nil, err
	}
	return paths, nil
}
