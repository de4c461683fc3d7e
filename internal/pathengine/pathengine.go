// Package pathengine expands a classified workflow's branch points into its
// complete set of concrete execution paths under explicit safety caps.
// Grounded on internal/engine/graph.go/graph_builder.go's adjacency-list
// Graph/GraphBuilder pair, generalized from a single DAG walk to
// per-outcome-vector path materialization. Cycle detection is not done
// here; the child linker performs its own three-colour DFS.
package pathengine

import (
	"github.com/google/uuid"

	"github.com/smilemakc/workflowgraphs/internal/config"
	"github.com/smilemakc/workflowgraphs/internal/domain"
	"github.com/smilemakc/workflowgraphs/internal/errs"
)

// Expand filters wf's call sites to graph nodes, applies the two safety
// gates in order, and — if both pass — enumerates all 2^b outcome vectors
// low-bit-first, walking the call-site sequence once per vector.
func Expand(wf *domain.Workflow, cfg config.Configuration) ([]domain.Path, error) {
	return ExpandNodes(wf.Name, wf.CallSites, cfg)
}

// ExpandNodes is Expand generalized over an arbitrary node sequence rather
// than a single workflow's own call sites, letting the child linker splice
// an inlined child workflow's nodes into its parent's sequence before
// enumeration without duplicating the gate-check and walk logic.
func ExpandNodes(workflowName string, nodes []domain.GraphNode, cfg config.Configuration) ([]domain.Path, error) {
	branchPoints := branchNodes(nodes)
	b := len(branchPoints)

	if b > cfg.MaxDecisionPoints {
		return nil, errs.NewGenerationError(workflowName,
			"branch-point count exceeds max_decision_points", "raise max_decision_points or simplify the workflow",
			b, 1<<uint(min(b, 62)), cfg.MaxDecisionPoints)
	}

	projected := pow2(b)
	if projected > cfg.MaxPaths {
		return nil, errs.NewGenerationError(workflowName,
			"projected path count exceeds max_paths", "raise max_paths or reduce the number of branch points",
			b, projected, cfg.MaxPaths)
	}

	paths := make([]domain.Path, 0, projected)
	for vector := 0; vector < projected; vector++ {
		paths = append(paths, buildPath(nodes, branchPoints, vector))
	}
	return paths, nil
}

func branchNodes(nodes []domain.GraphNode) []domain.GraphNode {
	var out []domain.GraphNode
	for _, n := range nodes {
		if domain.IsBranchPoint(n) {
			out = append(out, n)
		}
	}
	return out
}

// buildPath walks nodes in order, annotating each branch point with the
// outcome bit assigned to it by vector (low-order bit = first branch point
// encountered).
func buildPath(nodes []domain.GraphNode, branchPoints []domain.GraphNode, vector int) domain.Path {
	branchIndex := make(map[domain.GraphNode]int, len(branchPoints))
	for i, n := range branchPoints {
		branchIndex[n] = i
	}

	var steps []domain.Step
	for _, n := range nodes {
		outcome := ""
		if idx, ok := branchIndex[n]; ok {
			bit := (vector >> uint(idx)) & 1
			outcome = outcomeLabel(n, bit)
		}
		steps = append(steps, domain.Step{Node: n, Outcome: outcome})
	}
	return domain.Path{ID: uuid.New(), Steps: steps}
}

func outcomeLabel(n domain.GraphNode, bit int) string {
	switch n.Kind() {
	case domain.KindWait:
		if bit == 0 {
			return domain.OutcomeSignaled
		}
		return domain.OutcomeTimeout
	default: // domain.KindDecision
		if bit == 0 {
			return domain.OutcomeFalse
		}
		return domain.OutcomeTrue
	}
}

func pow2(b int) int {
	if b >= 31 {
		return int(^uint(0) >> 1) // saturate rather than overflow
	}
	return 1 << uint(b)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
