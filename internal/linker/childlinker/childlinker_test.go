package childlinker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smilemakc/workflowgraphs/internal/config"
	"github.com/smilemakc/workflowgraphs/internal/domain"
	"github.com/smilemakc/workflowgraphs/internal/errs"
	"github.com/smilemakc/workflowgraphs/internal/linker"
)

func idxOf(workflows ...*domain.Workflow) *linker.Index {
	idx := &linker.Index{ByName: map[string]*domain.Workflow{}}
	for _, wf := range workflows {
		idx.ByName[wf.Name] = wf
	}
	return idx
}

func TestLinkDetectsCycle(t *testing.T) {
	a := &domain.Workflow{Name: "A", CallSites: []domain.GraphNode{
		&domain.ChildWorkflowCall{TargetName: "B", OrderIndex: 0},
	}}
	b := &domain.Workflow{Name: "B", CallSites: []domain.GraphNode{
		&domain.ChildWorkflowCall{TargetName: "A", OrderIndex: 0},
	}}
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)

	_, err = Link(a, idxOf(a, b), cfg)
	require.Error(t, err)
	var linkErr *errs.LinkageError
	require.ErrorAs(t, err, &linkErr)
}

func TestLinkReportsUnresolvedTarget(t *testing.T) {
	a := &domain.Workflow{Name: "A", CallSites: []domain.GraphNode{
		&domain.ChildWorkflowCall{TargetName: "Missing", OrderIndex: 0},
	}}
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)

	_, err = Link(a, idxOf(a), cfg)
	require.Error(t, err)
	var linkErr *errs.LinkageError
	require.ErrorAs(t, err, &linkErr)
	require.Equal(t, "Missing", linkErr.Workflow)
}

func TestLinkReferenceModeLeavesRootPathsUnexpanded(t *testing.T) {
	b := &domain.Workflow{Name: "B", CallSites: []domain.GraphNode{
		&domain.DecisionPoint{Text: "X", OrderIndex: 0},
	}}
	a := &domain.Workflow{Name: "A", CallSites: []domain.GraphNode{
		&domain.ChildWorkflowCall{TargetName: "B", OrderIndex: 0},
	}}
	cfg, err := config.NewBuilder().ChildWorkflowExpansion(config.ChildReference).Build()
	require.NoError(t, err)

	g, err := Link(a, idxOf(a, b), cfg)
	require.NoError(t, err)
	require.Len(t, g.RootPaths, 1)
	require.Nil(t, g.ChildPaths)
}

func TestLinkSubgraphModeExpandsEachChildIndependently(t *testing.T) {
	b := &domain.Workflow{Name: "B", CallSites: []domain.GraphNode{
		&domain.DecisionPoint{Text: "X", OrderIndex: 0},
	}}
	a := &domain.Workflow{Name: "A", CallSites: []domain.GraphNode{
		&domain.ChildWorkflowCall{TargetName: "B", OrderIndex: 0},
	}}
	cfg, err := config.NewBuilder().ChildWorkflowExpansion(config.ChildSubgraph).Build()
	require.NoError(t, err)

	g, err := Link(a, idxOf(a, b), cfg)
	require.NoError(t, err)
	require.Len(t, g.RootPaths, 1)
	require.Len(t, g.ChildPaths["B"], 2)
}

func TestLinkInlineModeCombinesBranchCounts(t *testing.T) {
	b := &domain.Workflow{Name: "B", CallSites: []domain.GraphNode{
		&domain.DecisionPoint{Text: "X", OrderIndex: 0},
	}}
	a := &domain.Workflow{Name: "A", CallSites: []domain.GraphNode{
		&domain.DecisionPoint{Text: "Y", OrderIndex: 0},
		&domain.ChildWorkflowCall{TargetName: "B", OrderIndex: 1},
	}}
	cfg, err := config.NewBuilder().ChildWorkflowExpansion(config.ChildInline).Build()
	require.NoError(t, err)

	g, err := Link(a, idxOf(a, b), cfg)
	require.NoError(t, err)
	require.Len(t, g.RootPaths, 4)
}

func TestLinkInlineModeRespectsCombinedGate(t *testing.T) {
	b := &domain.Workflow{Name: "B", CallSites: []domain.GraphNode{
		&domain.DecisionPoint{Text: "X1", OrderIndex: 0},
		&domain.DecisionPoint{Text: "X2", OrderIndex: 1},
	}}
	a := &domain.Workflow{Name: "A", CallSites: []domain.GraphNode{
		&domain.DecisionPoint{Text: "Y", OrderIndex: 0},
		&domain.ChildWorkflowCall{TargetName: "B", OrderIndex: 1},
	}}
	cfg, err := config.NewBuilder().ChildWorkflowExpansion(config.ChildInline).MaxDecisionPoints(2).Build()
	require.NoError(t, err)

	_, err = Link(a, idxOf(a, b), cfg)
	require.Error(t, err)
	var genErr *errs.GenerationError
	require.ErrorAs(t, err, &genErr)
}
