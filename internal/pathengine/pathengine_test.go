package pathengine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smilemakc/workflowgraphs/internal/config"
	"github.com/smilemakc/workflowgraphs/internal/domain"
	"github.com/smilemakc/workflowgraphs/internal/errs"
)

func wf(nodes ...domain.GraphNode) *domain.Workflow {
	return &domain.Workflow{Name: "W", CallSites: nodes}
}

func TestExpandLinearProducesOnePath(t *testing.T) {
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)

	w := wf(&domain.ActivityCall{DisplayName: "a", OrderIndex: 0})
	paths, err := Expand(w, cfg)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.Len(t, paths[0].Steps, 1)
}

func TestExpandTwoDecisionsProducesFourPaths(t *testing.T) {
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)

	w := wf(
		&domain.DecisionPoint{Text: "A", OrderIndex: 0},
		&domain.DecisionPoint{Text: "B", OrderIndex: 1},
	)
	paths, err := Expand(w, cfg)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	require.Equal(t, domain.OutcomeFalse, paths[0].Steps[0].Outcome)
	require.Equal(t, domain.OutcomeFalse, paths[0].Steps[1].Outcome)
	require.Equal(t, domain.OutcomeTrue, paths[1].Steps[0].Outcome)
	require.Equal(t, domain.OutcomeFalse, paths[1].Steps[1].Outcome)
	require.Equal(t, domain.OutcomeTrue, paths[3].Steps[0].Outcome)
	require.Equal(t, domain.OutcomeTrue, paths[3].Steps[1].Outcome)
}

func TestExpandCapsOnDecisionPointLimit(t *testing.T) {
	cfg, err := config.NewBuilder().MaxDecisionPoints(10).Build()
	require.NoError(t, err)

	nodes := make([]domain.GraphNode, 11)
	for i := range nodes {
		nodes[i] = &domain.DecisionPoint{Text: "D", OrderIndex: i}
	}
	_, err = Expand(wf(nodes...), cfg)
	require.Error(t, err)
	var genErr *errs.GenerationError
	require.ErrorAs(t, err, &genErr)
	require.Equal(t, 11, genErr.BranchCount)
	require.Equal(t, 10, genErr.Limit)
}

func TestExpandCapsOnMaxPaths(t *testing.T) {
	cfg, err := config.NewBuilder().MaxDecisionPoints(20).MaxPaths(4).Build()
	require.NoError(t, err)

	nodes := make([]domain.GraphNode, 5)
	for i := range nodes {
		nodes[i] = &domain.DecisionPoint{Text: "D", OrderIndex: i}
	}
	_, err = Expand(wf(nodes...), cfg)
	require.Error(t, err)
	var genErr *errs.GenerationError
	require.ErrorAs(t, err, &genErr)
}
