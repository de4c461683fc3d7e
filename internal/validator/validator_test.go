package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smilemakc/workflowgraphs/internal/config"
	"github.com/smilemakc/workflowgraphs/internal/domain"
)

func TestValidateFlagsBranchPointPressure(t *testing.T) {
	cfg, err := config.NewBuilder().MaxDecisionPoints(3).Build()
	require.NoError(t, err)

	wf := &domain.Workflow{Name: "W", CallSites: []domain.GraphNode{
		&domain.DecisionPoint{Text: "A", OrderIndex: 0},
		&domain.DecisionPoint{Text: "B", OrderIndex: 1},
	}}
	diags := Validate(wf, nil, cfg, SignalResolution{})
	require.Contains(t, diagCategories(diags), "branch-point-pressure")
}

func TestValidateSuppressed(t *testing.T) {
	cfg, err := config.NewBuilder().SuppressValidation(true).MaxDecisionPoints(1).Build()
	require.NoError(t, err)
	wf := &domain.Workflow{Name: "W", CallSites: []domain.GraphNode{&domain.DecisionPoint{Text: "A"}}}
	require.Empty(t, Validate(wf, nil, cfg, SignalResolution{}))
}

func TestValidateUnresolvedSignal(t *testing.T) {
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)
	wf := &domain.Workflow{Name: "W"}
	diags := Validate(wf, nil, cfg, SignalResolution{Unresolved: []string{"notify_shipped"}})
	require.Contains(t, diagCategories(diags), "unresolved-external-signal")
}

func diagCategories(diags []Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Category)
	}
	return out
}
