package signallinker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smilemakc/workflowgraphs/internal/config"
	"github.com/smilemakc/workflowgraphs/internal/domain"
	"github.com/smilemakc/workflowgraphs/internal/linker"
)

func TestResolveByNameSingleMatch(t *testing.T) {
	shipping := &domain.Workflow{Name: "shipping-123", SignalHandlers: []string{"ship_order"}}
	root := &domain.Workflow{Name: "Order", CallSites: []domain.GraphNode{
		&domain.ExternalSignalSend{SignalName: "ship_order", TargetPattern: "shipping-{*}", OrderIndex: 0},
	}}
	idx := &linker.Index{ByName: map[string]*domain.Workflow{"shipping-123": shipping}}
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)

	res := Resolve(root, idx, cfg)
	require.Equal(t, "shipping-123", res.Resolved[0])
	require.Empty(t, res.Unresolved)
	require.Empty(t, res.Ambiguous)
}

func TestResolveUnresolvedWhenNoHandlerMatches(t *testing.T) {
	root := &domain.Workflow{Name: "Order", CallSites: []domain.GraphNode{
		&domain.ExternalSignalSend{SignalName: "notify_shipped", TargetPattern: "nobody", OrderIndex: 0},
	}}
	idx := &linker.Index{ByName: map[string]*domain.Workflow{}}
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)

	res := Resolve(root, idx, cfg)
	require.Contains(t, res.Unresolved, "notify_shipped")
}

func TestResolveAmbiguousWhenMultipleHandlersMatch(t *testing.T) {
	a := &domain.Workflow{Name: "shipping-east", SignalHandlers: []string{"ship_order"}}
	b := &domain.Workflow{Name: "shipping-west", SignalHandlers: []string{"ship_order"}}
	root := &domain.Workflow{Name: "Order", CallSites: []domain.GraphNode{
		&domain.ExternalSignalSend{SignalName: "ship_order", TargetPattern: "shipping-{*}", OrderIndex: 0},
	}}
	idx := &linker.Index{ByName: map[string]*domain.Workflow{"shipping-east": a, "shipping-west": b}}
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)

	res := Resolve(root, idx, cfg)
	require.ElementsMatch(t, []string{"shipping-east", "shipping-west"}, res.Ambiguous["ship_order"])
}

func TestResolveExplicitStrategyUsesConfiguredMapping(t *testing.T) {
	handler := &domain.Workflow{Name: "ShippingHandler", SignalHandlers: []string{"ship_order"}}
	root := &domain.Workflow{Name: "Order", CallSites: []domain.GraphNode{
		&domain.ExternalSignalSend{SignalName: "ship_order", TargetPattern: "shipping-{*}", OrderIndex: 0},
	}}
	idx := &linker.Index{ByName: map[string]*domain.Workflow{"ShippingHandler": handler}}
	cfg, err := config.NewBuilder().
		SignalResolutionStrategy(config.SignalExplicit).
		SignalExplicitMapping("shipping-{*}", "ShippingHandler").
		Build()
	require.NoError(t, err)

	res := Resolve(root, idx, cfg)
	require.Equal(t, "ShippingHandler", res.Resolved[0])
}

func TestPatternMatchesWildcard(t *testing.T) {
	require.True(t, patternMatches("shipping-{*}", "shipping-123"))
	require.False(t, patternMatches("shipping-{*}", "billing-123"))
	require.False(t, patternMatches("shipping-{*}", "shipping-"))
	require.True(t, patternMatches("literal", "literal"))
	require.False(t, patternMatches(domain.DynamicTarget, "anything"))
}
