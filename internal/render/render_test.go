package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smilemakc/workflowgraphs/internal/config"
	"github.com/smilemakc/workflowgraphs/internal/domain"
	"github.com/smilemakc/workflowgraphs/internal/linker/childlinker"
	"github.com/smilemakc/workflowgraphs/internal/linker/signallinker"
	"github.com/smilemakc/workflowgraphs/internal/names"
)

func TestDiagramLinearWorkflow(t *testing.T) {
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)

	wf := &domain.Workflow{Name: "Simple", CallSites: []domain.GraphNode{
		&domain.ActivityCall{DisplayName: "validate_input", OrderIndex: 0},
		&domain.ActivityCall{DisplayName: "process_data", OrderIndex: 1},
	}}
	out := Diagram(wf, cfg)
	require.Contains(t, out, "s((Start))")
	require.Contains(t, out, "e((End))")
	require.Contains(t, out, "validate_input[Validate Input]")
	require.Contains(t, out, "s --> validate_input")
	require.Contains(t, out, "validate_input --> process_data")
	require.Contains(t, out, "process_data --> e")
}

func TestDiagramDecisionUsesDiamondAndLiteralLabel(t *testing.T) {
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)
	wf := &domain.Workflow{Name: "Transfer", CallSites: []domain.GraphNode{
		&domain.DecisionPoint{Text: "HighValue", OrderIndex: 0},
	}}
	out := Diagram(wf, cfg)
	require.Contains(t, out, "d0{HighValue}")
	require.Contains(t, out, "-- no -->")
	require.Contains(t, out, "-- yes -->")
}

func TestDiagramDecisionIDIsStableHashNotOrderIndex(t *testing.T) {
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)
	id := names.StableID("HighValue")
	wf := &domain.Workflow{Name: "Transfer", CallSites: []domain.GraphNode{
		&domain.ActivityCall{DisplayName: "validate", OrderIndex: 0},
		&domain.DecisionPoint{ID: id, Text: "HighValue", OrderIndex: 1},
	}}
	out := Diagram(wf, cfg)
	require.Contains(t, out, fmt.Sprintf("d%d{HighValue}", id))
	require.NotContains(t, out, "d1{HighValue}")
}

func TestDiagramWaitUsesHexagonAndHumanizedLabel(t *testing.T) {
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)
	wf := &domain.Workflow{Name: "Approval", CallSites: []domain.GraphNode{
		&domain.WaitPoint{Text: "WaitForApproval", OrderIndex: 0},
	}}
	out := Diagram(wf, cfg)
	require.Contains(t, out, "WaitForApproval{{Wait For Approval}}")
	require.Contains(t, out, "-- Signaled -->")
	require.Contains(t, out, "-- Timeout -->")
}

func TestPathListFormatsHeaderAndPaths(t *testing.T) {
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)
	paths := []domain.Path{
		{Steps: []domain.Step{
			{Node: &domain.ActivityCall{DisplayName: "save_result", OrderIndex: 0}},
		}},
	}
	out := PathList(paths, cfg)
	require.Contains(t, out, "Execution Paths (1 total):")
	require.Contains(t, out, "Path 1: Start → Save Result → End")
}

func TestValidationReportEmptyWhenNoDiagnostics(t *testing.T) {
	require.Empty(t, ValidationReport(nil))
}

func TestChildDiagramInlineModeSplicesChildNodesLikePathList(t *testing.T) {
	child := &domain.Workflow{Name: "ChildWorkflow", CallSites: []domain.GraphNode{
		&domain.ActivityCall{DisplayName: "do_child_work", OrderIndex: 0},
	}}
	root := &domain.Workflow{Name: "ParentWorkflow", CallSites: []domain.GraphNode{
		&domain.ChildWorkflowCall{TargetName: "ChildWorkflow", OrderIndex: 0},
	}}
	g := &childlinker.Graph{
		Root:      root,
		Workflows: map[string]*domain.Workflow{root.Name: root, child.Name: child},
		Order:     []string{child.Name},
	}
	cfg, err := config.NewBuilder().ChildWorkflowExpansion(config.ChildInline).Build()
	require.NoError(t, err)

	out := ChildDiagram(g, cfg)
	require.Contains(t, out, "do_child_work[Do Child Work]")
	require.NotContains(t, out, "subgraph")
}

func TestSignalDiagramSubgraphModeWrapsEachWorkflow(t *testing.T) {
	root := &domain.Workflow{Name: "SenderWorkflow", CallSites: []domain.GraphNode{
		&domain.ExternalSignalSend{SignalName: "ship_order", TargetPattern: "ShippingHandler", OrderIndex: 0},
	}}
	peer := &domain.Workflow{Name: "ShippingHandler", SignalHandlers: []string{"ship_order"}}
	res := &signallinker.Result{Resolved: map[int]string{0: "ShippingHandler"}, Ambiguous: map[string][]string{}}
	cfg, err := config.NewBuilder().Build()
	require.NoError(t, err)

	out := SignalDiagram(root, map[string]*domain.Workflow{"ShippingHandler": peer}, res, cfg)
	require.Contains(t, out, "subgraph SenderWorkflow")
	require.Contains(t, out, "subgraph ShippingHandler")
}

func TestSignalDiagramUnifiedModeOmitsSubgraphWrappers(t *testing.T) {
	root := &domain.Workflow{Name: "SenderWorkflow", CallSites: []domain.GraphNode{
		&domain.ExternalSignalSend{SignalName: "ship_order", TargetPattern: "ShippingHandler", OrderIndex: 0},
	}}
	peer := &domain.Workflow{Name: "ShippingHandler", SignalHandlers: []string{"ship_order"}}
	res := &signallinker.Result{Resolved: map[int]string{0: "ShippingHandler"}, Ambiguous: map[string][]string{}}
	cfg, err := config.NewBuilder().SignalVisualizationMode(config.SignalVisUnified).Build()
	require.NoError(t, err)

	out := SignalDiagram(root, map[string]*domain.Workflow{"ShippingHandler": peer}, res, cfg)
	require.NotContains(t, out, "subgraph")
	require.Contains(t, out, "ShippingHandler_s((Start))")
}
