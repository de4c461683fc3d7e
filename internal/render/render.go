// Package render serialises a classified workflow (and, when a linker
// result is present, a composed multi-workflow graph) into the flowchart
// DSL, an execution-path listing, and a validation report. Grounded on the
// uncompiled teacher's pkg/visualization/mermaid.go (reference-only, not
// copied, since that file belongs to a sibling module excluded from the
// workspace copy) for the shape-table/edge-table rendering idea, and on
// internal/engine/graph_builder.go's builder-as-accumulator pattern,
// generalized from building a runtime *Graph to building a string buffer.
package render

import (
	"fmt"
	"strings"

	"github.com/smilemakc/workflowgraphs/internal/config"
	"github.com/smilemakc/workflowgraphs/internal/domain"
	"github.com/smilemakc/workflowgraphs/internal/linker/childlinker"
	"github.com/smilemakc/workflowgraphs/internal/linker/signallinker"
	"github.com/smilemakc/workflowgraphs/internal/names"
	"github.com/smilemakc/workflowgraphs/internal/validator"
)

// Fixed style-directive colours, chosen once and never varied so rendered
// output stays byte-reproducible across runs.
const (
	styleSignalHandler   = "classDef signalHandler fill:#1f77b4,color:#ffffff,stroke:#14517d"
	styleExternalSignal  = "classDef externalSignal fill:#ffbf47,color:#1a1a1a,stroke:#a6780a"
	styleUnresolvedPeer  = "classDef unresolvedPeer fill:#ffbf47,color:#7a2e00,stroke:#a6780a,stroke-width:2px"
	unresolvedSentinelID = "unresolved"
)

// Diagram renders a single workflow's flowchart with no cross-workflow
// composition: the shape used by AnalyzeWorkflow.
func Diagram(wf *domain.Workflow, cfg config.Configuration) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")
	emitWorkflowBody(&b, wf.CallSites, wf.SignalHandlers, cfg, "")
	emitStyles(&b, wf, nil)
	return b.String()
}

// ChildDiagram renders a child-linked composition. In reference mode only
// the root's own nodes appear, with each child-workflow call drawn as a
// subroutine node; in subgraph mode every discovered workflow gets its own
// subgraph group; in inline mode the root's call sites are rendered with
// each directly-called child's own nodes spliced in after its
// child-workflow marker, via the same childlinker.SpliceInline g.RootPaths
// was enumerated from, so the diagram and the path list stay in lockstep.
func ChildDiagram(g *childlinker.Graph, cfg config.Configuration) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	switch cfg.ChildWorkflowExpansion {
	case config.ChildSubgraph:
		b.WriteString(fmt.Sprintf("subgraph %s\n", sanitizeID(g.Root.Name)))
		emitWorkflowBody(&b, g.Root.CallSites, g.Root.SignalHandlers, cfg, sanitizeID(g.Root.Name)+"_")
		b.WriteString("end\n")
		for _, name := range g.Order {
			child := g.Workflows[name]
			b.WriteString(fmt.Sprintf("subgraph %s\n", sanitizeID(child.Name)))
			emitWorkflowBody(&b, child.CallSites, child.SignalHandlers, cfg, sanitizeID(child.Name)+"_")
			b.WriteString("end\n")
		}
	case config.ChildInline:
		nodes, handlers, _ := childlinker.SpliceInline(g.Root, g.Workflows)
		emitWorkflowBody(&b, nodes, handlers, cfg, "")
	default: // config.ChildReference
		emitWorkflowBody(&b, g.Root.CallSites, g.Root.SignalHandlers, cfg, "")
	}

	emitStyles(&b, g.Root, g.Workflows)
	return b.String()
}

// SignalDiagram renders a workflow alongside every peer workflow its
// external-signal sends resolved against. In subgraph mode (the default)
// each workflow gets its own subgraph group; in unified mode every node
// from every workflow is emitted into one flat flowchart with no subgraph
// wrappers, per cfg.SignalVisualizationMode. Either way cross-workflow
// edges are dashed, one per resolved (or unresolved) signal.
func SignalDiagram(root *domain.Workflow, peers map[string]*domain.Workflow, res *signallinker.Result, cfg config.Configuration) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	unified := cfg.SignalVisualizationMode == config.SignalVisUnified
	emitGroup := func(wf *domain.Workflow) {
		prefix := sanitizeID(wf.Name) + "_"
		if unified {
			emitWorkflowBody(&b, wf.CallSites, wf.SignalHandlers, cfg, prefix)
			return
		}
		b.WriteString(fmt.Sprintf("subgraph %s\n", sanitizeID(wf.Name)))
		emitWorkflowBody(&b, wf.CallSites, wf.SignalHandlers, cfg, prefix)
		b.WriteString("end\n")
	}

	emitGroup(root)

	emitted := map[string]bool{}
	anyUnresolved := false
	for _, n := range root.CallSites {
		send, ok := n.(*domain.ExternalSignalSend)
		if !ok {
			continue
		}
		targetName, resolved := res.Resolved[send.OrderIndex]
		if resolved {
			if peer, ok := peers[targetName]; ok && !emitted[targetName] {
				emitGroup(peer)
				emitted[targetName] = true
			}
			sourceID := sanitizeID(root.Name) + "_ext_sig_" + sanitizeID(send.SignalName)
			destID := sanitizeID(targetName) + "_signal_" + sanitizeID(send.SignalName)
			b.WriteString(fmt.Sprintf("%s -.%s.-> %s\n", sourceID, send.SignalName, destID))
			continue
		}
		sourceID := sanitizeID(root.Name) + "_ext_sig_" + sanitizeID(send.SignalName)
		b.WriteString(fmt.Sprintf("%s -.%s.-> %s[/?/]\n", sourceID, send.SignalName, unresolvedSentinelID))
		b.WriteString(fmt.Sprintf("class %s unresolvedPeer\n", unresolvedSentinelID))
		anyUnresolved = true
	}

	allWorkflows := map[string]*domain.Workflow{root.Name: root}
	for k, v := range peers {
		allWorkflows[k] = v
	}
	emitStyles(&b, root, allWorkflows)
	if anyUnresolved {
		b.WriteString(styleUnresolvedPeer + "\n")
	}
	return b.String()
}

// emitWorkflowBody writes node declarations and sequential edges for nodes
// and signalHandlers, prefixing every node ID with idPrefix so multiple
// workflows (or, in inline mode, a spliced synthetic sequence) can coexist
// in one diagram without ID collisions.
func emitWorkflowBody(b *strings.Builder, nodes []domain.GraphNode, signalHandlers []string, cfg config.Configuration, idPrefix string) {
	startID := idPrefix + "s"
	endID := idPrefix + "e"
	b.WriteString(fmt.Sprintf("%s((%s))\n", startID, cfg.StartNodeLabel))
	b.WriteString(fmt.Sprintf("%s((%s))\n", endID, cfg.EndNodeLabel))

	ids := make([]string, len(nodes))
	for i, n := range nodes {
		id := idPrefix + nodeID(n)
		ids[i] = id
		b.WriteString(nodeDecl(id, n, cfg))
		if n.Kind() == domain.KindExternalSignal {
			b.WriteString(fmt.Sprintf("class %s externalSignal\n", id))
		}
	}
	for _, name := range signalHandlers {
		id := idPrefix + "signal_" + sanitizeID(name)
		label := displayLabel(name, cfg)
		b.WriteString(fmt.Sprintf("%s{{%s}}\n", id, label))
		b.WriteString(fmt.Sprintf("class %s signalHandler\n", id))
	}

	prev := startID
	for i, n := range nodes {
		emitEdge(b, prev, ids[i], n, cfg)
		prev = ids[i]
	}
	b.WriteString(fmt.Sprintf("%s --> %s\n", prev, endID))
}

func emitEdge(b *strings.Builder, from, to string, n domain.GraphNode, cfg config.Configuration) {
	switch n.Kind() {
	case domain.KindDecision:
		b.WriteString(fmt.Sprintf("%s -- %s --> %s\n", from, cfg.DecisionFalseLabel, to))
		b.WriteString(fmt.Sprintf("%s -- %s --> %s\n", from, cfg.DecisionTrueLabel, to))
	case domain.KindWait:
		b.WriteString(fmt.Sprintf("%s -- %s --> %s\n", from, cfg.SignalSuccessLabel, to))
		b.WriteString(fmt.Sprintf("%s -- %s --> %s\n", from, cfg.SignalTimeoutLabel, to))
	default:
		b.WriteString(fmt.Sprintf("%s --> %s\n", from, to))
	}
}

func nodeDecl(id string, n domain.GraphNode, cfg config.Configuration) string {
	label := displayLabel(n.Label(), cfg)
	switch n.Kind() {
	case domain.KindActivity:
		return fmt.Sprintf("%s[%s]\n", id, label)
	case domain.KindDecision:
		return fmt.Sprintf("%s{%s}\n", id, n.Label())
	case domain.KindWait:
		return fmt.Sprintf("%s{{%s}}\n", id, label)
	case domain.KindChildWorkflow:
		return fmt.Sprintf("%s[[%s]]\n", id, label)
	case domain.KindExternalSignal:
		send := n.(*domain.ExternalSignalSend)
		return fmt.Sprintf("%s[/Signal '%s' to %s\\]\n", id, send.SignalName, send.TargetPattern)
	default:
		return fmt.Sprintf("%s[%s]\n", id, label)
	}
}

func nodeID(n domain.GraphNode) string {
	switch v := n.(type) {
	case *domain.ActivityCall:
		return sanitizeID(v.DisplayName)
	case *domain.DecisionPoint:
		// spec.md §9: decision IDs derive from a stable hash of the label,
		// not source order, since the ID itself appears in rendered output
		// and must stay reproducible across runs.
		return fmt.Sprintf("d%d", v.ID)
	case *domain.WaitPoint:
		return sanitizeID(v.Text)
	case *domain.ChildWorkflowCall:
		return sanitizeID(v.TargetName)
	case *domain.ExternalSignalSend:
		return "ext_sig_" + sanitizeID(v.SignalName)
	default:
		return fmt.Sprintf("n%d", n.Order())
	}
}

func displayLabel(identifier string, cfg config.Configuration) string {
	if cfg.SplitNamesByWords {
		return names.Humanize(identifier)
	}
	return identifier
}

func sanitizeID(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func emitStyles(b *strings.Builder, root *domain.Workflow, others map[string]*domain.Workflow) {
	hasHandler := len(root.SignalHandlers) > 0
	hasExternal := false
	for _, n := range root.CallSites {
		if n.Kind() == domain.KindExternalSignal {
			hasExternal = true
		}
	}
	for _, wf := range others {
		if len(wf.SignalHandlers) > 0 {
			hasHandler = true
		}
	}
	if hasHandler {
		b.WriteString(styleSignalHandler + "\n")
	}
	if hasExternal {
		b.WriteString(styleExternalSignal + "\n")
	}
}

// ChildPathList renders the root's path list, and — in subgraph mode —
// each linked child's own independently expanded path list underneath its
// own "<WorkflowName>:" heading, so child_workflow_expansion=subgraph's
// per-child path sets (childlinker.Graph.ChildPaths) reach the rendered
// output the same way the diagram's per-child subgraphs do. Reference and
// inline mode never populate ChildPaths, so this degrades to PathList on
// g.RootPaths alone.
func ChildPathList(g *childlinker.Graph, cfg config.Configuration) string {
	var b strings.Builder
	b.WriteString(PathList(g.RootPaths, cfg))
	for _, name := range g.Order {
		childPaths, ok := g.ChildPaths[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", name)
		b.WriteString(PathList(childPaths, cfg))
	}
	return b.String()
}

// PathList renders the "Execution Paths (N total):" section.
func PathList(paths []domain.Path, cfg config.Configuration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Execution Paths (%d total):\n", len(paths))
	for i, p := range paths {
		fmt.Fprintf(&b, "Path %d: %s", i+1, cfg.StartNodeLabel)
		for _, step := range p.Steps {
			label := displayLabel(step.Node.Label(), cfg)
			if domain.IsBranchPoint(step.Node) {
				label = fmt.Sprintf("%s[%s]", step.Node.Label(), outcomeDisplay(step.Outcome, cfg))
			}
			fmt.Fprintf(&b, " → %s", label)
		}
		fmt.Fprintf(&b, " → %s\n", cfg.EndNodeLabel)
	}
	return b.String()
}

func outcomeDisplay(outcome string, cfg config.Configuration) string {
	switch outcome {
	case domain.OutcomeTrue:
		return cfg.DecisionTrueLabel
	case domain.OutcomeFalse:
		return cfg.DecisionFalseLabel
	case domain.OutcomeSignaled:
		return cfg.SignalSuccessLabel
	case domain.OutcomeTimeout:
		return cfg.SignalTimeoutLabel
	default:
		return outcome
	}
}

// ValidationReport renders the "Validation Warnings:" section. It returns
// an empty string when there is nothing to report.
func ValidationReport(diags []validator.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Validation Warnings:\n")
	for _, d := range diags {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return b.String()
}
