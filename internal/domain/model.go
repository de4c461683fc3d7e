// Package domain holds the immutable metadata records the classifier
// produces and every later pipeline stage consumes read-only. Grounded on
// the teacher's aggregate-behind-interface shape (internal/domain/workflow.go),
// generalized from a mutable, repository-backed aggregate to a frozen
// record set built once per analysis call and discarded on return.
package domain

import (
	"github.com/google/uuid"

	"github.com/smilemakc/workflowgraphs/internal/pyast"
)

// NodeKind classifies a graph node by the call shape that produced it.
type NodeKind string

const (
	KindActivity       NodeKind = "activity"
	KindDecision       NodeKind = "decision"
	KindWait           NodeKind = "wait"
	KindChildWorkflow  NodeKind = "child_workflow"
	KindExternalSignal NodeKind = "external_signal"
)

// GraphNode is any call-site record the branch-point engine and renderer
// walk. Decision and Wait are the only branching kinds.
type GraphNode interface {
	Kind() NodeKind
	Order() int
	Label() string
}

// IsBranchPoint reports whether n introduces exactly two outcome options.
func IsBranchPoint(n GraphNode) bool {
	return n.Kind() == KindDecision || n.Kind() == KindWait
}

// ActivityCall is a direct or method-style activity dispatch.
type ActivityCall struct {
	DisplayName string
	OrderIndex  int
}

func (a *ActivityCall) Kind() NodeKind { return KindActivity }
func (a *ActivityCall) Order() int     { return a.OrderIndex }
func (a *ActivityCall) Label() string  { return a.DisplayName }

// DecisionPoint is a binary choice produced by the "to decision" helper.
type DecisionPoint struct {
	ID         uint32
	Text       string
	OrderIndex int
}

func (d *DecisionPoint) Kind() NodeKind { return KindDecision }
func (d *DecisionPoint) Order() int     { return d.OrderIndex }
func (d *DecisionPoint) Label() string  { return d.Text }

// WaitPoint is a binary timed wait produced by the "wait condition" helper.
// Unlike DecisionPoint, its rendered ID is the sanitized label itself (see
// the lexical table in spec.md §6), so it carries no separate stable-hash
// identity.
type WaitPoint struct {
	Text       string
	OrderIndex int
}

func (w *WaitPoint) Kind() NodeKind { return KindWait }
func (w *WaitPoint) Order() int     { return w.OrderIndex }
func (w *WaitPoint) Label() string  { return w.Text }

// ChildWorkflowCall is a synchronous spawn of another workflow.
type ChildWorkflowCall struct {
	TargetName string
	OrderIndex int
}

func (c *ChildWorkflowCall) Kind() NodeKind { return KindChildWorkflow }
func (c *ChildWorkflowCall) Order() int     { return c.OrderIndex }
func (c *ChildWorkflowCall) Label() string  { return c.TargetName }

// ExternalSignalSend is an asynchronous send to a named peer workflow.
// TargetPattern is a literal workflow name, a pattern containing one or
// more "{*}" masks, or the sentinel "<dynamic>".
type ExternalSignalSend struct {
	SignalName    string
	TargetPattern string
	OrderIndex    int
}

func (e *ExternalSignalSend) Kind() NodeKind { return KindExternalSignal }
func (e *ExternalSignalSend) Order() int     { return e.OrderIndex }
func (e *ExternalSignalSend) Label() string  { return e.SignalName }

// DynamicTarget is the sentinel recorded when an external-signal target
// cannot be reduced to a literal or masked pattern.
const DynamicTarget = "<dynamic>"

// UnsupportedConstruct records why classification of a workflow aborted.
type UnsupportedConstruct struct {
	KindTag string
	Path    string
	Line    int
	Reason  string
}

// Workflow is the immutable record produced once per discovered workflow
// class: its identity, every classified call site in source order, and the
// signal surface it exposes to peers.
type Workflow struct {
	// ID is an internal identity key assigned once per classified
	// workflow, used by the discovery index to disambiguate workflows
	// that happen to share a name across search directories. It never
	// appears in rendered output.
	ID              uuid.UUID
	Name            string
	SourcePath      string
	RunMethodPos    pyast.Pos
	CallSites       []GraphNode
	SignalHandlers  []string
	WaitSignalNames []string
}

// BranchCount returns the number of branching nodes (decisions + waits) in
// the workflow's call-site list.
func (w *Workflow) BranchCount() int {
	b := 0
	for _, n := range w.CallSites {
		if IsBranchPoint(n) {
			b++
		}
	}
	return b
}
