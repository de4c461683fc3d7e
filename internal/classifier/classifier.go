// Package classifier walks a workflow's run-method body in source order
// and tags every relevant call site, following the dispatch table in
// spec.md §4.3. Grounded on internal/engine/graph_builder.go's two-pass
// "nodes then relationships" structure: classification here is the
// node-extraction pass, with the branch-point engine as the relationship
// pass. The dispatch-table shape is independently corroborated by the
// call-site tagging design in the ikari-pl-go-temporalio-analyzer example
// files (not copied — that example lives under other_examples/ and cannot
// be the teacher).
package classifier

import (
	"github.com/google/uuid"

	"github.com/smilemakc/workflowgraphs/internal/domain"
	"github.com/smilemakc/workflowgraphs/internal/errs"
	"github.com/smilemakc/workflowgraphs/internal/locator"
	"github.com/smilemakc/workflowgraphs/internal/names"
	"github.com/smilemakc/workflowgraphs/internal/pyast"
)

// Canonical dotted call targets. A deliberately fixed, enumerated set, the
// same way locator's annotation spellings are: extending it is a conscious
// change, not a configuration option.
const (
	callExecuteActivity      = "workflow.execute_activity"
	callExecuteChildWorkflow = "workflow.execute_child_workflow"
	callToDecision           = "workflow.to_decision"
	callWaitCondition        = "workflow.wait_condition"
	signalAttr               = "signal"
)

// Classify walks loc's run method and produces the workflow's immutable
// call-site sequence. Encountering a loop, comprehension, exception
// handler, or a call through a dynamically computed target aborts with a
// *errs.UnsupportedConstructError; a decision/wait/signal helper invoked
// with a non-literal name or wrong arity aborts with a *errs.UsageError.
func Classify(loc *locator.Located, path string) (*domain.Workflow, error) {
	flat, err := flatten(loc.RunMethod.Body, path)
	if err != nil {
		return nil, err
	}

	wf := &domain.Workflow{
		ID:             uuid.New(),
		Name:           loc.Name,
		SourcePath:     path,
		RunMethodPos:   loc.RunMethod.Pos,
		SignalHandlers: loc.SignalHandlers,
	}

	order := 0
	for _, stmt := range flat {
		value, ok := statementValue(stmt)
		if !ok {
			continue
		}
		value = unwrapAwait(value)

		if compr, isCompr := value.(*pyast.Comprehension); isCompr {
			return nil, errs.NewUnsupportedConstructError(path, compr.Pos.Line, "comprehension",
				"rewrite the comprehension as an explicit sequence of calls")
		}

		call, ok := value.(*pyast.Call)
		if !ok {
			continue
		}

		node, skip, err := classifyCall(call, order, path)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		wf.CallSites = append(wf.CallSites, node)
		order++

		if wp, ok := node.(*domain.WaitPoint); ok {
			wf.WaitSignalNames = append(wf.WaitSignalNames, wp.Text)
		}
	}

	return wf, nil
}

// flatten walks the run method's statement tree in source order, descending
// into if/elif/else branches (their condition is never evaluated — both
// arms are flattened in place) and stopping short at the first loop or
// exception handler, which is the diagnostic itself. Comprehensions are
// rejected later, by Classify, when a statement's value is one.
func flatten(body []pyast.Stmt, path string) ([]pyast.Stmt, error) {
	var out []pyast.Stmt
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *pyast.ForStmt:
			return nil, errs.NewUnsupportedConstructError(path, s.Pos.Line, "loop",
				"rewrite the loop as an explicit, statically-enumerable sequence of calls")
		case *pyast.WhileStmt:
			return nil, errs.NewUnsupportedConstructError(path, s.Pos.Line, "loop",
				"rewrite the loop as an explicit, statically-enumerable sequence of calls")
		case *pyast.TryStmt:
			return nil, errs.NewUnsupportedConstructError(path, s.Pos.Line, "exception-handler",
				"move branch-relevant calls out of exception-driven control flow")
		case *pyast.IfStmt:
			thenStmts, err := flatten(s.Body, path)
			if err != nil {
				return nil, err
			}
			out = append(out, thenStmts...)
			elseStmts, err := flatten(s.Orelse, path)
			if err != nil {
				return nil, err
			}
			out = append(out, elseStmts...)
		default:
			out = append(out, stmt)
		}
	}
	return out, nil
}

func statementValue(stmt pyast.Stmt) (pyast.Expr, bool) {
	switch s := stmt.(type) {
	case *pyast.ExprStmt:
		return s.Value, true
	case *pyast.Assign:
		if s.Value == nil {
			return nil, false
		}
		return s.Value, true
	default:
		return nil, false
	}
}

func unwrapAwait(e pyast.Expr) pyast.Expr {
	if a, ok := e.(*pyast.Await); ok {
		return a.Value
	}
	return e
}

// classifyCall inspects one call expression against the dispatch table.
// skip is true for calls that are simply irrelevant to workflow control
// flow (an ordinary method call the classifier has no opinion about) or
// the platform's two-argument built-in wait, which is explicitly ignored.
func classifyCall(call *pyast.Call, order int, path string) (node domain.GraphNode, skip bool, err error) {
	dotted, resolvable := dottedFuncName(call.Func)

	switch {
	case resolvable && dotted == callExecuteActivity:
		return classifyActivity(call, order, path)
	case resolvable && dotted == callExecuteChildWorkflow:
		return classifyChildWorkflow(call, order, path)
	case resolvable && dotted == callToDecision:
		return classifyDecision(call, order, path)
	case resolvable && dotted == callWaitCondition:
		return classifyWait(call, order, path)
	}

	if attr, ok := call.Func.(*pyast.Attribute); ok && attr.Attr == signalAttr && !isWorkflowReceiver(attr.Value) {
		return classifyExternalSignal(call, order, path)
	}

	if !resolvable {
		return nil, false, errs.NewUnsupportedConstructError(path, call.Pos.Line, "dynamic-dispatch",
			"call the activity, decision, wait, or signal helper directly instead of through a computed reference")
	}

	// Any other statically-resolvable call (logging, local bookkeeping,
	// SDK calls outside the recognised set) carries no control-flow
	// meaning for this model and is simply not a graph node.
	return nil, true, nil
}

func classifyActivity(call *pyast.Call, order int, path string) (domain.GraphNode, bool, error) {
	if len(call.Args) < 1 {
		return nil, false, errs.NewUsageError(path, call.Pos.Line, callExecuteActivity,
			"requires at least one positional activity reference", "pass the activity function or Class.method as the first argument")
	}
	switch ref := call.Args[0].(type) {
	case *pyast.Name:
		return &domain.ActivityCall{DisplayName: ref.Id, OrderIndex: order}, false, nil
	case *pyast.Attribute:
		return &domain.ActivityCall{DisplayName: ref.Attr, OrderIndex: order}, false, nil
	default:
		return nil, false, errs.NewUnsupportedConstructError(path, call.Pos.Line, "dynamic-activity-target",
			"reference the activity by its function or Class.method name directly")
	}
}

func classifyChildWorkflow(call *pyast.Call, order int, path string) (domain.GraphNode, bool, error) {
	if len(call.Args) < 1 {
		return nil, false, errs.NewUsageError(path, call.Pos.Line, callExecuteChildWorkflow,
			"requires at least one positional child-workflow reference", "pass the workflow class, Class.run, or a literal workflow name")
	}
	switch ref := call.Args[0].(type) {
	case *pyast.Name:
		return &domain.ChildWorkflowCall{TargetName: ref.Id, OrderIndex: order}, false, nil
	case *pyast.Attribute:
		if ref.Attr == "run" {
			if base, ok := ref.Value.(*pyast.Name); ok {
				return &domain.ChildWorkflowCall{TargetName: base.Id, OrderIndex: order}, false, nil
			}
		}
		return nil, false, errs.NewUnsupportedConstructError(path, call.Pos.Line, "dynamic-child-workflow-target",
			"reference the child workflow by class, Class.run, or a literal name")
	case *pyast.Str:
		return &domain.ChildWorkflowCall{TargetName: ref.Value, OrderIndex: order}, false, nil
	case *pyast.FString:
		if lit, ok := fullyLiteral(ref); ok {
			return &domain.ChildWorkflowCall{TargetName: lit, OrderIndex: order}, false, nil
		}
		return nil, false, errs.NewUnsupportedConstructError(path, call.Pos.Line, "dynamic-child-workflow-target",
			"reference the child workflow by a literal name, not a formatted string with placeholders")
	default:
		return nil, false, errs.NewUnsupportedConstructError(path, call.Pos.Line, "dynamic-child-workflow-target",
			"reference the child workflow by class, Class.run, or a literal name")
	}
}

func classifyDecision(call *pyast.Call, order int, path string) (domain.GraphNode, bool, error) {
	if len(call.Args) < 2 {
		return nil, false, errs.NewUsageError(path, call.Pos.Line, callToDecision,
			"requires at least two positional arguments (condition, name)", "add the decision's literal name as the second argument")
	}
	label, ok := extractLiteralName(call.Args[1])
	if !ok {
		return nil, false, errs.NewUsageError(path, call.Pos.Line, callToDecision,
			"the decision name must be a literal string", "inline the decision name as a string literal")
	}
	return &domain.DecisionPoint{ID: names.StableID(label), Text: label, OrderIndex: order}, false, nil
}

func classifyWait(call *pyast.Call, order int, path string) (domain.GraphNode, bool, error) {
	switch len(call.Args) {
	case 2:
		// The platform's built-in two-argument wait is not a branch point
		// in this model.
		return nil, true, nil
	case 3:
		label, ok := extractLiteralName(call.Args[2])
		if !ok {
			return nil, false, errs.NewUsageError(path, call.Pos.Line, callWaitCondition,
				"the wait point's name must be a literal string", "inline the wait point's name as a string literal")
		}
		return &domain.WaitPoint{Text: label, OrderIndex: order}, false, nil
	default:
		return nil, false, errs.NewUsageError(path, call.Pos.Line, callWaitCondition,
			"requires either two arguments (predicate, duration) or three (predicate, duration, name)",
			"pass exactly two or three positional arguments")
	}
}

func classifyExternalSignal(call *pyast.Call, order int, path string) (domain.GraphNode, bool, error) {
	if len(call.Args) < 1 {
		return nil, false, errs.NewUsageError(path, call.Pos.Line, "signal",
			"requires a literal signal name as the first argument", "pass the signal name as a string literal")
	}
	name, ok := extractLiteralName(call.Args[0])
	if !ok {
		return nil, false, errs.NewUsageError(path, call.Pos.Line, "signal",
			"the signal name must be a literal string", "inline the signal name as a string literal")
	}

	var targetExpr pyast.Expr
	if len(call.Args) >= 2 {
		targetExpr = call.Args[1]
	} else {
		for _, kw := range call.Keywords {
			switch kw.Arg {
			case "target_workflow_id", "workflow_id", "target":
				targetExpr = kw.Value
			}
		}
	}
	if targetExpr == nil {
		return nil, false, errs.NewUsageError(path, call.Pos.Line, "signal",
			"requires a target-workflow expression", "pass the target workflow id as the second argument")
	}

	return &domain.ExternalSignalSend{
		SignalName:    name,
		TargetPattern: extractTargetPattern(targetExpr),
		OrderIndex:    order,
	}, false, nil
}

func dottedFuncName(e pyast.Expr) (string, bool) {
	switch v := e.(type) {
	case *pyast.Name:
		return v.Id, true
	case *pyast.Attribute:
		base, ok := dottedFuncName(v.Value)
		if !ok {
			return "", false
		}
		return base + "." + v.Attr, true
	default:
		return "", false
	}
}

func isWorkflowReceiver(e pyast.Expr) bool {
	n, ok := e.(*pyast.Name)
	return ok && n.Id == "workflow"
}

// extractLiteralName requires e to reduce to a literal string with no
// embedded placeholders, per spec.md §4.3's name-extraction rule.
func extractLiteralName(e pyast.Expr) (string, bool) {
	switch v := e.(type) {
	case *pyast.Str:
		return v.Value, true
	case *pyast.FString:
		return fullyLiteral(v)
	default:
		return "", false
	}
}

func fullyLiteral(f *pyast.FString) (string, bool) {
	var s string
	for _, part := range f.Parts {
		if part.IsExpr {
			return "", false
		}
		s += part.Literal
	}
	return s, true
}

// extractTargetPattern implements spec.md §4.3's three-way target
// extraction: a literal string yields itself; a formatted string with a
// literal head and non-literal placeholders yields a pattern with each
// placeholder replaced by "{*}", preserving surrounding literal text (the
// resolved reading of spec.md §9's open question on mask granularity); any
// other expression yields the "<dynamic>" sentinel.
func extractTargetPattern(e pyast.Expr) string {
	switch v := e.(type) {
	case *pyast.Str:
		return v.Value
	case *pyast.FString:
		if lit, ok := fullyLiteral(v); ok {
			return lit
		}
		var s string
		for _, part := range v.Parts {
			if part.IsExpr {
				s += "{*}"
			} else {
				s += part.Literal
			}
		}
		return s
	default:
		return domain.DynamicTarget
	}
}

