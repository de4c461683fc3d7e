// Package locator finds workflow-annotated classes inside a parsed module,
// their single run method, and their declared signal handlers. Grounded on
// the spec's re-architecture guidance: runtime decorator magic becomes
// purely syntactic annotation-token matching, never reflection.
package locator

import (
	"github.com/smilemakc/workflowgraphs/internal/errs"
	"github.com/smilemakc/workflowgraphs/internal/pyast"
)

// Annotation spellings the locator recognises. This is a
// deliberately fixed, enumerated set — extending it is a conscious change,
// not a configuration option.
const (
	AnnotationWorkflowDefn   = "workflow.defn"
	AnnotationWorkflowRun    = "workflow.run"
	AnnotationWorkflowSignal = "workflow.signal"
)

// Located is one workflow-annotated class found in a module, with its run
// method and declared signal handlers identified but not yet classified.
type Located struct {
	Name           string
	Class          *pyast.ClassDef
	RunMethod      *pyast.FuncDef
	SignalHandlers []string
}

// Locate finds every @workflow.defn class in mod. It is an error for a
// module to contain none.
func Locate(mod *pyast.Module, path string) ([]*Located, error) {
	var found []*Located
	for _, stmt := range mod.Body {
		class, ok := stmt.(*pyast.ClassDef)
		if !ok {
			continue
		}
		if !hasAnnotation(class.Decorators, AnnotationWorkflowDefn) {
			continue
		}
		loc, err := locateOne(class, path)
		if err != nil {
			return nil, err
		}
		found = append(found, loc)
	}
	if len(found) == 0 {
		return nil, errs.NewParseError(path, 0, "no workflow definition found",
			"annotate a class with @workflow.defn", nil)
	}
	return found, nil
}

func locateOne(class *pyast.ClassDef, path string) (*Located, error) {
	var runMethod *pyast.FuncDef
	var signalHandlers []string

	for _, stmt := range class.Body {
		fn, ok := stmt.(*pyast.FuncDef)
		if !ok {
			continue
		}
		if hasAnnotation(fn.Decorators, AnnotationWorkflowRun) {
			if runMethod != nil {
				return nil, errs.NewParseError(path, fn.Pos.Line,
					"class "+class.Name+" declares more than one @workflow.run method",
					"keep exactly one @workflow.run method per workflow class", nil)
			}
			runMethod = fn
		}
		if hasAnnotation(fn.Decorators, AnnotationWorkflowSignal) {
			signalHandlers = append(signalHandlers, fn.Name)
		}
	}

	if runMethod == nil {
		return nil, errs.NewParseError(path, class.Pos.Line,
			"class "+class.Name+" has no @workflow.run method",
			"add a method annotated @workflow.run", nil)
	}

	return &Located{
		Name:           class.Name,
		Class:          class,
		RunMethod:      runMethod,
		SignalHandlers: signalHandlers,
	}, nil
}

func hasAnnotation(decorators []*pyast.Decorator, dottedName string) bool {
	for _, d := range decorators {
		if d.DottedName == dottedName {
			return true
		}
	}
	return false
}
