// Package errs is the library's error taxonomy. Every exported error type
// carries a human-readable suggestion and, where applicable, a source
// location, modeled on the teacher's ExecutionError/ValidationError/
// ConfigurationError family: small structs with Error()/Unwrap() and a
// matching constructor function, never bare fmt.Errorf strings.
package errs

import "fmt"

// ParseError reports that a source file could not be read or parsed, or
// that a workflow/run-method/class could not be located within it.
type ParseError struct {
	Path       string
	Line       int
	Message    string
	Suggestion string
	Cause      error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s:%d: %s (%s)", e.Path, e.Line, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("parse error in %s: %s (%s)", e.Path, e.Message, e.Suggestion)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func NewParseError(path string, line int, message, suggestion string, cause error) *ParseError {
	return &ParseError{Path: path, Line: line, Message: message, Suggestion: suggestion, Cause: cause}
}

// UnsupportedConstructError reports a call-site or statement shape that is
// recognised as control-flow-bearing but outside the supported set.
type UnsupportedConstructError struct {
	Path       string
	Line       int
	Kind       string
	Suggestion string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct %q at %s:%d (%s)", e.Kind, e.Path, e.Line, e.Suggestion)
}

func NewUnsupportedConstructError(path string, line int, kind, suggestion string) *UnsupportedConstructError {
	return &UnsupportedConstructError{Path: path, Line: line, Kind: kind, Suggestion: suggestion}
}

// UsageError reports a helper invoked with the wrong arity or a
// non-literal name argument.
type UsageError struct {
	Path       string
	Line       int
	Helper     string
	Message    string
	Suggestion string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage error for %s at %s:%d: %s (%s)", e.Helper, e.Path, e.Line, e.Message, e.Suggestion)
}

func NewUsageError(path string, line int, helper, message, suggestion string) *UsageError {
	return &UsageError{Path: path, Line: line, Helper: helper, Message: message, Suggestion: suggestion}
}

// GenerationError reports that a safety gate tripped or a rendering
// invariant was violated, with the structured context needed to explain it.
type GenerationError struct {
	Workflow       string
	BranchCount    int
	ProjectedPaths int
	Limit          int
	Message        string
	Suggestion     string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation error in workflow %q: %s (branch count %d, projected paths %d, limit %d) (%s)",
		e.Workflow, e.Message, e.BranchCount, e.ProjectedPaths, e.Limit, e.Suggestion)
}

func NewGenerationError(workflow, message, suggestion string, branchCount, projectedPaths, limit int) *GenerationError {
	return &GenerationError{
		Workflow:       workflow,
		BranchCount:    branchCount,
		ProjectedPaths: projectedPaths,
		Limit:          limit,
		Message:        message,
		Suggestion:     suggestion,
	}
}

// LinkageError reports that a target workflow could not be located, or
// that a cycle was detected while composing a multi-workflow graph.
type LinkageError struct {
	Workflow   string
	Chain      []string
	Message    string
	Suggestion string
}

func (e *LinkageError) Error() string {
	if len(e.Chain) > 0 {
		return fmt.Sprintf("linkage error for workflow %q: %s (chain: %v) (%s)", e.Workflow, e.Message, e.Chain, e.Suggestion)
	}
	return fmt.Sprintf("linkage error for workflow %q: %s (%s)", e.Workflow, e.Message, e.Suggestion)
}

func NewLinkageError(workflow, message, suggestion string, chain []string) *LinkageError {
	return &LinkageError{Workflow: workflow, Chain: chain, Message: message, Suggestion: suggestion}
}

// ConfigError reports an invalid configuration value, detected before
// analysis begins.
type ConfigError struct {
	Field      string
	Message    string
	Suggestion string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %q: %s (%s)", e.Field, e.Message, e.Suggestion)
}

func NewConfigError(field, message, suggestion string) *ConfigError {
	return &ConfigError{Field: field, Message: message, Suggestion: suggestion}
}
