package domain

import "github.com/google/uuid"

// Outcome names the two taken-branch labels a decision or wait point can
// record on a path; it is not a taxonomy of operations, only the render-
// time annotation for whichever side of the binary choice a path took.
const (
	OutcomeTrue     = "true"
	OutcomeFalse    = "false"
	OutcomeSignaled = "signaled"
	OutcomeTimeout  = "timeout"
)

// Step is one visited graph node in a concrete path, annotated with the
// outcome taken when the node is a branch point.
type Step struct {
	Node    GraphNode
	Outcome string // empty for non-branch nodes
}

// Path is an ordered sequence of graph nodes induced by a single outcome
// vector over a workflow's branch points. ID is an internal identity key,
// never rendered, that lets downstream tooling (e.g. a cache keyed on a
// specific enumerated path) reference one path without restating its
// outcome vector.
type Path struct {
	ID    uuid.UUID
	Steps []Step
}
