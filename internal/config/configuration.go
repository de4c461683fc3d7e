// Package config holds the library's single immutable Configuration value
// and its chained builder, grounded on pkg/workflow.DefinitionBuilder's
// builder idiom (Name/Version/AddTrigger/...Build), generalized from
// assembling a workflow definition to assembling analysis options so that
// a typo surfaces as a *errs.ConfigError at Build() time, never a panic.
package config

import (
	"github.com/smilemakc/workflowgraphs/internal/errs"
)

// Configuration is the immutable, shareable value threaded through every
// pipeline stage. Every field listed in the options surface is present;
// defaults match the documented behaviour when a Builder method is never
// called.
type Configuration struct {
	SplitNamesByWords bool

	StartNodeLabel string
	EndNodeLabel   string

	DecisionTrueLabel  string
	DecisionFalseLabel string

	SignalSuccessLabel string
	SignalTimeoutLabel string

	MaxDecisionPoints int
	MaxPaths          int

	SuppressValidation      bool
	IncludeValidationReport bool
	IncludePathList         bool
	OutputFormat            OutputFormat
	GraphOutputFile         string

	ChildWorkflowExpansion ChildExpansionMode

	SignalResolutionStrategy SignalResolutionStrategy
	SignalVisualizationMode  SignalVisualizationMode
	SignalMaxDiscoveryDepth  int
	WarnUnresolvedSignals    bool
	// SignalExplicitMap backs the "explicit" and "hybrid" resolution
	// strategies: a configured mapping of target patterns to workflow
	// names, consulted before falling back to by-name matching.
	SignalExplicitMap map[string]string
}

// Builder assembles a Configuration through chained calls, mirroring
// pkg/workflow.DefinitionBuilder. Obtain one from NewBuilder, whose Build()
// returns the defaults from spec.md §3 when nothing is overridden; the zero
// value carries no defaults and fails Build() on max_decision_points.
type Builder struct {
	c Configuration
}

// NewBuilder returns a Builder seeded with every documented default.
func NewBuilder() *Builder {
	return &Builder{c: Configuration{
		SplitNamesByWords:       true,
		StartNodeLabel:          "Start",
		EndNodeLabel:            "End",
		DecisionTrueLabel:       "yes",
		DecisionFalseLabel:      "no",
		SignalSuccessLabel:      "Signaled",
		SignalTimeoutLabel:      "Timeout",
		MaxDecisionPoints:       10,
		MaxPaths:                1024,
		SuppressValidation:      false,
		IncludeValidationReport: true,
		IncludePathList:         true,
		OutputFormat:            OutputFull,
		ChildWorkflowExpansion:  ChildReference,
		SignalResolutionStrategy: SignalByName,
		SignalVisualizationMode:  SignalVisSubgraph,
		SignalMaxDiscoveryDepth:  10,
		WarnUnresolvedSignals:    true,
		SignalExplicitMap:        map[string]string{},
	}}
}

func (b *Builder) SplitNamesByWords(v bool) *Builder { b.c.SplitNamesByWords = v; return b }

func (b *Builder) StartNodeLabel(v string) *Builder { b.c.StartNodeLabel = v; return b }
func (b *Builder) EndNodeLabel(v string) *Builder   { b.c.EndNodeLabel = v; return b }

func (b *Builder) DecisionTrueLabel(v string) *Builder  { b.c.DecisionTrueLabel = v; return b }
func (b *Builder) DecisionFalseLabel(v string) *Builder { b.c.DecisionFalseLabel = v; return b }

func (b *Builder) SignalSuccessLabel(v string) *Builder { b.c.SignalSuccessLabel = v; return b }
func (b *Builder) SignalTimeoutLabel(v string) *Builder { b.c.SignalTimeoutLabel = v; return b }

func (b *Builder) MaxDecisionPoints(v int) *Builder { b.c.MaxDecisionPoints = v; return b }
func (b *Builder) MaxPaths(v int) *Builder          { b.c.MaxPaths = v; return b }

func (b *Builder) SuppressValidation(v bool) *Builder      { b.c.SuppressValidation = v; return b }
func (b *Builder) IncludeValidationReport(v bool) *Builder { b.c.IncludeValidationReport = v; return b }
func (b *Builder) IncludePathList(v bool) *Builder         { b.c.IncludePathList = v; return b }
func (b *Builder) OutputFormat(v OutputFormat) *Builder    { b.c.OutputFormat = v; return b }
func (b *Builder) GraphOutputFile(v string) *Builder       { b.c.GraphOutputFile = v; return b }

func (b *Builder) ChildWorkflowExpansion(v ChildExpansionMode) *Builder {
	b.c.ChildWorkflowExpansion = v
	return b
}

func (b *Builder) SignalResolutionStrategy(v SignalResolutionStrategy) *Builder {
	b.c.SignalResolutionStrategy = v
	return b
}

func (b *Builder) SignalVisualizationMode(v SignalVisualizationMode) *Builder {
	b.c.SignalVisualizationMode = v
	return b
}

func (b *Builder) SignalMaxDiscoveryDepth(v int) *Builder {
	b.c.SignalMaxDiscoveryDepth = v
	return b
}

func (b *Builder) WarnUnresolvedSignals(v bool) *Builder { b.c.WarnUnresolvedSignals = v; return b }

func (b *Builder) SignalExplicitMapping(pattern, workflow string) *Builder {
	if b.c.SignalExplicitMap == nil {
		b.c.SignalExplicitMap = map[string]string{}
	}
	b.c.SignalExplicitMap[pattern] = workflow
	return b
}

// Build validates every mode enum and positive-int field, returning a
// *errs.ConfigError before analysis begins rather than failing later.
func (b *Builder) Build() (Configuration, error) {
	c := b.c
	if c.MaxDecisionPoints <= 0 {
		return Configuration{}, errs.NewConfigError("max_decision_points", "must be positive", "set max_decision_points to a positive integer")
	}
	if c.MaxPaths <= 0 {
		return Configuration{}, errs.NewConfigError("max_paths", "must be positive", "set max_paths to a positive integer")
	}
	if c.SignalMaxDiscoveryDepth <= 0 {
		return Configuration{}, errs.NewConfigError("signal_max_discovery_depth", "must be positive", "set signal_max_discovery_depth to a positive integer")
	}
	if !c.OutputFormat.IsValid() {
		return Configuration{}, errs.NewConfigError("output_format", "unknown mode "+string(c.OutputFormat), "use one of diagram-only, paths-only, full")
	}
	if !c.ChildWorkflowExpansion.IsValid() {
		return Configuration{}, errs.NewConfigError("child_workflow_expansion", "unknown mode "+string(c.ChildWorkflowExpansion), "use one of reference, inline, subgraph")
	}
	if !c.SignalResolutionStrategy.IsValid() {
		return Configuration{}, errs.NewConfigError("signal_resolution_strategy", "unknown mode "+string(c.SignalResolutionStrategy), "use one of by-name, explicit, hybrid")
	}
	if !c.SignalVisualizationMode.IsValid() {
		return Configuration{}, errs.NewConfigError("signal_visualization_mode", "unknown mode "+string(c.SignalVisualizationMode), "use one of subgraph, unified")
	}
	return c, nil
}

// Clone returns a Builder seeded from c, letting a caller (e.g. one deriving
// per-child configurations) override a handful of fields
// without repeating every default field-by-field.
func (c Configuration) Clone() *Builder {
	cp := c
	cp.SignalExplicitMap = make(map[string]string, len(c.SignalExplicitMap))
	for k, v := range c.SignalExplicitMap {
		cp.SignalExplicitMap[k] = v
	}
	return &Builder{c: cp}
}
