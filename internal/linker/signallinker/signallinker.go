// Package signallinker resolves a workflow's external-signal sends to the
// peer workflows that declare a matching handler, under the three
// resolution strategies spec.md §4.8 describes. Grounded on
// internal/engine/graph.go's Kahn-style topological queue, reused here in
// its simplest shape as a depth-bounded breadth-first frontier walk rather
// than a full topological order, since signal discovery has no ordering
// requirement beyond the configured depth bound.
package signallinker

import (
	"sort"
	"strings"

	"github.com/smilemakc/workflowgraphs/internal/config"
	"github.com/smilemakc/workflowgraphs/internal/domain"
	"github.com/smilemakc/workflowgraphs/internal/linker"
)

// Result is what Resolve discovered about root's external-signal sends,
// consumed directly by validator.SignalResolution and by the renderer's
// signal-graph edges.
type Result struct {
	// Resolved maps a signal send's order index to the single workflow
	// name it was matched to.
	Resolved map[int]string
	// Unresolved lists signal names with no discovered handler.
	Unresolved []string
	// Ambiguous maps a signal name to every workflow name that declares a
	// matching handler, when more than one does.
	Ambiguous map[string][]string
}

// Resolve walks root's external-signal sends and matches each against the
// workflows reachable within cfg.SignalMaxDiscoveryDepth hops of root in
// idx, following child-workflow and signal-target edges (literal or
// "{*}"-masked) outward.
func Resolve(root *domain.Workflow, idx *linker.Index, cfg config.Configuration) *Result {
	candidates := frontier(root, idx, cfg.SignalMaxDiscoveryDepth)

	res := &Result{
		Resolved:  map[int]string{},
		Ambiguous: map[string][]string{},
	}

	for _, n := range root.CallSites {
		send, ok := n.(*domain.ExternalSignalSend)
		if !ok {
			continue
		}

		var matches []string
		switch cfg.SignalResolutionStrategy {
		case config.SignalExplicit:
			if name, ok := cfg.SignalExplicitMap[send.TargetPattern]; ok {
				matches = []string{name}
			}
		case config.SignalHybrid:
			if name, ok := cfg.SignalExplicitMap[send.TargetPattern]; ok {
				matches = []string{name}
			} else {
				matches = matchByName(send, candidates)
			}
		default: // config.SignalByName
			matches = matchByName(send, candidates)
		}

		switch len(matches) {
		case 0:
			res.Unresolved = append(res.Unresolved, send.SignalName)
		case 1:
			res.Resolved[send.OrderIndex] = matches[0]
		default:
			sort.Strings(matches)
			res.Ambiguous[send.SignalName] = matches
		}
	}

	return res
}

// frontier performs a depth-bounded breadth-first walk from root, following
// child-workflow calls and external-signal targets, and returns every
// workflow reached, root included. A masked signal target ("{*}" pattern)
// discovers every workflow in idx whose name matches the mask, since the
// sender does not name one literal peer; a literal target discovers at most
// one. This is the one place pattern matching belongs in signal discovery:
// the by-name resolution strategy itself matches on signal name alone
// (matchByName), never on the target pattern.
func frontier(root *domain.Workflow, idx *linker.Index, maxDepth int) []*domain.Workflow {
	visited := map[string]*domain.Workflow{root.Name: root}
	current := []*domain.Workflow{root}

	for depth := 0; depth < maxDepth && len(current) > 0; depth++ {
		var next []*domain.Workflow
		discover := func(name string, wf *domain.Workflow) {
			if _, seen := visited[name]; seen {
				return
			}
			visited[name] = wf
			next = append(next, wf)
		}

		for _, wf := range current {
			for _, n := range wf.CallSites {
				switch t := n.(type) {
				case *domain.ChildWorkflowCall:
					if target, found := idx.ByName[t.TargetName]; found {
						discover(t.TargetName, target)
					}
				case *domain.ExternalSignalSend:
					if t.TargetPattern == domain.DynamicTarget {
						continue
					}
					if !strings.Contains(t.TargetPattern, "{*}") {
						if target, found := idx.ByName[t.TargetPattern]; found {
							discover(t.TargetPattern, target)
						}
						continue
					}
					for name, target := range idx.ByName {
						if patternMatches(t.TargetPattern, name) {
							discover(name, target)
						}
					}
				}
			}
		}
		current = next
	}

	out := make([]*domain.Workflow, 0, len(visited))
	for _, wf := range visited {
		out = append(out, wf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// matchByName finds every candidate workflow that declares a handler for
// send's signal name. Per the by-name strategy, only the signal name
// matters: the target pattern plays no part here (that comparison belongs
// to the explicit strategy's pattern-to-workflow mapping).
func matchByName(send *domain.ExternalSignalSend, candidates []*domain.Workflow) []string {
	var matches []string
	for _, wf := range candidates {
		if hasHandler(wf, send.SignalName) {
			matches = append(matches, wf.Name)
		}
	}
	return matches
}

func hasHandler(wf *domain.Workflow, signalName string) bool {
	for _, h := range wf.SignalHandlers {
		if h == signalName {
			return true
		}
	}
	return false
}

// patternMatches reports whether name matches pattern, where pattern may
// contain one or more "{*}" masks standing in for an arbitrary non-empty
// run of characters. The dynamic sentinel never matches anything, since a
// target computed at runtime cannot be resolved statically.
func patternMatches(pattern, name string) bool {
	if pattern == domain.DynamicTarget {
		return false
	}
	if !strings.Contains(pattern, "{*}") {
		return pattern == name
	}

	segments := strings.Split(pattern, "{*}")
	rest := name
	for i, seg := range segments {
		switch {
		case i == 0:
			if !strings.HasPrefix(rest, seg) {
				return false
			}
			rest = rest[len(seg):]
		case i == len(segments)-1:
			if !strings.HasSuffix(rest, seg) {
				return false
			}
			matched := rest[:len(rest)-len(seg)]
			return len(matched) > 0
		default:
			idx := strings.Index(rest, seg)
			if idx <= 0 {
				return false
			}
			rest = rest[idx+len(seg):]
		}
	}
	return true
}
