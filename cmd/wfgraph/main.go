// Command wfgraph is a thin CLI wrapper around the workflowgraphs library.
// Grounded on cmd/server/main.go's flag-parsing and structured-logging
// shape, trimmed to a one-shot analysis run: there is no listener to hold
// open and nothing to shut down gracefully.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/smilemakc/workflowgraphs"
	"github.com/smilemakc/workflowgraphs/internal/config"
	"github.com/smilemakc/workflowgraphs/internal/logging"
)

func main() {
	var (
		path                = flag.String("path", "", "Path to the workflow source file (required)")
		mode                = flag.String("mode", "workflow", "Analysis mode: workflow, child-graph, signal-graph")
		searchDirs          = flag.String("search-dirs", "", "Comma-separated directories to search for child/peer workflows")
		outputFormat        = flag.String("output-format", string(config.OutputFull), "diagram-only, paths-only, or full")
		outputFile          = flag.String("output-file", "", "Optional path to also write the rendered output to")
		splitNames          = flag.Bool("split-names", true, "Humanize identifiers into space-separated labels")
		maxDecisionPoints   = flag.Int("max-decision-points", 10, "Safety cap on the number of branch points per workflow")
		maxPaths            = flag.Int("max-paths", 1024, "Safety cap on the number of projected execution paths")
		suppressValidation  = flag.Bool("suppress-validation", false, "Skip the validation report entirely")
		childExpansion      = flag.String("child-expansion", string(config.ChildReference), "reference, inline, or subgraph")
		signalStrategy      = flag.String("signal-strategy", string(config.SignalByName), "by-name, explicit, or hybrid")
		signalVisualization = flag.String("signal-visualization", string(config.SignalVisSubgraph), "subgraph or unified")
		signalDepth         = flag.Int("signal-discovery-depth", 10, "Max BFS depth when discovering peer workflows for signal linking")
	)
	flag.Parse()

	log := logging.New("wfgraph", os.Stderr)

	if *path == "" {
		log.Error().Msg("-path is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := workflowgraphs.NewConfigurationBuilder().
		SplitNamesByWords(*splitNames).
		MaxDecisionPoints(*maxDecisionPoints).
		MaxPaths(*maxPaths).
		SuppressValidation(*suppressValidation).
		OutputFormat(config.OutputFormat(*outputFormat)).
		GraphOutputFile(*outputFile).
		ChildWorkflowExpansion(config.ChildExpansionMode(*childExpansion)).
		SignalResolutionStrategy(config.SignalResolutionStrategy(*signalStrategy)).
		SignalVisualizationMode(config.SignalVisualizationMode(*signalVisualization)).
		SignalMaxDiscoveryDepth(*signalDepth).
		Build()
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(2)
	}

	dirs := splitNonEmpty(*searchDirs)

	var out string
	switch *mode {
	case "workflow":
		out, err = workflowgraphs.AnalyzeWorkflow(*path, cfg)
	case "child-graph":
		out, err = workflowgraphs.AnalyzeWorkflowGraph(*path, dirs, cfg)
	case "signal-graph":
		out, err = workflowgraphs.AnalyzeSignalGraph(*path, dirs, cfg)
	default:
		log.Error().Str("mode", *mode).Msg("unknown mode")
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Msg("analysis failed")
		os.Exit(1)
	}

	fmt.Println(out)
}

func splitNonEmpty(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
