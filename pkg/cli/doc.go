// Package cli implements the command-line interface for the evalmerge tool.
//
// # Overview
//
// The evalmerge CLI discovers evaluation result files and consolidates
// batches of evaluation logs into a single statistics file. It is designed
// for training and benchmark pipelines that scatter evaluation*.yaml files
// across run directories.
//
// # Commands
//
// find - Discover evaluation files:
//
//	evalmerge find <root> [--pattern GLOB] [--output FILE] [--report-format yaml|json|table]
//
// Recursively walks the root directory and reports every regular file whose
// base name matches the pattern (default: evaluation*.yaml). The report
// defaults to stdout in YAML format.
//
// merge - Merge explicit input files:
//
//	evalmerge merge --format 0 --out stats.csv [--nested PATH]... [--loader yaml|json-lastrow] [--force] <input>...
//
// Loads every input file and combines the documents according to the format
// tag, writing consolidated mean/std statistics as CSV to --out.
//
// find-and-merge - Discover then merge in one run (format tag 2):
//
//	evalmerge find-and-merge <root> <destination>
//
// find-runs-and-merge - Same discovery, format tag 1:
//
//	evalmerge find-runs-and-merge <root> <destination>
//
// Both accept --format to override the preset tag, and --tool to invoke an
// external merge binary instead of the built-in engine; the batch is always
// handed over in a single invocation.
//
// # Exit Codes
//
//	0  Success
//	1  General error (merge failure, I/O error)
//	2  Invalid input (root missing or not a directory, bad arguments)
//	N  Exit code of the external merge tool, propagated verbatim
//
// # Environment Variables
//
//	LOG_LEVEL  Set logging verbosity (debug, info, warn, error)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized packages:
//   - pkg/discover - evaluation file discovery
//   - pkg/merger - merge engine and loaders
//   - pkg/pipeline - discover-then-merge orchestration
//   - pkg/serializer - report output formatting
//   - pkg/logging - structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/evalmerge/pkg/cli.version=1.0.0'"
package cli
