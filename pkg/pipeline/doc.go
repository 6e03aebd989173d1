// Package pipeline wires file discovery to the merge engine.
//
// # Overview
//
// A FindMerge run is strictly linear: discover matching files under the
// root, collect their paths, then invoke the merge operation exactly once
// with the complete batch. Batching is a contract, not an optimization:
// merging per file would change the semantics of the merge operation, which
// combines statistics across the whole batch.
//
// By default the merge runs in process through pkg/merger. Setting
// ExternalTool instead spawns the named binary once, passing the batch as
// an explicit argument list, and propagates its exit code unchanged.
//
// # Usage
//
//	fm := &pipeline.FindMerge{
//	    Root:        "/var/results",
//	    Destination: "stats.csv",
//	    Format:      merger.FormatColumns,
//	}
//	err := fm.Run(ctx)
package pipeline
