// Package merger consolidates batches of evaluation log files into a single
// CSV statistics file.
//
// # Overview
//
// A Merger loads every input file with a configurable loader, combines the
// documents according to an opaque integer format tag, and writes one mean
// and standard deviation column pair per collected series to the destination.
//
// # Format Tags
//
// Format 0 (FormatCollapse): each input is a mapping where every key points
// to a list of numbers. Key sets must match exactly across files. Lists are
// concatenated per key and collapsed into a single mean/std pair.
//
// Format 1 (FormatNearest): like format 0 but keys are integers (for example
// timesteps) and do not need to match exactly; every file must have the same
// number of keys, and for each key of the first file the closest key of each
// other file is selected.
//
// Format 2 (FormatColumns): like format 1, but each key holds rows of N
// columns. Statistics are computed per column, producing N mean/std pairs
// per key.
//
// Format 3 (FormatSteps): each input is a sequence of per-step documents.
// Nested feature selectors (comma-separated key paths) extract one scalar
// per step per file; the output holds one row per step with a mean/std pair
// per feature, preceded by a header row naming the features.
//
// # Loaders
//
// The yaml loader parses the whole file as a YAML document. The
// json-lastrow loader interprets the last non-blank line of the file as a
// JSON document, which suits append-only JSONL run logs.
//
// # Usage
//
//	m := merger.NewMerger(merger.WithOverwrite(true))
//	err := m.Merge(ctx, paths, merger.FormatColumns, "stats.csv")
package merger
