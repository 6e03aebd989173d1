/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/evalmerge/pkg/discover"
	"github.com/NVIDIA/evalmerge/pkg/errors"
	"github.com/NVIDIA/evalmerge/pkg/merger"
	"github.com/NVIDIA/evalmerge/pkg/pipeline"
)

func findMergeCmd() *cli.Command {
	return newFindMergeCommand(
		"find-and-merge",
		"Discover evaluation files and merge them with format tag 2",
		merger.FormatColumns,
	)
}

func findRunsMergeCmd() *cli.Command {
	return newFindMergeCommand(
		"find-runs-and-merge",
		"Discover evaluation files and merge them with format tag 1",
		merger.FormatNearest,
	)
}

// newFindMergeCommand builds one of the two discover-then-merge entry
// points. They share one implementation and differ only in the preset
// format tag forwarded to the merge operation.
func newFindMergeCommand(cmdName, usage string, preset merger.FormatTag) *cli.Command {
	return &cli.Command{
		Name:                  cmdName,
		EnableShellCompletion: true,
		Usage:                 usage,
		ArgsUsage:             "<root> <destination>",
		Description: fmt.Sprintf(`Recursively discover evaluation files (default pattern: %s) under the root
directory, collect their paths, and merge the complete batch into the
destination in a single operation.

If no files match, the empty batch is still forwarded to the merge
operation, which owns the outcome.

# Examples

  evalmerge %s ./results stats.csv

Use an external merge tool instead of the built-in engine:
  evalmerge %s ./results stats.csv --tool merge_logs

The external tool is invoked once with the full batch as an explicit
argument list; its exit code is propagated verbatim.`,
			discover.DefaultPattern, cmdName, cmdName),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   int(preset),
				Usage:   "Format tag forwarded to the merge operation",
			},
			&cli.StringFlag{
				Name:    "tool",
				Usage:   "Path to an external merge tool binary to invoke instead of the built-in engine",
				Sources: cli.EnvVars("EVALMERGE_TOOL"),
			},
			patternFlag(),
			nestedFlag(),
			loaderFlag(),
			forceFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return errors.New(errors.ErrCodeInvalidInput,
					"expects exactly two arguments: <root> <destination>")
			}

			fm := &pipeline.FindMerge{
				Root:         cmd.Args().Get(0),
				Destination:  cmd.Args().Get(1),
				Format:       merger.FormatTag(cmd.Int("format")),
				ExternalTool: cmd.String("tool"),
				Finder:       discover.NewFinder(discover.WithPattern(cmd.String("pattern"))),
				Merger: merger.NewMerger(
					merger.WithLoader(cmd.String("loader")),
					merger.WithFeatures(cmd.StringSlice("nested")),
					merger.WithOverwrite(cmd.Bool("force")),
				),
			}
			return fm.Run(ctx)
		},
	}
}
