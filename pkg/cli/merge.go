/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/evalmerge/pkg/errors"
	"github.com/NVIDIA/evalmerge/pkg/merger"
)

func mergeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "merge",
		EnableShellCompletion: true,
		Usage:                 "Merge evaluation log files into one statistics file",
		ArgsUsage:             "<input>...",
		Description: `Merge multiple evaluation log files and save mean and standard deviation
statistics as CSV.

# Format Tags

Format 0: the input files contain dictionaries, where each key points to a
list of values. Lists of the different files are collapsed into a single
statistic. All keys must match.

Format 1: like format 0 but keys are integers, and they don't need to match
exactly; the closest entry is selected.

Format 2: like format 1, but each key holds rows with multiple statistics
that are combined per column.

Format 3: the input files are sequences of per-step records; --nested
selectors extract one scalar per step per file.

# Examples

Collapse keyed lists across runs:
  evalmerge merge --format 0 --out stats.csv run1/evaluation.yaml run2/evaluation.yaml

Merge per-step losses from JSONL run logs:
  evalmerge merge --format 3 --nested loss,total --loader json-lastrow --out loss.csv runs/*/evaluation.yaml`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "format",
				Aliases:  []string{"f"},
				Required: true,
				Usage: fmt.Sprintf("Format tag selecting how inputs are combined (supported values: %v)",
					merger.SupportedFormatTags()),
			},
			&cli.StringFlag{
				Name:     "out",
				Required: true,
				Usage:    "Output CSV file",
			},
			nestedFlag(),
			loaderFlag(),
			forceFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errors.New(errors.ErrCodeInvalidInput,
					"expects at least one input file")
			}

			m := merger.NewMerger(
				merger.WithLoader(cmd.String("loader")),
				merger.WithFeatures(cmd.StringSlice("nested")),
				merger.WithOverwrite(cmd.Bool("force")),
			)
			return m.Merge(ctx, paths, merger.FormatTag(cmd.Int("format")), cmd.String("out"))
		},
	}
}
