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
	"github.com/NVIDIA/evalmerge/pkg/pipeline"
	"github.com/NVIDIA/evalmerge/pkg/serializer"
)

func findCmd() *cli.Command {
	return &cli.Command{
		Name:                  "find",
		EnableShellCompletion: true,
		Usage:                 "Discover evaluation files under a directory",
		ArgsUsage:             "<root>",
		Description: `Recursively walk the root directory and report every regular file whose base
name matches the pattern (default: evaluation*.yaml). Directories, symlinks,
and special files are skipped; matching is by name only, file content is
never inspected.

The report can be output in JSON, YAML, or table format.

# Examples

List evaluation files under ./results:
  evalmerge find ./results

Write the report as JSON to a file:
  evalmerge find ./results --report-format json --output files.json`,
		Flags: []cli.Flag{
			patternFlag(),
			outputFlag(),
			reportFormatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errors.New(errors.ErrCodeInvalidInput,
					"expects exactly one argument: the root directory")
			}
			root := cmd.Args().Get(0)

			// Parse report format
			outFormat := serializer.Format(cmd.String("report-format"))
			if outFormat.IsUnknown() {
				return errors.New(errors.ErrCodeInvalidInput,
					fmt.Sprintf("unknown report format: %q", outFormat))
			}

			finder := discover.NewFinder(discover.WithPattern(cmd.String("pattern")))
			paths, err := finder.Find(ctx, root)
			if err != nil {
				return err
			}

			report := pipeline.NewFileReport(root, finder.Pattern(), paths)

			s := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if c, ok := s.(serializer.Closer); ok {
					_ = c.Close()
				}
			}()
			return s.Serialize(ctx, report)
		},
	}
}
