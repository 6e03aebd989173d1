/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/evalmerge/pkg/discover"
	"github.com/NVIDIA/evalmerge/pkg/merger"
	"github.com/NVIDIA/evalmerge/pkg/serializer"
)

// Flag constructors shared across commands. Each call returns a fresh
// instance because cli flags hold parse state after application.

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func reportFormatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "report-format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage: fmt.Sprintf("Report output format (supported values: %s)",
			strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func patternFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "pattern",
		Usage:   "Glob pattern matched against file base names",
		Sources: cli.EnvVars("EVALMERGE_PATTERN"),
		Value:   discover.DefaultPattern,
	}
}

func loaderFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name: "loader",
		Usage: fmt.Sprintf("How to load input files (supported values: %s); json-lastrow interprets the last row of the file as the JSON to be loaded",
			strings.Join(merger.SupportedLoaders(), ", ")),
		Value: merger.LoaderYAML,
	}
}

func nestedFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:  "nested",
		Usage: "Nested feature selector for format 3, a comma-separated key path (can be repeated)",
	}
}

func forceFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "force",
		Usage: "Overwrite the destination file if it already exists",
	}
}
