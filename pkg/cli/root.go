/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/evalmerge/pkg/errors"
	"github.com/NVIDIA/evalmerge/pkg/logging"
	"github.com/NVIDIA/evalmerge/pkg/pipeline"
)

const (
	name           = "evalmerge"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Version: version,
		Usage:   "Discover and merge evaluation log files",
		Description: fmt.Sprintf(`evalmerge - evaluation log discovery and merge tool

Version: %s
Commit:  %s
Built:   %s

Locates evaluation result files (evaluation*.yaml) under a directory tree and
consolidates them into a single statistics file.`, version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			findCmd(),
			mergeCmd(),
			findMergeCmd(),
			findRunsMergeCmd(),
		},
	}
}

// Execute runs the root command with a signal-aware context.
// This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error to the process exit code: external merge tool
// exit codes propagate verbatim, invalid input maps to 2, everything else to 1.
func exitCodeFor(err error) int {
	if code, ok := pipeline.ExternalExitCode(err); ok && code > 0 {
		return code
	}
	if errors.CodeOf(err) == errors.ErrCodeInvalidInput {
		return 2
	}
	return 1
}
