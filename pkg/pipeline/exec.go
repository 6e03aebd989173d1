// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/NVIDIA/evalmerge/pkg/errors"
	"github.com/NVIDIA/evalmerge/pkg/merger"
)

// runExternal invokes the external merge tool once with the complete batch.
// Arguments are passed as an explicit list, never through a shell, and the
// tool's stdout and stderr pass through unchanged.
func runExternal(ctx context.Context, tool string, paths []string, format merger.FormatTag, destination string) error {
	args := make([]string, 0, len(paths)+4)
	args = append(args, "--format", format.String(), "--out", destination)
	args = append(args, paths...)

	slog.Debug("invoking external merge tool",
		slog.String("tool", tool),
		slog.Int("files", len(paths)))

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return errors.WrapWithContext(errors.ErrCodeExternalTool,
				fmt.Sprintf("merge tool exited with code %d", exitErr.ExitCode()), err,
				map[string]any{"tool": tool, "exitCode": exitErr.ExitCode()})
		}
		return errors.WrapWithContext(errors.ErrCodeExternalTool,
			"failed to launch merge tool", err, map[string]any{"tool": tool})
	}
	return nil
}

// ExternalExitCode returns the exit code of a failed external merge tool
// invocation, if err stems from one. Callers use it to propagate the tool's
// exit code verbatim.
func ExternalExitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
