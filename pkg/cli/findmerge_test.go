/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureTool writes an executable shell script that appends its arguments
// to argFile, one per line, and exits 0.
func captureTool(t *testing.T, argFile string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("external tool test requires a POSIX shell")
	}
	tool := filepath.Join(t.TempDir(), "mergetool.sh")
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" >> \"" + argFile + "\"\nprintf 'EOF\\n' >> \"" + argFile + "\"\nexit 0\n"
	require.NoError(t, os.WriteFile(tool, []byte(script), 0o755))
	return tool
}

func TestFindMergeCommandPresets(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "evaluation1.yaml")
	require.NoError(t, os.WriteFile(in, []byte("a: [1]\n"), 0o644))

	argFile := filepath.Join(t.TempDir(), "args.txt")
	tool := captureTool(t, argFile)

	// Both entry points, identical root and destination.
	require.NoError(t, findMergeCmd().Run(context.Background(),
		[]string{"find-and-merge", "--tool", tool, root, "out.csv"}))
	require.NoError(t, findRunsMergeCmd().Run(context.Background(),
		[]string{"find-runs-and-merge", "--tool", tool, root, "out.csv"}))

	b, err := os.ReadFile(argFile)
	require.NoError(t, err)
	invocations := strings.Split(strings.TrimSuffix(string(b), "EOF\n"), "EOF\n")
	require.Len(t, invocations, 2)

	first := strings.Split(strings.TrimSpace(invocations[0]), "\n")
	second := strings.Split(strings.TrimSpace(invocations[1]), "\n")

	assert.Equal(t, []string{"--format", "2", "--out", "out.csv", in}, first)
	assert.Equal(t, []string{"--format", "1", "--out", "out.csv", in}, second)

	// Same batch and destination, only the format tag differs.
	assert.Equal(t, first[2:], second[2:])
}

func TestFindMergeCommandFormatOverride(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "evaluation1.yaml"), []byte("a: [1]\n"), 0o644))

	argFile := filepath.Join(t.TempDir(), "args.txt")
	tool := captureTool(t, argFile)

	require.NoError(t, findMergeCmd().Run(context.Background(),
		[]string{"find-and-merge", "--tool", tool, "--format", "0", root, "out.csv"}))

	b, err := os.ReadFile(argFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "--format\n0\n")
}

func TestFindMergeCommandInProcess(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "evaluation1.yaml"), []byte("reward: [1, 3]\n"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "evaluation2.yaml"), []byte("reward: [5]\n"), 0o644))

	out := filepath.Join(t.TempDir(), "stats.csv")
	require.NoError(t, findMergeCmd().Run(context.Background(),
		[]string{"find-and-merge", "--format", "0", root, out}))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	fields := strings.Split(strings.TrimSpace(string(b)), ",")
	require.Len(t, fields, 3)
	assert.Equal(t, "reward", fields[0])
	assert.Equal(t, "3", fields[1]) // mean of [1 3 5]

	stdev, err := strconv.ParseFloat(fields[2], 64)
	require.NoError(t, err)
	assert.InDelta(t, 1.632993161855452, stdev, 1e-12)
}

func TestFindMergeCommandArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{"find-and-merge"}},
		{"one arg", []string{"find-and-merge", "root"}},
		{"three args", []string{"find-and-merge", "root", "dest", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := findMergeCmd().Run(context.Background(), tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exactly two arguments")
			assert.Equal(t, 2, exitCodeFor(err))
		})
	}
}

func TestFindMergeCommandInvalidRoot(t *testing.T) {
	err := findMergeCmd().Run(context.Background(),
		[]string{"find-and-merge", filepath.Join(t.TempDir(), "missing"), "out.csv"})
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeFor(err))
}
