/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/evalmerge/pkg/pipeline"
)

func TestFindCommand(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "a", "evaluation1.yaml"), []byte{}, 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(sub, "evaluation_run.yaml"), []byte{}, 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "a", "notes.txt"), []byte{}, 0o644))

	out := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, findCmd().Run(context.Background(),
		[]string{"find", "--report-format", "json", "--output", out, root}))

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	var report pipeline.FileReport
	require.NoError(t, json.Unmarshal(b, &report))

	assert.Equal(t, root, report.Root)
	assert.Equal(t, 2, report.Count)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a", "evaluation1.yaml"),
		filepath.Join(sub, "evaluation_run.yaml"),
	}, report.Files)
	assert.NotEmpty(t, report.RunID)
}

func TestFindCommandCustomPattern(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "run1.yaml"), []byte{}, 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "evaluation1.yaml"), []byte{}, 0o644))

	out := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, findCmd().Run(context.Background(),
		[]string{"find", "--pattern", "run*.yaml", "--report-format", "json", "--output", out, root}))

	var report pipeline.FileReport
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &report))

	assert.Equal(t, "run*.yaml", report.Pattern)
	assert.Equal(t, []string{filepath.Join(root, "run1.yaml")}, report.Files)
}

func TestFindCommandArgValidation(t *testing.T) {
	err := findCmd().Run(context.Background(), []string{"find"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one argument")
	assert.Equal(t, 2, exitCodeFor(err))
}

func TestFindCommandUnknownReportFormat(t *testing.T) {
	err := findCmd().Run(context.Background(),
		[]string{"find", "--report-format", "xml", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format")
	assert.Equal(t, 2, exitCodeFor(err))
}
