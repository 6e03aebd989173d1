package merger

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/evalmerge/pkg/errors"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestMergeCollapseEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in1 := filepath.Join(dir, "evaluation1.yaml")
	in2 := filepath.Join(dir, "evaluation2.yaml")
	out := filepath.Join(dir, "stats.csv")

	require.NoError(t, os.WriteFile(in1, []byte("reward: [1, 3]\nlength: [10]\n"), 0o644))
	require.NoError(t, os.WriteFile(in2, []byte("reward: [5]\nlength: [20, 30]\n"), 0o644))

	m := NewMerger()
	require.NoError(t, m.Merge(context.Background(), []string{in1, in2}, FormatCollapse, out))

	rows := readCSV(t, out)
	require.Len(t, rows, 2)

	// Rows are sorted by key: length before reward.
	assert.Equal(t, "length", rows[0][0])
	assert.Equal(t, "20", rows[0][1]) // mean of [10 20 30]
	assert.Equal(t, "reward", rows[1][0])
	assert.Equal(t, "3", rows[1][1]) // mean of [1 3 5]
}

func TestMergeNearestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in1 := filepath.Join(dir, "evaluation1.yaml")
	in2 := filepath.Join(dir, "evaluation2.yaml")
	out := filepath.Join(dir, "stats.csv")

	require.NoError(t, os.WriteFile(in1, []byte("0: [1]\n10: [3]\n"), 0o644))
	require.NoError(t, os.WriteFile(in2, []byte("1: [5]\n9: [7]\n"), 0o644))

	m := NewMerger()
	require.NoError(t, m.Merge(context.Background(), []string{in1, in2}, FormatNearest, out))

	rows := readCSV(t, out)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"0", "3", "2"}, rows[0])
	assert.Equal(t, []string{"10", "5", "2"}, rows[1])
}

func TestMergeStepsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in1 := filepath.Join(dir, "evaluation1.yaml")
	in2 := filepath.Join(dir, "evaluation2.yaml")
	out := filepath.Join(dir, "stats.csv")

	require.NoError(t, os.WriteFile(in1, []byte("- loss: {total: 1.0}\n- loss: {total: 2.0}\n"), 0o644))
	require.NoError(t, os.WriteFile(in2, []byte("- loss: {total: 3.0}\n- loss: {total: 4.0}\n"), 0o644))

	m := NewMerger(WithFeatures([]string{"loss,total"}))
	require.NoError(t, m.Merge(context.Background(), []string{in1, in2}, FormatSteps, out))

	rows := readCSV(t, out)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"step", "total_mean", "total_std"}, rows[0])
	assert.Equal(t, []string{"0", "2", "1"}, rows[1])
	assert.Equal(t, []string{"1", "3", "1"}, rows[2])
}

func TestMergeJSONLastRowLoader(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "evaluation_run.yaml")
	out := filepath.Join(dir, "stats.csv")

	content := "{\"reward\": [1, 2]}\n{\"reward\": [3, 5]}\n"
	require.NoError(t, os.WriteFile(in, []byte(content), 0o644))

	m := NewMerger(WithLoader(LoaderJSONLastRow))
	require.NoError(t, m.Merge(context.Background(), []string{in}, FormatCollapse, out))

	rows := readCSV(t, out)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"reward", "4", "1"}, rows[0])
}

func TestMergeEmptyBatch(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stats.csv")

	err := NewMerger().Merge(context.Background(), nil, FormatCollapse, out)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMergeFailure, errors.CodeOf(err))
	assert.NoFileExists(t, out)
}

func TestMergeUnsupportedFormat(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stats.csv")

	err := NewMerger().Merge(context.Background(), []string{"in.yaml"}, FormatTag(9), out)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "format 9 not supported")
}

func TestMergeOverwritePolicy(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "evaluation1.yaml")
	out := filepath.Join(dir, "stats.csv")

	require.NoError(t, os.WriteFile(in, []byte("a: [1]\n"), 0o644))
	require.NoError(t, os.WriteFile(out, []byte("existing"), 0o644))

	err := NewMerger().Merge(context.Background(), []string{in}, FormatCollapse, out)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.CodeOf(err))

	// Destination untouched on refusal.
	b, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "existing", string(b))

	require.NoError(t,
		NewMerger(WithOverwrite(true)).Merge(context.Background(), []string{in}, FormatCollapse, out))
	rows := readCSV(t, out)
	assert.Equal(t, []string{"a", "1", "0"}, rows[0])
}

func TestMergeUnknownLoader(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stats.csv")

	err := NewMerger(WithLoader("toml")).Merge(context.Background(), []string{"in.yaml"}, FormatCollapse, out)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.CodeOf(err))
}

func TestMergeCanceledContext(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "evaluation1.yaml")
	out := filepath.Join(dir, "stats.csv")
	require.NoError(t, os.WriteFile(in, []byte("a: [1]\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewMerger().Merge(ctx, []string{in}, FormatCollapse, out)
	require.ErrorIs(t, err, context.Canceled)
}
