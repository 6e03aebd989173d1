package discover

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/evalmerge/pkg/errors"
)

// writeTree creates the given relative file paths (with empty content) under root.
func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte{}, 0o644))
	}
}

func sorted(paths []string) []string {
	out := append([]string(nil), paths...)
	sort.Strings(out)
	return out
}

func TestFindMatchesPatternOnly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"a/evaluation1.yaml",
		"a/b/evaluation_run.yaml",
		"a/notes.txt",
		"a/evaluation.json",
		"evaluation_final.yaml",
		"c/other.yaml",
	)

	got, err := NewFinder().Find(context.Background(), root)
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "a", "b", "evaluation_run.yaml"),
		filepath.Join(root, "a", "evaluation1.yaml"),
		filepath.Join(root, "evaluation_final.yaml"),
	}
	assert.Equal(t, want, sorted(got))
}

func TestFindSkipsNonRegularFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "real/evaluation1.yaml")

	// A directory whose name matches the pattern must not be returned,
	// and neither must a symlink to a matching file.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "evaluation_dir.yaml"), 0o755))
	link := filepath.Join(root, "evaluation_link.yaml")
	if err := os.Symlink(filepath.Join(root, "real", "evaluation1.yaml"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got, err := NewFinder().Find(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "real", "evaluation1.yaml")}, got)
}

func TestFindEmptyTree(t *testing.T) {
	got, err := NewFinder().Find(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"x/evaluation_a.yaml",
		"y/z/evaluation_b.yaml",
	)

	f := NewFinder()
	first, err := f.Find(context.Background(), root)
	require.NoError(t, err)
	second, err := f.Find(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, sorted(first), sorted(second))
}

func TestFindRootValidation(t *testing.T) {
	tests := []struct {
		name string
		root func(t *testing.T) string
	}{
		{
			name: "missing root",
			root: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope")
			},
		},
		{
			name: "root is a file",
			root: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "file.yaml")
				require.NoError(t, os.WriteFile(p, []byte("k: v"), 0o644))
				return p
			},
		},
		{
			name: "empty root",
			root: func(_ *testing.T) string { return "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFinder().Find(context.Background(), tt.root(t))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidInput, errors.CodeOf(err))
		})
	}
}

func TestFindCustomPattern(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "run1.yaml", "evaluation1.yaml")

	got, err := NewFinder(WithPattern("run*.yaml")).Find(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "run1.yaml")}, got)
}

func TestFindInvalidPattern(t *testing.T) {
	_, err := NewFinder(WithPattern("[")).Find(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.CodeOf(err))
}

func TestFindCanceledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "evaluation1.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFinder().Find(ctx, root)
	require.ErrorIs(t, err, context.Canceled)
}
