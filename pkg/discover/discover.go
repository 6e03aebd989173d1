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

package discover

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/NVIDIA/evalmerge/pkg/errors"
)

// DefaultPattern matches the files produced by evaluation runs.
const DefaultPattern = "evaluation*.yaml"

// Option configures a Finder.
type Option func(*Finder)

// WithPattern sets the glob pattern matched against file base names.
// Default is DefaultPattern.
func WithPattern(pattern string) Option {
	return func(f *Finder) {
		f.pattern = pattern
	}
}

// Finder discovers files under a directory tree by base name pattern.
type Finder struct {
	pattern string
}

// NewFinder creates a new Finder with the provided options.
func NewFinder(opts ...Option) *Finder {
	f := &Finder{
		pattern: DefaultPattern,
	}

	// Apply options
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Pattern returns the glob pattern the Finder matches against.
func (f *Finder) Pattern() string {
	return f.pattern
}

// Find walks the directory tree rooted at root and returns the paths of all
// regular files whose base name matches the configured pattern, in walk order.
// The root must be an existing directory. The walk honors ctx cancellation.
func (f *Finder) Find(ctx context.Context, root string) ([]string, error) {
	if root == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "root path cannot be empty")
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidInput,
				"root path does not exist", err, map[string]any{"root": root})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeIO,
			"failed to stat root path", err, map[string]any{"root": root})
	}
	if !info.IsDir() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidInput,
			"root path is not a directory", map[string]any{"root": root})
	}

	// Reject a bad pattern before walking the whole tree for it.
	if _, err := filepath.Match(f.pattern, "probe"); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, "invalid file pattern", err)
	}

	start := time.Now()
	var matches []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.WrapWithContext(errors.ErrCodeIO,
				"failed to read directory entry", walkErr, map[string]any{"path": path})
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ok, err := filepath.Match(f.pattern, d.Name())
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, "invalid file pattern", err)
		}
		if ok {
			slog.Debug("matched file", slog.String("path", path))
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	walkDuration.Observe(time.Since(start).Seconds())
	matchedFiles.Set(float64(len(matches)))

	slog.Debug("discovery walk complete",
		slog.String("root", root),
		slog.String("pattern", f.pattern),
		slog.Int("matches", len(matches)))

	return matches, nil
}
