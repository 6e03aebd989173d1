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
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/evalmerge/pkg/discover"
	"github.com/NVIDIA/evalmerge/pkg/merger"
)

// FindMerge discovers evaluation files under Root and merges them into
// Destination in a single batch operation.
type FindMerge struct {
	// Root is the directory to search.
	Root string

	// Destination is the output target forwarded to the merge operation.
	// It is not validated here; the merge operation owns it.
	Destination string

	// Format is the opaque format tag forwarded to the merge operation.
	Format merger.FormatTag

	// ExternalTool, when set, is the path of an external merge binary to
	// invoke instead of the in-process engine.
	ExternalTool string

	// Finder locates the input files. If nil, a default Finder is used.
	Finder *discover.Finder

	// Merger combines the batch. If nil, a default Merger is used.
	// Ignored when ExternalTool is set.
	Merger *merger.Merger
}

// Run executes the pipeline: discover, collect, then exactly one merge
// invocation with the full batch. An empty batch is forwarded unchanged;
// the merge operation owns that outcome.
func (p *FindMerge) Run(ctx context.Context) (err error) {
	runID := uuid.NewString()
	start := time.Now()
	defer func() {
		runDuration.Observe(time.Since(start).Seconds())
		status := "success"
		if err != nil {
			status = "error"
		}
		runsTotal.WithLabelValues(status).Inc()
	}()

	slog.Info("starting find-and-merge run",
		slog.String("runID", runID),
		slog.String("root", p.Root),
		slog.String("destination", p.Destination),
		slog.String("format", p.Format.String()))

	if p.Finder == nil {
		p.Finder = discover.NewFinder()
	}

	paths, err := p.Finder.Find(ctx, p.Root)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		slog.Warn("no matching files found, forwarding empty batch",
			slog.String("runID", runID),
			slog.String("root", p.Root),
			slog.String("pattern", p.Finder.Pattern()))
	}

	if p.ExternalTool != "" {
		return runExternal(ctx, p.ExternalTool, paths, p.Format, p.Destination)
	}

	if p.Merger == nil {
		p.Merger = merger.NewMerger()
	}
	return p.Merger.Merge(ctx, paths, p.Format, p.Destination)
}

// FileReport describes the result of a standalone discovery run.
type FileReport struct {
	RunID   string    `json:"runID" yaml:"runID"`
	Root    string    `json:"root" yaml:"root"`
	Pattern string    `json:"pattern" yaml:"pattern"`
	Created time.Time `json:"created" yaml:"created"`
	Count   int       `json:"count" yaml:"count"`
	Files   []string  `json:"files" yaml:"files"`
}

// NewFileReport creates a FileReport for the given discovery result.
func NewFileReport(root, pattern string, files []string) *FileReport {
	return &FileReport{
		RunID:   uuid.NewString(),
		Root:    root,
		Pattern: pattern,
		Created: time.Now().UTC(),
		Count:   len(files),
		Files:   files,
	}
}
