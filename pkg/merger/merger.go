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

package merger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/evalmerge/pkg/errors"
)

const defaultConcurrency = 4

// Option configures a Merger.
type Option func(*Merger)

// WithLoader selects the input loader by name (see SupportedLoaders).
// Default is the YAML loader.
func WithLoader(name string) Option {
	return func(m *Merger) {
		m.loaderName = name
	}
}

// WithFeatures sets the nested feature selectors used by FormatSteps.
// Each selector is a comma-separated key path into the per-step documents.
func WithFeatures(features []string) Option {
	return func(m *Merger) {
		m.features = features
	}
}

// WithOverwrite allows replacing an existing destination file.
// Default is to fail when the destination already exists.
func WithOverwrite(overwrite bool) Option {
	return func(m *Merger) {
		m.overwrite = overwrite
	}
}

// WithConcurrency bounds the number of input files loaded in parallel.
// Default is 4.
func WithConcurrency(n int) Option {
	return func(m *Merger) {
		if n > 0 {
			m.concurrency = n
		}
	}
}

// Merger combines batches of evaluation log files into one CSV statistics
// file. The zero value is not usable; create instances with NewMerger.
type Merger struct {
	loaderName  string
	features    []string
	overwrite   bool
	concurrency int
}

// NewMerger creates a new Merger with the provided options.
func NewMerger(opts ...Option) *Merger {
	m := &Merger{
		loaderName:  LoaderYAML,
		concurrency: defaultConcurrency,
	}

	// Apply options
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge loads every path, combines the documents according to the format
// tag, and writes the consolidated statistics to outPath as CSV. The whole
// batch is merged in one operation; an empty batch is an error owned by the
// engine so that callers can forward empty discovery results unchanged.
func (m *Merger) Merge(ctx context.Context, paths []string, format FormatTag, outPath string) (err error) {
	start := time.Now()
	defer func() {
		mergeDuration.Observe(time.Since(start).Seconds())
		status := "success"
		if err != nil {
			status = "error"
		}
		mergesTotal.WithLabelValues(status).Inc()
	}()

	if !format.IsSupported() {
		return errors.NewWithContext(errors.ErrCodeInvalidInput,
			fmt.Sprintf("format %s not supported", format),
			map[string]any{"format": int(format)})
	}
	if len(paths) == 0 {
		return errors.New(errors.ErrCodeMergeFailure, "no input files to merge")
	}
	if outPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "output path cannot be empty")
	}
	if !m.overwrite {
		if _, statErr := os.Stat(outPath); statErr == nil {
			return errors.NewWithContext(errors.ErrCodeInvalidInput,
				"destination already exists, pass overwrite to replace it",
				map[string]any{"out": outPath})
		}
	}

	loader, err := LoaderByName(m.loaderName)
	if err != nil {
		return err
	}

	docs, err := m.loadAll(ctx, loader, paths)
	if err != nil {
		return err
	}

	var header []string
	var rows [][]string

	switch format {
	case FormatCollapse:
		stats, mergeErr := mergeCollapse(docs)
		if mergeErr != nil {
			return mergeErr
		}
		rows = renderStringStats(stats)
	case FormatNearest:
		stats, mergeErr := mergeNearest(docs)
		if mergeErr != nil {
			return mergeErr
		}
		rows = renderIntStats(stats)
	case FormatColumns:
		stats, mergeErr := mergeColumns(docs)
		if mergeErr != nil {
			return mergeErr
		}
		rows = renderIntStats(stats)
	case FormatSteps:
		names, stepRows, mergeErr := mergeSteps(docs, m.features)
		if mergeErr != nil {
			return mergeErr
		}
		header, rows = renderSteps(names, stepRows)
	}

	if err := writeCSV(outPath, header, rows); err != nil {
		return err
	}

	documentsMerged.Add(float64(len(paths)))
	slog.Info("merge complete",
		slog.Int("files", len(paths)),
		slog.String("format", format.String()),
		slog.String("out", outPath))

	return nil
}

// loadAll loads every path with bounded concurrency, preserving input order.
func (m *Merger) loadAll(ctx context.Context, loader Loader, paths []string) ([]Document, error) {
	docs := make([]Document, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := loader(path)
			if err != nil {
				return err
			}
			docs[i] = doc
			slog.Debug("loaded input file", slog.String("path", path))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// renderStringStats renders keyed statistics as CSV rows sorted by key.
func renderStringStats(stats map[string][]float64) [][]string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, statRow(key, stats[key]))
	}
	return rows
}

// renderIntStats renders integer-keyed statistics as CSV rows in numeric key order.
func renderIntStats(stats map[int][]float64) [][]string {
	keys := make([]int, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, statRow(strconv.Itoa(key), stats[key]))
	}
	return rows
}

// renderSteps renders per-step statistics with a header row naming the
// mean/std column pair of each feature.
func renderSteps(names []string, stepRows [][]float64) ([]string, [][]string) {
	header := make([]string, 0, len(names)*2+1)
	header = append(header, "step")
	for _, name := range names {
		header = append(header, name+"_mean", name+"_std")
	}

	rows := make([][]string, 0, len(stepRows))
	for step, row := range stepRows {
		rows = append(rows, statRow(strconv.Itoa(step), row))
	}
	return header, rows
}

func statRow(key string, values []float64) []string {
	row := make([]string, 0, len(values)+1)
	row = append(row, key)
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return row
}
