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
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/NVIDIA/evalmerge/pkg/errors"
)

// asMap normalizes a decoded document to a string-keyed map. YAML and JSON
// decoders differ in how they surface mapping keys, so both string-keyed and
// any-keyed maps are accepted.
func asMap(doc Document) (map[string]any, error) {
	switch m := doc.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprintf("%v", k)] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("document is %T, expected a mapping", doc)
	}
}

// asIntMap normalizes a decoded document to an int-keyed map.
func asIntMap(doc Document) (map[int]any, error) {
	m, err := asMap(doc)
	if err != nil {
		return nil, err
	}
	out := make(map[int]any, len(m))
	for k, v := range m {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("key %q is not an integer", k)
		}
		out[n] = v
	}
	return out, nil
}

// nearestKey returns the element of sorted closest to target.
// Ties pick the smaller key.
func nearestKey(sorted []int, target int) int {
	best := sorted[0]
	bestDist := abs(target - best)
	for _, k := range sorted[1:] {
		if d := abs(target - k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sortedIntKeys(m map[int]any) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// mergeCollapse combines documents per FormatCollapse: every document is a
// mapping from key to list of numbers, key sets must match exactly, and
// per-key lists collapse into one mean/std pair.
func mergeCollapse(docs []Document) (map[string][]float64, error) {
	maps := make([]map[string]any, len(docs))
	for i, doc := range docs {
		m, err := asMap(doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMergeFailure,
				fmt.Sprintf("file %d cannot be merged", i), err)
		}
		maps[i] = m
	}

	// Check keys
	for i, m := range maps[1:] {
		if len(m) != len(maps[0]) {
			return nil, errors.New(errors.ErrCodeMergeFailure,
				fmt.Sprintf("keys differ between files 0 and %d", i+1))
		}
		for k := range maps[0] {
			if _, ok := m[k]; !ok {
				return nil, errors.New(errors.ErrCodeMergeFailure,
					fmt.Sprintf("keys differ between files 0 and %d", i+1))
			}
		}
	}

	// Combine and collect statistics
	stats := make(map[string][]float64, len(maps[0]))
	for key := range maps[0] {
		var combined []float64
		for i, m := range maps {
			values, err := toFloatSlice(m[key])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeMergeFailure,
					fmt.Sprintf("key %q in file %d", key, i), err)
			}
			combined = append(combined, values...)
		}
		stats[key] = meanStd(combined)
	}

	return stats, nil
}

// mergeNearest combines documents per FormatNearest: integer keys with equal
// counts per file, matched by minimal distance to the first file's keys.
func mergeNearest(docs []Document) (map[int][]float64, error) {
	maps, allKeys, err := intMaps(docs)
	if err != nil {
		return nil, err
	}

	stats := make(map[int][]float64, len(allKeys[0]))
	for _, key := range allKeys[0] {
		var combined []float64
		for i, m := range maps {
			other := nearestKey(allKeys[i], key)
			values, err := toFloatSlice(m[other])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeMergeFailure,
					fmt.Sprintf("key %d in file %d", other, i), err)
			}
			combined = append(combined, values...)
		}
		stats[key] = meanStd(combined)
	}

	return stats, nil
}

// mergeColumns combines documents per FormatColumns: like mergeNearest but
// every key holds rows of N columns and statistics are computed per column.
func mergeColumns(docs []Document) (map[int][]float64, error) {
	maps, allKeys, err := intMaps(docs)
	if err != nil {
		return nil, err
	}

	// Check number of stats columns
	firstRows, err := toFloatRows(maps[0][allKeys[0][0]])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMergeFailure, "first key of file 0", err)
	}
	if len(firstRows) == 0 {
		return nil, errors.New(errors.ErrCodeMergeFailure, "first key of file 0 has no rows")
	}
	nStats := len(firstRows[0])
	for i, m := range maps {
		for _, key := range allKeys[i] {
			rows, err := toFloatRows(m[key])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeMergeFailure,
					fmt.Sprintf("key %d in file %d", key, i), err)
			}
			for _, row := range rows {
				if len(row) != nStats {
					return nil, errors.New(errors.ErrCodeMergeFailure,
						fmt.Sprintf("not all timesteps contain %d statistics", nStats))
				}
			}
		}
	}

	stats := make(map[int][]float64, len(allKeys[0]))
	for _, key := range allKeys[0] {
		columns := make([][]float64, nStats)
		for i, m := range maps {
			other := nearestKey(allKeys[i], key)
			rows, _ := toFloatRows(m[other])
			for _, row := range rows {
				for j, v := range row {
					columns[j] = append(columns[j], v)
				}
			}
		}

		combined := make([]float64, 0, nStats*2)
		for _, column := range columns {
			combined = append(combined, mean(column), std(column))
		}
		stats[key] = combined
	}

	return stats, nil
}

// intMaps converts all documents to int-keyed maps, verifies equal key
// counts, and returns the maps with their sorted key lists.
func intMaps(docs []Document) ([]map[int]any, [][]int, error) {
	maps := make([]map[int]any, len(docs))
	allKeys := make([][]int, len(docs))
	for i, doc := range docs {
		m, err := asIntMap(doc)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeMergeFailure,
				fmt.Sprintf("file %d cannot be merged", i), err)
		}
		if len(m) == 0 {
			return nil, nil, errors.New(errors.ErrCodeMergeFailure,
				fmt.Sprintf("file %d has no keys", i))
		}
		maps[i] = m
		allKeys[i] = sortedIntKeys(m)
	}

	for i, keys := range allKeys[1:] {
		if len(keys) != len(allKeys[0]) {
			return nil, nil, errors.New(errors.ErrCodeMergeFailure,
				fmt.Sprintf("number of keys differ between files 0 and %d", i+1))
		}
	}

	return maps, allKeys, nil
}

// mergeSteps combines documents per FormatSteps: every document is a
// sequence of per-step records, and the given nested feature selectors
// (comma-separated key paths) extract one scalar per step per file.
// It returns the feature names and one row of mean/std pairs per step.
func mergeSteps(docs []Document, features []string) ([]string, [][]float64, error) {
	if len(features) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput,
			"format 3 requires at least one nested feature selector")
	}

	seqs := make([][]any, len(docs))
	for i, doc := range docs {
		seq, ok := doc.([]any)
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeMergeFailure,
				fmt.Sprintf("file %d is %T, expected a sequence of steps", i, doc))
		}
		seqs[i] = seq
	}

	nSteps := len(seqs[0])
	for _, seq := range seqs {
		if len(seq) != nSteps {
			return nil, nil, errors.New(errors.ErrCodeMergeFailure,
				fmt.Sprintf("not all files contain %d statistics", nSteps))
		}
	}

	// Feature names are the last segment of each selector path.
	names := make([]string, len(features))
	for i, feature := range features {
		segments := strings.Split(feature, ",")
		names[i] = strings.TrimSpace(segments[len(segments)-1])
	}

	rows := make([][]float64, nSteps)
	for step := 0; step < nSteps; step++ {
		row := make([]float64, 0, len(features)*2)
		for _, feature := range features {
			values := make([]float64, len(seqs))
			for i, seq := range seqs {
				v, err := getNested(seq[step], feature)
				if err != nil {
					return nil, nil, errors.Wrap(errors.ErrCodeMergeFailure,
						fmt.Sprintf("feature %q at step %d in file %d", feature, step, i), err)
				}
				values[i] = v
			}
			row = append(row, mean(values), std(values))
		}
		rows[step] = row
	}

	return names, rows, nil
}

// getNested traverses a decoded document along a comma-separated key path
// and converts the final value to a float.
func getNested(doc any, feature string) (float64, error) {
	current := doc
	for _, segment := range strings.Split(feature, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		m, err := asMap(current)
		if err != nil {
			return 0, err
		}
		next, ok := m[segment]
		if !ok {
			return 0, fmt.Errorf("key %q not found", segment)
		}
		current = next
	}
	return toFloat(current)
}
