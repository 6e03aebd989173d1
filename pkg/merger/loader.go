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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/evalmerge/pkg/errors"
)

// Loader reads one evaluation document from a file.
type Loader func(path string) (Document, error)

const (
	// LoaderYAML parses the whole file as a YAML document.
	LoaderYAML = "yaml"
	// LoaderJSONLastRow parses the last non-blank line of the file as JSON.
	LoaderJSONLastRow = "json-lastrow"
)

// SupportedLoaders returns the names of all registered loaders.
func SupportedLoaders() []string {
	return []string{LoaderYAML, LoaderJSONLastRow}
}

// LoaderByName returns the loader registered under the given name.
// An empty name selects the YAML loader.
func LoaderByName(name string) (Loader, error) {
	switch name {
	case LoaderYAML, "":
		return loadYAML, nil
	case LoaderJSONLastRow:
		return loadJSONLastRow, nil
	default:
		return nil, errors.NewWithContext(errors.ErrCodeInvalidInput,
			fmt.Sprintf("unknown loader %q (supported: %s)", name, strings.Join(SupportedLoaders(), ", ")),
			map[string]any{"loader": name})
	}
}

func loadYAML(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeIO,
			"failed to read input file", err, map[string]any{"path": path})
	}

	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeMergeFailure,
			"failed to parse YAML input", err, map[string]any{"path": path})
	}
	return doc, nil
}

func loadJSONLastRow(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeIO,
			"failed to read input file", err, map[string]any{"path": path})
	}

	lines := strings.Split(string(b), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		var doc Document
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeMergeFailure,
				"failed to parse last row as JSON", err, map[string]any{"path": path})
		}
		return doc, nil
	}

	return nil, errors.NewWithContext(errors.ErrCodeMergeFailure,
		"input file has no content rows", map[string]any{"path": path})
}
