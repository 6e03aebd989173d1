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
	"encoding/csv"
	"os"

	"github.com/NVIDIA/evalmerge/pkg/errors"
)

// writeCSV writes the optional header and rows to a new file at path.
func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeIO,
			"failed to create output file", err, map[string]any{"out": path})
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			return errors.Wrap(errors.ErrCodeIO, "failed to write CSV header", err)
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return errors.Wrap(errors.ErrCodeIO, "failed to write CSV row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, "failed to flush CSV output", err)
	}
	return nil
}
