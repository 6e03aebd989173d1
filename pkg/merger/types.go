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

import "fmt"

// FormatTag is an opaque integer selecting how input documents are combined.
// The tag values are part of the tool's external contract; see the package
// documentation for the semantics of each supported value.
type FormatTag int

const (
	// FormatCollapse merges keyed lists with exact key matching.
	FormatCollapse FormatTag = 0
	// FormatNearest merges integer-keyed lists with nearest-key matching.
	FormatNearest FormatTag = 1
	// FormatColumns merges integer-keyed rows with per-column statistics.
	FormatColumns FormatTag = 2
	// FormatSteps merges per-step sequences by nested feature selectors.
	FormatSteps FormatTag = 3
)

// IsSupported reports whether the tag names a known merge format.
func (f FormatTag) IsSupported() bool {
	switch f {
	case FormatCollapse, FormatNearest, FormatColumns, FormatSteps:
		return true
	default:
		return false
	}
}

// String returns the numeric tag as a string.
func (f FormatTag) String() string {
	return fmt.Sprintf("%d", int(f))
}

// SupportedFormatTags returns all known format tag values.
func SupportedFormatTags() []FormatTag {
	return []FormatTag{FormatCollapse, FormatNearest, FormatColumns, FormatSteps}
}

// Document is a single decoded evaluation log file. Its concrete shape
// depends on the format tag used to merge it.
type Document any
