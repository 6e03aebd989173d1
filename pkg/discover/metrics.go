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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Discovery walk metrics
	walkDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "evalmerge_discovery_walk_duration_seconds",
			Help:    "Time taken to walk a discovery root",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
	)

	matchedFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "evalmerge_discovery_matched_files",
			Help: "Number of files matched by the last discovery walk",
		},
	)
)
