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
	"math"
)

// mean returns the arithmetic mean of values. It returns 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// std returns the population standard deviation of values.
func std(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// meanStd returns {mean, std} for values.
func meanStd(values []float64) []float64 {
	return []float64{mean(values), std(values)}
}

// toFloat converts a decoded scalar to float64.
// YAML decoding yields int or float64 for numbers; JSON yields float64.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not a number", v, v)
	}
}

// toFloatSlice converts a decoded sequence of scalars to []float64.
func toFloatSlice(v any) ([]float64, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("value %v (%T) is not a list", v, v)
	}
	out := make([]float64, len(seq))
	for i, item := range seq {
		f, err := toFloat(item)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// toFloatRows converts a decoded sequence of scalar sequences to [][]float64.
func toFloatRows(v any) ([][]float64, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("value %v (%T) is not a list of rows", v, v)
	}
	out := make([][]float64, len(seq))
	for i, item := range seq {
		row, err := toFloatSlice(item)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}
