// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataframe

import (
	"math"
	"sort"
)

// OuterJoin merges two dataframes on their index. The resulting index is the
// sorted union of both indexes; positions present in only one input are
// filled with NaN in the other's columns. Columns keep their names and the
// left columns precede the right columns. Both inputs are left unmodified.
func OuterJoin[T comparable](left, right *DataFrame[T]) *DataFrame[T] {
	seen := make(map[T]bool, len(left.Index)+len(right.Index))
	union := make([]T, 0, len(left.Index)+len(right.Index))

	for _, idxVal := range left.Index {
		if !seen[idxVal] {
			seen[idxVal] = true
			union = append(union, idxVal)
		}
	}

	for _, idxVal := range right.Index {
		if !seen[idxVal] {
			seen[idxVal] = true
			union = append(union, idxVal)
		}
	}

	sort.SliceStable(union, func(a, b int) bool {
		return indexLess(union[a], union[b])
	})

	joined := &DataFrame[T]{
		Index:    union,
		ColNames: make([]string, 0, len(left.ColNames)+len(right.ColNames)),
		Vals:     make([][]float64, 0, len(left.ColNames)+len(right.ColNames)),
	}

	for _, df := range []*DataFrame[T]{left, right} {
		rowOf := make(map[T]int, len(df.Index))
		for row, idxVal := range df.Index {
			rowOf[idxVal] = row
		}

		for colIdx, colName := range df.ColNames {
			col := make([]float64, len(union))
			for row, idxVal := range union {
				if srcRow, ok := rowOf[idxVal]; ok {
					col[row] = df.Vals[colIdx][srcRow]
				} else {
					col[row] = math.NaN()
				}
			}
			joined.ColNames = append(joined.ColNames, colName)
			joined.Vals = append(joined.Vals, col)
		}
	}

	return joined
}
