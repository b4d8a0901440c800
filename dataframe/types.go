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

import "errors"

// DataFrame stores a table of values organized by an index; the vals array
// is column major - e.g.,
//
// VFINX  PRIDX
// 1      4
// 2      5
// 3      6
//
// Vals[0][0] = 1
// Vals[0][1] = 2
//
// The index type is time.Time for return series and string for label-indexed
// result matrices (e.g., an asset x benchmark premium matrix). A single
// column DataFrame plays the role of a series.
type DataFrame[T comparable] struct {
	Index    []T
	ColNames []string
	Vals     [][]float64
}

// Map holds a single column DataFrame per column name
type Map[T comparable] map[string]*DataFrame[T]

var (
	ErrFrequencyNotInferable = errors.New("could not infer periodicity of time series index")
	ErrUnknownFrequency      = errors.New("unknown frequency")
)
