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
	"gonum.org/v1/gonum/floats"
)

// AddScalar adds the scalar value to all columns in dataframe df and returns a new dataframe
func (df *DataFrame[T]) AddScalar(scalar float64) *DataFrame[T] {
	df = df.Copy()

	for colIdx := range df.Vals {
		floats.AddConst(scalar, df.Vals[colIdx])
	}
	return df
}

// MulScalar multiplies all columns in dataframe df by the scalar and returns a new dataframe
func (df *DataFrame[T]) MulScalar(scalar float64) *DataFrame[T] {
	df = df.Copy()

	for colIdx := range df.Vals {
		floats.Scale(scalar, df.Vals[colIdx])
	}
	return df
}

// CumProd computes the running product of each column and returns a new
// dataframe; row k of the result holds the product of rows 0..k
func (df *DataFrame[T]) CumProd() *DataFrame[T] {
	df2 := &DataFrame[T]{
		Index:    df.Index,
		ColNames: df.ColNames,
		Vals:     make([][]float64, len(df.Vals)),
	}

	for colIdx, col := range df.Vals {
		df2.Vals[colIdx] = make([]float64, len(col))
		floats.CumProd(df2.Vals[colIdx], col)
	}

	return df2
}

// Div divides all columns in `df` by the corresponding column in `other` and returns a new dataframe.
// Columns are matched by position, not name; panics if df has more columns than other or rows are not equal.
func (df *DataFrame[T]) Div(other *DataFrame[T]) *DataFrame[T] {
	df = df.Copy()

	for colIdx := range df.Vals {
		floats.Div(df.Vals[colIdx], other.Vals[colIdx])
	}
	return df
}
