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

// Package perf computes standardized performance statistics over
// timestamp-indexed return series: annualized returns, active premium,
// excess returns and relative cumulative performance. Every function is a
// pure computation over its inputs; nothing is cached or mutated across
// calls.
package perf

import (
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/penny-vault/pv-perf/dataframe"
)

// Prefixes supplies the names synthesized for unnamed or integer-named
// columns; an asset column at position 2 becomes `{Asset}_2`
type Prefixes struct {
	Asset     string
	Benchmark string
}

// DefaultPrefixes are applied when the caller supplies no prefixes
var DefaultPrefixes = Prefixes{Asset: "AST", Benchmark: "BMK"}

// AnnualizedReturns converts the return series in r into one annual-equivalent
// rate per column. Rows containing missing values are removed first and `n`
// in the formulas below is the post-removal count. When freq is empty the
// frequency is inferred from the date index.
//
// The geometric annualized return compounds the per-period returns and
// rescales the result to one year:
//
//	prod(1 + r)^(scale/n) - 1
//
// The arithmetic annualized return linearly scales the average per-period
// return:
//
//	mean(r) * scale
//
// An empty series (after removing missing values) returns ErrEmptySeries
// since neither formula is defined for n = 0.
func AnnualizedReturns(r *dataframe.DataFrame[time.Time], freq dataframe.Frequency, geometric bool) ([]float64, error) {
	r = r.Copy().SortByIndex().DropNA()

	if freq == "" {
		var err error
		if freq, err = dataframe.InferFrequency(r.Index); err != nil {
			return nil, err
		}
	}

	scale, err := freq.Scale()
	if err != nil {
		return nil, err
	}

	if r.Len() == 0 {
		return nil, ErrEmptySeries
	}

	n := float64(r.Len())
	res := make([]float64, r.ColCount())
	for colIdx, col := range r.Vals {
		if geometric {
			growth := make([]float64, len(col))
			copy(growth, col)
			floats.AddConst(1, growth)
			res[colIdx] = math.Pow(floats.Prod(growth), float64(scale)/n) - 1
		} else {
			res[colIdx] = stat.Mean(col, nil) * float64(scale)
		}
	}

	return res, nil
}

// ResolveFrequency determines the single frequency to use for a joint
// computation over the asset and benchmark series. An explicitly requested
// frequency always wins; no inference or conflict check is performed.
// Otherwise both indexes are inferred independently: if only one succeeds its
// result is used, if both succeed they must agree, and if neither succeeds
// the computation cannot proceed.
func ResolveFrequency(ra, rb *dataframe.DataFrame[time.Time], requested dataframe.Frequency) (dataframe.Frequency, error) {
	if requested != "" {
		return requested, nil
	}

	fa, errA := dataframe.InferFrequency(ra.Index)
	fb, errB := dataframe.InferFrequency(rb.Index)

	switch {
	case errA != nil && errB != nil:
		log.Error().Msg("no frequency could be determined for either series")
		return "", dataframe.ErrFrequencyNotInferable
	case errA != nil:
		return fb, nil
	case errB != nil:
		return fa, nil
	case fa != fb:
		err := &FrequencyMismatchError{Asset: fa, Benchmark: fb}
		log.Error().Str("AssetFreq", string(fa)).Str("BenchmarkFreq", string(fb)).Msg("frequency mismatch between asset and benchmark series")
		return "", err
	}

	return fa, nil
}

// ActivePremium computes the annualized asset return minus the annualized
// benchmark return for every (asset column, benchmark column) pair. The
// frequency is reconciled once from the two inputs and reused for every
// pair. The result matrix has one column per asset and one row per
// benchmark.
func ActivePremium(ra, rb *dataframe.DataFrame[time.Time], freq dataframe.Frequency, geometric bool, prefixes Prefixes) (*dataframe.DataFrame[string], error) {
	ra, rb = ra.Copy().SortByIndex(), rb.Copy().SortByIndex()
	if err := normalizePair(ra, rb, prefixes); err != nil {
		return nil, err
	}

	freq, err := ResolveFrequency(ra, rb, freq)
	if err != nil {
		return nil, err
	}

	// annualization of a column does not depend on the opposite side of the
	// pair so both sides are computed once, not once per pair
	aAnn, err := annualizeColumns(ra, freq, geometric)
	if err != nil {
		return nil, err
	}

	bAnn, err := annualizeColumns(rb, freq, geometric)
	if err != nil {
		return nil, err
	}

	premium := &dataframe.DataFrame[string]{
		Index:    append([]string{}, rb.ColNames...),
		ColNames: append([]string{}, ra.ColNames...),
		Vals:     make([][]float64, len(aAnn)),
	}

	for ai := range aAnn {
		col := make([]float64, len(bAnn))
		for bi := range bAnn {
			col[bi] = aAnn[ai] - bAnn[bi]
		}
		premium.Vals[ai] = col
	}

	return premium, nil
}

// ExcessReturns computes the normalized difference between the annualized
// asset and benchmark returns. Both inputs are first truncated to the length
// of the shorter one (positional, keeping the earliest rows after missing
// value removal) and the frequency is reconciled from the truncated series.
// Both sides are always annualized geometrically; the geometric flag selects
// the combination formula:
//
//	geometric:  (Ra - Rb) / (1 + Rb)
//	arithmetic: Ra - Rb
//
// A single column benchmark is compared against every asset column;
// otherwise columns pair positionally and the column counts must match.
func ExcessReturns(ra, rb *dataframe.DataFrame[time.Time], freq dataframe.Frequency, geometric bool) ([]float64, error) {
	if ra.ColCount() == 0 || rb.ColCount() == 0 {
		return nil, ErrNoColumns
	}

	ra = ra.Copy().SortByIndex().DropNA()
	rb = rb.Copy().SortByIndex().DropNA()

	n := ra.Len()
	if rb.Len() < n {
		n = rb.Len()
	}
	ra, rb = ra.Head(n), rb.Head(n)

	if ra.ColCount() > 1 && rb.ColCount() > 1 && ra.ColCount() != rb.ColCount() {
		log.Error().Int("AssetCols", ra.ColCount()).Int("BenchmarkCols", rb.ColCount()).Msg("asset and benchmark shapes do not match")
		return nil, ErrShapeMismatch
	}

	freq, err := ResolveFrequency(ra, rb, freq)
	if err != nil {
		return nil, err
	}

	// the annual figures are always geometric; the geometric flag only
	// selects the combination formula below
	aAnn, err := AnnualizedReturns(ra, freq, true)
	if err != nil {
		return nil, err
	}

	bAnn, err := AnnualizedReturns(rb, freq, true)
	if err != nil {
		return nil, err
	}

	count := len(aAnn)
	if len(bAnn) > count {
		count = len(bAnn)
	}

	excess := make([]float64, count)
	for idx := range excess {
		a := aAnn[minInt(idx, len(aAnn)-1)]
		b := bAnn[minInt(idx, len(bAnn)-1)]
		if geometric {
			excess[idx] = (a - b) / (1 + b)
		} else {
			excess[idx] = a - b
		}
	}

	return excess, nil
}

// RelativeReturns computes the ratio of cumulative compounded growth between
// every (asset column, benchmark column) pair through time. Each pair is
// outer-joined on timestamp, rows with a missing value are dropped, both
// sides are compounded via a running product of (1 + r) and the asset
// growth is divided by the benchmark growth at every timestamp. Pair columns
// are named `{asset}/{benchmark}` and outer-joined over the union of all
// timestamps; timestamps absent from a pair's overlap are NaN in that
// column.
func RelativeReturns(ra, rb *dataframe.DataFrame[time.Time], prefixes Prefixes) (*dataframe.DataFrame[time.Time], error) {
	ra, rb = ra.Copy().SortByIndex(), rb.Copy().SortByIndex()
	if err := normalizePair(ra, rb, prefixes); err != nil {
		return nil, err
	}

	var res *dataframe.DataFrame[time.Time]
	for _, aName := range ra.ColNames {
		for _, bName := range rb.ColNames {
			growth := dataframe.OuterJoin(ra.Col(aName), rb.Col(bName)).DropNA().AddScalar(1).CumProd()

			num := &dataframe.DataFrame[time.Time]{
				Index:    growth.Index,
				ColNames: []string{aName + "/" + bName},
				Vals:     [][]float64{growth.Vals[0]},
			}
			den := &dataframe.DataFrame[time.Time]{
				Index:    growth.Index,
				ColNames: []string{bName},
				Vals:     [][]float64{growth.Vals[1]},
			}
			rel := num.Div(den)

			if res == nil {
				res = rel
			} else {
				res = dataframe.OuterJoin(res, rel)
			}
		}
	}

	return res, nil
}

// annualizeColumns annualizes each column independently so a missing value
// only removes the observation from its own column, not the whole row
func annualizeColumns(r *dataframe.DataFrame[time.Time], freq dataframe.Frequency, geometric bool) ([]float64, error) {
	cols := r.Breakout()
	res := make([]float64, r.ColCount())
	for idx, colName := range r.ColNames {
		ann, err := AnnualizedReturns(cols[colName], freq, geometric)
		if err != nil {
			return nil, err
		}
		res[idx] = ann[0]
	}
	return res, nil
}

// normalizePair resolves the column identity of both inputs once, before any
// pairwise computation: a column whose name is empty or an integer literal
// is renamed to `{prefix}_{position}` so merged results cannot collide
func normalizePair(ra, rb *dataframe.DataFrame[time.Time], prefixes Prefixes) error {
	if ra.ColCount() == 0 || rb.ColCount() == 0 {
		return ErrNoColumns
	}

	if prefixes.Asset == "" {
		prefixes.Asset = DefaultPrefixes.Asset
	}
	if prefixes.Benchmark == "" {
		prefixes.Benchmark = DefaultPrefixes.Benchmark
	}

	normalizeColNames(ra, prefixes.Asset)
	normalizeColNames(rb, prefixes.Benchmark)
	return nil
}

func normalizeColNames(r *dataframe.DataFrame[time.Time], prefix string) {
	for idx, name := range r.ColNames {
		if _, err := strconv.Atoi(name); name == "" || err == nil {
			r.ColNames[idx] = prefix + "_" + strconv.Itoa(idx)
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
