// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
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

package handler

import (
	"math"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/penny-vault/pv-perf/dataframe"
	"github.com/penny-vault/pv-perf/perf"
)

// Table is the wire representation of a timestamp-indexed table; dates are
// formatted YYYY-MM-DD and a null value marks a missing observation
type Table struct {
	Dates  []string `json:"dates"`
	Series []Series `json:"series"`
}

type Series struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type AnnualizeRequest struct {
	Returns   Table  `json:"returns"`
	Frequency string `json:"frequency"`
	Geometric *bool  `json:"geometric"`
}

type CompareRequest struct {
	Asset           Table  `json:"asset"`
	Benchmark       Table  `json:"benchmark"`
	Frequency       string `json:"frequency"`
	Geometric       *bool  `json:"geometric"`
	AssetPrefix     string `json:"assetPrefix"`
	BenchmarkPrefix string `json:"benchmarkPrefix"`
}

type FrequencyRequest struct {
	Dates []string `json:"dates"`
}

type FrequencyResponse struct {
	Frequency string `json:"frequency"`
	Scale     int    `json:"scale"`
}

// InferFrequency determines the sampling frequency of a list of dates
func InferFrequency(c *fiber.Ctx) error {
	var req FrequencyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	dates, err := parseDates(req.Dates)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// inference requires an ascending index; clients may send dates in any order
	sort.Slice(dates, func(a, b int) bool {
		return dates[a].Before(dates[b])
	})

	frequency, err := dataframe.InferFrequency(dates)
	if err != nil {
		return statusForError(err)
	}

	scale, err := frequency.Scale()
	if err != nil {
		return statusForError(err)
	}

	return c.JSON(FrequencyResponse{Frequency: string(frequency), Scale: scale})
}

// Annualize computes the annualized return of every column in the request table
func Annualize(c *fiber.Ctx) error {
	var req AnnualizeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	returns, err := tableToDataFrame(&req.Returns)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	frequency, err := parseFrequency(req.Frequency)
	if err != nil {
		return statusForError(err)
	}

	annualized, err := perf.AnnualizedReturns(returns, frequency, geometricOrDefault(req.Geometric))
	if err != nil {
		return statusForError(err)
	}

	res := make([]NamedValue, len(annualized))
	for idx, val := range annualized {
		res[idx] = NamedValue{Name: returns.ColNames[idx], Value: val}
	}

	return c.JSON(fiber.Map{"annualized": res})
}

// ActivePremium computes the pairwise active premium matrix of the asset
// columns against the benchmark columns
func ActivePremium(c *fiber.Ctx) error {
	req, ra, rb, frequency, err := parseCompareRequest(c)
	if err != nil {
		return err
	}

	premium, calcErr := perf.ActivePremium(ra, rb, frequency, geometricOrDefault(req.Geometric), prefixesFromRequest(req))
	if calcErr != nil {
		return statusForError(calcErr)
	}

	// emit row major: one row of premia per benchmark
	values := make([][]float64, premium.Len())
	for rowIdx := range premium.Index {
		row := make([]float64, premium.ColCount())
		for colIdx := range premium.ColNames {
			row[colIdx] = premium.Vals[colIdx][rowIdx]
		}
		values[rowIdx] = row
	}

	return c.JSON(fiber.Map{
		"assets":     premium.ColNames,
		"benchmarks": premium.Index,
		"premia":     values,
	})
}

// ExcessReturns computes annualized excess returns of the asset columns over
// the benchmark
func ExcessReturns(c *fiber.Ctx) error {
	req, ra, rb, frequency, err := parseCompareRequest(c)
	if err != nil {
		return err
	}

	excess, calcErr := perf.ExcessReturns(ra, rb, frequency, geometricOrDefault(req.Geometric))
	if calcErr != nil {
		return statusForError(calcErr)
	}

	return c.JSON(fiber.Map{"excess": excess})
}

// RelativeReturns computes the pairwise relative cumulative performance series
func RelativeReturns(c *fiber.Ctx) error {
	req, ra, rb, _, err := parseCompareRequest(c)
	if err != nil {
		return err
	}

	relative, calcErr := perf.RelativeReturns(ra, rb, prefixesFromRequest(req))
	if calcErr != nil {
		return statusForError(calcErr)
	}

	return c.JSON(dataFrameToTable(relative))
}

func parseCompareRequest(c *fiber.Ctx) (*CompareRequest, *dataframe.DataFrame[time.Time], *dataframe.DataFrame[time.Time], dataframe.Frequency, error) {
	var req CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, nil, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ra, err := tableToDataFrame(&req.Asset)
	if err != nil {
		log.Warn().Err(err).Msg("could not parse asset table")
		return nil, nil, nil, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rb, err := tableToDataFrame(&req.Benchmark)
	if err != nil {
		log.Warn().Err(err).Msg("could not parse benchmark table")
		return nil, nil, nil, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	frequency, err := parseFrequency(req.Frequency)
	if err != nil {
		return nil, nil, nil, "", statusForError(err)
	}

	return &req, ra, rb, frequency, nil
}

func parseFrequency(label string) (dataframe.Frequency, error) {
	if label == "" {
		return "", nil
	}
	return dataframe.ParseFrequency(label)
}

func parseDates(raw []string) ([]time.Time, error) {
	dates := make([]time.Time, len(raw))
	for idx, str := range raw {
		date, err := time.Parse("2006-01-02", str)
		if err != nil {
			return nil, err
		}
		dates[idx] = date
	}
	return dates, nil
}

func tableToDataFrame(table *Table) (*dataframe.DataFrame[time.Time], error) {
	dates, err := parseDates(table.Dates)
	if err != nil {
		return nil, err
	}

	df := &dataframe.DataFrame[time.Time]{
		Index:    dates,
		ColNames: make([]string, 0, len(table.Series)),
		Vals:     make([][]float64, 0, len(table.Series)),
	}

	for _, series := range table.Series {
		col := make([]float64, len(dates))
		for idx := range col {
			if idx < len(series.Values) && series.Values[idx] != nil {
				col[idx] = *series.Values[idx]
			} else {
				col[idx] = math.NaN()
			}
		}
		df.ColNames = append(df.ColNames, series.Name)
		df.Vals = append(df.Vals, col)
	}

	return df, nil
}

func dataFrameToTable(df *dataframe.DataFrame[time.Time]) *Table {
	table := &Table{
		Dates:  make([]string, df.Len()),
		Series: make([]Series, df.ColCount()),
	}

	for idx, date := range df.Index {
		table.Dates[idx] = date.Format("2006-01-02")
	}

	for colIdx, colName := range df.ColNames {
		values := make([]*float64, df.Len())
		for rowIdx, val := range df.Vals[colIdx] {
			if !math.IsNaN(val) {
				v := val
				values[rowIdx] = &v
			}
		}
		table.Series[colIdx] = Series{Name: colName, Values: values}
	}

	return table
}

func geometricOrDefault(geometric *bool) bool {
	if geometric == nil {
		return true
	}
	return *geometric
}

func prefixesFromRequest(req *CompareRequest) perf.Prefixes {
	return perf.Prefixes{Asset: req.AssetPrefix, Benchmark: req.BenchmarkPrefix}
}
